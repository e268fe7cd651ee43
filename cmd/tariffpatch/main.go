package main

import (
	"fmt"
	"os"
)

// Version is set at build time via ldflags.
var Version = "dev"

// dotEnvFile is loaded from the working directory when present.
const dotEnvFile = ".env"

func main() {
	if err := loadDotEnv(dotEnvFile); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}
	os.Exit(runMain(os.Args, DefaultEnv()))
}
