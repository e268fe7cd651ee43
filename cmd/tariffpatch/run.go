package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// ErrUnknownCommand indicates the first argument is neither a command nor a rate.
var ErrUnknownCommand = errors.New("unknown command")

// runMain dispatches the command in args and returns the process exit code.
// Errors are printed to env.Stderr as a single line plus optional hints.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	command, rest := args[1], args[2:]

	var err error
	switch {
	case command == "help" || command == "-h" || command == "--help":
		topic := ""
		if len(rest) > 0 {
			topic = rest[0]
		}
		err = printHelp(env.Stdout, topic)
	case command == "version" || command == "--version":
		fmt.Fprintf(env.Stdout, "tariffpatch %s\n", Version)
	case command == "update":
		err = runUpdate(ctx, rest, env)
	case command == "show":
		err = runShow(ctx, rest, env)
	case isRateArg(command) || strings.HasPrefix(command, "-"):
		err = runUpdate(ctx, args[1:], env)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
		if errors.Is(err, ErrUnknownCommand) || errors.Is(err, ErrUsage) {
			fmt.Fprintln(env.Stderr, "Run 'tariffpatch help' for usage.")
		}
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// isRateArg reports whether s looks like a rate argument ("10" or "10%").
func isRateArg(s string) bool {
	s = strings.TrimSuffix(s, "%")
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
