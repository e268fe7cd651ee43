package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alnah/go-tariffpatch/internal/config"
)

// envPrefix starts every environment variable the CLI reads.
const envPrefix = "TARIFFPATCH_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // TARIFFPATCH_CONFIG: config file name or path
	File       string // TARIFFPATCH_FILE: post to edit
	Note       string // TARIFFPATCH_NOTE: default update-note text
	RateScope  string // TARIFFPATCH_RATE_SCOPE: all or chain
	NoBackup   *bool  // TARIFFPATCH_NO_BACKUP: skip the .bak snapshot (nil = unset)
}

// knownEnvVars lists valid TARIFFPATCH_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"TARIFFPATCH_CONFIG":     true,
	"TARIFFPATCH_FILE":       true,
	"TARIFFPATCH_NOTE":       true,
	"TARIFFPATCH_RATE_SCOPE": true,
	"TARIFFPATCH_NO_BACKUP":  true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable booleans are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("TARIFFPATCH_CONFIG"),
		File:       os.Getenv("TARIFFPATCH_FILE"),
		Note:       os.Getenv("TARIFFPATCH_NOTE"),
		RateScope:  os.Getenv("TARIFFPATCH_RATE_SCOPE"),
	}

	if v := os.Getenv("TARIFFPATCH_NO_BACKUP"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.NoBackup = &b
		}
	}

	return cfg
}

// warnUnknownEnvVars prints warnings for unrecognized TARIFFPATCH_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config file values with set environment variables.
// Flags are applied afterwards, giving: flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.File != "" {
		cfg.File = env.File
	}
	if env.RateScope != "" {
		cfg.Rate.Scope = env.RateScope
	}
	if env.NoBackup != nil {
		cfg.Backup.Enabled = !*env.NoBackup
	}
}

// loadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables already set are kept. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", path, err)
}
