package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-tariffpatch"
	"github.com/alnah/go-tariffpatch/internal/config"
	"github.com/alnah/go-tariffpatch/internal/fileutil"
	"github.com/alnah/go-tariffpatch/internal/hints"
	"github.com/alnah/go-tariffpatch/internal/report"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for the update command.
var (
	ErrMissingRate = errors.New("missing new rate argument")
	ErrWriteBackup = errors.New("failed to write backup")
	ErrWritePost   = errors.New("failed to write post")
)

// runUpdate supersedes the active rate in the post and writes it back.
// Nothing is written unless every stage succeeds; the backup, when enabled,
// is written before the post is replaced.
func runUpdate(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseUpdateFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUpdateUsage(env.Stdout)
		}
		return err
	}

	rate, err := parseRateArgs(positional)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	if err := mergeUpdateFlags(flags, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	note := flags.note.text
	if !flags.set("note") {
		note = envCfg.Note
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	logger.Debug("resolved settings",
		"file", cfg.File, "scope", cfg.Rate.Scope, "backup", cfg.Backup.Enabled, "dry_run", flags.dryRun)

	patcher, err := newPatcher(cfg, env.Now)
	if err != nil {
		return err
	}

	original, err := readPost(cfg.File)
	if err != nil {
		return err
	}

	result, err := patcher.Patch(ctx, tariffpatch.Input{HTML: string(original), Rate: rate, Note: note})
	if err != nil {
		if errors.Is(err, tariffpatch.ErrRateNotFound) {
			return fmt.Errorf("%s: %w%s", cfg.File, err, hints.ForRateNotFound(cfg.Rate.MinChain))
		}
		return fmt.Errorf("%s: %w", cfg.File, err)
	}
	logger.Debug("patched post", "old_rate", result.OldRate, "new_rate", result.NewRate, "rate_sites", result.RateSites)
	for _, c := range result.Prices {
		if !c.Applied {
			logger.Debug("price marker not found", "product", c.Product)
		}
	}

	palette := report.PaletteFor(env.Stdout)

	if flags.dryRun {
		if _, err := report.WriteDiff(env.Stdout, palette, string(original), result.HTML, report.DefaultContext); err != nil {
			return err
		}
		if flags.common.quiet {
			return nil
		}
		return report.WriteSummary(env.Stdout, palette, report.Summarize(result, "", true))
	}

	backupPath := ""
	if cfg.Backup.Enabled {
		backupPath = fileutil.BackupPath(cfg.File, cfg.Backup.Suffix)
		if err := fileutil.WriteFileAtomic(backupPath, original); err != nil {
			return fmt.Errorf("%w: %v%s", ErrWriteBackup, err, hints.ForWrite())
		}
		logger.Debug("wrote backup", "path", backupPath)
	}

	if err := fileutil.WriteFileAtomic(cfg.File, []byte(result.HTML)); err != nil {
		return fmt.Errorf("%w: %v%s", ErrWritePost, err, hints.ForWrite())
	}
	logger.Debug("wrote post", "path", cfg.File, "bytes", len(result.HTML))

	if flags.common.quiet {
		return nil
	}
	return report.WriteSummary(env.Stdout, palette, report.Summarize(result, backupPath, false))
}

// parseRateArgs extracts the new rate from the positional arguments.
// A trailing "%" is accepted.
func parseRateArgs(positional []string) (int, error) {
	switch len(positional) {
	case 0:
		return 0, ErrMissingRate
	case 1:
	default:
		return 0, fmt.Errorf("%w: expected one rate, got %d arguments", ErrUsage, len(positional))
	}

	raw := strings.TrimSuffix(strings.TrimSpace(positional[0]), "%")
	rate, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", tariffpatch.ErrInvalidRate, positional[0])
	}
	if rate < 0 || rate > tariffpatch.MaxRate {
		return 0, fmt.Errorf("%w: %d (must be 0-%d)", tariffpatch.ErrInvalidRate, rate, tariffpatch.MaxRate)
	}
	return rate, nil
}

// mergeUpdateFlags applies explicitly set flags over the config (CLI wins).
func mergeUpdateFlags(flags *updateFlags, cfg *config.Config) error {
	if flags.set("file") {
		cfg.File = flags.target.file
	}
	if flags.set("no-backup") {
		cfg.Backup.Enabled = !flags.noBackup
	}
	if flags.set("raw-note") && flags.note.raw {
		cfg.Note.Format = config.NoteFormatRaw
	}
	if flags.set("timestamp") {
		cfg.Timestamp.Format = flags.note.timestamp
	}
	if flags.set("timezone") {
		cfg.Timestamp.Timezone = flags.note.timezone
	}

	// Normalize the scope so "ALL" or " chain " pass validation
	scope := cfg.Rate.Scope
	if flags.set("rate-scope") {
		scope = flags.rateScope
	}
	parsed, err := tariffpatch.ParseRateScope(scope)
	if err != nil {
		return err
	}
	cfg.Rate.Scope = string(parsed)
	return nil
}
