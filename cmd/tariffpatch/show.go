package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-tariffpatch/internal/inspect"
)

// runShow prints a read-only report of the post.
func runShow(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseShowFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printShowUsage(env.Stdout)
		}
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: show takes no arguments, got %q", ErrUsage, positional[0])
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	if flags.target.file != "" {
		cfg.File = flags.target.file
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)

	data, err := readPost(cfg.File)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r, err := inspect.Inspect(string(data), inspect.Options{
		Products:   productsFromConfig(cfg.Products),
		RateChain:  cfg.Rate.MinChain,
		PriceChain: cfg.Price.MinChain,
	})
	if err != nil {
		return err
	}
	logger.Debug("inspected post", "file", cfg.File, "notes", len(r.Notes), "superseded", r.Superseded)

	if flags.yaml {
		return r.WriteYAML(env.Stdout)
	}
	return r.Write(env.Stdout)
}
