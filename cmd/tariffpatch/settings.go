package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alnah/go-tariffpatch"
	"github.com/alnah/go-tariffpatch/internal/config"
	"github.com/alnah/go-tariffpatch/internal/dateutil"
	"github.com/alnah/go-tariffpatch/internal/hints"
)

// Sentinel errors for post file access.
var (
	ErrFileNotFound = errors.New("post file not found")
	ErrReadPost     = errors.New("failed to read post")
)

// loadConfig resolves the config file from the flag or TARIFFPATCH_CONFIG,
// then applies environment overrides. With neither set, defaults are used.
func loadConfig(flagConfig string, env *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// readPost reads the post at path. A missing file yields ErrFileNotFound,
// which also matches os.ErrNotExist.
func readPost(path string) ([]byte, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (%w)%s", ErrFileNotFound, path, os.ErrNotExist, hints.ForFileNotFound(path))
		}
		return nil, fmt.Errorf("%w: %v", ErrReadPost, err)
	}
	return data, nil
}

// productsFromConfig converts configured products to library products.
func productsFromConfig(products []config.ProductConfig) []tariffpatch.Product {
	out := make([]tariffpatch.Product, len(products))
	for i, p := range products {
		out[i] = tariffpatch.Product{
			Name:      p.Name,
			BasePrice: p.BasePrice,
			Anchor:    p.Anchor,
			Position:  tariffpatch.Position(p.Position),
		}
	}
	return out
}

// newPatcher builds a Patcher from the merged configuration.
func newPatcher(cfg *config.Config, now func() time.Time) (*tariffpatch.Patcher, error) {
	loc, err := dateutil.LoadLocation(cfg.Timestamp.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrConfigInvalid, err)
	}

	opts := []tariffpatch.Option{
		tariffpatch.WithClock(now),
		tariffpatch.WithTimestampFormat(cfg.Timestamp.Format),
		tariffpatch.WithLocation(loc),
		tariffpatch.WithRateScope(tariffpatch.RateScope(cfg.Rate.Scope)),
		tariffpatch.WithMinRateChain(cfg.Rate.MinChain),
		tariffpatch.WithMinPriceChain(cfg.Price.MinChain),
		tariffpatch.WithProducts(productsFromConfig(cfg.Products)...),
	}
	if cfg.Note.Format == config.NoteFormatRaw {
		opts = append(opts, tariffpatch.WithRawNotes())
	}

	return tariffpatch.NewPatcher(opts...)
}
