package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/alnah/go-tariffpatch/internal/dateutil"
	"github.com/alnah/go-tariffpatch/internal/fileutil"
	"github.com/alnah/go-tariffpatch/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
)

// Defaults for the live post.
const (
	DefaultFile         = "post.html"
	DefaultBackupSuffix = ".bak"
	DefaultRateMinChain = 3
	DefaultPriceChain   = 1
	NoteFormatMarkdown  = "markdown"
	NoteFormatRaw       = "raw"
)

// configDirName is the directory searched under the user config dir.
const configDirName = "go-tariffpatch"

// Config holds all configuration for a patch run.
type Config struct {
	File      string          `yaml:"file" validate:"required,max=4096"`
	Timestamp TimestampConfig `yaml:"timestamp"`
	Note      NoteConfig      `yaml:"note"`
	Rate      RateConfig      `yaml:"rate"`
	Price     PriceConfig     `yaml:"price"`
	Backup    BackupConfig    `yaml:"backup"`
	Products  []ProductConfig `yaml:"products" validate:"max=20,dive"`
}

// TimestampConfig defines how update notes are stamped.
type TimestampConfig struct {
	Format   string `yaml:"format" validate:"max=50"`   // Tokens or preset name (empty = default)
	Timezone string `yaml:"timezone" validate:"max=64"` // IANA name (empty = local)
}

// NoteConfig defines how the free-text note is inserted.
type NoteConfig struct {
	Format string `yaml:"format" validate:"omitempty,oneof=markdown raw"`
}

// RateConfig defines how the active rate is found and superseded.
type RateConfig struct {
	Scope    string `yaml:"scope" validate:"omitempty,oneof=all chain"` // "all" (default) or "chain"
	MinChain int    `yaml:"minChain" validate:"gte=0,lte=50"`           // Superseded rates required before the active one
}

// PriceConfig defines how product price markers are found.
type PriceConfig struct {
	MinChain int `yaml:"minChain" validate:"gte=0,lte=50"`
}

// BackupConfig defines the pre-edit snapshot.
type BackupConfig struct {
	Enabled bool   `yaml:"enabled"`
	Suffix  string `yaml:"suffix" validate:"required,max=32"`
}

// ProductConfig defines a product whose tax follows the tariff rate.
type ProductConfig struct {
	Name      string `yaml:"name" validate:"required,max=100"`
	BasePrice int    `yaml:"basePrice" validate:"gte=0,lte=1000000"`
	Anchor    string `yaml:"anchor" validate:"required,max=500"`
	Position  string `yaml:"position" validate:"oneof=before after"` // Marker side relative to the anchor
}

// DefaultProducts returns the two keyboards tracked by the post.
func DefaultProducts() []ProductConfig {
	return []ProductConfig{
		{Name: "Model 100", BasePrice: 349, Anchor: "additional customs clearance fees", Position: "before"},
		{Name: "Atreus", BasePrice: 149, Anchor: "taxes on the Atreus will be", Position: "after"},
	}
}

// DefaultConfig returns the configuration matching the live post.
func DefaultConfig() *Config {
	return &Config{
		File:      DefaultFile,
		Timestamp: TimestampConfig{Format: dateutil.DefaultFormat},
		Note:      NoteConfig{Format: NoteFormatMarkdown},
		Rate:      RateConfig{Scope: "all", MinChain: DefaultRateMinChain},
		Price:     PriceConfig{MinChain: DefaultPriceChain},
		Backup:    BackupConfig{Enabled: true, Suffix: DefaultBackupSuffix},
		Products:  DefaultProducts(),
	}
}

// validate is shared; validator caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report YAML key names instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks field constraints, timestamp settings and the backup suffix.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %s", ErrConfigInvalid, describe(err))
	}
	if _, err := dateutil.ResolveLayout(c.Timestamp.Format); err != nil {
		return fmt.Errorf("%w: timestamp.format: %v", ErrConfigInvalid, err)
	}
	if _, err := dateutil.LoadLocation(c.Timestamp.Timezone); err != nil {
		return fmt.Errorf("%w: timestamp.timezone: %v", ErrConfigInvalid, err)
	}
	if err := fileutil.ValidateSuffix(c.Backup.Suffix); err != nil {
		return fmt.Errorf("%w: backup.suffix: %v", ErrConfigInvalid, err)
	}
	return nil
}

// describe renders the first validation failure as "field: rule".
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	if fe.Param() != "" {
		return fmt.Sprintf("%s: failed %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value())
	}
	return fmt.Sprintf("%s: failed %s", field, fe.Tag())
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys missing from the file keep their defaults; a products list replaces
// the default products entirely.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) && !fileutil.FileExists(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Products = nil
	if err := yamlutil.DecodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if len(cfg.Products) == 0 {
		cfg.Products = DefaultProducts()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-tariffpatch/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, configDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// SearchPaths lists the locations tried for a config name, for hints.
func SearchPaths(name string) []string {
	paths := []string{name + ".yaml", name + ".yml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths,
			filepath.Join(dir, configDirName, name+".yaml"),
			filepath.Join(dir, configDirName, name+".yml"))
	}
	return paths
}
