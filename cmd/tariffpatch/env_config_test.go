package main

// Notes:
// - Tests use t.Setenv() which prevents t.Parallel().
// - loadDotEnv writes into the process environment; each test restores the
//   variables it touches through t.Setenv cleanups.

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-tariffpatch/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("TARIFFPATCH_CONFIG", "/etc/tariffs.yaml")
	t.Setenv("TARIFFPATCH_FILE", "blog/post.html")
	t.Setenv("TARIFFPATCH_NOTE", "a pause")
	t.Setenv("TARIFFPATCH_RATE_SCOPE", "chain")
	t.Setenv("TARIFFPATCH_NO_BACKUP", "true")

	cfg := loadEnvConfig()

	if cfg.ConfigPath != "/etc/tariffs.yaml" || cfg.File != "blog/post.html" || cfg.Note != "a pause" || cfg.RateScope != "chain" {
		t.Errorf("loadEnvConfig() = %+v", cfg)
	}
	if cfg.NoBackup == nil || !*cfg.NoBackup {
		t.Error("NoBackup should be true")
	}
}

func TestLoadEnvConfig_InvalidBoolIgnored(t *testing.T) {
	t.Setenv("TARIFFPATCH_NO_BACKUP", "sometimes")

	if cfg := loadEnvConfig(); cfg.NoBackup != nil {
		t.Errorf("NoBackup = %v, want nil for unparseable value", *cfg.NoBackup)
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("TARIFFPATCH_FLIE", "post.html")
	t.Setenv("TARIFFPATCH_FILE", "post.html")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	if !strings.Contains(buf.String(), "unknown environment variable TARIFFPATCH_FLIE") {
		t.Errorf("expected warning for typo, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "TARIFFPATCH_FILE ") {
		t.Errorf("known variable should not warn, got %q", buf.String())
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Precedence over config file values
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	noBackup := true
	cfg := config.DefaultConfig()
	cfg.File = "from-config.html"

	applyEnvConfig(&envConfig{File: "from-env.html", RateScope: "chain", NoBackup: &noBackup}, cfg)

	if cfg.File != "from-env.html" {
		t.Errorf("File = %q, want env value", cfg.File)
	}
	if cfg.Rate.Scope != "chain" {
		t.Errorf("Rate.Scope = %q, want chain", cfg.Rate.Scope)
	}
	if cfg.Backup.Enabled {
		t.Error("Backup.Enabled should be false")
	}
}

func TestApplyEnvConfig_EmptyKeepsConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.File = "from-config.html"

	applyEnvConfig(&envConfig{}, cfg)

	if cfg.File != "from-config.html" || !cfg.Backup.Enabled || cfg.Rate.Scope != "all" {
		t.Errorf("config changed by empty env: %+v", cfg)
	}
}

// ---------------------------------------------------------------------------
// TestEnvOverrides - End-to-end precedence through runMain
// ---------------------------------------------------------------------------

func TestEnvOverrides(t *testing.T) {
	path := writePost(t, samplePost)
	t.Setenv("TARIFFPATCH_FILE", path)
	t.Setenv("TARIFFPATCH_NOTE", "set by env")
	t.Setenv("TARIFFPATCH_NO_BACKUP", "1")

	env, _, stderr := testEnv()
	if code := runMain([]string{"tariffpatch", "10"}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d\nstderr: %s", code, stderr.String())
	}

	got := readFile(t, path)
	if !strings.Contains(got, "tariff rate and set by env.") {
		t.Error("note from TARIFFPATCH_NOTE missing")
	}
	if _, err := os.Stat(path + ".bak"); err == nil {
		t.Error("TARIFFPATCH_NO_BACKUP should skip the backup")
	}

	// Flags win over the environment
	env, _, stderr = testEnv()
	if code := runMain([]string{"tariffpatch", "20", "--note", "set by flag"}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d\nstderr: %s", code, stderr.String())
	}
	if got := readFile(t, path); !strings.Contains(got, "tariff rate and set by flag.") {
		t.Error("note from --note missing")
	}
}

// ---------------------------------------------------------------------------
// TestLoadDotEnv - .env file loading
// ---------------------------------------------------------------------------

func TestLoadDotEnv(t *testing.T) {
	// Register restore, then unset so the file value applies
	t.Setenv("TARIFFPATCH_NOTE", "")
	os.Unsetenv("TARIFFPATCH_NOTE")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("TARIFFPATCH_NOTE=from dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv() unexpected error: %v", err)
	}
	if got := os.Getenv("TARIFFPATCH_NOTE"); got != "from dotenv" {
		t.Errorf("TARIFFPATCH_NOTE = %q, want value from .env", got)
	}
}

func TestLoadDotEnv_KeepsExisting(t *testing.T) {
	t.Setenv("TARIFFPATCH_NOTE", "from process")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("TARIFFPATCH_NOTE=from dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv() unexpected error: %v", err)
	}
	if got := os.Getenv("TARIFFPATCH_NOTE"); got != "from process" {
		t.Errorf("TARIFFPATCH_NOTE = %q, want existing value kept", got)
	}
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	t.Parallel()

	if err := loadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("loadDotEnv() error = %v, want nil for missing file", err)
	}
}
