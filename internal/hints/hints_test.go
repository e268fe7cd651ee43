package hints

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestForFileNotFound - Missing target suggestions
// ---------------------------------------------------------------------------

func TestForFileNotFound(t *testing.T) {
	t.Parallel()

	t.Run("lists sibling html files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		for _, name := range []string{"tariffs.html", "notes.txt", "index.htm"} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
				t.Fatal(err)
			}
		}

		hint := ForFileNotFound(filepath.Join(dir, "post.html"))

		if !strings.HasPrefix(hint, "\n  hint: ") {
			t.Errorf("expected hint prefix, got %q", hint)
		}
		if !strings.Contains(hint, "--file") {
			t.Error("expected --file suggestion")
		}
		if !strings.Contains(hint, "tariffs.html") || !strings.Contains(hint, "index.htm") {
			t.Errorf("expected html candidates, got %q", hint)
		}
		if strings.Contains(hint, "notes.txt") {
			t.Errorf("unexpected non-html candidate in %q", hint)
		}
	})

	t.Run("caps candidates", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		for _, name := range []string{"a.html", "b.html", "c.html", "d.html"} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
				t.Fatal(err)
			}
		}

		hint := ForFileNotFound(filepath.Join(dir, "post.html"))

		if strings.Contains(hint, "d.html") {
			t.Errorf("expected at most %d candidates, got %q", maxCandidates, hint)
		}
	})

	t.Run("unreadable directory", func(t *testing.T) {
		t.Parallel()

		hint := ForFileNotFound(filepath.Join(t.TempDir(), "missing", "post.html"))

		if strings.Contains(hint, "found:") {
			t.Errorf("expected no candidates, got %q", hint)
		}
		if !strings.Contains(hint, "TARIFFPATCH_FILE") {
			t.Errorf("expected env var suggestion, got %q", hint)
		}
	})
}

// ---------------------------------------------------------------------------
// TestForRateNotFound - Marker example follows the chain minimum
// ---------------------------------------------------------------------------

func TestForRateNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		minChain int
		contains string
	}{
		{"default chain", 3, "<s>N%</s> <s>N%</s> <s>N%</s> N%"},
		{"no chain", 0, "like N%;"},
		{"reports minimum", 2, "now 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForRateNotFound(tt.minChain)
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("ForRateNotFound(%d) = %q, want it to contain %q", tt.minChain, hint, tt.contains)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestForConfigNotFound - Config search suggestions
// ---------------------------------------------------------------------------

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paths    []string
		contains string
	}{
		{
			name:     "with user config path",
			paths:    []string{"tariffs.yaml", "/home/user/.config/go-tariffpatch/tariffs.yaml"},
			contains: "or create /home/user/.config/go-tariffpatch/tariffs.yaml",
		},
		{
			name:     "local paths only",
			paths:    []string{"tariffs.yaml", "tariffs.yml"},
			contains: "--config",
		},
		{
			name:     "no paths",
			paths:    nil,
			contains: "--config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.paths)
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	// All hints should start with newline, spaces, and "hint:"
	hints := []string{
		ForRateNotFound(3),
		ForConfigNotFound(nil),
		ForWrite(),
		ForFileNotFound("post.html"),
	}

	for _, h := range hints {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint %q does not follow format", h)
		}
	}
}

func TestFormatHints_Empty(t *testing.T) {
	t.Parallel()

	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
}
