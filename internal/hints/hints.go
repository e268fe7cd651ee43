// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// maxCandidates caps the sibling files suggested for a missing target.
const maxCandidates = 3

// ForFileNotFound returns hints for a missing target post.
// Suggests --file and lists HTML files found next to the missing path.
func ForFileNotFound(path string) string {
	hint := "use --file /path/to/post.html or set TARIFFPATCH_FILE"

	dir := filepath.Dir(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return format(hint)
	}

	var candidates []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".html" || ext == ".htm" {
			candidates = append(candidates, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(candidates)
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	hints := []string{hint}
	if len(candidates) > 0 {
		hints = append(hints, "found: "+strings.Join(candidates, ", "))
	}
	return formatHints(hints)
}

// ForRateNotFound returns hints for a post without an active rate marker.
func ForRateNotFound(minChain int) string {
	example := strings.Repeat("<s>N%</s> ", minChain) + "N%"
	return format("expected a marker like " + example +
		"; lower rate.minChain (now " + strconv.Itoa(minChain) + ") for shorter chains")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-tariffpatch/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForWrite returns hints for backup or output write errors.
func ForWrite() string {
	return format("check the post directory exists and is writable, or use --no-backup")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
