// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrSuffixEmpty         = errors.New("backup suffix cannot be empty")
	ErrSuffixPathTraversal = errors.New("backup suffix contains path separator or null byte")
)

// DefaultFileMode applies when the target does not exist yet.
const DefaultFileMode fs.FileMode = 0o644

// WriteFileAtomic replaces path with data. The content is written to a
// temporary file in the same directory and renamed over the target, so a
// reader never sees a partial write. The target's mode is preserved.
func WriteFileAtomic(path string, data []byte) (err error) {
	mode := DefaultFileMode
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// BackupPath returns the snapshot path for path, e.g. post.html -> post.html.bak.
func BackupPath(path, suffix string) string {
	return path + suffix
}

// ValidateSuffix checks that a backup suffix cannot escape the target's directory.
func ValidateSuffix(suffix string) error {
	if suffix == "" {
		return ErrSuffixEmpty
	}
	if strings.ContainsAny(suffix, "/\\\x00") {
		return ErrSuffixPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "tariffs" -> false (config name)
//   - "./tariffs.yaml" -> true (relative path)
//   - "/etc/tariffpatch/tariffs.yaml" -> true (absolute)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
