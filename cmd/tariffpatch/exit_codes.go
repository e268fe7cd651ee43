package main

import (
	"errors"
	"os"

	"github.com/alnah/go-tariffpatch"
	"github.com/alnah/go-tariffpatch/internal/config"
)

// Exit codes for the tariffpatch CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess      = 0 // Post updated (or report printed)
	ExitGeneral      = 1 // General/unexpected error
	ExitUsage        = 2 // Invalid flags, arguments or config
	ExitIO           = 3 // Post missing, unreadable or unwritable
	ExitRateNotFound = 4 // No active rate marker in the post
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Pattern errors (exit 4)
	if errors.Is(err, tariffpatch.ErrRateNotFound) {
		return ExitRateNotFound
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrReadPost) ||
		errors.Is(err, ErrWriteBackup) ||
		errors.Is(err, ErrWritePost) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrMissingRate) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, tariffpatch.ErrInvalidRate) ||
		errors.Is(err, tariffpatch.ErrInvalidRateScope) ||
		errors.Is(err, tariffpatch.ErrInvalidTimestampFormat) ||
		errors.Is(err, tariffpatch.ErrInvalidChain) ||
		errors.Is(err, tariffpatch.ErrInvalidProduct) ||
		errors.Is(err, tariffpatch.ErrInvalidPosition) {
		return ExitUsage
	}

	return ExitGeneral
}
