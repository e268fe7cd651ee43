package main

// Notes:
// - exitCodeFor: we test the sentinel errors from the library, config and CLI
//   packages, plus wrapped errors to verify errors.Is() chains.
// - Exit code constants: we verify Unix conventions (0=success, 1=general, 2=usage)
//   and custom codes are below 126.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/alnah/go-tariffpatch"
	"github.com/alnah/go-tariffpatch/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Pattern errors (exit 4)
		{"rate not found", tariffpatch.ErrRateNotFound, ExitRateNotFound},
		{"wrapped rate not found", fmt.Errorf("post.html: %w", tariffpatch.ErrRateNotFound), ExitRateNotFound},

		// I/O errors (exit 3)
		{"not exist", os.ErrNotExist, ExitIO},
		{"permission", os.ErrPermission, ExitIO},
		{"file not found", ErrFileNotFound, ExitIO},
		{"read post", ErrReadPost, ExitIO},
		{"write backup", ErrWriteBackup, ExitIO},
		{"write post", ErrWritePost, ExitIO},
		{"wrapped not exist", fmt.Errorf("%w: post.html (%w)", ErrFileNotFound, os.ErrNotExist), ExitIO},

		// Usage errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"unknown command", ErrUnknownCommand, ExitUsage},
		{"missing rate", ErrMissingRate, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"config invalid", fmt.Errorf("loading config: %w", config.ErrConfigInvalid), ExitUsage},
		{"invalid rate", tariffpatch.ErrInvalidRate, ExitUsage},
		{"invalid scope", tariffpatch.ErrInvalidRateScope, ExitUsage},
		{"invalid timestamp", tariffpatch.ErrInvalidTimestampFormat, ExitUsage},
		{"invalid chain", tariffpatch.ErrInvalidChain, ExitUsage},
		{"invalid product", tariffpatch.ErrInvalidProduct, ExitUsage},
		{"invalid position", tariffpatch.ErrInvalidPosition, ExitUsage},

		// General errors (exit 1)
		{"empty document", tariffpatch.ErrEmptyDocument, ExitGeneral},
		{"unknown error", errors.New("something else"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("standard exit codes must follow Unix conventions")
	}
	for _, code := range []int{ExitIO, ExitRateNotFound} {
		if code >= 126 {
			t.Errorf("custom exit code %d must be below 126", code)
		}
	}
}
