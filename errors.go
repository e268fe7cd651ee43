package tariffpatch

import (
	"errors"

	"github.com/alnah/go-tariffpatch/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyDocument = errors.New("document content cannot be empty")
	ErrInvalidRate   = errors.New("invalid tariff rate")
	ErrNoteRender    = errors.New("update note rendering failed")

	// ErrRateNotFound indicates the post has no active rate marker with the
	// required history. It matches errors returned by the pipeline.
	ErrRateNotFound = pipeline.ErrRateNotFound

	// Option validation errors.
	ErrInvalidTimestampFormat = errors.New("invalid timestamp format")
	ErrInvalidRateScope       = pipeline.ErrInvalidRateScope
	ErrInvalidChain           = errors.New("invalid chain length")

	// Product validation errors.
	ErrInvalidProduct  = errors.New("invalid product")
	ErrInvalidPosition = errors.New("invalid anchor position")
)
