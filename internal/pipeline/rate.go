package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidRateScope indicates an unknown RateScope value.
var ErrInvalidRateScope = errors.New("invalid rate scope")

// RateScope selects which occurrences of the old rate get rewritten.
type RateScope string

const (
	// ScopeAll rewrites every occurrence of the old rate outside a
	// superseded span, wherever it appears in the post.
	ScopeAll RateScope = "all"
	// ScopeChain rewrites only occurrences that directly follow a chain of
	// superseded rates.
	ScopeChain RateScope = "chain"
)

// ParseRateScope converts a user-supplied scope name. Empty means ScopeAll.
func ParseRateScope(s string) (RateScope, error) {
	switch RateScope(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScopeAll:
		return ScopeAll, nil
	case ScopeChain:
		return ScopeChain, nil
	default:
		return "", fmt.Errorf("%w: %q (must be all or chain)", ErrInvalidRateScope, s)
	}
}

// RateUpdater defines the contract for superseding the active tariff rate.
type RateUpdater interface {
	UpdateRate(ctx context.Context, htmlContent string, oldRate, newRate int) (string, int, error)
}

// RateRewrite strikes through the old rate and appends the new one.
type RateRewrite struct {
	Scope    RateScope
	MinChain int // Chain length required before an occurrence under ScopeChain
}

// UpdateRate replaces each qualifying "{old}%" with "<s>{old}%</s> {new}%"
// and returns the new content with the number of rewritten occurrences.
//
// An occurrence qualifies when it sits in prose outside any <s> element and
// is not the tail of a longer number. Values already struck through are never
// touched, so repeating the same update leaves the document unchanged.
func (r *RateRewrite) UpdateRate(ctx context.Context, htmlContent string, oldRate, newRate int) (string, int, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	needle := strconv.Itoa(oldRate) + "%"
	replacement := Strike(needle) + chainSep + strconv.Itoa(newRate) + "%"

	var buf strings.Builder
	buf.Grow(len(htmlContent) + len(replacement))

	last, count := 0, 0
	for _, tr := range scanText(htmlContent) {
		if tr.struck {
			continue
		}
		for i := tr.start; i < tr.end; {
			j := strings.Index(htmlContent[i:tr.end], needle)
			if j < 0 {
				break
			}
			pos := i + j
			i = pos + len(needle)

			if pos > 0 && isNumberByte(htmlContent[pos-1]) {
				continue
			}
			if r.Scope == ScopeChain && chainBefore(htmlContent, pos) < clampChain(r.MinChain) {
				continue
			}

			buf.WriteString(htmlContent[last:pos])
			buf.WriteString(replacement)
			last = pos + len(needle)
			count++
		}
	}

	if count == 0 {
		return htmlContent, 0, nil
	}
	buf.WriteString(htmlContent[last:])
	return buf.String(), count, nil
}
