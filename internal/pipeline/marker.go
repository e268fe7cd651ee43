package pipeline

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrRateNotFound indicates no rate marker with the required history exists.
var ErrRateNotFound = errors.New("active tariff rate not found")

// Marker locates a chain of superseded spans followed by an active value,
// such as `<s>54%</s> <s>104%</s> 125%` or `<s>$80</s> $155`.
type Marker struct {
	Start      int      // Offset of the first superseded span (or the value when the chain is empty)
	ValueStart int      // Offset of the active value, including any "$" prefix
	End        int      // Offset just past the active value, including any "%" suffix
	History    []string // Superseded values, oldest first
	Value      int      // Active value
}

// spanPattern captures the content of one superseded span.
var spanPattern = regexp.MustCompile(`<s>([^<]*)</s>`)

// ratePattern matches minChain or more superseded spans then an active percentage.
// Captures: 1=active percentage digits
func ratePattern(minChain int) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`(?:<s>[^<]*</s> ){%d,}(\d+)%%`, minChain))
}

// pricePattern matches minChain or more superseded dollar spans then an active dollar value.
// Captures: 1=active dollar digits
func pricePattern(minChain int) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`(?:<s>\$\d+</s> ){%d,}\$(\d+)`, minChain))
}

// FindRateMarker returns the first rate marker with at least minChain
// superseded spans. The boolean is false when none exists.
func FindRateMarker(htmlContent string, minChain int) (Marker, bool) {
	loc := ratePattern(clampChain(minChain)).FindStringSubmatchIndex(htmlContent)
	if loc == nil {
		return Marker{}, false
	}
	return newMarker(htmlContent, loc, loc[2])
}

// FindActiveRate returns the active percentage of the first rate marker
// with at least minChain superseded spans.
func FindActiveRate(htmlContent string, minChain int) (int, error) {
	m, ok := FindRateMarker(htmlContent, minChain)
	if !ok {
		return 0, fmt.Errorf("%w: need %d or more struck-through rates before the active one", ErrRateNotFound, clampChain(minChain))
	}
	return m.Value, nil
}

// findPriceMarkers returns every price marker in s, in document order.
// Offsets are relative to s shifted by base.
func findPriceMarkers(s string, base, minChain int) []Marker {
	all := pricePattern(clampChain(minChain)).FindAllStringSubmatchIndex(s, -1)
	markers := make([]Marker, 0, len(all))
	for _, loc := range all {
		m, ok := newMarker(s, loc, loc[2]-1)
		if !ok {
			continue
		}
		m.Start += base
		m.ValueStart += base
		m.End += base
		markers = append(markers, m)
	}
	return markers
}

// newMarker builds a Marker from a submatch index whose first group holds the
// active digits. valueStart is where the active value's text begins.
func newMarker(s string, loc []int, valueStart int) (Marker, bool) {
	value, err := strconv.Atoi(s[loc[2]:loc[3]])
	if err != nil {
		return Marker{}, false
	}

	var history []string
	for _, sm := range spanPattern.FindAllStringSubmatch(s[loc[0]:valueStart], -1) {
		history = append(history, sm[1])
	}

	return Marker{
		Start:      loc[0],
		ValueStart: valueStart,
		End:        loc[1],
		History:    history,
		Value:      value,
	}, true
}

// clampChain treats negative chain minimums as zero.
func clampChain(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
