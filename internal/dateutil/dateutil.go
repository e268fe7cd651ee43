// Package dateutil converts user-friendly timestamp formats to Go layouts.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for timestamp formatting.
var (
	ErrInvalidFormat   = errors.New("invalid timestamp format")
	ErrInvalidLocation = errors.New("invalid timezone")
)

// MaxFormatLength limits format string length to prevent abuse.
const MaxFormatLength = 50

// DefaultFormat stamps update notes the way the post always has: local
// wall-clock time followed by a literal PDT.
const DefaultFormat = "YYYY-MM-DD HH:mm [PDT]"

// tokens maps user-friendly tokens to Go time format components.
// Ordered by length descending for greedy matching.
var tokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"ZZZ", "MST"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"hh", "03"},
	{"mm", "04"},
	{"ss", "05"},
	{"M", "1"},
	{"D", "2"},
}

// Presets provides named shortcuts for common timestamp formats.
var Presets = map[string]string{
	"default": DefaultFormat,
	"zone":    "YYYY-MM-DD HH:mm ZZZ",
	"iso":     "YYYY-MM-DD[T]HH:mm:ss",
	"long":    "MMMM D, YYYY HH:mm ZZZ",
}

// Layout is a parsed timestamp format. Token segments are Go time layouts;
// literal segments are copied verbatim and never interpreted as layout.
type Layout struct {
	segments []segment
}

type segment struct {
	text    string
	literal bool
}

// Format renders t with the layout.
func (l Layout) Format(t time.Time) string {
	var b strings.Builder
	for _, seg := range l.segments {
		if seg.literal {
			b.WriteString(seg.text)
		} else {
			b.WriteString(t.Format(seg.text))
		}
	}
	return b.String()
}

// String returns the layout in Go notation, with literals inline.
// Intended for logs: literals containing Go layout tokens read ambiguously.
func (l Layout) String() string {
	var b strings.Builder
	for _, seg := range l.segments {
		b.WriteString(seg.text)
	}
	return b.String()
}

// add appends a segment. Adjacent literals merge; tokens stay separate so
// neighbouring tokens cannot fuse into a different Go layout element.
func (l *Layout) add(text string, literal bool) {
	if n := len(l.segments); literal && n > 0 && l.segments[n-1].literal {
		l.segments[n-1].text += text
		return
	}
	l.segments = append(l.segments, segment{text: text, literal: literal})
}

// ParseFormat converts a user-friendly format string to a Layout.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, hh, mm, ss, ZZZ
// Use brackets to escape literal text: [PDT] preserves "PDT" literally.
// Any non-token characters outside brackets are literals as well.
// Returns ErrInvalidFormat if the format is empty, too long, or has unclosed brackets.
func ParseFormat(format string) (Layout, error) {
	if format == "" {
		return Layout{}, fmt.Errorf("%w: format cannot be empty", ErrInvalidFormat)
	}
	if len(format) > MaxFormatLength {
		return Layout{}, fmt.Errorf("%w: format exceeds %d characters", ErrInvalidFormat, MaxFormatLength)
	}

	var l Layout

	i := 0
	for i < len(format) {
		if format[i] == '[' {
			end := strings.Index(format[i+1:], "]")
			if end == -1 {
				return Layout{}, fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidFormat, i)
			}
			if end > 0 {
				l.add(format[i+1:i+1+end], true)
			}
			i += end + 2
			continue
		}

		matched := false
		for _, t := range tokens {
			if strings.HasPrefix(format[i:], t.token) {
				l.add(t.goFmt, false)
				i += len(t.token)
				matched = true
				break
			}
		}

		if !matched {
			l.add(format[i:i+1], true)
			i++
		}
	}

	return l, nil
}

// ResolveLayout accepts a preset name (case-insensitive) or a format string
// and returns its Layout. Empty means DefaultFormat.
func ResolveLayout(nameOrFormat string) (Layout, error) {
	if nameOrFormat == "" {
		nameOrFormat = DefaultFormat
	}
	if preset, ok := Presets[strings.ToLower(nameOrFormat)]; ok {
		nameOrFormat = preset
	}
	return ParseFormat(nameOrFormat)
}

// LoadLocation resolves an IANA timezone name. Empty and "local" return nil,
// which keeps times in the clock's own location.
func LoadLocation(name string) (*time.Location, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "local":
		return nil, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidLocation, name, err)
	}
	return loc, nil
}
