package pipeline

import (
	"strings"

	"golang.org/x/net/html"
)

// Superseded span markup. The exact bytes matter: the post's stylesheet and
// earlier edits rely on this vocabulary.
const (
	strikeOpen  = "<s>"
	strikeClose = "</s>"
	chainSep    = " "
)

// Strike wraps value in a superseded span.
func Strike(value string) string {
	return strikeOpen + value + strikeClose
}

// textRange is the byte range of one text token in the document.
type textRange struct {
	start  int
	end    int
	struck bool // inside <s>...</s>
}

// rawTextElements hold content that is never prose, or (title, textarea)
// text where inserted markup would show literally.
var rawTextElements = map[string]bool{
	"script":   true,
	"style":    true,
	"textarea": true,
	"title":    true,
}

// scanText tokenizes htmlContent and returns the ranges of its text tokens.
// Offsets come from the raw token bytes, which concatenate back to the input
// exactly. Tags, attributes, comments and raw-text elements are not returned.
func scanText(htmlContent string) []textRange {
	z := html.NewTokenizer(strings.NewReader(htmlContent))

	var (
		ranges []textRange
		offset int
		struck int
		inRaw  string
	)

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return ranges
		}

		// Length must be taken before TagName, which lower-cases in place.
		n := len(z.Raw())

		switch tt {
		case html.TextToken:
			if inRaw == "" {
				ranges = append(ranges, textRange{start: offset, end: offset + n, struck: struck > 0})
			}
		case html.StartTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch {
			case tag == "s":
				struck++
			case rawTextElements[tag]:
				inRaw = tag
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch {
			case tag == "s" && struck > 0:
				struck--
			case tag == inRaw:
				inRaw = ""
			}
		}

		offset += n
	}
}

// chainBefore counts the superseded spans, each followed by a single space,
// that end exactly at pos. Spans containing markup do not count.
func chainBefore(htmlContent string, pos int) int {
	count := 0
	suffix := strikeClose + chainSep
	for {
		head := htmlContent[:pos]
		if !strings.HasSuffix(head, suffix) {
			return count
		}
		closeAt := pos - len(suffix)
		open := strings.LastIndex(htmlContent[:closeAt], strikeOpen)
		if open < 0 || strings.Contains(htmlContent[open+len(strikeOpen):closeAt], "<") {
			return count
		}
		count++
		pos = open
	}
}

// isNumberByte reports whether b can be part of a number.
func isNumberByte(b byte) bool {
	return (b >= '0' && b <= '9') || b == '.' || b == ','
}
