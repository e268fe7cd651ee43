package report

import (
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContext is the number of unchanged lines shown around each change.
const DefaultContext = 1

// elision separates hunks whose unchanged lines were trimmed.
const elision = "..."

// LineDiff compares before and after line by line.
func LineDiff(before, after string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

// WriteDiff prints a unified-style diff of before and after, keeping
// contextLines unchanged lines around each change. Returns the number of
// removed plus added lines; zero means the texts are identical and nothing
// is printed.
func WriteDiff(w io.Writer, p *Palette, before, after string, contextLines int) (int, error) {
	if contextLines < 0 {
		contextLines = 0
	}

	diffs := LineDiff(before, after)

	var b strings.Builder
	changed := 0
	for i, d := range diffs {
		lines := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			for _, l := range lines {
				p.Delete.Fprint(&b, "-"+l)
				b.WriteString("\n")
			}
			changed += len(lines)
		case diffmatchpatch.DiffInsert:
			for _, l := range lines {
				p.Insert.Fprint(&b, "+"+l)
				b.WriteString("\n")
			}
			changed += len(lines)
		case diffmatchpatch.DiffEqual:
			writeContext(&b, p, lines, i == 0, i == len(diffs)-1, contextLines)
		}
	}

	if changed == 0 {
		return 0, nil
	}
	_, err := io.WriteString(w, b.String())
	return changed, err
}

// writeContext prints the unchanged lines adjacent to changes.
// The first chunk keeps its tail, the last its head, others both ends.
func writeContext(b *strings.Builder, p *Palette, lines []string, first, last bool, n int) {
	var head, tail []string
	switch {
	case first && last:
		return
	case first:
		tail = lastN(lines, n)
	case last:
		head = lines[:min(n, len(lines))]
	case len(lines) <= 2*n:
		head = lines
	default:
		head, tail = lines[:n], lines[len(lines)-n:]
	}

	for _, l := range head {
		b.WriteString(" " + l + "\n")
	}
	if len(head)+len(tail) < len(lines) {
		p.Dim.Fprint(b, elision)
		b.WriteString("\n")
	}
	for _, l := range tail {
		b.WriteString(" " + l + "\n")
	}
}

func lastN(lines []string, n int) []string {
	if n >= len(lines) {
		return lines
	}
	return lines[len(lines)-n:]
}

// splitLines splits text on newlines, dropping the empty tail after a final
// newline.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
