package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Update-note markup. New notes must match existing ones so the last note
// can be found again on the next run.
const (
	NotePrefix = "<p><em><strong>Updated "
	noteSuffix = ".</strong></em></p>"
	noteEnd    = "</p>"
)

// NoteData holds the values stamped into an update note.
type NoteData struct {
	Rate int       // New tariff rate, in percent
	Note string    // Optional free text appended after the rate
	Time time.Time // Moment of the update
}

// NoteInserter defines the contract for update-note insertion into HTML.
type NoteInserter interface {
	InsertNote(ctx context.Context, htmlContent string, data *NoteData) (string, error)
}

// Stamper formats the moment of an update for the note.
type Stamper interface {
	Format(t time.Time) string
}

// NoteInsertion renders and inserts timestamped update notes.
type NoteInsertion struct {
	stamp    Stamper
	location *time.Location // Nil keeps the time's own location
	renderer NoteRenderer
}

// NewNoteInsertion creates a NoteInsertion. A nil renderer inserts note
// text verbatim.
func NewNoteInsertion(stamp Stamper, location *time.Location, renderer NoteRenderer) *NoteInsertion {
	if renderer == nil {
		renderer = RawNote{}
	}
	return &NoteInsertion{stamp: stamp, location: location, renderer: renderer}
}

// Fragment renders the note paragraph, including its trailing newline.
func (n *NoteInsertion) Fragment(data *NoteData) (string, error) {
	t := data.Time
	if n.location != nil {
		t = t.In(n.location)
	}

	var buf strings.Builder
	buf.WriteString(NotePrefix)
	buf.WriteString(n.stamp.Format(t))
	buf.WriteString(" to reflect new ")
	buf.WriteString(strconv.Itoa(data.Rate))
	buf.WriteString("% tariff rate")

	if strings.TrimSpace(data.Note) != "" {
		rendered, err := n.renderer.RenderNote(data.Note)
		if err != nil {
			return "", fmt.Errorf("rendering note: %w", err)
		}
		if rendered != "" {
			buf.WriteString(" and ")
			buf.WriteString(rendered)
		}
	}

	buf.WriteString(noteSuffix)
	buf.WriteString("\n")
	return buf.String(), nil
}

// InsertNote places a new note right after the last existing one.
// With no prior note, or when the last one is never closed, the note is
// prepended to the document. If data is nil, returns htmlContent unchanged.
func (n *NoteInsertion) InsertNote(ctx context.Context, htmlContent string, data *NoteData) (string, error) {
	if data == nil {
		return htmlContent, nil
	}

	// Check for cancellation
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	fragment, err := n.Fragment(data)
	if err != nil {
		return "", err
	}

	if pos, ok := lastNoteEnd(htmlContent); ok {
		return htmlContent[:pos] + "\n" + fragment + htmlContent[pos:], nil
	}

	// Fallback: prepend
	return fragment + htmlContent, nil
}

// lastNoteEnd returns the offset just past the </p> closing the last note.
func lastNoteEnd(htmlContent string) (int, bool) {
	start := strings.LastIndex(htmlContent, NotePrefix)
	if start < 0 {
		return 0, false
	}
	end := strings.Index(htmlContent[start:], noteEnd)
	if end < 0 {
		return 0, false
	}
	return start + end + len(noteEnd), true
}
