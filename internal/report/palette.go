package report

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Palette holds the colors used by the summary and the diff.
// A disabled palette prints plain text.
type Palette struct {
	OK     *color.Color
	Warn   *color.Color
	Delete *color.Color
	Insert *color.Color
	Dim    *color.Color
}

// NewPalette creates a Palette with colors on or off.
func NewPalette(enabled bool) *Palette {
	p := &Palette{
		OK:     color.New(color.FgGreen),
		Warn:   color.New(color.FgYellow),
		Delete: color.New(color.FgRed),
		Insert: color.New(color.FgGreen),
		Dim:    color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.OK, p.Warn, p.Delete, p.Insert, p.Dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// ColorEnabled reports whether w is a terminal and NO_COLOR is unset.
func ColorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PaletteFor returns a Palette suited to w.
func PaletteFor(w io.Writer) *Palette {
	return NewPalette(ColorEnabled(w))
}
