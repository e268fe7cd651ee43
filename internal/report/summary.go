package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-tariffpatch"
)

// Summary describes one run for the closing report.
type Summary struct {
	OldRate    int
	NewRate    int
	Prices     []tariffpatch.PriceChange
	BackupPath string // Empty when no backup was written
	DryRun     bool
}

// Summarize builds a Summary from a patch result.
func Summarize(result *tariffpatch.Result, backupPath string, dryRun bool) Summary {
	return Summary{
		OldRate:    result.OldRate,
		NewRate:    result.NewRate,
		Prices:     result.Prices,
		BackupPath: backupPath,
		DryRun:     dryRun,
	}
}

// WriteSummary prints one line per change:
//
//	Updated tariff rate from 145% to 10%
//	Updated Model 100 tax to $34
//	Skipped Atreus tax (marker not found)
//	Backup created at post.html.bak
func WriteSummary(w io.Writer, p *Palette, s Summary) error {
	var b strings.Builder

	p.OK.Fprintf(&b, "Updated tariff rate from %d%% to %d%%", s.OldRate, s.NewRate)
	b.WriteString("\n")

	for _, c := range s.Prices {
		if c.Applied {
			p.OK.Fprintf(&b, "Updated %s tax to $%d", c.Product, c.NewValue)
		} else {
			p.Warn.Fprintf(&b, "Skipped %s tax (marker not found)", c.Product)
		}
		b.WriteString("\n")
	}

	if s.BackupPath != "" {
		fmt.Fprintf(&b, "Backup created at %s\n", s.BackupPath)
	}
	if s.DryRun {
		p.Dim.Fprint(&b, "Dry run: no files were written")
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
