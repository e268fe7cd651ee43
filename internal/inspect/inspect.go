// Package inspect produces a read-only report of a post's tracked values:
// the active rate and its history, each product's tax chain, and the
// update notes already published.
package inspect

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/alnah/go-tariffpatch"
	"github.com/alnah/go-tariffpatch/internal/pipeline"
	"github.com/alnah/go-tariffpatch/internal/yamlutil"
)

// ErrParse indicates the post could not be parsed as HTML.
var ErrParse = errors.New("failed to parse post")

// noteSelector matches the <strong> inside an update-note paragraph.
const noteSelector = "p > em > strong"

// Report describes the state of a post.
type Report struct {
	Title       string   `yaml:"title,omitempty"`
	HasRate     bool     `yaml:"hasRate"`
	Rate        int      `yaml:"rate,omitempty"`
	RateHistory []string `yaml:"rateHistory,omitempty"` // Superseded rates, oldest first
	Prices      []Price  `yaml:"prices,omitempty"`
	Notes       []string `yaml:"notes,omitempty"` // Update-note texts, in document order
	Superseded  int      `yaml:"superseded"`      // Number of <s> elements
}

// Price describes one product's tax chain.
type Price struct {
	Product string   `yaml:"product"`
	Found   bool     `yaml:"found"`
	Value   int      `yaml:"value,omitempty"`
	History []string `yaml:"history,omitempty"`
}

// Options controls how markers are matched.
type Options struct {
	Products   []tariffpatch.Product
	RateChain  int
	PriceChain int
}

// Inspect builds a Report for htmlContent.
func Inspect(htmlContent string, opts Options) (*Report, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	r := &Report{
		Title:      strings.TrimSpace(doc.Find("h1").First().Text()),
		Superseded: doc.Find("s").Length(),
	}
	if r.Title == "" {
		r.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	doc.Find(noteSelector).Each(func(_ int, s *goquery.Selection) {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if strings.HasPrefix(text, "Updated ") {
			r.Notes = append(r.Notes, text)
		}
	})

	if m, ok := pipeline.FindRateMarker(htmlContent, opts.RateChain); ok {
		r.HasRate = true
		r.Rate = m.Value
		r.RateHistory = m.History
	}

	for _, prod := range opts.Products {
		p := Price{Product: prod.Name}
		m, ok := pipeline.FindPriceMarker(htmlContent, pipeline.Product{
			Name:      prod.Name,
			BasePrice: prod.BasePrice,
			Anchor:    prod.Anchor,
			Position:  pipeline.AnchorPosition(prod.Position),
		}, opts.PriceChain)
		if ok {
			p.Found = true
			p.Value = m.Value
			p.History = m.History
		}
		r.Prices = append(r.Prices, p)
	}

	return r, nil
}

// LastNote returns the most recent update note, or "" when there is none.
func (r *Report) LastNote() string {
	if len(r.Notes) == 0 {
		return ""
	}
	return r.Notes[len(r.Notes)-1]
}

// Write prints the report as aligned "label: value" lines.
func (r *Report) Write(w io.Writer) error {
	var b strings.Builder

	if r.Title != "" {
		fmt.Fprintf(&b, "Post:         %s\n", r.Title)
	}
	if r.HasRate {
		fmt.Fprintf(&b, "Active rate:  %d%%\n", r.Rate)
		fmt.Fprintf(&b, "Superseded:   %s\n", joinOrNone(r.RateHistory))
	} else {
		b.WriteString("Active rate:  not found\n")
	}
	for _, p := range r.Prices {
		if p.Found {
			fmt.Fprintf(&b, "%-13s $%d (was %s)\n", p.Product+":", p.Value, joinOrNone(p.History))
		} else {
			fmt.Fprintf(&b, "%-13s marker not found\n", p.Product+":")
		}
	}
	fmt.Fprintf(&b, "Notes:        %d\n", len(r.Notes))
	if last := r.LastNote(); last != "" {
		fmt.Fprintf(&b, "Last note:    %s\n", last)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteYAML prints the report as a YAML document for scripts.
func (r *Report) WriteYAML(w io.Writer) error {
	out, err := yamlutil.Encode(r)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
