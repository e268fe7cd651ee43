package pipeline

import (
	"context"
	"strconv"
	"strings"
)

// AnchorPosition tells on which side of its anchor text a price marker sits.
type AnchorPosition string

const (
	// AnchorBefore means the marker precedes the anchor text.
	AnchorBefore AnchorPosition = "before"
	// AnchorAfter means the marker follows the anchor text.
	AnchorAfter AnchorPosition = "after"
)

// Product is a tracked item whose tax amount depends on the tariff rate.
type Product struct {
	Name      string
	BasePrice int
	Anchor    string
	Position  AnchorPosition
}

// PriceChange records the outcome of one product's update.
type PriceChange struct {
	Product  string
	OldValue int  // Active value before the update (zero when skipped)
	NewValue int  // Computed tax for the new rate
	Applied  bool // False when the anchor or marker was not found
}

// Tax returns floor(base * rate / 100) for non-negative inputs. Callers
// bound base and rate so the product fits in 64 bits.
func Tax(base, rate int) int {
	return int(int64(base) * int64(rate) / 100)
}

// PriceUpdater defines the contract for recomputing dependent dollar amounts.
type PriceUpdater interface {
	UpdatePrices(ctx context.Context, htmlContent string, newRate int, products []Product) (string, []PriceChange, error)
}

// PriceRewrite supersedes each product's active dollar value.
type PriceRewrite struct {
	MinChain int // Superseded dollar spans required before the active value
}

// UpdatePrices wraps each product's active value in <s> and appends the
// newly computed tax. Products whose anchor or marker cannot be found are
// left unchanged and reported with Applied=false.
func (p *PriceRewrite) UpdatePrices(ctx context.Context, htmlContent string, newRate int, products []Product) (string, []PriceChange, error) {
	changes := make([]PriceChange, 0, len(products))

	for _, prod := range products {
		if err := ctx.Err(); err != nil {
			return "", nil, err
		}

		change := PriceChange{Product: prod.Name, NewValue: Tax(prod.BasePrice, newRate)}

		if m, ok := p.locate(htmlContent, prod); ok {
			change.OldValue = m.Value
			change.Applied = true
			newText := Strike(htmlContent[m.ValueStart:m.End]) + chainSep + "$" + strconv.Itoa(change.NewValue)
			htmlContent = htmlContent[:m.ValueStart] + newText + htmlContent[m.End:]
		}

		changes = append(changes, change)
	}

	return htmlContent, changes, nil
}

// maxAnchorGap bounds the bytes allowed between a price marker and its anchor.
const maxAnchorGap = 64

// blockBoundaries are tag openings that end the sentence holding an anchor.
var blockBoundaries = []string{
	"<p", "</p", "<li", "</li", "<div", "</div", "<h", "</h",
	"<td", "</td", "<tr", "</tr", "<br", "<section", "</section",
}

// FindPriceMarker returns the marker nearest to the first occurrence of the
// product's anchor, on the side given by its position. The marker must sit in
// the anchor's sentence: at most maxAnchorGap bytes away, with no block
// boundary in between.
func FindPriceMarker(htmlContent string, prod Product, minChain int) (Marker, bool) {
	if prod.Anchor == "" {
		return Marker{}, false
	}
	idx := strings.Index(htmlContent, prod.Anchor)
	if idx < 0 {
		return Marker{}, false
	}

	if prod.Position == AnchorAfter {
		after := idx + len(prod.Anchor)
		markers := findPriceMarkers(htmlContent[after:], after, minChain)
		if len(markers) == 0 || !nearAnchor(htmlContent[after:markers[0].Start]) {
			return Marker{}, false
		}
		return markers[0], true
	}

	markers := findPriceMarkers(htmlContent[:idx], 0, minChain)
	if len(markers) == 0 {
		return Marker{}, false
	}
	m := markers[len(markers)-1]
	if !nearAnchor(htmlContent[m.End:idx]) {
		return Marker{}, false
	}
	return m, true
}

// nearAnchor reports whether gap keeps a marker in the same sentence as its anchor.
func nearAnchor(gap string) bool {
	if len(gap) > maxAnchorGap {
		return false
	}
	lower := strings.ToLower(gap)
	for _, b := range blockBoundaries {
		if strings.Contains(lower, b) {
			return false
		}
	}
	return true
}

func (p *PriceRewrite) locate(htmlContent string, prod Product) (Marker, bool) {
	return FindPriceMarker(htmlContent, prod, p.MinChain)
}
