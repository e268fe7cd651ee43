package tariffpatch

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-tariffpatch/internal/pipeline"
)

// Input contains the data for one patch run.
type Input struct {
	HTML string // Full post content (required)
	Rate int    // New tariff rate in percent (must be >= 0)
	Note string // Optional free text appended to the update note
}

// Result contains the patched post and what changed.
type Result struct {
	HTML      string        // Patched post content
	OldRate   int           // Rate that was active before the run
	NewRate   int           // Rate now active
	UpdatedAt time.Time     // Timestamp stamped into the update note
	RateSites int           // Occurrences of the old rate that were superseded
	Prices    []PriceChange // One entry per configured product, in order
}

// Position tells on which side of its anchor text a price marker sits.
type Position string

const (
	PositionBefore Position = "before" // Marker precedes the anchor
	PositionAfter  Position = "after"  // Marker follows the anchor
)

// Product is a tracked item whose tax follows the tariff rate.
type Product struct {
	Name      string
	BasePrice int      // Price the tax is computed from, in whole dollars
	Anchor    string   // Text that identifies the marker location
	Position  Position // Side of the anchor holding the marker
}

// Validate checks that the product can be located and priced.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidProduct)
	}
	if p.BasePrice < 0 || p.BasePrice > MaxBasePrice {
		return fmt.Errorf("%w: %s: base price %d (must be 0-%d)", ErrInvalidProduct, p.Name, p.BasePrice, MaxBasePrice)
	}
	if p.Anchor == "" {
		return fmt.Errorf("%w: %s: anchor cannot be empty", ErrInvalidProduct, p.Name)
	}
	switch p.Position {
	case PositionBefore, PositionAfter:
	default:
		return fmt.Errorf("%w: %s: %q (must be before or after)", ErrInvalidPosition, p.Name, p.Position)
	}
	return nil
}

// Tax returns the tax owed on the product at rate percent, rounded down.
func (p Product) Tax(rate int) int {
	return pipeline.Tax(p.BasePrice, rate)
}

// DefaultProducts returns the keyboards tracked by the keyboard launch post.
func DefaultProducts() []Product {
	return []Product{
		{Name: "Model 100", BasePrice: 349, Anchor: "additional customs clearance fees", Position: PositionBefore},
		{Name: "Atreus", BasePrice: 149, Anchor: "taxes on the Atreus will be", Position: PositionAfter},
	}
}

// PriceChange reports the outcome for one product.
type PriceChange struct {
	Product  string
	OldValue int  // Active value before the run (zero when skipped)
	NewValue int  // Computed tax for the new rate
	Applied  bool // False when the anchor or marker was not found
}

// RateScope selects which occurrences of the old rate get superseded.
type RateScope string

const (
	// ScopeAll supersedes every standalone occurrence of the old rate.
	ScopeAll RateScope = RateScope(pipeline.ScopeAll)
	// ScopeChain supersedes only occurrences that follow a rate chain.
	ScopeChain RateScope = RateScope(pipeline.ScopeChain)
)

// ParseRateScope converts a user-supplied scope name. Empty means ScopeAll.
func ParseRateScope(s string) (RateScope, error) {
	scope, err := pipeline.ParseRateScope(s)
	return RateScope(scope), err
}

// Option configures a Patcher.
type Option func(*Patcher)

// patcherConfig holds internal configuration for Patcher.
type patcherConfig struct {
	now        func() time.Time
	format     string
	location   *time.Location
	products   []Product
	scope      RateScope
	rateChain  int
	priceChain int
	rawNotes   bool
}

// Chain defaults: the live post already carries three superseded rates.
const (
	DefaultRateChain  = 3
	DefaultPriceChain = 1
	maxChain          = 50
)

// Bounds that keep base*rate well inside int range.
const (
	MaxRate      = 10000
	MaxBasePrice = 1000000
)

// WithClock sets the time source used for update-note timestamps.
// Panics if now is nil (programmer error).
func WithClock(now func() time.Time) Option {
	if now == nil {
		panic("tariffpatch: WithClock requires a non-nil function")
	}
	return func(p *Patcher) {
		p.cfg.now = now
	}
}

// WithTimestampFormat sets the timestamp format using friendly tokens
// (YYYY, MM, DD, HH, mm, [literal]) or a preset name ("iso", "long").
// An invalid format makes NewPatcher fail with ErrInvalidTimestampFormat.
func WithTimestampFormat(format string) Option {
	return func(p *Patcher) {
		p.cfg.format = format
	}
}

// WithLocation sets the time zone timestamps are rendered in.
// Nil keeps the clock's own location.
func WithLocation(loc *time.Location) Option {
	return func(p *Patcher) {
		p.cfg.location = loc
	}
}

// WithProducts replaces the tracked products.
func WithProducts(products ...Product) Option {
	return func(p *Patcher) {
		p.cfg.products = append([]Product(nil), products...)
	}
}

// WithRateScope sets which occurrences of the old rate are superseded.
func WithRateScope(scope RateScope) Option {
	return func(p *Patcher) {
		p.cfg.scope = scope
	}
}

// WithMinRateChain sets how many superseded rates must precede the active one.
func WithMinRateChain(n int) Option {
	return func(p *Patcher) {
		p.cfg.rateChain = n
	}
}

// WithMinPriceChain sets how many superseded amounts must precede a product's
// active value.
func WithMinPriceChain(n int) Option {
	return func(p *Patcher) {
		p.cfg.priceChain = n
	}
}

// WithRawNotes inserts note text verbatim instead of rendering it as
// inline Markdown.
func WithRawNotes() Option {
	return func(p *Patcher) {
		p.cfg.rawNotes = true
	}
}
