package tariffpatch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-tariffpatch/internal/dateutil"
	"github.com/alnah/go-tariffpatch/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.NoteInserter = (*pipeline.NoteInsertion)(nil)
	_ pipeline.RateUpdater  = (*pipeline.RateRewrite)(nil)
	_ pipeline.PriceUpdater = (*pipeline.PriceRewrite)(nil)
	_ pipeline.NoteRenderer = (*pipeline.MarkdownNote)(nil)
	_ pipeline.NoteRenderer = pipeline.RawNote{}
)

// Patcher orchestrates the note, rate and price stages.
// Create with NewPatcher and reuse it for any number of posts.
type Patcher struct {
	cfg          patcherConfig
	noteInserter pipeline.NoteInserter
	rateUpdater  pipeline.RateUpdater
	priceUpdater pipeline.PriceUpdater
}

// NewPatcher creates a Patcher with the defaults of the live post.
// Use options to customize behavior (e.g., WithProducts, WithRateScope).
// Returns error if an option value is invalid.
func NewPatcher(opts ...Option) (*Patcher, error) {
	p := &Patcher{
		cfg: patcherConfig{
			now:        time.Now,
			format:     dateutil.DefaultFormat,
			products:   DefaultProducts(),
			scope:      ScopeAll,
			rateChain:  DefaultRateChain,
			priceChain: DefaultPriceChain,
		},
	}

	for _, opt := range opts {
		opt(p)
	}

	if err := p.cfg.validate(); err != nil {
		return nil, err
	}

	// Create stages from configuration (if not injected by tests)
	if p.noteInserter == nil {
		layout, err := dateutil.ResolveLayout(p.cfg.format)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTimestampFormat, err)
		}
		var renderer pipeline.NoteRenderer = pipeline.NewMarkdownNote()
		if p.cfg.rawNotes {
			renderer = pipeline.RawNote{}
		}
		p.noteInserter = pipeline.NewNoteInsertion(layout, p.cfg.location, renderer)
	}

	if p.rateUpdater == nil {
		p.rateUpdater = &pipeline.RateRewrite{
			Scope:    pipeline.RateScope(p.cfg.scope),
			MinChain: p.cfg.rateChain,
		}
	}

	if p.priceUpdater == nil {
		p.priceUpdater = &pipeline.PriceRewrite{MinChain: p.cfg.priceChain}
	}

	return p, nil
}

// validate checks option values that do not depend on the stages.
func (c *patcherConfig) validate() error {
	if _, err := dateutil.ResolveLayout(c.format); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimestampFormat, err)
	}
	if _, err := ParseRateScope(string(c.scope)); err != nil {
		return err
	}
	if c.rateChain < 0 || c.rateChain > maxChain {
		return fmt.Errorf("%w: rate chain %d (must be 0-%d)", ErrInvalidChain, c.rateChain, maxChain)
	}
	if c.priceChain < 0 || c.priceChain > maxChain {
		return fmt.Errorf("%w: price chain %d (must be 0-%d)", ErrInvalidChain, c.priceChain, maxChain)
	}
	for _, prod := range c.products {
		if err := prod.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Products returns a copy of the tracked products.
func (p *Patcher) Products() []Product {
	return append([]Product(nil), p.cfg.products...)
}

// Patch finds the active rate and applies the note, rate and price stages.
// The context is checked between stages. No stage runs when the active rate
// cannot be found, so callers can skip writing on any error.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (p *Patcher) Patch(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	oldRate, err := pipeline.FindActiveRate(input.HTML, p.cfg.rateChain)
	if err != nil {
		return nil, err
	}

	now := p.cfg.now()

	// Insert the update note first so it lands above the rate edits
	htmlContent, err := p.noteInserter.InsertNote(ctx, input.HTML, &pipeline.NoteData{
		Rate: input.Rate,
		Note: input.Note,
		Time: now,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrNoteRender, err)
	}

	// Supersede the old rate
	htmlContent, sites, err := p.rateUpdater.UpdateRate(ctx, htmlContent, oldRate, input.Rate)
	if err != nil {
		return nil, fmt.Errorf("updating rate: %w", err)
	}

	// Recompute dependent taxes
	htmlContent, changes, err := p.priceUpdater.UpdatePrices(ctx, htmlContent, input.Rate, toPipelineProducts(p.cfg.products))
	if err != nil {
		return nil, fmt.Errorf("updating prices: %w", err)
	}

	return &Result{
		HTML:      htmlContent,
		OldRate:   oldRate,
		NewRate:   input.Rate,
		UpdatedAt: now,
		RateSites: sites,
		Prices:    fromPipelineChanges(changes),
	}, nil
}

// ActiveRate returns the rate currently shown by the post.
func (p *Patcher) ActiveRate(htmlContent string) (int, error) {
	return pipeline.FindActiveRate(htmlContent, p.cfg.rateChain)
}

func validateInput(input Input) error {
	if strings.TrimSpace(input.HTML) == "" {
		return ErrEmptyDocument
	}
	if input.Rate < 0 || input.Rate > MaxRate {
		return fmt.Errorf("%w: %d (must be 0-%d)", ErrInvalidRate, input.Rate, MaxRate)
	}
	return nil
}

func toPipelineProducts(products []Product) []pipeline.Product {
	out := make([]pipeline.Product, len(products))
	for i, p := range products {
		out[i] = pipeline.Product{
			Name:      p.Name,
			BasePrice: p.BasePrice,
			Anchor:    p.Anchor,
			Position:  pipeline.AnchorPosition(p.Position),
		}
	}
	return out
}

func fromPipelineChanges(changes []pipeline.PriceChange) []PriceChange {
	out := make([]PriceChange, len(changes))
	for i, c := range changes {
		out[i] = PriceChange{
			Product:  c.Product,
			OldValue: c.OldValue,
			NewValue: c.NewValue,
			Applied:  c.Applied,
		}
	}
	return out
}
