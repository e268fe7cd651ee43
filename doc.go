// Package tariffpatch updates a static HTML blog post that tracks a tariff
// rate and the taxes that depend on it.
//
// # Quick Start
//
// Create a patcher and apply a new rate to the post content:
//
//	p, err := tariffpatch.NewPatcher()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := p.Patch(ctx, tariffpatch.Input{
//	    HTML: string(post),
//	    Rate: 10,
//	    Note: "a 90-day pause",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("post.html", []byte(result.HTML), 0o644)
//
// # Markup Conventions
//
// The post records history inline. A value that is no longer current is
// wrapped in <s>...</s> and followed by a single space and its replacement:
//
//	<s>54%</s> <s>104%</s> <s>125%</s> 145%
//	<s>$188</s> <s>$363</s> $436
//
// Update notes are paragraphs of the form
//
//	<p><em><strong>Updated {timestamp} to reflect new {rate}% tariff rate.</strong></em></p>
//
// # Patch Pipeline
//
// Patch finds the active rate and then applies, in order:
//
//  1. Update-note insertion after the last existing note
//  2. Rate update: each "{old}%" outside <s> becomes "<s>{old}%</s> {new}%"
//  3. Price update: each product's active "$N" is superseded by its new tax
//
// Everything outside the edited spots is preserved byte for byte. Running
// the same rate update twice never wraps a value twice.
//
// # Configuration
//
// Use functional options to customize the patcher:
//
//	p, err := tariffpatch.NewPatcher(
//	    tariffpatch.WithTimestampFormat("YYYY-MM-DD HH:mm [UTC]"),
//	    tariffpatch.WithLocation(time.UTC),
//	    tariffpatch.WithRateScope(tariffpatch.ScopeChain),
//	    tariffpatch.WithProducts(tariffpatch.Product{
//	        Name:      "Atreus",
//	        BasePrice: 149,
//	        Anchor:    "taxes on the Atreus will be",
//	        Position:  tariffpatch.PositionAfter,
//	    }),
//	)
//
// # Errors
//
// Patch returns ErrRateNotFound when the post has no rate marker with enough
// history; in that case nothing should be written. A product whose anchor or
// marker is missing is not an error: it is reported in Result.Prices with
// Applied set to false. A marker only belongs to an anchor when it sits in
// the same sentence, a few words away with no block tag in between.
package tariffpatch
