package inspect

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-tariffpatch"
	"github.com/alnah/go-tariffpatch/internal/yamlutil"
)

const samplePost = `<html><head><title>Tariffs</title></head><body>
<h1>What the new tariffs mean for your keyboard</h1>
<p><em><strong>Updated 2025-04-09 18:05 PDT to reflect new 125% tariff rate.</strong></em></p>
<p><em><strong>Updated 2025-04-10 09:00 PDT to reflect new 145% tariff rate and
a <a href="https://example.com">pause</a>.</strong></em></p>
<p><em><strong>Not a note.</strong></em></p>
<p>Goods now face a <s>54%</s> <s>104%</s> <s>125%</s> 145% tariff.</p>
<p>The new US taxes would be <s>$188</s> <s>$363</s> $436 on a Model 100 + additional customs clearance fees. The new US taxes on the Atreus will be <s>$80</s> <s>$155</s> $186.</p>
</body></html>
`

func defaultOptions() Options {
	return Options{
		Products:   tariffpatch.DefaultProducts(),
		RateChain:  tariffpatch.DefaultRateChain,
		PriceChain: tariffpatch.DefaultPriceChain,
	}
}

// ---------------------------------------------------------------------------
// TestInspect - Report contents
// ---------------------------------------------------------------------------

func TestInspect(t *testing.T) {
	t.Parallel()

	r, err := Inspect(samplePost, defaultOptions())
	if err != nil {
		t.Fatalf("Inspect() unexpected error: %v", err)
	}

	want := &Report{
		Title:       "What the new tariffs mean for your keyboard",
		HasRate:     true,
		Rate:        145,
		RateHistory: []string{"54%", "104%", "125%"},
		Prices: []Price{
			{Product: "Model 100", Found: true, Value: 436, History: []string{"$188", "$363"}},
			{Product: "Atreus", Found: true, Value: 186, History: []string{"$80", "$155"}},
		},
		Notes: []string{
			"Updated 2025-04-09 18:05 PDT to reflect new 125% tariff rate.",
			"Updated 2025-04-10 09:00 PDT to reflect new 145% tariff rate and a pause.",
		},
		Superseded: 7,
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("Inspect() mismatch (-want +got):\n%s", diff)
	}
}

func TestInspect_NothingTracked(t *testing.T) {
	t.Parallel()

	r, err := Inspect("<html><head><title>Empty</title></head><body><p>Hi</p></body></html>", defaultOptions())
	if err != nil {
		t.Fatalf("Inspect() unexpected error: %v", err)
	}

	if r.HasRate {
		t.Error("HasRate = true, want false")
	}
	if r.Title != "Empty" {
		t.Errorf("Title = %q, want fallback to <title>", r.Title)
	}
	for _, p := range r.Prices {
		if p.Found {
			t.Errorf("price %s found, want not found", p.Product)
		}
	}
	if r.LastNote() != "" {
		t.Errorf("LastNote() = %q, want empty", r.LastNote())
	}
}

func TestInspect_ShortChain(t *testing.T) {
	t.Parallel()

	post := "<p>Now <s>125%</s> 145%.</p>"

	strict, err := Inspect(post, defaultOptions())
	if err != nil {
		t.Fatalf("Inspect() unexpected error: %v", err)
	}
	if strict.HasRate {
		t.Error("default chain should reject a single superseded rate")
	}

	opts := defaultOptions()
	opts.RateChain = 1
	loose, err := Inspect(post, opts)
	if err != nil {
		t.Fatalf("Inspect() unexpected error: %v", err)
	}
	if !loose.HasRate || loose.Rate != 145 {
		t.Errorf("Rate = %d (found %v), want 145", loose.Rate, loose.HasRate)
	}
}

// ---------------------------------------------------------------------------
// TestReport_Write - Text rendering
// ---------------------------------------------------------------------------

func TestReport_Write(t *testing.T) {
	t.Parallel()

	r, err := Inspect(samplePost, defaultOptions())
	if err != nil {
		t.Fatalf("Inspect() unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		t.Fatalf("Write() unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Post:         What the new tariffs mean for your keyboard\n",
		"Active rate:  145%\n",
		"Superseded:   54%, 104%, 125%\n",
		"Model 100:    $436 (was $188, $363)\n",
		"Atreus:       $186 (was $80, $155)\n",
		"Notes:        2\n",
		"Last note:    Updated 2025-04-10 09:00 PDT to reflect new 145% tariff rate and a pause.\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Write() output missing %q\ngot:\n%s", want, out)
		}
	}
}

func TestReport_WriteMissing(t *testing.T) {
	t.Parallel()

	r := &Report{Prices: []Price{{Product: "Atreus"}}}

	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		t.Fatalf("Write() unexpected error: %v", err)
	}

	want := "Active rate:  not found\nAtreus:       marker not found\nNotes:        0\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Write() mismatch (-want +got):\n%s", diff)
	}
}

func TestReport_WriteYAML(t *testing.T) {
	t.Parallel()

	r, err := Inspect(samplePost, defaultOptions())
	if err != nil {
		t.Fatalf("Inspect() unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := r.WriteYAML(&buf); err != nil {
		t.Fatalf("WriteYAML() unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "rate: 145\n") {
		t.Errorf("WriteYAML() output missing rate\ngot:\n%s", buf.String())
	}

	var got Report
	if err := yamlutil.DecodeStrict(buf.Bytes(), &got); err != nil {
		t.Fatalf("DecodeStrict() unexpected error: %v", err)
	}
	if diff := cmp.Diff(*r, got); diff != "" {
		t.Errorf("YAML report mismatch (-want +got):\n%s", diff)
	}
}
