package pipeline

// samplePost mirrors the structure of the live post: one prior update note,
// a rate chain with three superseded values, and two product price chains.
const samplePost = `<article>
<h1>What the new tariffs mean for your keyboard</h1>
<p><em><strong>Updated 2025-04-09 18:05 PDT to reflect new 125% tariff rate.</strong></em></p>
<p>Goods shipped from China now face a <s>54%</s> <s>104%</s> <s>125%</s> 145% tariff.</p>
<p>The new US taxes would be <s>$188</s> <s>$363</s> $436 on a Model 100 + additional customs clearance fees. The new US taxes on the Atreus will be <s>$80</s> <s>$155</s> $186.</p>
</article>
`

// defaultProducts match the two keyboards tracked in samplePost.
var defaultProducts = []Product{
	{Name: "Model 100", BasePrice: 349, Anchor: "additional customs clearance fees", Position: AnchorBefore},
	{Name: "Atreus", BasePrice: 149, Anchor: "taxes on the Atreus will be", Position: AnchorAfter},
}
