package adapters

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"shopify-insights/internal/types"
)

func TestExtractFAQPairs_Details(t *testing.T) {
	html := `<main>
<details><summary> Do you ship worldwide? </summary><p>Yes, to 40 countries.</p></details>
<details><p>No summary here</p></details>
<details><summary></summary><p>Empty summary</p></details>
</main>`

	faqs := ExtractFAQPairs(mustDoc(t, html))
	require.Len(t, faqs, 1)
	assert.Equal(t, "Do you ship worldwide?", faqs[0].Question)
	assert.Equal(t, "Yes, to 40 countries.", faqs[0].Answer)
}

func TestExtractFAQPairs_Headings(t *testing.T) {
	html := `<section>
<h5>Not a question level</h5><p>ignored</p>
<h2>How long is delivery?</h2><p>3-5 business days.</p>
<h3>Can I return sale items?</h3><div><span>Only</span> <span>store credit.</span></div>
<h4>Last heading</h4>
</section>`

	faqs := ExtractFAQPairs(mustDoc(t, html))
	require.Len(t, faqs, 2)

	assert.Equal(t, types.FAQ{Question: "How long is delivery?", Answer: "3-5 business days."}, faqs[0])
	assert.Equal(t, types.FAQ{Question: "Can I return sale items?", Answer: "Only store credit."}, faqs[1])
}

func TestExtractFAQPairs_StrategiesAreDeduplicated(t *testing.T) {
	html := `<div>
<details><summary>Returns?</summary>30 days</details>
<details><summary>Returns?</summary>30 days</details>
<h2>Returns?</h2><p>30 days</p>
<h2>Returns?</h2><p>30 days</p>
</div>`

	faqs := ExtractFAQPairs(mustDoc(t, html))

	// one pair per strategy with identical (question, answer) collapse to one
	require.Len(t, faqs, 1)
	assert.Equal(t, "Returns?", faqs[0].Question)
	assert.Equal(t, "30 days", faqs[0].Answer)
}

func TestDedupeFAQs_TruncatedKey(t *testing.T) {
	long := strings.Repeat("q", 130)
	faqs := []types.FAQ{
		{Question: long + "A", Answer: "same"},
		{Question: long + "B", Answer: "same"},
		{Question: "short", Answer: "same"},
	}

	out := DedupeFAQs(faqs)
	require.Len(t, out, 2)
	assert.Equal(t, long+"A", out[0].Question)
	assert.Equal(t, "short", out[1].Question)
}
