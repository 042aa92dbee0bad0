package adapters

import (
	"strings"

	"shopify-insights/internal/types"
	"shopify-insights/utils"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// faqKeyLength bounds how much of a question and answer takes part in dedup
const faqKeyLength = 120

// ExtractFAQPairs pulls question/answer pairs from a page using two strategies,
// collapsible details/summary blocks and h2-h4 headings followed by a sibling,
// and returns their concatenation with duplicates removed.
func ExtractFAQPairs(doc *goquery.Document) []types.FAQ {
	var pairs []types.FAQ

	doc.Find("details").Each(func(i int, d *goquery.Selection) {
		summary := d.Find("summary").First()
		if summary.Length() == 0 {
			return
		}
		question := strippedText(summary, "")
		if question == "" {
			return
		}
		answer := strings.TrimSpace(strings.ReplaceAll(strippedText(d, " "), question, ""))
		pairs = append(pairs, types.FAQ{Question: question, Answer: answer})
	})

	doc.Find("h2, h3, h4").Each(func(i int, h *goquery.Selection) {
		question := strippedText(h, " ")
		next := h.Next()
		if question == "" || next.Length() == 0 {
			return
		}
		pairs = append(pairs, types.FAQ{Question: question, Answer: strippedText(next, " ")})
	})

	return DedupeFAQs(pairs)
}

// DedupeFAQs keeps the first FAQ for every truncated (question, answer) key
func DedupeFAQs(faqs []types.FAQ) []types.FAQ {
	seen := make(map[string]bool)
	out := []types.FAQ{}

	for _, faq := range faqs {
		key := FAQKey(faq)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, faq)
	}

	return out
}

// FAQKey builds the dedup key of an FAQ
func FAQKey(faq types.FAQ) string {
	return utils.Truncate(faq.Question, faqKeyLength) + "\x00" + utils.Truncate(faq.Answer, faqKeyLength)
}

// strippedText joins the trimmed, non-empty text nodes under sel with sep
func strippedText(sel *goquery.Selection, sep string) string {
	var parts []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
			return
		}
		if n.Type == html.CommentNode {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, sep)
}
