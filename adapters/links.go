package adapters

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LinkCategory names a semantic bucket for anchors found on a page
type LinkCategory string

const (
	LinkPolicy  LinkCategory = "policy"
	LinkFAQ     LinkCategory = "faq"
	LinkContact LinkCategory = "contact"
	LinkAbout   LinkCategory = "about"
	LinkTrack   LinkCategory = "track"
	LinkBlog    LinkCategory = "blog"
	LinkSitemap LinkCategory = "sitemap"
)

type linkRule struct {
	category LinkCategory
	keywords []string
}

// Categories are independent: one anchor can land in several buckets.
var linkRules = []linkRule{
	{LinkPolicy, []string{"privacy", "refund", "return", "terms", "shipping"}},
	{LinkFAQ, []string{"faq"}},
	{LinkContact, []string{"contact"}},
	{LinkAbout, []string{"about"}},
	{LinkTrack, []string{"track"}},
	{LinkBlog, []string{"blog"}},
	{LinkSitemap, []string{"sitemap"}},
}

// LinkBuckets maps each category to its raw hrefs in document order.
// Duplicates are preserved.
type LinkBuckets map[LinkCategory][]string

// Get returns the hrefs of a category, never nil
func (b LinkBuckets) Get(category LinkCategory) []string {
	if hrefs, ok := b[category]; ok {
		return hrefs
	}
	return []string{}
}

// First returns the first href of a category, or ""
func (b LinkBuckets) First(category LinkCategory) string {
	if hrefs := b[category]; len(hrefs) > 0 {
		return hrefs[0]
	}
	return ""
}

// ClassifyLinks buckets every anchor of the document by keywords in its visible text
func ClassifyLinks(doc *goquery.Document) LinkBuckets {
	buckets := LinkBuckets{}

	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		text := strings.ToLower(strings.TrimSpace(s.Text()))
		if text == "" {
			return
		}

		for _, rule := range linkRules {
			if containsAny(text, rule.keywords) {
				buckets[rule.category] = append(buckets[rule.category], href)
			}
		}
	})

	return buckets
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
