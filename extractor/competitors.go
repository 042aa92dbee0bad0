package extractor

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"shopify-insights/internal/types"
	"shopify-insights/utils"

	"github.com/PuerkitoBio/goquery"
)

// CompetitorFinder discovers storefronts similar to a seed site through a web search
type CompetitorFinder struct {
	httpClient *utils.HTTPClient
	config     *types.Config
	logger     types.Logger
}

// NewCompetitorFinder creates a finder that queries config.SearchEndpoint
func NewCompetitorFinder(config *types.Config, logger types.Logger) *CompetitorFinder {
	return &CompetitorFinder{
		httpClient: utils.NewHTTPClient(config, logger),
		config:     config,
		logger:     logger,
	}
}

// Find returns up to maxResults distinct origins of result links that mention
// shopify. Any failure yields an empty list.
func (f *CompetitorFinder) Find(ctx context.Context, seedURL string, maxResults int) []string {
	origins := []string{}
	if maxResults <= 0 {
		return origins
	}

	query := "shopify similar stores"
	if brand := f.brandName(ctx, utils.EnsureScheme(seedURL)); brand != "" {
		query = brand + " similar stores"
	}
	f.logger.Debugf("Searching competitors with query %q", query)

	body, err := f.httpClient.PostForm(ctx, f.config.SearchEndpoint, url.Values{"q": {query}})
	if err != nil {
		f.logger.Warnf("Competitor search failed: %v", err)
		return origins
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		f.logger.Warnf("Failed to parse search results: %v", err)
		return origins
	}

	var links []string
	doc.Find("a[href]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if strings.HasPrefix(href, "http") && strings.Contains(href, "shopify") {
			links = append(links, href)
		}
		return len(links) < maxResults
	})

	seen := make(map[string]bool)
	for _, link := range links {
		origin, err := utils.Origin(link)
		if err != nil || seen[origin] {
			continue
		}
		seen[origin] = true
		origins = append(origins, origin)
	}

	f.logger.Infof("Found %d competitor candidates for %s", len(origins), seedURL)
	return origins
}

// brandName is the seed page title up to the first "|"
func (f *CompetitorFinder) brandName(ctx context.Context, seedURL string) string {
	html, err := f.httpClient.GetText(ctx, seedURL)
	if err != nil {
		f.logger.Debugf("Failed to fetch seed page %s: %v", seedURL, err)
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	title := doc.Find("title").First().Text()
	if i := strings.Index(title, "|"); i >= 0 {
		title = title[:i]
	}
	return strings.TrimSpace(title)
}

// Close cleans up resources
func (f *CompetitorFinder) Close() {
	f.httpClient.Close()
}
