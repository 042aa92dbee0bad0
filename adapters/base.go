package adapters

import (
	"context"
	"strings"

	"shopify-insights/internal/types"
	"shopify-insights/utils"

	"github.com/PuerkitoBio/goquery"
)

// BaseAdapter provides the fetch and parse plumbing shared by platform adapters.
// Page HTML goes through the headless browser when UseHeadlessBrowser is set;
// machine-readable endpoints always use the plain HTTP client.
type BaseAdapter struct {
	config        *types.Config
	logger        types.Logger
	httpClient    *utils.HTTPClient
	browserClient *utils.BrowserClient
}

// NewBaseAdapter creates a new base adapter with initialized HTTP and browser clients.
func NewBaseAdapter(config *types.Config, logger types.Logger) *BaseAdapter {
	return &BaseAdapter{
		config:        config,
		logger:        logger,
		httpClient:    utils.NewHTTPClient(config, logger),
		browserClient: utils.NewBrowserClient(config, logger),
	}
}

// GetPageContent retrieves the HTML content of a page using either HTTP client or headless browser.
func (b *BaseAdapter) GetPageContent(ctx context.Context, url string) (string, error) {
	if b.config.UseHeadlessBrowser {
		return b.browserClient.GetPageContent(ctx, url)
	}
	return b.httpClient.GetText(ctx, url)
}

// ParseHTML parses HTML content into a goquery document
func (b *BaseAdapter) ParseHTML(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// Close cleans up resources
func (b *BaseAdapter) Close() {
	if b.httpClient != nil {
		b.httpClient.Close()
	}
}
