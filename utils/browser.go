package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"shopify-insights/internal/types"
)

// renderSettle gives theme scripts time to inject late footer menus
const renderSettle = 500 * time.Millisecond

// BrowserClient renders storefront pages in a headless browser. It applies
// the same status rules as HTTPClient so both fetch modes fail alike.
type BrowserClient struct {
	config *types.Config
	logger types.Logger
}

// NewBrowserClient creates a new browser client
func NewBrowserClient(config *types.Config, logger types.Logger) *BrowserClient {
	return &BrowserClient{
		config: config,
		logger: logger,
	}
}

// GetPageContent navigates to url and returns the rendered HTML. A document
// response outside 2xx is an error even though the browser renders it.
func (b *BrowserClient) GetPageContent(ctx context.Context, url string) (string, error) {
	browserCtx, cancel := chromedp.NewContext(ctx,
		chromedp.WithLogf(b.logger.Debugf),
		chromedp.WithErrorf(b.logger.Debugf),
	)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, b.config.Timeout)
	defer cancel()

	resp, err := chromedp.RunResponse(browserCtx, chromedp.Navigate(url))
	if err != nil {
		return "", fmt.Errorf("failed to load page: %w", err)
	}
	if err := documentStatus(resp); err != nil {
		return "", err
	}

	var html string
	err = chromedp.Run(browserCtx,
		chromedp.Sleep(renderSettle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("failed to get page content: %w", err)
	}

	b.logger.Debugf("Rendered %s (status %d, %d bytes)", url, resp.Status, len(html))
	return html, nil
}

// documentStatus checks the main document response of a navigation
func documentStatus(resp *network.Response) error {
	if resp == nil {
		return errors.New("no document response")
	}
	return checkStatus(resp.Status)
}
