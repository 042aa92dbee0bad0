package adapters

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"shopify-insights/internal/types"
	"shopify-insights/utils"
)

// ShopifyAdapter detects Shopify storefronts and reads their public catalog feed
type ShopifyAdapter struct {
	*BaseAdapter
	signals types.PlatformSignals
}

// NewShopifyAdapter creates a new Shopify adapter
func NewShopifyAdapter(config *types.Config, logger types.Logger) *ShopifyAdapter {
	return &ShopifyAdapter{
		BaseAdapter: NewBaseAdapter(config, logger),
		signals:     ShopifySignals,
	}
}

// Signals returns the Shopify signal table
func (s *ShopifyAdapter) Signals() types.PlatformSignals {
	return s.signals
}

// IsPlatform runs the detection heuristic: CDN host in the homepage, then a
// non-empty catalog feed, then the platform name in the homepage. The first
// positive check wins. A homepage that cannot be fetched counts as negative.
func (s *ShopifyAdapter) IsPlatform(ctx context.Context, origin, homepageHTML string) bool {
	html := homepageHTML
	if html == "" {
		var err error
		html, err = s.GetPageContent(ctx, origin)
		if err != nil {
			s.logger.Debugf("Platform detection could not fetch %s: %v", origin, err)
			return false
		}
	}

	if HasSignal(html, s.signals.CDNHost) {
		s.logger.Debugf("Detected %s via CDN host on %s", s.signals.Name, origin)
		return true
	}

	if len(s.FetchCatalog(ctx, origin)) > 0 {
		s.logger.Debugf("Detected %s via catalog feed on %s", s.signals.Name, origin)
		return true
	}

	return HasSignal(html, s.signals.Name)
}

// HasSignal reports whether html contains needle, ignoring case
func HasSignal(html, needle string) bool {
	return strings.Contains(strings.ToLower(html), strings.ToLower(needle))
}

// FetchCatalog returns the raw product records of the catalog feed.
// Any request or decode failure yields an empty list.
func (s *ShopifyAdapter) FetchCatalog(ctx context.Context, origin string) []map[string]any {
	feedURL := utils.ResolveURL(origin, s.signals.FeedPath)

	body, err := s.httpClient.Get(ctx, feedURL)
	if err != nil {
		s.logger.Debugf("Catalog feed unavailable at %s: %v", feedURL, err)
		return []map[string]any{}
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		s.logger.Debugf("Catalog feed at %s is not JSON: %v", feedURL, err)
		return []map[string]any{}
	}

	var products []map[string]any
	if raw, ok := envelope[s.signals.FeedKey]; ok {
		if err := json.Unmarshal(raw, &products); err != nil {
			s.logger.Debugf("Catalog feed at %s has malformed %q: %v", feedURL, s.signals.FeedKey, err)
			return []map[string]any{}
		}
	}
	if products == nil {
		return []map[string]any{}
	}

	s.logger.Debugf("Catalog feed at %s returned %d products", feedURL, len(products))
	return products
}

// CatalogProducts maps raw feed records to products. Product URLs join the
// origin with the platform's product path and the record handle.
func CatalogProducts(origin string, signals types.PlatformSignals, records []map[string]any) []types.Product {
	products := make([]types.Product, 0, len(records))

	for _, record := range records {
		product := types.Product{
			Title:  stringValue(record["title"]),
			Handle: stringValue(record["handle"]),
			Images: []string{},
			Tags:   splitTags(record["tags"]),
		}

		if product.Handle != "" {
			product.URL = utils.ResolveURL(origin, signals.ProductPath+product.Handle)
		}

		if images, ok := record["images"].([]any); ok {
			for _, img := range images {
				m, ok := img.(map[string]any)
				if !ok {
					continue
				}
				if src := stringValue(m["src"]); src != "" {
					product.Images = append(product.Images, src)
				}
			}
		}

		if variants, ok := record["variants"].([]any); ok && len(variants) > 0 {
			if variant, ok := variants[0].(map[string]any); ok {
				product.Price = stringValue(variant["price"])
				product.SKU = stringValue(variant["sku"])
				if available, ok := variant["available"].(bool); ok {
					product.Availability = availabilityLabel(available)
				}
			}
		}

		products = append(products, product)
	}

	return products
}

// splitTags accepts the feed's comma-separated tag string or a JSON list of tags
func splitTags(v any) []string {
	tags := []string{}

	switch t := v.(type) {
	case string:
		for _, tag := range strings.Split(t, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	case []any:
		for _, item := range t {
			if tag := strings.TrimSpace(stringValue(item)); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	return tags
}

func availabilityLabel(available bool) string {
	if available {
		return "in_stock"
	}
	return "out_of_stock"
}

// stringValue renders JSON scalars as strings; anything else becomes ""
func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
