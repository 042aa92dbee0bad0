package adapters

import (
	"encoding/json"
	"strings"

	"shopify-insights/internal/types"

	"github.com/PuerkitoBio/goquery"
)

// ExtractStructuredProducts parses the JSON-LD blocks of a page and returns
// every Product entity found. Blocks that fail to parse are skipped.
func ExtractStructuredProducts(doc *goquery.Document) []types.Product {
	products := []types.Product{}

	doc.Find(`script[type="application/ld+json"]`).Each(func(i int, sel *goquery.Selection) {
		raw := strings.TrimSpace(sel.Text())
		if raw == "" {
			return
		}

		var data any
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return
		}

		obj, ok := data.(map[string]any)
		if !ok || !isProductEntity(obj) {
			return
		}

		product := types.Product{
			Title:  stringValue(obj["name"]),
			Images: imageList(obj["image"]),
			Tags:   []string{},
		}

		if offers, ok := obj["offers"].(map[string]any); ok {
			product.Price = stringValue(offers["price"])
			product.Currency = stringValue(offers["priceCurrency"])
			product.Availability = stringValue(offers["availability"])
		}

		products = append(products, product)
	})

	return products
}

func isProductEntity(obj map[string]any) bool {
	return stringValue(obj["@type"]) == "Product" || stringValue(obj["mainEntityOfPage"]) == "Product"
}

// imageList normalises the JSON-LD image field: a single URL, a list of URLs
// or ImageObjects carrying a url.
func imageList(v any) []string {
	images := []string{}

	switch t := v.(type) {
	case string:
		if t != "" {
			images = append(images, t)
		}
	case []any:
		for _, item := range t {
			if src := imageURL(item); src != "" {
				images = append(images, src)
			}
		}
	case map[string]any:
		if src := imageURL(t); src != "" {
			images = append(images, src)
		}
	}

	return images
}

func imageURL(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		return stringValue(t["url"])
	default:
		return ""
	}
}
