package adapters

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractStructuredProducts(t *testing.T) {
	html := `<html><head>
<script type="application/ld+json">{"@type":"Organization","name":"Acme"}</script>
<script type="application/ld+json">{"@type":"Product","name":"Linen Shirt","image":"https://cdn.example.com/shirt.jpg",
  "offers":{"@type":"Offer","price":"49.00","priceCurrency":"USD","availability":"https://schema.org/InStock"}}</script>
<script type="application/ld+json">{ this is not json </script>
<script type="application/ld+json">{"mainEntityOfPage":"Product","name":"Tote","image":["https://a/1.jpg","https://a/2.jpg"],"offers":[{"price":"9"}]}</script>
<script type="application/ld+json">[{"@type":"Product","name":"In an array"}]</script>
<script type="application/json">{"@type":"Product","name":"Wrong script type"}</script>
</head><body></body></html>`

	products := ExtractStructuredProducts(mustDoc(t, html))
	require.Len(t, products, 2)

	shirt := products[0]
	assert.Equal(t, "Linen Shirt", shirt.Title)
	assert.Equal(t, []string{"https://cdn.example.com/shirt.jpg"}, shirt.Images)
	assert.Equal(t, "49.00", shirt.Price)
	assert.Equal(t, "USD", shirt.Currency)
	assert.Equal(t, "https://schema.org/InStock", shirt.Availability)

	tote := products[1]
	assert.Equal(t, "Tote", tote.Title)
	assert.Equal(t, []string{"https://a/1.jpg", "https://a/2.jpg"}, tote.Images)
	assert.Empty(t, tote.Price, "offers given as a list carry no price")
}

func TestExtractStructuredProducts_NumericPriceAndImageObject(t *testing.T) {
	html := `<script type="application/ld+json">{"@type":"Product","image":{"@type":"ImageObject","url":"https://a/x.png"},"offers":{"price":12.5}}</script>`

	products := ExtractStructuredProducts(mustDoc(t, html))
	require.Len(t, products, 1)
	assert.Equal(t, "", products[0].Title)
	assert.Equal(t, []string{"https://a/x.png"}, products[0].Images)
	assert.Equal(t, "12.5", products[0].Price)
}

func TestExtractStructuredProducts_None(t *testing.T) {
	products := ExtractStructuredProducts(mustDoc(t, "<html><body>nothing</body></html>"))
	assert.NotNil(t, products)
	assert.Empty(t, products)
}
