package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureScheme(t *testing.T) {
	assert.Equal(t, "https://shop.example.com", EnsureScheme("shop.example.com"))
	assert.Equal(t, "https://shop.example.com", EnsureScheme("  shop.example.com "))
	assert.Equal(t, "http://shop.example.com", EnsureScheme("http://shop.example.com"))
	assert.Equal(t, "https://shop.example.com/x", EnsureScheme("https://shop.example.com/x"))
	assert.Equal(t, "HTTPS://Shop.example.com/x", EnsureScheme("HTTPS://Shop.example.com/x"))
}

func TestEnsureScheme_HostsStartingWithHTTP(t *testing.T) {
	assert.Equal(t, "https://httpie.io", EnsureScheme("httpie.io"))
	assert.Equal(t, "https://http-shop.com/collections/all", EnsureScheme("http-shop.com/collections/all"))
	assert.Equal(t, "https://httpstore.example", EnsureScheme("httpstore.example"))
}

func TestOrigin_SchemelessInputs(t *testing.T) {
	inputs := []string{
		"example.com",
		"example.com/",
		"example.com/collections/all?page=2",
		"www.example.com/pages/about#team",
		"example.com:8443/products.json?limit=1",
		"httpie.io",
		"http-shop.com/collections/all",
	}

	for _, in := range inputs {
		origin, err := Origin(EnsureScheme(in))
		require.NoError(t, err, in)

		assert.True(t, strings.HasPrefix(origin, "https://"), origin)
		rest := strings.TrimPrefix(origin, "https://")
		assert.NotContains(t, rest, "/", origin)
		assert.NotContains(t, rest, "?", origin)
		assert.NotContains(t, rest, "#", origin)
	}
}

func TestOrigin_KeepsSchemeAndPort(t *testing.T) {
	origin, err := Origin("http://127.0.0.1:8080/some/path")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080", origin)
}

func TestOrigin_NormalizesCase(t *testing.T) {
	origin, err := Origin(EnsureScheme("HTTPS://Shop.example.com/x"))
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com", origin)

	origin, err = Origin(EnsureScheme("http-shop.com/collections/all"))
	require.NoError(t, err)
	assert.Equal(t, "https://http-shop.com", origin)
}

func TestOrigin_MissingHost(t *testing.T) {
	_, err := Origin("https://")
	assert.Error(t, err)
}

func TestResolveURL(t *testing.T) {
	base := "https://shop.example.com"

	assert.Equal(t, "https://shop.example.com/pages/faq", ResolveURL(base, "/pages/faq"))
	assert.Equal(t, "https://shop.example.com/pages/faq", ResolveURL(base, "pages/faq"))
	assert.Equal(t, "https://other.example.com/x", ResolveURL(base, "https://other.example.com/x"))
	assert.Equal(t, "https://cdn.example.com/a", ResolveURL(base, "//cdn.example.com/a"))
	assert.Equal(t, "https://shop.example.com/pages/httpie-guide", ResolveURL(base, "/pages/httpie-guide"))
	assert.Equal(t, "https://shop.example.com/http-faq", ResolveURL(base, "http-faq"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "héé", Truncate("hééllo", 3))
	assert.Equal(t, "", Truncate("abc", 0))
}

func TestVisibleText(t *testing.T) {
	html := `<html><head><style>p{}</style></head><body>
		<h1>Refund   policy</h1>
		<script>var x = 1;</script>
		<p>Returns accepted
		within 30 days.</p></body></html>`

	assert.Equal(t, "Refund policy Returns accepted within 30 days.", VisibleText(html))
}
