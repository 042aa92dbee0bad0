package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// hasHTTPScheme reports whether raw starts with http:// or https://, ignoring case.
// Hosts such as httpie.io or http-shop.com do not count.
func hasHTTPScheme(raw string) bool {
	lower := strings.ToLower(raw)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// EnsureScheme prefixes https:// when the input has no http(s) scheme
func EnsureScheme(raw string) string {
	raw = strings.TrimSpace(raw)
	if hasHTTPScheme(raw) {
		return raw
	}
	return "https://" + raw
}

// Origin reduces a URL to scheme://host, dropping path, query and fragment
func Origin(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid url %q: missing host", raw)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme == "" {
		scheme = "https"
	}
	return scheme + "://" + strings.ToLower(u.Host), nil
}

// ResolveURL makes href absolute against base. Hrefs that already carry an
// http(s) scheme are returned untouched.
func ResolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	if hasHTTPScheme(href) {
		return href
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}
