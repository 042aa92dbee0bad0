package types

// PlatformSignals is the static table describing a storefront platform:
// how to recognise it and which well-known paths it serves.
type PlatformSignals struct {
	Name            string
	CDNHost         string
	FeedPath        string
	FeedKey         string
	ProductPath     string
	PolicyFallbacks []string
	FAQFallbacks    []string
	SitemapPath     string
}
