package adapters

import "shopify-insights/internal/types"

// ShopifySignals describes how a Shopify storefront is recognised and which
// paths every Shopify store serves regardless of theme.
var ShopifySignals = types.PlatformSignals{
	Name:        "shopify",
	CDNHost:     "cdn.shopify.com",
	FeedPath:    "/products.json?limit=250",
	FeedKey:     "products",
	ProductPath: "/products/",
	PolicyFallbacks: []string{
		"/policies/privacy-policy",
		"/policies/refund-policy",
		"/policies/return-policy",
		"/policies/terms-of-service",
	},
	FAQFallbacks: []string{
		"/pages/faq",
		"/pages/faqs",
		"/faq",
		"/faqs",
	},
	SitemapPath: "/sitemap.xml",
}

// SocialPlatform maps a social network to the domain its profile URLs live on
type SocialPlatform struct {
	Name   string
	Domain string
}

// SocialPlatforms is the fixed, ordered set of networks scanned for profile links
var SocialPlatforms = []SocialPlatform{
	{Name: "instagram", Domain: "instagram.com"},
	{Name: "facebook", Domain: "facebook.com"},
	{Name: "tiktok", Domain: "tiktok.com"},
	{Name: "twitter", Domain: "twitter.com"},
	{Name: "youtube", Domain: "youtube.com"},
	{Name: "linkedin", Domain: "linkedin.com"},
}
