package extractor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shopify-insights/adapters"
	"shopify-insights/internal/metrics"
	"shopify-insights/internal/types"
	"shopify-insights/utils"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxHeroProducts = 6
	maxBrandText    = 3000
)

// InsightsExtractor builds the brand context of a single storefront
type InsightsExtractor struct {
	adapter types.PlatformAdapter
	config  *types.Config
	logger  types.Logger
}

// NewInsightsExtractor creates a new extractor backed by the Shopify adapter
func NewInsightsExtractor(config *types.Config, logger types.Logger) *InsightsExtractor {
	return NewInsightsExtractorWithAdapter(adapters.NewShopifyAdapter(config, logger), config, logger)
}

// NewInsightsExtractorWithAdapter creates an extractor over any platform adapter
func NewInsightsExtractorWithAdapter(adapter types.PlatformAdapter, config *types.Config, logger types.Logger) *InsightsExtractor {
	return &InsightsExtractor{
		adapter: adapter,
		config:  config,
		logger:  logger,
	}
}

// BuildBrandContext fetches the storefront behind websiteURL and assembles its
// brand context. It fails only with types.ErrSiteUnreachable when the homepage
// cannot be fetched, or types.ErrNotThisPlatform when detection is negative.
// Every other step degrades to an empty value.
func (e *InsightsExtractor) BuildBrandContext(ctx context.Context, websiteURL string) (*types.BrandContext, error) {
	startTime := time.Now()
	signals := e.adapter.Signals()

	origin, err := utils.Origin(utils.EnsureScheme(websiteURL))
	if err != nil {
		metrics.ObserveBuild("site_unreachable", time.Since(startTime))
		return nil, fmt.Errorf("%w: %v", types.ErrSiteUnreachable, err)
	}
	e.logger.Infof("Starting insights extraction for %s", origin)

	homepage, err := e.adapter.GetPageContent(ctx, origin)
	if err != nil {
		e.logger.Warnf("Homepage %s unreachable: %v", origin, err)
		metrics.ObserveBuild("site_unreachable", time.Since(startTime))
		return nil, fmt.Errorf("%w: %v", types.ErrSiteUnreachable, err)
	}

	if !e.adapter.IsPlatform(ctx, origin, homepage) {
		e.logger.Warnf("%s does not look like a %s store", origin, signals.Name)
		metrics.ObserveBuild("not_this_platform", time.Since(startTime))
		return nil, types.ErrNotThisPlatform
	}

	doc := e.parse(homepage)

	e.logger.Debug("Step 1: Fetching catalog feed...")
	catalog := adapters.CatalogProducts(origin, signals, e.adapter.FetchCatalog(ctx, origin))
	metrics.ObserveStep("catalog", len(catalog) > 0)

	e.logger.Debug("Step 2: Extracting hero products...")
	heroes := adapters.ExtractStructuredProducts(doc)
	if len(heroes) > maxHeroProducts {
		heroes = heroes[:maxHeroProducts]
	}
	metrics.ObserveStep("hero_products", len(heroes) > 0)

	e.logger.Debug("Step 3: Classifying homepage links...")
	buckets := adapters.ClassifyLinks(doc)

	e.logger.Debug("Step 4: Collecting policies and FAQs...")
	policies := e.collectPolicies(ctx, origin, buckets.Get(adapters.LinkPolicy))
	metrics.ObserveStep("policies", len(policies) > 0)

	faqs := e.collectFAQs(ctx, origin, buckets.Get(adapters.LinkFAQ))
	metrics.ObserveStep("faqs", len(faqs) > 0)

	e.logger.Debug("Step 5: Reading about page...")
	aboutURL := resolveFirst(origin, buckets, adapters.LinkAbout)
	brandText := e.fetchBrandText(ctx, aboutURL)
	if aboutURL != "" {
		metrics.ObserveStep("about", brandText != "")
	}

	links := types.BrandLinks{
		OrderTracking: resolveFirst(origin, buckets, adapters.LinkTrack),
		ContactUs:     resolveFirst(origin, buckets, adapters.LinkContact),
		Blog:          resolveFirst(origin, buckets, adapters.LinkBlog),
		About:         aboutURL,
		Sitemap:       resolveFirst(origin, buckets, adapters.LinkSitemap),
		OtherLinks:    map[string]string{},
	}
	if links.Sitemap == "" {
		links.Sitemap = utils.ResolveURL(origin, signals.SitemapPath)
	}

	e.logger.Debug("Step 6: Scanning contact details...")
	info := adapters.FindContacts(e.contactBlob(ctx, homepage, links.ContactUs))
	metrics.ObserveStep("contact", len(info.Emails)+len(info.Phones) > 0)

	brand := &types.BrandContext{
		Website:          origin,
		DetectedPlatform: signals.Name,
		WholeCatalog:     catalog,
		HeroProducts:     heroes,
		Policies:         policies,
		FAQs:             faqs,
		Socials:          info.SocialHandles(),
		Contact: types.Contact{
			Emails:           info.Emails,
			Phones:           info.Phones,
			NormalizedPhones: adapters.NormalizePhones(info.Phones, e.config.PhoneRegion),
			ContactPage:      links.ContactUs,
		},
		BrandText: brandText,
		Links:     links,
	}

	elapsed := time.Since(startTime)
	metrics.ObserveBuild("ok", elapsed)
	e.logger.Infof("Insights extraction for %s completed in %v (%d catalog products, %d policies, %d FAQs)",
		origin, elapsed, len(catalog), len(policies), len(faqs))

	return brand, nil
}

// fetchBrandText returns the visible text of the about page, or "" when there
// is no about page or it cannot be fetched
func (e *InsightsExtractor) fetchBrandText(ctx context.Context, aboutURL string) string {
	if aboutURL == "" {
		return ""
	}
	html, err := e.adapter.GetPageContent(ctx, aboutURL)
	if err != nil {
		e.logger.Warnf("Failed to fetch about page %s: %v", aboutURL, err)
		return ""
	}
	return utils.Truncate(utils.VisibleText(html), maxBrandText)
}

// contactBlob joins the homepage with the contact page when it can be fetched
func (e *InsightsExtractor) contactBlob(ctx context.Context, homepage, contactURL string) string {
	if contactURL == "" {
		return homepage
	}
	html, err := e.adapter.GetPageContent(ctx, contactURL)
	if err != nil {
		e.logger.Warnf("Failed to fetch contact page %s: %v", contactURL, err)
		return homepage
	}
	return homepage + "\n" + html
}

func (e *InsightsExtractor) parse(html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		e.logger.Warnf("Failed to parse HTML: %v", err)
		doc, _ = goquery.NewDocumentFromReader(strings.NewReader(""))
	}
	return doc
}

// Close cleans up resources
func (e *InsightsExtractor) Close() {
	if e.adapter != nil {
		e.adapter.Close()
	}
}

func resolveFirst(origin string, buckets adapters.LinkBuckets, category adapters.LinkCategory) string {
	href := buckets.First(category)
	if href == "" {
		return ""
	}
	return utils.ResolveURL(origin, href)
}
