package extractor

import (
	"context"
	"strings"

	"shopify-insights/adapters"
	"shopify-insights/internal/types"
	"shopify-insights/utils"
)

const maxPolicyContent = 4000

// PolicyCategory classifies a policy page by its URL
func PolicyCategory(pageURL string) string {
	for _, category := range []string{types.PolicyPrivacy, types.PolicyRefund, types.PolicyReturn} {
		if strings.Contains(pageURL, category) {
			return category
		}
	}
	return types.PolicyGeneric
}

// collectPolicies visits the linked policy pages followed by the platform's
// fallback paths and keeps the first reachable page per category
func (e *InsightsExtractor) collectPolicies(ctx context.Context, origin string, linked []string) []types.Policy {
	candidates := append(append([]string{}, linked...), e.adapter.Signals().PolicyFallbacks...)

	policies := []types.Policy{}
	seen := make(map[string]bool)

	for _, href := range candidates {
		pageURL := utils.ResolveURL(origin, href)
		category := PolicyCategory(pageURL)
		if seen[category] {
			continue
		}

		html, err := e.adapter.GetPageContent(ctx, pageURL)
		if err != nil {
			e.logger.Debugf("Skipping policy candidate %s: %v", pageURL, err)
			continue
		}

		policies = append(policies, types.Policy{
			Type:    category,
			URL:     pageURL,
			Content: utils.Truncate(utils.VisibleText(html), maxPolicyContent),
		})
		seen[category] = true
	}

	return policies
}

// collectFAQs visits the linked FAQ pages followed by the platform's fallback
// paths and gathers every question/answer pair found. Pairs are deduplicated
// within a page only, so a page reached twice contributes its pairs twice.
func (e *InsightsExtractor) collectFAQs(ctx context.Context, origin string, linked []string) []types.FAQ {
	candidates := append(append([]string{}, linked...), e.adapter.Signals().FAQFallbacks...)

	faqs := []types.FAQ{}
	for _, href := range candidates {
		pageURL := utils.ResolveURL(origin, href)

		html, err := e.adapter.GetPageContent(ctx, pageURL)
		if err != nil {
			e.logger.Debugf("Skipping FAQ candidate %s: %v", pageURL, err)
			continue
		}

		pairs := adapters.ExtractFAQPairs(e.parse(html))
		for _, faq := range pairs {
			faq.URL = pageURL
			faqs = append(faqs, faq)
		}
		e.logger.Debugf("Found %d FAQs on %s", len(pairs), pageURL)
	}

	return faqs
}
