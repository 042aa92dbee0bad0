package adapters

import (
	"regexp"
	"sort"

	"shopify-insights/internal/types"

	"github.com/nyaruka/phonenumbers"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9.-]+`)

	// at least 8 digit/separator characters bounded by digits
	phonePattern = regexp.MustCompile(`\+?\d[\d\s\-().]{6,}\d`)

	socialPatterns = compileSocialPatterns(SocialPlatforms)
)

type socialPattern struct {
	name string
	re   *regexp.Regexp
}

func compileSocialPatterns(platforms []SocialPlatform) []socialPattern {
	patterns := make([]socialPattern, 0, len(platforms))
	for _, p := range platforms {
		patterns = append(patterns, socialPattern{
			name: p.Name,
			re:   regexp.MustCompile(`(?i)https?://(www\.)?` + regexp.QuoteMeta(p.Domain) + `/[^"'<>\s]+`),
		})
	}
	return patterns
}

// ContactInfo is the raw result of scanning a text blob for contact details
type ContactInfo struct {
	Emails  []string
	Phones  []string
	Socials map[string]string
}

// FindContacts scans text for emails, phone numbers and social profile URLs.
// Emails and phones come back deduplicated and sorted; socials hold the first
// URL found per platform.
func FindContacts(text string) ContactInfo {
	info := ContactInfo{
		Emails:  uniqueSorted(emailPattern.FindAllString(text, -1)),
		Phones:  uniqueSorted(phonePattern.FindAllString(text, -1)),
		Socials: make(map[string]string),
	}

	for _, p := range socialPatterns {
		if m := p.re.FindString(text); m != "" {
			info.Socials[p.name] = m
		}
	}

	return info
}

// SocialHandles maps the scanned socials onto the fixed platform fields
func (c ContactInfo) SocialHandles() types.SocialHandles {
	return types.SocialHandles{
		Instagram: c.Socials["instagram"],
		Facebook:  c.Socials["facebook"],
		TikTok:    c.Socials["tiktok"],
		Twitter:   c.Socials["twitter"],
		YouTube:   c.Socials["youtube"],
		LinkedIn:  c.Socials["linkedin"],
		Others:    map[string]string{},
	}
}

// NormalizePhones parses raw phone matches for region and returns the valid
// ones in E.164 form, deduplicated and sorted.
func NormalizePhones(phones []string, region string) []string {
	var normalized []string
	for _, raw := range phones {
		number, err := phonenumbers.Parse(raw, region)
		if err != nil {
			continue
		}
		if !phonenumbers.IsValidNumber(number) {
			continue
		}
		normalized = append(normalized, phonenumbers.Format(number, phonenumbers.E164))
	}
	return uniqueSorted(normalized)
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := []string{}
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
