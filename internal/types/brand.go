package types

// Policy categories. At most one Policy per category is kept.
const (
	PolicyPrivacy = "privacy"
	PolicyRefund  = "refund"
	PolicyReturn  = "return"
	PolicyGeneric = "policy"
)

// Product represents a catalog or hero product
type Product struct {
	Title        string   `json:"title"`
	Handle       string   `json:"handle,omitempty"`
	URL          string   `json:"url,omitempty"`
	Price        string   `json:"price,omitempty"`
	Currency     string   `json:"currency,omitempty"`
	Images       []string `json:"images"`
	SKU          string   `json:"sku,omitempty"`
	Availability string   `json:"availability,omitempty"`
	Tags         []string `json:"tags"`
}

// Policy is a store policy page, truncated
type Policy struct {
	Type    string `json:"type"`
	URL     string `json:"url,omitempty"`
	Content string `json:"content,omitempty"`
}

// FAQ is a question/answer pair scraped from an FAQ page
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer,omitempty"`
	URL      string `json:"url,omitempty"`
}

// SocialHandles holds the first profile URL found per social platform
type SocialHandles struct {
	Instagram string            `json:"instagram,omitempty"`
	Facebook  string            `json:"facebook,omitempty"`
	TikTok    string            `json:"tiktok,omitempty"`
	Twitter   string            `json:"twitter,omitempty"`
	YouTube   string            `json:"youtube,omitempty"`
	LinkedIn  string            `json:"linkedin,omitempty"`
	Others    map[string]string `json:"others"`
}

// Contact holds contact details scraped from the homepage and contact page
type Contact struct {
	Emails           []string `json:"emails"`
	Phones           []string `json:"phones"`
	NormalizedPhones []string `json:"normalized_phones"`
	Address          string   `json:"address,omitempty"`
	ContactPage      string   `json:"contact_page,omitempty"`
}

// BrandLinks holds notable site links
type BrandLinks struct {
	OrderTracking string            `json:"order_tracking,omitempty"`
	ContactUs     string            `json:"contact_us,omitempty"`
	Blog          string            `json:"blog,omitempty"`
	About         string            `json:"about,omitempty"`
	Sitemap       string            `json:"sitemap,omitempty"`
	OtherLinks    map[string]string `json:"other_links"`
}

// BrandContext is the aggregate insights record for one storefront
type BrandContext struct {
	Website          string        `json:"website"`
	DetectedPlatform string        `json:"detected_platform,omitempty"`
	WholeCatalog     []Product     `json:"whole_catalog"`
	HeroProducts     []Product     `json:"hero_products"`
	Policies         []Policy      `json:"policies"`
	FAQs             []FAQ         `json:"faqs"`
	Socials          SocialHandles `json:"socials"`
	Contact          Contact       `json:"contact"`
	BrandText        string        `json:"brand_text,omitempty"`
	Links            BrandLinks    `json:"links"`
}
