package types

import "errors"

var (
	// ErrSiteUnreachable is returned when the storefront homepage cannot be fetched
	ErrSiteUnreachable = errors.New("website not reachable")

	// ErrNotThisPlatform is returned when the site does not look like a Shopify store
	ErrNotThisPlatform = errors.New("website does not appear to be a Shopify store")
)
