package types

import (
	"context"
	"time"
)

// Config holds the configuration for the insights extractor
type Config struct {
	RequestDelay       time.Duration
	Timeout            time.Duration
	UseHeadlessBrowser bool
	UserAgent          string
	PhoneRegion        string
	SearchEndpoint     string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		RequestDelay:       0,
		Timeout:            12 * time.Second,
		UseHeadlessBrowser: false,
		UserAgent:          "Mozilla/5.0 (InsightsFetcher)",
		PhoneRegion:        "US",
		SearchEndpoint:     "https://duckduckgo.com/html/",
	}
}

// PlatformAdapter defines the interface for platform-specific detection and catalog access
type PlatformAdapter interface {
	// Signals returns the platform's static detection and path table
	Signals() PlatformSignals

	// GetPageContent fetches a page and returns its body as text
	GetPageContent(ctx context.Context, url string) (string, error)

	// IsPlatform reports whether the site at origin runs on the platform.
	// An empty homepageHTML makes the adapter fetch the homepage itself.
	IsPlatform(ctx context.Context, origin, homepageHTML string) bool

	// FetchCatalog returns the raw product records of the catalog feed
	FetchCatalog(ctx context.Context, origin string) []map[string]any

	// Close releases any held resources
	Close()
}

// Logger defines the logging interface
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
