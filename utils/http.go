package utils

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"golang.org/x/time/rate"
	"shopify-insights/internal/types"
)

const maxBodySize = 10 * 1024 * 1024

// ErrBodyTooLarge is returned when a response exceeds the body size limit
var ErrBodyTooLarge = errors.New("response body too large")

// HTTPClient provides single-attempt HTTP functionality with an optional politeness delay
type HTTPClient struct {
	client  *http.Client
	config  *types.Config
	logger  types.Logger
	limiter *rate.Limiter
	maxBody int64
}

// NewHTTPClient creates a new HTTP client with the given configuration
func NewHTTPClient(config *types.Config, logger types.Logger) *HTTPClient {
	client := &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			DisableCompression:  true, // decoded in decodeBody, brotli included
		},
	}

	limit := rate.Inf
	if config.RequestDelay > 0 {
		limit = rate.Every(config.RequestDelay)
	}

	return &HTTPClient{
		client:  client,
		config:  config,
		logger:  logger,
		limiter: rate.NewLimiter(limit, 1),
		maxBody: maxBodySize,
	}
}

// Get performs a GET request and returns the decoded body.
// Any non-2xx status is reported as an error.
func (h *HTTPClient) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return h.do(ctx, req)
}

// PostForm performs a form-encoded POST request and returns the decoded body
func (h *HTTPClient) PostForm(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.do(ctx, req)
}

// GetText performs a GET request and returns the body as a string
func (h *HTTPClient) GetText(ctx context.Context, url string) (string, error) {
	body, err := h.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (h *HTTPClient) do(ctx context.Context, req *http.Request) ([]byte, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", h.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,application/json;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	h.logger.Debugf("Making %s request to %s", req.Method, req.URL)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(int64(resp.StatusCode)); err != nil {
		return nil, err
	}

	reader, err := decodeBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	defer reader.Close()

	body, err := io.ReadAll(io.LimitReader(reader, h.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > h.maxBody {
		return nil, fmt.Errorf("%w: more than %d bytes from %s", ErrBodyTooLarge, h.maxBody, req.URL)
	}

	h.logger.Debugf("Successfully retrieved %d bytes from %s", len(body), req.URL)
	return body, nil
}

// checkStatus rejects any status outside 2xx
func checkStatus(code int64) error {
	if code < 200 || code > 299 {
		return fmt.Errorf("unexpected status code: %d", code)
	}
	return nil
}

// decodeBody wraps the response body according to its Content-Encoding.
// Closing the returned reader leaves resp.Body open.
func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip":
		return gzip.NewReader(resp.Body)
	case "deflate":
		return flate.NewReader(resp.Body), nil
	case "br":
		return io.NopCloser(brotli.NewReader(resp.Body)), nil
	default:
		return io.NopCloser(resp.Body), nil
	}
}

// Close cleans up resources
func (h *HTTPClient) Close() {
	h.client.CloseIdleConnections()
}
