package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dark1alex/lubimyczytac-abs/internal/models"
	"github.com/dark1alex/lubimyczytac-abs/internal/throttle"
	"golang.org/x/net/html/charset"
)

const (
	DefaultBaseURL   = "https://lubimyczytac.pl"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (compatible; lubimyczytac-abs/0.1)"
)

// Client scrapes the lubimyczytac.pl catalog. Every request it makes goes
// through the shared throttle.
type Client struct {
	BaseURL   string
	UserAgent string

	throttle   *throttle.Throttle
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent sets the User-Agent header sent to the catalog.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.UserAgent = ua }
}

// WithTimeout bounds each individual fetch, measured after the throttle slot is
// granted. It applies regardless of where WithHTTPClient appears in the options.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// NewClient creates a new catalog client
func NewClient(baseURL string, th *throttle.Throttle, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if th == nil {
		th = throttle.New(throttle.DefaultInterval)
	}
	c := &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		UserAgent: DefaultUserAgent,
		throttle:  th,
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: &LoggingTransport{},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 && c.httpClient.Timeout != c.timeout {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Source describes this catalog on every record it produces.
func (c *Client) Source() models.SourceInfo {
	return models.SourceInfo{
		ID:          "lubimyczytac",
		Description: "Lubimy Czytać",
		Link:        c.BaseURL,
	}
}

// fetchDocument waits for a throttle slot, fetches pageURL and parses it as UTF-8 HTML.
func (c *Client) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	if _, err := c.throttle.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for throttle: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s returned status %d", pageURL, resp.StatusCode)
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", pageURL, err)
	}
	return doc, nil
}

// resolve turns a page-relative href into an absolute catalog URL.
func (c *Client) resolve(href string) (*url.URL, error) {
	base, err := url.Parse(c.BaseURL + "/")
	if err != nil {
		return nil, err
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil, err
	}
	return base.ResolveReference(ref), nil
}
