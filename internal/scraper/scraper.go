package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	UserAgent = "ncr-events/1.0 (+https://github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076)"
	Timeout   = 30 * time.Second
)

// Renderer kinds accepted by NewRenderer
const (
	KindHTTP     = "http"
	KindChromium = "chromium"
)

// Page is a rendered page: the URL it was fetched from and its content
// as markdown-like text
type Page struct {
	URL  string
	Text string
}

// Renderer fetches a URL and returns its rendered text
type Renderer interface {
	Render(ctx context.Context, url string) (Page, error)
}

// Options configures NewRenderer
type Options struct {
	Kind       string        // "http" (default) or "chromium"
	Timeout    time.Duration // per-render bound, defaults to Timeout
	UserAgent  string        // defaults to UserAgent
	ChromePath string        // chromium only; empty uses the chromedp lookup
}

// NewRenderer builds the renderer named by opts.Kind
func NewRenderer(opts Options) (Renderer, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = Timeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = UserAgent
	}

	switch strings.ToLower(opts.Kind) {
	case "", KindHTTP:
		h := NewHTTP()
		h.client.Timeout = opts.Timeout
		h.userAgent = opts.UserAgent
		return h, nil
	case KindChromium:
		return NewChromium(opts), nil
	default:
		return nil, fmt.Errorf("unknown renderer kind: %s", opts.Kind)
	}
}

// HTTP renders pages with a plain GET and an HTML-to-text conversion.
// Script-driven content is not executed.
type HTTP struct {
	client    *http.Client
	userAgent string
}

// NewHTTP creates an HTTP renderer with the default timeout and user agent
func NewHTTP() *HTTP {
	return &HTTP{
		client: &http.Client{
			Timeout: Timeout,
		},
		userAgent: UserAgent,
	}
}

// Render fetches url and converts the HTML body to markdown-like text
func (h *HTTP) Render(ctx context.Context, url string) (Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Page{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := h.client.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Page{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	text, err := ToMarkdown(resp.Body)
	if err != nil {
		return Page{}, err
	}
	return Page{URL: url, Text: text}, nil
}
