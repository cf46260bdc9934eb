package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// Chromium renders pages in headless Chromium so script-built listings
// are present before the HTML is converted to text
type Chromium struct {
	timeout    time.Duration
	userAgent  string
	chromePath string
}

// NewChromium creates a Chromium renderer. Zero-valued options fall back
// to the package defaults.
func NewChromium(opts Options) *Chromium {
	c := &Chromium{
		timeout:    opts.Timeout,
		userAgent:  opts.UserAgent,
		chromePath: opts.ChromePath,
	}
	if c.timeout <= 0 {
		c.timeout = Timeout
	}
	if c.userAgent == "" {
		c.userAgent = UserAgent
	}
	return c
}

// Render navigates to url, waits for the body to be ready and converts
// the resulting DOM to markdown-like text
func (c *Chromium) Render(parentCtx context.Context, url string) (Page, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(c.userAgent),
	)
	if c.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(c.chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(parentCtx, allocOpts...)
	defer allocCancel()

	ctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	// Bound the whole render, including browser start-up
	ctx, timeoutCancel := context.WithTimeout(ctx, c.timeout)
	defer timeoutCancel()

	var html string
	tasks := chromedp.Tasks{
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		// Let client-side listings settle
		chromedp.Sleep(500 * time.Millisecond),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	}

	if err := chromedp.Run(ctx, tasks); err != nil {
		return Page{}, fmt.Errorf("chromium render: %w", err)
	}

	text, err := ToMarkdown(strings.NewReader(html))
	if err != nil {
		return Page{}, err
	}
	return Page{URL: url, Text: text}, nil
}
