// Package fetch retrieves listing pages over HTTP and hands back parsed
// goquery documents.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Client fetches pages with a fixed user agent and timeout. The listing
// sites serve different markup to obvious bots, so each source carries the
// browser user-agent string it was tuned against.
type Client struct {
	http      *http.Client
	userAgent string
}

// New creates a client. A zero timeout means no timeout.
func New(userAgent string, timeout time.Duration) *Client {
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Document fetches url and parses the response body as HTML. Any network
// error or non-2xx status is returned as an error; a fetch failure aborts
// the caller's run.
func (c *Client) Document(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status fetching %s: %d %s", url, resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", url, err)
	}

	return doc, nil
}
