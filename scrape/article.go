// Package scrape extracts article metadata from listing pages. Markup on
// these pages changes over time, so every field is located through a
// cascade of known-historical selectors rather than a single brittle one.
package scrape

import (
	"fmt"
	"strings"
	"time"
)

// Article is one extracted listing entry, ready for feed emission.
type Article struct {
	Title       string
	Link        string
	Description string
	Date        time.Time
	Category    string
}

// Validate checks that the article has the fields a feed entry needs.
// A non-nil error describes the first failed check; callers log it and
// drop the article rather than aborting the run.
func (a Article) Validate() error {
	if len(a.Title) < 5 {
		return fmt.Errorf("title too short: %q", a.Title)
	}
	if !strings.HasPrefix(a.Link, "http") {
		return fmt.Errorf("link is not an absolute http(s) URL: %q", a.Link)
	}
	if a.Date.IsZero() {
		return fmt.Errorf("missing date for %q", a.Title)
	}
	return nil
}
