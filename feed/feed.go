// Package feed assembles validated articles into RSS 2.0 documents and
// writes them to the feeds directory.
package feed

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/gorilla/feeds"

	"github.com/olshansky/rss-feeds/scrape"
)

// Meta is the channel-level metadata for one generated feed.
type Meta struct {
	Title       string
	Description string
	Link        string // canonical listing page URL
	SelfURL     string // where the generated XML is served from
	Language    string
	AuthorName  string
	AuthorEmail string
	Logo        string
	Subtitle    string
}

// Build assembles the RSS feed for the given articles. When sortByDate is
// set, articles are reordered newest-first; otherwise the listing-page
// order is preserved. The input slice is never mutated.
func Build(meta Meta, articles []scrape.Article, sortByDate bool, now time.Time) *feeds.RssFeed {
	ordered := make([]scrape.Article, len(articles))
	copy(ordered, articles)
	if sortByDate {
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Date.After(ordered[j].Date)
		})
	}

	f := &feeds.Feed{
		Title:       meta.Title,
		Link:        &feeds.Link{Href: meta.Link},
		Description: meta.Description,
		Author:      &feeds.Author{Name: meta.AuthorName, Email: meta.AuthorEmail},
		Created:     now,
		Id:          meta.Link,
	}
	if meta.Logo != "" {
		f.Image = &feeds.Image{Url: meta.Logo, Title: meta.Title, Link: meta.Link}
	}

	for _, a := range ordered {
		f.Items = append(f.Items, &feeds.Item{
			Title:       a.Title,
			Link:        &feeds.Link{Href: a.Link},
			Description: a.Description,
			Id:          a.Link,
			IsPermaLink: "true",
			Created:     a.Date,
		})
	}

	rss := (&feeds.Rss{Feed: f}).RssFeed()
	rss.Language = meta.Language
	// Subtitle, when set, is what the channel description carries.
	if meta.Subtitle != "" {
		rss.Description = meta.Subtitle
	}
	for i, a := range ordered {
		rss.Items[i].Category = a.Category
	}

	return rss
}

// WriteFile serializes the feed as RSS 2.0 XML to path. Any failure is
// returned to the caller; a half-written feed is treated as a failed run.
func WriteFile(rss *feeds.RssFeed, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create feed file: %w", err)
	}

	if err := feeds.WriteXML(rss, f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write feed XML: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close feed file: %w", err)
	}
	return nil
}
