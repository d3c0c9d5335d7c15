// Package cache persists first-seen article dates between runs. Listing
// pages show relative or changing dates for some sources; once a link has
// been observed, its cached date is treated as authoritative so feed
// entries keep a stable published time across re-scrapes.
package cache

import (
	"encoding/json"
	"os"
	"time"

	"go.uber.org/zap"
)

// Entry holds the cached metadata for one article link.
type Entry struct {
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
}

// Cache is an in-memory link -> Entry mapping backed by a JSON file. It is
// loaded once at the start of a parse pass and written back at the end,
// only if something changed.
type Cache struct {
	path    string
	entries map[string]Entry
	dirty   bool
	log     *zap.SugaredLogger
}

// Load reads the cache file at path. Any failure -- missing file, corrupt
// JSON, unparseable dates -- yields an empty cache and a log entry; a bad
// cache must never abort a run.
func Load(path string, log *zap.SugaredLogger) *Cache {
	c := &Cache{
		path:    path,
		entries: make(map[string]Entry),
		log:     log,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnw("failed to read article cache, starting empty", "path", path, "error", err)
		}
		return c
	}

	if err := json.Unmarshal(data, &c.entries); err != nil {
		log.Warnw("failed to parse article cache, starting empty", "path", path, "error", err)
		c.entries = make(map[string]Entry)
	}

	return c
}

// Lookup returns the cached entry for link, if one exists.
func (c *Cache) Lookup(link string) (Entry, bool) {
	entry, ok := c.entries[link]
	return entry, ok
}

// Record inserts or overwrites the entry for link and marks the cache
// dirty so the next Save writes it out.
func (c *Cache) Record(link, title string, date time.Time) {
	c.entries[link] = Entry{Title: title, Date: date}
	c.dirty = true
}

// Dirty reports whether the cache has unsaved changes.
func (c *Cache) Dirty() bool {
	return c.dirty
}

// Len returns the number of cached links.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Save writes the full mapping back to disk if the cache is dirty. A nil
// return with no write means there was nothing to save. Dates are stored
// as RFC 3339 strings.
func (c *Cache) Save() error {
	if !c.dirty {
		return nil
	}

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return err
	}

	c.dirty = false
	return nil
}
