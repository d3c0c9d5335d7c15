// Package generate runs the fetch -> extract -> assemble -> write pipeline
// for one source.
package generate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/olshansky/rss-feeds/archive"
	"github.com/olshansky/rss-feeds/cache"
	"github.com/olshansky/rss-feeds/feed"
	"github.com/olshansky/rss-feeds/fetch"
	"github.com/olshansky/rss-feeds/scrape"
	"github.com/olshansky/rss-feeds/sources"
)

// Generator produces one feed file from one source.
type Generator struct {
	source   sources.Source
	feedsDir string
	feedName string
	archive  *archive.Store // optional
	log      *zap.SugaredLogger
	now      func() time.Time
}

// New creates a generator. ar may be nil to skip run archiving. feedName
// overrides the source's default feed name when non-empty.
func New(src sources.Source, feedsDir, feedName string, ar *archive.Store, log *zap.SugaredLogger) *Generator {
	if feedName == "" {
		feedName = src.Name
	}
	return &Generator{
		source:   src,
		feedsDir: feedsDir,
		feedName: feedName,
		archive:  ar,
		log:      log.With("source", src.Name),
		now:      time.Now,
	}
}

// OutputPath returns where this generator writes its feed.
func (g *Generator) OutputPath() string {
	return filepath.Join(g.feedsDir, "feed_"+g.feedName+".xml")
}

// Run executes one full generation pass. Fetch, whole-document parse, and
// feed write failures abort the run; cache and archive problems are logged
// and absorbed.
func (g *Generator) Run(ctx context.Context) error {
	runID := uuid.New()
	log := g.log.With("run_id", runID.String())
	log.Infow("starting feed generation", "url", g.source.URL)

	if err := os.MkdirAll(g.feedsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create feeds directory: %w", err)
	}

	client := fetch.New(g.source.UserAgent, g.source.Timeout)
	doc, err := client.Document(ctx, g.source.URL)
	if err != nil {
		return fmt.Errorf("fetch failed for %s: %w", g.source.Name, err)
	}

	var c *cache.Cache
	if g.source.CacheFile != "" {
		c = cache.Load(filepath.Join(g.feedsDir, g.source.CacheFile), log)
	}

	articles := scrape.New(g.source.Extract, c, log).Extract(doc)
	if len(articles) == 0 && g.source.FailWhenEmpty {
		return fmt.Errorf("no articles found for %s", g.source.Name)
	}

	outPath := g.OutputPath()
	existing := feed.ExistingLinks(outPath, log)
	fresh := 0
	for _, a := range articles {
		if !existing[a.Link] {
			fresh++
		}
	}
	log.Infow("assembling feed", "articles", len(articles), "new_since_last_feed", fresh)

	rss := feed.Build(g.source.Feed, articles, g.source.SortByDate, g.now())
	if err := feed.WriteFile(rss, outPath); err != nil {
		return fmt.Errorf("feed write failed for %s: %w", g.source.Name, err)
	}

	if g.archive != nil {
		if err := g.archive.RecordRun(runID, g.source.Name, g.now(), articles); err != nil {
			log.Warnw("failed to archive run", "error", err)
		}
	}

	log.Infow("feed generated", "path", outPath, "articles", len(articles))
	return nil
}
