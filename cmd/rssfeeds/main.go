// Command rssfeeds scrapes the configured listing pages and regenerates
// their RSS feed files.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/olshansky/rss-feeds/archive"
	"github.com/olshansky/rss-feeds/config"
	"github.com/olshansky/rss-feeds/generate"
	"github.com/olshansky/rss-feeds/logging"
	"github.com/olshansky/rss-feeds/sources"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	sourceName := flag.String("source", "all", "source to generate (anthropic_engineering, anthropic_news, blogsurgeai, or all)")
	feedName := flag.String("feed-name", "", "override the output feed name (single source only)")
	feedsDir := flag.String("feeds-dir", "", "override the feeds directory")
	logLevel := flag.String("log-level", "", "override the log level")
	flag.Parse()

	// Optional .env for local overrides; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *feedsDir != "" {
		cfg.FeedsDir = *feedsDir
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	log, err := logging.New(logging.Config{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	var selected []sources.Source
	if *sourceName == "all" {
		selected = sources.All()
	} else {
		src, ok := sources.ByName(*sourceName)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown source: %s\n", *sourceName)
			os.Exit(1)
		}
		selected = []sources.Source{src}
	}
	if *feedName != "" && len(selected) != 1 {
		fmt.Fprintln(os.Stderr, "Error: -feed-name requires a single -source")
		os.Exit(1)
	}

	var store *archive.Store
	if cfg.Archive.Enabled {
		if err := os.MkdirAll(filepath.Dir(cfg.Archive.Path), 0o755); err != nil {
			log.Warnw("failed to create archive directory", "error", err)
		}
		store, err = archive.Open(cfg.Archive.Path)
		if err != nil {
			// The archive is bookkeeping, not output; run without it.
			log.Warnw("failed to open run archive, continuing without it", "error", err)
		} else {
			defer store.Close()
		}
	}

	ctx := context.Background()
	failed := 0
	for _, src := range selected {
		if !cfg.SourceEnabled(src.Name) {
			log.Infow("source disabled, skipping", "source", src.Name)
			continue
		}

		name := *feedName
		if name == "" {
			name = cfg.FeedName(src.Name)
		}

		g := generate.New(src, cfg.FeedsDir, name, store, log)
		if err := g.Run(ctx); err != nil {
			log.Errorw("feed generation failed", "source", src.Name, "error", err)
			failed++
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
