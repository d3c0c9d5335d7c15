package feed

import (
	"os"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"
)

// ExistingLinks parses a previously generated feed file and returns the
// set of item links it contains. A missing or unparseable feed yields an
// empty set with a log entry; the generator uses this only to report how
// many scraped articles are new.
func ExistingLinks(path string, log *zap.SugaredLogger) map[string]bool {
	links := make(map[string]bool)

	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnw("failed to open existing feed", "path", path, "error", err)
		}
		return links
	}
	defer f.Close()

	parsed, err := gofeed.NewParser().Parse(f)
	if err != nil {
		log.Warnw("failed to parse existing feed", "path", path, "error", err)
		return links
	}

	for _, item := range parsed.Items {
		if item.Link != "" {
			links[item.Link] = true
		}
	}
	return links
}
