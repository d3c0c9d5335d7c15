package scrape

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/olshansky/rss-feeds/cache"
)

// Config describes how to pull articles out of one listing page.
type Config struct {
	// Origin (scheme://host) is prefixed onto root-relative hrefs.
	Origin string
	// ListingPath is the path of the listing page itself; a link back to
	// it is the page's self-link, not an article.
	ListingPath string
	// Candidates are the selectors whose document-wide matches become
	// candidate elements, scanned in order.
	Candidates []string

	Link        Cascade
	Title       Cascade
	Date        Cascade
	Category    Cascade
	Description Cascade

	// DefaultCategory is used when no category survives extraction.
	DefaultCategory string
	// TruncateTime zeroes the time-of-day on freshly parsed dates.
	TruncateTime bool
}

// Extractor builds validated article records from a parsed listing page.
// With a non-nil cache, dates are pinned to the first observation of each
// link; without one, every run re-derives dates from the page.
type Extractor struct {
	cfg   Config
	cache *cache.Cache
	log   *zap.SugaredLogger
	now   func() time.Time
}

// New creates an extractor. c may be nil to disable first-seen pinning.
func New(cfg Config, c *cache.Cache, log *zap.SugaredLogger) *Extractor {
	return &Extractor{
		cfg:   cfg,
		cache: c,
		log:   log,
		now:   time.Now,
	}
}

// Extract scans the document for candidate elements and returns one
// validated article per unique link, in discovery order. Failures on a
// single candidate are logged and skipped; they never abort the pass.
// If any link was newly cached, the cache is persisted before returning.
func (e *Extractor) Extract(doc *goquery.Document) []Article {
	var articles []Article
	seen := make(map[string]bool)

	candidates := 0
	for _, selector := range e.cfg.Candidates {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			candidates++
			article, ok := e.extractOne(s, seen)
			if !ok {
				return
			}
			if err := article.Validate(); err != nil {
				e.log.Warnw("rejected article", "link", article.Link, "reason", err)
				return
			}
			articles = append(articles, article)
			e.log.Infow("found article", "title", article.Title, "date", article.Date)
		})
	}
	e.log.Infow("finished listing scan", "candidates", candidates, "articles", len(articles))

	if e.cache != nil {
		if err := e.cache.Save(); err != nil {
			e.log.Warnw("failed to save article cache", "error", err)
		}
	}

	return articles
}

// extractOne derives a single article from one candidate element. It
// recovers from panics so one malformed fragment cannot take down the
// whole scan.
func (e *Extractor) extractOne(s *goquery.Selection, seen map[string]bool) (article Article, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Warnw("recovered while extracting candidate", "panic", r)
			ok = false
		}
	}()

	link, found := e.cfg.Link.FirstAttr(s, "href")
	if !found {
		return Article{}, false
	}
	if strings.HasPrefix(link, "/") {
		link = e.cfg.Origin + link
	}
	if e.isSelfLink(link) || seen[link] {
		return Article{}, false
	}
	seen[link] = true

	title, found := e.cfg.Title.FirstText(s)
	if !found {
		e.log.Debugw("could not extract title", "link", link)
		return Article{}, false
	}

	date, dateText := e.extractDate(s, link, title)

	category, found := e.cfg.Category.FirstTextWhere(s, func(text string) bool {
		return text != dateText && !LooksLikeDate(text)
	})
	if !found {
		category = e.cfg.DefaultCategory
	}

	description, found := e.cfg.Description.FirstText(s)
	if !found {
		description = title
	}

	return Article{
		Title:       title,
		Link:        link,
		Description: description,
		Date:        date,
		Category:    category,
	}, true
}

// extractDate resolves the article date: cached first-seen date if one
// exists, otherwise the first date text that parses, otherwise now. Newly
// derived dates are recorded so later runs reuse them. The raw matched
// text is returned so category extraction can exclude it.
func (e *Extractor) extractDate(s *goquery.Selection, link, title string) (time.Time, string) {
	if e.cache != nil {
		if entry, ok := e.cache.Lookup(link); ok {
			return entry.Date, ""
		}
	}

	var date time.Time
	dateText, found := e.cfg.Date.FirstTextWhere(s, func(text string) bool {
		_, ok := ParseDate(text)
		return ok
	})
	if found {
		date, _ = ParseDate(dateText)
		if e.cfg.TruncateTime {
			date = Midnight(date)
		}
	} else {
		date = e.now().UTC()
	}

	if e.cache != nil {
		e.cache.Record(link, title, date)
	}
	return date, dateText
}

// isSelfLink reports whether link points back at the listing page itself.
func (e *Extractor) isSelfLink(link string) bool {
	return strings.TrimSuffix(link, "/") == e.cfg.Origin+e.cfg.ListingPath
}
