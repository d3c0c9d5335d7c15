// Package sources defines the scraped listing pages: where they live, how
// their markup is walked, and the policies that differ between them.
package sources

import (
	"time"

	"github.com/olshansky/rss-feeds/feed"
	"github.com/olshansky/rss-feeds/scrape"
)

// Browser user-agent strings the listing pages are known to serve full
// markup to.
const (
	windowsUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	macUserAgent     = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

// Source is one listing page and everything needed to turn it into a feed.
type Source struct {
	// Name is the default feed name; the output file is feed_<Name>.xml.
	Name string
	// URL is the listing page to fetch.
	URL       string
	UserAgent string
	Timeout   time.Duration

	Extract scrape.Config
	Feed    feed.Meta

	// SortByDate reorders articles newest-first before emission; sources
	// without it keep listing-page order.
	SortByDate bool
	// CacheFile, when set, names the JSON cache (relative to the feeds
	// directory) that pins first-seen dates. Empty disables pinning.
	CacheFile string
	// FailWhenEmpty makes a run with zero extracted articles an error.
	FailWhenEmpty bool
}

// All returns every configured source in generation order.
func All() []Source {
	return []Source{Engineering(), News(), SurgeBlog()}
}

// ByName returns the source whose Name matches.
func ByName(name string) (Source, bool) {
	for _, s := range All() {
		if s.Name == name {
			return s, true
		}
	}
	return Source{}, false
}

// Engineering is the Anthropic engineering blog listing. Its listing page
// drops dates from older entries, so extraction leans on the first-seen
// cache, and the feed is re-sorted newest-first.
func Engineering() Source {
	return Source{
		Name:      "anthropic_engineering",
		URL:       "https://www.anthropic.com/engineering",
		UserAgent: windowsUserAgent,
		Timeout:   10 * time.Second,
		Extract: scrape.Config{
			Origin:      "https://www.anthropic.com",
			ListingPath: "/engineering",
			Candidates:  []string{"article", "a[href*='/engineering/']"},
			Link: scrape.Cascade{
				"a.ArticleList_cardLink__VWIzl",
				"a[href*='/engineering/']",
				"a[class*='cardLink']",
				"a[class*='link']",
			},
			Title: scrape.Cascade{
				"h2", "h3", "h1",
				"h4[class*='headline']",
				"h3[class*='title']",
				"h2[class*='title']",
			},
			Date: scrape.Cascade{
				"div.ArticleList_date__2VTRg",
				"div[class*='date']",
				"p[class*='date']",
				"time",
				".detail-m.agate",
			},
			Description: scrape.Cascade{
				"p.ArticleList_summary__G96cV",
				"p[class*='summary']",
				"p[class*='description']",
			},
			DefaultCategory: "Engineering",
			TruncateTime:    true,
		},
		Feed: feed.Meta{
			Title:       "Anthropic Engineering Blog",
			Description: "Latest engineering articles and insights from Anthropic's engineering team",
			Link:        "https://www.anthropic.com/engineering",
			SelfURL:     "https://anthropic.com/engineering/feed_anthropic_engineering.xml",
			Language:    "en",
			AuthorName:  "Anthropic Engineering Team",
			Logo:        "https://www.anthropic.com/images/icons/apple-touch-icon.png",
			Subtitle:    "Inside the team building reliable AI systems",
		},
		SortByDate:    true,
		CacheFile:     "anthropic_engineering_article_cache.json",
		FailWhenEmpty: true,
	}
}

// News is the Anthropic newsroom listing. Cards are bare anchors, dates
// are always present, and the page's own ordering is kept.
func News() Source {
	return Source{
		Name:      "anthropic_news",
		URL:       "https://www.anthropic.com/news",
		UserAgent: windowsUserAgent,
		Timeout:   10 * time.Second,
		Extract: scrape.Config{
			Origin:      "https://www.anthropic.com",
			ListingPath: "/news",
			Candidates:  []string{"a[href*='/news/']"},
			Link:        scrape.Cascade{"a[href*='/news/']"},
			Title: scrape.Cascade{
				"h3.PostCard_post-heading__Ob1pu",
				"h3.Card_headline__reaoT",
				"h3[class*='headline']",
				"h3[class*='heading']",
				"h2[class*='headline']",
				"h2[class*='heading']",
				"h3", "h2",
			},
			Date: scrape.Cascade{
				"p.detail-m",
				"div.PostList_post-date__djrOA",
				"p[class*='date']",
				"div[class*='date']",
				"time",
			},
			Category: scrape.Cascade{
				"span.text-label",
				"p.detail-m",
				"span[class*='category']",
				"div[class*='category']",
			},
			DefaultCategory: "News",
		},
		Feed: feed.Meta{
			Title:       "Anthropic News",
			Description: "Latest news and updates from Anthropic",
			Link:        "https://www.anthropic.com/news",
			SelfURL:     "https://anthropic.com/news/feed_anthropic_news.xml",
			Language:    "en",
			AuthorName:  "Anthropic News",
			Logo:        "https://www.anthropic.com/images/icons/apple-touch-icon.png",
			Subtitle:    "Latest updates from Anthropic's newsroom",
		},
	}
}

// SurgeBlog is the Surge AI blog listing. The listing shows no dates at
// all, so every article's date comes from the first-seen cache.
func SurgeBlog() Source {
	return Source{
		Name:      "blogsurgeai",
		URL:       "https://www.surgehq.ai/blog",
		UserAgent: macUserAgent,
		Timeout:   30 * time.Second,
		Extract: scrape.Config{
			Origin:          "https://www.surgehq.ai",
			ListingPath:     "/blog",
			Candidates:      []string{"div.research-v2-item"},
			Link:            scrape.Cascade{"a.research-v2-item-txt"},
			Title:           scrape.Cascade{"a.research-v2-item-txt"},
			DefaultCategory: "Blog",
		},
		Feed: feed.Meta{
			Title:       "Surge AI Blog",
			Description: "New methods, current trends & software infrastructure for NLP. Articles written by our senior engineering leads from Google, Facebook, Twitter, Harvard, MIT, and Y Combinator",
			Link:        "https://www.surgehq.ai/blog",
			SelfURL:     "https://raw.githubusercontent.com/olshansky/rss-feeds/main/feeds/feed_blogsurgeai.xml",
			Language:    "en",
			AuthorName:  "Surge AI",
			AuthorEmail: "team@surgehq.ai",
		},
		CacheFile: "blogsurgeai_article_cache.json",
	}
}
