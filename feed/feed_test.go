package feed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/olshansky/rss-feeds/scrape"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func testMeta() Meta {
	return Meta{
		Title:       "Anthropic Engineering Blog",
		Description: "Latest engineering articles and insights from Anthropic's engineering team",
		Link:        "https://www.anthropic.com/engineering",
		SelfURL:     "https://anthropic.com/engineering/feed_anthropic_engineering.xml",
		Language:    "en",
		AuthorName:  "Anthropic Engineering Team",
		Logo:        "https://www.anthropic.com/images/icons/apple-touch-icon.png",
		Subtitle:    "Inside the team building reliable AI systems",
	}
}

func testArticles() []scrape.Article {
	return []scrape.Article{
		{
			Title:       "Older article",
			Link:        "https://www.anthropic.com/engineering/older",
			Description: "Older article",
			Date:        time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			Category:    "Engineering",
		},
		{
			Title:       "Newer article",
			Link:        "https://www.anthropic.com/engineering/newer",
			Description: "Newer article",
			Date:        time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
			Category:    "Engineering",
		},
	}
}

// TestBuild_SortsByDateDescending verifies the sort policy reorders
// newest-first
func TestBuild_SortsByDateDescending(t *testing.T) {
	articles := testArticles()

	rss := Build(testMeta(), articles, true, time.Now())

	require.Len(t, rss.Items, 2)
	assert.Equal(t, "Newer article", rss.Items[0].Title)
	assert.Equal(t, "Older article", rss.Items[1].Title)
	assert.Equal(t, "Older article", articles[0].Title, "input slice must not be reordered")
}

// TestBuild_PreservesListingOrder verifies the no-sort policy keeps page
// order
func TestBuild_PreservesListingOrder(t *testing.T) {
	rss := Build(testMeta(), testArticles(), false, time.Now())

	require.Len(t, rss.Items, 2)
	assert.Equal(t, "Older article", rss.Items[0].Title)
	assert.Equal(t, "Newer article", rss.Items[1].Title)
}

// TestBuild_ChannelAndItemFields verifies the assembled channel and item
// metadata
func TestBuild_ChannelAndItemFields(t *testing.T) {
	rss := Build(testMeta(), testArticles(), true, time.Now())

	assert.Equal(t, "Anthropic Engineering Blog", rss.Title)
	assert.Equal(t, "https://www.anthropic.com/engineering", rss.Link)
	assert.Equal(t, "en", rss.Language)
	assert.Equal(t, "Inside the team building reliable AI systems", rss.Description,
		"subtitle overrides the channel description")
	require.NotNil(t, rss.Image)
	assert.Equal(t, "https://www.anthropic.com/images/icons/apple-touch-icon.png", rss.Image.Url)

	item := rss.Items[0]
	assert.Equal(t, "Engineering", item.Category)
	require.NotNil(t, item.Guid)
	assert.Equal(t, "https://www.anthropic.com/engineering/newer", item.Guid.Id, "guid is the link")
	assert.NotEmpty(t, item.PubDate)
}

// TestBuild_EmptyArticles verifies an empty feed still assembles
func TestBuild_EmptyArticles(t *testing.T) {
	rss := Build(testMeta(), nil, true, time.Now())

	assert.Empty(t, rss.Items)
	assert.Equal(t, "Anthropic Engineering Blog", rss.Title)
}

// TestWriteFile_Roundtrip verifies the written XML parses back with the
// same entries
func TestWriteFile_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed_test.xml")
	rss := Build(testMeta(), testArticles(), true, time.Now())

	require.NoError(t, WriteFile(rss, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	parsed, err := gofeed.NewParser().Parse(f)
	require.NoError(t, err)
	require.Len(t, parsed.Items, 2)
	assert.Equal(t, "Newer article", parsed.Items[0].Title)
	assert.Equal(t, "https://www.anthropic.com/engineering/newer", parsed.Items[0].Link)
	assert.Equal(t, []string{"Engineering"}, parsed.Items[0].Categories)
}

// TestWriteFile_BadPath verifies write failures propagate
func TestWriteFile_BadPath(t *testing.T) {
	rss := Build(testMeta(), nil, true, time.Now())

	err := WriteFile(rss, filepath.Join(t.TempDir(), "missing", "feed.xml"))

	assert.Error(t, err)
}

// TestExistingLinks_MissingFile verifies a missing feed yields an empty
// set
func TestExistingLinks_MissingFile(t *testing.T) {
	links := ExistingLinks(filepath.Join(t.TempDir(), "feed_none.xml"), testLogger())

	assert.Empty(t, links)
}

// TestExistingLinks_CorruptFile verifies malformed XML yields an empty
// set instead of an error
func TestExistingLinks_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed_bad.xml")
	require.NoError(t, os.WriteFile(path, []byte("<rss><channel>"), 0o644))

	links := ExistingLinks(path, testLogger())

	assert.Empty(t, links)
}

// TestExistingLinks_ReadsWrittenFeed verifies links from a generated feed
// are recovered
func TestExistingLinks_ReadsWrittenFeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed_test.xml")
	require.NoError(t, WriteFile(Build(testMeta(), testArticles(), true, time.Now()), path))

	links := ExistingLinks(path, testLogger())

	assert.Len(t, links, 2)
	assert.True(t, links["https://www.anthropic.com/engineering/older"])
	assert.True(t, links["https://www.anthropic.com/engineering/newer"])
}
