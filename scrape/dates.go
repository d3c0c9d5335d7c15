package scrape

import (
	"strings"
	"time"
)

// dateFormats are the date renderings observed on the listing pages over
// time, tried strictly in order. The numeric layouts accept both padded
// and unpadded day/month digits.
var dateFormats = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"January 2 2006",
	"2006-01-02",
	"1/2/2006",
}

var monthAbbrevs = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// ParseDate parses free-text listing dates against the known formats,
// first successful parse wins. The result is in UTC. ok is false when no
// format matches; the caller decides the fallback (cached date or now).
func ParseDate(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, text); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// LooksLikeDate reports whether text contains a month abbreviation. The
// category and date selectors can collide on the same generic "detail
// text" class, so category extraction uses this to reject dates.
func LooksLikeDate(text string) bool {
	for _, month := range monthAbbrevs {
		if strings.Contains(text, month) {
			return true
		}
	}
	return false
}

// Midnight zeroes the time-of-day, keeping the calendar date in UTC.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
