package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Cascade is an ordered list of CSS selectors tried against a candidate
// element. Selectors are evaluated in priority order and, within one
// selector, matched elements in document order; the first non-empty result
// wins. A candidate element can match a selector itself, not only through
// its descendants, so a bare anchor card works the same as a wrapper card.
type Cascade []string

// FirstText returns the first non-empty, whitespace-trimmed text the
// cascade finds. ok is false when no selector matched any element with
// text, which is distinct from a matched-but-empty element.
func (c Cascade) FirstText(sel *goquery.Selection) (string, bool) {
	return c.FirstTextWhere(sel, func(string) bool { return true })
}

// FirstTextWhere is FirstText restricted to texts accepted by keep.
// Rejected texts fall through to the next match in cascade order.
func (c Cascade) FirstTextWhere(sel *goquery.Selection, keep func(string) bool) (string, bool) {
	var found string
	var ok bool
	c.scan(sel, func(s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if text == "" || !keep(text) {
			return false
		}
		found, ok = text, true
		return true
	})
	return found, ok
}

// FirstAttr returns the first non-empty value of the named attribute the
// cascade finds.
func (c Cascade) FirstAttr(sel *goquery.Selection, name string) (string, bool) {
	var found string
	var ok bool
	c.scan(sel, func(s *goquery.Selection) bool {
		val, exists := s.Attr(name)
		val = strings.TrimSpace(val)
		if !exists || val == "" {
			return false
		}
		found, ok = val, true
		return true
	})
	return found, ok
}

// scan walks the cascade's matches in priority order, calling visit for
// each element until visit reports that it found what it wanted.
func (c Cascade) scan(sel *goquery.Selection, visit func(*goquery.Selection) bool) {
	for _, selector := range c {
		done := false
		matches := sel.Filter(selector).AddSelection(sel.Find(selector))
		matches.EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if visit(s) {
				done = true
				return false
			}
			return true
		})
		if done {
			return
		}
	}
}
