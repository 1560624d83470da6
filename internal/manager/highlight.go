package manager

import (
	"regexp"
	"strings"

	"github.com/Yugz29/DevNote/internal/model"
)

// Segment is one run of text, flagged when it matched the search query.
// The renderer styles matched runs; the text itself is never altered.
type Segment struct {
	Text  string
	Match bool
}

// HighlightSegments splits text into plain and matched runs for a query.
// Matching is literal and case-insensitive: the query is escaped before
// compiling, so "a.b" matches only the three characters a dot b. A blank
// query or no hits yields a single plain segment.
func HighlightSegments(text, query string) []Segment {
	query = strings.TrimSpace(query)
	if query == "" || text == "" {
		return []Segment{{Text: text}}
	}
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(query))
	if err != nil {
		return []Segment{{Text: text}}
	}
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []Segment{{Text: text}}
	}
	var segs []Segment
	prev := 0
	for _, loc := range locs {
		if loc[0] > prev {
			segs = append(segs, Segment{Text: text[prev:loc[0]]})
		}
		segs = append(segs, Segment{Text: text[loc[0]:loc[1]], Match: true})
		prev = loc[1]
	}
	if prev < len(text) {
		segs = append(segs, Segment{Text: text[prev:]})
	}
	return segs
}

// Matches reports whether text contains the query, with the same literal
// case-insensitive semantics as HighlightSegments.
func Matches(text, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(query))
}

// TargetIndex finds the position of an item inside a rendered collection so
// the view can scroll it into place. Returns -1 when the item is absent
// (deleted since the search ran, or on a page not yet loaded).
func TargetIndex[T model.Item](items []T, itemID string) int {
	for i, it := range items {
		if it.ItemID() == itemID {
			return i
		}
	}
	return -1
}
