package query

import (
	"sort"
	"unicode"

	"keydash/internal/domain"
)

// ScoredMatch is a bookmark whose name contains the query
type ScoredMatch struct {
	Bookmark domain.Bookmark
	Span     Span
}

// FuzzyMatcher ranks bookmarks by case-insensitive substring containment.
// Earlier matches rank higher, then shorter names, then original order.
type FuzzyMatcher struct{}

// Search returns at most limit matches for query. A limit of zero or less
// means no limit. An empty query matches nothing.
func (FuzzyMatcher) Search(query string, bookmarks []domain.Bookmark, limit int) []ScoredMatch {
	needle := lowerRunes(query)
	if len(needle) == 0 {
		return nil
	}

	type scored struct {
		match   ScoredMatch
		nameLen int
	}

	var hits []scored
	for _, b := range bookmarks {
		name := lowerRunes(b.Name)
		at := indexRunes(name, needle)
		if at < 0 {
			continue
		}
		hits = append(hits, scored{
			match:   ScoredMatch{Bookmark: b, Span: Span{Start: at, Length: len(needle)}},
			nameLen: len(name),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].match.Span.Start != hits[j].match.Span.Start {
			return hits[i].match.Span.Start < hits[j].match.Span.Start
		}
		return hits[i].nameLen < hits[j].nameLen
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]ScoredMatch, len(hits))
	for i, h := range hits {
		out[i] = h.match
	}
	return out
}

// lowerRunes folds rune by rune so that offsets line up with the
// original string's runes.
func lowerRunes(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}

func indexRunes(haystack, needle []rune) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j, r := range needle {
			if haystack[i+j] != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
