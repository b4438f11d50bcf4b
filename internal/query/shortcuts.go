package query

import (
	"sort"
	"strings"
	"unicode/utf8"

	"keydash/internal/domain"
)

type shortcutEntry struct {
	key      string
	bookmark domain.Bookmark
}

// ShortcutIndex maps lower-cased shortcuts to bookmarks. Duplicate
// shortcuts are kept in their original order.
type ShortcutIndex struct {
	entries []shortcutEntry
	byKey   map[string][]int
}

// NewShortcutIndex creates an index over bookmarks
func NewShortcutIndex(bookmarks []domain.Bookmark) *ShortcutIndex {
	idx := &ShortcutIndex{}
	idx.Rebuild(bookmarks)
	return idx
}

// Rebuild replaces the whole index. Bookmarks with a blank shortcut are
// skipped.
func (s *ShortcutIndex) Rebuild(bookmarks []domain.Bookmark) {
	s.entries = s.entries[:0]
	s.byKey = make(map[string][]int, len(bookmarks))

	for _, b := range bookmarks {
		key := normalizeShortcut(b.Shortcut)
		if key == "" {
			continue
		}
		s.byKey[key] = append(s.byKey[key], len(s.entries))
		s.entries = append(s.entries, shortcutEntry{key: key, bookmark: b})
	}
}

// Len returns the number of indexed bookmarks
func (s *ShortcutIndex) Len() int {
	return len(s.entries)
}

// Lookup returns every bookmark whose shortcut starts with prefix, in
// original order.
func (s *ShortcutIndex) Lookup(prefix string) []domain.Bookmark {
	prefix = strings.ToLower(prefix)

	var out []domain.Bookmark
	for _, e := range s.entries {
		if strings.HasPrefix(e.key, prefix) {
			out = append(out, e.bookmark)
		}
	}
	return out
}

// Exact returns the bookmark bound to shortcut. A shortcut shared by
// several bookmarks is ambiguous and reports false.
func (s *ShortcutIndex) Exact(shortcut string) (domain.Bookmark, bool) {
	hits := s.byKey[normalizeShortcut(shortcut)]
	if len(hits) != 1 {
		return domain.Bookmark{}, false
	}
	return s.entries[hits[0]].bookmark, true
}

// HasLongerMatch reports whether another shortcut has exact as a strict
// prefix.
func (s *ShortcutIndex) HasLongerMatch(exact string) bool {
	exact = normalizeShortcut(exact)
	for key := range s.byKey {
		if key != exact && strings.HasPrefix(key, exact) {
			return true
		}
	}
	return false
}

// SortByShortcutLength orders bookmarks shortest shortcut first, keeping
// the original order among equal lengths.
func SortByShortcutLength(bookmarks []domain.Bookmark) {
	sort.SliceStable(bookmarks, func(i, j int) bool {
		return utf8.RuneCountInString(strings.TrimSpace(bookmarks[i].Shortcut)) <
			utf8.RuneCountInString(strings.TrimSpace(bookmarks[j].Shortcut))
	})
}

func normalizeShortcut(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
