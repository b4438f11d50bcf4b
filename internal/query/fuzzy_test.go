package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keydash/internal/domain"
)

func TestFuzzyMatcher_EmptyAndMissing(t *testing.T) {
	var m FuzzyMatcher
	bookmarks := []domain.Bookmark{{Name: "GitHub"}}

	assert.Empty(t, m.Search("", bookmarks, 10))
	assert.Empty(t, m.Search("zzz", bookmarks, 10))
}

func TestFuzzyMatcher_Ranking(t *testing.T) {
	var m FuzzyMatcher
	bookmarks := []domain.Bookmark{
		{Name: "My Hub"},
		{Name: "Hub of things"},
		{Name: "Hubs"},
		{Name: "GitHub"},
	}

	got := m.Search("hub", bookmarks, 0)
	require.Len(t, got, 4)
	assert.Equal(t, "Hubs", got[0].Bookmark.Name, "earliest offset, shorter name")
	assert.Equal(t, "Hub of things", got[1].Bookmark.Name)
	// same offset and length keep their original order
	assert.Equal(t, "My Hub", got[2].Bookmark.Name)
	assert.Equal(t, "GitHub", got[3].Bookmark.Name)

	assert.Equal(t, Span{Start: 3, Length: 3}, got[3].Span)
}

func TestFuzzyMatcher_Limit(t *testing.T) {
	var m FuzzyMatcher
	bookmarks := []domain.Bookmark{{Name: "aa"}, {Name: "ab"}, {Name: "ac"}}

	assert.Len(t, m.Search("a", bookmarks, 2), 2)
	assert.Len(t, m.Search("a", bookmarks, 0), 3)
	assert.Len(t, m.Search("a", bookmarks, -1), 3)
}

func TestFuzzyMatcher_SpanCountsRunes(t *testing.T) {
	var m FuzzyMatcher
	got := m.Search("café", []domain.Bookmark{{Name: "Über Café"}}, 0)

	require.Len(t, got, 1)
	assert.Equal(t, Span{Start: 5, Length: 4}, got[0].Span)
}
