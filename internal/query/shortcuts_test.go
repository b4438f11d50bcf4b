package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keydash/internal/domain"
)

func TestShortcutIndex_LookupEmptyReturnsAllWithShortcut(t *testing.T) {
	bookmarks := []domain.Bookmark{
		{Name: "A", Shortcut: "a"},
		{Name: "Blank", Shortcut: "   "},
		{Name: "None"},
		{Name: "B", Shortcut: "B"},
	}
	idx := NewShortcutIndex(bookmarks)

	got := idx.Lookup("")
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, "B", got[1].Name)
	assert.Equal(t, 2, idx.Len())
}

func TestShortcutIndex_CaseInsensitivePrefix(t *testing.T) {
	idx := NewShortcutIndex([]domain.Bookmark{
		{Name: "GitHub Issues", Shortcut: "GI"},
		{Name: "GitHub", Shortcut: "G"},
		{Name: "Mail", Shortcut: "m"},
	})

	got := idx.Lookup("g")
	require.Len(t, got, 2)
	assert.Equal(t, "GitHub Issues", got[0].Name, "lookup keeps original order")

	SortByShortcutLength(got)
	assert.Equal(t, "GitHub", got[0].Name)
	assert.Empty(t, idx.Lookup("x"))
}

func TestShortcutIndex_ExactAndLongerMatch(t *testing.T) {
	idx := NewShortcutIndex([]domain.Bookmark{
		{Name: "GitHub", Shortcut: "G"},
		{Name: "GitHub Issues", Shortcut: "GI"},
		{Name: "Dup 1", Shortcut: "d"},
		{Name: "Dup 2", Shortcut: "D"},
	})

	b, ok := idx.Exact("gi")
	require.True(t, ok)
	assert.Equal(t, "GitHub Issues", b.Name)

	_, ok = idx.Exact("d")
	assert.False(t, ok, "duplicate shortcuts are ambiguous")

	assert.True(t, idx.HasLongerMatch("g"))
	assert.False(t, idx.HasLongerMatch("GI"))
	assert.False(t, idx.HasLongerMatch("d"))
}

func TestShortcutIndex_RebuildReplaces(t *testing.T) {
	idx := NewShortcutIndex([]domain.Bookmark{{Name: "Old", Shortcut: "o"}})
	idx.Rebuild([]domain.Bookmark{{Name: "New", Shortcut: "n"}})

	assert.Empty(t, idx.Lookup("o"))
	assert.Len(t, idx.Lookup("n"), 1)
}

func TestSortByShortcutLength_Stable(t *testing.T) {
	list := []domain.Bookmark{
		{Name: "long", Shortcut: "abc"},
		{Name: "first", Shortcut: "ab"},
		{Name: "second", Shortcut: "ax"},
		{Name: "short", Shortcut: "a"},
	}
	SortByShortcutLength(list)

	assert.Equal(t, []string{"short", "first", "second", "long"},
		[]string{list[0].Name, list[1].Name, list[2].Name, list[3].Name})
}
