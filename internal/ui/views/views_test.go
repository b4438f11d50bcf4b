package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keydash/internal/domain"
	"keydash/internal/query"
)

func testStyles() *Styles {
	return NewStyles(domain.BuiltinThemes[0], "m")
}

func TestHighlightSpan(t *testing.T) {
	base := lipgloss.NewStyle()
	hl := lipgloss.NewStyle().Bold(true)

	got := StripANSI(HighlightSpan("GitHub Issues", query.Span{Start: 7, Length: 3}, base, hl))
	assert.Equal(t, "GitHub Issues", got)

	// out-of-range spans are clamped instead of panicking
	got = StripANSI(HighlightSpan("Go", query.Span{Start: 1, Length: 10}, base, hl))
	assert.Equal(t, "Go", got)
	got = StripANSI(HighlightSpan("Go", query.Span{Start: 5, Length: 1}, base, hl))
	assert.Equal(t, "Go", got)
}

func TestNewStyles_FontSizeSetsCellWidth(t *testing.T) {
	assert.Equal(t, 16, NewStyles(domain.BuiltinThemes[0], "xs").CellWidth)
	assert.Equal(t, 36, NewStyles(domain.BuiltinThemes[0], "xl").CellWidth)
	assert.Equal(t, 24, NewStyles(domain.BuiltinThemes[0], "bogus").CellWidth)
}

func TestGridRenderer_CategoriesAndColumns(t *testing.T) {
	g := NewGridRenderer(testStyles())
	out := StripANSI(g.RenderGrid([]domain.Bookmark{
		{Name: "Docs", Shortcut: "d", Category: "Work"},
		{Name: "GitHub", Shortcut: "g"},
		{Name: "Mail", Category: "Work"},
		{Name: "Reddit", Category: "Fun"},
	}, 2))

	assert.Contains(t, out, "[g] GitHub")
	assert.Contains(t, out, "[d] Docs")

	iGitHub := strings.Index(out, "GitHub")
	iWork := strings.Index(out, "Work")
	iFun := strings.Index(out, "Fun")
	assert.Less(t, iGitHub, iWork, "uncategorized first")
	assert.Less(t, iWork, iFun, "categories keep first appearance order")

	// Docs and Mail share a row with two columns
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Docs") {
			assert.Contains(t, line, "Mail")
		}
	}
}

func TestGridRenderer_Empty(t *testing.T) {
	g := NewGridRenderer(testStyles())
	assert.Contains(t, StripANSI(g.RenderGrid(nil, 4)), ":new")
}

func TestGridRenderer_Tabs(t *testing.T) {
	g := NewGridRenderer(testStyles())
	out := StripANSI(g.RenderTabs([]domain.Page{{ID: "work", Name: "Work"}, {ID: "fun"}}, "work"))
	assert.Contains(t, out, "Work")
	assert.Contains(t, out, "fun")
}

func TestOverlayRenderer(t *testing.T) {
	o := NewOverlayRenderer(testStyles())

	t.Run("no matches placeholder", func(t *testing.T) {
		out := StripANSI(o.Render(query.State{Open: true, Buffer: "zz", Selected: -1, NoMatches: true}, "nothing here", 80))
		assert.Contains(t, out, "zz")
		assert.Contains(t, out, "nothing here")
	})

	t.Run("pending confirmation", func(t *testing.T) {
		st := query.State{
			Open:   true,
			Buffer: ":remove",
			Mode:   query.ModeCommand,
			Candidates: []query.Candidate{
				{DisplayName: "yes", Kind: query.KindCommand},
				{DisplayName: "no", Kind: query.KindCommand},
			},
			Selected: 0,
			Pending:  &query.Confirmation{Command: "remove", Subject: "Reddit"},
		}
		out := StripANSI(o.Render(st, "no matches", 80))
		assert.Contains(t, out, `Remove "Reddit"?`)
		assert.Contains(t, out, "› yes")
		assert.NotContains(t, out, "no matches")
	})

	t.Run("scrolls to the selection", func(t *testing.T) {
		var cs []query.Candidate
		for i := 0; i < 15; i++ {
			cs = append(cs, query.Candidate{DisplayName: string(rune('a' + i))})
		}
		out := StripANSI(o.Render(query.State{Open: true, Buffer: "x", Candidates: cs, Selected: 12}, "", 80))
		assert.Contains(t, out, "› m")
		assert.Contains(t, out, "2 more")
	})
}

func TestPopupRenderer_SplicesOverBase(t *testing.T) {
	p := NewPopupRenderer(testStyles())
	base := strings.Repeat(strings.Repeat(".", 20)+"\n", 5)

	out := StripANSI(p.RenderPopupOverlay(base, "XX\nYY", 6, 20))
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 3)

	assert.Equal(t, strings.Repeat(".", 9)+"XX"+strings.Repeat(".", 9), lines[1])
	assert.Equal(t, strings.Repeat(".", 9)+"YY"+strings.Repeat(".", 9), lines[2])
	assert.Equal(t, strings.Repeat(".", 20), lines[0])
}

func TestRenderer_ShowsOverlayOnlyWhenOpen(t *testing.T) {
	r := NewRenderer(testStyles())
	state := ViewState{
		Width:          80,
		Height:         20,
		Pages:          []domain.Page{{ID: "home", Name: "Home"}},
		CurrentPage:    "home",
		Bookmarks:      []domain.Bookmark{{Name: "GitHub", Shortcut: "g"}},
		Columns:        4,
		NoMatchesLabel: "no matches",
	}

	closed := StripANSI(r.Render(state))
	assert.Contains(t, closed, "GitHub")
	assert.NotContains(t, closed, "key ")

	state.Query = query.State{Open: true, Buffer: "g", Candidates: []query.Candidate{{DisplayName: "GitHub", ShortcutLabel: "g"}}}
	open := StripANSI(r.Render(state))
	assert.Contains(t, open, "key g")
}
