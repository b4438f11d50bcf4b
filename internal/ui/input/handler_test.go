package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keydash/internal/domain"
	"keydash/internal/query"
	"keydash/internal/ui/input/types"
)

type fakeContext struct {
	open  bool
	page  string
	pages int
}

func (c fakeContext) QueryOpen() bool     { return c.open }
func (c fakeContext) CurrentPage() string { return c.page }
func (c fakeContext) PageCount() int      { return c.pages }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestHandler_RunesBecomeQueryKeys(t *testing.T) {
	h := New()
	ctx := fakeContext{page: "home", pages: 1}

	actions, _ := h.HandleKey(runes("gi"), ctx)
	assert.Equal(t, []types.Action{
		types.QueryKeyAction{Key: query.Rune('g')},
		types.QueryKeyAction{Key: query.Rune('i')},
	}, actions)
}

func TestHandler_TabCyclesPagesOnlyWhenClosed(t *testing.T) {
	h := New()

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, fakeContext{pages: 3})
	assert.Equal(t, []types.Action{types.CyclePageAction{Delta: 1}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyShiftTab}, fakeContext{pages: 3})
	assert.Equal(t, []types.Action{types.CyclePageAction{Delta: -1}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, fakeContext{pages: 1})
	assert.Empty(t, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, fakeContext{open: true, pages: 3})
	assert.Empty(t, actions)
}

func TestHandler_EscapeRoutesByOverlayState(t *testing.T) {
	h := New()

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, fakeContext{open: true})
	assert.Equal(t, []types.Action{types.QueryKeyAction{Key: query.Special(query.KeyEscape)}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())

	_, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, fakeContext{})
	assert.Equal(t, types.ModeConfirmQuit, h.CurrentMode())

	actions, _ = h.HandleKey(runes("x"), fakeContext{})
	assert.Empty(t, actions, "unrelated keys are swallowed while confirming")

	_, _ = h.HandleKey(runes("n"), fakeContext{})
	assert.Equal(t, types.ModeNormal, h.CurrentMode())

	_, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, fakeContext{})
	actions, _ = h.HandleKey(runes("y"), fakeContext{})
	assert.Equal(t, []types.Action{types.QuitAction{Force: true}}, actions)
}

func TestHandler_CtrlCAlwaysQuits(t *testing.T) {
	h := New()
	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlC}, fakeContext{open: true})
	assert.Equal(t, []types.Action{types.QuitAction{Force: true}}, actions)
}

func TestHandler_CreationForm(t *testing.T) {
	h := New()
	ctx := fakeContext{page: "home", pages: 2}

	_, cmd := h.ChangeMode(types.ModeForm, query.CreationContext{PageID: "fun", Name: "Go Blog"}, ctx)
	assert.NotNil(t, cmd)
	require.Equal(t, types.ModeForm, h.CurrentMode())

	fields := h.Form().Fields()
	require.Len(t, fields, 3)
	assert.True(t, fields[1].Focused, "name is prefilled so the URL field has focus")

	_, _ = h.HandleKey(runes("https://go.dev/blog"), ctx)

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Empty(t, actions)
	assert.True(t, h.Form().Fields()[2].Focused)

	_, _ = h.HandleKey(runes("gb"), ctx)
	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)

	require.Len(t, actions, 1)
	assert.Equal(t, types.SubmitBookmarkAction{
		PageID:   "fun",
		Bookmark: domain.Bookmark{Name: "Go Blog", URL: "https://go.dev/blog", Shortcut: "gb"},
	}, actions[0])
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestHandler_CreationFormCancel(t *testing.T) {
	h := New()
	ctx := fakeContext{page: "home"}

	_, _ = h.ChangeMode(types.ModeForm, nil, ctx)
	assert.True(t, h.Form().Fields()[0].Focused)
	assert.Equal(t, "home", h.Form().PageID())

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	assert.Equal(t, []types.Action{types.CancelFormAction{}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}
