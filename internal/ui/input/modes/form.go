package modes

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"keydash/internal/domain"
	"keydash/internal/query"
	"keydash/internal/ui/input/types"
)

// Form field positions
const (
	FieldName = iota
	FieldURL
	FieldShortcut
)

// Field is the render state of one form input
type Field struct {
	Label   string
	View    string
	Focused bool
}

// FormMode is the bookmark creation form opened by the new command
type FormMode struct {
	labels  []string
	inputs  []textinput.Model
	focused int
	pageID  string
}

func NewFormMode() *FormMode {
	m := &FormMode{labels: []string{"Name", "URL", "Shortcut"}}

	for i := range m.labels {
		ti := textinput.New()
		ti.Prompt = "" // Prompt is handled in the UI layer
		switch i {
		case FieldName:
			ti.Placeholder = "Go Blog"
			ti.CharLimit = 120
		case FieldURL:
			ti.Placeholder = "https://go.dev/blog"
			ti.CharLimit = 2048
		case FieldShortcut:
			ti.Placeholder = "gb"
			ti.CharLimit = 32
		}
		m.inputs = append(m.inputs, ti)
	}
	return m
}

func (m *FormMode) Name() string {
	return "new-bookmark"
}

// Enter resets the form. data is the query.CreationContext that opened it.
func (m *FormMode) Enter(ctx types.Context, data interface{}) []types.Action {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.pageID = ctx.CurrentPage()

	if c, ok := data.(query.CreationContext); ok {
		if c.PageID != "" {
			m.pageID = c.PageID
		}
		m.inputs[FieldName].SetValue(c.Name)
	}

	start := FieldName
	if m.inputs[FieldName].Value() != "" {
		start = FieldURL
	}
	m.focus(start)
	return nil
}

func (m *FormMode) Exit(ctx types.Context) []types.Action {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	return nil
}

func (m *FormMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc":
		return []types.Action{
			types.CancelFormAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "tab", "down":
		m.focus((m.focused + 1) % len(m.inputs))
		return nil, true
	case "shift+tab", "up":
		m.focus((m.focused - 1 + len(m.inputs)) % len(m.inputs))
		return nil, true
	case "enter":
		if m.focused < len(m.inputs)-1 {
			m.focus(m.focused + 1)
			return nil, true
		}
		return []types.Action{
			types.SubmitBookmarkAction{PageID: m.pageID, Bookmark: m.Bookmark()},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}

	// Let the handler feed the key to the focused input
	return nil, false
}

// Update feeds a message to the focused input
func (m *FormMode) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return cmd
}

// Bookmark returns the bookmark described by the current field values
func (m *FormMode) Bookmark() domain.Bookmark {
	return domain.Bookmark{
		Name:     strings.TrimSpace(m.inputs[FieldName].Value()),
		URL:      strings.TrimSpace(m.inputs[FieldURL].Value()),
		Shortcut: strings.TrimSpace(m.inputs[FieldShortcut].Value()),
	}
}

// PageID returns the page the bookmark will be added to
func (m *FormMode) PageID() string {
	return m.pageID
}

// Fields returns the render state of every input
func (m *FormMode) Fields() []Field {
	out := make([]Field, len(m.inputs))
	for i, ti := range m.inputs {
		out[i] = Field{Label: m.labels[i], View: ti.View(), Focused: i == m.focused}
	}
	return out
}

func (m *FormMode) focus(i int) {
	m.inputs[m.focused].Blur()
	m.focused = i
	m.inputs[m.focused].Focus()
}
