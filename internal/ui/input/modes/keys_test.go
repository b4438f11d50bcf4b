package modes

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"keydash/internal/query"
)

func TestQueryKeys(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []query.Key
		ok   bool
	}{
		{"runes", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(":r")}, []query.Key{query.Rune(':'), query.Rune('r')}, true},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []query.Key{query.Rune(' ')}, true},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, []query.Key{query.Special(query.KeyBackspace)}, true},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []query.Key{query.Special(query.KeyEnter)}, true},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, []query.Key{query.Special(query.KeyUp)}, true},
		{"ctrl+n", tea.KeyMsg{Type: tea.KeyCtrlN}, []query.Key{query.Special(query.KeyDown)}, true},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, []query.Key{query.Special(query.KeyEscape)}, true},
		{"alt runes", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true}, nil, false},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := QueryKeys(tt.msg)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
