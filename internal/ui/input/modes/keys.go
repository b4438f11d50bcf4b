package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"keydash/internal/query"
)

// QueryKeys translates a terminal key into interpreter keystrokes. Pasted
// text arrives as one message and yields one keystroke per rune. The
// second result is false for keys the interpreter has no use for.
func QueryKeys(msg tea.KeyMsg) ([]query.Key, bool) {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return nil, false
		}
		keys := make([]query.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, query.Rune(r))
		}
		return keys, len(keys) > 0
	case tea.KeySpace:
		return []query.Key{query.Rune(' ')}, true
	case tea.KeyBackspace:
		return []query.Key{query.Special(query.KeyBackspace)}, true
	case tea.KeyEnter:
		return []query.Key{query.Special(query.KeyEnter)}, true
	case tea.KeyUp, tea.KeyCtrlP:
		return []query.Key{query.Special(query.KeyUp)}, true
	case tea.KeyDown, tea.KeyCtrlN:
		return []query.Key{query.Special(query.KeyDown)}, true
	case tea.KeyEsc:
		return []query.Key{query.Special(query.KeyEscape)}, true
	}
	return nil, false
}
