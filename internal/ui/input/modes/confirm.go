package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"keydash/internal/ui/input/types"
)

// ConfirmMode asks before leaving the dashboard
type ConfirmMode struct{}

func NewConfirmMode() *ConfirmMode {
	return &ConfirmMode{}
}

func (m *ConfirmMode) Name() string {
	return "quit-confirm"
}

func (m *ConfirmMode) Enter(ctx types.Context, data interface{}) []types.Action {
	return nil
}

func (m *ConfirmMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c", "y", "Y", "enter":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "n", "N":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	}

	// Anything else is swallowed so that it does not leak into the query
	return nil, true
}
