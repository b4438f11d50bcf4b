package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"keydash/internal/ui/input/types"
)

// NormalMode routes keystrokes to the query interpreter. Keys the
// interpreter would ignore while closed drive page switching and help.
type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context, data interface{}) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true
	}

	if !ctx.QueryOpen() {
		switch msg.Type {
		case tea.KeyTab:
			if ctx.PageCount() > 1 {
				return []types.Action{types.CyclePageAction{Delta: 1}}, true
			}
			return nil, true
		case tea.KeyShiftTab:
			if ctx.PageCount() > 1 {
				return []types.Action{types.CyclePageAction{Delta: -1}}, true
			}
			return nil, true
		case tea.KeyF1:
			return []types.Action{types.ShowHelpAction{}}, true
		case tea.KeyEsc:
			return []types.Action{types.ChangeModeAction{Mode: types.ModeConfirmQuit}}, true
		}
	}

	keys, ok := QueryKeys(msg)
	if !ok {
		return nil, false
	}
	actions := make([]types.Action, 0, len(keys))
	for _, k := range keys {
		actions = append(actions, types.QueryKeyAction{Key: k})
	}
	return actions, true
}
