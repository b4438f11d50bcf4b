package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"keydash/internal/ui/input/modes"
	"keydash/internal/ui/input/types"
)

// Handler is the input routing layer. It owns the current mode and turns
// terminal keys into actions for the model.
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	form        *modes.FormMode
}

func New() *Handler {
	h := &Handler{
		currentMode: types.ModeNormal,
		modes:       make(map[types.Mode]types.ModeHandler),
		form:        modes.NewFormMode(),
	}

	// Register all mode handlers
	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeForm] = h.form
	h.modes[types.ModeConfirmQuit] = modes.NewConfirmMode()

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	var cmd tea.Cmd
	var allActions []types.Action

	// Unconsumed keys go to modes that own text inputs
	if !consumed {
		if u, ok := handler.(types.Updater); ok {
			return nil, u.Update(msg)
		}
		return nil, nil
	}

	// Handle mode changes
	for _, action := range actions {
		if changeMode, ok := action.(types.ChangeModeAction); ok {
			allActions = append(allActions, h.switchMode(changeMode, ctx)...)
			if h.currentMode == types.ModeForm {
				cmd = textinput.Blink
			}
		} else {
			allActions = append(allActions, action)
		}
	}

	return allActions, cmd
}

// ChangeMode switches modes from outside key handling, e.g. when a query
// command opens the creation form.
func (h *Handler) ChangeMode(mode types.Mode, data interface{}, ctx types.Context) ([]types.Action, tea.Cmd) {
	actions := h.switchMode(types.ChangeModeAction{Mode: mode, Data: data}, ctx)
	if mode == types.ModeForm {
		return actions, textinput.Blink
	}
	return actions, nil
}

func (h *Handler) switchMode(change types.ChangeModeAction, ctx types.Context) []types.Action {
	var out []types.Action

	// Exit current mode
	if current := h.modes[h.currentMode]; current != nil {
		out = append(out, current.Exit(ctx)...)
	}

	h.currentMode = change.Mode

	// Enter new mode
	if next := h.modes[h.currentMode]; next != nil {
		out = append(out, next.Enter(ctx, change.Data)...)
	}
	return out
}

// Update handles non-keyboard messages such as cursor blinks
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if u, ok := h.modes[h.currentMode].(types.Updater); ok {
		return u.Update(msg)
	}
	return nil
}

func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

// Form returns the creation form for rendering
func (h *Handler) Form() *modes.FormMode {
	return h.form
}

func (h *Handler) RegisterMode(mode types.Mode, handler types.ModeHandler) {
	h.modes[mode] = handler
}
