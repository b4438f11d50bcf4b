package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeForm
	ModeConfirmQuit
)

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	// QueryOpen reports whether the query overlay is showing
	QueryOpen() bool
	CurrentPage() string
	PageCount() int
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context, data interface{}) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}

// Updater is implemented by modes that consume non-key messages, such as
// cursor blinks for text inputs.
type Updater interface {
	Update(msg tea.Msg) tea.Cmd
}
