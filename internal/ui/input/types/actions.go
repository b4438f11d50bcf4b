package types

import (
	"keydash/internal/domain"
	"keydash/internal/query"
)

// QueryKeyAction forwards one keystroke to the query interpreter
type QueryKeyAction struct {
	Key query.Key
}

func (a QueryKeyAction) Type() string { return "query_key" }

// CyclePageAction switches the dashboard page
type CyclePageAction struct {
	Delta int
}

func (a CyclePageAction) Type() string { return "cycle_page" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// SubmitBookmarkAction is emitted when the creation form is confirmed
type SubmitBookmarkAction struct {
	PageID   string
	Bookmark domain.Bookmark
}

func (a SubmitBookmarkAction) Type() string { return "submit_bookmark" }

type CancelFormAction struct{}

func (a CancelFormAction) Type() string { return "cancel_form" }

type ShowHelpAction struct{}

func (a ShowHelpAction) Type() string { return "show_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C
}

func (a QuitAction) Type() string { return "quit" }
