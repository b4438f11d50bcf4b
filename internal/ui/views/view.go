package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"keydash/internal/domain"
	"keydash/internal/query"
	"keydash/internal/ui/input/modes"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Pages          []domain.Page
	CurrentPage    string
	Bookmarks      []domain.Bookmark
	Columns        int
	Query          query.State
	NoMatchesLabel string
	FormFields     []modes.Field // non-nil while the creation form is open
	FormPage       string
	ConfirmQuit    bool
	StatusMessage  string
	StatusIsError  bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles        *Styles
	gridRender    *GridRenderer
	overlayRender *OverlayRenderer
	popupRender   *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	r := &Renderer{}
	r.SetStyles(styles)
	return r
}

// SetStyles swaps the styles used by every sub-renderer
func (r *Renderer) SetStyles(styles *Styles) {
	r.styles = styles
	r.gridRender = NewGridRenderer(styles)
	r.overlayRender = NewOverlayRenderer(styles)
	r.popupRender = NewPopupRenderer(styles)
}

// Styles returns the active styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	title := r.styles.Title.Render("keydash")
	tabs := r.gridRender.RenderTabs(state.Pages, state.CurrentPage)
	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", tabs))
	content.WriteString("\n\n")

	content.WriteString(r.gridRender.RenderGrid(state.Bookmarks, state.Columns))
	content.WriteString("\n")

	content.WriteString(r.renderStatus(state))
	content.WriteString("\n")
	content.WriteString(r.renderHelp(state))

	main := content.String()

	switch {
	case state.FormFields != nil:
		return r.popupRender.RenderPopupOverlay(main, r.renderForm(state), state.Height, state.Width)
	case state.ConfirmQuit:
		popup := r.styles.Overlay.Render(r.styles.Confirm.Render("Quit keydash? (y/n)"))
		return r.popupRender.RenderPopupOverlay(main, popup, state.Height, state.Width)
	case state.Query.Open:
		popup := r.overlayRender.Render(state.Query, state.NoMatchesLabel, state.Width)
		return r.popupRender.RenderPopupOverlay(main, popup, state.Height, state.Width)
	}
	return main
}

func (r *Renderer) renderStatus(state ViewState) string {
	if state.StatusMessage == "" {
		return ""
	}
	if state.StatusIsError {
		return r.styles.StatusError.Render(state.StatusMessage)
	}
	return r.styles.Status.Render(state.StatusMessage)
}

func (r *Renderer) renderHelp(state ViewState) string {
	hints := []string{"type a shortcut", ": commands", "? search", "/ names"}
	if len(state.Pages) > 1 {
		hints = append(hints, "tab pages")
	}
	hints = append(hints, "f1 help", "esc quit")
	return r.styles.Help.Render(strings.Join(hints, " • "))
}

func (r *Renderer) renderForm(state ViewState) string {
	var lines []string
	lines = append(lines, r.styles.Title.Render(fmt.Sprintf("New bookmark on %s", state.FormPage)))
	lines = append(lines, "")
	for _, f := range state.FormFields {
		label := r.styles.FormLabel.Render(f.Label)
		if f.Focused {
			label = r.styles.Prompt.Inherit(r.styles.FormLabel).Render(f.Label)
		}
		lines = append(lines, label+" "+f.View)
	}
	lines = append(lines, "")
	lines = append(lines, r.styles.Help.Render("enter next/save • tab move • esc cancel"))
	return r.styles.Form.Render(strings.Join(lines, "\n"))
}
