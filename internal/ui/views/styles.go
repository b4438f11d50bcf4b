package views

import (
	"github.com/charmbracelet/lipgloss"

	"keydash/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	Category    lipgloss.Style
	Cell        lipgloss.Style
	Shortcut    lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Help        lipgloss.Style
	Overlay     lipgloss.Style
	Prompt      lipgloss.Style
	Highlight   lipgloss.Style
	SelectionBg lipgloss.Style
	Confirm     lipgloss.Style
	Form        lipgloss.Style
	FormLabel   lipgloss.Style

	// CellWidth is the grid cell width derived from the font size
	CellWidth int
}

// cellWidths maps font size ids to grid cell widths
var cellWidths = map[string]int{
	"xs": 16,
	"s":  20,
	"m":  24,
	"l":  30,
	"xl": 36,
}

// NewStyles creates styles for a theme and font size
func NewStyles(theme domain.Theme, fontSize string) *Styles {
	accent := lipgloss.Color(theme.Accent)
	muted := lipgloss.Color(theme.Muted)

	width, ok := cellWidths[fontSize]
	if !ok {
		width = cellWidths["m"]
	}

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		Tab: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Underline(true).
			Padding(0, 1),
		Category: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			MarginTop(1),
		Cell:     lipgloss.NewStyle().Width(width).PaddingRight(1),
		Shortcut: lipgloss.NewStyle().Foreground(muted),
		Dim:      lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(muted).
			MarginTop(1),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Help:        lipgloss.NewStyle().Faint(true),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		Prompt:      lipgloss.NewStyle().Foreground(accent).Bold(true),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Confirm:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")), // yellow
		Form: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(muted).
			Padding(1, 2),
		FormLabel: lipgloss.NewStyle().Width(10).Foreground(muted),
		CellWidth: width,
	}
}
