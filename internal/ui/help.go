package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"keydash/internal/query"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// RenderHelpContent generates help content with colors for the pager.
// Commands are listed from the live registry so custom handlers show up.
func (r *HelpRenderer) RenderHelpContent(commands *query.CommandRegistry) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(14)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	line := func(key, desc string) string {
		return fmt.Sprintf("  %s%s\n", keyStyle.Render(key), descStyle.Render(desc))
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("keydash Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Typing"))
	help.WriteString("\n")
	help.WriteString(line("a-z…", "Type a bookmark shortcut; a unique match opens at once"))
	help.WriteString(line("/", "Search bookmark names"))
	help.WriteString(line("?", "Search the web, e.g. ?g golang"))
	help.WriteString(line(":", "Run a command"))
	help.WriteString(line("Space", "Complete a command or finder name"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Overlay"))
	help.WriteString("\n")
	help.WriteString(line("↑/↓, ^P/^N", "Move the selection"))
	help.WriteString(line("Enter", "Open or run the selected entry"))
	help.WriteString(line("Backspace", "Delete one character"))
	help.WriteString(line("Esc", "Close the overlay"))
	help.WriteString("\n")

	if commands != nil {
		help.WriteString(sectionStyle.Render("Commands"))
		help.WriteString("\n")
		for _, name := range commands.Names() {
			h, ok := commands.Lookup(name)
			if !ok {
				continue
			}
			help.WriteString(line(":"+name, h.Description()))
		}
		help.WriteString("\n")
	}

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(line("Tab/Shift+Tab", "Next/previous page"))
	help.WriteString(line("F1", "Show this help"))
	help.WriteString(line("Esc", "Quit (asks first)"))
	help.WriteString(line("Ctrl+C", "Quit"))

	return help.String()
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
