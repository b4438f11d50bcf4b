package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"keydash/internal/domain"
)

// GridRenderer draws the bookmarks of one page
type GridRenderer struct {
	styles *Styles
}

// NewGridRenderer creates a new grid renderer
func NewGridRenderer(styles *Styles) *GridRenderer {
	return &GridRenderer{styles: styles}
}

// RenderTabs renders the page tab bar
func (g *GridRenderer) RenderTabs(pages []domain.Page, current string) string {
	tabs := make([]string, 0, len(pages))
	for _, p := range pages {
		name := p.Name
		if name == "" {
			name = p.ID
		}
		if p.ID == current {
			tabs = append(tabs, g.styles.ActiveTab.Render(name))
		} else {
			tabs = append(tabs, g.styles.Tab.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// RenderGrid lays bookmarks out in columns, one section per category in
// order of first appearance. Uncategorized bookmarks come first.
func (g *GridRenderer) RenderGrid(bookmarks []domain.Bookmark, columns int) string {
	if len(bookmarks) == 0 {
		return g.styles.Dim.Render("No bookmarks on this page yet. Type :new to add one.")
	}
	if columns < domain.MinColumns {
		columns = domain.MinColumns
	}

	var seen []string
	sections := make(map[string][]domain.Bookmark)
	for _, b := range bookmarks {
		if _, ok := sections[b.Category]; !ok {
			seen = append(seen, b.Category)
		}
		sections[b.Category] = append(sections[b.Category], b)
	}

	var order []string
	if _, ok := sections[""]; ok {
		order = append(order, "")
	}
	for _, c := range seen {
		if c != "" {
			order = append(order, c)
		}
	}

	var blocks []string
	for _, category := range order {
		if category != "" {
			blocks = append(blocks, g.styles.Category.Render(category))
		}
		blocks = append(blocks, g.renderRows(sections[category], columns))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (g *GridRenderer) renderRows(bookmarks []domain.Bookmark, columns int) string {
	var rows []string
	for start := 0; start < len(bookmarks); start += columns {
		end := start + columns
		if end > len(bookmarks) {
			end = len(bookmarks)
		}

		cells := make([]string, 0, columns)
		for _, b := range bookmarks[start:end] {
			cells = append(cells, g.renderCell(b))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func (g *GridRenderer) renderCell(b domain.Bookmark) string {
	label := truncate(b.Name, g.styles.CellWidth-1)
	if b.Shortcut != "" {
		label = g.styles.Shortcut.Render("["+b.Shortcut+"]") + " " +
			truncate(b.Name, g.styles.CellWidth-len([]rune(b.Shortcut))-4)
	}
	return g.styles.Cell.Render(label)
}

// truncate shortens s to width runes, marking the cut with an ellipsis
func truncate(s string, width int) string {
	rs := []rune(s)
	if width <= 0 {
		return ""
	}
	if len(rs) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(rs[:width-1]) + "…"
}
