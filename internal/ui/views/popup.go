package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay draws popup over a greyed copy of mainContent. The
// popup is centered horizontally and sits in the upper third.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popup string, height, width int) string {
	baseLines := strings.Split(StripANSI(mainContent), "\n")
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}

	popupLines := strings.Split(popup, "\n")
	popupW := lipgloss.Width(popup)

	x := (width - popupW) / 2
	if x < 0 {
		x = 0
	}
	y := (height - len(popupLines)) / 3
	if y < 0 {
		y = 0
	}

	for len(baseLines) < y+len(popupLines) {
		baseLines = append(baseLines, "")
	}

	out := make([]string, len(baseLines))
	for row, line := range baseLines {
		if row >= y && row < y+len(popupLines) {
			out[row] = splice(line, popupLines[row-y], x, popupW)
		} else {
			out[row] = backdrop.Render(line)
		}
	}
	return strings.Join(out, "\n")
}

// splice replaces w cells of the plain line starting at column x with
// the styled overlay line.
func splice(plain, overlay string, x, w int) string {
	left := runewidth.Truncate(plain, x, "")
	if gap := x - runewidth.StringWidth(left); gap > 0 {
		left += strings.Repeat(" ", gap)
	}

	if pad := w - lipgloss.Width(overlay); pad > 0 {
		overlay += strings.Repeat(" ", pad)
	}

	return backdrop.Render(left) + overlay + backdrop.Render(skipCells(plain, x+w))
}

// skipCells drops the first n display cells of s
func skipCells(s string, n int) string {
	cells := 0
	for i, r := range s {
		if cells >= n {
			return s[i:]
		}
		cells += runewidth.RuneWidth(r)
	}
	return ""
}

// backdrop greys out the content behind a popup
var backdrop = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes color and style sequences
func StripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}
