package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"keydash/internal/query"
)

// MaxOverlayRows bounds how many candidates are visible at once
const MaxOverlayRows = 10

// OverlayRenderer draws the query overlay
type OverlayRenderer struct {
	styles *Styles
}

// NewOverlayRenderer creates a new overlay renderer
func NewOverlayRenderer(styles *Styles) *OverlayRenderer {
	return &OverlayRenderer{styles: styles}
}

// Render draws the buffer, the candidate list and, when the buffer
// resolves to nothing, the no-matches placeholder.
func (o *OverlayRenderer) Render(st query.State, noMatches string, width int) string {
	inner := width - 4
	if inner > 72 {
		inner = 72
	}
	if inner < 20 {
		inner = 20
	}

	var lines []string
	lines = append(lines, o.styles.Prompt.Render(modeLabel(st.Mode)+" ")+st.Buffer+"▏")

	if st.Pending != nil {
		lines = append(lines, o.styles.Confirm.Render(fmt.Sprintf("Remove %q?", st.Pending.Subject)))
	}

	if st.NoMatches {
		lines = append(lines, o.styles.Dim.Render(noMatches))
	}

	start := 0
	if st.Selected >= MaxOverlayRows {
		start = st.Selected - MaxOverlayRows + 1
	}
	end := start + MaxOverlayRows
	if end > len(st.Candidates) {
		end = len(st.Candidates)
	}
	for i := start; i < end; i++ {
		lines = append(lines, o.renderRow(st.Candidates[i], i == st.Selected, inner))
	}
	if hidden := len(st.Candidates) - end; hidden > 0 {
		lines = append(lines, o.styles.Dim.Render(fmt.Sprintf("… %d more", hidden)))
	}

	return o.styles.Overlay.Width(inner).Render(strings.Join(lines, "\n"))
}

func (o *OverlayRenderer) renderRow(c query.Candidate, selected bool, width int) string {
	marker := "  "
	if selected {
		marker = "› "
	}

	name := HighlightSpan(c.DisplayName, c.Match, lipgloss.NewStyle(), o.styles.Highlight)
	row := marker + name
	if c.ShortcutLabel != "" {
		row += " " + o.styles.Shortcut.Render(c.ShortcutLabel)
	}
	if c.Detail != "" {
		room := width - lipgloss.Width(row) - 2
		if room > 3 {
			row += "  " + o.styles.Dim.Render(truncate(c.Detail, room))
		}
	}

	if selected {
		pad := width - lipgloss.Width(row)
		if pad > 0 {
			row += strings.Repeat(" ", pad)
		}
		return o.styles.SelectionBg.Render(row)
	}
	return row
}

// HighlightSpan renders the span of text with hl and the rest with base.
// Spans are counted in runes and clamped to the text.
func HighlightSpan(text string, span query.Span, base, hl lipgloss.Style) string {
	rs := []rune(text)
	start, end := span.Start, span.Start+span.Length
	if start < 0 {
		start = 0
	}
	if end > len(rs) {
		end = len(rs)
	}
	if span.Length <= 0 || start >= end {
		return base.Render(text)
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString(base.Render(string(rs[:start])))
	}
	b.WriteString(hl.Render(string(rs[start:end])))
	if end < len(rs) {
		b.WriteString(base.Render(string(rs[end:])))
	}
	return b.String()
}

func modeLabel(m query.Mode) string {
	switch m {
	case query.ModeCommand:
		return "cmd"
	case query.ModeFinder:
		return "find"
	case query.ModeFuzzy:
		return "name"
	default:
		return "key"
	}
}
