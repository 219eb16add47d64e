package components

import (
	"github.com/insterion/ev-log/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// a transient notice (undo countdown, save confirmation) on the right.
func RenderStatusBar(width int, hints, notice string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " " + hints
	right := ""
	if notice != "" {
		noticeStyle := lipgloss.NewStyle().Foreground(t.Yellow)
		right = noticeStyle.Render(notice) + " "
	}

	// Pad middle
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
