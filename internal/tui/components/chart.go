package components

import (
	"strings"

	"github.com/insterion/ev-log/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// HBar renders a horizontal bar scaled against maxValue.
func HBar(value, maxValue float64, maxWidth int, color lipgloss.Color) string {
	if maxValue <= 0 || value <= 0 || maxWidth <= 0 {
		return ""
	}
	t := theme.Active

	n := int(value / maxValue * float64(maxWidth))
	if n < 1 {
		n = 1
	}
	if n > maxWidth {
		n = maxWidth
	}

	filled := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", n))
	rest := lipgloss.NewStyle().Foreground(t.TextDim).Render(strings.Repeat("░", maxWidth-n))
	return filled + rest
}
