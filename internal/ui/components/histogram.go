package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/ui/theme"
)

// Bar is one column of a Histogram.
type Bar struct {
	Label string
	Value int
}

// Histogram renders bars as horizontal rows scaled to the largest value.
// The row holding the largest value is highlighted.
func Histogram(bars []Bar, width int) string {
	peak := 0
	labelWidth := 0
	for _, b := range bars {
		if b.Value > peak {
			peak = b.Value
		}
		if w := lipgloss.Width(b.Label); w > labelWidth {
			labelWidth = w
		}
	}

	barWidth := width - labelWidth - 10
	if barWidth < 4 {
		barWidth = 4
	}

	var rows []string
	for _, b := range bars {
		n := 0
		if peak > 0 {
			n = b.Value * barWidth / peak
		}
		style := theme.ProgressFilled
		if b.Value == peak && peak > 0 {
			style = lipgloss.NewStyle().Background(theme.Accent)
		}
		label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(labelWidth).Render(b.Label)
		row := label + "  " + style.Render(strings.Repeat(" ", n)) +
			lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf(" %d", b.Value))
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}
