package components

import (
	"fmt"
	"strings"

	"sitebudget/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode block sparkline scaled to the series max.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		max = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / max * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(blocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Render(b.String())
}

// BarRow is one entry of a horizontal bar chart.
type BarRow struct {
	Label string
	Value float64
	Text  string // pre-formatted value text shown after the bar
}

// BarChart renders labeled horizontal bars scaled to the largest value.
// width is the total line width available.
func BarChart(rows []BarRow, width int) string {
	if len(rows) == 0 {
		return ""
	}
	t := theme.Active

	labelW := 0
	textW := 0
	var max float64
	for _, r := range rows {
		if len(r.Label) > labelW {
			labelW = len(r.Label)
		}
		if len(r.Text) > textW {
			textW = len(r.Text)
		}
		if r.Value > max {
			max = r.Value
		}
	}
	if max == 0 {
		max = 1
	}

	barW := width - labelW - textW - 4
	if barW < 5 {
		barW = 5
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	barStyle := lipgloss.NewStyle().Foreground(t.Accent)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	var b strings.Builder
	for i, r := range rows {
		n := int(r.Value / max * float64(barW))
		if n < 1 && r.Value > 0 {
			n = 1
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, r.Label)))
		b.WriteString("  ")
		b.WriteString(barStyle.Render(strings.Repeat("█", n)))
		b.WriteString(strings.Repeat(" ", barW-n))
		b.WriteString("  ")
		b.WriteString(textStyle.Render(fmt.Sprintf("%*s", textW, r.Text)))
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
