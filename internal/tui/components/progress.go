package components

import (
	"fmt"

	"sitebudget/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForUtilization maps budget utilization (0-100) to the risk tier
// colors: green under 75, orange to 90, red beyond.
func ColorForUtilization(pct float64) string {
	t := theme.Active
	switch {
	case pct > 90:
		return string(t.Red)
	case pct > 75:
		return string(t.Orange)
	default:
		return string(t.Green)
	}
}

// BudgetBar renders a labeled utilization bar with percentage, colored
// by risk tier. pct is 0-100 and may exceed 100; the bar clamps, the
// number does not.
func BudgetBar(label string, pct float64, labelW, barWidth int) string {
	t := theme.Active

	frac := pct / 100
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForUtilization(pct)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForUtilization(pct))).Bold(true)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		" " +
		bar.ViewAs(frac) +
		" " +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", pct))
}

// HealthGauge renders the portfolio health score as a wide bar.
func HealthGauge(score float64, width int) string {
	t := theme.Active

	var color lipgloss.Color
	switch {
	case score >= 70:
		color = t.Green
	case score >= 40:
		color = t.Orange
	default:
		color = t.Red
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	scoreStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	return bar.ViewAs(score/100) + " " + scoreStyle.Render(fmt.Sprintf("%.0f/100", score))
}
