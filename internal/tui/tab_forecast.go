package tui

import (
	"fmt"
	"strings"

	"sitebudget/internal/cli"
	"sitebudget/internal/tui/components"
	"sitebudget/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) viewForecast(width int) string {
	t := theme.Active

	if a.predicted == nil {
		body := lipgloss.NewStyle().Foreground(t.TextMuted).Render(
			"Not enough expense history for a forecast.\n" +
				"At least 7 recent expenses are needed.")
		return components.ContentCard("Cash Flow Forecast", body, width)
	}

	p := a.predicted

	metrics := []components.Metric{
		{Label: "Avg Daily Spend", Value: cli.FormatMoney(p.AverageDailySpend)},
		{Label: fmt.Sprintf("Predicted (%d days)", len(p.Days)), Value: cli.FormatMoney(p.TotalPredicted)},
		{Label: "Confidence", Value: fmt.Sprintf("%.0f%% → %.0f%%", p.Days[0].Confidence, p.Days[len(p.Days)-1].Confidence)},
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(metrics, width))
	b.WriteString("\n")

	// Predicted series sparkline
	values := make([]float64, len(p.Days))
	for i, d := range p.Days {
		values[i] = d.Predicted
	}
	spark := components.Sparkline(values, t.Blue)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	sparkBody := spark + "\n" + dimStyle.Render(fmt.Sprintf("%s to %s",
		cli.FormatDate(p.Days[0].Date), cli.FormatDate(p.Days[len(p.Days)-1].Date)))
	b.WriteString(components.ContentCard("Predicted Daily Spend", sparkBody, width))
	b.WriteString("\n")

	// First week in detail
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	var detail strings.Builder
	n := 7
	if n > len(p.Days) {
		n = len(p.Days)
	}
	for i := 0; i < n; i++ {
		d := p.Days[i]
		detail.WriteString(labelStyle.Render(cli.FormatDate(d.Date)))
		detail.WriteString("  ")
		detail.WriteString(valueStyle.Render(fmt.Sprintf("%10s", cli.FormatMoney(d.Predicted))))
		detail.WriteString(labelStyle.Render(fmt.Sprintf("   %.0f%% confidence", d.Confidence)))
		detail.WriteString("\n")
	}
	b.WriteString(components.ContentCard("Next 7 Days", strings.TrimRight(detail.String(), "\n"), width))

	return b.String()
}
