package tui

import (
	"fmt"
	"strings"
	"time"

	"sitebudget/internal/budget"
	"sitebudget/internal/cli"
	"sitebudget/internal/insight"
	"sitebudget/internal/tui/components"
	"sitebudget/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) viewOverview(width int) string {
	t := theme.Active
	totals := budget.PortfolioTotals(a.projects, a.expenses)

	metrics := []components.Metric{
		{Label: "Total Budget", Value: cli.FormatMoney(totals.Budget), Sub: fmt.Sprintf("%d projects", len(a.projects))},
		{Label: "Spent", Value: cli.FormatMoney(totals.Spent), Sub: cli.FormatPercent(totals.PercentUsed) + " used"},
		{Label: "Remaining", Value: cli.FormatMoney(totals.Remaining), Sub: fmt.Sprintf("%d expenses", len(a.expenses))},
		{Label: "Inventory", Value: cli.FormatMoney(a.invStats.TotalValue), Sub: fmt.Sprintf("%d items", a.invStats.TotalItems)},
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(metrics, width))
	b.WriteString("\n")

	// Health gauge
	gaugeW := components.CardInnerWidth(width) - 8
	if gaugeW > 60 {
		gaugeW = 60
	}
	b.WriteString(components.ContentCard("Portfolio Health", components.HealthGauge(a.budget.Score, gaugeW), width))
	b.WriteString("\n")

	// Daily spend sparkline for the last 30 days
	now := time.Now()
	days := budget.DailySpend(a.expenses, now.AddDate(0, 0, -29), now)
	values := make([]float64, 0, len(days))
	for i := len(days) - 1; i >= 0; i-- { // chronological
		values = append(values, days[i].Amount)
	}
	spark := components.Sparkline(values, t.Accent)
	sparkBody := spark + "\n" + lipgloss.NewStyle().Foreground(t.TextDim).Render("last 30 days")
	b.WriteString(components.ContentCard("Daily Spend", sparkBody, width))
	b.WriteString("\n")

	// Top spend categories
	groups := budget.GroupByCategory(a.expenses)
	if len(groups) > 0 {
		if len(groups) > 5 {
			groups = groups[:5]
		}
		rows := make([]components.BarRow, 0, len(groups))
		for _, g := range groups {
			rows = append(rows, components.BarRow{
				Label: cli.Truncate(g.Category, 18),
				Value: g.Total,
				Text:  cli.FormatMoney(g.Total),
			})
		}
		chart := components.BarChart(rows, components.CardInnerWidth(width))
		b.WriteString(components.ContentCard("Spend by Category", chart, width))
		b.WriteString("\n")
	}

	// Open risks summary
	riskBody := a.renderRiskSummary()
	b.WriteString(components.ContentCard("Open Risks", riskBody, width))

	return b.String()
}

func (a App) renderRiskSummary() string {
	t := theme.Active

	all := make([]insight.Risk, 0, len(a.budget.Risks)+len(a.stock.Risks))
	all = append(all, a.budget.Risks...)
	all = append(all, a.stock.Risks...)
	if len(all) == 0 {
		return lipgloss.NewStyle().Foreground(t.Green).Render("No open risks")
	}

	critStyle := lipgloss.NewStyle().Foreground(t.Red).Bold(true)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Bold(true)
	msgStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	var b strings.Builder
	for i, r := range all {
		if i >= 5 {
			b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).
				Render(fmt.Sprintf("… and %d more", len(all)-5)))
			break
		}
		label := warnStyle.Render("▲")
		if r.Level == insight.LevelCritical {
			label = critStyle.Render("●")
		}
		b.WriteString(label)
		b.WriteString(" ")
		if r.Project != "" {
			b.WriteString(msgStyle.Render(r.Project + ": "))
		}
		b.WriteString(msgStyle.Render(r.Message))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
