package tui

import (
	"fmt"
	"strings"

	"sitebudget/internal/cli"
	"sitebudget/internal/insight"
	"sitebudget/internal/tui/components"
	"sitebudget/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) viewInsights(width int) string {
	t := theme.Active

	var b strings.Builder

	// Risks, worst first (already sorted by the analysis)
	riskBody := a.renderRiskList(append(append([]insight.Risk{}, a.budget.Risks...), a.stock.Risks...))
	b.WriteString(components.ContentCard("Risks", riskBody, width))
	b.WriteString("\n")

	// Observations
	obsStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	var obs strings.Builder
	for _, in := range a.budget.Insights {
		switch in.Type {
		case insight.TypePortfolio:
			obs.WriteString(obsStyle.Render(in.Message))
			obs.WriteString(dimStyle.Render(fmt.Sprintf("  (%s of %s)",
				cli.FormatMoney(in.TotalSpent), cli.FormatMoney(in.TotalBudget))))
		case insight.TypeTrend:
			obs.WriteString(obsStyle.Render(in.Project + ": " + in.Message))
			obs.WriteString(dimStyle.Render(fmt.Sprintf("  (confidence %d%%)", in.Confidence)))
		default:
			obs.WriteString(obsStyle.Render(in.Project + ": " + in.Message))
		}
		obs.WriteString("\n")
	}
	b.WriteString(components.ContentCard("Observations", strings.TrimRight(obs.String(), "\n"), width))
	b.WriteString("\n")

	// Recommendations, highest priority first
	recs := append(append([]insight.Recommendation{}, a.budget.Recommendations...), a.stock.Recommendations...)
	var recBody strings.Builder
	prioStyle := map[string]lipgloss.Style{
		insight.GradeHigh:   lipgloss.NewStyle().Foreground(t.Red).Bold(true),
		insight.GradeMedium: lipgloss.NewStyle().Foreground(t.Orange),
		insight.GradeLow:    lipgloss.NewStyle().Foreground(t.Green),
	}
	actionStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	sugStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	for _, r := range recs {
		recBody.WriteString(prioStyle[r.Priority].Render(fmt.Sprintf("%-6s", strings.ToUpper(r.Priority))))
		recBody.WriteString(" ")
		recBody.WriteString(actionStyle.Render(r.Action))
		if r.Project != "" {
			recBody.WriteString(sugStyle.Render(" · " + r.Project))
		}
		recBody.WriteString("\n       ")
		recBody.WriteString(sugStyle.Render(r.Suggestion))
		recBody.WriteString("\n")
	}
	b.WriteString(components.ContentCard("Recommendations", strings.TrimRight(recBody.String(), "\n"), width))

	return b.String()
}

func (a App) renderRiskList(risks []insight.Risk) string {
	t := theme.Active
	if len(risks) == 0 {
		return lipgloss.NewStyle().Foreground(t.Green).Render("No open risks")
	}

	msgStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	for _, r := range risks {
		level := lipgloss.NewStyle().Foreground(t.Orange).Render("WARNING ")
		if r.Level == insight.LevelCritical {
			level = lipgloss.NewStyle().Foreground(t.Red).Bold(true).Render("CRITICAL")
		}
		b.WriteString(level)
		b.WriteString(" ")
		if r.Project != "" {
			b.WriteString(msgStyle.Render(r.Project + ": "))
		}
		b.WriteString(msgStyle.Render(r.Message))
		if len(r.Items) > 0 {
			b.WriteString(dimStyle.Render("  (" + strings.Join(r.Items, ", ") + ")"))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
