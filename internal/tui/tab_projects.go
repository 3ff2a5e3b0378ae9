package tui

import (
	"fmt"
	"strings"

	"sitebudget/internal/budget"
	"sitebudget/internal/cli"
	"sitebudget/internal/tui/components"
	"sitebudget/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) viewProjects(width int) string {
	t := theme.Active

	if len(a.projects) == 0 {
		empty := lipgloss.NewStyle().Foreground(t.TextMuted).
			Render("No projects yet. Run `sitebudget seed` or `sitebudget projects add`.")
		return components.ContentCard("Projects", empty, width)
	}

	inner := components.CardInnerWidth(width)
	labelW := 0
	for _, p := range a.projects {
		if n := len(p.Name); n > labelW {
			labelW = n
		}
	}
	if labelW > 24 {
		labelW = 24
	}
	barW := inner - labelW - 10
	if barW > 40 {
		barW = 40
	}
	if barW < 10 {
		barW = 10
	}

	selStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	var list strings.Builder
	for i, p := range a.projects {
		stats := budget.ProjectStats(p, a.expenses)
		cursor := "  "
		if i == a.projCursor {
			cursor = selStyle.Render("▸ ")
		}
		list.WriteString(cursor)
		list.WriteString(components.BudgetBar(cli.Truncate(p.Name, labelW), stats.PercentUsed, labelW, barW))
		list.WriteString("\n")
	}
	out := components.ContentCard("Projects", strings.TrimRight(list.String(), "\n"), width)

	// Detail card for the selected project
	if a.projCursor < len(a.projects) {
		p := a.projects[a.projCursor]
		stats := budget.ProjectStats(p, a.expenses)

		labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
		valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

		over := ""
		if stats.IsOverBudget {
			over = "  " + lipgloss.NewStyle().Foreground(t.Red).Bold(true).Render("OVER BUDGET")
		}

		var d strings.Builder
		d.WriteString(labelStyle.Render("Status ") + valueStyle.Render(cli.StatusLabel(p.Status)))
		if p.ClientName != "" {
			d.WriteString(labelStyle.Render("   Client ") + valueStyle.Render(p.ClientName))
		}
		if p.Location != "" {
			d.WriteString(labelStyle.Render("   Location ") + valueStyle.Render(p.Location))
		}
		d.WriteString("\n")
		d.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s%s",
			labelStyle.Render("Budget"), valueStyle.Render(cli.FormatMoney(stats.Budget)),
			labelStyle.Render("Spent"), valueStyle.Render(cli.FormatMoney(stats.Spent)),
			labelStyle.Render("Remaining"), valueStyle.Render(cli.FormatMoney(stats.Remaining)),
			over,
		))
		d.WriteString("\n")
		d.WriteString(labelStyle.Render(fmt.Sprintf("%d expenses, %s to %s",
			stats.ExpenseCount, cli.FormatDate(p.StartDate), cli.FormatDate(p.EndDate))))

		out += "\n" + components.ContentCard(p.Name, d.String(), width)
	}

	return out
}
