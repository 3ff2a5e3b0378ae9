package tui

import (
	"fmt"
	"strings"

	"sitebudget/internal/config"
	"sitebudget/internal/tui/components"
	"sitebudget/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) viewSettings(width int) string {
	t := theme.Active
	cfg, _ := config.Load()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	var info strings.Builder
	info.WriteString(labelStyle.Render("Config   ") + valueStyle.Render(config.ConfigPath()) + "\n")
	info.WriteString(labelStyle.Render("Database ") + valueStyle.Render(config.DBPath(cfg)) + "\n")
	info.WriteString(labelStyle.Render("Currency ") + valueStyle.Render(cfg.General.Currency) + "\n")
	info.WriteString(labelStyle.Render("Forecast ") + valueStyle.Render(fmt.Sprintf("%d days", cfg.General.ForecastDays)) + "\n")
	info.WriteString(labelStyle.Render("User     ") + valueStyle.Render(fmt.Sprintf("%s (%s)", a.user.Name, a.user.Role)))

	out := components.ContentCard("Settings", info.String(), width)

	selStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	var themes strings.Builder
	for i, th := range theme.All {
		marker := "( )"
		style := labelStyle
		if th.Name == theme.Active.Name {
			marker = "(o)"
		}
		if i == a.themeCursor {
			style = selStyle
		}
		themes.WriteString(style.Render(fmt.Sprintf("%s %s", marker, th.Name)))
		themes.WriteString("\n")
	}
	themes.WriteString(labelStyle.Render("j/k to select, enter to apply"))

	out += "\n" + components.ContentCard("Theme", themes.String(), width)
	return out
}
