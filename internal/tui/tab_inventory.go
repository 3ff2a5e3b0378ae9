package tui

import (
	"fmt"
	"strings"

	"sitebudget/internal/cli"
	"sitebudget/internal/model"
	"sitebudget/internal/tui/components"
	"sitebudget/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) viewInventory(width int) string {
	t := theme.Active

	metrics := []components.Metric{
		{Label: "Items", Value: cli.FormatNumber(int64(a.invStats.TotalItems))},
		{Label: "Total Value", Value: cli.FormatMoney(a.invStats.TotalValue)},
		{Label: "Low Stock", Value: cli.FormatNumber(int64(a.invStats.LowStockCount)), Sub: "incl. out of stock"},
		{Label: "Out of Stock", Value: cli.FormatNumber(int64(a.invStats.OutOfStock))},
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(metrics, width))
	b.WriteString("\n")

	if len(a.items) == 0 {
		empty := lipgloss.NewStyle().Foreground(t.TextMuted).
			Render("No inventory yet. Add items with `sitebudget inventory add`.")
		b.WriteString(components.ContentCard("Inventory", empty, width))
		return b.String()
	}

	selStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var list strings.Builder
	for i, it := range a.items {
		cursor := "  "
		if i == a.invCursor {
			cursor = selStyle.Render("▸ ")
		}
		list.WriteString(cursor)
		list.WriteString(nameStyle.Render(fmt.Sprintf("%-24s", cli.Truncate(it.Name, 24))))
		list.WriteString(fmt.Sprintf("  %8s", cli.FormatQuantity(it.Quantity)))
		list.WriteString(dimStyle.Render(fmt.Sprintf(" %-6s", cli.Truncate(it.Unit, 6))))
		list.WriteString(fmt.Sprintf("  %10s", cli.FormatMoney(it.TotalValue)))
		list.WriteString("  ")
		list.WriteString(stockBadge(it))
		list.WriteString("\n")
	}
	b.WriteString(components.ContentCard("Inventory", strings.TrimRight(list.String(), "\n"), width))

	// Detail card for the selected item
	if a.invCursor < len(a.items) {
		it := a.items[a.invCursor]
		labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
		valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

		var d strings.Builder
		if it.SKU != "" {
			d.WriteString(labelStyle.Render("SKU ") + valueStyle.Render(it.SKU) + "   ")
		}
		d.WriteString(labelStyle.Render("Category ") + valueStyle.Render(it.Category))
		if it.Supplier != "" {
			d.WriteString(labelStyle.Render("   Supplier ") + valueStyle.Render(it.Supplier))
		}
		d.WriteString("\n")
		d.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s",
			labelStyle.Render("On hand"), valueStyle.Render(cli.FormatQuantity(it.Quantity)),
			labelStyle.Render("Reorder at"), valueStyle.Render(cli.FormatQuantity(it.ReorderLevel)),
			labelStyle.Render("Unit price"), valueStyle.Render(cli.FormatMoney(it.UnitPrice))))
		if it.LastAdjustment != nil {
			d.WriteString("\n")
			d.WriteString(labelStyle.Render(fmt.Sprintf("Last adjustment: %+g (%s) on %s",
				it.LastAdjustment.Amount, it.LastAdjustment.Reason, cli.FormatDate(it.LastAdjustment.Date))))
		}
		b.WriteString("\n")
		b.WriteString(components.ContentCard(it.Name, d.String(), width))
	}

	return b.String()
}

func stockBadge(it model.InventoryItem) string {
	t := theme.Active
	switch {
	case it.Status != model.ItemActive:
		return lipgloss.NewStyle().Foreground(t.TextDim).Render(cli.StatusLabel(it.Status))
	case it.Quantity == 0:
		return lipgloss.NewStyle().Foreground(t.Red).Bold(true).Render("OUT")
	case it.Quantity <= it.ReorderLevel:
		return lipgloss.NewStyle().Foreground(t.Orange).Render("LOW")
	default:
		return lipgloss.NewStyle().Foreground(t.Green).Render("OK")
	}
}
