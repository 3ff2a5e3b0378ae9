package cmd

import (
	"fmt"
	"time"

	"sitebudget/internal/budget"
	"sitebudget/internal/cli"
	"sitebudget/internal/insight"
	"sitebudget/internal/model"

	"github.com/spf13/cobra"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Portfolio summary with health score",
	RunE:  runOverview,
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}

func runOverview(_ *cobra.Command, _ []string) error {
	st, _, err := loadStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	projects := st.Projects()
	if len(projects) == 0 {
		fmt.Println("\n  No projects yet.")
		fmt.Println("  Run `sitebudget seed` for demo data or `sitebudget projects add` to start.")
		return nil
	}

	expenses := st.Expenses()
	totals := budget.PortfolioTotals(projects, expenses)
	analysis := insight.AnalyzeBudget(projects, expenses)
	invStats := st.InventoryStats()

	fmt.Println()
	fmt.Println(cli.RenderTitle("SITEBUDGET  Portfolio Overview"))
	fmt.Println()

	// Spend pace: this 30-day window vs the previous one
	now := time.Now()
	since := now.AddDate(0, 0, -30)
	curSpend := sumAmounts(budget.FilterByDateRange(expenses, since, now))
	prevSpend := sumAmounts(budget.FilterByDateRange(expenses, since.AddDate(0, 0, -30), since))

	paceStr := formatMoney(curSpend)
	if prevSpend > 0 {
		paceStr += fmt.Sprintf("  (%s vs prev 30d)", cli.FormatDelta(curSpend, prevSpend))
	}

	rows := [][]string{
		{"Projects", cli.FormatNumber(int64(len(projects)))},
		{"Expenses", cli.FormatNumber(int64(len(expenses)))},
		{"---"},
		{"Total Budget", formatMoney(totals.Budget)},
		{"Total Spent", formatMoney(totals.Spent)},
		{"Remaining", formatMoney(totals.Remaining)},
		{"Utilization", cli.FormatPercent(budget.ClampPercent(totals.PercentUsed))},
		{"---"},
		{"Spend (30d)", paceStr},
		{"Health Score", fmt.Sprintf("%.0f/100", analysis.Score)},
		{"Open Risks", cli.FormatNumber(int64(len(analysis.Risks)))},
	}
	if invStats.TotalItems > 0 {
		rows = append(rows,
			[]string{"---"},
			[]string{"Inventory Value", formatMoney(invStats.TotalValue)},
			[]string{"Low Stock Items", cli.FormatNumber(int64(invStats.LowStockCount))},
		)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	// Per-project utilization bars
	fmt.Println()
	for _, p := range projects {
		stats := budget.ProjectStats(p, expenses)
		fmt.Printf("  %-24s %s\n", cli.Truncate(p.Name, 24), cli.RenderBudgetBar(stats.PercentUsed, 30))
	}
	fmt.Println()

	// Recent daily spend sparkline
	days := budget.DailySpend(expenses, since, now)
	values := make([]float64, 0, len(days))
	for i := len(days) - 1; i >= 0; i-- {
		values = append(values, days[i].Amount)
	}
	if len(values) > 0 {
		fmt.Printf("  Daily spend (30d)  %s\n\n", cli.RenderSparkline(values))
	}

	return nil
}

func sumAmounts(expenses []model.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}
