package cmd

import (
	"fmt"
	"os"
	"time"

	"sitebudget/internal/budget"
	"sitebudget/internal/cli"
	"sitebudget/internal/report"

	"github.com/spf13/cobra"
)

var (
	flagReportFrom string
	flagReportTo   string
	flagReportCSV  bool
	flagReportOut  string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compile a budget report for a date range",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&flagReportFrom, "from", "", "Range start (YYYY-MM-DD, inclusive)")
	reportCmd.Flags().StringVar(&flagReportTo, "to", "", "Range end (YYYY-MM-DD, inclusive)")
	reportCmd.Flags().BoolVar(&flagReportCSV, "csv", false, "Write CSV instead of a table")
	reportCmd.Flags().StringVarP(&flagReportOut, "out", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, _ []string) error {
	st, _, err := loadStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := requirePermission(st.User(), "view_reports"); err != nil {
		return err
	}

	var from, to time.Time
	if from, err = parseFlagDate(flagReportFrom); err != nil {
		return err
	}
	if to, err = parseFlagDate(flagReportTo); err != nil {
		return err
	}

	r := report.Generate(st.Projects(), st.Expenses(), from, to)

	if flagReportCSV {
		if err := requirePermission(st.User(), "export_data"); err != nil {
			return err
		}

		out := os.Stdout
		if flagReportOut != "" {
			f, err := os.Create(flagReportOut)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer func() { _ = f.Close() }()
			out = f
		}
		if err := report.WriteCSV(out, r); err != nil {
			return err
		}
		if flagReportOut != "" {
			fmt.Printf("  Wrote report to %s\n", flagReportOut)
		}
		return nil
	}

	title := "BUDGET REPORT"
	if !r.From.IsZero() || !r.To.IsZero() {
		title += fmt.Sprintf("  %s to %s", cli.FormatDate(r.From), cli.FormatDate(r.To))
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()
	fmt.Printf("  %d projects, %d expenses in range\n", r.ProjectCount, r.ExpenseCount)
	fmt.Printf("  Budget %s  Spent %s  Remaining %s\n\n",
		formatMoney(r.Totals.Budget), formatMoney(r.Totals.Spent), formatMoney(r.Totals.Remaining))

	rows := make([][]string, 0, len(r.Projects)+2)
	for _, pr := range r.Projects {
		rows = append(rows, []string{
			cli.Truncate(pr.Project.Name, 24),
			formatMoney(pr.Stats.Budget),
			formatMoney(pr.Stats.Spent),
			cli.FormatPercent(budget.ClampPercent(pr.Stats.PercentUsed)),
			cli.FormatNumber(int64(pr.Stats.ExpenseCount)),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"TOTAL",
		formatMoney(r.Totals.Budget),
		formatMoney(r.Totals.Spent),
		cli.FormatPercent(budget.ClampPercent(r.Totals.PercentUsed)),
		cli.FormatNumber(int64(r.ExpenseCount)),
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "By Project",
		Headers: []string{"Project", "Budget", "Spent", "Used", "Expenses"},
		Rows:    rows,
	}))

	if len(r.ByCategory) > 0 {
		fmt.Println()
		catRows := make([][]string, 0, len(r.ByCategory)+3)
		for _, g := range r.ByCategory {
			catRows = append(catRows, []string{
				g.Category,
				cli.FormatNumber(int64(g.Count)),
				formatMoney(g.Total),
			})
		}
		catRows = append(catRows, []string{"---"})
		catRows = append(catRows, []string{"Capital", cli.FormatNumber(int64(r.ByType.Capital.Count)), formatMoney(r.ByType.Capital.Total)})
		catRows = append(catRows, []string{"Resource", cli.FormatNumber(int64(r.ByType.Resource.Count)), formatMoney(r.ByType.Resource.Total)})

		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "By Category",
			Headers: []string{"Category", "Count", "Total"},
			Rows:    catRows,
		}))
	}

	return nil
}
