package cmd

import (
	"fmt"

	"sitebudget/internal/cli"
	"sitebudget/internal/forecast"

	"github.com/spf13/cobra"
)

var flagForecastDays int

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Cash flow forecast from recent spending",
	RunE:  runForecast,
}

func init() {
	forecastCmd.Flags().IntVarP(&flagForecastDays, "days", "n", 0, "Forecast horizon in days (default: configured)")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, _ []string) error {
	st, cfg, err := loadStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	days := flagForecastDays
	if days <= 0 {
		days = cfg.General.ForecastDays
	}

	p := forecast.PredictCashFlow(st.Expenses(), days, nil)
	if p == nil {
		fmt.Println("\n  Not enough expense history for a forecast.")
		fmt.Println("  At least 7 recent expenses are needed.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CASH FLOW FORECAST  Next %dd", len(p.Days))))
	fmt.Println()
	fmt.Printf("  Avg daily spend:  %s\n", formatMoney(p.AverageDailySpend))
	fmt.Printf("  Predicted total:  %s\n", formatMoney(p.TotalPredicted))
	fmt.Printf("  Confidence:       %.0f%% falling to %.0f%%\n",
		p.Days[0].Confidence, p.Days[len(p.Days)-1].Confidence)
	fmt.Println()

	values := make([]float64, len(p.Days))
	for i, d := range p.Days {
		values[i] = d.Predicted
	}
	fmt.Printf("  %s\n", cli.RenderSparkline(values))
	fmt.Printf("  %s to %s\n", cli.FormatDate(p.Days[0].Date), cli.FormatDate(p.Days[len(p.Days)-1].Date))
	fmt.Println()

	n := 7
	if n > len(p.Days) {
		n = len(p.Days)
	}
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		d := p.Days[i]
		rows = append(rows, []string{
			cli.FormatDate(d.Date),
			formatMoney(d.Predicted),
			fmt.Sprintf("%.0f%%", d.Confidence),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Next 7 Days",
		Headers: []string{"Date", "Predicted", "Confidence"},
		Rows:    rows,
	}))
	return nil
}
