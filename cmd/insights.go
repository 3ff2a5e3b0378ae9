package cmd

import (
	"fmt"
	"strings"

	"sitebudget/internal/cli"
	"sitebudget/internal/insight"

	"github.com/spf13/cobra"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Budget risks, observations, and recommendations",
	RunE:  runInsights,
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(_ *cobra.Command, _ []string) error {
	st, _, err := loadStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	projects := st.Projects()
	if len(projects) == 0 {
		fmt.Println("\n  No projects to analyze.")
		return nil
	}

	analysis := insight.AnalyzeBudget(projects, st.Expenses())
	stock := insight.AnalyzeInventory(st.Items())

	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGET ANALYSIS"))
	fmt.Println()
	fmt.Printf("  Health Score: %s\n", cli.RenderHealthScore(analysis.Score))
	fmt.Println()

	risks := append(append([]insight.Risk{}, analysis.Risks...), stock.Risks...)
	if len(risks) == 0 {
		fmt.Println("  No open risks.")
	} else {
		fmt.Printf("  Risks (%d)\n", len(risks))
		for _, r := range risks {
			fmt.Printf("    %s  ", cli.RenderRiskLevel(r.Level))
			if r.Project != "" {
				fmt.Printf("%s: ", r.Project)
			}
			fmt.Print(r.Message)
			if len(r.Items) > 0 {
				fmt.Printf(" (%s)", strings.Join(r.Items, ", "))
			}
			fmt.Println()
		}
	}
	fmt.Println()

	if len(analysis.Insights) > 0 {
		fmt.Println("  Observations")
		for _, in := range analysis.Insights {
			switch in.Type {
			case insight.TypePortfolio:
				fmt.Printf("    %s (%s of %s)\n", in.Message,
					formatMoney(in.TotalSpent), formatMoney(in.TotalBudget))
			case insight.TypeTrend:
				fmt.Printf("    %s: %s (confidence %d%%)\n", in.Project, in.Message, in.Confidence)
			default:
				fmt.Printf("    %s: %s\n", in.Project, in.Message)
			}
		}
		fmt.Println()
	}

	recs := append(append([]insight.Recommendation{}, analysis.Recommendations...), stock.Recommendations...)
	if len(recs) > 0 {
		fmt.Println("  Recommendations")
		for _, r := range recs {
			line := fmt.Sprintf("    [%s] %s", strings.ToUpper(r.Priority), r.Action)
			if r.Project != "" {
				line += " - " + r.Project
			}
			fmt.Println(line)
			fmt.Printf("          %s\n", r.Suggestion)
		}
		fmt.Println()
	}

	return nil
}
