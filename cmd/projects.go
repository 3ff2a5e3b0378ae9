package cmd

import (
	"fmt"
	"strings"
	"time"

	"sitebudget/internal/budget"
	"sitebudget/internal/cli"
	"sitebudget/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagProjectBudget   float64
	flagProjectType     string
	flagProjectClient   string
	flagProjectLocation string
	flagProjectStart    string
	flagProjectEnd      string
	flagProjectStatus   string
	flagProjectDesc     string
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List and manage construction projects",
	RunE:  runProjectsList,
}

var projectsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsAdd,
}

var projectsShowCmd = &cobra.Command{
	Use:   "show <id-or-name>",
	Short: "Show a project with its expenses",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsShow,
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <id-or-name>",
	Short: "Delete a project and its expenses",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsDelete,
}

func init() {
	projectsAddCmd.Flags().Float64VarP(&flagProjectBudget, "budget", "b", 0, "Total budget")
	projectsAddCmd.Flags().StringVarP(&flagProjectType, "type", "t", "", "Project type")
	projectsAddCmd.Flags().StringVar(&flagProjectClient, "client", "", "Client name")
	projectsAddCmd.Flags().StringVar(&flagProjectLocation, "location", "", "Site location")
	projectsAddCmd.Flags().StringVar(&flagProjectStart, "start", "", "Start date (YYYY-MM-DD)")
	projectsAddCmd.Flags().StringVar(&flagProjectEnd, "end", "", "End date (YYYY-MM-DD)")
	projectsAddCmd.Flags().StringVar(&flagProjectStatus, "status", "", "Status (default: planning)")
	projectsAddCmd.Flags().StringVar(&flagProjectDesc, "description", "", "Description")

	projectsCmd.AddCommand(projectsAddCmd)
	projectsCmd.AddCommand(projectsShowCmd)
	projectsCmd.AddCommand(projectsDeleteCmd)
	rootCmd.AddCommand(projectsCmd)
}

func runProjectsList(_ *cobra.Command, _ []string) error {
	st, _, err := loadStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	projects := st.Projects()
	if len(projects) == 0 {
		fmt.Println("\n  No projects found.")
		return nil
	}

	expenses := st.Expenses()

	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		stats := budget.ProjectStats(p, expenses)
		rows = append(rows, []string{
			cli.Truncate(p.Name, 24),
			cli.StatusLabel(p.Status),
			formatMoney(stats.Budget),
			formatMoney(stats.Spent),
			cli.FormatPercent(budget.ClampPercent(stats.PercentUsed)),
			formatMoney(stats.Remaining),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Projects",
		Headers: []string{"Project", "Status", "Budget", "Spent", "Used", "Remaining"},
		Rows:    rows,
	}))
	return nil
}

func runProjectsAdd(_ *cobra.Command, args []string) error {
	st, _, err := loadStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := requirePermission(st.User(), "create_project"); err != nil {
		return err
	}

	p := model.Project{
		Name:        args[0],
		Description: flagProjectDesc,
		Type:        flagProjectType,
		Budget:      flagProjectBudget,
		Status:      flagProjectStatus,
		Location:    flagProjectLocation,
		ClientName:  flagProjectClient,
	}
	if p.StartDate, err = parseFlagDate(flagProjectStart); err != nil {
		return err
	}
	if p.EndDate, err = parseFlagDate(flagProjectEnd); err != nil {
		return err
	}

	created, err := st.AddProject(p)
	if err != nil {
		return err
	}

	fmt.Printf("  Created project %s (%s)\n", created.Name, created.ID)
	fmt.Printf("  Budget: %s\n", formatMoney(created.Budget))
	return nil
}

func runProjectsShow(_ *cobra.Command, args []string) error {
	st, _, err := loadStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	p, err := findProject(st.Projects(), args[0])
	if err != nil {
		return err
	}

	expenses := st.ProjectExpenses(p.ID)
	stats := budget.ProjectStats(p, expenses)

	fmt.Println()
	fmt.Println(cli.RenderTitle(p.Name))
	fmt.Println()
	fmt.Printf("  Status:    %s\n", cli.StatusLabel(p.Status))
	if p.ClientName != "" {
		fmt.Printf("  Client:    %s\n", p.ClientName)
	}
	if p.Location != "" {
		fmt.Printf("  Location:  %s\n", p.Location)
	}
	fmt.Printf("  Budget:    %s\n", formatMoney(stats.Budget))
	fmt.Printf("  Spent:     %s  %s\n", formatMoney(stats.Spent), cli.RenderBudgetBar(stats.PercentUsed, 24))
	fmt.Printf("  Remaining: %s\n", formatMoney(stats.Remaining))
	if stats.IsOverBudget {
		fmt.Printf("  %s\n", cli.RenderRiskLevel("critical"))
	}

	if len(expenses) == 0 {
		fmt.Println("\n  No expenses recorded.")
		return nil
	}

	rows := make([][]string, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, []string{
			cli.FormatDate(e.Date),
			cli.Truncate(e.ItemName, 28),
			e.Category,
			cli.StatusLabel(e.Status),
			formatMoney(e.Amount),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Expenses (%d)", len(expenses)),
		Headers: []string{"Date", "Item", "Category", "Status", "Amount"},
		Rows:    rows,
	}))
	return nil
}

func runProjectsDelete(_ *cobra.Command, args []string) error {
	st, _, err := loadStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := requirePermission(st.User(), "delete_project"); err != nil {
		return err
	}

	p, err := findProject(st.Projects(), args[0])
	if err != nil {
		return err
	}

	n := len(st.ProjectExpenses(p.ID))
	if err := st.DeleteProject(p.ID); err != nil {
		return err
	}

	fmt.Printf("  Deleted project %s and %d expenses\n", p.Name, n)
	return nil
}

// findProject resolves an argument as an ID first, then as an exact
// name, then as a unique name prefix.
func findProject(projects []model.Project, arg string) (model.Project, error) {
	for _, p := range projects {
		if p.ID == arg || p.Name == arg {
			return p, nil
		}
	}

	var matches []model.Project
	for _, p := range projects {
		if hasFold(p.Name, arg) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return model.Project{}, fmt.Errorf("no project matches %q", arg)
	default:
		return model.Project{}, fmt.Errorf("%q matches %d projects, be more specific", arg, len(matches))
	}
}

func hasFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func parseFlagDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(model.DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}
