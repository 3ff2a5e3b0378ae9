package cmd

import (
	"fmt"

	"sitebudget/internal/budget"
	"sitebudget/internal/cli"
	"sitebudget/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagExpenseProject  string
	flagExpenseAmount   float64
	flagExpenseCategory string
	flagExpenseType     string
	flagExpenseDate     string
	flagExpenseVendor   string
	flagExpenseQty      float64
	flagExpenseUnit     string
	flagExpenseReceipt  string
	flagExpenseNotes    string
	flagExpenseStatus   string
)

var expensesCmd = &cobra.Command{
	Use:   "expenses",
	Short: "List and manage expenses",
	RunE:  runExpensesList,
}

var expensesAddCmd = &cobra.Command{
	Use:   "add <item-name>",
	Short: "Record an expense against a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpensesAdd,
}

var expensesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpensesDelete,
}

func init() {
	expensesCmd.PersistentFlags().StringVarP(&flagExpenseProject, "project", "p", "", "Project (id or name)")

	expensesAddCmd.Flags().Float64VarP(&flagExpenseAmount, "amount", "a", 0, "Amount spent")
	expensesAddCmd.Flags().StringVarP(&flagExpenseCategory, "category", "c", "Other", "Expense category")
	expensesAddCmd.Flags().StringVarP(&flagExpenseType, "type", "t", model.TypeResource, "Spend type: capital or resource")
	expensesAddCmd.Flags().StringVar(&flagExpenseDate, "date", "", "Expense date (YYYY-MM-DD, default: today)")
	expensesAddCmd.Flags().StringVar(&flagExpenseVendor, "vendor", "", "Vendor name")
	expensesAddCmd.Flags().Float64Var(&flagExpenseQty, "qty", 0, "Quantity purchased")
	expensesAddCmd.Flags().StringVar(&flagExpenseUnit, "unit", "", "Quantity unit")
	expensesAddCmd.Flags().StringVar(&flagExpenseReceipt, "receipt", "", "Receipt number")
	expensesAddCmd.Flags().StringVar(&flagExpenseNotes, "notes", "", "Notes")
	expensesAddCmd.Flags().StringVar(&flagExpenseStatus, "status", "", "Status (default: pending)")

	expensesCmd.AddCommand(expensesAddCmd)
	expensesCmd.AddCommand(expensesDeleteCmd)
	rootCmd.AddCommand(expensesCmd)
}

func runExpensesList(_ *cobra.Command, _ []string) error {
	st, _, err := loadStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	expenses := st.Expenses()
	title := "Expenses"

	if flagExpenseProject != "" {
		p, err := findProject(st.Projects(), flagExpenseProject)
		if err != nil {
			return err
		}
		expenses = st.ProjectExpenses(p.ID)
		title = p.Name + " Expenses"
	}

	if len(expenses) == 0 {
		fmt.Println("\n  No expenses found.")
		return nil
	}

	projectName := make(map[string]string)
	for _, p := range st.Projects() {
		projectName[p.ID] = p.Name
	}

	var total float64
	rows := make([][]string, 0, len(expenses)+2)
	for _, e := range expenses {
		total += e.Amount
		rows = append(rows, []string{
			cli.FormatDate(e.Date),
			cli.Truncate(e.ItemName, 28),
			cli.Truncate(projectName[e.ProjectID], 18),
			e.Category,
			cli.StatusLabel(e.Status),
			formatMoney(e.Amount),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"", "", "", "", "Total", formatMoney(total)})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   title,
		Headers: []string{"Date", "Item", "Project", "Category", "Status", "Amount"},
		Rows:    rows,
	}))
	return nil
}

func runExpensesAdd(_ *cobra.Command, args []string) error {
	st, _, err := loadStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := requirePermission(st.User(), "create_expense"); err != nil {
		return err
	}
	if flagExpenseProject == "" {
		return fmt.Errorf("--project is required")
	}

	p, err := findProject(st.Projects(), flagExpenseProject)
	if err != nil {
		return err
	}

	e := model.Expense{
		ProjectID:     p.ID,
		ItemName:      args[0],
		Category:      flagExpenseCategory,
		Type:          flagExpenseType,
		Amount:        flagExpenseAmount,
		Quantity:      flagExpenseQty,
		Unit:          flagExpenseUnit,
		Status:        flagExpenseStatus,
		Vendor:        flagExpenseVendor,
		ReceiptNumber: flagExpenseReceipt,
		Notes:         flagExpenseNotes,
	}
	if e.Date, err = parseFlagDate(flagExpenseDate); err != nil {
		return err
	}

	created, err := st.AddExpense(e)
	if err != nil {
		return err
	}

	updated, err := st.Project(p.ID)
	if err != nil {
		return err
	}
	stats := budget.ProjectStats(updated, st.ProjectExpenses(p.ID))

	fmt.Printf("  Recorded %s for %s on %s\n", formatMoney(created.Amount), created.ItemName, p.Name)
	fmt.Printf("  %s\n", cli.RenderBudgetBar(stats.PercentUsed, 30))
	return nil
}

func runExpensesDelete(_ *cobra.Command, args []string) error {
	st, _, err := loadStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := requirePermission(st.User(), "delete_expense"); err != nil {
		return err
	}

	if err := st.DeleteExpense(args[0]); err != nil {
		return err
	}

	fmt.Printf("  Deleted expense %s\n", args[0])
	return nil
}
