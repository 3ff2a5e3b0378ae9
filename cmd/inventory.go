package cmd

import (
	"errors"
	"fmt"

	"sitebudget/internal/cli"
	"sitebudget/internal/model"
	"sitebudget/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagItemSKU      string
	flagItemCategory string
	flagItemQty      float64
	flagItemPrice    float64
	flagItemReorder  float64
	flagItemUnitName string
	flagItemProject  string
	flagItemSupplier string
	flagItemLocation string
	flagAdjustReason string
)

var inventoryCmd = &cobra.Command{
	Use:     "inventory",
	Aliases: []string{"inv"},
	Short:   "List and manage inventory",
	RunE:    runInventoryList,
}

var inventoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an inventory item",
	Args:  cobra.ExactArgs(1),
	RunE:  runInventoryAdd,
}

var inventoryAdjustCmd = &cobra.Command{
	Use:   "adjust <id-or-name> <amount>",
	Short: "Adjust stock by a signed amount",
	Args:  cobra.ExactArgs(2),
	RunE:  runInventoryAdjust,
}

var inventorySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search items by name, SKU, category, or supplier",
	Args:  cobra.ExactArgs(1),
	RunE:  runInventorySearch,
}

var inventoryLowCmd = &cobra.Command{
	Use:   "low",
	Short: "List items at or below their reorder level",
	RunE:  runInventoryLow,
}

func init() {
	inventoryAddCmd.Flags().StringVar(&flagItemSKU, "sku", "", "Stock keeping unit")
	inventoryAddCmd.Flags().StringVarP(&flagItemCategory, "category", "c", "Materials", "Item category")
	inventoryAddCmd.Flags().Float64VarP(&flagItemQty, "qty", "q", 0, "Initial quantity")
	inventoryAddCmd.Flags().Float64Var(&flagItemPrice, "price", 0, "Unit price")
	inventoryAddCmd.Flags().Float64Var(&flagItemReorder, "reorder", 0, "Reorder level")
	inventoryAddCmd.Flags().StringVar(&flagItemUnitName, "unit", "", "Quantity unit")
	inventoryAddCmd.Flags().StringVarP(&flagItemProject, "project", "p", "", "Assign to project (id or name)")
	inventoryAddCmd.Flags().StringVar(&flagItemSupplier, "supplier", "", "Supplier name")
	inventoryAddCmd.Flags().StringVar(&flagItemLocation, "location", "", "Storage location")

	inventoryAdjustCmd.Flags().StringVarP(&flagAdjustReason, "reason", "r", "", "Adjustment reason")

	inventoryCmd.AddCommand(inventoryAddCmd)
	inventoryCmd.AddCommand(inventoryAdjustCmd)
	inventoryCmd.AddCommand(inventorySearchCmd)
	inventoryCmd.AddCommand(inventoryLowCmd)
	rootCmd.AddCommand(inventoryCmd)
}

func runInventoryList(_ *cobra.Command, _ []string) error {
	st, _, err := loadStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	items := st.Items()
	if len(items) == 0 {
		fmt.Println("\n  No inventory items found.")
		return nil
	}

	stats := st.InventoryStats()

	fmt.Println()
	fmt.Print(renderItemTable("Inventory", items))
	fmt.Printf("\n  %d active items, total value %s", stats.TotalItems, formatMoney(stats.TotalValue))
	if stats.LowStockCount > 0 {
		fmt.Printf(", %d low stock (%d out)", stats.LowStockCount, stats.OutOfStock)
	}
	fmt.Println()
	return nil
}

func runInventoryAdd(_ *cobra.Command, args []string) error {
	st, _, err := loadStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	it := model.InventoryItem{
		Name:         args[0],
		SKU:          flagItemSKU,
		Category:     flagItemCategory,
		Quantity:     flagItemQty,
		UnitPrice:    flagItemPrice,
		ReorderLevel: flagItemReorder,
		Location:     flagItemLocation,
		Supplier:     flagItemSupplier,
	}
	if flagItemProject != "" {
		p, err := findProject(st.Projects(), flagItemProject)
		if err != nil {
			return err
		}
		it.ProjectID = p.ID
	}

	created, err := st.AddItem(it)
	if err != nil {
		return err
	}

	fmt.Printf("  Added %s: %s on hand, value %s\n",
		created.Name, cli.FormatQuantity(created.Quantity), formatMoney(created.TotalValue))
	return nil
}

func runInventoryAdjust(_ *cobra.Command, args []string) error {
	st, _, err := loadStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	it, err := findItem(st.Items(), args[0])
	if err != nil {
		return err
	}

	var amount float64
	if _, err := fmt.Sscanf(args[1], "%f", &amount); err != nil {
		return fmt.Errorf("invalid amount %q", args[1])
	}

	updated, err := st.AdjustStock(it.ID, amount, flagAdjustReason)
	if err != nil {
		if errors.Is(err, store.ErrInsufficientStock) {
			return fmt.Errorf("cannot adjust %s by %+g: only %s on hand",
				it.Name, amount, cli.FormatQuantity(it.Quantity))
		}
		return err
	}

	fmt.Printf("  %s: %s -> %s (value %s)\n",
		updated.Name, cli.FormatQuantity(it.Quantity),
		cli.FormatQuantity(updated.Quantity), formatMoney(updated.TotalValue))
	if updated.Quantity == 0 {
		fmt.Printf("  %s out of stock\n", cli.RenderRiskLevel("critical"))
	} else if updated.Quantity <= updated.ReorderLevel {
		fmt.Printf("  %s at or below reorder level (%s)\n",
			cli.RenderRiskLevel("warning"), cli.FormatQuantity(updated.ReorderLevel))
	}
	return nil
}

func runInventorySearch(_ *cobra.Command, args []string) error {
	st, _, err := loadStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	items := st.SearchItems(args[0])
	if len(items) == 0 {
		fmt.Printf("\n  No items match %q.\n", args[0])
		return nil
	}

	fmt.Println()
	fmt.Print(renderItemTable(fmt.Sprintf("Matches for %q", args[0]), items))
	return nil
}

func runInventoryLow(_ *cobra.Command, _ []string) error {
	st, _, err := loadStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	items := st.LowStockItems()
	if len(items) == 0 {
		fmt.Println("\n  No items need reordering.")
		return nil
	}

	fmt.Println()
	fmt.Print(renderItemTable("Low Stock", items))
	return nil
}

func renderItemTable(title string, items []model.InventoryItem) string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		level := "ok"
		switch {
		case it.Status != model.ItemActive:
			level = cli.StatusLabel(it.Status)
		case it.Quantity == 0:
			level = "OUT"
		case it.Quantity <= it.ReorderLevel:
			level = "LOW"
		}
		rows = append(rows, []string{
			cli.Truncate(it.Name, 24),
			it.SKU,
			it.Category,
			cli.FormatQuantity(it.Quantity),
			cli.FormatQuantity(it.ReorderLevel),
			formatMoney(it.TotalValue),
			level,
		})
	}

	return cli.RenderTable(cli.Table{
		Title:   title,
		Headers: []string{"Item", "SKU", "Category", "Qty", "Reorder", "Value", ""},
		Rows:    rows,
	})
}

// findItem resolves an argument as an item ID, exact name, SKU, or
// unique name substring.
func findItem(items []model.InventoryItem, arg string) (model.InventoryItem, error) {
	for _, it := range items {
		if it.ID == arg || it.Name == arg || (it.SKU != "" && it.SKU == arg) {
			return it, nil
		}
	}

	var matches []model.InventoryItem
	for _, it := range items {
		if hasFold(it.Name, arg) {
			matches = append(matches, it)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return model.InventoryItem{}, fmt.Errorf("no item matches %q", arg)
	default:
		return model.InventoryItem{}, fmt.Errorf("%q matches %d items, be more specific", arg, len(matches))
	}
}
