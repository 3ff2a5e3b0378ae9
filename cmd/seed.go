package cmd

import (
	"fmt"
	"time"

	"sitebudget/internal/model"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo construction data",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(_ *cobra.Command, _ []string) error {
	st, _, err := loadStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if len(st.Projects()) > 0 {
		return fmt.Errorf("store already has projects, refusing to seed")
	}

	now := time.Now()
	day := func(n int) time.Time { return now.AddDate(0, 0, -n) }

	type seedExpense struct {
		name     string
		category string
		typ      string
		amount   float64
		daysAgo  int
		vendor   string
	}

	seedProjects := []struct {
		project  model.Project
		expenses []seedExpense
	}{
		{
			project: model.Project{
				Name: "Riverside Office Complex", Type: "Commercial Construction",
				Budget: 250000, Status: model.ProjectActive,
				Location: "1200 River Rd", ClientName: "Meridian Development",
				StartDate: day(120), EndDate: now.AddDate(0, 6, 0),
			},
			expenses: []seedExpense{
				{"Structural steel delivery", "Materials", model.TypeCapital, 48500, 45, "SteelCo Supply"},
				{"Concrete pour, foundation", "Materials", model.TypeCapital, 32000, 38, "ReadyMix Inc"},
				{"Framing crew, week 1", "Labor", model.TypeResource, 18400, 21, ""},
				{"Framing crew, week 2", "Labor", model.TypeResource, 18400, 14, ""},
				{"Crane rental", "Equipment", model.TypeResource, 9600, 12, "HeavyLift Rentals"},
				{"Electrical rough-in", "Subcontractors", model.TypeResource, 24500, 9, "Volt Bros"},
				{"Building permits", "Permits & Licenses", model.TypeResource, 4200, 60, "City of Riverside"},
				{"Drywall materials", "Materials", model.TypeResource, 7800, 5, "BuildMart"},
				{"Plumbing rough-in", "Subcontractors", model.TypeResource, 16900, 3, "FlowRight Plumbing"},
			},
		},
		{
			project: model.Project{
				Name: "Hillside Residence", Type: "Residential Construction",
				Budget: 85000, Status: model.ProjectActive,
				Location: "48 Hillside Ave", ClientName: "The Morrisons",
				StartDate: day(90), EndDate: now.AddDate(0, 3, 0),
			},
			expenses: []seedExpense{
				{"Lumber package", "Materials", model.TypeCapital, 21500, 30, "Timberline"},
				{"Roofing shingles", "Materials", model.TypeResource, 8400, 18, "BuildMart"},
				{"Roofing labor", "Labor", model.TypeResource, 12000, 16, ""},
				{"Window installation", "Subcontractors", model.TypeResource, 14200, 8, "ClearView Glass"},
				{"HVAC unit", "Equipment", model.TypeCapital, 11800, 6, "CoolAir Systems"},
				{"Site cleanup", "Labor", model.TypeResource, 2400, 2, ""},
			},
		},
		{
			project: model.Project{
				Name: "Main St Retaining Wall", Type: "Civil Engineering",
				Budget: 30000, Status: model.ProjectPlanning,
				Location: "Main St & 4th", ClientName: "City Public Works",
				StartDate: now.AddDate(0, 1, 0),
			},
			expenses: []seedExpense{
				{"Soil survey", "Permits & Licenses", model.TypeResource, 3500, 10, "GeoTech Labs"},
			},
		},
	}

	var projectCount, expenseCount int
	firstProjectID := ""
	for _, sp := range seedProjects {
		created, err := st.AddProject(sp.project)
		if err != nil {
			return err
		}
		projectCount++
		if firstProjectID == "" {
			firstProjectID = created.ID
		}

		for _, se := range sp.expenses {
			_, err := st.AddExpense(model.Expense{
				ProjectID: created.ID,
				ItemName:  se.name,
				Category:  se.category,
				Type:      se.typ,
				Amount:    se.amount,
				Date:      day(se.daysAgo),
				Status:    model.ExpenseApproved,
				Vendor:    se.vendor,
			})
			if err != nil {
				return err
			}
			expenseCount++
		}
	}

	seedItems := []model.InventoryItem{
		{Name: "Rebar #4", SKU: "RB-400", Category: "Materials", Quantity: 320, UnitPrice: 12.5, ReorderLevel: 100, Unit: "rods", Supplier: "SteelCo Supply", ProjectID: firstProjectID},
		{Name: "Portland Cement 50lb", SKU: "PC-050", Category: "Materials", Quantity: 18, UnitPrice: 14, ReorderLevel: 40, Unit: "bags", Supplier: "ReadyMix Inc"},
		{Name: "Safety Harness", SKU: "SH-001", Category: "Safety Equipment", Quantity: 0, UnitPrice: 89, ReorderLevel: 6, Supplier: "SafeSite Gear"},
		{Name: "Cordless Drill", SKU: "CD-018", Category: "Tools", Quantity: 14, UnitPrice: 159, ReorderLevel: 4, Supplier: "ToolHouse"},
		{Name: "2x4 Lumber 8ft", SKU: "LM-248", Category: "Materials", Quantity: 860, UnitPrice: 4.25, ReorderLevel: 200, Unit: "boards", Supplier: "Timberline"},
	}

	for _, it := range seedItems {
		if _, err := st.AddItem(it); err != nil {
			return err
		}
	}

	fmt.Printf("  Seeded %d projects, %d expenses, %d inventory items\n",
		projectCount, expenseCount, len(seedItems))
	fmt.Println("  Try `sitebudget overview` or `sitebudget tui`.")
	return nil
}
