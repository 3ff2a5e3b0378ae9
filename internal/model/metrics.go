package model

import "time"

// ProjectStats holds the derived budget metrics for a single project.
// PercentUsed is NOT clamped here; risk thresholds compare against the
// raw value. Display call sites clamp via budget.ClampPercent.
type ProjectStats struct {
	Budget       float64
	Spent        float64
	Remaining    float64
	PercentUsed  float64
	IsOverBudget bool
	ExpenseCount int
}

// CategoryGroup holds the expenses of one category.
// Items preserve insertion order within the category.
type CategoryGroup struct {
	Category string
	Total    float64
	Count    int
	Items    []Expense
}

// TypeGroup holds the expenses of one spend type (capital or resource).
type TypeGroup struct {
	Total float64
	Count int
	Items []Expense
}

// TypeBreakdown always carries exactly the two spend-type buckets.
// Expenses with an empty or unrecognized type land in Resource.
type TypeBreakdown struct {
	Capital  TypeGroup
	Resource TypeGroup
}

// PortfolioTotals aggregates budget figures across every project,
// independent of individual project status.
type PortfolioTotals struct {
	Budget      float64
	Spent       float64
	Remaining   float64
	PercentUsed float64
}

// InventoryStats summarizes the active inventory for the dashboard.
type InventoryStats struct {
	TotalItems    int
	TotalValue    float64
	LowStockCount int
	OutOfStock    int
	AverageValue  float64
	ByCategory    map[string]*InventoryCategoryStats
}

// InventoryCategoryStats holds per-category counts for active items.
type InventoryCategoryStats struct {
	Count    int
	Value    float64
	Quantity float64
}

// ProjectReport is a project's row in a compiled report: the project
// plus its stats over the report's (possibly date-filtered) expenses.
type ProjectReport struct {
	Project Project
	Stats   ProjectStats
}

// Report is the full compiled report for a date range.
type Report struct {
	Totals       PortfolioTotals
	ProjectCount int
	ExpenseCount int
	ByCategory   []CategoryGroup
	ByType       TypeBreakdown
	Projects     []ProjectReport
	From         time.Time
	To           time.Time
	GeneratedAt  time.Time
}
