// Package model defines the core entities and derived metrics for sitebudget.
package model

import "time"

// Project statuses.
const (
	ProjectPlanning  = "planning"
	ProjectActive    = "active"
	ProjectOnHold    = "on_hold"
	ProjectCompleted = "completed"
	ProjectCancelled = "cancelled"
)

// Expense statuses.
const (
	ExpensePending  = "pending"
	ExpenseApproved = "approved"
	ExpenseRejected = "rejected"
)

// Expense types. Anything else is treated as a resource expense.
const (
	TypeCapital  = "capital"
	TypeResource = "resource"
)

// Inventory item statuses.
const (
	ItemActive       = "active"
	ItemInactive     = "inactive"
	ItemDiscontinued = "discontinued"
)

// ExpenseCategories is the suggestion set shown when logging an expense.
// Category is free-form; these are not enforced.
var ExpenseCategories = []string{
	"Materials",
	"Labor",
	"Equipment",
	"Permits & Licenses",
	"Transportation",
	"Utilities",
	"Subcontractors",
	"Safety Equipment",
	"Tools",
	"Office Supplies",
	"Insurance",
	"Other",
}

// ProjectTypes is the suggestion set for classifying a project.
var ProjectTypes = []string{
	"Residential Construction",
	"Commercial Construction",
	"Industrial Construction",
	"Infrastructure",
	"Renovation",
	"Civil Engineering",
	"Electrical Work",
	"Plumbing Work",
	"HVAC Systems",
	"Other",
}

// Project is a budgeted unit of construction work.
// Spent is a denormalized cache: it is re-summed from the project's
// expenses on every expense mutation, never delta-adjusted.
type Project struct {
	ID          string
	Name        string
	Description string
	Type        string
	Budget      float64
	Spent       float64
	Status      string
	Location    string
	ClientName  string
	StartDate   time.Time
	EndDate     time.Time
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Expense is a dated monetary outflow attributed to a project.
type Expense struct {
	ID            string
	ProjectID     string
	ItemName      string
	Category      string
	Type          string // capital or resource
	Amount        float64
	Quantity      float64
	Unit          string
	Date          time.Time // calendar date
	Status        string
	Vendor        string
	ReceiptNumber string
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StockAdjustment records the most recent manual stock change on an item.
type StockAdjustment struct {
	Amount float64
	Reason string
	Date   time.Time
}

// InventoryItem is a stocked material or tool, optionally tied to a project.
// TotalValue is always Quantity * UnitPrice after any mutating operation.
type InventoryItem struct {
	ID             string
	Name           string
	SKU            string
	Description    string
	Category       string
	Quantity       float64
	Unit           string
	UnitPrice      float64
	ReorderLevel   float64
	TotalValue     float64
	ProjectID      string
	Location       string
	Supplier       string
	Status         string
	LastAdjustment *StockAdjustment
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DateLayout is the calendar-date form used everywhere dates are
// rendered or parsed (expense dates, forecast dates, report ranges).
const DateLayout = "2006-01-02"
