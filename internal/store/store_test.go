package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"sitebudget/internal/auth"
	"sitebudget/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(NewMemory(), auth.DefaultUser())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func addProject(t *testing.T, s *Store, name string, budget float64) model.Project {
	t.Helper()
	p, err := s.AddProject(model.Project{Name: name, Budget: budget, Status: model.ProjectActive})
	if err != nil {
		t.Fatalf("AddProject(%s): %v", name, err)
	}
	return p
}

func addExpense(t *testing.T, s *Store, projectID string, amount float64) model.Expense {
	t.Helper()
	e, err := s.AddExpense(model.Expense{ProjectID: projectID, ItemName: "Cement", Category: "Materials", Amount: amount})
	if err != nil {
		t.Fatalf("AddExpense(%v): %v", amount, err)
	}
	return e
}

func TestSpentResyncsOnExpenseMutations(t *testing.T) {
	s := newTestStore(t)
	p := addProject(t, s, "Warehouse", 10000)

	e1 := addExpense(t, s, p.ID, 1200)
	addExpense(t, s, p.ID, 800)

	got, err := s.Project(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Spent != 2000 {
		t.Errorf("Spent after adds = %v, want 2000", got.Spent)
	}

	e1.Amount = 1500
	if _, err := s.UpdateExpense(e1); err != nil {
		t.Fatalf("UpdateExpense: %v", err)
	}
	got, _ = s.Project(p.ID)
	if got.Spent != 2300 {
		t.Errorf("Spent after update = %v, want 2300", got.Spent)
	}

	if err := s.DeleteExpense(e1.ID); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}
	got, _ = s.Project(p.ID)
	if got.Spent != 800 {
		t.Errorf("Spent after delete = %v, want 800", got.Spent)
	}
}

func TestUpdateExpenseMovesBetweenProjects(t *testing.T) {
	s := newTestStore(t)
	a := addProject(t, s, "Site A", 5000)
	b := addProject(t, s, "Site B", 5000)
	e := addExpense(t, s, a.ID, 900)

	e.ProjectID = b.ID
	if _, err := s.UpdateExpense(e); err != nil {
		t.Fatalf("UpdateExpense: %v", err)
	}

	gotA, _ := s.Project(a.ID)
	gotB, _ := s.Project(b.ID)
	if gotA.Spent != 0 {
		t.Errorf("source Spent = %v, want 0", gotA.Spent)
	}
	if gotB.Spent != 900 {
		t.Errorf("target Spent = %v, want 900", gotB.Spent)
	}
}

func TestUpdateProjectPreservesSpent(t *testing.T) {
	s := newTestStore(t)
	p := addProject(t, s, "Tower", 20000)
	addExpense(t, s, p.ID, 5000)

	p.Budget = 25000
	p.Spent = 99999 // caller cannot override the derived value
	updated, err := s.UpdateProject(p)
	if err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}
	if updated.Spent != 5000 {
		t.Errorf("Spent = %v, want 5000", updated.Spent)
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	s := newTestStore(t)
	keep := addProject(t, s, "Keep", 1000)
	gone := addProject(t, s, "Gone", 1000)
	addExpense(t, s, keep.ID, 100)
	addExpense(t, s, gone.ID, 200)
	addExpense(t, s, gone.ID, 300)

	if err := s.DeleteProject(gone.ID); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}

	for _, e := range s.Expenses() {
		if e.ProjectID == gone.ID {
			t.Errorf("dangling expense %s for deleted project", e.ID)
		}
	}
	if got := len(s.Expenses()); got != 1 {
		t.Errorf("expense count = %d, want 1", got)
	}
}

func TestAddExpenseValidation(t *testing.T) {
	s := newTestStore(t)
	p := addProject(t, s, "Valid", 1000)

	tests := []struct {
		name    string
		expense model.Expense
	}{
		{"missing item name", model.Expense{ProjectID: p.ID, Amount: 10}},
		{"negative amount", model.Expense{ProjectID: p.ID, ItemName: "Nails", Amount: -5}},
		{"unknown project", model.Expense{ProjectID: "nope", ItemName: "Nails", Amount: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.AddExpense(tt.expense); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestAdjustStockRejectsNegativeResult(t *testing.T) {
	s := newTestStore(t)
	it, err := s.AddItem(model.InventoryItem{Name: "Rebar", Quantity: 3, UnitPrice: 12.5})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	_, err = s.AdjustStock(it.ID, -5, "waste")
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	after, _ := s.Item(it.ID)
	if after.Quantity != 3 {
		t.Errorf("Quantity = %v, want 3 (unchanged)", after.Quantity)
	}
	if after.LastAdjustment != nil {
		t.Error("rejected adjustment was recorded")
	}
}

func TestAdjustStockUpdatesValueAndHistory(t *testing.T) {
	s := newTestStore(t)
	it, _ := s.AddItem(model.InventoryItem{Name: "Plywood", Quantity: 10, UnitPrice: 40})

	got, err := s.AdjustStock(it.ID, -4, "used on site")
	if err != nil {
		t.Fatalf("AdjustStock: %v", err)
	}
	if got.Quantity != 6 {
		t.Errorf("Quantity = %v, want 6", got.Quantity)
	}
	if got.TotalValue != 240 {
		t.Errorf("TotalValue = %v, want 240", got.TotalValue)
	}
	if got.LastAdjustment == nil || got.LastAdjustment.Amount != -4 || got.LastAdjustment.Reason != "used on site" {
		t.Errorf("LastAdjustment = %+v", got.LastAdjustment)
	}

	// Adjusting to exactly zero is allowed.
	got, err = s.AdjustStock(it.ID, -6, "closeout")
	if err != nil {
		t.Fatalf("AdjustStock to zero: %v", err)
	}
	if got.Quantity != 0 || got.TotalValue != 0 {
		t.Errorf("after closeout: quantity %v value %v, want 0 and 0", got.Quantity, got.TotalValue)
	}
}

func TestTotalValueDerived(t *testing.T) {
	s := newTestStore(t)
	it, _ := s.AddItem(model.InventoryItem{Name: "Paint", Quantity: 8, UnitPrice: 25, TotalValue: 1})
	if it.TotalValue != 200 {
		t.Errorf("TotalValue on add = %v, want 200", it.TotalValue)
	}

	it.UnitPrice = 30
	it.TotalValue = 1
	updated, err := s.UpdateItem(it)
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if updated.TotalValue != 240 {
		t.Errorf("TotalValue on update = %v, want 240", updated.TotalValue)
	}
}

func TestInventoryStatsOverlap(t *testing.T) {
	s := newTestStore(t)
	// qty 0: counts as out of stock AND low stock
	s.AddItem(model.InventoryItem{Name: "Screws", Quantity: 0, UnitPrice: 2, ReorderLevel: 10})
	// qty 5 <= reorder 10: low stock only
	s.AddItem(model.InventoryItem{Name: "Bolts", Quantity: 5, UnitPrice: 3, ReorderLevel: 10})
	// healthy
	s.AddItem(model.InventoryItem{Name: "Nuts", Quantity: 50, UnitPrice: 1, ReorderLevel: 10})
	// inactive items are excluded entirely
	s.AddItem(model.InventoryItem{Name: "Old stock", Quantity: 0, UnitPrice: 9, ReorderLevel: 5, Status: model.ItemInactive})

	stats := s.InventoryStats()
	if stats.TotalItems != 3 {
		t.Errorf("TotalItems = %d, want 3", stats.TotalItems)
	}
	if stats.OutOfStock != 1 {
		t.Errorf("OutOfStock = %d, want 1", stats.OutOfStock)
	}
	if stats.LowStockCount != 2 {
		t.Errorf("LowStockCount = %d, want 2 (out-of-stock overlaps)", stats.LowStockCount)
	}
	if stats.TotalValue != 65 {
		t.Errorf("TotalValue = %v, want 65", stats.TotalValue)
	}
}

func TestSearchItems(t *testing.T) {
	s := newTestStore(t)
	s.AddItem(model.InventoryItem{Name: "Copper Wire", SKU: "CW-100", Quantity: 1, UnitPrice: 1, Supplier: "ElectroSupply"})
	s.AddItem(model.InventoryItem{Name: "PVC Pipe", SKU: "PP-200", Quantity: 1, UnitPrice: 1, Category: "Plumbing"})

	tests := []struct {
		query string
		want  int
	}{
		{"copper", 1},
		{"pp-200", 1},
		{"plumbing", 1},
		{"electro", 1},
		{"", 2},
		{"missing", 0},
	}
	for _, tt := range tests {
		if got := len(s.SearchItems(tt.query)); got != tt.want {
			t.Errorf("SearchItems(%q) = %d items, want %d", tt.query, got, tt.want)
		}
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sitebudget.db")

	db, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	s, err := Open(db, auth.DefaultUser())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	p := addProject(t, s, "Persisted", 7500)
	addExpense(t, s, p.ID, 1250)
	it, _ := s.AddItem(model.InventoryItem{Name: "Gravel", Quantity: 20, UnitPrice: 15, ReorderLevel: 5})
	if _, err := s.AdjustStock(it.ID, -3, "foundation pour"); err != nil {
		t.Fatalf("AdjustStock: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db2, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = db2.Close() }()
	s2, err := Open(db2, auth.DefaultUser())
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}

	got, err := s2.Project(p.ID)
	if err != nil {
		t.Fatalf("Project after reload: %v", err)
	}
	if got.Spent != 1250 {
		t.Errorf("Spent after reload = %v, want 1250", got.Spent)
	}
	if len(s2.ProjectExpenses(p.ID)) != 1 {
		t.Errorf("expenses after reload = %d, want 1", len(s2.ProjectExpenses(p.ID)))
	}

	item, err := s2.Item(it.ID)
	if err != nil {
		t.Fatalf("Item after reload: %v", err)
	}
	if item.Quantity != 17 || item.TotalValue != 255 {
		t.Errorf("item after reload: quantity %v value %v, want 17 and 255", item.Quantity, item.TotalValue)
	}
	if item.LastAdjustment == nil || item.LastAdjustment.Reason != "foundation pour" {
		t.Errorf("LastAdjustment after reload = %+v", item.LastAdjustment)
	}
}

func TestProjectsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	first := addProject(t, s, "First", 100)
	time.Sleep(2 * time.Millisecond)
	second := addProject(t, s, "Second", 100)

	got := s.Projects()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != second.ID || got[1].ID != first.ID {
		t.Errorf("order = [%s, %s], want newest first", got[0].Name, got[1].Name)
	}
}
