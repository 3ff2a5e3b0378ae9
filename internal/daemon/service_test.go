package daemon

import (
	"math"
	"testing"
	"time"

	"sitebudget/internal/auth"
	"sitebudget/internal/model"
	"sitebudget/internal/store"
)

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{
		Projects:      3,
		Expenses:      40,
		TotalSpent:    52000,
		RiskCount:     1,
		LowStockItems: 2,
		OutOfStock:    0,
	}
	curr := Snapshot{
		Projects:      4,
		Expenses:      46,
		TotalSpent:    58500.5,
		RiskCount:     2,
		LowStockItems: 3,
		OutOfStock:    1,
	}

	delta := diffSnapshots(prev, curr)
	if delta.Projects != 1 {
		t.Fatalf("Projects delta = %d, want 1", delta.Projects)
	}
	if delta.Expenses != 6 {
		t.Fatalf("Expenses delta = %d, want 6", delta.Expenses)
	}
	if math.Abs(delta.TotalSpent-6500.5) > 1e-9 {
		t.Fatalf("TotalSpent delta = %.2f, want 6500.50", delta.TotalSpent)
	}
	if delta.RiskCount != 1 || delta.LowStockItems != 1 || delta.OutOfStock != 1 {
		t.Fatalf("risk deltas = %+v", delta)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}

	if !diffSnapshots(curr, curr).isZero() {
		t.Fatal("identical snapshots should diff to zero")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	}, nil)

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestTakeSnapshot(t *testing.T) {
	st, err := store.Open(store.NewMemory(), auth.DefaultUser())
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	p, err := st.AddProject(model.Project{Name: "Depot", Budget: 10000, Status: model.ProjectActive})
	if err != nil {
		t.Fatalf("AddProject: %v", err)
	}
	if _, err := st.AddExpense(model.Expense{ProjectID: p.ID, ItemName: "Concrete", Amount: 9500}); err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	if _, err := st.AddItem(model.InventoryItem{Name: "Screws", Quantity: 0, UnitPrice: 2, ReorderLevel: 10}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	snap := takeSnapshot(st, time.Now())
	if snap.Projects != 1 || snap.Expenses != 1 {
		t.Errorf("counts = %d projects, %d expenses", snap.Projects, snap.Expenses)
	}
	if snap.TotalBudget != 10000 || snap.TotalSpent != 9500 {
		t.Errorf("totals = %v / %v", snap.TotalSpent, snap.TotalBudget)
	}
	// 95% utilization is a critical risk.
	if snap.CriticalRisks != 1 {
		t.Errorf("CriticalRisks = %d, want 1", snap.CriticalRisks)
	}
	// The zero-quantity item counts as both out of stock and low stock.
	if snap.OutOfStock != 1 || snap.LowStockItems != 1 {
		t.Errorf("stock = out %d, low %d", snap.OutOfStock, snap.LowStockItems)
	}
}
