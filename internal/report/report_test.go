package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"sitebudget/internal/model"
)

func day(d int) time.Time {
	return time.Date(2026, 4, d, 0, 0, 0, 0, time.Local)
}

func fixture() ([]model.Project, []model.Expense) {
	projects := []model.Project{
		{ID: "p1", Name: "Office Block", Budget: 50000, Status: model.ProjectActive},
		{ID: "p2", Name: "Parking Lot", Budget: 20000, Status: model.ProjectPlanning},
	}
	expenses := []model.Expense{
		{ID: "e1", ProjectID: "p1", ItemName: "Steel beams", Category: "Materials", Type: model.TypeCapital, Amount: 12000, Date: day(2)},
		{ID: "e2", ProjectID: "p1", ItemName: "Crew wages", Category: "Labor", Type: model.TypeResource, Amount: 8000, Date: day(10)},
		{ID: "e3", ProjectID: "p2", ItemName: "Gravel", Category: "Materials", Amount: 3000, Date: day(20)},
		{ID: "e4", ProjectID: "p1", ItemName: "Old invoice", Category: "Materials", Amount: 9999, Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)},
	}
	return projects, expenses
}

func TestGenerateFiltersRange(t *testing.T) {
	projects, expenses := fixture()
	r := Generate(projects, expenses, day(1), day(30))

	if r.ExpenseCount != 3 {
		t.Errorf("ExpenseCount = %d, want 3 (out-of-range excluded)", r.ExpenseCount)
	}
	if r.Totals.Spent != 23000 {
		t.Errorf("Totals.Spent = %v, want 23000", r.Totals.Spent)
	}
	if r.Totals.Budget != 70000 {
		t.Errorf("Totals.Budget = %v, want 70000", r.Totals.Budget)
	}
	if r.ProjectCount != 2 || len(r.Projects) != 2 {
		t.Errorf("project counts = %d, %d, want 2", r.ProjectCount, len(r.Projects))
	}

	// Per-project stats use only the ranged expenses.
	if r.Projects[0].Stats.Spent != 20000 {
		t.Errorf("Office Block spent = %v, want 20000", r.Projects[0].Stats.Spent)
	}
	if r.Projects[1].Stats.ExpenseCount != 1 {
		t.Errorf("Parking Lot count = %d, want 1", r.Projects[1].Stats.ExpenseCount)
	}
}

func TestGenerateGroupings(t *testing.T) {
	projects, expenses := fixture()
	r := Generate(projects, expenses, day(1), day(30))

	if len(r.ByCategory) != 2 {
		t.Fatalf("category groups = %d, want 2", len(r.ByCategory))
	}
	if r.ByCategory[0].Category != "Materials" || r.ByCategory[0].Total != 15000 {
		t.Errorf("top category = %s %v, want Materials 15000", r.ByCategory[0].Category, r.ByCategory[0].Total)
	}

	if r.ByType.Capital.Total != 12000 {
		t.Errorf("Capital = %v, want 12000", r.ByType.Capital.Total)
	}
	// Untyped Gravel falls to the resource bucket.
	if r.ByType.Resource.Total != 11000 || r.ByType.Resource.Count != 2 {
		t.Errorf("Resource = %v/%d, want 11000/2", r.ByType.Resource.Total, r.ByType.Resource.Count)
	}
}

func TestGenerateOpenRange(t *testing.T) {
	projects, expenses := fixture()
	r := Generate(projects, expenses, time.Time{}, time.Time{})
	if r.ExpenseCount != 4 {
		t.Errorf("ExpenseCount = %d, want all 4 with open range", r.ExpenseCount)
	}
}

func TestGenerateEmptyInput(t *testing.T) {
	r := Generate(nil, nil, time.Time{}, time.Time{})
	if r.Totals.Spent != 0 || r.ProjectCount != 0 || len(r.ByCategory) != 0 {
		t.Errorf("empty report = %+v", r)
	}
	if r.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not set")
	}
}

func TestWriteCSV(t *testing.T) {
	projects, expenses := fixture()
	r := Generate(projects, expenses, day(1), day(30))

	var buf bytes.Buffer
	if err := WriteCSV(&buf, r); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Project,Status,Budget,Spent,Remaining",
		"Office Block,active,50000.00,20000.00,30000.00",
		"TOTAL,,70000.00,23000.00,47000.00",
		"Materials,15000.00,2",
		"Capital,12000.00,1",
		"2026-04-02,Steel beams,Materials,capital,12000.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("csv missing %q\n%s", want, out)
		}
	}

	// Out-of-range expense stays out of the export.
	if strings.Contains(out, "Old invoice") {
		t.Error("csv contains out-of-range expense")
	}
}
