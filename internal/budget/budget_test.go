package budget

import (
	"testing"
	"time"

	"sitebudget/internal/model"
)

func expense(projectID, category, typ string, amount float64) model.Expense {
	return model.Expense{ProjectID: projectID, Category: category, Type: typ, Amount: amount}
}

func TestProjectStats(t *testing.T) {
	p := model.Project{ID: "p1", Budget: 10000}
	expenses := []model.Expense{
		expense("p1", "Materials", model.TypeResource, 3000),
		expense("p1", "Labor", model.TypeResource, 2500),
		expense("p2", "Materials", model.TypeResource, 9999), // other project, ignored
	}

	stats := ProjectStats(p, expenses)
	if stats.Spent != 5500 {
		t.Errorf("Spent = %v, want 5500", stats.Spent)
	}
	if stats.Remaining != 4500 {
		t.Errorf("Remaining = %v, want 4500", stats.Remaining)
	}
	if stats.PercentUsed != 55 {
		t.Errorf("PercentUsed = %v, want 55", stats.PercentUsed)
	}
	if stats.IsOverBudget {
		t.Error("IsOverBudget = true, want false")
	}
	if stats.ExpenseCount != 2 {
		t.Errorf("ExpenseCount = %d, want 2", stats.ExpenseCount)
	}
}

func TestProjectStatsOverBudgetUnclamped(t *testing.T) {
	p := model.Project{ID: "p1", Budget: 1000}
	expenses := []model.Expense{expense("p1", "Materials", "", 1500)}

	stats := ProjectStats(p, expenses)
	if stats.PercentUsed != 150 {
		t.Errorf("PercentUsed = %v, want 150 (unclamped)", stats.PercentUsed)
	}
	if !stats.IsOverBudget {
		t.Error("IsOverBudget = false, want true")
	}
	if ClampPercent(stats.PercentUsed) != 100 {
		t.Errorf("ClampPercent = %v, want 100", ClampPercent(stats.PercentUsed))
	}
}

func TestProjectStatsZeroBudget(t *testing.T) {
	p := model.Project{ID: "p1"}
	stats := ProjectStats(p, []model.Expense{expense("p1", "Materials", "", 100)})
	if stats.PercentUsed != 0 {
		t.Errorf("PercentUsed = %v, want 0 for zero budget", stats.PercentUsed)
	}
	if !stats.IsOverBudget {
		t.Error("spend against zero budget should flag over budget")
	}
}

func TestGroupByCategoryOrdering(t *testing.T) {
	expenses := []model.Expense{
		expense("p1", "Labor", "", 100),
		expense("p1", "Materials", "", 500),
		expense("p1", "Labor", "", 50),
		expense("p1", "Equipment", "", 300),
	}

	groups := GroupByCategory(expenses)
	if len(groups) != 3 {
		t.Fatalf("len = %d, want 3", len(groups))
	}
	want := []string{"Materials", "Equipment", "Labor"}
	for i, g := range groups {
		if g.Category != want[i] {
			t.Errorf("groups[%d] = %s, want %s", i, g.Category, want[i])
		}
	}
	if groups[2].Total != 150 || groups[2].Count != 2 {
		t.Errorf("Labor group = total %v count %d, want 150 and 2", groups[2].Total, groups[2].Count)
	}
}

func TestGroupByTypeDefaultBucket(t *testing.T) {
	expenses := []model.Expense{
		expense("p1", "Materials", model.TypeCapital, 1000),
		expense("p1", "Labor", model.TypeResource, 400),
		expense("p1", "Misc", "", 200),        // no type
		expense("p1", "Misc", "unknown", 100), // unrecognized type
	}

	bd := GroupByType(expenses)
	if bd.Capital.Total != 1000 || bd.Capital.Count != 1 {
		t.Errorf("Capital = total %v count %d, want 1000 and 1", bd.Capital.Total, bd.Capital.Count)
	}
	if bd.Resource.Total != 700 || bd.Resource.Count != 3 {
		t.Errorf("Resource = total %v count %d, want 700 and 3", bd.Resource.Total, bd.Resource.Count)
	}
}

func TestPortfolioTotals(t *testing.T) {
	projects := []model.Project{
		{ID: "p1", Budget: 10000},
		{ID: "p2", Budget: 5000},
	}
	expenses := []model.Expense{
		expense("p1", "Materials", "", 4000),
		expense("p2", "Labor", "", 2000),
	}

	totals := PortfolioTotals(projects, expenses)
	if totals.Budget != 15000 || totals.Spent != 6000 || totals.Remaining != 9000 {
		t.Errorf("totals = %+v", totals)
	}
	if totals.PercentUsed != 40 {
		t.Errorf("PercentUsed = %v, want 40", totals.PercentUsed)
	}
}

func TestFilterByDateRangeInclusive(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.Local) }
	expenses := []model.Expense{
		{ID: "before", Date: day(1), Amount: 1},
		{ID: "start", Date: day(5), Amount: 1},
		{ID: "mid", Date: day(10), Amount: 1},
		{ID: "end", Date: day(15), Amount: 1},
		{ID: "after", Date: day(20), Amount: 1},
	}

	got := FilterByDateRange(expenses, day(5), day(15))
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3 (bounds inclusive)", len(got))
	}
	if got[0].ID != "start" || got[2].ID != "end" {
		t.Errorf("got %s..%s, want start..end", got[0].ID, got[2].ID)
	}

	if got := FilterByDateRange(expenses, time.Time{}, day(5)); len(got) != 2 {
		t.Errorf("open-from filter len = %d, want 2", len(got))
	}
	if got := FilterByDateRange(expenses, time.Time{}, time.Time{}); len(got) != 5 {
		t.Errorf("no-bounds filter len = %d, want 5", len(got))
	}
}

func TestDailySpendFillsGaps(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.Local) }
	expenses := []model.Expense{
		{Date: day(1), Amount: 100},
		{Date: day(1), Amount: 50},
		{Date: day(3), Amount: 25},
	}

	days := DailySpend(expenses, day(1), day(4))
	if len(days) != 4 {
		t.Fatalf("len = %d, want 4 (gap days filled)", len(days))
	}
	// Most recent first.
	if days[0].Amount != 0 {
		t.Errorf("day 4 amount = %v, want 0", days[0].Amount)
	}
	if days[3].Amount != 150 || days[3].Count != 2 {
		t.Errorf("day 1 = amount %v count %d, want 150 and 2", days[3].Amount, days[3].Count)
	}
}
