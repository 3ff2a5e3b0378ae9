package insight

import (
	"strings"
	"testing"
	"time"

	"sitebudget/internal/model"
)

func project(id, name string, budget float64) model.Project {
	return model.Project{ID: id, Name: name, Budget: budget, Status: model.ProjectActive}
}

// expensesTotaling splits total across n expenses on consecutive dates.
func expensesTotaling(projectID string, total float64, n int) []model.Expense {
	out := make([]model.Expense, n)
	for i := range out {
		out[i] = model.Expense{
			ProjectID: projectID,
			Category:  "Materials",
			Amount:    total / float64(n),
			Date:      time.Date(2026, 1, 1+i, 0, 0, 0, 0, time.Local),
		}
	}
	return out
}

func findRisk(risks []Risk, projectName string) (Risk, bool) {
	for _, r := range risks {
		if r.Project == projectName {
			return r, true
		}
	}
	return Risk{}, false
}

func hasRecommendation(recs []Recommendation, action string) bool {
	for _, r := range recs {
		if r.Action == action {
			return true
		}
	}
	return false
}

func TestBudgetRiskTiers(t *testing.T) {
	tests := []struct {
		name      string
		spent     float64
		wantLevel string // "" means no risk
	}{
		{"well under", 5000, ""},
		{"exactly 75 percent", 7500, ""},
		{"just over 75", 7600, LevelWarning},
		{"85 percent", 8500, LevelWarning},
		{"exactly 90 percent", 9000, LevelWarning},
		{"just over 90", 9001, LevelCritical},
		{"95 percent", 9500, LevelCritical},
		{"over budget", 12000, LevelCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := project("p1", "Tower", 10000)
			// Two expenses so the trend projection cannot fire and
			// muddy the risk list.
			expenses := expensesTotaling("p1", tt.spent, 2)

			a := AnalyzeBudget([]model.Project{p}, expenses)
			r, found := findRisk(a.Risks, "Tower")
			if tt.wantLevel == "" {
				if found {
					t.Errorf("unexpected risk %+v", r)
				}
				return
			}
			if !found {
				t.Fatal("expected a risk, got none")
			}
			if r.Level != tt.wantLevel {
				t.Errorf("level = %s, want %s", r.Level, tt.wantLevel)
			}
		})
	}
}

func TestWarningTierEmitsNoRecommendation(t *testing.T) {
	p := project("p1", "Depot", 10000)
	a := AnalyzeBudget([]model.Project{p}, expensesTotaling("p1", 8500, 2))

	if hasRecommendation(a.Recommendations, "Budget Review") {
		t.Error("warning tier emitted a Budget Review recommendation")
	}
	// Risks exist, so the no-risk fallback must not fire either.
	if hasRecommendation(a.Recommendations, "Optimization") {
		t.Error("Optimization fallback emitted despite open risks")
	}
}

func TestCriticalTierEmitsBudgetReview(t *testing.T) {
	p := project("p1", "Depot", 10000)
	a := AnalyzeBudget([]model.Project{p}, expensesTotaling("p1", 9500, 2))

	r, found := findRisk(a.Risks, "Depot")
	if !found || r.Level != LevelCritical {
		t.Fatalf("risk = %+v (found=%v), want critical", r, found)
	}
	if !hasRecommendation(a.Recommendations, "Budget Review") {
		t.Error("critical tier missing Budget Review recommendation")
	}
	for _, rec := range a.Recommendations {
		if rec.Action == "Budget Review" && rec.Priority != GradeHigh {
			t.Errorf("Budget Review priority = %s, want high", rec.Priority)
		}
	}
}

func TestTrendProjectionNeedsFiveExpenses(t *testing.T) {
	p := project("p1", "Road", 10000)

	// 4 recent expenses: below the minimum, no trend insight even
	// though the rate is clearly unsustainable.
	a := AnalyzeBudget([]model.Project{p}, expensesTotaling("p1", 8000, 4))
	for _, in := range a.Insights {
		if in.Type == TypeTrend {
			t.Error("trend insight emitted with fewer than 5 expenses")
		}
	}

	// 5 expenses of 1600 each: avg 1600, projected 1600*30/7 ≈ 6857
	// against 2000 remaining.
	a = AnalyzeBudget([]model.Project{p}, expensesTotaling("p1", 8000, 5))
	var trend *Insight
	for i, in := range a.Insights {
		if in.Type == TypeTrend {
			trend = &a.Insights[i]
		}
	}
	if trend == nil {
		t.Fatal("expected trend insight")
	}
	if trend.Confidence != 75 {
		t.Errorf("confidence = %d, want 75", trend.Confidence)
	}
	if trend.Prediction != "budget_overrun" {
		t.Errorf("prediction = %s", trend.Prediction)
	}
	if !hasRecommendation(a.Recommendations, "Spending Control") {
		t.Error("missing Spending Control recommendation")
	}
}

func TestTrendProjectionUsesLastTenOnly(t *testing.T) {
	p := project("p1", "Bridge", 100000)
	// 20 old large expenses followed by 10 recent tiny ones; only the
	// recent window should drive the projection.
	var expenses []model.Expense
	for i := 0; i < 20; i++ {
		expenses = append(expenses, model.Expense{
			ProjectID: "p1", Amount: 4000,
			Date: time.Date(2025, 1, 1+i, 0, 0, 0, 0, time.Local),
		})
	}
	for i := 0; i < 10; i++ {
		expenses = append(expenses, model.Expense{
			ProjectID: "p1", Amount: 10,
			Date: time.Date(2026, 1, 1+i, 0, 0, 0, 0, time.Local),
		})
	}

	a := AnalyzeBudget([]model.Project{p}, expenses)
	for _, in := range a.Insights {
		if in.Type == TypeTrend {
			t.Errorf("trend fired from stale expenses: %s", in.Message)
		}
	}
}

func TestCategoryConcentration(t *testing.T) {
	p := project("p1", "Plant", 100000)
	expenses := []model.Expense{
		{ProjectID: "p1", Category: "Materials", Amount: 600, Date: time.Now()},
		{ProjectID: "p1", Category: "Labor", Amount: 400, Date: time.Now()},
	}

	a := AnalyzeBudget([]model.Project{p}, expenses)
	var cat *Insight
	for i, in := range a.Insights {
		if in.Type == TypeCategory {
			cat = &a.Insights[i]
		}
	}
	if cat == nil {
		t.Fatal("expected category insight for 60% concentration")
	}
	if cat.Category != "Materials" || cat.Amount != 600 {
		t.Errorf("category insight = %+v", cat)
	}

	// An exact 50/50 split is not a concentration.
	even := []model.Expense{
		{ProjectID: "p1", Category: "Materials", Amount: 500, Date: time.Now()},
		{ProjectID: "p1", Category: "Labor", Amount: 500, Date: time.Now()},
	}
	a = AnalyzeBudget([]model.Project{p}, even)
	for _, in := range a.Insights {
		if in.Type == TypeCategory {
			t.Errorf("category insight at exactly 50%%: %s", in.Message)
		}
	}
}

func TestPortfolioInsightAlwaysPresent(t *testing.T) {
	a := AnalyzeBudget(nil, nil)

	var portfolio *Insight
	for i, in := range a.Insights {
		if in.Type == TypePortfolio {
			portfolio = &a.Insights[i]
		}
	}
	if portfolio == nil {
		t.Fatal("portfolio insight missing on empty input")
	}
	if !hasRecommendation(a.Recommendations, "Optimization") {
		t.Error("no-risk fallback recommendation missing")
	}
	if a.Score != 50 {
		t.Errorf("empty portfolio score = %v, want neutral 50", a.Score)
	}
}

func TestRiskOrderingStable(t *testing.T) {
	projects := []model.Project{
		project("w1", "Warn One", 10000),
		project("c1", "Crit One", 10000),
		project("w2", "Warn Two", 10000),
		project("c2", "Crit Two", 10000),
	}
	var expenses []model.Expense
	expenses = append(expenses, expensesTotaling("w1", 8000, 2)...)
	expenses = append(expenses, expensesTotaling("c1", 9500, 2)...)
	expenses = append(expenses, expensesTotaling("w2", 8200, 2)...)
	expenses = append(expenses, expensesTotaling("c2", 9600, 2)...)

	a := AnalyzeBudget(projects, expenses)
	want := []string{"Crit One", "Crit Two", "Warn One", "Warn Two"}
	if len(a.Risks) != 4 {
		t.Fatalf("risk count = %d, want 4", len(a.Risks))
	}
	for i, r := range a.Risks {
		if r.Project != want[i] {
			t.Errorf("risks[%d] = %s, want %s", i, r.Project, want[i])
		}
	}
}

func TestHealthScore(t *testing.T) {
	tests := []struct {
		name      string
		budget    float64
		spent     float64
		riskCount int
		want      float64
	}{
		{"untouched budget", 10000, 0, 0, 100},
		{"half spent", 10000, 5000, 0, 50},
		{"half spent one risk", 10000, 5000, 1, 35},
		{"risks floor at zero", 10000, 5000, 5, 0},
		{"overspent", 10000, 15000, 0, 0},
		{"zero budget neutral", 0, 0, 0, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HealthScore(tt.budget, tt.spent, tt.riskCount); got != tt.want {
				t.Errorf("HealthScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHealthScoreMonotonicInRisks(t *testing.T) {
	prev := HealthScore(10000, 3000, 0)
	for n := 1; n <= 6; n++ {
		cur := HealthScore(10000, 3000, n)
		if cur > prev {
			t.Errorf("score rose from %v to %v at riskCount %d", prev, cur, n)
		}
		prev = cur
	}
}

func TestInventoryOverlapCounts(t *testing.T) {
	items := []model.InventoryItem{
		{Name: "Screws", Quantity: 0, ReorderLevel: 10, Status: model.ItemActive},
		{Name: "Bolts", Quantity: 5, ReorderLevel: 10, Status: model.ItemActive},
		{Name: "Nuts", Quantity: 50, ReorderLevel: 10, Status: model.ItemActive},
		{Name: "Retired", Quantity: 0, ReorderLevel: 10, Status: model.ItemDiscontinued},
	}

	a := AnalyzeInventory(items)
	if a.OutOfStockCount != 1 {
		t.Errorf("OutOfStockCount = %d, want 1", a.OutOfStockCount)
	}
	// Screws counts in BOTH lists; the overlap is intentional.
	if a.LowStockCount != 2 {
		t.Errorf("LowStockCount = %d, want 2", a.LowStockCount)
	}

	if len(a.Risks) != 2 {
		t.Fatalf("risk count = %d, want 2", len(a.Risks))
	}
	if a.Risks[0].Level != LevelCritical || a.Risks[1].Level != LevelWarning {
		t.Errorf("risk levels = %s, %s", a.Risks[0].Level, a.Risks[1].Level)
	}
	if !hasRecommendation(a.Recommendations, "Immediate Reorder") {
		t.Error("missing Immediate Reorder recommendation")
	}
	if !hasRecommendation(a.Recommendations, "Stock Replenishment") {
		t.Error("missing Stock Replenishment recommendation")
	}
}

func TestInventoryLowStockOnly(t *testing.T) {
	items := []model.InventoryItem{
		{Name: "Bolts", Quantity: 5, ReorderLevel: 10, Status: model.ItemActive},
	}

	a := AnalyzeInventory(items)
	if a.OutOfStockCount != 0 {
		t.Errorf("OutOfStockCount = %d, want 0", a.OutOfStockCount)
	}
	if a.LowStockCount != 1 {
		t.Errorf("LowStockCount = %d, want 1", a.LowStockCount)
	}
	if len(a.Risks) != 1 || a.Risks[0].Level != LevelWarning {
		t.Fatalf("risks = %+v, want single warning", a.Risks)
	}
}

func TestInventoryOverstockRecommendation(t *testing.T) {
	items := []model.InventoryItem{
		{Name: "Gold Plated Pipe", Quantity: 10, TotalValue: 10000, ReorderLevel: 1, Status: model.ItemActive},
		{Name: "Sand", Quantity: 100, TotalValue: 500, ReorderLevel: 1, Status: model.ItemActive},
		{Name: "Gravel", Quantity: 100, TotalValue: 500, ReorderLevel: 1, Status: model.ItemActive},
	}

	a := AnalyzeInventory(items)
	found := false
	for _, rec := range a.Recommendations {
		if rec.Action == "Inventory Optimization" {
			found = true
			if rec.Priority != GradeLow {
				t.Errorf("priority = %s, want low", rec.Priority)
			}
			if !strings.Contains(rec.Suggestion, "Gold Plated Pipe") {
				t.Errorf("suggestion does not name the item: %s", rec.Suggestion)
			}
		}
	}
	if !found {
		t.Error("missing Inventory Optimization recommendation")
	}
}

func TestInventoryEmptyInput(t *testing.T) {
	a := AnalyzeInventory(nil)
	if len(a.Risks) != 0 || len(a.Recommendations) != 0 {
		t.Errorf("empty input produced %d risks, %d recommendations", len(a.Risks), len(a.Recommendations))
	}
}
