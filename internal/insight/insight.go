// Package insight derives risks, observations and recommendations from
// the budget and inventory data sets. The analysis is heuristic and
// deliberately cheap; it runs on every dashboard refresh.
package insight

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"sitebudget/internal/budget"
	"sitebudget/internal/model"
)

// Risk levels.
const (
	LevelCritical = "critical"
	LevelWarning  = "warning"
	LevelLow      = "low"
)

// Impact and priority grades share one scale.
const (
	GradeHigh   = "high"
	GradeMedium = "medium"
	GradeLow    = "low"
)

// Insight types.
const (
	TypeTrend     = "trend"
	TypeCategory  = "category"
	TypePortfolio = "portfolio"
)

// Risk is a flagged condition needing attention.
type Risk struct {
	Level       string
	Project     string
	Message     string
	Impact      string
	Probability string
	Items       []string
}

// Insight is a neutral observation about spending patterns.
type Insight struct {
	Type        string
	Project     string
	Message     string
	Prediction  string
	Confidence  int
	Category    string
	Amount      float64
	TotalBudget float64
	TotalSpent  float64
	Remaining   float64
}

// Recommendation is a suggested action, ordered by priority.
type Recommendation struct {
	Project    string
	Action     string
	Priority   string
	Suggestion string
}

// BudgetAnalysis is the result of one budget risk pass.
type BudgetAnalysis struct {
	Risks           []Risk
	Insights        []Insight
	Recommendations []Recommendation
	Score           float64
	GeneratedAt     time.Time
}

// InventoryAnalysis is the result of one inventory risk pass.
type InventoryAnalysis struct {
	Risks           []Risk
	Recommendations []Recommendation
	LowStockCount   int
	OutOfStockCount int
}

// trendHorizonDays is the assumed days-to-complete used by the
// spending-trend projection.
const trendHorizonDays = 30

// AnalyzeBudget runs the full budget risk pass over all projects.
// It never fails; empty input yields the portfolio insight, the
// no-risk recommendation and a neutral score.
func AnalyzeBudget(projects []model.Project, expenses []model.Expense) BudgetAnalysis {
	var risks []Risk
	var insights []Insight
	var recs []Recommendation

	for _, p := range projects {
		spent := budget.SumExpenses(p.ID, expenses)
		pct := 0.0
		if p.Budget > 0 {
			pct = spent / p.Budget * 100
		}

		switch {
		case p.Budget <= 0 && spent > 0:
			risks = append(risks, Risk{
				Level:       LevelCritical,
				Project:     p.Name,
				Message:     fmt.Sprintf("Spending of %.2f recorded against an empty budget - immediate action required", spent),
				Impact:      GradeHigh,
				Probability: GradeHigh,
			})
			recs = append(recs, Recommendation{
				Project:    p.Name,
				Action:     "Budget Review",
				Priority:   GradeHigh,
				Suggestion: "Consider reallocating budget or reducing scope for non-critical items",
			})
		case pct > 90:
			risks = append(risks, Risk{
				Level:       LevelCritical,
				Project:     p.Name,
				Message:     fmt.Sprintf("Budget utilization at %.1f%% - immediate action required", pct),
				Impact:      GradeHigh,
				Probability: GradeHigh,
			})
			recs = append(recs, Recommendation{
				Project:    p.Name,
				Action:     "Budget Review",
				Priority:   GradeHigh,
				Suggestion: "Consider reallocating budget or reducing scope for non-critical items",
			})
		case pct > 75:
			risks = append(risks, Risk{
				Level:       LevelWarning,
				Project:     p.Name,
				Message:     fmt.Sprintf("Budget utilization at %.1f%% - monitor closely", pct),
				Impact:      GradeMedium,
				Probability: GradeMedium,
			})
		}

		if in, rec, ok := trendProjection(p, expenses, spent); ok {
			insights = append(insights, in)
			recs = append(recs, rec)
		}

		if in, ok := categoryConcentration(p, expenses, spent); ok {
			insights = append(insights, in)
		}
	}

	totals := budget.PortfolioTotals(projects, expenses)
	insights = append(insights, Insight{
		Type:        TypePortfolio,
		Message:     fmt.Sprintf("Portfolio-wide budget utilization: %.1f%%", totals.PercentUsed),
		TotalBudget: totals.Budget,
		TotalSpent:  totals.Spent,
		Remaining:   totals.Remaining,
	})

	if len(risks) == 0 {
		recs = append(recs, Recommendation{
			Project:    "Portfolio",
			Action:     "Optimization",
			Priority:   GradeLow,
			Suggestion: "Budget management is on track. Consider investing in efficiency improvements.",
		})
	}

	sort.SliceStable(risks, func(i, j int) bool {
		return riskScore(risks[i]) > riskScore(risks[j])
	})
	sort.SliceStable(recs, func(i, j int) bool {
		return priorityScore(recs[i].Priority) > priorityScore(recs[j].Priority)
	})

	return BudgetAnalysis{
		Risks:           risks,
		Insights:        insights,
		Recommendations: recs,
		Score:           HealthScore(totals.Budget, totals.Spent, len(risks)),
		GeneratedAt:     time.Now(),
	}
}

// trendProjection flags a project whose recent spending rate would
// exceed its remaining budget over the assumed completion horizon.
// Needs at least 5 of the project's last 10 expenses to say anything.
func trendProjection(p model.Project, expenses []model.Expense, spent float64) (Insight, Recommendation, bool) {
	var own []model.Expense
	for _, e := range expenses {
		if e.ProjectID == p.ID {
			own = append(own, e)
		}
	}
	recent := budget.SortByDateDesc(own)
	if len(recent) > 10 {
		recent = recent[:10]
	}
	if len(recent) < 5 {
		return Insight{}, Recommendation{}, false
	}

	var sum float64
	for _, e := range recent {
		sum += e.Amount
	}
	avg := sum / float64(len(recent))
	remaining := p.Budget - spent
	projected := avg * (trendHorizonDays / 7.0)
	if projected <= remaining || p.Budget <= 0 {
		return Insight{}, Recommendation{}, false
	}

	in := Insight{
		Type:       TypeTrend,
		Project:    p.Name,
		Message:    fmt.Sprintf("Current spending rate may exceed budget by %.1f%%", (projected-remaining)/p.Budget*100),
		Prediction: "budget_overrun",
		Confidence: 75,
	}
	rec := Recommendation{
		Project:    p.Name,
		Action:     "Spending Control",
		Priority:   GradeMedium,
		Suggestion: "Reduce daily expenditure by implementing stricter approval process",
	}
	return in, rec, true
}

// categoryConcentration flags a project where one category carries more
// than half the total spend.
func categoryConcentration(p model.Project, expenses []model.Expense, spent float64) (Insight, bool) {
	if spent <= 0 {
		return Insight{}, false
	}

	byCat := make(map[string]float64)
	for _, e := range expenses {
		if e.ProjectID == p.ID {
			byCat[e.Category] += e.Amount
		}
	}

	var topCat string
	var topAmount float64
	for cat, amount := range byCat {
		if amount > topAmount || (amount == topAmount && cat < topCat) {
			topCat = cat
			topAmount = amount
		}
	}
	if topAmount <= spent*0.5 {
		return Insight{}, false
	}

	return Insight{
		Type:     TypeCategory,
		Project:  p.Name,
		Message:  fmt.Sprintf("%s accounts for %.1f%% of spending", topCat, topAmount/spent*100),
		Category: topCat,
		Amount:   topAmount,
	}, true
}

// AnalyzeInventory runs the stock risk pass over active items only.
// Low stock is a superset of out of stock; the counts overlap.
func AnalyzeInventory(items []model.InventoryItem) InventoryAnalysis {
	var lowStock, outOfStock []string
	var active []model.InventoryItem
	for _, it := range items {
		if it.Status != model.ItemActive {
			continue
		}
		active = append(active, it)
		if it.Quantity <= it.ReorderLevel {
			lowStock = append(lowStock, it.Name)
		}
		if it.Quantity == 0 {
			outOfStock = append(outOfStock, it.Name)
		}
	}

	var risks []Risk
	var recs []Recommendation

	if len(outOfStock) > 0 {
		risks = append(risks, Risk{
			Level:   LevelCritical,
			Message: fmt.Sprintf("%d items are out of stock", len(outOfStock)),
			Impact:  GradeHigh,
			Items:   outOfStock,
		})
		recs = append(recs, Recommendation{
			Action:     "Immediate Reorder",
			Priority:   GradeHigh,
			Suggestion: fmt.Sprintf("Order %s immediately to prevent project delays", strings.Join(outOfStock, ", ")),
		})
	}

	if len(lowStock) > 0 {
		risks = append(risks, Risk{
			Level:   LevelWarning,
			Message: fmt.Sprintf("%d items are below reorder level", len(lowStock)),
			Impact:  GradeMedium,
			Items:   lowStock,
		})
		recs = append(recs, Recommendation{
			Action:     "Stock Replenishment",
			Priority:   GradeMedium,
			Suggestion: "Plan reorder for low-stock items within the next week",
		})
	}

	if len(active) > 0 {
		var total float64
		for _, it := range active {
			total += it.TotalValue
		}
		avg := total / float64(len(active))

		var highValue []string
		for _, it := range active {
			if it.TotalValue > avg*3 {
				highValue = append(highValue, it.Name)
			}
		}
		if len(highValue) > 0 {
			recs = append(recs, Recommendation{
				Action:     "Inventory Optimization",
				Priority:   GradeLow,
				Suggestion: fmt.Sprintf("Consider reducing stock levels for high-value items: %s", strings.Join(highValue, ", ")),
			})
		}
	}

	return InventoryAnalysis{
		Risks:           risks,
		Recommendations: recs,
		LowStockCount:   len(lowStock),
		OutOfStockCount: len(outOfStock),
	}
}

// HealthScore grades portfolio health 0..100: the unused share of the
// budget minus 15 points per open risk, clamped. An empty portfolio is
// neither healthy nor sick, so it scores a neutral 50.
func HealthScore(totalBudget, totalSpent float64, riskCount int) float64 {
	if totalBudget <= 0 {
		return 50
	}
	score := 100 - totalSpent/totalBudget*100
	if score < 0 {
		score = 0
	}
	score -= float64(riskCount) * 15
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func riskScore(r Risk) int {
	level := map[string]int{LevelCritical: 3, LevelWarning: 2, LevelLow: 1}[r.Level]
	impact := map[string]int{GradeHigh: 3, GradeMedium: 2, GradeLow: 1}[r.Impact]
	if impact == 0 {
		impact = 1
	}
	return level * impact
}

func priorityScore(priority string) int {
	return map[string]int{GradeHigh: 3, GradeMedium: 2, GradeLow: 1}[priority]
}
