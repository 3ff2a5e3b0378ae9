// Package budget converts raw project and expense collections into
// derived budget metrics.
package budget

import (
	"sort"
	"time"

	"sitebudget/internal/model"
)

// SumExpenses returns the exact sum of amounts for expenses belonging
// to the given project. This is the single definition of "spent":
// every mutation path re-sums through here rather than accumulating
// deltas, so the cached Project.Spent can never drift.
func SumExpenses(projectID string, expenses []model.Expense) float64 {
	var total float64
	for _, e := range expenses {
		if e.ProjectID == projectID {
			total += e.Amount
		}
	}
	return total
}

// ProjectStats computes the derived metrics for one project against an
// expense collection. PercentUsed is left unclamped; risk thresholds
// need the raw value. Progress-bar call sites clamp via ClampPercent.
func ProjectStats(p model.Project, expenses []model.Expense) model.ProjectStats {
	var spent float64
	count := 0
	for _, e := range expenses {
		if e.ProjectID == p.ID {
			spent += e.Amount
			count++
		}
	}

	stats := model.ProjectStats{
		Budget:       p.Budget,
		Spent:        spent,
		Remaining:    p.Budget - spent,
		IsOverBudget: spent > p.Budget,
		ExpenseCount: count,
	}
	if p.Budget > 0 {
		stats.PercentUsed = spent / p.Budget * 100
	}
	return stats
}

// ClampPercent caps a percent-used value at 100 for display contexts.
func ClampPercent(pct float64) float64 {
	if pct > 100 {
		return 100
	}
	return pct
}

// GroupByCategory buckets expenses by their free-form category.
// Within a category the member list preserves insertion order; the
// category list itself is sorted by total descending for presentation.
func GroupByCategory(expenses []model.Expense) []model.CategoryGroup {
	byCat := make(map[string]*model.CategoryGroup)
	var order []string

	for _, e := range expenses {
		g, ok := byCat[e.Category]
		if !ok {
			g = &model.CategoryGroup{Category: e.Category}
			byCat[e.Category] = g
			order = append(order, e.Category)
		}
		g.Total += e.Amount
		g.Count++
		g.Items = append(g.Items, e)
	}

	groups := make([]model.CategoryGroup, 0, len(order))
	for _, cat := range order {
		groups = append(groups, *byCat[cat])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Total > groups[j].Total
	})
	return groups
}

// GroupByType splits expenses into exactly two buckets, capital and
// resource. An absent or unrecognized type counts as resource; that is
// the default-bucket policy, not an error.
func GroupByType(expenses []model.Expense) model.TypeBreakdown {
	var bd model.TypeBreakdown
	for _, e := range expenses {
		if e.Type == model.TypeCapital {
			bd.Capital.Total += e.Amount
			bd.Capital.Count++
			bd.Capital.Items = append(bd.Capital.Items, e)
		} else {
			bd.Resource.Total += e.Amount
			bd.Resource.Count++
			bd.Resource.Items = append(bd.Resource.Items, e)
		}
	}
	return bd
}

// PortfolioTotals aggregates budget and spend across every project,
// independent of individual project state.
func PortfolioTotals(projects []model.Project, expenses []model.Expense) model.PortfolioTotals {
	var t model.PortfolioTotals
	for _, p := range projects {
		t.Budget += p.Budget
	}
	for _, e := range expenses {
		t.Spent += e.Amount
	}
	t.Remaining = t.Budget - t.Spent
	if t.Budget > 0 {
		t.PercentUsed = t.Spent / t.Budget * 100
	}
	return t
}

// FilterByDateRange returns expenses whose date falls within [from, to]
// inclusive. Zero bounds are open on that side.
func FilterByDateRange(expenses []model.Expense, from, to time.Time) []model.Expense {
	if from.IsZero() && to.IsZero() {
		return expenses
	}

	var result []model.Expense
	for _, e := range expenses {
		if !from.IsZero() && e.Date.Before(from) {
			continue
		}
		if !to.IsZero() && e.Date.After(to) {
			continue
		}
		result = append(result, e)
	}
	return result
}

// SortByDateDesc returns a copy of expenses ordered most recent first.
// Ties keep their prior relative order.
func SortByDateDesc(expenses []model.Expense) []model.Expense {
	sorted := make([]model.Expense, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}

// DailySpend buckets expense amounts by calendar day over [since, until],
// filling gap days with zeros so charts show them. Most recent first.
func DailySpend(expenses []model.Expense, since, until time.Time) []DayTotal {
	dayMap := make(map[string]*DayTotal)

	for _, e := range expenses {
		if e.Date.IsZero() || e.Date.Before(since) || e.Date.After(until) {
			continue
		}
		key := e.Date.Format(model.DateLayout)
		dt, ok := dayMap[key]
		if !ok {
			t, _ := time.ParseInLocation(model.DateLayout, key, time.Local)
			dt = &DayTotal{Date: t}
			dayMap[key] = dt
		}
		dt.Amount += e.Amount
		dt.Count++
	}

	day := since.Truncate(24 * time.Hour)
	end := until.Truncate(24 * time.Hour)
	for !day.After(end) {
		key := day.Format(model.DateLayout)
		if _, ok := dayMap[key]; !ok {
			dayMap[key] = &DayTotal{Date: day}
		}
		day = day.AddDate(0, 0, 1)
	}

	days := make([]DayTotal, 0, len(dayMap))
	for _, dt := range dayMap {
		days = append(days, *dt)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})
	return days
}

// DayTotal holds one calendar day's spend.
type DayTotal struct {
	Date   time.Time
	Amount float64
	Count  int
}
