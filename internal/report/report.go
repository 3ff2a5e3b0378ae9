// Package report compiles the budget data set into a date-ranged
// report and serializes it for export.
package report

import (
	"time"

	"sitebudget/internal/budget"
	"sitebudget/internal/model"
)

// Generate compiles a report over [from, to] inclusive. Zero bounds
// leave that side open. Every project appears even when it has no
// expenses in the range; its stats then read as zero spend.
func Generate(projects []model.Project, expenses []model.Expense, from, to time.Time) model.Report {
	ranged := budget.FilterByDateRange(expenses, from, to)

	r := model.Report{
		Totals:       budget.PortfolioTotals(projects, ranged),
		ProjectCount: len(projects),
		ExpenseCount: len(ranged),
		ByCategory:   budget.GroupByCategory(ranged),
		ByType:       budget.GroupByType(ranged),
		From:         from,
		To:           to,
		GeneratedAt:  time.Now(),
	}

	r.Projects = make([]model.ProjectReport, 0, len(projects))
	for _, p := range projects {
		r.Projects = append(r.Projects, model.ProjectReport{
			Project: p,
			Stats:   budget.ProjectStats(p, ranged),
		})
	}
	return r
}
