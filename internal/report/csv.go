package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"sitebudget/internal/model"
)

// WriteCSV serializes a report as three stacked sections (projects,
// categories, expenses), each with its own header row and separated by
// a blank line. Spreadsheet tools handle this layout fine and it keeps
// the export to one file.
func WriteCSV(w io.Writer, r model.Report) error {
	cw := csv.NewWriter(w)

	if err := writeProjectSection(cw, r); err != nil {
		return fmt.Errorf("writing project section: %w", err)
	}
	if err := writeCategorySection(cw, r); err != nil {
		return fmt.Errorf("writing category section: %w", err)
	}
	if err := writeExpenseSection(cw, r); err != nil {
		return fmt.Errorf("writing expense section: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

func writeProjectSection(cw *csv.Writer, r model.Report) error {
	header := []string{"Project", "Status", "Budget", "Spent", "Remaining", "Percent Used", "Over Budget", "Expenses"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, pr := range r.Projects {
		row := []string{
			pr.Project.Name,
			pr.Project.Status,
			money(pr.Stats.Budget),
			money(pr.Stats.Spent),
			money(pr.Stats.Remaining),
			fmt.Sprintf("%.1f", pr.Stats.PercentUsed),
			strconv.FormatBool(pr.Stats.IsOverBudget),
			strconv.Itoa(pr.Stats.ExpenseCount),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	total := []string{
		"TOTAL", "",
		money(r.Totals.Budget),
		money(r.Totals.Spent),
		money(r.Totals.Remaining),
		fmt.Sprintf("%.1f", r.Totals.PercentUsed),
		"", strconv.Itoa(r.ExpenseCount),
	}
	if err := cw.Write(total); err != nil {
		return err
	}
	return cw.Write(nil)
}

func writeCategorySection(cw *csv.Writer, r model.Report) error {
	if err := cw.Write([]string{"Category", "Total", "Count"}); err != nil {
		return err
	}
	for _, g := range r.ByCategory {
		if err := cw.Write([]string{g.Category, money(g.Total), strconv.Itoa(g.Count)}); err != nil {
			return err
		}
	}
	if err := cw.Write([]string{"Capital", money(r.ByType.Capital.Total), strconv.Itoa(r.ByType.Capital.Count)}); err != nil {
		return err
	}
	if err := cw.Write([]string{"Resource", money(r.ByType.Resource.Total), strconv.Itoa(r.ByType.Resource.Count)}); err != nil {
		return err
	}
	return cw.Write(nil)
}

func writeExpenseSection(cw *csv.Writer, r model.Report) error {
	header := []string{"Date", "Item", "Category", "Type", "Amount", "Vendor", "Status"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, g := range r.ByCategory {
		for _, e := range g.Items {
			row := []string{
				e.Date.Format(model.DateLayout),
				e.ItemName,
				e.Category,
				e.Type,
				money(e.Amount),
				e.Vendor,
				e.Status,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
