package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sitebudget/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// SQLite is the durable Persister, one file per data set.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at the given path.
func OpenSQLite(dbPath string) (*SQLite, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Load reads the full data set.
func (s *SQLite) Load() (Data, error) {
	var data Data
	var err error

	if data.Projects, err = s.loadProjects(); err != nil {
		return Data{}, fmt.Errorf("loading projects: %w", err)
	}
	if data.Expenses, err = s.loadExpenses(); err != nil {
		return Data{}, fmt.Errorf("loading expenses: %w", err)
	}
	if data.Items, err = s.loadItems(); err != nil {
		return Data{}, fmt.Errorf("loading inventory: %w", err)
	}
	return data, nil
}

func (s *SQLite) loadProjects() ([]model.Project, error) {
	rows, err := s.db.Query(`SELECT
		id, name, description, type, budget, spent, status, location,
		client_name, start_date, end_date, created_by, created_at, updated_at
		FROM projects`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		var desc, typ, loc, client, startStr, endStr, createdBy sql.NullString
		var createdStr, updatedStr string

		err := rows.Scan(
			&p.ID, &p.Name, &desc, &typ, &p.Budget, &p.Spent, &p.Status, &loc,
			&client, &startStr, &endStr, &createdBy, &createdStr, &updatedStr,
		)
		if err != nil {
			return nil, err
		}

		p.Description = desc.String
		p.Type = typ.String
		p.Location = loc.String
		p.ClientName = client.String
		p.CreatedBy = createdBy.String
		p.StartDate = parseDate(startStr.String)
		p.EndDate = parseDate(endStr.String)
		p.CreatedAt = parseTime(createdStr)
		p.UpdatedAt = parseTime(updatedStr)
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *SQLite) loadExpenses() ([]model.Expense, error) {
	rows, err := s.db.Query(`SELECT
		id, project_id, item_name, category, type, amount, quantity, unit,
		date, status, vendor, receipt_number, notes, created_by, created_at, updated_at
		FROM expenses`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.Expense
	for rows.Next() {
		var e model.Expense
		var cat, typ, unit, dateStr, vendor, receipt, notes, createdBy sql.NullString
		var qty sql.NullFloat64
		var createdStr, updatedStr string

		err := rows.Scan(
			&e.ID, &e.ProjectID, &e.ItemName, &cat, &typ, &e.Amount, &qty, &unit,
			&dateStr, &e.Status, &vendor, &receipt, &notes, &createdBy, &createdStr, &updatedStr,
		)
		if err != nil {
			return nil, err
		}

		e.Category = cat.String
		e.Type = typ.String
		e.Quantity = qty.Float64
		e.Unit = unit.String
		e.Date = parseDate(dateStr.String)
		e.Vendor = vendor.String
		e.ReceiptNumber = receipt.String
		e.Notes = notes.String
		e.CreatedBy = createdBy.String
		e.CreatedAt = parseTime(createdStr)
		e.UpdatedAt = parseTime(updatedStr)
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (s *SQLite) loadItems() ([]model.InventoryItem, error) {
	rows, err := s.db.Query(`SELECT
		id, name, sku, description, category, quantity, unit, unit_price, reorder_level,
		total_value, project_id, location, supplier, status,
		adj_amount, adj_reason, adj_date, created_at, updated_at
		FROM inventory_items`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []model.InventoryItem
	for rows.Next() {
		var it model.InventoryItem
		var sku, desc, cat, unit, projectID, loc, supplier, adjReason, adjDate sql.NullString
		var adjAmount sql.NullFloat64
		var createdStr, updatedStr string

		err := rows.Scan(
			&it.ID, &it.Name, &sku, &desc, &cat, &it.Quantity, &unit, &it.UnitPrice, &it.ReorderLevel,
			&it.TotalValue, &projectID, &loc, &supplier, &it.Status,
			&adjAmount, &adjReason, &adjDate, &createdStr, &updatedStr,
		)
		if err != nil {
			return nil, err
		}

		it.SKU = sku.String
		it.Description = desc.String
		it.Category = cat.String
		it.Unit = unit.String
		it.ProjectID = projectID.String
		it.Location = loc.String
		it.Supplier = supplier.String
		if adjAmount.Valid {
			it.LastAdjustment = &model.StockAdjustment{
				Amount: adjAmount.Float64,
				Reason: adjReason.String,
				Date:   parseTime(adjDate.String),
			}
		}
		it.CreatedAt = parseTime(createdStr)
		it.UpdatedAt = parseTime(updatedStr)
		items = append(items, it)
	}
	return items, rows.Err()
}

// SaveProject inserts or replaces one project row.
func (s *SQLite) SaveProject(p model.Project) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO projects
		(id, name, description, type, budget, spent, status, location,
		 client_name, start_date, end_date, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Type, p.Budget, p.Spent, p.Status, p.Location,
		p.ClientName, formatDate(p.StartDate), formatDate(p.EndDate), p.CreatedBy,
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	return err
}

// DeleteProject removes one project row. Its expenses are removed
// separately via DeleteProjectExpenses.
func (s *SQLite) DeleteProject(id string) error {
	_, err := s.db.Exec("DELETE FROM projects WHERE id = ?", id)
	return err
}

// SaveExpense inserts or replaces one expense row.
func (s *SQLite) SaveExpense(e model.Expense) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO expenses
		(id, project_id, item_name, category, type, amount, quantity, unit,
		 date, status, vendor, receipt_number, notes, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ProjectID, e.ItemName, e.Category, e.Type, e.Amount, e.Quantity, e.Unit,
		formatDate(e.Date), e.Status, e.Vendor, e.ReceiptNumber, e.Notes, e.CreatedBy,
		formatTime(e.CreatedAt), formatTime(e.UpdatedAt),
	)
	return err
}

// DeleteExpense removes one expense row.
func (s *SQLite) DeleteExpense(id string) error {
	_, err := s.db.Exec("DELETE FROM expenses WHERE id = ?", id)
	return err
}

// DeleteProjectExpenses removes every expense of a project.
func (s *SQLite) DeleteProjectExpenses(projectID string) error {
	_, err := s.db.Exec("DELETE FROM expenses WHERE project_id = ?", projectID)
	return err
}

// SaveItem inserts or replaces one inventory row.
func (s *SQLite) SaveItem(it model.InventoryItem) error {
	var adjAmount sql.NullFloat64
	var adjReason, adjDate sql.NullString
	if it.LastAdjustment != nil {
		adjAmount = sql.NullFloat64{Float64: it.LastAdjustment.Amount, Valid: true}
		adjReason = sql.NullString{String: it.LastAdjustment.Reason, Valid: true}
		adjDate = sql.NullString{String: formatTime(it.LastAdjustment.Date), Valid: true}
	}

	_, err := s.db.Exec(`INSERT OR REPLACE INTO inventory_items
		(id, name, sku, description, category, quantity, unit, unit_price, reorder_level,
		 total_value, project_id, location, supplier, status,
		 adj_amount, adj_reason, adj_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.Name, it.SKU, it.Description, it.Category, it.Quantity, it.Unit, it.UnitPrice,
		it.ReorderLevel, it.TotalValue, it.ProjectID, it.Location, it.Supplier, it.Status,
		adjAmount, adjReason, adjDate, formatTime(it.CreatedAt), formatTime(it.UpdatedAt),
	)
	return err
}

// DeleteItem removes one inventory row.
func (s *SQLite) DeleteItem(id string) error {
	_, err := s.db.Exec("DELETE FROM inventory_items WHERE id = ?", id)
	return err
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(model.DateLayout)
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.ParseInLocation(model.DateLayout, s, time.Local)
	return t
}
