// Package store holds the budget data set in memory and mirrors every
// mutation through a Persister. Reads are served from memory; the
// persister is only consulted at open time.
package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"sitebudget/internal/auth"
	"sitebudget/internal/budget"
	"sitebudget/internal/model"
)

// ErrNotFound is returned when an ID does not resolve to a record.
var ErrNotFound = errors.New("not found")

// ErrInsufficientStock is returned when a stock adjustment would take
// an item's quantity below zero. The item is left untouched.
var ErrInsufficientStock = errors.New("insufficient stock")

// Persister is the durable backing of a Store. Implementations must be
// safe for the single-writer access pattern Store gives them: Store
// serializes all calls under its write lock.
type Persister interface {
	Load() (Data, error)
	SaveProject(p model.Project) error
	DeleteProject(id string) error
	SaveExpense(e model.Expense) error
	DeleteExpense(id string) error
	DeleteProjectExpenses(projectID string) error
	SaveItem(it model.InventoryItem) error
	DeleteItem(id string) error
	Close() error
}

// Data is the full persisted data set, as loaded at open time.
type Data struct {
	Projects []model.Project
	Expenses []model.Expense
	Items    []model.InventoryItem
}

// Store is the in-memory budget data set. All methods are safe for
// concurrent use; readers share the lock, mutations take it exclusively.
type Store struct {
	mu       sync.RWMutex
	p        Persister
	user     auth.User
	projects []model.Project
	expenses []model.Expense
	items    []model.InventoryItem
}

// Open loads the persisted data set and returns a ready Store. The
// acting user is attached to records created through this Store.
func Open(p Persister, user auth.User) (*Store, error) {
	data, err := p.Load()
	if err != nil {
		return nil, fmt.Errorf("loading data: %w", err)
	}
	return &Store{
		p:        p,
		user:     user,
		projects: data.Projects,
		expenses: data.Expenses,
		items:    data.Items,
	}, nil
}

// Close closes the underlying persister.
func (s *Store) Close() error {
	return s.p.Close()
}

// User returns the acting identity this Store was opened with.
func (s *Store) User() auth.User {
	return s.user
}

// ---- projects ----

// AddProject validates and stores a new project. ID, audit fields and
// the acting user are filled in here.
func (s *Store) AddProject(p model.Project) (model.Project, error) {
	if strings.TrimSpace(p.Name) == "" {
		return model.Project{}, errors.New("project name is required")
	}
	if p.Budget < 0 {
		return model.Project{}, errors.New("project budget cannot be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	p.ID = uuid.NewString()
	p.Spent = 0
	if p.Status == "" {
		p.Status = model.ProjectPlanning
	}
	p.CreatedBy = s.user.ID
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.p.SaveProject(p); err != nil {
		return model.Project{}, fmt.Errorf("saving project: %w", err)
	}
	s.projects = append(s.projects, p)
	return p, nil
}

// UpdateProject applies changes to an existing project. Spent is owned
// by the expense mutation paths and is preserved, not taken from the
// caller's copy.
func (s *Store) UpdateProject(p model.Project) (model.Project, error) {
	if strings.TrimSpace(p.Name) == "" {
		return model.Project{}, errors.New("project name is required")
	}
	if p.Budget < 0 {
		return model.Project{}, errors.New("project budget cannot be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.projectIndex(p.ID)
	if i < 0 {
		return model.Project{}, fmt.Errorf("project %s: %w", p.ID, ErrNotFound)
	}

	prev := s.projects[i]
	p.Spent = prev.Spent
	p.CreatedBy = prev.CreatedBy
	p.CreatedAt = prev.CreatedAt
	p.UpdatedAt = time.Now()

	if err := s.p.SaveProject(p); err != nil {
		return model.Project{}, fmt.Errorf("saving project: %w", err)
	}
	s.projects[i] = p
	return p, nil
}

// DeleteProject removes a project and every expense attributed to it,
// so no expense can dangle without a parent.
func (s *Store) DeleteProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.projectIndex(id)
	if i < 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}

	if err := s.p.DeleteProject(id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if err := s.p.DeleteProjectExpenses(id); err != nil {
		return fmt.Errorf("deleting project expenses: %w", err)
	}

	s.projects = append(s.projects[:i], s.projects[i+1:]...)
	kept := s.expenses[:0]
	for _, e := range s.expenses {
		if e.ProjectID != id {
			kept = append(kept, e)
		}
	}
	s.expenses = kept
	return nil
}

// Project returns a single project by ID.
func (s *Store) Project(id string) (model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.projectIndex(id)
	if i < 0 {
		return model.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return s.projects[i], nil
}

// Projects returns all projects, newest first.
func (s *Store) Projects() []model.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Project, len(s.projects))
	copy(out, s.projects)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// projectIndex must be called with the lock held.
func (s *Store) projectIndex(id string) int {
	for i, p := range s.projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// ---- expenses ----

// AddExpense validates and stores a new expense, then re-derives the
// parent project's Spent from the full expense set.
func (s *Store) AddExpense(e model.Expense) (model.Expense, error) {
	if strings.TrimSpace(e.ItemName) == "" {
		return model.Expense{}, errors.New("expense item name is required")
	}
	if e.Amount < 0 {
		return model.Expense{}, errors.New("expense amount cannot be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.projectIndex(e.ProjectID) < 0 {
		return model.Expense{}, fmt.Errorf("project %s: %w", e.ProjectID, ErrNotFound)
	}

	now := time.Now()
	e.ID = uuid.NewString()
	if e.Status == "" {
		e.Status = model.ExpensePending
	}
	if e.Date.IsZero() {
		e.Date = now
	}
	e.CreatedBy = s.user.ID
	e.CreatedAt = now
	e.UpdatedAt = now

	if err := s.p.SaveExpense(e); err != nil {
		return model.Expense{}, fmt.Errorf("saving expense: %w", err)
	}
	s.expenses = append(s.expenses, e)

	if err := s.resyncSpent(e.ProjectID); err != nil {
		return model.Expense{}, err
	}
	return e, nil
}

// UpdateExpense applies changes to an existing expense. If the expense
// moved between projects both parents get their Spent re-derived.
func (s *Store) UpdateExpense(e model.Expense) (model.Expense, error) {
	if strings.TrimSpace(e.ItemName) == "" {
		return model.Expense{}, errors.New("expense item name is required")
	}
	if e.Amount < 0 {
		return model.Expense{}, errors.New("expense amount cannot be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.expenseIndex(e.ID)
	if i < 0 {
		return model.Expense{}, fmt.Errorf("expense %s: %w", e.ID, ErrNotFound)
	}
	if s.projectIndex(e.ProjectID) < 0 {
		return model.Expense{}, fmt.Errorf("project %s: %w", e.ProjectID, ErrNotFound)
	}

	prev := s.expenses[i]
	e.CreatedBy = prev.CreatedBy
	e.CreatedAt = prev.CreatedAt
	e.UpdatedAt = time.Now()

	if err := s.p.SaveExpense(e); err != nil {
		return model.Expense{}, fmt.Errorf("saving expense: %w", err)
	}
	s.expenses[i] = e

	if err := s.resyncSpent(e.ProjectID); err != nil {
		return model.Expense{}, err
	}
	if prev.ProjectID != e.ProjectID {
		if err := s.resyncSpent(prev.ProjectID); err != nil {
			return model.Expense{}, err
		}
	}
	return e, nil
}

// DeleteExpense removes an expense and re-derives the parent's Spent.
func (s *Store) DeleteExpense(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.expenseIndex(id)
	if i < 0 {
		return fmt.Errorf("expense %s: %w", id, ErrNotFound)
	}
	projectID := s.expenses[i].ProjectID

	if err := s.p.DeleteExpense(id); err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}
	s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
	return s.resyncSpent(projectID)
}

// Expenses returns all expenses, most recent date first.
func (s *Store) Expenses() []model.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return budget.SortByDateDesc(s.expenses)
}

// ProjectExpenses returns the expenses of one project, most recent first.
func (s *Store) ProjectExpenses(projectID string) []model.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Expense
	for _, e := range s.expenses {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return budget.SortByDateDesc(out)
}

// resyncSpent recomputes a project's Spent as the exact sum of its
// expenses and persists the result. Must be called with the lock held.
// A vanished parent (cascade path) is not an error.
func (s *Store) resyncSpent(projectID string) error {
	i := s.projectIndex(projectID)
	if i < 0 {
		return nil
	}
	s.projects[i].Spent = budget.SumExpenses(projectID, s.expenses)
	s.projects[i].UpdatedAt = time.Now()
	if err := s.p.SaveProject(s.projects[i]); err != nil {
		return fmt.Errorf("saving project: %w", err)
	}
	return nil
}

// expenseIndex must be called with the lock held.
func (s *Store) expenseIndex(id string) int {
	for i, e := range s.expenses {
		if e.ID == id {
			return i
		}
	}
	return -1
}
