package store

import "sitebudget/internal/model"

// Memory is an in-process Persister for tests and ephemeral runs.
// It keeps everything in maps and forgets it all on exit.
type Memory struct {
	projects map[string]model.Project
	expenses map[string]model.Expense
	items    map[string]model.InventoryItem
}

// NewMemory returns an empty in-memory persister.
func NewMemory() *Memory {
	return &Memory{
		projects: make(map[string]model.Project),
		expenses: make(map[string]model.Expense),
		items:    make(map[string]model.InventoryItem),
	}
}

// Load returns the current contents. Order is unspecified; Store sorts
// on read anyway.
func (m *Memory) Load() (Data, error) {
	var data Data
	for _, p := range m.projects {
		data.Projects = append(data.Projects, p)
	}
	for _, e := range m.expenses {
		data.Expenses = append(data.Expenses, e)
	}
	for _, it := range m.items {
		data.Items = append(data.Items, it)
	}
	return data, nil
}

func (m *Memory) SaveProject(p model.Project) error {
	m.projects[p.ID] = p
	return nil
}

func (m *Memory) DeleteProject(id string) error {
	delete(m.projects, id)
	return nil
}

func (m *Memory) SaveExpense(e model.Expense) error {
	m.expenses[e.ID] = e
	return nil
}

func (m *Memory) DeleteExpense(id string) error {
	delete(m.expenses, id)
	return nil
}

func (m *Memory) DeleteProjectExpenses(projectID string) error {
	for id, e := range m.expenses {
		if e.ProjectID == projectID {
			delete(m.expenses, id)
		}
	}
	return nil
}

func (m *Memory) SaveItem(it model.InventoryItem) error {
	m.items[it.ID] = it
	return nil
}

func (m *Memory) DeleteItem(id string) error {
	delete(m.items, id)
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}
