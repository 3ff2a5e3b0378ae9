package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"sitebudget/internal/model"
)

// AddItem validates and stores a new inventory item. TotalValue is
// derived here; any caller-supplied value is ignored.
func (s *Store) AddItem(it model.InventoryItem) (model.InventoryItem, error) {
	if strings.TrimSpace(it.Name) == "" {
		return model.InventoryItem{}, errors.New("item name is required")
	}
	if it.Quantity < 0 {
		return model.InventoryItem{}, errors.New("item quantity cannot be negative")
	}
	if it.UnitPrice < 0 {
		return model.InventoryItem{}, errors.New("item unit price cannot be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	it.ID = uuid.NewString()
	if it.Status == "" {
		it.Status = model.ItemActive
	}
	it.TotalValue = it.Quantity * it.UnitPrice
	it.LastAdjustment = nil
	it.CreatedAt = now
	it.UpdatedAt = now

	if err := s.p.SaveItem(it); err != nil {
		return model.InventoryItem{}, fmt.Errorf("saving item: %w", err)
	}
	s.items = append(s.items, it)
	return it, nil
}

// UpdateItem applies changes to an existing item and re-derives TotalValue.
func (s *Store) UpdateItem(it model.InventoryItem) (model.InventoryItem, error) {
	if strings.TrimSpace(it.Name) == "" {
		return model.InventoryItem{}, errors.New("item name is required")
	}
	if it.Quantity < 0 {
		return model.InventoryItem{}, errors.New("item quantity cannot be negative")
	}
	if it.UnitPrice < 0 {
		return model.InventoryItem{}, errors.New("item unit price cannot be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.itemIndex(it.ID)
	if i < 0 {
		return model.InventoryItem{}, fmt.Errorf("item %s: %w", it.ID, ErrNotFound)
	}

	prev := s.items[i]
	it.TotalValue = it.Quantity * it.UnitPrice
	it.LastAdjustment = prev.LastAdjustment
	it.CreatedAt = prev.CreatedAt
	it.UpdatedAt = time.Now()

	if err := s.p.SaveItem(it); err != nil {
		return model.InventoryItem{}, fmt.Errorf("saving item: %w", err)
	}
	s.items[i] = it
	return it, nil
}

// DeleteItem removes an inventory item.
func (s *Store) DeleteItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.itemIndex(id)
	if i < 0 {
		return fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	if err := s.p.DeleteItem(id); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

// AdjustStock applies a signed quantity change to an item. A change
// that would make the quantity negative is rejected whole; nothing is
// recorded. On success the adjustment is remembered on the item and
// TotalValue is re-derived.
func (s *Store) AdjustStock(id string, amount float64, reason string) (model.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.itemIndex(id)
	if i < 0 {
		return model.InventoryItem{}, fmt.Errorf("item %s: %w", id, ErrNotFound)
	}

	it := s.items[i]
	next := it.Quantity + amount
	if next < 0 {
		return model.InventoryItem{}, fmt.Errorf(
			"adjusting %q by %g (have %g): %w", it.Name, amount, it.Quantity, ErrInsufficientStock)
	}

	it.Quantity = next
	it.TotalValue = it.Quantity * it.UnitPrice
	it.LastAdjustment = &model.StockAdjustment{
		Amount: amount,
		Reason: reason,
		Date:   time.Now(),
	}
	it.UpdatedAt = time.Now()

	if err := s.p.SaveItem(it); err != nil {
		return model.InventoryItem{}, fmt.Errorf("saving item: %w", err)
	}
	s.items[i] = it
	return it, nil
}

// Item returns a single inventory item by ID.
func (s *Store) Item(id string) (model.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.itemIndex(id)
	if i < 0 {
		return model.InventoryItem{}, fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	return s.items[i], nil
}

// Items returns all inventory items in insertion order.
func (s *Store) Items() []model.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.InventoryItem, len(s.items))
	copy(out, s.items)
	return out
}

// ItemsByProject returns the items assigned to a project.
func (s *Store) ItemsByProject(projectID string) []model.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.InventoryItem
	for _, it := range s.items {
		if it.ProjectID == projectID {
			out = append(out, it)
		}
	}
	return out
}

// SearchItems matches the query case-insensitively against name, SKU,
// category and supplier.
func (s *Store) SearchItems(query string) []model.InventoryItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.Items()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.InventoryItem
	for _, it := range s.items {
		if strings.Contains(strings.ToLower(it.Name), q) ||
			strings.Contains(strings.ToLower(it.SKU), q) ||
			strings.Contains(strings.ToLower(it.Category), q) ||
			strings.Contains(strings.ToLower(it.Supplier), q) {
			out = append(out, it)
		}
	}
	return out
}

// LowStockItems returns active items at or below their reorder level.
// Out-of-stock items qualify too; low stock is a superset.
func (s *Store) LowStockItems() []model.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.InventoryItem
	for _, it := range s.items {
		if it.Status == model.ItemActive && it.Quantity <= it.ReorderLevel {
			out = append(out, it)
		}
	}
	return out
}

// InventoryStats summarizes active items. An out-of-stock item counts
// in both OutOfStock and LowStockCount; the two are overlapping views,
// not a partition.
func (s *Store) InventoryStats() model.InventoryStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := model.InventoryStats{ByCategory: make(map[string]*model.InventoryCategoryStats)}
	for _, it := range s.items {
		if it.Status != model.ItemActive {
			continue
		}
		stats.TotalItems++
		stats.TotalValue += it.TotalValue
		if it.Quantity == 0 {
			stats.OutOfStock++
		}
		if it.Quantity <= it.ReorderLevel {
			stats.LowStockCount++
		}

		cs, ok := stats.ByCategory[it.Category]
		if !ok {
			cs = &model.InventoryCategoryStats{}
			stats.ByCategory[it.Category] = cs
		}
		cs.Count++
		cs.Value += it.TotalValue
		cs.Quantity += it.Quantity
	}
	if stats.TotalItems > 0 {
		stats.AverageValue = stats.TotalValue / float64(stats.TotalItems)
	}
	return stats
}

// itemIndex must be called with the lock held.
func (s *Store) itemIndex(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
