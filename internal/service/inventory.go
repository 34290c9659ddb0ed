package service

import (
	"context"

	"garagebook-api/internal/model"
	"garagebook-api/internal/storage"
)

// AddInventoryItem assigns a fresh id and appends the item.
func (s *Store) AddInventoryItem(ctx context.Context, item model.InventoryItem) model.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.idGen()
	s.inventory = append(s.inventory, item)
	s.persist(ctx, storage.KeyInventory, s.inventory)
	return item
}

// UpdateInventoryItem replaces the stored item with the same id.
// Returns ErrNotFound for an unknown id.
func (s *Store) UpdateInventoryItem(ctx context.Context, item model.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.inventory {
		if s.inventory[i].ID != item.ID {
			continue
		}
		s.inventory[i] = item
		s.persist(ctx, storage.KeyInventory, s.inventory)
		return nil
	}
	return ErrNotFound
}

// DeleteInventoryItem removes the item with the given id, or does
// nothing if it does not exist.
func (s *Store) DeleteInventoryItem(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.inventory {
		if item.ID != id {
			continue
		}
		s.inventory = append(s.inventory[:i], s.inventory[i+1:]...)
		s.persist(ctx, storage.KeyInventory, s.inventory)
		return
	}
}

// ListInventory returns all inventory items in stored order.
func (s *Store) ListInventory() []model.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.InventoryItem(nil), s.inventory...)
}

// LowStockItems returns items whose numeric quantity is at or below
// their alert threshold. Unlimited items never appear.
func (s *Store) LowStockItems() []model.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.InventoryItem
	for i := range s.inventory {
		if s.inventory[i].LowStock() {
			out = append(out, s.inventory[i])
		}
	}
	return out
}
