package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"garagebook-api/internal/model"
	"garagebook-api/internal/storage"
)

// ExportSnapshot serializes the complete users, invoices and inventory
// collections into a single backup document.
func (s *Store) ExportSnapshot() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := model.Snapshot{
		Users:     s.users,
		Invoices:  s.invoices,
		Inventory: s.inventory,
	}
	// Empty collections must serialize as [] so the file stays importable.
	if snap.Users == nil {
		snap.Users = []model.User{}
	}
	if snap.Invoices == nil {
		snap.Invoices = []model.Invoice{}
	}
	if snap.Inventory == nil {
		snap.Inventory = []model.InventoryItem{}
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	return data, nil
}

// ImportSnapshot replaces all three collections with the contents of a
// backup document. This is a full overwrite, not a merge: anything not
// in the snapshot is lost, including the active session. All three
// collection keys must be present or the import is rejected as a
// whole.
func (s *Store) ImportSnapshot(ctx context.Context, data []byte) error {
	var raw struct {
		Users     *[]model.User          `json:"users"`
		Invoices  *[]model.Invoice       `json:"invoices"`
		Inventory *[]model.InventoryItem `json:"inventory"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if raw.Users == nil || raw.Invoices == nil || raw.Inventory == nil {
		return fmt.Errorf("%w: missing required collections", ErrMalformedSnapshot)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = *raw.Users
	s.invoices = *raw.Invoices
	s.inventory = *raw.Inventory
	s.session = nil
	s.lastSeq = s.scanMaxSeq()

	s.persist(ctx, storage.KeyUsers, s.users)
	s.persist(ctx, storage.KeyInvoices, s.invoices)
	s.persist(ctx, storage.KeyInventory, s.inventory)
	if err := s.storage.Delete(ctx, storage.KeySession); err != nil {
		log.Printf("[Store] clear session failed: %v", err)
	}

	log.Printf("[Store] Imported snapshot: %d users, %d invoices, %d inventory items",
		len(s.users), len(s.invoices), len(s.inventory))
	return nil
}
