package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"garagebook-api/internal/model"
	"garagebook-api/internal/storage"
	"garagebook-api/pkg/uid"
)

// Store is the domain store: it owns the users, invoices and inventory
// collections plus the active session, held in memory for the process
// lifetime. Collections are loaded once at startup and written back to
// the storage backend after every mutation. A failed write is reported
// and the in-memory state stays authoritative; it is not retried.
type Store struct {
	mu      sync.RWMutex
	storage storage.Store
	idGen   func() string
	now     func() time.Time

	numberPrefix string
	numberWidth  int

	users     []model.User
	invoices  []model.Invoice
	inventory []model.InventoryItem
	session   *model.User

	// Highest invoice sequence ever allocated by this process. Kept
	// separately from the collection scan so deleting the newest
	// invoice can never cause a number to be reused.
	lastSeq int
}

// Config holds the dependencies and settings for a Store.
type Config struct {
	Storage      storage.Store
	NumberPrefix string                // invoice number prefix, default "SJIV"
	NumberWidth  int                   // zero-pad width of the numeric suffix, default 6
	Seed         []model.InventoryItem // inventory written on first run, when no collection exists yet
	IDGen        func() string         // defaults to uid.New
	Now          func() time.Time      // defaults to time.Now
}

// DefaultInventory is the service list a fresh installation starts with.
var DefaultInventory = []model.InventoryItem{
	{ID: "1", Name: "Alignment", Quantity: model.Unlimited(), Price: 250},
	{ID: "2", Name: "Balancing", Quantity: model.Unlimited(), Price: 150},
	{ID: "3", Name: "Weight", Quantity: model.Unlimited(), Price: 300},
	{ID: "4", Name: "Tubeless Valve", Quantity: model.Unlimited(), Price: 50},
	{ID: "5", Name: "Tyre", Quantity: model.Unlimited(), Price: 100},
}

// New creates the store and loads every collection from storage.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Storage == nil {
		return nil, fmt.Errorf("storage backend is required")
	}
	s := &Store{
		storage:      cfg.Storage,
		idGen:        cfg.IDGen,
		now:          cfg.Now,
		numberPrefix: cfg.NumberPrefix,
		numberWidth:  cfg.NumberWidth,
	}
	if s.idGen == nil {
		s.idGen = uid.New
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.numberPrefix == "" {
		s.numberPrefix = "SJIV"
	}
	if s.numberWidth == 0 {
		s.numberWidth = 6
	}

	if err := s.load(ctx, cfg.Seed); err != nil {
		return nil, err
	}

	log.Printf("[Store] Loaded %d users, %d invoices, %d inventory items",
		len(s.users), len(s.invoices), len(s.inventory))
	return s, nil
}

// load reads all collections and the saved session. A missing inventory
// collection means first run: the seed set is written out.
func (s *Store) load(ctx context.Context, seed []model.InventoryItem) error {
	if _, err := s.readJSON(ctx, storage.KeyUsers, &s.users); err != nil {
		return err
	}
	if _, err := s.readJSON(ctx, storage.KeyInvoices, &s.invoices); err != nil {
		return err
	}

	found, err := s.readJSON(ctx, storage.KeyInventory, &s.inventory)
	if err != nil {
		return err
	}
	if !found && len(seed) > 0 {
		s.inventory = append([]model.InventoryItem(nil), seed...)
		s.persist(ctx, storage.KeyInventory, s.inventory)
		log.Printf("[Store] Seeded inventory with %d default items", len(s.inventory))
	}

	var session model.User
	if found, err := s.readJSON(ctx, storage.KeySession, &session); err != nil {
		return err
	} else if found {
		s.session = &session
		log.Printf("[Store] Restored session for %s", session.Username)
	}

	s.lastSeq = s.scanMaxSeq()
	return nil
}

// readJSON reads and decodes one collection. Missing keys are not an
// error; corrupt data at startup is.
func (s *Store) readJSON(ctx context.Context, key string, v interface{}) (bool, error) {
	data, err := s.storage.Read(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// persist writes one collection back to storage. Write failures are
// reported and swallowed: the in-memory mutation that triggered the
// write is already committed and is not rolled back.
func (s *Store) persist(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[Store] marshal %s failed: %v", key, err)
		return
	}
	if err := s.storage.Write(ctx, key, data); err != nil {
		log.Printf("[Store] persist %s failed: %v", key, err)
	}
}
