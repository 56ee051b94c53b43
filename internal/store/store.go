// Package store owns the authoritative in-memory collections: customers,
// active items, archived items, and orders, all keyed by the customer's
// normalized email. Every successful mutation is synchronously written
// through to the persistence collaborator; the optional remote directory is
// strictly best-effort and never blocks or rolls back a local mutation.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mkoren/stash/internal/model"
)

// Data is the serialized form of the full store state. The top-level keys
// are part of the snapshot format and must stay stable across versions.
type Data struct {
	Customers       []model.Customer                      `json:"customers"`
	ItemsByEmail    map[string][]model.Item               `json:"itemsByEmail"`
	ArchivedByEmail map[string][]model.ArchivedItemRecord `json:"archivedByEmail"`
	OrdersByEmail   map[string][]model.Order              `json:"ordersByEmail"`
}

// Persister loads and saves store snapshots. LoadSnapshot reports absence
// (a fresh database) via its bool result rather than an error.
type Persister interface {
	LoadSnapshot() (Data, bool, error)
	SaveSnapshot(Data) error
}

// Directory is a remote customer registry. Implementations return plain
// errors; the store swallows them and falls back to local state.
type Directory interface {
	FetchCustomers(ctx context.Context) ([]model.Customer, error)
	SubmitCustomer(ctx context.Context, c model.Customer) (model.Customer, error)
}

// directoryTimeout bounds fire-and-forget calls to the remote directory.
const directoryTimeout = 10 * time.Second

// Store is the inventory/billing domain engine.
type Store struct {
	mu        sync.RWMutex
	customers []model.Customer
	items     map[string][]model.Item
	archived  map[string][]model.ArchivedItemRecord
	orders    map[string][]model.Order

	persist   Persister
	directory Directory
}

// New creates an empty store writing through to persist. directory may be
// nil for local-only operation.
func New(persist Persister, directory Directory) *Store {
	return &Store{
		items:     make(map[string][]model.Item),
		archived:  make(map[string][]model.ArchivedItemRecord),
		orders:    make(map[string][]model.Order),
		persist:   persist,
		directory: directory,
	}
}

// Load restores state from the persistence collaborator and then, when a
// remote directory is configured, replaces the customer list with the
// remote one. Remote failure degrades silently to the loaded local state.
func (s *Store) Load(ctx context.Context) error {
	data, ok, err := s.persist.LoadSnapshot()
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}

	s.mu.Lock()
	if ok {
		s.adoptLocked(data)
	}
	s.mu.Unlock()

	if s.directory == nil {
		return nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, directoryTimeout)
	defer cancel()

	customers, err := s.directory.FetchCustomers(fetchCtx)
	if err != nil {
		slog.Warn("remote customer fetch failed, using local list", "error", err)
		return nil
	}
	s.ReplaceCustomers(customers)
	return nil
}

// adoptLocked installs snapshot data, normalizing keys and making sure every
// customer has initialized collections. Caller holds the write lock.
func (s *Store) adoptLocked(data Data) {
	s.customers = data.Customers
	s.items = make(map[string][]model.Item, len(data.ItemsByEmail))
	s.archived = make(map[string][]model.ArchivedItemRecord, len(data.ArchivedByEmail))
	s.orders = make(map[string][]model.Order, len(data.OrdersByEmail))

	for email, items := range data.ItemsByEmail {
		s.items[model.NormalizeEmail(email)] = items
	}
	for email, records := range data.ArchivedByEmail {
		s.archived[model.NormalizeEmail(email)] = records
	}
	for email, orders := range data.OrdersByEmail {
		s.orders[model.NormalizeEmail(email)] = orders
	}

	for i := range s.customers {
		s.customers[i].Email = model.NormalizeEmail(s.customers[i].Email)
		s.ensureCollectionsLocked(s.customers[i].Email)
	}
}

// ensureCollectionsLocked initializes empty collections for a customer key.
func (s *Store) ensureCollectionsLocked(email string) {
	if _, ok := s.items[email]; !ok {
		s.items[email] = []model.Item{}
	}
	if _, ok := s.archived[email]; !ok {
		s.archived[email] = []model.ArchivedItemRecord{}
	}
	if _, ok := s.orders[email]; !ok {
		s.orders[email] = []model.Order{}
	}
}

// snapshotLocked builds the serializable form of the current state. Caller
// holds at least the read lock.
func (s *Store) snapshotLocked() Data {
	data := Data{
		Customers:       make([]model.Customer, len(s.customers)),
		ItemsByEmail:    make(map[string][]model.Item, len(s.items)),
		ArchivedByEmail: make(map[string][]model.ArchivedItemRecord, len(s.archived)),
		OrdersByEmail:   make(map[string][]model.Order, len(s.orders)),
	}
	copy(data.Customers, s.customers)
	for email, items := range s.items {
		data.ItemsByEmail[email] = append([]model.Item(nil), items...)
	}
	for email, records := range s.archived {
		data.ArchivedByEmail[email] = append([]model.ArchivedItemRecord(nil), records...)
	}
	for email, orders := range s.orders {
		data.OrdersByEmail[email] = append([]model.Order(nil), orders...)
	}
	return data
}

// saveLocked writes the current state through the persistence collaborator.
// A failed save is logged but never rolls back the mutation that triggered
// it. Caller holds the write lock.
func (s *Store) saveLocked() {
	if err := s.persist.SaveSnapshot(s.snapshotLocked()); err != nil {
		slog.Error("saving snapshot failed", "error", err)
	}
}
