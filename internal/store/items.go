package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/mkoren/stash/internal/model"
)

// AddItem appends a new item to a customer's active inventory under a fresh
// id. Adding for an unknown customer is a silent no-op, reported via the
// bool result.
func (s *Store) AddItem(email string, item model.Item) (model.Item, bool) {
	key := model.NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findCustomerLocked(key) == -1 {
		return model.Item{}, false
	}

	item.ID = uuid.NewString()
	if item.DateAdded.IsZero() {
		item.DateAdded = time.Now().UTC()
	}
	s.items[key] = append(s.items[key], item)
	s.saveLocked()
	return item, true
}

// Item looks up an active item by id.
func (s *Store) Item(email, itemID string) (model.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := model.NormalizeEmail(email)
	if idx := findItemLocked(s.items[key], itemID); idx != -1 {
		return s.items[key][idx], true
	}
	return model.Item{}, false
}

// ItemsFor returns a customer's active items.
func (s *Store) ItemsFor(email string) []model.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Item(nil), s.items[model.NormalizeEmail(email)]...)
}

// ArchivedFor returns a customer's archived item records.
func (s *Store) ArchivedFor(email string) []model.ArchivedItemRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.ArchivedItemRecord(nil), s.archived[model.NormalizeEmail(email)]...)
}

// UpdateItem replaces the active item with the same id. The id is kept and
// a zero DateAdded inherits the stored one. No-op if the item is not found.
func (s *Store) UpdateItem(email string, item model.Item) bool {
	key := model.NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := findItemLocked(s.items[key], item.ID)
	if idx == -1 {
		return false
	}

	if item.DateAdded.IsZero() {
		item.DateAdded = s.items[key][idx].DateAdded
	}
	s.items[key][idx] = item
	s.saveLocked()
	return true
}

// ArchiveItem moves an active item into the archived collection, wrapped
// with the reason, optional notes, and the current time. All item fields
// are preserved unchanged. No-op if the item is not found.
func (s *Store) ArchiveItem(email, itemID, reason, notes string) bool {
	key := model.NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := findItemLocked(s.items[key], itemID)
	if idx == -1 {
		return false
	}

	item := s.items[key][idx]
	s.items[key] = append(s.items[key][:idx], s.items[key][idx+1:]...)
	s.archived[key] = append(s.archived[key], model.ArchivedItemRecord{
		Item:       item,
		Reason:     reason,
		Notes:      notes,
		ArchivedAt: time.Now().UTC(),
	})
	s.saveLocked()
	return true
}

// RestoreItem is the exact inverse of ArchiveItem: the wrapped item moves
// back into active inventory and the archive metadata is dropped. No-op if
// the record is not found.
func (s *Store) RestoreItem(email, itemID string) bool {
	key := model.NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.archived[key]
	for i, rec := range records {
		if rec.Item.ID == itemID {
			s.archived[key] = append(records[:i], records[i+1:]...)
			s.items[key] = append(s.items[key], rec.Item)
			s.saveLocked()
			return true
		}
	}
	return false
}

// PurgeArchived permanently deletes an archived record. Active inventory is
// untouched. No-op if the record is not found.
func (s *Store) PurgeArchived(email, itemID string) bool {
	key := model.NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.archived[key]
	for i, rec := range records {
		if rec.Item.ID == itemID {
			s.archived[key] = append(records[:i], records[i+1:]...)
			s.saveLocked()
			return true
		}
	}
	return false
}

// findItemLocked returns the index of the item with the given id, or -1.
func findItemLocked(items []model.Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
