package model

import (
	"encoding/json"
	"time"
)

// ArchivedItemRecord wraps an item that was removed from active inventory,
// together with the reason it was archived.
type ArchivedItemRecord struct {
	Item       Item      `json:"item"`
	Reason     string    `json:"reason"`
	Notes      string    `json:"notes,omitempty"`
	ArchivedAt time.Time `json:"archived_at"`
}

// Archive reasons. Reason is free text; these are the values the UI offers.
const (
	ArchiveReasonShipped = "Shipped"
	ArchiveReasonRemoved = "Removed"
	ArchiveReasonDamaged = "Damaged"
	ArchiveReasonOther   = "Other"

	// ArchiveReasonLegacy is assigned to records upgraded from the old
	// snapshot format, which stored bare items without archive metadata.
	ArchiveReasonLegacy = "Archived"
)

// UnmarshalJSON accepts both the current wrapped shape and the legacy shape
// (a bare item). Legacy records get ArchiveReasonLegacy and an archive
// timestamp of load time.
func (r *ArchivedItemRecord) UnmarshalJSON(data []byte) error {
	var probe struct {
		Item *Item `json:"item"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	if probe.Item != nil {
		type record ArchivedItemRecord
		var rec record
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}
		*r = ArchivedItemRecord(rec)
		return nil
	}

	var item Item
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}
	*r = ArchivedItemRecord{
		Item:       item,
		Reason:     ArchiveReasonLegacy,
		ArchivedAt: time.Now().UTC(),
	}
	return nil
}
