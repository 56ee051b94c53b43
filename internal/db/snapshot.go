package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mkoren/stash/internal/store"
)

// snapshotKey versions the snapshot format. Legacy archived-item shapes
// inside the blob are upgraded transparently by the model's JSON decoding.
const snapshotKey = "store.v1"

// SnapshotStore persists the full store state as a JSON blob, one row per
// format version. It implements store.Persister.
type SnapshotStore struct {
	DB *sql.DB
}

// LoadSnapshot reads the current snapshot. A fresh database reports
// absence via the bool, not an error.
func (s *SnapshotStore) LoadSnapshot() (store.Data, bool, error) {
	var raw string
	err := s.DB.QueryRow(
		`SELECT data FROM snapshots WHERE key = ?`, snapshotKey,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return store.Data{}, false, nil
	}
	if err != nil {
		return store.Data{}, false, fmt.Errorf("reading snapshot: %w", err)
	}

	var data store.Data
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return store.Data{}, false, fmt.Errorf("decoding snapshot: %w", err)
	}
	return data, true, nil
}

// SaveSnapshot replaces the current snapshot.
func (s *SnapshotStore) SaveSnapshot(data store.Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	_, err = s.DB.Exec(
		`INSERT INTO snapshots (key, data, saved_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (key) DO UPDATE SET data = excluded.data, saved_at = CURRENT_TIMESTAMP`,
		snapshotKey, string(raw),
	)
	if err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
