package db

import (
	"context"
	"database/sql"
	"fmt"
)

// SetItemImage stores or replaces an item's photo. Photos are keyed by
// item id, not customer email, so they survive customer rekeys and
// archive/restore cycles.
func SetItemImage(ctx context.Context, db *sql.DB, itemID string, image []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO item_images (item_id, image, image_mime, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (item_id) DO UPDATE SET
		     image = excluded.image, image_mime = excluded.image_mime,
		     updated_at = CURRENT_TIMESTAMP`,
		itemID, image, mime,
	)
	if err != nil {
		return fmt.Errorf("setting item image: %w", err)
	}
	return nil
}

// GetItemImage returns an item's photo and MIME type, nil when absent.
func GetItemImage(ctx context.Context, db *sql.DB, itemID string) ([]byte, string, error) {
	var image []byte
	var mime string
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM item_images WHERE item_id = ?`, itemID,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item image: %w", err)
	}
	return image, mime, nil
}

// DeleteItemImage removes an item's photo, if any.
func DeleteItemImage(ctx context.Context, db *sql.DB, itemID string) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM item_images WHERE item_id = ?`, itemID,
	)
	if err != nil {
		return fmt.Errorf("deleting item image: %w", err)
	}
	return nil
}
