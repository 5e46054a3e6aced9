// package repositories provides persistence layer implementations for all model types.
//
// Each repository implements models.Repository[T] for a specific entity type,
// handling CRUD operations, soft deletes, and sequence generation.
package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// sequencedTables lists the tables with a companion {table}_sequence counter.
var sequencedTables = map[string]bool{
	"content_items": true,
	"history":       true,
}

// rowScanner is satisfied by both [sql.Row] and [sql.Rows].
type rowScanner interface {
	Scan(dest ...any) error
}

// NextSequence atomically increments and returns the next sequence number for the given table.
//
// Sequence numbers record insertion order (catalog scan order, viewing order) independent of UUIDs and timestamps.
func NextSequence(db *sql.DB, table string) (int, error) {
	if !sequencedTables[table] {
		return 0, fmt.Errorf("table %q has no sequence", table)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var sequence int
	err = tx.QueryRow(fmt.Sprintf("UPDATE %s_sequence SET value = value + 1 WHERE id = 1 RETURNING value", table)).Scan(&sequence)
	if err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sequence transaction: %w", err)
	}

	return sequence, nil
}

// nullTime maps the zero time to NULL.
func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
