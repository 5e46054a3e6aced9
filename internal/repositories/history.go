package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/moodx/internal/models"
	"github.com/desertthunder/moodx/internal/shared"
)

const historyColumns = `id, sequence, user_id, item_id, watched_at, created_at, updated_at, deleted_at`

// HistoryRepository implements models.Repository[*models.HistoryEntry] for viewing history.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new [HistoryRepository] with the given database connection
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create inserts a new viewing event with generated ID and sequence
func (r *HistoryRepository) Create(entry *models.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "history")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	query := `
		INSERT INTO history (id, sequence, user_id, item_id, watched_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, entry.UserID(), entry.ItemID(), entry.WatchedAt(), entry.CreatedAt(), entry.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	entry.SetID(id)
	entry.SetSequence(sequence)
	return nil
}

// Get retrieves a viewing event by ID, excluding soft-deleted events
func (r *HistoryRepository) Get(id string) (*models.HistoryEntry, error) {
	query := `SELECT ` + historyColumns + ` FROM history WHERE id = ? AND deleted_at IS NULL`

	entry, err := scanHistoryEntry(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("history entry not found: %s", id)
	}
	return entry, err
}

// Update touches an existing event. History entries are otherwise immutable.
func (r *HistoryRepository) Update(entry *models.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	result, err := r.db.Exec(`UPDATE history SET updated_at = ? WHERE id = ? AND deleted_at IS NULL`, now, entry.ID())
	if err != nil {
		return fmt.Errorf("failed to update history entry: %w", err)
	}
	if err := expectAffected(result, "history entry", entry.ID()); err != nil {
		return err
	}

	entry.SetUpdatedAt(now)
	return nil
}

// Delete soft-deletes a viewing event by ID
func (r *HistoryRepository) Delete(id string) error {
	result, err := r.db.Exec(`UPDATE history SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	return expectAffected(result, "history entry", id)
}

// List retrieves viewing events in chronological order, excluding soft-deleted events.
//
// Supported criteria: "user_id" (string), "since" ([time.Time]), "limit" (int, most recent events).
func (r *HistoryRepository) List(criteria map[string]any) ([]*models.HistoryEntry, error) {
	query := `SELECT ` + historyColumns + ` FROM history WHERE deleted_at IS NULL`
	args := []any{}

	if userID, ok := criteria["user_id"].(string); ok && userID != "" {
		query += " AND user_id = ?"
		args = append(args, userID)
	}

	if since, ok := criteria["since"].(time.Time); ok && !since.IsZero() {
		query += " AND watched_at >= ?"
		args = append(args, since)
	}

	const chronological = " ORDER BY watched_at ASC, sequence ASC"
	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query = `SELECT * FROM (` + query + ` ORDER BY watched_at DESC, sequence DESC LIMIT ?)` + chronological
		args = append(args, limit)
	} else {
		query += chronological
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []*models.HistoryEntry
	for rows.Next() {
		entry, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

// Items resolves a user's viewing history to catalog items in chronological order.
//
// Events whose item is no longer in the catalog are skipped. A single item watched twice appears twice,
// so repeat viewing weighs more in mood frequency.
func (r *HistoryRepository) Items(userID string) ([]models.ContentItem, error) {
	query := `
		SELECT c.item_id, c.kind, c.title, c.description, c.genres, c.rating, c.release_date
		FROM history h
		JOIN content_items c ON c.id = (
			SELECT ci.id FROM content_items ci
			WHERE ci.item_id = h.item_id AND ci.deleted_at IS NULL
			ORDER BY ci.sequence ASC LIMIT 1
		)
		WHERE h.user_id = ? AND h.deleted_at IS NULL
		ORDER BY h.watched_at ASC, h.sequence ASC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history items: %w", err)
	}
	defer rows.Close()

	var items []models.ContentItem
	for rows.Next() {
		var (
			item        models.ContentItem
			kind        string
			genresJSON  string
			releaseDate sql.NullTime
		)
		if err := rows.Scan(&item.ID, &kind, &item.Title, &item.Description, &genresJSON, &item.Rating, &releaseDate); err != nil {
			return nil, fmt.Errorf("failed to scan history item: %w", err)
		}
		if err := json.Unmarshal([]byte(genresJSON), &item.Genres); err != nil {
			return nil, fmt.Errorf("failed to decode genres for %s: %w", item.ID, err)
		}
		item.Kind = models.Kind(kind)
		if releaseDate.Valid {
			item.ReleaseDate = releaseDate.Time
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

func scanHistoryEntry(row rowScanner) (*models.HistoryEntry, error) {
	var (
		id        string
		sequence  int
		userID    string
		itemID    string
		watchedAt time.Time
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &userID, &itemID, &watchedAt, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan history entry: %w", err)
	}

	entry := models.NewHistoryEntry(sequence, userID, itemID, watchedAt)
	entry.SetID(id)
	entry.SetCreatedAt(createdAt)
	entry.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		entry.SetDeletedAt(&deletedAt.Time)
	}

	return entry, nil
}
