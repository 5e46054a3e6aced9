package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/moodx/internal/models"
	"github.com/desertthunder/moodx/internal/shared"
)

const catalogColumns = `id, sequence, source, item_id, kind, title, description, genres, rating, release_date, created_at, updated_at, deleted_at`

// CatalogRepository implements models.Repository[*models.CatalogEntry] for the local catalog cache.
//
// Entries are listed in sequence order, which is the order they were imported.
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new CatalogRepository with the given database connection
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Create inserts a new entry into the database with generated ID and sequence
func (r *CatalogRepository) Create(entry *models.CatalogEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "content_items")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	genres, err := json.Marshal(nonNil(entry.Item().Genres))
	if err != nil {
		return fmt.Errorf("failed to encode genres: %w", err)
	}

	id := shared.GenerateID()
	item := entry.Item()

	query := `
		INSERT INTO content_items (id, sequence, source, item_id, kind, title, description, genres, rating, release_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		entry.Source(),
		item.ID,
		string(item.Kind),
		item.Title,
		item.Description,
		string(genres),
		item.Rating,
		nullTime(item.ReleaseDate),
		entry.CreatedAt(),
		entry.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert catalog item: %w", err)
	}

	entry.SetID(id)
	entry.SetSequence(sequence)
	return nil
}

// Get retrieves an entry by ID, excluding soft-deleted entries
func (r *CatalogRepository) Get(id string) (*models.CatalogEntry, error) {
	query := `SELECT ` + catalogColumns + ` FROM content_items WHERE id = ? AND deleted_at IS NULL`
	return r.scanOne(r.db.QueryRow(query, id))
}

// GetBySourceItemID retrieves the entry for an item from a specific source
func (r *CatalogRepository) GetBySourceItemID(source, itemID string) (*models.CatalogEntry, error) {
	query := `SELECT ` + catalogColumns + ` FROM content_items WHERE source = ? AND item_id = ? AND deleted_at IS NULL`
	return r.scanOne(r.db.QueryRow(query, source, itemID))
}

// GetByItemID retrieves the earliest imported entry for an item ID from any source
func (r *CatalogRepository) GetByItemID(itemID string) (*models.CatalogEntry, error) {
	query := `SELECT ` + catalogColumns + ` FROM content_items WHERE item_id = ? AND deleted_at IS NULL ORDER BY sequence ASC LIMIT 1`
	return r.scanOne(r.db.QueryRow(query, itemID))
}

// Update modifies the item fields of an existing entry. The entry keeps its sequence.
func (r *CatalogRepository) Update(entry *models.CatalogEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	item := entry.Item()
	genres, err := json.Marshal(nonNil(item.Genres))
	if err != nil {
		return fmt.Errorf("failed to encode genres: %w", err)
	}

	now := time.Now()
	query := `
		UPDATE content_items
		SET kind = ?, title = ?, description = ?, genres = ?, rating = ?, release_date = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		string(item.Kind),
		item.Title,
		item.Description,
		string(genres),
		item.Rating,
		nullTime(item.ReleaseDate),
		now,
		entry.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update catalog item: %w", err)
	}

	if err := expectAffected(result, "catalog item", entry.ID()); err != nil {
		return err
	}

	entry.SetUpdatedAt(now)
	return nil
}

// Delete soft-deletes an entry by ID
func (r *CatalogRepository) Delete(id string) error {
	result, err := r.db.Exec(`UPDATE content_items SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete catalog item: %w", err)
	}
	return expectAffected(result, "catalog item", id)
}

// List retrieves all entries matching the given criteria in import order, excluding soft-deleted entries.
//
// Supported criteria: "source" (string), "kind" (string or [models.Kind]).
func (r *CatalogRepository) List(criteria map[string]any) ([]*models.CatalogEntry, error) {
	query := `SELECT ` + catalogColumns + ` FROM content_items WHERE deleted_at IS NULL`
	args := []any{}

	if source, ok := criteria["source"].(string); ok && source != "" {
		query += " AND source = ?"
		args = append(args, source)
	}

	switch kind := criteria["kind"].(type) {
	case string:
		if kind != "" {
			query += " AND kind = ?"
			args = append(args, kind)
		}
	case models.Kind:
		if kind != "" {
			query += " AND kind = ?"
			args = append(args, string(kind))
		}
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	var entries []*models.CatalogEntry
	for rows.Next() {
		entry, err := scanCatalogEntry(rows)
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

// Items returns the catalog as content items in import order.
func (r *CatalogRepository) Items(criteria map[string]any) ([]models.ContentItem, error) {
	entries, err := r.List(criteria)
	if err != nil {
		return nil, err
	}

	items := make([]models.ContentItem, len(entries))
	for i, e := range entries {
		items[i] = e.Item()
	}
	return items, nil
}

// Name identifies the repository as a catalog source.
func (r *CatalogRepository) Name() string {
	return "database"
}

// Catalog returns every cached item in import order, so the repository can stand in for a remote or file provider.
func (r *CatalogRepository) Catalog(ctx context.Context) ([]models.ContentItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.Items(nil)
}

func (r *CatalogRepository) scanOne(row *sql.Row) (*models.CatalogEntry, error) {
	entry, err := scanCatalogEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrItemNotFound
	}
	return entry, err
}

// scanCatalogEntry scans a row selected with catalogColumns into a [models.CatalogEntry]
func scanCatalogEntry(row rowScanner) (*models.CatalogEntry, error) {
	var (
		id          string
		sequence    int
		source      string
		itemID      string
		kind        string
		title       string
		description string
		genresJSON  string
		rating      float64
		releaseDate sql.NullTime
		createdAt   time.Time
		updatedAt   time.Time
		deletedAt   sql.NullTime
	)

	err := row.Scan(&id, &sequence, &source, &itemID, &kind, &title, &description, &genresJSON, &rating, &releaseDate, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan catalog item: %w", err)
	}

	var genres []string
	if err := json.Unmarshal([]byte(genresJSON), &genres); err != nil {
		return nil, fmt.Errorf("failed to decode genres for %s: %w", itemID, err)
	}

	item := models.ContentItem{
		ID:          itemID,
		Kind:        models.Kind(kind),
		Title:       title,
		Description: description,
		Genres:      genres,
		Rating:      rating,
	}
	if releaseDate.Valid {
		item.ReleaseDate = releaseDate.Time
	}

	entry := models.NewCatalogEntry(sequence, source, item)
	entry.SetID(id)
	entry.SetCreatedAt(createdAt)
	entry.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		entry.SetDeletedAt(&deletedAt.Time)
	}

	return entry, nil
}

func expectAffected(result sql.Result, what, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%s not found or already deleted: %s", what, id)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
