package models

import (
	"fmt"
	"time"
)

// CatalogEntry is a [ContentItem] cached in the local database.
//
// The item's own ID is stored as the external item ID; the entry ID is generated on insert.
type CatalogEntry struct {
	base
	source string
	item   ContentItem
}

// NewCatalogEntry creates an unsaved entry for an item from the named catalog source.
func NewCatalogEntry(sequence int, source string, item ContentItem) *CatalogEntry {
	return &CatalogEntry{base: newBase(sequence), source: source, item: item}
}

func (e *CatalogEntry) Source() string           { return e.source }
func (e *CatalogEntry) ItemID() string           { return e.item.ID }
func (e *CatalogEntry) Item() ContentItem        { return e.item }
func (e *CatalogEntry) SetItem(item ContentItem) { e.item = item }

// Validate checks that the entry can be stored.
func (e *CatalogEntry) Validate() error {
	if e.source == "" {
		return fmt.Errorf("catalog source is required")
	}
	if e.item.ID == "" {
		return fmt.Errorf("item ID is required")
	}
	if e.item.Kind != "" && e.item.Kind != KindMovie && e.item.Kind != KindSeries {
		return fmt.Errorf("invalid item kind: %s", e.item.Kind)
	}
	return nil
}

// HistoryEntry records that a user watched a catalog item.
type HistoryEntry struct {
	base
	userID    string
	itemID    string
	watchedAt time.Time
}

// NewHistoryEntry creates an unsaved viewing event.
func NewHistoryEntry(sequence int, userID, itemID string, watchedAt time.Time) *HistoryEntry {
	return &HistoryEntry{base: newBase(sequence), userID: userID, itemID: itemID, watchedAt: watchedAt}
}

func (h *HistoryEntry) UserID() string       { return h.userID }
func (h *HistoryEntry) ItemID() string       { return h.itemID }
func (h *HistoryEntry) WatchedAt() time.Time { return h.watchedAt }

// Validate checks that the entry can be stored.
func (h *HistoryEntry) Validate() error {
	if h.userID == "" {
		return fmt.Errorf("user ID is required")
	}
	if h.itemID == "" {
		return fmt.Errorf("item ID is required")
	}
	if h.watchedAt.IsZero() {
		return fmt.Errorf("watched_at is required")
	}
	return nil
}
