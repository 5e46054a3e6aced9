// Package repositories implements SQLite persistence for the catalog cache and viewing history.
//
// Each repository handles CRUD operations with atomic sequence generation for stable ordering.
// All repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [CatalogRepository] : Cached catalog items, keyed by source and item ID, in import order
//   - [HistoryRepository] : Viewing events per user, resolved to catalog items for personalization
//   - [CatalogCacheAdapter] : Upserting cache used by the curation engine
//
// Sequence numbers preserve catalog order, which matters: playlists are filled in catalog scan order.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
