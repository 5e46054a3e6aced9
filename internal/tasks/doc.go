// Package tasks orchestrates curation runs between catalog providers, storage and the mood curator,
// with real-time progress reporting.
//
// # Core Operations
//
// The [CurationEngine] interface defines three operations:
//
//  1. [CurationEngine.Curate] : Build all mood playlists
//     - Loads the catalog from a [services.CatalogProvider]
//     - Optionally caches every item through a [CatalogCacher]
//     - Classifies each item and reports the mood distribution
//     - Generates one playlist per mood
//
//  2. [CurationEngine.Import] : Persist a provider's catalog
//     - Loads the catalog and caches every item
//     - Reports created, updated and failed items
//
//  3. [CurationEngine.Personalize] : Rank playlists for a user
//     - Resolves the user's viewing history to catalog items
//     - Blends the most-watched moods with the time of day
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Implementation
//
// [PlaylistEngine] implements [CurationEngine] with dependencies on:
//   - [mood.Curator] : classification, generation and ranking
//   - [CatalogCacher] : Optional persistence layer (repositories.CatalogCacheAdapter)
//   - [HistorySource] : Optional viewing history (repositories.HistoryRepository)
package tasks
