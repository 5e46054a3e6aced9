// Package models defines domain entities and persistence interfaces for the moodx curation service.
//
// The package contains two categories of types:
//
// 1. Value types: immutable records exchanged between the catalog, the curator and presentation layers
//   - [ContentItem] : A movie or series from the catalog
//   - [MoodTag] : One of the eight fixed mood categories
//   - [MoodPlaylist] : A named, styled bundle of content for one mood
//   - [TimeOfDay] : Morning, afternoon, evening or night
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [CatalogEntry] : A catalog item cached in the local database
//   - [HistoryEntry] : A single viewing event for a user
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
