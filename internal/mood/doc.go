// Package mood classifies catalog content into mood categories and curates mood playlists.
//
// # Classification
//
// A [Classifier] holds a fixed keyword table mapping each [models.MoodTag] to lowercase keywords.
// An item carries a mood when one of its genres equals a keyword, or a keyword occurs anywhere in its
// title or description. Items that match nothing are tagged relaxed.
//
// # Curation
//
// A [Curator] combines a classifier with the eight playlist templates:
//   - [Curator.Generate] : one playlist per mood, filled from the catalog in scan order (at most 12 items)
//   - [Curator.ForTimeOfDay] : templates suggested for a period of the day (or the current clock hour)
//   - [Curator.Personalized] : templates ranked by a user's viewing history, blended with the clock
//
// All operations are pure: they read their inputs, allocate fresh output and never fail.
// A Curator is safe for concurrent use.
package mood
