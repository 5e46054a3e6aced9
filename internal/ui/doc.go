// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing mood playlists:
//  1. [CurateView] : Monitor catalog loading and classification progress
//  2. [PlaylistListView] : Browse the eight generated mood playlists
//  3. [ItemListView] : Browse the titles in a playlist
//  4. [ForYouView] : Playlists ranked by viewing history and time of day
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Progress updates flow through a channel from the PlaylistEngine, providing non-blocking status reporting during curation.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, f, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
