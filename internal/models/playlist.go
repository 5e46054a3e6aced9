package models

// MaxPlaylistItems is the most content a single mood playlist holds.
const MaxPlaylistItems = 12

// MoodPlaylist is a named, styled bundle of content for one mood.
//
// Playlists are computed on demand and never persisted; Content is in catalog scan order.
type MoodPlaylist struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Emoji       string        `json:"emoji"`
	Color       string        `json:"color"`
	Mood        MoodTag       `json:"mood"`
	Content     []ContentItem `json:"content"`
}
