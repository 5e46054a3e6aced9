package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/moodx/internal/formatter"
	"github.com/desertthunder/moodx/internal/models"
)

var (
	_ list.Item = playlistItem{}
	_ list.Item = contentItem{}
)

// playlistItem wraps [models.MoodPlaylist] to implement [list.Item].
type playlistItem struct {
	playlist models.MoodPlaylist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name + " " + string(i.playlist.Mood) }
func (i playlistItem) Title() string       { return fmt.Sprintf("%s %s", i.playlist.Emoji, i.playlist.Name) }
func (i playlistItem) Description() string {
	desc := fmt.Sprintf("%s • %d titles", formatter.MoodTitle(i.playlist.Mood), len(i.playlist.Content))
	if i.playlist.Description != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.playlist.Description)
	}
	return desc
}

// contentItem wraps [models.ContentItem] to implement [list.Item].
type contentItem struct {
	item models.ContentItem
}

func (i contentItem) FilterValue() string { return i.item.Title }
func (i contentItem) Title() string       { return i.item.Title }
func (i contentItem) Description() string {
	var parts []string
	if !i.item.ReleaseDate.IsZero() {
		parts = append(parts, fmt.Sprint(i.item.ReleaseDate.Year()))
	}
	if i.item.Rating > 0 {
		parts = append(parts, fmt.Sprintf("★ %.1f", i.item.Rating))
	}
	if len(i.item.Genres) > 0 {
		parts = append(parts, strings.Join(i.item.Genres, ", "))
	}
	return strings.Join(parts, " • ")
}

func playlistItems(playlists []models.MoodPlaylist) []list.Item {
	items := make([]list.Item, len(playlists))
	for i, p := range playlists {
		items[i] = playlistItem{playlist: p}
	}
	return items
}

func contentItems(content []models.ContentItem) []list.Item {
	items := make([]list.Item, len(content))
	for i, c := range content {
		items[i] = contentItem{item: c}
	}
	return items
}
