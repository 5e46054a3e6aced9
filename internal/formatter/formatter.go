// package formatter renders mood playlists and classifications to export formats (text, Markdown, CSV, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/moodx/internal/models"
	"github.com/desertthunder/moodx/internal/shared"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format names an export format.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
)

// ParseFormat accepts a format name or a common file extension alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (text, markdown, csv, json)", shared.ErrInvalidFlag, s)
	}
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatCSV:
		return ".csv"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// MoodTitle returns the display title of a mood label, e.g. "Inspirational".
func MoodTitle(m models.MoodTag) string {
	return cases.Title(language.English).String(string(m))
}

// MoodList joins mood titles for display.
func MoodList(moods []models.MoodTag) string {
	titles := make([]string, len(moods))
	for i, m := range moods {
		titles[i] = MoodTitle(m)
	}
	return strings.Join(titles, ", ")
}

// Export renders playlists in format f.
func Export(playlists []models.MoodPlaylist, f Format) ([]byte, error) {
	switch f {
	case FormatMarkdown:
		return ExportToMarkdown(playlists)
	case FormatCSV:
		return ExportToCSV(playlists)
	case FormatJSON:
		return ExportToJSON(playlists)
	case FormatText, "":
		return ExportToText(playlists)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, f)
	}
}

// ExportToCSV renders one row per playlist item with columns: Mood, Playlist, Position, ID, Kind, Title, Genres, Rating, Released.
//
// Playlists without content produce a single row with empty item columns so suggestion lists still export.
func ExportToCSV(playlists []models.MoodPlaylist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Mood", "Playlist", "Position", "ID", "Kind", "Title", "Genres", "Rating", "Released"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, p := range playlists {
		if len(p.Content) == 0 {
			if err := writer.Write([]string{string(p.Mood), p.Name, "", "", "", "", "", "", ""}); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
			continue
		}

		for i, item := range p.Content {
			record := []string{
				string(p.Mood),
				p.Name,
				strconv.Itoa(i + 1),
				item.ID,
				string(item.Kind),
				item.Title,
				strings.Join(item.Genres, "|"),
				strconv.FormatFloat(item.Rating, 'f', 1, 64),
				releaseYear(item),
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders playlists as a Markdown document with one section per playlist
func ExportToMarkdown(playlists []models.MoodPlaylist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Mood Playlists\n\n")
	for _, p := range playlists {
		fmt.Fprintf(&buf, "## %s %s\n\n", p.Emoji, p.Name)
		fmt.Fprintf(&buf, "**Mood**: %s\n", MoodTitle(p.Mood))
		if p.Description != "" {
			fmt.Fprintf(&buf, "**Description**: %s\n", p.Description)
		}
		fmt.Fprintf(&buf, "**Titles**: %d\n\n", len(p.Content))

		for i, item := range p.Content {
			fmt.Fprintf(&buf, "%d. %s%s\n", i+1, item.Title, itemSuffix(item))
		}
		if len(p.Content) > 0 {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}

// ExportToText renders playlists as plain text
func ExportToText(playlists []models.MoodPlaylist) ([]byte, error) {
	var buf bytes.Buffer

	for i, p := range playlists {
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "%s %s [%s]\n", p.Emoji, p.Name, p.Mood)
		if p.Description != "" {
			fmt.Fprintf(&buf, "  %s\n", p.Description)
		}
		for j, item := range p.Content {
			fmt.Fprintf(&buf, "  %2d. %s%s\n", j+1, item.Title, itemSuffix(item))
		}
	}

	return buf.Bytes(), nil
}

// ExportToJSON renders playlists as indented JSON
func ExportToJSON(playlists []models.MoodPlaylist) ([]byte, error) {
	if playlists == nil {
		playlists = []models.MoodPlaylist{}
	}
	return shared.MarshalJSON(playlists, true)
}

// ClassificationLine renders one item's moods as a tab-separated line: ID, title, moods.
func ClassificationLine(item models.ContentItem, moods []models.MoodTag) string {
	return fmt.Sprintf("%s\t%s\t%s", item.ID, item.Title, MoodList(moods))
}

// WriteExport writes playlists to path in format f, creating parent directories.
//
// Defaults to playlists{ext} in the working directory.
func WriteExport(playlists []models.MoodPlaylist, f Format, path string) (string, error) {
	if path == "" {
		path = "playlists" + f.Extension()
	}

	data, err := Export(playlists, f)
	if err != nil {
		return "", fmt.Errorf("failed to render %s export: %w", f, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// WriteTo renders playlists in format f to w.
func WriteTo(w io.Writer, playlists []models.MoodPlaylist, f Format) error {
	data, err := Export(playlists, f)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func itemSuffix(item models.ContentItem) string {
	var parts []string
	if year := releaseYear(item); year != "" {
		parts = append(parts, year)
	}
	if item.Rating > 0 {
		parts = append(parts, fmt.Sprintf("★ %.1f", item.Rating))
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

func releaseYear(item models.ContentItem) string {
	if item.ReleaseDate.IsZero() {
		return ""
	}
	return strconv.Itoa(item.ReleaseDate.Year())
}
