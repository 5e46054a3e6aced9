package tasks

import (
	"fmt"

	"github.com/desertthunder/moodx/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	LoadCatalog Phase = iota
	CacheCatalog
	ClassifyItems
	GeneratePlaylists
	LoadHistory
	RankPlaylists
)

func (p Phase) String() string {
	switch p {
	case LoadCatalog:
		return "load_catalog"
	case CacheCatalog:
		return "cache_catalog"
	case ClassifyItems:
		return "classify_items"
	case GeneratePlaylists:
		return "generate_playlists"
	case LoadHistory:
		return "load_history"
	case RankPlaylists:
		return "rank_playlists"
	default:
		return ""
	}
}

func loadCatalogUpdate(source string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadCatalog,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Loading catalog from %s...", source),
	}
}

func cacheItemUpdate(step, total int, item models.ContentItem) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CacheCatalog,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Caching %s", item.Title),
		Data:    item,
	}
}

func classifyItemUpdate(step, total int, item models.ContentItem, moods []models.MoodTag) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ClassifyItems,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Classified %s as %v", item.Title, moods),
		Data:    moods,
	}
}

func generatedUpdate(playlists []models.MoodPlaylist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   GeneratePlaylists,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Generated %d playlists", len(playlists)),
		Data:    playlists,
	}
}

func loadHistoryUpdate(userID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadHistory,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Loading viewing history for %s...", userID),
	}
}

func rankedUpdate(top []models.MoodTag, playlists []models.MoodPlaylist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RankPlaylists,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Ranked %d playlists (top moods: %v)", len(playlists), top),
		Data:    playlists,
	}
}
