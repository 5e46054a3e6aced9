package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/moodx/internal/models"
	"github.com/desertthunder/moodx/internal/mood"
	"github.com/desertthunder/moodx/internal/services"
	"github.com/desertthunder/moodx/internal/shared"
)

// CurateOpts controls a curation run.
type CurateOpts struct {
	Cache bool // Persist every loaded item through the engine's cacher
}

// CurateResult contains the playlists and classification summary of a curation run.
type CurateResult struct {
	Source    string                 // Provider name
	Items     int                    // Catalog size
	Playlists []models.MoodPlaylist  // One playlist per mood, in mood order
	Counts    map[models.MoodTag]int // Items tagged with each mood (uncapped)
	Cached    int                    // Items written to the cache
	Failed    []ImportFailure        // Items that could not be cached
}

// ImportResult summarizes a catalog import.
type ImportResult struct {
	Source  string
	Total   int
	Created int
	Updated int
	Failed  []ImportFailure
}

// ImportFailure records an item that could not be cached.
type ImportFailure struct {
	ItemID string
	Error  error
}

// PersonalizeResult contains a user's ranked playlists.
type PersonalizeResult struct {
	UserID    string
	History   int                   // Resolved history items
	TopMoods  []models.MoodTag      // Most-watched moods, most frequent first
	Playlists []models.MoodPlaylist // Ranked templates with empty content
}

// CurationEngine defines curation operations over a catalog and viewing history.
type CurationEngine interface {
	// Curate loads a catalog, classifies it and generates one playlist per mood.
	Curate(ctx context.Context, progress chan<- ProgressUpdate, provider services.CatalogProvider, opts CurateOpts) (*CurateResult, error)

	// Import loads a catalog and caches every item.
	Import(ctx context.Context, progress chan<- ProgressUpdate, provider services.CatalogProvider) (*ImportResult, error)

	// Personalize ranks playlists for userID at the given time.
	Personalize(ctx context.Context, progress chan<- ProgressUpdate, userID string, at time.Time) (*PersonalizeResult, error)
}

// CatalogCacher persists catalog items keyed by source and item ID.
type CatalogCacher interface {
	CacheItem(source string, item models.ContentItem) (created bool, err error)
}

// HistorySource resolves a user's viewing history to catalog items in chronological order.
type HistorySource interface {
	Items(userID string) ([]models.ContentItem, error)
}

// PlaylistEngine implements [CurationEngine].
type PlaylistEngine struct {
	curator *mood.Curator
	cacher  CatalogCacher
	history HistorySource
}

// NewPlaylistEngine creates a new PlaylistEngine. cacher and history may be nil; operations that need them fail with
// [shared.ErrServiceUnavailable].
func NewPlaylistEngine(curator *mood.Curator, cacher CatalogCacher, history HistorySource) *PlaylistEngine {
	if curator == nil {
		curator = mood.NewCurator()
	}
	return &PlaylistEngine{
		curator: curator,
		cacher:  cacher,
		history: history,
	}
}

// Curator returns the curator used by the engine.
func (e *PlaylistEngine) Curator() *mood.Curator {
	return e.curator
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *PlaylistEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Curate loads the provider's catalog and generates mood playlists.
//
// An empty catalog is not an error: the result holds one empty playlist per mood.
// With opts.Cache, items that fail to cache are listed in Failed; the run fails only when none could be cached.
func (e *PlaylistEngine) Curate(ctx context.Context, progress chan<- ProgressUpdate, provider services.CatalogProvider, opts CurateOpts) (*CurateResult, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: catalog provider not initialized", shared.ErrServiceUnavailable)
	}
	if opts.Cache && e.cacher == nil {
		return nil, fmt.Errorf("%w: catalog cache not initialized", shared.ErrServiceUnavailable)
	}

	catalog, err := e.load(ctx, progress, provider)
	if err != nil {
		return nil, err
	}

	result := &CurateResult{
		Source: provider.Name(),
		Items:  len(catalog),
		Counts: make(map[models.MoodTag]int, len(models.AllMoods())),
	}

	if opts.Cache {
		for i, item := range catalog {
			e.sendProgress(progress, cacheItemUpdate(i+1, len(catalog), item))
			if _, err := e.cacher.CacheItem(provider.Name(), item); err != nil {
				result.Failed = append(result.Failed, ImportFailure{ItemID: item.ID, Error: err})
				continue
			}
			result.Cached++
		}
		if len(catalog) > 0 && result.Cached == 0 {
			return result, fmt.Errorf("no items were cached: %w", result.Failed[0].Error)
		}
	}

	for i, item := range catalog {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		moods := e.curator.Classify(item)
		for _, m := range moods {
			result.Counts[m]++
		}
		e.sendProgress(progress, classifyItemUpdate(i+1, len(catalog), item, moods))
	}

	result.Playlists = e.curator.Generate(catalog)
	e.sendProgress(progress, generatedUpdate(result.Playlists))
	return result, nil
}

// Import caches every item of the provider's catalog.
//
// Failures on individual items are collected; the run fails only when nothing could be cached.
func (e *PlaylistEngine) Import(ctx context.Context, progress chan<- ProgressUpdate, provider services.CatalogProvider) (*ImportResult, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: catalog provider not initialized", shared.ErrServiceUnavailable)
	}
	if e.cacher == nil {
		return nil, fmt.Errorf("%w: catalog cache not initialized", shared.ErrServiceUnavailable)
	}

	catalog, err := e.load(ctx, progress, provider)
	if err != nil {
		return nil, err
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("%w: %s returned no items", shared.ErrCatalogEmpty, provider.Name())
	}

	result := &ImportResult{Source: provider.Name(), Total: len(catalog)}
	for i, item := range catalog {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		e.sendProgress(progress, cacheItemUpdate(i+1, len(catalog), item))
		created, err := e.cacher.CacheItem(provider.Name(), item)
		switch {
		case err != nil:
			result.Failed = append(result.Failed, ImportFailure{ItemID: item.ID, Error: err})
		case created:
			result.Created++
		default:
			result.Updated++
		}
	}

	if len(result.Failed) == result.Total {
		return result, fmt.Errorf("no items were imported: %w", result.Failed[0].Error)
	}
	return result, nil
}

// Personalize ranks playlists for userID. A zero at means the curator's clock.
func (e *PlaylistEngine) Personalize(ctx context.Context, progress chan<- ProgressUpdate, userID string, at time.Time) (*PersonalizeResult, error) {
	if e.history == nil {
		return nil, fmt.Errorf("%w: viewing history not initialized", shared.ErrServiceUnavailable)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID", shared.ErrMissingArgument)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.sendProgress(progress, loadHistoryUpdate(userID))
	history, err := e.history.Items(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	result := &PersonalizeResult{
		UserID:    userID,
		History:   len(history),
		TopMoods:  e.curator.TopMoods(history, mood.HistoryTopN),
		Playlists: e.curator.Personalized(history, at),
	}
	e.sendProgress(progress, rankedUpdate(result.TopMoods, result.Playlists))
	return result, nil
}

func (e *PlaylistEngine) load(ctx context.Context, progress chan<- ProgressUpdate, provider services.CatalogProvider) ([]models.ContentItem, error) {
	e.sendProgress(progress, loadCatalogUpdate(provider.Name()))

	catalog, err := provider.Catalog(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load catalog from %s: %w", provider.Name(), err)
	}
	return catalog, nil
}
