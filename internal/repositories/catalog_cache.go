package repositories

import (
	"errors"
	"fmt"

	"github.com/desertthunder/moodx/internal/models"
	"github.com/desertthunder/moodx/internal/shared"
)

// CatalogCacheAdapter implements tasks.CatalogCacher using CatalogRepository.
//
// Items are keyed by source and item ID: new items are appended to the catalog order,
// known items are updated in place and keep their original position.
type CatalogCacheAdapter struct {
	repo *CatalogRepository
}

// NewCatalogCacheAdapter creates a new CatalogCacheAdapter with the given repository
func NewCatalogCacheAdapter(repo *CatalogRepository) *CatalogCacheAdapter {
	return &CatalogCacheAdapter{repo: repo}
}

// CacheItem stores item under source, reporting whether it was newly created.
func (a *CatalogCacheAdapter) CacheItem(source string, item models.ContentItem) (bool, error) {
	existing, err := a.repo.GetBySourceItemID(source, item.ID)
	switch {
	case err == nil:
		existing.SetItem(item)
		if err := a.repo.Update(existing); err != nil {
			return false, fmt.Errorf("failed to refresh cached item %s: %w", item.ID, err)
		}
		return false, nil
	case !errors.Is(err, shared.ErrItemNotFound):
		return false, fmt.Errorf("failed to look up cached item %s: %w", item.ID, err)
	}

	if err := a.repo.Create(models.NewCatalogEntry(0, source, item)); err != nil {
		return false, fmt.Errorf("failed to cache item %s: %w", item.ID, err)
	}
	return true, nil
}
