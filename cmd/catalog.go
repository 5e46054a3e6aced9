package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/moodx/internal/models"
	"github.com/desertthunder/moodx/internal/services"
	"github.com/desertthunder/moodx/internal/shared"
	"github.com/urfave/cli/v3"
)

type historyRow struct {
	ItemID    string `json:"item_id"`
	Title     string `json:"title,omitempty"`
	WatchedAt string `json:"watched_at"`
}

// CatalogImport caches a catalog in the local database.
//
// With a path argument the file is imported; otherwise the configured source is used.
func (r *Runner) CatalogImport(ctx context.Context, cmd *cli.Command) error {
	var provider services.CatalogProvider
	if path := cmd.StringArg("path"); path != "" {
		provider = services.NewFileCatalog(path)
	} else {
		p, err := r.catalogProvider(cmd)
		if err != nil {
			return err
		}
		provider = p
	}

	if provider.Name() == "database" {
		return fmt.Errorf("%w: cannot import the database catalog into itself", shared.ErrInvalidArgument)
	}

	if err := r.openStore(); err != nil {
		return err
	}

	r.logger.Info("importing catalog", "source", provider.Name())
	result, err := r.engine.Import(ctx, nil, provider)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	for _, f := range result.Failed {
		r.logger.Warn("failed to cache item", "id", f.ItemID, "error", f.Error)
	}

	r.writePlain("Imported %d items from %s (%d new, %d updated, %d failed)\n",
		result.Total, result.Source, result.Created, result.Updated, len(result.Failed))
	return nil
}

// CatalogList prints cached catalog items in import order.
func (r *Runner) CatalogList(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStore(); err != nil {
		return err
	}

	criteria := map[string]any{}
	if source := cmd.String("source"); source != "" {
		criteria["source"] = source
	}
	if kind := cmd.String("kind"); kind != "" {
		criteria["kind"] = models.Kind(kind)
	}

	items, err := r.catalog.Items(criteria)
	if err != nil {
		return fmt.Errorf("failed to list catalog: %w", err)
	}

	if cmd.Bool("json") {
		if items == nil {
			items = []models.ContentItem{}
		}
		return r.writeJSON(items, true)
	}

	if len(items) == 0 {
		r.writePlain("No cached items. Run 'moodx catalog import' first.\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Catalog (%d items)", len(items)))
	for _, item := range items {
		kind := item.Kind
		if kind == "" {
			kind = models.KindMovie
		}
		r.writePlain("%-12s %-7s %s\n", item.ID, kind, item.Title)
	}
	return nil
}

// HistoryAdd records a viewing event for a cached catalog item.
func (r *Runner) HistoryAdd(ctx context.Context, cmd *cli.Command) error {
	itemID := cmd.String("item")
	if itemID == "" {
		return fmt.Errorf("%w: --item", shared.ErrMissingArgument)
	}

	userID := r.userID(cmd)
	if userID == "" {
		return fmt.Errorf("%w: --user", shared.ErrMissingArgument)
	}

	at, err := r.parseAt(cmd.String("at"))
	if err != nil {
		return err
	}

	if err := r.openStore(); err != nil {
		return err
	}

	entry, err := r.catalog.GetByItemID(itemID)
	if errors.Is(err, shared.ErrItemNotFound) {
		return fmt.Errorf("%w: %s (import the catalog first)", shared.ErrItemNotFound, itemID)
	} else if err != nil {
		return err
	}

	event := models.NewHistoryEntry(0, userID, itemID, at)
	if err := r.history.Create(event); err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}

	r.logger.Debug("recorded history", "id", event.ID(), "user", userID, "item", itemID)
	r.writePlain("Recorded %s watching %q at %s\n", userID, entry.Item().Title, at.Format("2006-01-02 15:04"))
	return nil
}

// HistoryList prints a user's viewing history in chronological order.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	userID := r.userID(cmd)
	if userID == "" {
		return fmt.Errorf("%w: --user", shared.ErrMissingArgument)
	}

	if err := r.openStore(); err != nil {
		return err
	}

	criteria := map[string]any{"user_id": userID}
	if limit := cmd.Int("limit"); limit > 0 {
		criteria["limit"] = int(limit)
	}

	events, err := r.history.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	rows := make([]historyRow, 0, len(events))
	for _, e := range events {
		row := historyRow{ItemID: e.ItemID(), WatchedAt: e.WatchedAt().Format(time.RFC3339)}
		if entry, err := r.catalog.GetByItemID(e.ItemID()); err == nil {
			row.Title = entry.Item().Title
		}
		rows = append(rows, row)
	}

	if cmd.Bool("json") {
		return r.writeJSON(rows, true)
	}

	if len(rows) == 0 {
		r.writePlain("No viewing history for %s\n", userID)
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("History for %s (%d events)", userID, len(rows)))
	for _, row := range rows {
		title := row.Title
		if title == "" {
			title = "(not in catalog)"
		}
		r.writePlain("%s  %-12s %s\n", row.WatchedAt, row.ItemID, title)
	}
	return nil
}
