package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodx/internal/formatter"
	"github.com/desertthunder/moodx/internal/models"
	"github.com/desertthunder/moodx/internal/mood"
	"github.com/desertthunder/moodx/internal/shared"
	"github.com/desertthunder/moodx/internal/tasks"
	"github.com/urfave/cli/v3"
)

type classification struct {
	ID    string           `json:"id"`
	Title string           `json:"title"`
	Moods []models.MoodTag `json:"moods"`
}

type moodInfo struct {
	Mood     models.MoodTag `json:"mood"`
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Emoji    string         `json:"emoji"`
	Keywords []string       `json:"keywords"`
}

// Moods prints the eight playlist templates with the keywords that select each mood.
func (r *Runner) Moods(ctx context.Context, cmd *cli.Command) error {
	templates := mood.Templates()
	infos := make([]moodInfo, len(templates))
	for i, t := range templates {
		infos[i] = moodInfo{Mood: t.Mood, ID: t.ID, Name: t.Name, Emoji: t.Emoji, Keywords: r.classifier.Keywords(t.Mood)}
	}

	if cmd.Bool("json") {
		return r.writeJSON(infos, true)
	}

	for _, info := range infos {
		r.writePlain("%s %-22s [%s]\n", info.Emoji, info.Name, info.Mood)
		r.writePlain("    %s\n", strings.Join(info.Keywords, ", "))
	}
	return nil
}

// Classify prints the moods of every item in the catalog.
func (r *Runner) Classify(ctx context.Context, cmd *cli.Command) error {
	provider, err := r.catalogProvider(cmd)
	if err != nil {
		return err
	}

	r.logger.Debug("loading catalog", "source", provider.Name())
	catalog, err := provider.Catalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	only := cmd.String("item")
	results := []classification{}
	for _, item := range catalog {
		if only != "" && item.ID != only {
			continue
		}
		results = append(results, classification{ID: item.ID, Title: item.Title, Moods: r.curator.Classify(item)})
	}

	if only != "" && len(results) == 0 {
		return fmt.Errorf("%w: %s", shared.ErrItemNotFound, only)
	}

	if cmd.Bool("json") {
		return r.writeJSON(results, cmd.Bool("pretty"))
	}

	for _, c := range results {
		r.writePlain("%s\n", formatter.ClassificationLine(models.ContentItem{ID: c.ID, Title: c.Title}, c.Moods))
	}
	return nil
}

// Playlists generates one playlist per mood and writes them in the requested format.
func (r *Runner) Playlists(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	var only models.MoodTag
	if name := cmd.String("mood"); name != "" {
		if only, err = models.ParseMoodTag(name); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
		}
	}

	provider, err := r.catalogProvider(cmd)
	if err != nil {
		return err
	}

	opts := tasks.CurateOpts{Cache: cmd.Bool("cache")}
	if opts.Cache {
		if err := r.openStore(); err != nil {
			return err
		}
	}

	progress := make(chan tasks.ProgressUpdate, 100)
	done := make(chan struct{})
	go logProgress(shared.WithLogger(r.logger, "source", provider.Name()), progress, done)

	result, err := r.engine.Curate(ctx, progress, provider, opts)
	close(progress)
	<-done
	if result != nil {
		for _, f := range result.Failed {
			r.logger.Warn("failed to cache item", "id", f.ItemID, "error", f.Error)
		}
	}
	if err != nil {
		return fmt.Errorf("curation failed: %w", err)
	}

	r.logger.Info("curation complete", "source", result.Source, "items", result.Items, "cached", result.Cached, "failed", len(result.Failed))

	playlists := result.Playlists
	if only != "" {
		for _, p := range result.Playlists {
			if p.Mood == only {
				playlists = []models.MoodPlaylist{p}
				break
			}
		}
	}

	if err := r.emit(cmd, playlists, format); err != nil {
		return err
	}

	if cmd.Bool("stats") {
		r.writePlainln("Classified %d items from %s", result.Items, result.Source)
		for _, m := range models.AllMoods() {
			r.writePlain("  %-14s %d\n", formatter.MoodTitle(m), result.Counts[m])
		}
	}
	return nil
}

// Suggest lists the playlists suggested for a period of the day.
func (r *Runner) Suggest(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	period, err := models.ParseTimeOfDay(cmd.String("time"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidTimeOfDay, err)
	}

	label := string(period)
	if period == "" {
		label = string(models.PeriodForHour(r.now().Hour()))
	}
	r.logger.Debug("suggesting playlists", "period", label, "moods", r.curator.SuggestedMoods(period))

	return r.emit(cmd, r.curator.ForTimeOfDay(period), format)
}

// ForYou ranks playlists by the user's viewing history.
func (r *Runner) ForYou(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	at, err := r.parseAt(cmd.String("at"))
	if err != nil {
		return err
	}

	if err := r.openStore(); err != nil {
		return err
	}

	result, err := r.engine.Personalize(ctx, nil, r.userID(cmd), at)
	if err != nil {
		return err
	}

	if len(result.TopMoods) > 0 {
		r.logger.Info("ranked by history", "user", result.UserID, "events", result.History, "top", formatter.MoodList(result.TopMoods))
	} else {
		r.logger.Info("no viewing history, using time of day", "user", result.UserID)
		if cmd.String("at") != "" {
			r.logger.Warn("--at ignored without viewing history, suggestions use the current hour", "user", result.UserID)
		}
	}

	return r.emit(cmd, result.Playlists, format)
}

// emit writes playlists to --output when set, otherwise to the runner's output.
func (r *Runner) emit(cmd *cli.Command, playlists []models.MoodPlaylist, format formatter.Format) error {
	if path := cmd.String("output"); path != "" {
		written, err := formatter.WriteExport(playlists, format, path)
		if err != nil {
			return err
		}
		r.logger.Info("playlists exported", "path", written, "format", format)
		return nil
	}
	if err := formatter.WriteTo(r.output, playlists, format); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// logProgress logs engine progress until progress is closed. Per-item updates log at debug level.
func logProgress(logger *log.Logger, progress <-chan tasks.ProgressUpdate, done chan<- struct{}) {
	defer close(done)
	for update := range progress {
		switch update.Phase {
		case tasks.ClassifyItems, tasks.CacheCatalog:
			logger.Debug(update.Message, "phase", update.Phase, "step", update.Step, "total", update.Total)
		default:
			logger.Info(update.Message, "phase", update.Phase)
		}
	}
}
