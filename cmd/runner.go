package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodx/internal/models"
	"github.com/desertthunder/moodx/internal/mood"
	"github.com/desertthunder/moodx/internal/repositories"
	"github.com/desertthunder/moodx/internal/services"
	"github.com/desertthunder/moodx/internal/shared"
	"github.com/desertthunder/moodx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	classifier *mood.Classifier
	curator    *mood.Curator
	engine     *tasks.PlaylistEngine
	provider   services.CatalogProvider
	db         *sql.DB
	catalog    *repositories.CatalogRepository
	history    *repositories.HistoryRepository
	logger     *log.Logger
	output     io.Writer
	now        func() time.Time
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Provider   services.CatalogProvider // Overrides the configured catalog source
	DB         *sql.DB                  // Migrated database; opened from config on demand when nil
	Logger     *log.Logger
	Output     io.Writer
	Clock      func() time.Time
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	classifier := mood.NewClassifier(
		mood.WithKeywords(keywordTable(opts.Config.Curation.Keywords, opts.Logger)),
		mood.WithWholeWords(opts.Config.Curation.WholeWords),
	)
	curator := mood.NewCurator(
		mood.WithClassifier(classifier),
		mood.WithUnifiedPeriods(opts.Config.Curation.UnifiedPeriods),
		mood.WithClock(opts.Clock),
	)

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		classifier: classifier,
		curator:    curator,
		provider:   opts.Provider,
		logger:     opts.Logger,
		output:     opts.Output,
		now:        opts.Clock,
	}
	r.attach(opts.DB)
	return r
}

// keywordTable overlays configured keyword lists on [mood.DefaultKeywords]. Unknown moods are skipped.
func keywordTable(overrides map[string][]string, logger *log.Logger) map[models.MoodTag][]string {
	table := make(map[models.MoodTag][]string, len(mood.DefaultKeywords))
	for m, kws := range mood.DefaultKeywords {
		table[m] = kws
	}

	for name, kws := range overrides {
		m, err := models.ParseMoodTag(name)
		if err != nil {
			logger.Warn("ignoring keywords for unknown mood", "section", "curation.keywords", "error", err)
			continue
		}
		table[m] = kws
	}
	return table
}

// attach wires repositories backed by db into the engine. A nil db leaves the engine without storage.
func (r *Runner) attach(db *sql.DB) {
	r.db = db
	if db == nil {
		r.catalog, r.history = nil, nil
		r.engine = tasks.NewPlaylistEngine(r.curator, nil, nil)
		return
	}

	r.catalog = repositories.NewCatalogRepository(db)
	r.history = repositories.NewHistoryRepository(db)
	r.engine = tasks.NewPlaylistEngine(r.curator, repositories.NewCatalogCacheAdapter(r.catalog), r.history)
}

// openStore opens and migrates the configured database unless one is attached.
func (r *Runner) openStore() error {
	if r.db != nil {
		return nil
	}

	r.logger.Debug("opening database", "path", r.config.Database.Path)
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	applied, err := shared.RunMigrations(db)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if applied > 0 {
		r.logger.Info("applied migrations", "count", applied)
	}

	r.attach(db)
	return nil
}

// Close releases the database, if one was opened.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.attach(nil)
	return err
}

// SetLogger replaces the runner's logger, e.g. when the TUI owns the terminal.
func (r *Runner) SetLogger(l *log.Logger) {
	if l != nil {
		r.logger = l
	}
}

// catalogProvider resolves the catalog source: --catalog file flag, injected provider, then config.
func (r *Runner) catalogProvider(cmd *cli.Command) (services.CatalogProvider, error) {
	if path := cmd.String("catalog"); path != "" {
		return services.NewFileCatalog(path), nil
	}
	if r.provider != nil {
		return r.provider, nil
	}

	switch r.config.Catalog.Source {
	case "", "file":
		if r.config.Catalog.Path == "" {
			return nil, fmt.Errorf("%w: catalog.path", shared.ErrMissingConfig)
		}
		return services.NewFileCatalog(r.config.Catalog.Path), nil
	case "remote":
		remote, err := services.NewRemoteCatalog(r.config.Catalog.Remote)
		if err != nil {
			return nil, err
		}
		return remote, nil
	case "database":
		if err := r.openStore(); err != nil {
			return nil, err
		}
		return r.catalog, nil
	default:
		return nil, fmt.Errorf("%w: unknown catalog source %q", shared.ErrInvalidConfig, r.config.Catalog.Source)
	}
}

// userID returns the --user flag or the configured default user.
func (r *Runner) userID(cmd *cli.Command) string {
	if u := cmd.String("user"); u != "" {
		return u
	}
	return r.config.Curation.DefaultUser
}

// parseAt reads a time flag value: empty (now), an hour ("21"), a clock time ("21:30"), or RFC 3339.
func (r *Runner) parseAt(s string) (time.Time, error) {
	now := r.now()
	s = strings.TrimSpace(s)
	if s == "" {
		return now, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("15:04", s); err == nil {
		return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location()), nil
	}
	if h, err := strconv.Atoi(s); err == nil && h >= 0 && h < 24 {
		return time.Date(now.Year(), now.Month(), now.Day(), h, 0, 0, 0, now.Location()), nil
	}
	return time.Time{}, fmt.Errorf("%w: --at %q (want HH, HH:MM or RFC 3339)", shared.ErrInvalidFlag, s)
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, moodsCommand, classifyCommand, playlistsCommand, suggestCommand, forYouCommand, catalogCommand, historyCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
