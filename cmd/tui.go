package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/moodx/internal/shared"
	"github.com/desertthunder/moodx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for browsing mood playlists.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	provider, err := r.catalogProvider(cmd)
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	logPath := r.config.Log.File
	if logPath == "" {
		logPath = "./tmp/moodx-tui.log"
	}
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	fileLogger.SetLevel(r.logger.GetLevel())
	r.SetLogger(fileLogger)

	userID := r.userID(cmd)
	if err := r.openStore(); err != nil {
		r.logger.Warn("history unavailable, suggestions use time of day only", "error", err)
		userID = ""
	}

	model := ui.NewModel(ctx, r.engine, provider, userID)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
