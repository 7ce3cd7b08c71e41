package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/comeback/internal/shared"
	"github.com/desertthunder/comeback/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive dashboard.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	fileLogger.SetLevel(r.logger.GetLevel())
	r.SetLogger(fileLogger)

	tracker := r.tracker()
	calm := r.calmTimer()
	synth := r.synth()
	defer calm.Stop()
	defer synth.Stop()

	opts := ui.Options{
		Tracker:   tracker,
		History:   r.history(tracker),
		Calm:      calm,
		Synth:     synth,
		Logger:    fileLogger,
		FrameRate: int(r.config.Calm.FrameRate),
		Now:       r.now,
	}
	if prefs := r.preferences(); prefs != nil {
		opts.Preferences = prefs
	}

	model := ui.NewModel(ctx, opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
