package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/comeback/internal/formatter"
	"github.com/desertthunder/comeback/internal/models"
	"github.com/desertthunder/comeback/internal/shared"
	"github.com/desertthunder/comeback/internal/tasks"
	"github.com/urfave/cli/v3"
)

// report builds the completion report for --days, logging progress at debug level.
func (r *Runner) report(ctx context.Context, cmd *cli.Command) (*tasks.HistoryEngine, *models.Report, error) {
	n := int(cmd.Int("days"))
	if n <= 0 {
		return nil, nil, fmt.Errorf("%w: --days must be positive", shared.ErrInvalidFlag)
	}

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			r.logger.Debug(update.Message, "phase", update.Phase, "step", update.Step, "total", update.Total)
		}
	}()

	engine := r.history(r.tracker())
	report, err := engine.Report(ctx, r.now(), n, progressCh)
	close(progressCh)
	<-done
	return engine, report, err
}

// Stats prints per-day completion and the average.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	_, report, err := r.report(ctx, cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(report, cmd.Bool("pretty"))
	}

	text, err := formatter.ExportToText(report)
	if err != nil {
		return err
	}
	r.writePlainHeader(fmt.Sprintf("Weekly Comeback %s to %s", report.From, report.To))
	return r.writePlain("%s", text)
}

// Export writes the report in the chosen format.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	engine, report, err := r.report(ctx, cmd)
	if err != nil {
		return err
	}

	progressCh := make(chan tasks.ProgressUpdate, 10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			r.writePlain("📝 %s\n", update.Message)
		}
	}()

	opts := tasks.ExportOpts{Format: cmd.String("format"), Path: cmd.String("output")}
	path, err := engine.Export(ctx, report, opts, progressCh)
	close(progressCh)
	<-done
	if err != nil {
		return err
	}

	return r.writePlain("✓ Average %d%% over %d days written to %s\n", report.Average, len(report.Days), path)
}
