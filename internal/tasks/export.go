package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/comeback/internal/formatter"
	"github.com/desertthunder/comeback/internal/models"
)

// ExportOpts configures [HistoryEngine.Export].
type ExportOpts struct {
	Format string // Export format: json, csv, markdown, txt (default: json)
	Path   string // Output file (default: comeback_{from}_{to}.{ext})
}

// Export writes report to disk and returns the written path.
func (e *HistoryEngine) Export(ctx context.Context, report *models.Report, opts ExportOpts, progress chan<- ProgressUpdate) (string, error) {
	if report == nil {
		return "", fmt.Errorf("no report to export")
	}

	format, err := formatter.ParseFormat(opts.Format)
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := opts.Path
	if path == "" {
		path = formatter.DefaultPath(report, format)
	}

	sendProgress(progress, exportingUpdate(format, path))
	path, err = formatter.WriteExport(report, format, path)
	if err != nil {
		return "", err
	}

	e.logger.Info("report exported", "format", format, "path", path, "days", len(report.Days))
	sendProgress(progress, exportedUpdate(path))
	return path, nil
}
