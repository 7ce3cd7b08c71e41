// package formatter provides functions to export completion reports to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/comeback/internal/models"
	"github.com/desertthunder/comeback/internal/shared"
)

// Supported export formats.
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
)

// Formats lists every supported export format.
var Formats = []string{FormatJSON, FormatCSV, FormatMarkdown, FormatText}

// ParseFormat normalizes a user supplied format name.
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: unsupported format %q (want one of %s)", shared.ErrInvalidArgument, s, strings.Join(Formats, ", "))
	}
}

// Extension returns the file extension for format.
func Extension(format string) string {
	switch format {
	case FormatMarkdown:
		return ".md"
	case FormatText:
		return ".txt"
	case FormatCSV:
		return ".csv"
	default:
		return ".json"
	}
}

// Bar draws completion as a ten cell bar.
func Bar(completion int) string {
	filled := min(max(completion, 0), 100) / 10
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

// ExportToCSV converts a Report to CSV format with columns: Day, Weekday, Completion, Mood, Water, Meals, Routine
func ExportToCSV(report *models.Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Day", "Weekday", "Completion", "Mood", "Water", "Meals", "Routine"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, day := range report.Days {
		record := []string{
			day.Day,
			day.Weekday,
			strconv.Itoa(day.Completion),
			day.Mood.String(),
			strconv.Itoa(day.Water),
			strconv.Itoa(day.Meals),
			strconv.Itoa(day.Routine),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a Report to a Markdown table
func ExportToMarkdown(report *models.Report) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Completion %s to %s\n\n", report.From, report.To))
	buf.WriteString(fmt.Sprintf("**Average**: %d%%\n", report.Average))
	buf.WriteString(fmt.Sprintf("**Calm sessions**: %d (%s)\n\n", report.CalmSessions, formatSeconds(report.CalmSeconds)))

	buf.WriteString("| Day | Weekday | Completion | Mood | Water | Meals | Routine |\n")
	buf.WriteString("|---|---|---|---|---|---|---|\n")
	for _, day := range report.Days {
		buf.WriteString(fmt.Sprintf("| %s | %s | %d%% | %s | %d | %d/%d | %d/%d |\n",
			day.Day, day.Weekday, day.Completion, day.Mood, day.Water,
			day.Meals, len(models.MealItems), day.Routine, len(models.RoutineItems)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a Report to plain text with a bar per day
func ExportToText(report *models.Report) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Completion %s to %s\n", report.From, report.To))
	buf.WriteString(fmt.Sprintf("Average: %d%%\n\n", report.Average))

	for _, day := range report.Days {
		buf.WriteString(fmt.Sprintf("%s %s %s %3d%%\n", day.Weekday, day.Day, Bar(day.Completion), day.Completion))
	}

	if report.CalmSessions > 0 {
		buf.WriteString(fmt.Sprintf("\nCalm sessions: %d (%s)\n", report.CalmSessions, formatSeconds(report.CalmSeconds)))
	}

	return buf.Bytes(), nil
}

// ExportToJSON renders the full report as indented JSON
func ExportToJSON(report *models.Report) ([]byte, error) {
	return shared.MarshalJSON(report, true)
}

// Render converts report to format.
func Render(report *models.Report, format string) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(report)
	case FormatMarkdown:
		return ExportToMarkdown(report)
	case FormatText:
		return ExportToText(report)
	case FormatJSON:
		return ExportToJSON(report)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidArgument, format)
	}
}

// DefaultPath is comeback_{from}_{to}{ext}.
func DefaultPath(report *models.Report, format string) string {
	return fmt.Sprintf("comeback_%s_%s%s", report.From, report.To, Extension(format))
}

// WriteExport renders report and writes it to path, creating parent directories.
//
// Defaults to [DefaultPath] in the working directory.
func WriteExport(report *models.Report, format, path string) (string, error) {
	if path == "" {
		path = DefaultPath(report, format)
	}

	data, err := Render(report, format)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

func formatSeconds(s int) string {
	return fmt.Sprintf("%dm%02ds", s/60, s%60)
}
