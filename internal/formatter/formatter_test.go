package formatter

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/comeback/internal/models"
	"github.com/desertthunder/comeback/internal/shared"
	th "github.com/desertthunder/comeback/internal/testing"
)

func sampleReport() *models.Report {
	return &models.Report{
		From: "2025-03-01",
		To:   "2025-03-02",
		Days: []models.DayCompletion{
			{Day: "2025-03-01", Weekday: "Sat", Completion: 0, Mood: models.MoodTired, Water: 2},
			{Day: "2025-03-02", Weekday: "Sun", Completion: 67, Mood: models.MoodCalm, Water: 8, Meals: 2, Routine: 4},
		},
		Average:      34,
		CalmSessions: 2,
		CalmSeconds:  95,
	}
}

func TestExporters(t *testing.T) {
	report := sampleReport()

	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(report)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
		}
		if lines[0] != "Day,Weekday,Completion,Mood,Water,Meals,Routine" {
			t.Errorf("unexpected header: %s", lines[0])
		}
		if lines[2] != "2025-03-02,Sun,67,Calm,8,2,4" {
			t.Errorf("unexpected row: %s", lines[2])
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(report)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"# Completion 2025-03-01 to 2025-03-02",
			"**Average**: 34%",
			"**Calm sessions**: 2 (1m35s)",
			"| 2025-03-02 | Sun | 67% | Calm | 8 | 2/3 | 4/6 |",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(report)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Average: 34%") {
			t.Errorf("text missing average, got:\n%s", output)
		}
		if !strings.Contains(output, "Sun 2025-03-02 ██████░░░░  67%") {
			t.Errorf("text missing bar row, got:\n%s", output)
		}
		if !strings.Contains(output, "Calm sessions: 2") {
			t.Errorf("text missing calm sessions, got:\n%s", output)
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(report)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		var decoded models.Report
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.Average != 34 || len(decoded.Days) != 2 {
			t.Errorf("unexpected decoded report: %+v", decoded)
		}
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", FormatJSON},
		{"JSON", FormatJSON},
		{"csv", FormatCSV},
		{"md", FormatMarkdown},
		{"markdown", FormatMarkdown},
		{"text", FormatText},
		{" txt ", FormatText},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "░░░░░░░░░░"},
		{55, "█████░░░░░"},
		{100, "██████████"},
		{140, "██████████"},
		{-3, "░░░░░░░░░░"},
	}
	for _, tt := range tests {
		if got := Bar(tt.in); got != tt.want {
			t.Errorf("Bar(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteExport(t *testing.T) {
	t.Run("writes into nested directory", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "reports", "week.md")

		written, err := WriteExport(sampleReport(), FormatMarkdown, path)
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if written != path {
			t.Errorf("expected %s, got %s", path, written)
		}

		th.AssertFileExists(t, path)
		if content := th.MustReadFile(t, path); !strings.HasPrefix(content, "# Completion") {
			t.Errorf("unexpected content: %s", content)
		}
	})

	t.Run("default path", func(t *testing.T) {
		if got := DefaultPath(sampleReport(), FormatCSV); got != "comeback_2025-03-01_2025-03-02.csv" {
			t.Errorf("unexpected default path: %s", got)
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "week.xml")
		if _, err := WriteExport(sampleReport(), "xml", path); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}
