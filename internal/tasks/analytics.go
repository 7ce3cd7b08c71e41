package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/comeback/internal/models"
	"github.com/desertthunder/comeback/internal/shared"
)

// DefaultWindow is the number of days in the weekly report.
const DefaultWindow = 7

// DaySource provides the records of the n days ending at now, oldest first.
type DaySource interface {
	Days(now time.Time, n int) []*models.DailyRecord
}

// SessionSource lists calm sessions started on a day.
type SessionSource interface {
	ForDay(day time.Time) ([]*models.CalmSession, error)
}

// BuildReport reduces records to per-day completion and their rounded average.
func BuildReport(records []*models.DailyRecord) *models.Report {
	report := &models.Report{Days: make([]models.DayCompletion, 0, len(records))}

	for _, r := range records {
		row := models.DayCompletion{
			Day:        r.Day,
			Completion: r.Completion(),
			Mood:       r.Mood,
			Water:      r.Water,
			Meals:      r.Meals.Done(),
			Routine:    r.Routine.Done(),
		}
		if d, err := shared.ParseDay(r.Day, time.Local); err == nil {
			row.Weekday = d.Weekday().String()[:3]
		}
		report.Days = append(report.Days, row)
	}

	if len(report.Days) > 0 {
		report.From = report.Days[0].Day
		report.To = report.Days[len(report.Days)-1].Day
	}
	report.Average = models.Average(report.Completions())
	return report
}

// HistoryEngine builds and exports reports.
type HistoryEngine struct {
	days     DaySource
	sessions SessionSource
	logger   *log.Logger
	now      func() time.Time
}

// NewHistoryEngine creates a [HistoryEngine]. sessions may be nil.
func NewHistoryEngine(days DaySource, sessions SessionSource, logger *log.Logger) *HistoryEngine {
	if logger == nil {
		logger = log.Default()
	}
	return &HistoryEngine{days: days, sessions: sessions, logger: logger, now: time.Now}
}

// Report builds the report for the n days ending at now.
func (e *HistoryEngine) Report(ctx context.Context, now time.Time, n int, progress chan<- ProgressUpdate) (*models.Report, error) {
	if e.days == nil {
		return nil, fmt.Errorf("%w: day source not initialized", shared.ErrServiceUnavailable)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: window must be positive, got %d", shared.ErrInvalidArgument, n)
	}

	sendProgress(progress, loadDaysUpdate(0, n))
	records := e.days.Days(now, n)
	sendProgress(progress, loadDaysUpdate(n, n))

	report := BuildReport(records)
	report.GeneratedAt = e.now()

	if e.sessions != nil {
		for i, day := range shared.LastDays(now, n) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			sessions, err := e.sessions.ForDay(day)
			if err != nil {
				e.logger.Warn("failed to load calm sessions", "day", shared.DayKey(day), "error", err)
				continue
			}

			for _, s := range sessions {
				report.CalmSessions++
				report.CalmSeconds += s.Seconds
			}
			sendProgress(progress, loadSessionsUpdate(i+1, n, shared.DayKey(day), len(sessions)))
		}
	}

	sendProgress(progress, summarizeUpdate(report.Average, report))
	return report, nil
}
