package repositories

import (
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/comeback/internal/models"
	"github.com/desertthunder/comeback/internal/shared"
)

// Tracker reads and mutates daily records through a [DayStore] without ever failing.
//
// Records are cached by day key. When the store cannot be read the cached (or default)
// record is returned; when a write fails the change is kept in memory and logged.
// A nil store makes the tracker memory-only.
type Tracker struct {
	store  DayStore
	logger *log.Logger

	mu   sync.Mutex
	days map[string]*models.DailyRecord
}

// NewTracker creates a [Tracker] over store.
func NewTracker(store DayStore, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.Default()
	}
	return &Tracker{store: store, logger: logger, days: make(map[string]*models.DailyRecord)}
}

// Day returns a copy of the record for day.
func (t *Tracker) Day(day time.Time) *models.DailyRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load(day).Clone()
}

// Days returns the records for the n days ending at now, oldest first.
func (t *Tracker) Days(now time.Time, n int) []*models.DailyRecord {
	days := shared.LastDays(now, n)
	records := make([]*models.DailyRecord, 0, len(days))

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, day := range days {
		records = append(records, t.load(day).Clone())
	}
	return records
}

// SetMood stores mood for day. Unknown moods are ignored.
func (t *Tracker) SetMood(day time.Time, mood models.Mood) *models.DailyRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	record := t.load(day)
	if !mood.Valid() {
		t.logger.Warn("ignoring unknown mood", "mood", mood)
		return record.Clone()
	}

	record.Mood = mood
	t.write("mood", record.Day, func(s DayStore) error { return s.SetMood(day, mood) })
	return record.Clone()
}

// AdjustWater adds delta glasses to day, clamped to [0, [models.MaxWater]].
func (t *Tracker) AdjustWater(day time.Time, delta int) *models.DailyRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	record := t.load(day)
	record.Water = models.ClampWater(record.Water + delta)
	glasses := record.Water
	t.write("water", record.Day, func(s DayStore) error { return s.SetWater(day, glasses) })
	return record.Clone()
}

// ToggleMeal flips a meal item for day.
func (t *Tracker) ToggleMeal(day time.Time, item string) *models.DailyRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	record := t.load(day)
	if !record.Meals.Has(item) {
		t.logger.Warn("ignoring unknown meal", "item", item)
		return record.Clone()
	}

	record.Meals = record.Meals.Toggle(item)
	meals := record.Meals.Clone()
	t.write("meals", record.Day, func(s DayStore) error { return s.SetMeals(day, meals) })
	return record.Clone()
}

// ToggleRoutine flips a routine item for day.
func (t *Tracker) ToggleRoutine(day time.Time, item string) *models.DailyRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	record := t.load(day)
	if !record.Routine.Has(item) {
		t.logger.Warn("ignoring unknown routine item", "item", item)
		return record.Clone()
	}

	record.Routine = record.Routine.Toggle(item)
	routine := record.Routine.Clone()
	t.write("routine", record.Day, func(s DayStore) error { return s.SetRoutine(day, routine) })
	return record.Clone()
}

// load reads day through the store into the cache. Callers hold t.mu.
func (t *Tracker) load(day time.Time) *models.DailyRecord {
	key := shared.DayKey(day)
	cached, ok := t.days[key]

	if t.store != nil {
		record, err := t.store.Get(day)
		switch {
		case err == nil:
			t.days[key] = record
			return record
		case errors.Is(err, shared.ErrRecordNotFound):
			t.logger.Debug("no stored record", "day", key)
		default:
			t.logger.Warn("failed to read day, using last known state", "day", key, "error", err)
		}
	}

	if ok {
		return cached
	}

	record := models.NewDailyRecord(day)
	t.days[key] = record
	return record
}

// write persists one field, logging failures. Callers hold t.mu.
func (t *Tracker) write(field, day string, fn func(DayStore) error) {
	if t.store == nil {
		return
	}
	if err := fn(t.store); err != nil {
		t.logger.Warn("failed to persist change, keeping it in memory", "field", field, "day", day, "error", err)
	}
}
