// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/comeback/internal/models"
	"github.com/desertthunder/comeback/internal/shared"
)

// ErrStoreDown is returned by every [FailingDayStore] call.
var ErrStoreDown = errors.New("store unavailable")

// FailingDayStore is a day store whose reads and writes always fail
type FailingDayStore struct {
	mu    sync.Mutex
	calls int
}

func (f *FailingDayStore) fail() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return ErrStoreDown
}

// Calls reports how many store operations were attempted.
func (f *FailingDayStore) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *FailingDayStore) Get(time.Time) (*models.DailyRecord, error)  { return nil, f.fail() }
func (f *FailingDayStore) SetMood(time.Time, models.Mood) error         { return f.fail() }
func (f *FailingDayStore) SetWater(time.Time, int) error                { return f.fail() }
func (f *FailingDayStore) SetMeals(time.Time, models.Checklist) error   { return f.fail() }
func (f *FailingDayStore) SetRoutine(time.Time, models.Checklist) error { return f.fail() }

// MemoryDayStore keeps records in a map, for callers that don't need SQLite
type MemoryDayStore struct {
	mu   sync.Mutex
	days map[string]*models.DailyRecord
}

func NewMemoryDayStore() *MemoryDayStore {
	return &MemoryDayStore{days: make(map[string]*models.DailyRecord)}
}

func (m *MemoryDayStore) Get(day time.Time) (*models.DailyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.days[shared.DayKey(day)]
	if !ok {
		return nil, shared.ErrRecordNotFound
	}
	return r.Clone(), nil
}

func (m *MemoryDayStore) update(day time.Time, fn func(*models.DailyRecord)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := shared.DayKey(day)
	r, ok := m.days[key]
	if !ok {
		r = models.NewDailyRecord(day)
		m.days[key] = r
	}
	fn(r)
	return nil
}

func (m *MemoryDayStore) SetMood(day time.Time, mood models.Mood) error {
	return m.update(day, func(r *models.DailyRecord) { r.Mood = mood })
}

func (m *MemoryDayStore) SetWater(day time.Time, glasses int) error {
	return m.update(day, func(r *models.DailyRecord) { r.Water = glasses })
}

func (m *MemoryDayStore) SetMeals(day time.Time, meals models.Checklist) error {
	return m.update(day, func(r *models.DailyRecord) { r.Meals = meals.Clone() })
}

func (m *MemoryDayStore) SetRoutine(day time.Time, routine models.Checklist) error {
	return m.update(day, func(r *models.DailyRecord) { r.Routine = routine.Clone() })
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
