package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/comeback/internal/models"
	"github.com/desertthunder/comeback/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 9, 30, 0, 0, time.Local)
}

func TestDayRepository(t *testing.T) {
	t.Run("Get missing day", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewDayRepository(db)
		_, err := repo.Get(day(1))
		if !errors.Is(err, shared.ErrRecordNotFound) {
			t.Errorf("expected ErrRecordNotFound, got %v", err)
		}
	})

	t.Run("Save & Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewDayRepository(db)
		record := models.NewDailyRecord(day(2))
		record.Mood = models.MoodHopeful
		record.Water = 6
		record.Meals["Lunch"] = true
		record.Routine["15-min walk"] = true

		if err := repo.Save(record); err != nil {
			t.Fatalf("failed to save day: %v", err)
		}

		retrieved, err := repo.Get(day(2))
		if err != nil {
			t.Fatalf("failed to get day: %v", err)
		}

		if retrieved.Day != "2025-03-02" {
			t.Errorf("expected day 2025-03-02, got %s", retrieved.Day)
		}
		if retrieved.Mood != models.MoodHopeful {
			t.Errorf("expected mood Hopeful, got %s", retrieved.Mood)
		}
		if retrieved.Water != 6 {
			t.Errorf("expected 6 glasses, got %d", retrieved.Water)
		}
		if !retrieved.Meals["Lunch"] || retrieved.Meals["Dinner"] {
			t.Errorf("unexpected meals: %v", retrieved.Meals)
		}
		if retrieved.Completion() != 22 {
			t.Errorf("expected completion 22, got %d", retrieved.Completion())
		}
	})

	t.Run("column updates keep other trackers", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewDayRepository(db)
		if err := repo.SetWater(day(3), 4); err != nil {
			t.Fatalf("failed to set water: %v", err)
		}
		if err := repo.SetMood(day(3), models.MoodFocused); err != nil {
			t.Fatalf("failed to set mood: %v", err)
		}
		meals := models.NewChecklist(models.MealItems).Toggle("Breakfast")
		if err := repo.SetMeals(day(3), meals); err != nil {
			t.Fatalf("failed to set meals: %v", err)
		}

		retrieved, err := repo.Get(day(3))
		if err != nil {
			t.Fatalf("failed to get day: %v", err)
		}

		if retrieved.Water != 4 || retrieved.Mood != models.MoodFocused || !retrieved.Meals["Breakfast"] {
			t.Errorf("unexpected record: %+v", retrieved)
		}
		if len(retrieved.Routine) != len(models.RoutineItems) {
			t.Errorf("expected routine defaults, got %v", retrieved.Routine)
		}
	})

	t.Run("last write wins", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewDayRepository(db)
		for _, n := range []int{2, 9, 5} {
			if err := repo.SetWater(day(4), n); err != nil {
				t.Fatalf("failed to set water: %v", err)
			}
		}

		retrieved, err := repo.Get(day(4))
		if err != nil {
			t.Fatalf("failed to get day: %v", err)
		}
		if retrieved.Water != 5 {
			t.Errorf("expected 5 glasses, got %d", retrieved.Water)
		}
	})

	t.Run("water is clamped", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewDayRepository(db)
		if err := repo.SetWater(day(5), 99); err != nil {
			t.Fatalf("failed to set water: %v", err)
		}
		retrieved, _ := repo.Get(day(5))
		if retrieved.Water != models.MaxWater {
			t.Errorf("expected %d glasses, got %d", models.MaxWater, retrieved.Water)
		}
	})

	t.Run("Range", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewDayRepository(db)
		for _, d := range []int{10, 8, 12, 15} {
			if err := repo.SetWater(day(d), d); err != nil {
				t.Fatalf("failed to set water: %v", err)
			}
		}

		records, err := repo.Range(day(8), day(12))
		if err != nil {
			t.Fatalf("failed to range days: %v", err)
		}

		if len(records) != 3 {
			t.Fatalf("expected 3 records, got %d", len(records))
		}
		if records[0].Day != "2025-03-08" || records[2].Day != "2025-03-12" {
			t.Errorf("expected oldest first, got %s .. %s", records[0].Day, records[2].Day)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewDayRepository(db)
		if err := repo.SetMood(day(6), models.MoodTired); err != nil {
			t.Fatalf("failed to set mood: %v", err)
		}
		if err := repo.Delete(day(6)); err != nil {
			t.Fatalf("failed to delete day: %v", err)
		}
		if _, err := repo.Get(day(6)); !errors.Is(err, shared.ErrRecordNotFound) {
			t.Errorf("expected ErrRecordNotFound after delete, got %v", err)
		}
		if err := repo.Delete(day(6)); !errors.Is(err, shared.ErrRecordNotFound) {
			t.Errorf("expected ErrRecordNotFound deleting twice, got %v", err)
		}
	})

	t.Run("closed database", func(t *testing.T) {
		db := setupTestDB(t)
		db.Close()

		repo := NewDayRepository(db)
		if _, err := repo.Get(day(1)); !errors.Is(err, shared.ErrPersistence) {
			t.Errorf("expected ErrPersistence, got %v", err)
		}
		if err := repo.SetMood(day(1), models.MoodCalm); !errors.Is(err, shared.ErrPersistence) {
			t.Errorf("expected ErrPersistence, got %v", err)
		}
	})
}

func TestPreferenceRepository(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewPreferenceRepository(db)
		var v float64
		ok, err := repo.Get(PrefSynthVolume, &v)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected missing key")
		}
	})

	t.Run("Set & Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewPreferenceRepository(db)
		if err := repo.Set(PrefSynthVolume, 0.12); err != nil {
			t.Fatalf("failed to set: %v", err)
		}
		if err := repo.Set(PrefSynthVolume, 0.15); err != nil {
			t.Fatalf("failed to overwrite: %v", err)
		}
		if err := repo.Set(PrefSynthMood, models.MoodStressed); err != nil {
			t.Fatalf("failed to set mood: %v", err)
		}

		var volume float64
		if ok, err := repo.Get(PrefSynthVolume, &volume); err != nil || !ok {
			t.Fatalf("failed to get volume: ok=%v err=%v", ok, err)
		}
		if volume != 0.15 {
			t.Errorf("expected 0.15, got %v", volume)
		}

		var mood models.Mood
		if ok, err := repo.Get(PrefSynthMood, &mood); err != nil || !ok {
			t.Fatalf("failed to get mood: ok=%v err=%v", ok, err)
		}
		if mood != models.MoodStressed {
			t.Errorf("expected Stressed, got %s", mood)
		}
	})

	t.Run("decode mismatch", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewPreferenceRepository(db)
		if err := repo.Set(PrefPhase, "phase-1"); err != nil {
			t.Fatalf("failed to set: %v", err)
		}
		var n int
		if _, err := repo.Get(PrefPhase, &n); !errors.Is(err, shared.ErrPersistence) {
			t.Errorf("expected ErrPersistence, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewPreferenceRepository(db)
		_ = repo.Set(PrefPhase, "phase-2")
		if err := repo.Delete(PrefPhase); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}
		var s string
		if ok, _ := repo.Get(PrefPhase, &s); ok {
			t.Error("expected key to be gone")
		}
	})
}

func TestCalmSessionRepository(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewCalmSessionRepository(db)
	start := day(7)
	sessions := []*models.CalmSession{
		{StartedAt: start, EndedAt: start.Add(60 * time.Second), Seconds: 60, Completed: true},
		{StartedAt: start.Add(time.Hour), EndedAt: start.Add(time.Hour + 20*time.Second), Seconds: 20},
		{StartedAt: day(8), EndedAt: day(8).Add(60 * time.Second), Seconds: 60, Completed: true},
	}

	for _, s := range sessions {
		if err := repo.Create(s); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}
	}

	t.Run("Create assigns identity", func(t *testing.T) {
		if sessions[0].ID == "" {
			t.Error("expected generated ID")
		}
		if sessions[0].Sequence != 1 || sessions[2].Sequence != 3 {
			t.Errorf("unexpected sequences: %d, %d", sessions[0].Sequence, sessions[2].Sequence)
		}
		if sessions[1].Day != "2025-03-07" {
			t.Errorf("expected day from start time, got %s", sessions[1].Day)
		}
	})

	t.Run("List newest first", func(t *testing.T) {
		list, err := repo.List(2)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("expected 2 sessions, got %d", len(list))
		}
		if list[0].ID != sessions[2].ID {
			t.Errorf("expected newest session first")
		}

		all, err := repo.List(0)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(all) != 3 {
			t.Errorf("expected 3 sessions, got %d", len(all))
		}
	})

	t.Run("ForDay", func(t *testing.T) {
		list, err := repo.ForDay(start)
		if err != nil {
			t.Fatalf("failed to list day: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("expected 2 sessions, got %d", len(list))
		}
		if !list[0].Completed || list[1].Completed {
			t.Errorf("unexpected completion flags")
		}
		if !list[0].StartedAt.Equal(start) {
			t.Errorf("expected start %v, got %v", start, list[0].StartedAt)
		}
	})
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	seq1, err := NextSequence(db, "calm_sessions")
	if err != nil {
		t.Fatalf("failed to get first sequence: %v", err)
	}

	if seq1 != 1 {
		t.Errorf("expected first sequence to be 1, got %d", seq1)
	}

	seq2, err := NextSequence(db, "calm_sessions")
	if err != nil {
		t.Fatalf("failed to get second sequence: %v", err)
	}

	if seq2 != 2 {
		t.Errorf("expected second sequence to be 2, got %d", seq2)
	}

	if _, err := NextSequence(db, "missing"); err == nil {
		t.Error("expected error for table without a sequence")
	}
}
