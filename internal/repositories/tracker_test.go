package repositories

import (
	"bytes"
	"strings"
	"testing"

	"github.com/desertthunder/comeback/internal/models"
	"github.com/desertthunder/comeback/internal/shared"
	tu "github.com/desertthunder/comeback/internal/testing"
)

func TestTracker(t *testing.T) {
	t.Run("defaults for untracked day", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		tracker := NewTracker(NewDayRepository(db), shared.NewLogger(nil))
		record := tracker.Day(day(1))

		if record.Mood != models.MoodCalm || record.Water != 0 || record.Completion() != 0 {
			t.Errorf("expected defaults, got %+v", record)
		}
	})

	t.Run("writes through to the store", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewDayRepository(db)
		tracker := NewTracker(repo, shared.NewLogger(nil))

		tracker.SetMood(day(2), models.MoodTired)
		tracker.AdjustWater(day(2), 3)
		tracker.AdjustWater(day(2), -1)
		tracker.ToggleMeal(day(2), "Dinner")
		record := tracker.ToggleRoutine(day(2), "Work focus")

		if record.Completion() != 22 {
			t.Errorf("expected completion 22, got %d", record.Completion())
		}

		stored, err := repo.Get(day(2))
		if err != nil {
			t.Fatalf("failed to read stored day: %v", err)
		}
		if stored.Mood != models.MoodTired || stored.Water != 2 || !stored.Meals["Dinner"] || !stored.Routine["Work focus"] {
			t.Errorf("unexpected stored record: %+v", stored)
		}
	})

	t.Run("toggle twice restores", func(t *testing.T) {
		tracker := NewTracker(tu.NewMemoryDayStore(), shared.NewLogger(nil))
		tracker.ToggleMeal(day(3), "Lunch")
		record := tracker.ToggleMeal(day(3), "Lunch")
		if record.Meals["Lunch"] {
			t.Error("expected Lunch unchecked after two toggles")
		}
	})

	t.Run("water bounds", func(t *testing.T) {
		tracker := NewTracker(nil, shared.NewLogger(nil))
		if r := tracker.AdjustWater(day(4), -1); r.Water != 0 {
			t.Errorf("expected 0, got %d", r.Water)
		}
		if r := tracker.AdjustWater(day(4), 50); r.Water != models.MaxWater {
			t.Errorf("expected %d, got %d", models.MaxWater, r.Water)
		}
	})

	t.Run("unknown inputs are ignored", func(t *testing.T) {
		tracker := NewTracker(nil, shared.NewLogger(nil))
		record := tracker.SetMood(day(5), models.Mood("Angry"))
		if record.Mood != models.MoodCalm {
			t.Errorf("expected Calm, got %s", record.Mood)
		}
		record = tracker.ToggleMeal(day(5), "Brunch")
		if record.Meals.Has("Brunch") {
			t.Error("unknown meal should not be added")
		}
		record = tracker.ToggleRoutine(day(5), "Nap")
		if record.Routine.Has("Nap") {
			t.Error("unknown routine item should not be added")
		}
	})

	t.Run("failing store falls back to memory", func(t *testing.T) {
		var buf bytes.Buffer
		store := &tu.FailingDayStore{}
		tracker := NewTracker(store, shared.NewLogger(&buf))

		record := tracker.Day(day(6))
		if record.Mood != models.MoodCalm {
			t.Errorf("expected default mood, got %s", record.Mood)
		}

		tracker.SetMood(day(6), models.MoodHopeful)
		record = tracker.AdjustWater(day(6), 2)

		if record.Mood != models.MoodHopeful || record.Water != 2 {
			t.Errorf("expected in-memory changes to survive, got %+v", record)
		}
		if store.Calls() == 0 {
			t.Error("expected the store to be attempted")
		}
		if !strings.Contains(buf.String(), "keeping it in memory") {
			t.Errorf("expected a logged write failure, got %q", buf.String())
		}
	})

	t.Run("Days", func(t *testing.T) {
		tracker := NewTracker(tu.NewMemoryDayStore(), shared.NewLogger(nil))
		tracker.ToggleMeal(day(9), "Breakfast")

		records := tracker.Days(day(10), 7)
		if len(records) != 7 {
			t.Fatalf("expected 7 records, got %d", len(records))
		}
		if records[0].Day != "2025-03-04" || records[6].Day != "2025-03-10" {
			t.Errorf("unexpected range %s .. %s", records[0].Day, records[6].Day)
		}
		if !records[5].Meals["Breakfast"] {
			t.Error("expected tracked meal on 2025-03-09")
		}
	})

	t.Run("returned records are copies", func(t *testing.T) {
		tracker := NewTracker(nil, shared.NewLogger(nil))
		record := tracker.Day(day(11))
		record.Meals["Lunch"] = true

		if tracker.Day(day(11)).Meals["Lunch"] {
			t.Error("mutating a returned record changed tracker state")
		}
	})
}
