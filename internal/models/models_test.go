package models

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/desertthunder/comeback/internal/shared"
)

func TestMood(t *testing.T) {
	t.Run("BaseFrequency", func(t *testing.T) {
		tc := []struct {
			mood Mood
			want float64
		}{
			{MoodCalm, 432},
			{MoodTired, 444},
			{MoodStressed, 396},
			{MoodHopeful, 528},
			{MoodFocused, 480},
			{Mood("Unknown"), 480},
		}
		for _, tt := range tc {
			if got := BaseFrequency(tt.mood); got != tt.want {
				t.Errorf("BaseFrequency(%s) = %v, want %v", tt.mood, got, tt.want)
			}
		}
	})

	t.Run("ParseMood", func(t *testing.T) {
		m, err := ParseMood("  stressed ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m != MoodStressed {
			t.Errorf("expected Stressed, got %s", m)
		}

		if _, err := ParseMood("Angry"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Playlist", func(t *testing.T) {
		for _, m := range Moods {
			if len(Playlist(m)) != 3 {
				t.Errorf("expected 3 suggestions for %s", m)
			}
		}
		if Playlist(Mood("Unknown")) != nil {
			t.Error("expected nil playlist for unknown mood")
		}

		labels := Playlist(MoodCalm)
		labels[0] = "changed"
		if Playlist(MoodCalm)[0] == "changed" {
			t.Error("Playlist should return a copy")
		}
	})

	t.Run("NextMood", func(t *testing.T) {
		if got := NextMood(MoodFocused, 1); got != MoodCalm {
			t.Errorf("expected wrap to Calm, got %s", got)
		}
		if got := NextMood(MoodCalm, -1); got != MoodFocused {
			t.Errorf("expected wrap to Focused, got %s", got)
		}
		if got := NextMood(Mood("x"), 1); got != MoodCalm {
			t.Errorf("expected Calm for unknown mood, got %s", got)
		}
	})
}

func TestCompletion(t *testing.T) {
	t.Run("two meals and four routine items", func(t *testing.T) {
		meals := Checklist{"Breakfast": true, "Lunch": true, "Dinner": false}
		routine := NewChecklist(RoutineItems)
		for _, item := range RoutineItems[:4] {
			routine[item] = true
		}

		if got := Completion(meals, routine); got != 67 {
			t.Errorf("Completion() = %d, want 67", got)
		}
	})

	t.Run("empty record", func(t *testing.T) {
		r := NewDailyRecord(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))
		if r.Completion() != 0 {
			t.Errorf("expected 0, got %d", r.Completion())
		}
		if r.Day != "2024-03-01" || r.Mood != MoodCalm {
			t.Errorf("unexpected defaults: %+v", r)
		}
	})

	t.Run("clamped at 100", func(t *testing.T) {
		meals := Checklist{"a": true, "b": true, "c": true, "d": true, "e": true}
		routine := Checklist{"f": true, "g": true, "h": true, "i": true, "j": true}
		if got := Completion(meals, routine); got != 100 {
			t.Errorf("expected 100, got %d", got)
		}
	})

	t.Run("Average", func(t *testing.T) {
		if got := Average([]int{0, 0, 0, 0, 0, 0, 70}); got != 10 {
			t.Errorf("Average() = %d, want 10", got)
		}
		if got := Average(nil); got != 0 {
			t.Errorf("Average(nil) = %d, want 0", got)
		}
	})

	t.Run("ClampWater", func(t *testing.T) {
		if ClampWater(-1) != 0 || ClampWater(25) != MaxWater || ClampWater(4) != 4 {
			t.Error("ClampWater should bound to [0, MaxWater]")
		}
	})
}

func TestChecklist(t *testing.T) {
	c := NewChecklist(MealItems)

	toggled := c.Toggle("Lunch")
	if !toggled["Lunch"] || c["Lunch"] {
		t.Error("Toggle should flip a copy and leave the original unchanged")
	}

	if unknown := c.Toggle("Brunch"); unknown.Has("Brunch") {
		t.Error("Toggle should ignore unknown labels")
	}

	merged := Checklist{"Lunch": true, "Snack": true}.Merge(MealItems)
	if len(merged) != 4 || !merged["Lunch"] || merged["Dinner"] {
		t.Errorf("unexpected merge result: %v", merged)
	}

	keys := merged.Keys(MealItems)
	want := []string{"Breakfast", "Lunch", "Dinner", "Snack"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("Keys() = %v, want %v", keys, want)
		}
	}
}

func TestScaleAt(t *testing.T) {
	const eps = 1e-9

	t.Run("anchor points", func(t *testing.T) {
		tc := []struct {
			elapsed float64
			want    float64
		}{
			{0, 1.0},
			{2, 1.15},
			{4, 1.3},
			{6, 1.3},
			{8, 1.3},
			{10, 1.15},
			{12, 1.0},
			{14, 1.0},
			{16, 1.0},
		}
		for _, tt := range tc {
			if got := ScaleAt(tt.elapsed); math.Abs(got-tt.want) > eps {
				t.Errorf("ScaleAt(%v) = %v, want %v", tt.elapsed, got, tt.want)
			}
		}
	})

	t.Run("bounded and periodic", func(t *testing.T) {
		for i := 0; i <= 6400; i++ {
			elapsed := float64(i) * 0.01
			s := ScaleAt(elapsed)
			if s < MinScale-eps || s > MaxScale+eps {
				t.Fatalf("ScaleAt(%v) = %v out of bounds", elapsed, s)
			}
			if p := ScaleAt(elapsed + BreathCycle); math.Abs(p-s) > 1e-6 {
				t.Fatalf("ScaleAt not periodic at %v: %v vs %v", elapsed, s, p)
			}
		}
	})

	t.Run("continuous at phase boundaries", func(t *testing.T) {
		for _, boundary := range []float64{4, 8, 12, 16} {
			before := ScaleAt(boundary - 1e-7)
			after := ScaleAt(boundary)
			if math.Abs(before-after) > 1e-5 {
				t.Errorf("discontinuity at %v: %v -> %v", boundary, before, after)
			}
		}
	})

	t.Run("PhaseAt", func(t *testing.T) {
		tc := []struct {
			elapsed float64
			want    BreathPhase
		}{
			{0, Inhale},
			{5, HoldFull},
			{9.5, Exhale},
			{15.9, HoldEmpty},
			{-3, Inhale},
		}
		for _, tt := range tc {
			if got, _ := PhaseAt(tt.elapsed); got != tt.want {
				t.Errorf("PhaseAt(%v) = %v, want %v", tt.elapsed, got, tt.want)
			}
		}
	})
}

func TestContent(t *testing.T) {
	day := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	if QuoteFor(day) != Quotes[7%len(Quotes)] {
		t.Error("QuoteFor should rotate by day of month")
	}

	if PhaseByKey("phase2").Short != "Phase 2" {
		t.Error("expected phase2 lookup")
	}
	if PhaseByKey("missing").Key != "phase1" {
		t.Error("expected fallback to phase1")
	}
	for _, p := range Phases {
		if len(p.Bullets) != 4 {
			t.Errorf("expected 4 bullets in %s", p.Key)
		}
	}
}
