package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/comeback/internal/formatter"
	"github.com/desertthunder/comeback/internal/models"
	"github.com/desertthunder/comeback/internal/shared"
	"github.com/urfave/cli/v3"
)

// dayFrom reads --day, defaulting to today.
func (r *Runner) dayFrom(cmd *cli.Command) (time.Time, error) {
	key := strings.TrimSpace(cmd.String("day"))
	if key == "" {
		return r.now(), nil
	}
	return shared.ParseDay(key, r.now().Location())
}

// matchItem resolves query against items by exact name or unique prefix, ignoring case.
func matchItem(items []string, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("%w: item name", shared.ErrMissingArgument)
	}

	var matches []string
	for _, item := range items {
		if strings.EqualFold(item, query) {
			return item, nil
		}
		if strings.HasPrefix(strings.ToLower(item), strings.ToLower(query)) {
			matches = append(matches, item)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	return "", fmt.Errorf("%w: %q does not match one of %s", shared.ErrInvalidArgument, query, strings.Join(items, ", "))
}

// Today prints one day's tracker state.
func (r *Runner) Today(ctx context.Context, cmd *cli.Command) error {
	day, err := r.dayFrom(cmd)
	if err != nil {
		return err
	}
	record := r.tracker().Day(day)

	if cmd.Bool("json") {
		return r.writeJSON(struct {
			*models.DailyRecord
			Completion int    `json:"completion"`
			Quote      string `json:"quote"`
		}{record, record.Completion(), models.QuoteFor(day)}, cmd.Bool("pretty"))
	}

	r.printRecord(record, day)
	return nil
}

func (r *Runner) printRecord(record *models.DailyRecord, day time.Time) {
	r.writePlainHeader(fmt.Sprintf("%s  %s %d%%", record.Day, formatter.Bar(record.Completion()), record.Completion()))
	r.writePlain("%s\n\n", models.QuoteFor(day))
	r.writePlain("Mood:  %s\n", record.Mood)
	r.writePlain("Water: %d/%d glasses\n", record.Water, models.MaxWater)

	r.writePlain("\nMeals\n")
	for _, item := range models.MealItems {
		r.writePlain("  %s %s\n", checkbox(record.Meals.Has(item)), item)
	}
	r.writePlain("\nRoutine\n")
	for _, item := range models.RoutineItems {
		r.writePlain("  %s %s\n", checkbox(record.Routine.Has(item)), item)
	}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// MoodSet records the mood for a day. Unknown moods are rejected.
func (r *Runner) MoodSet(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("mood")
	if name == "" {
		return fmt.Errorf("%w: mood", shared.ErrMissingArgument)
	}
	mood, err := models.ParseMood(name)
	if err != nil {
		return fmt.Errorf("%w: %q is not one of %s", shared.ErrInvalidArgument, name, moodNames())
	}

	day, err := r.dayFrom(cmd)
	if err != nil {
		return err
	}
	record := r.tracker().SetMood(day, mood)
	r.logger.Debug("mood set", "day", record.Day, "mood", mood)
	return r.writePlain("✓ Mood for %s: %s\n", record.Day, record.Mood)
}

func moodNames() string {
	names := make([]string, len(models.Moods))
	for i, m := range models.Moods {
		names[i] = m.String()
	}
	return strings.Join(names, ", ")
}

type moodInfo struct {
	Mood      models.Mood `json:"mood"`
	Frequency float64     `json:"frequency"`
	Playlist  []string    `json:"playlist"`
}

// MoodList prints every mood with its synth frequency and playlist.
func (r *Runner) MoodList(ctx context.Context, cmd *cli.Command) error {
	moods := make([]moodInfo, len(models.Moods))
	for i, m := range models.Moods {
		moods[i] = moodInfo{Mood: m, Frequency: models.BaseFrequency(m), Playlist: models.Playlist(m)}
	}

	if cmd.Bool("json") {
		return r.writeJSON(moods, cmd.Bool("pretty"))
	}

	for _, m := range moods {
		r.writePlain("%-9s %4.0f Hz  %s\n", m.Mood, m.Frequency, strings.Join(m.Playlist, ", "))
	}
	return nil
}

// WaterAdd adds glasses for a day.
func (r *Runner) WaterAdd(ctx context.Context, cmd *cli.Command) error {
	return r.adjustWater(cmd, int(cmd.Int("glasses")))
}

// WaterRemove removes glasses for a day.
func (r *Runner) WaterRemove(ctx context.Context, cmd *cli.Command) error {
	return r.adjustWater(cmd, -int(cmd.Int("glasses")))
}

func (r *Runner) adjustWater(cmd *cli.Command, delta int) error {
	if delta == 0 {
		return fmt.Errorf("%w: --glasses must not be zero", shared.ErrInvalidFlag)
	}
	day, err := r.dayFrom(cmd)
	if err != nil {
		return err
	}
	record := r.tracker().AdjustWater(day, delta)
	return r.writePlain("✓ Water for %s: %d/%d glasses\n", record.Day, record.Water, models.MaxWater)
}

// MealToggle toggles one meal for a day.
func (r *Runner) MealToggle(ctx context.Context, cmd *cli.Command) error {
	item, err := matchItem(models.MealItems, cmd.StringArg("item"))
	if err != nil {
		return err
	}
	day, err := r.dayFrom(cmd)
	if err != nil {
		return err
	}
	record := r.tracker().ToggleMeal(day, item)
	return r.writePlain("%s %s (%d%% complete)\n", checkbox(record.Meals.Has(item)), item, record.Completion())
}

// RoutineToggle toggles one routine item for a day.
func (r *Runner) RoutineToggle(ctx context.Context, cmd *cli.Command) error {
	item, err := matchItem(models.RoutineItems, cmd.StringArg("item"))
	if err != nil {
		return err
	}
	day, err := r.dayFrom(cmd)
	if err != nil {
		return err
	}
	record := r.tracker().ToggleRoutine(day, item)
	return r.writePlain("%s %s (%d%% complete)\n", checkbox(record.Routine.Has(item)), item, record.Completion())
}
