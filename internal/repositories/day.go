package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/comeback/internal/models"
	"github.com/desertthunder/comeback/internal/shared"
)

// DayStore is the day-keyed persistence used by [Tracker].
type DayStore interface {
	Get(day time.Time) (*models.DailyRecord, error)
	SetMood(day time.Time, mood models.Mood) error
	SetWater(day time.Time, glasses int) error
	SetMeals(day time.Time, meals models.Checklist) error
	SetRoutine(day time.Time, routine models.Checklist) error
}

var _ DayStore = (*DayRepository)(nil)

// DayRepository persists [models.DailyRecord] rows keyed by calendar date.
type DayRepository struct {
	db *sql.DB
}

// NewDayRepository creates a new [DayRepository] with the given database connection
func NewDayRepository(db *sql.DB) *DayRepository {
	return &DayRepository{db: db}
}

// Get retrieves the record for day, or [shared.ErrRecordNotFound] when nothing was tracked.
func (r *DayRepository) Get(day time.Time) (*models.DailyRecord, error) {
	key := shared.DayKey(day)
	query := `
		SELECT day, mood, water, meals, routine
		FROM daily_records
		WHERE day = ?
	`

	record, err := scanRecord(r.db.QueryRow(query, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: day %s", shared.ErrRecordNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query day %s: %v", shared.ErrPersistence, key, err)
	}
	return record, nil
}

// Save writes every field of record, replacing what was stored for its day.
func (r *DayRepository) Save(record *models.DailyRecord) error {
	meals, err := json.Marshal(record.Meals)
	if err != nil {
		return fmt.Errorf("failed to encode meals: %w", err)
	}
	routine, err := json.Marshal(record.Routine)
	if err != nil {
		return fmt.Errorf("failed to encode routine: %w", err)
	}

	query := `
		INSERT INTO daily_records (day, mood, water, meals, routine, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET
			mood = excluded.mood,
			water = excluded.water,
			meals = excluded.meals,
			routine = excluded.routine,
			updated_at = excluded.updated_at
	`

	now := time.Now()
	_, err = r.db.Exec(query, record.Day, string(record.Mood), record.Water, string(meals), string(routine), now, now)
	if err != nil {
		return fmt.Errorf("%w: failed to save day %s: %v", shared.ErrPersistence, record.Day, err)
	}
	return nil
}

// SetMood stores the mood for day without touching other trackers.
func (r *DayRepository) SetMood(day time.Time, mood models.Mood) error {
	return r.setColumn(day, "mood", string(mood))
}

// SetWater stores the glasses count for day.
func (r *DayRepository) SetWater(day time.Time, glasses int) error {
	return r.setColumn(day, "water", models.ClampWater(glasses))
}

// SetMeals stores the meal checklist for day.
func (r *DayRepository) SetMeals(day time.Time, meals models.Checklist) error {
	data, err := json.Marshal(meals)
	if err != nil {
		return fmt.Errorf("failed to encode meals: %w", err)
	}
	return r.setColumn(day, "meals", string(data))
}

// SetRoutine stores the routine checklist for day.
func (r *DayRepository) SetRoutine(day time.Time, routine models.Checklist) error {
	data, err := json.Marshal(routine)
	if err != nil {
		return fmt.Errorf("failed to encode routine: %w", err)
	}
	return r.setColumn(day, "routine", string(data))
}

// setColumn upserts a single tracker column. column must be one of the fixed names above.
func (r *DayRepository) setColumn(day time.Time, column string, value any) error {
	key := shared.DayKey(day)
	query := fmt.Sprintf(`
		INSERT INTO daily_records (day, %[1]s, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET
			%[1]s = excluded.%[1]s,
			updated_at = excluded.updated_at
	`, column)

	now := time.Now()
	if _, err := r.db.Exec(query, key, value, now, now); err != nil {
		return fmt.Errorf("%w: failed to update %s for %s: %v", shared.ErrPersistence, column, key, err)
	}
	return nil
}

// Range retrieves stored records between from and to inclusive, oldest first.
// Days without a row are not included.
func (r *DayRepository) Range(from, to time.Time) ([]*models.DailyRecord, error) {
	query := `
		SELECT day, mood, water, meals, routine
		FROM daily_records
		WHERE day BETWEEN ? AND ?
		ORDER BY day ASC
	`

	rows, err := r.db.Query(query, shared.DayKey(from), shared.DayKey(to))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query days: %v", shared.ErrPersistence, err)
	}
	defer rows.Close()

	var records []*models.DailyRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan day: %v", shared.ErrPersistence, err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

// Delete removes the record for day.
func (r *DayRepository) Delete(day time.Time) error {
	key := shared.DayKey(day)
	result, err := r.db.Exec("DELETE FROM daily_records WHERE day = ?", key)
	if err != nil {
		return fmt.Errorf("%w: failed to delete day %s: %v", shared.ErrPersistence, key, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: day %s", shared.ErrRecordNotFound, key)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.DailyRecord, error) {
	var (
		day     string
		mood    string
		water   int
		meals   string
		routine string
	)

	if err := row.Scan(&day, &mood, &water, &meals, &routine); err != nil {
		return nil, err
	}

	record := &models.DailyRecord{Day: day, Mood: models.Mood(mood), Water: models.ClampWater(water)}

	var stored models.Checklist
	if err := json.Unmarshal([]byte(meals), &stored); err != nil {
		return nil, fmt.Errorf("failed to decode meals: %w", err)
	}
	record.Meals = stored.Merge(models.MealItems)

	stored = nil
	if err := json.Unmarshal([]byte(routine), &stored); err != nil {
		return nil, fmt.Errorf("failed to decode routine: %w", err)
	}
	record.Routine = stored.Merge(models.RoutineItems)

	return record, nil
}
