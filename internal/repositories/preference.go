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

var _ models.PreferenceStore = (*PreferenceRepository)(nil)

// Preference keys.
const (
	PrefSynthVolume = "synth:volume"
	PrefSynthMood   = "synth:mood"
	PrefPhase       = "phase:active"
)

// PreferenceRepository stores JSON values under string keys.
type PreferenceRepository struct {
	db *sql.DB
}

// NewPreferenceRepository creates a new [PreferenceRepository] with the given database connection
func NewPreferenceRepository(db *sql.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Get decodes the value stored at key into v and reports whether the key existed.
func (r *PreferenceRepository) Get(key string, v any) (bool, error) {
	var raw string
	err := r.db.QueryRow("SELECT value FROM preferences WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: failed to read %s: %v", shared.ErrPersistence, key, err)
	}

	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("%w: failed to decode %s: %v", shared.ErrPersistence, key, err)
	}
	return true, nil
}

// Set encodes v as JSON and stores it at key.
func (r *PreferenceRepository) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	query := `
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := r.db.Exec(query, key, string(data), time.Now()); err != nil {
		return fmt.Errorf("%w: failed to write %s: %v", shared.ErrPersistence, key, err)
	}
	return nil
}

// Delete removes key. Missing keys are not an error.
func (r *PreferenceRepository) Delete(key string) error {
	if _, err := r.db.Exec("DELETE FROM preferences WHERE key = ?", key); err != nil {
		return fmt.Errorf("%w: failed to delete %s: %v", shared.ErrPersistence, key, err)
	}
	return nil
}
