package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/comeback/internal/models"
	"github.com/desertthunder/comeback/internal/shared"
)

// CalmSessionRepository logs finished breathing sessions.
type CalmSessionRepository struct {
	db *sql.DB
}

// NewCalmSessionRepository creates a new [CalmSessionRepository] with the given database connection
func NewCalmSessionRepository(db *sql.DB) *CalmSessionRepository {
	return &CalmSessionRepository{db: db}
}

// Create inserts session, generating its ID and sequence when unset.
func (r *CalmSessionRepository) Create(session *models.CalmSession) error {
	sequence, err := NextSequence(r.db, "calm_sessions")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	if session.ID == "" {
		session.ID = shared.GenerateID()
	}
	if session.Day == "" {
		session.Day = shared.DayKey(session.StartedAt)
	}
	session.Sequence = sequence

	query := `
		INSERT INTO calm_sessions (id, sequence, day, started_at, ended_at, seconds, completed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, session.ID, sequence, session.Day, session.StartedAt, session.EndedAt, session.Seconds, session.Completed)
	if err != nil {
		return fmt.Errorf("%w: failed to insert calm session: %v", shared.ErrPersistence, err)
	}
	return nil
}

// List returns up to limit sessions, newest first. A non-positive limit returns all.
func (r *CalmSessionRepository) List(limit int) ([]*models.CalmSession, error) {
	query := `
		SELECT id, sequence, day, started_at, ended_at, seconds, completed
		FROM calm_sessions
		ORDER BY sequence DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return r.query(query, args...)
}

// ForDay returns the sessions started on day, oldest first.
func (r *CalmSessionRepository) ForDay(day time.Time) ([]*models.CalmSession, error) {
	query := `
		SELECT id, sequence, day, started_at, ended_at, seconds, completed
		FROM calm_sessions
		WHERE day = ?
		ORDER BY sequence ASC
	`
	return r.query(query, shared.DayKey(day))
}

func (r *CalmSessionRepository) query(query string, args ...any) ([]*models.CalmSession, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query calm sessions: %v", shared.ErrPersistence, err)
	}
	defer rows.Close()

	var sessions []*models.CalmSession
	for rows.Next() {
		var (
			s         models.CalmSession
			startedAt time.Time
			endedAt   time.Time
		)
		if err := rows.Scan(&s.ID, &s.Sequence, &s.Day, &startedAt, &endedAt, &s.Seconds, &s.Completed); err != nil {
			return nil, fmt.Errorf("failed to scan calm session: %w", err)
		}
		s.StartedAt = startedAt
		s.EndedAt = endedAt
		sessions = append(sessions, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return sessions, nil
}
