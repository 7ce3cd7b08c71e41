package models

import "time"

// DayCompletion is one day's row in a [Report].
type DayCompletion struct {
	Day        string `json:"day"`
	Weekday    string `json:"weekday"`
	Completion int    `json:"completion"`
	Mood       Mood   `json:"mood"`
	Water      int    `json:"water"`
	Meals      int    `json:"meals"`
	Routine    int    `json:"routine"`
}

// Report summarizes completion over a run of days, oldest first.
type Report struct {
	From         string          `json:"from"`
	To           string          `json:"to"`
	Days         []DayCompletion `json:"days"`
	Average      int             `json:"average"`
	CalmSessions int             `json:"calm_sessions"`
	CalmSeconds  int             `json:"calm_seconds"`
	GeneratedAt  time.Time       `json:"generated_at"`
}

// Completions lists the per-day completion values in order.
func (r *Report) Completions() []int {
	values := make([]int, len(r.Days))
	for i, d := range r.Days {
		values[i] = d.Completion
	}
	return values
}
