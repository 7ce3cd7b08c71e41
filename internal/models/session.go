package models

import "time"

// CalmSession is a logged breathing session.
type CalmSession struct {
	ID        string    `json:"id"`
	Sequence  int       `json:"-"`
	Day       string    `json:"day"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
	Seconds   int       `json:"seconds"`
	Completed bool      `json:"completed"`
}
