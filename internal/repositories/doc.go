// Package repositories implements SQLite persistence for the tracker.
//
// Key Implementations:
//   - [DayRepository] : per-day tracker state keyed by calendar date, one column per tracker
//   - [PreferenceRepository] : JSON values keyed by string (synth volume, selected mood)
//   - [CalmSessionRepository] : log of breathing sessions with sequence ordering
//
// The [Tracker] adapter sits in front of a [DayStore] and never surfaces storage failures:
// reads fall back to the last known or default record, and failed writes are logged while the
// in-memory state keeps the change.
//
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
