// Package models defines the tracker's domain types and the static content shown alongside them.
//
// The package contains three categories of types:
//
// 1. Tracker state: one record per calendar day
//   - [DailyRecord] : mood, water count, meal and routine checklists keyed by day
//   - [Checklist] : named items with their checked state
//   - [Mood] : the mood meter label, which also picks the synth frequency and playlist
//
// 2. Derived and logged values
//   - [BreathPhase] : the box-breathing phase and guide scale at an elapsed time
//   - [CalmSession] : a finished breathing session
//   - [Report] : per-day completion and the average over a window
//
// 3. Static content: [Quotes] and the three [Phases] of the program
//
// [PreferenceStore] is the storage contract for settings kept between runs.
package models
