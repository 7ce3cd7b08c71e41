package models

import "time"

// Quotes rotate daily on the dashboard header.
var Quotes = []string{
	"You paused, you did not finish. Every day is a fresh start.",
	"A little progress today is big confidence tomorrow.",
	"Sixty seconds of calm, a whole day of clarity.",
	"Every fall sets up a bigger comeback.",
	"Slow is smooth. Smooth becomes fast.",
}

// QuoteFor picks the quote for day by day of month.
func QuoteFor(day time.Time) string {
	return Quotes[day.Day()%len(Quotes)]
}

// ProgramPhase is one stage of the recovery plan shown in the phase navigator.
type ProgramPhase struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Short   string   `json:"short"`
	Message string   `json:"message"`
	Bullets []string `json:"bullets"`
}

// Phases is the three-stage plan.
var Phases = []ProgramPhase{
	{
		Key:     "phase1",
		Title:   "Phase 1: Control & Reset (21 Days)",
		Short:   "Phase 1",
		Message: "You are not broken, you were on pause. Restart gently.",
		Bullets: []string{
			"Alcohol-free tracker: note the clean streak every day",
			"Sleep planner: set a bedtime and a wake-up goal",
			"Emotional journal: what made you smile today?",
			"Calm corner: 5 minutes of music and breathing",
		},
	},
	{
		Key:     "phase2",
		Title:   "Phase 2: Rebuild Energy & Relations",
		Short:   "Phase 2",
		Message: "Don't lose the people who matter. Stay calm, it will work out.",
		Bullets: []string{
			"15-minute home workout or stretch",
			"Simple healthy meal ideas",
			"Relationship reconnect: message the people who matter",
			"Mind detox: read about anger, ego and patience",
		},
	},
	{
		Key:     "phase3",
		Title:   "Phase 3: Rise & Success",
		Short:   "Phase 3",
		Message: "Discipline + Faith = Comeback. You can do this.",
		Bullets: []string{
			"Goal tracker: career, health, mindset",
			"Work mastery tips and drive-time podcasts",
			"Financial reset: track expenses and savings",
			"Daily affirmations and reflection",
		},
	},
}

// PhaseByKey looks up a program phase, falling back to the first.
func PhaseByKey(key string) ProgramPhase {
	for _, p := range Phases {
		if p.Key == key {
			return p
		}
	}
	return Phases[0]
}
