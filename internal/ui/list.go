package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/comeback/internal/models"
)

var (
	_ list.Item = moodItem{}
	_ list.Item = phaseItem{}
)

// moodItem wraps [models.Mood] to implement [list.Item].
type moodItem struct {
	mood models.Mood
}

func (i moodItem) FilterValue() string { return i.mood.String() }
func (i moodItem) Title() string       { return i.mood.String() }
func (i moodItem) Description() string {
	return fmt.Sprintf("%.0f Hz • %s", models.BaseFrequency(i.mood), strings.Join(models.Playlist(i.mood), ", "))
}

// phaseItem wraps [models.ProgramPhase] to implement [list.Item].
type phaseItem struct {
	phase models.ProgramPhase
}

func (i phaseItem) FilterValue() string { return i.phase.Title }
func (i phaseItem) Title() string       { return i.phase.Title }
func (i phaseItem) Description() string { return i.phase.Message }

func newMoodList() list.Model {
	items := make([]list.Item, len(models.Moods))
	for i, m := range models.Moods {
		items[i] = moodItem{mood: m}
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Music Mood Zone"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	return l
}

func newPhaseList() list.Model {
	items := make([]list.Item, len(models.Phases))
	for i, p := range models.Phases {
		items[i] = phaseItem{phase: p}
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Program Phases"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	return l
}
