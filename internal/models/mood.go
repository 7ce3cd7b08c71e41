package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/comeback/internal/shared"
)

// Mood is the label chosen in the mood meter and the music zone.
type Mood string

const (
	MoodCalm     Mood = "Calm"
	MoodTired    Mood = "Tired"
	MoodStressed Mood = "Stressed"
	MoodHopeful  Mood = "Hopeful"
	MoodFocused  Mood = "Focused"
)

// DefaultFrequency is used for moods missing from the frequency table.
const DefaultFrequency = 480.0

// Moods lists every mood in display order.
var Moods = []Mood{MoodCalm, MoodTired, MoodStressed, MoodHopeful, MoodFocused}

var moodFrequencies = map[Mood]float64{
	MoodCalm:     432,
	MoodTired:    444,
	MoodStressed: 396,
	MoodHopeful:  528,
	MoodFocused:  480,
}

var moodPlaylists = map[Mood][]string{
	MoodCalm:     {"Calm Focus (Lo-Fi)", "Soft Piano", "Rain + Keys"},
	MoodTired:    {"Gentle Wake-Up", "Lo-Fi Beats", "Uplift Acoustic"},
	MoodStressed: {"Deep Breath Waves", "432Hz Pad", "Forest Ambience"},
	MoodHopeful:  {"Light Strings", "Sunny Afternoon", "Hope Piano"},
	MoodFocused:  {"Alpha Focus", "Coding Lo-Fi", "Minimal Synth"},
}

// ParseMood matches s against the known moods, ignoring case and surrounding space.
func ParseMood(s string) (Mood, error) {
	s = strings.TrimSpace(s)
	for _, m := range Moods {
		if strings.EqualFold(string(m), s) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown mood %q", shared.ErrInvalidInput, s)
}

// Valid reports whether m is one of [Moods].
func (m Mood) Valid() bool {
	_, ok := moodFrequencies[m]
	return ok
}

func (m Mood) String() string { return string(m) }

// BaseFrequency returns the synth root frequency in Hz for m.
func BaseFrequency(m Mood) float64 {
	if f, ok := moodFrequencies[m]; ok {
		return f
	}
	return DefaultFrequency
}

// Playlist returns the suggestion labels for m, or nil for an unknown mood.
func Playlist(m Mood) []string {
	labels := moodPlaylists[m]
	if labels == nil {
		return nil
	}
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}

// NextMood cycles through [Moods]; an unknown mood starts from the first.
func NextMood(m Mood, step int) Mood {
	idx := -1
	for i, candidate := range Moods {
		if candidate == m {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Moods[0]
	}
	n := len(Moods)
	return Moods[((idx+step)%n+n)%n]
}
