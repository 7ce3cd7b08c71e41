package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/comeback/internal/models"
)

const (
	// MaxSynthVolume is the loudest the ambient voice may play.
	MaxSynthVolume = 0.2
	// DefaultSynthVolume is the master gain before any adjustment.
	DefaultSynthVolume = 0.08

	primaryWeight   = 0.4
	secondaryWeight = 0.2
	noiseWeight     = 0.05
	noiseAmplitude  = 0.02
)

// Synth is the ambient mood voice: a sine at the mood's base frequency, a triangle
// an octave below at half the weight, and a quiet noise loop.
//
// The three generators are created and released together through one [AudioSession].
type Synth struct {
	mu      sync.Mutex
	out     Output
	logger  *log.Logger
	mood    models.Mood
	volume  float64
	session *AudioSession
	freq    float64
	seed    func() uint64
}

// NewSynth creates a stopped [Synth] on out. A nil out makes every Start fail with
// [shared.ErrAudioUnavailable].
func NewSynth(out Output, logger *log.Logger) *Synth {
	if logger == nil {
		logger = log.Default()
	}
	return &Synth{
		out:    out,
		logger: logger,
		mood:   models.MoodCalm,
		volume: DefaultSynthVolume,
		seed:   func() uint64 { return uint64(time.Now().UnixNano()) },
	}
}

// HasOutput reports whether s was given an output device.
func (s *Synth) HasOutput() bool {
	return s.out != nil
}

// Start plays mood at the current volume. It does nothing when already playing.
func (s *Synth) Start(mood models.Mood) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		return nil
	}

	freq := models.BaseFrequency(mood)
	session, err := NewSessionBuilder(s.out).
		Master(s.volume).
		Tone(freq, Sine, primaryWeight).
		Tone(freq/2, Triangle, secondaryWeight).
		Noise(noiseAmplitude, noiseWeight, s.seed()).
		Build()
	if err != nil {
		return fmt.Errorf("failed to start synth: %w", err)
	}

	s.mood = mood
	s.freq = freq
	s.session = session
	s.logger.Debug("synth started", "mood", mood, "frequency", freq, "volume", s.volume)
	return nil
}

// Stop releases every generator. It does nothing when already stopped.
func (s *Synth) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return
	}
	if err := s.session.Close(); err != nil {
		s.logger.Warn("failed to close synth player", "error", err)
	}
	s.session = nil
	s.freq = 0
	s.logger.Debug("synth stopped")
}

// SetVolume clamps v to [0, [MaxSynthVolume]], applies it to a playing voice and keeps it
// for the next Start. The stored value is returned.
func (s *Synth) SetVolume(v float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.volume = clampF(v, 0, MaxSynthVolume)
	if s.session != nil {
		s.session.SetVolume(s.volume)
	}
	return s.volume
}

// SetMood changes the selected mood. A playing voice keeps its frequency until restarted.
func (s *Synth) SetMood(m models.Mood) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mood = m
}

func (s *Synth) Mood() models.Mood {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mood
}

func (s *Synth) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

func (s *Synth) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil
}

// ActiveGenerators is the number of live generators.
func (s *Synth) ActiveGenerators() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return 0
	}
	return s.session.Generators()
}

// Frequency is the base frequency of the playing voice, zero when stopped.
func (s *Synth) Frequency() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.freq
}
