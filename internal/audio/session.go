package audio

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/desertthunder/comeback/internal/shared"
)

// MinGain is the floor for exponential ramps, which cannot reach zero.
const MinGain = 0.0001

type voiceParams struct {
	noise bool
	wave  Waveform
	freq  float64
	amp   float64
	seed  uint64
	gain  float64
}

// SessionBuilder collects the generators of an [AudioSession].
// Nothing touches the output until [SessionBuilder.Build].
type SessionBuilder struct {
	out    Output
	master float64
	voices []voiceParams
	err    error
}

// NewSessionBuilder starts a session on out with a master gain of 1.
func NewSessionBuilder(out Output) *SessionBuilder {
	return &SessionBuilder{out: out, master: 1}
}

// Master sets the starting master gain.
func (b *SessionBuilder) Master(gain float64) *SessionBuilder {
	b.master = max(gain, 0)
	return b
}

// Tone adds a periodic generator at freq Hz mixed at gain.
func (b *SessionBuilder) Tone(freq float64, wave Waveform, gain float64) *SessionBuilder {
	if freq <= 0 || math.IsNaN(freq) {
		b.err = fmt.Errorf("%w: tone frequency %v", shared.ErrInvalidInput, freq)
		return b
	}
	b.voices = append(b.voices, voiceParams{wave: wave, freq: freq, gain: gain})
	return b
}

// Noise adds a looping noise buffer of [NoiseLoopSeconds] with samples in [-amp, amp], mixed at gain.
func (b *SessionBuilder) Noise(amp, gain float64, seed uint64) *SessionBuilder {
	b.voices = append(b.voices, voiceParams{noise: true, amp: amp, seed: seed, gain: gain})
	return b
}

// Build allocates every generator and starts playback.
// On error nothing is left open.
func (b *SessionBuilder) Build() (*AudioSession, error) {
	if b.out == nil {
		return nil, fmt.Errorf("%w: no output device", shared.ErrAudioUnavailable)
	}
	if b.err != nil {
		return nil, b.err
	}
	if len(b.voices) == 0 {
		return nil, fmt.Errorf("%w: session has no generators", shared.ErrInvalidInput)
	}

	rate := b.out.SampleRate()
	if rate <= 0 {
		rate = DefaultSampleRate
	}

	m := &mixer{rate: rate, gain: gainRamp{current: b.master, target: b.master}}
	for _, p := range b.voices {
		var g generator
		if p.noise {
			g = newNoiseLoop(int(NoiseLoopSeconds*float64(rate)), p.amp, p.seed)
		} else {
			g = newOscillator(p.wave, p.freq, rate)
		}
		m.voices = append(m.voices, voice{gen: g, gain: p.gain})
	}

	player, err := b.out.NewPlayer(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAudioUnavailable, err)
	}
	player.SetVolume(1)
	player.Play()

	return &AudioSession{player: player, mix: m}, nil
}

// NoiseLoopSeconds is the length of the looped noise buffer.
const NoiseLoopSeconds = 2.0

// AudioSession is a playing set of generators behind one master gain.
type AudioSession struct {
	player Player
	mix    *mixer

	once     sync.Once
	closeErr error
}

// SetVolume jumps the master gain to v.
func (s *AudioSession) SetVolume(v float64) {
	s.mix.setGain(max(v, 0))
}

// RampVolume moves the master gain exponentially to v over d.
func (s *AudioSession) RampVolume(v float64, d time.Duration) {
	s.mix.rampGain(v, d)
}

// Volume is the target master gain.
func (s *AudioSession) Volume() float64 {
	s.mix.mu.Lock()
	defer s.mix.mu.Unlock()
	return s.mix.gain.target
}

// Generators is the number of live generators, zero once closed.
func (s *AudioSession) Generators() int {
	s.mix.mu.Lock()
	defer s.mix.mu.Unlock()
	return len(s.mix.voices)
}

// Close stops every generator and the player together. Safe to call more than once.
func (s *AudioSession) Close() error {
	s.once.Do(func() {
		s.mix.stop()
		s.closeErr = s.player.Close()
	})
	return s.closeErr
}

type voice struct {
	gen  generator
	gain float64
}

// gainRamp steps current toward target, exponentially, over remaining samples.
type gainRamp struct {
	current   float64
	target    float64
	factor    float64
	remaining int
}

func (g *gainRamp) next() float64 {
	if g.remaining > 0 {
		g.current *= g.factor
		g.remaining--
		if g.remaining == 0 {
			g.current = g.target
		}
	}
	return g.current
}

// mixer is the [io.Reader] handed to the player.
type mixer struct {
	mu      sync.Mutex
	rate    int
	voices  []voice
	gain    gainRamp
	stopped bool
}

func (m *mixer) setGain(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gain = gainRamp{current: v, target: v}
}

func (m *mixer) rampGain(v float64, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	from := max(m.gain.current, MinGain)
	to := max(v, MinGain)
	n := int(d.Seconds() * float64(m.rate))
	if n <= 0 {
		m.gain = gainRamp{current: to, target: to}
		return
	}
	m.gain = gainRamp{
		current:   from,
		target:    to,
		factor:    math.Pow(to/from, 1/float64(n)),
		remaining: n,
	}
}

func (m *mixer) stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	m.voices = nil
}

// Read renders whole stereo frames into p.
func (m *mixer) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped {
		return 0, io.EOF
	}

	frames := len(p) / frameBytes
	for i := range frames {
		var sum float64
		for _, v := range m.voices {
			sum += v.gen.next() * v.gain
		}
		putStereoF32(p, i, clampF(sum*m.gain.next(), -1, 1))
	}
	return frames * frameBytes, nil
}
