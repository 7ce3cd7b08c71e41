package audio

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/comeback/internal/models"
	"github.com/desertthunder/comeback/internal/shared"
	"golang.org/x/time/rate"
)

const (
	// CalmSeconds is the length of a breathing session.
	CalmSeconds = 60
	// CalmFrequency is the breathing tone.
	CalmFrequency = 432.0
	// CalmToneGain is the tone's level once faded in.
	CalmToneGain = 0.05
	// DefaultFrameRate paces the breathing animation.
	DefaultFrameRate = 30

	fadeIn       = time.Second
	fadeOut      = 500 * time.Millisecond
	releaseDelay = 600 * time.Millisecond
)

// CalmState is a snapshot of the breathing session.
type CalmState struct {
	Running   bool    `json:"running"`
	Remaining int     `json:"remaining"`
	Elapsed   float64 `json:"elapsed"`
	Phase     string  `json:"phase"`
	Cue       string  `json:"cue"`
	Scale     float64 `json:"scale"`
}

// CalmSummary describes a finished session.
type CalmSummary struct {
	ID        string
	StartedAt time.Time
	EndedAt   time.Time
	Seconds   int
	Completed bool
}

// Session converts s for storage.
func (s CalmSummary) Session() *models.CalmSession {
	return &models.CalmSession{
		ID:        s.ID,
		Day:       shared.DayKey(s.StartedAt),
		StartedAt: s.StartedAt,
		EndedAt:   s.EndedAt,
		Seconds:   s.Seconds,
		Completed: s.Completed,
	}
}

// CalmOption configures a [CalmTimer].
type CalmOption func(*CalmTimer)

func WithClock(c Clock) CalmOption {
	return func(t *CalmTimer) { t.clock = c }
}

func WithFrameRate(fps int) CalmOption {
	return func(t *CalmTimer) {
		if fps > 0 {
			t.frameRate = fps
		}
	}
}

func WithCalmLogger(l *log.Logger) CalmOption {
	return func(t *CalmTimer) { t.logger = l }
}

// WithOnStop registers fn to receive the summary of every session when it ends.
// fn runs without the timer's lock held.
func WithOnStop(fn func(CalmSummary)) CalmOption {
	return func(t *CalmTimer) { t.onStop = fn }
}

// CalmTimer runs the one minute breathing session: a 1 Hz countdown, a breathing
// animation clock and a 432 Hz tone that fades in on start and out on stop.
//
// Audio is optional. When the tone cannot be opened the session runs silently.
type CalmTimer struct {
	mu        sync.Mutex
	clock     Clock
	out       Output
	logger    *log.Logger
	frameRate int
	onStop    func(CalmSummary)

	running    bool
	remaining  int
	elapsed    float64
	startedAt  time.Time
	id         string
	generation uint64
	cancel     context.CancelFunc
	tone       *AudioSession
	releasing  int
}

// NewCalmTimer creates an idle [CalmTimer] playing its tone on out, which may be nil.
func NewCalmTimer(out Output, opts ...CalmOption) *CalmTimer {
	t := &CalmTimer{
		clock:     SystemClock(),
		out:       out,
		logger:    log.Default(),
		frameRate: DefaultFrameRate,
		remaining: CalmSeconds,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins a session. It returns false and changes nothing when one is already running.
// The session ends on its own after [CalmSeconds], on Stop, or when ctx is cancelled.
func (t *CalmTimer) Start(ctx context.Context) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return false
	}

	loopCtx, cancel := context.WithCancel(ctx)
	t.generation++
	gen := t.generation
	t.cancel = cancel
	t.running = true
	t.remaining = CalmSeconds
	t.elapsed = 0
	t.startedAt = t.clock.Now()
	t.id = shared.GenerateID()
	t.tone = t.openTone()

	ticker := t.clock.NewTicker(time.Second)
	go t.countdown(loopCtx, gen, ticker)
	go t.animate(loopCtx, gen)

	t.logger.Debug("calm session started", "id", t.id, "tone", t.tone != nil)
	return true
}

// openTone starts the fade-in, or returns nil when audio is unavailable.
func (t *CalmTimer) openTone() *AudioSession {
	tone, err := NewSessionBuilder(t.out).
		Master(MinGain).
		Tone(CalmFrequency, Sine, 1).
		Build()
	if err != nil {
		t.logger.Debug("calm tone unavailable", "error", err)
		return nil
	}
	tone.RampVolume(CalmToneGain, fadeIn)
	return tone
}

func (t *CalmTimer) countdown(ctx context.Context, gen uint64, ticker Ticker) {
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			t.expire(gen)
			return
		case <-ticker.C():
			t.tick(gen)
		}
	}
}

func (t *CalmTimer) animate(ctx context.Context, gen uint64) {
	limiter := rate.NewLimiter(rate.Limit(t.frameRate), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		if !t.frame(gen) {
			return
		}
	}
}

// expire stops a session whose parent context ended.
func (t *CalmTimer) expire(gen uint64) {
	t.mu.Lock()
	if !t.running || t.generation != gen {
		t.mu.Unlock()
		return
	}
	summary := t.stopLocked(false)
	t.mu.Unlock()
	t.notify(summary)
}

// Tick advances the countdown by one second, stopping the session when it reaches zero.
func (t *CalmTimer) Tick() {
	t.mu.Lock()
	gen := t.generation
	t.mu.Unlock()
	t.tick(gen)
}

func (t *CalmTimer) tick(gen uint64) {
	t.mu.Lock()
	if !t.running || t.generation != gen {
		t.mu.Unlock()
		return
	}

	t.remaining--
	if t.remaining > 0 {
		t.mu.Unlock()
		return
	}

	t.remaining = 0
	summary := t.stopLocked(true)
	t.mu.Unlock()
	t.notify(summary)
}

// frame samples the clock for the breathing animation and reports whether the session is still live.
func (t *CalmTimer) frame(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running || t.generation != gen {
		return false
	}
	t.elapsed = t.clock.Now().Sub(t.startedAt).Seconds()
	return true
}

// Stop ends a running session early. It does nothing when idle.
func (t *CalmTimer) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	summary := t.stopLocked(false)
	t.mu.Unlock()
	t.notify(summary)
}

// stopLocked halts the loops, fades the tone out and schedules its release. Callers hold t.mu.
func (t *CalmTimer) stopLocked(completed bool) CalmSummary {
	t.cancel()
	t.cancel = nil
	t.generation++
	t.running = false

	if tone := t.tone; tone != nil {
		t.tone = nil
		t.releasing++
		tone.RampVolume(MinGain, fadeOut)
		t.clock.AfterFunc(releaseDelay, func() {
			if err := tone.Close(); err != nil {
				t.logger.Warn("failed to release calm tone", "error", err)
			}
			t.mu.Lock()
			t.releasing--
			t.mu.Unlock()
		})
	}

	ended := t.clock.Now()
	seconds := CalmSeconds - t.remaining
	summary := CalmSummary{
		ID:        t.id,
		StartedAt: t.startedAt,
		EndedAt:   ended,
		Seconds:   seconds,
		Completed: completed,
	}
	t.logger.Debug("calm session stopped", "id", t.id, "seconds", seconds, "completed", completed)
	return summary
}

func (t *CalmTimer) notify(summary CalmSummary) {
	if t.onStop != nil {
		t.onStop(summary)
	}
}

// State returns the current snapshot.
func (t *CalmTimer) State() CalmState {
	t.mu.Lock()
	defer t.mu.Unlock()

	phase, _ := models.PhaseAt(t.elapsed)
	return CalmState{
		Running:   t.running,
		Remaining: t.remaining,
		Elapsed:   t.elapsed,
		Phase:     phase.String(),
		Cue:       phase.Cue(),
		Scale:     models.ScaleAt(t.elapsed),
	}
}

// Running reports whether a session is in progress.
func (t *CalmTimer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// AudioActive reports whether any tone is still open, including one fading out.
func (t *CalmTimer) AudioActive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tone != nil || t.releasing > 0
}
