package audio

import (
	"context"
	"testing"
	"time"

	"github.com/desertthunder/comeback/internal/shared"
)

func newTestTimer(out Output) (*CalmTimer, *fakeClock, chan CalmSummary) {
	clock := newFakeClock()
	summaries := make(chan CalmSummary, 4)
	timer := NewCalmTimer(out,
		WithClock(clock),
		WithCalmLogger(shared.NewLogger(nil)),
		WithOnStop(func(s CalmSummary) { summaries <- s }),
	)
	return timer, clock, summaries
}

func TestCalmTimer(t *testing.T) {
	t.Run("start is idempotent", func(t *testing.T) {
		timer, _, _ := newTestTimer(newFakeOutput())
		defer timer.Stop()

		if !timer.Start(context.Background()) {
			t.Fatal("expected first start to begin a session")
		}
		timer.Tick()
		timer.Tick()

		if timer.Start(context.Background()) {
			t.Error("expected second start to be a no-op")
		}
		if got := timer.State().Remaining; got != 58 {
			t.Errorf("expected 58 remaining, got %d", got)
		}
	})

	t.Run("sixty ticks complete the session", func(t *testing.T) {
		out := newFakeOutput()
		timer, clock, summaries := newTestTimer(out)
		timer.Start(context.Background())

		if !timer.AudioActive() {
			t.Fatal("expected the tone to be playing")
		}

		for range CalmSeconds {
			timer.Tick()
		}

		state := timer.State()
		if state.Running {
			t.Error("expected session to stop at zero")
		}
		if state.Remaining != 0 {
			t.Errorf("expected 0 remaining, got %d", state.Remaining)
		}

		if !timer.AudioActive() {
			t.Error("expected the tone to be fading out")
		}
		clock.Advance(releaseDelay)
		if timer.AudioActive() {
			t.Error("expected the tone released after the fade")
		}
		if out.Open() != 0 {
			t.Errorf("expected no open players, got %d", out.Open())
		}

		select {
		case s := <-summaries:
			if !s.Completed || s.Seconds != CalmSeconds || s.ID == "" {
				t.Errorf("unexpected summary: %+v", s)
			}
		default:
			t.Error("expected a summary")
		}
	})

	t.Run("ticks after completion are ignored", func(t *testing.T) {
		timer, _, summaries := newTestTimer(newFakeOutput())
		timer.Start(context.Background())
		for range CalmSeconds + 5 {
			timer.Tick()
		}

		if got := timer.State().Remaining; got != 0 {
			t.Errorf("expected 0 remaining, got %d", got)
		}
		if len(summaries) != 1 {
			t.Errorf("expected exactly 1 summary, got %d", len(summaries))
		}
	})

	t.Run("manual stop", func(t *testing.T) {
		out := newFakeOutput()
		timer, clock, summaries := newTestTimer(out)
		timer.Start(context.Background())
		for range 5 {
			timer.Tick()
		}

		timer.Stop()
		timer.Stop()

		state := timer.State()
		if state.Running || state.Remaining != 55 {
			t.Errorf("unexpected state after stop: %+v", state)
		}

		s := <-summaries
		if s.Completed || s.Seconds != 5 {
			t.Errorf("unexpected summary: %+v", s)
		}
		if len(summaries) != 0 {
			t.Error("second stop should not report again")
		}

		clock.Advance(releaseDelay / 2)
		if out.Open() != 1 {
			t.Error("tone should still be fading")
		}
		clock.Advance(releaseDelay)
		if out.Open() != 0 {
			t.Error("tone should be released")
		}
	})

	t.Run("restart resets the countdown", func(t *testing.T) {
		timer, clock, _ := newTestTimer(newFakeOutput())
		timer.Start(context.Background())
		timer.Tick()
		timer.Stop()
		clock.Advance(releaseDelay)

		timer.Start(context.Background())
		defer timer.Stop()
		if got := timer.State().Remaining; got != CalmSeconds {
			t.Errorf("expected %d remaining, got %d", CalmSeconds, got)
		}
	})

	t.Run("animation follows the clock", func(t *testing.T) {
		timer, clock, _ := newTestTimer(nil)
		timer.Start(context.Background())
		defer timer.Stop()

		clock.Advance(2 * time.Second)
		timer.frame(timer.generation)
		if got := timer.State().Scale; !approx(got, 1.15, 1e-9) {
			t.Errorf("expected scale 1.15, got %v", got)
		}

		clock.Advance(3 * time.Second)
		timer.frame(timer.generation)
		state := timer.State()
		if state.Phase != "Hold" || state.Scale != 1.3 {
			t.Errorf("expected holding at 1.3, got %+v", state)
		}
	})

	t.Run("runs without audio", func(t *testing.T) {
		tests := []struct {
			name string
			out  Output
		}{
			{"no output", nil},
			{"failing output", &fakeOutput{rate: 8000, fail: true}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				timer, _, summaries := newTestTimer(tt.out)
				if !timer.Start(context.Background()) {
					t.Fatal("expected session to start")
				}
				if timer.AudioActive() {
					t.Error("expected no tone")
				}
				for range CalmSeconds {
					timer.Tick()
				}
				if timer.Running() {
					t.Error("expected session to complete")
				}
				if s := <-summaries; !s.Completed {
					t.Errorf("expected completed summary, got %+v", s)
				}
			})
		}
	})

	t.Run("cancelled context ends the session", func(t *testing.T) {
		timer, _, summaries := newTestTimer(nil)
		ctx, cancel := context.WithCancel(context.Background())
		timer.Start(ctx)
		cancel()

		select {
		case s := <-summaries:
			if s.Completed {
				t.Error("cancelled session should not be complete")
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for the session to end")
		}
		if timer.Running() {
			t.Error("expected session stopped")
		}
	})

	t.Run("summary converts to a stored session", func(t *testing.T) {
		start := time.Date(2025, time.March, 3, 6, 0, 0, 0, time.Local)
		s := CalmSummary{ID: "abc", StartedAt: start, EndedAt: start.Add(time.Minute), Seconds: 60, Completed: true}
		session := s.Session()
		if session.Day != "2025-03-03" || session.ID != "abc" || !session.Completed {
			t.Errorf("unexpected session: %+v", session)
		}
	})
}
