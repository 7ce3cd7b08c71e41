package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/comeback/internal/audio"
	"github.com/desertthunder/comeback/internal/shared"
	"github.com/urfave/cli/v3"
)

// calmPoll is how often the terminal session redraws, and how often it checks for the tone release.
const calmPoll = time.Second

// CalmStart runs one breathing session, printing the countdown until it completes or ctx is cancelled.
func (r *Runner) CalmStart(ctx context.Context, cmd *cli.Command) error {
	timer := r.calmTimer()
	timer.Start(ctx)
	r.writePlainHeader("60 Second Calm")

	ticker := time.NewTicker(calmPoll)
	defer ticker.Stop()

	printState := func(s audio.CalmState) {
		r.writePlain("%2ds  %-7s %s\n", s.Remaining, s.Phase, s.Cue)
	}
	printState(timer.State())

	for timer.Running() {
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-ticker.C:
			if s := timer.State(); s.Running {
				printState(s)
			}
		}
	}

	// Let the tone fade out before the process exits.
	for i := 0; timer.AudioActive() && i < 10; i++ {
		time.Sleep(calmPoll / 10)
	}

	state := timer.State()
	if state.Remaining > 0 {
		return r.writePlainln("Stopped with %ds left.", state.Remaining)
	}
	return r.writePlainln("✓ Session complete. Well done.")
}

// CalmHistory lists recent breathing sessions, newest first.
func (r *Runner) CalmHistory(ctx context.Context, cmd *cli.Command) error {
	sessions := r.sessions()
	if sessions == nil {
		return fmt.Errorf("%w: database not available", shared.ErrServiceUnavailable)
	}

	list, err := sessions.List(int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(list, cmd.Bool("pretty"))
	}

	if len(list) == 0 {
		return r.writePlain("No calm sessions yet. Run 'comeback calm start'.\n")
	}
	for _, s := range list {
		status := "stopped"
		if s.Completed {
			status = "completed"
		}
		r.writePlain("%s  %s  %2ds  %s\n", s.Day, s.StartedAt.Format("15:04"), s.Seconds, status)
	}
	return nil
}
