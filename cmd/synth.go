package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/comeback/internal/audio"
	"github.com/desertthunder/comeback/internal/models"
	"github.com/desertthunder/comeback/internal/repositories"
	"github.com/desertthunder/comeback/internal/shared"
	"github.com/urfave/cli/v3"
)

// SynthPlay plays the ambient voice until ctx is cancelled or --duration elapses.
func (r *Runner) SynthPlay(ctx context.Context, cmd *cli.Command) error {
	synth := r.synth()

	mood := synth.Mood()
	if name := cmd.StringArg("mood"); name != "" {
		m, err := models.ParseMood(name)
		if err != nil {
			return fmt.Errorf("%w: %q is not one of %s", shared.ErrInvalidArgument, name, moodNames())
		}
		mood = m
	}
	if v := cmd.Float("volume"); v >= 0 {
		synth.SetVolume(v)
	}

	if err := synth.Start(mood); err != nil {
		return err
	}
	defer synth.Stop()

	r.savePreference(repositories.PrefSynthMood, mood)
	r.savePreference(repositories.PrefSynthVolume, synth.Volume())

	r.writePlain("♪ %s at %.0f Hz, volume %.2f\n", mood, synth.Frequency(), synth.Volume())
	r.writePlain("Try: %s\n", strings.Join(models.Playlist(mood), ", "))

	waitFor(ctx, cmd.Duration("duration"))

	r.writePlain("Stopped.\n")
	return nil
}

// SynthVolume saves the synth volume, clamped to the synth's range.
func (r *Runner) SynthVolume(ctx context.Context, cmd *cli.Command) error {
	raw := strings.TrimSpace(cmd.StringArg("volume"))
	if raw == "" {
		return fmt.Errorf("%w: volume", shared.ErrMissingArgument)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("%w: volume %q", shared.ErrInvalidArgument, raw)
	}

	// A synth without an output only clamps.
	v = audio.NewSynth(nil, r.logger).SetVolume(v)
	if prefs := r.preferences(); prefs == nil {
		return fmt.Errorf("%w: database not available", shared.ErrServiceUnavailable)
	}
	r.savePreference(repositories.PrefSynthVolume, v)
	return r.writePlain("✓ Synth volume %.2f\n", v)
}

func (r *Runner) savePreference(key string, v any) {
	prefs := r.preferences()
	if prefs == nil {
		return
	}
	if err := prefs.Set(key, v); err != nil {
		r.logger.Warn("failed to save preference", "key", key, "error", err)
	}
}

// waitFor blocks until ctx is done or d elapses; d <= 0 waits for ctx only.
func waitFor(ctx context.Context, d time.Duration) {
	if d <= 0 {
		<-ctx.Done()
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
