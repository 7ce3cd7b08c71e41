package audio

import (
	"fmt"
	"io"
	"time"

	"github.com/desertthunder/comeback/internal/shared"
	"github.com/hajimehoshi/oto/v2"
)

const (
	// DefaultSampleRate is used when no rate is configured.
	DefaultSampleRate = 44100
	// ChannelCount is fixed at stereo.
	ChannelCount = 2
	// frameBytes is one stereo float32 frame.
	frameBytes = ChannelCount * 4
)

// Player plays a PCM stream.
type Player interface {
	Play()
	SetVolume(volume float64)
	IsPlaying() bool
	Close() error
}

// Output opens players on an audio device.
type Output interface {
	NewPlayer(r io.Reader) (Player, error)
	SampleRate() int
}

// OtoOutput is an [Output] backed by an oto context.
type OtoOutput struct {
	ctx        *oto.Context
	sampleRate int
}

// NewOtoOutput opens the system audio device, waiting up to timeout for it to become ready.
func NewOtoOutput(sampleRate int, timeout time.Duration) (*OtoOutput, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	ctx, ready, err := oto.NewContext(sampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAudioUnavailable, err)
	}

	select {
	case <-ready:
	case <-time.After(timeout):
		return nil, fmt.Errorf("%w: device not ready after %s", shared.ErrAudioUnavailable, timeout)
	}

	return &OtoOutput{ctx: ctx, sampleRate: sampleRate}, nil
}

// NewPlayer implements [Output].
func (o *OtoOutput) NewPlayer(r io.Reader) (Player, error) {
	if err := o.ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAudioUnavailable, err)
	}
	return o.ctx.NewPlayer(r), nil
}

// SampleRate implements [Output].
func (o *OtoOutput) SampleRate() int { return o.sampleRate }
