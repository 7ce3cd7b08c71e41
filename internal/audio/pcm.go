package audio

import "math"

// Waveform selects the shape of a tone generator.
type Waveform int

const (
	Sine Waveform = iota
	Triangle
)

func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Triangle:
		return "triangle"
	default:
		return "unknown"
	}
}

// generator produces mono samples in [-1, 1].
type generator interface {
	next() float64
}

type oscillator struct {
	wave  Waveform
	phase float64
	step  float64
}

func newOscillator(wave Waveform, freq float64, sampleRate int) *oscillator {
	return &oscillator{wave: wave, step: 2 * math.Pi * freq / float64(sampleRate)}
}

func (o *oscillator) next() float64 {
	var v float64
	switch o.wave {
	case Triangle:
		v = (2 / math.Pi) * math.Asin(math.Sin(o.phase))
	default:
		v = math.Sin(o.phase)
	}
	o.phase += o.step
	if o.phase >= 2*math.Pi {
		o.phase -= 2 * math.Pi
	}
	return v
}

// noiseLoop replays a fixed buffer of uniform noise.
type noiseLoop struct {
	buf []float64
	pos int
}

// newNoiseLoop fills n samples uniformly in [-amp, amp) from seed.
func newNoiseLoop(n int, amp float64, seed uint64) *noiseLoop {
	if n < 1 {
		n = 1
	}
	buf := make([]float64, n)
	for i := range buf {
		seed = seed*6364136223846793005 + 1442695040888963407
		r := float64(int64(seed>>33)-int64(1<<30)) / float64(1<<30)
		buf[i] = r * amp
	}
	return &noiseLoop{buf: buf}
}

func (n *noiseLoop) next() float64 {
	v := n.buf[n.pos]
	n.pos++
	if n.pos == len(n.buf) {
		n.pos = 0
	}
	return v
}

// putStereoF32 writes sample as float32 LE to both channels of frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

func clampF(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return min(max(v, lo), hi)
}
