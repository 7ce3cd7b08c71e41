// Package audio renders the tracker's synthesized sound and drives the calm timer.
//
// Sound is generated procedurally as interleaved stereo float32 PCM and streamed to an [Output].
// [OtoOutput] plays through the system audio device; a nil [Output] means audio is unavailable,
// in which case the synth reports [shared.ErrAudioUnavailable] and the calm timer runs silently.
//
// Key types:
//   - [SessionBuilder] / [AudioSession] : a fixed set of generators summed into a master gain
//   - [Synth] : the ambient mood voice (two tones and a noise loop)
//   - [CalmTimer] : the 60 second breathing session with its fading tone
//   - [Clock] : time source for the calm timer, swapped out in tests
package audio
