// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/harmony-ai/audiokit/audio"
)

const (
	DefaultSampleRate = 24000
	DefaultToneFreq   = 440.0
	DefaultToneGain   = 0.5

	toneFade = 10 * time.Millisecond

	// frames rendered between ctx checks
	toneBlock = 4096

	// mono PCM16 frames that fit in a 32-bit data chunk
	maxToneFrames = (math.MaxUint32 - 36) / 2
)

// ToneBackend is a stand-in for a real model: it renders a sine at Freq
// with gain Gain for the requested duration, ignoring the prompt. Short
// linear fades at both ends keep the clip click-free.
type ToneBackend struct {
	SampleRate int
	Freq       float64
	Gain       float32
}

func NewToneBackend(sampleRate int) *ToneBackend {
	return &ToneBackend{SampleRate: sampleRate, Freq: DefaultToneFreq, Gain: DefaultToneGain}
}

func (t *ToneBackend) Synthesize(ctx context.Context, req Request) (*audio.Buffer, error) {
	if t.SampleRate <= 0 {
		return nil, fmt.Errorf("tone: %w: %d", audio.ErrInvalidSampleRate, t.SampleRate)
	}

	if req.Duration < 0 {
		return nil, fmt.Errorf("tone: %w: duration %v", ErrInvalidRequest, req.Duration)
	}
	if req.Duration > 0 && int64(t.SampleRate) > math.MaxInt64/int64(req.Duration) {
		return nil, fmt.Errorf("tone: %w: %v at %d Hz is too long", ErrInvalidRequest, req.Duration, t.SampleRate)
	}

	frames := int(req.Duration * time.Duration(t.SampleRate) / time.Second)
	if frames > maxToneFrames {
		return nil, fmt.Errorf("tone: %w: %d frames do not fit in a WAV file", ErrInvalidRequest, frames)
	}
	fade := min(int(toneFade*time.Duration(t.SampleRate)/time.Second), frames/2)

	buf := audio.NewBuffer(t.SampleRate, 1, frames)
	out := buf.Channels[0]
	w := 2 * math.Pi * t.Freq / float64(t.SampleRate)

	for start := 0; start < frames; start += toneBlock {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("tone: %w", err)
		}

		for i := start; i < min(start+toneBlock, frames); i++ {
			env := float32(1)
			switch {
			case i < fade:
				env = float32(i) / float32(fade)
			case i >= frames-fade:
				env = float32(frames-1-i) / float32(fade)
			}
			out[i] = t.Gain * env * float32(math.Sin(w*float64(i)))
		}
	}

	return buf, nil
}
