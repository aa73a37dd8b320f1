// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/harmony-ai/audiokit/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToneBackend_Shape(t *testing.T) {
	t.Parallel()

	b := NewToneBackend(24000)
	buf, err := b.Synthesize(context.Background(), Request{Prompt: "x", Duration: 2 * time.Second})
	require.NoError(t, err)

	assert.Equal(t, 24000, buf.SampleRate)
	assert.Equal(t, 1, buf.NumChannels())
	assert.Equal(t, 48000, buf.Len())
	assert.Equal(t, 2*time.Second, buf.Duration())
	require.NoError(t, buf.Validate())
}

func TestToneBackend_Envelope(t *testing.T) {
	t.Parallel()

	buf, err := NewToneBackend(8000).Synthesize(context.Background(), Request{Duration: time.Second})
	require.NoError(t, err)

	s := buf.Channels[0]
	assert.Zero(t, s[0], "fade in starts at silence")
	assert.Zero(t, s[len(s)-1], "fade out ends at silence")

	var peak float32
	for _, v := range s {
		peak = max(peak, float32(math.Abs(float64(v))))
	}
	assert.InDelta(t, DefaultToneGain, peak, 0.01)
	assert.LessOrEqual(t, peak, float32(DefaultToneGain))
}

func TestToneBackend_Frequency(t *testing.T) {
	t.Parallel()

	// 100 Hz at 8 kHz: one period is 80 frames, so the sine crosses zero
	// upwards 100 times a second.
	b := &ToneBackend{SampleRate: 8000, Freq: 100, Gain: 1}
	buf, err := b.Synthesize(context.Background(), Request{Duration: time.Second})
	require.NoError(t, err)

	crossings := 0
	s := buf.Channels[0]
	for i := 1; i < len(s); i++ {
		if s[i-1] < 0 && s[i] >= 0 {
			crossings++
		}
	}
	assert.InDelta(t, 99, crossings, 1)
}

func TestToneBackend_ZeroDuration(t *testing.T) {
	t.Parallel()

	buf, err := NewToneBackend(24000).Synthesize(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 0, buf.Len())
	assert.NoError(t, buf.Validate())
}

func TestToneBackend_Errors(t *testing.T) {
	t.Parallel()

	_, err := NewToneBackend(0).Synthesize(context.Background(), Request{Duration: time.Second})
	assert.ErrorIs(t, err, audio.ErrInvalidSampleRate)

	_, err = NewToneBackend(24000).Synthesize(context.Background(), Request{Duration: -time.Second})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = NewToneBackend(4_000_000_000).Synthesize(context.Background(), Request{Prompt: "x", Duration: 3 * time.Second})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = NewToneBackend(3_000_000_000).Synthesize(context.Background(), Request{Duration: 3 * time.Second})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = NewToneBackend(math.MaxUint32).Synthesize(context.Background(), Request{Duration: MaxDuration})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewToneBackend(24000).Synthesize(ctx, Request{Duration: time.Second})
	assert.ErrorIs(t, err, context.Canceled)
}
