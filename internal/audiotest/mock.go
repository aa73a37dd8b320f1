// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds synthetic sources for tests. It satisfies
// audio.Source structurally and does not import it, so the audio package's
// own tests can use it.
package audiotest

import (
	"io"
	"math"
)

// Waveform returns the sample for frame index i on channel c.
type Waveform func(i, c int) float32

// MockSource generates a fixed number of frames from a Waveform.
type MockSource struct {
	rate    int
	chans   int
	frames  int
	pos     int
	wave    Waveform
	failErr error
	failAt  int
	closed  bool
}

// NewMockSource returns a source producing frames frames per channel.
func NewMockSource(rate, channels, frames int, wave Waveform) *MockSource {
	return &MockSource{rate: rate, chans: channels, frames: frames, wave: wave, failAt: -1}
}

// NewSilentSource produces zeros.
func NewSilentSource(rate, channels, frames int) *MockSource {
	return NewConstantSource(rate, channels, frames, 0)
}

// NewConstantSource produces value on every channel.
func NewConstantSource(rate, channels, frames int, value float32) *MockSource {
	return NewMockSource(rate, channels, frames, func(int, int) float32 { return value })
}

// NewSineSource produces a full-scale sine of freq Hz on every channel.
func NewSineSource(rate, channels, frames int, freq float64) *MockSource {
	return NewMockSource(rate, channels, frames, func(i, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(i) / float64(rate)))
	})
}

// NewRampSource produces i/frames on channel 0 and its negation on the rest,
// handy for checking channel order.
func NewRampSource(rate, channels, frames int) *MockSource {
	return NewMockSource(rate, channels, frames, func(i, c int) float32 {
		v := float32(i) / float32(frames)
		if c > 0 {
			return -v
		}
		return v
	})
}

// FailAfter makes ReadSamples return err once frame index n is reached.
func (m *MockSource) FailAfter(n int, err error) *MockSource {
	m.failAt = n
	m.failErr = err
	return m
}

func (m *MockSource) SampleRate() int { return m.rate }
func (m *MockSource) Channels() int   { return m.chans }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset rewinds to the first frame.
func (m *MockSource) Reset() { m.pos = 0 }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.failAt >= 0 && m.pos >= m.failAt {
		return 0, m.failErr
	}
	if m.pos >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.chans, m.frames-m.pos)
	if m.failAt >= 0 {
		n = min(n, m.failAt-m.pos)
	}

	for f := range n {
		for c := range m.chans {
			dst[f*m.chans+c] = m.wave(m.pos+f, c)
		}
	}
	m.pos += n

	if m.pos >= m.frames {
		return n * m.chans, io.EOF
	}

	return n * m.chans, nil
}
