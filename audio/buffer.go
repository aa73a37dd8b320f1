// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
	"time"
)

// MaxChannels is the largest channel count whose 16-bit frame size still
// fits the WAV block align field.
const MaxChannels = math.MaxUint16 / 2

// Buffer is a fully rendered block of planar float PCM.
// Every channel holds the same number of samples, nominally in [-1, 1].
type Buffer struct {
	Channels   [][]float32
	SampleRate int
}

// NewBuffer allocates a silent buffer.
func NewBuffer(sampleRate, channels, length int) *Buffer {
	b := &Buffer{
		Channels:   make([][]float32, channels),
		SampleRate: sampleRate,
	}
	for c := range b.Channels {
		b.Channels[c] = make([]float32, length)
	}

	return b
}

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int { return len(b.Channels) }

// Len returns the number of samples per channel.
func (b *Buffer) Len() int {
	if len(b.Channels) == 0 {
		return 0
	}

	return len(b.Channels[0])
}

// Duration is the playback length at SampleRate.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}

	return time.Duration(b.Len()) * time.Second / time.Duration(b.SampleRate)
}

// Validate checks the shape contract: at least one channel, equal channel
// lengths, a positive 32-bit sample rate, and a 16-bit PCM data size that
// fits a 32-bit RIFF size field.
func (b *Buffer) Validate() error {
	if b == nil || len(b.Channels) == 0 {
		return ErrNoChannels
	}

	if len(b.Channels) > MaxChannels {
		return fmt.Errorf("%w: %d > %d", ErrTooManyChannels, len(b.Channels), MaxChannels)
	}

	if b.SampleRate <= 0 || uint64(b.SampleRate) > math.MaxUint32 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, b.SampleRate)
	}

	n := len(b.Channels[0])
	for c, ch := range b.Channels[1:] {
		if len(ch) != n {
			return fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d",
				ErrChannelLengthMismatch, c+1, len(ch), n)
		}
	}

	// 36 bytes of header follow the RIFF size field.
	if uint64(n)*uint64(len(b.Channels))*2 > math.MaxUint32-36 {
		return fmt.Errorf("%w: %d frames x %d channels", ErrBufferTooLarge, n, len(b.Channels))
	}

	return nil
}
