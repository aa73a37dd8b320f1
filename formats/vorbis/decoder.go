// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/harmony-ai/audiokit/audio"
	"github.com/jfreymuth/oggvorbis"
)

// valueReader matches oggvorbis.Reader. Read fills p with interleaved
// values, always a multiple of Channels().
type valueReader interface {
	SampleRate() int
	Channels() int
	Read(p []float32) (int, error)
}

type source struct {
	dec      valueReader
	rate     int
	channels int
	bufSize  int
}

func (s *source) SampleRate() int { return s.rate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return s.bufSize }

func (s *source) ReadSamples(dst []float32) (n int, err error) {
	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, nil
	}

	// oggvorbis panics on some corrupt pages.
	defer func() {
		if p := recover(); p != nil {
			n, err = 0, fmt.Errorf("vorbis read: corrupt stream: %v", p)
		}
	}()

	// oggvorbis decodes straight into dst.
	n, err = s.dec.Read(dst[:want])
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("vorbis read: %w", err)
	}
	return n, err
}

// Decoder decodes Ogg Vorbis streams with github.com/jfreymuth/oggvorbis.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := newReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}
	if dec.Channels() < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrNotVorbisFile, dec.Channels())
	}

	return &source{
		dec:      dec,
		rate:     dec.SampleRate(),
		channels: dec.Channels(),
		bufSize:  4096 - 4096%dec.Channels(),
	}, nil
}

// newReader turns the panics oggvorbis raises on truncated pages into errors.
func newReader(r io.Reader) (dec *oggvorbis.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			dec, err = nil, fmt.Errorf("corrupt stream: %v", p)
		}
	}()

	return oggvorbis.NewReader(r)
}
