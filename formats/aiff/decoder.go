// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/harmony-ai/audiokit/audio"
)

type pcmReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type source struct {
	dec      pcmReader
	rate     int
	channels int
	scale    float32 // full-scale value for the stream's bit depth
	ints     *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.rate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.ints.Data) }

func (s *source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, nil
	}

	if cap(s.ints.Data) < want {
		s.ints.Data = make([]int, want)
	}
	s.ints.Data = s.ints.Data[:want]

	n, err := s.dec.PCMBuffer(s.ints)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("aiff read: %w", err)
	}

	n -= n % s.channels
	for i, v := range s.ints.Data[:n] {
		dst[i] = float32(v) / s.scale
	}

	// go-audio reports a short read rather than io.EOF.
	if n < want || err == io.EOF {
		return n, io.EOF
	}
	return n, nil
}

// fullScale returns 2^(bits-1) for the bit depths AIFF stores as integers.
func fullScale(bits int) (float32, bool) {
	switch bits {
	case 8, 16, 24, 32:
		return float32(uint64(1) << (bits - 1)), true
	}
	return 0, false
}

// Decoder decodes uncompressed AIFF with github.com/go-audio/aiff.
// go-audio needs to seek, so inputs without io.Seeker are buffered.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("aiff buffer input: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	scale, ok := fullScale(int(dec.BitDepth))
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, ErrUnsupportedLayout
	}

	return &source{
		dec:      dec,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		scale:    scale,
		ints: &goaudio.IntBuffer{
			Format:         format,
			Data:           make([]int, 4096-4096%format.NumChannels),
			SourceBitDepth: int(dec.BitDepth),
		},
	}, nil
}
