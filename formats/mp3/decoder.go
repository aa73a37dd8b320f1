// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/harmony-ai/audiokit/audio"
)

// go-mp3 always produces interleaved stereo, 16-bit little endian.
const (
	channels   = 2
	frameBytes = channels * 2
)

type pcmReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec  pcmReader
	rate int
	raw  []byte
	// bytes of a frame split across two decoder reads
	pending int
}

func (s *source) SampleRate() int { return s.rate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.raw) / 2 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	want := (len(dst) / channels) * frameBytes
	if want == 0 {
		return 0, nil
	}
	if cap(s.raw) < want {
		raw := make([]byte, want)
		copy(raw, s.raw[:s.pending])
		s.raw = raw
	}
	s.raw = s.raw[:want]

	n, err := s.dec.Read(s.raw[s.pending:])
	n += s.pending

	whole := n - n%frameBytes
	for i := 0; i < whole/2; i++ {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.raw[2*i:]))) / 32768
	}

	s.pending = copy(s.raw, s.raw[whole:n])

	if err != nil && err != io.EOF {
		return whole / 2, fmt.Errorf("mp3 read: %w", err)
	}
	return whole / 2, err
}

// Decoder decodes MPEG-1/2 Layer III streams. The source is always stereo;
// mono files are duplicated onto both channels by go-mp3.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return &source{
		dec:  dec,
		rate: dec.SampleRate(),
		raw:  make([]byte, 8192),
	}, nil
}
