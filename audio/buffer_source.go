// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// BufferSource streams a Buffer as interleaved samples.
type BufferSource struct {
	buf   *Buffer
	frame int
}

// NewBufferSource returns a Source reading buf from its first frame.
func NewBufferSource(buf *Buffer) *BufferSource {
	return &BufferSource{buf: buf}
}

func (s *BufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *BufferSource) Channels() int   { return s.buf.NumChannels() }
func (s *BufferSource) BufSize() int    { return 4096 }
func (s *BufferSource) Close() error    { return nil }

func (s *BufferSource) ReadSamples(dst []float32) (int, error) {
	channels := s.buf.NumChannels()
	total := s.buf.Len()
	if channels == 0 || s.frame >= total {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, total-s.frame)
	for f := range frames {
		base := f * channels
		for c, ch := range s.buf.Channels {
			dst[base+c] = ch[s.frame+f]
		}
	}
	s.frame += frames

	if s.frame >= total {
		return frames * channels, io.EOF
	}

	return frames * channels, nil
}
