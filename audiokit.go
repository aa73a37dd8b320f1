// SPDX-License-Identifier: EPL-2.0

package audiokit

import (
	"context"
	"fmt"

	"github.com/harmony-ai/audiokit/audio"
	"github.com/harmony-ai/audiokit/formats/aiff"
	"github.com/harmony-ai/audiokit/formats/mp3"
	"github.com/harmony-ai/audiokit/formats/vorbis"
	"github.com/harmony-ai/audiokit/formats/wav"
)

// DefaultBufferSize is used by PrepareForModel when bufferSize <= 0.
const DefaultBufferSize = 4096

// NewRegistry returns a registry with every bundled decoder, keyed by file
// extension.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(wav.Decoder{}, "wav", "wave")
	reg.Register(mp3.Decoder{}, "mp3")
	reg.Register(vorbis.Decoder{}, "ogg", "oga")
	reg.Register(aiff.Decoder{}, "aiff", "aif")

	return reg
}

type sized struct {
	audio.Source
	n int
}

func (s sized) BufSize() int { return s.n }

// PrepareForModel resamples src to targetRate, folds it to mono and collects
// the whole stream. The caller keeps ownership of src.
func PrepareForModel(src audio.Source, targetRate, bufferSize int) (*audio.Buffer, error) {
	if targetRate <= 0 {
		return nil, fmt.Errorf("prepare: %w: target %d", audio.ErrInvalidSampleRate, targetRate)
	}
	if src.SampleRate() <= 0 {
		return nil, fmt.Errorf("prepare: %w: source %d", audio.ErrInvalidSampleRate, src.SampleRate())
	}
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	mono := audio.NewMonoMixer(audio.NewResampler(src, targetRate))

	buf, err := audio.Collect(context.Background(), sized{Source: mono, n: bufferSize})
	if err != nil {
		return nil, fmt.Errorf("prepare: %w", err)
	}

	return buf, nil
}

// EncodeRendered renders r and encodes the result as WAV. Nothing is
// encoded if rendering fails or ctx is cancelled.
func EncodeRendered(ctx context.Context, r audio.Renderer) ([]byte, error) {
	buf, err := r.Render(ctx)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	return wav.Encode(buf)
}
