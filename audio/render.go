// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Renderer produces a finished Buffer, e.g. a model inference call or an
// offline mixdown. Cancellation belongs here, not in the encoder.
type Renderer interface {
	Render(ctx context.Context) (*Buffer, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ctx context.Context) (*Buffer, error)

func (f RendererFunc) Render(ctx context.Context) (*Buffer, error) { return f(ctx) }

// SourceRenderer renders a streaming Source by reading it to the end.
type SourceRenderer struct {
	Src Source
}

func (r SourceRenderer) Render(ctx context.Context) (*Buffer, error) {
	return Collect(ctx, r.Src)
}

// Collect drains src into a planar Buffer. ctx is checked between reads.
func Collect(ctx context.Context, src Source) (*Buffer, error) {
	channels := src.Channels()
	if channels < 1 {
		return nil, ErrNoChannels
	}

	out := &Buffer{
		Channels:   make([][]float32, channels),
		SampleRate: src.SampleRate(),
	}

	size := max(src.BufSize(), channels)
	buf := make([]float32, size-size%channels)

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("collect: %w", err)
		}

		n, err := src.ReadSamples(buf)
		frames := n / channels
		for c := range out.Channels {
			ch := out.Channels[c]
			for f := range frames {
				ch = append(ch, buf[f*channels+c])
			}
			out.Channels[c] = ch
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("collect: %w", err)
		}
		if n == 0 {
			// Some decoders report (0, nil) once drained.
			break
		}
	}

	for c := range out.Channels {
		if out.Channels[c] == nil {
			out.Channels[c] = []float32{}
		}
	}

	return out, nil
}
