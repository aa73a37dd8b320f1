// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"context"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/harmony-ai/audiokit/internal/audiotest"
)

func collectFrames(t *testing.T, src Source) *Buffer {
	t.Helper()

	buf, err := Collect(context.Background(), src)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	return buf
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 10), 16000)

	if r.SampleRate() != 16000 {
		t.Errorf("SampleRate() = %d, want 16000", r.SampleRate())
	}
	if r.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", r.Channels())
	}
	if r.BufSize() != 4096 {
		t.Errorf("BufSize() = %d, want 4096", r.BufSize())
	}
}

func TestResampler_SameRateIsIdentity(t *testing.T) {
	t.Parallel()

	buf := collectFrames(t, NewResampler(audiotest.NewRampSource(8000, 1, 100), 8000))

	if buf.Len() != 100 {
		t.Fatalf("Len() = %d, want 100", buf.Len())
	}
	for i, s := range buf.Channels[0] {
		if want := float32(i) / 100; s != want {
			t.Errorf("sample %d = %v, want %v", i, s, want)
		}
	}
}

func TestResampler_FrameCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		srcRate, frames int
		dstRate, want   int
	}{
		{"44.1k to 8k", 44100, 44100, 8000, 8000},
		{"48k to 24k", 48000, 4800, 24000, 2400},
		{"8k to 16k", 8000, 100, 16000, 200},
		{"24k to 44.1k", 24000, 2400, 44100, 4410},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.srcRate, 1, tt.frames, 220)
			buf := collectFrames(t, NewResampler(src, tt.dstRate))

			if diff := buf.Len() - tt.want; diff < -2 || diff > 2 {
				t.Errorf("Len() = %d, want %d±2", buf.Len(), tt.want)
			}
		})
	}
}

func TestResampler_ConstantStaysConstant(t *testing.T) {
	t.Parallel()

	for _, rate := range []int{8000, 22050, 96000} {
		src := audiotest.NewConstantSource(44100, 1, 4410, 0.6)
		buf := collectFrames(t, NewResampler(src, rate))

		for i, s := range buf.Channels[0] {
			if math.Abs(float64(s-0.6)) > 1e-5 {
				t.Fatalf("rate %d sample %d = %v, want 0.6", rate, i, s)
			}
		}
	}
}

func TestResampler_KeepsChannelsApart(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(48000, 2, 4800, func(_, c int) float32 {
		if c == 0 {
			return 0.5
		}
		return -0.5
	})
	buf := collectFrames(t, NewResampler(src, 16000))

	for i := range buf.Len() {
		l, r := buf.Channels[0][i], buf.Channels[1][i]
		if math.Abs(float64(l-0.5)) > 1e-5 || math.Abs(float64(r+0.5)) > 1e-5 {
			t.Fatalf("frame %d = (%v, %v), want (0.5, -0.5)", i, l, r)
		}
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 1, 0), 8000)
	dst := make([]float32, 16)

	for range 2 {
		n, err := r.ReadSamples(dst)
		if n != 0 || err != io.EOF {
			t.Errorf("ReadSamples() = %d, %v; want 0, EOF", n, err)
		}
	}
}

func TestResampler_SingleFrame(t *testing.T) {
	t.Parallel()

	buf := collectFrames(t, NewResampler(audiotest.NewConstantSource(8000, 1, 1, 0.3), 8000))

	if buf.Len() != 1 || buf.Channels[0][0] != 0.3 {
		t.Errorf("got %v, want [0.3]", buf.Channels[0])
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 10), 8000)

	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_PropagatesSourceError(t *testing.T) {
	t.Parallel()

	boom := errors.New("decoder broke")
	src := audiotest.NewSilentSource(16000, 1, 1000).FailAfter(10, boom)

	_, err := Collect(context.Background(), NewResampler(src, 8000))
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
}

func TestResampler_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 1, 10)
	if err := NewResampler(src, 16000).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.Closed() {
		t.Error("Close() did not close the source")
	}
}

func BenchmarkResampler_Downsample(b *testing.B) {
	dst := make([]float32, 4096)
	b.ReportAllocs()

	for b.Loop() {
		r := NewResampler(audiotest.NewSineSource(44100, 2, 44100, 440), 16000)
		for {
			if _, err := r.ReadSamples(dst); err != nil {
				break
			}
		}
	}
}
