// SPDX-License-Identifier: EPL-2.0

package audiokit

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"

	"github.com/harmony-ai/audiokit/audio"
	"github.com/harmony-ai/audiokit/formats/wav"
	"github.com/harmony-ai/audiokit/internal/audiotest"
)

func near(got, want, tol int) bool {
	return got >= want-tol && got <= want+tol
}

func TestPrepareForModel_DownsampleStereo(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(44100, 2, 44100, 440)

	buf, err := PrepareForModel(src, 24000, 4096)
	if err != nil {
		t.Fatalf("PrepareForModel() error = %v", err)
	}

	if buf.SampleRate != 24000 || buf.NumChannels() != 1 {
		t.Errorf("PrepareForModel() = %d Hz / %d ch, want 24000 / 1", buf.SampleRate, buf.NumChannels())
	}
	if !near(buf.Len(), 24000, 200) {
		t.Errorf("Len() = %d, want ≈24000", buf.Len())
	}
	for i, s := range buf.Channels[0] {
		if s < -1.01 || s > 1.01 {
			t.Fatalf("sample %d = %v, outside [-1, 1]", i, s)
		}
	}
	if src.Closed() {
		t.Error("PrepareForModel() closed a source it does not own")
	}
}

func TestPrepareForModel_ConstantSurvives(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		channels int
	}{
		{"same rate mono", 24000, 1},
		{"upsample stereo", 16000, 2},
		{"downsample six channels", 48000, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewConstantSource(tt.rate, tt.channels, tt.rate/10, 0.5)

			buf, err := PrepareForModel(src, 24000, 0)
			if err != nil {
				t.Fatalf("PrepareForModel() error = %v", err)
			}
			if !near(buf.Len(), 2400, 3) {
				t.Errorf("Len() = %d, want ≈2400", buf.Len())
			}
			for i, s := range buf.Channels[0] {
				if math.Abs(float64(s-0.5)) > 1e-5 {
					t.Fatalf("sample %d = %v, want 0.5", i, s)
				}
			}
		})
	}
}

func TestPrepareForModel_BufferSizes(t *testing.T) {
	t.Parallel()

	var lens []int
	for _, size := range []int{1, 7, 256, 4096, 65536} {
		buf, err := PrepareForModel(audiotest.NewRampSource(22050, 2, 5000), 24000, size)
		if err != nil {
			t.Fatalf("size %d: error = %v", size, err)
		}
		lens = append(lens, buf.Len())
	}

	for i := 1; i < len(lens); i++ {
		if lens[i] != lens[0] {
			t.Errorf("buffer sizes disagree on length: %v", lens)
			break
		}
	}
}

func TestPrepareForModel_Empty(t *testing.T) {
	t.Parallel()

	buf, err := PrepareForModel(audiotest.NewSilentSource(44100, 2, 0), 24000, 4096)
	if err != nil {
		t.Fatalf("PrepareForModel() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Len() = %d, want 0", buf.Len())
	}

	data, err := wav.Encode(buf)
	if err != nil || len(data) != wav.HeaderSize {
		t.Errorf("Encode(empty) = %d bytes, %v", len(data), err)
	}
}

func TestPrepareForModel_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("device unplugged")

	tests := []struct {
		name   string
		src    audio.Source
		target int
		want   error
	}{
		{"zero target", audiotest.NewSilentSource(8000, 1, 10), 0, audio.ErrInvalidSampleRate},
		{"negative target", audiotest.NewSilentSource(8000, 1, 10), -1, audio.ErrInvalidSampleRate},
		{"zero source rate", audiotest.NewSilentSource(0, 1, 10), 8000, audio.ErrInvalidSampleRate},
		{"source fails", audiotest.NewSineSource(8000, 2, 10000, 220).FailAfter(5000, boom), 16000, boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf, err := PrepareForModel(tt.src, tt.target, 4096)
			if !errors.Is(err, tt.want) {
				t.Errorf("PrepareForModel() error = %v, want %v", err, tt.want)
			}
			if buf != nil {
				t.Error("PrepareForModel() returned a buffer alongside an error")
			}
		})
	}
}

func TestEncodeRendered(t *testing.T) {
	t.Parallel()

	r := audio.RendererFunc(func(context.Context) (*audio.Buffer, error) {
		return &audio.Buffer{SampleRate: 24000, Channels: [][]float32{{0, 0.5, -0.5}}}, nil
	})

	data, err := EncodeRendered(context.Background(), r)
	if err != nil {
		t.Fatalf("EncodeRendered() error = %v", err)
	}

	want := []byte{0x00, 0x00, 0x00, 0x40, 0x00, 0xc0}
	if len(data) != wav.HeaderSize+6 || !bytes.Equal(data[wav.HeaderSize:], want) {
		t.Errorf("EncodeRendered() data = % x, want % x", data[wav.HeaderSize:], want)
	}
}

func TestEncodeRendered_SourceRenderer(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampSource(8000, 2, 100)

	data, err := EncodeRendered(context.Background(), audio.SourceRenderer{Src: src})
	if err != nil {
		t.Fatalf("EncodeRendered() error = %v", err)
	}

	hdr, err := wav.Inspect(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if hdr.Channels != 2 || hdr.Frames() != 100 {
		t.Errorf("Inspect() = %+v, want 2 channels, 100 frames", hdr)
	}
}

func TestEncodeRendered_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("model crashed")
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	valid := &audio.Buffer{SampleRate: 8000, Channels: [][]float32{{0}}}

	tests := []struct {
		name string
		ctx  context.Context
		r    audio.RendererFunc
		want error
	}{
		{
			"render fails",
			context.Background(),
			func(context.Context) (*audio.Buffer, error) { return nil, boom },
			boom,
		},
		{
			"cancelled",
			cancelled,
			func(context.Context) (*audio.Buffer, error) { return valid, nil },
			context.Canceled,
		},
		{
			"invalid buffer",
			context.Background(),
			func(context.Context) (*audio.Buffer, error) { return &audio.Buffer{SampleRate: 8000}, nil },
			audio.ErrNoChannels,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := EncodeRendered(tt.ctx, tt.r)
			if !errors.Is(err, tt.want) {
				t.Errorf("EncodeRendered() error = %v, want %v", err, tt.want)
			}
			if data != nil {
				t.Error("EncodeRendered() returned data alongside an error")
			}
		})
	}
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	want := []string{"aif", "aiff", "mp3", "oga", "ogg", "wav", "wave"}
	got := reg.Formats()
	if len(got) != len(want) {
		t.Fatalf("Formats() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Formats()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	for path, want := range map[string]audio.Decoder{
		"clip.WAV":        wav.Decoder{},
		"/tmp/upload.mp3": nil,
		"a.b.ogg":         nil,
		"voice.aif":       nil,
	} {
		d, err := reg.ForPath(path)
		if err != nil {
			t.Errorf("ForPath(%q) error = %v", path, err)
			continue
		}
		if want != nil && d != want {
			t.Errorf("ForPath(%q) = %T, want %T", path, d, want)
		}
	}

	if _, err := reg.ForPath("notes.txt"); !errors.Is(err, audio.ErrUnknownFormat) {
		t.Errorf("ForPath(txt) error = %v, want ErrUnknownFormat", err)
	}
}

func TestNewRegistry_DecodesEncodedWAV(t *testing.T) {
	t.Parallel()

	data, err := wav.Encode(&audio.Buffer{SampleRate: 48000, Channels: [][]float32{{0.25, -0.25}, {0.5, -0.5}}})
	if err != nil {
		t.Fatal(err)
	}

	dec, err := NewRegistry().ForPath("roundtrip.wav")
	if err != nil {
		t.Fatal(err)
	}
	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf, err := PrepareForModel(src, 48000, 64)
	if err != nil {
		t.Fatalf("PrepareForModel() error = %v", err)
	}
	if buf.NumChannels() != 1 || buf.SampleRate != 48000 {
		t.Errorf("PrepareForModel() = %d ch / %d Hz", buf.NumChannels(), buf.SampleRate)
	}
}

func BenchmarkPrepareForModel(b *testing.B) {
	b.ReportAllocs()

	for b.Loop() {
		src := audiotest.NewSineSource(44100, 2, 44100, 440)
		_, _ = PrepareForModel(src, 24000, 4096)
	}
}
