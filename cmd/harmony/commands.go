// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/harmony-ai/audiokit"
	"github.com/harmony-ai/audiokit/audio"
	"github.com/harmony-ai/audiokit/config"
	"github.com/harmony-ai/audiokit/export"
	"github.com/harmony-ai/audiokit/formats/wav"
	"github.com/harmony-ai/audiokit/history"
	"github.com/harmony-ai/audiokit/synth"
)

const (
	overviewBins   = 48
	overviewHeight = 8
)

var bars = []rune("▁▂▃▄▅▆▇█")

type app struct {
	cfg     *config.Config
	log     *logrus.Logger
	out     io.Writer
	errOut  io.Writer
	history *history.Store
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

func (a *app) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %w", errUsage, fs.Name(), err)
	}
	return nil
}

func (a *app) backend() (synth.Backend, error) {
	switch a.cfg.Backend {
	case config.BackendRemote:
		return synth.NewRemoteBackend(a.cfg.RemoteURL, a.cfg.RemoteTimeout), nil
	case config.BackendTone:
		a.log.Warn("Using the tone backend; clips are a test tone, not model output")
		return synth.NewToneBackend(a.cfg.SampleRate), nil
	}
	return nil, fmt.Errorf("unknown backend %q", a.cfg.Backend)
}

func (a *app) generate(ctx context.Context, args []string) error {
	fs := a.flags("generate")
	prompt := fs.String("prompt", "", "text describing the clip")
	voice := fs.String("voice", a.cfg.VoicePreset, "voice preset")
	temperature := fs.Float64("temperature", a.cfg.Temperature, "sampling temperature")
	lengthPenalty := fs.Float64("length-penalty", a.cfg.LengthPenalty, "length penalty")
	duration := fs.Duration("duration", synth.DefaultDuration, "clip length")
	style := fs.String("style", "timestamp", "file name suffix: timestamp or date")
	if err := a.parse(fs, args); err != nil {
		return err
	}

	nameStyle, err := parseStyle(*style)
	if err != nil {
		return err
	}

	backend, err := a.backend()
	if err != nil {
		return err
	}

	h, err := synth.Open(ctx, backend, synth.WithLogger(a.log))
	if err != nil {
		return err
	}
	defer h.Close()

	res, err := h.Generate(ctx, synth.Request{
		Prompt:        *prompt,
		VoicePreset:   *voice,
		Temperature:   *temperature,
		LengthPenalty: *lengthPenalty,
		Duration:      *duration,
	})
	if err != nil {
		return err
	}

	name := export.FileName(a.cfg.FilePrefix, time.Now(), nameStyle)
	path, err := export.Save(a.cfg.OutputDir, name, res.Buffer)
	if err != nil {
		return err
	}

	item := a.history.Add(history.Item{
		ID:          res.ID.String(),
		Kind:        history.KindGeneration,
		Title:       title(res.Request.Prompt),
		Description: res.Request.Prompt,
		Path:        path,
	})
	a.log.WithFields(logrus.Fields{
		"id":      item.ID,
		"path":    path,
		"history": a.history.Len(),
	}).Info("Clip saved")

	fmt.Fprintln(a.out, path)
	return nil
}

func (a *app) convert(_ context.Context, args []string) error {
	fs := a.flags("convert")
	rate := fs.Int("rate", a.cfg.SampleRate, "output sample rate in Hz")
	bufSize := fs.Int("buffer", audiokit.DefaultBufferSize, "samples per read")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		return fmt.Errorf("%w: convert [-rate hz] input [output.wav]", errUsage)
	}

	in := fs.Arg(0)
	src, closeFn, err := openSource(in)
	if err != nil {
		return err
	}
	defer closeFn()

	buf, err := audiokit.PrepareForModel(src, *rate, *bufSize)
	if err != nil {
		return err
	}

	out := fs.Arg(1)
	if out == "" {
		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		out = filepath.Join(a.cfg.OutputDir, fmt.Sprintf("%s-%dhz-mono.wav", base, *rate))
	}

	path, err := export.Save(filepath.Dir(out), filepath.Base(out), buf)
	if err != nil {
		return err
	}

	a.history.Add(history.Item{
		Kind:        history.KindTraining,
		Title:       filepath.Base(in),
		Description: fmt.Sprintf("%d Hz mono, %v", buf.SampleRate, buf.Duration()),
		Path:        path,
	})
	a.log.WithFields(logrus.Fields{
		"input":    in,
		"rate":     src.SampleRate(),
		"channels": src.Channels(),
		"duration": buf.Duration(),
	}).Info("Prepared training audio")

	fmt.Fprintln(a.out, path)
	return nil
}

func (a *app) inspect(ctx context.Context, args []string) error {
	fs := a.flags("inspect")
	raw := fs.Bool("raw", false, "also print a byte profile of the file")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: inspect [-raw] file", errUsage)
	}
	path := fs.Arg(0)

	if strings.EqualFold(filepath.Ext(path), ".wav") {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		hdr, err := wav.Inspect(f)
		f.Close()
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "format:   %d, %d-bit, block %d\n", hdr.AudioFormat, hdr.BitsPerSample, hdr.BlockAlign)
	}

	src, closeFn, err := openSource(path)
	if err != nil {
		return err
	}
	defer closeFn()

	buf, err := audio.Collect(ctx, src)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "rate:     %d Hz\n", buf.SampleRate)
	fmt.Fprintf(a.out, "channels: %d\n", buf.NumChannels())
	fmt.Fprintf(a.out, "duration: %v\n", buf.Duration())
	fmt.Fprintf(a.out, "peaks:    %s\n", overview(audio.Peaks(buf, overviewBins)))

	if *raw {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "bytes:    %s\n", overview(audio.ByteProfile(data, overviewBins)))
	}

	return nil
}

func (a *app) formats(context.Context, []string) error {
	for _, f := range audiokit.NewRegistry().Formats() {
		fmt.Fprintln(a.out, f)
	}
	return nil
}

// openSource decodes path with the decoder registered for its extension.
func openSource(path string) (audio.Source, func(), error) {
	dec, err := audiokit.NewRegistry().ForPath(path)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return src, func() {
		src.Close()
		f.Close()
	}, nil
}

func parseStyle(s string) (export.Style, error) {
	switch s {
	case "timestamp":
		return export.StyleTimestamp, nil
	case "date":
		return export.StyleDate, nil
	}
	return 0, fmt.Errorf("%w: style must be timestamp or date, got %q", errUsage, s)
}

// title shortens a prompt for the history list.
func title(prompt string) string {
	const maxLen = 40
	prompt = strings.TrimSpace(prompt)
	if r := []rune(prompt); len(r) > maxLen {
		return string(r[:maxLen-1]) + "…"
	}
	return prompt
}

// overview draws levels in [0, 1] as a row of bar glyphs.
func overview(levels []float32) string {
	q := make([]uint8, len(levels))
	for i, l := range levels {
		q[i] = uint8(min(max(l, 0), 1) * 255)
	}

	var sb strings.Builder
	for _, h := range audio.ScaleLevels(q, overviewHeight) {
		idx := min(max(int(h+0.5)-1, 0), len(bars)-1)
		sb.WriteRune(bars[idx])
	}
	return sb.String()
}
