// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harmony-ai/audiokit/audio"
	"github.com/harmony-ai/audiokit/formats/wav"
	"github.com/sirupsen/logrus"
)

// Backend turns a request into audio. Implementations must honour ctx.
type Backend interface {
	Synthesize(ctx context.Context, req Request) (*audio.Buffer, error)
}

// Loader is implemented by backends that need warming up before the first
// request, such as loading model weights or waiting for a server.
type Loader interface {
	Load(ctx context.Context) error
}

// Result is one generated clip.
type Result struct {
	ID      uuid.UUID
	Request Request
	Buffer  *audio.Buffer
	WAV     []byte
	Elapsed time.Duration
}

type Option func(*Handle)

func WithLogger(l logrus.FieldLogger) Option {
	return func(h *Handle) { h.log = l }
}

// WithDefaults replaces the values applied to zero fields of a Request.
// Zero arguments keep the package defaults.
func WithDefaults(d Request) Option {
	return func(h *Handle) { h.defaults = d.withDefaults(defaultRequest()) }
}

// Handle owns a loaded backend. It is safe for concurrent use; Close waits
// for in-flight Generate calls.
type Handle struct {
	backend  Backend
	log      logrus.FieldLogger
	defaults Request

	mtx      sync.RWMutex
	closed   bool
	inflight sync.WaitGroup
}

// Open prepares backend and returns a handle to it. Backends implementing
// Loader are loaded here.
func Open(ctx context.Context, backend Backend, opts ...Option) (*Handle, error) {
	if backend == nil {
		return nil, ErrNoBackend
	}

	h := &Handle{
		backend:  backend,
		log:      logrus.StandardLogger(),
		defaults: defaultRequest(),
	}
	for _, opt := range opts {
		opt(h)
	}

	if l, ok := backend.(Loader); ok {
		start := time.Now()
		if err := l.Load(ctx); err != nil {
			return nil, fmt.Errorf("load backend: %w", err)
		}
		h.log.WithField("took", time.Since(start)).Info("synth backend loaded")
	}

	return h, nil
}

// Close rejects new requests, waits for running ones and releases the
// backend if it is an io.Closer. Calling Close twice is a no-op.
func (h *Handle) Close() error {
	h.mtx.Lock()
	if h.closed {
		h.mtx.Unlock()
		return nil
	}
	h.closed = true
	h.mtx.Unlock()

	h.inflight.Wait()

	if c, ok := h.backend.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("close backend: %w", err)
		}
	}

	h.log.Debug("synth handle closed")
	return nil
}

func (h *Handle) acquire() error {
	h.mtx.RLock()
	defer h.mtx.RUnlock()

	if h.closed {
		return ErrClosed
	}
	h.inflight.Add(1)
	return nil
}

// Generate synthesizes req and encodes the result as WAV.
func (h *Handle) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := h.acquire(); err != nil {
		return nil, err
	}
	defer h.inflight.Done()

	req = req.withDefaults(h.defaults)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	log := h.log.WithFields(logrus.Fields{
		"id":    id,
		"voice": req.VoicePreset,
	})
	log.WithField("prompt", req.Prompt).Debug("generating")

	start := time.Now()
	buf, err := h.backend.Synthesize(ctx, req)
	if err != nil {
		log.WithError(err).Warn("generation failed")
		return nil, fmt.Errorf("synthesize: %w", err)
	}

	data, err := wav.Encode(buf)
	if err != nil {
		log.WithError(err).Warn("backend returned unusable audio")
		return nil, fmt.Errorf("synthesize: %w", err)
	}

	res := &Result{
		ID:      id,
		Request: req,
		Buffer:  buf,
		WAV:     data,
		Elapsed: time.Since(start),
	}

	log.WithFields(logrus.Fields{
		"duration": buf.Duration(),
		"took":     res.Elapsed,
	}).Info("generation complete")

	return res, nil
}

// Renderer adapts a request to audio.Renderer so it can be driven by
// anything that renders, e.g. audiokit.EncodeRendered.
func (h *Handle) Renderer(req Request) audio.Renderer {
	return audio.RendererFunc(func(ctx context.Context) (*audio.Buffer, error) {
		res, err := h.Generate(ctx, req)
		if err != nil {
			return nil, err
		}
		return res.Buffer, nil
	})
}
