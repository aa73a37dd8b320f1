// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/harmony-ai/audiokit/audio"
	"github.com/harmony-ai/audiokit/formats/wav"
)

// RemoteBackend calls a text-to-audio server over HTTP. The server accepts
// a JSON generateRequest at POST /generate and answers with a WAV body;
// GET /health returns 200 once the model is ready.
type RemoteBackend struct {
	baseURL string
	http    *http.Client
}

func NewRemoteBackend(baseURL string, timeout time.Duration) *RemoteBackend {
	return &RemoteBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Prompt        string  `json:"prompt"`
	VoicePreset   string  `json:"voice_preset"`
	Temperature   float64 `json:"temperature"`
	LengthPenalty float64 `json:"length_penalty"`
	Duration      float64 `json:"duration_seconds"`
	DoSample      bool    `json:"do_sample"`
}

// Load checks GET /health once.
func (b *RemoteBackend) Load(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("create health request: %w", err)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health status %d", ErrBackend, resp.StatusCode)
	}

	return nil
}

func (b *RemoteBackend) Synthesize(ctx context.Context, r Request) (*audio.Buffer, error) {
	body, err := json.Marshal(generateRequest{
		Prompt:        r.Prompt,
		VoicePreset:   r.VoicePreset,
		Temperature:   r.Temperature,
		LengthPenalty: r.LengthPenalty,
		Duration:      r.Duration.Seconds(),
		DoSample:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/wav")

	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit generation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrBackend, resp.StatusCode, bytes.TrimSpace(msg))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}

	src, err := wav.Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode audio: %w", ErrBackend, err)
	}
	defer src.Close()

	return audio.Collect(ctx, src)
}
