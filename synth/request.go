// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultVoicePreset   = "v2/en_speaker_6"
	DefaultTemperature   = 0.7
	DefaultLengthPenalty = 1.0
	DefaultDuration      = 3 * time.Second

	// MaxDuration bounds a single clip.
	MaxDuration = 5 * time.Minute
)

// Accepted parameter ranges, inclusive.
const (
	MinTemperature   = 0.1
	MaxTemperature   = 1.5
	MinLengthPenalty = 0.5
	MaxLengthPenalty = 2.0
)

// Request describes one clip to generate. Zero fields take the handle's
// defaults.
type Request struct {
	Prompt        string
	VoicePreset   string
	Temperature   float64
	LengthPenalty float64
	Duration      time.Duration
}

func (r Request) withDefaults(d Request) Request {
	if r.VoicePreset == "" {
		r.VoicePreset = d.VoicePreset
	}
	if r.Temperature == 0 {
		r.Temperature = d.Temperature
	}
	if r.LengthPenalty == 0 {
		r.LengthPenalty = d.LengthPenalty
	}
	if r.Duration == 0 {
		r.Duration = d.Duration
	}
	return r
}

// Validate checks a request after defaults are applied.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return ErrEmptyPrompt
	}

	switch {
	case !inRange(r.Temperature, MinTemperature, MaxTemperature):
		return fmt.Errorf("%w: temperature %v outside [%v, %v]", ErrInvalidRequest, r.Temperature, MinTemperature, MaxTemperature)
	case !inRange(r.LengthPenalty, MinLengthPenalty, MaxLengthPenalty):
		return fmt.Errorf("%w: length penalty %v outside [%v, %v]", ErrInvalidRequest, r.LengthPenalty, MinLengthPenalty, MaxLengthPenalty)
	case r.Duration < 0 || r.Duration > MaxDuration:
		return fmt.Errorf("%w: duration %v", ErrInvalidRequest, r.Duration)
	}

	return nil
}

// inRange is false for NaN.
func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

func defaultRequest() Request {
	return Request{
		VoicePreset:   DefaultVoicePreset,
		Temperature:   DefaultTemperature,
		LengthPenalty: DefaultLengthPenalty,
		Duration:      DefaultDuration,
	}
}
