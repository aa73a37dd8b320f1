// SPDX-License-Identifier: EPL-2.0

// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	BackendTone   = "tone"
	BackendRemote = "remote"

	// MaxSampleRate is the highest HARMONY_SAMPLE_RATE accepted.
	MaxSampleRate = 384000
)

// Config holds all runtime configuration.
type Config struct {
	// Sample rate of generated clips and of prepared training audio.
	SampleRate int

	Backend       string
	RemoteURL     string
	RemoteTimeout time.Duration

	VoicePreset   string
	Temperature   float64
	LengthPenalty float64

	OutputDir  string
	FilePrefix string

	LogLevel logrus.Level
}

// Load reads files (".env" when none are given) into the environment
// without overriding variables already set, then builds a Config. Missing
// files are skipped; malformed values are errors.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var errs []error
	cfg := &Config{
		SampleRate:    envInt("HARMONY_SAMPLE_RATE", 24000, &errs),
		Backend:       envStr("HARMONY_BACKEND", BackendTone),
		RemoteURL:     envStr("HARMONY_REMOTE_URL", ""),
		RemoteTimeout: envDuration("HARMONY_REMOTE_TIMEOUT", 2*time.Minute, &errs),
		VoicePreset:   envStr("HARMONY_VOICE_PRESET", "v2/en_speaker_6"),
		Temperature:   envFloat("HARMONY_TEMPERATURE", 0.7, &errs),
		LengthPenalty: envFloat("HARMONY_LENGTH_PENALTY", 1.0, &errs),
		OutputDir:     envStr("HARMONY_OUTPUT_DIR", "."),
		FilePrefix:    envStr("HARMONY_FILE_PREFIX", "harmony-ai"),
	}

	level, err := logrus.ParseLevel(envStr("HARMONY_LOG_LEVEL", "info"))
	if err != nil {
		errs = append(errs, fmt.Errorf("HARMONY_LOG_LEVEL: %w", err))
	}
	cfg.LogLevel = level

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch {
	case c.SampleRate <= 0 || c.SampleRate > MaxSampleRate:
		return fmt.Errorf("HARMONY_SAMPLE_RATE must be in (0, %d], got %d", MaxSampleRate, c.SampleRate)
	case c.Backend != BackendTone && c.Backend != BackendRemote:
		return fmt.Errorf("HARMONY_BACKEND must be %q or %q, got %q", BackendTone, BackendRemote, c.Backend)
	case c.Backend == BackendRemote && c.RemoteURL == "":
		return fmt.Errorf("HARMONY_REMOTE_URL is required for the %s backend", BackendRemote)
	case c.RemoteTimeout <= 0:
		return fmt.Errorf("HARMONY_REMOTE_TIMEOUT must be positive, got %v", c.RemoteTimeout)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64, errs *[]error) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return f
}

func envDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}
