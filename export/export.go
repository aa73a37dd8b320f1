// SPDX-License-Identifier: EPL-2.0

// Package export names and writes downloadable WAV clips.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/harmony-ai/audiokit/audio"
	"github.com/harmony-ai/audiokit/formats/wav"
)

// Style selects the suffix FileName puts after the prefix.
type Style int

const (
	// StyleTimestamp appends Unix milliseconds: harmony-ai-1714564800000.wav
	StyleTimestamp Style = iota
	// StyleDate appends the UTC date: harmony-ai-2024-05-01.wav
	StyleDate
)

const DefaultPrefix = "harmony-ai"

var ErrInvalidName = errors.New("invalid file name")

// FileName builds a download name for a clip made at t. An empty prefix
// falls back to DefaultPrefix.
func FileName(prefix string, t time.Time, style Style) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	var suffix string
	switch style {
	case StyleDate:
		suffix = t.UTC().Format(time.DateOnly)
	default:
		suffix = strconv.FormatInt(t.UnixMilli(), 10)
	}

	return prefix + "-" + suffix + ".wav"
}

// Save writes buf as WAV to dir/name, creating dir if needed, and returns
// the path. name must be a bare file name.
func Save(dir, name string, buf *audio.Buffer) (path string, err error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if err := buf.Validate(); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path = filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(path)
			path = ""
		}
	}()

	w := bufio.NewWriter(f)
	if err := wav.Write(w, buf); err != nil {
		return "", err
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("flush file: %w", err)
	}

	return path, nil
}
