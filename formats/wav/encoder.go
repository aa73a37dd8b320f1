// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/harmony-ai/audiokit/audio"
	"github.com/harmony-ai/audiokit/utils"
)

const (
	// HeaderSize is the length of the canonical RIFF/fmt/data preamble.
	HeaderSize = 44

	bytesPerSample = 2
	// frames per Write call in the streaming path
	writeChunkFrames = 4096
)

// Encode renders buf as a 16-bit PCM WAV file.
//
// The result is always HeaderSize + Len()*NumChannels()*2 bytes, samples
// interleaved frame by frame. Samples go through utils.QuantizePCM16, so
// anything outside [-1, 1], NaN and Inf included, is clamped. An empty
// buffer yields a header-only file.
//
// A buffer that fails audio.Buffer.Validate is rejected before any output
// is produced.
func Encode(buf *audio.Buffer) ([]byte, error) {
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("wav encode: %w", err)
	}

	out := make([]byte, HeaderSize+dataSize(buf))
	putHeader(out[:HeaderSize], buf)
	putFrames(out[HeaderSize:], buf, 0, buf.Len())

	return out, nil
}

// Write streams the same bytes Encode returns to w, a few thousand frames at
// a time.
func Write(w io.Writer, buf *audio.Buffer) error {
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("wav encode: %w", err)
	}

	var header [HeaderSize]byte
	putHeader(header[:], buf)
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("wav write header: %w", err)
	}

	frames := buf.Len()
	if frames == 0 {
		return nil
	}

	frameBytes := buf.NumChannels() * bytesPerSample
	chunk := make([]byte, min(frames, writeChunkFrames)*frameBytes)

	for start := 0; start < frames; start += writeChunkFrames {
		end := min(start+writeChunkFrames, frames)
		p := chunk[:(end-start)*frameBytes]
		putFrames(p, buf, start, end)

		if _, err := w.Write(p); err != nil {
			return fmt.Errorf("wav write samples: %w", err)
		}
	}

	return nil
}

func dataSize(buf *audio.Buffer) int {
	return buf.Len() * buf.NumChannels() * bytesPerSample
}

// putHeader fills h[:HeaderSize]. The byte rate is computed in 32 bits and
// wraps for physically implausible sample rates, matching what a u32 field
// can hold.
func putHeader(h []byte, buf *audio.Buffer) {
	channels := uint32(buf.NumChannels())
	rate := uint32(buf.SampleRate)
	size := uint32(dataSize(buf))

	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], 36+size)
	copy(h[8:12], "WAVE")

	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], FormatPCM)
	binary.LittleEndian.PutUint16(h[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(h[24:28], rate)
	binary.LittleEndian.PutUint32(h[28:32], rate*channels*bytesPerSample)
	binary.LittleEndian.PutUint16(h[32:34], uint16(channels*bytesPerSample))
	binary.LittleEndian.PutUint16(h[34:36], 16)

	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], size)
}

// putFrames writes frames [from, to) of buf into dst, interleaved.
func putFrames(dst []byte, buf *audio.Buffer, from, to int) {
	off := 0
	for i := from; i < to; i++ {
		for _, ch := range buf.Channels {
			binary.LittleEndian.PutUint16(dst[off:off+2], uint16(utils.QuantizePCM16(ch[i])))
			off += 2
		}
	}
}
