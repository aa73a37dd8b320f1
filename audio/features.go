// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// DefaultProfilePoints is the point count used by waveform previews.
const DefaultProfilePoints = 100

// Peaks splits buf into bins equal spans and returns the largest absolute
// sample of each span across all channels, clamped to [0, 1].
// Non-finite samples count as full scale.
func Peaks(buf *Buffer, bins int) []float32 {
	n := buf.Len()
	if bins <= 0 || n == 0 {
		return nil
	}
	bins = min(bins, n)

	out := make([]float32, bins)
	for b := range out {
		start := b * n / bins
		end := (b + 1) * n / bins

		var peak float64
		for _, ch := range buf.Channels {
			for _, s := range ch[start:end] {
				v := math.Abs(float64(s))
				if math.IsNaN(v) || v > 1 {
					v = 1
				}
				peak = max(peak, v)
			}
		}
		out[b] = float32(peak)
	}

	return out
}

// ByteProfile samples points evenly spaced bytes of data and scales each to
// [0, 1]. It is a cheap preview for encoded files that have not been decoded.
func ByteProfile(data []byte, points int) []float32 {
	if points <= 0 || len(data) == 0 {
		return nil
	}

	step := max(len(data)/points, 1)
	out := make([]float32, 0, min(points, len(data)))
	for i := 0; i < points; i++ {
		idx := i * step
		if idx >= len(data) {
			break
		}
		out = append(out, float32(data[idx])/255)
	}

	return out
}

// ScaleLevels maps analyser byte levels (0-255) onto bar heights in
// [0, maxHeight].
func ScaleLevels(levels []uint8, maxHeight float64) []float64 {
	out := make([]float64, len(levels))
	for i, v := range levels {
		out[i] = float64(v) / 255 * maxHeight
	}

	return out
}
