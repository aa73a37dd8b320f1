// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// QuantizePCM16 turns a normalized float sample into a signed 16-bit PCM value.
//
// The sample is clamped to [-1, 1] before scaling. Negative samples scale by
// 32768 and non-negative samples by 32767, so -1 lands on math.MinInt16 and 1
// on math.MaxInt16 without overflow. The product is rounded half away from
// zero.
//
// Non-finite input never reaches the output: +Inf clamps to 1, -Inf to -1,
// and NaN follows its sign bit (a NaN with the sign bit set clamps to -1,
// any other NaN to 1).
func QuantizePCM16(s float32) int16 {
	x := Clamp(float64(s))
	if x < 0 {
		return int16(math.Round(x * 32768))
	}

	return int16(math.Round(x * 32767))
}

// Clamp limits x to [-1, 1], mapping non-finite values to a boundary.
func Clamp(x float64) float64 {
	switch {
	case math.IsNaN(x):
		if math.Signbit(x) {
			return -1
		}
		return 1
	case x > 1:
		return 1
	case x < -1:
		return -1
	}

	return x
}
