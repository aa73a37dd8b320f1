// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF uploads into an audio.Source via
// github.com/go-audio/aiff.
//
// Integer PCM at 8, 16, 24 and 32 bits is normalized to float32 by the
// stream's full-scale value. AIFF is big-endian; go-audio handles the byte
// order. Inputs that cannot seek are read into memory first.
package aiff
