// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis uploads into an audio.Source.
//
// Samples come out of github.com/jfreymuth/oggvorbis already as float32 in
// [-1, 1], interleaved, so ReadSamples decodes directly into the caller's
// slice. Reads are trimmed to whole frames.
//
//	src, err := vorbis.Decoder{}.Decode(f)
//	if errors.Is(err, vorbis.ErrNotVorbisFile) {
//		// reject the upload
//	}
package vorbis
