// SPDX-License-Identifier: EPL-2.0

// Package wav encodes audio buffers as 16-bit PCM WAV files and decodes
// uploaded WAV files back into audio sources.
//
// # Encoding
//
// Encode produces a complete canonical file in memory:
//
//	buf := audio.NewBuffer(24000, 1, 24000)
//	data, err := wav.Encode(buf)
//
// The output is always a 44-byte header (RIFF, fmt, data) followed by the
// samples interleaved frame by frame. Samples are quantized with
// utils.QuantizePCM16; negative values scale by 32768, non-negative by 32767,
// so -1.0 and 1.0 map to the full int16 range. Out-of-range, NaN and
// infinite samples are clamped.
//
// Write streams the same bytes to an io.Writer in fixed-size chunks:
//
//	f, _ := os.Create("clip.wav")
//	err := wav.Write(f, buf)
//
// Both reject a buffer that fails audio.Buffer.Validate before producing any
// output.
//
// # Decoding
//
// Decoder walks the RIFF chunk list, so extra chunks such as LIST or fact are
// skipped. Supported encodings:
//   - PCM 16-bit
//   - G.711 A-law and µ-law, 8-bit
//
// Inspect reports the fmt fields and data size without reading samples:
//
//	hdr, err := wav.Inspect(f)
//	fmt.Println(hdr.Channels, hdr.SampleRate, hdr.Duration())
//
// # Errors
//
//   - ErrNotWavFile: missing RIFF/WAVE signature
//   - ErrUnsupportedWavLayout: malformed chunk structure
//   - ErrMissingChunk: no fmt or data chunk
//   - ErrOnlyPCM16bitSupported: PCM at a bit depth other than 16
//   - ErrUnsupportedEncoding: any other format tag
package wav
