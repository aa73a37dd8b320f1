// SPDX-License-Identifier: EPL-2.0

// Package audiokit is the audio back end of Harmony AI.
//
// Generated clips are float32 buffers (audio.Buffer) that are encoded to
// 16-bit PCM WAV with formats/wav. Uploaded training clips arrive in any of
// the registered formats and are brought to the model's sample rate, mono,
// before use.
//
// # Quick Start
//
// Prepare an upload:
//
//	reg := audiokit.NewRegistry()
//	dec, err := reg.ForPath("take1.mp3")
//	src, err := dec.Decode(f)
//	buf, err := audiokit.PrepareForModel(src, 24000, 4096)
//
// Encode anything that renders:
//
//	data, err := audiokit.EncodeRendered(ctx, handle.Renderer(req))
//
// # Packages
//
//   - audio: Buffer, Source, Resampler, MonoMixer, Collect, analysis
//   - formats/wav: the encoder, plus a WAV decoder and Inspect
//   - formats/mp3, formats/vorbis, formats/aiff: upload decoders
//   - synth: the generation Handle and its backends
//   - history, export, config: clip bookkeeping, downloads, settings
package audiokit
