// SPDX-License-Identifier: EPL-2.0

// Package audio provides the in-memory and streaming audio primitives used
// by the rest of the module.
//
// # Buffers
//
// A Buffer is a finished, planar block of float PCM: one slice per channel,
// all of equal length, and a single sample rate. It is what a model
// inference call or an offline render hands to the WAV encoder:
//
//	buf := audio.NewBuffer(24000, 1, 24000) // one second of mono silence
//	if err := buf.Validate(); err != nil {
//	    // shape contract violated
//	}
//
// Validate reports ErrNoChannels, ErrTooManyChannels,
// ErrChannelLengthMismatch, ErrInvalidSampleRate or ErrBufferTooLarge.
//
// # Sources
//
// Source streams interleaved float32 samples. Decoders, the Resampler,
// the MonoMixer and BufferSource all implement it and can be chained:
//
//	res := audio.NewResampler(src, 24000)
//	mono := audio.NewMonoMixer(res)
//	buf, err := audio.Collect(ctx, mono)
//
// # Rendering
//
// Renderer is the collaborator that produces a Buffer asynchronously.
// Callers that need cancellation cancel the render, never the encode.
// SourceRenderer renders any Source; RendererFunc adapts a closure.
//
// # Format Registry
//
// Registry maps format keys and file extensions to decoders:
//
//	reg := audio.NewRegistry()
//	reg.Register(wav.Decoder{}, "wav", "wave")
//	dec, err := reg.ForPath("upload.WAV")
//
// # Analysis
//
// Peaks reduces a Buffer to per-bin peak levels for waveform displays.
// ByteProfile and ScaleLevels cover the cheap preview paths that work on
// raw bytes and analyser levels.
package audio
