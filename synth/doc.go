// SPDX-License-Identifier: EPL-2.0

// Package synth generates audio clips from text prompts.
//
// A Handle owns one Backend for its lifetime. There is no package-level
// model; callers Open a handle, share it, and Close it:
//
//	h, err := synth.Open(ctx, synth.NewToneBackend(24000), synth.WithLogger(log))
//	defer h.Close()
//
//	res, err := h.Generate(ctx, synth.Request{Prompt: "lofi piano, rain"})
//	os.WriteFile("clip.wav", res.WAV, 0o644)
//
// ToneBackend is a stub that renders a sine tone. RemoteBackend talks to a
// model server over HTTP.
package synth
