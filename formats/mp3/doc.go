// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 uploads into an audio.Source using
// github.com/hajimehoshi/go-mp3.
//
// The source always reports two channels at the stream's sample rate and
// yields whole stereo frames. Pass it through audio.NewMonoMixer and
// audio.NewResampler to reach the model's format:
//
//	src, err := mp3.Decoder{}.Decode(f)
//	buf, err := audiokit.PrepareForModel(src, 24000, 4096)
//
// A stream go-mp3 cannot sync to is reported as ErrNotMP3File.
package mp3
