// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// Buffer shape violations reported by Buffer.Validate.
	ErrNoChannels            = errors.New("buffer has no channels")
	ErrTooManyChannels       = errors.New("buffer has too many channels")
	ErrChannelLengthMismatch = errors.New("channel length mismatch")
	ErrInvalidSampleRate     = errors.New("sample rate must be a positive 32-bit integer")
	ErrBufferTooLarge        = errors.New("buffer too large for a WAV data chunk")

	ErrUnknownFormat = errors.New("unknown audio format")
)
