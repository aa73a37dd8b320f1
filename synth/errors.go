// SPDX-License-Identifier: EPL-2.0

package synth

import "errors"

var (
	ErrEmptyPrompt    = errors.New("prompt is empty")
	ErrInvalidRequest = errors.New("invalid generation request")
	ErrClosed         = errors.New("synth handle is closed")
	ErrNoBackend      = errors.New("no synthesis backend")
	ErrBackend        = errors.New("synthesis backend failed")
)
