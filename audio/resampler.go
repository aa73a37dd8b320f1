// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/harmony-ai/audiokit/utils"
)

// Resampler converts src to another sample rate with Catmull-Rom
// interpolation, preserving the channel count. When downsampling a one-pole
// low-pass runs on the input to tame aliasing.
type Resampler struct {
	src      Source
	rate     int
	step     float64 // source frames consumed per output frame
	channels int

	// window[1] is the frame at the integer part of pos, window[2] the next.
	// window[0] and window[3] are the outer neighbours.
	window [4][]float32
	valid  [4]bool
	pos    float64
	primed bool
	eof    bool

	frame   []float32
	lowpass *onePole
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()

	r := &Resampler{
		src:      src,
		rate:     dstRate,
		step:     float64(src.SampleRate()) / float64(dstRate),
		channels: channels,
		frame:    make([]float32, channels),
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	if r.step > 1 {
		r.lowpass = newOnePole(channels, 0.5)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("resampler close: %w", err)
	}

	return nil
}

// ReadSamples fills dst with interleaved frames at the target rate.
// len(dst) must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.pos >= 1 {
			r.pos--
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.valid[1] {
			return written * r.channels, io.EOF
		}

		r.interpolate(dst[written*r.channels:(written+1)*r.channels], float32(r.pos))
		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}

func (r *Resampler) prime() error {
	r.primed = true

	for i := 1; i < len(r.window); i++ {
		ok, err := r.pull()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		copy(r.window[i], r.frame)
		r.valid[i] = true
	}

	if !r.valid[1] {
		return io.EOF
	}

	return nil
}

func (r *Resampler) advance() error {
	for i := range len(r.window) - 1 {
		copy(r.window[i], r.window[i+1])
		r.valid[i] = r.valid[i+1]
	}

	ok, err := r.pull()
	if err != nil {
		return err
	}
	if ok {
		copy(r.window[3], r.frame)
	}
	r.valid[3] = ok

	return nil
}

// pull reads one source frame into r.frame.
func (r *Resampler) pull() (bool, error) {
	if r.eof {
		return false, nil
	}

	n, err := r.src.ReadSamples(r.frame)
	if errors.Is(err, io.EOF) {
		r.eof = true
	} else if err != nil {
		return false, fmt.Errorf("resampler read: %w", err)
	}

	if n < r.channels {
		r.eof = true
		return false, nil
	}

	if r.lowpass != nil {
		r.lowpass.apply(r.frame)
	}

	return true, nil
}

func (r *Resampler) interpolate(dst []float32, t float32) {
	for c := range r.channels {
		p1 := r.window[1][c]
		p2 := p1
		if r.valid[2] {
			p2 = r.window[2][c]
		}
		p0 := p1
		if r.valid[0] {
			p0 = r.window[0][c]
		}
		p3 := p2
		if r.valid[3] {
			p3 = r.window[3][c]
		}

		dst[c] = utils.CatmullRom(p0, p1, p2, p3, t)
	}
}

// onePole is y[n] = a*x[n] + (1-a)*y[n-1], seeded with the first frame.
type onePole struct {
	alpha  float32
	state  []float32
	seeded bool
}

func newOnePole(channels int, alpha float32) *onePole {
	return &onePole{alpha: alpha, state: make([]float32, channels)}
}

func (p *onePole) apply(frame []float32) {
	if !p.seeded {
		copy(p.state, frame)
		p.seeded = true
		return
	}

	for c, x := range frame {
		y := p.alpha*x + (1-p.alpha)*p.state[c]
		p.state[c] = y
		frame[c] = y
	}
}
