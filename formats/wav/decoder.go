// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/harmony-ai/audiokit/audio"
	"github.com/youpy/go-riff"
	"github.com/zaf/g711"
)

// WAVE format tags understood by the decoder.
const (
	FormatPCM   = 1
	FormatALaw  = 6
	FormatMULaw = 7
)

// Header is the parsed fmt chunk plus the size of the data chunk.
type Header struct {
	AudioFormat   uint16
	Channels      int
	SampleRate    int
	ByteRate      int
	BlockAlign    int
	BitsPerSample int
	DataSize      int64
}

// Frames is the number of sample frames in the data chunk.
func (h Header) Frames() int64 {
	if h.BlockAlign <= 0 {
		return 0
	}
	return h.DataSize / int64(h.BlockAlign)
}

func (h Header) Duration() time.Duration {
	if h.SampleRate <= 0 {
		return 0
	}
	return time.Duration(h.Frames()) * time.Second / time.Duration(h.SampleRate)
}

type readerAt interface {
	io.Reader
	io.ReaderAt
}

// Inspect parses the RIFF structure of r and reports the format without
// decoding samples. Unknown chunks are skipped.
func Inspect(r io.Reader) (Header, error) {
	ra, err := asReaderAt(r)
	if err != nil {
		return Header{}, err
	}

	hdr, _, err := parse(ra)
	if err != nil {
		return Header{}, err
	}
	return hdr, nil
}

type wavSource struct {
	data     io.Reader
	format   uint16
	width    int // bytes per sample in the data chunk
	channels int
	rate     int
	raw      []byte
}

func (s *wavSource) SampleRate() int { return s.rate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) BufSize() int    { return len(s.raw) / s.width }
func (s *wavSource) Close() error    { return nil }

func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	// whole frames only, so a partial frame is never consumed
	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, nil
	}

	need := want * s.width
	if cap(s.raw) < need {
		s.raw = make([]byte, need)
	}

	n, err := io.ReadFull(s.data, s.raw[:need])
	short := err == io.EOF || err == io.ErrUnexpectedEOF
	if err != nil && !short {
		return 0, fmt.Errorf("wav read: %w", err)
	}

	samples := n / s.width
	samples -= samples % s.channels

	raw := s.raw[:samples*s.width]
	switch s.format {
	case FormatALaw:
		for i, b := range raw {
			dst[i] = float32(g711.DecodeAlawFrame(b)) / 32768
		}
	case FormatMULaw:
		for i, b := range raw {
			dst[i] = float32(g711.DecodeUlawFrame(b)) / 32768
		}
	default:
		for i := range samples {
			dst[i] = float32(int16(binary.LittleEndian.Uint16(raw[2*i:]))) / 32768
		}
	}

	if short {
		return samples, io.EOF
	}
	return samples, nil
}

// Decoder reads 16-bit PCM and 8-bit G.711 (A-law, µ-law) WAV files.
// Inputs that are not io.ReaderAt are buffered in memory.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	ra, err := asReaderAt(r)
	if err != nil {
		return nil, err
	}

	hdr, data, err := parse(ra)
	if err != nil {
		return nil, err
	}

	width := 2
	switch hdr.AudioFormat {
	case FormatPCM:
		if hdr.BitsPerSample != 16 {
			return nil, ErrOnlyPCM16bitSupported
		}
	case FormatALaw, FormatMULaw:
		if hdr.BitsPerSample != 8 {
			return nil, fmt.Errorf("%w: G.711 with %d bits", ErrUnsupportedEncoding, hdr.BitsPerSample)
		}
		width = 1
	default:
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedEncoding, hdr.AudioFormat)
	}

	if hdr.Channels < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedWavLayout, hdr.Channels)
	}

	return &wavSource{
		data:     data,
		format:   hdr.AudioFormat,
		width:    width,
		channels: hdr.Channels,
		rate:     hdr.SampleRate,
		raw:      make([]byte, 4096*width),
	}, nil
}

func asReaderAt(r io.Reader) (readerAt, error) {
	if ra, ok := r.(readerAt); ok {
		return ra, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("wav read: %w", err)
	}
	return bytes.NewReader(data), nil
}

// parse validates the RIFF/WAVE signature, then walks the chunk list for
// "fmt " and "data".
func parse(r readerAt) (Header, io.Reader, error) {
	var sig [12]byte
	if _, err := r.ReadAt(sig[:], 0); err != nil {
		return Header{}, nil, ErrNotWavFile
	}
	if string(sig[0:4]) != "RIFF" || string(sig[8:12]) != "WAVE" {
		return Header{}, nil, ErrNotWavFile
	}

	file, err := readRIFF(r)
	if err != nil {
		return Header{}, nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	fmtChunk := findChunk(file, "fmt ")
	if fmtChunk == nil {
		return Header{}, nil, fmt.Errorf("%w: fmt", ErrMissingChunk)
	}
	if fmtChunk.ChunkSize < 16 {
		return Header{}, nil, fmt.Errorf("%w: fmt chunk is %d bytes", ErrUnsupportedWavLayout, fmtChunk.ChunkSize)
	}

	var raw [16]byte
	if _, err := io.ReadFull(fmtChunk, raw[:]); err != nil {
		return Header{}, nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	data := dataSection(r, file)
	if data == nil {
		return Header{}, nil, fmt.Errorf("%w: data", ErrMissingChunk)
	}

	hdr := Header{
		AudioFormat:   binary.LittleEndian.Uint16(raw[0:2]),
		Channels:      int(binary.LittleEndian.Uint16(raw[2:4])),
		SampleRate:    int(binary.LittleEndian.Uint32(raw[4:8])),
		ByteRate:      int(binary.LittleEndian.Uint32(raw[8:12])),
		BlockAlign:    int(binary.LittleEndian.Uint16(raw[12:14])),
		BitsPerSample: int(binary.LittleEndian.Uint16(raw[14:16])),
		DataSize:      data.Size(),
	}

	return hdr, data, nil
}

// readRIFF lists the chunks of r. go-riff panics when a chunk header runs
// past the end of the input.
func readRIFF(r readerAt) (file *riff.RIFFChunk, err error) {
	defer func() {
		if p := recover(); p != nil {
			file, err = nil, fmt.Errorf("truncated chunk list: %v", p)
		}
	}()

	return riff.NewReader(r).Read()
}

// dataSection locates the payload of the "data" chunk at its declared size.
// go-riff rounds odd sizes up to include the pad byte, and it never lists an
// empty chunk in the last eight bytes of the file, which is where a
// header-only WAV keeps its data chunk.
func dataSection(r readerAt, file *riff.RIFFChunk) *io.SectionReader {
	off := int64(12)
	for _, ch := range file.Chunks {
		if string(ch.ChunkID[:]) == "data" {
			return declaredSection(r, off)
		}
		off += 8 + int64(ch.ChunkSize)
	}

	if off+8 > int64(file.FileSize)+8 {
		return nil
	}
	var id [4]byte
	if _, err := r.ReadAt(id[:], off); err != nil || string(id[:]) != "data" {
		return nil
	}
	return declaredSection(r, off)
}

// declaredSection reads the chunk header at off and returns its payload.
func declaredSection(r readerAt, off int64) *io.SectionReader {
	var size [4]byte
	if _, err := r.ReadAt(size[:], off+4); err != nil {
		return nil
	}
	return io.NewSectionReader(r, off+8, int64(binary.LittleEndian.Uint32(size[:])))
}

func findChunk(file *riff.RIFFChunk, id string) *riff.Chunk {
	for _, ch := range file.Chunks {
		if string(ch.ChunkID[:]) == id {
			return ch
		}
	}
	return nil
}
