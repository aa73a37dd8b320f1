// SPDX-License-Identifier: EPL-2.0

package audiokit_test

import (
	"bytes"
	"context"
	"fmt"

	"github.com/harmony-ai/audiokit"
	"github.com/harmony-ai/audiokit/audio"
	"github.com/harmony-ai/audiokit/formats/wav"
)

// Example_upload prepares an uploaded stereo WAV for a 24 kHz mono model.
func Example_upload() {
	upload := audio.NewBuffer(48000, 2, 48000)
	data, _ := wav.Encode(upload)

	dec, err := audiokit.NewRegistry().ForPath("upload.wav")
	if err != nil {
		fmt.Println(err)
		return
	}

	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer src.Close()

	buf, err := audiokit.PrepareForModel(src, 24000, 4096)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(buf.SampleRate, buf.NumChannels(), buf.Duration())
	// Output: 24000 1 1s
}

func ExampleEncodeRendered() {
	r := audio.RendererFunc(func(context.Context) (*audio.Buffer, error) {
		return &audio.Buffer{
			SampleRate: 44100,
			Channels:   [][]float32{{1.0, -1.0}, {-1.0, 1.0}},
		}, nil
	})

	data, err := audiokit.EncodeRendered(context.Background(), r)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(len(data))
	fmt.Printf("% x\n", data[wav.HeaderSize:])
	// Output:
	// 52
	// ff 7f 00 80 00 80 ff 7f
}

func ExampleNewRegistry() {
	fmt.Println(audiokit.NewRegistry().Formats())
	// Output: [aif aiff mp3 oga ogg wav wave]
}
