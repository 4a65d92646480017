package main

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// readWAV decodes a PCM WAV file into one float buffer per channel scaled
// to [-1, 1).
func readWAV(path string) ([][]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%s: not a valid WAV file", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}

	depth := buf.SourceBitDepth
	if depth != 16 && depth != 24 && depth != 32 {
		return nil, 0, fmt.Errorf("%s: unsupported bit depth %d", path, depth)
	}
	nch := buf.Format.NumChannels
	if nch <= 0 {
		return nil, 0, fmt.Errorf("%s: no channels", path)
	}

	scale := 1 / float32(int64(1)<<(depth-1))
	frames := len(buf.Data) / nch
	channels := make([][]float32, nch)
	for ch := range channels {
		channels[ch] = make([]float32, frames)
		for i := range frames {
			channels[ch][i] = float32(buf.Data[i*nch+ch]) * scale
		}
	}
	return channels, buf.Format.SampleRate, nil
}

// writeWAV encodes channels as an interleaved PCM WAV file. Samples are
// clamped to [-1, 1].
func writeWAV(path string, channels [][]float32, sampleRate, bitDepth int) error {
	if len(channels) == 0 {
		return fmt.Errorf("%s: nothing to write", path)
	}
	if bitDepth != 16 && bitDepth != 24 && bitDepth != 32 {
		return fmt.Errorf("unsupported bit depth %d", bitDepth)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	nch := len(channels)
	frames := len(channels[0])
	hi := int64(1)<<(bitDepth-1) - 1
	lo := -hi - 1
	peak := float64(hi)
	data := make([]int, frames*nch)
	for ch, samples := range channels {
		for i, s := range samples[:frames] {
			v := int64(math.Round(max(-1, min(1, float64(s))) * peak))
			data[i*nch+ch] = int(max(lo, min(hi, v)))
		}
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, nch, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: nch,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
