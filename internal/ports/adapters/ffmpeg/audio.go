package ffmpeg

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gopxl/beep/wav"
)

const streamChunk = 4096

// StreamMono extracts the audio track at sampleRate and hands its samples to
// fn in chunks of at most streamChunk. The intermediate WAV lives in a temp
// dir removed before returning.
func (a *Adapter) StreamMono(ctx context.Context, mediaPath string, sampleRate int, fn func(chunk []float64) error) error {
	if sampleRate <= 0 {
		return fmt.Errorf("decode audio: sample rate must be > 0")
	}
	dir, err := os.MkdirTemp("", "viralclip-audio-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	wavPath := filepath.Join(dir, "audio.wav")
	if err := a.ExtractAudioMono(ctx, mediaPath, wavPath, sampleRate); err != nil {
		return err
	}

	f, err := os.Open(wavPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return decodeWAV(f, fn)
}

// decodeWAV reads a WAV stream, averages its channels into one and passes
// each decoded chunk to fn. The chunk slice is reused between calls.
func decodeWAV(r io.Reader, fn func(chunk []float64) error) error {
	stream, format, err := wav.Decode(r)
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}
	defer stream.Close()

	channels := format.NumChannels
	if channels <= 0 {
		channels = 1
	}

	buf := make([][2]float64, streamChunk)
	mono := make([]float64, streamChunk)
	for {
		n, ok := stream.Stream(buf)
		for i, s := range buf[:n] {
			if channels == 1 {
				mono[i] = s[0]
			} else {
				mono[i] = (s[0] + s[1]) / 2
			}
		}
		if n > 0 {
			if err := fn(mono[:n]); err != nil {
				return err
			}
		}
		if !ok {
			break
		}
	}
	if err := stream.Err(); err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}
	return nil
}
