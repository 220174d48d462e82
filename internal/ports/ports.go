package ports

import (
	"context"
	"image"
	"time"
)

// Embedder maps texts to vectors of a fixed dimension, one per input, in order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// AudioDecoder streams the mono waveform of a media file in [-1, 1] to fn,
// chunk by chunk and in order. fn must not retain the chunk; an error from
// fn stops the decode and is returned.
type AudioDecoder interface {
	StreamMono(ctx context.Context, mediaPath string, sampleRate int, fn func(chunk []float64) error) error
}

// FrameSampler returns downscaled grayscale frames taken every interval.
type FrameSampler interface {
	SampleGray(ctx context.Context, mediaPath string, interval time.Duration, width, height int) ([]*image.Gray, error)
}
