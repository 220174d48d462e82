package config

import (
	"github.com/forPelevin/viralclip/internal/domain/highlights"
	"github.com/forPelevin/viralclip/internal/domain/semantic"
	"github.com/forPelevin/viralclip/internal/domain/signals"
	"github.com/forPelevin/viralclip/internal/ports/adapters/openai"
)

const (
	defaultMinDuration = 30.0
	defaultMaxDuration = 60.0
	defaultFFmpeg      = "ffmpeg"
	defaultFFprobe     = "ffprobe"
	defaultLogLevel    = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	audio := signals.DefaultAudioOptions()
	visual := signals.DefaultVisualOptions()
	return Config{
		Clips: Clips{
			MinDuration:      defaultMinDuration,
			MaxDuration:      defaultMaxDuration,
			TopN:             highlights.DefaultTopN,
			OverlapThreshold: highlights.DefaultOverlapThreshold,
		},
		Weights: highlights.DefaultWeights(),
		Signals: Signals{
			Alignment:            string(signals.AlignUniform),
			AudioSampleRate:      audio.SampleRate,
			AudioFrameLength:     audio.FrameLength,
			AudioHopLength:       audio.HopLength,
			FrameIntervalSeconds: visual.Interval.Seconds(),
			FrameWidth:           visual.Width,
			FrameHeight:          visual.Height,
		},
		Semantic: Semantic{
			Enabled:  true,
			Provider: openai.DefaultProvider,
			Model:    openai.DefaultModel,
			Concepts: semantic.DefaultConcepts(),
		},
		Media: Media{
			FFmpeg:  defaultFFmpeg,
			FFprobe: defaultFFprobe,
		},
		Logging: Logging{
			Level: defaultLogLevel,
		},
	}
}
