package config

import (
	"fmt"

	"github.com/forPelevin/viralclip/internal/domain/highlights"
	"github.com/forPelevin/viralclip/internal/domain/signals"
	"github.com/forPelevin/viralclip/internal/ports/adapters/openai"
)

// Validate ensures the configuration is usable. Errors wrap
// highlights.ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := c.validateClips(); err != nil {
		return err
	}
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	if err := c.validateSignals(); err != nil {
		return err
	}
	if err := c.validateSemantic(); err != nil {
		return err
	}
	return c.validateLogging()
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{highlights.ErrInvalidConfig}, args...)...)
}

func (c *Config) validateClips() error {
	cl := c.Clips
	if cl.MinDuration <= 0 {
		return invalid("clips.min_duration must be > 0")
	}
	if cl.MaxDuration <= cl.MinDuration {
		return invalid("clips.max_duration (%v) must be greater than clips.min_duration (%v)", cl.MaxDuration, cl.MinDuration)
	}
	if cl.TopN <= 0 {
		return invalid("clips.top_n must be > 0")
	}
	if cl.OverlapThreshold < 0 || cl.OverlapThreshold > 1 {
		return invalid("clips.overlap_threshold must be in [0, 1]")
	}
	return nil
}

func (c *Config) validateSignals() error {
	s := c.Signals
	if _, err := signals.ParseAlignment(s.Alignment); err != nil {
		return invalid("signals.alignment: %v", err)
	}
	if s.AudioSampleRate <= 0 {
		return invalid("signals.audio_sample_rate must be > 0")
	}
	if s.AudioFrameLength <= 0 || s.AudioHopLength <= 0 {
		return invalid("signals.audio_frame_length and signals.audio_hop_length must be > 0")
	}
	if s.FrameIntervalSeconds <= 0 {
		return invalid("signals.frame_interval_seconds must be > 0")
	}
	if s.FrameWidth <= 0 || s.FrameHeight <= 0 {
		return invalid("signals.frame_width and signals.frame_height must be > 0")
	}
	return nil
}

func (c *Config) validateSemantic() error {
	if !c.Semantic.Enabled || c.Semantic.APIKey == "" {
		return nil
	}
	if _, err := openai.LookupProvider(c.Semantic.Provider); err != nil {
		return invalid("semantic.provider: %v", err)
	}
	if _, err := openai.ResolveBaseURL(c.Semantic.Provider, c.Semantic.BaseURL, c.Semantic.AllowedHosts); err != nil {
		return invalid("semantic.base_url: %v", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return invalid("logging.format %q must be console or json", c.Logging.Format)
	}
	return nil
}
