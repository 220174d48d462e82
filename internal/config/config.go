package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/forPelevin/viralclip/internal/domain/highlights"
)

// Clips bounds candidate windows and the final selection.
type Clips struct {
	MinDuration      float64 `toml:"min_duration"`
	MaxDuration      float64 `toml:"max_duration"`
	TopN             int     `toml:"top_n"`
	OverlapThreshold float64 `toml:"overlap_threshold"`
}

// Signals tunes audio and visual extraction.
type Signals struct {
	Alignment            string  `toml:"alignment"`
	AudioSampleRate      int     `toml:"audio_sample_rate"`
	AudioFrameLength     int     `toml:"audio_frame_length"`
	AudioHopLength       int     `toml:"audio_hop_length"`
	FrameIntervalSeconds float64 `toml:"frame_interval_seconds"`
	FrameWidth           int     `toml:"frame_width"`
	FrameHeight          int     `toml:"frame_height"`
}

// Lexicon points at an optional replacement keyword file.
type Lexicon struct {
	Path string `toml:"path"`
}

// Semantic configures the embeddings backend.
type Semantic struct {
	Enabled      bool     `toml:"enabled"`
	APIKey       string   `toml:"api_key"`
	Provider     string   `toml:"provider"`
	BaseURL      string   `toml:"base_url"`
	AllowedHosts []string `toml:"allowed_hosts"`
	Model        string   `toml:"model"`
	Concepts     []string `toml:"concepts"`
}

type Media struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Config struct {
	Clips    Clips              `toml:"clips"`
	Weights  highlights.Weights `toml:"weights"`
	Signals  Signals            `toml:"signals"`
	Lexicon  Lexicon            `toml:"lexicon"`
	Semantic Semantic           `toml:"semantic"`
	Media    Media              `toml:"media"`
	Logging  Logging            `toml:"logging"`
}

// Load reads path over the defaults, then normalizes and validates the
// result. An empty path, or one that does not exist, yields the defaults;
// the boolean reports whether a file was read.
func Load(path string) (*Config, bool, error) {
	cfg := Default()

	exists := false
	if strings.TrimSpace(path) != "" {
		resolved, err := expandPath(path)
		if err != nil {
			return nil, false, err
		}
		file, err := os.Open(resolved)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, false, fmt.Errorf("open config: %w", err)
		default:
			defer file.Close()
			exists = true
			if err := toml.NewDecoder(file).DisallowUnknownFields().Decode(&cfg); err != nil {
				return nil, false, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return &cfg, exists, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}
