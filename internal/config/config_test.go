package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/forPelevin/viralclip/internal/config"
	"github.com/forPelevin/viralclip/internal/domain/highlights"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_ALLOWED_HOSTS", "VIRALCLIP_EMBEDDING_MODEL", "VIRALCLIP_EMBEDDING_PROVIDER"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "viralclip.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected no config file")
	}
	if cfg.Clips.MinDuration != 30 || cfg.Clips.MaxDuration != 60 {
		t.Fatalf("unexpected clip bounds: %+v", cfg.Clips)
	}
	if cfg.Clips.TopN != 10 || cfg.Clips.OverlapThreshold != 0.3 {
		t.Fatalf("unexpected selection defaults: %+v", cfg.Clips)
	}
	if cfg.Weights != highlights.DefaultWeights() {
		t.Fatalf("unexpected weights: %+v", cfg.Weights)
	}
	if cfg.Signals.Alignment != "uniform" || cfg.Signals.AudioSampleRate != 22050 {
		t.Fatalf("unexpected signals: %+v", cfg.Signals)
	}
	if !cfg.Semantic.Enabled || cfg.Semantic.APIKey != "" {
		t.Fatalf("unexpected semantic defaults: %+v", cfg.Semantic)
	}
	if len(cfg.Semantic.Concepts) != 19 {
		t.Fatalf("expected 19 default concepts, got %d", len(cfg.Semantic.Concepts))
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, exists, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected missing file to be reported")
	}
	if cfg.Clips.MinDuration != config.Default().Clips.MinDuration {
		t.Fatalf("expected defaults, got %+v", cfg.Clips)
	}
}

func TestLoadCustomFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[clips]
min_duration = 15
max_duration = 45
top_n = 3

[weights]
semantic = 0
heuristic = 1
audio = 0
visual = 0

[signals]
alignment = "Timestamps"

[semantic]
enabled = false
concepts = ["  plot twist ", ""]

[logging]
level = "DEBUG"
format = "json"
`)

	cfg, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be read")
	}
	if cfg.Clips.MinDuration != 15 || cfg.Clips.MaxDuration != 45 || cfg.Clips.TopN != 3 {
		t.Fatalf("unexpected clips: %+v", cfg.Clips)
	}
	if cfg.Clips.OverlapThreshold != 0.3 {
		t.Fatalf("unset keys should keep defaults, got %v", cfg.Clips.OverlapThreshold)
	}
	if cfg.Weights != highlights.HeuristicOnlyWeights() {
		t.Fatalf("unexpected weights: %+v", cfg.Weights)
	}
	if cfg.Signals.Alignment != "timestamps" {
		t.Fatalf("expected normalized alignment, got %q", cfg.Signals.Alignment)
	}
	if cfg.Semantic.Enabled {
		t.Fatal("expected semantic disabled")
	}
	if len(cfg.Semantic.Concepts) != 1 || cfg.Semantic.Concepts[0] != "plot twist" {
		t.Fatalf("unexpected concepts: %q", cfg.Semantic.Concepts)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging: %+v", cfg.Logging)
	}
}

func TestEnvFillsEmptySemanticFields(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("OPENAI_BASE_URL", "https://llm.internal/v1")
	t.Setenv("OPENAI_ALLOWED_HOSTS", "llm.internal, other.internal")
	t.Setenv("VIRALCLIP_EMBEDDING_MODEL", "custom-embed")

	cfg, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	s := cfg.Semantic
	if s.APIKey != "env-key" || s.BaseURL != "https://llm.internal/v1" || s.Model != "custom-embed" {
		t.Fatalf("env values not applied: %+v", s)
	}
	if len(s.AllowedHosts) != 2 || s.AllowedHosts[1] != "other.internal" {
		t.Fatalf("unexpected allowed hosts: %q", s.AllowedHosts)
	}
}

func TestProviderFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("VIRALCLIP_EMBEDDING_PROVIDER", " OpenRouter ")

	cfg, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Semantic.Provider != "openrouter" {
		t.Fatalf("expected env provider, got %q", cfg.Semantic.Provider)
	}
	cfg.Semantic.APIKey = "k"
	cfg.Semantic.BaseURL = "https://openrouter.ai/api/v1"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("openrouter URL should be allowed for the openrouter provider: %v", err)
	}
}

func TestFileKeyWinsOverEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "env-key")
	path := writeConfig(t, `
[semantic]
api_key = "file-key"
`)
	cfg, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Semantic.APIKey != "file-key" {
		t.Fatalf("expected file key, got %q", cfg.Semantic.APIKey)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
		want   string
	}{
		{name: "min duration", mutate: func(c *config.Config) { c.Clips.MinDuration = 0 }, want: "clips.min_duration"},
		{name: "max below min", mutate: func(c *config.Config) { c.Clips.MaxDuration = 10 }, want: "clips.max_duration"},
		{name: "top n", mutate: func(c *config.Config) { c.Clips.TopN = 0 }, want: "clips.top_n"},
		{name: "overlap", mutate: func(c *config.Config) { c.Clips.OverlapThreshold = 2 }, want: "clips.overlap_threshold"},
		{name: "weights", mutate: func(c *config.Config) { c.Weights.Audio = 0.9 }, want: "weights"},
		{name: "alignment", mutate: func(c *config.Config) { c.Signals.Alignment = "nearest" }, want: "signals.alignment"},
		{name: "sample rate", mutate: func(c *config.Config) { c.Signals.AudioSampleRate = 0 }, want: "signals.audio_sample_rate"},
		{name: "frame size", mutate: func(c *config.Config) { c.Signals.FrameWidth = 0 }, want: "signals.frame_width"},
		{
			name: "base url host",
			mutate: func(c *config.Config) {
				c.Semantic.APIKey = "k"
				c.Semantic.BaseURL = "https://evil.example/v1"
			},
			want: "semantic.base_url",
		},
		{
			name: "unknown provider",
			mutate: func(c *config.Config) {
				c.Semantic.APIKey = "k"
				c.Semantic.Provider = "acme"
			},
			want: "semantic.provider",
		},
		{
			name: "base url outside provider",
			mutate: func(c *config.Config) {
				c.Semantic.APIKey = "k"
				c.Semantic.BaseURL = "https://openrouter.ai/api/v1"
			},
			want: "semantic.base_url",
		},
		{name: "log level", mutate: func(c *config.Config) { c.Logging.Level = "verbose" }, want: "logging.level"},
		{name: "log format", mutate: func(c *config.Config) { c.Logging.Format = "xml" }, want: "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, highlights.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q in error, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[clips]
min_duraton = 10
`)
	if _, _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error for unknown key, got %v", err)
	}
}
