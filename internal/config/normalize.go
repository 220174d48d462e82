package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeSignals()
	if err := c.normalizeLexicon(); err != nil {
		return err
	}
	c.normalizeSemantic()
	c.normalizeMedia()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeSignals() {
	c.Signals.Alignment = strings.ToLower(strings.TrimSpace(c.Signals.Alignment))
	if c.Signals.Alignment == "" {
		c.Signals.Alignment = Default().Signals.Alignment
	}
}

func (c *Config) normalizeLexicon() error {
	var err error
	if c.Lexicon.Path, err = expandPath(strings.TrimSpace(c.Lexicon.Path)); err != nil {
		return fmt.Errorf("lexicon.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeSemantic() {
	s := &c.Semantic
	s.APIKey = strings.TrimSpace(s.APIKey)
	if s.APIKey == "" {
		s.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}
	s.Provider = strings.ToLower(strings.TrimSpace(s.Provider))
	if env := strings.ToLower(strings.TrimSpace(os.Getenv("VIRALCLIP_EMBEDDING_PROVIDER"))); env != "" && (s.Provider == "" || s.Provider == Default().Semantic.Provider) {
		s.Provider = env
	}
	if s.Provider == "" {
		s.Provider = Default().Semantic.Provider
	}
	s.BaseURL = strings.TrimSpace(s.BaseURL)
	if s.BaseURL == "" {
		s.BaseURL = strings.TrimSpace(os.Getenv("OPENAI_BASE_URL"))
	}
	if len(s.AllowedHosts) == 0 {
		s.AllowedHosts = splitList(os.Getenv("OPENAI_ALLOWED_HOSTS"))
	}
	s.Model = strings.TrimSpace(s.Model)
	if env := strings.TrimSpace(os.Getenv("VIRALCLIP_EMBEDDING_MODEL")); env != "" && (s.Model == "" || s.Model == Default().Semantic.Model) {
		s.Model = env
	}
	if s.Model == "" {
		s.Model = Default().Semantic.Model
	}

	concepts := make([]string, 0, len(s.Concepts))
	for _, v := range s.Concepts {
		if v = strings.TrimSpace(v); v != "" {
			concepts = append(concepts, v)
		}
	}
	s.Concepts = concepts
	if len(s.Concepts) == 0 {
		s.Concepts = Default().Semantic.Concepts
	}
}

func (c *Config) normalizeMedia() {
	c.Media.FFmpeg = strings.TrimSpace(c.Media.FFmpeg)
	if c.Media.FFmpeg == "" {
		c.Media.FFmpeg = defaultFFmpeg
	}
	c.Media.FFprobe = strings.TrimSpace(c.Media.FFprobe)
	if c.Media.FFprobe == "" {
		c.Media.FFprobe = defaultFFprobe
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
