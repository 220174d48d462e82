package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/forPelevin/viralclip/internal/config"
	"github.com/forPelevin/viralclip/internal/domain/highlights"
	"github.com/forPelevin/viralclip/internal/domain/semantic"
	"github.com/forPelevin/viralclip/internal/domain/signals"
	"github.com/forPelevin/viralclip/internal/ports"
	"github.com/forPelevin/viralclip/internal/ports/adapters/ffmpeg"
	"github.com/forPelevin/viralclip/internal/ports/adapters/openai"
	"github.com/forPelevin/viralclip/internal/types"
	"github.com/forPelevin/viralclip/internal/usecase"
)

const (
	FormatJSON  = "json"
	FormatTable = "table"

	manifestName = "clips.json"
)

type Config struct {
	TranscriptPath string
	// MediaPath is optional; without it audio and visual score neutral.
	MediaPath string
	// OutDir, when set, receives a per-run directory holding clips.json.
	OutDir string
	Format string

	Settings config.Config
	Logger   *zap.Logger
}

func (c Config) Validate() error {
	if c.TranscriptPath == "" {
		return errors.New("transcript is empty")
	}
	if _, err := os.Stat(c.TranscriptPath); err != nil {
		return fmt.Errorf("stat transcript: %w", err)
	}
	switch c.Format {
	case "", FormatJSON, FormatTable:
	default:
		return fmt.Errorf("format must be %s or %s", FormatJSON, FormatTable)
	}
	return c.Settings.Validate()
}

// Run scores the transcript, optionally writes the manifest into a run
// directory, and prints the clips to stdout.
func Run(ctx context.Context, cfg Config, stdout io.Writer) error {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	s := cfg.Settings

	tr, err := LoadTranscript(cfg.TranscriptPath)
	if err != nil {
		return err
	}
	start, end := tr.Span()
	log.Debug("transcript loaded",
		zap.String("path", cfg.TranscriptPath),
		zap.Int("sentences", len(tr.Sentences)),
		zap.Int("words", len(tr.Words)),
		zap.Float64("span_start", start),
		zap.Float64("span_end", end),
	)

	ucCfg, err := usecaseConfig(s)
	if err != nil {
		return err
	}

	media := ffmpeg.New(s.Media.FFmpeg, s.Media.FFprobe)
	uc := usecase.New(usecase.Deps{
		Embedder: newEmbedder(s.Semantic, log),
		Audio:    media,
		Frames:   media,
		Logger:   log,
	}, ucCfg)

	res, err := uc.Run(ctx, usecase.Input{
		Transcript: tr,
		MediaPath:  cfg.MediaPath,
		Params:     Params(s),
	})
	if err != nil {
		return err
	}

	m := types.Manifest{
		Transcript: cfg.TranscriptPath,
		Media:      cfg.MediaPath,
		Clips:      res.Clips,
	}

	if cfg.OutDir != "" {
		runOutDir := buildRunOutDir(cfg.OutDir, cfg.TranscriptPath, time.Now().UTC())
		if err := os.MkdirAll(runOutDir, 0o755); err != nil {
			return err
		}
		manifestPath := filepath.Join(runOutDir, manifestName)
		if err := writeManifest(manifestPath, m); err != nil {
			return err
		}
		log.Info("manifest written", zap.Int("clips", len(m.Clips)), zap.String("path", manifestPath))
	}

	if cfg.Format == FormatTable {
		_, err := io.WriteString(stdout, renderClips(m.Clips))
		return err
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return nil
}

// Params maps the clip and weight settings onto engine parameters.
func Params(s config.Config) usecase.Params {
	return usecase.Params{
		MinDuration:      s.Clips.MinDuration,
		MaxDuration:      s.Clips.MaxDuration,
		Weights:          s.Weights,
		OverlapThreshold: s.Clips.OverlapThreshold,
		TopN:             s.Clips.TopN,
	}
}

func usecaseConfig(s config.Config) (usecase.Config, error) {
	align, err := signals.ParseAlignment(s.Signals.Alignment)
	if err != nil {
		return usecase.Config{}, err
	}
	out := usecase.Config{
		Concepts:  s.Semantic.Concepts,
		Alignment: align,
		Audio: signals.AudioOptions{
			SampleRate:  s.Signals.AudioSampleRate,
			FrameLength: s.Signals.AudioFrameLength,
			HopLength:   s.Signals.AudioHopLength,
		},
		Visual: signals.VisualOptions{
			Interval: time.Duration(s.Signals.FrameIntervalSeconds * float64(time.Second)),
			Width:    s.Signals.FrameWidth,
			Height:   s.Signals.FrameHeight,
		},
	}
	if s.Lexicon.Path != "" {
		lex, err := loadLexicon(s.Lexicon.Path)
		if err != nil {
			return usecase.Config{}, err
		}
		out.Lexicon = &lex
	}
	return out, nil
}

func loadLexicon(path string) (highlights.Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return highlights.Lexicon{}, fmt.Errorf("open lexicon: %w", err)
	}
	defer f.Close()
	return highlights.LoadLexicon(f)
}

func newEmbedder(s config.Semantic, log *zap.Logger) ports.Embedder {
	switch {
	case !s.Enabled:
		log.Debug("semantic scoring disabled by config")
		return semantic.NullEmbedder{}
	case s.APIKey == "":
		log.Info("no embeddings api key; semantic scoring disabled")
		return semantic.NullEmbedder{}
	}
	baseURL, err := openai.ResolveBaseURL(s.Provider, s.BaseURL, s.AllowedHosts)
	if err != nil {
		log.Warn("embeddings endpoint rejected; semantic scoring disabled", zap.Error(err))
		return semantic.NullEmbedder{}
	}
	log.Debug("embeddings endpoint", zap.String("provider", s.Provider), zap.String("base_url", baseURL))
	return openai.New(s.APIKey, s.Model, baseURL)
}

// LoadTranscript reads a {sentences, words} JSON document.
func LoadTranscript(path string) (types.Transcript, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return types.Transcript{}, fmt.Errorf("read transcript: %w", err)
	}
	var tr types.Transcript
	if err := json.Unmarshal(b, &tr); err != nil {
		return types.Transcript{}, fmt.Errorf("parse transcript %s: %w", filepath.Base(path), err)
	}
	return tr, nil
}

func writeManifest(path string, m types.Manifest) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

func buildRunOutDir(outRoot, input string, now time.Time) string {
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	name = normalizePathSegment(name)
	if name == "" {
		name = "transcript"
	}
	ts := now.UTC().Format("20060102-150405Z")
	runSeed := fmt.Sprintf("%s|%d", input, now.UTC().UnixNano())
	suffix := hash(runSeed)[:6]
	return filepath.Join(outRoot, fmt.Sprintf("%s-%s-%s", name, ts, suffix))
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// ensure adapters implement ports
var _ ports.AudioDecoder = (*ffmpeg.Adapter)(nil)
var _ ports.FrameSampler = (*ffmpeg.Adapter)(nil)
var _ ports.Embedder = (*openai.Embedder)(nil)
