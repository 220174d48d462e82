package cli

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/forPelevin/viralclip/internal/config"
	"github.com/forPelevin/viralclip/internal/domain/highlights"
	"github.com/forPelevin/viralclip/internal/logging"
	"github.com/forPelevin/viralclip/internal/pipeline"
)

func run(cmd *cobra.Command, input string) error {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	mediaPath, _ := flags.GetString("media")
	outDir, _ := flags.GetString("out")
	format, _ := flags.GetString("format")

	settings, _, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	applyFlagOverrides(cmd, settings)
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := logging.New(logging.Options{
		Level:  settings.Logging.Level,
		Format: settings.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer func() { _ = log.Sync() }()

	absIn, err := filepath.Abs(input)
	if err != nil {
		return err
	}
	if mediaPath != "" {
		if mediaPath, err = filepath.Abs(mediaPath); err != nil {
			return err
		}
	}

	cfg := pipeline.Config{
		TranscriptPath: absIn,
		MediaPath:      mediaPath,
		OutDir:         outDir,
		Format:         format,
		Settings:       *settings,
		Logger:         log,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Debug("starting run",
		zap.String("transcript", absIn),
		zap.String("media", mediaPath),
		zap.Float64("min_duration", settings.Clips.MinDuration),
		zap.Float64("max_duration", settings.Clips.MaxDuration),
	)
	return pipeline.Run(ctx, cfg, cmd.OutOrStdout())
}

// applyFlagOverrides copies explicitly set flags over the loaded settings.
func applyFlagOverrides(cmd *cobra.Command, s *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("min") {
		s.Clips.MinDuration, _ = flags.GetFloat64("min")
	}
	if flags.Changed("max") {
		s.Clips.MaxDuration, _ = flags.GetFloat64("max")
	}
	if flags.Changed("top") {
		s.Clips.TopN, _ = flags.GetInt("top")
	}
	if flags.Changed("overlap") {
		s.Clips.OverlapThreshold, _ = flags.GetFloat64("overlap")
	}
	if only, _ := flags.GetBool("heuristic-only"); only {
		s.Weights = highlights.HeuristicOnlyWeights()
		s.Semantic.Enabled = false
	}
	if flags.Changed("log-level") {
		level, _ := flags.GetString("log-level")
		s.Logging.Level = strings.ToLower(strings.TrimSpace(level))
	}
}
