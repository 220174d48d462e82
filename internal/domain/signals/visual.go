package signals

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/forPelevin/viralclip/internal/ports"
	"github.com/forPelevin/viralclip/internal/types"
)

type VisualOptions struct {
	Interval  time.Duration
	Width     int
	Height    int
	Alignment Alignment
}

func DefaultVisualOptions() VisualOptions {
	return VisualOptions{Interval: time.Second, Width: 320, Height: 240, Alignment: AlignUniform}
}

// VisualAnalyzer turns a media file's video track into one frame-change
// value per sentence.
type VisualAnalyzer struct {
	frames ports.FrameSampler
	opts   VisualOptions
	log    *zap.Logger
}

func NewVisualAnalyzer(frames ports.FrameSampler, opts VisualOptions, log *zap.Logger) *VisualAnalyzer {
	def := DefaultVisualOptions()
	if opts.Interval <= 0 {
		opts.Interval = def.Interval
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = def.Width, def.Height
	}
	if opts.Alignment == "" {
		opts.Alignment = def.Alignment
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &VisualAnalyzer{frames: frames, opts: opts, log: log.With(zap.String("component", "visual"))}
}

// Change returns one value in [0, 1] per sentence. Any failure yields
// Neutral for every slot.
func (v *VisualAnalyzer) Change(ctx context.Context, mediaPath string, sentences []types.Sentence) []float64 {
	n := len(sentences)
	if n == 0 {
		return nil
	}
	if mediaPath == "" || v.frames == nil {
		return Fill(n, Neutral)
	}

	frames, err := v.frames.SampleGray(ctx, mediaPath, v.opts.Interval, v.opts.Width, v.opts.Height)
	if err == nil && len(frames) < 2 {
		err = fmt.Errorf("need at least 2 frames, got %d", len(frames))
	}
	if err != nil {
		v.log.Warn("visual analysis failed; using neutral change",
			zap.String("media", mediaPath), zap.Error(err))
		return Fill(n, Neutral)
	}

	changes := FrameChanges(frames)

	var out []float64
	switch v.opts.Alignment {
	case AlignTimestamps:
		out = SlotMeans(changes, 1/v.opts.Interval.Seconds(), SentenceSpans(sentences))
	default:
		out = SlotMeans(changes, 1, UniformSpans(n, float64(len(changes))))
	}
	v.log.Debug("visual change ready",
		zap.Int("frames", len(frames)), zap.Int("slots", len(out)), zap.String("alignment", string(v.opts.Alignment)))
	return out
}
