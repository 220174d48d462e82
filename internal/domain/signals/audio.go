package signals

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/forPelevin/viralclip/internal/ports"
	"github.com/forPelevin/viralclip/internal/types"
)

type AudioOptions struct {
	SampleRate  int
	FrameLength int
	HopLength   int
	Alignment   Alignment
}

func DefaultAudioOptions() AudioOptions {
	return AudioOptions{SampleRate: 22050, FrameLength: 2048, HopLength: 512, Alignment: AlignUniform}
}

// AudioAnalyzer turns a media file's audio track into one normalized
// energy value per sentence.
type AudioAnalyzer struct {
	dec  ports.AudioDecoder
	opts AudioOptions
	log  *zap.Logger
}

func NewAudioAnalyzer(dec ports.AudioDecoder, opts AudioOptions, log *zap.Logger) *AudioAnalyzer {
	def := DefaultAudioOptions()
	if opts.SampleRate <= 0 {
		opts.SampleRate = def.SampleRate
	}
	if opts.FrameLength <= 0 {
		opts.FrameLength = def.FrameLength
	}
	if opts.HopLength <= 0 {
		opts.HopLength = def.HopLength
	}
	if opts.Alignment == "" {
		opts.Alignment = def.Alignment
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AudioAnalyzer{dec: dec, opts: opts, log: log.With(zap.String("component", "audio"))}
}

// Energy returns one value in [0, 1] per sentence. Any failure yields
// Neutral for every slot.
func (a *AudioAnalyzer) Energy(ctx context.Context, mediaPath string, sentences []types.Sentence) []float64 {
	n := len(sentences)
	if n == 0 {
		return nil
	}
	if mediaPath == "" || a.dec == nil {
		return Fill(n, Neutral)
	}

	acc := NewRMSAccumulator(a.opts.FrameLength, a.opts.HopLength)
	err := a.dec.StreamMono(ctx, mediaPath, a.opts.SampleRate, func(chunk []float64) error {
		acc.Push(chunk)
		return ctx.Err()
	})
	if err == nil && acc.Samples() == 0 {
		err = errors.New("empty waveform")
	}
	if err != nil {
		a.log.Warn("audio analysis failed; using neutral energy",
			zap.String("media", mediaPath), zap.Error(err))
		return Fill(n, Neutral)
	}

	env := Normalize(acc.Finish())
	rate := float64(a.opts.SampleRate) / float64(a.opts.HopLength)

	var spans []Span
	switch a.opts.Alignment {
	case AlignTimestamps:
		spans = SentenceSpans(sentences)
	default:
		duration := float64(acc.Samples()) / float64(a.opts.SampleRate)
		spans = UniformSpans(n, duration)
	}

	out := SlotMeans(env, rate, spans)
	a.log.Debug("audio energy ready",
		zap.Int("frames", len(env)), zap.Int("slots", len(out)), zap.String("alignment", string(a.opts.Alignment)))
	return out
}
