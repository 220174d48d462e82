package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forPelevin/viralclip/internal/domain/highlights"
	"github.com/forPelevin/viralclip/internal/domain/semantic"
	"github.com/forPelevin/viralclip/internal/domain/signals"
	"github.com/forPelevin/viralclip/internal/ports"
	"github.com/forPelevin/viralclip/internal/types"
)

// clipNamespace seeds the name-based clip IDs.
var clipNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("viralclip/clip"))

type Deps struct {
	Embedder ports.Embedder
	Audio    ports.AudioDecoder
	Frames   ports.FrameSampler
	Logger   *zap.Logger
}

type Config struct {
	// Lexicon overrides the embedded keyword set when non-nil.
	Lexicon  *highlights.Lexicon
	Concepts []string
	// Alignment, when set, applies to both the audio and visual analyzers.
	Alignment signals.Alignment
	Audio     signals.AudioOptions
	Visual    signals.VisualOptions
}

// Usecase is built once and shared. After the first Run warms the semantic
// references it holds no mutable state.
type Usecase struct {
	heuristic *highlights.HeuristicScorer
	semantic  *semantic.Scorer
	audio     *signals.AudioAnalyzer
	visual    *signals.VisualAnalyzer
	log       *zap.Logger
}

func New(d Deps, cfg Config) *Usecase {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	lex := highlights.DefaultLexicon()
	if cfg.Lexicon != nil {
		lex = *cfg.Lexicon
	}
	if cfg.Alignment != "" {
		cfg.Audio.Alignment = cfg.Alignment
		cfg.Visual.Alignment = cfg.Alignment
	}
	return &Usecase{
		heuristic: highlights.NewHeuristicScorer(lex),
		semantic:  semantic.NewScorer(d.Embedder, cfg.Concepts, log),
		audio:     signals.NewAudioAnalyzer(d.Audio, cfg.Audio, log),
		visual:    signals.NewVisualAnalyzer(d.Frames, cfg.Visual, log),
		log:       log.With(zap.String("component", "engine")),
	}
}

type Params struct {
	MinDuration      float64
	MaxDuration      float64
	Weights          highlights.Weights
	OverlapThreshold float64
	TopN             int
}

func DefaultParams() Params {
	return Params{
		MinDuration:      30,
		MaxDuration:      60,
		Weights:          highlights.DefaultWeights(),
		OverlapThreshold: highlights.DefaultOverlapThreshold,
		TopN:             highlights.DefaultTopN,
	}
}

func (p Params) Validate() error {
	if !(p.MinDuration > 0) || math.IsInf(p.MinDuration, 0) {
		return fmt.Errorf("%w: min duration must be > 0", highlights.ErrInvalidConfig)
	}
	if !(p.MaxDuration > 0) || math.IsInf(p.MaxDuration, 0) {
		return fmt.Errorf("%w: max duration must be > 0", highlights.ErrInvalidConfig)
	}
	if p.MinDuration >= p.MaxDuration {
		return fmt.Errorf("%w: min duration (%v) must be < max duration (%v)", highlights.ErrInvalidConfig, p.MinDuration, p.MaxDuration)
	}
	if err := p.Weights.Validate(); err != nil {
		return err
	}
	if !(p.OverlapThreshold >= 0 && p.OverlapThreshold <= 1) {
		return fmt.Errorf("%w: overlap threshold must be in [0, 1]", highlights.ErrInvalidConfig)
	}
	if p.TopN <= 0 {
		return fmt.Errorf("%w: top must be > 0", highlights.ErrInvalidConfig)
	}
	return nil
}

type Input struct {
	Transcript types.Transcript
	// MediaPath is optional; without it audio and visual score neutral.
	MediaPath string
	Params    Params
}

type Result struct {
	Clips []types.Clip
}

// Run scores every candidate window of the transcript and returns the
// selected clips, best first. Only invalid Params produce an error.
func (u *Usecase) Run(ctx context.Context, in Input) (Result, error) {
	p := in.Params
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	sents := in.Transcript.Sentences
	if len(sents) == 0 {
		u.log.Info("empty transcript; no clips")
		return Result{Clips: []types.Clip{}}, nil
	}

	windows := highlights.BuildWindows(sents, p.MinDuration, p.MaxDuration)
	if len(windows) == 0 {
		u.log.Info("transcript too short for clip bounds",
			zap.Int("sentences", len(sents)),
			zap.Float64("min_duration", p.MinDuration),
		)
		return Result{Clips: []types.Clip{}}, nil
	}

	slots := u.sentenceSlots(ctx, in, p.Weights)

	cands := make([]types.Clip, 0, len(windows))
	for _, w := range windows {
		cands = append(cands, u.buildClip(in.Transcript, w, slots, p.Weights))
	}

	clips := highlights.Select(cands, highlights.SelectOptions{
		OverlapThreshold: p.OverlapThreshold,
		TopN:             p.TopN,
	})
	u.log.Info("clips selected",
		zap.Int("sentences", len(sents)),
		zap.Int("windows", len(windows)),
		zap.Int("clips", len(clips)),
		zap.Bool("media", in.MediaPath != ""),
	)
	return Result{Clips: clips}, nil
}

// slotValues holds one value per sentence for each signal.
type slotValues struct {
	semantic []float64
	audio    []float64
	visual   []float64
}

// sentenceSlots runs the signal analyzers one after another on the caller's
// goroutine. A signal with zero weight is skipped and reported at its neutral
// value without touching the backend or the media.
func (u *Usecase) sentenceSlots(ctx context.Context, in Input, w highlights.Weights) slotValues {
	sents := in.Transcript.Sentences
	n := len(sents)
	out := slotValues{
		semantic: make([]float64, n),
		audio:    signals.Fill(n, signals.Neutral),
		visual:   signals.Fill(n, signals.Neutral),
	}

	if w.Semantic > 0 {
		texts := make([]string, n)
		for i, s := range sents {
			texts[i] = s.Text
		}
		out.semantic = u.semantic.Affinities(ctx, texts)
	}
	if w.Audio > 0 {
		out.audio = u.audio.Energy(ctx, in.MediaPath, sents)
	}
	if w.Visual > 0 {
		out.visual = u.visual.Change(ctx, in.MediaPath, sents)
	}
	return out
}

func (u *Usecase) buildClip(tr types.Transcript, w types.Window, slots slotValues, weights highlights.Weights) types.Clip {
	sents := tr.Sentences[w.First : w.Last+1]
	parts := make([]string, len(sents))
	for i, s := range sents {
		parts[i] = s.Text
	}
	text := strings.Join(parts, " ")
	dur := w.Duration()

	scores := highlights.ComponentScores{
		Heuristic: u.heuristic.Score(text, dur),
		Semantic:  signals.RangeMean(slots.semantic, w.First, w.Last),
		Audio:     signals.RangeMean(slots.audio, w.First, w.Last),
		Visual:    signals.RangeMean(slots.visual, w.First, w.Last),
	}

	return types.Clip{
		ID:             clipID(w),
		StartTime:      w.Start,
		EndTime:        w.End,
		Duration:       dur,
		StartChar:      sents[0].StartChar,
		EndChar:        sents[len(sents)-1].EndChar,
		Transcript:     text,
		Score:          weights.Aggregate(scores),
		SemanticScore:  scores.Semantic,
		HeuristicScore: scores.Heuristic,
		AudioScore:     scores.Audio,
		VisualScore:    scores.Visual,
		Words:          wordsWithin(tr.Words, w.Start, w.End),
	}
}

func clipID(w types.Window) string {
	name := fmt.Sprintf("%d-%d@%.3f-%.3f", w.First, w.Last, w.Start, w.End)
	return uuid.NewSHA1(clipNamespace, []byte(name)).String()
}

// wordsWithin returns the words fully inside [start, end], never nil.
func wordsWithin(words []types.Word, start, end float64) []types.Word {
	out := make([]types.Word, 0)
	for _, wd := range words {
		if wd.StartTime >= start && wd.EndTime <= end {
			out = append(out, wd)
		}
	}
	return out
}
