package semantic

import (
	"context"
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/forPelevin/viralclip/internal/ports"
)

// NullEmbedder stands in for an unavailable backend. Its zero vectors have
// no similarity to anything.
type NullEmbedder struct{}

func (NullEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	return make([][]float32, len(texts)), nil
}

// Scorer rates sentences by their closeness to a fixed set of concepts.
// The concept embeddings are computed once, on first use; after that the
// Scorer is read-only and safe for concurrent use.
type Scorer struct {
	backend  ports.Embedder
	concepts []string
	log      *zap.Logger

	once     sync.Once
	embedder ports.Embedder
	refs     [][]float32
}

func NewScorer(e ports.Embedder, concepts []string, log *zap.Logger) *Scorer {
	if e == nil {
		e = NullEmbedder{}
	}
	if len(concepts) == 0 {
		concepts = DefaultConcepts()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scorer{
		backend:  e,
		concepts: append([]string(nil), concepts...),
		log:      log.With(zap.String("component", "semantic")),
	}
}

// Available reports whether the backend produced the concept embeddings.
func (s *Scorer) Available(ctx context.Context) bool {
	s.init(ctx)
	_, null := s.embedder.(NullEmbedder)
	return !null
}

func (s *Scorer) init(ctx context.Context) {
	s.once.Do(func() {
		s.embedder = NullEmbedder{}
		if _, null := s.backend.(NullEmbedder); null {
			s.log.Info("semantic backend disabled; scoring sentences as 0")
			return
		}
		// The references outlive this call, so its cancellation does not apply.
		refs, err := s.backend.Embed(context.WithoutCancel(ctx), s.concepts)
		if err == nil && len(refs) != len(s.concepts) {
			err = fmt.Errorf("got %d vectors for %d concepts", len(refs), len(s.concepts))
		}
		if err != nil {
			s.log.Warn("semantic backend unavailable; scoring sentences as 0", zap.Error(err))
			return
		}
		s.refs = refs
		s.embedder = s.backend
		s.log.Info("semantic references ready", zap.Int("concepts", len(refs)))
	})
}

// Affinities returns, per sentence, the best cosine similarity against the
// concept references, clamped to [0, 1]. Failures yield zeros.
func (s *Scorer) Affinities(ctx context.Context, sentences []string) []float64 {
	out := make([]float64, len(sentences))
	if len(sentences) == 0 {
		return out
	}
	s.init(ctx)
	if len(s.refs) == 0 {
		return out
	}

	vecs, err := s.embedder.Embed(ctx, sentences)
	if err == nil && len(vecs) != len(sentences) {
		err = fmt.Errorf("got %d vectors for %d sentences", len(vecs), len(sentences))
	}
	if err != nil {
		s.log.Warn("embed sentences failed; scoring sentences as 0", zap.Error(err))
		return out
	}

	for i, v := range vecs {
		best := 0.0
		for _, ref := range s.refs {
			best = max(best, Cosine(v, ref))
		}
		out[i] = min(1, best)
	}
	return out
}

// Cosine returns the cosine similarity of a and b, or 0 when either is a
// zero vector or their dimensions differ.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
