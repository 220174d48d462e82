package highlights

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig marks parameter errors that are rejected before any work.
var ErrInvalidConfig = errors.New("invalid configuration")

const weightSumTolerance = 1e-6

// Weights controls how component scores fuse into the final score.
// A heuristic-only deployment sets Heuristic to 1 and the rest to 0.
type Weights struct {
	Semantic  float64 `json:"semantic" toml:"semantic"`
	Heuristic float64 `json:"heuristic" toml:"heuristic"`
	Audio     float64 `json:"audio" toml:"audio"`
	Visual    float64 `json:"visual" toml:"visual"`
}

func DefaultWeights() Weights {
	return Weights{Semantic: 0.40, Heuristic: 0.25, Audio: 0.20, Visual: 0.15}
}

func HeuristicOnlyWeights() Weights {
	return Weights{Heuristic: 1}
}

func (w Weights) Validate() error {
	for _, c := range []struct {
		name string
		v    float64
	}{
		{"semantic", w.Semantic},
		{"heuristic", w.Heuristic},
		{"audio", w.Audio},
		{"visual", w.Visual},
	} {
		if c.v < 0 || math.IsNaN(c.v) || math.IsInf(c.v, 0) {
			return fmt.Errorf("%w: %s weight must be a finite value >= 0", ErrInvalidConfig, c.name)
		}
	}
	sum := w.Semantic + w.Heuristic + w.Audio + w.Visual
	if math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("%w: weights must sum to 1.0, got %.4f", ErrInvalidConfig, sum)
	}
	return nil
}

// ComponentScores are the per-clip inputs to Aggregate, each in [0, 100].
type ComponentScores struct {
	Heuristic float64
	Semantic  float64
	Audio     float64
	Visual    float64
}

// Aggregate returns the weighted sum of the component scores in [0, 99.9].
func (w Weights) Aggregate(c ComponentScores) float64 {
	total := c.Semantic*w.Semantic +
		c.Heuristic*w.Heuristic +
		c.Audio*w.Audio +
		c.Visual*w.Visual
	return clamp(total, 0, MaxScore)
}
