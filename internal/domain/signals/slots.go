package signals

import (
	"fmt"
	"strings"

	"github.com/forPelevin/viralclip/internal/types"
)

// Neutral is the slot value used when a signal cannot be measured.
const Neutral = 0.5

// Alignment selects how sentence slots map onto a signal's timeline.
type Alignment string

const (
	// AlignUniform splits the signal into as many equal spans as there are
	// sentences, ignoring sentence timestamps.
	AlignUniform Alignment = "uniform"
	// AlignTimestamps uses each sentence's own start and end time.
	AlignTimestamps Alignment = "timestamps"
)

func ParseAlignment(s string) (Alignment, error) {
	switch a := Alignment(strings.ToLower(strings.TrimSpace(s))); a {
	case "", AlignUniform:
		return AlignUniform, nil
	case AlignTimestamps:
		return AlignTimestamps, nil
	default:
		return "", fmt.Errorf("unknown slot alignment %q", s)
	}
}

// Span is a time range in seconds (or in series units for uniform index
// partitioning).
type Span struct {
	Start float64
	End   float64
}

// UniformSpans splits [0, total) into n equal spans.
func UniformSpans(n int, total float64) []Span {
	out := make([]Span, n)
	for k := 0; k < n; k++ {
		out[k] = Span{
			Start: float64(k) / float64(n) * total,
			End:   float64(k+1) / float64(n) * total,
		}
	}
	return out
}

func SentenceSpans(sentences []types.Sentence) []Span {
	out := make([]Span, len(sentences))
	for i, s := range sentences {
		out[i] = Span{Start: s.StartTime, End: s.EndTime}
	}
	return out
}

// SlotMeans averages series over each span. rate converts span units into
// series indexes. An empty range widens to one value, a range running past
// the series is clamped, and a range starting past it gets Neutral.
func SlotMeans(series []float64, rate float64, spans []Span) []float64 {
	out := make([]float64, len(spans))
	for k, sp := range spans {
		lo := int(sp.Start * rate)
		hi := int(sp.End * rate)
		if lo < 0 {
			lo = 0
		}
		if lo >= len(series) {
			out[k] = Neutral
			continue
		}
		if hi <= lo {
			hi = lo + 1
		}
		hi = min(hi, len(series))
		out[k] = mean(series[lo:hi])
	}
	return out
}

// Fill returns n copies of v.
func Fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// RangeMean returns the mean of values[first..last] (inclusive) scaled to
// [0, 100].
func RangeMean(values []float64, first, last int) float64 {
	if first < 0 || last >= len(values) || first > last {
		return 0
	}
	return mean(values[first:last+1]) * 100
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}
