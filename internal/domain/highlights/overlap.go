package highlights

import (
	"sort"

	"github.com/forPelevin/viralclip/internal/types"
)

const (
	DefaultOverlapThreshold = 0.3
	DefaultTopN             = 10
)

type SelectOptions struct {
	// OverlapThreshold is the largest tolerated overlap between two accepted
	// clips, as a fraction of the shorter one.
	OverlapThreshold float64
	TopN             int
}

func DefaultSelectOptions() SelectOptions {
	return SelectOptions{OverlapThreshold: DefaultOverlapThreshold, TopN: DefaultTopN}
}

// Select ranks clips by score (earlier start wins ties) and greedily keeps
// those that do not overlap an already kept clip beyond the threshold.
// Rejected clips are dropped whole; nothing is trimmed or merged.
func Select(clips []types.Clip, opts SelectOptions) []types.Clip {
	if len(clips) == 0 || opts.TopN <= 0 {
		return []types.Clip{}
	}

	ranked := append([]types.Clip(nil), clips...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].StartTime < ranked[j].StartTime
	})

	kept := make([]types.Clip, 0, min(opts.TopN, len(ranked)))
	for _, c := range ranked {
		if len(kept) >= opts.TopN {
			break
		}
		if isDistinct(kept, c, opts.OverlapThreshold) {
			kept = append(kept, c)
		}
	}
	return kept
}

// Overlap returns the length of the time range shared by a and b.
func Overlap(a, b types.Clip) float64 {
	start := max(a.StartTime, b.StartTime)
	end := min(a.EndTime, b.EndTime)
	return max(0, end-start)
}

func isDistinct(kept []types.Clip, c types.Clip, threshold float64) bool {
	for _, k := range kept {
		if Overlap(c, k) > threshold*min(c.Duration, k.Duration) {
			return false
		}
	}
	return true
}
