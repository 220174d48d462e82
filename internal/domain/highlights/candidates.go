package highlights

import (
	"github.com/forPelevin/viralclip/internal/types"
)

// BuildWindows proposes candidate clips over consecutive sentences.
// For each start index i the end index grows until the window reaches
// minDur; the last end that keeps the window within maxDur wins. The next
// start hops forward by half the window (at least one sentence), so
// candidates overlap without enumerating every combination.
//
// A single sentence longer than maxDur is never proposed.
func BuildWindows(sentences []types.Sentence, minDur, maxDur float64) []types.Window {
	if len(sentences) == 0 || minDur <= 0 || maxDur <= minDur {
		return nil
	}

	var out []types.Window
	i := 0
	for i < len(sentences) {
		start := sentences[i].StartTime
		last := -1
		for j := i; j < len(sentences); j++ {
			win := sentences[j].EndTime - start
			if win < minDur {
				continue
			}
			if win > maxDur {
				break
			}
			last = j
		}

		if last < 0 {
			i++
			continue
		}

		out = append(out, types.Window{
			First: i,
			Last:  last,
			Start: start,
			End:   sentences[last].EndTime,
		})
		i += max(1, (last-i)/2)
	}
	return out
}
