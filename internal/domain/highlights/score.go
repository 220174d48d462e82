package highlights

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	MaxScore = 99.9

	heuristicBase     = 70.0
	keywordUnit       = 5.0
	keywordCap        = 25.0
	fastPaceWPS       = 2.5
	fastPaceBonus     = 5.0
	sentimentUnit     = 2.0
	sentimentCap      = 5.0
	intensityUnit     = 1.0
	intensityCap      = 3.0
	capsWordMinLength = 3
)

// HeuristicBreakdown lists the parts that make up a heuristic score.
type HeuristicBreakdown struct {
	Base      float64
	Keyword   float64
	Pace      float64
	Sentiment float64
	Exclaim   float64
	Caps      float64
	Total     float64
}

// HeuristicScorer scores clip text with lexical, sentiment and pace signals.
// It is a pure function of its lexicon and inputs and safe for concurrent use.
type HeuristicScorer struct {
	keywords []Keyword
	positive map[string]struct{}
	negative map[string]struct{}
}

func NewHeuristicScorer(lex Lexicon) *HeuristicScorer {
	lex = lex.normalize()
	return &HeuristicScorer{
		keywords: lex.Keywords,
		positive: toSet(lex.Positive),
		negative: toSet(lex.Negative),
	}
}

// Score returns a value in [70, 99.9].
func (s *HeuristicScorer) Score(text string, duration float64) float64 {
	return s.Explain(text, duration).Total
}

func (s *HeuristicScorer) Explain(text string, duration float64) HeuristicBreakdown {
	lower := cases.Lower(language.Und).String(text)

	b := HeuristicBreakdown{Base: heuristicBase}

	for _, kw := range s.keywords {
		if strings.Contains(lower, kw.Phrase) {
			b.Keyword += keywordUnit * kw.Weight
		}
	}
	b.Keyword = min(keywordCap, b.Keyword)

	fields := strings.Fields(text)
	if duration > 0 && float64(len(fields))/duration > fastPaceWPS {
		b.Pace = fastPaceBonus
	}

	hits := 0
	seen := make(map[string]struct{})
	for _, tok := range strings.Fields(lower) {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		if _, ok := s.positive[tok]; ok {
			hits++
		}
		if _, ok := s.negative[tok]; ok {
			hits++
		}
	}
	b.Sentiment = min(sentimentCap, sentimentUnit*float64(hits))

	b.Exclaim = min(intensityCap, intensityUnit*float64(strings.Count(text, "!")))

	caps := 0
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= capsWordMinLength && isUpperWord(f) {
			caps++
		}
	}
	b.Caps = min(intensityCap, intensityUnit*float64(caps))

	total := b.Base + b.Keyword + b.Pace + b.Sentiment + b.Exclaim + b.Caps
	b.Total = clamp(total, 0, MaxScore)
	return b
}

// isUpperWord reports whether w has at least one cased letter and no
// lower-case ones ("WOW!" and "OK2" qualify, "123" does not).
func isUpperWord(w string) bool {
	cased := false
	for _, r := range w {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}

func toSet(words []string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}

func clamp(x, a, b float64) float64 {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}
