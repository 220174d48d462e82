package highlights

import (
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed lexicon.toml
var defaultLexiconTOML string

// Keyword is a phrase that boosts the heuristic score when it appears
// anywhere in the clip text.
type Keyword struct {
	Phrase string
	Weight float64
}

// Lexicon holds the static word tables used by HeuristicScorer.
// Keywords are lower-case, unique and sorted by phrase; sentiment lists are
// lower-case and unique.
type Lexicon struct {
	Keywords []Keyword
	Positive []string
	Negative []string
}

type lexiconFile struct {
	Keywords map[string]float64 `toml:"keywords"`
	Positive []string           `toml:"positive"`
	Negative []string           `toml:"negative"`
}

var defaultLexicon = sync.OnceValues(func() (Lexicon, error) {
	return LoadLexicon(strings.NewReader(defaultLexiconTOML))
})

// DefaultLexicon returns a copy of the built-in EN/PT/ES tables.
func DefaultLexicon() Lexicon {
	lex, err := defaultLexicon()
	if err != nil {
		panic(fmt.Sprintf("embedded lexicon: %v", err))
	}
	return lex.clone()
}

// LoadLexicon decodes a lexicon TOML document.
func LoadLexicon(r io.Reader) (Lexicon, error) {
	var f lexiconFile
	if err := toml.NewDecoder(r).Decode(&f); err != nil {
		return Lexicon{}, fmt.Errorf("parse lexicon: %w", err)
	}
	lex := Lexicon{Positive: f.Positive, Negative: f.Negative}
	for phrase, w := range f.Keywords {
		if w < 0 {
			return Lexicon{}, fmt.Errorf("parse lexicon: keyword %q has negative weight", phrase)
		}
		lex.Keywords = append(lex.Keywords, Keyword{Phrase: phrase, Weight: w})
	}
	return lex.normalize(), nil
}

func (l Lexicon) normalize() Lexicon {
	lower := cases.Lower(language.Und)

	byPhrase := make(map[string]float64, len(l.Keywords))
	for _, kw := range l.Keywords {
		p := strings.TrimSpace(lower.String(kw.Phrase))
		if p == "" {
			continue
		}
		byPhrase[p] = kw.Weight
	}
	kws := make([]Keyword, 0, len(byPhrase))
	for p, w := range byPhrase {
		kws = append(kws, Keyword{Phrase: p, Weight: w})
	}
	sort.Slice(kws, func(i, j int) bool { return kws[i].Phrase < kws[j].Phrase })

	return Lexicon{
		Keywords: kws,
		Positive: uniqueLower(lower, l.Positive),
		Negative: uniqueLower(lower, l.Negative),
	}
}

func (l Lexicon) clone() Lexicon {
	return Lexicon{
		Keywords: append([]Keyword(nil), l.Keywords...),
		Positive: append([]string(nil), l.Positive...),
		Negative: append([]string(nil), l.Negative...),
	}
}

func uniqueLower(c cases.Caser, words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		v := strings.TrimSpace(c.String(w))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
