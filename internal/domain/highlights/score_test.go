package highlights

import (
	"math"
	"strings"
	"testing"
)

const neutral = "We reviewed the numbers in the morning meeting."

func TestScore_Table(t *testing.T) {
	s := NewHeuristicScorer(DefaultLexicon())

	tests := []struct {
		name     string
		text     string
		duration float64
		want     HeuristicBreakdown
	}{
		{
			name:     "neutral",
			text:     neutral,
			duration: 30,
			want:     HeuristicBreakdown{Base: 70, Total: 70},
		},
		{
			name:     "keyword and exclamations",
			text:     "That was amazing!!",
			duration: 30,
			want:     HeuristicBreakdown{Base: 70, Keyword: 7.5, Exclaim: 2, Total: 79.5},
		},
		{
			name:     "fast pace",
			text:     strings.Repeat("words ", 12),
			duration: 4,
			want:     HeuristicBreakdown{Base: 70, Pace: 5, Total: 75},
		},
		{
			name:     "both polarities count",
			text:     "a good day and a bad night",
			duration: 30,
			want:     HeuristicBreakdown{Base: 70, Sentiment: 4, Total: 74},
		},
		{
			name:     "caps words",
			text:     "THIS is REAL ok",
			duration: 30,
			want:     HeuristicBreakdown{Base: 70, Caps: 2, Total: 72},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Explain(tt.text, tt.duration)
			if !near(got.Total, tt.want.Total) ||
				!near(got.Keyword, tt.want.Keyword) ||
				!near(got.Pace, tt.want.Pace) ||
				!near(got.Sentiment, tt.want.Sentiment) ||
				!near(got.Exclaim, tt.want.Exclaim) ||
				!near(got.Caps, tt.want.Caps) {
				t.Fatalf("Explain(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestScore_AmazingBeatsNeutral(t *testing.T) {
	s := NewHeuristicScorer(DefaultLexicon())
	plain := s.Score(neutral+" It went as planned.", 30)
	hot := s.Score(neutral+" It was amazing!!", 30)
	if hot <= plain {
		t.Fatalf("expected keyword/punctuation text to score higher: hot=%v plain=%v", hot, plain)
	}
}

func TestScore_Caps(t *testing.T) {
	s := NewHeuristicScorer(DefaultLexicon())
	text := strings.Repeat("WOW amazing secret hack omg life hack INSANE!!!! ", 10) +
		"good great awesome bad terrible"
	got := s.Explain(text, 1)
	if got.Keyword != keywordCap {
		t.Fatalf("expected keyword bonus capped at %v, got %v", keywordCap, got.Keyword)
	}
	if got.Sentiment != sentimentCap {
		t.Fatalf("expected sentiment bonus capped at %v, got %v", sentimentCap, got.Sentiment)
	}
	if got.Exclaim != intensityCap || got.Caps != intensityCap {
		t.Fatalf("expected intensity bonuses capped, got %+v", got)
	}
	if got.Total != MaxScore {
		t.Fatalf("expected total capped at %v, got %v", MaxScore, got.Total)
	}
}

func TestScore_MultilingualCaseInsensitive(t *testing.T) {
	s := NewHeuristicScorer(DefaultLexicon())
	got := s.Explain("Foi INCRÍVEL demais", 30)
	if !near(got.Keyword, 7.5) {
		t.Fatalf("expected accented keyword to match case-insensitively, got %+v", got)
	}
}

func TestScore_ZeroDuration(t *testing.T) {
	s := NewHeuristicScorer(DefaultLexicon())
	if got := s.Explain("some words here", 0); got.Pace != 0 {
		t.Fatalf("expected no pace bonus without duration, got %+v", got)
	}
}

func TestIsUpperWord(t *testing.T) {
	tests := map[string]bool{
		"WOW!":  true,
		"OK2":   true,
		"123":   false,
		"Hello": false,
		"ÉXITO": true,
	}
	for in, want := range tests {
		if got := isUpperWord(in); got != want {
			t.Fatalf("isUpperWord(%q) = %v, want %v", in, got, want)
		}
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
