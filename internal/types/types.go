package types

type Word struct {
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

type Sentence struct {
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	StartChar int     `json:"start_char"`
	EndChar   int     `json:"end_char"`
}

type Transcript struct {
	Sentences []Sentence `json:"sentences"`
	Words     []Word     `json:"words"`
}

// Span returns the first sentence start and the last sentence end.
func (t Transcript) Span() (start, end float64) {
	if len(t.Sentences) == 0 {
		return 0, 0
	}
	return t.Sentences[0].StartTime, t.Sentences[len(t.Sentences)-1].EndTime
}

// Window is an inclusive range of sentence indexes proposed as a clip.
type Window struct {
	First int
	Last  int
	Start float64
	End   float64
}

func (w Window) Duration() float64 { return w.End - w.Start }

// Clip is one selected window. The four component scores are on a 0-100
// scale. SemanticScore, AudioScore and VisualScore are informational: a
// component whose weight is 0 is never computed and reports its neutral
// value (semantic 0, audio and visual 50) even when media was supplied, and
// a component that could not be measured reports the same value.
type Clip struct {
	ID             string  `json:"id"`
	StartTime      float64 `json:"start_time"`
	EndTime        float64 `json:"end_time"`
	Duration       float64 `json:"duration"`
	StartChar      int     `json:"start_char"`
	EndChar        int     `json:"end_char"`
	Transcript     string  `json:"transcript"`
	Score          float64 `json:"score"`
	SemanticScore  float64 `json:"semantic_score"`
	HeuristicScore float64 `json:"heuristic_score"`
	AudioScore     float64 `json:"audio_score"`
	VisualScore    float64 `json:"visual_score"`
	Words          []Word  `json:"words"`
}

type Manifest struct {
	Transcript string `json:"transcript"`
	Media      string `json:"media,omitempty"`
	Clips      []Clip `json:"clips"`
}
