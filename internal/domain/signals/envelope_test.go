package signals

import (
	"image"
	"math"
	"testing"
)

func TestRMSEnvelope(t *testing.T) {
	samples := make([]float64, 4096)
	for i := range samples {
		samples[i] = 0.5
	}
	env := RMSEnvelope(samples, 2048, 512)
	if len(env) != 1+4096/512 {
		t.Fatalf("unexpected frame count %d", len(env))
	}
	// frame 4 (center 2048) is fully inside the signal
	if math.Abs(env[4]-0.5) > 1e-12 {
		t.Fatalf("expected interior RMS 0.5, got %v", env[4])
	}
	// frame 0 is half zero-padded
	if math.Abs(env[0]-math.Sqrt(0.125)) > 1e-12 {
		t.Fatalf("expected padded RMS %v, got %v", math.Sqrt(0.125), env[0])
	}
	if RMSEnvelope(nil, 2048, 512) != nil {
		t.Fatalf("expected nil for empty input")
	}
}

// naiveRMS is the direct per-frame formula over the whole waveform.
func naiveRMS(samples []float64, frameLen, hop int) []float64 {
	n := 1 + len(samples)/hop
	out := make([]float64, n)
	for t := 0; t < n; t++ {
		var sum float64
		for i := t*hop - frameLen/2; i < t*hop-frameLen/2+frameLen; i++ {
			if i >= 0 && i < len(samples) {
				sum += samples[i] * samples[i]
			}
		}
		out[t] = math.Sqrt(sum / float64(frameLen))
	}
	return out
}

func TestRMSAccumulator_ChunkedMatchesWhole(t *testing.T) {
	samples := make([]float64, 10007)
	for i := range samples {
		samples[i] = math.Sin(float64(i)/7) * float64(i%97) / 97
	}
	tests := []struct {
		name          string
		frameLen, hop int
		chunk         int
	}{
		{name: "default shape", frameLen: 2048, hop: 512, chunk: 4096},
		{name: "small chunks", frameLen: 2048, hop: 512, chunk: 100},
		{name: "single samples", frameLen: 64, hop: 16, chunk: 1},
		{name: "hop above frame", frameLen: 30, hop: 100, chunk: 77},
		{name: "odd frame", frameLen: 101, hop: 33, chunk: 250},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := NewRMSAccumulator(tt.frameLen, tt.hop)
			for i := 0; i < len(samples); i += tt.chunk {
				acc.Push(samples[i:min(i+tt.chunk, len(samples))])
				if len(acc.buf) > tt.frameLen+tt.chunk {
					t.Fatalf("buffer grew to %d samples", len(acc.buf))
				}
			}
			if acc.Samples() != len(samples) {
				t.Fatalf("Samples = %d, want %d", acc.Samples(), len(samples))
			}
			got := acc.Finish()
			want := naiveRMS(samples, tt.frameLen, tt.hop)
			if len(got) != len(want) {
				t.Fatalf("frame count = %d, want %d", len(got), len(want))
			}
			for i := range want {
				if math.Abs(got[i]-want[i]) > 1e-12 {
					t.Fatalf("frame %d = %v, want %v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestRMSAccumulator_Empty(t *testing.T) {
	acc := NewRMSAccumulator(2048, 512)
	acc.Push(nil)
	if acc.Finish() != nil {
		t.Fatalf("expected nil envelope without samples")
	}
	if NewRMSAccumulator(0, 512).Finish() != nil {
		t.Fatalf("expected nil envelope for a zero frame length")
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize([]float64{2, 4, 6})
	want := []float64{0, 0.5, 1}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-6 {
			t.Fatalf("Normalize = %v, want %v", got, want)
		}
	}
	for _, v := range Normalize([]float64{3, 3, 3}) {
		if v != 0 {
			t.Fatalf("flat series must normalize to zeros, got %v", v)
		}
	}
}

func grayFilled(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func TestFrameChanges(t *testing.T) {
	frames := []*image.Gray{
		grayFilled(4, 4, 0),
		grayFilled(4, 4, 0),
		grayFilled(4, 4, 255),
		grayFilled(2, 2, 255),
	}
	got := FrameChanges(frames)
	want := []float64{0, 1, 1}
	if len(got) != len(want) {
		t.Fatalf("FrameChanges len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("FrameChanges = %v, want %v", got, want)
		}
	}
	if FrameChanges(frames[:1]) != nil {
		t.Fatalf("single frame has no changes")
	}
}
