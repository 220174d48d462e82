package signals

import (
	"image"
	"math"
)

const normalizeEpsilon = 1e-8

// RMSEnvelope computes short-time RMS energy with centered, zero-padded
// frames: frame t covers samples [t*hop - frameLen/2, t*hop + frameLen/2).
// It yields 1 + len(samples)/hop values.
func RMSEnvelope(samples []float64, frameLen, hop int) []float64 {
	acc := NewRMSAccumulator(frameLen, hop)
	acc.Push(samples)
	return acc.Finish()
}

// RMSAccumulator builds the same envelope as RMSEnvelope from a waveform fed
// in chunks. It keeps at most one frame plus one chunk of samples.
type RMSAccumulator struct {
	frameLen int
	hop      int
	half     int

	buf   []float64 // samples from index base onwards
	base  int
	total int
	env   []float64
}

func NewRMSAccumulator(frameLen, hop int) *RMSAccumulator {
	return &RMSAccumulator{frameLen: frameLen, hop: hop, half: frameLen / 2}
}

func (a *RMSAccumulator) valid() bool { return a.frameLen > 0 && a.hop > 0 }

// Push appends samples and emits every frame they complete. The slice is
// copied; callers may reuse it.
func (a *RMSAccumulator) Push(samples []float64) {
	if !a.valid() || len(samples) == 0 {
		return
	}
	a.buf = append(a.buf, samples...)
	a.total += len(samples)

	for {
		t := len(a.env)
		if t*a.hop-a.half+a.frameLen > a.total {
			break
		}
		a.env = append(a.env, a.frame(t))
	}

	next := min(max(len(a.env)*a.hop-a.half, 0), a.total)
	if drop := next - a.base; drop > 0 {
		a.buf = append(a.buf[:0], a.buf[drop:]...)
		a.base = next
	}
}

// Samples reports how many samples were pushed so far.
func (a *RMSAccumulator) Samples() int { return a.total }

// Finish zero-pads the tail and returns the envelope, nil when nothing was
// pushed.
func (a *RMSAccumulator) Finish() []float64 {
	if !a.valid() || a.total == 0 {
		return nil
	}
	for n := 1 + a.total/a.hop; len(a.env) < n; {
		a.env = append(a.env, a.frame(len(a.env)))
	}
	return a.env
}

func (a *RMSAccumulator) frame(t int) float64 {
	lo := t*a.hop - a.half
	hi := lo + a.frameLen
	var sum float64
	for i := max(lo, 0); i < min(hi, a.total); i++ {
		x := a.buf[i-a.base]
		sum += x * x
	}
	return math.Sqrt(sum / float64(a.frameLen))
}

// Normalize min-max scales v into [0, 1]; a flat series maps to zeros.
func Normalize(v []float64) []float64 {
	if len(v) == 0 {
		return nil
	}
	lo, hi := v[0], v[0]
	for _, x := range v[1:] {
		lo = min(lo, x)
		hi = max(hi, x)
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = (x - lo) / (hi - lo + normalizeEpsilon)
	}
	return out
}

// FrameChanges returns the mean absolute pixel difference between each pair
// of consecutive frames, scaled to [0, 1]. Frames must share dimensions;
// a mismatched pair counts as a full change.
func FrameChanges(frames []*image.Gray) []float64 {
	if len(frames) < 2 {
		return nil
	}
	out := make([]float64, 0, len(frames)-1)
	for i := 1; i < len(frames); i++ {
		out = append(out, meanAbsDiff(frames[i-1], frames[i]))
	}
	return out
}

func meanAbsDiff(a, b *image.Gray) float64 {
	if a == nil || b == nil || a.Rect.Dx() != b.Rect.Dx() || a.Rect.Dy() != b.Rect.Dy() {
		return 1
	}
	w, h := a.Rect.Dx(), a.Rect.Dy()
	if w == 0 || h == 0 {
		return 0
	}
	var sum int64
	for y := 0; y < h; y++ {
		ra := a.Pix[y*a.Stride : y*a.Stride+w]
		rb := b.Pix[y*b.Stride : y*b.Stride+w]
		for x := range ra {
			d := int64(ra[x]) - int64(rb[x])
			if d < 0 {
				d = -d
			}
			sum += d
		}
	}
	return float64(sum) / float64(w*h) / 255
}
