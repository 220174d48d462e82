package ffmpeg

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/nfnt/resize"
)

// SampleGray grabs one frame per interval, scales it to width x height and
// converts it to grayscale.
func (a *Adapter) SampleGray(ctx context.Context, mediaPath string, interval time.Duration, width, height int) ([]*image.Gray, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("sample frames: interval must be > 0")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("sample frames: invalid size %dx%d", width, height)
	}
	dur, err := a.ProbeDuration(ctx, mediaPath)
	if err != nil {
		return nil, err
	}
	if dur <= 0 {
		return nil, fmt.Errorf("sample frames: media has no duration")
	}

	dir, err := os.MkdirTemp("", "viralclip-frames-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", mediaPath,
		"-an",
		"-vf", frameFilter(interval, width),
		filepath.Join(dir, "frame_%06d.png"),
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg sample frames: %w\n%s", err, string(b))
	}

	paths, err := filepath.Glob(filepath.Join(dir, "frame_*.png"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	out := make([]*image.Gray, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := readPNG(p)
		if err != nil {
			return nil, err
		}
		out = append(out, toGray(img, width, height))
	}
	return out, nil
}

// frameFilter samples at 1/interval and shrinks frames to twice the target
// width, keeping aspect, before they reach disk. toGray does the exact resize.
func frameFilter(interval time.Duration, width int) string {
	fps := strconv.FormatFloat(1/interval.Seconds(), 'f', -1, 64)
	return "fps=" + fps + ",scale=" + strconv.Itoa(2*width) + ":-2,format=gray"
}

func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode frame %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

func toGray(img image.Image, width, height int) *image.Gray {
	scaled := resize.Resize(uint(width), uint(height), img, resize.Bilinear)
	g := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(g, g.Bounds(), scaled, scaled.Bounds().Min, draw.Src)
	return g
}
