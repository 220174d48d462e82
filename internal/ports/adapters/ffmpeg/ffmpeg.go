package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
}

func New(ffmpegPath, ffprobePath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

// ExtractAudioMono writes the first audio stream as mono 16-bit PCM WAV.
func (a *Adapter) ExtractAudioMono(ctx context.Context, in, outWav string, sampleRate int) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", in,
		"-vn",
		"-ac", "1",
		"-ar", strconv.Itoa(sampleRate),
		"-c:a", "pcm_s16le",
		"-f", "wav",
		outWav,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w\n%s", err, string(b))
	}
	return nil
}

func (a *Adapter) ProbeDuration(ctx context.Context, in string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		in,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w\n%s", err, string(b))
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return time.Duration(sec * float64(time.Second)), nil
}
