package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options describes logger construction parameters.
type Options struct {
	Level string
	// Format is "console", "json", or empty to pick console on a terminal
	// and json otherwise.
	Format string
	// Output defaults to stderr; stdout is reserved for results.
	Output io.Writer
}

// New constructs a zap logger using the provided options.
func New(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(defaultString(opts.Level, "info"))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch format := resolveFormat(opts.Format, out); format {
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	case "console":
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		if isTerminal(out) {
			encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(out), level)
	return zap.New(core), nil
}

func resolveFormat(format string, out io.Writer) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "" {
		return format
	}
	if isTerminal(out) {
		return "console"
	}
	return "json"
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func defaultString(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}
