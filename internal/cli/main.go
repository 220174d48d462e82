package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:          "viralclip <transcript.json>",
		Short:        "Rank the most shareable clips of a timed transcript",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SilenceErrors = true

	root.Flags().String("media", "", "Source media file for audio and visual signals")
	root.Flags().String("config", "", "Path to a TOML config file")
	root.Flags().String("out", "", "Write clips.json into a run directory under this path")
	root.Flags().String("format", "json", "Output format: json or table")
	root.Flags().Float64("min", 0, "Minimum clip duration in seconds")
	root.Flags().Float64("max", 0, "Maximum clip duration in seconds")
	root.Flags().Int("top", 0, "Maximum number of clips")
	root.Flags().Float64("overlap", 0, "Largest tolerated overlap as a fraction of the shorter clip")
	root.Flags().Bool("heuristic-only", false, "Score with the keyword heuristic alone")
	root.Flags().String("log-level", "", "Log level: debug, info, warn, error")

	return root
}
