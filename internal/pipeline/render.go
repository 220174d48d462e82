package pipeline

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/forPelevin/viralclip/internal/types"
)

const previewRunes = 60

var clipHeaders = table.Row{"#", "Start", "End", "Score", "Sem", "Heur", "Audio", "Visual", "Transcript"}

func renderClips(clips []types.Clip) string {
	if len(clips) == 0 {
		return "No clips found\n"
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(clipHeaders)
	for i, c := range clips {
		tw.AppendRow(table.Row{
			i + 1,
			seconds(c.StartTime),
			seconds(c.EndTime),
			score(c.Score),
			score(c.SemanticScore),
			score(c.HeuristicScore),
			score(c.AudioScore),
			score(c.VisualScore),
			preview(c.Transcript),
		})
	}

	configs := make([]table.ColumnConfig, 0, len(clipHeaders))
	for i := range clipHeaders {
		align := text.AlignRight
		if i == len(clipHeaders)-1 {
			align = text.AlignLeft
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render() + "\n"
}

func seconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "s"
}

func score(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= previewRunes {
		return s
	}
	return string(r[:previewRunes-1]) + "…"
}
