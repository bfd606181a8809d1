package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/bastiangx/passcloud/internal/utils"
	"github.com/bastiangx/passcloud/pkg/analysis"
	"github.com/bastiangx/passcloud/pkg/heatmap"
	"github.com/charmbracelet/glamour"
)

// MarkdownReport formats the sections present in r as a markdown document.
func MarkdownReport(r *analysis.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# PassCloud report\n\n")
	fmt.Fprintf(&b, "Source: `%s`, %s lines, %s unique.\n",
		r.Info.Source, utils.FormatWithCommas(r.Info.TotalPasswords), utils.FormatWithCommas(r.Info.UniquePasswords))

	if s := r.Stats; s != nil {
		b.WriteString("\n## Statistics\n\n| Metric | Value |\n|---|---|\n")
		fmt.Fprintf(&b, "| Total | %d |\n| Unique | %d |\n| Duplicate rate | %.1f%% |\n", s.TotalPasswords, s.UniquePasswords, s.DuplicateRate)
		fmt.Fprintf(&b, "| Average length | %.1f |\n| Length range | %d-%d |\n", s.AvgLength, s.MinLength, s.MaxLength)
		fmt.Fprintf(&b, "| Numeric only | %.1f%% |\n| Alpha only | %.1f%% |\n", s.NumericOnly, s.AlphaOnly)
		fmt.Fprintf(&b, "| Alphanumeric | %.1f%% |\n| With special | %.1f%% |\n", s.AlphaNumeric, s.WithSpecial)
		fmt.Fprintf(&b, "| Sequential | %.1f%% |\n| Keyboard | %.1f%% |\n| Years | %.1f%% |\n",
			s.Patterns.Sequential, s.Patterns.Keyboard, s.Patterns.Years)

		b.WriteString("\n### Most frequent\n\n| # | Password | Count | Share |\n|---|---|---|---|\n")
		for i, p := range s.Top10 {
			fmt.Fprintf(&b, "| %d | `%s` | %d | %.2f%% |\n", i+1, escapeCell(p.Password), p.Count, p.Percentage)
		}

		b.WriteString("\n### Length distribution\n\n| Length | Count | Share |\n|---|---|---|\n")
		for _, l := range s.LengthDistribution {
			fmt.Fprintf(&b, "| %d | %d | %.1f%% |\n", l.Length, l.Count, l.Percentage)
		}
	}

	if h := r.Heatmap; h != nil {
		b.WriteString("\n## Heatmap\n\n| Length |")
		for _, band := range heatmap.Bands {
			fmt.Fprintf(&b, " %s |", band.Label)
		}
		b.WriteString("\n|---|" + strings.Repeat("---|", len(heatmap.Bands)) + "\n")
		for i, row := range h.Matrix {
			fmt.Fprintf(&b, "| %d |", h.Lengths[i])
			for _, v := range row {
				fmt.Fprintf(&b, " %d |", v)
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "\nMost common length **%d** (%d passwords), most common frequency range **%s**.\n",
			h.MostCommonLength, h.MostCommonLengthCount, h.MostCommonFreqRange)
	}

	if p := r.Partial; p != nil {
		b.WriteString("\n## Partial matches\n\n")
		if p.NoMatches() {
			b.WriteString("No partial phrases found.\n")
		} else {
			b.WriteString("| Phrase | Count |\n|---|---|\n")
			for _, ph := range p.Phrases {
				fmt.Fprintf(&b, "| `%s` | %d |\n", escapeCell(ph.Phrase), ph.Count)
			}
		}
	}

	if len(r.Cloud) > 0 {
		b.WriteString("\n## Word cloud\n\n| Word | Count | Weight |\n|---|---|---|\n")
		for _, word := range r.Cloud {
			fmt.Fprintf(&b, "| `%s` | %d | %.2f |\n", escapeCell(word.Text), word.Count, word.Weight)
		}
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.NewReplacer("|", `\|`, "`", "'").Replace(s)
}

// Markdown renders md for the terminal with glamour.
func Markdown(w io.Writer, md string, dark bool, width int) error {
	style := "light"
	if dark {
		style = "dark"
	}
	if width <= 0 {
		width = defaultWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
