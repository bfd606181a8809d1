package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/bastiangx/passcloud/internal/utils"
	"github.com/bastiangx/passcloud/pkg/analysis"
	"github.com/bastiangx/passcloud/pkg/cloud"
	"github.com/bastiangx/passcloud/pkg/heatmap"
	"github.com/bastiangx/passcloud/pkg/partial"
	"github.com/bastiangx/passcloud/pkg/stats"
	"github.com/charmbracelet/lipgloss"
)

const barRune = "█"

// Text writes every section present in r.
func Text(w io.Writer, r *analysis.Report, t Theme) {
	fmt.Fprintf(w, "%s %s %s\n",
		t.Title.Render("PassCloud"),
		t.Dim.Render(r.Info.Source),
		t.Dim.Render(fmt.Sprintf("(%s lines, %s unique)",
			utils.FormatWithCommas(r.Info.TotalPasswords),
			utils.FormatWithCommas(r.Info.UniquePasswords))))
	if r.Stats != nil {
		fmt.Fprintln(w)
		TextStats(w, r.Stats, t)
	}
	if r.Heatmap != nil {
		fmt.Fprintln(w)
		TextHeatmap(w, r.Heatmap, t)
	}
	if r.Partial != nil {
		fmt.Fprintln(w)
		TextPartial(w, r.Partial, t, 0)
	}
	if r.Cloud != nil {
		fmt.Fprintln(w)
		TextCloud(w, r.Cloud, t)
	}
}

func (t Theme) row(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n", t.Label.Render(fmt.Sprintf("%-18s", label)), t.Value.Render(value))
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// bar scales value against maxValue to at most width cells.
func bar(value, maxValue float64, width int) string {
	if maxValue <= 0 || value <= 0 {
		return ""
	}
	n := int(math.Round(value / maxValue * float64(width)))
	return strings.Repeat(barRune, max(n, 1))
}

// TextStats writes the statistics table.
func TextStats(w io.Writer, s *stats.Summary, t Theme) {
	fmt.Fprintln(w, t.Title.Render("Statistics"))
	t.row(w, "Total", utils.FormatWithCommas(s.TotalPasswords))
	t.row(w, "Unique", utils.FormatWithCommas(s.UniquePasswords))
	t.row(w, "Duplicate rate", pct(s.DuplicateRate))
	t.row(w, "Average length", fmt.Sprintf("%.1f", s.AvgLength))
	t.row(w, "Length range", fmt.Sprintf("%d-%d", s.MinLength, s.MaxLength))

	fmt.Fprintf(w, "\n%s\n", t.Title.Render("Character classes"))
	t.row(w, "Numeric only", pct(s.NumericOnly))
	t.row(w, "Alpha only", pct(s.AlphaOnly))
	t.row(w, "Alphanumeric", pct(s.AlphaNumeric))
	t.row(w, "With special", pct(s.WithSpecial))

	fmt.Fprintf(w, "\n%s\n", t.Title.Render("Patterns"))
	t.row(w, "Sequential", pct(s.Patterns.Sequential))
	t.row(w, "Keyboard", pct(s.Patterns.Keyboard))
	t.row(w, "Years", pct(s.Patterns.Years))

	fmt.Fprintf(w, "\n%s\n", t.Title.Render(fmt.Sprintf("Top %d", len(s.Top10))))
	for i, p := range s.Top10 {
		fmt.Fprintf(w, "  %2d. %-24s %s %s\n", i+1, p.Password,
			t.Count.Render(fmt.Sprintf("%8s", utils.FormatWithCommas(p.Count))),
			t.Dim.Render(fmt.Sprintf("%6.2f%%", p.Percentage)))
	}

	fmt.Fprintf(w, "\n%s\n", t.Title.Render("Length distribution"))
	maxPct := 0.0
	for _, b := range s.LengthDistribution {
		maxPct = max(maxPct, b.Percentage)
	}
	for _, b := range s.LengthDistribution {
		fmt.Fprintf(w, "  %3d %s %s\n", b.Length,
			fg(cloud.BarColor(b.Percentage, t.Dark), fmt.Sprintf("%-*s", t.BarWidth, bar(b.Percentage, maxPct, t.BarWidth))),
			t.Dim.Render(fmt.Sprintf("%s (%s)", utils.FormatWithCommas(b.Count), pct(b.Percentage))))
	}
}

// TextHeatmap writes the heatmap grid, longest length on top.
func TextHeatmap(w io.Writer, h *heatmap.Result, t Theme) {
	fmt.Fprintln(w, t.Title.Render("Length × frequency heatmap"))
	if len(h.Matrix) == 0 {
		fmt.Fprintf(w, "  %s\n", t.Warning.Render(fmt.Sprintf("no passwords of %d characters or fewer", heatmap.MaxDisplayLength)))
		return
	}

	const cellWidth = 7
	header := "  len "
	for _, b := range heatmap.Bands {
		header += fmt.Sprintf("%*s", cellWidth, b.Label)
	}
	fmt.Fprintln(w, t.Dim.Render(header))

	for i := len(h.Matrix) - 1; i >= 0; i-- {
		var line strings.Builder
		fmt.Fprintf(&line, "  %3d ", h.Lengths[i])
		for _, v := range h.Matrix[i] {
			cell := fmt.Sprintf("%*d", cellWidth, v)
			if v == 0 {
				cell = fmt.Sprintf("%*s", cellWidth, "·")
			}
			bg := heatmap.Color(v, h.MaxCount, t.Dark).Hex()
			line.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(bg)).Foreground(lipgloss.Color(textOn(v, h.MaxCount))).Render(cell))
		}
		fmt.Fprintln(w, line.String())
	}

	fmt.Fprintln(w)
	t.row(w, "Most common length", fmt.Sprintf("%d (%s)", h.MostCommonLength, utils.FormatWithCommas(h.MostCommonLengthCount)))
	t.row(w, "Most common range", h.MostCommonFreqRange)
	t.row(w, "Largest cell", utils.FormatWithCommas(h.MaxCount))

	var legend strings.Builder
	for _, stop := range heatmap.Legend(t.Dark) {
		legend.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(stop)).Render("   "))
	}
	fmt.Fprintf(w, "  %s %s %s\n", t.Dim.Render("high"), legend.String(), t.Dim.Render("low"))
}

// textOn picks a readable foreground for a heatmap cell.
func textOn(v, maxCount int) string {
	if maxCount > 0 && float64(v)/float64(maxCount) >= 0.5 {
		return "#000000"
	}
	return "#ffffff"
}

// TextPartial writes the ranked partial-match phrases. A limit <= 0 prints all of them.
func TextPartial(w io.Writer, p *partial.Result, t Theme, limit int) {
	fmt.Fprintln(w, t.Title.Render("Partial matches"))
	if p.NoMatches() {
		fmt.Fprintf(w, "  %s\n", t.Warning.Render("no partial phrases found; the list may not contain common stems"))
		return
	}

	phrases := p.Phrases
	if limit > 0 && len(phrases) > limit {
		phrases = phrases[:limit]
	}
	maxCount := float64(phrases[0].Count)
	for i, ph := range phrases {
		fmt.Fprintf(w, "  %3d. %-10s %s %s\n", i+1, ph.Phrase,
			t.Count.Render(fmt.Sprintf("%8s", utils.FormatWithCommas(ph.Count))),
			t.Dim.Render(bar(float64(ph.Count), maxCount, t.BarWidth)))
	}
	fmt.Fprintf(w, "  %s\n", t.Dim.Render(fmt.Sprintf("%d of %d extracted phrases shown", len(phrases), p.TotalExtracted)))
}

// TextCloud writes the cloud words wrapped to the theme width, heaviest first.
func TextCloud(w io.Writer, words []cloud.Word, t Theme) {
	fmt.Fprintln(w, t.Title.Render("Word cloud"))
	if len(words) == 0 {
		fmt.Fprintf(w, "  %s\n", t.Warning.Render("no words"))
		return
	}

	var line strings.Builder
	lineWidth := 0
	for _, word := range words {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(word.Color))
		if word.Weight >= 50 {
			style = style.Bold(true)
		}
		n := lipgloss.Width(word.Text) + 1
		if lineWidth > 0 && lineWidth+n > t.Width {
			fmt.Fprintf(w, "  %s\n", line.String())
			line.Reset()
			lineWidth = 0
		}
		line.WriteString(style.Render(word.Text))
		line.WriteString(" ")
		lineWidth += n
	}
	if lineWidth > 0 {
		fmt.Fprintf(w, "  %s\n", line.String())
	}
}
