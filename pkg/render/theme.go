/*
Package render turns analysis results into terminal text, markdown, JSON and
YAML.

Renderers only format. Every number they print was already computed by the
engines, and colours come from the engines' palettes so the terminal output
matches the other outputs.
*/
package render

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour scheme for terminal output.
type Theme struct {
	Dark     bool
	BarWidth int
	// Width is the wrap width for the word cloud.
	Width int

	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Count   lipgloss.Style
	Dim     lipgloss.Style
	Warning lipgloss.Style
}

const (
	defaultBarWidth = 30
	defaultWidth    = 80
)

// NewTheme returns the theme for a dark or light terminal.
func NewTheme(dark bool, barWidth int) Theme {
	if barWidth <= 0 {
		barWidth = defaultBarWidth
	}
	t := Theme{
		Dark:     dark,
		BarWidth: barWidth,
		Width:    defaultWidth,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Value:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82")),
		Count:    lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	}
	if !dark {
		t.Title = t.Title.Foreground(lipgloss.Color("125"))
		t.Label = t.Label.Foreground(lipgloss.Color("25"))
		t.Value = t.Value.Foreground(lipgloss.Color("28"))
		t.Count = t.Count.Foreground(lipgloss.Color("130"))
		t.Dim = t.Dim.Foreground(lipgloss.Color("242"))
	}
	return t
}

// fg renders s in a hex colour.
func fg(hex string, s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(s)
}
