// Package cloud builds the weighted, coloured word list behind a password word cloud.
package cloud

import (
	"math"
	"sort"

	"github.com/bastiangx/passcloud/pkg/corpus"
	"github.com/bastiangx/passcloud/pkg/patterns"
	"github.com/charmbracelet/log"
)

// Palettes used to colour words, heaviest first.
var (
	DarkPalette = []string{
		"#00FFFF", "#FF1493", "#00FF7F", "#FFD700", "#FF69B4",
		"#00CED1", "#FF4500", "#ADFF2F", "#FF00FF", "#1E90FF",
		"#FFA500", "#32CD32", "#BA55D3", "#F0E68C", "#87CEEB",
	}
	LightPalette = []string{
		"#000080", "#8B0000", "#006400", "#FF4500", "#4B0082",
		"#2F4F4F", "#DC143C", "#008B8B", "#9400D3", "#B22222",
		"#228B22", "#4682B4", "#D2691E", "#9932CC", "#8B4513",
	}
)

// Options control how the word list is built.
type Options struct {
	// StemMode merges words sharing the same normalized stem.
	StemMode bool
	// Limit caps the number of words; 0 keeps all of them.
	Limit int
	Dark  bool
}

// Word is one entry of the cloud.
type Word struct {
	Text  string `json:"text" yaml:"text" msgpack:"w"`
	Count int    `json:"count" yaml:"count" msgpack:"c"`
	// Weight is Count relative to the heaviest word, in (0, 100].
	Weight float64 `json:"weight" yaml:"weight" msgpack:"wt"`
	Color  string  `json:"color" yaml:"color" msgpack:"col"`
}

// Build returns the words of c ordered by count, heaviest first.
func Build(c *corpus.Corpus, opts Options) ([]Word, error) {
	if c.Empty() {
		return nil, corpus.ErrNoData
	}

	entries := c.Entries
	if opts.StemMode {
		entries = Stem(entries)
		log.Debugf("Applied stemming: %d words merged into %d", c.Unique(), len(entries))
	} else {
		entries = append([]corpus.Entry(nil), entries...)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}
	if len(entries) == 0 {
		return nil, nil
	}

	palette := Palette(opts.Dark)
	maxCount := float64(entries[0].Count)
	words := make([]Word, len(entries))
	for i, e := range entries {
		weight := math.Round(float64(e.Count)/maxCount*100*100) / 100
		words[i] = Word{
			Text:   e.Word,
			Count:  e.Count,
			Weight: weight,
			Color:  ColorFor(weight, palette),
		}
	}
	return words, nil
}

// Stem merges entries by their normalized form, summing counts.
// Merged keys keep the position of their first contributor.
//
// Entries that normalize to "" (digits or symbols only, such as "123456") are
// dropped rather than pooled under an empty word, so they never appear in a
// stem-mode cloud and do not count toward its weights.
func Stem(entries []corpus.Entry) []corpus.Entry {
	index := make(map[string]int)
	var merged []corpus.Entry
	for _, e := range entries {
		key := patterns.Normalize(e.Word)
		if key == "" {
			continue
		}
		if i, ok := index[key]; ok {
			merged[i].Count += e.Count
			continue
		}
		index[key] = len(merged)
		merged = append(merged, corpus.Entry{Word: key, Count: e.Count})
	}
	return merged
}

// Palette returns the word palette for the theme.
func Palette(dark bool) []string {
	if dark {
		return DarkPalette
	}
	return LightPalette
}

// ColorFor picks the palette colour for a weight in [0, 100].
// Heavier words take colours from the front of the palette.
func ColorFor(weight float64, palette []string) string {
	if len(palette) == 0 {
		return ""
	}
	i := int(math.Floor((1 - weight/100) * float64(len(palette))))
	i = max(0, min(i, len(palette)-1))
	return palette[i]
}

// BarColor returns the colour of a distribution bar for a percentage.
func BarColor(percentage float64, dark bool) string {
	if dark {
		switch {
		case percentage > 20:
			return "#ff1493"
		case percentage > 10:
			return "#ffd700"
		case percentage > 5:
			return "#00ffff"
		}
		return "#00ff00"
	}
	switch {
	case percentage > 20:
		return "#dc143c"
	case percentage > 10:
		return "#ff8c00"
	case percentage > 5:
		return "#4682b4"
	}
	return "#228b22"
}
