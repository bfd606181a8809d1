package cloud

import (
	"testing"

	"github.com/bastiangx/passcloud/pkg/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	c := corpus.Ingest("dragon\nmonkey\nmonkey\nmonkey\nshadow\nshadow\n")
	original := append([]corpus.Entry(nil), c.Entries...)

	words, err := Build(c, Options{})
	require.NoError(t, err)
	require.Len(t, words, 3)

	assert.Equal(t, "monkey", words[0].Text)
	assert.Equal(t, 100.0, words[0].Weight)
	assert.Equal(t, LightPalette[0], words[0].Color)
	assert.Equal(t, "shadow", words[1].Text)
	assert.Equal(t, 66.67, words[1].Weight)
	assert.Equal(t, "dragon", words[2].Text)
	assert.Equal(t, 33.33, words[2].Weight)
	assert.Equal(t, LightPalette[10], words[2].Color)

	assert.Equal(t, original, c.Entries)
}

func TestBuildStemMode(t *testing.T) {
	c := corpus.Ingest("pass123\npass!\npass\nadmin1\n123456\n")

	words, err := Build(c, Options{StemMode: true, Dark: true})
	require.NoError(t, err)

	assert.Equal(t, []Word{
		{Text: "pass", Count: 3, Weight: 100, Color: DarkPalette[0]},
		{Text: "admin", Count: 1, Weight: 33.33, Color: DarkPalette[10]},
	}, words)
}

func TestBuildLimit(t *testing.T) {
	c := corpus.Ingest("a\nb\nb\nc\nc\nc\n")

	words, err := Build(c, Options{Limit: 2})
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "c", words[0].Text)
	assert.Equal(t, "b", words[1].Text)
}

func TestBuildEmpty(t *testing.T) {
	_, err := Build(corpus.Ingest(""), Options{})
	assert.ErrorIs(t, err, corpus.ErrNoData)

	// everything stems away
	words, err := Build(corpus.Ingest("123\n!!!\n"), Options{StemMode: true})
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestColorFor(t *testing.T) {
	testCases := []struct {
		weight      float64
		expected    int
		description string
	}{
		{100, 0, "Heaviest"},
		{0, 14, "Lightest is clamped"},
		{50, 7, "Middle"},
		{150, 0, "Above range is clamped"},
		{93.4, 0, "Just under first step"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, LightPalette[tc.expected], ColorFor(tc.weight, LightPalette))
		})
	}
	assert.Equal(t, "", ColorFor(50, nil))
}

func TestBarColor(t *testing.T) {
	assert.Equal(t, "#ff1493", BarColor(25, true))
	assert.Equal(t, "#ffd700", BarColor(20, true))
	assert.Equal(t, "#00ffff", BarColor(5.5, true))
	assert.Equal(t, "#00ff00", BarColor(5, true))
	assert.Equal(t, "#dc143c", BarColor(21, false))
	assert.Equal(t, "#ff8c00", BarColor(11, false))
	assert.Equal(t, "#4682b4", BarColor(6, false))
	assert.Equal(t, "#228b22", BarColor(0, false))
}

func TestBuildIdempotent(t *testing.T) {
	c := corpus.Ingest("pass123\npass!\npass\nadmin1\n123456\nmonkey\nmonkey\nshadow\n")

	testCases := []struct {
		opts        Options
		description string
	}{
		{Options{}, "Plain words"},
		{Options{StemMode: true}, "Stem mode"},
		{Options{StemMode: true, Limit: 2, Dark: true}, "Stem mode with limit and dark palette"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			first, err := Build(c, tc.opts)
			require.NoError(t, err)
			second, err := Build(c, tc.opts)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}
