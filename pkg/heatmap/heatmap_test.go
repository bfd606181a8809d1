package heatmap

import (
	"strings"
	"testing"

	"github.com/bastiangx/passcloud/pkg/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBandIndex(t *testing.T) {
	testCases := []struct {
		count       int
		expected    string
		description string
	}{
		{1, "1", "Single occurrence"},
		{2, "2-3", "Lower edge"},
		{3, "2-3", "Upper edge"},
		{5, "4-5", "Four to five"},
		{6, "6-10", "Six"},
		{20, "11-20", "Twenty"},
		{21, "21-50", "Twenty one"},
		{100, "51-100", "Hundred"},
		{101, "100+", "Past hundred"},
		{1_000_000, "100+", "Very large"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, BandFor(tc.count).Label)
		})
	}
}

func TestComputeExample(t *testing.T) {
	c := corpus.FromEntries([]corpus.Entry{
		{Word: "12345", Count: 1},
		{Word: "abcde", Count: 2},
		{Word: "zz", Count: 50},
	})

	r, err := Compute(c)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3, 4, 5}, r.Lengths)
	assert.Equal(t, 2, r.MinLength)
	assert.Equal(t, 5, r.MaxLength)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 1, 0, 0}, r.Matrix[0])
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 0, 0}, r.Matrix[1])
	assert.Equal(t, []int{1, 1, 0, 0, 0, 0, 0, 0}, r.Matrix[3])
	assert.Equal(t, 1, r.MaxCount)

	assert.Equal(t, 5, r.MostCommonLength)
	assert.Equal(t, 3, r.MostCommonLengthCount)
	// band totals tie at one; the first band reached wins
	assert.Equal(t, "1", r.MostCommonFreqRange)

	assert.Equal(t, 53, r.TotalPasswords)
	assert.Equal(t, 3, r.UniquePasswords)
	assert.Equal(t, 3, r.CellTotal())
	assert.Equal(t, 33.33, r.CellShare(3, 0))
	assert.Equal(t, 0.0, r.CellShare(1, 0))
	assert.Equal(t, 0.0, r.CellShare(-1, 0))
	assert.Equal(t, 0.0, r.CellShare(0, 8))
}

func TestLongPasswordsExcluded(t *testing.T) {
	c := corpus.Ingest("abc\n" + strings.Repeat("x", 25) + "\n" + strings.Repeat("y", 20) + "\n")

	r, err := Compute(c)
	require.NoError(t, err)

	assert.Equal(t, 3, r.MinLength)
	assert.Equal(t, MaxDisplayLength, r.MaxLength)
	assert.Len(t, r.Matrix, MaxDisplayLength-3+1)
	assert.Equal(t, 2, r.CellTotal())
	assert.LessOrEqual(t, r.CellTotal(), r.UniquePasswords)
}

func TestAllPasswordsTooLong(t *testing.T) {
	c := corpus.Ingest(strings.Repeat("a", 21) + "\n" + strings.Repeat("b", 30) + "\n")

	r, err := Compute(c)
	require.NoError(t, err)

	assert.Empty(t, r.Matrix)
	assert.Empty(t, r.Lengths)
	assert.Equal(t, 0, r.MaxCount)
	assert.Equal(t, 0, r.MostCommonLength)
	assert.Equal(t, 0, r.MostCommonLengthCount)
	assert.Equal(t, "", r.MostCommonFreqRange)
	assert.Equal(t, 0.0, r.CellShare(0, 0))
}

func TestMostCommonLengthTieKeepsShortest(t *testing.T) {
	c := corpus.Ingest("ab\ncd\nabcd\nwxyz\nwxyz\n")

	r, err := Compute(c)
	require.NoError(t, err)

	assert.Equal(t, 2, r.MostCommonLength)
	assert.Equal(t, 2, r.MostCommonLengthCount)
	assert.Equal(t, "1", r.MostCommonFreqRange)
}

func TestComputeEmpty(t *testing.T) {
	_, err := Compute(corpus.Ingest("\n\n"))
	assert.ErrorIs(t, err, corpus.ErrNoData)
}

func TestColor(t *testing.T) {
	testCases := []struct {
		value, max  int
		dark        bool
		expected    string
		description string
	}{
		{0, 10, true, "#2a2a2a", "Empty dark"},
		{0, 10, false, "#e0e0e0", "Empty light"},
		{1, 8, true, "#007fff", "Dark first quarter"},
		{1, 4, true, "#00ffff", "Dark cyan"},
		{2, 4, true, "#ffff00", "Dark midpoint"},
		{4, 4, true, "#ff0000", "Dark hottest"},
		{1, 4, false, "#008080", "Light second quarter start"},
		{4, 4, false, "#c80000", "Light hottest"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, Color(tc.value, tc.max, tc.dark).Hex())
		})
	}
}

func TestLegend(t *testing.T) {
	assert.Equal(t, "#ff0000", Legend(true)[0])
	assert.Equal(t, "#f5f5f5", Legend(false)[len(Legend(false))-1])
}

func TestComputeIdempotent(t *testing.T) {
	c := corpus.Ingest("123456\n123456\npassword\nqwerty\nabc\nletmein\nletmein\nletmein\nthisisaverylongpassword123\n")

	first, err := Compute(c)
	require.NoError(t, err)
	second, err := Compute(c)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)
}
