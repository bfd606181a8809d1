/*
Package heatmap buckets the distinct passwords of a corpus into a
length × frequency-band matrix.

Each cell counts distinct words, not occurrences: a password seen 40 times adds
one to the (len, "21-50") cell. Lengths above MaxDisplayLength are left out of
the matrix entirely.
*/
package heatmap

import (
	"math"

	"github.com/bastiangx/passcloud/pkg/corpus"
)

// MaxDisplayLength is the longest password length shown as a matrix row.
const MaxDisplayLength = 20

// Band is a closed range of occurrence counts. Max is math.MaxInt for the
// open-ended last band.
type Band struct {
	Min   int    `json:"min" yaml:"min" msgpack:"min"`
	Max   int    `json:"max" yaml:"max" msgpack:"max"`
	Label string `json:"label" yaml:"label" msgpack:"label"`
}

// Bands are the fixed frequency bands, in column order.
var Bands = [8]Band{
	{Min: 1, Max: 1, Label: "1"},
	{Min: 2, Max: 3, Label: "2-3"},
	{Min: 4, Max: 5, Label: "4-5"},
	{Min: 6, Max: 10, Label: "6-10"},
	{Min: 11, Max: 20, Label: "11-20"},
	{Min: 21, Max: 50, Label: "21-50"},
	{Min: 51, Max: 100, Label: "51-100"},
	{Min: 101, Max: math.MaxInt, Label: "100+"},
}

// BandIndex returns the column of the band holding count.
func BandIndex(count int) int {
	switch {
	case count == 1:
		return 0
	case count <= 3:
		return 1
	case count <= 5:
		return 2
	case count <= 10:
		return 3
	case count <= 20:
		return 4
	case count <= 50:
		return 5
	case count <= 100:
		return 6
	}
	return 7
}

// BandFor returns the band holding count.
func BandFor(count int) Band {
	return Bands[BandIndex(count)]
}

// Result is the heatmap matrix of one corpus plus its headline metrics.
type Result struct {
	// Lengths are the row labels, ascending.
	Lengths []int `json:"lengths" yaml:"lengths" msgpack:"lengths"`
	// Matrix[i][j] counts distinct words of length Lengths[i] in Bands[j].
	Matrix [][]int `json:"matrix" yaml:"matrix" msgpack:"matrix"`

	MaxCount  int `json:"max_count" yaml:"max_count" msgpack:"max"`
	MinLength int `json:"min_length" yaml:"min_length" msgpack:"minlen"`
	MaxLength int `json:"max_length" yaml:"max_length" msgpack:"maxlen"`

	MostCommonLength int `json:"most_common_length" yaml:"most_common_length" msgpack:"mcl"`
	// MostCommonLengthCount sums occurrences (not distinct words) of
	// MostCommonLength across the whole corpus.
	MostCommonLengthCount int    `json:"most_common_length_count" yaml:"most_common_length_count" msgpack:"mclc"`
	MostCommonFreqRange   string `json:"most_common_freq_range" yaml:"most_common_freq_range" msgpack:"mcfr"`

	TotalPasswords  int `json:"total_passwords" yaml:"total_passwords" msgpack:"total"`
	UniquePasswords int `json:"unique_passwords" yaml:"unique_passwords" msgpack:"unique"`
}

// Compute builds the heatmap of c.
func Compute(c *corpus.Corpus) (*Result, error) {
	if c.Empty() {
		return nil, corpus.ErrNoData
	}

	minLength, maxLength := math.MaxInt, 0
	cells := make(map[int]*[len(Bands)]int)
	for _, e := range c.Entries {
		n := e.Len()
		minLength = min(minLength, n)
		maxLength = max(maxLength, n)

		row, ok := cells[n]
		if !ok {
			row = new([len(Bands)]int)
			cells[n] = row
		}
		row[BandIndex(e.Count)]++
	}

	r := &Result{
		MinLength:       minLength,
		MaxLength:       min(MaxDisplayLength, maxLength),
		TotalPasswords:  c.TotalLines,
		UniquePasswords: c.Unique(),
	}

	var bandTotals [len(Bands)]int
	mostCommonRowSum := 0
	for n := r.MinLength; n <= r.MaxLength; n++ {
		row := make([]int, len(Bands))
		rowSum := 0
		if src, ok := cells[n]; ok {
			copy(row, src[:])
		}
		for j, v := range row {
			r.MaxCount = max(r.MaxCount, v)
			rowSum += v
			bandTotals[j] += v
		}
		if rowSum > mostCommonRowSum {
			mostCommonRowSum = rowSum
			r.MostCommonLength = n
		}
		r.Lengths = append(r.Lengths, n)
		r.Matrix = append(r.Matrix, row)
	}

	bestBand := 0
	for j, total := range bandTotals {
		if total > bestBand {
			bestBand = total
			r.MostCommonFreqRange = Bands[j].Label
		}
	}

	for _, e := range c.Entries {
		if e.Len() == r.MostCommonLength {
			r.MostCommonLengthCount += e.Count
		}
	}

	return r, nil
}

// CellTotal sums every cell of the matrix.
func (r *Result) CellTotal() int {
	total := 0
	for _, row := range r.Matrix {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// CellShare returns the share of all counted words that fall in the cell at
// (row, col), as a percentage rounded to two decimals.
func (r *Result) CellShare(row, col int) float64 {
	total := r.CellTotal()
	if total == 0 || row < 0 || row >= len(r.Matrix) || col < 0 || col >= len(Bands) {
		return 0
	}
	return math.Round(float64(r.Matrix[row][col])/float64(total)*100*100) / 100
}
