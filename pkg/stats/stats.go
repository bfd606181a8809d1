// Package stats computes aggregate metrics over a password corpus.
package stats

import (
	"math"
	"sort"

	"github.com/bastiangx/passcloud/internal/utils"
	"github.com/bastiangx/passcloud/pkg/corpus"
	"github.com/bastiangx/passcloud/pkg/patterns"
)

// TopN is the size of the most-frequent ranking.
const TopN = 10

// RankedPassword is one row of the top ranking.
type RankedPassword struct {
	Password   string  `json:"password" yaml:"password" msgpack:"w"`
	Count      int     `json:"count" yaml:"count" msgpack:"c"`
	Percentage float64 `json:"percentage" yaml:"percentage" msgpack:"p"`
}

// LengthBucket is the number of occurrences with a given length.
type LengthBucket struct {
	Length     int     `json:"length" yaml:"length" msgpack:"l"`
	Count      int     `json:"count" yaml:"count" msgpack:"c"`
	Percentage float64 `json:"percentage" yaml:"percentage" msgpack:"p"`
}

// PatternShares holds the percentage of occurrences matching each detector.
// The detectors overlap, so the shares do not sum to 100.
type PatternShares struct {
	Sequential float64 `json:"sequential" yaml:"sequential" msgpack:"seq"`
	Keyboard   float64 `json:"keyboard" yaml:"keyboard" msgpack:"kbd"`
	Years      float64 `json:"years" yaml:"years" msgpack:"yr"`
}

// Summary is a read-only snapshot of the metrics of one corpus.
// Percentages are over TotalPasswords and rounded to one decimal place
// (two for Top10).
type Summary struct {
	TotalPasswords  int     `json:"total_passwords" yaml:"total_passwords" msgpack:"total"`
	UniquePasswords int     `json:"unique_passwords" yaml:"unique_passwords" msgpack:"unique"`
	DuplicateRate   float64 `json:"duplicate_rate" yaml:"duplicate_rate" msgpack:"dup"`

	AvgLength float64 `json:"avg_length" yaml:"avg_length" msgpack:"avg"`
	MinLength int     `json:"min_length" yaml:"min_length" msgpack:"min"`
	MaxLength int     `json:"max_length" yaml:"max_length" msgpack:"max"`

	NumericOnly  float64 `json:"numeric_only" yaml:"numeric_only" msgpack:"num"`
	AlphaOnly    float64 `json:"alpha_only" yaml:"alpha_only" msgpack:"alpha"`
	AlphaNumeric float64 `json:"alpha_numeric" yaml:"alpha_numeric" msgpack:"alnum"`
	WithSpecial  float64 `json:"with_special" yaml:"with_special" msgpack:"special"`

	Top10              []RankedPassword `json:"top10" yaml:"top10" msgpack:"top"`
	LengthDistribution []LengthBucket   `json:"length_distribution" yaml:"length_distribution" msgpack:"lengths"`
	Patterns           PatternShares    `json:"patterns" yaml:"patterns" msgpack:"patterns"`
}

// CharClass is the single character class a password falls into.
type CharClass int

const (
	ClassNone CharClass = iota
	ClassNumericOnly
	ClassAlphaOnly
	ClassAlphaNumeric
	ClassWithSpecial
)

// Classify returns the character class of password.
// Any character outside [A-Za-z0-9] makes it ClassWithSpecial regardless of
// the digits or letters it also holds.
func Classify(password string) CharClass {
	hasNumeric := utils.ContainsDigits(password)
	hasAlpha := utils.ContainsLetters(password)
	hasSpecial := utils.ContainsSpecialChars(password)

	switch {
	case hasSpecial:
		return ClassWithSpecial
	case hasNumeric && hasAlpha:
		return ClassAlphaNumeric
	case hasNumeric:
		return ClassNumericOnly
	case hasAlpha:
		return ClassAlphaOnly
	}
	return ClassNone
}

// Compute builds the Summary of c. The corpus is not modified.
func Compute(c *corpus.Corpus) (*Summary, error) {
	if c.Empty() {
		return nil, corpus.ErrNoData
	}

	total := c.TotalLines
	s := &Summary{
		TotalPasswords:  total,
		UniquePasswords: c.Unique(),
		MinLength:       math.MaxInt,
	}

	var totalLength int
	var numericOnly, alphaOnly, alphaNumeric, withSpecial int
	var sequential, keyboard, years int
	lengthCounts := make(map[int]int)

	for _, e := range c.Entries {
		n := e.Len()
		count := e.Count

		totalLength += n * count
		s.MinLength = min(s.MinLength, n)
		s.MaxLength = max(s.MaxLength, n)
		lengthCounts[n] += count

		switch Classify(e.Word) {
		case ClassNumericOnly:
			numericOnly += count
		case ClassAlphaOnly:
			alphaOnly += count
		case ClassAlphaNumeric:
			alphaNumeric += count
		case ClassWithSpecial:
			withSpecial += count
		}

		if patterns.HasSequentialPattern(e.Word) {
			sequential += count
		}
		if patterns.HasKeyboardPattern(e.Word) {
			keyboard += count
		}
		if patterns.HasYearPattern(e.Word) {
			years += count
		}
	}

	s.DuplicateRate = percent(total-s.UniquePasswords, total, 1)
	s.AvgLength = round(float64(totalLength)/float64(total), 1)
	s.NumericOnly = percent(numericOnly, total, 1)
	s.AlphaOnly = percent(alphaOnly, total, 1)
	s.AlphaNumeric = percent(alphaNumeric, total, 1)
	s.WithSpecial = percent(withSpecial, total, 1)
	s.Patterns = PatternShares{
		Sequential: percent(sequential, total, 1),
		Keyboard:   percent(keyboard, total, 1),
		Years:      percent(years, total, 1),
	}
	s.Top10 = topN(c.Entries, TopN, total)
	s.LengthDistribution = lengthDistribution(lengthCounts, total)

	return s, nil
}

// topN ranks a copy of entries by count, keeping input order among ties.
func topN(entries []corpus.Entry, n, total int) []RankedPassword {
	sorted := make([]corpus.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	ranked := make([]RankedPassword, len(sorted))
	for i, e := range sorted {
		ranked[i] = RankedPassword{
			Password:   e.Word,
			Count:      e.Count,
			Percentage: percent(e.Count, total, 2),
		}
	}
	return ranked
}

func lengthDistribution(counts map[int]int, total int) []LengthBucket {
	lengths := make([]int, 0, len(counts))
	for l := range counts {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)

	buckets := make([]LengthBucket, len(lengths))
	for i, l := range lengths {
		buckets[i] = LengthBucket{
			Length:     l,
			Count:      counts[l],
			Percentage: percent(counts[l], total, 1),
		}
	}
	return buckets
}

func percent(part, total, places int) float64 {
	if total == 0 {
		return 0
	}
	return round(float64(part)/float64(total)*100, places)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
