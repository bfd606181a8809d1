/*
Package dictionary manages the known-stem dictionary used by partial matching,
the on-disk formats passcloud reads and writes, and a prefix index over a
loaded corpus.

The default stem list is embedded in the binary and parsed once at startup.
Alternate lists can be loaded from text or binary files and passed to the
partial-match engine in place of the default:

	stems, err := dictionary.LoadStems("custom.txt")
	res, err := partial.Extract(c, stems, partial.DefaultOptions())

A Stems value is immutable after construction. Membership checks go through a
patricia trie so that "is this phrase a stem" stays cheap for large custom
dictionaries.
*/
package dictionary

import (
	_ "embed"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
)

//go:embed stems.txt
var defaultStemsData string

var defaultStems = ParseStems(defaultStemsData)

// Stems is an ordered, immutable list of lowercase stem tokens.
type Stems struct {
	words []string
	trie  *patricia.Trie
}

// Default returns the built-in stem dictionary.
func Default() Stems {
	return defaultStems
}

// NewStems builds a dictionary from words, lowercasing and trimming each one.
// Empty words and repeats are dropped; the first occurrence keeps its position.
func NewStems(words []string) Stems {
	s := Stems{trie: patricia.NewTrie()}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if s.trie.Insert(patricia.Prefix(w), len(s.words)) {
			s.words = append(s.words, w)
		}
	}
	return s
}

// ParseStems reads one stem per line; blank lines and lines starting with '#'
// are skipped.
func ParseStems(data string) Stems {
	var words []string
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return NewStems(words)
}

// Words returns a copy of the stems in match order.
func (s Stems) Words() []string {
	out := make([]string, len(s.words))
	copy(out, s.words)
	return out
}

// Len returns the number of stems.
func (s Stems) Len() int {
	return len(s.words)
}

// Contains reports whether word is exactly one of the stems.
func (s Stems) Contains(word string) bool {
	if s.trie == nil {
		return false
	}
	return s.trie.Get(patricia.Prefix(word)) != nil
}

// Each calls fn for every stem in match order.
func (s Stems) Each(fn func(i int, stem string)) {
	for i, w := range s.words {
		fn(i, w)
	}
}
