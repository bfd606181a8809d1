/*
Package partial extracts the affixes people wrap around common password stems.

For every corpus entry and every stem it contains, the text before the stem and
the text after it are collected as candidate phrases:

	mypass123 ×5, stems [pass]  →  "my" +5, "123" +5

Candidates are weighted by the entry count, filtered, and ranked. A corpus that
produces no surviving phrases yields a Result whose NoMatches reports true; an
empty corpus is corpus.ErrNoData.
*/
package partial

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/passcloud/pkg/corpus"
	"github.com/bastiangx/passcloud/pkg/dictionary"
	"github.com/bastiangx/passcloud/pkg/patterns"
	"github.com/charmbracelet/log"
)

const (
	DefaultLimit          = 200
	DefaultMaxAffixLength = 8
	// stemLogCount is how many of the most used stems are logged per run.
	stemLogCount = 10
)

// Options tune extraction. Zero fields fall back to the defaults.
type Options struct {
	Limit          int
	MaxAffixLength int
}

// DefaultOptions returns the standard extraction settings.
func DefaultOptions() Options {
	return Options{Limit: DefaultLimit, MaxAffixLength: DefaultMaxAffixLength}
}

func (o Options) withDefaults() Options {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.MaxAffixLength <= 0 {
		o.MaxAffixLength = DefaultMaxAffixLength
	}
	return o
}

// Phrase is one extracted affix and its weighted count.
type Phrase struct {
	Phrase string `json:"phrase" yaml:"phrase" msgpack:"p"`
	Count  int    `json:"count" yaml:"count" msgpack:"c"`
}

// StemUse is the weighted number of entries a stem occurred in.
type StemUse struct {
	Stem  string `json:"stem" yaml:"stem" msgpack:"s"`
	Count int    `json:"count" yaml:"count" msgpack:"c"`
}

// Result is the ranked output of one extraction run.
type Result struct {
	Phrases []Phrase `json:"phrases" yaml:"phrases" msgpack:"phrases"`
	// StemUsage lists every stem that matched at least once, most used first.
	StemUsage []StemUse `json:"stem_usage" yaml:"stem_usage" msgpack:"stems"`
	// TotalExtracted counts distinct candidates before filtering.
	TotalExtracted int `json:"total_extracted" yaml:"total_extracted" msgpack:"total"`
}

// NoMatches reports whether no phrase survived filtering.
func (r *Result) NoMatches() bool {
	return r == nil || len(r.Phrases) == 0
}

// tally counts keys while remembering first-seen order.
type tally struct {
	index map[string]int
	items []Phrase
}

func newTally() *tally {
	return &tally{index: make(map[string]int)}
}

func (t *tally) add(key string, n int) {
	if i, ok := t.index[key]; ok {
		t.items[i].Count += n
		return
	}
	t.index[key] = len(t.items)
	t.items = append(t.items, Phrase{Phrase: key, Count: n})
}

// Extract runs partial matching of c against stems.
func Extract(c *corpus.Corpus, stems dictionary.Stems, opts Options) (*Result, error) {
	if c.Empty() {
		return nil, corpus.ErrNoData
	}
	opts = opts.withDefaults()

	phrases := newTally()
	usage := newTally()

	for _, e := range c.Entries {
		password := strings.ToLower(e.Word)
		stems.Each(func(_ int, stem string) {
			if !strings.Contains(password, stem) {
				return
			}
			usage.add(stem, e.Count)
			for _, affix := range affixes(password, stem) {
				if eligible(affix, opts.MaxAffixLength) {
					phrases.add(affix, e.Count)
				}
			}
		})
	}

	res := &Result{TotalExtracted: len(phrases.items)}
	for _, p := range phrases.items {
		if p.Count > 1 && !stems.Contains(p.Phrase) && !patterns.IsSingleChar(p.Phrase) {
			res.Phrases = append(res.Phrases, p)
		}
	}
	sort.SliceStable(res.Phrases, func(i, j int) bool {
		return res.Phrases[i].Count > res.Phrases[j].Count
	})
	if len(res.Phrases) > opts.Limit {
		res.Phrases = res.Phrases[:opts.Limit]
	}

	for _, u := range usage.items {
		res.StemUsage = append(res.StemUsage, StemUse{Stem: u.Phrase, Count: u.Count})
	}
	sort.SliceStable(res.StemUsage, func(i, j int) bool {
		return res.StemUsage[i].Count > res.StemUsage[j].Count
	})
	logStemUsage(res.StemUsage)

	log.Debugf("Partial match analysis: %d extracted, %d kept", res.TotalExtracted, len(res.Phrases))
	return res, nil
}

// affixes returns the text before and after every occurrence of stem in
// password, scanning left to right and resuming after each match.
// Empty affixes are omitted.
func affixes(password, stem string) []string {
	var out []string
	for from := 0; from < len(password); {
		i := strings.Index(password[from:], stem)
		if i < 0 {
			break
		}
		start := from + i
		end := start + len(stem)
		if start > 0 {
			out = append(out, password[:start])
		}
		if end < len(password) {
			out = append(out, password[end:])
		}
		from = end
	}
	return out
}

func eligible(affix string, maxLen int) bool {
	n := utf8.RuneCountInString(affix)
	return n > 0 && n <= maxLen && patterns.IsValidPhrase(affix)
}

func logStemUsage(usage []StemUse) {
	if len(usage) == 0 {
		return
	}
	top := usage[:min(stemLogCount, len(usage))]
	for _, u := range top {
		log.Debugf("Stem %q used by %d passwords", u.Stem, u.Count)
	}
}
