package dictionary

import (
	"sort"
	"strings"

	"github.com/bastiangx/passcloud/pkg/corpus"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Index is a prefix index over the words of one corpus.
// It is built once and read-only afterwards, so it is safe for concurrent lookups.
type Index struct {
	trie     *patricia.Trie
	words    int
	maxCount int
}

// NewIndex builds a prefix index from the corpus frequency table.
func NewIndex(c *corpus.Corpus) *Index {
	idx := &Index{trie: patricia.NewTrie()}
	if c == nil {
		return idx
	}
	for _, e := range c.Entries {
		idx.trie.Insert(patricia.Prefix(e.Word), e.Count)
		idx.words++
		if e.Count > idx.maxCount {
			idx.maxCount = e.Count
		}
	}
	log.Debugf("Built prefix index: %d words, max count %d", idx.words, idx.maxCount)
	return idx
}

// Lookup returns words starting with prefix, most frequent first.
// Ties are broken alphabetically. A limit <= 0 returns every match.
func (idx *Index) Lookup(prefix string, limit int) []corpus.Entry {
	lowerPrefix := strings.ToLower(strings.TrimSpace(prefix))

	var matches []corpus.Entry
	err := idx.trie.VisitSubtree(patricia.Prefix(lowerPrefix), func(p patricia.Prefix, item patricia.Item) error {
		count, ok := item.(int)
		if !ok {
			log.Errorf("Unknown item type: %T for word %s", item, p)
			return nil
		}
		matches = append(matches, corpus.Entry{Word: string(p), Count: count})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
		return nil
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Count != matches[j].Count {
			return matches[i].Count > matches[j].Count
		}
		return matches[i].Word < matches[j].Word
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// PrefixTotal sums the occurrence counts of every word starting with prefix.
func (idx *Index) PrefixTotal(prefix string) int {
	total := 0
	lowerPrefix := strings.ToLower(strings.TrimSpace(prefix))
	_ = idx.trie.VisitSubtree(patricia.Prefix(lowerPrefix), func(_ patricia.Prefix, item patricia.Item) error {
		if count, ok := item.(int); ok {
			total += count
		}
		return nil
	})
	return total
}
