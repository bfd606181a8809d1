package analysis

import (
	"sync"
	"time"

	"github.com/bastiangx/passcloud/pkg/cloud"
	"github.com/bastiangx/passcloud/pkg/corpus"
	"github.com/bastiangx/passcloud/pkg/dictionary"
	"github.com/bastiangx/passcloud/pkg/heatmap"
	"github.com/bastiangx/passcloud/pkg/partial"
	"github.com/bastiangx/passcloud/pkg/stats"
)

// lazy computes a value once and remembers it along with its error.
type lazy[T any] struct {
	once sync.Once
	val  T
	err  error
}

func (l *lazy[T]) get(fn func() (T, error)) (T, error) {
	l.once.Do(func() {
		l.val, l.err = fn()
	})
	return l.val, l.err
}

// snapshot is one loaded corpus and its memoized results. Never mutated after
// the engines have filled it.
type snapshot struct {
	corpus   *corpus.Corpus
	source   string
	loadedAt time.Time
	opts     Options

	summary lazy[*stats.Summary]
	grid    lazy[*heatmap.Result]
	phrases lazy[*partial.Result]
	// full, uncoloured word lists keyed by stem mode
	words   [2]lazy[[]cloud.Word]
	prefix  sync.Once
	lookups *dictionary.Index
}

func newSnapshot(c *corpus.Corpus, source string, opts Options) *snapshot {
	return &snapshot{corpus: c, source: source, loadedAt: time.Now(), opts: opts}
}

func (s *snapshot) info() Info {
	return Info{
		Source:          s.source,
		TotalPasswords:  s.corpus.TotalLines,
		UniquePasswords: s.corpus.Unique(),
		LoadedAt:        s.loadedAt,
	}
}

func (s *snapshot) stats() (*stats.Summary, error) {
	return s.summary.get(func() (*stats.Summary, error) {
		return stats.Compute(s.corpus)
	})
}

func (s *snapshot) heatmap() (*heatmap.Result, error) {
	return s.grid.get(func() (*heatmap.Result, error) {
		return heatmap.Compute(s.corpus)
	})
}

func (s *snapshot) partial() (*partial.Result, error) {
	return s.phrases.get(func() (*partial.Result, error) {
		return partial.Extract(s.corpus, s.opts.Stems, s.opts.Partial)
	})
}

// cloud trims and colours a copy of the cached list for opts.
func (s *snapshot) cloud(opts cloud.Options) ([]cloud.Word, error) {
	mode := 0
	if opts.StemMode {
		mode = 1
	}
	all, err := s.words[mode].get(func() ([]cloud.Word, error) {
		return cloud.Build(s.corpus, cloud.Options{StemMode: opts.StemMode})
	})
	if err != nil {
		return nil, err
	}

	n := len(all)
	if opts.Limit > 0 {
		n = min(n, opts.Limit)
	}
	palette := cloud.Palette(opts.Dark)
	out := make([]cloud.Word, n)
	for i := range out {
		out[i] = all[i]
		out[i].Color = cloud.ColorFor(out[i].Weight, palette)
	}
	return out, nil
}

func (s *snapshot) index() *dictionary.Index {
	s.prefix.Do(func() {
		s.lookups = dictionary.NewIndex(s.corpus)
	})
	return s.lookups
}
