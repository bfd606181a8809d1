/*
Package analysis owns the currently analyzed corpus and the results derived
from it.

An Analyzer holds one immutable snapshot at a time. Loading a new list swaps
the snapshot in a single step, so concurrent readers see either the old corpus
with its results or the new one, never a mix of both. Each engine runs at most
once per snapshot; results are cached on the snapshot and dropped with it.

	a := analysis.New(analysis.DefaultOptions())
	if _, err := a.LoadFile("rockyou.txt"); err != nil {
		log.Fatal(err)
	}
	summary, err := a.Stats()
*/
package analysis

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bastiangx/passcloud/pkg/cloud"
	"github.com/bastiangx/passcloud/pkg/corpus"
	"github.com/bastiangx/passcloud/pkg/dictionary"
	"github.com/bastiangx/passcloud/pkg/heatmap"
	"github.com/bastiangx/passcloud/pkg/partial"
	"github.com/bastiangx/passcloud/pkg/stats"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// ErrNotLoaded is returned when a result is requested before any list was loaded.
var ErrNotLoaded = errors.New("analysis: no password list loaded")

// Options configure an Analyzer.
type Options struct {
	Stems   dictionary.Stems
	Partial partial.Options
}

// DefaultOptions uses the built-in stems and default partial settings.
func DefaultOptions() Options {
	return Options{Stems: dictionary.Default(), Partial: partial.DefaultOptions()}
}

// Analyzer coordinates loading and analysis. It is safe for concurrent use.
type Analyzer struct {
	mu   sync.RWMutex
	snap *snapshot
	opts Options
}

// New creates an Analyzer with nothing loaded.
func New(opts Options) *Analyzer {
	if opts.Stems.Len() == 0 {
		opts.Stems = dictionary.Default()
	}
	return &Analyzer{opts: opts}
}

// Info describes the loaded list.
type Info struct {
	Source          string    `json:"source" yaml:"source" msgpack:"source"`
	TotalPasswords  int       `json:"total_passwords" yaml:"total_passwords" msgpack:"total"`
	UniquePasswords int       `json:"unique_passwords" yaml:"unique_passwords" msgpack:"unique"`
	LoadedAt        time.Time `json:"loaded_at" yaml:"loaded_at" msgpack:"loaded_at"`
}

// Load replaces the current corpus.
func (a *Analyzer) Load(c *corpus.Corpus, source string) Info {
	if c == nil {
		c = &corpus.Corpus{}
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.snap = newSnapshot(c, source, a.opts)
	log.Debugf("Loaded %s: %d lines, %d unique", source, c.TotalLines, c.Unique())
	return a.snap.info()
}

// LoadText ingests raw text and replaces the current corpus with it.
func (a *Analyzer) LoadText(raw, source string) Info {
	return a.Load(corpus.Ingest(raw), source)
}

// LoadFile reads a password list or a .pcs snapshot and replaces the current corpus.
func (a *Analyzer) LoadFile(path string) (Info, error) {
	var c *corpus.Corpus
	var err error
	if strings.EqualFold(filepath.Ext(path), ".pcs") {
		c, err = dictionary.LoadCorpus(path)
	} else {
		c, err = corpus.ReadFile(path)
	}
	if err != nil {
		return Info{}, err
	}
	return a.Load(c, path), nil
}

// SetStems swaps the stem dictionary used by partial matching.
// The loaded corpus is kept; cached results are recomputed on demand.
func (a *Analyzer) SetStems(stems dictionary.Stems) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.opts.Stems = stems
	if a.snap != nil {
		a.snap = newSnapshot(a.snap.corpus, a.snap.source, a.opts)
	}
}

// Loaded reports whether a list is loaded.
func (a *Analyzer) Loaded() bool {
	return a.current() != nil
}

// Info describes the loaded list.
func (a *Analyzer) Info() (Info, error) {
	s := a.current()
	if s == nil {
		return Info{}, ErrNotLoaded
	}
	return s.info(), nil
}

// Corpus returns the loaded corpus. Callers must not modify it.
func (a *Analyzer) Corpus() (*corpus.Corpus, error) {
	s := a.current()
	if s == nil {
		return nil, ErrNotLoaded
	}
	return s.corpus, nil
}

func (a *Analyzer) current() *snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snap
}

// Stats returns the statistics summary of the loaded list.
func (a *Analyzer) Stats() (*stats.Summary, error) {
	s := a.current()
	if s == nil {
		return nil, ErrNotLoaded
	}
	return s.stats()
}

// Heatmap returns the length × frequency heatmap of the loaded list.
func (a *Analyzer) Heatmap() (*heatmap.Result, error) {
	s := a.current()
	if s == nil {
		return nil, ErrNotLoaded
	}
	return s.heatmap()
}

// Partial returns the partial-match phrases of the loaded list.
func (a *Analyzer) Partial() (*partial.Result, error) {
	s := a.current()
	if s == nil {
		return nil, ErrNotLoaded
	}
	return s.partial()
}

// Cloud returns the word cloud list of the loaded list.
func (a *Analyzer) Cloud(opts cloud.Options) ([]cloud.Word, error) {
	s := a.current()
	if s == nil {
		return nil, ErrNotLoaded
	}
	return s.cloud(opts)
}

// Lookup lists loaded passwords starting with prefix, most frequent first.
func (a *Analyzer) Lookup(prefix string, limit int) ([]corpus.Entry, error) {
	s := a.current()
	if s == nil {
		return nil, ErrNotLoaded
	}
	return s.index().Lookup(prefix, limit), nil
}

// PrefixTotal sums the occurrences of every loaded password starting with prefix.
func (a *Analyzer) PrefixTotal(prefix string) (int, error) {
	s := a.current()
	if s == nil {
		return 0, ErrNotLoaded
	}
	return s.index().PrefixTotal(prefix), nil
}

// Report bundles every result of one snapshot.
type Report struct {
	Info    Info            `json:"info" yaml:"info" msgpack:"info"`
	Stats   *stats.Summary  `json:"stats" yaml:"stats" msgpack:"stats"`
	Heatmap *heatmap.Result `json:"heatmap" yaml:"heatmap" msgpack:"heatmap"`
	Partial *partial.Result `json:"partial" yaml:"partial" msgpack:"partial"`
	Cloud   []cloud.Word    `json:"cloud" yaml:"cloud" msgpack:"cloud"`
}

// Report computes all results of the current snapshot concurrently.
func (a *Analyzer) Report(ctx context.Context, cloudOpts cloud.Options) (*Report, error) {
	s := a.current()
	if s == nil {
		return nil, ErrNotLoaded
	}

	r := &Report{Info: s.info()}
	g, ctx := errgroup.WithContext(ctx)
	run := func(name string, fn func() error) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}

	run("stats", func() (err error) {
		r.Stats, err = s.stats()
		return err
	})
	run("heatmap", func() (err error) {
		r.Heatmap, err = s.heatmap()
		return err
	})
	run("partial", func() (err error) {
		r.Partial, err = s.partial()
		return err
	})
	run("cloud", func() (err error) {
		r.Cloud, err = s.cloud(cloudOpts)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return r, nil
}
