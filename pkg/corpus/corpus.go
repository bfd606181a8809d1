/*
Package corpus turns raw password lists into frequency tables.

A Corpus is built once per analyzed file and is never updated in place.
Every engine in passcloud (stats, heatmap, partial, cloud) reads a Corpus and
returns a new value; replacing the analyzed file means building a new Corpus.

	c := corpus.Ingest("hunter2\nHunter2\r\nletmein\n\n")
	c.TotalLines // 3
	c.Unique()   // 2
	c.Entries    // [{hunter2 2} {letmein 1}]

Blank lines (after trimming) are dropped before counting, and every retained
line is trimmed and lowercased, so "Hunter2 " and "hunter2" share one entry.
*/
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// ErrNoData is returned by engines when the corpus holds no retained lines.
var ErrNoData = errors.New("corpus: no data")

// maxLineSize bounds a single line read by IngestReader.
const maxLineSize = 1024 * 1024

// Entry is one distinct password and the number of lines it appeared on.
type Entry struct {
	Word  string `json:"word" yaml:"word" msgpack:"w"`
	Count int    `json:"count" yaml:"count" msgpack:"c"`
}

// Len returns the length of the word in code points.
func (e Entry) Len() int {
	return utf8.RuneCountInString(e.Word)
}

// Corpus is the deduplicated frequency table of one analyzed file.
type Corpus struct {
	// Entries holds one entry per distinct word, in first-seen order.
	Entries []Entry
	// TotalLines counts every retained line, duplicates included.
	TotalLines int
}

// Unique returns the number of distinct words.
func (c *Corpus) Unique() int {
	if c == nil {
		return 0
	}
	return len(c.Entries)
}

// Empty reports whether the corpus has no data to analyze.
func (c *Corpus) Empty() bool {
	return c == nil || c.TotalLines == 0 || len(c.Entries) == 0
}

// Count returns the occurrence count of word, or 0 when absent.
// word is normalized the same way ingestion normalizes lines.
func (c *Corpus) Count(word string) int {
	if c == nil {
		return 0
	}
	w := normalizeLine(word)
	for _, e := range c.Entries {
		if e.Word == w {
			return e.Count
		}
	}
	return 0
}

// FromEntries builds a Corpus from an existing frequency table.
// Words are normalized like ingested lines and merged when they collide.
// Entries with a non-positive count or a blank word are skipped. TotalLines is
// set to the sum of the kept counts.
func FromEntries(entries []Entry) *Corpus {
	b := newBuilder()
	for _, e := range entries {
		word := normalizeLine(e.Word)
		if word == "" || e.Count < 1 {
			continue
		}
		b.addCount(word, e.Count)
	}
	return b.build()
}

// Ingest splits raw text into lines and builds the frequency table.
// Both LF and CRLF line endings are accepted.
func Ingest(raw string) *Corpus {
	b := newBuilder()
	for _, line := range strings.Split(raw, "\n") {
		b.addLine(line)
	}
	c := b.build()
	log.Debugf("Ingested %d lines, %d unique", c.TotalLines, c.Unique())
	return c
}

// IngestReader streams lines from r into a new Corpus.
func IngestReader(r io.Reader) (*Corpus, error) {
	b := newBuilder()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		b.addLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read password list: %w", err)
	}
	c := b.build()
	log.Debugf("Ingested %d lines, %d unique", c.TotalLines, c.Unique())
	return c, nil
}

// ReadFile ingests the password list stored at path.
// A path of "-" reads from stdin.
func ReadFile(path string) (*Corpus, error) {
	if path == "-" {
		return IngestReader(os.Stdin)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open password list %s: %w", path, err)
	}
	defer file.Close()
	return IngestReader(file)
}

// normalizeLine trims whitespace and byte order marks, then lowercases.
func normalizeLine(line string) string {
	return strings.ToLower(strings.TrimFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\ufeff'
	}))
}

// builder accumulates counts while keeping first-seen order.
type builder struct {
	index   map[string]int
	entries []Entry
	total   int
}

func newBuilder() *builder {
	return &builder{index: make(map[string]int)}
}

func (b *builder) addLine(line string) {
	word := normalizeLine(line)
	if word == "" {
		return
	}
	b.addCount(word, 1)
}

func (b *builder) addCount(word string, n int) {
	b.total += n
	if i, ok := b.index[word]; ok {
		b.entries[i].Count += n
		return
	}
	b.index[word] = len(b.entries)
	b.entries = append(b.entries, Entry{Word: word, Count: n})
}

func (b *builder) build() *Corpus {
	return &Corpus{Entries: b.entries, TotalLines: b.total}
}
