package dictionary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/bastiangx/passcloud/pkg/corpus"
	"github.com/charmbracelet/log"
)

// ErrBadSnapshot is returned by LoadCorpus for a snapshot whose counts do not
// describe a valid frequency table.
var ErrBadSnapshot = errors.New("dictionary: malformed snapshot")

// LoadStems loads an alternate stem dictionary from a .txt or .bin file.
func LoadStems(path string) (Stems, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return Stems{}, err
	}

	switch format {
	case FormatText:
		data, err := os.ReadFile(path)
		if err != nil {
			return Stems{}, fmt.Errorf("failed to read stems file %s: %w", path, err)
		}
		stems := ParseStems(string(data))
		log.Debugf("Loaded %d stems from %s", stems.Len(), path)
		return stems, nil
	case FormatStems:
		return loadBinaryStems(path)
	default:
		return Stems{}, fmt.Errorf("%s is a %s, not a stem dictionary", path, format)
	}
}

func loadBinaryStems(path string) (Stems, error) {
	file, err := os.Open(path)
	if err != nil {
		return Stems{}, fmt.Errorf("failed to open stems file %s: %w", path, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	var count int32
	if err := binary.Read(reader, binary.LittleEndian, &count); err != nil {
		return Stems{}, fmt.Errorf("failed to read stems header: %w", err)
	}

	words := make([]string, 0, count)
	for i := 0; i < int(count); i++ {
		word, err := readString(reader)
		if err != nil {
			return Stems{}, fmt.Errorf("failed to read stem %d of %d: %w", i+1, count, err)
		}
		words = append(words, word)
	}

	stems := NewStems(words)
	log.Debugf("Loaded %d stems from %s", stems.Len(), path)
	return stems, nil
}

// WriteStems writes stems in the binary stem format.
func WriteStems(path string, stems Stems) error {
	return writeFile(path, func(w *bufio.Writer) error {
		if err := binary.Write(w, binary.LittleEndian, int32(stems.Len())); err != nil {
			return err
		}
		for _, word := range stems.words {
			if err := writeString(w, word); err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveCorpus writes the frequency table of c as a .pcs snapshot.
//
// Layout (little-endian): int32 entry count, int32 total lines, then per entry
// a uint16 length-prefixed word and a uint32 count.
func SaveCorpus(path string, c *corpus.Corpus) error {
	if c == nil {
		c = &corpus.Corpus{}
	}
	err := writeFile(path, func(w *bufio.Writer) error {
		if err := binary.Write(w, binary.LittleEndian, int32(len(c.Entries))); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, int32(c.TotalLines)); err != nil {
			return err
		}
		for _, e := range c.Entries {
			if err := writeString(w, e.Word); err != nil {
				return err
			}
			if e.Count < 0 || int64(e.Count) > math.MaxUint32 {
				return fmt.Errorf("count %d for %q out of range", e.Count, e.Word)
			}
			if err := binary.Write(w, binary.LittleEndian, uint32(e.Count)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Debugf("Saved snapshot %s: %d entries", path, len(c.Entries))
	return nil
}

// LoadCorpus reads a .pcs snapshot written by SaveCorpus.
// Words are normalized and merged the way ingestion does it. A snapshot with a
// zero count, a negative line total, or fewer lines than counted occurrences is
// rejected.
func LoadCorpus(path string) (*corpus.Corpus, error) {
	if err := ValidateFileFormat(path, FormatSnapshot); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot %s: %w", path, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	var entryCount, totalLines int32
	if err := binary.Read(reader, binary.LittleEndian, &entryCount); err != nil {
		return nil, fmt.Errorf("failed to read snapshot header: %w", err)
	}
	if err := binary.Read(reader, binary.LittleEndian, &totalLines); err != nil {
		return nil, fmt.Errorf("failed to read snapshot header: %w", err)
	}
	if totalLines < 0 {
		return nil, fmt.Errorf("%w: negative line total %d in %s", ErrBadSnapshot, totalLines, path)
	}

	entries := make([]corpus.Entry, 0, entryCount)
	for i := 0; i < int(entryCount); i++ {
		word, err := readString(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to read entry %d: %w", i+1, err)
		}
		var count uint32
		if err := binary.Read(reader, binary.LittleEndian, &count); err != nil {
			return nil, fmt.Errorf("failed to read count for %q: %w", word, err)
		}
		if count == 0 {
			return nil, fmt.Errorf("%w: zero count for entry %d (%q) in %s", ErrBadSnapshot, i+1, word, path)
		}
		entries = append(entries, corpus.Entry{Word: word, Count: int(count)})
	}

	c := corpus.FromEntries(entries)
	if int(totalLines) < c.TotalLines {
		return nil, fmt.Errorf("%w: %d lines but %d counted occurrences in %s",
			ErrBadSnapshot, totalLines, c.TotalLines, path)
	}
	c.TotalLines = int(totalLines)

	log.Debugf("Loaded snapshot %s: %d entries, %d unique, %d lines", path, entryCount, c.Unique(), totalLines)
	return c, nil
}

func readString(r io.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writeString(w io.Writer, s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("string of %d bytes exceeds the format limit", len(s))
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func writeFile(path string, fill func(w *bufio.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	w := bufio.NewWriter(file)
	if err := fill(w); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return file.Close()
}
