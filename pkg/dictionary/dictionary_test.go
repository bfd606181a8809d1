package dictionary

import (
	"bufio"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/passcloud/pkg/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStems(t *testing.T) {
	stems := Default()
	words := stems.Words()

	assert.Equal(t, 61, stems.Len())
	assert.Equal(t, "pass", words[0])
	assert.Equal(t, "public", words[len(words)-1])
	assert.True(t, stems.Contains("iloveyou"))
	assert.True(t, stems.Contains("123"))
	assert.False(t, stems.Contains("pas"), "prefix of a stem is not a stem")
	assert.False(t, stems.Contains("passw"))

	// Words returns a copy
	words[0] = "mutated"
	assert.Equal(t, "pass", Default().Words()[0])
}

func TestNewStemsNormalizes(t *testing.T) {
	stems := NewStems([]string{" Pass ", "pass", "", "ADMIN", "admin", "root"})
	assert.Equal(t, []string{"pass", "admin", "root"}, stems.Words())

	var seen []string
	stems.Each(func(i int, stem string) {
		assert.Equal(t, len(seen), i)
		seen = append(seen, stem)
	})
	assert.Equal(t, stems.Words(), seen)

	var empty Stems
	assert.False(t, empty.Contains("pass"))
	assert.Equal(t, 0, empty.Len())
}

func TestLoadStemsText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stems.txt")
	require.NoError(t, os.WriteFile(path, []byte("# comment\nfoo\r\n\nBar\n"), 0644))

	stems, err := LoadStems(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "bar"}, stems.Words())
}

func TestStemsBinaryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stems.bin")
	require.NoError(t, WriteStems(path, NewStems([]string{"alpha", "beta", "ünï"})))

	format, err := DetectFileFormat(path)
	require.NoError(t, err)
	assert.Equal(t, FormatStems, format)

	stems, err := LoadStems(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "ünï"}, stems.Words())
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "list.pcs")
	c := corpus.Ingest("123456\npassword\n123456\nqwerty\n")

	require.NoError(t, SaveCorpus(path, c))
	loaded, err := LoadCorpus(path)
	require.NoError(t, err)
	assert.Equal(t, c.TotalLines, loaded.TotalLines)
	assert.Equal(t, c.Entries, loaded.Entries)

	_, err = LoadStems(path)
	assert.Error(t, err, "a snapshot is not a stem dictionary")
}

// writeSnapshot writes a .pcs file by hand so that headers and counts can be
// set to values SaveCorpus never produces.
func writeSnapshot(t *testing.T, totalLines int32, words []string, counts []uint32) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hand.pcs")
	require.NoError(t, writeFile(path, func(w *bufio.Writer) error {
		if err := binary.Write(w, binary.LittleEndian, int32(len(words))); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, totalLines); err != nil {
			return err
		}
		for i, word := range words {
			if err := writeString(w, word); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, counts[i]); err != nil {
				return err
			}
		}
		return nil
	}))
	return path
}

func TestLoadCorpusRejectsMalformed(t *testing.T) {
	testCases := []struct {
		totalLines  int32
		words       []string
		counts      []uint32
		description string
	}{
		{1, []string{"Password", "password"}, []uint32{0, 0}, "Zero counts"},
		{5, []string{"admin", "root"}, []uint32{3, 0}, "One zero count"},
		{-1, []string{"admin"}, []uint32{1}, "Negative line total"},
		{2, []string{"admin", "root"}, []uint32{2, 1}, "Fewer lines than occurrences"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			_, err := LoadCorpus(writeSnapshot(t, tc.totalLines, tc.words, tc.counts))
			assert.ErrorIs(t, err, ErrBadSnapshot)
		})
	}
}

func TestLoadCorpusNormalizesWords(t *testing.T) {
	path := writeSnapshot(t, 6, []string{"Password", " password", "123456", ""}, []uint32{2, 1, 3, 4})

	c, err := LoadCorpus(path)
	require.NoError(t, err)
	assert.Equal(t, []corpus.Entry{{Word: "password", Count: 3}, {Word: "123456", Count: 3}}, c.Entries)
	assert.Equal(t, 6, c.TotalLines)
	assert.LessOrEqual(t, c.Unique(), c.TotalLines)
}

func TestDetectFileFormatErrors(t *testing.T) {
	dir := t.TempDir()

	unknown := filepath.Join(dir, "list.csv")
	require.NoError(t, os.WriteFile(unknown, []byte("a"), 0644))
	_, err := DetectFileFormat(unknown)
	assert.Error(t, err)

	short := filepath.Join(dir, "short.bin")
	require.NoError(t, os.WriteFile(short, []byte{1, 0}, 0644))
	_, err = DetectFileFormat(short)
	assert.Error(t, err)

	negative := filepath.Join(dir, "neg.bin")
	require.NoError(t, os.WriteFile(negative, []byte{0xff, 0xff, 0xff, 0xff}, 0644))
	_, err = DetectFileFormat(negative)
	assert.Error(t, err)

	_, err = LoadCorpus(filepath.Join(dir, "missing.pcs"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIndexLookup(t *testing.T) {
	c := corpus.Ingest("pass\npass123\npass123\npassword\npassword\npassword\nadmin\npa\n")
	idx := NewIndex(c)

	got := idx.Lookup("PASS", 0)
	assert.Equal(t, []corpus.Entry{
		{Word: "password", Count: 3},
		{Word: "pass123", Count: 2},
		{Word: "pass", Count: 1},
	}, got)

	assert.Len(t, idx.Lookup("pass", 2), 2)
	assert.Empty(t, idx.Lookup("zzz", 10))
	assert.Equal(t, 7, idx.PrefixTotal("pa"))
}
