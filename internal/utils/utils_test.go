package utils

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacterClasses(t *testing.T) {
	testCases := []struct {
		input       string
		digits      bool
		letters     bool
		special     bool
		onlySpecial bool
		description string
	}{
		{"123", true, false, false, false, "Digits only"},
		{"abc", false, true, false, false, "Letters only"},
		{"ABC1", true, true, false, false, "Upper letters and digit"},
		{"p@ss", false, true, true, false, "Letters with symbol"},
		{"!!!", false, false, true, true, "Symbols only"},
		{"é", false, false, true, true, "Non-ASCII letter counts as special"},
		{"", false, false, false, false, "Empty string"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.digits, ContainsDigits(tc.input))
			assert.Equal(t, tc.letters, ContainsLetters(tc.input))
			assert.Equal(t, tc.special, ContainsSpecialChars(tc.input))
			assert.Equal(t, tc.onlySpecial, IsOnlySpecialChars(tc.input))
		})
	}
}

func TestIsRepetitive(t *testing.T) {
	assert.False(t, IsRepetitive(""))
	assert.True(t, IsRepetitive("a"))
	assert.True(t, IsRepetitive("1111"))
	assert.True(t, IsRepetitive("ßß"))
	assert.False(t, IsRepetitive("aab"))
}

func TestStripHelpers(t *testing.T) {
	assert.Equal(t, "Password", StripNonLetters("Pass-word123!"))
	assert.Equal(t, "abc", TrimTrailingDigits("abc123"))
	assert.Equal(t, "1abc", TrimTrailingDigits("1abc"))
}

func TestFormatWithCommas(t *testing.T) {
	assert.Equal(t, "999", FormatWithCommas(999))
	assert.Equal(t, "1,000", FormatWithCommas(1000))
	assert.Equal(t, "1,234,567", FormatWithCommas(1234567))
	assert.Equal(t, "-12,345", FormatWithCommas(-12345))
}

func TestCreateRankList(t *testing.T) {
	assert.Empty(t, CreateRankList(0))
	assert.Equal(t, []uint16{1, 2, 3}, CreateRankList(3))

	ranks := CreateRankList(math.MaxUint16 + 5)
	assert.Equal(t, uint16(math.MaxUint16), ranks[len(ranks)-1])
}

func TestTOMLRecovery(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[analysis]\ntop_n = 5\nname = \"x\"\nstrict = true\n"), 0644))

	data, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)

	section, ok := ExtractSection(data, "analysis")
	require.True(t, ok)

	n, ok := ExtractInt64(section, "top_n")
	assert.True(t, ok)
	assert.Equal(t, 5, n)

	s, ok := ExtractString(section, "name")
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	b, ok := ExtractBool(section, "strict")
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = ExtractInt64(section, "name")
	assert.False(t, ok)
}

func TestFindFileInPaths(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(second, "list.txt"), []byte("x"), 0644))

	path, err := FindFileInPaths("list.txt", []string{first, second})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(second, "list.txt"), path)

	_, err = FindFileInPaths("nope.txt", []string{first, second})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveTOMLFile(t *testing.T) {
	type section struct {
		Limit int    `toml:"limit"`
		Name  string `toml:"name"`
	}
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	require.NoError(t, SaveTOMLFile(map[string]section{"cli": {Limit: 7, Name: "x"}}, path))
	assert.True(t, FileExists(path))

	data, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)
	cli, ok := ExtractSection(data, "cli")
	require.True(t, ok)
	limit, ok := ExtractInt64(cli, "limit")
	assert.True(t, ok)
	assert.Equal(t, 7, limit)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileExistsAndAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, FileExists(dir), "directories are not files")
	assert.False(t, FileExists(filepath.Join(dir, "missing")))

	assert.Equal(t, "", GetAbsolutePath(""))
	assert.Equal(t, dir, GetAbsolutePath(dir))
	assert.True(t, filepath.IsAbs(GetAbsolutePath("config.toml")))
}
