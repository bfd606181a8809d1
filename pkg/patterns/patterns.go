/*
Package patterns holds the fixed surface-pattern predicates used by the
statistics and partial-match engines.

All predicates lowercase their input first and are independent: a password can
match zero, one, or several detectors.
*/
package patterns

import (
	"regexp"
	"strings"

	"github.com/bastiangx/passcloud/internal/utils"
)

// sequentialRuns are ascending or repeated 3-character runs.
var sequentialRuns = []string{
	"123", "234", "345", "456", "567", "678", "789", "890",
	"111", "222", "333", "444", "555", "666", "777", "888", "999", "000",
	"abc", "bcd", "cde", "def", "efg", "fgh", "ghi", "hij", "ijk",
	"jkl", "klm", "lmn", "mno", "nop", "opq", "pqr", "qrs", "rst",
	"stu", "tuv", "uvw", "vwx", "wxy", "xyz",
}

// keyboardRuns are physical-keyboard adjacency tokens (rows and diagonals).
var keyboardRuns = []string{
	"qwerty", "qwertz", "azerty", "qwer", "asdf", "zxcv",
	"qaz", "wsx", "edc", "rfv", "tgb", "yhn", "ujm",
	"wasd", "asd", "zxc",
}

var yearPattern = regexp.MustCompile(`19\d{2}|20\d{2}`)

// HasSequentialPattern reports whether password contains a sequential or repeated run.
func HasSequentialPattern(password string) bool {
	return containsAny(strings.ToLower(password), sequentialRuns)
}

// HasKeyboardPattern reports whether password contains a keyboard-adjacency run.
func HasKeyboardPattern(password string) bool {
	return containsAny(strings.ToLower(password), keyboardRuns)
}

// HasYearPattern reports whether password contains a 4-digit year in 1900-2099.
func HasYearPattern(password string) bool {
	return yearPattern.MatchString(strings.ToLower(password))
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// Normalize reduces a word to its stem for the word cloud's stem mode.
// Non-letters are stripped first, then a trailing digit run; the second step
// never fires after the first and is kept to match the established output.
func Normalize(word string) string {
	return utils.TrimTrailingDigits(utils.StripNonLetters(word))
}

// IsSingleChar reports whether s is a single character, possibly repeated.
func IsSingleChar(s string) bool {
	return utils.IsRepetitive(s)
}

// IsValidPhrase reports whether s is worth showing as a partial phrase.
// Blank strings, strings without any ASCII letter or digit, and single repeated
// characters are rejected.
func IsValidPhrase(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	if utils.IsOnlySpecialChars(s) {
		return false
	}
	return !IsSingleChar(s)
}
