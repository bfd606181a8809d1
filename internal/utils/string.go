package utils

import (
	"fmt"
	"strings"
)

// isASCIIDigit checks if a rune is 0-9
func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isASCIILetter checks if a rune is a-z or A-Z
func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// IsASCIIAlnum checks if a rune is an ASCII letter or digit
func IsASCIIAlnum(r rune) bool {
	return isASCIIDigit(r) || isASCIILetter(r)
}

// ContainsDigits checks if a string contains any ASCII digit
func ContainsDigits(s string) bool {
	return strings.IndexFunc(s, isASCIIDigit) >= 0
}

// ContainsLetters checks if a string contains any ASCII letter
func ContainsLetters(s string) bool {
	return strings.IndexFunc(s, isASCIILetter) >= 0
}

// ContainsSpecialChars checks if a string contains any character outside [A-Za-z0-9].
// Non-ASCII letters count as special.
func ContainsSpecialChars(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !IsASCIIAlnum(r) }) >= 0
}

// IsOnlySpecialChars checks if a non-empty string has no ASCII letter or digit
func IsOnlySpecialChars(s string) bool {
	if len(s) == 0 {
		return false
	}
	return strings.IndexFunc(s, IsASCIIAlnum) < 0
}

// StripNonLetters removes every rune that is not an ASCII letter
func StripNonLetters(s string) string {
	return strings.Map(func(r rune) rune {
		if isASCIILetter(r) {
			return r
		}
		return -1
	}, s)
}

// TrimTrailingDigits removes a trailing run of ASCII digits
func TrimTrailingDigits(s string) string {
	return strings.TrimRightFunc(s, isASCIIDigit)
}

// IsRepetitive checks if a non-empty string is one character repeated
// (e.g. "a", "aaa", "111").
func IsRepetitive(s string) bool {
	if len(s) == 0 {
		return false
	}
	var first rune
	for i, r := range s {
		if i == 0 {
			first = r
			continue
		}
		if r != first {
			return false
		}
	}
	return true
}

// FormatWithCommas formats an integer with comma separators
func FormatWithCommas(n int) string {
	if n < 0 {
		return "-" + FormatWithCommas(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	str := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(char)
	}
	return b.String()
}
