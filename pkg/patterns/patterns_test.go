package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectors(t *testing.T) {
	testCases := []struct {
		input       string
		sequential  bool
		keyboard    bool
		year        bool
		description string
	}{
		{"password", false, false, false, "Plain word"},
		{"abc", true, false, false, "Letter run"},
		{"XYZ", true, false, false, "Uppercase letter run"},
		{"pass000", true, false, false, "Repeated zeros"},
		{"qwerty", false, true, false, "Keyboard row only"},
		{"Wasd", false, true, false, "Gaming keys"},
		{"zaq1", false, false, false, "Reverse diagonal not listed"},
		{"1qaz2wsx", false, true, false, "Keyboard diagonals"},
		{"born1987", false, false, true, "Year suffix"},
		{"x2024", false, false, true, "Year 20xx"},
		{"1899", false, false, false, "Year below range"},
		{"2100", false, false, false, "Year above range"},
		{"a123b1990", true, false, true, "Run and year together"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.sequential, HasSequentialPattern(tc.input), "sequential")
			assert.Equal(t, tc.keyboard, HasKeyboardPattern(tc.input), "keyboard")
			assert.Equal(t, tc.year, HasYearPattern(tc.input), "year")
		})
	}
}

func TestNormalize(t *testing.T) {
	testCases := []struct {
		input       string
		expected    string
		description string
	}{
		{"password123", "password", "Trailing digits"},
		{"p4ssw0rd", "psswrd", "Inner digits removed too"},
		{"123456", "", "All digits"},
		{"Dragon!", "Dragon", "Case kept, symbol removed"},
		{"müller", "mller", "Non-ASCII letters removed"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.input))
		})
	}
}

func TestIsValidPhrase(t *testing.T) {
	testCases := []struct {
		input       string
		expected    bool
		description string
	}{
		{"", false, "Empty"},
		{"   ", false, "Blank"},
		{"!!", false, "Symbols only"},
		{"!?", false, "Mixed symbols"},
		{"a", false, "Single char"},
		{"zzz", false, "Repeated char"},
		{"my", true, "Short word"},
		{"123", true, "Digits"},
		{"_1", true, "Symbol and digit"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsValidPhrase(tc.input))
		})
	}
}
