package utils

import (
	"strings"
	"testing"
)

func TestStripQuotes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain", "/tmp/notes.txt", "/tmp/notes.txt"},
		{"SurroundingWhitespace", "  /tmp/notes.txt \n", "/tmp/notes.txt"},
		{"SingleQuoted", "'/tmp/my notes.txt'", "/tmp/my notes.txt"},
		{"DoubleQuoted", `"/tmp/my notes.txt"`, "/tmp/my notes.txt"},
		{"EmbeddedQuotes", `/tmp/it's "here"`, "/tmp/its here"},
		{"OnlyQuotes", `'"'`, ""},
		{"Empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := StripQuotes(tc.input)
			if result != tc.expected {
				t.Errorf("StripQuotes(%q) = %q, expected %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestFormatPaths(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	result := FormatPaths([]string{"a.txt", "b/c.txt"})
	if !strings.Contains(result, "    - a.txt\n") {
		t.Errorf("Expected a.txt entry, got %q", result)
	}
	if !strings.Contains(result, "    - b/c.txt\n") {
		t.Errorf("Expected b/c.txt entry, got %q", result)
	}
}
