package utils

import (
	"errors"
	"strings"
	"testing"

	kerrors "github.com/shhcrypt/shhcrypt/internal/errors"
)

func TestReadPassphraseFrom(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"NoNewline", "hunter2", "hunter2"},
		{"TrailingNewline", "hunter2\n", "hunter2"},
		{"CRLF", "hunter2\r\n", "hunter2"},
		{"OnlyFirstLine", "hunter2\nsecond line\n", "hunter2"},
		{"KeepsSpaces", "  spaced out  \n", "  spaced out  "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ReadPassphraseFrom(strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("Failed to read passphrase: %v", err)
			}
			if string(result) != tc.expected {
				t.Errorf("ReadPassphraseFrom(%q) = %q, expected %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestReadPassphraseFromEmpty(t *testing.T) {
	for _, input := range []string{"", "\n", "\r\n"} {
		_, err := ReadPassphraseFrom(strings.NewReader(input))
		if !errors.Is(err, kerrors.ErrEmptyPassphrase) {
			t.Errorf("Expected ErrEmptyPassphrase for %q, got %v", input, err)
		}
	}
}
