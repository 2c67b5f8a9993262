package utils

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	kerrors "github.com/shhcrypt/shhcrypt/internal/errors"
)

// ReadPassphraseStdin reads a passphrase from the first line of stdin.
// Returns an error if stdin is a terminal (no piped data) or the line is empty.
func ReadPassphraseStdin() ([]byte, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat stdin: %w", err)
	}

	// If ModeCharDevice is set, stdin is connected to a terminal.
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, fmt.Errorf("no data provided on stdin (hint: pipe your passphrase to this command)")
	}

	return ReadPassphraseFrom(os.Stdin)
}

// ReadPassphraseFrom reads one line from r and strips the trailing newline
// (and carriage return). Everything after the first line is left unread.
func ReadPassphraseFrom(r io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(r).ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		clear(line)
		return nil, fmt.Errorf("failed to read from stdin: %w", err)
	}

	passphrase := bytes.TrimRight(line, "\r\n")
	if len(passphrase) == 0 {
		return nil, kerrors.ErrEmptyPassphrase
	}

	return passphrase, nil
}
