package utils

import (
	"bytes"
	"fmt"
	"os"

	kerrors "github.com/shhcrypt/shhcrypt/internal/errors"

	"golang.org/x/term"
)

// ReadPassphrase prompts the user for a passphrase without echoing input.
// Returns an error if stdin is not a terminal or the input is empty.
func ReadPassphrase(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("cannot read passphrase: stdin is not a terminal (hint: use --passphrase-stdin)")
	}

	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	if len(passphrase) == 0 {
		return nil, kerrors.ErrEmptyPassphrase
	}

	return passphrase, nil
}

// ReadNewPassphrase prompts twice and returns the passphrase only when both
// entries match. The confirmation copy is zeroed before returning.
func ReadNewPassphrase(prompt, confirmPrompt string) ([]byte, error) {
	passphrase, err := ReadPassphrase(prompt)
	if err != nil {
		return nil, err
	}

	confirm, err := ReadPassphrase(confirmPrompt)
	if err != nil {
		clear(passphrase)
		return nil, err
	}
	defer clear(confirm)

	if !bytes.Equal(passphrase, confirm) {
		clear(passphrase)
		return nil, kerrors.ErrPassphraseMismatch
	}

	return passphrase, nil
}

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
