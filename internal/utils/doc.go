// Package utils provides shared helpers for the shhcrypt CLI and workflows.
//
// # Passphrase Input
//
//   - ReadPassphrase: prompts on the terminal without echo
//   - ReadNewPassphrase: prompts twice and requires both entries to match
//   - ReadPassphraseStdin / ReadPassphraseFrom: read the first line of a pipe
//
// Callers own the returned bytes and must zero them.
//
// # Temporary Files
//
// RegisterTemp records plaintext staging files so that CleanupTempFiles can
// erase them when the process is interrupted.
//
// # System
//
//   - GetUsername, GetHostname, Actor: identify who ran an operation
//
// # Strings
//
//   - StripQuotes: normalises pasted or dropped paths
//   - FormatPaths: formats paths for human-readable output
package utils
