// Package secrets provides the cryptographic core of shhcrypt.
//
// # Container Format
//
// A sealed container is laid out as
//
//	salt (16 bytes) | nonce (12 bytes) | ciphertext and GCM tag
//
// with no magic or version bytes. A file shorter than the 28-byte header is
// reported as CorruptedFile; anything that fails authentication, including
// a wrong passphrase, is DecryptionFailed and carries no further detail.
//
// # Key Derivation
//
// Keys are derived with Argon2id (19 MiB, 2 iterations, 1 lane) from the
// passphrase and a fresh random salt per container. Every container also
// gets a fresh random nonce, so sealing the same plaintext twice never
// produces the same bytes.
//
// # Secret Memory
//
// Derived keys and passphrases live in a Buffer. On Linux the buffer is
// mapped outside the Go heap, locked into memory where the process is
// allowed to, and excluded from core dumps. Elsewhere it falls back to
// the heap. Close always zeroes the contents.
package secrets
