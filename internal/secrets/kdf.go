package secrets

import (
	"crypto/rand"
	"fmt"

	kerrors "github.com/shhcrypt/shhcrypt/internal/errors"

	"golang.org/x/crypto/argon2"
)

const (
	// SaltSize is the length of the per-container random salt.
	SaltSize = 16

	// KeySize is the length of the derived AES-256 key.
	KeySize = 32
)

// KDFParams are the Argon2id cost parameters.
type KDFParams struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
}

// DefaultKDFParams are the Argon2 reference defaults. Existing .shh
// containers were sealed with exactly these values, so changing them breaks
// decryption of every container on disk.
var DefaultKDFParams = KDFParams{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
}

// GenerateSalt returns SaltSize bytes from crypto/rand.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, kerrors.New(kerrors.KindEncryption, "generate salt", "", err)
	}
	return salt, nil
}

// DeriveKey stretches passphrase with salt into a KeySize key held in a
// Buffer. The caller must Close the returned buffer. The same inputs always
// produce the same key.
func DeriveKey(passphrase, salt []byte) (*Buffer, error) {
	return deriveKey(passphrase, salt, DefaultKDFParams)
}

func deriveKey(passphrase, salt []byte, params KDFParams) (*Buffer, error) {
	if len(passphrase) == 0 {
		return nil, kerrors.New(kerrors.KindEncryption, "derive key", "", kerrors.ErrEmptyPassphrase)
	}
	if len(salt) != SaltSize {
		return nil, kerrors.New(kerrors.KindEncryption, "derive key", "",
			fmt.Errorf("salt must be %d bytes, got %d", SaltSize, len(salt)))
	}

	key := argon2.IDKey(passphrase, salt, params.Iterations, params.Memory, params.Parallelism, KeySize)
	buf, err := NewBufferFromBytes(key)
	if err != nil {
		Zero(key)
		return nil, kerrors.New(kerrors.KindEncryption, "derive key", "", err)
	}
	return buf, nil
}
