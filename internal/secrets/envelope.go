package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	kerrors "github.com/shhcrypt/shhcrypt/internal/errors"
)

// NonceSize is the AES-GCM nonce length.
const NonceSize = 12

// GenerateNonce returns NonceSize bytes from crypto/rand.
func GenerateNonce() ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, kerrors.New(kerrors.KindEncryption, "generate nonce", "", err)
	}
	return nonce, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("key must be %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext with AES-256-GCM under key and nonce. The returned
// slice is the ciphertext with the 16-byte tag appended.
func Seal(plaintext, key, nonce []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, kerrors.New(kerrors.KindEncryption, "seal", "", err)
	}
	if len(nonce) != aead.NonceSize() {
		return nil, kerrors.New(kerrors.KindEncryption, "seal", "",
			fmt.Errorf("nonce must be %d bytes, got %d", aead.NonceSize(), len(nonce)))
	}
	return aead.Seal(nil, nonce, plaintext, nil), nil
}

// Open authenticates and decrypts ciphertext. Any authentication failure is
// reported as DecryptionFailed with no further detail.
func Open(ciphertext, key, nonce []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, kerrors.New(kerrors.KindEncryption, "open", "", err)
	}
	if len(nonce) != aead.NonceSize() {
		return nil, kerrors.New(kerrors.KindDecryptionFailed, "open", "", nil)
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, kerrors.New(kerrors.KindDecryptionFailed, "open", "", nil)
	}
	return plaintext, nil
}
