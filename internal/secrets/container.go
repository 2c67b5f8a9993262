package secrets

import (
	"errors"
	"io"

	kerrors "github.com/shhcrypt/shhcrypt/internal/errors"
)

// HeaderSize is the fixed prefix of a container: salt then nonce.
const HeaderSize = SaltSize + NonceSize

// Container is a sealed payload as stored on disk:
//
//	salt (16) | nonce (12) | ciphertext with GCM tag
//
// There is no magic number or version field.
type Container struct {
	Salt       []byte
	Nonce      []byte
	Ciphertext []byte
}

// WriteTo writes the container framing to w.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, part := range [][]byte{c.Salt, c.Nonce, c.Ciphertext} {
		n, err := w.Write(part)
		total += int64(n)
		if err != nil {
			return total, kerrors.New(kerrors.KindIO, "write container", "", err)
		}
	}
	return total, nil
}

// WriteContainer writes c to w.
func WriteContainer(w io.Writer, c *Container) error {
	_, err := c.WriteTo(w)
	return err
}

// ReadContainer reads a container from r. Input shorter than HeaderSize is
// CorruptedFile; no cryptographic work happens before the header is complete.
func ReadContainer(r io.Reader) (*Container, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, kerrors.New(kerrors.KindCorruptedFile, "read container", "", err)
		}
		return nil, kerrors.New(kerrors.KindIO, "read container", "", err)
	}

	ciphertext, err := io.ReadAll(r)
	if err != nil {
		return nil, kerrors.New(kerrors.KindIO, "read container", "", err)
	}

	return &Container{
		Salt:       header[:SaltSize],
		Nonce:      header[SaltSize:],
		Ciphertext: ciphertext,
	}, nil
}

// SealContainer derives a key from passphrase under a fresh salt and seals
// plaintext under a fresh nonce. The derived key is wiped before returning.
func SealContainer(passphrase, plaintext []byte) (*Container, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return nil, err
	}
	key, err := DeriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}
	defer key.Close()

	nonce, err := GenerateNonce()
	if err != nil {
		return nil, err
	}
	ciphertext, err := Seal(plaintext, key.Bytes(), nonce)
	if err != nil {
		return nil, err
	}
	return &Container{Salt: salt, Nonce: nonce, Ciphertext: ciphertext}, nil
}

// OpenContainer derives the key from passphrase and the container's salt and
// returns the authenticated plaintext. The derived key is wiped before
// returning.
func OpenContainer(c *Container, passphrase []byte) ([]byte, error) {
	key, err := DeriveKey(passphrase, c.Salt)
	if err != nil {
		return nil, err
	}
	defer key.Close()

	return Open(c.Ciphertext, key.Bytes(), c.Nonce)
}
