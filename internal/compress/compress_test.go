package compress

import (
	"bytes"
	"errors"
	"testing"

	kerrors "github.com/shhcrypt/shhcrypt/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompress_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short", []byte("hello")},
		{"repetitive", bytes.Repeat([]byte("shh "), 4096)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compressed, err := Compress(tt.data)
			require.NoError(t, err)

			out, err := Decompress(compressed)
			require.NoError(t, err)
			assert.Equal(t, len(tt.data), len(out))
			assert.True(t, bytes.Equal(tt.data, out))
		})
	}
}

func TestCompress_ShrinksRepetitiveInput(t *testing.T) {
	data := bytes.Repeat([]byte("a"), 1<<16)
	compressed, err := Compress(data)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(data)/10)
}

func TestCompress_ShrinksSingleByteRuns(t *testing.T) {
	// Zero-filled images and sparse files are a single repeated byte.
	for _, size := range []int{1 << 16, 1 << 18, 1 << 20} {
		data := make([]byte, size)
		compressed, err := Compress(data)
		require.NoError(t, err)
		assert.Less(t, len(compressed), 4096, "size %d", size)

		out, err := Decompress(compressed)
		require.NoError(t, err)
		assert.Equal(t, size, len(out))
	}
}

func TestDecompress_MalformedIsCorrupted(t *testing.T) {
	compressed, err := Compress([]byte("a payload long enough to truncate meaningfully"))
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not gzip", []byte("plain text, no gzip header")},
		{"truncated", compressed[:len(compressed)/2]},
		{"bad checksum", func() []byte {
			b := bytes.Clone(compressed)
			b[len(b)-8] ^= 0xff
			return b
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decompress(tt.data)
			assert.ErrorIs(t, err, kerrors.ErrCorruptedFile)
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestDecompressTo_WriterFailureIsIO(t *testing.T) {
	compressed, err := Compress([]byte("payload"))
	require.NoError(t, err)

	err = DecompressTo(failingWriter{}, compressed)
	assert.ErrorIs(t, err, kerrors.ErrIO)
}
