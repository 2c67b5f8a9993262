package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuffer_ValidSize(t *testing.T) {
	buf, err := NewBuffer(32)
	require.NoError(t, err)
	defer buf.Close()

	assert.Equal(t, 32, buf.Len())
	assert.Equal(t, make([]byte, 32), buf.Bytes())
}

func TestNewBuffer_RejectsNonPositiveSize(t *testing.T) {
	_, err := NewBuffer(0)
	assert.Error(t, err)

	_, err = NewBuffer(-1)
	assert.Error(t, err)
}

func TestNewBufferFromBytes_ZeroesSource(t *testing.T) {
	source := []byte("correct horse battery staple")
	want := string(source)

	buf, err := NewBufferFromBytes(source)
	require.NoError(t, err)
	defer buf.Close()

	assert.Equal(t, want, string(buf.Bytes()))
	assert.Equal(t, make([]byte, len(source)), source)
}

func TestBuffer_CloseZeroesAndPanics(t *testing.T) {
	buf, err := NewBufferFromBytes([]byte("key material"))
	require.NoError(t, err)

	data := buf.Bytes()
	if !buf.Locked() {
		// Heap-backed buffers keep the slice valid after Close, so the
		// zeroing is observable.
		require.NoError(t, buf.Close())
		assert.Equal(t, make([]byte, len(data)), data)
	} else {
		require.NoError(t, buf.Close())
	}

	assert.NoError(t, buf.Close(), "Close must be idempotent")
	assert.Panics(t, func() { buf.Bytes() })
}

func TestZero(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	Zero(b)
	assert.Equal(t, []byte{0, 0, 0, 0}, b)

	Zero(nil)
}
