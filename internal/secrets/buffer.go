package secrets

import (
	"fmt"
	"sync"
)

// Buffer holds a passphrase or derived key and zeroes it on Close.
//
// Where the platform allows it the backing memory is mapped outside the Go
// heap and locked against swap. Otherwise it falls back to an ordinary heap
// slice, which is still zeroed on Close. A Buffer must not be copied; after
// Close any access to Bytes panics.
type Buffer struct {
	mu     sync.Mutex
	data   []byte
	locked bool
	closed bool
}

// NewBuffer allocates a zeroed secret buffer of the given size.
func NewBuffer(size int) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("secret buffer size must be positive, got %d", size)
	}
	data, locked := lockedAlloc(size)
	return &Buffer{data: data, locked: locked}, nil
}

// NewBufferFromBytes copies source into a new buffer and zeroes source, so
// the caller's slice no longer holds the secret.
func NewBufferFromBytes(source []byte) (*Buffer, error) {
	buf, err := NewBuffer(len(source))
	if err != nil {
		return nil, err
	}
	copy(buf.data, source)
	Zero(source)
	return buf, nil
}

// Bytes returns the secret data. The slice aliases the buffer and must not
// outlive it.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		panic("secrets: read from closed buffer")
	}
	return b.data
}

// Len returns the size of the secret data.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.data)
}

// Locked reports whether the buffer is backed by locked memory.
func (b *Buffer) Locked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.locked
}

// Close zeroes the contents and releases the memory. Close is idempotent.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	Zero(b.data)
	var err error
	if b.locked {
		err = lockedFree(b.data)
	}
	b.data = nil
	return err
}

// Zero overwrites b with zero bytes.
func Zero(b []byte) {
	clear(b)
}
