//go:build linux

package secrets

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// lockedAlloc maps anonymous memory, locks it into RAM and excludes it from
// core dumps. When the process lacks the rlimit for mlock it falls back to
// the heap.
func lockedAlloc(size int) ([]byte, bool) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return make([]byte, size), false
	}
	if err := unix.Mlock(data); err != nil {
		_ = unix.Munmap(data)
		return make([]byte, size), false
	}
	// MADV_DONTDUMP is missing on some kernels; the region stays locked either way.
	_ = unix.Madvise(data, unix.MADV_DONTDUMP)
	return data, true
}

func lockedFree(data []byte) error {
	var firstErr error
	if err := unix.Munlock(data); err != nil {
		firstErr = fmt.Errorf("munlock failed: %w", err)
	}
	if err := unix.Munmap(data); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("munmap failed: %w", err)
	}
	return firstErr
}
