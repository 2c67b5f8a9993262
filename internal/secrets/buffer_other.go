//go:build !linux

package secrets

func lockedAlloc(size int) ([]byte, bool) {
	return make([]byte, size), false
}

func lockedFree([]byte) error {
	return nil
}
