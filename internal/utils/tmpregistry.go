package utils

import (
	"sync"

	"github.com/shhcrypt/shhcrypt/internal/erase"
)

// globalTempRegistry tracks plaintext paths that must not survive an
// interrupted run: temp archives and partially restored targets.
var globalTempRegistry = &tempRegistry{}

type tempRegistry struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

// RegisterTemp adds a temporary file path to the global registry.
func RegisterTemp(path string) {
	globalTempRegistry.mu.Lock()
	defer globalTempRegistry.mu.Unlock()
	if globalTempRegistry.paths == nil {
		globalTempRegistry.paths = make(map[string]struct{})
	}
	globalTempRegistry.paths[path] = struct{}{}
}

// DeregisterTemp removes a temporary file path from the global registry.
func DeregisterTemp(path string) {
	globalTempRegistry.mu.Lock()
	defer globalTempRegistry.mu.Unlock()
	delete(globalTempRegistry.paths, path)
}

// RegisteredTemps returns the paths currently registered.
func RegisteredTemps() []string {
	globalTempRegistry.mu.Lock()
	defer globalTempRegistry.mu.Unlock()
	paths := make([]string, 0, len(globalTempRegistry.paths))
	for p := range globalTempRegistry.paths {
		paths = append(paths, p)
	}
	return paths
}

// CleanupTempFiles securely erases all registered temporary files and
// returns the paths that could not be erased.
func CleanupTempFiles() []string {
	globalTempRegistry.mu.Lock()
	paths := make([]string, 0, len(globalTempRegistry.paths))
	for p := range globalTempRegistry.paths {
		paths = append(paths, p)
	}
	globalTempRegistry.paths = nil
	globalTempRegistry.mu.Unlock()

	var failed []string
	for _, p := range paths {
		if err := erase.Path(p, erase.Options{Passes: 1}); err != nil {
			failed = append(failed, p)
		}
	}
	return failed
}
