// Package erase destroys plaintext after it has been sealed, and sealed
// containers after they have been restored.
//
// Regular files are overwritten in place with random data before they are
// unlinked. Symlinks are unlinked without touching what they point to.
// Directory trees are walked with an explicit work-list, so arbitrarily deep
// trees never grow the call stack.
package erase

import (
	"crypto/rand"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	kerrors "github.com/shhcrypt/shhcrypt/internal/errors"
)

const (
	// DefaultPasses is the number of overwrite passes per regular file.
	DefaultPasses = 3

	chunkSize = 64 * 1024
)

// randRead fills overwrite buffers. Replaced in tests.
var randRead = rand.Read

// Options configures an erase.
type Options struct {
	// Passes is the number of random overwrites per regular file.
	// Zero or negative means DefaultPasses.
	Passes int
}

func (o Options) passes() int {
	if o.Passes <= 0 {
		return DefaultPasses
	}
	return o.Passes
}

// Path erases path. A path that does not exist is a successful no-op, so
// Path may be retried freely. Any failure is IOError and leaves the
// failing entry in place.
func Path(path string, opts Options) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return kerrors.New(kerrors.KindIO, "erase", path, err)
	}

	switch {
	case info.IsDir():
		return tree(path, opts.passes())
	case info.Mode().IsRegular():
		return File(path, opts.passes())
	default:
		// Symlinks, fifos, sockets and devices are only unlinked.
		return unlink(path)
	}
}

// tree erases every leaf below root, then removes directories deepest first.
func tree(root string, passes int) error {
	stack := []string{root}
	var dirs []string

	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		dirs = append(dirs, dir)

		entries, err := os.ReadDir(dir)
		if err != nil {
			return kerrors.New(kerrors.KindIO, "erase", dir, err)
		}
		for _, entry := range entries {
			p := filepath.Join(dir, entry.Name())
			switch {
			case entry.IsDir():
				stack = append(stack, p)
			case entry.Type().IsRegular():
				if err := File(p, passes); err != nil {
					return err
				}
			default:
				if err := unlink(p); err != nil {
					return err
				}
			}
		}
	}

	// A directory is always recorded before its subdirectories.
	for i := len(dirs) - 1; i >= 0; i-- {
		if err := unlink(dirs[i]); err != nil {
			return err
		}
	}
	return nil
}

// File overwrites the regular file at path passes times and unlinks it.
// The unlink only happens when every pass has been written and synced.
func File(path string, passes int) error {
	if passes <= 0 {
		passes = DefaultPasses
	}
	if err := overwrite(path, passes); err != nil {
		return err
	}
	return unlink(path)
}

func overwrite(path string, passes int) error {
	file, err := openForOverwrite(path)
	if err != nil {
		return kerrors.New(kerrors.KindIO, "overwrite", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return kerrors.New(kerrors.KindIO, "overwrite", path, err)
	}
	size := info.Size()

	buf := make([]byte, min(size, chunkSize))
	for pass := 0; pass < passes; pass++ {
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return kerrors.New(kerrors.KindIO, "overwrite", path, err)
		}
		var written int64
		for written < size {
			chunk := buf[:min(int64(len(buf)), size-written)]
			if _, err := randRead(chunk); err != nil {
				return kerrors.New(kerrors.KindIO, "overwrite", path, err)
			}
			if _, err := file.Write(chunk); err != nil {
				return kerrors.New(kerrors.KindIO, "overwrite", path, err)
			}
			written += int64(len(chunk))
		}
		if err := file.Sync(); err != nil {
			return kerrors.New(kerrors.KindIO, "overwrite", path, err)
		}
	}

	if err := file.Close(); err != nil {
		return kerrors.New(kerrors.KindIO, "overwrite", path, err)
	}
	return nil
}

// openForOverwrite opens path for writing without truncating it. A file
// the owner cannot write is made writable first.
func openForOverwrite(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err == nil || !errors.Is(err, fs.ErrPermission) {
		return file, err
	}

	info, statErr := os.Lstat(path)
	if statErr != nil || info.Mode().Perm()&0o200 != 0 {
		return nil, err
	}
	if chmodErr := os.Chmod(path, info.Mode().Perm()|0o200); chmodErr != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_WRONLY, 0)
}

func unlink(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return kerrors.New(kerrors.KindIO, "remove", path, err)
	}
	return nil
}
