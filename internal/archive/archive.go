// Package archive packs a single filesystem target into a tar stream and
// restores it again.
//
// The stream always has exactly one top-level entry named after the target's
// base name. Directories get their own entries so empty directories survive
// a round trip. Symlinks are stored as links and never followed.
package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	kerrors "github.com/shhcrypt/shhcrypt/internal/errors"
)

// BaseName returns the name the target is stored under. Targets without a
// usable base name ("/", ".", "..") are InvalidPath.
func BaseName(target string) (string, error) {
	base := filepath.Base(filepath.Clean(target))
	switch base {
	case "", ".", "..", string(filepath.Separator):
		return "", kerrors.New(kerrors.KindInvalidPath, "pack", target, nil)
	}
	if vol := filepath.VolumeName(base); vol != "" && vol == base {
		return "", kerrors.New(kerrors.KindInvalidPath, "pack", target, nil)
	}
	return base, nil
}

// Pack writes target and, for directories, all of its descendants to w as a
// tar stream.
func Pack(target string, w io.Writer) error {
	name, err := BaseName(target)
	if err != nil {
		return err
	}

	info, err := os.Lstat(target)
	if err != nil {
		return kerrors.New(kerrors.KindArchive, "pack", target, err)
	}

	tw := tar.NewWriter(w)
	if info.IsDir() {
		err = addTree(tw, target, name)
	} else {
		err = addEntry(tw, target, name, info)
	}
	if err != nil {
		return err
	}

	if err := tw.Close(); err != nil {
		return kerrors.New(kerrors.KindArchive, "pack", target, err)
	}
	return nil
}

func addTree(tw *tar.Writer, root, name string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return kerrors.New(kerrors.KindArchive, "pack", p, err)
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return kerrors.New(kerrors.KindArchive, "pack", p, err)
		}
		info, err := d.Info()
		if err != nil {
			return kerrors.New(kerrors.KindArchive, "pack", p, err)
		}
		return addEntry(tw, p, path.Join(name, filepath.ToSlash(rel)), info)
	})
}

func addEntry(tw *tar.Writer, fsPath, name string, info fs.FileInfo) error {
	var link string
	mode := info.Mode()
	switch {
	case mode.IsRegular(), mode.IsDir():
	case mode&fs.ModeSymlink != 0:
		target, err := os.Readlink(fsPath)
		if err != nil {
			return kerrors.New(kerrors.KindArchive, "readlink", fsPath, err)
		}
		link = target
	default:
		return kerrors.New(kerrors.KindArchive, "pack", fsPath,
			fmt.Errorf("unsupported file type %s", mode.Type()))
	}

	header, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return kerrors.New(kerrors.KindArchive, "pack", fsPath, err)
	}
	header.Name = name
	if mode.IsDir() {
		header.Name += "/"
	}

	if err := tw.WriteHeader(header); err != nil {
		return kerrors.New(kerrors.KindArchive, "pack", fsPath, err)
	}
	if !mode.IsRegular() {
		return nil
	}

	file, err := os.Open(fsPath)
	if err != nil {
		return kerrors.New(kerrors.KindArchive, "pack", fsPath, err)
	}
	defer file.Close()

	if _, err := io.Copy(tw, file); err != nil {
		return kerrors.New(kerrors.KindArchive, "pack", fsPath, err)
	}
	return nil
}

type dirStamp struct {
	path  string
	mode  fs.FileMode
	mtime time.Time
}

// Unpack restores the entries of the tar stream r beneath destDir. It
// returns the top-level paths it created, including on failure, so the
// caller can dispose of a partial restore. If track is not nil it is called
// with each top-level path before anything is written there.
//
// Entries that are absolute, escape destDir or would be written through a
// symlink are ArchiveError. A top-level entry that already exists in
// destDir is IOError and nothing is written for it.
func Unpack(r io.Reader, destDir string, track func(path string)) ([]string, error) {
	tr := tar.NewReader(r)
	tops := map[string]bool{}
	var created []string
	var dirs []dirStamp

	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return created, kerrors.New(kerrors.KindArchive, "unpack", destDir, err)
		}

		name, err := entryName(header.Name)
		if err != nil {
			return created, kerrors.New(kerrors.KindArchive, "unpack", header.Name, err)
		}
		target := filepath.Join(destDir, filepath.FromSlash(name))

		top := strings.SplitN(name, "/", 2)[0]
		if !tops[top] {
			topPath := filepath.Join(destDir, top)
			if _, err := os.Lstat(topPath); err == nil {
				return created, kerrors.New(kerrors.KindIO, "unpack", topPath, fs.ErrExist)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return created, kerrors.New(kerrors.KindIO, "unpack", topPath, err)
			}
			tops[top] = true
			if track != nil {
				track(topPath)
			}
			created = append(created, topPath)
		}

		if err := checkNoSymlinkParents(destDir, name); err != nil {
			return created, err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o700); err != nil {
				return created, kerrors.New(kerrors.KindArchive, "unpack", target, err)
			}
			dirs = append(dirs, dirStamp{path: target, mode: header.FileInfo().Mode().Perm(), mtime: header.ModTime})
		case tar.TypeReg:
			if err := extractFile(tr, target, header); err != nil {
				return created, err
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0o700); err != nil {
				return created, kerrors.New(kerrors.KindArchive, "unpack", target, err)
			}
			if err := os.Symlink(header.Linkname, target); err != nil {
				return created, kerrors.New(kerrors.KindArchive, "unpack", target, err)
			}
		default:
			return created, kerrors.New(kerrors.KindArchive, "unpack", header.Name,
				fmt.Errorf("unsupported entry type %q", header.Typeflag))
		}
	}

	if len(created) == 0 {
		return nil, kerrors.New(kerrors.KindArchive, "unpack", destDir, errors.New("archive is empty"))
	}

	// Children follow their parents in the stream; stamp in reverse so a
	// read-only parent is applied last.
	for i := len(dirs) - 1; i >= 0; i-- {
		d := dirs[i]
		if err := os.Chmod(d.path, d.mode); err != nil {
			return created, kerrors.New(kerrors.KindArchive, "unpack", d.path, err)
		}
		if err := os.Chtimes(d.path, d.mtime, d.mtime); err != nil {
			return created, kerrors.New(kerrors.KindArchive, "unpack", d.path, err)
		}
	}

	return created, nil
}

// entryName cleans a tar entry name and rejects anything that would land
// outside the destination.
func entryName(raw string) (string, error) {
	if raw == "" {
		return "", errors.New("empty entry name")
	}
	if strings.Contains(raw, `\`) || path.IsAbs(raw) || filepath.IsAbs(raw) {
		return "", errors.New("absolute or non-portable entry name")
	}
	name := path.Clean(raw)
	if name == "." || name == ".." || strings.HasPrefix(name, "../") {
		return "", errors.New("entry escapes destination")
	}
	return name, nil
}

// checkNoSymlinkParents fails if any existing parent of name below destDir
// is a symlink.
func checkNoSymlinkParents(destDir, name string) error {
	parts := strings.Split(name, "/")
	current := destDir
	for _, part := range parts[:len(parts)-1] {
		current = filepath.Join(current, part)
		info, err := os.Lstat(current)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return kerrors.New(kerrors.KindArchive, "unpack", current, err)
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			return kerrors.New(kerrors.KindArchive, "unpack", current,
				errors.New("refusing to write through symlink"))
		}
	}
	return nil
}

func extractFile(tr *tar.Reader, target string, header *tar.Header) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o700); err != nil {
		return kerrors.New(kerrors.KindArchive, "unpack", target, err)
	}

	// O_EXCL never follows a symlink left at target.
	file, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, header.FileInfo().Mode().Perm())
	if err != nil {
		return kerrors.New(kerrors.KindArchive, "unpack", target, err)
	}

	if _, err := io.Copy(file, tr); err != nil {
		file.Close()
		return kerrors.New(kerrors.KindArchive, "unpack", target, err)
	}
	if err := file.Close(); err != nil {
		return kerrors.New(kerrors.KindArchive, "unpack", target, err)
	}

	if err := os.Chtimes(target, header.ModTime, header.ModTime); err != nil {
		return kerrors.New(kerrors.KindArchive, "unpack", target, err)
	}
	return nil
}
