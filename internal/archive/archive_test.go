package archive

import (
	"archive/tar"
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	kerrors "github.com/shhcrypt/shhcrypt/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		invalid bool
	}{
		{in: "/tmp/notes.txt", want: "notes.txt"},
		{in: "docs/", want: "docs"},
		{in: "a/b/../c", want: "c"},
		{in: "/", invalid: true},
		{in: ".", invalid: true},
		{in: "..", invalid: true},
		{in: "", invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := BaseName(tt.in)
			if tt.invalid {
				assert.ErrorIs(t, err, kerrors.ErrInvalidPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPackUnpack_File(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	file := filepath.Join(src, "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("meet at noon"), 0o640))
	mtime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(file, mtime, mtime))

	var buf bytes.Buffer
	require.NoError(t, Pack(file, &buf))

	created, err := Unpack(&buf, dst, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dst, "notes.txt")}, created)

	got, err := os.ReadFile(filepath.Join(dst, "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "meet at noon", string(got))

	info, err := os.Stat(filepath.Join(dst, "notes.txt"))
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime))
}

func TestPackUnpack_Directory(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	root := filepath.Join(src, "project")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "nested", "deeper"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "top.txt"), []byte("top"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "nested", "deeper", "leaf.txt"), []byte("leaf"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "zero.bin"), nil, 0o644))

	var buf bytes.Buffer
	require.NoError(t, Pack(root, &buf))

	_, err := Unpack(&buf, dst, nil)
	require.NoError(t, err)

	out := filepath.Join(dst, "project")
	assert.DirExists(t, filepath.Join(out, "empty"))

	data, err := os.ReadFile(filepath.Join(out, "nested", "deeper", "leaf.txt"))
	require.NoError(t, err)
	assert.Equal(t, "leaf", string(data))

	info, err := os.Stat(filepath.Join(out, "zero.bin"))
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestPackUnpack_SymlinkNotFollowed(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "real.txt"), []byte("real"), 0o644))
	link := filepath.Join(src, "alias")
	require.NoError(t, os.Symlink("real.txt", link))

	var buf bytes.Buffer
	require.NoError(t, Pack(link, &buf))

	_, err := Unpack(&buf, dst, nil)
	require.NoError(t, err)

	info, err := os.Lstat(filepath.Join(dst, "alias"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)

	target, err := os.Readlink(filepath.Join(dst, "alias"))
	require.NoError(t, err)
	assert.Equal(t, "real.txt", target)
}

func TestUnpack_RefusesExistingTopLevel(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	file := filepath.Join(src, "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dst, "notes.txt"), []byte("old"), 0o644))

	var buf bytes.Buffer
	require.NoError(t, Pack(file, &buf))

	created, err := Unpack(&buf, dst, nil)
	assert.ErrorIs(t, err, kerrors.ErrIO)
	assert.Empty(t, created)

	data, err := os.ReadFile(filepath.Join(dst, "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func writeTar(t *testing.T, headers ...*tar.Header) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, h := range headers {
		if h.Typeflag == tar.TypeReg {
			h.Size = int64(len("x"))
		}
		require.NoError(t, tw.WriteHeader(h))
		if h.Typeflag == tar.TypeReg {
			_, err := tw.Write([]byte("x"))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	return &buf
}

func TestUnpack_RejectsTraversal(t *testing.T) {
	for _, name := range []string{"../escape.txt", "/etc/evil", "a/../../escape.txt"} {
		t.Run(name, func(t *testing.T) {
			dst := t.TempDir()
			buf := writeTar(t, &tar.Header{Name: name, Typeflag: tar.TypeReg, Mode: 0o644})

			_, err := Unpack(buf, dst, nil)
			assert.ErrorIs(t, err, kerrors.ErrArchive)
			assert.NoFileExists(t, filepath.Join(filepath.Dir(dst), "escape.txt"))
		})
	}
}

func TestUnpack_RefusesWriteThroughSymlink(t *testing.T) {
	dst := t.TempDir()
	outside := t.TempDir()

	buf := writeTar(t,
		&tar.Header{Name: "pkg/", Typeflag: tar.TypeDir, Mode: 0o755},
		&tar.Header{Name: "pkg/link", Typeflag: tar.TypeSymlink, Linkname: outside},
		&tar.Header{Name: "pkg/link/owned.txt", Typeflag: tar.TypeReg, Mode: 0o644},
	)

	created, err := Unpack(buf, dst, nil)
	assert.ErrorIs(t, err, kerrors.ErrArchive)
	assert.Equal(t, []string{filepath.Join(dst, "pkg")}, created)
	assert.NoFileExists(t, filepath.Join(outside, "owned.txt"))
}

func TestPack_MissingTarget(t *testing.T) {
	var buf bytes.Buffer
	err := Pack(filepath.Join(t.TempDir(), "missing"), &buf)
	assert.ErrorIs(t, err, kerrors.ErrArchive)
}

func TestUnpack_EmptyArchive(t *testing.T) {
	buf := writeTar(t)

	_, err := Unpack(buf, t.TempDir(), nil)
	assert.ErrorIs(t, err, kerrors.ErrArchive)
}

func TestUnpack_NotATar(t *testing.T) {
	_, err := Unpack(bytes.NewReader([]byte("definitely not a tar stream")), t.TempDir(), nil)
	assert.ErrorIs(t, err, kerrors.ErrArchive)
}

func TestUnpack_TracksTopLevelBeforeWriting(t *testing.T) {
	dst := t.TempDir()
	outside := t.TempDir()

	buf := writeTar(t,
		&tar.Header{Name: "pkg/", Typeflag: tar.TypeDir, Mode: 0o755},
		&tar.Header{Name: "pkg/ok.txt", Typeflag: tar.TypeReg, Mode: 0o644},
		&tar.Header{Name: "pkg/link", Typeflag: tar.TypeSymlink, Linkname: outside},
		&tar.Header{Name: "pkg/link/owned.txt", Typeflag: tar.TypeReg, Mode: 0o644},
	)

	var tracked []string
	created, err := Unpack(buf, dst, func(p string) {
		_, statErr := os.Lstat(p)
		assert.True(t, os.IsNotExist(statErr), "%s tracked after it was written", p)
		tracked = append(tracked, p)
	})
	assert.ErrorIs(t, err, kerrors.ErrArchive)
	assert.Equal(t, created, tracked)
	assert.Equal(t, []string{filepath.Join(dst, "pkg")}, tracked)
}
