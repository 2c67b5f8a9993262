package workflows

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shhcrypt/shhcrypt/internal/archive"
	"github.com/shhcrypt/shhcrypt/internal/audit"
	"github.com/shhcrypt/shhcrypt/internal/compress"
	"github.com/shhcrypt/shhcrypt/internal/erase"
	kerrors "github.com/shhcrypt/shhcrypt/internal/errors"
	"github.com/shhcrypt/shhcrypt/internal/secrets"
	"github.com/shhcrypt/shhcrypt/internal/utils"

	"github.com/zeebo/blake3"
)

const (
	// ContainerExt marks a sealed container; its presence selects decryption.
	ContainerExt = ".shh"

	// TempArchiveName is the plaintext tar staged next to the target.
	TempArchiveName = ".shh_tmp.tar"
)

// Direction is what a run does to its target.
type Direction int

const (
	DirectionEncrypt Direction = iota
	DirectionDecrypt
)

func (d Direction) String() string {
	if d == DirectionDecrypt {
		return "decrypt"
	}
	return "encrypt"
}

// RunOptions configures a vault run.
type RunOptions struct {
	// Path is the target as typed by the user. Surrounding whitespace and
	// every quote character are stripped before use.
	Path string

	// Passphrase is owned by Run from the moment it is called and is
	// zeroed before Run returns, on every path.
	Passphrase []byte

	// ErasePasses is the number of overwrite passes used when destroying
	// the original target and the temp archive. 0 means erase.DefaultPasses.
	ErasePasses int

	// OnTransition, if set, is called for every state change.
	OnTransition TransitionFunc
}

// RunResult contains the outcome of a run.
type RunResult struct {
	// Message is "ENCRYPTED: <path>" or "DECRYPTED: <path>".
	Message string

	Direction Direction

	// Target is the cleaned input path.
	Target string

	// Output is the container written, or the top-level path restored.
	Output string

	// Fingerprint is the hex BLAKE3-256 digest of the container bytes.
	Fingerprint string
}

// CleanPath applies the target path normalisation used by Run.
func CleanPath(raw string) string {
	p := utils.StripQuotes(raw)
	if p == "" {
		return ""
	}
	return filepath.Clean(p)
}

// DirectionFor reports whether Run would encrypt or decrypt target.
func DirectionFor(target string) Direction {
	if strings.HasSuffix(target, ContainerExt) {
		return DirectionDecrypt
	}
	return DirectionEncrypt
}

// Run encrypts or decrypts a single target in place.
//
// A target ending in .shh is opened and restored next to itself; anything
// else is archived, compressed and sealed into <target>.shh. Only once the
// transform has fully succeeded is the source securely erased. On failure
// the source is left as it was and the returned error carries exactly one
// errors.Kind.
//
// ctx is only consulted before the run starts; an in-flight run is never
// abandoned halfway.
func Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	defer secrets.Zero(opts.Passphrase)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target := CleanPath(opts.Path)
	direction := DirectionFor(target)

	r := &runner{
		machine: &machine{observe: opts.OnTransition},
		target:  target,
		passes:  opts.ErasePasses,
	}
	result, err := r.run(direction, opts.Passphrase)

	entry := audit.NewEntry(direction.String())
	entry.Target = target
	if err != nil {
		entry.Error = kerrors.KindOf(err).String()
	} else {
		entry.Output = result.Output
		entry.Fingerprint = result.Fingerprint
	}
	audit.Log(entry)

	return result, err
}

type runner struct {
	*machine
	target string
	passes int
}

func (r *runner) run(direction Direction, rawPassphrase []byte) (*RunResult, error) {
	r.to(StateValidating)
	if err := validate(r.target, direction, rawPassphrase); err != nil {
		return nil, r.fail(err)
	}

	passphrase, err := secrets.NewBufferFromBytes(rawPassphrase)
	if err != nil {
		return nil, r.fail(kerrors.New(kerrors.KindEncryption, "load passphrase", r.target, err))
	}
	defer passphrase.Close()

	var result *RunResult
	if direction == DirectionDecrypt {
		r.to(StateDecrypting)
		result, err = r.decrypt(passphrase.Bytes())
	} else {
		r.to(StateEncrypting)
		result, err = r.encrypt(passphrase.Bytes())
	}
	if err != nil {
		return nil, r.fail(kerrors.WithPath(kerrors.Wrap(kerrors.KindIO, direction.String(), r.target, err), r.target))
	}

	r.to(StateErasing)
	if err := erase.Path(r.target, erase.Options{Passes: r.passes}); err != nil {
		// The output is complete; hand it back so the caller can say where it is.
		return result, r.fail(kerrors.Wrap(kerrors.KindIO, "erase", r.target, err))
	}

	r.to(StateDone)
	return result, nil
}

func validate(target string, direction Direction, passphrase []byte) error {
	if target == "" {
		return kerrors.New(kerrors.KindFileNotFound, "stat", target, nil)
	}

	info, err := os.Lstat(target)
	if errors.Is(err, fs.ErrNotExist) {
		return kerrors.New(kerrors.KindFileNotFound, "stat", target, nil)
	}
	if err != nil {
		return kerrors.New(kerrors.KindIO, "stat", target, err)
	}

	name, err := archive.BaseName(target)
	if err != nil {
		return err
	}
	if name == TempArchiveName {
		return kerrors.New(kerrors.KindInvalidPath, "stat", target,
			fmt.Errorf("%s is reserved for the temporary archive", TempArchiveName))
	}
	if direction == DirectionDecrypt && !info.Mode().IsRegular() {
		return kerrors.New(kerrors.KindInvalidPath, "stat", target, errors.New("container is not a regular file"))
	}

	if len(passphrase) == 0 {
		return kerrors.New(kerrors.KindEncryption, "derive key", target, kerrors.ErrEmptyPassphrase)
	}
	return nil
}

func (r *runner) encrypt(passphrase []byte) (*RunResult, error) {
	output := r.target + ContainerExt
	if _, err := os.Lstat(output); err == nil {
		return nil, kerrors.New(kerrors.KindIO, "encrypt", output, fs.ErrExist)
	}

	tmp, cleanup, err := r.createTempArchive()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if err := archive.Pack(r.target, tmp); err != nil {
		return nil, err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, kerrors.New(kerrors.KindIO, "encrypt", tmp.Name(), err)
	}

	compressed, err := compress.CompressFrom(tmp)
	if err != nil {
		return nil, err
	}
	defer secrets.Zero(compressed)

	container, err := secrets.SealContainer(passphrase, compressed)
	if err != nil {
		return nil, err
	}

	fingerprint, err := writeContainer(output, container)
	if err != nil {
		return nil, err
	}

	return &RunResult{
		Message:     "ENCRYPTED: " + r.target,
		Direction:   DirectionEncrypt,
		Target:      r.target,
		Output:      output,
		Fingerprint: fingerprint,
	}, nil
}

func (r *runner) decrypt(passphrase []byte) (*RunResult, error) {
	file, err := os.Open(r.target)
	if err != nil {
		return nil, kerrors.New(kerrors.KindIO, "decrypt", r.target, err)
	}
	hasher := blake3.New()
	container, err := secrets.ReadContainer(io.TeeReader(file, hasher))
	file.Close()
	if err != nil {
		return nil, err
	}
	fingerprint := hex.EncodeToString(hasher.Sum(nil))

	compressed, err := secrets.OpenContainer(container, passphrase)
	if err != nil {
		return nil, err
	}
	defer secrets.Zero(compressed)

	tmp, cleanup, err := r.createTempArchive()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if err := compress.DecompressTo(tmp, compressed); err != nil {
		return nil, kerrors.WithPath(err, tmp.Name())
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, kerrors.New(kerrors.KindIO, "decrypt", tmp.Name(), err)
	}

	// Restored paths stay registered until the restore is complete, so an
	// interrupt erases a partial restore along with the temp archive.
	created, err := archive.Unpack(tmp, filepath.Dir(r.target), utils.RegisterTemp)
	defer func() {
		for _, p := range created {
			utils.DeregisterTemp(p)
		}
	}()
	if err != nil {
		// Nothing partial may be left behind in plaintext.
		for _, p := range created {
			_ = erase.Path(p, erase.Options{Passes: r.passes})
		}
		return nil, err
	}

	output := strings.TrimSuffix(r.target, ContainerExt)
	if len(created) == 1 {
		output = created[0]
	}

	return &RunResult{
		Message:     "DECRYPTED: " + r.target,
		Direction:   DirectionDecrypt,
		Target:      r.target,
		Output:      output,
		Fingerprint: fingerprint,
	}, nil
}

// createTempArchive creates the staging tar next to the target. The
// returned cleanup closes and securely erases it.
func (r *runner) createTempArchive() (*os.File, func(), error) {
	path := filepath.Join(filepath.Dir(r.target), TempArchiveName)

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, nil, kerrors.New(kerrors.KindIO, "create temp archive", path, err)
	}
	utils.RegisterTemp(path)

	cleanup := func() {
		file.Close()
		if err := erase.Path(path, erase.Options{Passes: r.passes}); err != nil {
			_ = os.Remove(path)
		}
		utils.DeregisterTemp(path)
	}
	return file, cleanup, nil
}

// writeContainer writes c to a new file at path and returns its
// fingerprint. A partially written file is removed.
func writeContainer(path string, c *secrets.Container) (string, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", kerrors.New(kerrors.KindIO, "write container", path, err)
	}

	hasher := blake3.New()
	err = secrets.WriteContainer(io.MultiWriter(file, hasher), c)
	if err == nil {
		err = file.Sync()
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", kerrors.WithPath(kerrors.Wrap(kerrors.KindIO, "write container", path, err), path)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
