package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a vault failure. Every failure reported by the pipeline
// carries exactly one Kind.
type Kind uint8

const (
	// KindUnknown is the zero value; it is never produced by the pipeline.
	KindUnknown Kind = iota
	KindFileNotFound
	KindInvalidPath
	KindEncryption
	KindDecryptionFailed
	KindCorruptedFile
	KindCompression
	KindArchive
	KindIO
)

// Target errors indicate the path handed to the vault cannot be processed.
var (
	// ErrFileNotFound indicates the target does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidPath indicates the target has no usable base name.
	ErrInvalidPath = errors.New("invalid path")
)

// Cryptographic errors indicate failures during sealing or opening a container.
var (
	// ErrEncryptionFailed indicates key derivation or cipher setup failed.
	ErrEncryptionFailed = errors.New("encryption error")

	// ErrDecryptionFailed indicates the container could not be authenticated.
	// It is deliberately vague: a wrong passphrase and a tampered container
	// look the same.
	ErrDecryptionFailed = errors.New("decryption failed (wrong passphrase or corrupted file)")

	// ErrCorruptedFile indicates the container is structurally invalid.
	ErrCorruptedFile = errors.New("file corrupted or wrong key")
)

// Pipeline errors indicate failures in the stages around the cipher.
var (
	// ErrCompression indicates gzip compression or decompression failed.
	ErrCompression = errors.New("compression error")

	// ErrArchive indicates packing or unpacking the tar stream failed.
	ErrArchive = errors.New("archive error")

	// ErrIO indicates a filesystem read, write or erase failed.
	ErrIO = errors.New("io error")
)

// Command errors indicate problems with user input or local state.
var (
	// ErrNoFilesFound indicates no audit entries matched the provided filters.
	ErrNoFilesFound = errors.New("no matching entries found")

	// ErrInvalidDateFormat indicates a date flag could not be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrInvalidConfig indicates the configuration file is malformed or out of range.
	ErrInvalidConfig = errors.New("configuration is invalid")

	// ErrEmptyPassphrase indicates no passphrase was provided.
	ErrEmptyPassphrase = errors.New("passphrase cannot be empty")

	// ErrPassphraseMismatch indicates the confirmation did not match the passphrase.
	ErrPassphraseMismatch = errors.New("passphrases do not match")
)

var kindSentinels = map[Kind]error{
	KindFileNotFound:     ErrFileNotFound,
	KindInvalidPath:      ErrInvalidPath,
	KindEncryption:       ErrEncryptionFailed,
	KindDecryptionFailed: ErrDecryptionFailed,
	KindCorruptedFile:    ErrCorruptedFile,
	KindCompression:      ErrCompression,
	KindArchive:          ErrArchive,
	KindIO:               ErrIO,
}

var kindNames = map[Kind]string{
	KindFileNotFound:     "FileNotFound",
	KindInvalidPath:      "InvalidPath",
	KindEncryption:       "EncryptionError",
	KindDecryptionFailed: "DecryptionFailed",
	KindCorruptedFile:    "CorruptedFile",
	KindCompression:      "CompressionError",
	KindArchive:          "ArchiveError",
	KindIO:               "IOError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Sentinel returns the package-level error value matching k.
func (k Kind) Sentinel() error {
	if err, ok := kindSentinels[k]; ok {
		return err
	}
	return errors.New("unknown error")
}

// Error is the typed failure returned by every vault component.
type Error struct {
	Kind Kind
	// Op names the step that failed, e.g. "pack" or "overwrite".
	Op   string
	Path string
	Err  error
}

// New builds an Error. The cause of a DecryptionFailed error is discarded so
// that nothing about the authentication failure leaks into messages.
func New(kind Kind, op, path string, err error) *Error {
	if kind == KindDecryptionFailed {
		err = nil
	}
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// Wrap returns err unchanged when it already carries a Kind, and otherwise
// classifies it as kind.
func Wrap(kind Kind, op, path string, err error) error {
	if err == nil {
		return nil
	}
	var ve *Error
	if errors.As(err, &ve) {
		return err
	}
	return New(kind, op, path, err)
}

// WithPath fills in the path of a typed error that was raised without one.
func WithPath(err error, path string) error {
	var ve *Error
	if !errors.As(err, &ve) || ve.Path != "" {
		return err
	}
	cp := *ve
	cp.Path = path
	return &cp
}

func (e *Error) Error() string {
	msg := e.Kind.Sentinel().Error()
	var where string
	switch {
	case e.Op != "" && e.Path != "":
		where = e.Op + " " + e.Path
	case e.Path != "":
		where = e.Path
	default:
		where = e.Op
	}
	if where != "" {
		msg = fmt.Sprintf("%s: %s", msg, where)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's Kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.Sentinel()
}

// KindOf extracts the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return KindUnknown
}

// PathOf extracts the path carried by err, if any.
func PathOf(err error) string {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Path
	}
	return ""
}
