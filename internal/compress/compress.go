// Package compress wraps the gzip stage of the vault pipeline.
//
// Archives are compressed at BestCompression before sealing. Decompression
// only ever runs on authenticated plaintext, so a malformed stream means the
// container was produced by something other than this tool and is reported
// as CorruptedFile.
package compress

import (
	"bytes"
	"errors"
	"io"

	kerrors "github.com/shhcrypt/shhcrypt/internal/errors"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
)

// Level is the gzip level used for every container.
const Level = gzip.BestCompression

// Compress returns the gzip encoding of data.
func Compress(data []byte) ([]byte, error) {
	return CompressFrom(bytes.NewReader(data))
}

// CompressFrom gzips everything read from r.
func CompressFrom(r io.Reader) ([]byte, error) {
	var out bytes.Buffer
	zw, err := gzip.NewWriterLevel(&out, Level)
	if err != nil {
		return nil, kerrors.New(kerrors.KindCompression, "compress", "", err)
	}
	if _, err := io.Copy(zw, r); err != nil {
		return nil, kerrors.New(kerrors.KindCompression, "compress", "", err)
	}
	if err := zw.Close(); err != nil {
		return nil, kerrors.New(kerrors.KindCompression, "compress", "", err)
	}
	return out.Bytes(), nil
}

// Decompress returns the decoded contents of a gzip stream.
func Decompress(data []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := DecompressTo(&out, data); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// DecompressTo decodes data and writes the result to w. Failures writing to
// w are IOError.
func DecompressTo(w io.Writer, data []byte) error {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return classify(err)
	}
	defer zr.Close()

	sink := &trackingWriter{w: w}
	if _, err := io.Copy(sink, zr); err != nil {
		if sink.err != nil {
			return kerrors.New(kerrors.KindIO, "decompress", "", sink.err)
		}
		return classify(err)
	}
	return nil
}

func classify(err error) error {
	var corrupt flate.CorruptInputError
	switch {
	case errors.Is(err, gzip.ErrHeader),
		errors.Is(err, gzip.ErrChecksum),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.As(err, &corrupt):
		return kerrors.New(kerrors.KindCorruptedFile, "decompress", "", err)
	default:
		return kerrors.New(kerrors.KindCompression, "decompress", "", err)
	}
}

// trackingWriter remembers the first write error so DecompressTo can tell
// a bad stream apart from a failing destination.
type trackingWriter struct {
	w   io.Writer
	err error
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if err != nil && t.err == nil {
		t.err = err
	}
	return n, err
}
