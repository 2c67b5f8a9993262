// Package errors provides the closed error taxonomy of the shhcrypt vault.
//
// Every failure raised by the pipeline is an *Error carrying exactly one Kind.
// Each Kind has a package-level sentinel, so callers can branch with
// errors.Is() instead of matching strings.
//
// # Kinds
//
//   - FileNotFound: the target does not exist
//   - InvalidPath: the target has no usable base name ("/", ".", "..")
//   - EncryptionError: key derivation or cipher setup failed
//   - DecryptionFailed: authentication failed (wrong passphrase or tampering)
//   - CorruptedFile: the container or its payload is structurally invalid
//   - CompressionError: gzip failed for a reason other than corrupt input
//   - ArchiveError: packing or unpacking the tar stream failed
//   - IOError: a filesystem read, write or erase failed
//
// # Usage
//
// Raise typed errors from internal packages:
//
//	return errors.New(errors.KindArchive, "pack", target, err)
//
// Handle them in the CLI layer:
//
//	result, err := workflows.Run(ctx, opts)
//	if errors.Is(err, kerrors.ErrDecryptionFailed) {
//	    // Show user-friendly message
//	}
//
// A DecryptionFailed error never carries its underlying cause.
package errors
