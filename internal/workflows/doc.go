// Package workflows provides high-level orchestration for shhcrypt commands.
//
// Workflows coordinate the lower-level packages (archive, compress, secrets,
// erase, audit) to implement complete user-facing features, independent of
// CLI concerns like flag parsing, prompts, spinners and output formatting.
//
// # Available Workflows
//
//   - Run: encrypts a file or directory into <name>.shh, or restores a
//     <name>.shh container in place
//   - Log: reads and filters the audit trail
//
// # Run
//
// A run is a small state machine:
//
//	Idle -> Validating -> Encrypting | Decrypting -> Erasing -> Done
//
// with Failed reachable from every non-terminal state. The source is only
// erased once the output has been fully written. RunOptions.OnTransition
// observes every state change.
//
// # Error Handling
//
// Run returns typed errors from the internal/errors package, each carrying
// exactly one Kind:
//
//	result, err := workflows.Run(ctx, opts)
//	if errors.Is(err, kerrors.ErrDecryptionFailed) {
//	    // Wrong passphrase or tampered container
//	}
//
// # Context Usage
//
// Workflow functions accept a context.Context as their first parameter. A
// run checks it only before starting; once files are being written it runs
// to completion or failure.
package workflows
