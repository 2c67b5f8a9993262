// Package audit provides the local audit trail for shhcrypt runs.
//
// Every run, successful or not, appends one JSON object to:
//
//	<config dir>/audit.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC) and a random entry ID
//   - The user and host that ran the command
//   - Operation ("encrypt" or "decrypt"), target and output paths
//   - The BLAKE3 fingerprint of the container written or read
//   - The failure kind, when the run failed
//
// Passphrases and key material are never recorded.
//
// # Usage
//
//	entry := audit.NewEntry("encrypt")
//	entry.Target = target
//	audit.Log(entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails the run still reports its
// own outcome. Malformed lines are skipped when reading, to tolerate partial
// writes.
package audit
