package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/shhcrypt/shhcrypt/internal/configs"
	"github.com/shhcrypt/shhcrypt/internal/utils"

	"github.com/google/uuid"
)

// TimestampFormat is the layout of Entry.Timestamp.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`
	ID        string `json:"id"`
	Actor     string `json:"actor"` // user@host
	Operation string `json:"op"`    // "encrypt" or "decrypt".
	Target    string `json:"target"`

	// Set on success.
	Output      string `json:"output,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"` // BLAKE3-256 of the container, hex.

	// Set on failure: the error kind, never the message.
	Error string `json:"error,omitempty"`
}

// NewEntry returns an entry for op with its ID and actor filled in.
func NewEntry(op string) Entry {
	return Entry{
		ID:        uuid.New().String(),
		Actor:     utils.Actor(),
		Operation: op,
	}
}

// Log appends an entry to the audit log.
// Failures are swallowed; a run never fails because auditing did.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampFormat)
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	logPath := LogPath()
	if logPath == "" || !configs.ShhcryptSettings.AuditEnabled {
		return
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path to the audit log file, or "" when no config
// directory is available.
func LogPath() string {
	return configs.ShhcryptSettings.AuditLogPath
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
