package cmd

import (
	"os"
	"strings"
	"testing"

	"github.com/shhcrypt/shhcrypt/internal/configs"
)

const sampleAuditLog = `{"ts":"2024-01-10T09:00:00.000000Z","id":"a","actor":"alice@box","op":"encrypt","target":"/data/notes","output":"/data/notes.shh","fingerprint":"0123456789abcdef0123"}
{"ts":"2024-02-11T09:00:00.000000Z","id":"b","actor":"alice@box","op":"decrypt","target":"/data/notes.shh","error":"DecryptionFailed"}
{"ts":"2024-03-12T09:00:00.000000Z","id":"c","actor":"bob@box","op":"decrypt","target":"/data/notes.shh","output":"/data/notes","fingerprint":"0123456789abcdef0123"}
`

func writeSampleAuditLog(t *testing.T) {
	t.Helper()
	if err := os.WriteFile(configs.ShhcryptSettings.AuditLogPath, []byte(sampleAuditLog), 0o600); err != nil {
		t.Fatalf("Failed to write audit log: %v", err)
	}
}

func TestLog_NoAuditLog(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "log")
	if err != nil {
		t.Fatalf("Expected no error for a missing log, got: %v", err)
	}
	if !strings.Contains(output, "No audit log found") {
		t.Errorf("Expected no-log message, got: %s", output)
	}
}

func TestLog_Default(t *testing.T) {
	setupTestEnvironment(t)
	writeSampleAuditLog(t)

	output, err := runCLI(t, "log")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}

	for _, want := range []string{"2024-01-10 09:00:00", "failed: DecryptionFailed", "blake3 0123456789ab", "bob@box"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}
}

func TestLog_Filters(t *testing.T) {
	setupTestEnvironment(t)
	writeSampleAuditLog(t)

	output, err := runCLI(t, "log", "--failed", "--oneline")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], "DecryptionFailed") {
		t.Errorf("Expected only the failed entry, got: %q", lines)
	}

	ResetGlobalState()
	output, err = runCLI(t, "log", "--operation", "decrypt", "--reverse", "-n", "1", "--oneline")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(output), "2024-03-12 bob@box decrypt") {
		t.Errorf("Expected most recent decrypt first, got: %s", output)
	}
}

func TestLog_NoMatches(t *testing.T) {
	setupTestEnvironment(t)
	writeSampleAuditLog(t)

	output, err := runCLI(t, "log", "--target", "elsewhere")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if !strings.Contains(output, "matching the filters") {
		t.Errorf("Expected no-match message, got: %s", output)
	}
}

func TestLog_InvalidDate(t *testing.T) {
	setupTestEnvironment(t)
	writeSampleAuditLog(t)

	output, err := runCLI(t, "log", "--since", "01/02/2024")
	if err != nil {
		t.Fatalf("Expected invalid date to be reported without an error exit, got: %v", err)
	}
	if !strings.Contains(output, "date format invalid") {
		t.Errorf("Expected date format message, got: %s", output)
	}
}
