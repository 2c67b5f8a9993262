package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shhcrypt/shhcrypt/internal/audit"
	kerrors "github.com/shhcrypt/shhcrypt/internal/errors"
	"github.com/shhcrypt/shhcrypt/internal/ui"
	"github.com/shhcrypt/shhcrypt/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logTarget    string
	logOperation string
	logFailed    bool
	logSince     string
	logUntil     string
	logOneline   bool
	logJSON      bool
)

func init() {
	LogCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	LogCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	LogCmd.Flags().StringVar(&logTarget, "target", "", "filter by target path (substring match)")
	LogCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	LogCmd.Flags().BoolVar(&logFailed, "failed", false, "show only failed runs")
	LogCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	LogCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	LogCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	LogCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logTarget = ""
	logOperation = ""
	logFailed = false
	logSince = ""
	logUntil = ""
	logOneline = false
	logJSON = false
}

// LogCmd shows the audit log.
var LogCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of encrypt and decrypt runs.

Each entry records who ran what against which target, and either the
output with its BLAKE3 fingerprint or the kind of error. Passphrases and
file contents are never logged.

Examples:
  shhcrypt log                              # View full log
  shhcrypt log -n 10                        # Last 10 entries
  shhcrypt log --reverse                    # Most recent first
  shhcrypt log --target notes               # Filter by target path
  shhcrypt log --operation decrypt          # Filter by operation
  shhcrypt log --failed                     # Failed runs only
  shhcrypt log --since 2024-01-01           # Filter by date
  shhcrypt log --json                       # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	spinner, cleanup := startSpinner("Loading audit log...", verbose)
	defer cleanup()

	opts := workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		Target:     logTarget,
		Operations: logOperation,
		FailedOnly: logFailed,
		Since:      logSince,
		Until:      logUntil,
	}

	result, err := workflows.Log(cmd.Context(), opts)
	if err != nil {
		spinner.FinalMSG = formatLogError(err)
		if isLogUnexpectedError(err) {
			return err
		}
		return nil
	}

	Logger.Debugf("Parsed %d entries from audit log", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	spinner.FinalMSG = ""
	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Println("No audit log entries found.")
		} else {
			fmt.Println("No audit log entries found matching the filters.")
		}
		return nil
	}

	if logJSON {
		return outputLogJSON(result.Entries)
	}

	if logOneline {
		outputLogOneline(result.Entries)
		return nil
	}

	outputLogDefault(result.Entries)
	return nil
}

// formatLogError formats a log error for display to the user.
func formatLogError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrNoFilesFound):
		return ui.Info.Sprint("ℹ") + " No audit log found. Runs will be logged after the first " +
			ui.Code.Sprint("shhcrypt run") + "."

	case errors.Is(err, kerrors.ErrInvalidDateFormat):
		return ui.Cross() + " " + err.Error()

	default:
		return ui.Cross() + " Failed to read audit log: " + err.Error()
	}
}

// isLogUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isLogUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, kerrors.ErrNoFilesFound),
		errors.Is(err, kerrors.ErrInvalidDateFormat):
		return false
	default:
		return true
	}
}

func outputLogJSON(entries []audit.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputLogOneline(entries []audit.Entry) {
	for _, e := range entries {
		date := workflows.FormatDate(e.Timestamp)
		details := workflows.FormatDetailsOneline(e)
		fmt.Printf("%s %s %s %s %s\n", date, e.Actor, e.Operation, e.Target, details)
	}
}

func outputLogDefault(entries []audit.Entry) {
	for _, e := range entries {
		datetime := workflows.FormatDateTime(e.Timestamp)
		details := workflows.FormatDetails(e)
		fmt.Printf("%-19s  %-25s  %-8s  %-30s  %s\n", datetime, e.Actor, e.Operation, e.Target, details)
	}
}
