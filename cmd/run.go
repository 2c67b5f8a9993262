package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/shhcrypt/shhcrypt/internal/configs"
	kerrors "github.com/shhcrypt/shhcrypt/internal/errors"
	"github.com/shhcrypt/shhcrypt/internal/ui"
	"github.com/shhcrypt/shhcrypt/internal/utils"
	"github.com/shhcrypt/shhcrypt/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	runPassphraseStdin bool
	runPasses          int
)

func init() {
	RunCmd.Flags().BoolVar(&runPassphraseStdin, "passphrase-stdin", false, "read the passphrase from the first line of stdin")
	RunCmd.Flags().IntVar(&runPasses, "passes", 0, "overwrite passes used when erasing (overrides config)")
}

// resetRunCommandState resets the run command's global state for testing.
func resetRunCommandState() {
	runPassphraseStdin = false
	runPasses = 0
}

// RunCmd encrypts or decrypts a single target.
var RunCmd = &cobra.Command{
	Use:   "run <path>",
	Short: "Encrypt a file or directory, or decrypt a .shh container",
	Long: `Encrypts or decrypts a single target in place.

A path ending in .shh is decrypted and restored next to the container.
Any other file or directory is archived, compressed and sealed into
<path>.shh. Once the new file is fully written, the original is securely
erased.

Examples:
  # Encrypt a directory into notes.shh
  shhcrypt run notes

  # Decrypt it again
  shhcrypt run notes.shh

  # Read the passphrase from a pipe
  printf '%s\n' "$PASS" | shhcrypt run notes --passphrase-stdin`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runVault,
}

func runVault(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting run command")

	config, err := configs.LoadConfig()
	if err != nil {
		fmt.Println(formatRunError(err))
		return err
	}
	config.Apply(configs.ShhcryptSettings)

	passes := config.Erase.Passes
	if cmd.Flags().Changed("passes") {
		if runPasses < 1 || runPasses > configs.MaxErasePasses {
			err := fmt.Errorf("%w: --passes must be between 1 and %d", kerrors.ErrInvalidConfig, configs.MaxErasePasses)
			fmt.Println(formatRunError(err))
			return err
		}
		passes = runPasses
	}
	Logger.Debugf("Erase passes: %d, audit enabled: %t", passes, configs.ShhcryptSettings.AuditEnabled)

	target := workflows.CleanPath(args[0])
	direction := workflows.DirectionFor(target)
	Logger.Debugf("Target %q resolves to %s", target, direction)

	// Catch a mistyped path before prompting.
	if err := checkTargetExists(target); err != nil {
		fmt.Println(formatRunError(err))
		return err
	}

	passphrase, err := readPassphrase(direction)
	if err != nil {
		fmt.Println(formatRunError(err))
		return err
	}

	spinner, cleanup := startSpinner(spinnerMessage(direction), verbose)
	defer cleanup()

	stopWatching := eraseTempsOnSignal()
	defer stopWatching()

	result, err := workflows.Run(cmd.Context(), workflows.RunOptions{
		Path:        target,
		Passphrase:  passphrase,
		ErasePasses: passes,
		OnTransition: func(from, to workflows.State) {
			Logger.Debugf("State %s -> %s", from, to)
		},
	})
	if err != nil {
		Logger.Errorf("Run failed: %v", err)
		if result != nil {
			spinner.Stop()
			Logger.WarnfUser("Failed to erase %s: %v", result.Target, err)
			spinner.FinalMSG = formatPartialResult(result)
		} else {
			spinner.FinalMSG = formatRunError(err)
		}
		return err
	}

	Logger.Infof("Run completed, fingerprint %s", result.Fingerprint)
	spinner.FinalMSG = ui.Check() + " " + result.Message + "\n" +
		ui.Arrow() + " Wrote " + ui.Path.Sprint(result.Output)
	return nil
}

func spinnerMessage(direction workflows.Direction) string {
	if direction == workflows.DirectionDecrypt {
		return "Decrypting..."
	}
	return "Encrypting..."
}

// readPassphrase reads the passphrase from stdin when asked to or when no
// terminal is attached, otherwise prompts. New containers ask for
// confirmation.
func readPassphrase(direction workflows.Direction) ([]byte, error) {
	if runPassphraseStdin {
		Logger.Debugf("Reading passphrase from stdin")
		return utils.ReadPassphraseStdin()
	}
	if !utils.IsTerminal() {
		Logger.Debugf("Stdin is not a terminal, reading passphrase from it")
		return utils.ReadPassphraseFrom(os.Stdin)
	}
	if direction == workflows.DirectionEncrypt {
		return utils.ReadNewPassphrase("Passphrase: ", "Confirm passphrase: ")
	}
	return utils.ReadPassphrase("Passphrase: ")
}

// formatRunError formats a run error for display to the user.
func formatRunError(err error) string {
	path := kerrors.PathOf(err)

	switch {
	case errors.Is(err, kerrors.ErrInvalidConfig):
		return ui.Cross() + " Invalid configuration: " + err.Error() + "\n" +
			ui.Arrow() + " Run " + ui.Code.Sprint("shhcrypt config init --force") + " to restore the defaults"

	case errors.Is(err, kerrors.ErrEmptyPassphrase):
		return ui.Cross() + " The passphrase must not be empty"

	case errors.Is(err, kerrors.ErrPassphraseMismatch):
		return ui.Cross() + " Passphrases do not match"

	case errors.Is(err, kerrors.ErrFileNotFound):
		return ui.Cross() + " " + ui.Path.Sprint(path) + " does not exist"

	case errors.Is(err, kerrors.ErrInvalidPath):
		return ui.Cross() + " " + ui.Path.Sprint(path) + " cannot be used as a target"

	case errors.Is(err, kerrors.ErrDecryptionFailed):
		return ui.Cross() + " Failed to decrypt " + ui.Path.Sprint(path) + "\n" +
			ui.Arrow() + " Check the passphrase; the container may also have been modified"

	case errors.Is(err, kerrors.ErrCorruptedFile):
		return ui.Cross() + " " + ui.Path.Sprint(path) + " is not a valid container"

	case kerrors.KindOf(err) != kerrors.KindUnknown:
		return ui.Cross() + " " + ui.Kind.Sprint(kerrors.KindOf(err).String()) + " " + err.Error()

	default:
		return ui.Cross() + " " + err.Error()
	}
}

// formatPartialResult reports a run whose output was written but whose
// original could not be erased.
func formatPartialResult(result *workflows.RunResult) string {
	return ui.Check() + " " + result.Message + "\n" +
		ui.Arrow() + " Wrote " + ui.Path.Sprint(result.Output) + "\n" +
		ui.Arrow() + " Remove " + ui.Path.Sprint(result.Target) + " manually"
}

// checkTargetExists reports FileNotFound for an empty or missing target.
// Everything else is left to the run's own validation.
func checkTargetExists(target string) error {
	if target == "" {
		return kerrors.New(kerrors.KindFileNotFound, "stat", target, nil)
	}
	if _, err := os.Lstat(target); errors.Is(err, fs.ErrNotExist) {
		return kerrors.New(kerrors.KindFileNotFound, "stat", target, nil)
	}
	return nil
}
