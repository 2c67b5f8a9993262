package main

import (
	"fmt"
	"os"

	"github.com/shhcrypt/shhcrypt/cmd"
	"github.com/shhcrypt/shhcrypt/internal/ui"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shhcrypt",
	Short: "shhcrypt - encrypt and decrypt files and directories in place",
	Long: `shhcrypt seals a single file or directory into a passphrase-protected
.shh container and opens it again.

Encryption archives the target, compresses it and seals it with
AES-256-GCM under a key derived from your passphrase with Argon2id. Once
the container is written the original is securely erased.

Usage:
  shhcrypt <command> [flags]

Available Commands:
  run        Encrypt a target, or decrypt a .shh container
  log        View the audit log
  config     Manage configuration

Run 'shhcrypt help <command>' for more details on a specific command.
`,
	Run: func(c *cobra.Command, args []string) {
		fmt.Println(ui.Info.Sprint(figure.NewFigure("shhcrypt", "", true).String()))
		fmt.Println("Run " + ui.Code.Sprint("shhcrypt --help") + " to see available commands.")
	},
}

func init() {
	cmd.Register(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
