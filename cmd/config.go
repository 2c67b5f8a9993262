package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage shhcrypt configuration",
	Long: `Provides commands for managing the shhcrypt configuration file.

The file lives in the user config directory (override with
SHHCRYPT_CONFIG_DIR) and controls how many passes secure erase makes
and whether runs are written to the audit log.

Examples:
  # Write the default configuration
  shhcrypt config init

  # Show the effective configuration
  shhcrypt config show`,
}

func init() {
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}
