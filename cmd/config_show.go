package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shhcrypt/shhcrypt/internal/configs"
	kerrors "github.com/shhcrypt/shhcrypt/internal/errors"
	"github.com/shhcrypt/shhcrypt/internal/ui"

	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Displays the configuration shhcrypt would use, with defaults filled in
for anything the file does not set.

Examples:
  shhcrypt config show
  shhcrypt config show --json`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")
		Logger.Debugf("Loading config from %s", configs.ShhcryptSettings.ConfigPath)

		config, err := configs.LoadConfig()
		if err != nil {
			if errors.Is(err, kerrors.ErrInvalidConfig) {
				fmt.Println(ui.Cross() + " " + err.Error())
				fmt.Println(ui.Arrow() + " Fix " + ui.Path.Sprint(configs.ShhcryptSettings.ConfigPath) +
					" or run " + ui.Code.Sprint("shhcrypt config init --force"))
			}
			return err
		}

		if configShowJSON {
			output, err := json.MarshalIndent(config, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
			}
			fmt.Println(string(output))
			return nil
		}

		fmt.Println(ui.Info.Sprint("Configuration") + " (" + ui.Path.Sprint(configs.ShhcryptSettings.ConfigPath) + "):")
		fmt.Println()
		fmt.Printf("  %-14s %d\n", "Erase passes:", config.Erase.Passes)
		fmt.Printf("  %-14s %t\n", "Audit log:", config.Audit.Enabled)
		if config.Audit.Enabled {
			fmt.Printf("  %-14s %s\n", "Audit path:", ui.Path.Sprint(configs.ShhcryptSettings.AuditLogPath))
		}
		return nil
	},
}
