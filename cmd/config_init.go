package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/shhcrypt/shhcrypt/internal/configs"
	"github.com/shhcrypt/shhcrypt/internal/ui"

	"github.com/spf13/cobra"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing configuration file")
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitForce = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Writes config.toml with the default settings.

An existing file is left untouched unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")

		configPath := configs.ShhcryptSettings.ConfigPath
		if configPath == "" {
			return Logger.ErrorfAndReturn("no config directory available (hint: set %s)", configs.ConfigDirEnv)
		}
		Logger.Debugf("Config path: %s", configPath)

		_, err := os.Stat(configPath)
		switch {
		case err == nil && !configInitForce:
			fmt.Println(ui.Caution() + " Configuration already exists at " + ui.Path.Sprint(configPath))
			fmt.Println(ui.Arrow() + " Run " + ui.Code.Sprint("shhcrypt config init --force") + " to overwrite it")
			return nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return Logger.ErrorfAndReturn("Failed to check config file: %v", err)
		}

		if err := configs.SaveConfig(configs.DefaultConfig()); err != nil {
			return Logger.ErrorfAndReturn("Failed to write config: %v", err)
		}

		Logger.Infof("Default configuration written")
		fmt.Println(ui.Check() + " Configuration written to " + ui.Path.Sprint(configPath))
		return nil
	},
}
