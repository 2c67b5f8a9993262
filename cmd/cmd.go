package cmd

import (
	logger "github.com/shhcrypt/shhcrypt/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger
)

// Register installs the global flags on root and adds every subcommand.
func Register(root *cobra.Command) {
	AddGlobalFlags(root.PersistentFlags())
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
	}

	root.AddCommand(RunCmd)
	root.AddCommand(LogCmd)
	root.AddCommand(ConfigCmd)
}

// AddGlobalFlags adds --verbose and --debug to fs.
func AddGlobalFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	fs.BoolVarP(&debug, "debug", "d", false, "enable debug output")
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	Logger = logger.Logger{}
	resetRunCommandState()
	resetLogCommandState()
	resetConfigInitState()
	resetConfigShowState()
	resetCobraFlagState()
}

// resetCobraFlagState clears Changed on every subcommand flag so one test's
// flags do not leak into the next.
func resetCobraFlagState() {
	for _, c := range []*cobra.Command{RunCmd, LogCmd, ConfigCmd, configInitCmd, configShowCmd} {
		c.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
}
