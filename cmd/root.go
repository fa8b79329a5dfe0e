package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	timeout time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "boolint [paths...]",
	Short:            "boolint - finds and fixes pointless boolean expressions",
	TraverseChildren: true, // Prioritize subcommands
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			// display help when only 'boolint' is entered
			_ = cmd.Help()
			return
		}
		// Format: boolint [path1 path2 ...] => behaves like the lint subcommand
		lintCmd.Run(lintCmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	logger, _ = zap.NewProduction()

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path (default .boolint.yaml when present)")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", 5*time.Minute, "Timeout for the whole run")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(watchCmd)
}
