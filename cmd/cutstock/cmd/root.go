// Package cmd implements the cutstock CLI: a local front end over
// internal/api.Engine exercising the submit/status/stop/terminate/stats
// contract within a single process invocation.
package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/cutstock/internal/logging"
)

var (
	verbose bool
	logger  logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cutstock",
	Short: "A 2D guillotine cutting-stock optimizer",
	Long: `cutstock computes near-optimal guillotine cutting layouts for 2D
stock panels against a demand list, with configurable kerf, min-trim,
grain policy, and optimization priority.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := logging.LevelInfo
		if verbose {
			level = logging.LevelDebug
		}
		logger = logging.NewDefaultLogger(level, os.Stdout)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug-level logging")

	binName := BinName()
	rootCmd.Example = `  # Run an optimization and print the resulting layout
  ` + binName + ` run --demand demand.json --stock stock.json

  # Run with a saved tuning profile
  ` + binName + ` run --demand demand.json --stock stock.json --config ~/.cutstock/config.json

  # Print the default config file
  ` + binName + ` config show`
}

// GetLogger returns the configured logger.
func GetLogger() logging.Logger { return logger }

// BinName returns the base name of the current executable.
func BinName() string { return filepath.Base(os.Args[0]) }
