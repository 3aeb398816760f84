package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/cutstock/internal/config"
)

var configPathFlag string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or initialize the optimizer tuning config",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active config (file if present, else built-in defaults)",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPathFlag
		if path == "" {
			path = config.DefaultConfigPath()
		}
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the built-in default config to disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPathFlag
		if path == "" {
			path = config.DefaultConfigPath()
		}
		if err := config.Save(path, config.DefaultOptimizerConfig()); err != nil {
			return err
		}
		GetLogger().Info("wrote default config to %s", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)

	configCmd.PersistentFlags().StringVar(&configPathFlag, "path", "", "Config file path (defaults to ~/.cutstock/config.json)")
}
