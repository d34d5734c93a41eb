package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/boxify/internal/config"
)

var (
	configTOML bool
	configSave bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or save the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVar(&configTOML, "toml", false, "Print TOML instead of YAML")
	configCmd.Flags().BoolVar(&configSave, "save", false, "Write the configuration to the user config directory")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if configSave {
		path, err := cfg.Save()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", path)
		return nil
	}

	format := config.FormatYAML
	if configTOML {
		format = config.FormatTOML
	}
	data, err := cfg.Marshal(format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
