// Package main is the entry point for the boxify command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/boxify/internal/config"
	"github.com/Faultbox/boxify/internal/logger"
)

// cfg is loaded before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "boxify",
	Short: "Measure boxes by dragging a cuboid over the world",
	Long: `boxify drives the interactive box measurement core without a device.
It replays scripted gestures against a simulated camera and world and
reports the measured dimensions.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		logger.Sync()
	},
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
}

// setup loads the configuration and initializes the logger.
func setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	var err error
	cfg, err = config.Load(config.ConfigPath(flags), flags)
	if err != nil {
		return err
	}

	logOpts := cfg.LoggerOptions()
	logOpts.Console = os.Stderr
	if err := logger.Setup(logOpts); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	logger.Sugar.Debugf("Config: %+v", cfg)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
