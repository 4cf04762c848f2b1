package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"treesync/internal/config"
)

var (
	configPath string
	workers    int
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	return cfg, nil
}

func main() {
	root := &cobra.Command{
		Use:           "treesync",
		Short:         "Content-addressed directory snapshots and change detection",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Config file path")
	root.PersistentFlags().IntVarP(&workers, "workers", "w", 0, "Number of concurrent file reads (0 = config default)")

	root.AddCommand(
		newBuildCmd(),
		newDiffCmd(),
		newServeCmd(),
		newRegisterCmd(),
		newSyncCmd(),
		newProjectsCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
