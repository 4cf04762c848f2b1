package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"treesync/internal/registry"
	"treesync/internal/server"
)

func newServeCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the project sync server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			srv := server.New(registry.New(), logger)
			return srv.ListenAndServe(cfg.Listen)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Listen address (overrides config)")
	return cmd
}
