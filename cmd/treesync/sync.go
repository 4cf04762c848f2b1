package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"treesync/internal/client"
	"treesync/internal/ignore"
	"treesync/internal/tree"
)

func newRegisterCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "register <directory>",
		Short: "Register a project with the sync server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			absPath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("failed to get absolute path: %w", err)
			}

			c := client.New(cfg.Server)
			resp, err := c.Register(cmd.Context(), absPath, name)
			if err != nil {
				return err
			}

			fmt.Printf("✓ %s\n", resp.Message)
			fmt.Printf("  Project ID: %s\n", resp.ProjectID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Project name (defaults to directory basename)")
	return cmd
}

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync <directory>",
		Short: "Build a local tree and sync it against the server",
		Long: "Build a hash tree for the directory, send it to the sync server and\n" +
			"print the files that changed since the server's snapshot. Exits 1 when\n" +
			"changes are detected.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			absPath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("failed to get absolute path: %w", err)
			}

			fmt.Printf("Scanning directory: %s\n", absPath)
			t, err := tree.BuildWithOptions(absPath, tree.BuildOptions{
				Filter:  ignore.New(cfg.Exclude...),
				Workers: cfg.Workers,
			})
			if err != nil {
				return fmt.Errorf("failed to build tree: %w", err)
			}
			fmt.Printf("Local root hash: %s\n", t.RootHash())

			c := client.New(cfg.Server)
			resp, err := c.Sync(cmd.Context(), absPath, tree.ToRecord(t))
			if err != nil {
				return err
			}

			if !resp.ServerHasProject {
				fmt.Println("Server does not have this project; register it first.")
				return nil
			}
			if resp.TreesMatch {
				fmt.Println("Trees match; nothing changed.")
				return nil
			}

			fmt.Printf("Changed files (%d):\n", len(resp.ChangedFiles))
			for _, path := range resp.ChangedFiles {
				fmt.Printf("  %s\n", path)
			}
			os.Exit(1)
			return nil
		},
	}
}

func newProjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List projects registered on the sync server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			c := client.New(cfg.Server)
			resp, err := c.Projects(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Projects: %d\n", resp.ProjectsCount)
			for _, p := range resp.Projects {
				fmt.Printf("  %s (%d files, last sync %s)\n", p.ProjectName, p.FileCount, p.LastSync)
				fmt.Printf("    %s\n", p.ProjectPath)
			}
			return nil
		},
	}
}
