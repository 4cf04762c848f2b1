package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"treesync/internal/ignore"
	"treesync/internal/progress"
	"treesync/internal/tree"
)

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <directory> [output.json]",
		Short: "Build a hash tree from a directory and save it as JSON",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			absDirectory, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("failed to get absolute path: %w", err)
			}

			filter := ignore.New(cfg.Exclude...)

			fmt.Printf("Scanning directory: %s\n", absDirectory)
			total, err := tree.CountFiles(absDirectory, filter)
			if err != nil {
				return err
			}
			fmt.Printf("Found %d files\n", total)
			fmt.Println("Hashing files...")

			bar := progress.New(int64(total))
			t, err := tree.BuildWithOptions(absDirectory, tree.BuildOptions{
				Filter:  filter,
				Workers: cfg.Workers,
				OnFile:  bar.Observe,
			})
			if err != nil {
				return fmt.Errorf("failed to build tree: %w", err)
			}
			bar.Finish()

			outputPath := ""
			if len(args) == 2 {
				outputPath = args[1]
			}
			if outputPath == "" {
				outputPath = filepath.Join("output", t.RootHash()+".json")
			}
			if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			if err := tree.Save(t, outputPath); err != nil {
				return fmt.Errorf("failed to save tree: %w", err)
			}

			fmt.Printf("✓ Hash tree generated successfully\n")
			fmt.Printf("  Root hash: %s\n", t.RootHash())
			fmt.Printf("  Files: %d\n", t.FileCount())
			fmt.Printf("  Output: %s\n", outputPath)

			return nil
		},
	}
}
