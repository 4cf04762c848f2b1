package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"treesync/internal/diff"
	"treesync/internal/ignore"
	"treesync/internal/tree"
)

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <tree.json> <directory-or-tree.json>",
		Short: "Compare a saved hash tree against a directory or another saved tree",
		Long: "Compare a saved hash tree against the current state of a directory,\n" +
			"or against a second saved tree. Exits 1 when changes are detected.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			oldTree, err := tree.Load(args[0])
			if err != nil {
				return fmt.Errorf("failed to load tree: %w", err)
			}
			fmt.Printf("Loaded saved tree (root: %s...)\n", shortRoot(oldTree))

			var newTree *tree.Tree
			info, statErr := os.Stat(args[1])
			if statErr == nil && info.IsDir() {
				fmt.Printf("Scanning directory: %s\n", args[1])
				newTree, err = tree.BuildWithOptions(args[1], tree.BuildOptions{
					Filter:  ignore.New(cfg.Exclude...),
					Workers: cfg.Workers,
				})
				if err != nil {
					return fmt.Errorf("failed to build tree: %w", err)
				}
			} else {
				newTree, err = tree.Load(args[1])
				if err != nil {
					return fmt.Errorf("failed to load tree: %w", err)
				}
			}

			changed := diff.FindDifferences(oldTree, newTree)
			fmt.Println(diff.FormatReport(diff.Classify(oldTree, newTree)))

			if len(changed) > 0 {
				os.Exit(1)
			}
			return nil
		},
	}
}

func shortRoot(t *tree.Tree) string {
	h := t.RootHash()
	if len(h) > 16 {
		return h[:16]
	}
	if h == "" {
		return strings.Repeat("0", 16)
	}
	return h
}
