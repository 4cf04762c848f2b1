package diff

import (
	"fmt"
	"sort"

	"treesync/internal/tree"
)

type ChangeType string

const (
	Added    ChangeType = "ADDED"
	Modified ChangeType = "MODIFIED"
	Deleted  ChangeType = "DELETED"
)

type Change struct {
	Type    ChangeType
	Path    string
	OldHash string
	NewHash string
}

type Result struct {
	Added    []Change
	Modified []Change
	Deleted  []Change
}

func (r *Result) HasChanges() bool {
	return len(r.Added) > 0 || len(r.Modified) > 0 || len(r.Deleted) > 0
}

// Classify compares the file sets of two trees by path and splits the
// changes into added, modified and deleted. Unlike FindDifferences this
// walks every leaf; it exists for human-readable reporting, not for cheap
// change detection.
func Classify(oldTree, newTree *tree.Tree) *Result {
	result := &Result{
		Added:    make([]Change, 0),
		Modified: make([]Change, 0),
		Deleted:  make([]Change, 0),
	}

	oldFiles := oldTree.FileHashes()
	newFiles := newTree.FileHashes()

	for path, newHash := range newFiles {
		if oldHash, exists := oldFiles[path]; exists {
			if oldHash != newHash {
				result.Modified = append(result.Modified, Change{
					Type:    Modified,
					Path:    path,
					OldHash: oldHash,
					NewHash: newHash,
				})
			}
		} else {
			result.Added = append(result.Added, Change{
				Type:    Added,
				Path:    path,
				NewHash: newHash,
			})
		}
	}

	for path, oldHash := range oldFiles {
		if _, exists := newFiles[path]; !exists {
			result.Deleted = append(result.Deleted, Change{
				Type:    Deleted,
				Path:    path,
				OldHash: oldHash,
			})
		}
	}

	// Sort for deterministic output
	sort.Slice(result.Added, func(i, j int) bool {
		return result.Added[i].Path < result.Added[j].Path
	})
	sort.Slice(result.Modified, func(i, j int) bool {
		return result.Modified[i].Path < result.Modified[j].Path
	})
	sort.Slice(result.Deleted, func(i, j int) bool {
		return result.Deleted[i].Path < result.Deleted[j].Path
	})

	return result
}

func FormatReport(result *Result) string {
	if !result.HasChanges() {
		return "No changes detected."
	}

	report := "Changes detected:\n\n"

	if len(result.Added) > 0 {
		report += fmt.Sprintf("ADDED (%d files):\n", len(result.Added))
		for _, change := range result.Added {
			report += fmt.Sprintf("  + %s (hash: %s)\n", change.Path, shortHash(change.NewHash))
		}
		report += "\n"
	}

	if len(result.Modified) > 0 {
		report += fmt.Sprintf("MODIFIED (%d files):\n", len(result.Modified))
		for _, change := range result.Modified {
			report += fmt.Sprintf("  ~ %s\n", change.Path)
			report += fmt.Sprintf("    Old: %s\n", shortHash(change.OldHash))
			report += fmt.Sprintf("    New: %s\n", shortHash(change.NewHash))
		}
		report += "\n"
	}

	if len(result.Deleted) > 0 {
		report += fmt.Sprintf("DELETED (%d files):\n", len(result.Deleted))
		for _, change := range result.Deleted {
			report += fmt.Sprintf("  - %s (hash: %s)\n", change.Path, shortHash(change.OldHash))
		}
		report += "\n"
	}

	report += fmt.Sprintf("Summary: %d added, %d modified, %d deleted\n",
		len(result.Added), len(result.Modified), len(result.Deleted))

	return report
}

func shortHash(h string) string {
	if len(h) > 16 {
		return h[:16] + "..."
	}
	return h
}
