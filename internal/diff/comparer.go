package diff

import (
	"sort"

	"treesync/internal/tree"
)

// FindDifferences compares two trees and returns the paths of every file
// whose content or existence differs, sorted lexicographically. Subtrees
// with equal hashes are pruned without descending, so cost scales with the
// number of changed subtrees rather than total tree size. If either tree
// has no root the result is empty; callers cannot distinguish two missing
// trees from two identical ones.
func FindDifferences(a, b *tree.Tree) []string {
	changed := []string{}
	if a == nil || b == nil || a.Root == nil || b.Root == nil {
		return changed
	}
	compareNodes(a.Root, b.Root, &changed)
	sort.Strings(changed)
	return changed
}

func compareNodes(a, b *tree.Node, out *[]string) {
	if a.Hash == b.Hash {
		return
	}

	// A file on either side ends the descent. When a file faces a directory
	// of the same name, the file-side path is reported and the directory's
	// contents are not enumerated.
	if a.IsFile() {
		*out = append(*out, a.Path)
		return
	}
	if b.IsFile() {
		*out = append(*out, b.Path)
		return
	}

	for name, childA := range a.Children {
		if childB, ok := b.Children[name]; ok {
			compareNodes(childA, childB, out)
		} else {
			collectFilePaths(childA, out)
		}
	}
	for name, childB := range b.Children {
		if _, ok := a.Children[name]; !ok {
			collectFilePaths(childB, out)
		}
	}
}

func collectFilePaths(n *tree.Node, out *[]string) {
	if n.IsFile() {
		*out = append(*out, n.Path)
		return
	}
	for _, child := range n.Children {
		collectFilePaths(child, out)
	}
}
