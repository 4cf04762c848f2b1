package tree

// Tree owns one root node (or none, for an empty tree) plus the absolute
// path it was built from. A Tree is immutable after construction; re-sync
// means building a fresh one. Concurrent readers need no locking.
type Tree struct {
	Root     *Node
	RootPath string
}

// RootHash returns the root node's hash, or "" for an empty tree.
func (t *Tree) RootHash() string {
	if t == nil || t.Root == nil {
		return ""
	}
	return t.Root.Hash
}

// FileCount returns the number of file leaves in the tree.
func (t *Tree) FileCount() int {
	if t == nil || t.Root == nil {
		return 0
	}
	return countFiles(t.Root)
}

func countFiles(n *Node) int {
	if n.IsFile() {
		return 1
	}
	count := 0
	for _, child := range n.Children {
		count += countFiles(child)
	}
	return count
}

// FileHashes returns a path -> content hash map over every file leaf.
func (t *Tree) FileHashes() map[string]string {
	files := make(map[string]string)
	if t == nil || t.Root == nil {
		return files
	}
	collectFileHashes(t.Root, files)
	return files
}

func collectFileHashes(n *Node, files map[string]string) {
	if n.IsFile() {
		files[n.Path] = n.Hash
		return
	}
	for _, child := range n.Children {
		collectFileHashes(child, files)
	}
}
