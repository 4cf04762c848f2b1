package tree

import (
	"errors"
	"fmt"

	"treesync/internal/hashutil"
)

var (
	// ErrInvalidHash means a hash string failed the 64-hex validation.
	ErrInvalidHash = errors.New("invalid hash")
	// ErrPathNotFound means Build was invoked on a non-existent root.
	ErrPathNotFound = errors.New("path not found")
)

// Node is one entry in a hash tree: a file leaf carrying the SHA-256 of its
// content, or a directory carrying a hash combined from its children's
// hashes. Children is nil for files and non-nil (possibly empty) for
// directories; that distinction is the variant tag. Nodes are not mutated
// after construction.
type Node struct {
	Name     string
	Path     string
	Hash     string
	Children map[string]*Node
}

// IsFile reports whether the node is a file leaf.
func (n *Node) IsFile() bool {
	return n.Children == nil
}

// ContentEquals reports hash equality only. Equal hashes mean the subtrees
// are content-identical; they say nothing about names or paths.
func (n *Node) ContentEquals(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.Hash == other.Hash
}

// NewFileNode creates a file leaf. The hash must be 64 hex characters;
// uppercase input is normalized to lowercase.
func NewFileNode(name, path, contentHash string) (*Node, error) {
	if !hashutil.IsValid(contentHash) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHash, contentHash)
	}
	return &Node{
		Name: name,
		Path: path,
		Hash: hashutil.Normalize(contentHash),
	}, nil
}

// NewDirectoryNode creates a directory node owning the given children. A nil
// children map is treated as empty so the node still tags as a directory.
func NewDirectoryNode(name, path, combinedHash string, children map[string]*Node) (*Node, error) {
	if !hashutil.IsValid(combinedHash) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHash, combinedHash)
	}
	if children == nil {
		children = make(map[string]*Node)
	}
	return &Node{
		Name:     name,
		Path:     path,
		Hash:     hashutil.Normalize(combinedHash),
		Children: children,
	}, nil
}
