// Package proof is an optional extension: a flat merkle tree over a
// snapshot's file hashes with per-leaf inclusion proofs. Nothing in
// build, diff or serialization depends on it.
package proof

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sort"

	mt "github.com/txaty/go-merkletree"

	"treesync/internal/hashutil"
	"treesync/internal/tree"
)

var ErrUnknownLeaf = errors.New("hash is not a leaf of this proof set")

// leafBlock adapts a content-hash string to go-merkletree's DataBlock.
type leafBlock struct {
	hash string
}

func (b leafBlock) Serialize() ([]byte, error) {
	return []byte(b.hash), nil
}

func treeConfig() *mt.Config {
	return &mt.Config{HashFunc: hashutil.SHA256Func}
}

// Set holds the proof tree for one snapshot. The leaves are the snapshot's
// distinct file content hashes in sorted order, so the proof root is as
// order-independent as the directory hashes are.
type Set struct {
	leaves []string
	index  map[string]int
	tree   *mt.MerkleTree
}

// NewSet builds a proof set from a built tree's file hashes. Fails on a
// tree with no files.
func NewSet(t *tree.Tree) (*Set, error) {
	seen := make(map[string]bool)
	leaves := make([]string, 0)
	for _, h := range t.FileHashes() {
		if !seen[h] {
			seen[h] = true
			leaves = append(leaves, h)
		}
	}
	if len(leaves) == 0 {
		return nil, errors.New("tree has no files to prove")
	}
	sort.Strings(leaves)

	blocks := make([]mt.DataBlock, 0, len(leaves)+1)
	for _, h := range leaves {
		blocks = append(blocks, leafBlock{hash: h})
	}
	if len(blocks) == 1 {
		// go-merkletree needs at least two blocks; pair the leaf with itself.
		blocks = append(blocks, blocks[0])
	}

	mtree, err := mt.New(treeConfig(), blocks)
	if err != nil {
		return nil, fmt.Errorf("failed to build proof tree: %w", err)
	}

	index := make(map[string]int, len(leaves))
	for i, h := range leaves {
		index[h] = i
	}

	return &Set{leaves: leaves, index: index, tree: mtree}, nil
}

// Root returns the proof tree's root as lowercase hex. This is distinct
// from the directory tree's root hash.
func (s *Set) Root() string {
	return hex.EncodeToString(s.tree.Root)
}

// Leaves returns the sorted distinct content hashes the set covers.
func (s *Set) Leaves() []string {
	out := make([]string, len(s.leaves))
	copy(out, s.leaves)
	return out
}

// Proof returns the inclusion proof for one content hash.
func (s *Set) Proof(contentHash string) (*mt.Proof, error) {
	i, ok := s.index[hashutil.Normalize(contentHash)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLeaf, contentHash)
	}
	return s.tree.Proofs[i], nil
}

// Verify checks an inclusion proof against a proof-set root.
func Verify(contentHash string, p *mt.Proof, root string) (bool, error) {
	rootBytes, err := hex.DecodeString(root)
	if err != nil {
		return false, fmt.Errorf("invalid proof root: %w", err)
	}
	return mt.Verify(leafBlock{hash: hashutil.Normalize(contentHash)}, p, rootBytes, treeConfig())
}
