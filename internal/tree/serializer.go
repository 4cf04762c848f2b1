package tree

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Record is the transportable form of a Tree: plain fields and nested
// mappings, JSON-compatible for the HTTP layer. Field names are part of the
// wire contract and must not change.
type Record struct {
	RootPath string      `json:"root_path"`
	Root     *NodeRecord `json:"root"`
}

// NodeRecord mirrors one Node. File records carry no children key on the
// wire; directory records always carry one, even when empty.
type NodeRecord struct {
	Name     string
	Path     string
	Hash     string
	IsFile   bool
	Children map[string]*NodeRecord
}

type fileRecordJSON struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Hash   string `json:"hash"`
	IsFile bool   `json:"is_file"`
}

type dirRecordJSON struct {
	Name     string                 `json:"name"`
	Path     string                 `json:"path"`
	Hash     string                 `json:"hash"`
	IsFile   bool                   `json:"is_file"`
	Children map[string]*NodeRecord `json:"children"`
}

func (r *NodeRecord) MarshalJSON() ([]byte, error) {
	if r.IsFile {
		return json.Marshal(fileRecordJSON{
			Name:   r.Name,
			Path:   r.Path,
			Hash:   r.Hash,
			IsFile: true,
		})
	}
	children := r.Children
	if children == nil {
		children = make(map[string]*NodeRecord)
	}
	return json.Marshal(dirRecordJSON{
		Name:     r.Name,
		Path:     r.Path,
		Hash:     r.Hash,
		IsFile:   false,
		Children: children,
	})
}

func (r *NodeRecord) UnmarshalJSON(data []byte) error {
	var aux dirRecordJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Name = aux.Name
	r.Path = aux.Path
	r.Hash = aux.Hash
	r.IsFile = aux.IsFile
	if aux.IsFile {
		r.Children = nil
		return nil
	}
	if aux.Children == nil {
		aux.Children = make(map[string]*NodeRecord)
	}
	r.Children = aux.Children
	return nil
}

// ToRecord converts a Tree to its transportable record. An empty tree
// yields a record with a null root.
func ToRecord(t *Tree) *Record {
	rec := &Record{}
	if t == nil {
		return rec
	}
	rec.RootPath = t.RootPath
	rec.Root = nodeToRecord(t.Root)
	return rec
}

func nodeToRecord(n *Node) *NodeRecord {
	if n == nil {
		return nil
	}
	rec := &NodeRecord{
		Name:   n.Name,
		Path:   n.Path,
		Hash:   n.Hash,
		IsFile: n.IsFile(),
	}
	if !rec.IsFile {
		rec.Children = make(map[string]*NodeRecord, len(n.Children))
		for name, child := range n.Children {
			rec.Children[name] = nodeToRecord(child)
		}
	}
	return rec
}

// FromRecord reconstructs a Tree from its transportable record, validating
// every hash. Corrupted hashes fail with ErrInvalidHash.
func FromRecord(rec *Record) (*Tree, error) {
	if rec == nil {
		return nil, errors.New("nil tree record")
	}
	root, err := nodeFromRecord(rec.Root)
	if err != nil {
		return nil, err
	}
	return &Tree{Root: root, RootPath: rec.RootPath}, nil
}

func nodeFromRecord(rec *NodeRecord) (*Node, error) {
	if rec == nil {
		return nil, nil
	}
	if rec.IsFile {
		return NewFileNode(rec.Name, rec.Path, rec.Hash)
	}
	children := make(map[string]*Node, len(rec.Children))
	for name, childRec := range rec.Children {
		child, err := nodeFromRecord(childRec)
		if err != nil {
			return nil, err
		}
		children[name] = child
	}
	return NewDirectoryNode(rec.Name, rec.Path, rec.Hash, children)
}

// Save writes a tree's record to path as indented JSON.
func Save(t *Tree, path string) error {
	data, err := json.MarshalIndent(ToRecord(t), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tree: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Load reads a tree record from path and reconstructs the tree.
func Load(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tree: %w", err)
	}

	return FromRecord(&rec)
}
