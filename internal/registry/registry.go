// Package registry keeps the server-side mapping from project path to the
// last synced tree record. It is an external collaborator of the tree core:
// the core stays stateless and the registry owns all mutable state.
package registry

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"treesync/internal/diff"
	"treesync/internal/tree"
)

// Project is one registered project. ID is the project's absolute path.
type Project struct {
	ID           string
	Name         string
	Path         string
	Record       *tree.Record
	Fingerprint  uint64
	FileCount    int
	RegisteredAt time.Time
	LastSync     time.Time
}

// SyncOutcome reports one sync attempt.
type SyncOutcome struct {
	ServerHasProject bool
	TreesMatch       bool
	ChangedFiles     []string
}

// Registry is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	projects map[string]*Project
}

func New() *Registry {
	return &Registry{projects: make(map[string]*Project)}
}

// fingerprint is a fast non-cryptographic digest of a serialized record,
// used only to short-circuit "nothing changed" syncs without walking trees.
// encoding/json sorts map keys, so equal records fingerprint equally.
func fingerprint(rec *tree.Record) uint64 {
	data, err := json.Marshal(rec)
	if err != nil {
		return 0
	}
	return xxhash.Sum64(data)
}

// Register builds a tree for projectPath and stores it, replacing any
// earlier registration of the same path. The returned project ID is the
// absolute path.
func (r *Registry) Register(projectPath, name string) (*Project, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project path: %w", err)
	}

	t, err := tree.Build(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to build project tree: %w", err)
	}

	if name == "" {
		name = filepath.Base(absPath)
	}

	now := time.Now()
	p := &Project{
		ID:           absPath,
		Name:         name,
		Path:         absPath,
		Record:       tree.ToRecord(t),
		FileCount:    t.FileCount(),
		RegisteredAt: now,
		LastSync:     now,
	}
	p.Fingerprint = fingerprint(p.Record)

	r.mu.Lock()
	r.projects[p.ID] = p
	r.mu.Unlock()

	return p.snapshot(), nil
}

// Sync compares a client's tree record against the stored one. An unknown
// project is registered from the client record's root path first; if that
// fails the outcome reports the server does not have the project. When the
// trees differ the client record replaces the stored one.
func (r *Registry) Sync(projectID string, clientRec *tree.Record) (*SyncOutcome, error) {
	r.mu.RLock()
	p, ok := r.projects[projectID]
	r.mu.RUnlock()

	if !ok {
		if clientRec == nil || clientRec.RootPath == "" {
			return &SyncOutcome{ChangedFiles: []string{}}, nil
		}
		registered, err := r.Register(clientRec.RootPath, "")
		if err != nil || registered.ID != projectID {
			return &SyncOutcome{ChangedFiles: []string{}}, nil
		}
		r.mu.RLock()
		p = r.projects[projectID]
		r.mu.RUnlock()
	}

	clientTree, err := tree.FromRecord(clientRec)
	if err != nil {
		return nil, fmt.Errorf("invalid client tree: %w", err)
	}

	clientFP := fingerprint(clientRec)
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	if clientFP == p.Fingerprint {
		p.LastSync = now
		return &SyncOutcome{
			ServerHasProject: true,
			TreesMatch:       true,
			ChangedFiles:     []string{},
		}, nil
	}

	serverTree, err := tree.FromRecord(p.Record)
	if err != nil {
		return nil, fmt.Errorf("stored tree is corrupt: %w", err)
	}

	changed := diff.FindDifferences(serverTree, clientTree)
	match := len(changed) == 0

	if !match {
		p.Record = clientRec
		p.Fingerprint = clientFP
		p.FileCount = clientTree.FileCount()
	}
	p.LastSync = now

	return &SyncOutcome{
		ServerHasProject: true,
		TreesMatch:       match,
		ChangedFiles:     changed,
	}, nil
}

// Get returns a snapshot of one project.
func (r *Registry) Get(projectID string) (*Project, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.projects[projectID]
	if !ok {
		return nil, false
	}
	return p.snapshot(), true
}

// List returns snapshots of every project, sorted by ID.
func (r *Registry) List() []*Project {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, p.snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of registered projects.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.projects)
}

// snapshot copies the project metadata. The record pointer is shared; the
// registry never mutates a stored record, only swaps it wholesale.
func (p *Project) snapshot() *Project {
	cp := *p
	return &cp
}
