package tree

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"treesync/internal/hashutil"
	"treesync/internal/ignore"
)

// BuildOptions tunes a single build call.
type BuildOptions struct {
	// Filter decides which entry names are excluded. Nil means the fixed
	// ignore set with no extras.
	Filter *ignore.Filter
	// Workers > 1 enables parallel descent with at most Workers concurrent
	// file reads. The directory hash composition sorts child hashes, so the
	// result is identical regardless of completion order.
	Workers int
	// OnFile, if set, is called with each file path after it is hashed.
	// Called from multiple goroutines when Workers > 1.
	OnFile func(path string)
}

// Build walks rootPath and produces a hash tree with default options.
func Build(rootPath string) (*Tree, error) {
	return BuildWithOptions(rootPath, BuildOptions{})
}

// BuildWithOptions walks rootPath recursively, hashing file content with
// SHA-256 and composing directory hashes from the sorted child hashes.
// Entries in the ignore set are excluded. Per-entry I/O failures below the
// root skip that entry; only root-level failures surface.
func BuildWithOptions(rootPath string, opts BuildOptions) (*Tree, error) {
	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, rootPath)
		}
		return nil, fmt.Errorf("failed to stat root: %w", err)
	}

	filter := opts.Filter
	if filter == nil {
		filter = ignore.New()
	}

	b := &builder{filter: filter, onFile: opts.OnFile}
	if opts.Workers > 1 {
		b.parallel = true
		b.readSlots = semaphore.NewWeighted(int64(opts.Workers))
	}

	root, err := b.buildNode(absRoot, info.IsDir())
	if err != nil {
		return nil, err
	}

	return &Tree{Root: root, RootPath: absRoot}, nil
}

// CountFiles walks rootPath and returns how many file entries a build over
// it would hash. Used to size progress reporting; traversal errors below
// the root are skipped the same way the builder skips them.
func CountFiles(rootPath string, filter *ignore.Filter) (int, error) {
	if filter == nil {
		filter = ignore.New()
	}
	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve root path: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", ErrPathNotFound, rootPath)
		}
		return 0, fmt.Errorf("failed to stat root: %w", err)
	}
	if !info.IsDir() {
		return 1, nil
	}
	return countWalk(absRoot, filter), nil
}

func countWalk(dir string, filter *ignore.Filter) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	count := 0
	for _, entry := range entries {
		if filter.Ignored(entry.Name()) {
			continue
		}
		if entry.IsDir() {
			count += countWalk(filepath.Join(dir, entry.Name()), filter)
		} else {
			count++
		}
	}
	return count
}

type builder struct {
	filter    *ignore.Filter
	onFile    func(string)
	parallel  bool
	readSlots *semaphore.Weighted
}

func (b *builder) buildNode(path string, isDir bool) (*Node, error) {
	if !isDir {
		return b.buildFile(path)
	}
	return b.buildDirectory(path)
}

func (b *builder) buildFile(path string) (*Node, error) {
	if b.readSlots != nil {
		if err := b.readSlots.Acquire(context.Background(), 1); err != nil {
			return nil, err
		}
		defer b.readSlots.Release(1)
	}

	contentHash, err := hashutil.HashFile(path)
	if err != nil {
		return nil, err
	}
	node, err := NewFileNode(filepath.Base(path), path, contentHash)
	if err != nil {
		return nil, err
	}
	if b.onFile != nil {
		b.onFile(path)
	}
	return node, nil
}

func (b *builder) buildDirectory(path string) (*Node, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}

	children := make(map[string]*Node)

	if b.parallel {
		var mu sync.Mutex
		g := new(errgroup.Group)
		for _, entry := range entries {
			if b.filter.Ignored(entry.Name()) {
				continue
			}
			name := entry.Name()
			childPath := filepath.Join(path, name)
			isDir := entry.IsDir()
			g.Go(func() error {
				child, err := b.buildNode(childPath, isDir)
				if err != nil {
					// Best-effort traversal: unreadable entries are skipped.
					return nil
				}
				mu.Lock()
				children[name] = child
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for _, entry := range entries {
			if b.filter.Ignored(entry.Name()) {
				continue
			}
			child, err := b.buildNode(filepath.Join(path, entry.Name()), entry.IsDir())
			if err != nil {
				continue
			}
			children[entry.Name()] = child
		}
	}

	hashes := make([]string, 0, len(children))
	for _, child := range children {
		hashes = append(hashes, child.Hash)
	}
	combined := hashutil.CombineHashes(hashes)

	return NewDirectoryNode(filepath.Base(path), path, combined, children)
}
