package workspace

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/korhaliv/winsync/internal/logging"
)

var skippedDirs = map[string]bool{
	"node_modules": true,
	"target":       true,
	"vendor":       true,
	"dist":         true,
}

// Entry is one file in the project tree, used by the quick-open picker.
type Entry struct {
	Path string // relative to the tree root
	Name string
}

// Tree caches the project file listing for a root directory.
type Tree struct {
	mu      sync.Mutex
	root    string
	entries []Entry
	onSwap  func([]Entry)
}

func NewTree(onSwap func([]Entry)) *Tree {
	return &Tree{onSwap: onSwap}
}

// Refresh rescans the given root. Scan failures are logged, not returned:
// the refresh triggers (sync merges, fs events) have no error path.
func (t *Tree) Refresh(root string) {
	entries, err := scan(root)
	if err != nil {
		logging.Error(err)
		return
	}

	t.mu.Lock()
	t.root = root
	t.entries = entries
	swap := t.onSwap
	t.mu.Unlock()

	if swap != nil {
		swap(entries)
	}
}

// Entries returns the cached listing.
func (t *Tree) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Entry(nil), t.entries...)
}

func (t *Tree) Root() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.root
}

func scan(root string) ([]Entry, error) {
	var entries []Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtrees are skipped, not fatal
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || skippedDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		entries = append(entries, Entry{Path: rel, Name: name})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}
