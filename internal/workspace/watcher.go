package workspace

import (
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/korhaliv/winsync/internal/logging"
)

const refreshQuiet = 250 * time.Millisecond

// Watcher refreshes the tree when the project root changes on disk. Bursts
// of filesystem events collapse into one refresh after a quiet period.
type Watcher struct {
	fsw  *fsnotify.Watcher
	done chan struct{}
}

// WatchRoot watches the root directory (top level; the scan itself walks
// deeper) and re-runs tree.Refresh after changes settle.
func WatchRoot(root string, tree *Tree) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{fsw: fsw, done: make(chan struct{})}
	go w.run(root, tree)
	return w, nil
}

func (w *Watcher) run(root string, tree *Tree) {
	var quiet *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-w.done:
			return
		case _, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if quiet == nil {
				quiet = time.NewTimer(refreshQuiet)
				fire = quiet.C
			} else {
				if !quiet.Stop() {
					select {
					case <-quiet.C:
					default:
					}
				}
				quiet.Reset(refreshQuiet)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.Error(err)
		case <-fire:
			quiet = nil
			fire = nil
			tree.Refresh(root)
		}
	}
}

// Close stops the watcher goroutine and releases the fsnotify handle.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
