// Package syncer replicates the file and layout stores across windows over
// the pub/sub bus. It is an eventual, best-effort layer: last write wins,
// per-channel FIFO is assumed from the bus, and every receive path applies
// messages as idempotent overwrites.
package syncer

import (
	"sync"
	"time"

	"github.com/korhaliv/winsync/internal/store"
	"github.com/korhaliv/winsync/internal/transport"
)

const defaultHandshakeDelay = 200 * time.Millisecond

// Reloader fetches file content from disk after a merge references a file
// by path without content.
type Reloader interface {
	Reload(fileID, path string)
}

// TreeRefresher rescans the project tree when a merge changes the root path.
type TreeRefresher interface {
	Refresh(root string)
}

// Options wires an Engine. Reloader and Tree are optional; everything else
// is required.
type Options struct {
	Bus            transport.Bus
	Origin         string
	Files          *store.FileStore
	Layout         *store.LayoutStore
	Reloader       Reloader
	Tree           TreeRefresher
	HandshakeDelay time.Duration
}

// Engine owns the change detector, handshake coordinator, and receiver for
// one window. Stop is the aggregate teardown for all of them.
type Engine struct {
	bus    transport.Bus
	origin string
	files  *store.FileStore
	layout *store.LayoutStore

	reloader Reloader
	tree     TreeRefresher
	delay    time.Duration

	mu      sync.Mutex
	phase   phase
	pending *time.Timer
	unsubs  []func()
	stopped bool
}

// Start subscribes to both channels before announcing this window, so a
// reply to our own ready message cannot be missed, then emits the
// announcement. It never blocks.
func Start(opts Options) (*Engine, error) {
	delay := opts.HandshakeDelay
	if delay <= 0 {
		delay = defaultHandshakeDelay
	}
	e := &Engine{
		bus:      opts.Bus,
		origin:   opts.Origin,
		files:    opts.Files,
		layout:   opts.Layout,
		reloader: opts.Reloader,
		tree:     opts.Tree,
		delay:    delay,
		phase:    phaseBooting,
	}

	unsubSync, err := e.bus.Listen(transport.ChannelSyncState, e.handleSyncMessage)
	if err != nil {
		return nil, err
	}
	e.unsubs = append(e.unsubs, unsubSync)

	unsubReady, err := e.bus.Listen(transport.ChannelWindowReady, e.handleReadyMessage)
	if err != nil {
		e.Stop()
		return nil, err
	}
	e.unsubs = append(e.unsubs, unsubReady)

	e.unsubs = append(e.unsubs, e.files.Subscribe(e.onFileMutation))
	e.unsubs = append(e.unsubs, e.layout.Subscribe(e.onLayoutMutation))

	e.announce()
	return e, nil
}

// Stop tears down subscriptions and cancels the pending full-sync timer.
// Safe to call more than once.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	pending := e.pending
	unsubs := e.unsubs
	e.pending = nil
	e.unsubs = nil
	e.mu.Unlock()

	if pending != nil {
		pending.Stop()
	}
	for _, u := range unsubs {
		u()
	}
}

// schedule arms the full-sync reply timer. A newer announcement supersedes a
// pending one; the eventual broadcast carries the full state either way.
func (e *Engine) schedule(d time.Duration, fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return
	}
	if e.pending != nil {
		e.pending.Stop()
	}
	e.pending = time.AfterFunc(d, fn)
}
