package syncer

import (
	"github.com/korhaliv/winsync/internal/logging/events"
	"github.com/korhaliv/winsync/internal/snapshot"
	"github.com/korhaliv/winsync/internal/store"
	"github.com/korhaliv/winsync/internal/transport"
)

// The change detector broadcasts only when a field on the per-store
// allowlist changes. Content edits mutate the store on every keystroke;
// broadcasting those would flood the bus, so content travels lazily via
// reconciliation instead.

func fileFieldsChanged(prev, next store.FileView) bool {
	return prev.ActiveFileID != next.ActiveFileID ||
		prev.RootPath != next.RootPath ||
		len(prev.OpenedFiles) != len(next.OpenedFiles)
}

func layoutFieldsChanged(prev, next store.LayoutView) bool {
	return prev.ActivePaneID != next.ActivePaneID ||
		prev.ChatOpen != next.ChatOpen ||
		prev.TerminalOpen != next.TerminalOpen ||
		len(prev.Panes) != len(next.Panes)
}

func (e *Engine) onFileMutation(prev, next store.FileView) {
	if !fileFieldsChanged(prev, next) {
		return
	}
	e.broadcastFiles(next)
}

func (e *Engine) onLayoutMutation(prev, next store.LayoutView) {
	if !layoutFieldsChanged(prev, next) {
		return
	}
	e.broadcastLayout(next)
}

// broadcastFiles emits the file snapshot fire-and-forget; a failed emit is
// traced and swallowed so the local mutation is never affected.
func (e *Engine) broadcastFiles(v store.FileView) {
	msg, err := snapshot.Envelope(e.origin, snapshot.StoreFile, snapshot.ForFiles(v))
	if err != nil {
		events.Sync.BroadcastError(snapshot.StoreFile, err)
		return
	}
	if err := e.bus.Emit(transport.ChannelSyncState, msg); err != nil {
		events.Sync.BroadcastError(snapshot.StoreFile, err)
		return
	}
	events.Sync.Broadcast(snapshot.StoreFile, e.origin)
}

func (e *Engine) broadcastLayout(v store.LayoutView) {
	msg, err := snapshot.Envelope(e.origin, snapshot.StoreLayout, snapshot.ForLayout(v))
	if err != nil {
		events.Sync.BroadcastError(snapshot.StoreLayout, err)
		return
	}
	if err := e.bus.Emit(transport.ChannelSyncState, msg); err != nil {
		events.Sync.BroadcastError(snapshot.StoreLayout, err)
		return
	}
	events.Sync.Broadcast(snapshot.StoreLayout, e.origin)
}

// broadcastAll bypasses the allowlist: the handshake reply must carry the
// full picture whether or not anything changed recently.
func (e *Engine) broadcastAll() {
	e.broadcastFiles(e.files.View())
	e.broadcastLayout(e.layout.View())
}
