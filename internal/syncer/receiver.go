package syncer

import (
	"encoding/json"

	"github.com/korhaliv/winsync/internal/logging/events"
	"github.com/korhaliv/winsync/internal/snapshot"
	"github.com/korhaliv/winsync/internal/transport"
)

// handleSyncMessage applies a remote snapshot to the local stores. Messages
// from this window's own origin are dropped; that, plus the change
// detector's value comparison, is what keeps two windows from echoing each
// other forever.
func (e *Engine) handleSyncMessage(payload []byte) {
	var msg snapshot.Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		events.Sync.Decode(transport.ChannelSyncState, err)
		return
	}
	if msg.Origin == e.origin {
		events.Sync.SkipSelf(transport.ChannelSyncState, msg.Origin)
		return
	}

	switch msg.Store {
	case snapshot.StoreFile:
		e.mergeFiles(msg)
	case snapshot.StoreLayout:
		e.mergeLayout(msg)
	default:
		events.Sync.Decode(transport.ChannelSyncState, errUnknownStore(msg.Store))
	}
}

func (e *Engine) mergeFiles(msg snapshot.Message) {
	var state snapshot.FilePayload
	if err := json.Unmarshal(msg.State, &state); err != nil {
		events.Sync.Decode(transport.ChannelSyncState, err)
		return
	}

	prevRoot := e.files.View().RootPath
	e.files.ApplySnapshot(state.OpenedFiles, state.ActiveFileID, state.RootPath)
	events.Sync.Receive(snapshot.StoreFile, msg.Origin)

	// Content never travels with the snapshot; reconcile from disk every
	// entry that still lacks content after the merge and has a path.
	if e.reloader != nil {
		for _, f := range e.files.View().OpenedFiles {
			if f.Content == "" && f.Path != "" {
				events.Sync.Reload(f.ID, f.Path)
				go e.reloader.Reload(f.ID, f.Path)
			}
		}
	}

	if e.tree != nil && state.RootPath != "" && state.RootPath != prevRoot {
		events.Sync.TreeRefresh(state.RootPath)
		go e.tree.Refresh(state.RootPath)
	}
}

func (e *Engine) mergeLayout(msg snapshot.Message) {
	var state snapshot.LayoutPayload
	if err := json.Unmarshal(msg.State, &state); err != nil {
		events.Sync.Decode(transport.ChannelSyncState, err)
		return
	}
	e.layout.ApplySnapshot(state.Panes, state.ActivePaneID, state.ChatOpen, state.TerminalOpen)
	events.Sync.Receive(snapshot.StoreLayout, msg.Origin)
}

type errUnknownStore string

func (e errUnknownStore) Error() string { return "unknown store in sync message: " + string(e) }
