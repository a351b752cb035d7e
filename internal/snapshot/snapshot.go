// Package snapshot builds the minimal, wire-safe state subsets that travel
// between windows. Builders are pure: they never touch the stores, only the
// views handed to them.
package snapshot

import (
	"encoding/json"

	"github.com/korhaliv/winsync/internal/store"
)

// Store names carried in sync messages.
const (
	StoreFile   = "file"
	StoreLayout = "layout"
)

// Message is the envelope on the sync-state channel. Origin is the emitting
// window's label; receivers drop their own messages by comparing it.
type Message struct {
	Origin string          `json:"origin"`
	Store  string          `json:"store"`
	State  json.RawMessage `json:"state"`
}

// Ready is the envelope on the window-ready channel, sent once at boot.
type Ready struct {
	Origin string `json:"origin"`
}

// FilePayload is the replicated subset of the file store. File content is
// always zeroed before transmission: receivers reload from disk by path.
type FilePayload struct {
	OpenedFiles  []store.OpenFile `json:"openedFiles"`
	ActiveFileID string           `json:"activeFileId"`
	RootPath     string           `json:"rootPath"`
}

// LayoutPayload is the replicated subset of the layout store.
type LayoutPayload struct {
	Panes        []store.Pane `json:"panes"`
	ActivePaneID string       `json:"activePaneId"`
	ChatOpen     bool         `json:"isChatOpen"`
	TerminalOpen bool         `json:"isTerminalOpen"`
}

// ForFiles strips content (and the dirty edit it may represent stays local;
// the flag itself is replicated) from every open file.
func ForFiles(v store.FileView) FilePayload {
	files := make([]store.OpenFile, len(v.OpenedFiles))
	for i, f := range v.OpenedFiles {
		f.Content = ""
		files[i] = f
	}
	return FilePayload{
		OpenedFiles:  files,
		ActiveFileID: v.ActiveFileID,
		RootPath:     v.RootPath,
	}
}

// ForLayout copies the replicated layout fields.
func ForLayout(v store.LayoutView) LayoutPayload {
	return LayoutPayload{
		Panes:        append([]store.Pane(nil), v.Panes...),
		ActivePaneID: v.ActivePaneID,
		ChatOpen:     v.ChatOpen,
		TerminalOpen: v.TerminalOpen,
	}
}

// Envelope wraps a payload into a Message for the given origin.
func Envelope(origin, storeName string, payload any) (Message, error) {
	state, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Origin: origin, Store: storeName, State: state}, nil
}
