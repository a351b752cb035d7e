package snapshot

import (
	"encoding/json"
	"testing"

	"github.com/korhaliv/winsync/internal/store"
)

func TestForFilesZeroesEveryContent(t *testing.T) {
	view := store.FileView{
		OpenedFiles: []store.OpenFile{
			{ID: "f1", Path: "/p/a.go", Content: "package a"},
			{ID: "f2", Path: "/p/b.go", Content: "package b", IsDirty: true},
		},
		ActiveFileID: "f2",
		RootPath:     "/p",
	}

	payload := ForFiles(view)
	for i, f := range payload.OpenedFiles {
		if f.Content != "" {
			t.Fatalf("entry %d: expected empty content, got %q", i, f.Content)
		}
	}
	if !payload.OpenedFiles[1].IsDirty {
		t.Fatal("expected dirty flag to survive stripping")
	}
	if payload.ActiveFileID != "f2" || payload.RootPath != "/p" {
		t.Fatalf("unexpected payload identity fields: %+v", payload)
	}

	// The builder must not touch the caller's view.
	if view.OpenedFiles[0].Content != "package a" {
		t.Fatal("expected source view untouched")
	}
}

func TestForFilesStripsContentOnTheWire(t *testing.T) {
	view := store.FileView{
		OpenedFiles: []store.OpenFile{{ID: "f1", Path: "/p/a.go", Content: "secret"}},
	}
	msg, err := Envelope("win-a", StoreFile, ForFiles(view))
	if err != nil {
		t.Fatalf("envelope: %v", err)
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Message
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	var state FilePayload
	if err := json.Unmarshal(decoded.State, &state); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if state.OpenedFiles[0].Content != "" {
		t.Fatalf("content leaked onto the wire: %q", state.OpenedFiles[0].Content)
	}
	if decoded.Origin != "win-a" || decoded.Store != StoreFile {
		t.Fatalf("unexpected envelope: %+v", decoded)
	}
}

func TestForLayoutCopiesPanes(t *testing.T) {
	view := store.LayoutView{
		Panes:        []store.Pane{{ID: "pane-1", Size: 60}, {ID: "pane-2", Size: 40}},
		ActivePaneID: "pane-2",
		ChatOpen:     true,
	}
	payload := ForLayout(view)
	payload.Panes[0].Size = 1

	if view.Panes[0].Size != 60 {
		t.Fatal("expected source view untouched")
	}
	if !payload.ChatOpen || payload.ActivePaneID != "pane-2" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}
