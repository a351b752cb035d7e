package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/korhaliv/winsync/internal/logging/events"
)

// Pane is one rectangular region of the split layout. Sizes are percentages
// relative to siblings in the flat list and always sum to 100.
type Pane struct {
	ID       string  `json:"id"`
	FileID   string  `json:"fileId,omitempty"`
	Size     float64 `json:"size"`
	Position int     `json:"position"`
}

// SplitDirection tags how a split was requested. The flat pane list keeps
// sizes only; direction matters to the renderer, not to the arithmetic.
type SplitDirection string

const (
	SplitHorizontal SplitDirection = "horizontal"
	SplitVertical   SplitDirection = "vertical"
)

// LayoutView is a point-in-time copy of the layout store's state.
type LayoutView struct {
	Panes        []Pane
	ActivePaneID string
	ChatOpen     bool
	TerminalOpen bool
}

type LayoutSubscriber func(prev, next LayoutView)

// LayoutStore holds the pane split layout and panel visibility.
type LayoutStore struct {
	mu      sync.Mutex
	view    LayoutView
	subs    []layoutSub
	nextSub int
}

type layoutSub struct {
	id int
	fn LayoutSubscriber
}

// NewLayoutStore starts with a single full-size pane; the invariant that at
// least one pane exists holds from the first instant.
func NewLayoutStore() *LayoutStore {
	root := Pane{ID: "pane-1", Size: 100, Position: 0}
	return &LayoutStore{view: LayoutView{Panes: []Pane{root}, ActivePaneID: root.ID}}
}

func (s *LayoutStore) Subscribe(fn LayoutSubscriber) func() {
	s.mu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, layoutSub{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *LayoutStore) View() LayoutView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneLayoutView(s.view)
}

func (s *LayoutStore) mutate(fn func(*LayoutView)) {
	s.mu.Lock()
	prev := cloneLayoutView(s.view)
	fn(&s.view)
	next := cloneLayoutView(s.view)
	subs := append([]layoutSub(nil), s.subs...)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(prev, next)
	}
}

// SplitPane halves the target pane and inserts the new pane right after it.
// The new pane becomes active. Returns the new pane's ID, or an error when
// the target does not exist.
func (s *LayoutStore) SplitPane(direction SplitDirection, paneID string) (string, error) {
	newID := "pane-" + uuid.NewString()[:8]
	var splitErr error
	s.mutate(func(v *LayoutView) {
		idx := -1
		for i, p := range v.Panes {
			if p.ID == paneID {
				idx = i
				break
			}
		}
		if idx < 0 {
			splitErr = fmt.Errorf("split pane: no pane %q", paneID)
			return
		}
		half := v.Panes[idx].Size / 2
		v.Panes[idx].Size = half
		created := Pane{ID: newID, Size: half}
		v.Panes = append(v.Panes[:idx+1], append([]Pane{created}, v.Panes[idx+1:]...)...)
		reindex(v.Panes)
		normalize(v.Panes)
		v.ActivePaneID = newID
	})
	if splitErr != nil {
		return "", splitErr
	}
	events.Window.PaneSplit(string(direction), paneID, newID)
	return newID, nil
}

// ClosePane removes a pane and spreads its size equally across every
// remaining pane. Closing the last pane is refused with a logged warning
// rather than an error: the caller's state stays valid either way.
func (s *LayoutStore) ClosePane(paneID string) {
	refused := false
	s.mutate(func(v *LayoutView) {
		if len(v.Panes) <= 1 {
			refused = true
			return
		}
		idx := -1
		for i, p := range v.Panes {
			if p.ID == paneID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return
		}
		freed := v.Panes[idx].Size
		v.Panes = append(v.Panes[:idx:idx], v.Panes[idx+1:]...)
		share := freed / float64(len(v.Panes))
		for i := range v.Panes {
			v.Panes[i].Size += share
		}
		reindex(v.Panes)
		normalize(v.Panes)
		if v.ActivePaneID == paneID {
			v.ActivePaneID = v.Panes[0].ID
		}
	})
	if refused {
		events.Window.LastPaneRetained(paneID)
		return
	}
	events.Window.PaneClosed(paneID)
}

// ResizePane sets the target pane's share, clamped to 10–90, and scales the
// other panes proportionally so the list still sums to 100.
func (s *LayoutStore) ResizePane(paneID string, size float64) {
	if size < 10 {
		size = 10
	}
	if size > 90 {
		size = 90
	}
	s.mutate(func(v *LayoutView) {
		if len(v.Panes) < 2 {
			return
		}
		idx := -1
		rest := 0.0
		for i, p := range v.Panes {
			if p.ID == paneID {
				idx = i
			} else {
				rest += p.Size
			}
		}
		if idx < 0 {
			return
		}
		v.Panes[idx].Size = size
		remaining := 100 - size
		for i := range v.Panes {
			if i == idx {
				continue
			}
			if rest > 0 {
				v.Panes[i].Size = v.Panes[i].Size / rest * remaining
			} else {
				v.Panes[i].Size = remaining / float64(len(v.Panes)-1)
			}
		}
		normalize(v.Panes)
	})
	events.Window.PaneResized(paneID, size)
}

func (s *LayoutStore) SetActivePane(paneID string) {
	s.mutate(func(v *LayoutView) {
		for _, p := range v.Panes {
			if p.ID == paneID {
				v.ActivePaneID = paneID
				return
			}
		}
	})
}

// AssignFile points a pane at a file tab.
func (s *LayoutStore) AssignFile(paneID, fileID string) {
	s.mutate(func(v *LayoutView) {
		for i := range v.Panes {
			if v.Panes[i].ID == paneID {
				v.Panes[i].FileID = fileID
				return
			}
		}
	})
}

func (s *LayoutStore) ToggleChat() {
	s.mutate(func(v *LayoutView) { v.ChatOpen = !v.ChatOpen })
}

func (s *LayoutStore) ToggleTerminal() {
	s.mutate(func(v *LayoutView) { v.TerminalOpen = !v.TerminalOpen })
}

// ApplySnapshot overwrites the replicated fields with a remote snapshot.
// An empty incoming pane list is ignored so the local invariant of at least
// one pane survives a malformed message.
func (s *LayoutStore) ApplySnapshot(panes []Pane, activePaneID string, chatOpen, terminalOpen bool) {
	s.mutate(func(v *LayoutView) {
		if len(panes) > 0 {
			v.Panes = append([]Pane(nil), panes...)
			normalize(v.Panes)
		}
		if activePaneID != "" {
			v.ActivePaneID = activePaneID
		}
		v.ChatOpen = chatOpen
		v.TerminalOpen = terminalOpen
	})
}

// normalize rescales sizes so they sum to 100. A degenerate all-zero list
// falls back to equal shares.
func normalize(panes []Pane) {
	if len(panes) == 0 {
		return
	}
	sum := 0.0
	for _, p := range panes {
		sum += p.Size
	}
	if sum <= 0 {
		share := 100 / float64(len(panes))
		for i := range panes {
			panes[i].Size = share
		}
		return
	}
	for i := range panes {
		panes[i].Size = panes[i].Size / sum * 100
	}
}

func reindex(panes []Pane) {
	for i := range panes {
		panes[i].Position = i
	}
}

func cloneLayoutView(v LayoutView) LayoutView {
	dup := v
	dup.Panes = append([]Pane(nil), v.Panes...)
	return dup
}
