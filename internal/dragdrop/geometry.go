// Package dragdrop decides, while an external drag is in flight, whether a
// drop would land on the chat-attachment region or the editor. The native
// files-dropped event carries no coordinates, so the verdict has to be
// derived continuously from the last known cursor position.
package dragdrop

import "sync"

// Rect is a viewport-space rectangle.
type Rect struct {
	X, Y int
	W, H int
}

// Contains reports whether the point lies inside the rectangle.
// The rectangle spans [X, X+W) x [Y, Y+H).
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// RegionResolver answers where the chat-attachment region currently is.
// The second result is false while the chat panel is closed.
type RegionResolver interface {
	ChatRegion() (Rect, bool)
}

// RegionIndex is the RegionResolver handed to the arbiter; the UI layer
// updates it whenever the layout or the viewport changes.
type RegionIndex struct {
	mu   sync.Mutex
	chat Rect
	set  bool
}

func NewRegionIndex() *RegionIndex {
	return &RegionIndex{}
}

func (r *RegionIndex) SetChatRegion(rect Rect) {
	r.mu.Lock()
	r.chat = rect
	r.set = true
	r.mu.Unlock()
}

func (r *RegionIndex) ClearChatRegion() {
	r.mu.Lock()
	r.set = false
	r.mu.Unlock()
}

func (r *RegionIndex) ChatRegion() (Rect, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.chat, r.set
}
