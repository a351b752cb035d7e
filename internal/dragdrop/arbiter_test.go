package dragdrop

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/korhaliv/winsync/internal/transport"
)

// chatAt returns a resolver with a chat panel occupying the right column of
// an 80x24 viewport, matching the shell's layout math.
func chatAt() *RegionIndex {
	regions := NewRegionIndex()
	regions.SetChatRegion(Rect{X: 48, Y: 0, W: 32, H: 24})
	return regions
}

func startTestArbiter(t *testing.T, bus transport.Bus, regions RegionResolver) (*Arbiter, *CursorCell) {
	t.Helper()
	cell := NewCursorCell()
	a, err := StartArbiter(bus, cell, regions, time.Hour) // poll effectively off
	if err != nil {
		t.Fatalf("start arbiter: %v", err)
	}
	t.Cleanup(a.Stop)
	return a, cell
}

func TestRectContainsIsHalfOpen(t *testing.T) {
	r := Rect{X: 10, Y: 5, W: 20, H: 10}
	for _, tc := range []struct {
		x, y int
		want bool
	}{
		{10, 5, true},
		{29, 14, true},
		{30, 14, false},
		{29, 15, false},
		{9, 5, false},
		{0, 0, false},
	} {
		if got := r.Contains(tc.x, tc.y); got != tc.want {
			t.Fatalf("Contains(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestDragOverChatRaisesFlag(t *testing.T) {
	bus := transport.NewMemory()
	a, _ := startTestArbiter(t, bus, chatAt())

	// Drag over the chat panel's center.
	if err := bus.Emit(transport.ChannelDragOver, PointerEvent{X: 64, Y: 12}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if !a.OverChat() {
		t.Fatal("expected flag raised over the chat region")
	}

	// Drag out into the editor area.
	if err := bus.Emit(transport.ChannelDragOver, PointerEvent{X: 10, Y: 12}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if a.OverChat() {
		t.Fatal("expected flag cleared outside the chat region")
	}
}

func TestDragEndForcesFlagFalse(t *testing.T) {
	bus := transport.NewMemory()
	a, _ := startTestArbiter(t, bus, chatAt())

	if err := bus.Emit(transport.ChannelDragOver, PointerEvent{X: 64, Y: 12}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if !a.OverChat() {
		t.Fatal("expected flag raised before drag end")
	}

	if err := bus.Emit(transport.ChannelDragEnd, struct{}{}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if a.OverChat() {
		t.Fatal("expected flag forced false on drag end")
	}
}

func TestPointerMovesOutsideDragLeaveFlagUntouched(t *testing.T) {
	bus := transport.NewMemory()
	a, cell := startTestArbiter(t, bus, chatAt())

	if err := bus.Emit(transport.ChannelPointerMoved, PointerEvent{X: 64, Y: 12}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if a.OverChat() {
		t.Fatal("expected pointer moves without a drag to not raise the flag")
	}
	if x, y, ok := cell.Position(); !ok || x != 64 || y != 12 {
		t.Fatalf("expected coordinates recorded, got (%d,%d,%v)", x, y, ok)
	}
}

func TestPollRecomputesAfterRegionMoves(t *testing.T) {
	bus := transport.NewMemory()
	regions := chatAt()
	cell := NewCursorCell()
	a, err := StartArbiter(bus, cell, regions, time.Millisecond)
	if err != nil {
		t.Fatalf("start arbiter: %v", err)
	}
	t.Cleanup(a.Stop)

	if err := bus.Emit(transport.ChannelDragOver, PointerEvent{X: 64, Y: 12}); err != nil {
		t.Fatalf("emit: %v", err)
	}

	// Mid-drag the chat panel closes; no further drag event arrives, only
	// the poll can notice.
	regions.ClearChatRegion()
	deadline := time.Now().Add(time.Second)
	for a.OverChat() {
		if time.Now().After(deadline) {
			t.Fatal("expected poll to clear the flag after the region vanished")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestVerdictWithoutAnyCoordinatesIsFalse(t *testing.T) {
	bus := transport.NewMemory()
	a, _ := startTestArbiter(t, bus, chatAt())
	if a.Verdict() {
		t.Fatal("expected false verdict before any pointer data")
	}
}

// recordingOpener captures every path it is asked to open and can be told to
// fail on specific ones.
type recordingOpener struct {
	mu     sync.Mutex
	opened []string
	fail   map[string]error
}

func (o *recordingOpener) OpenPath(path string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err, ok := o.fail[path]; ok {
		return err
	}
	o.opened = append(o.opened, path)
	return nil
}

func (o *recordingOpener) paths() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.opened...)
}

type recordingToasts struct {
	mu       sync.Mutex
	messages []string
}

func (s *recordingToasts) Toast(msg string) {
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
}

func TestDropOverChatLeavesEditorAlone(t *testing.T) {
	bus := transport.NewMemory()
	a, _ := startTestArbiter(t, bus, chatAt())
	opener := &recordingOpener{}
	router, err := AttachRouter(bus, a, opener, nil)
	if err != nil {
		t.Fatalf("attach router: %v", err)
	}
	t.Cleanup(router.Detach)

	// Drag over the chat panel's center, then the drop fires.
	if err := bus.Emit(transport.ChannelDragOver, PointerEvent{X: 64, Y: 12}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if err := bus.Emit(transport.ChannelFilesDropped, []string{"/tmp/image.png"}); err != nil {
		t.Fatalf("emit: %v", err)
	}

	if got := opener.paths(); len(got) != 0 {
		t.Fatalf("expected no editor opens for a chat drop, got %v", got)
	}
}

func TestDropOutsideChatOpensEveryPath(t *testing.T) {
	bus := transport.NewMemory()
	a, _ := startTestArbiter(t, bus, chatAt())
	opener := &recordingOpener{}
	router, err := AttachRouter(bus, a, opener, nil)
	if err != nil {
		t.Fatalf("attach router: %v", err)
	}
	t.Cleanup(router.Detach)

	if err := bus.Emit(transport.ChannelDragOver, PointerEvent{X: 10, Y: 12}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	dropped := []string{"/tmp/readme.md", "/tmp/main.go"}
	if err := bus.Emit(transport.ChannelFilesDropped, dropped); err != nil {
		t.Fatalf("emit: %v", err)
	}

	got := opener.paths()
	if len(got) != 2 || got[0] != dropped[0] || got[1] != dropped[1] {
		t.Fatalf("expected both paths opened in order, got %v", got)
	}
	if filepath.Base(got[0]) != "readme.md" {
		t.Fatalf("unexpected first path %q", got[0])
	}
}

func TestDropAfterLeavingChatRoutesToEditor(t *testing.T) {
	bus := transport.NewMemory()
	a, _ := startTestArbiter(t, bus, chatAt())
	opener := &recordingOpener{}
	router, err := AttachRouter(bus, a, opener, nil)
	if err != nil {
		t.Fatalf("attach router: %v", err)
	}
	t.Cleanup(router.Detach)

	// The drag passed over chat but ended elsewhere before the drop; the
	// verdict re-derives from the final coordinates.
	if err := bus.Emit(transport.ChannelDragOver, PointerEvent{X: 64, Y: 12}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if err := bus.Emit(transport.ChannelDragOver, PointerEvent{X: 5, Y: 5}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if err := bus.Emit(transport.ChannelFilesDropped, []string{"/tmp/a.txt"}); err != nil {
		t.Fatalf("emit: %v", err)
	}

	if got := opener.paths(); len(got) != 1 {
		t.Fatalf("expected editor open, got %v", got)
	}
}

func TestRouterSkipsFailedPathAndKeepsGoing(t *testing.T) {
	bus := transport.NewMemory()
	a, _ := startTestArbiter(t, bus, chatAt())
	opener := &recordingOpener{fail: map[string]error{"/tmp/locked.bin": errors.New("permission denied")}}
	toasts := &recordingToasts{}
	router, err := AttachRouter(bus, a, opener, toasts)
	if err != nil {
		t.Fatalf("attach router: %v", err)
	}
	t.Cleanup(router.Detach)

	router.Route([]string{"/tmp/locked.bin", "/tmp/fine.txt"})

	if got := opener.paths(); len(got) != 1 || got[0] != "/tmp/fine.txt" {
		t.Fatalf("expected the failing path skipped, got %v", got)
	}
	toasts.mu.Lock()
	defer toasts.mu.Unlock()
	if len(toasts.messages) != 1 {
		t.Fatalf("expected one toast, got %v", toasts.messages)
	}
}
