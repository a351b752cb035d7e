package dragdrop

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/korhaliv/winsync/internal/logging/events"
	"github.com/korhaliv/winsync/internal/transport"
)

const defaultPollInterval = 50 * time.Millisecond

// PointerEvent is the payload of pointer-moved and drag-over messages.
type PointerEvent struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Arbiter continuously answers: if a file were dropped right now, would it
// land on the chat region? Drag events crossing the process boundary are
// delivered inconsistently, so a fixed-cadence poll re-runs the same hit
// test against the last known coordinates as the source of truth of last
// resort. Event handler and poll funnel into one recompute routine.
type Arbiter struct {
	cell    *CursorCell
	regions RegionResolver

	mu         sync.Mutex
	overChat   bool
	dragActive bool

	cancel chan struct{}
	once   sync.Once
	unsubs []func()
}

// StartArbiter subscribes to the window-local drag events and starts the
// poll ticker. The returned arbiter exposes only the verdict; it never
// mutates file or layout state.
func StartArbiter(bus transport.Bus, cell *CursorCell, regions RegionResolver, interval time.Duration) (*Arbiter, error) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	a := &Arbiter{
		cell:    cell,
		regions: regions,
		cancel:  make(chan struct{}),
	}

	for _, sub := range []struct {
		channel string
		handler transport.Handler
	}{
		{transport.ChannelPointerMoved, a.handlePointerMoved},
		{transport.ChannelDragOver, a.handleDragOver},
		{transport.ChannelDragEnd, a.handleDragEnd},
	} {
		unsub, err := bus.Listen(sub.channel, sub.handler)
		if err != nil {
			a.Stop()
			return nil, err
		}
		a.unsubs = append(a.unsubs, unsub)
	}

	go a.poll(interval)
	return a, nil
}

// Stop halts the poll ticker and removes the event subscriptions.
func (a *Arbiter) Stop() {
	a.once.Do(func() { close(a.cancel) })
	for _, u := range a.unsubs {
		u()
	}
	a.unsubs = nil
}

// OverChat reports the current verdict without recomputing.
func (a *Arbiter) OverChat() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.overChat
}

// Verdict re-derives the flag once from the last known coordinates. The
// drop router calls this when the native drop event fires, covering the
// case where no drag event arrived at all this interaction.
func (a *Arbiter) Verdict() bool {
	return a.hitTest()
}

// handlePointerMoved passively records coordinates; outside a drag the
// flag stays untouched.
func (a *Arbiter) handlePointerMoved(payload []byte) {
	var ev PointerEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return
	}
	a.cell.Set(ev.X, ev.Y)
}

// handleDragOver is the only event type that keeps firing during an
// external OS-level drag; each one updates the coordinates and recomputes.
func (a *Arbiter) handleDragOver(payload []byte) {
	var ev PointerEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return
	}
	a.cell.Set(ev.X, ev.Y)
	a.mu.Lock()
	a.dragActive = true
	a.mu.Unlock()
	a.recompute()
}

func (a *Arbiter) handleDragEnd([]byte) {
	a.mu.Lock()
	wasOver := a.overChat
	a.dragActive = false
	a.overChat = false
	a.mu.Unlock()
	if wasOver {
		events.Drag.End()
	}
}

func (a *Arbiter) poll(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-a.cancel:
			return
		case <-ticker.C:
			a.mu.Lock()
			active := a.dragActive
			a.mu.Unlock()
			if active {
				a.recompute()
			}
		}
	}
}

// recompute runs the hit test and updates the shared flag, tracing
// transitions only.
func (a *Arbiter) recompute() {
	hit := a.hitTest()
	x, y, _ := a.cell.Position()

	a.mu.Lock()
	changed := hit != a.overChat
	a.overChat = hit
	a.mu.Unlock()

	if changed {
		if hit {
			events.Drag.OverChat(x, y)
		} else {
			events.Drag.LeftChat(x, y)
		}
	}
}

func (a *Arbiter) hitTest() bool {
	x, y, ok := a.cell.Position()
	if !ok {
		return false
	}
	rect, ok := a.regions.ChatRegion()
	if !ok {
		return false
	}
	return rect.Contains(x, y)
}
