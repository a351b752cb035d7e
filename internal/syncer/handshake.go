package syncer

import (
	"encoding/json"

	"github.com/korhaliv/winsync/internal/logging/events"
	"github.com/korhaliv/winsync/internal/snapshot"
	"github.com/korhaliv/winsync/internal/transport"
)

// phase tracks the handshake lifecycle. There is no exit state; the
// coordinator lives as long as the window.
type phase int

const (
	phaseBooting phase = iota
	phaseAnnounced
	phaseSteady
)

// announce publishes this window's ready message. Start has already
// attached both listeners by the time this runs.
func (e *Engine) announce() {
	e.mu.Lock()
	e.phase = phaseAnnounced
	e.mu.Unlock()

	if err := e.bus.Emit(transport.ChannelWindowReady, snapshot.Ready{Origin: e.origin}); err != nil {
		// A missed announcement is recoverable: peers still reach us
		// through their own delta broadcasts.
		events.Sync.BroadcastError("ready", err)
		return
	}
	events.Handshake.Announce(e.origin)
}

// handleReadyMessage replies to a newcomer with a delayed unconditional
// full-state broadcast. The grace delay gives the new window's listeners
// time to attach; there is no failure branch for a missed reply.
func (e *Engine) handleReadyMessage(payload []byte) {
	var ready snapshot.Ready
	if err := json.Unmarshal(payload, &ready); err != nil {
		events.Sync.Decode(transport.ChannelWindowReady, err)
		return
	}
	if ready.Origin == e.origin {
		events.Sync.SkipSelf(transport.ChannelWindowReady, ready.Origin)
		return
	}

	e.mu.Lock()
	e.phase = phaseSteady
	e.mu.Unlock()

	events.Handshake.PeerReady(ready.Origin)
	e.schedule(e.delay, func() {
		events.Handshake.FullSync(e.origin)
		e.broadcastAll()
	})
}
