package events

import (
	"fmt"

	"github.com/korhaliv/winsync/internal/logging"
)

type SyncTracer struct{}

type HandshakeTracer struct{}

var (
	Sync      = SyncTracer{}
	Handshake = HandshakeTracer{}
)

func (SyncTracer) Broadcast(store string, origin string) {
	logging.Trace("sync.broadcast", map[string]interface{}{"store": store, "origin": origin})
}

func (SyncTracer) BroadcastError(store string, err error) {
	if err == nil {
		return
	}
	logging.Trace("sync.broadcast.error", map[string]interface{}{"store": store, "error": err.Error()})
}

func (SyncTracer) Receive(store string, origin string) {
	logging.Trace("sync.receive", map[string]interface{}{"store": store, "origin": origin})
}

func (SyncTracer) SkipSelf(channel string, origin string) {
	logging.Trace("sync.skip-self", map[string]interface{}{"channel": channel, "origin": origin})
}

func (SyncTracer) Decode(channel string, err error) {
	if err == nil {
		return
	}
	logging.Trace("sync.decode.error", map[string]interface{}{"channel": channel, "error": err.Error()})
}

func (SyncTracer) Reload(fileID string, path string) {
	logging.Trace("sync.reload", map[string]interface{}{"file": fileID, "path": path})
}

func (SyncTracer) ReloadError(fileID string, err error) {
	if err == nil {
		return
	}
	logging.Trace("sync.reload.error", map[string]interface{}{"file": fileID, "error": err.Error()})
}

func (SyncTracer) TreeRefresh(root string) {
	logging.Trace("sync.tree-refresh", map[string]interface{}{"root": root})
}

func (SyncTracer) HandlerPanic(channel string, recovered interface{}) {
	logging.Trace("sync.handler.panic", map[string]interface{}{"channel": channel, "panic": fmt.Sprintf("%v", recovered)})
}

func (HandshakeTracer) Announce(origin string) {
	logging.Trace("handshake.announce", map[string]interface{}{"origin": origin})
}

func (HandshakeTracer) PeerReady(origin string) {
	logging.Trace("handshake.peer-ready", map[string]interface{}{"origin": origin})
}

func (HandshakeTracer) FullSync(origin string) {
	logging.Trace("handshake.full-sync", map[string]interface{}{"origin": origin})
}
