// Package transport adapts the cross-window publish/subscribe bus. Windows
// are separate processes; the only thing they share is this bus.
package transport

import (
	"hash/fnv"
	"os"

	"github.com/google/uuid"
	"github.com/korhaliv/winsync/internal/logging"
	"github.com/korhaliv/winsync/internal/logging/events"
)

// Channel names understood by every window process.
const (
	ChannelSyncState   = "sync-state"
	ChannelWindowReady = "window-ready"

	// Host shell window events, delivered on the window-local bus.
	ChannelPointerMoved = "pointer-moved"
	ChannelDragOver     = "drag-over"
	ChannelDragEnd      = "drag-end"
	ChannelFilesDropped = "files-dropped"
)

const envWindowLabel = "WINSYNC_WINDOW_LABEL"

// Handler receives the raw JSON payload of a bus message.
type Handler func(payload []byte)

// Bus is the pub/sub contract shared by the Redis bridge, the in-process
// hub, and the no-op fallback. Listen returns a teardown that removes the
// subscription; Emit is fire-and-forget from the caller's point of view.
type Bus interface {
	Listen(channel string, handler Handler) (func(), error)
	Emit(channel string, payload any) error
	Close() error
}

// WindowLabel resolves this process's stable window identity: the label the
// host shell exported, or a generated one that lives for the process.
func WindowLabel(configured string) string {
	if configured != "" {
		return configured
	}
	if v := os.Getenv(envWindowLabel); v != "" {
		return v
	}
	return "win-" + uuid.NewString()[:8]
}

// Namespace derives a stable channel prefix from the project root so that
// windows on different projects sharing one Redis never cross-talk.
func Namespace(root string) string {
	h := fnv.New32a()
	h.Write([]byte(root))
	return "winsync:" + uuid.NewSHA1(uuid.NameSpaceURL, h.Sum(nil)).String()[:8]
}

// Connect returns the cross-window bus for the given Redis address. An empty
// address or an unreachable Redis degrades to the no-op bus; boot never
// fails on transport problems.
func Connect(addr, namespace string) Bus {
	if addr == "" {
		events.Window.TransportDegraded("no redis address configured")
		return Noop()
	}
	bus, err := ConnectRedis(addr, namespace)
	if err != nil {
		logging.Error(err)
		events.Window.TransportDegraded(err.Error())
		return Noop()
	}
	return bus
}

type noopBus struct{}

// Noop returns a bus whose subscriptions never fire and whose emits are
// discarded. Used when the window runs outside the multi-window shell.
func Noop() Bus { return noopBus{} }

func (noopBus) Listen(string, Handler) (func(), error) { return func() {}, nil }
func (noopBus) Emit(string, any) error                 { return nil }
func (noopBus) Close() error                           { return nil }

// dispatch invokes a handler, keeping panics out of the delivery loop.
func dispatch(channel string, handler Handler, payload []byte) {
	defer func() {
		if r := recover(); r != nil {
			events.Sync.HandlerPanic(channel, r)
		}
	}()
	handler(payload)
}
