package dragdrop

import (
	"encoding/json"
	"fmt"

	"github.com/korhaliv/winsync/internal/logging"
	"github.com/korhaliv/winsync/internal/logging/events"
	"github.com/korhaliv/winsync/internal/transport"
)

// Opener turns an absolute path into an open editor tab.
type Opener interface {
	OpenPath(path string) error
}

// ToastSink surfaces a short user-visible notice. Optional.
type ToastSink interface {
	Toast(message string)
}

// Router consumes the native files-dropped event and dispatches on the
// arbiter's verdict. When the drop targets chat, the router stays out of
// the way: the chat attachment collaborator listens on the same event.
type Router struct {
	arbiter *Arbiter
	opener  Opener
	toasts  ToastSink
	unsub   func()
}

// AttachRouter subscribes the router to the files-dropped channel.
func AttachRouter(bus transport.Bus, arbiter *Arbiter, opener Opener, toasts ToastSink) (*Router, error) {
	r := &Router{arbiter: arbiter, opener: opener, toasts: toasts}
	unsub, err := bus.Listen(transport.ChannelFilesDropped, r.handleDrop)
	if err != nil {
		return nil, err
	}
	r.unsub = unsub
	return r, nil
}

func (r *Router) Detach() {
	if r.unsub != nil {
		r.unsub()
		r.unsub = nil
	}
}

func (r *Router) handleDrop(payload []byte) {
	var paths []string
	if err := json.Unmarshal(payload, &paths); err != nil {
		events.Sync.Decode(transport.ChannelFilesDropped, err)
		return
	}
	r.Route(paths)
}

// Route opens each dropped path in sequence unless the verdict says the
// drop belongs to chat. Per-path failures are logged, toasted, and skipped;
// the remaining paths still open.
func (r *Router) Route(paths []string) {
	toChat := r.arbiter.Verdict()
	events.Drop.Routed(paths, toChat)
	if toChat {
		return
	}
	for _, path := range paths {
		if err := r.opener.OpenPath(path); err != nil {
			events.Drop.OpenError(path, err)
			logging.Error(fmt.Errorf("open dropped file %s: %w", path, err))
			if r.toasts != nil {
				r.toasts.Toast(fmt.Sprintf("Could not open %s", path))
			}
		}
	}
}
