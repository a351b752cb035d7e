package events

import "github.com/korhaliv/winsync/internal/logging"

type DragTracer struct{}

type DropTracer struct{}

var (
	Drag = DragTracer{}
	Drop = DropTracer{}
)

func (DragTracer) OverChat(x, y int) {
	logging.Trace("drag.over-chat", map[string]interface{}{"x": x, "y": y})
}

func (DragTracer) LeftChat(x, y int) {
	logging.Trace("drag.left-chat", map[string]interface{}{"x": x, "y": y})
}

func (DragTracer) End() {
	logging.Trace("drag.end", nil)
}

func (DropTracer) Routed(paths []string, toChat bool) {
	logging.Trace("drop.routed", map[string]interface{}{"paths": paths, "chat": toChat})
}

func (DropTracer) OpenError(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("drop.open.error", map[string]interface{}{"path": path, "error": err.Error()})
}
