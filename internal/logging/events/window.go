package events

import "github.com/korhaliv/winsync/internal/logging"

type WindowTracer struct{}

var Window = WindowTracer{}

func (WindowTracer) FileOpened(id, path, language string) {
	logging.Trace("window.file.open", map[string]interface{}{"id": id, "path": path, "language": language})
}

func (WindowTracer) FileClosed(id string) {
	logging.Trace("window.file.close", map[string]interface{}{"id": id})
}

func (WindowTracer) PaneSplit(direction, source, created string) {
	logging.Trace("window.pane.split", map[string]interface{}{"direction": direction, "source": source, "created": created})
}

func (WindowTracer) PaneClosed(id string) {
	logging.Trace("window.pane.close", map[string]interface{}{"id": id})
}

func (WindowTracer) LastPaneRetained(id string) {
	logging.Trace("window.pane.close.refused", map[string]interface{}{"id": id})
}

func (WindowTracer) PaneResized(id string, size float64) {
	logging.Trace("window.pane.resize", map[string]interface{}{"id": id, "size": size})
}

func (WindowTracer) TransportDegraded(reason string) {
	logging.Trace("window.transport.degraded", map[string]interface{}{"reason": reason})
}
