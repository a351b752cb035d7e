package ui

// Notifier is the toast sink handed to the drop router and other
// collaborators; the model drains it into the status line.
type Notifier struct {
	ch chan string
}

func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan string, 8)}
}

// Toast queues a short notice. Never blocks; when the queue is full the
// notice is dropped, a toast is not worth stalling a handler for.
func (n *Notifier) Toast(message string) {
	select {
	case n.ch <- message:
	default:
	}
}
