package editor

import "sync"

// Notifier bridges the controller's deferred rebuild callback to the running
// program. The callback fires on a timer goroutine before the tea.Program
// exists, so the target is set late and guarded.
type Notifier struct {
	mu sync.Mutex
	fn func()
}

// Set installs the notification target (typically program.Send).
func (n *Notifier) Set(fn func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.fn = fn
}

func (n *Notifier) call() {
	n.mu.Lock()
	fn := n.fn
	n.mu.Unlock()

	if fn != nil {
		fn()
	}
}
