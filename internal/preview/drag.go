package preview

import (
	"sync"
	"time"
)

// PointerEventType is the press/move/release vocabulary of the injected
// pointer event source.
type PointerEventType int

const (
	PointerDown PointerEventType = iota
	PointerMove
	PointerUp
	PointerLeave
)

// PointerEvent is one pointer gesture step on the editor's surface.
type PointerEvent struct {
	Type PointerEventType
}

// DragState is the tracker's current phase.
type DragState int

const (
	DragIdle DragState = iota
	Dragging
)

// Tracker is the drag state machine. While a drag is in progress, selection
// changes fire continuously and rebuilding on each one makes widgets flicker
// as they hide and reveal; the tracker suppresses those rebuilds and fires
// onSettle exactly once, a short delay after the drag ends, so the selection
// model has settled before recomputation.
//
// Each view owns its own tracker; sharing one across views leaves a pending
// settle from one view firing against another's state.
type Tracker struct {
	settle time.Duration
	state  DragState
	timer  *time.Timer
	mu     sync.Mutex

	// Callback invoked once the post-drag settle delay elapses.
	onSettle func()
}

// NewTracker creates a tracker with the given settle delay.
func NewTracker(settle time.Duration, onSettle func()) *Tracker {
	return &Tracker{
		settle:   settle,
		onSettle: onSettle,
	}
}

// Dragging reports whether a drag is in progress.
func (t *Tracker) Dragging() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == Dragging
}

// Handle feeds one pointer event through the state machine. A pointer-leave
// while dragging counts as an implicit drag end, so drags that exit the
// surface cannot leave the tracker stuck.
func (t *Tracker) Handle(ev PointerEvent) {
	switch ev.Type {
	case PointerDown:
		t.begin()
	case PointerUp:
		t.end()
	case PointerLeave:
		t.end()
	case PointerMove:
		// Motion never changes phase.
	}
}

func (t *Tracker) begin() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = Dragging

	// A new drag supersedes any settle still pending from the last one.
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Tracker) end() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != Dragging {
		return
	}
	t.state = DragIdle

	// Single slot: scheduling replaces any prior pending settle.
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.settle, t.fire)
}

func (t *Tracker) fire() {
	t.mu.Lock()
	t.timer = nil
	fn := t.onSettle
	t.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Stop cancels any pending settle callback.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
