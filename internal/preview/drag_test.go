package preview

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSettle = 20 * time.Millisecond

func TestTracker_DownStartsDrag(t *testing.T) {
	tr := NewTracker(testSettle, nil)
	require.False(t, tr.Dragging())

	tr.Handle(PointerEvent{Type: PointerDown})
	require.True(t, tr.Dragging())

	tr.Handle(PointerEvent{Type: PointerMove})
	require.True(t, tr.Dragging())
}

func TestTracker_UpSchedulesOneSettle(t *testing.T) {
	var fired atomic.Int32
	tr := NewTracker(testSettle, func() { fired.Add(1) })

	tr.Handle(PointerEvent{Type: PointerDown})
	tr.Handle(PointerEvent{Type: PointerUp})
	require.False(t, tr.Dragging())

	// Nothing fires before the settle delay elapses.
	require.Equal(t, int32(0), fired.Load())

	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)

	// And nothing more after.
	time.Sleep(3 * testSettle)
	require.Equal(t, int32(1), fired.Load())
}

func TestTracker_LeaveIsImplicitEnd(t *testing.T) {
	var fired atomic.Int32
	tr := NewTracker(testSettle, func() { fired.Add(1) })

	tr.Handle(PointerEvent{Type: PointerDown})
	tr.Handle(PointerEvent{Type: PointerLeave})
	require.False(t, tr.Dragging())

	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)
}

func TestTracker_UpWithoutDownIsNoop(t *testing.T) {
	var fired atomic.Int32
	tr := NewTracker(testSettle, func() { fired.Add(1) })

	tr.Handle(PointerEvent{Type: PointerUp})
	tr.Handle(PointerEvent{Type: PointerLeave})

	time.Sleep(3 * testSettle)
	require.Equal(t, int32(0), fired.Load())
}

func TestTracker_NewDragCancelsPendingSettle(t *testing.T) {
	var fired atomic.Int32
	tr := NewTracker(testSettle, func() { fired.Add(1) })

	tr.Handle(PointerEvent{Type: PointerDown})
	tr.Handle(PointerEvent{Type: PointerUp})
	tr.Handle(PointerEvent{Type: PointerDown})

	time.Sleep(3 * testSettle)
	require.Equal(t, int32(0), fired.Load(), "pending settle must be superseded by the new drag")

	tr.Handle(PointerEvent{Type: PointerUp})
	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)
}

func TestTracker_StopCancelsPendingSettle(t *testing.T) {
	var fired atomic.Int32
	tr := NewTracker(testSettle, func() { fired.Add(1) })

	tr.Handle(PointerEvent{Type: PointerDown})
	tr.Handle(PointerEvent{Type: PointerUp})
	tr.Stop()

	time.Sleep(3 * testSettle)
	require.Equal(t, int32(0), fired.Load())
}
