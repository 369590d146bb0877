package preview

import (
	"context"
	"sync"
	"time"

	"github.com/shg8/silverbullet/internal/document"
	"github.com/shg8/silverbullet/internal/log"
	"github.com/shg8/silverbullet/internal/mathtree"
	"github.com/shg8/silverbullet/internal/pubsub"
	"github.com/shg8/silverbullet/internal/typeset"
)

// Options wires a Controller to its collaborators.
type Options struct {
	Typesetter typeset.Typesetter
	Document   *document.Document
	Tree       *mathtree.Tree
	Visible    []Range
	Selection  SelectionState

	// Pointer is the press/move/release event source scoped to the editor's
	// interactive surface. Optional; the host can also call HandlePointer
	// directly from its own event loop.
	Pointer *pubsub.Broker[PointerEvent]

	// Intents receives an EditIntent each time a widget is activated.
	Intents *pubsub.Broker[EditIntent]

	// SettleDelay is how long after drag end the deferred rebuild waits for
	// the selection model to settle.
	SettleDelay time.Duration

	// CacheTTL bounds the widget markup cache.
	CacheTTL time.Duration

	// OnRebuild, when set, is called after every rebuild so the host can
	// schedule a repaint. Called without internal locks held.
	OnRebuild func()
}

// Controller owns one decoration set for one editor view. It rebuilds the
// set on construction and whenever the document, the visible ranges, or the
// tree change, and on selection changes while no drag is in progress.
// Selection churn during a drag is absorbed by the tracker, which triggers
// the one deferred rebuild after the drag settles.
//
// Controllers are not shared between views. Each carries its own tracker
// and its own pending settle timer.
type Controller struct {
	mu sync.Mutex

	builder *Builder
	tracker *Tracker

	doc         *document.Document
	tree        *mathtree.Tree
	treeVersion uint64
	visible     []Range
	sel         SelectionState

	set *DecorationSet

	intents   *pubsub.Broker[EditIntent]
	onRebuild func()

	cancelPointer context.CancelFunc
	disposed      bool
}

// NewController builds the initial decoration set and, when a pointer source
// is supplied, registers for its events. Dispose releases everything again.
func NewController(opts Options) *Controller {
	c := &Controller{
		builder:   NewBuilder(opts.Typesetter, opts.CacheTTL),
		doc:       opts.Document,
		tree:      opts.Tree,
		visible:   opts.Visible,
		sel:       opts.Selection,
		intents:   opts.Intents,
		onRebuild: opts.OnRebuild,
	}
	if c.tree != nil {
		c.treeVersion = c.tree.Version()
	}
	c.tracker = NewTracker(opts.SettleDelay, c.dragSettled)

	if opts.Pointer != nil {
		ctx, cancel := context.WithCancel(context.Background())
		c.cancelPointer = cancel
		ch := opts.Pointer.Subscribe(ctx)
		go func() {
			for ev := range ch {
				c.HandlePointer(ev.Payload)
			}
		}()
	}

	c.mu.Lock()
	c.rebuild()
	c.mu.Unlock()
	c.notify()

	return c
}

// Decorations returns the current decoration set snapshot.
func (c *Controller) Decorations() *DecorationSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set
}

// Dragging reports whether a pointer drag is in progress.
func (c *Controller) Dragging() bool {
	return c.tracker.Dragging()
}

// SetTree replaces the parsed tree after a document edit or reparse. A tree
// with a new identity always forces a rebuild.
func (c *Controller) SetTree(tree *mathtree.Tree) {
	c.mu.Lock()
	if c.disposed || tree == nil || tree.Version() == c.treeVersion {
		c.mu.Unlock()
		return
	}
	c.tree = tree
	c.treeVersion = tree.Version()
	c.rebuild()
	c.mu.Unlock()
	c.notify()
}

// SetViewport replaces the visible offset ranges.
func (c *Controller) SetViewport(visible []Range) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.visible = visible
	c.rebuild()
	c.mu.Unlock()
	c.notify()
}

// SetSelection records the new selection. While a drag is in progress the
// exposed decoration set is left untouched; the tracker's settle callback
// performs the one rebuild against the final selection.
func (c *Controller) SetSelection(sel SelectionState) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.sel = sel
	if c.tracker.Dragging() {
		c.mu.Unlock()
		return
	}
	c.rebuild()
	c.mu.Unlock()
	c.notify()
}

// HandlePointer feeds one pointer event to the drag tracker.
func (c *Controller) HandlePointer(ev PointerEvent) {
	c.tracker.Handle(ev)
}

// Activate handles a click or tap on a rendered widget. The offset names any
// position inside the decorated span. When a widget is found, an EditIntent
// targeting its click target is published and true is returned; the host
// must then treat the input as fully handled so default click handling does
// not also move the cursor.
func (c *Controller) Activate(offset int, metaKey, ctrlKey, altKey bool) bool {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return false
	}
	d, ok := c.set.Covering(offset)
	doc := c.doc
	c.mu.Unlock()

	if !ok {
		return false
	}

	intent := EditIntent{
		Offset:  d.Widget.ClickTarget,
		MetaKey: metaKey,
		CtrlKey: ctrlKey,
		AltKey:  altKey,
	}
	if doc != nil {
		intent.DocumentID = doc.ID()
	}

	log.Debug(log.CatPreview, "widget activated",
		"offset", offset, "target", intent.Offset)

	if c.intents != nil {
		c.intents.Publish(pubsub.UpdatedEvent, intent)
	}
	return true
}

// Dispose cancels any pending settle timer and deregisters the pointer
// listener. No rebuild runs after Dispose returns.
func (c *Controller) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	c.mu.Unlock()

	c.tracker.Stop()
	if c.cancelPointer != nil {
		c.cancelPointer()
	}
}

// dragSettled is the tracker's deferred callback.
func (c *Controller) dragSettled() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.rebuild()
	c.mu.Unlock()
	c.notify()
}

// rebuild recomputes the decoration set. Callers hold c.mu.
func (c *Controller) rebuild() {
	if c.doc == nil || c.tree == nil {
		c.set = &DecorationSet{}
		return
	}
	c.set = c.builder.Build(context.Background(), c.visible, c.tree, c.doc, c.sel)
}

func (c *Controller) notify() {
	if c.onRebuild != nil {
		c.onRebuild()
	}
}
