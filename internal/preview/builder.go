package preview

import (
	"context"
	"time"

	"github.com/shg8/silverbullet/internal/document"
	"github.com/shg8/silverbullet/internal/log"
	"github.com/shg8/silverbullet/internal/mathtree"
	"github.com/shg8/silverbullet/internal/typeset"
)

// Builder produces decoration sets. It is stateless apart from the markup
// cache, so one builder can serve successive rebuilds of the same view.
type Builder struct {
	factory *widgetFactory
}

// NewBuilder wires the typesetter behind the widget markup cache. ttl bounds
// how long a rendered formula stays cached.
func NewBuilder(ts typeset.Typesetter, ttl time.Duration) *Builder {
	return &Builder{factory: newWidgetFactory(ts, ttl)}
}

// Build walks the tree nodes intersecting each visible range in document
// order, classifies them, and decorates every span the selection does not
// make live. Cost is bounded by the number of visible nodes, not document
// size.
func (b *Builder) Build(
	ctx context.Context,
	visible []Range,
	source mathtree.NodeSource,
	doc *document.Document,
	sel SelectionState,
) *DecorationSet {
	set := &DecorationSet{}

	for _, vr := range visible {
		for _, node := range source.NodesBetween(vr.From, vr.To) {
			span, ok := ClassifyNode(node, doc)
			if !ok {
				continue
			}
			if IsLive(span, sel) {
				continue
			}
			set.append(Decoration{
				Span:   span,
				Widget: b.factory.build(ctx, span),
			})
		}
	}

	log.Debug(log.CatPreview, "built decoration set",
		"decorations", set.Len(), "cursor", sel.Cursor)

	return set
}
