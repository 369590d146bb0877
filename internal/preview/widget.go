package preview

import (
	"context"
	"time"

	"github.com/shg8/silverbullet/internal/cachemanager"
	"github.com/shg8/silverbullet/internal/log"
	"github.com/shg8/silverbullet/internal/typeset"
)

// Widget is the rendered form of a formula span. ClickTarget is the offset
// the cursor should land on when the widget is activated, placed just past
// the opening delimiters so edit mode starts inside the formula.
//
// On render failure Markup is empty and Errored is set; the view then shows
// the raw delimited text with an error marker. A bad formula never takes the
// rest of the document down with it.
type Widget struct {
	Kind        Kind
	Formula     string
	ClickTarget int
	Markup      string
	Errored     bool
}

// Equal reports whether two widgets render identically. Identity is keyed on
// (kind, formula) only, not on span position, so the host can reuse a
// widget's rendered output when unrelated parts of the document change.
func (w Widget) Equal(other Widget) bool {
	return w.Kind == other.Kind && w.Formula == other.Formula
}

// EditIntent is dispatched to the host when a widget is activated. Offset is
// the widget's click target; the modifier flags come from the triggering
// input event.
type EditIntent struct {
	Offset     int
	DocumentID string
	MetaKey    bool
	CtrlKey    bool
	AltKey     bool
}

// renderRequest is the loader input for the widget markup cache.
type renderRequest struct {
	Formula string
	Display bool
}

// widgetFactory typesets formulas through a read-through markup cache keyed
// by (kind, formula), so repeated rebuilds only pay for formulas they have
// not seen before. Render errors are not cached.
type widgetFactory struct {
	cache *cachemanager.ReadThroughCache[string, string, renderRequest]
	ttl   time.Duration
}

func newWidgetFactory(ts typeset.Typesetter, ttl time.Duration) *widgetFactory {
	manager := cachemanager.NewInMemoryCacheManager[string, string](
		"widget-markup", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)

	return &widgetFactory{
		ttl: ttl,
		cache: cachemanager.NewReadThroughCache[string, string, renderRequest](
			manager,
			func(ctx context.Context, req renderRequest) (string, error) {
				return ts.Render(req.Formula, req.Display)
			},
			false,
		),
	}
}

func cacheKey(kind Kind, formula string) string {
	return kind.String() + ":" + formula
}

// build renders the span into a widget. The click target sits one character
// past the opening delimiter for inline spans and two for display spans.
func (f *widgetFactory) build(ctx context.Context, span FormulaSpan) Widget {
	w := Widget{
		Kind:        span.Kind,
		Formula:     span.Formula,
		ClickTarget: span.From + 1,
	}
	if span.Kind == KindDisplay {
		w.ClickTarget = span.From + 2
	}

	markup, err := f.cache.Get(ctx, cacheKey(span.Kind, span.Formula), renderRequest{
		Formula: span.Formula,
		Display: span.Kind == KindDisplay,
	}, f.ttl)
	if err != nil {
		log.Warn(log.CatWidget, "render failed, falling back to raw text",
			"kind", span.Kind.String(), "from", span.From, "error", err)
		w.Errored = true
		return w
	}

	w.Markup = markup
	return w
}
