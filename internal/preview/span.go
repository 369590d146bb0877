// Package preview decides, for every math span in a document, whether it
// shows as a typeset widget or as raw editable source. It reconciles three
// inputs into that decision: the parsed math tree, the cursor and selection
// state, and the pointer drag state.
package preview

import (
	"regexp"

	"github.com/shg8/silverbullet/internal/document"
	"github.com/shg8/silverbullet/internal/log"
	"github.com/shg8/silverbullet/internal/mathtree"
)

// Kind discriminates inline from display formulas.
type Kind int

const (
	KindInline Kind = iota
	KindDisplay
)

func (k Kind) String() string {
	switch k {
	case KindInline:
		return "inline"
	case KindDisplay:
		return "display"
	default:
		return "unknown"
	}
}

// FormulaSpan is a classified math region of the document. From/To are
// half-open offsets covering the delimiters; Formula is the delimiter-stripped
// content. Spans are derived fresh on every rebuild and never mutated.
type FormulaSpan struct {
	Kind    Kind
	From    int
	To      int
	Formula string
}

// Raw reconstructs the delimited source text of the span.
func (s FormulaSpan) Raw() string {
	if s.Kind == KindDisplay {
		return "$$" + s.Formula + "$$"
	}
	return "$" + s.Formula + "$"
}

// displayShape is what a well-formed display region looks like as a whole:
// two dollars, anything including newlines, two dollars.
var displayShape = regexp.MustCompile(`(?s)^\$\$.*\$\$$`)

// ClassifyNode turns a tree node into a FormulaSpan, or rejects it.
//
// Inline nodes are taken as-is: the formula is the slice between the single
// delimiters, with no further validation. Malformed content is the
// renderer's problem. Display nodes must match displayShape over their full
// slice; a node that fails the check is rejected and logged, degrading the
// region to plain text instead of crashing the view.
func ClassifyNode(node mathtree.Node, doc *document.Document) (FormulaSpan, bool) {
	switch node.Type {
	case mathtree.NodeInlineLatex:
		if node.To-node.From < 2 {
			return FormulaSpan{}, false
		}
		return FormulaSpan{
			Kind:    KindInline,
			From:    node.From,
			To:      node.To,
			Formula: doc.Slice(node.From+1, node.To-1),
		}, true

	case mathtree.NodeDisplayLatex:
		raw := doc.Slice(node.From, node.To)
		if len(raw) < 4 || !displayShape.MatchString(raw) {
			log.Warn(log.CatPreview, "rejecting malformed display node",
				"from", node.From, "to", node.To)
			return FormulaSpan{}, false
		}
		return FormulaSpan{
			Kind:    KindDisplay,
			From:    node.From,
			To:      node.To,
			Formula: raw[2 : len(raw)-2],
		}, true

	default:
		return FormulaSpan{}, false
	}
}
