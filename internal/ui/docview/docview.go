// Package docview renders a document with its math decorations applied:
// non-live formula spans show as typeset widgets, everything else shows as
// raw text with cursor and selection highlighting.
package docview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rivo/uniseg"

	"github.com/shg8/silverbullet/internal/document"
	"github.com/shg8/silverbullet/internal/preview"
	"github.com/shg8/silverbullet/internal/ui/styles"
)

// Model is the document viewport. It is a pure view: all decisions about
// which spans are decorated were already made by the preview controller.
type Model struct {
	doc         *document.Document
	decorations *preview.DecorationSet
	sel         preview.SelectionState
	width       int
	height      int
	scroll      int
}

// New creates a docview over the given document.
func New(doc *document.Document) Model {
	return Model{doc: doc}
}

// SetSize sets the viewport dimensions in cells.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m.clampScroll()
}

// SetDecorations swaps in a new decoration set snapshot.
func (m Model) SetDecorations(set *preview.DecorationSet) Model {
	m.decorations = set
	return m
}

// SetSelection records the selection used for highlighting.
func (m Model) SetSelection(sel preview.SelectionState) Model {
	m.sel = sel
	return m
}

// Scroll returns the first visible line.
func (m Model) Scroll() int {
	return m.scroll
}

// SetScroll scrolls the viewport to the given first line, clamped.
func (m Model) SetScroll(line int) Model {
	m.scroll = line
	return m.clampScroll()
}

// EnsureCursorVisible scrolls just far enough to bring the cursor line into
// view.
func (m Model) EnsureCursorVisible() Model {
	line := m.doc.LineAt(m.sel.Cursor)
	if line < m.scroll {
		m.scroll = line
	} else if m.height > 0 && line >= m.scroll+m.height {
		m.scroll = line - m.height + 1
	}
	return m.clampScroll()
}

func (m Model) clampScroll() Model {
	maxScroll := m.doc.LineCount() - 1
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
	return m
}

// VisibleRanges returns the document offset ranges currently on screen.
// This is what bounds decoration building to the viewport.
func (m Model) VisibleRanges() []preview.Range {
	if m.doc.LineCount() == 0 || m.height <= 0 {
		return nil
	}
	last := min(m.scroll+m.height-1, m.doc.LineCount()-1)
	from, to := m.doc.LineRange(m.scroll, last)
	return []preview.Range{{From: from, To: to}}
}

// OffsetAt maps viewport cell coordinates to a document offset. The line is
// measured as raw text; for rows where widgets compress the layout, zone
// lookups resolve clicks before this mapping is consulted.
func (m Model) OffsetAt(x, y int) int {
	line := m.scroll + y
	if line >= m.doc.LineCount() {
		return m.doc.Len()
	}
	if line < 0 {
		return 0
	}

	ls := m.doc.LineStart(line)
	le := m.doc.LineEnd(line)

	off := ls
	col := 0
	gr := uniseg.NewGraphemes(m.doc.Slice(ls, le))
	for gr.Next() {
		w := gr.Width()
		if col+w > x {
			return off
		}
		col += w
		off += len(gr.Bytes())
	}
	return off
}

// View renders the visible lines, one row per document line.
func (m Model) View() string {
	if m.height <= 0 || m.width <= 0 {
		return ""
	}

	rows := make([]string, 0, m.height)
	last := min(m.scroll+m.height-1, m.doc.LineCount()-1)
	for i := m.scroll; i <= last; i++ {
		row := m.renderLine(i)
		rows = append(rows, ansi.Truncate(row, m.width, "…"))
	}
	for len(rows) < m.height {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

// renderLine renders one document line, substituting widgets for decorated
// spans. A display widget renders on the first line of its span; lines the
// span covers entirely stay blank so rows keep mapping 1:1 to lines.
func (m Model) renderLine(line int) string {
	ls := m.doc.LineStart(line)
	le := m.doc.LineEnd(line)

	var b strings.Builder
	pos := ls

	for i, d := range m.decorations.Decorations() {
		if d.Span.To <= pos || d.Span.From >= le {
			continue
		}

		if d.Span.From >= pos {
			b.WriteString(m.renderText(pos, d.Span.From))
			b.WriteString(m.renderWidget(i, d, line))
		}
		// Continuation of a span that started on an earlier line renders
		// nothing.
		pos = min(d.Span.To, le)
	}

	b.WriteString(m.renderText(pos, le))
	return b.String()
}

// renderText renders raw document text with selection and cursor styling.
func (m Model) renderText(from, to int) string {
	if from >= to {
		return ""
	}

	var b strings.Builder
	run := strings.Builder{}
	var runStyle *lipgloss.Style

	flush := func() {
		if run.Len() == 0 {
			return
		}
		b.WriteString(runStyle.Render(run.String()))
		run.Reset()
	}

	off := from
	for _, r := range m.doc.Slice(from, to) {
		style := m.styleAt(off)
		if runStyle == nil {
			runStyle = style
		}
		if style != runStyle {
			flush()
			runStyle = style
		}
		run.WriteRune(r)
		off += len(string(r))
	}
	flush()
	return b.String()
}

func (m Model) styleAt(off int) *lipgloss.Style {
	if off == m.sel.Cursor {
		return &styles.CursorStyle
	}
	for _, r := range m.sel.Ranges {
		if r.From <= off && off < r.To {
			return &styles.SelectionStyle
		}
	}
	return &styles.TextStyle
}

// renderWidget renders the i-th decoration. The output is zone-marked so
// mouse clicks can be resolved back to the decoration.
func (m Model) renderWidget(i int, d preview.Decoration, line int) string {
	var content string

	switch {
	case d.Widget.Errored:
		raw := strings.ReplaceAll(d.Span.Raw(), "\n", " ")
		content = styles.WidgetErrorStyle.Render("⚠ " + raw)

	case d.Widget.Kind == preview.KindDisplay:
		flat := FlattenMathML(d.Widget.Markup)
		if flat == "" {
			flat = strings.ReplaceAll(d.Widget.Formula, "\n", " ")
		}
		content = styles.WidgetDisplayStyle.Render(flat)
		// A block that owns its whole line gets centered.
		if d.Span.From == m.doc.LineStart(line) && d.Span.To >= m.doc.LineEnd(line) {
			return zone.Mark(WidgetZoneID(i),
				lipgloss.PlaceHorizontal(m.width, lipgloss.Center, content))
		}

	default:
		flat := FlattenMathML(d.Widget.Markup)
		if flat == "" {
			flat = d.Widget.Formula
		}
		content = styles.WidgetInlineStyle.Render(flat)
	}

	return zone.Mark(WidgetZoneID(i), content)
}
