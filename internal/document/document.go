// Package document holds the text of an open document and its offset mapping.
// It is the read-only text surface the preview engine works against: byte
// offset slicing, line mapping, and change-range detection on reloads.
package document

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/shg8/silverbullet/internal/log"
)

// ChangedRange is the half-open byte range of the new text affected by an
// edit. Empty (From == To) means an insertion point; see Changed.
type ChangedRange struct {
	From int
	To   int
}

// Document is an in-memory text document identified by a stable ID.
// The text is immutable between SetText calls.
type Document struct {
	id         string
	text       string
	lineStarts []int
}

// New creates a document with a fresh UUID.
func New(text string) *Document {
	return NewWithID(uuid.NewString(), text)
}

// NewWithID creates a document with the given identifier.
// Used when the host names documents (e.g. by file path hash).
func NewWithID(id, text string) *Document {
	d := &Document{id: id}
	d.setText(text)
	return d
}

// ID returns the stable document identifier.
func (d *Document) ID() string {
	return d.id
}

// Text returns the full document text.
func (d *Document) Text() string {
	return d.text
}

// Len returns the document length in bytes.
func (d *Document) Len() int {
	return len(d.text)
}

// Slice returns the text in the half-open byte range [from, to), clamped to
// the document bounds.
func (d *Document) Slice(from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(d.text) {
		to = len(d.text)
	}
	if from >= to {
		return ""
	}
	return d.text[from:to]
}

// SetText replaces the document text and reports the byte range of the new
// text that differs from the old, computed with diff-match-patch. The bool
// is false when the text is unchanged.
func (d *Document) SetText(text string) (ChangedRange, bool) {
	if text == d.text {
		return ChangedRange{}, false
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(d.text, text, false)

	changed := changedRangeInNew(diffs)
	d.setText(text)

	log.Debug(log.CatDoc, "document text replaced",
		"id", d.id, "len", len(text), "changedFrom", changed.From, "changedTo", changed.To)

	return changed, true
}

func (d *Document) setText(text string) {
	d.text = text
	d.lineStarts = d.lineStarts[:0]
	d.lineStarts = append(d.lineStarts, 0)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			d.lineStarts = append(d.lineStarts, i+1)
		}
	}
}

// changedRangeInNew finds the smallest range in the new text covering every
// insertion, plus the position of every deletion.
func changedRangeInNew(diffs []diffmatchpatch.Diff) ChangedRange {
	pos := 0
	from, to := -1, -1
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffEqual:
			pos += len(diff.Text)
		case diffmatchpatch.DiffInsert:
			if from < 0 {
				from = pos
			}
			pos += len(diff.Text)
			to = pos
		case diffmatchpatch.DiffDelete:
			if from < 0 {
				from = pos
			}
			if pos > to {
				to = pos
			}
		}
	}
	if from < 0 {
		return ChangedRange{}
	}
	return ChangedRange{From: from, To: to}
}

// LineCount returns the number of lines. A document always has at least one
// line; a trailing newline opens a final empty line.
func (d *Document) LineCount() int {
	return len(d.lineStarts)
}

// LineStart returns the byte offset where line i begins.
// Out-of-range lines clamp to the document bounds.
func (d *Document) LineStart(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(d.lineStarts) {
		return len(d.text)
	}
	return d.lineStarts[i]
}

// LineEnd returns the byte offset just past the content of line i,
// excluding the newline.
func (d *Document) LineEnd(i int) int {
	if i < 0 {
		return 0
	}
	if i+1 < len(d.lineStarts) {
		return d.lineStarts[i+1] - 1
	}
	return len(d.text)
}

// LineText returns the text of line i without its trailing newline.
func (d *Document) LineText(i int) string {
	return d.Slice(d.LineStart(i), d.LineEnd(i))
}

// LineAt returns the line index containing the given byte offset.
// Offsets past the end map to the last line.
func (d *Document) LineAt(offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= len(d.text) {
		return len(d.lineStarts) - 1
	}
	// Binary search for the last line start <= offset
	lo, hi := 0, len(d.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if d.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// LineRange returns the half-open byte range covering lines [first, last]
// inclusive, clamped to the document.
func (d *Document) LineRange(first, last int) (from, to int) {
	from = d.LineStart(first)
	if last+1 < len(d.lineStarts) {
		to = d.lineStarts[last+1]
	} else {
		to = len(d.text)
	}
	return from, to
}

// FirstLine returns the first line of the document, used for titles.
func (d *Document) FirstLine() string {
	if i := strings.IndexByte(d.text, '\n'); i >= 0 {
		return d.text[:i]
	}
	return d.text
}
