package preview

// Range is a half-open [From, To) offset range. An empty range (From == To)
// represents a pure cursor.
type Range struct {
	From int
	To   int
}

// Empty reports whether the range selects no characters.
func (r Range) Empty() bool {
	return r.From == r.To
}

// SelectionState is a read-only snapshot of the editor's selection: the
// primary cursor offset plus the ordered set of selection ranges.
type SelectionState struct {
	Cursor int
	Ranges []Range
}

// CursorOnly builds a selection with no ranged selections.
func CursorOnly(cursor int) SelectionState {
	return SelectionState{Cursor: cursor}
}

// IsLive reports whether the span must show as raw source.
//
// The cursor test is inclusive on both ends: a cursor sitting exactly on a
// delimiter boundary still counts, so typing at the boundary reveals the
// source instead of the widget eating the keystroke. The selection test uses
// standard half-open overlap, so a selection that merely touches a boundary
// does not count.
func IsLive(span FormulaSpan, sel SelectionState) bool {
	if span.From <= sel.Cursor && sel.Cursor <= span.To {
		return true
	}
	for _, r := range sel.Ranges {
		if r.From < span.To && r.To > span.From {
			return true
		}
	}
	return false
}
