package preview

// Decoration replaces a span's characters with a widget's rendered output.
type Decoration struct {
	Span   FormulaSpan
	Widget Widget
}

// DecorationSet is an ordered, non-overlapping set of decorations covering
// the visible portion of a document. Sets are immutable snapshots; the
// controller swaps in a whole new set on every rebuild.
type DecorationSet struct {
	decorations []Decoration
}

// Decorations returns the decorations in document order.
func (s *DecorationSet) Decorations() []Decoration {
	if s == nil {
		return nil
	}
	return s.decorations
}

func (s *DecorationSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.decorations)
}

// Covering returns the decoration whose span contains the given offset.
func (s *DecorationSet) Covering(offset int) (Decoration, bool) {
	for _, d := range s.Decorations() {
		if d.Span.From <= offset && offset < d.Span.To {
			return d, true
		}
	}
	return Decoration{}, false
}

// append adds a decoration, dropping it if it overlaps the previous one.
// Overlap only happens when visible ranges themselves overlap; tree nodes
// are non-overlapping by construction.
func (s *DecorationSet) append(d Decoration) {
	if n := len(s.decorations); n > 0 && d.Span.From < s.decorations[n-1].Span.To {
		return
	}
	s.decorations = append(s.decorations, d)
}
