package editor

import "unicode/utf8"

// prevOffset steps one rune backward, clamped to the document start.
func (m Model) prevOffset(offset int) int {
	if offset <= 0 {
		return 0
	}
	_, size := utf8.DecodeLastRuneInString(m.doc.Text()[:offset])
	if size == 0 {
		return offset - 1
	}
	return offset - size
}

// nextOffset steps one rune forward, clamped to the document end.
func (m Model) nextOffset(offset int) int {
	if offset >= m.doc.Len() {
		return m.doc.Len()
	}
	_, size := utf8.DecodeRuneInString(m.doc.Text()[offset:])
	if size == 0 {
		return offset + 1
	}
	return offset + size
}

// col returns the rune column of an offset within its line.
func (m Model) col(offset int) int {
	line := m.doc.LineAt(offset)
	return utf8.RuneCountInString(m.doc.Slice(m.doc.LineStart(line), offset))
}

// offsetAtCol returns the offset of the given rune column on a line,
// clamped to the line end.
func (m Model) offsetAtCol(line, col int) int {
	off := m.doc.LineStart(line)
	end := m.doc.LineEnd(line)
	for i := 0; i < col && off < end; i++ {
		off = m.nextOffset(off)
	}
	return off
}

// offsetAbove moves the cursor one line up, keeping the goal column.
func (m *Model) offsetAbove(offset int) int {
	line := m.doc.LineAt(offset)
	if line == 0 {
		return 0
	}
	if m.goalCol < 0 {
		m.goalCol = m.col(offset)
	}
	return m.offsetAtCol(line-1, m.goalCol)
}

// offsetBelow moves the cursor one line down, keeping the goal column.
func (m *Model) offsetBelow(offset int) int {
	line := m.doc.LineAt(offset)
	if line >= m.doc.LineCount()-1 {
		return m.doc.Len()
	}
	if m.goalCol < 0 {
		m.goalCol = m.col(offset)
	}
	return m.offsetAtCol(line+1, m.goalCol)
}
