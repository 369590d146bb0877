package document

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_AssignsID(t *testing.T) {
	d := New("hello")
	require.NotEmpty(t, d.ID())
	require.Equal(t, "hello", d.Text())
	require.Equal(t, 5, d.Len())
}

func TestNewWithID(t *testing.T) {
	d := NewWithID("doc-1", "hello")
	require.Equal(t, "doc-1", d.ID())
}

func TestSlice_Clamps(t *testing.T) {
	d := New("hello world")

	require.Equal(t, "hello", d.Slice(0, 5))
	require.Equal(t, "world", d.Slice(6, 11))
	require.Equal(t, "world", d.Slice(6, 100))
	require.Equal(t, "hello world", d.Slice(-3, 100))
	require.Equal(t, "", d.Slice(5, 5))
	require.Equal(t, "", d.Slice(8, 3))
}

func TestSetText_NoChange(t *testing.T) {
	d := New("same")
	_, changed := d.SetText("same")
	require.False(t, changed)
}

func TestSetText_ReportsChangedRange(t *testing.T) {
	d := New("hello world")

	rng, changed := d.SetText("hello brave world")
	require.True(t, changed)
	require.Equal(t, "hello brave world", d.Text())
	// The inserted "brave " lies inside the reported range
	require.LessOrEqual(t, rng.From, 6)
	require.GreaterOrEqual(t, rng.To, 12)
	require.LessOrEqual(t, rng.To, d.Len())
}

func TestSetText_DeletionReportsPosition(t *testing.T) {
	d := New("hello brave world")

	rng, changed := d.SetText("hello world")
	require.True(t, changed)
	require.GreaterOrEqual(t, rng.From, 0)
	require.LessOrEqual(t, rng.From, rng.To)
	require.LessOrEqual(t, rng.To, d.Len())
}

func TestLineMapping(t *testing.T) {
	d := New("one\ntwo\nthree")

	require.Equal(t, 3, d.LineCount())
	require.Equal(t, "one", d.LineText(0))
	require.Equal(t, "two", d.LineText(1))
	require.Equal(t, "three", d.LineText(2))

	require.Equal(t, 0, d.LineStart(0))
	require.Equal(t, 4, d.LineStart(1))
	require.Equal(t, 8, d.LineStart(2))

	require.Equal(t, 3, d.LineEnd(0))
	require.Equal(t, 7, d.LineEnd(1))
	require.Equal(t, 13, d.LineEnd(2))
}

func TestLineAt(t *testing.T) {
	d := New("one\ntwo\nthree")

	require.Equal(t, 0, d.LineAt(0))
	require.Equal(t, 0, d.LineAt(3)) // the newline belongs to line 0
	require.Equal(t, 1, d.LineAt(4))
	require.Equal(t, 1, d.LineAt(7))
	require.Equal(t, 2, d.LineAt(8))
	require.Equal(t, 2, d.LineAt(100))
	require.Equal(t, 0, d.LineAt(-1))
}

func TestLineAt_TrailingNewline(t *testing.T) {
	d := New("one\n")

	require.Equal(t, 2, d.LineCount())
	require.Equal(t, "", d.LineText(1))
}

func TestLineRange(t *testing.T) {
	d := New("one\ntwo\nthree")

	from, to := d.LineRange(0, 1)
	require.Equal(t, 0, from)
	require.Equal(t, 8, to)

	from, to = d.LineRange(1, 2)
	require.Equal(t, 4, from)
	require.Equal(t, 13, to)
}

func TestFirstLine(t *testing.T) {
	require.Equal(t, "title", New("title\nbody").FirstLine())
	require.Equal(t, "no newline", New("no newline").FirstLine())
}
