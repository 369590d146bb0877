package docview

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/shg8/silverbullet/internal/document"
	"github.com/shg8/silverbullet/internal/mathtree"
	"github.com/shg8/silverbullet/internal/preview"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	m.Run()
}

// stubTypesetter emits minimal MathML that flattens back to the formula.
type stubTypesetter struct{}

func (stubTypesetter) Render(formula string, display bool) (string, error) {
	if strings.Contains(formula, `\bad`) {
		return "", errors.New("render failure")
	}
	return "<math><mrow><mi>" + formula + "</mi></mrow></math>", nil
}

func buildView(t *testing.T, text string, cursor int, width, height int) (Model, *document.Document) {
	t.Helper()

	doc := document.New(text)
	m := New(doc).SetSize(width, height)

	b := preview.NewBuilder(stubTypesetter{}, time.Minute)
	set := b.Build(context.Background(), m.VisibleRanges(), mathtree.Parse(text), doc, preview.CursorOnly(cursor))

	m = m.SetDecorations(set).SetSelection(preview.CursorOnly(cursor))
	return m, doc
}

// plain resolves zones and strips styling, leaving just the text grid.
func plain(view string) string {
	return ansi.Strip(zone.Scan(view))
}

func TestView_DecoratedSpanShowsWidget(t *testing.T) {
	m, _ := buildView(t, "sum $x+y$ done", 12, 40, 3)

	out := plain(m.View())
	require.Contains(t, out, "x+y")
	require.NotContains(t, out, "$x+y$", "decorated span must not show raw source")
}

func TestView_LiveSpanShowsRawSource(t *testing.T) {
	m, _ := buildView(t, "sum $x+y$ done", 6, 40, 3)

	out := plain(m.View())
	require.Contains(t, out, "$x+y$")
}

func TestView_ErroredWidgetShowsRawWithMarker(t *testing.T) {
	m, _ := buildView(t, `sum $\bad$ done`, 0, 40, 3)

	out := plain(m.View())
	require.Contains(t, out, "⚠")
	require.Contains(t, out, `$\bad$`)
}

func TestView_DisplayBlockOwnsItsRows(t *testing.T) {
	m, _ := buildView(t, "$$\nx+y\n$$\nafter", 20, 40, 6)

	out := plain(m.View())
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)

	require.Contains(t, lines[0], "x+y")
	require.Equal(t, "", strings.TrimSpace(lines[1]), "continuation rows stay blank")
	require.Equal(t, "", strings.TrimSpace(lines[2]))
	require.Contains(t, lines[3], "after")
}

func TestView_PadsToHeight(t *testing.T) {
	m, _ := buildView(t, "one line", 0, 20, 5)

	require.Len(t, strings.Split(m.View(), "\n"), 5)
}

func TestOffsetAt(t *testing.T) {
	doc := document.New("abc\ndef")
	m := New(doc).SetSize(20, 5)

	require.Equal(t, 0, m.OffsetAt(0, 0))
	require.Equal(t, 2, m.OffsetAt(2, 0))
	require.Equal(t, 3, m.OffsetAt(10, 0), "past line end clamps to line end")
	require.Equal(t, 4, m.OffsetAt(0, 1))
	require.Equal(t, 6, m.OffsetAt(2, 1))
	require.Equal(t, doc.Len(), m.OffsetAt(0, 9), "past last line clamps to document end")
}

func TestOffsetAt_WideRunes(t *testing.T) {
	doc := document.New("日本x")
	m := New(doc).SetSize(20, 5)

	// Each CJK rune occupies two cells and three bytes.
	require.Equal(t, 0, m.OffsetAt(0, 0))
	require.Equal(t, 0, m.OffsetAt(1, 0))
	require.Equal(t, 3, m.OffsetAt(2, 0))
	require.Equal(t, 6, m.OffsetAt(4, 0))
}

func TestVisibleRanges_FollowsScroll(t *testing.T) {
	doc := document.New("a\nb\nc\nd\ne")
	m := New(doc).SetSize(20, 2)

	ranges := m.VisibleRanges()
	require.Len(t, ranges, 1)
	require.Equal(t, preview.Range{From: 0, To: 4}, ranges[0])

	m = m.SetScroll(2)
	ranges = m.VisibleRanges()
	require.Equal(t, preview.Range{From: 4, To: 8}, ranges[0])
}

func TestEnsureCursorVisible(t *testing.T) {
	doc := document.New("a\nb\nc\nd\ne")
	m := New(doc).SetSize(20, 2)

	m = m.SetSelection(preview.CursorOnly(8)).EnsureCursorVisible()
	require.Equal(t, 3, m.Scroll())

	m = m.SetSelection(preview.CursorOnly(0)).EnsureCursorVisible()
	require.Equal(t, 0, m.Scroll())
}

func TestWidgetZoneIDRoundTrip(t *testing.T) {
	id := WidgetZoneID(7)
	i, ok := WidgetIndexFromZoneID(id)
	require.True(t, ok)
	require.Equal(t, 7, i)

	_, ok = WidgetIndexFromZoneID("some_other_zone")
	require.False(t, ok)
}
