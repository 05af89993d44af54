package editor

import (
	"asciid/canvas"
	"asciid/core"
	"asciid/glyph"
	"asciid/history"
	"asciid/shape"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func pt(row, col int) core.Point {
	return core.Point{Row: row, Col: col}
}

func newTestSession(rows, cols int) *Session {
	return NewSession(canvas.New(1, 1, rows, cols), history.New())
}

func drag(s *Session, from, to core.Point) {
	s.Start(from)
	s.Move(to)
	s.End(to)
}

func requireStats(t *testing.T, s *Session, current, total int) {
	t.Helper()
	c, n := s.History().Stats()
	require.Equal(t, current, c, "history position")
	require.Equal(t, total, n, "history length")
}

func TestSession_DrawLine(t *testing.T) {
	s := newTestSession(5, 10)
	require.Equal(t, core.ToolLine, s.ActiveTool())

	drag(s, pt(1, 1), pt(1, 4))

	require.Equal(t, "     \n ───▶\n", s.Grid().Text())
	require.Nil(t, s.Current())
	require.Len(t, s.Shapes(), 1)
	require.False(t, s.Grid().HasPreview())
	requireStats(t, s, 1, 1)

	require.True(t, s.Undo())
	require.Equal(t, "", s.Grid().Text())
	require.True(t, s.Redo())
	require.Equal(t, "     \n ───▶\n", s.Grid().Text())
}

func TestSession_PointsAreClamped(t *testing.T) {
	s := newTestSession(5, 10)

	drag(s, pt(-3, -3), pt(0, 20))

	require.Equal(t, "─────────▶\n", s.Grid().Text())
}

func TestSession_LineOverLineMakesTee(t *testing.T) {
	s := newTestSession(5, 8)

	drag(s, pt(0, 0), pt(0, 5))
	drag(s, pt(0, 2), pt(3, 2))

	g := s.Grid()
	require.Equal(t, glyph.TeeDown, g.ReadContent(g.Index(0, 2)))
	require.Equal(t, glyph.ArrowDown, g.ReadContent(g.Index(3, 2)))
	requireStats(t, s, 2, 2)

	require.True(t, s.Undo())
	require.Equal(t, glyph.Horizontal, g.ReadContent(g.Index(0, 2)))
	require.Equal(t, glyph.Space, g.ReadContent(g.Index(3, 2)))
}

func TestSession_CancelDropsGesture(t *testing.T) {
	s := newTestSession(5, 10)

	s.Start(pt(0, 0))
	s.Move(pt(0, 3))
	require.True(t, s.Grid().HasPreview())

	s.Cancel()
	s.End(pt(0, 3))

	require.False(t, s.Grid().HasPreview())
	require.Equal(t, "", s.Grid().Text())
	require.False(t, s.History().CanUndo())
	require.Empty(t, s.Shapes())
}

func TestSession_EraserSavesOneVersionPerGesture(t *testing.T) {
	s := newTestSession(3, 8)
	drag(s, pt(0, 0), pt(0, 5))
	require.Equal(t, "─────▶\n", s.Grid().Text())

	require.NoError(t, s.SetTool(core.ToolEraser))
	s.Start(pt(0, 1))
	s.Move(pt(0, 2))
	s.Move(pt(0, 2))
	s.Move(pt(0, 3))
	s.End(pt(0, 3))

	require.Equal(t, "─   ─▶\n", s.Grid().Text())
	requireStats(t, s, 2, 2)
	require.Equal(t, 3, s.History().Versions()[1].Len())

	require.True(t, s.Undo())
	require.Equal(t, "─────▶\n", s.Grid().Text())
}

func TestSession_TextIsCommittedManually(t *testing.T) {
	s := newTestSession(4, 6)
	require.NoError(t, s.SetTool(core.ToolText))

	s.Start(pt(1, 1))
	s.Input(RuneKey('h'))
	s.Input(RuneKey('i'))
	s.End(pt(1, 1))

	require.NotNil(t, s.Current())
	require.Equal(t, shape.KindText, s.Current().Kind())
	require.Equal(t, "", s.Grid().Text(), "nothing is committed before Escape")

	s.Input(RuneKey('\u0301'))
	s.Input(Special(KeyEnter))
	s.Input(RuneKey('x'))
	s.Input(RuneKey('y'))
	s.Input(Special(KeyBackspace))
	s.Input(Special(KeyEscape))

	require.Nil(t, s.Current())
	require.Equal(t, "   \n hi\n x \n", s.Grid().Text())
	_, selected := s.Grid().Selection()
	require.False(t, selected, "cursor highlight is cleared on commit")
	requireStats(t, s, 1, 1)
}

func TestSession_SetToolCommitsOpenText(t *testing.T) {
	s := newTestSession(2, 4)
	require.NoError(t, s.SetTool(core.ToolText))

	s.Start(pt(0, 0))
	s.Input(RuneKey('a'))
	require.NoError(t, s.SetTool(core.ToolLine))

	require.Nil(t, s.Current())
	require.Equal(t, "a\n", s.Grid().Text())
	requireStats(t, s, 1, 1)
}

func TestSession_NewPressCommitsOpenText(t *testing.T) {
	s := newTestSession(3, 4)
	require.NoError(t, s.SetTool(core.ToolText))

	s.Start(pt(0, 0))
	s.Input(RuneKey('a'))
	s.Start(pt(2, 0))
	s.Input(RuneKey('b'))
	s.Input(Special(KeyEscape))

	require.Equal(t, "a\n \nb\n", s.Grid().Text())
	requireStats(t, s, 2, 2)
}

func TestSession_SetToolUnknown(t *testing.T) {
	s := newTestSession(2, 2)

	err := s.SetTool(core.ToolNone)
	require.ErrorIs(t, err, ErrUnknownTool)
	require.Equal(t, core.ToolLine, s.ActiveTool())
}

func TestSession_EmptyGridIgnoresPointer(t *testing.T) {
	s := NewSession(canvas.Default(), history.New())

	drag(s, pt(0, 0), pt(3, 3))

	require.Nil(t, s.Current())
	require.Equal(t, "", s.Grid().Text())
	require.False(t, s.Paste("x", pt(0, 0)))
}

const box = "┌──┐\n│  │\n└──┘\n"

func drawBox(t *testing.T, s *Session) {
	t.Helper()
	require.NoError(t, s.SetTool(core.ToolRect))
	drag(s, pt(0, 0), pt(2, 3))
	require.Equal(t, box, s.Grid().Text())
}

func selectBox(t *testing.T, s *Session) {
	t.Helper()
	require.NoError(t, s.SetTool(core.ToolSelect))
	drag(s, pt(0, 0), pt(2, 3))
}

func TestSession_SelectFindsShapes(t *testing.T) {
	s := newTestSession(5, 12)
	drawBox(t, s)
	selectBox(t, s)

	b, ok := s.Grid().Selection()
	require.True(t, ok)
	require.Equal(t, core.NewBounds(pt(0, 0), pt(2, 3)), b)
	require.Len(t, s.Selected(), 1)
	require.Equal(t, shape.KindRect, s.Selected()[0].Kind())

	s.Input(Special(KeyEscape))
	_, ok = s.Grid().Selection()
	require.False(t, ok)
	require.Empty(t, s.Selected())
}

func TestSession_SelectDeleteErases(t *testing.T) {
	s := newTestSession(5, 12)
	drawBox(t, s)
	selectBox(t, s)

	s.Input(Special(KeyDelete))

	require.Equal(t, "", s.Grid().Text())
	requireStats(t, s, 2, 2)
	require.True(t, s.Undo())
	require.Equal(t, box, s.Grid().Text())
}

func TestSession_CopyPaste(t *testing.T) {
	s := newTestSession(5, 12)
	require.False(t, s.Copy(), "nothing selected")

	drawBox(t, s)
	selectBox(t, s)
	require.True(t, s.Copy())
	require.Equal(t, box, s.Clipboard())

	require.True(t, s.Paste(s.Clipboard(), pt(0, 5)))
	require.Equal(t, core.ToolBlock, s.ActiveTool())
	require.NotNil(t, s.Current())
	require.Equal(t, shape.KindBlock, s.Current().Kind())

	s.Start(pt(0, 5))
	s.End(pt(0, 5))

	require.Nil(t, s.Current())
	require.Equal(t, "┌──┐ ┌──┐\n│  │ │  │\n└──┘ └──┘\n", s.Grid().Text())
	requireStats(t, s, 2, 2)
}

func TestSession_PasteEnterCommitsInPlace(t *testing.T) {
	s := newTestSession(3, 3)

	require.True(t, s.Paste("ab\n c\n", pt(1, 1)))
	s.Input(Special(KeyEnter))

	require.Equal(t, "   \n ab\n  c\n", s.Grid().Text())
	requireStats(t, s, 1, 1)
}

func TestSession_Cut(t *testing.T) {
	s := newTestSession(5, 12)
	drawBox(t, s)
	selectBox(t, s)

	require.True(t, s.Cut())
	require.Equal(t, box, s.Clipboard())
	require.Equal(t, "", s.Grid().Text())
	requireStats(t, s, 2, 2)

	require.True(t, s.Undo())
	require.Equal(t, box, s.Grid().Text())
}

func TestSession_CutWhileTyping(t *testing.T) {
	s := newTestSession(2, 5)
	require.NoError(t, s.Open(strings.NewReader("  Q\n")))
	require.NoError(t, s.SetTool(core.ToolText))

	drag(s, pt(0, 0), pt(0, 0))
	s.Input(RuneKey('a'))
	s.Input(RuneKey('b'))
	require.True(t, s.Grid().Cell(2).Highlighted(), "cursor sits on Q")

	require.False(t, s.Copy())
	require.False(t, s.Cut())
	require.False(t, s.EraseSelection())
	require.Equal(t, "", s.Clipboard())
	require.Equal(t, "  Q\n", s.Grid().Text())
	requireStats(t, s, 0, 0)

	s.Input(Special(KeyEscape))
	require.Equal(t, "abQ\n", s.Grid().Text())
	requireStats(t, s, 1, 1)
}

func TestSession_MoveSelectionWithBlock(t *testing.T) {
	s := newTestSession(5, 12)
	drawBox(t, s)
	selectBox(t, s)
	require.NoError(t, s.SetTool(core.ToolBlock))

	s.Start(pt(1, 1))
	require.Equal(t, "", s.Grid().Text(), "selection is lifted off the content")
	s.Move(pt(1, 6))
	s.End(pt(1, 6))

	require.Equal(t, "     ┌──┐\n     │  │\n     └──┘\n", s.Grid().Text())
	requireStats(t, s, 2, 2)

	require.True(t, s.Undo())
	require.Equal(t, box, s.Grid().Text())
}

func TestSession_CancelledMoveRestoresSelection(t *testing.T) {
	s := newTestSession(5, 12)
	drawBox(t, s)
	selectBox(t, s)
	require.NoError(t, s.SetTool(core.ToolBlock))

	s.Start(pt(1, 1))
	s.Move(pt(1, 6))
	s.Input(Special(KeyEscape))

	require.Nil(t, s.Current())
	require.False(t, s.Grid().HasPreview())
	require.Equal(t, box, s.Grid().Text())
	requireStats(t, s, 1, 1)
}

const brokenJoint = "──│──\n  │  \n"

func TestSession_FixAll(t *testing.T) {
	s := newTestSession(3, 6)
	require.NoError(t, s.Open(strings.NewReader(brokenJoint)))

	require.Equal(t, 1, s.FixAll())
	require.Equal(t, "──┬──\n  │  \n", s.Grid().Text())
	requireStats(t, s, 1, 1)

	require.Equal(t, 0, s.FixAll())
	requireStats(t, s, 1, 1)

	require.True(t, s.Undo())
	require.Equal(t, brokenJoint, s.Grid().Text())
}

func TestSession_JointFixerTool(t *testing.T) {
	s := newTestSession(3, 6)
	require.NoError(t, s.Open(strings.NewReader("a"+brokenJoint[len("─"):])))
	require.NoError(t, s.SetTool(core.ToolJointFixer))

	drag(s, pt(0, 0), pt(0, 0))
	require.Equal(t, 'a', s.Grid().ReadContent(0), "text is never rewritten")
	requireStats(t, s, 0, 0)

	drag(s, pt(0, 2), pt(0, 2))
	require.Equal(t, "a─┬──\n  │  \n", s.Grid().Text())
	requireStats(t, s, 1, 1)

	drag(s, pt(2, 5), pt(2, 5))
	requireStats(t, s, 1, 1)
}

func TestSession_OpenRejectsBadDiagram(t *testing.T) {
	s := newTestSession(2, 2)
	drag(s, pt(0, 0), pt(0, 1))
	before := s.Grid().Text()

	err := s.Open(strings.NewReader("abc\n"))
	require.ErrorIs(t, err, canvas.ErrTooLarge)

	err = s.Open(strings.NewReader("\xff"))
	require.ErrorIs(t, err, canvas.ErrMalformedText)

	require.Equal(t, before, s.Grid().Text())
	requireStats(t, s, 1, 1)
}

func TestSession_OpenSaveRoundTrip(t *testing.T) {
	s := newTestSession(4, 8)
	require.NoError(t, s.Open(strings.NewReader(box)))
	require.False(t, s.History().CanUndo())

	var buf bytes.Buffer
	require.NoError(t, s.Save(&buf))
	require.Equal(t, box, buf.String())
}

func TestSession_New(t *testing.T) {
	s := newTestSession(3, 6)
	drag(s, pt(0, 0), pt(0, 3))

	s.New()

	require.Equal(t, "", s.Grid().Text())
	require.Empty(t, s.Shapes())
	requireStats(t, s, 0, 0)
}

func TestSession_DocumentRestore(t *testing.T) {
	s := newTestSession(5, 10)
	drag(s, pt(1, 1), pt(1, 4))
	drag(s, pt(3, 0), pt(3, 2))
	require.True(t, s.Undo())

	doc := s.Document("flow")
	require.Equal(t, "flow", doc.Name)
	require.Equal(t, 5, doc.Rows)
	require.Equal(t, 10, doc.Cols)
	require.Equal(t, 1, doc.Cursor)
	require.Len(t, doc.Versions, 2)

	restored := newTestSession(5, 10)
	require.NoError(t, restored.Restore(doc))
	require.Equal(t, s.Grid().Text(), restored.Grid().Text())
	requireStats(t, restored, 1, 2)

	require.True(t, restored.Redo())
	require.Equal(t, "     \n ───▶\n     \n──▶  \n", restored.Grid().Text())

	other := newTestSession(6, 10)
	require.NoError(t, other.Restore(doc))
	require.Equal(t, doc.Text, other.Grid().Text())
	requireStats(t, other, 0, 0)
}
