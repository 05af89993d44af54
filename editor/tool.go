package editor

import (
	"asciid/core"
	"asciid/glyph"
	"asciid/history"
	"asciid/junction"
	"asciid/shape"
)

// Tool turns pointer gestures and key presses into edits on a session.
// Points are already clamped to the grid.
type Tool interface {
	Start(s *Session, p core.Point)
	Move(s *Session, p core.Point)
	Input(s *Session, k KeyEvent)
	End(s *Session, p core.Point)
}

// lineTool draws a straight line from the press point to the release point.
type lineTool struct {
	line *shape.LineShape
}

func (t *lineTool) Start(s *Session, p core.Point) {
	t.line = shape.NewLine(p)
	s.begin(t.line)
	t.line.Draw(s.grid)
}

func (t *lineTool) Move(s *Session, p core.Point) {
	if !s.isCurrent(t.line) {
		return
	}
	t.line.Extend(p)
	t.line.Draw(s.grid)
}

func (t *lineTool) Input(*Session, KeyEvent) {}

func (t *lineTool) End(s *Session, p core.Point) {
	if !s.isCurrent(t.line) {
		return
	}
	t.Move(s, p)
	s.CommitCurrent()
	t.line = nil
}

// rectTool draws a box spanned by the press and release points.
type rectTool struct {
	rect *shape.RectShape
}

func (t *rectTool) Start(s *Session, p core.Point) {
	t.rect = shape.NewRect(p)
	s.begin(t.rect)
	t.rect.Draw(s.grid)
}

func (t *rectTool) Move(s *Session, p core.Point) {
	if !s.isCurrent(t.rect) {
		return
	}
	t.rect.Extend(p)
	t.rect.Draw(s.grid)
}

func (t *rectTool) Input(*Session, KeyEvent) {}

func (t *rectTool) End(s *Session, p core.Point) {
	if !s.isCurrent(t.rect) {
		return
	}
	t.Move(s, p)
	s.CommitCurrent()
	t.rect = nil
}

// textTool opens a text shape where the pointer is pressed. The text stays
// open across pointer releases until Escape, a new press or a tool switch
// commits it.
type textTool struct {
	text *shape.TextShape
}

func (t *textTool) Start(s *Session, p core.Point) {
	t.text = shape.NewText(p)
	s.begin(t.text)
	t.text.Draw(s.grid)
}

func (t *textTool) Move(*Session, core.Point) {}

func (t *textTool) Input(s *Session, k KeyEvent) {
	if !s.isCurrent(t.text) {
		return
	}

	if !k.IsSpecial() {
		if t.text.PushRune(k.Rune) {
			t.text.Draw(s.grid)
		}
		return
	}

	switch k.SpecialKey {
	case KeyEscape:
		s.CommitCurrent()
		t.text = nil
		return
	case KeyEnter:
		t.text.PushRune(glyph.Newline)
	case KeyBackspace:
		t.text.PopRune()
	default:
		return
	}
	t.text.Draw(s.grid)
}

func (t *textTool) End(*Session, core.Point) {}

// eraserTool blanks the cells dragged over. One gesture is one version.
type eraserTool struct {
	version history.Version
}

func (t *eraserTool) Start(s *Session, p core.Point) {
	s.begin(nil)
	t.version.Clear()
	t.erase(s, p)
}

func (t *eraserTool) Move(s *Session, p core.Point) {
	t.erase(s, p)
}

func (t *eraserTool) Input(*Session, KeyEvent) {}

func (t *eraserTool) End(s *Session, p core.Point) {
	t.erase(s, p)
	s.history.Save(t.version)
	t.version = history.Version{}
}

func (t *eraserTool) erase(s *Session, p core.Point) {
	i := s.grid.Index(p.Row, p.Col)
	from := s.grid.ReadContent(i)
	if glyph.IsBlank(from) {
		return
	}
	t.version.PushUnique(i, from, glyph.Space, core.ToolEraser)
	s.grid.Clear(i)
}

// jointFixerTool rebuilds the line glyph under the pointer from its
// neighbors, mending joints left broken by overlapping shapes.
type jointFixerTool struct {
	version history.Version
}

func (t *jointFixerTool) Start(s *Session, p core.Point) {
	s.begin(nil)
	t.version.Clear()
	t.fix(s, p)
}

func (t *jointFixerTool) Move(s *Session, p core.Point) {
	t.fix(s, p)
}

func (t *jointFixerTool) Input(*Session, KeyEvent) {}

func (t *jointFixerTool) End(s *Session, p core.Point) {
	t.fix(s, p)
	s.history.Save(t.version)
	t.version = history.Version{}
}

func (t *jointFixerTool) fix(s *Session, p core.Point) {
	i := s.grid.Index(p.Row, p.Col)
	from := s.grid.ReadContent(i)
	to, ok := s.jointAt(p.Row, p.Col, true)
	if !ok || to == from {
		return
	}
	t.version.Push(i, from, to, core.ToolJointFixer)
	s.grid.SetContent(i, to)
}

// jointAt computes the glyph the cell at (row, col) should hold given its
// neighbors. Text and arrowheads are never rewritten; blank cells only when
// fillBlank is set. At least two arms are required.
func (s *Session) jointAt(row, col int, fillBlank bool) (rune, bool) {
	rows, cols := s.grid.Size()
	current := s.grid.ReadContent(s.grid.Index(row, col))
	switch {
	case glyph.IsBlank(current):
		if !fillBlank {
			return 0, false
		}
	case !glyph.IsLine(current) || glyph.IsArrow(current):
		return 0, false
	}

	n := junction.NeighborhoodAt(s.grid, rows, cols, row, col)
	if n.Arms().Count() < 2 {
		return 0, false
	}
	return junction.Synthesize(n)
}

// selectTool highlights the rectangle dragged over and remembers the shapes
// inside it.
type selectTool struct {
	anchor core.Point
}

func (t *selectTool) Start(s *Session, p core.Point) {
	s.begin(nil)
	s.selected = nil
	t.anchor = p
	s.grid.HighlightCells(core.NewBounds(p, p))
}

func (t *selectTool) Move(s *Session, p core.Point) {
	s.grid.HighlightCells(core.NewBounds(t.anchor, p))
}

func (t *selectTool) Input(s *Session, k KeyEvent) {
	switch k.SpecialKey {
	case KeyDelete, KeyBackspace:
		s.EraseSelection()
	case KeyEscape:
		s.grid.ClearHighlight()
		s.selected = nil
	}
}

func (t *selectTool) End(s *Session, p core.Point) {
	t.Move(s, p)
	if b, ok := s.grid.Selection(); ok {
		s.selected = s.shapes.FindIn(b)
	}
}

// blockTool moves a block of text: either pasted content or the current
// selection, picked up by pressing inside it. The block lands on release.
type blockTool struct {
	block  *shape.BlockShape
	offset core.Point
}

func (t *blockTool) Start(s *Session, p core.Point) {
	if s.isCurrent(t.block) {
		b := t.block.Bounds()
		if b.Contains(p) {
			t.offset = core.Point{Row: p.Row - b.Min.Row, Col: p.Col - b.Min.Col}
		} else {
			t.offset = core.Point{}
		}
		t.Move(s, p)
		return
	}

	sel, ok := s.grid.Selection()
	if !ok || !sel.Contains(p) {
		s.begin(nil)
		return
	}

	text := s.grid.HighlightedContent()
	erased := s.grid.EraseHighlighted(core.ToolBlock)
	t.place(s, text, sel.Min)
	s.pending = erased
	t.offset = core.Point{Row: p.Row - sel.Min.Row, Col: p.Col - sel.Min.Col}
}

func (t *blockTool) Move(s *Session, p core.Point) {
	if !s.isCurrent(t.block) {
		return
	}
	t.block.MoveTo(core.Point{Row: p.Row - t.offset.Row, Col: p.Col - t.offset.Col})
	t.block.Draw(s.grid)
}

func (t *blockTool) Input(s *Session, k KeyEvent) {
	if !s.isCurrent(t.block) {
		return
	}
	switch k.SpecialKey {
	case KeyEnter:
		s.CommitCurrent()
		t.block = nil
	case KeyEscape:
		s.Cancel()
		t.block = nil
	}
}

func (t *blockTool) End(s *Session, p core.Point) {
	if !s.isCurrent(t.block) {
		return
	}
	t.Move(s, p)
	s.CommitCurrent()
	t.block = nil
}

// place opens a block holding text at p.
func (t *blockTool) place(s *Session, text string, p core.Point) {
	t.block = shape.NewBlock(p, text)
	t.offset = core.Point{}
	s.begin(t.block)
	t.block.Draw(s.grid)
}
