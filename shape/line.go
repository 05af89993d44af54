package shape

import (
	"asciid/canvas"
	"asciid/core"
	"asciid/glyph"
	"asciid/history"
)

// LineShape is a straight horizontal or vertical line ending in an arrowhead.
type LineShape struct {
	Start     core.Point
	End       core.Point
	Direction core.LineDirection

	preview bool
}

// NewLine starts a zero-length line at p.
func NewLine(p core.Point) *LineShape {
	return &LineShape{Start: p, End: p, preview: true}
}

// Extend moves the end of the line towards p. The line follows whichever axis
// p is further along, ties going horizontal; the other coordinate stays at the
// start.
func (l *LineShape) Extend(p core.Point) {
	dr := p.Row - l.Start.Row
	dc := p.Col - l.Start.Col

	if abs(dc) >= abs(dr) {
		l.End = core.Point{Row: l.Start.Row, Col: p.Col}
		switch {
		case dc > 0:
			l.Direction = core.LeftToRight
		case dc < 0:
			l.Direction = core.RightToLeft
		default:
			l.Direction = core.NoDirection
		}
		return
	}

	l.End = core.Point{Row: p.Row, Col: l.Start.Col}
	if dr > 0 {
		l.Direction = core.UpToDown
	} else {
		l.Direction = core.DownToUp
	}
}

func (l *LineShape) Kind() Kind { return KindLine }

func (l *LineShape) Draw(g *canvas.Grid) {
	g.DiscardAll()

	start := g.Index(l.Start.Row, l.Start.Col)
	if l.Direction == core.NoDirection {
		g.SetPreview(start, glyph.Horizontal)
		return
	}

	b := l.Bounds()
	run := glyph.LineFor(l.Direction)
	for row := b.Min.Row; row <= b.Max.Row; row++ {
		for col := b.Min.Col; col <= b.Max.Col; col++ {
			g.SetPreview(g.Index(row, col), run)
		}
	}

	if arrow, ok := glyph.ArrowFor(l.Direction); ok {
		g.SetPreview(g.Index(l.End.Row, l.End.Col), arrow)
	}
	g.SetDirection(start, l.Direction)
}

func (l *LineShape) Commit(g *canvas.Grid) history.Version {
	return commitPreview(g, core.ToolLine, &l.preview)
}

func (l *LineShape) IsPreview() bool      { return l.preview }
func (l *LineShape) IsManualCommit() bool { return false }

func (l *LineShape) Bounds() core.Bounds {
	return core.NewBounds(l.Start, l.End)
}

func (l *LineShape) sealed() {}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
