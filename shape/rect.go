package shape

import (
	"asciid/canvas"
	"asciid/core"
	"asciid/glyph"
	"asciid/history"
)

// RectShape is a box outline spanned by two opposite corners.
type RectShape struct {
	Start core.Point
	End   core.Point

	preview bool
}

// NewRect starts a single-cell rectangle at p.
func NewRect(p core.Point) *RectShape {
	return &RectShape{Start: p, End: p, preview: true}
}

// Extend moves the corner opposite Start to p.
func (r *RectShape) Extend(p core.Point) {
	r.End = p
}

func (r *RectShape) Kind() Kind { return KindRect }

func (r *RectShape) Draw(g *canvas.Grid) {
	g.DiscardAll()
	b := r.Bounds()

	for col := b.Min.Col; col <= b.Max.Col; col++ {
		g.SetPreview(g.Index(b.Min.Row, col), glyph.Horizontal)
		g.SetPreview(g.Index(b.Max.Row, col), glyph.Horizontal)
	}
	for row := b.Min.Row; row <= b.Max.Row; row++ {
		g.SetPreview(g.Index(row, b.Min.Col), glyph.Vertical)
		g.SetPreview(g.Index(row, b.Max.Col), glyph.Vertical)
	}

	// Corners go last so the edges do not overwrite them.
	g.SetPreview(g.Index(b.Min.Row, b.Min.Col), glyph.CornerTopLeft)
	g.SetPreview(g.Index(b.Min.Row, b.Max.Col), glyph.CornerTopRight)
	g.SetPreview(g.Index(b.Max.Row, b.Max.Col), glyph.CornerBottomRight)
	g.SetPreview(g.Index(b.Max.Row, b.Min.Col), glyph.CornerBottomLeft)
}

func (r *RectShape) Commit(g *canvas.Grid) history.Version {
	return commitPreview(g, core.ToolRect, &r.preview)
}

func (r *RectShape) IsPreview() bool      { return r.preview }
func (r *RectShape) IsManualCommit() bool { return false }

func (r *RectShape) Bounds() core.Bounds {
	return core.NewBounds(r.Start, r.End)
}

func (r *RectShape) sealed() {}
