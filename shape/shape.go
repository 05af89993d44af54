// Package shape models the drawing gestures that stage a preview on the grid
// and commit it as one undoable version.
package shape

import (
	"asciid/canvas"
	"asciid/core"
	"asciid/history"
)

// Kind discriminates the closed set of shapes.
type Kind int

const (
	KindLine Kind = iota + 1
	KindRect
	KindBlock
	KindText
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindLine:
		return "Line"
	case KindRect:
		return "Rect"
	case KindBlock:
		return "Block"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Shape is a gesture with a footprint on the grid. Draw recomputes the whole
// preview from scratch; Commit merges it into the content.
//
// The set of shapes is closed: LineShape, RectShape, BlockShape and TextShape.
type Shape interface {
	Kind() Kind
	Draw(g *canvas.Grid)
	Commit(g *canvas.Grid) history.Version
	IsPreview() bool
	// IsManualCommit reports whether the shape stays open after the pointer is
	// released and must be committed explicitly.
	IsManualCommit() bool
	Bounds() core.Bounds

	sealed()
}

// commitPreview is the commit step shared by the pointer-driven shapes.
func commitPreview(g *canvas.Grid, tool core.Tool, preview *bool) history.Version {
	v := g.CommitAll(tool)
	*preview = false
	return v
}
