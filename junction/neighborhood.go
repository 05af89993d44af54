package junction

import "asciid/glyph"

// Neighborhood holds the committed glyphs of the four cells around a center cell.
// Off-grid neighbors are blank.
type Neighborhood struct {
	Up, Down, Left, Right rune
}

// ContentReader reads committed cell content by linear index.
type ContentReader interface {
	ReadContent(index int) rune
}

// NeighborhoodAt collects the neighbors of (row, col) on a rows x cols grid.
func NeighborhoodAt(r ContentReader, rows, cols, row, col int) Neighborhood {
	n := Neighborhood{
		Up:    glyph.Space,
		Down:  glyph.Space,
		Left:  glyph.Space,
		Right: glyph.Space,
	}
	if row > 0 {
		n.Up = r.ReadContent((row-1)*cols + col)
	}
	if row < rows-1 {
		n.Down = r.ReadContent((row+1)*cols + col)
	}
	if col > 0 {
		n.Left = r.ReadContent(row*cols + col - 1)
	}
	if col < cols-1 {
		n.Right = r.ReadContent(row*cols + col + 1)
	}
	return n
}

// Arms returns the sides of the center cell that a neighbor reaches into.
func (n Neighborhood) Arms() glyph.Connectors {
	arms := glyph.None
	if glyph.ConnectsDown(n.Up) {
		arms |= glyph.Up
	}
	if glyph.ConnectsUp(n.Down) {
		arms |= glyph.Down
	}
	if glyph.ConnectsRight(n.Left) {
		arms |= glyph.Left
	}
	if glyph.ConnectsLeft(n.Right) {
		arms |= glyph.Right
	}
	return arms
}

// Synthesize derives the center glyph from the neighborhood alone.
// It reports false when the neighbors do not determine a glyph (a single arm),
// in which case the cell should be left unchanged. With no arms the result is
// blank; callers repairing joints may skip that case to keep isolated glyphs.
func Synthesize(n Neighborhood) (rune, bool) {
	arms := n.Arms()
	if arms == glyph.None {
		return glyph.Space, true
	}
	return glyph.ForConnectors(arms)
}
