// Package glyph is the catalog of box-drawing characters the editor knows how to join,
// together with the connector tables used to classify them.
package glyph

import "asciid/core"

// Light box-drawing glyphs.
const (
	Horizontal = '─'
	Vertical   = '│'

	CornerTopLeft     = '┌'
	CornerTopRight    = '┐'
	CornerBottomLeft  = '└'
	CornerBottomRight = '┘'

	TeeUp    = '┴' // horizontal run with an arm going up
	TeeDown  = '┬' // horizontal run with an arm going down
	TeeRight = '├' // vertical run with an arm going right
	TeeLeft  = '┤' // vertical run with an arm going left

	Cross = '┼'

	ArrowUp    = '▲'
	ArrowDown  = '▼'
	ArrowLeft  = '◀'
	ArrowRight = '▶'

	Space   = ' '
	Newline = '\n'
)

// Connectors is a set of arms a glyph extends out of its cell.
type Connectors uint8

const (
	Up Connectors = 1 << iota
	Down
	Left
	Right

	None Connectors = 0
	All             = Up | Down | Left | Right
)

// Has reports whether every arm in other is present in c.
func (c Connectors) Has(other Connectors) bool {
	return c&other == other
}

// Count returns the number of arms in the set.
func (c Connectors) Count() int {
	n := 0
	for _, arm := range []Connectors{Up, Down, Left, Right} {
		if c&arm != 0 {
			n++
		}
	}
	return n
}

// An arrowhead sits at the end of a line, so its only arm points back along the line.
var connectors = map[rune]Connectors{
	Horizontal:        Left | Right,
	Vertical:          Up | Down,
	CornerTopLeft:     Down | Right,
	CornerTopRight:    Down | Left,
	CornerBottomLeft:  Up | Right,
	CornerBottomRight: Up | Left,
	TeeUp:             Up | Left | Right,
	TeeDown:           Down | Left | Right,
	TeeRight:          Up | Down | Right,
	TeeLeft:           Up | Down | Left,
	Cross:             All,
	ArrowUp:           Down,
	ArrowDown:         Up,
	ArrowLeft:         Right,
	ArrowRight:        Left,
}

var byConnectors = map[Connectors]rune{
	Left | Right:        Horizontal,
	Up | Down:           Vertical,
	Down | Right:        CornerTopLeft,
	Down | Left:         CornerTopRight,
	Up | Right:          CornerBottomLeft,
	Up | Left:           CornerBottomRight,
	Up | Left | Right:   TeeUp,
	Down | Left | Right: TeeDown,
	Up | Down | Right:   TeeRight,
	Up | Down | Left:    TeeLeft,
	All:                 Cross,
}

// Of returns the arms of r; characters outside the catalog have none.
func Of(r rune) Connectors {
	return connectors[r]
}

// ForConnectors returns the glyph drawing exactly the given arms.
// Single arms and the empty set have no glyph.
func ForConnectors(c Connectors) (rune, bool) {
	r, ok := byConnectors[c]
	return r, ok
}

// ConnectsUp reports whether r has an arm reaching the cell above.
func ConnectsUp(r rune) bool { return Of(r).Has(Up) }

// ConnectsDown reports whether r has an arm reaching the cell below.
func ConnectsDown(r rune) bool { return Of(r).Has(Down) }

// ConnectsLeft reports whether r has an arm reaching the cell to the left.
func ConnectsLeft(r rune) bool { return Of(r).Has(Left) }

// ConnectsRight reports whether r has an arm reaching the cell to the right.
func ConnectsRight(r rune) bool { return Of(r).Has(Right) }

// IsBlank checks if a cell value counts as empty.
func IsBlank(r rune) bool {
	return r == Space || r == Newline || r == 0
}

// IsStraight checks if r is a plain horizontal or vertical line.
func IsStraight(r rune) bool {
	return r == Horizontal || r == Vertical
}

// IsCorner checks if r is one of the four corners.
func IsCorner(r rune) bool {
	switch r {
	case CornerTopLeft, CornerTopRight, CornerBottomLeft, CornerBottomRight:
		return true
	}
	return false
}

// IsTee checks if r is a T-junction.
func IsTee(r rune) bool {
	switch r {
	case TeeUp, TeeDown, TeeLeft, TeeRight:
		return true
	}
	return false
}

// IsArrow checks if r is an arrowhead.
func IsArrow(r rune) bool {
	switch r {
	case ArrowUp, ArrowDown, ArrowLeft, ArrowRight:
		return true
	}
	return false
}

// IsLine checks if r is any glyph of the catalog.
func IsLine(r rune) bool {
	_, ok := connectors[r]
	return ok
}

// ArrowFor returns the arrowhead placed at the end of a line drawn in direction d.
func ArrowFor(d core.LineDirection) (rune, bool) {
	switch d {
	case core.LeftToRight:
		return ArrowRight, true
	case core.RightToLeft:
		return ArrowLeft, true
	case core.UpToDown:
		return ArrowDown, true
	case core.DownToUp:
		return ArrowUp, true
	default:
		return 0, false
	}
}

// LineFor returns the straight glyph for a line drawn in direction d.
func LineFor(d core.LineDirection) rune {
	if d.IsVertical() {
		return Vertical
	}
	return Horizontal
}
