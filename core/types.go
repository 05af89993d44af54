// Package core contains the fundamental types shared by the asciid packages.
package core

// Point is a cell coordinate on the grid.
type Point struct {
	Row, Col int
}

// Bounds represents an inclusive rectangular area of cells.
type Bounds struct {
	Min, Max Point
}

// NewBounds returns the bounds spanned by two corner points in any order.
func NewBounds(a, b Point) Bounds {
	return Bounds{
		Min: Point{Row: min(a.Row, b.Row), Col: min(a.Col, b.Col)},
		Max: Point{Row: max(a.Row, b.Row), Col: max(a.Col, b.Col)},
	}
}

// Width returns the number of columns covered by the bounds.
func (b Bounds) Width() int {
	return b.Max.Col - b.Min.Col + 1
}

// Height returns the number of rows covered by the bounds.
func (b Bounds) Height() int {
	return b.Max.Row - b.Min.Row + 1
}

// Contains checks if a point is within the bounds.
func (b Bounds) Contains(p Point) bool {
	return p.Row >= b.Min.Row && p.Row <= b.Max.Row &&
		p.Col >= b.Min.Col && p.Col <= b.Max.Col
}

// ContainsBounds checks if other lies entirely within b.
func (b Bounds) ContainsBounds(other Bounds) bool {
	return b.Contains(other.Min) && b.Contains(other.Max)
}

// LineDirection records the direction a line was drawn in.
// The zero value means no direction is known.
type LineDirection int

const (
	NoDirection LineDirection = iota
	LeftToRight
	RightToLeft
	UpToDown
	DownToUp
)

// String returns the string representation of a LineDirection.
func (d LineDirection) String() string {
	switch d {
	case NoDirection:
		return "None"
	case LeftToRight:
		return "LeftToRight"
	case RightToLeft:
		return "RightToLeft"
	case UpToDown:
		return "UpToDown"
	case DownToUp:
		return "DownToUp"
	default:
		return "Unknown"
	}
}

// Opposite returns the opposite direction.
func (d LineDirection) Opposite() LineDirection {
	switch d {
	case LeftToRight:
		return RightToLeft
	case RightToLeft:
		return LeftToRight
	case UpToDown:
		return DownToUp
	case DownToUp:
		return UpToDown
	default:
		return d
	}
}

// IsHorizontal reports whether the direction runs along a row.
func (d LineDirection) IsHorizontal() bool {
	return d == LeftToRight || d == RightToLeft
}

// IsVertical reports whether the direction runs along a column.
func (d LineDirection) IsVertical() bool {
	return d == UpToDown || d == DownToUp
}

// Tool identifies the drawing tool that produced an edit.
type Tool int

const (
	ToolNone Tool = iota
	ToolLine
	ToolRect
	ToolText
	ToolEraser
	ToolSelect
	ToolJointFixer
	ToolBlock
)

// String returns the tool name for display.
func (t Tool) String() string {
	switch t {
	case ToolNone:
		return "NONE"
	case ToolLine:
		return "LINE"
	case ToolRect:
		return "RECT"
	case ToolText:
		return "TEXT"
	case ToolEraser:
		return "ERASER"
	case ToolSelect:
		return "SELECT"
	case ToolJointFixer:
		return "JOINT FIXER"
	case ToolBlock:
		return "BLOCK"
	default:
		return "UNKNOWN"
	}
}
