// Package canvas provides the character grid diagrams are drawn on.
package canvas

import (
	"asciid/core"
	"asciid/glyph"
	"asciid/history"
	"asciid/junction"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Common errors
var (
	ErrMalformedText = errors.New("malformed diagram text")
	ErrTooLarge      = errors.New("diagram does not fit the grid")
)

// PixelRect is a rectangle in pointer coordinates, as delivered by the front-end.
type PixelRect struct {
	X0, Y0, X1, Y1 float64
}

// Grid is a fixed-size character buffer addressed by row*cols+col.
//
// Every cell holds committed content and an optional preview. Shapes stage
// their footprint as previews and Commit merges them into the content through
// the junction resolver.
//
// Grid is NOT thread-safe. Index arguments are not bounds checked: an index
// outside [0, rows*cols) panics, and callers translating pointer coordinates
// must clamp first (see PointAt).
type Grid struct {
	cells      []Cell
	cellWidth  float64
	cellHeight float64
	rows       int
	cols       int

	selection *core.Bounds
	resolver  *junction.Resolver
}

// New creates a rows x cols grid filled with spaces. cellWidth and cellHeight
// are the pixel dimensions of one cell.
func New(cellWidth, cellHeight float64, rows, cols int) *Grid {
	if rows < 0 || cols < 0 {
		rows, cols = 0, 0
	}

	cells := make([]Cell, rows*cols)
	for i := range cells {
		cells[i] = emptyCell()
	}

	return &Grid{
		cells:      cells,
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
		rows:       rows,
		cols:       cols,
		resolver:   junction.NewResolver(),
	}
}

// Default returns an empty placeholder grid used before the real size is known.
func Default() *Grid {
	return New(0, 0, 0, 0)
}

// Size returns the number of rows and columns.
func (g *Grid) Size() (rows, cols int) {
	return g.rows, g.cols
}

// CellSize returns the pixel dimensions of one cell.
func (g *Grid) CellSize() (width, height float64) {
	return g.cellWidth, g.cellHeight
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Index converts a row and column to a cell index.
func (g *Grid) Index(row, col int) int {
	return row*g.cols + col
}

// Position converts a cell index to its row and column.
func (g *Grid) Position(i int) (row, col int) {
	return i / g.cols, i % g.cols
}

// InBounds reports whether (row, col) lies on the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Clamp moves p onto the nearest cell of the grid.
func (g *Grid) Clamp(p core.Point) core.Point {
	return core.Point{
		Row: min(max(p.Row, 0), max(g.rows-1, 0)),
		Col: min(max(p.Col, 0), max(g.cols-1, 0)),
	}
}

// PointAt maps pixel coordinates to the cell under them, clamped to the grid.
func (g *Grid) PointAt(x, y float64) core.Point {
	cw, ch := g.unitSize()
	return g.Clamp(core.Point{
		Row: int(math.Floor(y / ch)),
		Col: int(math.Floor(x / cw)),
	})
}

func (g *Grid) unitSize() (float64, float64) {
	cw, ch := g.cellWidth, g.cellHeight
	if cw <= 0 {
		cw = 1
	}
	if ch <= 0 {
		ch = 1
	}
	return cw, ch
}

// Cell returns a copy of the cell at index i.
func (g *Grid) Cell(i int) Cell {
	return g.cells[i]
}

// Read returns the visible glyph: the preview if staged, else the content.
func (g *Grid) Read(i int) rune {
	return g.cells[i].Read()
}

// ReadContent returns the committed glyph, ignoring any preview.
func (g *Grid) ReadContent(i int) rune {
	return g.cells[i].content
}

// SetContent overwrites the committed glyph without junction resolution.
func (g *Grid) SetContent(i int, r rune) {
	g.cells[i].content = r
}

// SetPreview stages r on top of the committed glyph.
func (g *Grid) SetPreview(i int, r rune) {
	g.cells[i].setPreview(r)
}

// SetDirection tags the cell with the direction of the line being drawn through it.
// The tag is consumed by the next Commit or Discard.
func (g *Grid) SetDirection(i int, d core.LineDirection) {
	g.cells[i].direction = d
}

// Commit merges the preview into the content. No-op without a preview.
func (g *Grid) Commit(i int) {
	c := &g.cells[i]
	if !c.hasPreview {
		return
	}
	c.content = g.resolver.Resolve(c.direction, c.content, c.preview)
	c.discard()
}

// Discard drops the preview and direction tag, keeping the content.
func (g *Grid) Discard(i int) {
	g.cells[i].discard()
}

// Clear empties the cell, including preview and highlight state.
func (g *Grid) Clear(i int) {
	g.cells[i] = emptyCell()
}

// CommitAll commits every staged preview and returns one edit per cell whose
// content changed.
func (g *Grid) CommitAll(tool core.Tool) history.Version {
	var v history.Version
	for i := range g.cells {
		c := &g.cells[i]
		if !c.hasPreview {
			continue
		}
		from := c.content
		g.Commit(i)
		if c.content != from {
			v.Push(i, from, c.content, tool)
		}
	}
	return v
}

// DiscardAll drops every staged preview.
func (g *Grid) DiscardAll() {
	for i := range g.cells {
		if g.cells[i].hasPreview {
			g.cells[i].discard()
		}
	}
}

// HasPreview reports whether any cell has a staged preview.
func (g *Grid) HasPreview() bool {
	for i := range g.cells {
		if g.cells[i].hasPreview {
			return true
		}
	}
	return false
}

// Highlight selects the single cell at index i.
func (g *Grid) Highlight(i int) {
	g.ClearHighlight()
	g.cells[i].highlight(0)

	row, col := g.Position(i)
	p := core.Point{Row: row, Col: col}
	g.selection = &core.Bounds{Min: p, Max: p}
}

// MarkCursor highlights the cell at index i as a text cursor. Unlike
// Highlight it does not make a selection.
func (g *Grid) MarkCursor(i int) {
	g.ClearHighlight()
	g.cells[i].highlight(0)
}

// HighlightCells selects the cells inside b, clamped to the grid. Any previous
// selection is cleared first. Cells are numbered row by row.
func (g *Grid) HighlightCells(b core.Bounds) {
	g.ClearHighlight()

	b = core.NewBounds(b.Min, b.Max)
	if b.Max.Row < 0 || b.Max.Col < 0 || b.Min.Row >= g.rows || b.Min.Col >= g.cols {
		return
	}
	b.Min = g.Clamp(b.Min)
	b.Max = g.Clamp(b.Max)

	order := 0
	for row := b.Min.Row; row <= b.Max.Row; row++ {
		for col := b.Min.Col; col <= b.Max.Col; col++ {
			g.cells[g.Index(row, col)].highlight(order)
			order++
		}
	}
	g.selection = &b
}

// HighlightRect selects the cells covered by a pixel rectangle. A rectangle
// that starts inside a cell rather than on its edge does not select that first
// row or column.
func (g *Grid) HighlightRect(r PixelRect) {
	cw, ch := g.unitSize()
	x0, x1 := min(r.X0, r.X1), max(r.X0, r.X1)
	y0, y1 := min(r.Y0, r.Y1), max(r.Y0, r.Y1)

	minCol := int(math.Floor(x0 / cw))
	if math.Mod(x0, cw) != 0 {
		minCol++
	}
	minRow := int(math.Floor(y0 / ch))
	if math.Mod(y0, ch) != 0 {
		minRow++
	}
	maxCol := int(math.Floor(x1 / cw))
	maxRow := int(math.Floor(y1 / ch))

	if minRow > maxRow || minCol > maxCol {
		g.ClearHighlight()
		return
	}
	g.HighlightCells(core.Bounds{
		Min: core.Point{Row: minRow, Col: minCol},
		Max: core.Point{Row: maxRow, Col: maxCol},
	})
}

// ClearHighlight deselects every cell.
func (g *Grid) ClearHighlight() {
	for i := range g.cells {
		if g.cells[i].highlighted {
			g.cells[i].clearHighlight()
		}
	}
	g.selection = nil
}

// Selection returns the bounds of the current selection, if any.
func (g *Grid) Selection() (core.Bounds, bool) {
	if g.selection == nil {
		return core.Bounds{}, false
	}
	return *g.selection, true
}

// HighlightedContent returns the committed content of the selection, one
// newline-terminated line per selected row.
func (g *Grid) HighlightedContent() string {
	sel, ok := g.Selection()
	if !ok {
		return ""
	}

	var sb strings.Builder
	sb.Grow(sel.Height() * (sel.Width() + 1))
	for row := sel.Min.Row; row <= sel.Max.Row; row++ {
		for col := sel.Min.Col; col <= sel.Max.Col; col++ {
			sb.WriteRune(printable(g.cells[g.Index(row, col)].content))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// EraseHighlighted clears every selected cell and returns the erasures.
// Without a selection nothing is erased.
func (g *Grid) EraseHighlighted(tool core.Tool) history.Version {
	var v history.Version
	if g.selection == nil {
		return v
	}
	for i := range g.cells {
		if !g.cells[i].highlighted {
			continue
		}
		from := g.cells[i].content
		g.Clear(i)
		if from != glyph.Space {
			v.Push(i, from, glyph.Space, tool)
		}
	}
	g.selection = nil
	return v
}

// LoadContentAt writes the non-whitespace characters of text into the content,
// with its first character at (row, col). Newlines return to col on the next
// row. Characters falling off the grid are dropped.
func (g *Grid) LoadContentAt(text string, row, col int, tool core.Tool) history.Version {
	var v history.Version
	g.place(text, row, col, func(i int, r rune) {
		from := g.cells[i].content
		if from == r {
			return
		}
		g.cells[i].content = r
		v.Push(i, from, r, tool)
	})
	return v
}

// PutPreviewAt stages text as preview the same way LoadContentAt writes content.
func (g *Grid) PutPreviewAt(text string, row, col int) {
	g.place(text, row, col, g.SetPreview)
}

func (g *Grid) place(text string, row, col int, set func(i int, r rune)) {
	r, c := row, col
	for _, ch := range text {
		if ch == '\n' {
			r++
			c = col
			continue
		}
		if !isBlank(ch) && g.InBounds(r, c) {
			set(g.Index(r, c), ch)
		}
		c++
	}
}

// LoadContent places a saved diagram at the top-left corner of the grid.
// Whitespace leaves the underlying content untouched. On error the grid is
// not modified.
func (g *Grid) LoadContent(text string) error {
	if err := g.Validate(text); err != nil {
		return err
	}
	g.place(text, 0, 0, g.SetContent)
	return nil
}

// Validate checks that text is a diagram LoadContent can place on this grid.
func (g *Grid) Validate(text string) error {
	if !utf8.ValidString(text) {
		return fmt.Errorf("%w: invalid UTF-8", ErrMalformedText)
	}

	row, col := 0, 0
	for _, ch := range text {
		if ch == '\n' {
			row++
			col = 0
			continue
		}
		if !isBlank(ch) && !g.InBounds(row, col) {
			return fmt.Errorf("%w: %q at row %d, column %d (grid is %dx%d)",
				ErrTooLarge, ch, row, col, g.rows, g.cols)
		}
		col++
	}
	return nil
}

// Text serializes the committed content. The output covers the bounding box of
// all non-whitespace glyphs anchored at the top-left corner, one
// newline-terminated line per row. An empty grid yields "".
func (g *Grid) Text() string {
	maxRow, maxCol := -1, -1
	for i, c := range g.cells {
		if isBlank(c.content) {
			continue
		}
		row, col := g.Position(i)
		maxRow = max(maxRow, row)
		maxCol = max(maxCol, col)
	}
	if maxRow < 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow((maxRow + 1) * (maxCol + 2))
	for row := 0; row <= maxRow; row++ {
		for col := 0; col <= maxCol; col++ {
			sb.WriteRune(printable(g.cells[g.Index(row, col)].content))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// String returns the same text as Text.
func (g *Grid) String() string {
	return g.Text()
}

// Reset empties every cell and drops the selection.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i] = emptyCell()
	}
	g.selection = nil
}

func isBlank(r rune) bool {
	return r == 0 || unicode.IsSpace(r)
}

func printable(r rune) rune {
	if isBlank(r) {
		return glyph.Space
	}
	return r
}
