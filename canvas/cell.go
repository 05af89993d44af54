package canvas

import (
	"asciid/core"
	"asciid/glyph"
)

// Cell is one character slot of the grid. The committed content only changes
// through Commit or a direct SetContent; the preview is staged on top of it.
type Cell struct {
	content    rune
	preview    rune
	hasPreview bool
	direction  core.LineDirection

	highlighted    bool
	highlightOrder int
}

func emptyCell() Cell {
	return Cell{content: glyph.Space}
}

// Read returns the preview when one is staged, otherwise the content.
func (c Cell) Read() rune {
	if c.hasPreview {
		return c.preview
	}
	return c.content
}

// Content returns the committed glyph.
func (c Cell) Content() rune {
	return c.content
}

// Preview returns the staged glyph, if any.
func (c Cell) Preview() (rune, bool) {
	return c.preview, c.hasPreview
}

// Direction returns the drawing direction tagged on the cell.
func (c Cell) Direction() core.LineDirection {
	return c.direction
}

// Highlighted reports whether the cell is part of the selection.
func (c Cell) Highlighted() bool {
	return c.highlighted
}

// HighlightOrder is the position of the cell within the selection.
// Only meaningful while Highlighted is true.
func (c Cell) HighlightOrder() int {
	return c.highlightOrder
}

func (c *Cell) setPreview(r rune) {
	c.preview = r
	c.hasPreview = true
}

func (c *Cell) discard() {
	c.preview = 0
	c.hasPreview = false
	c.direction = core.NoDirection
}

func (c *Cell) highlight(order int) {
	c.highlighted = true
	c.highlightOrder = order
}

func (c *Cell) clearHighlight() {
	c.highlighted = false
	c.highlightOrder = 0
}
