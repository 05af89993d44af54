package shape

import (
	"asciid/canvas"
	"asciid/core"
	"asciid/history"
	"strings"
	"unicode/utf8"
)

// BlockShape stamps a multi-line text blob, used to paste or move content.
// Whitespace in the blob is transparent.
type BlockShape struct {
	Start core.Point
	Text  string

	preview bool
}

// NewBlock creates a block holding text with its top-left corner at p.
func NewBlock(p core.Point, text string) *BlockShape {
	return &BlockShape{Start: p, Text: text, preview: true}
}

// MoveTo moves the top-left corner of the block to p.
func (b *BlockShape) MoveTo(p core.Point) {
	b.Start = p
}

func (b *BlockShape) Kind() Kind { return KindBlock }

func (b *BlockShape) Draw(g *canvas.Grid) {
	g.DiscardAll()
	g.PutPreviewAt(b.Text, b.Start.Row, b.Start.Col)
}

func (b *BlockShape) Commit(g *canvas.Grid) history.Version {
	return commitPreview(g, core.ToolBlock, &b.preview)
}

func (b *BlockShape) IsPreview() bool      { return b.preview }
func (b *BlockShape) IsManualCommit() bool { return false }

// Bounds covers every line of the blob, including trailing whitespace.
func (b *BlockShape) Bounds() core.Bounds {
	lines := strings.Split(strings.TrimSuffix(b.Text, "\n"), "\n")
	width := 1
	for _, line := range lines {
		width = max(width, utf8.RuneCountInString(line))
	}
	return core.Bounds{
		Min: b.Start,
		Max: core.Point{Row: b.Start.Row + len(lines) - 1, Col: b.Start.Col + width - 1},
	}
}

func (b *BlockShape) sealed() {}
