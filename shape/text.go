package shape

import (
	"asciid/canvas"
	"asciid/core"
	"asciid/glyph"
	"asciid/history"

	"github.com/mattn/go-runewidth"
)

// TextShape is typed text anchored at Start. It stays open until committed
// explicitly; a newline continues on the next row at the start column.
type TextShape struct {
	Start core.Point

	runes   []rune
	preview bool
}

// NewText opens an empty text shape at p.
func NewText(p core.Point) *TextShape {
	return &TextShape{Start: p, preview: true}
}

// PushRune appends r. Runes that take no room on screen (combining marks,
// control characters) are rejected, since every cell holds exactly one rune.
func (t *TextShape) PushRune(r rune) bool {
	if r != glyph.Newline && runewidth.RuneWidth(r) == 0 {
		return false
	}
	t.runes = append(t.runes, r)
	return true
}

// PopRune removes the last rune. It reports false when the text is empty.
func (t *TextShape) PopRune() bool {
	if len(t.runes) == 0 {
		return false
	}
	t.runes = t.runes[:len(t.runes)-1]
	return true
}

// Text returns the typed text.
func (t *TextShape) Text() string {
	return string(t.runes)
}

// Cursor returns the cell the next rune will be written to.
func (t *TextShape) Cursor() core.Point {
	p := t.Start
	for _, r := range t.runes {
		if r == glyph.Newline {
			p = core.Point{Row: p.Row + 1, Col: t.Start.Col}
			continue
		}
		p.Col++
	}
	return p
}

func (t *TextShape) Kind() Kind { return KindText }

// Draw stages the text, spaces included, and highlights the cursor cell.
func (t *TextShape) Draw(g *canvas.Grid) {
	g.DiscardAll()

	p := t.Start
	for _, r := range t.runes {
		if r == glyph.Newline {
			p = core.Point{Row: p.Row + 1, Col: t.Start.Col}
			continue
		}
		if g.InBounds(p.Row, p.Col) {
			g.SetPreview(g.Index(p.Row, p.Col), r)
		}
		p.Col++
	}

	if t.preview && g.InBounds(p.Row, p.Col) {
		g.MarkCursor(g.Index(p.Row, p.Col))
	} else {
		g.ClearHighlight()
	}
}

func (t *TextShape) Commit(g *canvas.Grid) history.Version {
	g.ClearHighlight()
	return commitPreview(g, core.ToolText, &t.preview)
}

func (t *TextShape) IsPreview() bool      { return t.preview }
func (t *TextShape) IsManualCommit() bool { return true }

func (t *TextShape) Bounds() core.Bounds {
	b := core.Bounds{Min: t.Start, Max: t.Start}
	p := t.Start
	for _, r := range t.runes {
		if r == glyph.Newline {
			p = core.Point{Row: p.Row + 1, Col: t.Start.Col}
			continue
		}
		b.Max.Row = max(b.Max.Row, p.Row)
		b.Max.Col = max(b.Max.Col, p.Col)
		p.Col++
	}
	return b
}

func (t *TextShape) sealed() {}
