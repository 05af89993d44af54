// Package junction merges box-drawing glyphs where lines meet.
package junction

import (
	"asciid/core"
	"asciid/glyph"
)

// Resolver determines the glyph a cell should hold when an incoming glyph is
// committed on top of its current content.
type Resolver struct {
	// Merges that depend on the direction the incoming line was drawn in
	directed map[directedKey]rune
	// Merges used when no direction applies
	junctions map[junctionKey]rune
}

type junctionKey struct {
	current  rune
	incoming rune
}

type directedKey struct {
	dir      core.LineDirection
	current  rune
	incoming rune
}

var defaultResolver = NewResolver()

// NewResolver creates a resolver with the standard light box-drawing rules.
func NewResolver() *Resolver {
	jr := &Resolver{
		directed:  make(map[directedKey]rune),
		junctions: make(map[junctionKey]rune),
	}
	jr.initializeJunctions()
	jr.initializeDirected()
	return jr
}

// Resolve returns the merged glyph for incoming placed over current.
// dir is the direction of the line whose start cell this is, or core.NoDirection.
// Pairs without a rule resolve to incoming.
func (jr *Resolver) Resolve(dir core.LineDirection, current, incoming rune) rune {
	if glyph.IsBlank(current) {
		return incoming
	}

	if dir != core.NoDirection {
		if merged, ok := jr.directed[directedKey{dir, current, incoming}]; ok {
			return merged
		}
	}

	if merged, ok := jr.junctions[junctionKey{current, incoming}]; ok {
		return merged
	}

	return incoming
}

// Resolve merges with the default resolver.
func Resolve(dir core.LineDirection, current, incoming rune) rune {
	return defaultResolver.Resolve(dir, current, incoming)
}

func (jr *Resolver) add(current, incoming, merged rune) {
	jr.junctions[junctionKey{current, incoming}] = merged
}

func (jr *Resolver) addDirected(dir core.LineDirection, current, incoming, merged rune) {
	jr.directed[directedKey{dir, current, incoming}] = merged
}

// initializeJunctions sets up the direction-independent merges.
func (jr *Resolver) initializeJunctions() {
	const (
		h  = glyph.Horizontal
		v  = glyph.Vertical
		tl = glyph.CornerTopLeft
		tr = glyph.CornerTopRight
		bl = glyph.CornerBottomLeft
		br = glyph.CornerBottomRight
		tu = glyph.TeeUp
		td = glyph.TeeDown
		tR = glyph.TeeRight
		tL = glyph.TeeLeft
		x  = glyph.Cross
	)

	// Straight lines crossing without a known direction
	jr.add(h, v, x)
	jr.add(v, h, x)

	// Straight line meets corner: tee toward the corner's open side
	jr.add(h, bl, tu)
	jr.add(h, br, tu)
	jr.add(h, tl, td)
	jr.add(h, tr, td)
	jr.add(v, bl, tR)
	jr.add(v, tl, tR)
	jr.add(v, br, tL)
	jr.add(v, tr, tL)

	// Corner meets straight line
	jr.add(tl, h, td)
	jr.add(tl, v, tR)
	jr.add(bl, h, tu)
	jr.add(bl, v, tR)
	jr.add(tr, h, td)
	jr.add(tr, v, tL)
	jr.add(br, h, tu)
	jr.add(br, v, tL)

	// Corner meets corner: adjacent = tee, opposite = cross
	jr.add(tl, tr, td)
	jr.add(tl, br, x)
	jr.add(tl, bl, tR)
	jr.add(bl, br, tu)
	jr.add(bl, tr, x)
	jr.add(bl, tl, tR)
	jr.add(tr, tl, td)
	jr.add(tr, bl, x)
	jr.add(tr, br, tL)
	jr.add(br, bl, tu)
	jr.add(br, tl, x)
	jr.add(br, tr, tL)

	// Tee meets line
	jr.add(tu, v, x)
	jr.add(tu, h, tu)
	jr.add(tu, tl, x)
	jr.add(tu, tr, x)
	jr.add(tu, bl, tu)
	jr.add(tu, br, tu)

	jr.add(td, v, x)
	jr.add(td, h, td)
	jr.add(td, tl, td)
	jr.add(td, tr, td)
	jr.add(td, bl, x)
	jr.add(td, br, x)

	jr.add(tR, h, x)
	jr.add(tR, v, tR)
	jr.add(tR, bl, tR)
	jr.add(tR, tl, tR)
	jr.add(tR, br, x)
	jr.add(tR, tr, x)

	jr.add(tL, h, x)
	jr.add(tL, v, tL)
	jr.add(tL, bl, x)
	jr.add(tL, tl, x)
	jr.add(tL, br, tL)
	jr.add(tL, tr, tL)

	// A cross absorbs every line-like glyph
	for _, in := range []rune{h, v, tl, tr, bl, br, tu, td, tR, tL} {
		jr.add(x, in, x)
	}
}

// initializeDirected sets up merges for the start cell of a line whose drawing
// direction is known.
func (jr *Resolver) initializeDirected() {
	const (
		h  = glyph.Horizontal
		v  = glyph.Vertical
		tl = glyph.CornerTopLeft
		tr = glyph.CornerTopRight
		bl = glyph.CornerBottomLeft
		br = glyph.CornerBottomRight
		tu = glyph.TeeUp
		td = glyph.TeeDown
		tR = glyph.TeeRight
		tL = glyph.TeeLeft
	)

	// A perpendicular line starting on a straight line only leaves on one side
	jr.addDirected(core.UpToDown, h, v, td)
	jr.addDirected(core.DownToUp, h, v, tu)
	jr.addDirected(core.LeftToRight, v, h, tR)
	jr.addDirected(core.RightToLeft, v, h, tL)

	// A line leaving a corner along the corner's own arm keeps the corner
	jr.addDirected(core.LeftToRight, tl, h, tl)
	jr.addDirected(core.UpToDown, tl, v, tl)
	jr.addDirected(core.LeftToRight, bl, h, bl)
	jr.addDirected(core.DownToUp, bl, v, bl)
	jr.addDirected(core.RightToLeft, tr, h, tr)
	jr.addDirected(core.UpToDown, tr, v, tr)
	jr.addDirected(core.RightToLeft, br, h, br)
	jr.addDirected(core.DownToUp, br, v, br)

	// A line leaving a tee through its existing arm does not cross the run
	jr.addDirected(core.DownToUp, tu, v, tu)
	jr.addDirected(core.UpToDown, td, v, td)
	jr.addDirected(core.LeftToRight, tR, h, tR)
	jr.addDirected(core.RightToLeft, tL, h, tL)

	// A line turning at an arrowhead replaces it with a corner
	jr.addDirected(core.RightToLeft, glyph.ArrowDown, h, br)
	jr.addDirected(core.LeftToRight, glyph.ArrowDown, h, bl)
	jr.addDirected(core.RightToLeft, glyph.ArrowUp, h, tr)
	jr.addDirected(core.LeftToRight, glyph.ArrowUp, h, tl)
	jr.addDirected(core.UpToDown, glyph.ArrowRight, v, tr)
	jr.addDirected(core.DownToUp, glyph.ArrowRight, v, br)
	jr.addDirected(core.UpToDown, glyph.ArrowLeft, v, tl)
	jr.addDirected(core.DownToUp, glyph.ArrowLeft, v, bl)
}
