package junction

import (
	"asciid/core"
	"asciid/glyph"
	"testing"
)

var lineGlyphs = []rune{
	glyph.Horizontal, glyph.Vertical,
	glyph.CornerTopLeft, glyph.CornerTopRight, glyph.CornerBottomLeft, glyph.CornerBottomRight,
	glyph.TeeUp, glyph.TeeDown, glyph.TeeRight, glyph.TeeLeft,
	glyph.Cross,
}

func TestResolve_BlankCurrentTakesIncoming(t *testing.T) {
	for _, in := range append(lineGlyphs, 'A', glyph.ArrowUp) {
		for _, cur := range []rune{glyph.Space, glyph.Newline} {
			for _, dir := range []core.LineDirection{core.NoDirection, core.LeftToRight, core.UpToDown} {
				if got := Resolve(dir, cur, in); got != in {
					t.Errorf("Resolve(%v, %q, %c) = %c, want %c", dir, cur, in, got, in)
				}
			}
		}
	}
}

func TestResolve_StraightLines(t *testing.T) {
	tests := []struct {
		name     string
		dir      core.LineDirection
		current  rune
		incoming rune
		want     rune
	}{
		{"Horizontal crossed without direction", core.NoDirection, '─', '│', '┼'},
		{"Vertical crossed without direction", core.NoDirection, '│', '─', '┼'},
		{"Vertical starts downward on horizontal", core.UpToDown, '─', '│', '┬'},
		{"Vertical starts upward on horizontal", core.DownToUp, '─', '│', '┴'},
		{"Horizontal starts rightward on vertical", core.LeftToRight, '│', '─', '├'},
		{"Horizontal starts leftward on vertical", core.RightToLeft, '│', '─', '┤'},
		{"Wrong axis hint falls back to cross", core.LeftToRight, '─', '│', '┼'},
		{"Wrong axis hint on vertical", core.UpToDown, '│', '─', '┼'},
		{"Parallel horizontal", core.NoDirection, '─', '─', '─'},
		{"Parallel vertical", core.DownToUp, '│', '│', '│'},
		{"Horizontal meets bottom-left", core.NoDirection, '─', '└', '┴'},
		{"Horizontal meets bottom-right", core.NoDirection, '─', '┘', '┴'},
		{"Horizontal meets top-left", core.NoDirection, '─', '┌', '┬'},
		{"Horizontal meets top-right", core.NoDirection, '─', '┐', '┬'},
		{"Vertical meets top-left", core.NoDirection, '│', '┌', '├'},
		{"Vertical meets bottom-left", core.NoDirection, '│', '└', '├'},
		{"Vertical meets top-right", core.NoDirection, '│', '┐', '┤'},
		{"Vertical meets bottom-right", core.NoDirection, '│', '┘', '┤'},
		{"Text overwrites line", core.NoDirection, '─', 'A', 'A'},
		{"Arrow overwrites line", core.LeftToRight, '─', '▶', '▶'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.dir, tt.current, tt.incoming)
			if got != tt.want {
				t.Errorf("Resolve(%v, %c, %c) = %c, want %c", tt.dir, tt.current, tt.incoming, got, tt.want)
			}
		})
	}
}

func TestResolve_Corners(t *testing.T) {
	tests := []struct {
		name     string
		dir      core.LineDirection
		current  rune
		incoming rune
		want     rune
	}{
		{"Top-left keeps corner going right", core.LeftToRight, '┌', '─', '┌'},
		{"Top-left keeps corner going down", core.UpToDown, '┌', '│', '┌'},
		{"Top-left upgrades going left", core.RightToLeft, '┌', '─', '┬'},
		{"Top-left upgrades going up", core.DownToUp, '┌', '│', '├'},
		{"Top-left horizontal no direction", core.NoDirection, '┌', '─', '┬'},
		{"Bottom-left keeps corner going right", core.LeftToRight, '└', '─', '└'},
		{"Bottom-left keeps corner going up", core.DownToUp, '└', '│', '└'},
		{"Bottom-left upgrades going down", core.UpToDown, '└', '│', '├'},
		{"Bottom-left horizontal no direction", core.NoDirection, '└', '─', '┴'},
		{"Top-right keeps corner going left", core.RightToLeft, '┐', '─', '┐'},
		{"Top-right keeps corner going down", core.UpToDown, '┐', '│', '┐'},
		{"Top-right upgrades going right", core.LeftToRight, '┐', '─', '┬'},
		{"Top-right vertical no direction", core.NoDirection, '┐', '│', '┤'},
		{"Bottom-right keeps corner going left", core.RightToLeft, '┘', '─', '┘'},
		{"Bottom-right keeps corner going up", core.DownToUp, '┘', '│', '┘'},
		{"Bottom-right upgrades going down", core.UpToDown, '┘', '│', '┤'},
		{"Bottom-right horizontal no direction", core.NoDirection, '┘', '─', '┴'},

		{"Adjacent top corners", core.NoDirection, '┌', '┐', '┬'},
		{"Adjacent bottom corners", core.NoDirection, '└', '┘', '┴'},
		{"Adjacent left corners", core.NoDirection, '┌', '└', '├'},
		{"Adjacent right corners", core.NoDirection, '┐', '┘', '┤'},
		{"Adjacent reversed", core.NoDirection, '┘', '└', '┴'},
		{"Opposite corners TL/BR", core.NoDirection, '┌', '┘', '┼'},
		{"Opposite corners BR/TL", core.NoDirection, '┘', '┌', '┼'},
		{"Opposite corners TR/BL", core.NoDirection, '┐', '└', '┼'},
		{"Opposite corners BL/TR", core.NoDirection, '└', '┐', '┼'},
		{"Same corner", core.NoDirection, '┌', '┌', '┌'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.dir, tt.current, tt.incoming)
			if got != tt.want {
				t.Errorf("Resolve(%v, %c, %c) = %c, want %c", tt.dir, tt.current, tt.incoming, got, tt.want)
			}
		})
	}
}

func TestResolve_TeesAndCross(t *testing.T) {
	tests := []struct {
		name     string
		dir      core.LineDirection
		current  rune
		incoming rune
		want     rune
	}{
		{"Tee up crossed", core.NoDirection, '┴', '│', '┼'},
		{"Tee up extended upward", core.DownToUp, '┴', '│', '┴'},
		{"Tee up extended downward", core.UpToDown, '┴', '│', '┼'},
		{"Tee up along run", core.NoDirection, '┴', '─', '┴'},
		{"Tee up meets top corner", core.NoDirection, '┴', '┌', '┼'},
		{"Tee up meets bottom corner", core.NoDirection, '┴', '┘', '┴'},
		{"Tee down crossed", core.NoDirection, '┬', '│', '┼'},
		{"Tee down extended downward", core.UpToDown, '┬', '│', '┬'},
		{"Tee down meets top corner", core.NoDirection, '┬', '┐', '┬'},
		{"Tee down meets bottom corner", core.NoDirection, '┬', '└', '┼'},
		{"Tee right crossed", core.NoDirection, '├', '─', '┼'},
		{"Tee right extended rightward", core.LeftToRight, '├', '─', '├'},
		{"Tee right extended leftward", core.RightToLeft, '├', '─', '┼'},
		{"Tee right along run", core.NoDirection, '├', '│', '├'},
		{"Tee right meets left corners", core.NoDirection, '├', '┌', '├'},
		{"Tee right meets right corners", core.NoDirection, '├', '┘', '┼'},
		{"Tee left crossed", core.NoDirection, '┤', '─', '┼'},
		{"Tee left extended leftward", core.RightToLeft, '┤', '─', '┤'},
		{"Tee left meets right corners", core.NoDirection, '┤', '┐', '┤'},
		{"Tee left meets left corners", core.NoDirection, '┤', '└', '┼'},
		{"Tee overwritten by text", core.NoDirection, '┤', 'x', 'x'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.dir, tt.current, tt.incoming)
			if got != tt.want {
				t.Errorf("Resolve(%v, %c, %c) = %c, want %c", tt.dir, tt.current, tt.incoming, got, tt.want)
			}
		})
	}

	for _, in := range lineGlyphs {
		for _, dir := range []core.LineDirection{core.NoDirection, core.LeftToRight, core.DownToUp} {
			if got := Resolve(dir, '┼', in); got != '┼' {
				t.Errorf("Resolve(%v, ┼, %c) = %c, want ┼", dir, in, got)
			}
		}
	}
	if got := Resolve(core.NoDirection, '┼', 'A'); got != 'A' {
		t.Errorf("Resolve(┼, A) = %c, want A", got)
	}
}

func TestResolve_Arrows(t *testing.T) {
	tests := []struct {
		name     string
		dir      core.LineDirection
		current  rune
		incoming rune
		want     rune
	}{
		{"Down arrow turns right", core.LeftToRight, '▼', '─', '└'},
		{"Down arrow turns left", core.RightToLeft, '▼', '─', '┘'},
		{"Up arrow turns right", core.LeftToRight, '▲', '─', '┌'},
		{"Up arrow turns left", core.RightToLeft, '▲', '─', '┐'},
		{"Right arrow turns down", core.UpToDown, '▶', '│', '┐'},
		{"Right arrow turns up", core.DownToUp, '▶', '│', '┘'},
		{"Left arrow turns down", core.UpToDown, '◀', '│', '┌'},
		{"Left arrow turns up", core.DownToUp, '◀', '│', '└'},
		{"Arrow without direction is replaced", core.NoDirection, '▼', '─', '─'},
		{"Arrow along its own axis is replaced", core.UpToDown, '▼', '│', '│'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.dir, tt.current, tt.incoming)
			if got != tt.want {
				t.Errorf("Resolve(%v, %c, %c) = %c, want %c", tt.dir, tt.current, tt.incoming, got, tt.want)
			}
		})
	}
}

// A straight or corner glyph merged without a direction never loses an arm either
// input had.
func TestResolve_UndirectedMergeKeepsArms(t *testing.T) {
	incoming := []rune{
		glyph.Horizontal, glyph.Vertical,
		glyph.CornerTopLeft, glyph.CornerTopRight, glyph.CornerBottomLeft, glyph.CornerBottomRight,
	}
	for _, cur := range lineGlyphs {
		for _, in := range incoming {
			got := Resolve(core.NoDirection, cur, in)
			want := glyph.Of(cur) | glyph.Of(in)
			if !glyph.Of(got).Has(want) {
				t.Errorf("Resolve(%c, %c) = %c drops arms", cur, in, got)
			}
		}
	}
}

// Pairs outside the table resolve to the incoming glyph.
func TestResolve_UnmatchedPairsTakeIncoming(t *testing.T) {
	tests := []struct {
		current  rune
		incoming rune
	}{
		{'─', '├'},
		{'│', '┬'},
		{'┌', '┼'},
		{'A', '─'},
		{'▲', '▼'},
	}

	for _, tt := range tests {
		if got := Resolve(core.NoDirection, tt.current, tt.incoming); got != tt.incoming {
			t.Errorf("Resolve(%c, %c) = %c, want %c", tt.current, tt.incoming, got, tt.incoming)
		}
	}
}
