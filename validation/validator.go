package validation

import (
	"asciid/glyph"
	"fmt"
	"strings"
)

// LineValidator validates that a diagram follows proper line drawing rules.
// It checks that adjacent glyphs agree on how they connect.
type LineValidator struct {
	// Track validation errors
	errors []ValidationError
	// strictMode also requires every arrowhead to sit at the end of a line.
	strictMode bool
}

// ValidationError represents a validation error with location information.
type ValidationError struct {
	X, Y    int
	Char    rune
	Context string
	Message string
}

// NewLineValidator creates a new validator with default settings.
func NewLineValidator() *LineValidator {
	return &LineValidator{}
}

// SetStrictMode enables or disables strict validation.
func (v *LineValidator) SetStrictMode(strict bool) {
	v.strictMode = strict
}

type side struct {
	arm  glyph.Connectors
	back glyph.Connectors
	dx   int
	dy   int
	name string
}

var sides = []side{
	{glyph.Up, glyph.Down, 0, -1, "north"},
	{glyph.Down, glyph.Up, 0, 1, "south"},
	{glyph.Left, glyph.Right, -1, 0, "west"},
	{glyph.Right, glyph.Left, 1, 0, "east"},
}

// Validate checks a diagram in its plain-text form for line drawing errors.
func (v *LineValidator) Validate(diagram string) []ValidationError {
	v.errors = nil

	lines := strings.Split(strings.TrimRight(diagram, "\n"), "\n")
	grid := make([][]rune, len(lines))
	for i, line := range lines {
		grid[i] = []rune(line)
	}

	for y := 0; y < len(grid); y++ {
		for x := 0; x < len(grid[y]); x++ {
			if char := grid[y][x]; glyph.IsLine(char) {
				v.checkCharacter(grid, x, y, char)
			}
		}
	}

	return v.errors
}

// checkCharacter validates every arm of a single glyph. An arm may end in
// blank space or text, or meet a glyph reaching back; another line glyph
// turned away from it is an error. Arrowheads may touch any line.
func (v *LineValidator) checkCharacter(grid [][]rune, x, y int, char rune) {
	arms := glyph.Of(char)
	for _, s := range sides {
		if !arms.Has(s.arm) {
			continue
		}

		n := v.getChar(grid, x+s.dx, y+s.dy)
		switch {
		case glyph.Of(n).Has(s.back):
		case glyph.IsArrow(n) && !glyph.IsArrow(char):
		case glyph.IsLine(n):
			v.addError(x, y, char, fmt.Sprintf("%s=%c", s.name, n),
				"%c cannot connect to %c on the %s", char, n, s.name)
		case v.strictMode && glyph.IsArrow(char):
			v.addError(x, y, char, fmt.Sprintf("%s=%c", s.name, n),
				"Arrow %c has no line to the %s", char, s.name)
		}
	}
}

// getChar safely gets a character from the grid.
func (v *LineValidator) getChar(grid [][]rune, x, y int) rune {
	if y < 0 || y >= len(grid) {
		return glyph.Space
	}
	if x < 0 || x >= len(grid[y]) {
		return glyph.Space
	}
	return grid[y][x]
}

// addError adds a validation error.
func (v *LineValidator) addError(x, y int, char rune, context, format string, args ...any) {
	v.errors = append(v.errors, ValidationError{
		X:       x,
		Y:       y,
		Char:    char,
		Context: context,
		Message: fmt.Sprintf(format, args...),
	})
}

// String formats validation errors as a string.
func (e ValidationError) String() string {
	return fmt.Sprintf("(%d,%d) '%c' [%s]: %s", e.X, e.Y, e.Char, e.Context, e.Message)
}
