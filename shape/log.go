package shape

import "asciid/core"

// Log is the list of committed shapes, oldest first. The in-progress gesture
// is never part of it.
type Log struct {
	shapes []Shape
}

// Add appends a committed shape.
func (l *Log) Add(s Shape) {
	l.shapes = append(l.shapes, s)
}

// All returns the committed shapes, oldest first.
func (l *Log) All() []Shape {
	return l.shapes
}

// Len returns the number of committed shapes.
func (l *Log) Len() int {
	return len(l.shapes)
}

// Clear forgets every shape.
func (l *Log) Clear() {
	l.shapes = nil
}

// FindAt returns the most recently committed shape whose bounds contain p.
func (l *Log) FindAt(p core.Point) (Shape, bool) {
	for i := len(l.shapes) - 1; i >= 0; i-- {
		if l.shapes[i].Bounds().Contains(p) {
			return l.shapes[i], true
		}
	}
	return nil, false
}

// FindIn returns the shapes lying entirely within b, oldest first.
func (l *Log) FindIn(b core.Bounds) []Shape {
	var found []Shape
	for _, s := range l.shapes {
		if b.ContainsBounds(s.Bounds()) {
			found = append(found, s)
		}
	}
	return found
}
