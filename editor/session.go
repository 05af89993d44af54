// Package editor ties the grid, the edit history and the shapes together into
// an editing session driven by pointer gestures and key presses.
package editor

import (
	"asciid/canvas"
	"asciid/core"
	"asciid/history"
	"asciid/shape"
	"asciid/store"
	"errors"
	"fmt"
	"io"
)

// ErrUnknownTool is returned when selecting a tool that has no handler.
var ErrUnknownTool = errors.New("unknown tool")

// DefaultTool is active in a new session.
const DefaultTool = core.ToolLine

// Session owns everything an editor window edits: the grid, its history, the
// committed shapes and the gesture in progress.
//
// Session is NOT thread-safe. Front-ends deliver events one at a time.
type Session struct {
	grid    *canvas.Grid
	history *history.History
	shapes  shape.Log

	// current is the gesture being drawn; it is not part of shapes until
	// committed.
	current shape.Shape
	// pending holds edits made on behalf of current before it commits, such
	// as the cells a moved block was lifted from.
	pending history.Version

	tools  map[core.Tool]Tool
	active core.Tool

	clipboard string
	selected  []shape.Shape
}

// NewSession creates a session editing g with h as its undo log.
func NewSession(g *canvas.Grid, h *history.History) *Session {
	return &Session{
		grid:    g,
		history: h,
		tools: map[core.Tool]Tool{
			core.ToolLine:       &lineTool{},
			core.ToolRect:       &rectTool{},
			core.ToolText:       &textTool{},
			core.ToolEraser:     &eraserTool{},
			core.ToolSelect:     &selectTool{},
			core.ToolJointFixer: &jointFixerTool{},
			core.ToolBlock:      &blockTool{},
		},
		active: DefaultTool,
	}
}

// Grid returns the edited grid.
func (s *Session) Grid() *canvas.Grid {
	return s.grid
}

// History returns the undo log.
func (s *Session) History() *history.History {
	return s.history
}

// Shapes returns the committed shapes, oldest first.
func (s *Session) Shapes() []shape.Shape {
	return s.shapes.All()
}

// Selected returns the committed shapes inside the last selection.
func (s *Session) Selected() []shape.Shape {
	return s.selected
}

// Current returns the gesture in progress, or nil.
func (s *Session) Current() shape.Shape {
	return s.current
}

// Clipboard returns the last copied text.
func (s *Session) Clipboard() string {
	return s.clipboard
}

// ActiveTool returns the selected tool.
func (s *Session) ActiveTool() core.Tool {
	return s.active
}

// SetTool selects the tool handling subsequent events. An open text shape is
// committed; any other gesture in progress is dropped.
func (s *Session) SetTool(t core.Tool) error {
	if _, ok := s.tools[t]; !ok {
		return fmt.Errorf("%w: %v", ErrUnknownTool, t)
	}
	s.begin(nil)
	s.active = t
	return nil
}

// Start forwards a pointer press at p to the active tool.
func (s *Session) Start(p core.Point) {
	if s.grid.Len() == 0 {
		return
	}
	s.tools[s.active].Start(s, s.grid.Clamp(p))
}

// Move forwards a pointer drag to p.
func (s *Session) Move(p core.Point) {
	if s.grid.Len() == 0 {
		return
	}
	s.tools[s.active].Move(s, s.grid.Clamp(p))
}

// End forwards a pointer release at p.
func (s *Session) End(p core.Point) {
	if s.grid.Len() == 0 {
		return
	}
	s.tools[s.active].End(s, s.grid.Clamp(p))
}

// Input forwards a key press to the active tool.
func (s *Session) Input(k KeyEvent) {
	s.tools[s.active].Input(s, k)
}

// CommitCurrent merges the gesture in progress into the grid and saves it as
// one version. It reports whether anything changed.
func (s *Session) CommitCurrent() bool {
	if s.current == nil {
		return false
	}

	v := s.current.Commit(s.grid)
	if v.Len() > 0 {
		s.shapes.Add(s.current)
	}
	s.current = nil

	combined := s.pending
	combined.Append(v)
	s.pending = history.Version{}
	s.history.Save(combined)
	return combined.Len() > 0
}

// Cancel drops the gesture in progress and restores anything it lifted.
func (s *Session) Cancel() {
	if s.current == nil {
		return
	}

	s.grid.DiscardAll()
	edits := s.pending.Edits()
	for i := len(edits) - 1; i >= 0; i-- {
		s.grid.SetContent(edits[i].Index, edits[i].From)
	}
	s.pending = history.Version{}

	if s.current.Kind() == shape.KindText {
		s.grid.ClearHighlight()
	}
	s.current = nil
}

// begin replaces the gesture in progress with sh, which may be nil.
func (s *Session) begin(sh shape.Shape) {
	if s.current != nil {
		if s.current.IsManualCommit() {
			s.CommitCurrent()
		} else {
			s.Cancel()
		}
	}
	s.current = sh
}

func (s *Session) isCurrent(sh shape.Shape) bool {
	return s.current != nil && s.current == sh
}

// Undo reverts the last saved version. A gesture in progress is dropped first.
func (s *Session) Undo() bool {
	s.Cancel()
	return s.history.Undo(s.grid)
}

// Redo reapplies the last undone version.
func (s *Session) Redo() bool {
	s.Cancel()
	return s.history.Redo(s.grid)
}

// Copy stores the selected content in the clipboard.
func (s *Session) Copy() bool {
	if _, ok := s.grid.Selection(); !ok {
		return false
	}
	s.clipboard = s.grid.HighlightedContent()
	return true
}

// Cut copies the selection and erases it.
func (s *Session) Cut() bool {
	if !s.Copy() {
		return false
	}
	s.EraseSelection()
	return true
}

// EraseSelection blanks the selected cells as one version.
func (s *Session) EraseSelection() bool {
	v := s.grid.EraseHighlighted(core.ToolSelect)
	s.selected = nil
	s.history.Save(v)
	return v.Len() > 0
}

// Paste opens a block holding text at p and switches to the block tool, so
// the next drag positions it.
func (s *Session) Paste(text string, p core.Point) bool {
	if text == "" || s.grid.Len() == 0 {
		return false
	}
	if err := s.SetTool(core.ToolBlock); err != nil {
		return false
	}
	s.grid.ClearHighlight()
	s.tools[core.ToolBlock].(*blockTool).place(s, text, s.grid.Clamp(p))
	return true
}

// FixAll rebuilds every line glyph on the grid from its neighbors and saves
// the changes as one version. It returns the number of cells changed.
func (s *Session) FixAll() int {
	s.begin(nil)

	rows, cols := s.grid.Size()
	var v history.Version
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			to, ok := s.jointAt(row, col, false)
			if !ok {
				continue
			}
			i := s.grid.Index(row, col)
			if from := s.grid.ReadContent(i); from != to {
				v.Push(i, from, to, core.ToolJointFixer)
			}
		}
	}

	// Neighbors are read before any cell is rewritten.
	for _, e := range v.Edits() {
		s.grid.SetContent(e.Index, e.To)
	}
	s.history.Save(v)
	return v.Len()
}

// New empties the grid and forgets all history.
func (s *Session) New() {
	s.current = nil
	s.pending = history.Version{}
	s.grid.Reset()
	s.history.Clear()
	s.shapes.Clear()
	s.selected = nil
}

// Open replaces the session with the diagram read from r. The session is left
// untouched when the diagram cannot be placed.
func (s *Session) Open(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read diagram: %w", err)
	}
	return s.load(string(data))
}

func (s *Session) load(text string) error {
	if err := s.grid.Validate(text); err != nil {
		return err
	}
	s.New()
	return s.grid.LoadContent(text)
}

// Save writes the committed diagram to w.
func (s *Session) Save(w io.Writer) error {
	_, err := io.WriteString(w, s.grid.Text())
	return err
}

// Document snapshots the committed diagram and its history under name.
func (s *Session) Document(name string) store.Document {
	rows, cols := s.grid.Size()
	cursor, _ := s.history.Stats()
	return store.Document{
		Name:     name,
		Rows:     rows,
		Cols:     cols,
		Text:     s.grid.Text(),
		Versions: s.history.Versions(),
		Cursor:   cursor,
	}
}

// Restore loads a stored document. Its history is only kept when it was
// recorded on a grid of the same size, since edits address cells by index.
func (s *Session) Restore(doc store.Document) error {
	if err := s.load(doc.Text); err != nil {
		return fmt.Errorf("failed to restore %q: %w", doc.Name, err)
	}
	rows, cols := s.grid.Size()
	if doc.Rows == rows && doc.Cols == cols {
		s.history.Restore(doc.Versions, doc.Cursor)
	}
	return nil
}
