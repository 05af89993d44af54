// Package terminal is the interactive front-end: it paints a session's grid
// on a tcell screen and turns mouse and keyboard events into session calls.
package terminal

import (
	"asciid/core"
	"asciid/editor"
	"fmt"
	"log"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Options configures Run.
type Options struct {
	// Name is shown in the status line.
	Name string
	// Save persists the session on Ctrl-S. Nil disables saving.
	Save func(s *editor.Session) error
}

// toolKeys maps function keys to tools.
var toolKeys = map[tcell.Key]core.Tool{
	tcell.KeyF1: core.ToolLine,
	tcell.KeyF2: core.ToolRect,
	tcell.KeyF3: core.ToolText,
	tcell.KeyF4: core.ToolEraser,
	tcell.KeyF5: core.ToolSelect,
	tcell.KeyF6: core.ToolJointFixer,
	tcell.KeyF7: core.ToolBlock,
}

type ui struct {
	screen  tcell.Screen
	session *editor.Session
	opts    Options

	style tcell.Style

	// Grid cell shown in the top-left corner of the screen.
	offsetRow, offsetCol int

	dragging bool
	// pointer is the last grid cell under the mouse; pastes land there.
	pointer core.Point

	inPaste bool
	paste   []rune

	message string
}

// Run takes over screen until the user quits with Ctrl-Q.
func Run(screen tcell.Screen, s *editor.Session, opts Options) error {
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	defer screen.DisableMouse()
	screen.EnablePaste()

	newUI(screen, s, opts).loop()
	return nil
}

func newUI(screen tcell.Screen, s *editor.Session, opts Options) *ui {
	return &ui{
		screen:  screen,
		session: s,
		opts:    opts,
		style:   tcell.StyleDefault,
		message: "F1-F7 tools, ^Z/^Y undo/redo, ^C/^X/^V clipboard, ^F fix joints, ^S save, ^Q quit",
	}
}

func (u *ui) loop() {
	u.draw()
	for {
		ev := u.screen.PollEvent()
		if ev == nil {
			return
		}
		if u.handle(ev) {
			return
		}
		u.draw()
	}
}

// handle processes one event and reports whether the user asked to quit.
func (u *ui) handle(ev tcell.Event) bool {
	switch tev := ev.(type) {
	case *tcell.EventResize:
		u.screen.Sync()
		u.scroll(0, 0)
	case *tcell.EventMouse:
		u.handleMouse(tev)
	case *tcell.EventPaste:
		if tev.Start() {
			u.inPaste = true
			u.paste = nil
		} else if tev.End() {
			u.inPaste = false
			if len(u.paste) > 0 && u.session.Paste(string(u.paste), u.pointer) {
				u.message = "pasted"
			}
			u.paste = nil
		}
	case *tcell.EventKey:
		if u.inPaste {
			switch tev.Key() {
			case tcell.KeyRune:
				u.paste = append(u.paste, tev.Rune())
			case tcell.KeyEnter:
				u.paste = append(u.paste, '\n')
			}
			return false
		}
		return u.handleKey(tev)
	}
	return false
}

func (u *ui) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	_, height := u.screen.Size()
	if y >= u.viewHeight(height) && !u.dragging {
		return
	}
	p := u.cellAt(x, y)
	u.pointer = p

	pressed := ev.Buttons()&tcell.Button1 != 0
	switch {
	case pressed && !u.dragging:
		u.dragging = true
		u.session.Start(p)
	case pressed:
		u.session.Move(p)
	case u.dragging:
		u.dragging = false
		u.session.End(p)
	}
}

// cellAt maps a screen position to the grid cell drawn there, clamped to the grid.
func (u *ui) cellAt(x, y int) core.Point {
	g := u.session.Grid()
	cw, ch := g.CellSize()
	if cw <= 0 {
		cw = 1
	}
	if ch <= 0 {
		ch = 1
	}
	col := float64(x+u.offsetCol) + 0.5
	row := float64(y+u.offsetRow) + 0.5
	return g.PointAt(col*cw, row*ch)
}

func (u *ui) handleKey(ev *tcell.EventKey) bool {
	s := u.session

	if tool, ok := toolKeys[ev.Key()]; ok {
		if err := s.SetTool(tool); err != nil {
			u.message = err.Error()
		} else {
			u.message = ""
		}
		return false
	}

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return true
	case tcell.KeyCtrlZ:
		if !s.Undo() {
			u.message = "nothing to undo"
		}
	case tcell.KeyCtrlY:
		if !s.Redo() {
			u.message = "nothing to redo"
		}
	case tcell.KeyCtrlC:
		if s.Copy() {
			u.message = "copied"
		}
	case tcell.KeyCtrlX:
		if s.Cut() {
			u.message = "cut"
		}
	case tcell.KeyCtrlV:
		if s.Paste(s.Clipboard(), u.pointer) {
			u.message = "pasted"
		}
	case tcell.KeyCtrlF:
		u.message = fmt.Sprintf("fixed %d joints", s.FixAll())
	case tcell.KeyCtrlS:
		u.save()
	case tcell.KeyUp:
		u.scroll(-1, 0)
	case tcell.KeyDown:
		u.scroll(1, 0)
	case tcell.KeyLeft:
		u.scroll(0, -1)
	case tcell.KeyRight:
		u.scroll(0, 1)
	case tcell.KeyEnter:
		s.Input(editor.Special(editor.KeyEnter))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		s.Input(editor.Special(editor.KeyBackspace))
	case tcell.KeyDelete:
		s.Input(editor.Special(editor.KeyDelete))
	case tcell.KeyEscape:
		s.Input(editor.Special(editor.KeyEscape))
	case tcell.KeyRune:
		s.Input(editor.RuneKey(ev.Rune()))
	}
	return false
}

func (u *ui) save() {
	if u.opts.Save == nil {
		u.message = "no save target"
		return
	}
	u.session.CommitCurrent()
	if err := u.opts.Save(u.session); err != nil {
		log.Printf("[TERMINAL] Save failed: %v", err)
		u.message = "save failed: " + err.Error()
		return
	}
	u.message = "saved"
}

// scroll moves the viewport, keeping it over the grid.
func (u *ui) scroll(dRow, dCol int) {
	width, height := u.screen.Size()
	rows, cols := u.session.Grid().Size()
	u.offsetRow = min(max(u.offsetRow+dRow, 0), max(rows-u.viewHeight(height), 0))
	u.offsetCol = min(max(u.offsetCol+dCol, 0), max(cols-width, 0))
}

// viewHeight is the number of screen rows showing the grid; the last row
// holds the status line.
func (u *ui) viewHeight(height int) int {
	return max(height-1, 0)
}

func (u *ui) draw() {
	u.screen.Clear()
	width, height := u.screen.Size()

	g := u.session.Grid()
	rows, cols := g.Size()
	preview := u.style.Foreground(tcell.ColorYellow)
	for y := 0; y < u.viewHeight(height) && y+u.offsetRow < rows; y++ {
		for x := 0; x < width && x+u.offsetCol < cols; x++ {
			cell := g.Cell(g.Index(y+u.offsetRow, x+u.offsetCol))
			style := u.style
			if _, ok := cell.Preview(); ok {
				style = preview
			}
			if cell.Highlighted() {
				style = style.Reverse(true)
			}
			u.screen.SetContent(x, y, cell.Read(), nil, style)
		}
	}

	if height > 0 {
		u.drawStatus(height-1, width)
	}
	u.screen.Show()
}

func (u *ui) drawStatus(y, width int) {
	current, total := u.session.History().Stats()
	fields := []string{
		u.opts.Name,
		u.session.ActiveTool().String(),
		fmt.Sprintf("%d/%d", current, total),
		u.message,
	}
	var parts []string
	for _, f := range fields {
		if f != "" {
			parts = append(parts, f)
		}
	}
	line := runewidth.Truncate(" "+strings.Join(parts, " | "), width, "…")

	style := u.style.Reverse(true)
	x := 0
	for _, r := range line {
		u.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	for ; x < width; x++ {
		u.screen.SetContent(x, y, ' ', nil, style)
	}
}
