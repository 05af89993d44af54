package terminal

import (
	"asciid/canvas"
	"asciid/core"
	"asciid/editor"
	"asciid/history"
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newTestUI(t *testing.T, rows, cols, width, height int) (*ui, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(width, height)

	s := editor.NewSession(canvas.New(1, 1, rows, cols), history.New())
	return newUI(screen, s, Options{Name: "test"}), screen
}

func readScreenLine(screen tcell.Screen, x, y, width int) string {
	runes := make([]rune, width)
	for i := 0; i < width; i++ {
		ch, _, _, _ := screen.GetContent(x+i, y)
		if ch == 0 {
			ch = ' '
		}
		runes[i] = ch
	}
	return strings.TrimRight(string(runes), " ")
}

func press(x, y int) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone)
}

func release(x, y int) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func typed(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestDragDrawsLine(t *testing.T) {
	u, screen := newTestUI(t, 5, 10, 20, 6)

	u.handle(press(1, 1))
	u.handle(press(3, 1))
	u.draw()
	if got := readScreenLine(screen, 0, 1, 20); got != " ──▶" {
		t.Fatalf("preview row = %q, want %q", got, " ──▶")
	}
	if got := u.session.Grid().Text(); got != "" {
		t.Fatalf("content before release = %q, want empty", got)
	}

	u.handle(press(4, 1))
	u.handle(release(4, 1))
	u.draw()

	if got := u.session.Grid().Text(); got != "     \n ───▶\n" {
		t.Fatalf("grid text = %q", got)
	}
	if got := readScreenLine(screen, 0, 1, 20); got != " ───▶" {
		t.Fatalf("screen row = %q, want %q", got, " ───▶")
	}
}

func TestStatusLine(t *testing.T) {
	u, screen := newTestUI(t, 5, 10, 40, 6)

	u.handle(press(0, 0))
	u.handle(release(2, 0))
	u.draw()

	status := readScreenLine(screen, 0, 5, 40)
	if !strings.HasPrefix(status, " test | LINE | 1/1") {
		t.Fatalf("status = %q", status)
	}
	if !strings.HasSuffix(status, "…") {
		t.Fatalf("long status should be truncated, got %q", status)
	}
}

func TestToolKeysAndHistory(t *testing.T) {
	u, _ := newTestUI(t, 5, 10, 20, 6)
	const box = "┌──┐\n│  │\n└──┘\n"

	u.handle(key(tcell.KeyF2))
	if got := u.session.ActiveTool(); got != core.ToolRect {
		t.Fatalf("active tool = %v, want Rect", got)
	}

	u.handle(press(0, 0))
	u.handle(release(3, 2))
	if got := u.session.Grid().Text(); got != box {
		t.Fatalf("grid text = %q, want box", got)
	}

	u.handle(key(tcell.KeyCtrlZ))
	if got := u.session.Grid().Text(); got != "" {
		t.Fatalf("after undo = %q, want empty", got)
	}
	u.handle(key(tcell.KeyCtrlZ))
	if u.message != "nothing to undo" {
		t.Fatalf("message = %q", u.message)
	}

	u.handle(key(tcell.KeyCtrlY))
	if got := u.session.Grid().Text(); got != box {
		t.Fatalf("after redo = %q, want box", got)
	}

	if quit := u.handle(key(tcell.KeyCtrlQ)); !quit {
		t.Fatal("Ctrl-Q should quit")
	}
}

func TestTyping(t *testing.T) {
	u, _ := newTestUI(t, 4, 6, 20, 6)

	u.handle(key(tcell.KeyF3))
	u.handle(press(1, 1))
	u.handle(release(1, 1))
	u.handle(typed('h'))
	u.handle(typed('i'))
	u.handle(key(tcell.KeyEscape))

	if got := u.session.Grid().Text(); got != "   \n hi\n" {
		t.Fatalf("grid text = %q", got)
	}
}

func TestScrollingOffsetsPointer(t *testing.T) {
	u, _ := newTestUI(t, 10, 10, 5, 4)

	for i := 0; i < 20; i++ {
		u.handle(key(tcell.KeyDown))
		u.handle(key(tcell.KeyRight))
	}
	if u.offsetRow != 7 || u.offsetCol != 5 {
		t.Fatalf("offset = (%d, %d), want (7, 5)", u.offsetRow, u.offsetCol)
	}

	u.handle(key(tcell.KeyUp))
	u.handle(press(0, 0))
	if want := (core.Point{Row: 6, Col: 5}); u.pointer != want {
		t.Fatalf("pointer = %v, want %v", u.pointer, want)
	}
}

func TestBracketedPaste(t *testing.T) {
	u, _ := newTestUI(t, 4, 6, 20, 6)

	u.handle(tcell.NewEventPaste(true))
	u.handle(typed('a'))
	u.handle(typed('b'))
	u.handle(key(tcell.KeyEnter))
	u.handle(typed('c'))
	u.handle(tcell.NewEventPaste(false))

	if got := u.session.ActiveTool(); got != core.ToolBlock {
		t.Fatalf("active tool = %v, want Block", got)
	}
	u.handle(key(tcell.KeyEnter))

	if got := u.session.Grid().Text(); got != "ab\nc \n" {
		t.Fatalf("grid text = %q", got)
	}
}

func TestSave(t *testing.T) {
	tests := []struct {
		name    string
		save    func(*editor.Session) error
		message string
	}{
		{"No target", nil, "no save target"},
		{"Success", func(*editor.Session) error { return nil }, "saved"},
		{"Failure", func(*editor.Session) error { return errors.New("boom") }, "save failed: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, _ := newTestUI(t, 2, 2, 10, 3)
			u.opts.Save = tt.save

			u.handle(key(tcell.KeyCtrlS))
			if u.message != tt.message {
				t.Errorf("message = %q, want %q", u.message, tt.message)
			}
		})
	}
}

func TestLoopProcessesEvents(t *testing.T) {
	u, screen := newTestUI(t, 3, 6, 20, 6)

	for _, ev := range []tcell.Event{press(0, 0), release(2, 0), key(tcell.KeyCtrlQ)} {
		if err := screen.PostEvent(ev); err != nil {
			t.Fatalf("post event: %v", err)
		}
	}
	u.loop()

	if got := u.session.Grid().Text(); got != "──▶\n" {
		t.Fatalf("grid text = %q", got)
	}
}
