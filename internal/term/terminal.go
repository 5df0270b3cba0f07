// Package term adapts a tcell screen to internal/key.Event and renders a
// textbuf.Buffer to it. It is the only package that imports tcell.
package term

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/oskun/vellum/internal/key"
	"github.com/oskun/vellum/internal/textbuf"
)

// Terminal drives a tcell screen: it polls key events and renders a
// textbuf.Buffer with a status line showing the active mode.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
}

// New creates a Terminal with a fresh tcell screen. Init must be called
// before use.
func New() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// Init puts the terminal into raw/alternate-screen mode.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Init()
}

// Shutdown restores the terminal to its original state.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

// Size returns the current terminal dimensions in columns, rows.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

// Interrupt unblocks a pending PollEvent call, so a caller waiting in
// another goroutine can ask the poll loop to check a shutdown condition
// without waiting for the next real key press.
func (t *Terminal) Interrupt() {
	t.mu.Lock()
	screen := t.screen
	t.mu.Unlock()
	if screen != nil {
		screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
}

// PollEvent blocks until the next terminal event and returns the
// corresponding key.Event. Resize and other non-key events return a zero
// Event with ok false; callers should loop and poll again.
func (t *Terminal) PollEvent() (evt key.Event, ok bool) {
	ev := t.screen.PollEvent()
	ek, isKey := ev.(*tcell.EventKey)
	if !isKey {
		return key.Event{}, false
	}
	return convertKey(ek), true
}

// Render draws buf to the screen starting at the top-left, with a status
// line on the last row naming mode, then flushes to the terminal.
func (t *Terminal) Render(buf *textbuf.Buffer, modeName string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	width, height := t.screen.Size()
	t.screen.Clear()

	textRows := height - 1
	if textRows < 0 {
		textRows = 0
	}

	for row := 0; row < textRows && row < buf.LineCount(); row++ {
		for col, r := range buf.Line(row) {
			if col >= width {
				break
			}
			t.screen.SetContent(col, row, r, nil, tcell.StyleDefault)
		}
	}

	status := "-- " + modeName + " --"
	for col, r := range status {
		if col >= width {
			break
		}
		t.screen.SetContent(col, height-1, r, nil, tcell.StyleDefault.Reverse(true))
	}

	cursor := buf.Cursor()
	if cursor.Line < textRows {
		t.screen.ShowCursor(cursor.Col, cursor.Line)
	}

	t.screen.Show()
}

func convertKey(ev *tcell.EventKey) key.Event {
	mods := convertMod(ev.Modifiers())

	if ev.Key() == tcell.KeyRune {
		return key.NewRuneEvent(ev.Rune(), mods)
	}

	k, ok := tcellSpecialKeys[ev.Key()]
	if !ok {
		return key.Event{}
	}
	return key.NewSpecialEvent(k, mods)
}

func convertMod(m tcell.ModMask) key.Modifier {
	var out key.Modifier
	if m&tcell.ModShift != 0 {
		out |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		out |= key.ModMeta
	}
	return out
}

var tcellSpecialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:    key.KeyEscape,
	tcell.KeyEnter:     key.KeyEnter,
	tcell.KeyTab:       key.KeyTab,
	tcell.KeyBackspace: key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:    key.KeyDelete,
	tcell.KeyInsert:    key.KeyInsert,
	tcell.KeyHome:      key.KeyHome,
	tcell.KeyEnd:       key.KeyEnd,
	tcell.KeyPgUp:      key.KeyPageUp,
	tcell.KeyPgDn:      key.KeyPageDown,
	tcell.KeyUp:        key.KeyUp,
	tcell.KeyDown:      key.KeyDown,
	tcell.KeyLeft:      key.KeyLeft,
	tcell.KeyRight:     key.KeyRight,
	tcell.KeyF1:        key.KeyF1,
	tcell.KeyF2:        key.KeyF2,
	tcell.KeyF3:        key.KeyF3,
	tcell.KeyF4:        key.KeyF4,
	tcell.KeyF5:        key.KeyF5,
	tcell.KeyF6:        key.KeyF6,
	tcell.KeyF7:        key.KeyF7,
	tcell.KeyF8:        key.KeyF8,
	tcell.KeyF9:        key.KeyF9,
	tcell.KeyF10:       key.KeyF10,
	tcell.KeyF11:       key.KeyF11,
	tcell.KeyF12:       key.KeyF12,
}
