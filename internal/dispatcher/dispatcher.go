// Package dispatcher executes modal.Cmd values against a textbuf.Buffer.
package dispatcher

import (
	"fmt"

	"github.com/oskun/vellum/internal/modal"
	"github.com/oskun/vellum/internal/textbuf"
)

// CustomFunc is a host-registered handler for a CmdCustom command. An
// error it returns is wrapped in ExecError and returned from Execute.
type CustomFunc func(buf *textbuf.Buffer, cmd modal.Cmd) error

// ExecError wraps an error encountered while executing a Cmd.
type ExecError struct {
	Tag modal.CmdTag
	Err error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("dispatcher: executing %v: %v", e.Tag, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// Logger is the subset of internal/app.Logger's interface this package
// needs. Declared locally, rather than importing internal/app directly,
// since internal/app imports this package to build the run loop's
// Dispatcher.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}

// Dispatcher interprets modal.Cmd values against a Buffer and a
// ModalParser, applying mode transitions the parser itself only requests.
type Dispatcher struct {
	buf    *textbuf.Buffer
	parser *modal.ModalParser
	log    Logger
	custom map[string]CustomFunc
}

// New creates a Dispatcher over buf, driving mode transitions through
// parser. A nil log discards debug/warn output.
func New(buf *textbuf.Buffer, parser *modal.ModalParser, log Logger) *Dispatcher {
	if log == nil {
		log = noopLogger{}
	}
	return &Dispatcher{
		buf:    buf,
		parser: parser,
		log:    log,
		custom: make(map[string]CustomFunc),
	}
}

// RegisterCustom binds name to fn, so a host-compiled modal.CompileRule
// producing CmdCustom{Name: name} has something to run.
func (d *Dispatcher) RegisterCustom(name string, fn CustomFunc) {
	d.custom[name] = fn
}

// Execute interprets cmd, mutating the buffer and (for mode-switching
// commands) the parser's mode. It only ever returns a non-nil error for a
// CmdCustom whose registered handler fails; every built-in CmdKind is
// defined for every input and cannot fail.
func (d *Dispatcher) Execute(cmd modal.Cmd) error {
	switch kind := cmd.Kind.(type) {
	case modal.CmdMove:
		d.move(kind.Kind, cmd.Repeat)

	case modal.CmdDelete:
		text, linewise := d.rangeText(kind.Motion, cmd.Repeat, true)
		d.buf.SetRegister(splitLines(text), linewise)
		d.leaveVisualAfterOperator()

	case modal.CmdChange:
		text, linewise := d.rangeText(kind.Motion, cmd.Repeat, true)
		d.buf.SetRegister(splitLines(text), linewise)
		d.setMode(modal.ModeInsert)

	case modal.CmdYank:
		text, linewise := d.rangeText(kind.Motion, cmd.Repeat, false)
		d.buf.SetRegister(splitLines(text), linewise)
		d.leaveVisualAfterOperator()

	case modal.CmdSwitchMove:
		d.move(kind.Motion, 1)
		d.setMode(kind.Mode)

	case modal.CmdSwitchMode:
		d.setMode(kind.To)

	case modal.CmdNewLine:
		d.newLine(kind, cmd.Repeat)

	case modal.CmdUndo, modal.CmdRedo:
		d.log.Debug("undo/redo accepted as no-op")

	case modal.CmdPaste:
		d.paste(cmd.Repeat, true)

	case modal.CmdPasteBefore:
		d.paste(cmd.Repeat, false)

	case modal.CmdCustom:
		return d.runCustom(kind, cmd)

	default:
		d.log.Warn("unhandled command kind %T", cmd.Kind)
	}
	return nil
}

// setMode applies a mode transition through the parser, keeping the
// buffer's Visual-selection anchor in sync: entering Visual fixes the
// anchor at the current cursor, leaving it clears the anchor.
func (d *Dispatcher) setMode(m modal.Mode) {
	prev := d.parser.Mode()
	d.parser.SetMode(m)
	switch {
	case m == modal.ModeVisual && prev != modal.ModeVisual:
		d.buf.SetAnchor(d.buf.Cursor())
	case prev == modal.ModeVisual && m != modal.ModeVisual:
		d.buf.ClearAnchor()
	}
}

// leaveVisualAfterOperator returns to Normal mode once a Delete or Yank
// has consumed the active Visual selection, matching the way CmdChange
// always lands in Insert rather than staying in Visual.
func (d *Dispatcher) leaveVisualAfterOperator() {
	if d.parser.Mode() == modal.ModeVisual {
		d.setMode(modal.ModeNormal)
	}
}

func (d *Dispatcher) runCustom(kind modal.CmdCustom, cmd modal.Cmd) error {
	fn, ok := d.custom[kind.Name]
	if !ok {
		d.log.Debug("no handler registered for custom command %q", kind.Name)
		return nil
	}
	if err := fn(d.buf, cmd); err != nil {
		return &ExecError{Tag: kind.Tag(), Err: err}
	}
	return nil
}

// move applies a single motion Repeat times, exactly as a bare CmdMove or
// the motion half of a CmdSwitchMove would.
func (d *Dispatcher) move(mk modal.MotionKind, repeat uint16) {
	n := int(repeat)
	if n < 1 {
		n = 1
	}
	switch mk.Tag {
	case modal.MotionLeft:
		d.buf.CursorLeft(n)
	case modal.MotionRight:
		d.buf.CursorRight(n)
	case modal.MotionUp:
		d.buf.CursorUp(n)
	case modal.MotionDown:
		d.buf.CursorDown(n)
	case modal.MotionLineStart:
		d.buf.CursorLineStart()
	case modal.MotionLineEnd:
		d.buf.CursorLineEnd()
	case modal.MotionDocStart:
		d.buf.CursorDocStart()
	case modal.MotionDocEnd:
		d.buf.CursorDocEnd()
	default:
		d.log.Debug("motion tag %v has no resolved executor behavior yet", mk.Tag)
	}
}

// rangeText computes the text an operator with motion (nil meaning
// linewise-over-repeat in Normal, or the active selection in Visual)
// would act on, removing it when remove is true, and reports whether it
// was captured linewise.
func (d *Dispatcher) rangeText(motion *modal.Motion, repeat uint16, remove bool) (string, bool) {
	if motion == nil {
		if d.parser.Mode() == modal.ModeVisual {
			return d.selectionRange(remove)
		}
		return d.linewiseRange(repeat, remove)
	}

	from := d.buf.Cursor()
	n := int(motion.Repeat)
	if n < 1 {
		n = 1
	}

	to := from
	inclusive := motion.Kind.IsDeleteEndInclusive()
	switch motion.Kind.Tag {
	case modal.MotionLeft:
		to.Col -= n
	case modal.MotionRight:
		to.Col += n
	case modal.MotionLineStart:
		to.Col = 0
	case modal.MotionLineEnd:
		// $ as an operator target is inclusive of the last character,
		// unlike the plain cursor motion.
		to.Col = len(d.buf.Line(from.Line))
		if to.Col > from.Col {
			to.Col--
		}
		inclusive = true
	case modal.MotionUp:
		return d.verticalRange(from.Line-n, n+1, remove)
	case modal.MotionDown:
		return d.verticalRange(from.Line, n+1, remove)
	default:
		d.log.Debug("motion tag %v has no resolved operator-range behavior yet", motion.Kind.Tag)
		return "", false
	}

	if remove {
		return d.buf.DeleteRange(from, to, inclusive), false
	}
	return d.buf.TextRange(from, to, inclusive), false
}

// selectionRange returns the text spanned by the active Visual anchor
// and the current cursor, inclusive of both ends as vim's Visual mode
// always is.
func (d *Dispatcher) selectionRange(remove bool) (string, bool) {
	cursor := d.buf.Cursor()
	anchor, ok := d.buf.Anchor()
	if !ok {
		anchor = cursor
	}
	if remove {
		return d.buf.DeleteRange(anchor, cursor, true), false
	}
	return d.buf.TextRange(anchor, cursor, true), false
}

func (d *Dispatcher) linewiseRange(repeat uint16, remove bool) (string, bool) {
	n := int(repeat)
	if n < 1 {
		n = 1
	}
	return d.verticalRange(d.buf.Cursor().Line, n, remove)
}

// verticalRange spans count whole lines starting at start, used both for
// the no-motion linewise case (dd, yy) and dj/dk/d2k-style vertical
// motions, which in vim act linewise over the lines the motion crosses.
func (d *Dispatcher) verticalRange(start, count int, remove bool) (string, bool) {
	if count < 1 {
		count = 1
	}
	if start < 0 {
		// The motion's start line was clamped to the top of the buffer;
		// shrink count by the same amount so the span still ends at the
		// line the motion actually reached, not count-1 lines past it.
		count += start
		start = 0
		if count < 1 {
			count = 1
		}
	}

	if remove {
		lines := d.buf.DeleteLines(start, count)
		return joinLines(lines), true
	}
	lines := d.buf.Lines(start, count)
	return joinLines(lines), true
}

func (d *Dispatcher) newLine(kind modal.CmdNewLine, repeat uint16) {
	n := int(repeat)
	if n < 1 {
		n = 1
	}
	line := d.buf.Cursor().Line
	if !kind.Up {
		line++
	}
	for i := 0; i < n; i++ {
		d.buf.InsertLine(line + i)
	}
	if kind.SwitchMode {
		d.setMode(modal.ModeInsert)
	}
}

func (d *Dispatcher) paste(repeat uint16, after bool) {
	n := int(repeat)
	if n < 1 {
		n = 1
	}
	lines, linewise := d.buf.Register()
	if len(lines) == 0 {
		return
	}
	for i := 0; i < n; i++ {
		if linewise {
			d.buf.PasteLines(lines, after)
		} else {
			d.buf.PasteCharwise(joinLines(lines), after)
		}
	}
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	var lines []string
	start := 0
	for i, r := range text {
		if r == '\n' {
			lines = append(lines, text[start:i])
			start = i + 1
		}
	}
	lines = append(lines, text[start:])
	return lines
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
