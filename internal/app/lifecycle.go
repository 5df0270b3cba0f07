package app

import (
	"github.com/oskun/vellum/internal/key"
	"github.com/oskun/vellum/internal/term"
)

// SetTerminal attaches the terminal backend Run will poll events from and
// render to. Must be called before Run; calling it while running returns
// ErrAlreadyRunning.
func (a *Application) SetTerminal(t *term.Terminal) error {
	if a.running.Load() {
		return ErrAlreadyRunning
	}
	a.term = t
	return nil
}

// Feed runs one key.Event through the modal parser and, if it completes a
// command, through the dispatcher. Exposed so tests and embedders can
// drive the Application without a terminal attached.
func (a *Application) Feed(evt key.Event) error {
	cmd := a.parser.Feed(evt)
	if cmd == nil {
		return nil
	}
	return a.disp.Execute(*cmd)
}

// Run opens the attached terminal and processes key events until the
// quit flag is set, by Shutdown or by the "quit" custom command. It
// returns ErrQuit on that exit, ErrComponentNotAvailable if no terminal
// was attached, ErrAlreadyRunning if already running, and an
// *OperationError if the terminal fails to initialize.
func (a *Application) Run() error {
	if a.term == nil {
		return ErrComponentNotAvailable
	}
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	if err := a.term.Init(); err != nil {
		return NewOperationError("init", "terminal", err).WithContext("tcell")
	}
	defer a.term.Shutdown()

	if a.watcher != nil {
		defer a.watcher.Close()
	}
	a.quit.Store(false)

	for !a.quit.Load() {
		a.term.Render(a.buf, a.parser.Mode().String())

		evt, ok := a.term.PollEvent()
		if !ok {
			continue
		}

		if err := a.Feed(evt); err != nil {
			a.logger.Error("command execution failed: %v", err)
		}
	}

	return ErrQuit
}

// Shutdown requests that a running Run loop exit at its next iteration.
// Safe to call from another goroutine, such as a signal handler. A no-op
// if Run is not active.
func (a *Application) Shutdown() {
	if !a.running.Load() {
		return
	}
	a.quit.Store(true)
	if a.term != nil {
		a.term.Interrupt()
	}
}
