package app

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/oskun/vellum/internal/config"
	"github.com/oskun/vellum/internal/dispatcher"
	"github.com/oskun/vellum/internal/modal"
	"github.com/oskun/vellum/internal/term"
	"github.com/oskun/vellum/internal/textbuf"
)

// Options configures the Application.
type Options struct {
	// ConfigPath is the path to the settings TOML file.
	ConfigPath string

	// Files are files to open on startup. Only the first is currently
	// loaded into the buffer.
	Files []string

	// Debug enables verbose (debug-level) logging.
	Debug bool

	// LogLevel sets the logging verbosity: "debug", "info", "warn", or
	// "error". Overridden to "debug" when Debug is set.
	LogLevel string

	// ReadOnly opens the buffer without allowing edits. Reserved; the
	// dispatcher does not yet enforce it.
	ReadOnly bool
}

// Application wires the terminal, modal parser, buffer, and dispatcher
// into a runnable process.
type Application struct {
	opts Options

	logger   *Logger
	settings config.Settings
	watcher  *config.Watcher

	term   *term.Terminal
	buf    *textbuf.Buffer
	parser *modal.ModalParser
	disp   *dispatcher.Dispatcher

	running atomic.Bool
	quit    atomic.Bool
}

// withQuitRule extends grammar with a Normal-mode "Z Z" rule (mirroring
// the host's own ZZ-to-quit convention) that commits CmdCustom{Name:
// "quit"}. Application.New registers the handler that actually sets the
// quit flag Run checks.
func withQuitRule(grammar modal.Grammar) (modal.Grammar, error) {
	return grammar.WithRule(func() (*modal.CommandParser, error) {
		return modal.CompileRule("quit", "Z Z", modal.NewModeMask(modal.ModeNormal))
	})
}

// New builds an Application from opts, loading settings and constructing
// the modal parser, buffer, and dispatcher. It does not open the
// terminal; call Run for that.
func New(opts Options) (*Application, error) {
	logLevel := opts.LogLevel
	if opts.Debug {
		logLevel = "debug"
	}

	logger := NewLogger(LoggerConfig{
		Level:  ParseLogLevel(logLevel),
		Output: os.Stderr,
		Prefix: "vellum",
	})
	SetLogger(logger)

	settings := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, NewOperationError("load settings", opts.ConfigPath, err)
		}
		settings = loaded
	}

	mode, err := settings.Mode()
	if err != nil {
		return nil, NewOperationError("resolve initial mode", settings.InitialMode, err)
	}

	grammar, err := withQuitRule(modal.DefaultGrammar())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	parser, err := modal.New(mode, grammar)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	text := ""
	if len(opts.Files) > 0 {
		data, err := os.ReadFile(opts.Files[0])
		if err != nil && !os.IsNotExist(err) {
			return nil, NewOperationError("open", opts.Files[0], err)
		}
		text = string(data)
	}
	buf := textbuf.New(text)

	app := &Application{
		opts:     opts,
		logger:   logger,
		settings: settings,
		buf:      buf,
		parser:   parser,
	}
	app.disp = dispatcher.New(buf, parser, logger)
	app.disp.RegisterCustom("quit", func(_ *textbuf.Buffer, _ modal.Cmd) error {
		app.quit.Store(true)
		return nil
	})

	if opts.ConfigPath != "" {
		watcher, err := config.NewWatcher(opts.ConfigPath, app.reloadSettings)
		if err != nil {
			logger.Warn("settings watcher disabled: %v", err)
		} else {
			app.watcher = watcher
		}
	}

	return app, nil
}

// Logger returns the application's logger.
func (a *Application) Logger() *Logger {
	return a.logger
}

// Buffer returns the buffer being edited. Exposed for tests and for a
// host driving the Application without a terminal.
func (a *Application) Buffer() *textbuf.Buffer {
	return a.buf
}

// Parser returns the modal parser. Exposed for tests.
func (a *Application) Parser() *modal.ModalParser {
	return a.parser
}

// Dispatcher returns the command dispatcher, so a caller can
// RegisterCustom before Run.
func (a *Application) Dispatcher() *dispatcher.Dispatcher {
	return a.disp
}

func (a *Application) reloadSettings(settings config.Settings, err error) {
	if err != nil {
		a.logger.Warn("failed to reload settings: %v", err)
		return
	}
	a.logger.Info("settings reloaded")
	a.settings = settings
}
