// Package config loads editor settings from TOML and watches the settings
// file for live reload.
package config

import (
	"errors"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/oskun/vellum/internal/modal"
)

// ErrInvalidInitialMode is returned when a settings file names an
// InitialMode that does not match any known mode.
var ErrInvalidInitialMode = errors.New("config: invalid initial_mode")

// Settings holds the editor's user-configurable behavior.
type Settings struct {
	// TabWidth is the number of columns a tab stop advances. It is
	// loaded and stored; the terminal renderer does not read it and
	// draws a tab as a single cell.
	TabWidth int `toml:"tab_width"`

	// InitialMode is the mode the modal parser starts in.
	InitialMode string `toml:"initial_mode"`

	// UseSystemClipboard is loaded and stored but nothing reads it:
	// CmdPaste/CmdPasteBefore always use the buffer's internal register,
	// never the OS clipboard.
	UseSystemClipboard bool `toml:"use_system_clipboard"`

	// LogLevel is loaded and stored but not applied: the process
	// logger's level comes from app.Options (the -log-level and -debug
	// flags), not from this field.
	LogLevel string `toml:"log_level"`
}

// Default returns the settings used when no file is present.
func Default() Settings {
	return Settings{
		TabWidth:           4,
		InitialMode:        "normal",
		UseSystemClipboard: false,
		LogLevel:           "info",
	}
}

// Mode resolves InitialMode to a modal.Mode.
func (s Settings) Mode() (modal.Mode, error) {
	switch s.InitialMode {
	case "", "normal":
		return modal.ModeNormal, nil
	case "insert":
		return modal.ModeInsert, nil
	case "visual":
		return modal.ModeVisual, nil
	default:
		return 0, ErrInvalidInitialMode
	}
}

// Load reads Settings from a TOML file at path. A missing file is not an
// error; Default is returned instead.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Settings{}, err
	}

	settings := Default()
	if err := toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}
