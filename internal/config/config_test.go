package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oskun/vellum/internal/modal"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if settings != Default() {
		t.Errorf("Load() = %+v, want Default() %+v", settings, Default())
	}
}

func TestLoadParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	body := `tab_width = 2
initial_mode = "insert"
use_system_clipboard = true
log_level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Settings{
		TabWidth:           2,
		InitialMode:        "insert",
		UseSystemClipboard: true,
		LogLevel:           "debug",
	}
	if settings != want {
		t.Errorf("Load() = %+v, want %+v", settings, want)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("tab_width = ["), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() with malformed TOML: want error, got nil")
	}
}

func TestSettingsModeResolvesKnownModes(t *testing.T) {
	tests := []struct {
		initial string
		want    modal.Mode
	}{
		{"", modal.ModeNormal},
		{"normal", modal.ModeNormal},
		{"insert", modal.ModeInsert},
		{"visual", modal.ModeVisual},
	}

	for _, tt := range tests {
		s := Settings{InitialMode: tt.initial}
		got, err := s.Mode()
		if err != nil {
			t.Errorf("Mode() for %q error = %v", tt.initial, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Mode() for %q = %v, want %v", tt.initial, got, tt.want)
		}
	}
}

func TestSettingsModeRejectsUnknown(t *testing.T) {
	s := Settings{InitialMode: "bogus"}
	if _, err := s.Mode(); err != ErrInvalidInitialMode {
		t.Errorf("Mode() error = %v, want ErrInvalidInitialMode", err)
	}
}
