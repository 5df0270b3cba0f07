package key

import (
	"testing"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyNone, "None"},
		{KeyEscape, "Escape"},
		{KeyEnter, "Enter"},
		{KeyTab, "Tab"},
		{KeyBackspace, "Backspace"},
		{KeyDelete, "Delete"},
		{KeyUp, "Up"},
		{KeyDown, "Down"},
		{KeyLeft, "Left"},
		{KeyRight, "Right"},
		{KeyF1, "F1"},
		{KeyF12, "F12"},
		{KeyRune, "Rune"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("Key.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyStringUnknown(t *testing.T) {
	if got := Key(999).String(); got != "Key(999)" {
		t.Errorf("Key(999).String() = %q, want %q", got, "Key(999)")
	}
}
