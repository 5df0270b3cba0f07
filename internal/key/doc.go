// Package key provides the key event types shared by the terminal backend
// and the modal command parser.
//
// It defines the fundamental types for representing keyboard input:
//
//   - Key: identifies a keyboard key (special keys, function keys, or a rune)
//   - Modifier: Ctrl, Alt, Shift, Meta
//   - Event: a single key press with modifiers
//
// The surface here is deliberately narrow: only the keys and modifiers the
// fixed modal grammar and terminal backend actually produce or match.
// There is no keybinding remapping and no key-spec parsing here; the
// only pattern strings are internal/modal's grammar patterns, which
// that package compiles itself.
package key
