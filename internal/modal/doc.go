// Package modal implements the vi-style modal command parser.
//
// A ModalParser holds the current editing Mode and a fixed bank of
// CommandParsers, one per built-in grammar rule. Every key event is
// distributed to every rule that has not yet failed on the current
// input; the first rule to fully match wins and the parser resets for
// the next command. There is no backtracking and no lookahead — each
// rule advances an internal cursor over its own ordered list of Input
// matchers (count prefix, literal key, or a self-contained motion).
//
// # Grammar
//
// The built-in grammar is the closed set of patterns in grammar.go:
//
//	[count][operator][motion]        d3l, 2dh
//	[count][operator][operator]      dd, 3cc  (linewise)
//	[count][motion]                  20l, 0, $  (single-key motions)
//	[count][simple command]          10O, 200P
//
// Full vi compatibility (text objects, registers, marks, ex commands,
// search, macros), key remapping, and user scripting are explicitly
// out of scope; the grammar table is fixed at construction time.
//
// # Usage
//
//	mp, err := modal.New(modal.ModeNormal, modal.DefaultGrammar())
//	cmd := mp.Feed(evt)
//	if cmd != nil {
//	    // dispatch cmd, and call mp.SetMode(...) if it changes mode
//	}
package modal
