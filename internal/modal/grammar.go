package modal

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/oskun/vellum/internal/key"
)

// Sentinel errors returned (wrapped with pattern/name context) by
// compilePattern and CompileRule. Built-in rules go through the same
// validation via mustCompile, which panics instead of returning these —
// the built-in table is closed and compile-time-known, so a failure
// there is a programming error, not a runtime condition a caller of
// DefaultGrammar needs to handle.
var (
	// ErrEmptyPattern is returned for a pattern with no tokens.
	ErrEmptyPattern = errors.New("modal: empty pattern")

	// ErrNoValidModes is returned when a rule names no modes it can
	// fire in.
	ErrNoValidModes = errors.New("modal: rule has no valid mode")

	// ErrUnknownToken is returned for a pattern token that is neither
	// "<#>", "<mv>", nor a single literal key character.
	ErrUnknownToken = errors.New("modal: unknown token in pattern")
)

// literalKeyEvent builds the Event a single literal-key token in a
// pattern must match. Uppercase letters carry an implicit Shift,
// matching how the terminal backend reports a capital letter.
func literalKeyEvent(r rune) key.Event {
	var mods key.Modifier
	if unicode.IsUpper(r) {
		mods = key.ModShift
	}
	return key.NewRuneEvent(r, mods)
}

// Grammar is a deep-copyable blueprint for a ModalParser's bank of
// CommandParsers. Build produces a fresh, independent set of
// CommandParsers (and their Inputs) on every call, so two
// ModalParsers constructed from the same Grammar never share mutable
// matcher state.
type Grammar struct {
	build func() []*CommandParser
}

// Build realizes a fresh, independent bank of CommandParsers from g.
func (g Grammar) Build() []*CommandParser {
	return g.build()
}

// WithRule returns a copy of g with an additional CommandParser
// appended on every Build call. newRule is invoked once per Build so
// the appended parser's matcher state is never shared between two
// ModalParsers built from the resulting Grammar.
func (g Grammar) WithRule(newRule func() (*CommandParser, error)) (Grammar, error) {
	if _, err := newRule(); err != nil {
		return Grammar{}, err
	}
	prev := g.build
	return Grammar{
		build: func() []*CommandParser {
			rule, err := newRule()
			if err != nil {
				panic(fmt.Sprintf("modal: WithRule: %v", err))
			}
			return append(prev(), rule)
		},
	}, nil
}

// compilePattern tokenizes a pattern string such as "<#> d <mv>" into
// an ordered Input sequence. It is the construction-time validator
// for rules: an unknown token or an empty token list is reported
// rather than silently producing a rule that can never match.
//
// Recognized tokens:
//
//	<#>      optional leading count (CountMatcher)
//	<mv>     a self-contained motion (MotionMatcher)
//	x        (any other single character) the literal key x
func compilePattern(pattern string) (inputs []Input, count *CountMatcher, motion *MotionMatcher, err error) {
	tokens := strings.Fields(pattern)
	if len(tokens) == 0 {
		return nil, nil, nil, fmt.Errorf("modal: pattern %q: %w", pattern, ErrEmptyPattern)
	}

	for _, tok := range tokens {
		switch tok {
		case "<#>":
			if count != nil {
				return nil, nil, nil, fmt.Errorf("modal: pattern %q has more than one count token", pattern)
			}
			count = &CountMatcher{}
			inputs = append(inputs, count)
		case "<mv>":
			if motion != nil {
				return nil, nil, nil, fmt.Errorf("modal: pattern %q has more than one motion token", pattern)
			}
			motion = NewMotionMatcher()
			inputs = append(inputs, motion)
		default:
			if len([]rune(tok)) != 1 {
				return nil, nil, nil, fmt.Errorf("modal: token %q in pattern %q: %w", tok, pattern, ErrUnknownToken)
			}
			r := []rune(tok)[0]
			inputs = append(inputs, NewKeyMatcher(literalKeyEvent(r)))
		}
	}

	return inputs, count, motion, nil
}

// ruleSpec is one built-in grammar rule, kept in a plain table so the
// registration order — and therefore the Accept tie-break order — is
// visible at a glance.
type ruleSpec struct {
	name    string
	pattern string
	modes   ModeMask
	build   func(count *CountMatcher, motion *MotionMatcher) build
}

func countOf(count *CountMatcher) uint16 {
	if count == nil {
		return 1
	}
	return count.Value()
}

// builtinRules is the closed grammar table. Registration order is
// load-bearing: dd/cc/yy must lose the tie-break race to nothing
// (their sibling *-motion rule always fails first on the second
// key), and the ModalParser returns the first Accept it observes —
// see grammar_test.go-style scenarios in modal_test.go.
var builtinRules = []ruleSpec{
	{
		name: "move", pattern: "<mv>", modes: NewModeMask(ModeNormal, ModeVisual),
		build: func(count *CountMatcher, motion *MotionMatcher) build {
			return func() Cmd {
				m := motion.Motion()
				return Cmd{Kind: CmdMove{Kind: m.Kind}, Repeat: m.Repeat}
			}
		},
	},
	{
		name: "delete-motion", pattern: "<#> d <mv>", modes: NewModeMask(ModeNormal),
		build: func(count *CountMatcher, motion *MotionMatcher) build {
			return func() Cmd {
				m := motion.Motion()
				return Cmd{Kind: CmdDelete{Motion: &m}, Repeat: countOf(count)}
			}
		},
	},
	{
		name: "delete-line", pattern: "<#> d d", modes: NewModeMask(ModeNormal),
		build: func(count *CountMatcher, motion *MotionMatcher) build {
			return func() Cmd {
				return Cmd{Kind: CmdDelete{}, Repeat: countOf(count)}
			}
		},
	},
	{
		name: "visual-delete", pattern: "<#> d", modes: NewModeMask(ModeVisual),
		build: func(count *CountMatcher, motion *MotionMatcher) build {
			return func() Cmd {
				return Cmd{Kind: CmdDelete{}, Repeat: countOf(count)}
			}
		},
	},
	{
		name: "change-motion", pattern: "<#> c <mv>", modes: NewModeMask(ModeNormal),
		build: func(count *CountMatcher, motion *MotionMatcher) build {
			return func() Cmd {
				m := motion.Motion()
				return Cmd{Kind: CmdChange{Motion: &m}, Repeat: countOf(count)}
			}
		},
	},
	{
		name: "change-line", pattern: "<#> c c", modes: NewModeMask(ModeNormal),
		build: func(count *CountMatcher, motion *MotionMatcher) build {
			return func() Cmd {
				return Cmd{Kind: CmdChange{}, Repeat: countOf(count)}
			}
		},
	},
	{
		name: "visual-change", pattern: "<#> c", modes: NewModeMask(ModeVisual),
		build: func(count *CountMatcher, motion *MotionMatcher) build {
			return func() Cmd {
				return Cmd{Kind: CmdChange{}, Repeat: countOf(count)}
			}
		},
	},
	{
		name: "yank-motion", pattern: "<#> y <mv>", modes: NewModeMask(ModeNormal),
		build: func(count *CountMatcher, motion *MotionMatcher) build {
			return func() Cmd {
				m := motion.Motion()
				return Cmd{Kind: CmdYank{Motion: &m}, Repeat: countOf(count)}
			}
		},
	},
	{
		name: "yank-line", pattern: "<#> y y", modes: NewModeMask(ModeNormal),
		build: func(count *CountMatcher, motion *MotionMatcher) build {
			return func() Cmd {
				return Cmd{Kind: CmdYank{}, Repeat: countOf(count)}
			}
		},
	},
	{
		name: "visual-yank", pattern: "<#> y", modes: NewModeMask(ModeVisual),
		build: func(count *CountMatcher, motion *MotionMatcher) build {
			return func() Cmd {
				return Cmd{Kind: CmdYank{}, Repeat: countOf(count)}
			}
		},
	},
	{
		// SwitchMove's leading count is matched (so "3a" doesn't fail
		// outright) but always discarded: Cmd.Repeat is forced to 1.
		name: "switch-move-a", pattern: "<#> a", modes: NewModeMask(ModeNormal, ModeVisual),
		build: func(count *CountMatcher, motion *MotionMatcher) build {
			return func() Cmd {
				return Cmd{Kind: CmdSwitchMove{Motion: MotionKind{Tag: MotionRight}, Mode: ModeInsert}, Repeat: 1}
			}
		},
	},
	{
		name: "switch-move-A", pattern: "<#> A", modes: NewModeMask(ModeNormal, ModeVisual),
		build: func(count *CountMatcher, motion *MotionMatcher) build {
			return func() Cmd {
				return Cmd{Kind: CmdSwitchMove{Motion: MotionKind{Tag: MotionLineEnd}, Mode: ModeInsert}, Repeat: 1}
			}
		},
	},
	{
		name: "switch-move-I", pattern: "<#> I", modes: NewModeMask(ModeNormal, ModeVisual),
		build: func(count *CountMatcher, motion *MotionMatcher) build {
			return func() Cmd {
				return Cmd{Kind: CmdSwitchMove{Motion: MotionKind{Tag: MotionLineStart}, Mode: ModeInsert}, Repeat: 1}
			}
		},
	},
	{
		// Design note: the grammar table's prose also lists `v` as a
		// Visual-mode toggle back to Normal, but implementing that
		// would make this rule and "switch-mode-v" ambiguous on the
		// same key in opposite modes for no documented benefit —
		// deliberately not implemented, preserving the asymmetry.
		name: "switch-mode-i", pattern: "<#> i", modes: NewModeMask(ModeNormal),
		build: func(count *CountMatcher, motion *MotionMatcher) build {
			return func() Cmd { return Cmd{Kind: CmdSwitchMode{To: ModeInsert}, Repeat: 1} }
		},
	},
	{
		name: "switch-mode-v", pattern: "<#> v", modes: NewModeMask(ModeNormal),
		build: func(count *CountMatcher, motion *MotionMatcher) build {
			return func() Cmd { return Cmd{Kind: CmdSwitchMode{To: ModeVisual}, Repeat: 1} }
		},
	},
	{
		name: "new-line-below", pattern: "<#> o", modes: NewModeMask(ModeNormal, ModeVisual),
		build: func(count *CountMatcher, motion *MotionMatcher) build {
			return func() Cmd {
				return Cmd{Kind: CmdNewLine{Up: false, SwitchMode: true}, Repeat: countOf(count)}
			}
		},
	},
	{
		name: "new-line-above", pattern: "<#> O", modes: NewModeMask(ModeNormal, ModeVisual),
		build: func(count *CountMatcher, motion *MotionMatcher) build {
			return func() Cmd {
				return Cmd{Kind: CmdNewLine{Up: true, SwitchMode: true}, Repeat: countOf(count)}
			}
		},
	},
	{
		name: "paste", pattern: "<#> p", modes: NewModeMask(ModeNormal, ModeVisual),
		build: func(count *CountMatcher, motion *MotionMatcher) build {
			return func() Cmd { return Cmd{Kind: CmdPaste{}, Repeat: countOf(count)} }
		},
	},
	{
		name: "paste-before", pattern: "<#> P", modes: NewModeMask(ModeNormal, ModeVisual),
		build: func(count *CountMatcher, motion *MotionMatcher) build {
			return func() Cmd { return Cmd{Kind: CmdPasteBefore{}, Repeat: countOf(count)} }
		},
	},
}

// mustCompile panics on a malformed built-in pattern. Built-in rules
// are a closed, compile-time-known set, so a failure here can only be
// a programming error in this file, not a runtime condition callers
// need to handle.
func mustCompile(spec ruleSpec) *CommandParser {
	inputs, count, motion, err := compilePattern(spec.pattern)
	if err != nil {
		panic(fmt.Sprintf("modal: built-in rule %q: %v", spec.name, err))
	}
	if spec.modes.IsEmpty() {
		panic(fmt.Sprintf("modal: built-in rule %q: %v", spec.name, ErrNoValidModes))
	}
	return newCommandParser(spec.name, spec.modes, inputs, spec.build(count, motion))
}

// DefaultGrammar returns the closed, built-in command grammar in its
// canonical registration order. Two ModalParsers built from the same
// Grammar value never share matcher state.
func DefaultGrammar() Grammar {
	return Grammar{
		build: func() []*CommandParser {
			parsers := make([]*CommandParser, len(builtinRules))
			for i, spec := range builtinRules {
				parsers[i] = mustCompile(spec)
			}
			return parsers
		},
	}
}

// CompileRule compiles a single ad hoc rule from a pattern string and
// binds it to name, committing a CmdCustom{Name: name} on completion.
// It lets a host extend the grammar at construction time without
// reaching into this package's internals, using the same pattern
// syntax and validation as the built-in rules.
func CompileRule(name, pattern string, modes ModeMask) (*CommandParser, error) {
	if modes.IsEmpty() {
		return nil, fmt.Errorf("modal: rule %q: %w", name, ErrNoValidModes)
	}
	inputs, count, _, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}
	b := func() Cmd {
		return Cmd{Kind: CmdCustom{Name: name}, Repeat: countOf(count)}
	}
	return newCommandParser(name, modes, inputs, b), nil
}

// bitset is a flat word array of parser-failed flags, one bit per
// CommandParser in a ModalParser's bank.
type bitset []uint64

func newBitset(n int) bitset {
	return make(bitset, (n+63)/64)
}

func (b bitset) set(i int) {
	b[i/64] |= 1 << uint(i%64)
}

func (b bitset) isSet(i int) bool {
	return b[i/64]&(1<<uint(i%64)) != 0
}

func (b bitset) clearAll() {
	for i := range b {
		b[i] = 0
	}
}
