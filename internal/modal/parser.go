package modal

import "github.com/oskun/vellum/internal/key"

// ModalParser distributes key events to a bank of CommandParsers and
// commits the first one to fully match. It never backtracks: once a
// rule fails on the current command it stays out of consideration
// until the next Reset, and at most one Cmd is produced per feed.
type ModalParser struct {
	mode    Mode
	grammar Grammar
	parsers []*CommandParser
	failed  bitset
}

// New builds a ModalParser starting in mode, with a fresh bank of
// CommandParsers realized from grammar.
func New(mode Mode, grammar Grammar) (*ModalParser, error) {
	parsers := grammar.Build()
	if len(parsers) == 0 {
		return nil, errEmptyGrammar
	}
	return &ModalParser{
		mode:    mode,
		grammar: grammar,
		parsers: parsers,
		failed:  newBitset(len(parsers)),
	}, nil
}

// Mode returns the parser's current editing mode.
func (mp *ModalParser) Mode() Mode {
	return mp.mode
}

// SetMode changes the editing mode directly. Feed never calls this
// itself — a CmdSwitchMode it emits only requests a transition; the
// host decides whether and when to apply it, typically right after
// interpreting the Cmd Feed returned.
func (mp *ModalParser) SetMode(m Mode) {
	mp.mode = m
}

// Feed routes evt to every CommandParser eligible in the current mode
// and not yet failed on the command in progress. The first parser
// that accepts wins ties by registration order: DefaultGrammar and
// Grammar.WithRule both append, so earlier-registered rules always
// win a genuine tie. Returns the committed Cmd, or nil if evt did not
// complete any rule.
//
// On Accept, or once every eligible parser has failed, the whole bank
// is reset for the next command.
func (mp *ModalParser) Feed(evt key.Event) *Cmd {
	if evt.Key == key.KeyEscape {
		mp.Reset()
		return &Cmd{Kind: CmdSwitchMode{To: ModeNormal}, Repeat: 1}
	}

	anyEligible := false

	for i, p := range mp.parsers {
		if mp.failed.isSet(i) || !p.allowsMode(mp.mode) {
			continue
		}
		anyEligible = true

		cmd, done, fail := p.feed(evt)
		if fail {
			mp.failed.set(i)
			continue
		}
		if done {
			mp.Reset()
			return &cmd
		}
	}

	if !anyEligible || mp.allEligibleFailed() {
		mp.Reset()
	}
	return nil
}

// allEligibleFailed reports whether every CommandParser allowed in
// the current mode has failed on the command in progress.
func (mp *ModalParser) allEligibleFailed() bool {
	for i, p := range mp.parsers {
		if !p.allowsMode(mp.mode) {
			continue
		}
		if !mp.failed.isSet(i) {
			return false
		}
	}
	return true
}

// Reset clears every CommandParser's cursor and the failed set,
// returning the bank to its state immediately after New. It does not
// change Mode.
func (mp *ModalParser) Reset() {
	mp.failed.clearAll()
	for _, p := range mp.parsers {
		p.reset()
	}
}
