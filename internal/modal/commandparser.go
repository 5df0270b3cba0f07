package modal

import "github.com/oskun/vellum/internal/key"

// build constructs one committed Cmd once every Input in a
// CommandParser has accepted. It closes over whichever matchers the
// rule needs to read counts and motions back out of.
type build func() Cmd

// CommandParser holds one grammar rule's ordered Input sequence and
// the cursor into it. Feeding advances idx only on Accept, Skip, or
// TryTransition; Fail freezes the parser until the owning
// ModalParser resets it for the next command.
type CommandParser struct {
	name   string
	modes  ModeMask
	inputs []Input
	build  build
	idx    int
}

// newCommandParser constructs a CommandParser from its compile-time
// pieces. Every built-in rule is produced by compilePattern; this
// constructor also backs the runtime pattern compiler's construction
// path so a host can register its own rules the same way.
func newCommandParser(name string, modes ModeMask, inputs []Input, b build) *CommandParser {
	return &CommandParser{name: name, modes: modes, inputs: inputs, build: b}
}

// feed advances the parser's cursor by exactly one key event,
// re-feeding the same event to subsequent Inputs when one of them
// reports Skip or TryTransition. idx strictly increases within a
// single feed call, so the loop is bounded by len(inputs); a rule
// whose remaining Inputs all defer on the same event fails for that
// event rather than looping.
//
// Returns (cmd, true) when the final Input accepts and the rule is
// complete; (Cmd{}, false) with the parser left usable for the next
// event otherwise. The caller is responsible for marking the parser
// failed when feed returns fail.
func (p *CommandParser) feed(evt key.Event) (cmd Cmd, done bool, fail bool) {
	for {
		if p.idx >= len(p.inputs) {
			return Cmd{}, false, true
		}
		startIdx := p.idx
		v := p.inputs[p.idx].Feed(evt)
		switch v {
		case VerdictContinue:
			return Cmd{}, false, false
		case VerdictFail:
			return Cmd{}, false, true
		case VerdictAccept:
			p.idx++
			if p.idx == len(p.inputs) {
				return p.build(), true, false
			}
			return Cmd{}, false, false
		case VerdictSkip, VerdictTryTransition:
			p.idx++
			if p.idx <= startIdx {
				return Cmd{}, false, true
			}
			if p.idx >= len(p.inputs) {
				// Every Input deferred on this event; none of them
				// actually wanted it.
				return Cmd{}, false, true
			}
			continue
		default:
			return Cmd{}, false, true
		}
	}
}

// reset returns the parser to its construction-time state, ready to
// take part in matching the next command.
func (p *CommandParser) reset() {
	p.idx = 0
	for _, in := range p.inputs {
		in.Reset()
	}
}

// allowsMode reports whether this rule is eligible to run in m.
func (p *CommandParser) allowsMode(m Mode) bool {
	return p.modes.Allows(m)
}
