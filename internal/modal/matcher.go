package modal

import (
	"math"

	"github.com/oskun/vellum/internal/key"
)

// Verdict is the result of feeding one key event to one Input.
type Verdict uint8

const (
	// VerdictContinue means the event was consumed and the Input is
	// not yet complete; feed it the next event.
	VerdictContinue Verdict = iota

	// VerdictAccept means the event completed this Input. The
	// CommandParser advances to its next Input for the following
	// event.
	VerdictAccept

	// VerdictFail means the event can never complete this Input from
	// its current state. The owning CommandParser is marked failed
	// and takes no further part in the current command.
	VerdictFail

	// VerdictSkip means this Input considers itself already complete
	// without consuming the event (an optional Input, such as an
	// absent count prefix, that matched zero keys). The event must be
	// re-fed to the next Input in the same CommandParser.
	VerdictSkip

	// VerdictTryTransition means the event does not belong to this
	// Input, but this Input has nothing left to match and the event
	// should be re-fed to the next Input. It differs from VerdictSkip
	// only in bookkeeping: Skip is reported by an Input that matched
	// nothing by design (zero-width), TryTransition by one that has
	// already matched something and is now handing off.
	VerdictTryTransition
)

// Input is one element of a CommandParser's ordered match sequence: a
// count prefix, a literal key, or a self-contained motion. Feed is
// called with strictly the events the CommandParser routes to it;
// Reset returns it to its construction-time state for reuse by the
// next command.
type Input interface {
	Feed(evt key.Event) Verdict
	Reset()
}

// CountMatcher matches an optional leading decimal count. It accepts
// as soon as a non-digit key arrives (reporting TryTransition so that
// key is re-fed downstream), or Skip immediately if the very first
// key it sees is not a digit or is a leading '0'. An absent count
// reads back as 1 from Value.
type CountMatcher struct {
	value   uint16
	started bool
}

// digitOf reports the decimal digit value of evt, if any, including
// 0. CountMatcher.Feed refuses a '0' that would start a count: vi
// reserves bare 0 for the line-start motion, so 0 only extends a count
// that other digits already began.
func digitOf(evt key.Event) (uint16, bool) {
	if evt.Key != key.KeyRune || evt.Modifiers != key.ModNone {
		return 0, false
	}
	if evt.Rune < '0' || evt.Rune > '9' {
		return 0, false
	}
	return uint16(evt.Rune - '0'), true
}

func (c *CountMatcher) Feed(evt key.Event) Verdict {
	d, isDigit := digitOf(evt)
	if isDigit && (d != 0 || c.started) {
		next := uint32(c.value)*10 + uint32(d)
		if next > math.MaxUint16 {
			// Overflowed u16: the spec treats an unrepresentable
			// count as an unparseable command, not a saturating one.
			return VerdictFail
		}
		c.value = uint16(next)
		c.started = true
		return VerdictContinue
	}
	if !c.started {
		return VerdictSkip
	}
	return VerdictTryTransition
}

func (c *CountMatcher) Reset() {
	c.value = 0
	c.started = false
}

// Value returns the matched count, or 1 if no digits were consumed.
func (c *CountMatcher) Value() uint16 {
	if !c.started {
		return 1
	}
	return c.value
}

// HasValue reports whether any digit was actually consumed, as
// opposed to the implicit default of 1.
func (c *CountMatcher) HasValue() bool {
	return c.started
}

// KeyMatcher matches a single literal key exactly once.
type KeyMatcher struct {
	want key.Event
	done bool
}

// NewKeyMatcher builds a KeyMatcher for the given literal key.
func NewKeyMatcher(want key.Event) *KeyMatcher {
	return &KeyMatcher{want: want}
}

func (k *KeyMatcher) Feed(evt key.Event) Verdict {
	if k.done {
		return VerdictTryTransition
	}
	if evt.Equals(k.want) {
		k.done = true
		return VerdictAccept
	}
	return VerdictFail
}

func (k *KeyMatcher) Reset() {
	k.done = false
}

// MotionMatcher is a self-contained sub-parser: an embedded
// CountMatcher followed by exactly one motion key (one of the six
// single-key motions 0 $ h j k l, or an arrow key). It owns its own cursor so a
// CommandParser can treat "a whole motion" as a single Input.
type MotionMatcher struct {
	count    CountMatcher
	inCount  bool
	resolved bool
	kind     MotionKind
}

// NewMotionMatcher builds a MotionMatcher in its initial state.
func NewMotionMatcher() *MotionMatcher {
	return &MotionMatcher{inCount: true}
}

func (m *MotionMatcher) Feed(evt key.Event) Verdict {
	if m.resolved {
		return VerdictTryTransition
	}

	if m.inCount {
		v := m.count.Feed(evt)
		switch v {
		case VerdictContinue:
			return VerdictContinue
		case VerdictFail:
			return VerdictFail
		case VerdictSkip, VerdictTryTransition:
			m.inCount = false
			// Re-feed evt to the motion-key stage below.
		}
	}

	kind, ok := resolveSingleKeyMotion(evt)
	if !ok {
		return VerdictFail
	}
	m.kind = kind
	m.resolved = true
	return VerdictAccept
}

func (m *MotionMatcher) Reset() {
	m.count.Reset()
	m.inCount = true
	m.resolved = false
	m.kind = MotionKind{}
}

// Motion returns the resolved motion, valid only after Feed has
// returned VerdictAccept.
func (m *MotionMatcher) Motion() Motion {
	return Motion{Kind: m.kind, Repeat: m.count.Value()}
}
