package modal

import "github.com/oskun/vellum/internal/key"

// MotionTag identifies a kind of cursor motion.
type MotionTag uint8

const (
	MotionLeft MotionTag = iota
	MotionRight
	MotionUp
	MotionDown
	MotionLineStart
	MotionLineEnd
	MotionParagraphBegin
	MotionParagraphEnd
	MotionDocStart
	MotionDocEnd

	// MotionFind is a reserved extension point (f/F): jump to the
	// next/previous occurrence of Char. Never resolved by
	// MotionMatcher today; no grammar rule reaches it.
	MotionFind

	// MotionWord, MotionWordBegin, and MotionWordEnd are reserved
	// extension points for word-wise motions (w/W, b/B, e/E). Big
	// selects the WORD (whitespace-delimited) variant.
	MotionWord
	MotionWordBegin
	MotionWordEnd
)

// String returns a human-readable motion tag name.
func (t MotionTag) String() string {
	switch t {
	case MotionLeft:
		return "left"
	case MotionRight:
		return "right"
	case MotionUp:
		return "up"
	case MotionDown:
		return "down"
	case MotionLineStart:
		return "lineStart"
	case MotionLineEnd:
		return "lineEnd"
	case MotionParagraphBegin:
		return "paragraphBegin"
	case MotionParagraphEnd:
		return "paragraphEnd"
	case MotionDocStart:
		return "docStart"
	case MotionDocEnd:
		return "docEnd"
	case MotionFind:
		return "find"
	case MotionWord:
		return "word"
	case MotionWordBegin:
		return "wordBegin"
	case MotionWordEnd:
		return "wordEnd"
	default:
		return "unknown"
	}
}

// MotionKind names a motion and its reserved arguments. Char and
// Reverse are only meaningful when Tag is MotionFind; Big is only
// meaningful for the Word* tags (WORD vs. word).
type MotionKind struct {
	Tag     MotionTag
	Char    byte
	Reverse bool
	Big     bool
}

// IsDeleteEndInclusive reports whether an operator consuming this
// motion should include the character under the motion's endpoint.
// True only for MotionFind; every other motion yields a half-open
// range.
func (k MotionKind) IsDeleteEndInclusive() bool {
	return k.Tag == MotionFind
}

// Motion is a resolved (direction, repeat) pair.
type Motion struct {
	Kind   MotionKind
	Repeat uint16
}

// resolveSingleKeyMotion maps the six built-in single-key motions
// (0 $ h j k l, plus the arrow keys) to a MotionKind. It reports false for any key
// not in that set, including the keys reserved for MotionFind and the
// word motions — those are data-model extension points only.
func resolveSingleKeyMotion(evt key.Event) (MotionKind, bool) {
	switch evt.Key {
	case key.KeyLeft:
		return MotionKind{Tag: MotionLeft}, true
	case key.KeyRight:
		return MotionKind{Tag: MotionRight}, true
	case key.KeyUp:
		return MotionKind{Tag: MotionUp}, true
	case key.KeyDown:
		return MotionKind{Tag: MotionDown}, true
	}

	if evt.Key != key.KeyRune || evt.Modifiers != key.ModNone {
		return MotionKind{}, false
	}

	switch evt.Rune {
	case '0':
		return MotionKind{Tag: MotionLineStart}, true
	case '$':
		return MotionKind{Tag: MotionLineEnd}, true
	case 'h':
		return MotionKind{Tag: MotionLeft}, true
	case 'j':
		return MotionKind{Tag: MotionDown}, true
	case 'k':
		return MotionKind{Tag: MotionUp}, true
	case 'l':
		return MotionKind{Tag: MotionRight}, true
	default:
		return MotionKind{}, false
	}
}
