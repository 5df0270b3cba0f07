package modal

// CmdTag identifies the concrete type behind a CmdKind without a type
// switch at every call site.
type CmdTag uint8

const (
	CmdTagMove CmdTag = iota
	CmdTagDelete
	CmdTagChange
	CmdTagYank
	CmdTagSwitchMove
	CmdTagSwitchMode
	CmdTagNewLine
	CmdTagUndo
	CmdTagRedo
	CmdTagPaste
	CmdTagPasteBefore
	CmdTagCustom
)

func (t CmdTag) String() string {
	switch t {
	case CmdTagMove:
		return "Move"
	case CmdTagDelete:
		return "Delete"
	case CmdTagChange:
		return "Change"
	case CmdTagYank:
		return "Yank"
	case CmdTagSwitchMove:
		return "SwitchMove"
	case CmdTagSwitchMode:
		return "SwitchMode"
	case CmdTagNewLine:
		return "NewLine"
	case CmdTagUndo:
		return "Undo"
	case CmdTagRedo:
		return "Redo"
	case CmdTagPaste:
		return "Paste"
	case CmdTagPasteBefore:
		return "PasteBefore"
	case CmdTagCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// CmdKind is the closed set of commands a completed grammar rule can
// commit. It is a sum type expressed as an interface with a private
// marker method, so no type outside this package can add a variant.
type CmdKind interface {
	Tag() CmdTag
	isCmdKind()
}

// Cmd is one fully parsed command, ready for the host to execute.
// Repeat is always >= 1; a missing or explicit leading 0 normalizes
// to 1.
type Cmd struct {
	Kind   CmdKind
	Repeat uint16
}

// CmdMove repositions the cursor along Kind. Repeat lives on the
// enclosing Cmd and, for this command, is always the motion's own
// repeat (Move has no separate outer count in the grammar).
type CmdMove struct {
	Kind MotionKind
}

func (CmdMove) Tag() CmdTag { return CmdTagMove }
func (CmdMove) isCmdKind()  {}

// CmdDelete removes text. A nil Motion means "operate on the current
// visual selection" in Visual mode, or "linewise over Cmd.Repeat
// lines starting at the cursor" in Normal mode — the same nil value,
// disambiguated only by the mode active when the host executes it.
type CmdDelete struct {
	Motion *Motion
}

func (CmdDelete) Tag() CmdTag { return CmdTagDelete }
func (CmdDelete) isCmdKind()  {}

// CmdChange removes text exactly as CmdDelete and then enters insert
// mode at the deletion point.
type CmdChange struct {
	Motion *Motion
}

func (CmdChange) Tag() CmdTag { return CmdTagChange }
func (CmdChange) isCmdKind()  {}

// CmdYank copies text exactly as CmdDelete would select it, without
// removing it.
type CmdYank struct {
	Motion *Motion
}

func (CmdYank) Tag() CmdTag { return CmdTagYank }
func (CmdYank) isCmdKind()  {}

// CmdSwitchMove performs Motion and then switches to Mode. Its
// leading count is always discarded by the grammar (Cmd.Repeat is
// forced to 1); Motion itself has no repeat of its own here.
type CmdSwitchMove struct {
	Motion MotionKind
	Mode   Mode
}

func (CmdSwitchMove) Tag() CmdTag { return CmdTagSwitchMove }
func (CmdSwitchMove) isCmdKind()  {}

// CmdSwitchMode requests a transition to To. The ModalParser does not
// apply this itself; the host calls SetMode after acting on it.
type CmdSwitchMode struct {
	To Mode
}

func (CmdSwitchMode) Tag() CmdTag { return CmdTagSwitchMode }
func (CmdSwitchMode) isCmdKind()  {}

// CmdNewLine inserts a blank line relative to the cursor, Cmd.Repeat
// times. Up selects above vs. below; SwitchMode requests entering
// Insert on the new line (the built-in grammar always sets it, but
// the field exists so a host-compiled rule can opt out).
type CmdNewLine struct {
	Up         bool
	SwitchMode bool
}

func (CmdNewLine) Tag() CmdTag { return CmdTagNewLine }
func (CmdNewLine) isCmdKind()  {}

// CmdUndo reverts the last Cmd.Repeat changes. It is a reserved
// extension point: no built-in grammar rule produces it today.
type CmdUndo struct{}

func (CmdUndo) Tag() CmdTag { return CmdTagUndo }
func (CmdUndo) isCmdKind()  {}

// CmdRedo reapplies the last Cmd.Repeat undone changes. Reserved
// extension point, same status as CmdUndo.
type CmdRedo struct{}

func (CmdRedo) Tag() CmdTag { return CmdTagRedo }
func (CmdRedo) isCmdKind()  {}

// CmdPaste inserts the unnamed register after the cursor, Cmd.Repeat
// times.
type CmdPaste struct{}

func (CmdPaste) Tag() CmdTag { return CmdTagPaste }
func (CmdPaste) isCmdKind()  {}

// CmdPasteBefore inserts the unnamed register before the cursor,
// Cmd.Repeat times.
type CmdPasteBefore struct{}

func (CmdPasteBefore) Tag() CmdTag { return CmdTagPasteBefore }
func (CmdPasteBefore) isCmdKind()  {}

// CmdCustom names a host-registered command by name rather than
// committing a built-in CmdKind directly. The built-in grammar never
// produces one; it is the extension point a host uses to bind a
// pattern it compiled at runtime (via CompileRule) to its own
// handler.
type CmdCustom struct {
	Name string
}

func (CmdCustom) Tag() CmdTag { return CmdTagCustom }
func (CmdCustom) isCmdKind()  {}
