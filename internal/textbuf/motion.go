package textbuf

// The methods below are the primitive cursor moves the dispatcher composes
// to execute a modal.MotionKind. Buffer itself knows nothing about the
// modal package; dispatcher translates MotionKind into these calls so the
// two packages stay decoupled.

// CursorLeft moves the cursor left by n columns, stopping at column 0.
func (b *Buffer) CursorLeft(n int) {
	b.SetCursor(Position{Line: b.cursor.Line, Col: b.cursor.Col - n})
}

// CursorRight moves the cursor right by n columns, stopping at end of line.
func (b *Buffer) CursorRight(n int) {
	b.SetCursor(Position{Line: b.cursor.Line, Col: b.cursor.Col + n})
}

// CursorUp moves the cursor up by n lines, preserving column where
// possible.
func (b *Buffer) CursorUp(n int) {
	b.SetCursor(Position{Line: b.cursor.Line - n, Col: b.cursor.Col})
}

// CursorDown moves the cursor down by n lines, preserving column where
// possible.
func (b *Buffer) CursorDown(n int) {
	b.SetCursor(Position{Line: b.cursor.Line + n, Col: b.cursor.Col})
}

// CursorLineStart moves the cursor to column 0 of the current line.
func (b *Buffer) CursorLineStart() {
	b.cursor.Col = 0
}

// CursorLineEnd moves the cursor to the last column of the current line.
func (b *Buffer) CursorLineEnd() {
	b.cursor.Col = len(b.lines[b.cursor.Line])
}

// CursorDocStart moves the cursor to the first line, column 0.
func (b *Buffer) CursorDocStart() {
	b.cursor = Position{Line: 0, Col: 0}
}

// CursorDocEnd moves the cursor to the last line, its last column.
func (b *Buffer) CursorDocEnd() {
	last := len(b.lines) - 1
	b.cursor = Position{Line: last, Col: len(b.lines[last])}
}

func normalizeRange(a, b Position) (Position, Position) {
	if a.Line > b.Line || (a.Line == b.Line && a.Col > b.Col) {
		return b, a
	}
	return a, b
}

// DeleteRange removes the characterwise span [from, to), or [from, to]
// when inclusive, and returns the deleted text. The cursor ends at from.
func (b *Buffer) DeleteRange(from, to Position, inclusive bool) string {
	from, to = normalizeRange(from, to)
	if from.Col < 0 {
		from.Col = 0
	}
	if inclusive {
		to.Col++
	}

	if from.Line == to.Line {
		line := b.lines[from.Line]
		end := to.Col
		if end > len(line) {
			end = len(line)
		}
		deleted := string(line[from.Col:end])
		b.lines[from.Line] = append(append([]rune{}, line[:from.Col]...), line[end:]...)
		b.cursor = b.clamp(from)
		return deleted
	}

	firstLine := b.lines[from.Line]
	lastLine := b.lines[to.Line]
	endCol := to.Col
	if endCol > len(lastLine) {
		endCol = len(lastLine)
	}

	deleted := string(firstLine[from.Col:]) + "\n"
	for l := from.Line + 1; l < to.Line; l++ {
		deleted += string(b.lines[l]) + "\n"
	}
	deleted += string(lastLine[:endCol])

	merged := append(append([]rune{}, firstLine[:from.Col]...), lastLine[endCol:]...)
	newLines := make([][]rune, 0, len(b.lines)-(to.Line-from.Line))
	newLines = append(newLines, b.lines[:from.Line]...)
	newLines = append(newLines, merged)
	newLines = append(newLines, b.lines[to.Line+1:]...)
	b.lines = newLines
	b.cursor = b.clamp(from)
	return deleted
}

// TextRange returns the text DeleteRange would remove, without removing
// it — used by yank.
func (b *Buffer) TextRange(from, to Position, inclusive bool) string {
	from, to = normalizeRange(from, to)
	if from.Col < 0 {
		from.Col = 0
	}
	if inclusive {
		to.Col++
	}

	if from.Line == to.Line {
		line := b.lines[from.Line]
		end := to.Col
		if end > len(line) {
			end = len(line)
		}
		return string(line[from.Col:end])
	}

	firstLine := b.lines[from.Line]
	lastLine := b.lines[to.Line]
	endCol := to.Col
	if endCol > len(lastLine) {
		endCol = len(lastLine)
	}

	text := string(firstLine[from.Col:]) + "\n"
	for l := from.Line + 1; l < to.Line; l++ {
		text += string(b.lines[l]) + "\n"
	}
	text += string(lastLine[:endCol])
	return text
}

// DeleteLines removes count whole lines starting at start and returns
// their text. The buffer always keeps at least one line; deleting every
// line leaves a single empty one.
func (b *Buffer) DeleteLines(start, count int) []string {
	if start < 0 {
		start = 0
	}
	end := start + count
	if end > len(b.lines) {
		end = len(b.lines)
	}

	deleted := make([]string, 0, end-start)
	for l := start; l < end; l++ {
		deleted = append(deleted, string(b.lines[l]))
	}

	remaining := make([][]rune, 0, len(b.lines)-(end-start))
	remaining = append(remaining, b.lines[:start]...)
	remaining = append(remaining, b.lines[end:]...)
	if len(remaining) == 0 {
		remaining = [][]rune{{}}
	}
	b.lines = remaining

	if start >= len(b.lines) {
		start = len(b.lines) - 1
	}
	b.cursor = Position{Line: start, Col: 0}
	return deleted
}

// Lines returns a copy of count lines of text starting at start, without
// removing them — used by yank-line and the dj/dk-style vertical motions.
func (b *Buffer) Lines(start, count int) []string {
	if start < 0 {
		start = 0
	}
	end := start + count
	if end > len(b.lines) {
		end = len(b.lines)
	}
	if end < start {
		end = start
	}
	out := make([]string, 0, end-start)
	for l := start; l < end; l++ {
		out = append(out, string(b.lines[l]))
	}
	return out
}

// PasteCharwise inserts text at the cursor. after shifts the insertion
// point one column right first, matching "p" pasting after the cursor
// rather than "P" pasting before it.
func (b *Buffer) PasteCharwise(text string, after bool) {
	if after && len(b.lines[b.cursor.Line]) > 0 {
		b.cursor.Col++
	}
	for _, r := range text {
		b.InsertRune(r)
	}
}

// PasteLines inserts lines as whole new lines. after places them below
// the current line; otherwise they land above it.
func (b *Buffer) PasteLines(lines []string, after bool) {
	at := b.cursor.Line
	if after {
		at++
	}
	for i, l := range lines {
		b.InsertLine(at + i)
		b.lines[at+i] = []rune(l)
	}
	b.cursor = Position{Line: at, Col: 0}
}
