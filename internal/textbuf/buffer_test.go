package textbuf

import "testing"

func TestNewSplitsLines(t *testing.T) {
	b := New("one\ntwo\nthree")
	if b.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", b.LineCount())
	}
	if b.LineText(1) != "two" {
		t.Errorf("LineText(1) = %q, want %q", b.LineText(1), "two")
	}
}

func TestStringRoundTrips(t *testing.T) {
	text := "alpha\nbeta\ngamma"
	b := New(text)
	if got := b.String(); got != text {
		t.Errorf("String() = %q, want %q", got, text)
	}
}

func TestInsertRuneAdvancesCursor(t *testing.T) {
	b := New("bc")
	b.InsertRune('a')
	if got := b.LineText(0); got != "abc" {
		t.Errorf("LineText(0) = %q, want %q", got, "abc")
	}
	if b.Cursor().Col != 1 {
		t.Errorf("Cursor().Col = %d, want 1", b.Cursor().Col)
	}
}

func TestInsertNewlineSplitsLine(t *testing.T) {
	b := New("abcd")
	b.SetCursor(Position{Line: 0, Col: 2})
	b.InsertRune('\n')
	if b.LineCount() != 2 {
		t.Fatalf("LineCount() = %d, want 2", b.LineCount())
	}
	if b.LineText(0) != "ab" || b.LineText(1) != "cd" {
		t.Errorf("lines = %q, %q, want %q, %q", b.LineText(0), b.LineText(1), "ab", "cd")
	}
	if got := b.Cursor(); got != (Position{Line: 1, Col: 0}) {
		t.Errorf("Cursor() = %+v, want {1 0}", got)
	}
}

func TestBackspaceJoinsLines(t *testing.T) {
	b := New("ab\ncd")
	b.SetCursor(Position{Line: 1, Col: 0})
	b.Backspace()
	if b.LineCount() != 1 {
		t.Fatalf("LineCount() = %d, want 1", b.LineCount())
	}
	if got := b.LineText(0); got != "abcd" {
		t.Errorf("LineText(0) = %q, want %q", got, "abcd")
	}
	if got := b.Cursor(); got != (Position{Line: 0, Col: 2}) {
		t.Errorf("Cursor() = %+v, want {0 2}", got)
	}
}

func TestSetCursorClampsToBounds(t *testing.T) {
	b := New("abc\nde")
	b.SetCursor(Position{Line: 5, Col: 5})
	if got := b.Cursor(); got != (Position{Line: 1, Col: 2}) {
		t.Errorf("Cursor() = %+v, want {1 2}", got)
	}
	b.SetCursor(Position{Line: -1, Col: -1})
	if got := b.Cursor(); got != (Position{Line: 0, Col: 0}) {
		t.Errorf("Cursor() = %+v, want {0 0}", got)
	}
}

func TestDeleteRangeExclusiveSingleLine(t *testing.T) {
	b := New("hello world")
	deleted := b.DeleteRange(Position{0, 0}, Position{0, 5}, false)
	if deleted != "hello" {
		t.Errorf("deleted = %q, want %q", deleted, "hello")
	}
	if got := b.LineText(0); got != " world" {
		t.Errorf("LineText(0) = %q, want %q", got, " world")
	}
}

func TestDeleteRangeInclusiveSingleLine(t *testing.T) {
	b := New("hello world")
	deleted := b.DeleteRange(Position{0, 0}, Position{0, 4}, true)
	if deleted != "hello" {
		t.Errorf("deleted = %q, want %q", deleted, "hello")
	}
}

func TestDeleteRangeSpansLines(t *testing.T) {
	b := New("one\ntwo\nthree")
	deleted := b.DeleteRange(Position{0, 1}, Position{2, 2}, false)
	if deleted != "ne\ntwo\nth" {
		t.Errorf("deleted = %q, want %q", deleted, "ne\ntwo\nth")
	}
	if got := b.LineText(0); got != "oree" {
		t.Errorf("LineText(0) = %q, want %q", got, "oree")
	}
	if b.LineCount() != 1 {
		t.Fatalf("LineCount() = %d, want 1", b.LineCount())
	}
}

func TestDeleteLinesKeepsAtLeastOneLine(t *testing.T) {
	b := New("only")
	deleted := b.DeleteLines(0, 1)
	if len(deleted) != 1 || deleted[0] != "only" {
		t.Errorf("deleted = %v, want [only]", deleted)
	}
	if b.LineCount() != 1 || b.LineText(0) != "" {
		t.Errorf("buffer = %q, want single empty line", b.String())
	}
}

func TestDeleteLinesRemovesCountLines(t *testing.T) {
	b := New("a\nb\nc\nd")
	deleted := b.DeleteLines(1, 2)
	if len(deleted) != 2 || deleted[0] != "b" || deleted[1] != "c" {
		t.Errorf("deleted = %v, want [b c]", deleted)
	}
	if got := b.String(); got != "a\nd" {
		t.Errorf("String() = %q, want %q", got, "a\nd")
	}
}

func TestPasteCharwiseAfterShiftsCursor(t *testing.T) {
	b := New("ac")
	b.SetCursor(Position{Line: 0, Col: 0})
	b.PasteCharwise("b", true)
	if got := b.LineText(0); got != "abc" {
		t.Errorf("LineText(0) = %q, want %q", got, "abc")
	}
}

func TestPasteLinesAfterInsertsBelow(t *testing.T) {
	b := New("one\ntwo")
	b.SetCursor(Position{Line: 0, Col: 0})
	b.PasteLines([]string{"x", "y"}, true)
	if got := b.String(); got != "one\nx\ny\ntwo" {
		t.Errorf("String() = %q, want %q", got, "one\nx\ny\ntwo")
	}
}

func TestRegisterRoundTrips(t *testing.T) {
	b := New("text")
	b.SetRegister([]string{"a", "b"}, true)
	lines, linewise := b.Register()
	if !linewise || len(lines) != 2 {
		t.Errorf("Register() = %v, %v, want [a b], true", lines, linewise)
	}
}
