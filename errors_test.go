// errors_test.go
package fog

import (
	"strings"
	"testing"
)

func Test_Errors_ParseSnippet_HeaderAndCaret(t *testing.T) {
	src := "let x : int := 1\nlet y : int = 2\nx := y\n"
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	wrapped := WrapErrorWithName(err, "square.fog", src)
	msg := wrapped.Error()

	if !strings.HasPrefix(msg, "PARSE ERROR in square.fog at 2:13:") {
		t.Fatalf("bad header:\n%s", msg)
	}
	lines := strings.Split(msg, "\n")
	var caretLine string
	for _, ln := range lines {
		if strings.Contains(ln, "^") {
			caretLine = ln
		}
	}
	if caretLine == "" {
		t.Fatalf("no caret line in snippet:\n%s", msg)
	}
	// One line of context before and after.
	if !strings.Contains(msg, "   1 | let x : int := 1") ||
		!strings.Contains(msg, "   2 | let y : int = 2") ||
		!strings.Contains(msg, "   3 | x := y") {
		t.Fatalf("missing context lines:\n%s", msg)
	}
	// The caret points at the '=' in line 2.
	want := "     | " + strings.Repeat(" ", 12) + "^"
	if caretLine != want {
		t.Fatalf("caret misplaced:\n%q\nwant:\n%q", caretLine, want)
	}
}

func Test_Errors_LexSnippet(t *testing.T) {
	src := "let x : float := 1..2\n"
	_, err := Tokenize(src)
	if err == nil {
		t.Fatalf("expected lex error")
	}
	msg := WrapErrorWithSource(err, src).Error()
	if !strings.HasPrefix(msg, "LEX ERROR at 1:") {
		t.Fatalf("bad header:\n%s", msg)
	}
	if !strings.Contains(msg, "^") {
		t.Fatalf("no caret:\n%s", msg)
	}
}

func Test_Errors_RuntimePassthrough(t *testing.T) {
	err := &RuntimeError{Msg: "undefined variable: y"}
	if WrapErrorWithSource(err, "let x : int := y\n") != err {
		t.Fatalf("runtime error without a name should pass through unchanged")
	}
	named := WrapErrorWithName(err, "prog.fog", "let x : int := y\n")
	if named.Error() != "RUNTIME ERROR in prog.fog: undefined variable: y" {
		t.Fatalf("bad named runtime error: %q", named.Error())
	}
}

func Test_Errors_OtherErrorsUnchanged(t *testing.T) {
	other := errString("disk full")
	if WrapErrorWithSource(other, "src") != other {
		t.Fatalf("unrelated errors must pass through")
	}
}

type errString string

func (e errString) Error() string { return string(e) }

func Test_Errors_OffsetToLineCol(t *testing.T) {
	src := "ab\ncd\n"
	cases := []struct{ pos, line, col int }{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{4, 2, 2},
		{-1, 1, 1},
		{100, 3, 1}, // clamped past the trailing newline
	}
	for _, c := range cases {
		line, col := offsetToLineCol(src, c.pos)
		if line != c.line || col != c.col {
			t.Fatalf("offset %d: want %d:%d, got %d:%d", c.pos, c.line, c.col, line, col)
		}
	}
}

func Test_Errors_SnippetOnEmptySource(t *testing.T) {
	msg := snippetAt("", "LEX ERROR", "", 0, "boom")
	if !strings.Contains(msg, "LEX ERROR at 1:1: boom") {
		t.Fatalf("bad empty-source snippet:\n%s", msg)
	}
}
