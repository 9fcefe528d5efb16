// errors.go — user-facing error wrapping and caret-snippet rendering.
//
// WrapErrorWithSource turns the structured diagnostics produced by the lexer
// and parser into readable snippets with a caret pointing at the offending
// byte:
//
//	PARSE ERROR in square.fog at 2:13: expected ':=', got "="
//
//	   1 | let x : int := 1
//	   2 | let y : int = 2
//	     |             ^
//	   3 | x := y
//
// Lex/parse errors carry a 0-based byte offset into the raw buffer; the
// renderer converts it to a 1-based line and column. Runtime errors carry no
// location (AST nodes have none) and are formatted header-only. Any other
// error is returned unchanged. This utility is independent of the
// interpreter; only the CLI decides the process exit code.
package fog

import (
	"fmt"
	"strings"
)

// WrapErrorWithSource returns err augmented with a caret-annotated snippet of
// src when err is a *LexError or *ParseError, a header-only message for
// *RuntimeError, and err itself otherwise.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source name (typically the
// file path) included in the header.
func WrapErrorWithName(err error, srcName string, src string) error {
	switch e := err.(type) {
	case *LexError:
		return fmt.Errorf("%s", snippetAt(src, "LEX ERROR", srcName, e.Pos, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", snippetAt(src, "PARSE ERROR", srcName, e.Pos, e.Msg))
	case *RuntimeError:
		if srcName != "" {
			return fmt.Errorf("RUNTIME ERROR in %s: %s", srcName, e.Msg)
		}
		return err
	default:
		return err
	}
}

// offsetToLineCol converts a 0-based byte offset into 1-based line/column.
// Offsets out of range are clamped.
func offsetToLineCol(src string, pos int) (int, int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(src) {
		pos = len(src)
	}
	line := 1 + strings.Count(src[:pos], "\n")
	lastNL := strings.LastIndex(src[:pos], "\n")
	if lastNL < 0 {
		return line, pos + 1
	}
	return line, pos - lastNL
}

// snippetAt builds a snippet with a header and a caret. It shows at most one
// previous and one next line when available; coordinates are clamped so the
// caret renders safely on short or empty sources.
func snippetAt(src, header, name string, pos int, msg string) string {
	line, col := offsetToLineCol(src, pos)

	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]
	if col > len(lineTxt)+1 {
		col = len(lineTxt) + 1
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
