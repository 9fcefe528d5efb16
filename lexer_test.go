// lexer_test.go
package fog

import (
	"reflect"
	"testing"
)

func toks(t *testing.T, src string) []Token {
	t.Helper()
	ts, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize error for %q: %v", src, err)
	}
	return ts
}

func tokenTypes(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func wantTypes(t *testing.T, src string, want []TokenType) []Token {
	t.Helper()
	got := toks(t, src)
	if !reflect.DeepEqual(tokenTypes(got), want) {
		t.Fatalf("\nsource:\n%s\nwant types:\n%v\ngot types:\n%v\n", src, want, tokenTypes(got))
	}
	return got
}

func wantLexError(t *testing.T, src string) *LexError {
	t.Helper()
	_, err := Tokenize(src)
	if err == nil {
		t.Fatalf("expected lex error for %q, got none", src)
	}
	le, ok := err.(*LexError)
	if !ok {
		t.Fatalf("expected *LexError for %q, got %T: %v", src, err, err)
	}
	return le
}

func Test_Lexer_Declaration(t *testing.T) {
	wantTypes(t, "let x : int := 1 + 2\n", []TokenType{
		LET, IDENTIFIER, COLON, IDENTIFIER, ASSIGN, INT, PLUS, INT, TERMINATOR,
	})
}

func Test_Lexer_Terminator_AppendedAtEOF(t *testing.T) {
	wantTypes(t, "1 + 2", []TokenType{INT, PLUS, INT, TERMINATOR})
	wantTypes(t, "", []TokenType{TERMINATOR})
	wantTypes(t, "   ", []TokenType{TERMINATOR})

	// Every stream ends with TERMINATOR, with or without a trailing newline.
	for _, src := range []string{"let a : int", "let a : int\n", "do end", "x := 1 // note"} {
		ts := toks(t, src)
		if ts[len(ts)-1].Type != TERMINATOR {
			t.Fatalf("stream for %q does not end with TERMINATOR: %v", src, tokenTypes(ts))
		}
	}
}

func Test_Lexer_Semicolon_IsTerminator(t *testing.T) {
	wantTypes(t, "1; 2\n", []TokenType{INT, TERMINATOR, INT, TERMINATOR})
}

func Test_Lexer_Newline_Continuation_AfterOperator(t *testing.T) {
	wantTypes(t, "1 +\n2\n", []TokenType{INT, PLUS, INT, TERMINATOR})
	wantTypes(t, "x :=\n1\n", []TokenType{IDENTIFIER, ASSIGN, INT, TERMINATOR})
	wantTypes(t, "let f : int ->\nint\n", []TokenType{
		LET, IDENTIFIER, COLON, IDENTIFIER, ARROW, IDENTIFIER, TERMINATOR,
	})
}

func Test_Lexer_Newline_InsideParens_NeverTerminates(t *testing.T) {
	wantTypes(t, "(1,\n2)\n", []TokenType{LPAREN, INT, COMMA, INT, RPAREN, TERMINATOR})
	// Even after a non-continuation token, depth > 0 suppresses the terminator.
	wantTypes(t, "(1\n+ 2)\n", []TokenType{LPAREN, INT, PLUS, INT, RPAREN, TERMINATOR})
}

func Test_Lexer_Newline_AfterDo_Suppressed(t *testing.T) {
	// 'do' is a block opener and a continuation token; 'end' is not.
	wantTypes(t, "do\nend\n", []TokenType{LBRACE, RBRACE, TERMINATOR})
}

func Test_Lexer_LeadingNewlines_NoTokens(t *testing.T) {
	wantTypes(t, "\n\n1\n", []TokenType{INT, TERMINATOR})
}

func Test_Lexer_DoEnd_And_Braces_AreInterchangeable(t *testing.T) {
	a := toks(t, "do let a : int := 1\nend\n")
	b := toks(t, "{ let a : int := 1\n}\n")
	if !reflect.DeepEqual(tokenTypes(a), tokenTypes(b)) {
		t.Fatalf("do/end and {/} streams differ:\n%v\n%v", tokenTypes(a), tokenTypes(b))
	}
}

func Test_Lexer_TwoCharSymbols(t *testing.T) {
	wantTypes(t, ":= -> => != <= >=\n", []TokenType{
		ASSIGN, ARROW, FATARROW, NEQ, LTE, GTE, TERMINATOR,
	})
}

func Test_Lexer_OneCharSymbols(t *testing.T) {
	wantTypes(t, ": , + - * / = < > !\n", []TokenType{
		COLON, COMMA, PLUS, MINUS, STAR, SLASH, EQ, LT, GT, NOT, TERMINATOR,
	})
}

func Test_Lexer_Keywords(t *testing.T) {
	wantTypes(t, "let const return if else while true false\n", []TokenType{
		LET, CONST, RETURN, IF, ELSE, WHILE, TRUE, FALSE, TERMINATOR,
	})
	// Keyword prefixes are plain identifiers.
	wantTypes(t, "letter constant done\n", []TokenType{
		IDENTIFIER, IDENTIFIER, IDENTIFIER, TERMINATOR,
	})
}

func Test_Lexer_Comments(t *testing.T) {
	wantTypes(t, "1 // one\n2\n", []TokenType{INT, TERMINATOR, INT, TERMINATOR})
	wantTypes(t, "// only a comment\n", []TokenType{TERMINATOR})
}

func Test_Lexer_Numbers(t *testing.T) {
	got := wantTypes(t, "12 3.5 0.25\n", []TokenType{INT, FLOAT, FLOAT, TERMINATOR})
	if got[0].Lexeme != "12" || got[1].Lexeme != "3.5" || got[2].Lexeme != "0.25" {
		t.Fatalf("number lexemes not preserved: %+v", got[:3])
	}
}

func Test_Lexer_TrailingDot_IsCleanFloat(t *testing.T) {
	// "(1." lexes as '(' followed by the float "1.", not an error.
	got := wantTypes(t, "(1.", []TokenType{LPAREN, FLOAT, TERMINATOR})
	if got[1].Lexeme != "1." {
		t.Fatalf("want float lexeme %q, got %q", "1.", got[1].Lexeme)
	}
}

func Test_Lexer_MultipleDecimalPoints(t *testing.T) {
	wantLexError(t, "1..2")
	wantLexError(t, "3.1.4\n")
}

func Test_Lexer_NegativeDepth(t *testing.T) {
	wantLexError(t, ")")
	wantLexError(t, "}")
	wantLexError(t, "end")
	wantLexError(t, "(1))")
	wantLexError(t, "do end end")
}

func Test_Lexer_Depths_ReturnToZero(t *testing.T) {
	srcs := []string{
		"let f : int -> int := (x) => x * x\nlet r : int := f(5)\n",
		"do\n  do\n    let a : int := (1 + 2) * 3\n  end\nend\n",
		"let t : int * int := (1, (2, 3))\n",
	}
	for _, src := range srcs {
		counts := map[TokenType]int{}
		for _, tok := range toks(t, src) {
			counts[tok.Type]++
		}
		if counts[LPAREN] != counts[RPAREN] {
			t.Fatalf("paren depth does not return to 0 for %q", src)
		}
		if counts[LBRACE] != counts[RBRACE] {
			t.Fatalf("brace depth does not return to 0 for %q", src)
		}
	}
}

func Test_Lexer_UnknownBytes_Skipped(t *testing.T) {
	wantTypes(t, "1 @ 2\n", []TokenType{INT, INT, TERMINATOR})
	wantTypes(t, "\t1\r\n", []TokenType{INT, TERMINATOR})
}

func Test_Lexer_ByteOffsets(t *testing.T) {
	got := toks(t, "let x := 1\n")
	wantPos := []int{0, 4, 6, 9, 10}
	for i, want := range wantPos {
		if got[i].Pos != want {
			t.Fatalf("token %d (%s): want pos %d, got %d", i, got[i].Type, want, got[i].Pos)
		}
	}
}

func Test_Lexer_Error_Offset(t *testing.T) {
	le := wantLexError(t, "x := 1..2\n")
	if le.Pos != 7 {
		t.Fatalf("want error at offset 7 (second '.'), got %d", le.Pos)
	}
}
