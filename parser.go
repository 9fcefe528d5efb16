// parser.go — token-indexed recursive-descent parser for Fog.
//
// Statements dispatch on the first token (block / declaration / assignment /
// return); expressions use Pratt precedence climbing. The precedence table is
// unusual: comparison and equality operators bind *tighter* than arithmetic.
//
//	=  !=          binds tightest
//	<  <=  >  >=
//	*  /
//	+  -           binds loosest
//
// All binary operators are left-associative. Unary '-' and '!' are parsed as
// primary-leading prefixes, not through the table.
//
// A '(' in expression position is ambiguous between a lambda header and a
// parenthesised expression list. The parser resolves it speculatively: it
// saves the token index, attempts `( IDENT (, IDENT)* ) =>`, and on failure
// rewinds and reparses the parentheses as a grouping or a tuple.
//
// Any unmet expectation is a fatal *ParseError carrying the byte offset of
// the offending token and naming its lexeme.
package fog

import (
	"fmt"
	"strconv"
)

// ParseError is a fatal parse failure at a 0-based byte offset.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at offset %d: %s", e.Pos, e.Msg)
}

// Parse lexes and parses a complete Fog source string, returning the
// program's root block.
func Parse(src string) (*BlockStmt, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.program()
}

// ParseInteractive parses a REPL line. Unlike Parse, a statement may be a
// bare expression; it is wrapped in an ExprStmt so hosts can evaluate and
// display it.
func ParseInteractive(src string) (*BlockStmt, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, interactive: true}
	return p.program()
}

type parser struct {
	toks        []Token
	pos         int
	interactive bool
}

// ───────────────────────── token basics ─────────────────────────

func (p *parser) atEnd() bool { return p.pos >= len(p.toks) }

func (p *parser) peek() (Token, error) {
	if p.atEnd() {
		return Token{}, &ParseError{Pos: p.eofPos(), Msg: "unexpected end of input"}
	}
	return p.toks[p.pos], nil
}

func (p *parser) peekIs(tt TokenType) bool {
	return !p.atEnd() && p.toks[p.pos].Type == tt
}

func (p *parser) peekIsAt(offset int, tt TokenType) bool {
	i := p.pos + offset
	return i < len(p.toks) && p.toks[i].Type == tt
}

func (p *parser) next() Token {
	t := p.toks[p.pos]
	p.pos++
	return t
}

func (p *parser) match(tt TokenType) bool {
	if p.peekIs(tt) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expect(tt TokenType, msg string) (Token, error) {
	t, err := p.peek()
	if err != nil {
		return Token{}, err
	}
	if t.Type != tt {
		return Token{}, &ParseError{Pos: t.Pos, Msg: fmt.Sprintf("%s, got %s", msg, tokenDesc(t))}
	}
	p.pos++
	return t, nil
}

func (p *parser) eofPos() int {
	if len(p.toks) == 0 {
		return 0
	}
	return p.toks[len(p.toks)-1].Pos
}

func tokenDesc(t Token) string {
	if t.Lexeme == "" {
		return t.Type.String()
	}
	return strconv.Quote(t.Lexeme)
}

// ───────────────────────── program & statements ─────────────────────────

// program consumes statements until the tokens are exhausted, skipping stray
// terminators, and returns the root main block.
func (p *parser) program() (*BlockStmt, error) {
	var stmts []Stmt
	for !p.atEnd() {
		if p.match(TERMINATOR) {
			continue
		}
		st, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
	}
	return &BlockStmt{Stmts: stmts}, nil
}

func (p *parser) statement() (Stmt, error) {
	t, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch t.Type {
	case LBRACE:
		return p.block()
	case LET, CONST:
		return p.declare()
	case IDENTIFIER:
		if p.peekIsAt(1, ASSIGN) {
			return p.assign()
		}
	case RETURN:
		p.next()
		e, err := p.expr(0)
		if err != nil {
			return nil, err
		}
		return &ReturnStmt{Value: e}, nil
	}

	if p.interactive {
		e, err := p.expr(0)
		if err != nil {
			return nil, err
		}
		return &ExprStmt{Expr: e}, nil
	}
	return nil, &ParseError{Pos: t.Pos, Msg: "unexpected token: " + tokenDesc(t)}
}

// block parses `do STMT* end`. Terminators between statements are skipped.
func (p *parser) block() (*BlockStmt, error) {
	if _, err := p.expect(LBRACE, "expected 'do'"); err != nil {
		return nil, err
	}
	var stmts []Stmt
	for !p.peekIs(RBRACE) {
		if p.atEnd() {
			return nil, &ParseError{Pos: p.eofPos(), Msg: "expected 'end'"}
		}
		if p.match(TERMINATOR) {
			continue
		}
		st, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
	}
	p.next() // consume 'end'
	return &BlockStmt{Stmts: stmts}, nil
}

// declare parses `let|const NAME : TYPE [:= EXPR]`. The type annotation is
// required; the initializer is optional when the declaration ends at a
// terminator.
func (p *parser) declare() (Stmt, error) {
	isConst := p.next().Type == CONST

	name, err := p.expect(IDENTIFIER, "expected identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON, "expected ':'"); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}

	if p.atEnd() || p.peekIs(TERMINATOR) {
		return &DeclareStmt{IsConst: isConst, Name: name.Lexeme, Type: typ}, nil
	}
	if _, err := p.expect(ASSIGN, "expected ':='"); err != nil {
		return nil, err
	}
	init, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	return &DeclareStmt{IsConst: isConst, Name: name.Lexeme, Type: typ, Init: init}, nil
}

func (p *parser) assign() (Stmt, error) {
	name := p.next()
	p.next() // ':='
	value, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	return &AssignStmt{Name: name.Lexeme, Value: value}, nil
}

// ───────────────────────── expressions ─────────────────────────

// binaryPrecedence: higher binds tighter; every entry is left-associative.
var binaryPrecedence = map[TokenType]int{
	PLUS:  1,
	MINUS: 1,
	STAR:  2,
	SLASH: 2,
	LT:    3,
	LTE:   3,
	GT:    3,
	GTE:   3,
	EQ:    4,
	NEQ:   4,
}

func (p *parser) expr(minPrec int) (Expr, error) {
	left, err := p.primary()
	if err != nil {
		return nil, err
	}
	for !p.atEnd() {
		op := p.toks[p.pos]
		prec, ok := binaryPrecedence[op.Type]
		if !ok || prec < minPrec {
			break
		}
		p.pos++
		rhs, err := p.expr(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op.Lexeme, LHS: left, RHS: rhs}
	}
	return left, nil
}

func (p *parser) primary() (Expr, error) {
	t, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch t.Type {
	case MINUS, NOT:
		p.next()
		operand, err := p.primary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: t.Lexeme, Operand: operand}, nil

	case INT:
		p.next()
		// Parse wide, store narrow: 64-bit decimal truncated to int32.
		v, err := strconv.ParseInt(t.Lexeme, 10, 64)
		if err != nil {
			return nil, &ParseError{Pos: t.Pos, Msg: "invalid integer literal: " + strconv.Quote(t.Lexeme)}
		}
		return &IntExpr{Value: int32(v)}, nil

	case FLOAT:
		p.next()
		v, err := strconv.ParseFloat(t.Lexeme, 32)
		if err != nil {
			return nil, &ParseError{Pos: t.Pos, Msg: "invalid float literal: " + strconv.Quote(t.Lexeme)}
		}
		return &FloatExpr{Value: float32(v)}, nil

	case TRUE:
		p.next()
		return &BoolExpr{Value: true}, nil

	case FALSE:
		p.next()
		return &BoolExpr{Value: false}, nil

	case IDENTIFIER:
		if p.peekIsAt(1, LPAREN) {
			return p.call()
		}
		p.next()
		return &VarExpr{Name: t.Lexeme}, nil

	case LPAREN:
		return p.parenExpr()
	}

	return nil, &ParseError{Pos: t.Pos, Msg: "unexpected token: " + tokenDesc(t)}
}

// call parses `NAME ( ARGS... )`; the caller has already matched
// IDENTIFIER LPAREN at the current position.
func (p *parser) call() (Expr, error) {
	name := p.next()
	p.next() // '('

	var args []Expr
	if !p.peekIs(RPAREN) {
		for {
			a, err := p.expr(0)
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.expect(RPAREN, "expected ')'"); err != nil {
		return nil, err
	}
	return &CallExpr{Name: name.Lexeme, Args: args}, nil
}

// parenExpr disambiguates `( ... )` between a lambda and a grouping/tuple.
// Lambda headers are tried speculatively; on failure the position is restored
// and the parentheses reparse as an expression list.
func (p *parser) parenExpr() (Expr, error) {
	save := p.pos
	if params, ok := p.tryLambdaHeader(); ok {
		return p.lambdaBody(params)
	}
	p.pos = save

	p.next() // '('
	var elems []Expr
	for {
		e, err := p.expr(0)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.expect(RPAREN, "expected ')'"); err != nil {
		return nil, err
	}
	if len(elems) == 1 {
		return elems[0], nil
	}
	return &TupleExpr{Elems: elems}, nil
}

// tryLambdaHeader attempts `( IDENT (, IDENT)* ) =>` without raising errors.
// It reports false when the shape does not match; the caller rewinds.
func (p *parser) tryLambdaHeader() ([]string, bool) {
	if !p.match(LPAREN) {
		return nil, false
	}
	var params []string
	if !p.peekIs(IDENTIFIER) {
		return nil, false
	}
	params = append(params, p.next().Lexeme)
	for p.match(COMMA) {
		if !p.peekIs(IDENTIFIER) {
			return nil, false
		}
		params = append(params, p.next().Lexeme)
	}
	if !p.match(RPAREN) {
		return nil, false
	}
	if !p.match(FATARROW) {
		return nil, false
	}
	return params, true
}

// lambdaBody parses the body after a committed `(params) =>`: a block when
// the next token opens one, otherwise a single expression.
func (p *parser) lambdaBody(params []string) (Expr, error) {
	if p.peekIs(LBRACE) {
		body, err := p.block()
		if err != nil {
			return nil, err
		}
		return &LambdaExpr{Params: params, BlockBody: body}, nil
	}
	body, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	return &LambdaExpr{Params: params, ExprBody: body}, nil
}

// ───────────────────────── types ─────────────────────────

// parseType: type := product ( -> type )?   ('->' is right-associative)
func (p *parser) parseType() (TypeExpr, error) {
	left, err := p.parseProductType()
	if err != nil {
		return nil, err
	}
	if p.match(ARROW) {
		right, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &MapTypeExpr{Domain: left, Codomain: right}, nil
	}
	return left, nil
}

// parseProductType: product := sum ( * sum )*
func (p *parser) parseProductType() (TypeExpr, error) {
	first, err := p.parseSumType()
	if err != nil {
		return nil, err
	}
	elems := []TypeExpr{first}
	for p.match(STAR) {
		next, err := p.parseSumType()
		if err != nil {
			return nil, err
		}
		elems = append(elems, next)
	}
	if len(elems) == 1 {
		return elems[0], nil
	}
	return &ProductTypeExpr{Elems: elems}, nil
}

// parseSumType: sum := primary ( + primary )*
func (p *parser) parseSumType() (TypeExpr, error) {
	first, err := p.parseTypePrimary()
	if err != nil {
		return nil, err
	}
	elems := []TypeExpr{first}
	for p.match(PLUS) {
		next, err := p.parseTypePrimary()
		if err != nil {
			return nil, err
		}
		elems = append(elems, next)
	}
	if len(elems) == 1 {
		return elems[0], nil
	}
	return &SumTypeExpr{Elems: elems}, nil
}

// parseTypePrimary: primary := IDENTIFIER | ( type )
func (p *parser) parseTypePrimary() (TypeExpr, error) {
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch t.Type {
	case IDENTIFIER:
		p.next()
		return &AtomicTypeExpr{Name: t.Lexeme}, nil
	case LPAREN:
		p.next()
		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN, "expected ')'"); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, &ParseError{Pos: t.Pos, Msg: "expected type, got " + tokenDesc(t)}
}
