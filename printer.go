// printer.go — presentation-only collaborators of the core pipeline: the
// token dump, the indented AST dump, and value/type/binding formatting used
// by the CLI and the REPL. Nothing here mutates engine state.
package fog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

/* ---------- token dump ---------- */

// FormatTokens renders a token stream one row per token:
//
//	   0          LET | let
//	   1   IDENTIFIER | x
func FormatTokens(tokens []Token) string {
	var b strings.Builder
	for i, t := range tokens {
		fmt.Fprintf(&b, "%4d %12s | %s\n", i, t.Type.String(), t.Lexeme)
	}
	return b.String()
}

/* ---------- AST dump ---------- */

// FormatAST renders a parse tree indented by depth, one node label per line.
// Accepts any of the three node categories (Stmt, Expr, TypeExpr).
func FormatAST(node any) string {
	var b strings.Builder
	writeAST(&b, node, 0)
	return b.String()
}

func astPrefix(level int) string {
	if level == 0 {
		return ""
	}
	return strings.Repeat("  ", level-1) + "- "
}

func writeAST(b *strings.Builder, node any, level int) {
	if node == nil {
		return
	}
	prefix := astPrefix(level)

	switch n := node.(type) {
	case *BlockStmt:
		fmt.Fprintf(b, "%sBlock\n", prefix)
		for _, st := range n.Stmts {
			writeAST(b, st, level+1)
		}
	case *DeclareStmt:
		fmt.Fprintf(b, "%sDeclare (is_const: %t, var_name: %s)\n", prefix, n.IsConst, n.Name)
		writeAST(b, n.Type, level+1)
		if n.Init != nil {
			writeAST(b, n.Init, level+1)
		}
	case *AssignStmt:
		fmt.Fprintf(b, "%sAssign (var_name: %s)\n", prefix, n.Name)
		writeAST(b, n.Value, level+1)
	case *ReturnStmt:
		fmt.Fprintf(b, "%sReturn\n", prefix)
		writeAST(b, n.Value, level+1)
	case *ExprStmt:
		fmt.Fprintf(b, "%sExprStmt\n", prefix)
		writeAST(b, n.Expr, level+1)

	case *VarExpr:
		fmt.Fprintf(b, "%sVariable (name: %s)\n", prefix, n.Name)
	case *IntExpr:
		fmt.Fprintf(b, "%sIntLiteral (value: %d)\n", prefix, n.Value)
	case *FloatExpr:
		fmt.Fprintf(b, "%sFloatLiteral (value: %s)\n", prefix, formatFloat(n.Value))
	case *BoolExpr:
		fmt.Fprintf(b, "%sBoolLiteral (value: %t)\n", prefix, n.Value)
	case *UnaryExpr:
		fmt.Fprintf(b, "%sUnaryOp (op: %s)\n", prefix, n.Op)
		writeAST(b, n.Operand, level+1)
	case *BinaryExpr:
		fmt.Fprintf(b, "%sBinaryOp (op: %s)\n", prefix, n.Op)
		writeAST(b, n.LHS, level+1)
		writeAST(b, n.RHS, level+1)
	case *TupleExpr:
		fmt.Fprintf(b, "%sTuple\n", prefix)
		for _, e := range n.Elems {
			writeAST(b, e, level+1)
		}
	case *CallExpr:
		fmt.Fprintf(b, "%sCall (name: %s)\n", prefix, n.Name)
		for _, a := range n.Args {
			writeAST(b, a, level+1)
		}
	case *LambdaExpr:
		fmt.Fprintf(b, "%sLambda (params: %s)\n", prefix, strings.Join(n.Params, ", "))
		if n.BlockBody != nil {
			writeAST(b, n.BlockBody, level+1)
		} else {
			writeAST(b, n.ExprBody, level+1)
		}

	case *AtomicTypeExpr:
		fmt.Fprintf(b, "%sAtomicType (name: %s)\n", prefix, n.Name)
	case *ProductTypeExpr:
		fmt.Fprintf(b, "%sTupleType\n", prefix)
		for _, e := range n.Elems {
			writeAST(b, e, level+1)
		}
	case *SumTypeExpr:
		fmt.Fprintf(b, "%sSumType\n", prefix)
		for _, e := range n.Elems {
			writeAST(b, e, level+1)
		}
	case *MapTypeExpr:
		fmt.Fprintf(b, "%sMapType\n", prefix)
		writeAST(b, n.Domain, level+1)
		writeAST(b, n.Codomain, level+1)
	}
}

/* ---------- value & type formatting ---------- */

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

// FormatValue renders a runtime value for display.
func FormatValue(v *Value) string {
	if v == nil {
		return "<nil>"
	}
	switch v.Tag {
	case VTUnset:
		return "<uninitialised>"
	case VTInt:
		return strconv.FormatInt(int64(v.Data.(int32)), 10)
	case VTFloat:
		return formatFloat(v.Data.(float32))
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTString:
		return strconv.Quote(v.Data.(string))
	case VTTuple:
		elems := v.Data.([]*Value)
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = FormatValue(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case VTLambda:
		fn := v.Data.(*LambdaExpr)
		return "<lambda (" + strings.Join(fn.Params, ", ") + ")>"
	case VTType:
		return FormatType(v)
	}
	return "<unknown>"
}

// Relative binding strength of type constructors, used only to decide
// parenthesisation when rendering: primaries bind tighter than '+', which
// binds tighter than '*', which binds tighter than '->'.
const (
	typePrecMap = iota
	typePrecProduct
	typePrecSum
	typePrecPrimary
)

func typePrec(v *Value) int {
	d, ok := v.Data.(*TypeDesc)
	if !ok {
		return typePrecPrimary
	}
	switch d.Kind {
	case TypeMap:
		return typePrecMap
	case TypeProduct:
		return typePrecProduct
	case TypeSum:
		return typePrecSum
	}
	return typePrecPrimary
}

// FormatType renders a type value in source syntax, e.g. `int * int` or
// `(int -> int) -> bool`.
func FormatType(v *Value) string {
	if v == nil {
		return "?"
	}
	d, ok := v.Data.(*TypeDesc)
	if !ok {
		return "<not a type>"
	}
	wrap := func(sub *Value, min int) string {
		s := FormatType(sub)
		if typePrec(sub) <= min {
			return "(" + s + ")"
		}
		return s
	}
	switch d.Kind {
	case TypePrimitive:
		return d.Name
	case TypeProduct:
		parts := make([]string, len(d.Elems))
		for i, e := range d.Elems {
			parts[i] = wrap(e, typePrecProduct)
		}
		return strings.Join(parts, " * ")
	case TypeSum:
		parts := make([]string, len(d.Elems))
		for i, e := range d.Elems {
			parts[i] = wrap(e, typePrecSum)
		}
		return strings.Join(parts, " + ")
	case TypeMap:
		// '->' is right-associative: only the domain needs parentheses.
		domain := wrap(d.Domain, typePrecMap)
		return domain + " -> " + FormatType(d.Codomain)
	}
	return "<unknown type>"
}

/* ---------- binding display ---------- */

// FormatBindings renders a scope's own (name, value) pairs sorted by name,
// one `name : type = value` line each. This is the minimal operator-mode
// display of a finished run.
func FormatBindings(scope *Scope) string {
	names := scope.Names()
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		v, err := scope.GetVar(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "%s : %s = %s\n", name, FormatType(v.Type), FormatValue(v))
	}
	return b.String()
}
