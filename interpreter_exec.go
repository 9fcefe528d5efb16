// interpreter_exec.go — private tree-walking engine for Fog.
//
// Statement evaluation yields a control signal: nil means NoResult, a
// non-nil *Value is a propagating `return`. Block evaluation short-circuits
// on the first return and hands it upward; a lambda call consumes it. All
// failures (unknown variable, unknown operator, type-resolution failure,
// arity mismatch, null expression) propagate by panicking with a
// runtimeSignal, recovered into *RuntimeError at the public boundary in
// interpreter.go. No exported identifiers here.
package fog

import "fmt"

// runtimeSignal is the engine's internal fatal-error panic payload.
type runtimeSignal struct {
	msg string
}

func fail(format string, args ...any) {
	panic(runtimeSignal{msg: fmt.Sprintf(format, args...)})
}

// ───────────────────────── statements ─────────────────────────

// evalStmt evaluates one statement. The returned value is the control
// signal: nil for NoResult, non-nil for a propagating return.
func (ip *Interpreter) evalStmt(node Stmt, scope *Scope) *Value {
	switch st := node.(type) {
	case *BlockStmt:
		blockScope := NewScope(scope)
		for _, inner := range st.Stmts {
			if ret := ip.evalStmt(inner, blockScope); ret != nil {
				return ret
			}
		}
		return nil

	case *DeclareStmt:
		typ := ip.resolveType(st.Type, scope)
		scope.InitVar(st.Name, typ)
		if st.Init != nil {
			v := ip.evalExpr(st.Init, scope)
			if err := scope.SetVar(st.Name, v); err != nil {
				fail("%s", err)
			}
		}
		return nil

	case *AssignStmt:
		v := ip.evalExpr(st.Value, scope)
		if err := scope.SetVar(st.Name, v); err != nil {
			fail("%s", err)
		}
		return nil

	case *ReturnStmt:
		return ip.evalExpr(st.Value, scope)

	case *ExprStmt:
		ip.evalExpr(st.Expr, scope)
		return nil
	}

	fail("unexpected statement node %T", node)
	return nil
}

// ───────────────────────── expressions ─────────────────────────

func (ip *Interpreter) evalExpr(node Expr, scope *Scope) *Value {
	if node == nil {
		fail("null expression")
	}

	switch e := node.(type) {
	case *VarExpr:
		v, err := scope.GetVar(e.Name)
		if err != nil {
			fail("%s", err)
		}
		return v

	case *IntExpr:
		return &Value{Tag: VTInt, Data: e.Value, Type: ip.atomicType(scope, "int")}

	case *FloatExpr:
		return &Value{Tag: VTFloat, Data: e.Value, Type: ip.atomicType(scope, "float")}

	case *BoolExpr:
		return &Value{Tag: VTBool, Data: e.Value, Type: ip.atomicType(scope, "bool")}

	case *UnaryExpr:
		v := ip.evalExpr(e.Operand, scope)
		op, err := scope.GetOp(OpKey{Name: e.Op, LHS: nil, RHS: v.Type})
		if err != nil {
			fail("%s", err)
		}
		return op(nil, v)

	case *BinaryExpr:
		lhs := ip.evalExpr(e.LHS, scope)
		rhs := ip.evalExpr(e.RHS, scope)
		op, err := scope.GetOp(OpKey{Name: e.Op, LHS: lhs.Type, RHS: rhs.Type})
		if err != nil {
			fail("%s", err)
		}
		return op(lhs, rhs)

	case *TupleExpr:
		elems := make([]*Value, len(e.Elems))
		types := make([]*Value, len(e.Elems))
		for i, sub := range e.Elems {
			elems[i] = ip.evalExpr(sub, scope)
			types[i] = elems[i].Type
		}
		tupleType := &Value{
			Tag:  VTType,
			Data: &TypeDesc{Kind: TypeProduct, Elems: types},
			Type: ip.atomicType(scope, "type"),
		}
		return &Value{Tag: VTTuple, Data: elems, Type: tupleType}

	case *CallExpr:
		return ip.evalCall(e, scope)

	case *LambdaExpr:
		// Lambdas are values over their (shared, immutable) AST; no closure
		// environment is captured.
		return &Value{Tag: VTLambda, Data: e, Type: ip.atomicType(scope, "lambda")}
	}

	fail("unexpected expression node %T", node)
	return nil
}

// evalCall resolves the callee, evaluates arguments left-to-right in the
// caller's scope, binds parameters positionally in a fresh scope chained to
// the caller, and evaluates the body there. A block body's return signal is
// unwrapped into the call result; falling off the end yields the
// uninitialised value.
func (ip *Interpreter) evalCall(e *CallExpr, scope *Scope) *Value {
	fnVar, err := scope.GetVar(e.Name)
	if err != nil {
		fail("%s", err)
	}
	if fnVar.Tag != VTLambda {
		fail("cannot call non-lambda value: %s", e.Name)
	}
	fn := fnVar.Data.(*LambdaExpr)

	if len(e.Args) != len(fn.Params) {
		fail("arity mismatch calling %s: expected %d arguments, got %d",
			e.Name, len(fn.Params), len(e.Args))
	}

	args := make([]*Value, len(e.Args))
	for i, a := range e.Args {
		args[i] = ip.evalExpr(a, scope)
	}

	fnScope := NewScope(scope)
	for i, param := range fn.Params {
		fnScope.DefineVar(param, args[i])
	}

	if fn.BlockBody != nil {
		if ret := ip.evalStmt(fn.BlockBody, fnScope); ret != nil {
			return ret
		}
		return &Value{Tag: VTUnset}
	}
	return ip.evalExpr(fn.ExprBody, fnScope)
}

// ───────────────────────── type resolution ─────────────────────────

// atomicType looks up a type by name through the scope chain and asserts it
// is a type value. Literal productions resolve their primitive this way, so
// they always land on the singletons installed at construction.
func (ip *Interpreter) atomicType(scope *Scope, name string) *Value {
	v, err := scope.GetVar(name)
	if err != nil {
		fail("unknown type: %s", name)
	}
	if v.Tag != VTType {
		fail("not a type: %s", name)
	}
	return v
}

// resolveType turns a parsed type expression into a runtime type value.
// Atomic names resolve through the scope; compound types are built fresh,
// typed `type`.
func (ip *Interpreter) resolveType(node TypeExpr, scope *Scope) *Value {
	switch t := node.(type) {
	case *AtomicTypeExpr:
		return ip.atomicType(scope, t.Name)

	case *ProductTypeExpr:
		elems := make([]*Value, len(t.Elems))
		for i, sub := range t.Elems {
			elems[i] = ip.resolveType(sub, scope)
		}
		return &Value{
			Tag:  VTType,
			Data: &TypeDesc{Kind: TypeProduct, Elems: elems},
			Type: ip.atomicType(scope, "type"),
		}

	case *SumTypeExpr:
		elems := make([]*Value, len(t.Elems))
		for i, sub := range t.Elems {
			elems[i] = ip.resolveType(sub, scope)
		}
		return &Value{
			Tag:  VTType,
			Data: &TypeDesc{Kind: TypeSum, Elems: elems},
			Type: ip.atomicType(scope, "type"),
		}

	case *MapTypeExpr:
		return &Value{
			Tag: VTType,
			Data: &TypeDesc{
				Kind:     TypeMap,
				Domain:   ip.resolveType(t.Domain, scope),
				Codomain: ip.resolveType(t.Codomain, scope),
			},
			Type: ip.atomicType(scope, "type"),
		}
	}

	fail("unexpected type node %T", node)
	return nil
}
