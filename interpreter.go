// interpreter.go — public surface of the Fog runtime.
//
// OVERVIEW
// --------
// This file defines the runtime data model and the Interpreter entry points;
// the tree-walking engine itself lives in interpreter_exec.go.
//
//   - The **runtime value model** (`Value`, `ValueTag`): every value carries a
//     payload and a reference to its type, and the type is itself a runtime
//     value (Tag VTType) whose payload is a *TypeDesc. The `type` primitive is
//     self-typed: its Type field points at itself.
//   - **Scopes** (`Scope`): frames holding name→value bindings plus an
//     operator table, linked by parent into a lookup chain rooted at the
//     interpreter's global scope.
//   - The **operator table**: `(operator name, lhs type, rhs type) → OpFunc`,
//     keyed by *type identity* (pointer comparison), with a nil lhs slot for
//     unary operators. Primitive types are singletons installed once at
//     construction, so identity keying is stable for the process lifetime.
//   - The **Interpreter** with the canonical entry points: `Run` (whole
//     program into the global scope), `Exec` (one statement), and `EvalExpr`
//     (one expression). All recover the engine's internal panic signal into a
//     *RuntimeError.
//
// SCOPING SEMANTICS
// -----------------
// Blocks evaluate in a fresh child of the enclosing scope; the program's root
// block evaluates directly in Global, so top-level declarations are global
// bindings. Lambdas do NOT capture their defining scope: a call chains the
// activation scope to the *caller's* scope (dynamic scoping, preserved from
// the reference behavior and documented as such).
package fog

import "fmt"

// ValueTag enumerates the payload kinds a Value may hold.
type ValueTag int

const (
	VTUnset  ValueTag = iota // uninitialised sentinel (typed `let` without initializer)
	VTInt                    // int32
	VTFloat                  // float32
	VTBool                   // bool
	VTString                 // string
	VTTuple                  // []*Value
	VTLambda                 // *LambdaExpr (uninvoked lambda AST)
	VTType                   // *TypeDesc
)

// Value is the universal runtime carrier. Type is a VTType value describing
// this value's type; it is nil only on the uninitialised sentinel produced by
// a lambda body falling off its end.
type Value struct {
	Tag  ValueTag
	Data any
	Type *Value
}

// TypeKind discriminates the payload of a type value.
type TypeKind int

const (
	TypePrimitive TypeKind = iota // named: "int", "float", "bool", "lambda", "type"
	TypeProduct                   // tuple of component types
	TypeSum                       // tagged union of component types
	TypeMap                       // function type domain -> codomain
)

// TypeDesc is the payload of a VTType value. Elems holds the components of a
// product or sum; Domain/Codomain are set for map types. All referenced types
// are themselves VTType values.
type TypeDesc struct {
	Kind     TypeKind
	Name     string
	Elems    []*Value
	Domain   *Value
	Codomain *Value
}

// OpFunc computes the result of an operator application. For unary operators
// lhs is nil.
type OpFunc func(lhs, rhs *Value) *Value

// OpKey identifies an operator table entry. LHS and RHS are compared by
// pointer identity of the operand type values; LHS is nil for unary
// operators.
type OpKey struct {
	Name string
	LHS  *Value
	RHS  *Value
}

// Scope is a frame of name→value bindings and operator registrations, linked
// to its parent. Lookups walk parent-ward; scope chains are acyclic.
type Scope struct {
	parent *Scope
	vars   map[string]*Value
	ops    map[OpKey]OpFunc
}

// NewScope creates a scope with the given parent (nil for the root).
func NewScope(parent *Scope) *Scope {
	return &Scope{
		parent: parent,
		vars:   make(map[string]*Value),
		ops:    make(map[OpKey]OpFunc),
	}
}

// DefineVar binds name in this frame, shadowing any outer binding.
func (s *Scope) DefineVar(name string, v *Value) {
	s.vars[name] = v
}

// InitVar pre-binds name to an uninitialised value of the given type.
func (s *Scope) InitVar(name string, typ *Value) {
	s.vars[name] = &Value{Tag: VTUnset, Type: typ}
}

// GetVar retrieves the nearest visible binding for name.
func (s *Scope) GetVar(name string) (*Value, error) {
	if v, ok := s.vars[name]; ok {
		return v, nil
	}
	if s.parent != nil {
		return s.parent.GetVar(name)
	}
	return nil, fmt.Errorf("undefined variable: %s", name)
}

// SetVar overwrites the nearest existing binding of name. It never defines:
// assigning to an unbound name is an error.
func (s *Scope) SetVar(name string, v *Value) error {
	if _, ok := s.vars[name]; ok {
		s.vars[name] = v
		return nil
	}
	if s.parent != nil {
		return s.parent.SetVar(name, v)
	}
	return fmt.Errorf("undefined variable: %s", name)
}

// GetOp retrieves the nearest operator registration for key.
func (s *Scope) GetOp(key OpKey) (OpFunc, error) {
	if fn, ok := s.ops[key]; ok {
		return fn, nil
	}
	if s.parent != nil {
		return s.parent.GetOp(key)
	}
	return nil, fmt.Errorf("undefined operator: %s", key.Name)
}

// SetOp registers an operator in this frame.
func (s *Scope) SetOp(key OpKey, fn OpFunc) {
	s.ops[key] = fn
}

// Names returns the names bound directly in this frame, unordered.
func (s *Scope) Names() []string {
	out := make([]string, 0, len(s.vars))
	for name := range s.vars {
		out = append(out, name)
	}
	return out
}

// RuntimeError is a fatal evaluation failure. It names the offending
// construct; Fog AST nodes carry no source positions, so there is no
// location.
type RuntimeError struct {
	Msg string
}

func (e *RuntimeError) Error() string {
	return "RUNTIME ERROR: " + e.Msg
}

// Interpreter evaluates Fog programs against a seeded global scope.
type Interpreter struct {
	Global *Scope
}

// NewInterpreter constructs an interpreter whose global scope is seeded with
// the self-typed `type` primitive, the primitives `int`, `float`, `bool` and
// `lambda`, and the default operator table: 32-bit integer `+ - * div mod`
// on (int, int) pairs, unary `-` on ints, float-widening `+ - * /` on every
// int/float pair that includes a float, and unary `-` on floats.
func NewInterpreter() *Interpreter {
	global := NewScope(nil)

	typeType := &Value{Tag: VTType, Data: &TypeDesc{Kind: TypePrimitive, Name: "type"}}
	typeType.Type = typeType
	global.DefineVar("type", typeType)

	initType := func(name string) *Value {
		t := &Value{
			Tag:  VTType,
			Data: &TypeDesc{Kind: TypePrimitive, Name: name},
			Type: typeType,
		}
		global.DefineVar(name, t)
		return t
	}
	intType := initType("int")
	floatType := initType("float")
	initType("bool")
	initType("lambda")

	makeIntOp := func(op func(a, b int32) int32) OpFunc {
		return func(a, b *Value) *Value {
			return &Value{Tag: VTInt, Data: op(a.Data.(int32), b.Data.(int32)), Type: intType}
		}
	}
	asFloat := func(v *Value) float32 {
		if v.Type == intType {
			return float32(v.Data.(int32))
		}
		return v.Data.(float32)
	}
	makeFloatOp := func(op func(a, b float32) float32) OpFunc {
		return func(a, b *Value) *Value {
			return &Value{Tag: VTFloat, Data: op(asFloat(a), asFloat(b)), Type: floatType}
		}
	}

	global.SetOp(OpKey{"+", intType, intType}, makeIntOp(func(a, b int32) int32 { return a + b }))
	global.SetOp(OpKey{"-", intType, intType}, makeIntOp(func(a, b int32) int32 { return a - b }))
	global.SetOp(OpKey{"*", intType, intType}, makeIntOp(func(a, b int32) int32 { return a * b }))
	global.SetOp(OpKey{"div", intType, intType}, makeIntOp(func(a, b int32) int32 {
		if b == 0 {
			fail("integer division by zero")
		}
		return a / b
	}))
	global.SetOp(OpKey{"mod", intType, intType}, makeIntOp(func(a, b int32) int32 {
		if b == 0 {
			fail("integer division by zero")
		}
		return a % b
	}))
	global.SetOp(OpKey{"-", nil, intType}, func(_, b *Value) *Value {
		return &Value{Tag: VTInt, Data: -b.Data.(int32), Type: intType}
	})

	// Mixed pairs drawn from {int, float} that include at least one float all
	// widen to float before applying.
	for i := 1; i < 4; i++ {
		typeA := intType
		if i&1 != 0 {
			typeA = floatType
		}
		typeB := intType
		if i&2 != 0 {
			typeB = floatType
		}
		global.SetOp(OpKey{"+", typeA, typeB}, makeFloatOp(func(a, b float32) float32 { return a + b }))
		global.SetOp(OpKey{"-", typeA, typeB}, makeFloatOp(func(a, b float32) float32 { return a - b }))
		global.SetOp(OpKey{"*", typeA, typeB}, makeFloatOp(func(a, b float32) float32 { return a * b }))
		global.SetOp(OpKey{"/", typeA, typeB}, makeFloatOp(func(a, b float32) float32 { return a / b }))
	}
	global.SetOp(OpKey{"-", nil, floatType}, func(_, b *Value) *Value {
		return &Value{Tag: VTFloat, Data: -b.Data.(float32), Type: floatType}
	})

	return &Interpreter{Global: global}
}

// Run evaluates a program's root block directly in the global scope, so
// top-level declarations become global bindings. A `return` escaping the root
// block is consumed and discarded. Returns nil on success or a *RuntimeError.
func (ip *Interpreter) Run(prog *BlockStmt) (err error) {
	defer ip.recoverRuntime(&err)
	for _, st := range prog.Stmts {
		// A return escaping to the top level has no consumer; it is discarded
		// and the remaining statements still run.
		ip.evalStmt(st, ip.Global)
	}
	return nil
}

// Exec evaluates a single statement in the given scope, discarding any
// escaping return signal. REPL hosts use this for non-expression lines.
func (ip *Interpreter) Exec(st Stmt, scope *Scope) (err error) {
	defer ip.recoverRuntime(&err)
	ip.evalStmt(st, scope)
	return nil
}

// EvalExpr evaluates a single expression in the given scope.
func (ip *Interpreter) EvalExpr(e Expr, scope *Scope) (v *Value, err error) {
	defer ip.recoverRuntime(&err)
	return ip.evalExpr(e, scope), nil
}

// RunSource lexes, parses and runs a whole source string. Lex and parse
// failures come back as *LexError / *ParseError, evaluation failures as
// *RuntimeError.
func (ip *Interpreter) RunSource(src string) error {
	prog, err := Parse(src)
	if err != nil {
		return err
	}
	return ip.Run(prog)
}

func (ip *Interpreter) recoverRuntime(err *error) {
	if r := recover(); r != nil {
		sig, ok := r.(runtimeSignal)
		if !ok {
			panic(r)
		}
		*err = &RuntimeError{Msg: sig.msg}
	}
}
