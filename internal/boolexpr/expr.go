package boolexpr

import "strings"

// Expr is a node in the boolean expression IR.
// Nodes are immutable views over source expressions; Text renders the
// node back to its original source form.
type Expr interface {
	isExpr()
	Text() string
}

// Op is a boolean infix operator.
type Op int

const (
	_ Op = iota
	OpAndAnd
	OpAnd
	OpOrOr
	OpOr
	OpXor
	OpEq
	OpNeq
)

func (op Op) String() string {
	switch op {
	case OpAndAnd:
		return "&&"
	case OpAnd:
		return "&"
	case OpOrOr:
		return "||"
	case OpOr:
		return "|"
	case OpXor:
		return "^"
	case OpEq:
		return "=="
	case OpNeq:
		return "!="
	default:
		return "?"
	}
}

// ShortCircuit reports whether the operator skips later operands once
// the result is determined.
func (op Op) ShortCircuit() bool {
	return op == OpAndAnd || op == OpOrOr
}

// AssignOp is a compound boolean assignment operator.
type AssignOp int

const (
	_ AssignOp = iota
	OpAndAssign
	OpOrAssign
)

func (op AssignOp) String() string {
	switch op {
	case OpAndAssign:
		return "&="
	case OpOrAssign:
		return "|="
	default:
		return "?"
	}
}

// Lit is a boolean literal.
type Lit struct {
	Val bool
}

func (*Lit) isExpr() {}
func (e *Lit) Text() string {
	if e.Val {
		return "true"
	}
	return "false"
}

// Ref is a reference to a named symbol. IsConst marks references that
// resolve to a declared compile-time constant; Known carries the value
// the host's constant evaluator could determine for it.
type Ref struct {
	Name    string
	IsConst bool
	Known   TriState
	BoolTyp bool
}

func (*Ref) isExpr() {}
func (e *Ref) Text() string {
	return e.Name
}

// Paren is a parenthesized expression.
type Paren struct {
	X Expr
}

func (*Paren) isExpr() {}
func (e *Paren) Text() string {
	return "(" + e.X.Text() + ")"
}

// Prefix is a logical negation. The operator is always "!".
type Prefix struct {
	X Expr
}

func (*Prefix) isExpr() {}
func (e *Prefix) Text() string {
	return "!" + e.X.Text()
}

// Operand is one element of a polyadic chain together with the
// whitespace that separated it from the neighboring operator tokens.
// Before sits between the preceding operator and the operand, After
// between the operand and the following operator.
type Operand struct {
	X      Expr
	Before string
	After  string
}

// Polyadic is a chain of two or more operands joined by the same
// associative boolean operator.
type Polyadic struct {
	Op       Op
	Operands []Operand
}

func (*Polyadic) isExpr() {}
func (e *Polyadic) Text() string {
	var sb strings.Builder
	for i, o := range e.Operands {
		if i > 0 {
			sb.WriteString(e.Op.String())
			sb.WriteString(o.Before)
		}
		sb.WriteString(o.X.Text())
		sb.WriteString(o.After)
	}
	return sb.String()
}

// Cmp is a comparison over non-boolean operands (x < y, n == 0).
// It is kept as a dedicated variant so a pending negation can be
// folded into the comparator instead of a leading "!".
type Cmp struct {
	Raw    string
	Tok    string
	Lhs    string
	Rhs    string
	Known  TriState
	Effect bool
	// HasConst marks comparisons that reference a declared named
	// constant somewhere in either operand.
	HasConst bool
}

func (*Cmp) isExpr() {}
func (e *Cmp) Text() string {
	return e.Raw
}

// Negated returns the comparison with its comparator flipped, or
// ok=false if the comparator has no negation.
func (e *Cmp) Negated() (string, bool) {
	neg, ok := negatedComparators[e.Tok]
	if !ok {
		return "", false
	}
	return e.Lhs + " " + neg + " " + e.Rhs, true
}

var negatedComparators = map[string]string{
	"==": "!=",
	"!=": "==",
	"<":  ">=",
	">=": "<",
	">":  "<=",
	"<=": ">",
}

// Assign is a compound boolean assignment (lhs &= rhs, lhs |= rhs).
// Stmt marks assignments that form a statement of their own, which
// makes the no-op form deletable instead of reducible to the lhs.
type Assign struct {
	Op   AssignOp
	Lhs  string
	Rhs  Expr
	Stmt bool
}

func (*Assign) isExpr() {}
func (e *Assign) Text() string {
	return e.Lhs + " " + e.Op.String() + " " + e.Rhs.Text()
}

// Opaque is an expression the IR does not model. It is carried as
// verbatim text plus the facts the frontend could establish about it.
type Opaque struct {
	Raw string
	// Effect marks expressions that may perform an observable effect
	// when evaluated (calls, receives, increments).
	Effect bool
	// Known is what the host's generic constant evaluator determined.
	Known TriState
	// Primary marks expressions that bind at least as tightly as a
	// prefix operator and need no parentheses under "!".
	Primary bool
	// Stmtable marks expressions that are legal as a standalone
	// statement (calls, receives).
	Stmtable bool
	BoolTyp  bool
	// HasConst marks expressions that reference a declared named
	// constant somewhere in the subtree.
	HasConst bool
}

func (*Opaque) isExpr() {}
func (e *Opaque) Text() string {
	return e.Raw
}

// Constructor helpers. The frontend builds nodes directly; these exist
// for tests and embedders.

// Bool creates a boolean literal.
func Bool(v bool) Expr {
	return &Lit{Val: v}
}

// Name creates a plain boolean variable reference.
func Name(s string) Expr {
	return &Ref{Name: s, BoolTyp: true}
}

// Const creates a reference to a named compile-time constant with the
// given statically known value.
func Const(s string, known TriState) Expr {
	return &Ref{Name: s, IsConst: true, Known: known, BoolTyp: true}
}

// Not negates an expression.
func Not(e Expr) Expr {
	return &Prefix{X: e}
}

// Group parenthesizes an expression.
func Group(e Expr) Expr {
	return &Paren{X: e}
}

// Call creates an opaque, side-effecting, boolean-returning call.
func Call(text string) Expr {
	return &Opaque{Raw: text, Effect: true, Primary: true, Stmtable: true, BoolTyp: true}
}

// Pure creates an opaque boolean expression without side effects.
func Pure(text string) Expr {
	return &Opaque{Raw: text, Primary: true, BoolTyp: true}
}

// Compare creates a non-boolean comparison from its parts.
func Compare(lhs, tok, rhs string) Expr {
	return &Cmp{Raw: lhs + " " + tok + " " + rhs, Tok: tok, Lhs: lhs, Rhs: rhs}
}

// CompoundAssign creates a compound boolean assignment.
func CompoundAssign(op AssignOp, lhs string, rhs Expr, stmt bool) Expr {
	return &Assign{Op: op, Lhs: lhs, Rhs: rhs, Stmt: stmt}
}

// Chain joins operands into a polyadic chain with single spaces around
// each operator token.
func Chain(op Op, xs ...Expr) *Polyadic {
	ops := make([]Operand, len(xs))
	for i, x := range xs {
		o := Operand{X: x, Before: " ", After: " "}
		if i == 0 {
			o.Before = ""
		}
		if i == len(xs)-1 {
			o.After = ""
		}
		ops[i] = o
	}
	return &Polyadic{Op: op, Operands: ops}
}

// IsBoolTyped reports whether the expression is known to be
// boolean-typed. Conservative: unknown shapes report what the
// frontend stamped on them.
func IsBoolTyped(e Expr) bool {
	switch x := e.(type) {
	case *Lit, *Prefix, *Polyadic, *Assign, *Cmp:
		return true
	case *Paren:
		return IsBoolTyped(x.X)
	case *Ref:
		return x.BoolTyp
	case *Opaque:
		return x.BoolTyp
	default:
		return false
	}
}
