package boolexpr

// Evaluator partially evaluates boolean expressions to a TriState,
// honoring short-circuit semantics.
//
// IgnoreConstRefs makes every expression that references a named
// compile-time constant evaluate to TriUnknown, so such expressions
// are never reported as pointless.
//
// Fallback is the generic constant evaluator consulted for shapes the
// partial evaluator does not special-case. When nil, FoldConst is
// used.
type Evaluator struct {
	IgnoreConstRefs bool
	Fallback        func(Expr) TriState
}

// NewEvaluator returns an evaluator with the given constant-reference
// policy and the default fallback.
func NewEvaluator(ignoreConstRefs bool) *Evaluator {
	return &Evaluator{IgnoreConstRefs: ignoreConstRefs}
}

// Eval evaluates the expression to a TriState.
func (ev *Evaluator) Eval(e Expr) TriState {
	if e == nil {
		return TriUnknown
	}
	if ev.IgnoreConstRefs && ReferencesNamedConstant(e) {
		return TriUnknown
	}
	switch x := e.(type) {
	case *Paren:
		return ev.Eval(x.X)

	case *Polyadic:
		switch x.Op {
		case OpOrOr, OpOr:
			for _, o := range x.Operands {
				// An effectful operand's execution depends on the
				// runtime truth of earlier operands; its outcome
				// cannot be predicted safely.
				if MayHaveSideEffects(o.X) {
					return TriUnknown
				}
				if ev.Eval(o.X) == TriTrue {
					return TriTrue
				}
			}
		case OpAndAnd, OpAnd:
			for _, o := range x.Operands {
				if MayHaveSideEffects(o.X) {
					return TriUnknown
				}
				if ev.Eval(o.X) == TriFalse {
					return TriFalse
				}
			}
		}

	case *Prefix:
		if v := ev.Eval(x.X); v.Determined() {
			return v.Not()
		}

	case *Assign:
		// A no-op/absorbing compound assignment is determined
		// entirely by its right-hand side.
		return ev.Eval(x.Rhs)
	}

	// Explicit final arm: everything else goes to the generic
	// constant evaluator.
	if ev.Fallback != nil {
		return ev.Fallback(e)
	}
	return FoldConst(e)
}

// FoldConst is the default generic constant evaluator: full eager
// boolean algebra over trees whose leaves are all statically known.
// Any unknown leaf makes the whole result TriUnknown.
func FoldConst(e Expr) TriState {
	switch x := e.(type) {
	case nil:
		return TriUnknown
	case *Lit:
		return FromBool(x.Val)
	case *Ref:
		return x.Known
	case *Opaque:
		return x.Known
	case *Cmp:
		return x.Known
	case *Paren:
		return FoldConst(x.X)
	case *Prefix:
		return FoldConst(x.X).Not()
	case *Polyadic:
		return foldPolyadic(x)
	default:
		return TriUnknown
	}
}

func foldPolyadic(p *Polyadic) TriState {
	vals := make([]bool, len(p.Operands))
	for i, o := range p.Operands {
		v := FoldConst(o.X)
		if !v.Determined() {
			return TriUnknown
		}
		vals[i] = v.Bool()
	}
	acc := vals[0]
	for _, v := range vals[1:] {
		switch p.Op {
		case OpAndAnd, OpAnd:
			acc = acc && v
		case OpOrOr, OpOr:
			acc = acc || v
		case OpXor, OpNeq:
			acc = acc != v
		case OpEq:
			acc = acc == v
		default:
			return TriUnknown
		}
	}
	return FromBool(acc)
}
