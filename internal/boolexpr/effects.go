package boolexpr

// MayHaveSideEffects reports whether evaluating the expression may
// perform an observable effect. Assignments always do; opaque nodes
// and comparisons carry what the frontend established; pure shapes
// recurse into their children.
func MayHaveSideEffects(e Expr) bool {
	switch x := e.(type) {
	case nil:
		return false
	case *Lit, *Ref:
		return false
	case *Paren:
		return MayHaveSideEffects(x.X)
	case *Prefix:
		return MayHaveSideEffects(x.X)
	case *Polyadic:
		for _, o := range x.Operands {
			if MayHaveSideEffects(o.X) {
				return true
			}
		}
		return false
	case *Cmp:
		return x.Effect
	case *Assign:
		return true
	case *Opaque:
		return x.Effect
	default:
		return true
	}
}

// ReferencesNamedConstant reports whether the subtree contains a
// reference to a declared compile-time constant. The walk short
// circuits on the first hit.
func ReferencesNamedConstant(e Expr) bool {
	switch x := e.(type) {
	case nil:
		return false
	case *Ref:
		return x.IsConst
	case *Paren:
		return ReferencesNamedConstant(x.X)
	case *Prefix:
		return ReferencesNamedConstant(x.X)
	case *Polyadic:
		for _, o := range x.Operands {
			if ReferencesNamedConstant(o.X) {
				return true
			}
		}
		return false
	case *Assign:
		return ReferencesNamedConstant(x.Rhs)
	case *Cmp:
		return x.HasConst
	case *Opaque:
		return x.HasConst
	default:
		return false
	}
}

// CollectEffects gathers the side-effecting sub-expressions of e in
// source order. Effect-bearing leaves are returned whole; pure
// containers recurse.
func CollectEffects(e Expr) []Expr {
	switch x := e.(type) {
	case nil:
		return nil
	case *Paren:
		return CollectEffects(x.X)
	case *Prefix:
		return CollectEffects(x.X)
	case *Polyadic:
		var out []Expr
		for i, o := range x.Operands {
			effs := CollectEffects(o.X)
			if len(effs) > 0 && i > 0 && x.Op.ShortCircuit() {
				// Whether this operand runs depends on the runtime
				// value of earlier operands. Keep the whole chain as
				// one guarded effect instead of unconditional pieces.
				return []Expr{x}
			}
			out = append(out, effs...)
		}
		return out
	case *Cmp:
		if x.Effect {
			return []Expr{x}
		}
		return nil
	case *Assign:
		return []Expr{x}
	case *Opaque:
		if x.Effect {
			return []Expr{x}
		}
		return nil
	default:
		return nil
	}
}

// StatementFor renders an extracted side effect as a standalone
// statement. Calls and receives stand alone; anything else is bound
// to the blank identifier so the statement stays legal.
func StatementFor(e Expr) string {
	if o, ok := e.(*Opaque); ok && o.Stmtable {
		return o.Raw
	}
	if a, ok := e.(*Assign); ok {
		return a.Text()
	}
	return "_ = " + e.Text()
}
