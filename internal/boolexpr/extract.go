package boolexpr

// ExtractSideEffects returns the side-effecting sub-expressions of a
// folded polyadic chain that still execute in the original program, in
// source order. Non-polyadic expressions have nothing to extract.
//
// For short-circuit operators the scan stops at the truncation point:
// the first operand whose value equals the stopper (false for &&, true
// for ||). Operands at or after the stopper never execute in the real
// program and must not be hoisted.
func ExtractSideEffects(e Expr, ev *Evaluator) []Expr {
	p, ok := e.(*Polyadic)
	if !ok {
		return nil
	}
	stopper := TriUnknown
	switch p.Op {
	case OpAndAnd:
		stopper = TriFalse
	case OpOrOr:
		stopper = TriTrue
	}
	var effects []Expr
	for _, o := range p.Operands {
		if stopper.Determined() && ev.Eval(o.X) == stopper {
			break
		}
		effects = append(effects, CollectEffects(o.X)...)
	}
	return effects
}
