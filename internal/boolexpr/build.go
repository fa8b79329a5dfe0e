package boolexpr

import "strings"

// Tracker records subtrees the builder copied verbatim. The downstream
// edit applier uses the markings to reattach comments that sit inside
// unchanged regions.
type Tracker struct {
	unchanged []Expr
}

// MarkUnchanged records e as copied verbatim and returns it.
func (t *Tracker) MarkUnchanged(e Expr) Expr {
	if t != nil {
		t.unchanged = append(t.unchanged, e)
	}
	return e
}

// Unchanged returns the recorded subtrees in marking order.
func (t *Tracker) Unchanged() []Expr {
	if t == nil {
		return nil
	}
	return t.unchanged
}

// Builder produces the simplified source form of a classified
// expression. Build never fails: shapes it does not fold are re-emitted
// verbatim and marked unchanged.
type Builder struct {
	Eval    *Evaluator
	Tracker *Tracker
}

// NewBuilder returns a builder over the given evaluator. A nil tracker
// is allowed; markings are then discarded.
func NewBuilder(ev *Evaluator, tr *Tracker) *Builder {
	return &Builder{Eval: ev, Tracker: tr}
}

// Build returns the simplified text for e. An empty result means the
// expression is a complete no-op (a no-op compound assignment in
// statement position) and the enclosing statement should be deleted.
func (b *Builder) Build(e Expr) string {
	var sb strings.Builder
	b.build(e, &sb)
	return sb.String()
}

func (b *Builder) build(e Expr, out *strings.Builder) {
	switch x := e.(type) {
	case nil:
	case *Assign:
		b.buildAssign(x, out)
	case *Polyadic:
		b.buildPolyadic(x, out)
	case *Prefix:
		b.buildPrefix(x, out)
	case *Paren:
		out.WriteString("(")
		b.build(x.X, out)
		out.WriteString(")")
	default:
		out.WriteString(b.Tracker.MarkUnchanged(e).Text())
	}
}

func (b *Builder) buildPolyadic(p *Polyadic, out *strings.Builder) {
	switch p.Op {
	case OpAndAnd, OpAnd:
		// "true" operands are the identity; a "false" operand is the
		// immediate result.
		var kept []Operand
		for _, o := range p.Operands {
			if b.Eval.Eval(o.X) == TriTrue {
				continue
			}
			if b.Eval.Eval(o.X) == TriFalse {
				out.WriteString("false")
				return
			}
			kept = append(kept, o)
		}
		if len(kept) == 0 {
			out.WriteString("true")
			return
		}
		b.joinOperands(kept, p.Op.String(), false, out)

	case OpOrOr, OpOr:
		var kept []Operand
		for _, o := range p.Operands {
			if b.Eval.Eval(o.X) == TriFalse {
				continue
			}
			if b.Eval.Eval(o.X) == TriTrue {
				out.WriteString("true")
				return
			}
			kept = append(kept, o)
		}
		if len(kept) == 0 {
			out.WriteString("false")
			return
		}
		b.joinOperands(kept, p.Op.String(), false, out)

	case OpXor, OpNeq:
		// "false" is the identity; each "true" toggles a pending
		// negation of whatever survives.
		negate := false
		var kept []Operand
		for _, o := range p.Operands {
			if b.Eval.Eval(o.X) == TriFalse {
				continue
			}
			if b.Eval.Eval(o.X) == TriTrue {
				negate = !negate
				continue
			}
			kept = append(kept, o)
		}
		if len(kept) == 0 {
			if negate {
				out.WriteString("true")
			} else {
				out.WriteString("false")
			}
			return
		}
		b.joinOperands(kept, p.Op.String(), negate, out)

	case OpEq:
		// The mirror image of the xor family: "true" is the identity,
		// "false" the toggle.
		negate := false
		var kept []Operand
		for _, o := range p.Operands {
			if b.Eval.Eval(o.X) == TriTrue {
				continue
			}
			if b.Eval.Eval(o.X) == TriFalse {
				negate = !negate
				continue
			}
			kept = append(kept, o)
		}
		if len(kept) == 0 {
			if negate {
				out.WriteString("false")
			} else {
				out.WriteString("true")
			}
			return
		}
		b.joinOperands(kept, p.Op.String(), negate, out)

	default:
		out.WriteString(b.Tracker.MarkUnchanged(p).Text())
	}
}

func (b *Builder) joinOperands(operands []Operand, tok string, negate bool, out *strings.Builder) {
	if len(operands) == 1 {
		e := operands[0].X
		if !negate {
			out.WriteString(b.Tracker.MarkUnchanged(e).Text())
			return
		}
		if cmp, ok := e.(*Cmp); ok {
			if neg, ok := cmp.Negated(); ok {
				b.Tracker.MarkUnchanged(cmp)
				out.WriteString(neg)
				return
			}
		}
		if needsParensUnderNot(e) {
			out.WriteString("!(")
			out.WriteString(b.Tracker.MarkUnchanged(e).Text())
			out.WriteString(")")
		} else {
			out.WriteString("!")
			out.WriteString(b.Tracker.MarkUnchanged(e).Text())
		}
		return
	}

	if negate {
		out.WriteString("!(")
	}
	for i, o := range operands {
		if i > 0 {
			out.WriteString(tok)
			out.WriteString(o.Before)
		}
		b.build(o.X, out)
		out.WriteString(o.After)
	}
	if negate {
		out.WriteString(")")
	}
}

func (b *Builder) buildPrefix(p *Prefix, out *strings.Builder) {
	switch b.Eval.Eval(p.X) {
	case TriTrue:
		out.WriteString("false")
	case TriFalse:
		out.WriteString("true")
	default:
		out.WriteString("!")
		b.build(p.X, out)
	}
}

func (b *Builder) buildAssign(a *Assign, out *strings.Builder) {
	switch a.Op {
	case OpAndAssign:
		if b.Eval.Eval(a.Rhs) == TriTrue {
			// x &= true is a no-op: delete the statement form, keep
			// just the lhs as a value.
			if a.Stmt {
				return
			}
			out.WriteString(a.Lhs)
			return
		}
		out.WriteString(a.Lhs)
		out.WriteString(" = false")

	case OpOrAssign:
		if b.Eval.Eval(a.Rhs) == TriFalse {
			if a.Stmt {
				return
			}
			out.WriteString(a.Lhs)
			return
		}
		out.WriteString(a.Lhs)
		out.WriteString(" = true")

	default:
		out.WriteString(b.Tracker.MarkUnchanged(a).Text())
	}
}

// needsParensUnderNot reports whether e binds looser than a prefix
// operator and must be parenthesized under "!".
func needsParensUnderNot(e Expr) bool {
	switch x := e.(type) {
	case *Polyadic, *Assign, *Cmp:
		return true
	case *Opaque:
		return !x.Primary
	default:
		return false
	}
}
