package boolexpr

// Context answers questions about the syntactic position of a
// candidate that the IR itself cannot see. The frontend provides an
// implementation backed by the host syntax tree.
type Context interface {
	// CanExtractStatement reports whether a standalone statement can
	// be inserted immediately before the statement enclosing e.
	CanExtractStatement(e Expr) bool

	// SafeReplacement reports whether replacing e with the given text
	// is behavior-preserving in its enclosing position.
	SafeReplacement(e Expr, text string) bool
}

// PermissiveContext allows every extraction and replacement. It is the
// default for embedders that control placement themselves.
type PermissiveContext struct{}

func (PermissiveContext) CanExtractStatement(Expr) bool     { return true }
func (PermissiveContext) SafeReplacement(Expr, string) bool { return true }

// Classifier decides whether a candidate expression is foldable.
type Classifier struct {
	Eval *Evaluator
	Ctx  Context
}

// NewClassifier returns a classifier over the given evaluator. A nil
// ctx means PermissiveContext.
func NewClassifier(ev *Evaluator, ctx Context) *Classifier {
	if ctx == nil {
		ctx = PermissiveContext{}
	}
	return &Classifier{Eval: ev, Ctx: ctx}
}

// Classify returns the fold classification of a candidate expression.
func (c *Classifier) Classify(e Expr) Kind {
	switch x := e.(type) {
	case *Prefix, *Assign:
		if c.Eval.Eval(e).Determined() {
			return KindUseless
		}
		return KindUnknown

	case *Polyadic:
		return c.classifyPolyadic(x)

	default:
		return KindUnknown
	}
}

func (c *Classifier) classifyPolyadic(p *Polyadic) Kind {
	var (
		containsConstant        bool
		sideEffectMayBeRemoved  bool
		reducedToConstant       bool
		stopCheckingSideEffects bool
	)
	for _, o := range p.Operands {
		if o.X == nil {
			return KindUnknown
		}
		if !IsBoolTyped(o.X) {
			return KindUnknown
		}
		if !stopCheckingSideEffects && MayHaveSideEffects(o.X) {
			sideEffectMayBeRemoved = true
		}
		v := c.Eval.Eval(o.X)
		if !v.Determined() {
			continue
		}
		containsConstant = true
		if (p.Op == OpAndAnd && v == TriFalse) || (p.Op == OpOrOr && v == TriTrue) {
			// Operands after this one are unreachable in the folded
			// form; their effects are what the hoist protects.
			stopCheckingSideEffects = true
			reducedToConstant = true
		}
		if (p.Op == OpAnd && v == TriFalse) || (p.Op == OpOr && v == TriTrue) {
			// Eager dual: the chain reduces to a constant but every
			// operand still executes, so keep scanning for effects.
			reducedToConstant = true
		}
	}
	if !containsConstant {
		return KindUnknown
	}
	if sideEffectMayBeRemoved && reducedToConstant {
		if c.Ctx.CanExtractStatement(p) {
			return KindUselessWithSideEffects
		}
		return KindUnknown
	}
	return KindUseless
}
