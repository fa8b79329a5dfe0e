package boolexpr

// TriState is the result of partially evaluating a boolean expression.
// TriUnknown means "not statically determinable" and must never be
// treated as a value.
type TriState int

const (
	TriUnknown TriState = iota
	TriTrue
	TriFalse
)

// FromBool converts a concrete boolean into a determined TriState.
func FromBool(v bool) TriState {
	if v {
		return TriTrue
	}
	return TriFalse
}

// Determined reports whether the value is TriTrue or TriFalse.
func (t TriState) Determined() bool {
	return t != TriUnknown
}

// Not negates a determined value. TriUnknown stays TriUnknown.
func (t TriState) Not() TriState {
	switch t {
	case TriTrue:
		return TriFalse
	case TriFalse:
		return TriTrue
	default:
		return TriUnknown
	}
}

// Bool returns the concrete value of a determined TriState.
// Calling it on TriUnknown returns false; check Determined first.
func (t TriState) Bool() bool {
	return t == TriTrue
}

func (t TriState) String() string {
	switch t {
	case TriTrue:
		return "True"
	case TriFalse:
		return "False"
	default:
		return "Unknown"
	}
}

// Kind classifies a candidate expression.
type Kind int

const (
	// KindUnknown means no fold is attempted.
	KindUnknown Kind = iota
	// KindUseless means the expression can be replaced by its
	// simplified form with no behavioral change.
	KindUseless
	// KindUselessWithSideEffects means the fold is legal only if
	// effect-bearing operands are hoisted into statements first.
	KindUselessWithSideEffects
)

func (k Kind) String() string {
	switch k {
	case KindUseless:
		return "Useless"
	case KindUselessWithSideEffects:
		return "UselessWithSideEffects"
	default:
		return "Unknown"
	}
}
