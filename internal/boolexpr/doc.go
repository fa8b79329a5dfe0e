// Package boolexpr implements a side-effect-aware partial evaluator and
// rewriter for boolean-typed expression trees.
//
// The package works on its own small expression IR rather than go/ast so
// the rewrite logic stays independent of how candidates are discovered.
// A frontend converts source expressions into the IR, stamping each node
// with what it knows (constant values, side effects, boolean typedness),
// and the package answers three questions about a candidate:
//
//   - Eval: what does the expression evaluate to, as a tri-state value,
//     honoring short-circuit semantics and refusing to predict operands
//     whose execution depends on unknown earlier values?
//   - Classify: can the expression be folded at all, and does folding it
//     require hoisting side-effecting operands into their own statements?
//   - Build: what is the simplified source text, with untouched subtrees
//     tracked so their comments survive the rewrite?
//
// Out of scope (degrades to Unknown or verbatim passthrough):
//   - non-boolean operands and expressions
//   - constant folding beyond boolean algebra (delegated to the
//     Evaluator's Fallback collaborator)
//   - any knowledge of the host syntax tree or its mutation
package boolexpr
