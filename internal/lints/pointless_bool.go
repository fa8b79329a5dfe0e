package lints

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/fisherbryan/boolint/internal/boolexpr"
	tt "github.com/fisherbryan/boolint/internal/types"
)

const (
	PointlessBoolRuleName = "pointless-bool"

	msgCanBeSimplified = "pointless boolean expression; can be simplified to `%s`"
	msgDoesNotModify   = "pointless compound assignment; the statement does not modify its operand"

	noteSideEffects = "side-effecting operands still execute and are hoisted into their own statements: %s"

	confidencePure        = 0.95
	confidenceSideEffects = 0.8
)

// PointlessBoolOptions configures the pointless boolean expression rule.
type PointlessBoolOptions struct {
	// IgnoreConstants suppresses findings for expressions that
	// reference a named compile-time constant.
	IgnoreConstants bool
	Severity        tt.Severity
}

// DefaultPointlessBoolOptions returns the rule defaults.
func DefaultPointlessBoolOptions() PointlessBoolOptions {
	return PointlessBoolOptions{
		IgnoreConstants: true,
		Severity:        tt.SeverityWarning,
	}
}

// DetectPointlessBool reports boolean expressions whose value does not
// depend on one or more of their operands: conjunction/disjunction with
// a constant, double negation of a constant, constant (in)equality
// operands, and degenerate forms thereof. Each issue carries a
// structured fix; expressions whose fold would drop a side effect get
// the effect hoisted into preceding statements.
func DetectPointlessBool(
	filename string,
	node *ast.File,
	fset *token.FileSet,
	info *types.Info,
	src []byte,
	opts PointlessBoolOptions,
) ([]tt.Issue, error) {
	if info == nil {
		info = TypeCheckFile(node, fset)
	}
	conv := &irConverter{fset: fset, info: info, src: src}
	ev := boolexpr.NewEvaluator(opts.IgnoreConstants)

	var issues []tt.Issue
	ast.Inspect(node, func(n ast.Node) bool {
		expr, ok := n.(ast.Expr)
		if !ok || !conv.isCandidate(expr) {
			return true
		}
		path, _ := astutil.PathEnclosingInterval(node, expr.Pos(), expr.End())
		if !conv.isChainHead(expr, path) {
			return true
		}
		ctx := &exprContext{path: path}
		classifier := boolexpr.NewClassifier(ev, ctx)

		ir := conv.expr(expr)
		kind := classifier.Classify(ir)
		if kind == boolexpr.KindUnknown {
			return true
		}

		// A foldable expression nested inside another foldable one is
		// the outer fold's business; reporting both would produce
		// overlapping edits.
		if parent := parentSkipParens(path); parent != nil && conv.isCandidate(parent) {
			if classifier.Classify(conv.expr(parent)) != boolexpr.KindUnknown {
				return true
			}
		}

		tracker := &boolexpr.Tracker{}
		builder := boolexpr.NewBuilder(ev, tracker)
		simplified := strings.TrimSpace(builder.Build(ir))
		if !ctx.SafeReplacement(ir, simplified) {
			return true
		}

		comments := conv.orphanedComments(node, expr, simplified)
		issues = append(issues, buildPointlessBoolIssue(
			filename, fset, expr, path, ir, ev, kind, simplified, comments, opts))
		return true
	})

	return issues, nil
}

func buildPointlessBoolIssue(
	filename string,
	fset *token.FileSet,
	expr ast.Expr,
	path []ast.Node,
	ir boolexpr.Expr,
	ev *boolexpr.Evaluator,
	kind boolexpr.Kind,
	simplified string,
	comments []string,
	opts PointlessBoolOptions,
) tt.Issue {
	issue := tt.Issue{
		Rule:       PointlessBoolRuleName,
		Category:   "style",
		Filename:   filename,
		Start:      fset.Position(expr.Pos()),
		End:        fset.Position(expr.End()),
		Suggestion: simplified,
		Severity:   opts.Severity,
		Confidence: confidencePure,
	}

	if simplified == "" {
		issue.Message = msgDoesNotModify
		if stmt := enclosingStatement(path); stmt != nil {
			issue.Fix = &tt.Fix{
				Kind:     tt.FixDelete,
				Start:    fset.Position(stmt.Pos()).Offset,
				End:      fset.Position(stmt.End()).Offset,
				Comments: comments,
				Anchor:   fset.Position(stmt.Pos()).Offset,
			}
		}
		return issue
	}

	issue.Message = fmt.Sprintf(msgCanBeSimplified, simplified)
	fix := &tt.Fix{
		Kind:        tt.FixReplace,
		Start:       issue.Start.Offset,
		End:         issue.End.Offset,
		Replacement: simplified,
	}
	if kind == boolexpr.KindUselessWithSideEffects {
		var hoisted []string
		for _, eff := range boolexpr.ExtractSideEffects(ir, ev) {
			hoisted = append(hoisted, boolexpr.StatementFor(eff))
		}
		if stmt := enclosingStatement(path); stmt != nil && len(hoisted) > 0 {
			fix.Hoisted = hoisted
			fix.Anchor = fset.Position(stmt.Pos()).Offset
			issue.Note = fmt.Sprintf(noteSideEffects, strings.Join(hoisted, "; "))
			issue.Confidence = confidenceSideEffects
		}
	}
	if len(comments) > 0 {
		if stmt := enclosingStatement(path); stmt != nil {
			fix.Comments = comments
			fix.Anchor = fset.Position(stmt.Pos()).Offset
		}
	}
	issue.Fix = fix
	return issue
}

// irConverter lowers go/ast expressions into the boolexpr IR, stamping
// nodes with everything the type checker knows about them.
type irConverter struct {
	fset *token.FileSet
	info *types.Info
	src  []byte
}

var boolChainOps = map[token.Token]boolexpr.Op{
	token.LAND: boolexpr.OpAndAnd,
	token.LOR:  boolexpr.OpOrOr,
	token.EQL:  boolexpr.OpEq,
	token.NEQ:  boolexpr.OpNeq,
}

// isCandidate reports whether the expression is a shape the rule
// dispatches on: a boolean operator chain or a logical negation.
func (c *irConverter) isCandidate(e ast.Expr) bool {
	switch x := e.(type) {
	case *ast.BinaryExpr:
		_, ok := boolChainOps[x.Op]
		return ok && c.isBool(x.X) && c.isBool(x.Y)
	case *ast.UnaryExpr:
		return x.Op == token.NOT
	default:
		return false
	}
}

// isChainHead reports whether e is the outermost node of its operator
// chain. Inner nodes of `a && b && c` (and parenthesized sub-chains)
// are operands of the head, not candidates of their own.
func (c *irConverter) isChainHead(e ast.Expr, path []ast.Node) bool {
	bin, ok := e.(*ast.BinaryExpr)
	if !ok {
		return true
	}
	for _, n := range path[1:] {
		switch p := n.(type) {
		case *ast.ParenExpr:
			continue
		case *ast.BinaryExpr:
			return p.Op != bin.Op || !c.isBool(p.X) || !c.isBool(p.Y)
		default:
			return true
		}
	}
	return true
}

// expr lowers a single expression.
func (c *irConverter) expr(e ast.Expr) boolexpr.Expr {
	switch x := e.(type) {
	case *ast.ParenExpr:
		return &boolexpr.Paren{X: c.expr(x.X)}

	case *ast.UnaryExpr:
		if x.Op == token.NOT {
			return &boolexpr.Prefix{X: c.expr(x.X)}
		}
		return c.opaque(e)

	case *ast.Ident:
		return c.ident(x, e)

	case *ast.SelectorExpr:
		if obj := c.info.Uses[x.Sel]; obj != nil {
			if cst, ok := obj.(*types.Const); ok {
				return &boolexpr.Ref{
					Name:    c.text(e),
					IsConst: true,
					Known:   constBoolValue(cst.Val()),
					BoolTyp: c.isBool(e),
				}
			}
		}
		return c.opaque(e)

	case *ast.BinaryExpr:
		if op, ok := boolChainOps[x.Op]; ok && c.isBool(x.X) && c.isBool(x.Y) {
			return c.polyadic(x, op)
		}
		if isComparisonTok(x.Op) {
			return &boolexpr.Cmp{
				Raw:      c.text(e),
				Tok:      x.Op.String(),
				Lhs:      c.text(x.X),
				Rhs:      c.text(x.Y),
				Known:    c.constVal(e),
				Effect:   c.hasEffect(e),
				HasConst: c.referencesConst(e),
			}
		}
		return c.opaque(e)

	default:
		return c.opaque(e)
	}
}

func (c *irConverter) ident(x *ast.Ident, e ast.Expr) boolexpr.Expr {
	obj := c.info.Uses[x]
	if obj == nil {
		// Unresolved; keep it opaque and untyped so the classifier
		// stays away from it.
		return &boolexpr.Opaque{Raw: x.Name, Primary: true}
	}
	if obj == types.Universe.Lookup("true") {
		return &boolexpr.Lit{Val: true}
	}
	if obj == types.Universe.Lookup("false") {
		return &boolexpr.Lit{Val: false}
	}
	if cst, ok := obj.(*types.Const); ok {
		return &boolexpr.Ref{
			Name:    x.Name,
			IsConst: true,
			Known:   constBoolValue(cst.Val()),
			BoolTyp: c.isBool(e),
		}
	}
	return &boolexpr.Ref{Name: x.Name, BoolTyp: c.isBool(e)}
}

// polyadic flattens a maximal same-operator chain into one node,
// looking through parentheses so `(a && true) && b` folds as a single
// chain of three operands.
func (c *irConverter) polyadic(root *ast.BinaryExpr, op boolexpr.Op) boolexpr.Expr {
	var leaves []ast.Expr
	c.flattenChain(root, root.Op, &leaves)

	operands := make([]boolexpr.Operand, len(leaves))
	for i, leaf := range leaves {
		operands[i] = boolexpr.Operand{
			X:      c.expr(leaf),
			Before: c.wsBefore(leaf.Pos()),
			After:  c.wsAfter(leaf.End()),
		}
	}
	operands[0].Before = ""
	operands[len(operands)-1].After = ""
	return &boolexpr.Polyadic{Op: op, Operands: operands}
}

func (c *irConverter) flattenChain(e ast.Expr, tok token.Token, out *[]ast.Expr) {
	switch x := e.(type) {
	case *ast.ParenExpr:
		if inner, ok := x.X.(*ast.BinaryExpr); ok && inner.Op == tok && c.isBool(inner.X) && c.isBool(inner.Y) {
			c.flattenChain(x.X, tok, out)
			return
		}
	case *ast.BinaryExpr:
		if x.Op == tok && c.isBool(x.X) && c.isBool(x.Y) {
			c.flattenChain(x.X, tok, out)
			c.flattenChain(x.Y, tok, out)
			return
		}
	}
	*out = append(*out, e)
}

func (c *irConverter) opaque(e ast.Expr) boolexpr.Expr {
	return &boolexpr.Opaque{
		Raw:      c.text(e),
		Effect:   c.hasEffect(e),
		Known:    c.constVal(e),
		Primary:  isPrimaryExpr(e),
		Stmtable: c.isStmtable(e),
		BoolTyp:  c.isBool(e),
		HasConst: c.referencesConst(e),
	}
}

// orphanedComments returns the comments inside the candidate's source
// range that the simplified text does not carry. Comments inside a kept
// operand survive through that operand's verbatim text; comments
// attached to dropped operands or sitting between operands would be
// destroyed by the edit and need reattaching.
func (c *irConverter) orphanedComments(node *ast.File, e ast.Expr, simplified string) []string {
	start := c.fset.Position(e.Pos()).Offset
	end := c.fset.Position(e.End()).Offset

	var out []string
	for _, cg := range node.Comments {
		for _, cm := range cg.List {
			p := c.fset.Position(cm.Pos()).Offset
			if p < start || p >= end {
				continue
			}
			if strings.Contains(simplified, cm.Text) {
				continue
			}
			out = append(out, cm.Text)
		}
	}
	return out
}

func (c *irConverter) text(e ast.Expr) string {
	start := c.fset.Position(e.Pos()).Offset
	end := c.fset.Position(e.End()).Offset
	if start < 0 || end > len(c.src) || start > end {
		return ""
	}
	return string(c.src[start:end])
}

func (c *irConverter) wsBefore(pos token.Pos) string {
	end := c.fset.Position(pos).Offset
	start := end
	for start > 0 && isSpaceByte(c.src[start-1]) {
		start--
	}
	return string(c.src[start:end])
}

func (c *irConverter) wsAfter(pos token.Pos) string {
	start := c.fset.Position(pos).Offset
	end := start
	for end < len(c.src) && isSpaceByte(c.src[end]) {
		end++
	}
	return string(c.src[start:end])
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func (c *irConverter) isBool(e ast.Expr) bool {
	t := c.info.TypeOf(e)
	if t == nil {
		return false
	}
	basic, ok := t.Underlying().(*types.Basic)
	return ok && basic.Info()&types.IsBoolean != 0
}

func (c *irConverter) constVal(e ast.Expr) boolexpr.TriState {
	if tv, ok := c.info.Types[e]; ok && tv.Value != nil {
		return constBoolValue(tv.Value)
	}
	return boolexpr.TriUnknown
}

func constBoolValue(v constant.Value) boolexpr.TriState {
	if v == nil || v.Kind() != constant.Bool {
		return boolexpr.TriUnknown
	}
	return boolexpr.FromBool(constant.BoolVal(v))
}

// hasEffect reports whether evaluating the expression may perform an
// observable effect: a call or a channel receive anywhere in the
// subtree. Function literal bodies do not run on evaluation and are
// not descended into.
func (c *irConverter) hasEffect(e ast.Expr) bool {
	found := false
	ast.Inspect(e, func(n ast.Node) bool {
		if found {
			return false
		}
		switch x := n.(type) {
		case *ast.FuncLit:
			return false
		case *ast.CallExpr:
			if !c.isConversion(x) {
				found = true
				return false
			}
		case *ast.UnaryExpr:
			if x.Op == token.ARROW {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

// referencesConst reports whether the subtree references a declared
// named constant.
func (c *irConverter) referencesConst(e ast.Expr) bool {
	found := false
	ast.Inspect(e, func(n ast.Node) bool {
		if found {
			return false
		}
		if id, ok := n.(*ast.Ident); ok {
			if _, isConst := c.info.Uses[id].(*types.Const); isConst {
				// The predeclared literals are not named constants in
				// the sense of this rule.
				if c.info.Uses[id].Parent() != types.Universe {
					found = true
					return false
				}
			}
		}
		return true
	})
	return found
}

func (c *irConverter) isConversion(call *ast.CallExpr) bool {
	if tv, ok := c.info.Types[call.Fun]; ok {
		return tv.IsType()
	}
	return false
}

// isStmtable reports whether the expression is legal as a standalone
// statement.
func (c *irConverter) isStmtable(e ast.Expr) bool {
	switch x := e.(type) {
	case *ast.CallExpr:
		return !c.isConversion(x)
	case *ast.UnaryExpr:
		return x.Op == token.ARROW
	default:
		return false
	}
}

func isPrimaryExpr(e ast.Expr) bool {
	switch e.(type) {
	case *ast.BinaryExpr:
		return false
	default:
		return true
	}
}

func isComparisonTok(tok token.Token) bool {
	switch tok {
	case token.EQL, token.NEQ, token.LSS, token.GTR, token.LEQ, token.GEQ:
		return true
	default:
		return false
	}
}

// parentSkipParens returns the nearest enclosing expression that is not
// a parenthesization, or nil when the candidate sits directly in a
// statement.
func parentSkipParens(path []ast.Node) ast.Expr {
	for _, n := range path[1:] {
		if _, ok := n.(*ast.ParenExpr); ok {
			continue
		}
		if e, ok := n.(ast.Expr); ok {
			return e
		}
		return nil
	}
	return nil
}

// enclosingStatement returns the innermost statement containing the
// candidate.
func enclosingStatement(path []ast.Node) ast.Stmt {
	for _, n := range path {
		if s, ok := n.(ast.Stmt); ok {
			return s
		}
	}
	return nil
}

// exprContext answers the classifier's placement questions from the
// candidate's enclosing path.
type exprContext struct {
	path []ast.Node
}

// CanExtractStatement reports whether a statement can be inserted
// before the candidate's enclosing statement without changing when the
// hoisted effects run. Loop headers re-evaluate their condition, else-if
// headers only run on earlier misses, and init clauses introduce scope;
// all of those refuse extraction.
func (x *exprContext) CanExtractStatement(boolexpr.Expr) bool {
	stmt := enclosingStatement(x.path)
	if stmt == nil {
		return false
	}
	if !x.statementInBlock(stmt) {
		return false
	}
	switch s := stmt.(type) {
	case *ast.ExprStmt, *ast.AssignStmt, *ast.DeclStmt, *ast.ReturnStmt, *ast.SendStmt:
		return true
	case *ast.IfStmt:
		return s.Init == nil
	case *ast.SwitchStmt:
		return s.Init == nil
	default:
		return false
	}
}

// SafeReplacement refuses edits that would leave a syntactically
// invalid hole, such as deleting an expression that is not a statement
// of its own.
func (x *exprContext) SafeReplacement(_ boolexpr.Expr, text string) bool {
	if text != "" {
		return true
	}
	stmt := enclosingStatement(x.path)
	if stmt == nil {
		return false
	}
	_, ok := stmt.(*ast.ExprStmt)
	return ok && x.statementInBlock(stmt)
}

func (x *exprContext) statementInBlock(stmt ast.Stmt) bool {
	for i, n := range x.path {
		if n != ast.Node(stmt) {
			continue
		}
		if i+1 >= len(x.path) {
			return false
		}
		switch x.path[i+1].(type) {
		case *ast.BlockStmt, *ast.CaseClause, *ast.CommClause:
			return true
		default:
			return false
		}
	}
	return false
}
