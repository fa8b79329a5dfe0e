package lints

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	"github.com/fisherbryan/boolint/internal/boolexpr"
	tt "github.com/fisherbryan/boolint/internal/types"
)

const (
	ConstantConditionRuleName = "constant-condition"

	msgConstantCondition = "condition is always %v"

	confidenceConstantCondition = 0.9
)

// DetectConstantCondition reports if and for conditions that always
// evaluate the same way, such as `if false` left over from debugging.
// Conditions that are operator chains with a constant operand are the
// pointless-bool rule's business and are skipped here; conditions that
// reference a named constant are treated as deliberate switches.
func DetectConstantCondition(
	filename string,
	node *ast.File,
	fset *token.FileSet,
	info *types.Info,
	src []byte,
	severity tt.Severity,
) ([]tt.Issue, error) {
	if info == nil {
		info = TypeCheckFile(node, fset)
	}
	conv := &irConverter{fset: fset, info: info, src: src}
	ev := boolexpr.NewEvaluator(true)

	var issues []tt.Issue
	ast.Inspect(node, func(n ast.Node) bool {
		var cond ast.Expr
		switch s := n.(type) {
		case *ast.IfStmt:
			cond = s.Cond
		case *ast.ForStmt:
			cond = s.Cond
		}
		if cond == nil || conv.isCandidate(cond) {
			return true
		}

		v := ev.Eval(conv.expr(cond))
		if !v.Determined() {
			return true
		}
		issues = append(issues, tt.Issue{
			Rule:       ConstantConditionRuleName,
			Category:   "style",
			Filename:   filename,
			Message:    fmt.Sprintf(msgConstantCondition, v.Bool()),
			Start:      fset.Position(cond.Pos()),
			End:        fset.Position(cond.End()),
			Severity:   severity,
			Confidence: confidenceConstantCondition,
		})
		return true
	})

	return issues, nil
}
