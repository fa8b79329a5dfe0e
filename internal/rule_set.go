package internal

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/fisherbryan/boolint/internal/lints"
	tt "github.com/fisherbryan/boolint/internal/types"
)

// LintRule is the interface all rules implement.
type LintRule interface {
	// Check runs the rule on a parsed and type-checked file and
	// returns the issues it found.
	Check(filename string, node *ast.File, fset *token.FileSet, info *types.Info, src []byte) ([]tt.Issue, error)

	// Name returns the rule name used in config and nolint comments.
	Name() string

	Severity() tt.Severity
	SetSeverity(tt.Severity)
}

// configurable is implemented by rules that accept per-rule options
// from the config file.
type configurable interface {
	ApplyConfig(tt.ConfigRule)
}

// PointlessBoolRule reports boolean expressions that always evaluate
// the same way regardless of some of their operands.
type PointlessBoolRule struct {
	opts lints.PointlessBoolOptions
}

func NewPointlessBoolRule() LintRule {
	return &PointlessBoolRule{opts: lints.DefaultPointlessBoolOptions()}
}

func (r *PointlessBoolRule) Check(filename string, node *ast.File, fset *token.FileSet, info *types.Info, src []byte) ([]tt.Issue, error) {
	return lints.DetectPointlessBool(filename, node, fset, info, src, r.opts)
}

func (r *PointlessBoolRule) Name() string {
	return lints.PointlessBoolRuleName
}

func (r *PointlessBoolRule) Severity() tt.Severity {
	return r.opts.Severity
}

func (r *PointlessBoolRule) SetSeverity(s tt.Severity) {
	r.opts.Severity = s
}

func (r *PointlessBoolRule) ApplyConfig(c tt.ConfigRule) {
	if c.IgnoreConstants != nil {
		r.opts.IgnoreConstants = *c.IgnoreConstants
	}
}

// ConstantConditionRule reports if/for/switch conditions that are
// statically known, such as `if false` left over from debugging.
type ConstantConditionRule struct {
	severity tt.Severity
}

func NewConstantConditionRule() LintRule {
	return &ConstantConditionRule{severity: tt.SeverityWarning}
}

func (r *ConstantConditionRule) Check(filename string, node *ast.File, fset *token.FileSet, info *types.Info, src []byte) ([]tt.Issue, error) {
	return lints.DetectConstantCondition(filename, node, fset, info, src, r.severity)
}

func (r *ConstantConditionRule) Name() string {
	return lints.ConstantConditionRuleName
}

func (r *ConstantConditionRule) Severity() tt.Severity {
	return r.severity
}

func (r *ConstantConditionRule) SetSeverity(s tt.Severity) {
	r.severity = s
}
