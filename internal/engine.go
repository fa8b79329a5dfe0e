package internal

import (
	"fmt"
	"go/ast"
	"go/token"
	"sync"

	"github.com/fisherbryan/boolint/internal/lints"
	"github.com/fisherbryan/boolint/internal/nolint"
	tt "github.com/fisherbryan/boolint/internal/types"
)

// Engine runs the registered rules over parsed files.
type Engine struct {
	ignoredRules map[string]bool
	rules        map[string]LintRule
}

// NewEngine creates a lint engine with the default rules, adjusted by
// the given per-rule config.
func NewEngine(rules map[string]tt.ConfigRule) (*Engine, error) {
	engine := &Engine{}
	engine.applyRules(rules)
	return engine, nil
}

type ruleConstructor func() LintRule

type ruleMap map[string]ruleConstructor

var allRuleConstructors = ruleMap{
	lints.PointlessBoolRuleName:     NewPointlessBoolRule,
	lints.ConstantConditionRuleName: NewConstantConditionRule,
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) {
	e.rules = make(map[string]LintRule)
	for key, newRuleCstr := range allRuleConstructors {
		e.rules[key] = newRuleCstr()
	}

	for key, cfg := range rules {
		r := e.findRule(key)
		if r == nil {
			// Unknown rule name; leave it to config validation.
			continue
		}
		if cfg.Severity == tt.SeverityOff {
			e.IgnoreRule(key)
			continue
		}
		r.SetSeverity(cfg.Severity)
		if c, ok := r.(configurable); ok {
			c.ApplyConfig(cfg)
		}
	}
}

func (e *Engine) findRule(name string) LintRule {
	if rule, ok := e.rules[name]; ok {
		return rule
	}
	return nil
}

// Rules returns the names of the registered rules.
func (e *Engine) Rules() []string {
	names := make([]string, 0, len(e.rules))
	for name := range e.rules {
		names = append(names, name)
	}
	return names
}

// Run applies all active rules to the given file.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	node, fset, src, err := lints.ParseFile(filename, nil)
	if err != nil {
		return nil, fmt.Errorf("error parsing file: %w", err)
	}
	return e.runRules(filename, node, fset, src)
}

// RunSource applies all active rules to in-memory source.
func (e *Engine) RunSource(source []byte) ([]tt.Issue, error) {
	node, fset, src, err := lints.ParseFile("", source)
	if err != nil {
		return nil, fmt.Errorf("error parsing content: %w", err)
	}
	return e.runRules("", node, fset, src)
}

func (e *Engine) runRules(filename string, node *ast.File, fset *token.FileSet, src []byte) ([]tt.Issue, error) {
	info := lints.TypeCheckFile(node, fset)
	nolintMgr := nolint.ParseComments(node, fset)

	var wg sync.WaitGroup
	var mu sync.Mutex

	var allIssues []tt.Issue
	for _, rule := range e.rules {
		if e.ignoredRules[rule.Name()] {
			continue
		}
		wg.Add(1)
		go func(r LintRule) {
			defer wg.Done()
			issues, err := r.Check(filename, node, fset, info, src)
			if err != nil {
				return
			}

			filtered := filterNolintIssues(nolintMgr, issues)

			mu.Lock()
			allIssues = append(allIssues, filtered...)
			mu.Unlock()
		}(rule)
	}
	wg.Wait()

	return allIssues, nil
}

// ConfigureRule applies per-rule options to a single rule after
// construction, leaving its severity untouched. Unknown rule names are
// ignored.
func (e *Engine) ConfigureRule(name string, cfg tt.ConfigRule) {
	r := e.findRule(name)
	if r == nil {
		return
	}
	if c, ok := r.(configurable); ok {
		c.ApplyConfig(cfg)
	}
}

// IgnoreRule disables a rule by name.
func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

// filterNolintIssues drops issues whose position is covered by a
// nolint comment naming the issue's rule.
func filterNolintIssues(mgr *nolint.Manager, issues []tt.Issue) []tt.Issue {
	if mgr == nil {
		return issues
	}
	filtered := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		pos := token.Position{
			Filename: issue.Filename,
			Line:     issue.Start.Line,
		}
		if !mgr.IsNolint(pos, issue.Rule) {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}
