// Package nolint implements //nolint directive handling. A directive may
// suppress every rule (`//nolint`) or a comma-separated subset
// (`//nolint:pointless-bool,constant-condition`), and its scope depends on
// where it appears: before the package clause it covers the whole file,
// inline it covers the enclosing statement, and on its own line it covers
// the statement or function declaration that starts on the next line.
package nolint

import (
	"go/ast"
	"go/token"
	"strings"
)

const directivePrefix = "//nolint"

// Manager answers whether a reported position is suppressed by a
// nolint directive in the parsed file.
type Manager struct {
	scopes map[string][]scope
}

// scope is a line range a directive applies to, plus the rule names it
// names. An empty rule set suppresses every rule.
type scope struct {
	rules     map[string]struct{}
	startLine int
	endLine   int
}

// ParseComments collects the nolint directives in f and resolves each to
// the source range it covers. Malformed directives are ignored.
func ParseComments(f *ast.File, fset *token.FileSet) *Manager {
	m := &Manager{scopes: make(map[string][]scope, len(f.Comments))}
	stmts := stmtsByLine(f, fset)
	pkgLine := fset.Position(f.Package).Line

	for _, cg := range f.Comments {
		for _, c := range cg.List {
			rules, ok := parseDirective(c.Text)
			if !ok {
				continue
			}
			pos := fset.Position(c.Slash)
			start, end := resolveScope(c, f, fset, stmts, pos, pkgLine)
			m.scopes[pos.Filename] = append(m.scopes[pos.Filename], scope{
				rules:     rules,
				startLine: start,
				endLine:   end,
			})
		}
	}
	return m
}

// IsNolint reports whether ruleName is suppressed at pos.
func (m *Manager) IsNolint(pos token.Position, ruleName string) bool {
	for _, s := range m.scopes[pos.Filename] {
		if pos.Line < s.startLine || pos.Line > s.endLine {
			continue
		}
		if len(s.rules) == 0 {
			return true
		}
		if _, ok := s.rules[ruleName]; ok {
			return true
		}
	}
	return false
}

// parseDirective extracts the rule set from a comment. It returns ok=false
// for comments that are not well-formed nolint directives, including a bare
// colon with no rules after it.
func parseDirective(text string) (map[string]struct{}, bool) {
	if !strings.HasPrefix(text, directivePrefix) {
		return nil, false
	}
	rest := text[len(directivePrefix):]
	rules := make(map[string]struct{})
	if rest == "" {
		return rules, true
	}
	if rest[0] != ':' {
		return nil, false
	}
	for _, name := range strings.Split(rest[1:], ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			rules[name] = struct{}{}
		}
	}
	if len(rules) == 0 {
		return nil, false
	}
	return rules, true
}

// resolveScope determines the line range a directive covers.
func resolveScope(
	c *ast.Comment,
	f *ast.File,
	fset *token.FileSet,
	stmts map[int]ast.Stmt,
	pos token.Position,
	pkgLine int,
) (start, end int) {
	// Before the package clause the directive covers the whole file.
	if pos.Line < pkgLine {
		return fset.Position(f.Pos()).Line, fset.Position(f.End()).Line
	}

	// Inline with a statement: cover that statement.
	if stmt, ok := stmts[pos.Line]; ok {
		if pos.Offset > fset.Position(stmt.Pos()).Offset {
			return fset.Position(stmt.Pos()).Line, fset.Position(stmt.End()).Line
		}
	}

	// On its own line: cover the statement starting on the next line.
	if stmt, ok := stmts[pos.Line+1]; ok {
		return pos.Line, fset.Position(stmt.End()).Line
	}

	// Or the function declaration starting on the next line.
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		if fset.Position(fn.Pos()).Line == pos.Line+1 {
			return pos.Line, fset.Position(fn.End()).Line
		}
	}

	return pos.Line, pos.Line
}

// stmtsByLine maps each line to the first statement starting on it.
func stmtsByLine(f *ast.File, fset *token.FileSet) map[int]ast.Stmt {
	stmts := make(map[int]ast.Stmt)
	ast.Inspect(f, func(n ast.Node) bool {
		if stmt, ok := n.(ast.Stmt); ok {
			line := fset.Position(stmt.Pos()).Line
			if _, seen := stmts[line]; !seen {
				stmts[line] = stmt
			}
		}
		return true
	})
	return stmts
}
