package fixer

import (
	"bytes"
	"fmt"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"sort"
	"strings"

	tt "github.com/fisherbryan/boolint/internal/types"
)

type Fixer struct {
	DryRun        bool
	MinConfidence float64 // threshold for fixing issues
}

func New(dryRun bool, threshold float64) *Fixer {
	return &Fixer{
		DryRun:        dryRun,
		MinConfidence: threshold,
	}
}

// Fix applies the fixes carried by the issues to the file in place.
// The result is re-parsed and gofmt-formatted before writing, so a fix
// that would break the file is rejected as a whole.
func (f *Fixer) Fix(filename string, issues []tt.Issue) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if f.DryRun {
		for _, issue := range applicable(issues, f.MinConfidence) {
			fmt.Printf("Would fix issue in %s at line %d: %s\n", filename, issue.Start.Line, issue.Message)
			if len(issue.Fix.Hoisted) > 0 {
				fmt.Printf("Hoisted statements:\n%s\n", strings.Join(issue.Fix.Hoisted, "\n"))
			}
			if issue.Fix.Kind == tt.FixDelete {
				fmt.Println("Would delete the statement")
			} else {
				fmt.Printf("Suggestion:\n%s\n", issue.Suggestion)
			}
		}
		return nil
	}

	fixed, n, err := f.Apply(filename, content, issues)
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	if err := os.WriteFile(filename, fixed, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Printf("Fixed %d issue(s) in %s\n", n, filename)
	return nil
}

// Apply returns src with all applicable fixes applied and the number
// of fixes that took effect.
func (f *Fixer) Apply(filename string, src []byte, issues []tt.Issue) ([]byte, int, error) {
	todo := applicable(issues, f.MinConfidence)
	if len(todo) == 0 {
		return src, 0, nil
	}

	// Apply back to front so earlier offsets stay valid.
	sort.Slice(todo, func(i, j int) bool {
		return todo[i].Fix.Start > todo[j].Fix.Start
	})

	applied := 0
	prevStart := len(src) + 1
	for _, issue := range todo {
		fix := issue.Fix
		if fix.Start < 0 || fix.End > len(src) || fix.Start > fix.End {
			continue
		}
		// Overlapping edits would corrupt each other; first one wins.
		if fix.End > prevStart {
			continue
		}
		src = applyFix(src, fix)
		prevStart = fix.Start
		if len(fix.Hoisted) > 0 || len(fix.Comments) > 0 {
			prevStart = lineStart(src, fix.Anchor)
		}
		applied++
	}
	if applied == 0 {
		return src, 0, nil
	}

	fset := token.NewFileSet()
	astFile, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse fixed file: %w", err)
	}

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, astFile); err != nil {
		return nil, 0, fmt.Errorf("failed to format file: %w", err)
	}
	return buf.Bytes(), applied, nil
}

func applyFix(src []byte, fix *tt.Fix) []byte {
	var out []byte
	switch fix.Kind {
	case tt.FixDelete:
		out = splice(src, fix.Start, fix.End, "")
	default:
		out = splice(src, fix.Start, fix.End, fix.Replacement)
	}
	if len(fix.Hoisted) == 0 && len(fix.Comments) == 0 {
		return out
	}

	// Preserved comments and hoisted statements go on their own lines
	// immediately before the statement the fix lives in, at the same
	// indentation. The re-parse after editing attaches the comments to
	// the statement that follows them.
	start := lineStart(out, fix.Anchor)
	indent := extractIndent(out, start)
	var block strings.Builder
	for _, cm := range fix.Comments {
		block.WriteString(indent)
		block.WriteString(cm)
		block.WriteString("\n")
	}
	for _, stmt := range fix.Hoisted {
		block.WriteString(indent)
		block.WriteString(stmt)
		block.WriteString("\n")
	}
	return splice(out, start, start, block.String())
}

func splice(src []byte, start, end int, repl string) []byte {
	out := make([]byte, 0, len(src)-(end-start)+len(repl))
	out = append(out, src[:start]...)
	out = append(out, repl...)
	out = append(out, src[end:]...)
	return out
}

func lineStart(src []byte, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}
	for offset > 0 && src[offset-1] != '\n' {
		offset--
	}
	return offset
}

func extractIndent(src []byte, lineStart int) string {
	end := lineStart
	for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	return string(src[lineStart:end])
}

func applicable(issues []tt.Issue, minConfidence float64) []tt.Issue {
	out := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.Fix == nil || issue.Confidence < minConfidence {
			continue
		}
		out = append(out, issue)
	}
	return out
}
