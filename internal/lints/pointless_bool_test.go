package lints

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/fisherbryan/boolint/internal/types"
)

func runPointlessBool(t *testing.T, code string, opts PointlessBoolOptions) []tt.Issue {
	t.Helper()
	tmpfile := filepath.Join(t.TempDir(), "sample.go")
	require.NoError(t, os.WriteFile(tmpfile, []byte(code), 0o644))

	node, fset, src, err := ParseFile(tmpfile, nil)
	require.NoError(t, err)
	info := TypeCheckFile(node, fset)

	issues, err := DetectPointlessBool(tmpfile, node, fset, info, src, opts)
	require.NoError(t, err)
	return issues
}

func TestDetectPointlessBool(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		code       string
		expected   int
		suggestion string
	}{
		{
			name: "conjunction with true",
			code: `
package main

func f(b bool) bool {
	return b && true
}`,
			expected:   1,
			suggestion: "b",
		},
		{
			name: "conjunction with false",
			code: `
package main

func f(b bool) bool {
	return b && false
}`,
			expected:   1,
			suggestion: "false",
		},
		{
			name: "disjunction with true",
			code: `
package main

func f(b bool) bool {
	return b || true
}`,
			expected:   1,
			suggestion: "true",
		},
		{
			name: "disjunction with false",
			code: `
package main

func f(b bool) bool {
	return b || false
}`,
			expected:   1,
			suggestion: "b",
		},
		{
			name: "equality with true",
			code: `
package main

func f(b bool) bool {
	return b == true
}`,
			expected:   1,
			suggestion: "b",
		},
		{
			name: "inequality with true negates",
			code: `
package main

func f(b bool) bool {
	return b != true
}`,
			expected:   1,
			suggestion: "!b",
		},
		{
			name: "equality with false flips the comparison",
			code: `
package main

func f(x, y int) bool {
	return x == y == false
}`,
			expected:   1,
			suggestion: "x != y",
		},
		{
			name: "negated chain gets parenthesized",
			code: `
package main

func f(a, b bool) bool {
	return (a && b) == false
}`,
			expected:   1,
			suggestion: "!(a && b)",
		},
		{
			name: "negation of a constant",
			code: `
package main

func f() bool {
	return !true
}`,
			expected:   1,
			suggestion: "false",
		},
		{
			name: "longer chain keeps remaining operands",
			code: `
package main

func f(a, b bool) bool {
	return a && true && b
}`,
			expected:   1,
			suggestion: "a && b",
		},
		{
			name: "parenthesized sub-chain reported once at the outermost level",
			code: `
package main

func f(b, c bool) bool {
	return (b && true) && c
}`,
			expected:   1,
			suggestion: "b && c",
		},
		{
			name: "no constant operand",
			code: `
package main

func f(b, c bool) bool {
	return b && c
}`,
			expected: 0,
		},
		{
			name: "non-boolean comparison left alone",
			code: `
package main

func f(x, y int) bool {
	return x < y
}`,
			expected: 0,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			issues := runPointlessBool(t, tc.code, DefaultPointlessBoolOptions())
			require.Len(t, issues, tc.expected)
			if tc.expected == 0 {
				return
			}
			issue := issues[0]
			assert.Equal(t, PointlessBoolRuleName, issue.Rule)
			assert.Equal(t, tc.suggestion, issue.Suggestion)
			require.NotNil(t, issue.Fix)
			assert.Equal(t, tt.FixReplace, issue.Fix.Kind)
			assert.Equal(t, tc.suggestion, issue.Fix.Replacement)
		})
	}
}

func TestDetectPointlessBoolHoistsSideEffects(t *testing.T) {
	t.Parallel()
	code := `
package main

func cond() bool { return true }

func f() bool {
	v := cond() && false
	return v
}`

	issues := runPointlessBool(t, code, DefaultPointlessBoolOptions())
	require.Len(t, issues, 1)

	issue := issues[0]
	assert.Equal(t, "false", issue.Suggestion)
	require.NotNil(t, issue.Fix)
	assert.Equal(t, []string{"cond()"}, issue.Fix.Hoisted)
	assert.Contains(t, issue.Note, "cond()")
	assert.Less(t, issue.Confidence, 0.95)
}

func TestDetectPointlessBoolDropsUnreachedEffects(t *testing.T) {
	t.Parallel()
	// cond() never ran under short-circuit evaluation, so the fold
	// drops it without hoisting.
	code := `
package main

func cond() bool { return true }

func f() bool {
	v := false && cond()
	return v
}`

	issues := runPointlessBool(t, code, DefaultPointlessBoolOptions())
	require.Len(t, issues, 1)

	issue := issues[0]
	assert.Equal(t, "false", issue.Suggestion)
	require.NotNil(t, issue.Fix)
	assert.Empty(t, issue.Fix.Hoisted)
	assert.Empty(t, issue.Note)
}

func TestDetectPointlessBoolRefusesUnsafeHoists(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		code string
	}{
		{
			name: "loop condition re-evaluates per iteration",
			code: `
package main

func cond() bool { return true }

func f() {
	for cond() && false {
	}
}`,
		},
		{
			name: "else-if condition runs conditionally",
			code: `
package main

func cond() bool { return true }

func f(a bool) {
	if a {
	} else if cond() && false {
	}
}`,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			issues := runPointlessBool(t, tc.code, DefaultPointlessBoolOptions())
			assert.Empty(t, issues)
		})
	}
}

func TestDetectPointlessBoolIfConditionHoist(t *testing.T) {
	t.Parallel()
	code := `
package main

func cond() bool { return true }

func f() {
	if cond() || true {
		println("always")
	}
}`

	issues := runPointlessBool(t, code, DefaultPointlessBoolOptions())
	require.Len(t, issues, 1)
	assert.Equal(t, "true", issues[0].Suggestion)
	require.NotNil(t, issues[0].Fix)
	assert.Equal(t, []string{"cond()"}, issues[0].Fix.Hoisted)
}

func TestDetectPointlessBoolConstantGuard(t *testing.T) {
	t.Parallel()
	code := `
package main

const debug = false

func f(b bool) bool {
	return b && debug
}`

	issues := runPointlessBool(t, code, DefaultPointlessBoolOptions())
	assert.Empty(t, issues, "named constants are deliberate switches by default")

	opts := DefaultPointlessBoolOptions()
	opts.IgnoreConstants = false
	issues = runPointlessBool(t, code, opts)
	require.Len(t, issues, 1)
	assert.Equal(t, "false", issues[0].Suggestion)
}

func TestDetectPointlessBoolPreservesComments(t *testing.T) {
	t.Parallel()
	code := `
package main

func f(b bool) bool {
	return b /* keep me */ && true
}`

	issues := runPointlessBool(t, code, DefaultPointlessBoolOptions())
	require.Len(t, issues, 1)

	fix := issues[0].Fix
	require.NotNil(t, fix)
	assert.Equal(t, []string{"/* keep me */"}, fix.Comments)
	assert.NotZero(t, fix.Anchor, "comments need an insertion anchor")
}

func TestDetectPointlessBoolKeptOperandCommentNotDuplicated(t *testing.T) {
	t.Parallel()
	// The comment sits inside the surviving operand, so the verbatim
	// operand text already carries it.
	code := `
package main

func g(n int) bool { return n > 0 }

func f(x int) bool {
	return g( /* in arg */ x) && true
}`

	issues := runPointlessBool(t, code, DefaultPointlessBoolOptions())
	require.Len(t, issues, 1)

	fix := issues[0].Fix
	require.NotNil(t, fix)
	assert.Equal(t, "g( /* in arg */ x)", fix.Replacement)
	assert.Empty(t, fix.Comments)
}

func TestDetectPointlessBoolPositions(t *testing.T) {
	t.Parallel()
	code := `
package main

func f(b bool) bool {
	return b || false
}`

	issues := runPointlessBool(t, code, DefaultPointlessBoolOptions())
	require.Len(t, issues, 1)
	assert.Equal(t, 5, issues[0].Start.Line)
	assert.Equal(t, 9, issues[0].Start.Column)
}
