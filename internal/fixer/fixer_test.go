package fixer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fisherbryan/boolint/internal/lints"
	tt "github.com/fisherbryan/boolint/internal/types"
)

const confidenceThreshold = 0.8

func writeSample(t *testing.T, code string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "sample.go")
	require.NoError(t, os.WriteFile(filename, []byte(code), 0o644))
	return filename
}

func detectIssues(t *testing.T, filename string) []tt.Issue {
	t.Helper()
	node, fset, src, err := lints.ParseFile(filename, nil)
	require.NoError(t, err)
	info := lints.TypeCheckFile(node, fset)
	issues, err := lints.DetectPointlessBool(filename, node, fset, info, src, lints.DefaultPointlessBoolOptions())
	require.NoError(t, err)
	return issues
}

func TestAutoFixer(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "replace expression",
			input: `package main

func f(b bool) bool {
	return b && true
}
`,
			expected: `package main

func f(b bool) bool {
	return b
}
`,
		},
		{
			name: "hoist side effect before the statement",
			input: `package main

func cond() bool { return true }

func f() bool {
	v := cond() && false
	return v
}
`,
			expected: `package main

func cond() bool { return true }

func f() bool {
	cond()
	v := false
	return v
}
`,
		},
		{
			name: "negated comparison",
			input: `package main

func f(x, y int) bool {
	return x == y == false
}
`,
			expected: `package main

func f(x, y int) bool {
	return x != y
}
`,
		},
		{
			name: "comment inside the replaced range survives",
			input: `package main

func f(b bool) bool {
	return b /* keep me */ && true
}
`,
			expected: `package main

func f(b bool) bool {
	/* keep me */
	return b
}
`,
		},
		{
			name: "comment on a dropped operand line survives",
			input: `package main

func f(b, c bool) bool {
	return b &&
		false && // dead guard
		c
}
`,
			expected: `package main

func f(b, c bool) bool {
	// dead guard
	return false
}
`,
		},
		{
			name: "multiple issues in one file",
			input: `package main

func f(a, b bool) (bool, bool) {
	x := a || false
	y := b && true
	return x, y
}
`,
			expected: `package main

func f(a, b bool) (bool, bool) {
	x := a
	y := b
	return x, y
}
`,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			filename := writeSample(t, tc.input)
			issues := detectIssues(t, filename)
			require.NotEmpty(t, issues)

			fixer := New(false, confidenceThreshold)
			require.NoError(t, fixer.Fix(filename, issues))

			fixed, err := os.ReadFile(filename)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, string(fixed))
		})
	}
}

func TestAutoFixerDryRun(t *testing.T) {
	t.Parallel()
	input := `package main

func f(b bool) bool {
	return b && true
}
`
	filename := writeSample(t, input)
	issues := detectIssues(t, filename)
	require.NotEmpty(t, issues)

	fixer := New(true, confidenceThreshold)
	require.NoError(t, fixer.Fix(filename, issues))

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, input, string(content), "dry run must not modify the file")
}

func TestAutoFixerConfidenceThreshold(t *testing.T) {
	t.Parallel()
	input := `package main

func cond() bool { return true }

func f() bool {
	v := cond() && false
	return v
}
`
	filename := writeSample(t, input)
	issues := detectIssues(t, filename)
	require.NotEmpty(t, issues)

	// The hoisting fix carries lower confidence than a pure rewrite.
	fixer := New(false, 0.9)
	require.NoError(t, fixer.Fix(filename, issues))

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, input, string(content))
}

func TestApplySkipsOverlappingFixes(t *testing.T) {
	t.Parallel()
	src := []byte("package main\n\nfunc f(b bool) bool {\n\treturn b && true\n}\n")
	issues := []tt.Issue{
		{
			Confidence: 1,
			Fix:        &tt.Fix{Kind: tt.FixReplace, Start: 44, End: 53, Replacement: "b"},
		},
		{
			Confidence: 1,
			Fix:        &tt.Fix{Kind: tt.FixReplace, Start: 49, End: 53, Replacement: "false"},
		},
	}

	fixer := New(false, confidenceThreshold)
	fixed, n, err := fixer.Apply("sample.go", src, issues)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, string(fixed), "return b && false")
}

func TestApplyDeleteFix(t *testing.T) {
	t.Parallel()
	src := []byte("package main\n\nfunc f() {\n\tprintln(\"a\")\n\tprintln(\"b\")\n}\n")
	issues := []tt.Issue{
		{
			Confidence: 1,
			Fix:        &tt.Fix{Kind: tt.FixDelete, Start: 40, End: 52},
		},
	}

	fixer := New(false, confidenceThreshold)
	fixed, n, err := fixer.Apply("sample.go", src, issues)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "package main\n\nfunc f() {\n\tprintln(\"a\")\n}\n", string(fixed))
}
