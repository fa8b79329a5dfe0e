package formatter

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fisherbryan/boolint/internal"
	tt "github.com/fisherbryan/boolint/internal/types"
)

func TestGenerateFormattedIssue(t *testing.T) {
	t.Parallel()
	code := &internal.SourceCode{
		Lines: []string{
			"package main",
			"",
			"func main() {",
			"    x := true",
			"    if true {}",
			"}",
		},
	}

	issues := []tt.Issue{
		{
			Rule:     "constant-condition",
			Filename: "test.go",
			Start:    token.Position{Line: 5, Column: 8},
			End:      token.Position{Line: 5, Column: 12},
			Message:  "condition is always true",
			Severity: tt.SeverityWarning,
		},
	}

	expected := `warning: constant-condition
 --> test.go:5:8
  |
5 | if true {}
  |    ~~~~~
  = condition is always true

`

	result := GenerateFormattedIssue(issues, code)

	assert.Equal(t, expected, result)
}

func TestGenerateFormattedIssuePointlessBool(t *testing.T) {
	t.Parallel()
	code := &internal.SourceCode{
		Lines: []string{
			"package main",
			"",
			"func f() bool {",
			"    v := cond() && false",
			"    return v",
			"}",
		},
	}

	issues := []tt.Issue{
		{
			Rule:       "pointless-bool",
			Filename:   "test.go",
			Start:      token.Position{Line: 4, Column: 10},
			End:        token.Position{Line: 4, Column: 25},
			Message:    "pointless boolean expression; can be simplified to `false`",
			Suggestion: "false",
			Note:       "side-effecting operands still execute and are hoisted into their own statements: cond()",
			Severity:   tt.SeverityWarning,
			Fix: &tt.Fix{
				Kind:        tt.FixReplace,
				Replacement: "false",
				Hoisted:     []string{"cond()"},
			},
		},
	}

	expected := `warning: pointless-bool
 --> test.go:4:10
  |
4 | v := cond() && false
  |      ~~~~~~~~~~~~~~~~
  = pointless boolean expression; can be simplified to ` + "`false`" + `

Hoisted side effects:
  | cond()

Suggestion:
  |
4 | false
  |

Note: side-effecting operands still execute and are hoisted into their own statements: cond()

`

	result := GenerateFormattedIssue(issues, code)

	assert.Equal(t, expected, result)
}

func TestGenerateFormattedIssueMultipleDigitLineNumbers(t *testing.T) {
	t.Parallel()
	lines := make([]string, 12)
	lines[0] = "package main"
	for i := 1; i < 11; i++ {
		lines[i] = "func pad() {}"
	}
	lines[11] = "    return b && true"
	code := &internal.SourceCode{Lines: lines}

	issues := []tt.Issue{
		{
			Rule:     "pointless-bool",
			Filename: "test.go",
			Start:    token.Position{Line: 12, Column: 12},
			End:      token.Position{Line: 12, Column: 21},
			Message:  "pointless boolean expression; can be simplified to `b`",
			Severity: tt.SeverityError,
		},
	}

	result := GenerateFormattedIssue(issues, code)

	assert.Contains(t, result, "error: pointless-bool")
	assert.Contains(t, result, "12 | return b && true")
}

func TestFindCommonIndent(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		lines    []string
		expected string
	}{
		{
			name:     "tabs",
			lines:    []string{"\tif true {", "\t\treturn b", "\t}"},
			expected: "\t",
		},
		{
			name:     "spaces",
			lines:    []string{"    a", "    b"},
			expected: "    ",
		},
		{
			name:     "mixed depths",
			lines:    []string{"\t\ta", "\tb"},
			expected: "\t",
		},
		{
			name:     "no indent",
			lines:    []string{"a", "\tb"},
			expected: "",
		},
		{
			name:     "empty lines ignored",
			lines:    []string{"", "\ta", "", "\tb"},
			expected: "\t",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, findCommonIndent(tc.lines))
		})
	}
}

func TestCalculateVisualColumn(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, calculateVisualColumn("abc", 1))
	assert.Equal(t, 2, calculateVisualColumn("abc", 3))
	// a tab advances to the next tab stop
	assert.Equal(t, tabWidth, calculateVisualColumn("\tabc", 2))
	assert.Equal(t, 0, calculateVisualColumn("abc", -1))
}
