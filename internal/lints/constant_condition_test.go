package lints

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/fisherbryan/boolint/internal/types"
)

func TestDetectConstantCondition(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		code     string
		expected int
		message  string
	}{
		{
			name: "if true",
			code: `
package main

func f() {
	if true {
		println("dead branch guard")
	}
}`,
			expected: 1,
			message:  "condition is always true",
		},
		{
			name: "for false",
			code: `
package main

func f() {
	for false {
	}
}`,
			expected: 1,
			message:  "condition is always false",
		},
		{
			name: "variable condition",
			code: `
package main

func f(b bool) {
	if b {
	}
}`,
			expected: 0,
		},
		{
			name: "named constant is a deliberate switch",
			code: `
package main

const debug = true

func f() {
	if debug {
	}
}`,
			expected: 0,
		},
		{
			name: "operator chain left to the pointless-bool rule",
			code: `
package main

func f(b bool) {
	if b && true {
	}
}`,
			expected: 0,
		},
		{
			name: "infinite for has no condition",
			code: `
package main

func f() {
	for {
		break
	}
}`,
			expected: 0,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tmpfile := filepath.Join(t.TempDir(), "sample.go")
			require.NoError(t, os.WriteFile(tmpfile, []byte(tc.code), 0o644))

			node, fset, src, err := ParseFile(tmpfile, nil)
			require.NoError(t, err)
			info := TypeCheckFile(node, fset)

			issues, err := DetectConstantCondition(tmpfile, node, fset, info, src, tt.SeverityWarning)
			require.NoError(t, err)
			require.Len(t, issues, tc.expected)
			if tc.expected > 0 {
				assert.Equal(t, ConstantConditionRuleName, issues[0].Rule)
				assert.Equal(t, tc.message, issues[0].Message)
			}
		})
	}
}
