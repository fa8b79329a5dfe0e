package nolint

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, src string) *Manager {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "test.go", src, parser.ParseComments)
	require.NoError(t, err)
	return ParseComments(f, fset)
}

func at(line int) token.Position {
	return token.Position{Filename: "test.go", Line: line, Column: 1}
}

func TestParseDirective(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		comment string
		ok      bool
		rules   []string
	}{
		{"bare directive", "//nolint", true, nil},
		{"single rule", "//nolint:pointless-bool", true, []string{"pointless-bool"}},
		{"rule list", "//nolint:pointless-bool, constant-condition", true, []string{"pointless-bool", "constant-condition"}},
		{"unrelated comment", "// just a comment", false, nil},
		{"missing colon", "//nolintpointless-bool", false, nil},
		{"colon without rules", "//nolint:", false, nil},
		{"colon with blanks", "//nolint: , ", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, ok := parseDirective(tt.comment)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Len(t, rules, len(tt.rules))
			for _, r := range tt.rules {
				assert.Contains(t, rules, r)
			}
		})
	}
}

func TestDirectiveScopes(t *testing.T) {
	t.Parallel()
	mgr := parseSource(t, `package main

//nolint:pointless-bool,constant-condition
func foo() {
	// some code
}

//nolint
var x int
`)

	assert.True(t, mgr.IsNolint(at(5), "pointless-bool"),
		"standalone directive should cover the following function body")
	assert.True(t, mgr.IsNolint(at(8), "anyrule"),
		"bare directive should suppress every rule")
	assert.False(t, mgr.IsNolint(at(5), "other-rule"),
		"directive with a rule list should not suppress unlisted rules")
}

func TestFileWideDirective(t *testing.T) {
	t.Parallel()
	mgr := parseSource(t, `//nolint:pointless-bool
package main

func foo() bool {
	return true
}
`)

	assert.True(t, mgr.IsNolint(at(5), "pointless-bool"))
	assert.False(t, mgr.IsNolint(at(5), "constant-condition"))
}

func TestIsNolint(t *testing.T) {
	t.Parallel()
	mgr := parseSource(t, `package main

func main() {
	//nolint
	fmt.Println("Line 5")
	fmt.Println("Line 6")
	fmt.Println("Line 7") //nolint:rule1
	//nolint:rule2
	fmt.Println("Line 9")
}
`)

	tests := []struct {
		rule     string
		line     int
		expected bool
	}{
		{"anyrule", 5, true},
		{"anyrule", 6, false},
		{"rule1", 7, true},
		{"rule2", 9, true},
		{"rule3", 9, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, mgr.IsNolint(at(tt.line), tt.rule),
			"line %d rule %s", tt.line, tt.rule)
	}
}

func TestOtherFileNotSuppressed(t *testing.T) {
	t.Parallel()
	mgr := parseSource(t, `package main

//nolint
var x int
`)

	pos := token.Position{Filename: "other.go", Line: 4, Column: 1}
	assert.False(t, mgr.IsNolint(pos, "anyrule"))
}
