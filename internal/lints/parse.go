package lints

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os"
)

// ParseFile parses a single source file with comments. When content is
// nil the file is read from disk.
func ParseFile(filename string, content []byte) (*ast.File, *token.FileSet, []byte, error) {
	if content == nil {
		var err error
		content, err = os.ReadFile(filename)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, filename, content, parser.ParseComments)
	if err != nil {
		return nil, nil, nil, err
	}
	return node, fset, content, nil
}

// TypeCheckFile runs a tolerant type check over a single parsed file.
// Errors are swallowed: rules treat anything the checker could not
// resolve as non-boolean / non-constant and stay silent about it.
func TypeCheckFile(node *ast.File, fset *token.FileSet) *types.Info {
	info := &types.Info{
		Types: make(map[ast.Expr]types.TypeAndValue),
		Uses:  make(map[*ast.Ident]types.Object),
		Defs:  make(map[*ast.Ident]types.Object),
	}
	conf := types.Config{
		Importer: importer.Default(),
		Error:    func(error) {},
	}
	// The returned error only repeats what Error already saw.
	_, _ = conf.Check(node.Name.Name, fset, []*ast.File{node}, info)
	return info
}
