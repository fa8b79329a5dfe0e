// Package internal provides the core functionality of the boolint analyzer.
//
// The package implements the linting engine that coordinates analysis of Go
// source files. It parses and type-checks each file, runs the registered
// rules concurrently, and filters the results against nolint directives.
//
// Key components:
//
// Engine: the main entry point. It manages the set of active rules and
// applies them to the given source files.
//
// LintRule: the contract every rule implements. Each rule analyzes a parsed
// and type-checked file and reports issues.
//
// Watcher: a filesystem watcher that re-runs the engine whenever a watched
// Go file changes.
//
// SourceCode: a source file represented as a collection of lines, used when
// rendering issues.
//
// Usage:
//
//	engine, err := internal.NewEngine(nil)
//	if err != nil {
//	    // handle error
//	}
//
//	issues, err := engine.Run("path/to/file.go")
//	if err != nil {
//	    // handle error
//	}
//
//	for _, issue := range issues {
//	    fmt.Printf("%s at %s\n", issue.Message, issue.Start)
//	}
//
// This package is intended for internal use within boolint and should not be
// imported by external packages.
package internal
