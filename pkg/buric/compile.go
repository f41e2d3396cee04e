// Package buric exposes the compiler's library entry point: Compile
// turns one Buri source file into the text of its generated
// ECMAScript module. Everything else in this module (the CLI, the
// test runner) is a thin wrapper around this single function.
package buric

import (
	"github.com/burilang/buric/internal/codegen"
	"github.com/burilang/buric/internal/diag"
	"github.com/burilang/buric/internal/infer"
	"github.com/burilang/buric/internal/parse"
	"github.com/burilang/buric/internal/typedast"
	"github.com/burilang/buric/internal/types"
)

// Compile runs the full pipeline - parse, infer, resolve, generate -
// over source and returns the emitted JS module text, or the
// diagnostic of whichever stage failed first.
func Compile(source string) (string, *diag.Diagnostic) {
	doc, d := parse.Document(source)
	if d != nil {
		return "", d
	}

	schema := types.NewSchema()
	if d := infer.GenerateDocument(schema, doc); d != nil {
		return "", d
	}

	resolved, d := infer.Resolve(schema)
	if d != nil {
		return "", d
	}

	typed, d := typedast.Build(resolved, doc)
	if d != nil {
		return "", d
	}

	return codegen.Generate(typed)
}
