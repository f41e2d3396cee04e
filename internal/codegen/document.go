// Package codegen lowers a resolved internal/typedast.Document to the
// single ECMAScript module string spec.md §4.3 describes: a fixed
// prelude import, each surviving value import rewritten to its .mjs
// path, then one const declaration per top-level value.
package codegen

import (
	"strings"

	"github.com/burilang/buric/internal/diag"
	"github.com/burilang/buric/internal/typedast"
)

const preamble = "import '@packages/std/prelude/index.js'\n"

// Generate renders doc as a complete JS module.
func Generate(doc *typedast.Document) (string, *diag.Diagnostic) {
	imported := make(map[string]bool)
	for _, imp := range doc.Imports {
		for _, name := range imp.Identifiers {
			imported[name] = true
		}
	}
	e := newEmitter(imported)

	var sb strings.Builder
	sb.WriteString(preamble)
	for _, imp := range doc.Imports {
		sb.WriteString(printImport(imp))
		sb.WriteByte('\n')
	}

	for _, vd := range doc.Values {
		sb.WriteByte('\n')
		if vd.Exported {
			sb.WriteString("export ")
		}
		value, d := e.expr(vd.Value)
		if d != nil {
			return "", d
		}
		sb.WriteString("const ")
		sb.WriteString(e.mangle(vd.Name))
		sb.WriteByte('=')
		sb.WriteString(value)
	}

	return sb.String(), nil
}

// printImport rewrites one surviving value import to its JS form;
// Build (internal/typedast) has already dropped type-only imports and
// entire imports left with no value identifiers.
func printImport(imp typedast.Import) string {
	path := strings.Replace(imp.Path, ".buri", ".mjs", 1)
	return "import {" + strings.Join(imp.Identifiers, ",") + `} from "` + path + `"`
}
