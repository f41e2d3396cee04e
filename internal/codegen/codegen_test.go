package codegen

import (
	"strings"
	"testing"

	"github.com/burilang/buric/internal/ast"
	"github.com/burilang/buric/internal/source"
	"github.com/burilang/buric/internal/typedast"
	"github.com/burilang/buric/internal/types"
)

func sp(text string) source.Span { return source.New(text) }

// generateValue wraps a single expression in a top-level `let result = ...`
// declaration, resolves every TypeID supplied in resolved, and returns the
// full generated module, failing the test on any diagnostic.
func generateValue(t *testing.T, expr ast.Expression, resolved map[types.TypeID]types.ConcreteType, exprType types.ConcreteType) string {
	t.Helper()
	vd := ast.NewValueDecl(sp("let result = ..."), "result", nil, expr, false)
	resolved[expr.TypeID()] = exprType
	resolved[vd.TypeID()] = exprType

	doc := &ast.Document{Values: []*ast.ValueDecl{vd}}
	typed, diag := typedast.Build(resolved, doc)
	if diag != nil {
		t.Fatalf("typedast.Build: %v", diag)
	}
	js, diag := Generate(typed)
	if diag != nil {
		t.Fatalf("Generate: %v", diag)
	}
	return js
}

func valueLine(js string) string {
	i := strings.LastIndex(js, "const Bresult=")
	if i < 0 {
		return ""
	}
	return js[i+len("const Bresult="):]
}

func numT() types.ConcreteType { return types.ConcretePrimitive{Kind: types.Num} }

func TestGenerate_IdentifierMangling(t *testing.T) {
	ident := ast.NewIdentifierExpr(sp("x"), "x")
	resolved := map[types.TypeID]types.ConcreteType{ident.TypeID(): numT()}
	js := generateValue(t, ident, resolved, numT())
	if valueLine(js) != "Bx" {
		t.Errorf("value = %q, want %q", valueLine(js), "Bx")
	}
}

func TestGenerate_ImportedIdentifierIsNotMangled(t *testing.T) {
	ident := ast.NewIdentifierExpr(sp("a"), "a")
	imp := &ast.ImportNode{
		Path:        "m.buri",
		Identifiers: []ast.ImportedIdentifier{{Name: "a", IsType: false}},
	}
	vd := ast.NewValueDecl(sp("let w = a"), "w", nil, ident, false)
	resolved := map[types.TypeID]types.ConcreteType{
		ident.TypeID(): numT(),
		vd.TypeID():    numT(),
	}
	doc := &ast.Document{Imports: []*ast.ImportNode{imp}, Values: []*ast.ValueDecl{vd}}
	typed, diag := typedast.Build(resolved, doc)
	if diag != nil {
		t.Fatalf("typedast.Build: %v", diag)
	}
	js, diag := Generate(typed)
	if diag != nil {
		t.Fatalf("Generate: %v", diag)
	}
	if !strings.Contains(js, `import {a} from "m.mjs"`) {
		t.Errorf("js = %q, missing rewritten import", js)
	}
	if !strings.Contains(js, "const Bw=a") {
		t.Errorf("js = %q, want unmangled reference to imported a", js)
	}
}

func TestGenerate_BinaryOp(t *testing.T) {
	left := ast.NewIntegerExpr(sp("1"), 1)
	right := ast.NewIntegerExpr(sp("2"), 2)
	bin := ast.NewBinaryOpExpr(sp("1 + 2"), "+", left, right)
	resolved := map[types.TypeID]types.ConcreteType{
		left.TypeID():  numT(),
		right.TypeID(): numT(),
	}
	js := generateValue(t, bin, resolved, numT())
	if valueLine(js) != "(1+2)" {
		t.Errorf("value = %q, want %q", valueLine(js), "(1+2)")
	}
}

func TestGenerate_UnaryNegative(t *testing.T) {
	operand := ast.NewIntegerExpr(sp("1"), 1)
	un := ast.NewUnaryOpExpr(sp("-1"), ast.Negative, operand)
	resolved := map[types.TypeID]types.ConcreteType{operand.TypeID(): numT()}
	js := generateValue(t, un, resolved, numT())
	if valueLine(js) != "-1" {
		t.Errorf("value = %q, want %q", valueLine(js), "-1")
	}
}

func TestGenerate_BlockSingletonHasNoIIFE(t *testing.T) {
	inner := ast.NewIntegerExpr(sp("1"), 1)
	block := ast.NewBlockExpr(sp("{ 1 }"), []ast.Expression{inner})
	resolved := map[types.TypeID]types.ConcreteType{inner.TypeID(): numT()}
	js := generateValue(t, block, resolved, numT())
	if valueLine(js) != "1" {
		t.Errorf("value = %q, want bare %q, not wrapped in an IIFE", valueLine(js), "1")
	}
}

func TestGenerate_BlockMultiStatementIsIIFE(t *testing.T) {
	decl := ast.NewValueDecl(sp("let a = 1"), "a", nil, ast.NewIntegerExpr(sp("1"), 1), false)
	tail := ast.NewIdentifierExpr(sp("a"), "a")
	block := ast.NewBlockExpr(sp("{ let a = 1; a }"), []ast.Expression{decl, tail})

	resolved := map[types.TypeID]types.ConcreteType{
		decl.Value.TypeID(): numT(),
		decl.TypeID():       numT(),
		tail.TypeID():       numT(),
	}
	js := generateValue(t, block, resolved, numT())
	got := valueLine(js)
	want := "(()=>{let Ba=1;return Ba;})()"
	if got != want {
		t.Errorf("value = %q, want %q", got, want)
	}
}

func TestGenerate_IfWithoutElseEncodesOption(t *testing.T) {
	cond := ast.NewBooleanExpr(sp("true"), true)
	then := ast.NewIntegerExpr(sp("1"), 1)
	ifExpr := ast.NewIfExpr(sp("if true do 1"), cond, then, nil)

	option := types.OptionTag(numT())
	resolved := map[types.TypeID]types.ConcreteType{
		cond.TypeID(): types.ConcretePrimitive{Kind: types.CompilerBoolean},
		then.TypeID(): numT(),
	}
	js := generateValue(t, ifExpr, resolved, option)
	got := valueLine(js)
	want := `(true?["some",1]:["none"])`
	if got != want {
		t.Errorf("value = %q, want %q", got, want)
	}
}

func TestGenerate_IfWithElse(t *testing.T) {
	cond := ast.NewBooleanExpr(sp("true"), true)
	then := ast.NewIntegerExpr(sp("1"), 1)
	els := ast.NewIntegerExpr(sp("2"), 2)
	ifExpr := ast.NewIfExpr(sp("if true do 1 else 2"), cond, then, els)

	resolved := map[types.TypeID]types.ConcreteType{
		cond.TypeID(): types.ConcretePrimitive{Kind: types.CompilerBoolean},
		then.TypeID(): numT(),
		els.TypeID():  numT(),
	}
	js := generateValue(t, ifExpr, resolved, numT())
	got := valueLine(js)
	want := "(true?1:2)"
	if got != want {
		t.Errorf("value = %q, want %q", got, want)
	}
}

func TestGenerate_TagUnionWithoutPayloadIsBareString(t *testing.T) {
	tag := ast.NewTagExpr(sp("#none"), "none", nil)
	union := types.ConcreteTagUnion{
		Tags:                map[string][]types.ConcreteType{"none": {}},
		SomeTagsHaveContent: false,
	}
	js := generateValue(t, tag, map[types.TypeID]types.ConcreteType{}, union)
	got := valueLine(js)
	want := `"none"`
	if got != want {
		t.Errorf("value = %q, want %q", got, want)
	}
}

func TestGenerate_TagUnionWithPayloadIsArray(t *testing.T) {
	payload := ast.NewIntegerExpr(sp("1"), 1)
	tag := ast.NewTagExpr(sp("#some(1)"), "some", []ast.Expression{payload})
	union := types.ConcreteTagUnion{
		Tags: map[string][]types.ConcreteType{
			"some": {numT()},
			"none": {},
		},
		SomeTagsHaveContent: true,
	}
	resolved := map[types.TypeID]types.ConcreteType{payload.TypeID(): numT()}
	js := generateValue(t, tag, resolved, union)
	got := valueLine(js)
	want := `["some",1]`
	if got != want {
		t.Errorf("value = %q, want %q", got, want)
	}
}

func TestGenerate_EnumVariantIndexedAlphabeticallyWithoutPayload(t *testing.T) {
	tag := ast.NewTagExpr(sp("#b"), "b", nil)
	enum := types.ConcreteEnum{
		Variants: map[string][]types.ConcreteType{
			"a": {}, "b": {}, "c": {},
		},
	}
	js := generateValue(t, tag, map[types.TypeID]types.ConcreteType{}, enum)
	got := valueLine(js)
	want := "1"
	if got != want {
		t.Errorf("value = %q, want %q (b is alphabetically second)", got, want)
	}
}

func TestGenerate_EnumVariantWithPayloadIsArray(t *testing.T) {
	payload := ast.NewIntegerExpr(sp("7"), 7)
	tag := ast.NewTagExpr(sp("#b(7)"), "b", []ast.Expression{payload})
	enum := types.ConcreteEnum{
		Variants: map[string][]types.ConcreteType{
			"a": {}, "b": {numT()},
		},
	}
	resolved := map[types.TypeID]types.ConcreteType{payload.TypeID(): numT()}
	js := generateValue(t, tag, resolved, enum)
	got := valueLine(js)
	want := "[1,7]"
	if got != want {
		t.Errorf("value = %q, want %q", got, want)
	}
}

func TestGenerate_FunctionExpr(t *testing.T) {
	body := ast.NewIdentifierExpr(sp("x"), "x")
	fn := ast.NewFunctionExpr(sp("fn(x) x"), []ast.Param{{Name: "x"}}, body)
	fnType := types.ConcreteFunction{Args: []types.ConcreteType{numT()}, Return: numT()}
	resolved := map[types.TypeID]types.ConcreteType{body.TypeID(): numT()}
	js := generateValue(t, fn, resolved, fnType)
	got := valueLine(js)
	want := "(Bx)=>(Bx)"
	if got != want {
		t.Errorf("value = %q, want %q", got, want)
	}
}
