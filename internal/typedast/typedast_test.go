package typedast

import (
	"testing"

	"github.com/burilang/buric/internal/ast"
	"github.com/burilang/buric/internal/source"
	"github.com/burilang/buric/internal/types"
)

func span(text string) source.Span { return source.New(text) }

func TestBuild_TopLevelValueDecl(t *testing.T) {
	intExpr := ast.NewIntegerExpr(span("1"), 1)
	vd := ast.NewValueDecl(span("let x = 1"), "x", nil, intExpr, false)
	doc := &ast.Document{Values: []*ast.ValueDecl{vd}}

	resolved := map[types.TypeID]types.ConcreteType{
		intExpr.TypeID(): types.ConcretePrimitive{Kind: types.Num},
		vd.TypeID():      types.ConcretePrimitive{Kind: types.Num},
	}

	typed, diag := Build(resolved, doc)
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	if len(typed.Values) != 1 {
		t.Fatalf("len(typed.Values) = %d, want 1", len(typed.Values))
	}
	got := typed.Values[0]
	if got.Name != "x" {
		t.Errorf("Name = %q, want %q", got.Name, "x")
	}
	ie, ok := got.Value.(IntegerExpr)
	if !ok {
		t.Fatalf("Value = %T, want IntegerExpr", got.Value)
	}
	if ie.Value != 1 {
		t.Errorf("Value.Value = %d, want 1", ie.Value)
	}
}

func TestBuild_FiltersTypeOnlyImportsAndDropsEmptyImports(t *testing.T) {
	mixed := &ast.ImportNode{
		Path: "m.buri",
		Identifiers: []ast.ImportedIdentifier{
			{Name: "foo", IsType: false},
			{Name: "Bar", IsType: true},
		},
	}
	typeOnly := &ast.ImportNode{
		Path: "t.buri",
		Identifiers: []ast.ImportedIdentifier{
			{Name: "OnlyType", IsType: true},
		},
	}
	doc := &ast.Document{Imports: []*ast.ImportNode{mixed, typeOnly}}

	typed, diag := Build(map[types.TypeID]types.ConcreteType{}, doc)
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	if len(typed.Imports) != 1 {
		t.Fatalf("len(typed.Imports) = %d, want 1", len(typed.Imports))
	}
	if typed.Imports[0].Path != "m.buri" {
		t.Errorf("Imports[0].Path = %q, want %q", typed.Imports[0].Path, "m.buri")
	}
	if len(typed.Imports[0].Identifiers) != 1 || typed.Imports[0].Identifiers[0] != "foo" {
		t.Errorf("Imports[0].Identifiers = %v, want [foo]", typed.Imports[0].Identifiers)
	}
}

func TestBuild_IfExprWithoutElse(t *testing.T) {
	cond := ast.NewBooleanExpr(span("true"), true)
	then := ast.NewIntegerExpr(span("1"), 1)
	ifExpr := ast.NewIfExpr(span("if true do 1"), cond, then, nil)
	vd := ast.NewValueDecl(span("let y = if true do 1"), "y", nil, ifExpr, false)
	doc := &ast.Document{Values: []*ast.ValueDecl{vd}}

	option := types.OptionTag(types.ConcretePrimitive{Kind: types.Num})
	resolved := map[types.TypeID]types.ConcreteType{
		cond.TypeID():   types.ConcretePrimitive{Kind: types.CompilerBoolean},
		then.TypeID():   types.ConcretePrimitive{Kind: types.Num},
		ifExpr.TypeID(): option,
		vd.TypeID():     option,
	}

	typed, diag := Build(resolved, doc)
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	got, ok := typed.Values[0].Value.(IfExpr)
	if !ok {
		t.Fatalf("Value = %T, want IfExpr", typed.Values[0].Value)
	}
	if got.HasElse() {
		t.Error("HasElse() = true, want false")
	}
}

func TestBuild_UnresolvedTypeIDIsACodegenDiagnostic(t *testing.T) {
	intExpr := ast.NewIntegerExpr(span("1"), 1)
	vd := ast.NewValueDecl(span("let x = 1"), "x", nil, intExpr, false)
	doc := &ast.Document{Values: []*ast.ValueDecl{vd}}

	// Deliberately empty: neither TypeID was resolved.
	_, diag := Build(map[types.TypeID]types.ConcreteType{}, doc)
	if diag == nil {
		t.Fatal("expected a diagnostic for an unresolved type variable")
	}
}
