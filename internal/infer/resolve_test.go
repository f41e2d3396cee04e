package infer

import (
	"testing"

	"github.com/burilang/buric/internal/types"
)

func TestResolve_Primitive(t *testing.T) {
	schema := types.NewSchema()
	id := schema.MakeID()
	schema.Insert(id, types.EqualToPrimitive{Primitive: types.Num})

	resolved, diag := Resolve(schema)
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	want := types.ConcretePrimitive{Kind: types.Num}
	if resolved[id] != types.ConcreteType(want) {
		t.Errorf("resolved[%d] = %v, want %v", id, resolved[id], want)
	}
}

func TestResolve_ConflictingPrimitivesFail(t *testing.T) {
	schema := types.NewSchema()
	id := schema.MakeID()
	schema.Insert(id, types.EqualToPrimitive{Primitive: types.Num})
	schema.Insert(id, types.EqualToPrimitive{Primitive: types.Str})

	if _, diag := Resolve(schema); diag == nil {
		t.Fatal("expected a diagnostic for conflicting primitives")
	}
}

func TestResolve_EqualToTypeMergesConstraints(t *testing.T) {
	schema := types.NewSchema()
	a := schema.MakeID()
	b := schema.MakeID()
	schema.Insert(a, types.EqualToType{Other: b})
	schema.Insert(b, types.EqualToPrimitive{Primitive: types.CompilerBoolean})

	resolved, diag := Resolve(schema)
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	want := types.ConcretePrimitive{Kind: types.CompilerBoolean}
	if resolved[a] != types.ConcreteType(want) {
		t.Errorf("resolved[a] = %v, want %v", resolved[a], want)
	}
	if resolved[b] != types.ConcreteType(want) {
		t.Errorf("resolved[b] = %v, want %v", resolved[b], want)
	}
}

func TestResolve_EqualToConcreteWinsOutright(t *testing.T) {
	schema := types.NewSchema()
	id := schema.MakeID()
	want := types.ConcreteList{Element: types.ConcretePrimitive{Kind: types.Num}}
	schema.Insert(id, types.EqualToConcrete{Type: want})

	resolved, diag := Resolve(schema)
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	if resolved[id] != types.ConcreteType(want) {
		t.Errorf("resolved[%d] = %v, want %v", id, resolved[id], want)
	}
}

func TestResolve_HasNameLooksUpDecl(t *testing.T) {
	schema := types.NewSchema()
	id := schema.MakeID()
	decl := types.ConcretePrimitive{Kind: types.Str}
	schema.DeclareType("Name", decl)
	schema.Insert(id, types.HasName{Name: "Name"})

	resolved, diag := Resolve(schema)
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	if resolved[id] != types.ConcreteType(decl) {
		t.Errorf("resolved[%d] = %v, want %v", id, resolved[id], decl)
	}
}

func TestResolve_UndefinedTypeNameFails(t *testing.T) {
	schema := types.NewSchema()
	id := schema.MakeID()
	schema.Insert(id, types.HasName{Name: "NoSuchType"})

	if _, diag := Resolve(schema); diag == nil {
		t.Fatal("expected a diagnostic for an undefined type name")
	}
}

func TestResolve_Record(t *testing.T) {
	schema := types.NewSchema()
	nameID := schema.MakeID()
	schema.Insert(nameID, types.EqualToPrimitive{Primitive: types.Str})

	recID := schema.MakeID()
	schema.Insert(recID, types.HasField{Name: "name", Type: nameID})

	resolved, diag := Resolve(schema)
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	rec, ok := resolved[recID].(types.ConcreteRecord)
	if !ok {
		t.Fatalf("resolved[%d] = %T, want ConcreteRecord", recID, resolved[recID])
	}
	if rec.Fields["name"] != types.ConcreteType(types.ConcretePrimitive{Kind: types.Str}) {
		t.Errorf("record field name = %v, want Str", rec.Fields["name"])
	}
}

func TestResolve_HasExactFieldsRejectsUnexpectedField(t *testing.T) {
	schema := types.NewSchema()
	nameID := schema.MakeID()
	schema.Insert(nameID, types.EqualToPrimitive{Primitive: types.Str})
	extraID := schema.MakeID()
	schema.Insert(extraID, types.EqualToPrimitive{Primitive: types.Num})

	recID := schema.MakeID()
	schema.Insert(recID, types.HasField{Name: "extra", Type: extraID})
	schema.Insert(recID, types.HasExactFields{Fields: map[string]types.TypeID{"name": nameID}})

	if _, diag := Resolve(schema); diag == nil {
		t.Fatal("expected a diagnostic for a field outside HasExactFields")
	}
}

func TestResolve_TagUnionComputesSomeTagsHaveContent(t *testing.T) {
	schema := types.NewSchema()
	payloadID := schema.MakeID()
	schema.Insert(payloadID, types.EqualToPrimitive{Primitive: types.Num})

	unionID := schema.MakeID()
	schema.Insert(unionID, types.HasTag{Name: "some", Payload: []types.TypeID{payloadID}})
	schema.Insert(unionID, types.HasTag{Name: "none", Payload: nil})

	resolved, diag := Resolve(schema)
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	union, ok := resolved[unionID].(types.ConcreteTagUnion)
	if !ok {
		t.Fatalf("resolved[%d] = %T, want ConcreteTagUnion", unionID, resolved[unionID])
	}
	if !union.SomeTagsHaveContent {
		t.Error("expected SomeTagsHaveContent to be true")
	}
	if len(union.Tags["none"]) != 0 {
		t.Errorf("tag #none payload = %v, want empty", union.Tags["none"])
	}
}

func TestResolve_TagAtMostRejectsTagOutsideUnion(t *testing.T) {
	schema := types.NewSchema()
	unionID := schema.MakeID()
	schema.Insert(unionID, types.HasTag{Name: "stray", Payload: nil})
	schema.Insert(unionID, types.TagAtMost{Tags: map[string][]types.TypeID{"only": nil}})

	if _, diag := Resolve(schema); diag == nil {
		t.Fatal("expected a diagnostic for a tag outside TagAtMost")
	}
}

func TestResolve_EnumIndexingIsAlphabeticalAndStableUnderInsertion(t *testing.T) {
	schema := types.NewSchema()
	enumID := schema.MakeID()
	schema.Insert(enumID, types.HasVariant{Name: "c"})
	schema.Insert(enumID, types.HasVariant{Name: "a"})
	schema.Insert(enumID, types.HasVariant{Name: "b"})

	resolved, diag := Resolve(schema)
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	enum, ok := resolved[enumID].(types.ConcreteEnum)
	if !ok {
		t.Fatalf("resolved[%d] = %T, want ConcreteEnum", enumID, resolved[enumID])
	}
	names := enum.SortedVariantNames()
	want := []string{"a", "b", "c"}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("SortedVariantNames()[%d] = %q, want %q", i, names[i], n)
		}
	}

	// Inserting a variant alphabetically before "b" renumbers it.
	schema2 := types.NewSchema()
	enum2ID := schema2.MakeID()
	schema2.Insert(enum2ID, types.HasVariant{Name: "a"})
	schema2.Insert(enum2ID, types.HasVariant{Name: "aa"})
	schema2.Insert(enum2ID, types.HasVariant{Name: "b"})
	resolved2, diag := Resolve(schema2)
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	enum2 := resolved2[enum2ID].(types.ConcreteEnum)
	names2 := enum2.SortedVariantNames()
	if names2[1] != "aa" {
		t.Fatalf("SortedVariantNames() = %v, want \"aa\" at index 1", names2)
	}
}

func TestResolve_ListUnionsElementTypesAcrossConstraints(t *testing.T) {
	schema := types.NewSchema()
	a := schema.MakeID()
	b := schema.MakeID()
	schema.Insert(b, types.EqualToPrimitive{Primitive: types.Num})

	listID := schema.MakeID()
	schema.Insert(listID, types.ListOfType{Element: a})
	schema.Insert(listID, types.ListOfType{Element: b})

	resolved, diag := Resolve(schema)
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	list, ok := resolved[listID].(types.ConcreteList)
	if !ok {
		t.Fatalf("resolved[%d] = %T, want ConcreteList", listID, resolved[listID])
	}
	if list.Element != types.ConcreteType(types.ConcretePrimitive{Kind: types.Num}) {
		t.Errorf("list element = %v, want Num", list.Element)
	}
}

func TestResolve_FunctionShapeUnifiesAcrossMultipleShapes(t *testing.T) {
	schema := types.NewSchema()
	arg1 := schema.MakeID()
	ret1 := schema.MakeID()
	arg2 := schema.MakeID()
	ret2 := schema.MakeID()
	schema.Insert(arg2, types.EqualToPrimitive{Primitive: types.Num})
	schema.Insert(ret2, types.EqualToPrimitive{Primitive: types.Str})

	fnID := schema.MakeID()
	schema.Insert(fnID, types.HasFunctionShape{Args: []types.TypeID{arg1}, Return: ret1})
	schema.Insert(fnID, types.HasFunctionShape{Args: []types.TypeID{arg2}, Return: ret2})

	resolved, diag := Resolve(schema)
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	fn, ok := resolved[fnID].(types.ConcreteFunction)
	if !ok {
		t.Fatalf("resolved[%d] = %T, want ConcreteFunction", fnID, resolved[fnID])
	}
	if fn.Args[0] != types.ConcreteType(types.ConcretePrimitive{Kind: types.Num}) {
		t.Errorf("fn.Args[0] = %v, want Num", fn.Args[0])
	}
	if fn.Return != types.ConcreteType(types.ConcretePrimitive{Kind: types.Str}) {
		t.Errorf("fn.Return = %v, want Str", fn.Return)
	}
}

func TestResolve_FunctionArityMismatchFails(t *testing.T) {
	schema := types.NewSchema()
	fnID := schema.MakeID()
	schema.Insert(fnID, types.HasFunctionShape{Args: []types.TypeID{schema.MakeID()}, Return: schema.MakeID()})
	schema.Insert(fnID, types.HasFunctionShape{Args: []types.TypeID{schema.MakeID(), schema.MakeID()}, Return: schema.MakeID()})

	if _, diag := Resolve(schema); diag == nil {
		t.Fatal("expected a diagnostic for function arity mismatch")
	}
}

func TestResolve_ImportFallsBackToOpaque(t *testing.T) {
	schema := types.NewSchema()
	id := schema.RegisterImport("fromOtherModule")

	resolved, diag := Resolve(schema)
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	want := types.ConcreteOpaque{Name: "fromOtherModule"}
	if resolved[id] != types.ConcreteType(want) {
		t.Errorf("resolved[%d] = %v, want %v", id, resolved[id], want)
	}
}

func TestResolve_UnderconstrainedVariableFails(t *testing.T) {
	schema := types.NewSchema()
	schema.MakeID()

	if _, diag := Resolve(schema); diag == nil {
		t.Fatal("expected a diagnostic for an underconstrained type variable")
	}
}

func TestResolve_RecursiveStructureBreaksWithOpaquePlaceholder(t *testing.T) {
	schema := types.NewSchema()
	recID := schema.MakeID()
	schema.Insert(recID, types.HasField{Name: "next", Type: recID})

	resolved, diag := Resolve(schema)
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	rec, ok := resolved[recID].(types.ConcreteRecord)
	if !ok {
		t.Fatalf("resolved[%d] = %T, want ConcreteRecord", recID, resolved[recID])
	}
	if _, ok := rec.Fields["next"].(types.ConcreteOpaque); !ok {
		t.Errorf("rec.Fields[next] = %v, want a ConcreteOpaque cycle placeholder", rec.Fields["next"])
	}
}
