package infer

import (
	"testing"

	"github.com/burilang/buric/internal/parse"
	"github.com/burilang/buric/internal/types"
)

// compileToResolved runs Pass A and Pass B over source and returns the
// resolved type of the document's last top-level value declaration.
func compileToResolved(t *testing.T, source string) types.ConcreteType {
	t.Helper()
	doc, d := parse.Document(source)
	if d != nil {
		t.Fatalf("parse.Document(%q): %v", source, d)
	}
	schema := types.NewSchema()
	if d := GenerateDocument(schema, doc); d != nil {
		t.Fatalf("GenerateDocument(%q): %v", source, d)
	}
	resolved, d := Resolve(schema)
	if d != nil {
		t.Fatalf("Resolve(%q): %v", source, d)
	}
	last := doc.Values[len(doc.Values)-1]
	ct, ok := resolved[last.TypeID()]
	if !ok {
		t.Fatalf("no resolved type for %q's last declaration", source)
	}
	return ct
}

func TestGenerateDocument_IfWithoutElseProducesOptionType(t *testing.T) {
	ct := compileToResolved(t, "b = true\nx = if b do 1")
	union, ok := ct.(types.ConcreteTagUnion)
	if !ok {
		t.Fatalf("resolved type = %T, want ConcreteTagUnion", ct)
	}
	if !union.SomeTagsHaveContent {
		t.Error("SomeTagsHaveContent = false, want true")
	}
	if len(union.Tags["some"]) != 1 {
		t.Errorf(`Tags["some"] = %v, want one payload type`, union.Tags["some"])
	}
	if len(union.Tags["none"]) != 0 {
		t.Errorf(`Tags["none"] = %v, want no payload`, union.Tags["none"])
	}
}

func TestGenerateDocument_IfWithElseProducesBranchType(t *testing.T) {
	ct := compileToResolved(t, "b = true\nx = if b do 1 else 2")
	prim, ok := ct.(types.ConcretePrimitive)
	if !ok || prim.Kind != types.Num {
		t.Errorf("resolved type = %v, want Num", ct)
	}
}

func TestGenerateDocument_MismatchedIfBranchesFail(t *testing.T) {
	doc, d := parse.Document("b = true\nx = if b do 1 else \"two\"")
	if d != nil {
		t.Fatalf("parse.Document: %v", d)
	}
	schema := types.NewSchema()
	if d := GenerateDocument(schema, doc); d != nil {
		t.Fatalf("GenerateDocument: %v", d)
	}
	if _, d := Resolve(schema); d == nil {
		t.Fatal("expected a diagnostic for mismatched if-branch types")
	}
}

func TestGenerateDocument_BinaryArithmeticIsNum(t *testing.T) {
	ct := compileToResolved(t, "x = 1 + 2")
	prim, ok := ct.(types.ConcretePrimitive)
	if !ok || prim.Kind != types.Num {
		t.Errorf("resolved type = %v, want Num", ct)
	}
}

func TestGenerateDocument_ListElementTypeUnifiesAcrossItems(t *testing.T) {
	ct := compileToResolved(t, "x = [1, 2, 3]")
	list, ok := ct.(types.ConcreteList)
	if !ok {
		t.Fatalf("resolved type = %T, want ConcreteList", ct)
	}
	prim, ok := list.Element.(types.ConcretePrimitive)
	if !ok || prim.Kind != types.Num {
		t.Errorf("element type = %v, want Num", list.Element)
	}
}
