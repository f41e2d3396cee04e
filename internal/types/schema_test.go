package types

import "testing"

func TestTypeSchema_MakeID_IsMonotonicAndNeverReused(t *testing.T) {
	schema := NewSchema()
	seen := map[TypeID]bool{}
	for i := 0; i < 10; i++ {
		id := schema.MakeID()
		if seen[id] {
			t.Fatalf("TypeID %d minted twice", id)
		}
		seen[id] = true
	}
	if schema.NextID() != 10 {
		t.Errorf("NextID() = %d, want 10", schema.NextID())
	}
}

func TestScope_LookupWalksToRoot(t *testing.T) {
	root := NewScope()
	root.Declare("x", 1)

	child := root.Push()
	child.Declare("y", 2)

	if id, ok := child.Lookup("x"); !ok || id != 1 {
		t.Errorf("Lookup(x) in child = (%d, %v), want (1, true)", id, ok)
	}
	if id, ok := child.Lookup("y"); !ok || id != 2 {
		t.Errorf("Lookup(y) in child = (%d, %v), want (2, true)", id, ok)
	}
	if _, ok := root.Lookup("y"); ok {
		t.Error("root scope should not see child-scope bindings")
	}
}

func TestScope_ShadowingDoesNotMutateParent(t *testing.T) {
	root := NewScope()
	root.Declare("x", 1)
	child := root.Push()
	child.Declare("x", 2)

	if id, _ := child.Lookup("x"); id != 2 {
		t.Errorf("child sees x = %d, want 2", id)
	}
	if id, _ := root.Lookup("x"); id != 1 {
		t.Errorf("root sees x = %d, want 1 (shadow leaked)", id)
	}
}

func TestTypeSchema_PushPopScope(t *testing.T) {
	schema := NewSchema()
	schema.Scope.Declare("x", schema.MakeID())
	schema.PushScope()
	schema.Scope.Declare("y", schema.MakeID())
	if _, ok := schema.Scope.Lookup("x"); !ok {
		t.Error("nested scope should see outer binding")
	}
	schema.PopScope()
	if _, ok := schema.Scope.Lookup("y"); ok {
		t.Error("popped scope's bindings should no longer be visible")
	}
}

func TestCheckedTypes_EnterIsSymmetricAndReleasable(t *testing.T) {
	c := NewCheckedTypes()
	if c.Contains(1, 2) {
		t.Fatal("fresh CheckedTypes should contain nothing")
	}
	release := c.Enter(1, 2)
	if !c.Contains(2, 1) {
		t.Error("Enter(1, 2) should make Contains(2, 1) true (unordered pair)")
	}
	release()
	if c.Contains(1, 2) {
		t.Error("released pair should no longer be contained")
	}
}

func TestTypeSchema_RegisterImport(t *testing.T) {
	schema := NewSchema()
	id := schema.RegisterImport("foo")
	if name, ok := schema.Imports[id]; !ok || name != "foo" {
		t.Errorf("Imports[%d] = (%q, %v), want (\"foo\", true)", id, name, ok)
	}
}

func TestTypeSchema_NumberOfConstraints(t *testing.T) {
	schema := NewSchema()
	a := schema.MakeID()
	b := schema.MakeID()
	schema.Insert(a, EqualToPrimitive{Primitive: Num})
	schema.Insert(a, EqualToPrimitive{Primitive: Num})
	schema.Insert(b, EqualToPrimitive{Primitive: Str})
	if got := schema.NumberOfConstraints(); got != 3 {
		t.Errorf("NumberOfConstraints() = %d, want 3", got)
	}
}
