// Package types holds the data model for buric's constraint-based type
// inferencer: the type-variable arena (TypeID), the constraint sum
// that Pass A attaches to each variable, the lexical scope stack used
// to resolve identifiers to type variables, and the concrete type sum
// that Pass B resolves variables into.
package types

import "fmt"

// TypeID is an opaque, dense, non-negative integer identifying a type
// variable within one TypeSchema. TypeIDs are arena indices: they do
// not own the constraints they point at, and once minted a TypeID is
// never reused within its schema.
type TypeID int

// PrimitiveKind enumerates buri's primitive types.
type PrimitiveKind int

const (
	CompilerBoolean PrimitiveKind = iota
	Num
	Str
)

func (k PrimitiveKind) String() string {
	switch k {
	case CompilerBoolean:
		return "Bool"
	case Num:
		return "Num"
	case Str:
		return "Str"
	default:
		return "<unknown primitive>"
	}
}

// Constraint is a predicate asserted about a TypeID that the resolver
// (Pass B) must satisfy before that TypeID can become a ConcreteType.
// It is a closed sum; every implementation lives in this file.
type Constraint interface {
	constraintNode()
	String() string
}

// EqualToPrimitive constrains a type variable to be exactly a given
// primitive type.
type EqualToPrimitive struct {
	Primitive PrimitiveKind
}

func (EqualToPrimitive) constraintNode() {}
func (c EqualToPrimitive) String() string {
	return fmt.Sprintf("EqualToPrimitive(%s)", c.Primitive)
}

// ListOfType constrains a type variable to be a list whose element
// type is the given type variable.
type ListOfType struct {
	Element TypeID
}

func (ListOfType) constraintNode() {}
func (c ListOfType) String() string {
	return fmt.Sprintf("ListOfType(%d)", c.Element)
}

// HasTag constrains a type variable to be a tag union containing at
// least a tag of the given name with the given payload types.
type HasTag struct {
	Name    string
	Payload []TypeID
}

func (HasTag) constraintNode() {}
func (c HasTag) String() string { return fmt.Sprintf("HasTag(%s, %v)", c.Name, c.Payload) }

// TagAtMost constrains a type variable to be a tag union whose tags
// are a subset of the given named set.
type TagAtMost struct {
	Tags map[string][]TypeID
}

func (TagAtMost) constraintNode() {}
func (c TagAtMost) String() string { return fmt.Sprintf("TagAtMost(%v)", mapKeys(c.Tags)) }

// HasVariant constrains a type variable to be a closed enum containing
// at least the given variant.
type HasVariant struct {
	Name    string
	Payload []TypeID
}

func (HasVariant) constraintNode() {}
func (c HasVariant) String() string { return fmt.Sprintf("HasVariant(%s, %v)", c.Name, c.Payload) }

// EnumExact constrains a type variable to be a closed enum with
// exactly the given set of variants.
type EnumExact struct {
	Variants map[string][]TypeID
}

func (EnumExact) constraintNode() {}
func (c EnumExact) String() string { return fmt.Sprintf("EnumExact(%v)", mapKeys(c.Variants)) }

// HasField constrains a type variable to be a record with at least a
// field of the given name and type.
type HasField struct {
	Name string
	Type TypeID
}

func (HasField) constraintNode() {}
func (c HasField) String() string { return fmt.Sprintf("HasField(%s, %d)", c.Name, c.Type) }

// HasExactFields constrains a type variable to be a record with
// exactly the given named fields.
type HasExactFields struct {
	Fields map[string]TypeID
}

func (HasExactFields) constraintNode() {}
func (c HasExactFields) String() string {
	return fmt.Sprintf("HasExactFields(%v)", mapKeys(c.Fields))
}

// HasMethod constrains a type variable to be a record with a method of
// the given name and type. Pass A never emits it and Pass B ignores it
// when resolving a type variable.
type HasMethod struct {
	Name string
	Type TypeID
}

func (HasMethod) constraintNode() {}
func (c HasMethod) String() string { return fmt.Sprintf("HasMethod(%s, %d)", c.Name, c.Type) }

// HasFunctionShape constrains a type variable to be a function with
// the given argument and return type variables.
type HasFunctionShape struct {
	Args   []TypeID
	Return TypeID
}

func (HasFunctionShape) constraintNode() {}
func (c HasFunctionShape) String() string {
	return fmt.Sprintf("HasFunctionShape(%v -> %d)", c.Args, c.Return)
}

// HasName constrains a type variable to be equal to the concrete type
// a user declared under a given TypeIdentifier.
type HasName struct {
	Name string
}

func (HasName) constraintNode() {}
func (c HasName) String() string { return fmt.Sprintf("HasName(%s)", c.Name) }

// EqualToType constrains a type variable to resolve to the exact same
// concrete type as another type variable. Pass A emits this whenever
// two positions must agree without either one independently pinning a
// primitive or structural shape: both branches of an if-expression,
// both operands of an equality comparison, a list's successive
// elements, the bodies of a when-expression's cases. Pass B treats the
// TypeIDs an EqualToType chain connects as a
// single union-find class sharing one merged constraint set.
type EqualToType struct {
	Other TypeID
}

func (EqualToType) constraintNode() {}
func (c EqualToType) String() string { return fmt.Sprintf("EqualToType(%d)", c.Other) }

// EqualToConcrete pins a type variable to a fully pre-computed concrete
// type. Pass A emits this for every user type annotation (function
// parameters, declared value types): an annotation names a type
// expression, not an inference problem, so it is evaluated directly
// into a ConcreteType once and then asserted as a constraint like any
// other, rather than re-deriving it structurally.
type EqualToConcrete struct {
	Type ConcreteType
}

func (EqualToConcrete) constraintNode() {}
func (c EqualToConcrete) String() string { return fmt.Sprintf("EqualToConcrete(%s)", c.Type) }

func mapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
