package types

import "sort"

// ConcreteType is the closed sum of types the resolver (Pass B)
// produces and the code generator consumes. No free variables remain
// in a ConcreteType; every TypeID has been resolved away.
type ConcreteType interface {
	concreteTypeNode()
	String() string
}

// ConcretePrimitive is one of buri's scalar types.
type ConcretePrimitive struct {
	Kind PrimitiveKind
}

func (ConcretePrimitive) concreteTypeNode() {}
func (t ConcretePrimitive) String() string  { return t.Kind.String() }

// ConcreteList is a homogeneous list type.
type ConcreteList struct {
	Element ConcreteType
}

func (ConcreteList) concreteTypeNode() {}
func (t ConcreteList) String() string  { return "List(" + t.Element.String() + ")" }

// ConcreteRecord is a closed row of named fields.
type ConcreteRecord struct {
	Fields map[string]ConcreteType
}

func (ConcreteRecord) concreteTypeNode() {}
func (t ConcreteRecord) String() string {
	names := sortedKeys(t.Fields)
	s := "{"
	for i, n := range names {
		if i > 0 {
			s += ", "
		}
		s += n + ": " + t.Fields[n].String()
	}
	return s + "}"
}

// SortedFieldNames returns the record's field names in sorted order,
// a stable iteration order over an inherently unordered Go map.
func (t ConcreteRecord) SortedFieldNames() []string {
	return sortedKeys(t.Fields)
}

// ConcreteTagUnion is an open sum of named, optionally-payload-carrying
// variants. SomeTagsHaveContent is computed once per union (not
// per-occurrence): if any tag in the union carries a payload, every
// tag of that union lowers to a JS array instead of a bare string, even
// tags of the same union whose own payload is empty. See
// original_source/rust/js_backend/src/expression/tag.rs.
type ConcreteTagUnion struct {
	Tags                map[string][]ConcreteType
	SomeTagsHaveContent bool
}

func (ConcreteTagUnion) concreteTypeNode() {}
func (t ConcreteTagUnion) String() string {
	names := make([]string, 0, len(t.Tags))
	for n := range t.Tags {
		names = append(names, n)
	}
	sort.Strings(names)
	s := "Tag{"
	for i, n := range names {
		if i > 0 {
			s += " | "
		}
		s += "#" + n
	}
	return s + "}"
}

// SortedTagNames returns the union's tag names in sorted order.
func (t ConcreteTagUnion) SortedTagNames() []string {
	names := make([]string, 0, len(t.Tags))
	for n := range t.Tags {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ConcreteEnum is a closed sum whose variants are indexed by
// alphabetical position among the enum's own variant names (see
// original_source/rust/js_backend/src/expression/enum_expression.rs).
// A ConcreteEnum is disjoint from ConcreteTagUnion: a value of one kind
// must never be emitted as the other (spec Open Question c).
type ConcreteEnum struct {
	Variants map[string][]ConcreteType
}

func (ConcreteEnum) concreteTypeNode() {}
func (t ConcreteEnum) String() string {
	names := t.SortedVariantNames()
	s := "Enum{"
	for i, n := range names {
		if i > 0 {
			s += ", "
		}
		s += n
	}
	return s + "}"
}

// SortedVariantNames returns the enum's variant names sorted
// alphabetically; the position of a name in this slice is the integer
// (or array-leading-index) that codegen emits for that variant.
func (t ConcreteEnum) SortedVariantNames() []string {
	return sortedKeys(t.Variants)
}

// HasPayload reports whether any variant of the enum carries payload
// types; if so every variant constructor lowers to a JS array
// ([index, ...args]) rather than a bare integer, matching the enum's
// own enum_has_payload computation in the original source.
func (t ConcreteEnum) HasPayload() bool {
	for _, payload := range t.Variants {
		if len(payload) > 0 {
			return true
		}
	}
	return false
}

// ConcreteFunction is a function type with fixed argument types and a
// single return type.
type ConcreteFunction struct {
	Args   []ConcreteType
	Return ConcreteType
}

func (ConcreteFunction) concreteTypeNode() {}
func (t ConcreteFunction) String() string {
	s := "("
	for i, a := range t.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ") -> " + t.Return.String()
}

// ConcreteOpaque stands for an imported identifier's type when nothing
// in the document's own constraint set pins it to a concrete shape.
// buric has no module resolver (spec.md §1 Non-goals), so an imported
// binding's real type lives in whatever file it came from; buric only
// needs enough of a type to let local usage sites type-check against
// each other, which EqualToType unification already provides when
// usage does constrain it.
type ConcreteOpaque struct {
	Name string
}

func (ConcreteOpaque) concreteTypeNode() {}
func (t ConcreteOpaque) String() string  { return "<import " + t.Name + ">" }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// OptionTag builds the ConcreteTagUnion that an else-less if-expression
// of the given branch type lowers to: TagUnion{some: [branch], none: []}.
func OptionTag(branch ConcreteType) ConcreteTagUnion {
	return ConcreteTagUnion{
		Tags: map[string][]ConcreteType{
			"some": {branch},
			"none": {},
		},
		SomeTagsHaveContent: true,
	}
}
