package types

// Scope is a linked stack of identifier-name -> TypeID mappings.
// Lookups walk toward the root scope when a name is not found locally,
// giving inner blocks access to outer bindings without copying them.
type Scope struct {
	parent      *Scope
	identifiers map[string]TypeID
}

// NewScope creates a fresh root scope with no parent.
func NewScope() *Scope {
	return &Scope{identifiers: make(map[string]TypeID)}
}

// Push creates a new child scope of s.
func (s *Scope) Push() *Scope {
	return &Scope{parent: s, identifiers: make(map[string]TypeID)}
}

// Pop returns s's parent scope, or s itself if s is already the root.
func (s *Scope) Pop() *Scope {
	if s.parent == nil {
		return s
	}
	return s.parent
}

// Declare binds name to id in the current scope, shadowing any binding
// of the same name in an outer scope.
func (s *Scope) Declare(name string, id TypeID) {
	s.identifiers[name] = id
}

// Lookup walks from s toward the root looking for name, returning its
// TypeID and true if found.
func (s *Scope) Lookup(name string) (TypeID, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if id, ok := scope.identifiers[name]; ok {
			return id, true
		}
	}
	return 0, false
}

// TypeSchema is the mutable inference state threaded through Pass A
// and consumed by Pass B: the monotonic TypeID counter, the
// per-variable constraint lists, the import-name table, and the
// current lexical scope. A TypeSchema is created empty, mutated
// throughout inference of exactly one document, handed to the
// resolver, and then discarded.
type TypeSchema struct {
	nextID      TypeID
	Constraints map[TypeID][]Constraint
	Imports     map[TypeID]string
	TypeDecls   map[string]ConcreteType
	Scope       *Scope
}

// NewSchema creates an empty TypeSchema with a single root scope.
func NewSchema() *TypeSchema {
	return &TypeSchema{
		Constraints: make(map[TypeID][]Constraint),
		Imports:     make(map[TypeID]string),
		TypeDecls:   make(map[string]ConcreteType),
		Scope:       NewScope(),
	}
}

// MakeID returns a TypeID unique within this schema.
func (s *TypeSchema) MakeID() TypeID {
	id := s.nextID
	s.nextID++
	return id
}

// NextID reports the schema's current TypeID high-water mark, i.e. how
// many TypeIDs have been minted so far.
func (s *TypeSchema) NextID() TypeID {
	return s.nextID
}

// Insert attaches a constraint to a TypeID.
func (s *TypeSchema) Insert(id TypeID, c Constraint) {
	s.Constraints[id] = append(s.Constraints[id], c)
}

// NumberOfConstraints returns the total count of constraints across
// every TypeID in the schema.
func (s *TypeSchema) NumberOfConstraints() int {
	n := 0
	for _, cs := range s.Constraints {
		n += len(cs)
	}
	return n
}

// RegisterImport mints a fresh TypeID for an imported identifier and
// records its origin name.
func (s *TypeSchema) RegisterImport(name string) TypeID {
	id := s.MakeID()
	s.Imports[id] = name
	return id
}

// DeclareType registers the concrete type named by a top-level type
// declaration, resolving later HasName(name) constraints.
func (s *TypeSchema) DeclareType(name string, t ConcreteType) {
	s.TypeDecls[name] = t
}

// PushScope enters a new nested lexical scope.
func (s *TypeSchema) PushScope() {
	s.Scope = s.Scope.Push()
}

// PopScope leaves the current lexical scope, returning to its parent.
func (s *TypeSchema) PopScope() {
	s.Scope = s.Scope.Pop()
}

// pairKey is an unordered pair of TypeIDs, used as a map key so
// (a, b) and (b, a) collide.
type pairKey struct {
	lo, hi TypeID
}

func makePairKey(a, b TypeID) pairKey {
	if a <= b {
		return pairKey{a, b}
	}
	return pairKey{b, a}
}

// CheckedTypes is an unordered-pair set for breaking cycles in the
// constraint graph during pairwise unification (internal/infer's
// resolver does not use it; it breaks cycles with its own per-root
// in-progress set): a pair is entered before unifying
// two TypeIDs and removed once that unification returns, the standard
// memoization-of-visited-edges pattern for graphs that may be cyclic
// (e.g. a record field whose type mentions its own TypeID).
type CheckedTypes struct {
	pairs map[pairKey]struct{}
}

// NewCheckedTypes returns an empty CheckedTypes set.
func NewCheckedTypes() *CheckedTypes {
	return &CheckedTypes{pairs: make(map[pairKey]struct{})}
}

// Contains reports whether the unordered pair (a, b) has already been
// entered.
func (c *CheckedTypes) Contains(a, b TypeID) bool {
	_, ok := c.pairs[makePairKey(a, b)]
	return ok
}

// Enter records the unordered pair (a, b) as in-progress. It returns a
// release function that must be called when unification of the pair
// completes, regardless of success or failure.
func (c *CheckedTypes) Enter(a, b TypeID) (release func()) {
	key := makePairKey(a, b)
	c.pairs[key] = struct{}{}
	return func() { delete(c.pairs, key) }
}
