package infer

import (
	"fmt"

	"github.com/burilang/buric/internal/diag"
	"github.com/burilang/buric/internal/source"
	"github.com/burilang/buric/internal/types"
)

// Resolve runs Pass B: it merges every TypeID's constraint list into a
// types.ConcreteType, returning the result keyed by every TypeID the
// schema minted. A schema is small enough (one source file) that
// resolving the full range is simpler and no less correct than
// resolving only the IDs that ended up reachable from the AST.
func Resolve(schema *types.TypeSchema) (map[types.TypeID]types.ConcreteType, *diag.Diagnostic) {
	r := &resolver{
		schema:          schema,
		uf:              newUnionFind(),
		rootConstraints: make(map[types.TypeID][]types.Constraint),
		memo:            make(map[types.TypeID]types.ConcreteType),
		resolving:       make(map[types.TypeID]bool),
	}

	for id, cs := range schema.Constraints {
		for _, c := range cs {
			if eq, ok := c.(types.EqualToType); ok {
				r.uf.union(id, eq.Other)
			}
		}
	}
	for id, cs := range schema.Constraints {
		root := r.uf.find(id)
		for _, c := range cs {
			if _, ok := c.(types.EqualToType); ok {
				continue
			}
			r.rootConstraints[root] = append(r.rootConstraints[root], c)
		}
	}
	r.importNames = make(map[types.TypeID]string, len(schema.Imports))
	for id, name := range schema.Imports {
		r.importNames[r.uf.find(id)] = name
	}

	// Constrained classes are resolved first: resolving them can union an
	// otherwise unconstrained TypeID into a constrained class, which has
	// to happen before that TypeID is resolved on its own.
	result := make(map[types.TypeID]types.ConcreteType, schema.NextID())
	for pass := 0; pass < 2; pass++ {
		for raw := types.TypeID(0); raw < schema.NextID(); raw++ {
			root := r.uf.find(raw)
			if pass == 0 && len(r.rootConstraints[root]) == 0 {
				continue
			}
			ct, d := r.resolveRoot(root)
			if d != nil {
				return nil, d
			}
			result[raw] = ct
		}
	}
	return result, nil
}

type resolver struct {
	schema          *types.TypeSchema
	uf              *unionFind
	rootConstraints map[types.TypeID][]types.Constraint
	importNames     map[types.TypeID]string
	memo            map[types.TypeID]types.ConcreteType
	resolving       map[types.TypeID]bool
}

func cannotInfer(msg string) *diag.Diagnostic {
	return diag.New(diag.Type, source.Position{}, "cannot infer: "+msg)
}

func (r *resolver) resolveRoot(root types.TypeID) (types.ConcreteType, *diag.Diagnostic) {
	if ct, ok := r.memo[root]; ok {
		return ct, nil
	}
	if r.resolving[root] {
		// A genuinely self-referential type (e.g. a record field whose
		// declared type mentions its own enclosing type). buric does not
		// attempt to model recursive structural types; the cycle is
		// broken with an opaque placeholder rather than looping forever.
		return types.ConcreteOpaque{Name: "<recursive>"}, nil
	}
	r.resolving[root] = true
	defer delete(r.resolving, root)

	// Pass B itself unions classes (function shapes, list elements,
	// named members), so root owns the constraints of every bucket that
	// now finds to it, not only the bucket filed under root itself.
	var cs []types.Constraint
	for bucket, bcs := range r.rootConstraints {
		if r.uf.find(bucket) == root {
			cs = append(cs, bcs...)
		}
	}

	for _, c := range cs {
		if ec, ok := c.(types.EqualToConcrete); ok {
			r.memo[root] = ec.Type
			return ec.Type, nil
		}
	}
	for _, c := range cs {
		if hn, ok := c.(types.HasName); ok {
			ct, ok2 := r.schema.TypeDecls[hn.Name]
			if !ok2 {
				return nil, cannotInfer("undefined type " + hn.Name)
			}
			r.memo[root] = ct
			return ct, nil
		}
	}

	if ct, d := r.resolvePrimitive(root, cs); ct != nil || d != nil {
		return ct, d
	}
	if ct, d := r.resolveFunction(root, cs); ct != nil || d != nil {
		return ct, d
	}
	if ct, d := r.resolveRecord(root, cs); ct != nil || d != nil {
		return ct, d
	}
	if ct, d := r.resolveTagUnion(root, cs); ct != nil || d != nil {
		return ct, d
	}
	if ct, d := r.resolveEnum(root, cs); ct != nil || d != nil {
		return ct, d
	}
	if ct, d := r.resolveList(root, cs); ct != nil || d != nil {
		return ct, d
	}
	if name, ok := r.importNames[root]; ok {
		ct := types.ConcreteOpaque{Name: name}
		r.memo[root] = ct
		return ct, nil
	}
	return nil, cannotInfer(fmt.Sprintf("underconstrained type variable %d", root))
}

func (r *resolver) resolvePrimitive(root types.TypeID, cs []types.Constraint) (types.ConcreteType, *diag.Diagnostic) {
	var found *types.PrimitiveKind
	for _, c := range cs {
		ep, ok := c.(types.EqualToPrimitive)
		if !ok {
			continue
		}
		if found != nil && *found != ep.Primitive {
			return nil, cannotInfer(fmt.Sprintf("conflicting primitive types %s and %s", found, ep.Primitive))
		}
		k := ep.Primitive
		found = &k
	}
	if found == nil {
		return nil, nil
	}
	ct := types.ConcretePrimitive{Kind: *found}
	r.memo[root] = ct
	return ct, nil
}

func (r *resolver) resolveFunction(root types.TypeID, cs []types.Constraint) (types.ConcreteType, *diag.Diagnostic) {
	var shapes []types.HasFunctionShape
	for _, c := range cs {
		if hs, ok := c.(types.HasFunctionShape); ok {
			shapes = append(shapes, hs)
		}
	}
	if len(shapes) == 0 {
		return nil, nil
	}
	arity := len(shapes[0].Args)
	for _, s := range shapes[1:] {
		if len(s.Args) != arity {
			return nil, cannotInfer("function arity mismatch")
		}
		for i := 0; i < arity; i++ {
			r.uf.union(shapes[0].Args[i], s.Args[i])
		}
		r.uf.union(shapes[0].Return, s.Return)
	}
	argTypes := make([]types.ConcreteType, arity)
	for i := 0; i < arity; i++ {
		at, d := r.resolveRoot(r.uf.find(shapes[0].Args[i]))
		if d != nil {
			return nil, d
		}
		argTypes[i] = at
	}
	retType, d := r.resolveRoot(r.uf.find(shapes[0].Return))
	if d != nil {
		return nil, d
	}
	ct := types.ConcreteFunction{Args: argTypes, Return: retType}
	r.memo[root] = ct
	return ct, nil
}

// mergeNamed folds ids into acc[name], unioning positionally with any
// ids already recorded under that name so repeated assertions about
// the same named member (record field, tag payload, enum payload)
// settle on one shared set of TypeIDs.
func mergeNamed(uf *unionFind, acc map[string][]types.TypeID, name string, ids []types.TypeID) *diag.Diagnostic {
	existing, ok := acc[name]
	if !ok {
		acc[name] = append([]types.TypeID(nil), ids...)
		return nil
	}
	if len(existing) != len(ids) {
		return cannotInfer("arity mismatch for " + name)
	}
	for i := range ids {
		uf.union(existing[i], ids[i])
	}
	return nil
}

func (r *resolver) resolveRecord(root types.TypeID, cs []types.Constraint) (types.ConcreteType, *diag.Diagnostic) {
	acc := map[string][]types.TypeID{}
	var cap_ map[string]types.TypeID
	saw := false
	for _, c := range cs {
		switch fc := c.(type) {
		case types.HasField:
			saw = true
			if d := mergeNamed(r.uf, acc, fc.Name, []types.TypeID{fc.Type}); d != nil {
				return nil, d
			}
		case types.HasExactFields:
			saw = true
			cap_ = fc.Fields
			for name, id := range fc.Fields {
				if d := mergeNamed(r.uf, acc, name, []types.TypeID{id}); d != nil {
					return nil, d
				}
			}
		}
	}
	if !saw {
		return nil, nil
	}
	if cap_ != nil {
		for name := range acc {
			if _, ok := cap_[name]; !ok {
				return nil, cannotInfer("unexpected record field " + name)
			}
		}
	}
	fields := make(map[string]types.ConcreteType, len(acc))
	for name, ids := range acc {
		ft, d := r.resolveRoot(r.uf.find(ids[0]))
		if d != nil {
			return nil, d
		}
		fields[name] = ft
	}
	ct := types.ConcreteRecord{Fields: fields}
	r.memo[root] = ct
	return ct, nil
}

func (r *resolver) resolveTagUnion(root types.TypeID, cs []types.Constraint) (types.ConcreteType, *diag.Diagnostic) {
	acc := map[string][]types.TypeID{}
	var cap_ map[string][]types.TypeID
	saw := false
	for _, c := range cs {
		switch tc := c.(type) {
		case types.HasTag:
			saw = true
			if d := mergeNamed(r.uf, acc, tc.Name, tc.Payload); d != nil {
				return nil, d
			}
		case types.TagAtMost:
			saw = true
			cap_ = tc.Tags
			for name, ids := range tc.Tags {
				if d := mergeNamed(r.uf, acc, name, ids); d != nil {
					return nil, d
				}
			}
		}
	}
	if !saw {
		return nil, nil
	}
	if cap_ != nil {
		for name := range acc {
			if _, ok := cap_[name]; !ok {
				return nil, cannotInfer("tag #" + name + " outside the declared union")
			}
		}
	}
	tags := make(map[string][]types.ConcreteType, len(acc))
	hasContent := false
	for name, ids := range acc {
		payload := make([]types.ConcreteType, len(ids))
		for i, id := range ids {
			pt, d := r.resolveRoot(r.uf.find(id))
			if d != nil {
				return nil, d
			}
			payload[i] = pt
		}
		if len(payload) > 0 {
			hasContent = true
		}
		tags[name] = payload
	}
	ct := types.ConcreteTagUnion{Tags: tags, SomeTagsHaveContent: hasContent}
	r.memo[root] = ct
	return ct, nil
}

func (r *resolver) resolveEnum(root types.TypeID, cs []types.Constraint) (types.ConcreteType, *diag.Diagnostic) {
	acc := map[string][]types.TypeID{}
	saw := false
	for _, c := range cs {
		switch vc := c.(type) {
		case types.HasVariant:
			saw = true
			if d := mergeNamed(r.uf, acc, vc.Name, vc.Payload); d != nil {
				return nil, d
			}
		case types.EnumExact:
			saw = true
			for name, ids := range vc.Variants {
				if d := mergeNamed(r.uf, acc, name, ids); d != nil {
					return nil, d
				}
			}
		}
	}
	if !saw {
		return nil, nil
	}
	variants := make(map[string][]types.ConcreteType, len(acc))
	for name, ids := range acc {
		payload := make([]types.ConcreteType, len(ids))
		for i, id := range ids {
			pt, d := r.resolveRoot(r.uf.find(id))
			if d != nil {
				return nil, d
			}
			payload[i] = pt
		}
		variants[name] = payload
	}
	ct := types.ConcreteEnum{Variants: variants}
	r.memo[root] = ct
	return ct, nil
}

func (r *resolver) resolveList(root types.TypeID, cs []types.Constraint) (types.ConcreteType, *diag.Diagnostic) {
	var elemIDs []types.TypeID
	for _, c := range cs {
		if lt, ok := c.(types.ListOfType); ok {
			elemIDs = append(elemIDs, lt.Element)
		}
	}
	if len(elemIDs) == 0 {
		return nil, nil
	}
	r.uf.unionAll(elemIDs)
	elemType, d := r.resolveRoot(r.uf.find(elemIDs[0]))
	if d != nil {
		return nil, d
	}
	ct := types.ConcreteList{Element: elemType}
	r.memo[root] = ct
	return ct, nil
}
