// Package ast defines buri's abstract syntax tree.
//
// Every node is, per spec.md §3.2, a pair of (source slice, value):
// concrete node types embed [Base], which carries the [source.Span]
// the node was parsed from. During type inference (internal/infer)
// each expression node is additionally annotated with a [types.TypeID]
// in place, turning the parsed tree into the "generic AST" spec.md
// §4.2 describes; the resolver then builds a separate, immutable
// internal/typedast tree from it rather than mutating this one further.
package ast

import (
	"github.com/burilang/buric/internal/source"
	"github.com/burilang/buric/internal/types"
)

// Node is the base interface every AST node satisfies: it can report
// the source slice it was parsed from.
type Node interface {
	Span() source.Span
}

// Expression is any node that produces a value and therefore
// participates in type inference.
type Expression interface {
	Node
	exprNode()
	TypeID() types.TypeID
	SetTypeID(id types.TypeID)
}

// Base is embedded by every concrete node to provide Span() and, for
// expressions, the TypeID annotation slot Pass A fills in.
type Base struct {
	Sp  source.Span
	Typ types.TypeID
}

// Span returns the slice of source text this node was parsed from.
func (b *Base) Span() source.Span { return b.Sp }

// TypeID returns the type variable Pass A assigned to this node. It is
// the zero TypeID until inference runs.
func (b *Base) TypeID() types.TypeID { return b.Typ }

// SetTypeID records the type variable Pass A assigned to this node.
func (b *Base) SetTypeID(id types.TypeID) { b.Typ = id }

func newBase(span source.Span) Base { return Base{Sp: span} }
