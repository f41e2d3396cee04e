package ast

import "github.com/burilang/buric/internal/source"

// ValueDecl is `[export] identifier [: TypeExpr] = expression`. It
// implements Expression because buri allows declarations inside a
// block body (sequential let-bindings), not only at document level;
// a ValueDecl's value, for typing purposes, is the type of its RHS.
type ValueDecl struct {
	Base
	Name       string
	Annotation TypeExpr // nil when unannotated
	Value      Expression
	Exported   bool
}

func NewValueDecl(span source.Span, name string, annotation TypeExpr, value Expression, exported bool) *ValueDecl {
	return &ValueDecl{Base: newBase(span), Name: name, Annotation: annotation, Value: value, Exported: exported}
}

func (*ValueDecl) exprNode() {}

// TypeDecl is `TypeIdent = TypeExpr`, a top-level type declaration.
type TypeDecl struct {
	Name string
	Type TypeExpr
	Sp   source.Span
}

func (d *TypeDecl) Span() source.Span { return d.Sp }

// ImportedIdentifier is one name in an import list, flagged as either
// a value identifier or a type identifier (type-only imports are
// erased during code generation).
type ImportedIdentifier struct {
	Name   string
	IsType bool
	Span   source.Span
}

// ImportNode is `import ident, ... from "path"`.
type ImportNode struct {
	Path        string
	Identifiers []ImportedIdentifier
	Sp          source.Span
}

func (n *ImportNode) Span() source.Span { return n.Sp }

// Document is the root of a parsed source file.
type Document struct {
	Imports   []*ImportNode
	TypeDecls []*TypeDecl
	Values    []*ValueDecl
	Sp        source.Span
}

func (d *Document) Span() source.Span { return d.Sp }
