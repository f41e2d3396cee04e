package ast

import "github.com/burilang/buric/internal/source"

// TypeExpr is the closed sum of type-level syntax: type identifiers,
// list types, record types, tag-union types, and function types.
type TypeExpr interface {
	Node
	typeExprNode()
}

// TypeIdentifierExpr is an upper-case-leading type name, either a
// built-in (`Num`, `Str`, `Bool`) or a user type declared elsewhere in
// the document.
type TypeIdentifierExpr struct {
	Base
	Name string
}

func NewTypeIdentifierExpr(span source.Span, name string) *TypeIdentifierExpr {
	return &TypeIdentifierExpr{Base: newBase(span), Name: name}
}

func (*TypeIdentifierExpr) typeExprNode() {}

// ListTypeExpr is `List(T)`.
type ListTypeExpr struct {
	Base
	Element TypeExpr
}

func NewListTypeExpr(span source.Span, element TypeExpr) *ListTypeExpr {
	return &ListTypeExpr{Base: newBase(span), Element: element}
}

func (*ListTypeExpr) typeExprNode() {}

// RecordTypeField is one `name: TypeExpr` entry in a record type.
type RecordTypeField struct {
	Name string
	Type TypeExpr
	Span source.Span
}

// RecordTypeExpr is `{name: T, ...}` in type position.
type RecordTypeExpr struct {
	Base
	Fields []RecordTypeField
}

func NewRecordTypeExpr(span source.Span, fields []RecordTypeField) *RecordTypeExpr {
	return &RecordTypeExpr{Base: newBase(span), Fields: fields}
}

func (*RecordTypeExpr) typeExprNode() {}

// TagTypeVariant is one `#name(T1, T2, ...)` (or payload-less `#name`)
// alternative of a tag-union type.
type TagTypeVariant struct {
	Name    string
	Payload []TypeExpr
	Span    source.Span
}

// TagTypeExpr is `#a | #b(T) | ...`, a tag-union type.
type TagTypeExpr struct {
	Base
	Variants []TagTypeVariant
}

func NewTagTypeExpr(span source.Span, variants []TagTypeVariant) *TagTypeExpr {
	return &TagTypeExpr{Base: newBase(span), Variants: variants}
}

func (*TagTypeExpr) typeExprNode() {}

// FunctionTypeExpr is `(T1, T2, ...) -> Tr`.
type FunctionTypeExpr struct {
	Base
	Args   []TypeExpr
	Return TypeExpr
}

func NewFunctionTypeExpr(span source.Span, args []TypeExpr, ret TypeExpr) *FunctionTypeExpr {
	return &FunctionTypeExpr{Base: newBase(span), Args: args, Return: ret}
}

func (*FunctionTypeExpr) typeExprNode() {}
