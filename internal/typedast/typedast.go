// Package typedast is the fully resolved mirror of internal/ast that
// the code generator consumes. Where an internal/ast node carries a
// source.Span and, after Pass A, a types.TypeID placeholder, a
// typedast node carries that same span alongside the types.ConcreteType
// Pass B actually resolved it to. Building a separate tree rather than
// mutating the parsed one in place keeps the parser's output immutable
// once produced, matching internal/ast's own package doc.
package typedast

import (
	"github.com/burilang/buric/internal/ast"
	"github.com/burilang/buric/internal/diag"
	"github.com/burilang/buric/internal/source"
	"github.com/burilang/buric/internal/types"
)

// Node is any typed-tree node.
type Node interface {
	Span() source.Span
}

// Expression is a typed-tree node that produces a value.
type Expression interface {
	Node
	Type() types.ConcreteType
	exprNode()
}

type base struct {
	span source.Span
	typ  types.ConcreteType
}

func (b base) Span() source.Span        { return b.span }
func (b base) Type() types.ConcreteType { return b.typ }

type IntegerExpr struct {
	base
	Value uint64
}

func (IntegerExpr) exprNode() {}

type StringExpr struct {
	base
	Value string
}

func (StringExpr) exprNode() {}

type BooleanExpr struct {
	base
	Value bool
}

func (BooleanExpr) exprNode() {}

type IdentifierExpr struct {
	base
	Name string
}

func (IdentifierExpr) exprNode() {}

type ListExpr struct {
	base
	Items []Expression
}

func (ListExpr) exprNode() {}

type RecordField struct {
	Name  string
	Value Expression
}

type RecordExpr struct {
	base
	Fields []RecordField
}

func (RecordExpr) exprNode() {}

type RecordUpdateExpr struct {
	base
	Target     string
	TargetType types.ConcreteType
	Fields     []RecordField
}

func (RecordUpdateExpr) exprNode() {}

type TagExpr struct {
	base
	Name    string
	Payload []Expression
}

func (TagExpr) exprNode() {}

type UnaryOpExpr struct {
	base
	Op      ast.UnaryOperator
	Operand Expression
}

func (UnaryOpExpr) exprNode() {}

type BinaryOpExpr struct {
	base
	Operator string
	Left     Expression
	Right    Expression
}

func (BinaryOpExpr) exprNode() {}

type IfExpr struct {
	base
	Condition Expression
	Then      Expression
	Else      Expression // nil when the source had no else branch
}

func (IfExpr) exprNode() {}

func (e IfExpr) HasElse() bool { return e.Else != nil }

type WhenCase struct {
	Tag       string
	IsDefault bool
	Args      []string
	Body      Expression
}

type WhenExpr struct {
	base
	Scrutinee Expression
	Cases     []WhenCase
}

func (WhenExpr) exprNode() {}

type Param struct {
	Name string
	Type types.ConcreteType
}

type FunctionExpr struct {
	base
	Params []Param
	Body   Expression
}

func (FunctionExpr) exprNode() {}

type BlockExpr struct {
	base
	Exprs []Expression
}

func (BlockExpr) exprNode() {}

// ValueDecl is a `name = expr` binding, either a top-level document
// declaration or a let-binding inside a BlockExpr.
type ValueDecl struct {
	base
	Name     string
	Value    Expression
	Exported bool
}

func (ValueDecl) exprNode() {}

// Import carries a value import that must survive to the generated
// module (type-only imports are erased entirely before this tree is
// built; see Build).
type Import struct {
	Path        string
	Identifiers []string
}

// Document is the fully typed root of one compiled source file.
type Document struct {
	Imports []Import
	Values  []*ValueDecl
}

// builder closes over the resolved TypeID table so every conversion
// step can look a node's ConcreteType up by its ast TypeID.
type builder struct {
	resolved map[types.TypeID]types.ConcreteType
}

// Build walks a parsed, inferred ast.Document and the TypeID ->
// ConcreteType table infer.Resolve produced into an immutable
// typedast.Document ready for code generation.
func Build(resolved map[types.TypeID]types.ConcreteType, doc *ast.Document) (*Document, *diag.Diagnostic) {
	b := &builder{resolved: resolved}

	out := &Document{}
	for _, imp := range doc.Imports {
		names := make([]string, 0, len(imp.Identifiers))
		for _, ident := range imp.Identifiers {
			if ident.IsType {
				continue
			}
			names = append(names, ident.Name)
		}
		if len(names) == 0 {
			continue
		}
		out.Imports = append(out.Imports, Import{Path: imp.Path, Identifiers: names})
	}

	for _, vd := range doc.Values {
		tvd, d := b.valueDecl(vd)
		if d != nil {
			return nil, d
		}
		out.Values = append(out.Values, tvd)
	}
	return out, nil
}

func (b *builder) typeOf(e ast.Expression) (types.ConcreteType, *diag.Diagnostic) {
	ct, ok := b.resolved[e.TypeID()]
	if !ok {
		return nil, diag.New(diag.Codegen, e.Span().Pos(), "internal error: unresolved type variable reached code generation")
	}
	return ct, nil
}

func (b *builder) valueDecl(vd *ast.ValueDecl) (*ValueDecl, *diag.Diagnostic) {
	ct, d := b.typeOf(vd)
	if d != nil {
		return nil, d
	}
	value, d := b.expr(vd.Value)
	if d != nil {
		return nil, d
	}
	return &ValueDecl{
		base:     base{span: vd.Span(), typ: ct},
		Name:     vd.Name,
		Value:    value,
		Exported: vd.Exported,
	}, nil
}

func (b *builder) expr(e ast.Expression) (Expression, *diag.Diagnostic) {
	ct, d := b.typeOf(e)
	if d != nil {
		return nil, d
	}
	bs := base{span: e.Span(), typ: ct}

	switch n := e.(type) {
	case *ast.IntegerExpr:
		return IntegerExpr{base: bs, Value: n.Value}, nil
	case *ast.StringExpr:
		return StringExpr{base: bs, Value: n.Value}, nil
	case *ast.BooleanExpr:
		return BooleanExpr{base: bs, Value: n.Value}, nil
	case *ast.IdentifierExpr:
		return IdentifierExpr{base: bs, Name: n.Name}, nil
	case *ast.ListExpr:
		items, d := b.exprs(n.Items)
		if d != nil {
			return nil, d
		}
		return ListExpr{base: bs, Items: items}, nil
	case *ast.RecordExpr:
		fields, d := b.fields(n.Fields)
		if d != nil {
			return nil, d
		}
		return RecordExpr{base: bs, Fields: fields}, nil
	case *ast.RecordUpdateExpr:
		fields, d := b.fields(n.Fields)
		if d != nil {
			return nil, d
		}
		// The update's own resolved type already equals the target's
		// (Pass A ties them with EqualToType), so it doubles as the
		// target's type.
		return RecordUpdateExpr{base: bs, Target: n.Target, TargetType: ct, Fields: fields}, nil
	case *ast.TagExpr:
		payload, d := b.exprs(n.Payload)
		if d != nil {
			return nil, d
		}
		return TagExpr{base: bs, Name: n.Name, Payload: payload}, nil
	case *ast.UnaryOpExpr:
		operand, d := b.expr(n.Operand)
		if d != nil {
			return nil, d
		}
		return UnaryOpExpr{base: bs, Op: n.Op, Operand: operand}, nil
	case *ast.BinaryOpExpr:
		left, d := b.expr(n.Left)
		if d != nil {
			return nil, d
		}
		right, d := b.expr(n.Right)
		if d != nil {
			return nil, d
		}
		return BinaryOpExpr{base: bs, Operator: n.Operator, Left: left, Right: right}, nil
	case *ast.IfExpr:
		cond, d := b.expr(n.Condition)
		if d != nil {
			return nil, d
		}
		then, d := b.expr(n.Then)
		if d != nil {
			return nil, d
		}
		var els Expression
		if n.HasElse() {
			els, d = b.expr(n.Else)
			if d != nil {
				return nil, d
			}
		}
		return IfExpr{base: bs, Condition: cond, Then: then, Else: els}, nil
	case *ast.WhenExpr:
		scrutinee, d := b.expr(n.Scrutinee)
		if d != nil {
			return nil, d
		}
		cases := make([]WhenCase, len(n.Cases))
		for i, c := range n.Cases {
			body, d := b.expr(c.Body)
			if d != nil {
				return nil, d
			}
			cases[i] = WhenCase{
				Tag:       c.Tag,
				IsDefault: c.IsDefault,
				Args:      c.Args,
				Body:      body,
			}
		}
		return WhenExpr{base: bs, Scrutinee: scrutinee, Cases: cases}, nil
	case *ast.FunctionExpr:
		fn, ok := ct.(types.ConcreteFunction)
		params := make([]Param, len(n.Params))
		for i, p := range n.Params {
			var pt types.ConcreteType
			if ok && i < len(fn.Args) {
				pt = fn.Args[i]
			}
			params[i] = Param{Name: p.Name, Type: pt}
		}
		body, d := b.expr(n.Body)
		if d != nil {
			return nil, d
		}
		return FunctionExpr{base: bs, Params: params, Body: body}, nil
	case *ast.BlockExpr:
		exprs, d := b.exprs(n.Exprs)
		if d != nil {
			return nil, d
		}
		return BlockExpr{base: bs, Exprs: exprs}, nil
	case *ast.ValueDecl:
		vd, d := b.valueDecl(n)
		if d != nil {
			return nil, d
		}
		return *vd, nil
	default:
		return nil, diag.New(diag.Codegen, e.Span().Pos(), "internal error: unhandled expression kind reached typed-tree construction")
	}
}

func (b *builder) exprs(in []ast.Expression) ([]Expression, *diag.Diagnostic) {
	out := make([]Expression, len(in))
	for i, e := range in {
		te, d := b.expr(e)
		if d != nil {
			return nil, d
		}
		out[i] = te
	}
	return out, nil
}

func (b *builder) fields(in []ast.RecordField) ([]RecordField, *diag.Diagnostic) {
	out := make([]RecordField, len(in))
	for i, f := range in {
		te, d := b.expr(f.Value)
		if d != nil {
			return nil, d
		}
		out[i] = RecordField{Name: f.Name, Value: te}
	}
	return out, nil
}
