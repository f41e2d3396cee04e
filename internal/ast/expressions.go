package ast

import "github.com/burilang/buric/internal/source"

// IntegerExpr is an unsigned integer literal. Overflow during parsing
// saturates Value to math.MaxUint64 rather than erroring (spec.md §8
// testable property 2).
type IntegerExpr struct {
	Base
	Value uint64
}

func NewIntegerExpr(span source.Span, value uint64) *IntegerExpr {
	return &IntegerExpr{Base: newBase(span), Value: value}
}

func (*IntegerExpr) exprNode() {}

// StringExpr is a decoded string literal (escapes already resolved).
type StringExpr struct {
	Base
	Value string
}

func NewStringExpr(span source.Span, value string) *StringExpr {
	return &StringExpr{Base: newBase(span), Value: value}
}

func (*StringExpr) exprNode() {}

// BooleanExpr is a `true`/`false` literal.
type BooleanExpr struct {
	Base
	Value bool
}

func NewBooleanExpr(span source.Span, value bool) *BooleanExpr {
	return &BooleanExpr{Base: newBase(span), Value: value}
}

func (*BooleanExpr) exprNode() {}

// IdentifierExpr is a reference to a lower-case-leading name: a local
// binding, function parameter, or imported value.
type IdentifierExpr struct {
	Base
	Name string
}

func NewIdentifierExpr(span source.Span, name string) *IdentifierExpr {
	return &IdentifierExpr{Base: newBase(span), Name: name}
}

func (*IdentifierExpr) exprNode() {}

// ListExpr is an ordered sequence of expressions, `[e1, e2, ...]`.
type ListExpr struct {
	Base
	Items []Expression
}

func NewListExpr(span source.Span, items []Expression) *ListExpr {
	return &ListExpr{Base: newBase(span), Items: items}
}

func (*ListExpr) exprNode() {}

// RecordField is one `name: expression` binding within a record
// literal or record-update. Order is preserved even though field
// lookup is name-based and field order is otherwise unspecified,
// because diagnostics and round-trip tests want it.
type RecordField struct {
	Name  string
	Value Expression
	Span  source.Span
}

// RecordExpr is a `{name: expr, ...}` literal. Field names are unique
// (spec.md §3.2 invariant); the parser enforces this.
type RecordExpr struct {
	Base
	Fields []RecordField
}

func NewRecordExpr(span source.Span, fields []RecordField) *RecordExpr {
	return &RecordExpr{Base: newBase(span), Fields: fields}
}

func (*RecordExpr) exprNode() {}

// FieldMap returns the record's fields as a name -> expression map.
func (r *RecordExpr) FieldMap() map[string]Expression {
	m := make(map[string]Expression, len(r.Fields))
	for _, f := range r.Fields {
		m[f.Name] = f.Value
	}
	return m
}

// RecordUpdateExpr is `{identifier | name: expr, ...}`: a new record
// equal to the named base record with the given fields replaced.
type RecordUpdateExpr struct {
	Base
	Target string
	Fields []RecordField
}

func NewRecordUpdateExpr(span source.Span, target string, fields []RecordField) *RecordUpdateExpr {
	return &RecordUpdateExpr{Base: newBase(span), Target: target, Fields: fields}
}

func (*RecordUpdateExpr) exprNode() {}

// FieldMap returns the update's fields as a name -> expression map.
func (r *RecordUpdateExpr) FieldMap() map[string]Expression {
	m := make(map[string]Expression, len(r.Fields))
	for _, f := range r.Fields {
		m[f.Name] = f.Value
	}
	return m
}

// TagExpr is a `#name` or `#name(args...)` tag constructor.
type TagExpr struct {
	Base
	Name    string
	Payload []Expression
}

func NewTagExpr(span source.Span, name string, payload []Expression) *TagExpr {
	return &TagExpr{Base: newBase(span), Name: name, Payload: payload}
}

func (*TagExpr) exprNode() {}

// UnaryOperator distinguishes the two unary operator symbols.
type UnaryOperator int

const (
	Negative UnaryOperator = iota
	Not
)

func (op UnaryOperator) Symbol() string {
	if op == Not {
		return "!"
	}
	return "-"
}

// UnaryOpExpr is `-x` or `!x`.
type UnaryOpExpr struct {
	Base
	Op      UnaryOperator
	Operand Expression
}

func NewUnaryOpExpr(span source.Span, op UnaryOperator, operand Expression) *UnaryOpExpr {
	return &UnaryOpExpr{Base: newBase(span), Op: op, Operand: operand}
}

func (*UnaryOpExpr) exprNode() {}

// BinaryOpExpr is `left OP right` for one of
// `+ - * / == != < <= > >= and or`.
type BinaryOpExpr struct {
	Base
	Operator string
	Left     Expression
	Right    Expression
}

func NewBinaryOpExpr(span source.Span, operator string, left, right Expression) *BinaryOpExpr {
	return &BinaryOpExpr{Base: newBase(span), Operator: operator, Left: left, Right: right}
}

func (*BinaryOpExpr) exprNode() {}

// IfExpr is `if cond do then [else else]`. Else is nil when the
// else-branch was omitted, in which case the expression's type is an
// Option (spec.md §4.2).
type IfExpr struct {
	Base
	Condition Expression
	Then      Expression
	Else      Expression
}

func NewIfExpr(span source.Span, cond, then, els Expression) *IfExpr {
	return &IfExpr{Base: newBase(span), Condition: cond, Then: then, Else: els}
}

func (*IfExpr) exprNode() {}

// HasElse reports whether the if-expression has an else branch.
func (e *IfExpr) HasElse() bool { return e.Else != nil }

// WhenCase is one `#tag args... => body` or `_ => body` arm of a when
// expression.
type WhenCase struct {
	Tag       string // empty when IsDefault
	IsDefault bool
	Args      []string
	Body      Expression
	Span      source.Span
}

// WhenExpr is `when scrutinee is case...`.
type WhenExpr struct {
	Base
	Scrutinee Expression
	Cases     []WhenCase
}

func NewWhenExpr(span source.Span, scrutinee Expression, cases []WhenCase) *WhenExpr {
	return &WhenExpr{Base: newBase(span), Scrutinee: scrutinee, Cases: cases}
}

func (*WhenExpr) exprNode() {}

// Param is one function parameter, with an optional type annotation.
type Param struct {
	Name       string
	Annotation TypeExpr // nil when unannotated
	Span       source.Span
}

// FunctionExpr is `(params...) => body`.
type FunctionExpr struct {
	Base
	Params []Param
	Body   Expression
}

func NewFunctionExpr(span source.Span, params []Param, body Expression) *FunctionExpr {
	return &FunctionExpr{Base: newBase(span), Params: params, Body: body}
}

func (*FunctionExpr) exprNode() {}

// BlockExpr is an ordered sequence of expressions; its value is the
// value of the last one.
type BlockExpr struct {
	Base
	Exprs []Expression
}

func NewBlockExpr(span source.Span, exprs []Expression) *BlockExpr {
	return &BlockExpr{Base: newBase(span), Exprs: exprs}
}

func (*BlockExpr) exprNode() {}
