package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/burilang/buric/internal/diag"
	"github.com/burilang/buric/internal/typedast"
	"github.com/burilang/buric/internal/types"
)

func internalf(e typedast.Node, format string, args ...any) *diag.Diagnostic {
	return diag.New(diag.Codegen, e.Span().Pos(), fmt.Sprintf(format, args...))
}

// expr lowers one typed-tree expression to its JS text, per spec.md
// §4.3's translation table.
func (e *emitter) expr(x typedast.Expression) (string, *diag.Diagnostic) {
	switch n := x.(type) {
	case typedast.IntegerExpr:
		return strconv.FormatUint(n.Value, 10), nil
	case typedast.BooleanExpr:
		if n.Value {
			return "true", nil
		}
		return "false", nil
	case typedast.StringExpr:
		return printStringLiteral(n.Value), nil
	case typedast.IdentifierExpr:
		return e.mangle(n.Name), nil
	case typedast.ListExpr:
		return e.list(n)
	case typedast.RecordExpr:
		return e.record(n)
	case typedast.RecordUpdateExpr:
		return e.recordUpdate(n)
	case typedast.TagExpr:
		return e.tag(n)
	case typedast.UnaryOpExpr:
		return e.unary(n)
	case typedast.BinaryOpExpr:
		return e.binary(n)
	case typedast.IfExpr:
		return e.ifExpr(n)
	case typedast.WhenExpr:
		return e.when(n)
	case typedast.FunctionExpr:
		return e.function(n)
	case typedast.BlockExpr:
		return e.block(n)
	case typedast.ValueDecl:
		// A let-binding nested inside a block; see (*emitter).block.
		return e.blockLocalDecl(n)
	default:
		return "", internalf(x, "unhandled expression kind %T reached code generation", x)
	}
}

func (e *emitter) list(n typedast.ListExpr) (string, *diag.Diagnostic) {
	parts := make([]string, len(n.Items))
	for i, item := range n.Items {
		s, d := e.expr(item)
		if d != nil {
			return "", d
		}
		parts[i] = s
	}
	return "[" + strings.Join(parts, ",") + "]", nil
}

func (e *emitter) recordFields(fields []typedast.RecordField) (string, *diag.Diagnostic) {
	parts := make([]string, len(fields))
	for i, f := range fields {
		s, d := e.expr(f.Value)
		if d != nil {
			return "", d
		}
		parts[i] = f.Name + ": " + s
	}
	return "{" + strings.Join(parts, ", ") + "}", nil
}

func (e *emitter) record(n typedast.RecordExpr) (string, *diag.Diagnostic) {
	return e.recordFields(n.Fields)
}

func (e *emitter) recordUpdate(n typedast.RecordUpdateExpr) (string, *diag.Diagnostic) {
	fields, d := e.recordFields(n.Fields)
	if d != nil {
		return "", d
	}
	return e.mangle(n.Target) + ".$set(" + fields + ")", nil
}

// tag lowers a Tag node according to its resolved type, as a tag-union
// variant or an enum variant, erroring if n did not resolve to a tag
// union or enum at all (a Tag node must always be one or the other;
// anything else is the codegen invariant violation spec.md §7 names
// explicitly).
func (e *emitter) tag(n typedast.TagExpr) (string, *diag.Diagnostic) {
	switch t := n.Type().(type) {
	case types.ConcreteTagUnion:
		return e.tagUnionVariant(n, t)
	case types.ConcreteEnum:
		return e.enumVariant(n, t)
	default:
		return "", internalf(n, "Tag node %q has non-union, non-enum type %s", n.Name, n.Type())
	}
}

func (e *emitter) tagUnionVariant(n typedast.TagExpr, union types.ConcreteTagUnion) (string, *diag.Diagnostic) {
	if !union.SomeTagsHaveContent {
		return `"` + n.Name + `"`, nil
	}
	parts := make([]string, 0, 1+len(n.Payload))
	parts = append(parts, `"`+n.Name+`"`)
	for _, p := range n.Payload {
		s, d := e.expr(p)
		if d != nil {
			return "", d
		}
		parts = append(parts, s)
	}
	return "[" + strings.Join(parts, ",") + "]", nil
}

func (e *emitter) enumVariant(n typedast.TagExpr, enum types.ConcreteEnum) (string, *diag.Diagnostic) {
	names := enum.SortedVariantNames()
	index := -1
	for i, name := range names {
		if name == n.Name {
			index = i
			break
		}
	}
	if index < 0 {
		return "", internalf(n, "enum variant %q is not a member of its own resolved enum type", n.Name)
	}
	if !enum.HasPayload() {
		return strconv.Itoa(index), nil
	}
	parts := make([]string, 0, 1+len(n.Payload))
	parts = append(parts, strconv.Itoa(index))
	for _, p := range n.Payload {
		s, d := e.expr(p)
		if d != nil {
			return "", d
		}
		parts = append(parts, s)
	}
	return "[" + strings.Join(parts, ",") + "]", nil
}

func (e *emitter) unary(n typedast.UnaryOpExpr) (string, *diag.Diagnostic) {
	operand, d := e.expr(n.Operand)
	if d != nil {
		return "", d
	}
	return n.Op.Symbol() + operand, nil
}

func (e *emitter) binary(n typedast.BinaryOpExpr) (string, *diag.Diagnostic) {
	left, d := e.expr(n.Left)
	if d != nil {
		return "", d
	}
	right, d := e.expr(n.Right)
	if d != nil {
		return "", d
	}
	return "(" + left + n.Operator + right + ")", nil
}

func (e *emitter) ifExpr(n typedast.IfExpr) (string, *diag.Diagnostic) {
	cond, d := e.expr(n.Condition)
	if d != nil {
		return "", d
	}
	var truePath string
	if n.HasElse() {
		truePath, d = e.expr(n.Then)
		if d != nil {
			return "", d
		}
	} else {
		then, d := e.expr(n.Then)
		if d != nil {
			return "", d
		}
		truePath = `["some",` + then + `]`
	}
	falsePath := `["none"]`
	if n.HasElse() {
		falsePath, d = e.expr(n.Else)
		if d != nil {
			return "", d
		}
	}
	return "(" + cond + "?" + truePath + ":" + falsePath + ")", nil
}

// when lowers a when-expression to the right-associated ternary chain
// spec.md §4.3 describes: the scrutinee is printed once and that text
// re-embedded at every case (matching original_source's
// js_backend/src/expression/when.rs), terminating in the integer
// literal 0 once every case has been tried.
func (e *emitter) when(n typedast.WhenExpr) (string, *diag.Diagnostic) {
	scrutinee, d := e.expr(n.Scrutinee)
	if d != nil {
		return "", d
	}
	return e.whenCase(n.Cases, scrutinee, 0)
}

func (e *emitter) whenCase(cases []typedast.WhenCase, scrutinee string, index int) (string, *diag.Diagnostic) {
	if index >= len(cases) {
		return "0", nil
	}
	c := cases[index]

	var cond string
	if c.IsDefault {
		cond = "true"
	} else {
		cond = scrutinee + `[0]=="` + c.Tag + `"`
	}

	var bindings strings.Builder
	for i, arg := range c.Args {
		bindings.WriteString("let ")
		bindings.WriteString(e.mangle(arg))
		bindings.WriteString("=")
		bindings.WriteString(scrutinee)
		bindings.WriteString("[")
		bindings.WriteString(strconv.Itoa(i + 1))
		bindings.WriteString("];")
	}
	body, d := e.expr(c.Body)
	if d != nil {
		return "", d
	}
	rest, d := e.whenCase(cases, scrutinee, index+1)
	if d != nil {
		return "", d
	}
	return "(" + cond + "?(()=>{" + bindings.String() + "return " + body + "})()" + ":" + rest + ")", nil
}

func (e *emitter) function(n typedast.FunctionExpr) (string, *diag.Diagnostic) {
	names := make([]string, len(n.Params))
	for i, p := range n.Params {
		names[i] = e.mangle(p.Name)
	}
	body, d := e.expr(n.Body)
	if d != nil {
		return "", d
	}
	return "(" + strings.Join(names, ",") + ")=>(" + body + ")", nil
}

// block lowers a block body: a singleton block is its one expression
// with no wrapping; a multi-statement block becomes an immediately
// invoked arrow function whose final expression is returned.
func (e *emitter) block(n typedast.BlockExpr) (string, *diag.Diagnostic) {
	if len(n.Exprs) == 1 {
		return e.expr(n.Exprs[0])
	}
	var sb strings.Builder
	sb.WriteString("(()=>{")
	for i, inner := range n.Exprs {
		if i == len(n.Exprs)-1 {
			sb.WriteString("return ")
		}
		s, d := e.expr(inner)
		if d != nil {
			return "", d
		}
		sb.WriteString(s)
		sb.WriteByte(';')
	}
	sb.WriteString("})()")
	return sb.String(), nil
}

// blockLocalDecl lowers a ValueDecl that appears as a statement inside
// a block body (a sequential let-binding) rather than at document top
// level; see Generate in document.go for the top-level form.
func (e *emitter) blockLocalDecl(n typedast.ValueDecl) (string, *diag.Diagnostic) {
	value, d := e.expr(n.Value)
	if d != nil {
		return "", d
	}
	return "let " + e.mangle(n.Name) + "=" + value, nil
}
