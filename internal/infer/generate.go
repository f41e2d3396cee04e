// Package infer implements buric's two-pass Hindley-Milner-style type
// inferencer: Pass A (this file) walks the parsed document bottom-up
// allocating a types.TypeID per expression and attaching the
// constraints that encode its type rule; Pass B (resolve.go) merges
// every TypeID's constraints into a types.ConcreteType.
package infer

import (
	"github.com/burilang/buric/internal/ast"
	"github.com/burilang/buric/internal/diag"
	"github.com/burilang/buric/internal/types"
)

// GenerateDocument runs Pass A over doc, populating schema with every
// TypeID, constraint, import, and type declaration the document
// implies, and annotating each ast.Expression node in place with its
// allocated TypeID (ast.Expression.SetTypeID).
func GenerateDocument(schema *types.TypeSchema, doc *ast.Document) *diag.Diagnostic {
	for _, imp := range doc.Imports {
		for _, ident := range imp.Identifiers {
			if ident.IsType {
				schema.DeclareType(ident.Name, types.ConcreteOpaque{Name: ident.Name})
				continue
			}
			id := schema.RegisterImport(ident.Name)
			schema.Scope.Declare(ident.Name, id)
		}
	}

	if d := generateTypeDecls(schema, doc.TypeDecls); d != nil {
		return d
	}

	for _, vd := range doc.Values {
		if _, d := genValueDecl(schema, vd); d != nil {
			return d
		}
	}
	return nil
}

// generateTypeDecls resolves every top-level type declaration into a
// ConcreteType, retrying declarations that forward-reference a type
// declared later in the file until a fixpoint is reached.
func generateTypeDecls(schema *types.TypeSchema, decls []*ast.TypeDecl) *diag.Diagnostic {
	remaining := decls
	for len(remaining) > 0 {
		var next []*ast.TypeDecl
		progressed := false
		for _, td := range remaining {
			if ct, ok := evalTypeExpr(schema, td.Type); ok {
				schema.DeclareType(td.Name, ct)
				progressed = true
			} else {
				next = append(next, td)
			}
		}
		if !progressed {
			first := next[0]
			return diag.New(diag.Type, first.Span().Pos(), "cannot infer: undefined or circular type reference in declaration of "+first.Name)
		}
		remaining = next
	}
	return nil
}

// genValueDecl generates constraints for a declaration's value
// expression, applies its annotation if present, binds its name in
// scope, and records the resulting TypeID on the node itself.
func genValueDecl(schema *types.TypeSchema, vd *ast.ValueDecl) (types.TypeID, *diag.Diagnostic) {
	valueID, d := genExpr(schema, vd.Value)
	if d != nil {
		return 0, d
	}
	if vd.Annotation != nil {
		ct, ok := evalTypeExpr(schema, vd.Annotation)
		if !ok {
			return 0, diag.New(diag.Type, vd.Annotation.Span().Pos(), "undefined type in annotation")
		}
		schema.Insert(valueID, types.EqualToConcrete{Type: ct})
	}
	vd.SetTypeID(valueID)
	schema.Scope.Declare(vd.Name, valueID)
	return valueID, nil
}

// genExpr generates constraints for one expression node, annotating it
// with its allocated TypeID, and returns that TypeID.
func genExpr(schema *types.TypeSchema, expr ast.Expression) (types.TypeID, *diag.Diagnostic) {
	switch e := expr.(type) {
	case *ast.IntegerExpr:
		return withPrimitive(schema, e, types.Num), nil
	case *ast.StringExpr:
		return withPrimitive(schema, e, types.Str), nil
	case *ast.BooleanExpr:
		return withPrimitive(schema, e, types.CompilerBoolean), nil

	case *ast.IdentifierExpr:
		id, ok := schema.Scope.Lookup(e.Name)
		if !ok {
			return 0, diag.New(diag.Type, e.Span().Pos(), "cannot infer: undefined identifier "+e.Name)
		}
		e.SetTypeID(id)
		return id, nil

	case *ast.ListExpr:
		return genList(schema, e)

	case *ast.RecordExpr:
		return genRecord(schema, e)

	case *ast.RecordUpdateExpr:
		return genRecordUpdate(schema, e)

	case *ast.TagExpr:
		return genTag(schema, e)

	case *ast.UnaryOpExpr:
		return genUnaryOp(schema, e)

	case *ast.BinaryOpExpr:
		return genBinaryOp(schema, e)

	case *ast.IfExpr:
		return genIf(schema, e)

	case *ast.WhenExpr:
		return genWhen(schema, e)

	case *ast.FunctionExpr:
		return genFunction(schema, e)

	case *ast.BlockExpr:
		return genBlock(schema, e)

	case *ast.ValueDecl:
		id, d := genValueDecl(schema, e)
		return id, d

	default:
		id := schema.MakeID()
		expr.SetTypeID(id)
		return id, nil
	}
}

func withPrimitive(schema *types.TypeSchema, expr ast.Expression, kind types.PrimitiveKind) types.TypeID {
	id := schema.MakeID()
	schema.Insert(id, types.EqualToPrimitive{Primitive: kind})
	expr.SetTypeID(id)
	return id
}

func genList(schema *types.TypeSchema, e *ast.ListExpr) (types.TypeID, *diag.Diagnostic) {
	elemID := schema.MakeID()
	for _, item := range e.Items {
		itemID, d := genExpr(schema, item)
		if d != nil {
			return 0, d
		}
		schema.Insert(itemID, types.EqualToType{Other: elemID})
	}
	id := schema.MakeID()
	schema.Insert(id, types.ListOfType{Element: elemID})
	e.SetTypeID(id)
	return id, nil
}

func genRecord(schema *types.TypeSchema, e *ast.RecordExpr) (types.TypeID, *diag.Diagnostic) {
	fields := make(map[string]types.TypeID, len(e.Fields))
	for _, f := range e.Fields {
		fid, d := genExpr(schema, f.Value)
		if d != nil {
			return 0, d
		}
		fields[f.Name] = fid
	}
	id := schema.MakeID()
	schema.Insert(id, types.HasExactFields{Fields: fields})
	e.SetTypeID(id)
	return id, nil
}

func genRecordUpdate(schema *types.TypeSchema, e *ast.RecordUpdateExpr) (types.TypeID, *diag.Diagnostic) {
	targetID, ok := schema.Scope.Lookup(e.Target)
	if !ok {
		return 0, diag.New(diag.Type, e.Span().Pos(), "cannot infer: undefined identifier "+e.Target)
	}
	for _, f := range e.Fields {
		fid, d := genExpr(schema, f.Value)
		if d != nil {
			return 0, d
		}
		schema.Insert(targetID, types.HasField{Name: f.Name, Type: fid})
	}
	id := schema.MakeID()
	schema.Insert(id, types.EqualToType{Other: targetID})
	e.SetTypeID(id)
	return id, nil
}

func genTag(schema *types.TypeSchema, e *ast.TagExpr) (types.TypeID, *diag.Diagnostic) {
	payload := make([]types.TypeID, 0, len(e.Payload))
	for _, p := range e.Payload {
		pid, d := genExpr(schema, p)
		if d != nil {
			return 0, d
		}
		payload = append(payload, pid)
	}
	id := schema.MakeID()
	schema.Insert(id, types.HasTag{Name: e.Name, Payload: payload})
	e.SetTypeID(id)
	return id, nil
}

func genUnaryOp(schema *types.TypeSchema, e *ast.UnaryOpExpr) (types.TypeID, *diag.Diagnostic) {
	operandID, d := genExpr(schema, e.Operand)
	if d != nil {
		return 0, d
	}
	kind := types.Num
	if e.Op == ast.Not {
		kind = types.CompilerBoolean
	}
	schema.Insert(operandID, types.EqualToPrimitive{Primitive: kind})
	id := schema.MakeID()
	schema.Insert(id, types.EqualToPrimitive{Primitive: kind})
	e.SetTypeID(id)
	return id, nil
}

func genBinaryOp(schema *types.TypeSchema, e *ast.BinaryOpExpr) (types.TypeID, *diag.Diagnostic) {
	leftID, d := genExpr(schema, e.Left)
	if d != nil {
		return 0, d
	}
	rightID, d := genExpr(schema, e.Right)
	if d != nil {
		return 0, d
	}
	id := schema.MakeID()
	switch e.Operator {
	case "+", "-", "*", "/":
		schema.Insert(leftID, types.EqualToPrimitive{Primitive: types.Num})
		schema.Insert(rightID, types.EqualToPrimitive{Primitive: types.Num})
		schema.Insert(id, types.EqualToPrimitive{Primitive: types.Num})
	case "<", "<=", ">", ">=":
		schema.Insert(leftID, types.EqualToPrimitive{Primitive: types.Num})
		schema.Insert(rightID, types.EqualToPrimitive{Primitive: types.Num})
		schema.Insert(id, types.EqualToPrimitive{Primitive: types.CompilerBoolean})
	case "==", "!=":
		schema.Insert(leftID, types.EqualToType{Other: rightID})
		schema.Insert(id, types.EqualToPrimitive{Primitive: types.CompilerBoolean})
	case "and", "or":
		schema.Insert(leftID, types.EqualToPrimitive{Primitive: types.CompilerBoolean})
		schema.Insert(rightID, types.EqualToPrimitive{Primitive: types.CompilerBoolean})
		schema.Insert(id, types.EqualToPrimitive{Primitive: types.CompilerBoolean})
	}
	e.SetTypeID(id)
	return id, nil
}

func genIf(schema *types.TypeSchema, e *ast.IfExpr) (types.TypeID, *diag.Diagnostic) {
	condID, d := genExpr(schema, e.Condition)
	if d != nil {
		return 0, d
	}
	schema.Insert(condID, types.EqualToPrimitive{Primitive: types.CompilerBoolean})

	thenID, d := genExpr(schema, e.Then)
	if d != nil {
		return 0, d
	}

	id := schema.MakeID()
	if e.Else != nil {
		elseID, d := genExpr(schema, e.Else)
		if d != nil {
			return 0, d
		}
		schema.Insert(thenID, types.EqualToType{Other: elseID})
		schema.Insert(id, types.EqualToType{Other: thenID})
	} else {
		schema.Insert(id, types.TagAtMost{Tags: map[string][]types.TypeID{
			"some": {thenID},
			"none": {},
		}})
	}
	e.SetTypeID(id)
	return id, nil
}

func genWhen(schema *types.TypeSchema, e *ast.WhenExpr) (types.TypeID, *diag.Diagnostic) {
	scrutineeID, d := genExpr(schema, e.Scrutinee)
	if d != nil {
		return 0, d
	}

	var bodyIDs []types.TypeID
	for i := range e.Cases {
		c := &e.Cases[i]
		schema.PushScope()
		var argIDs []types.TypeID
		for _, argName := range c.Args {
			argID := schema.MakeID()
			schema.Scope.Declare(argName, argID)
			argIDs = append(argIDs, argID)
		}
		if !c.IsDefault {
			schema.Insert(scrutineeID, types.HasTag{Name: c.Tag, Payload: argIDs})
		}
		bodyID, d := genExpr(schema, c.Body)
		schema.PopScope()
		if d != nil {
			return 0, d
		}
		bodyIDs = append(bodyIDs, bodyID)
	}

	id := schema.MakeID()
	if len(bodyIDs) > 0 {
		schema.Insert(id, types.EqualToType{Other: bodyIDs[0]})
		for _, bid := range bodyIDs[1:] {
			schema.Insert(bid, types.EqualToType{Other: bodyIDs[0]})
		}
	}
	e.SetTypeID(id)
	return id, nil
}

func genFunction(schema *types.TypeSchema, e *ast.FunctionExpr) (types.TypeID, *diag.Diagnostic) {
	schema.PushScope()
	paramIDs := make([]types.TypeID, 0, len(e.Params))
	for i := range e.Params {
		param := &e.Params[i]
		paramID := schema.MakeID()
		if param.Annotation != nil {
			ct, ok := evalTypeExpr(schema, param.Annotation)
			if !ok {
				schema.PopScope()
				return 0, diag.New(diag.Type, param.Annotation.Span().Pos(), "undefined type in parameter annotation")
			}
			schema.Insert(paramID, types.EqualToConcrete{Type: ct})
		}
		schema.Scope.Declare(param.Name, paramID)
		paramIDs = append(paramIDs, paramID)
	}
	bodyID, d := genExpr(schema, e.Body)
	schema.PopScope()
	if d != nil {
		return 0, d
	}
	id := schema.MakeID()
	schema.Insert(id, types.HasFunctionShape{Args: paramIDs, Return: bodyID})
	e.SetTypeID(id)
	return id, nil
}

func genBlock(schema *types.TypeSchema, e *ast.BlockExpr) (types.TypeID, *diag.Diagnostic) {
	schema.PushScope()
	var lastID types.TypeID
	for _, inner := range e.Exprs {
		id, d := genExpr(schema, inner)
		if d != nil {
			schema.PopScope()
			return 0, d
		}
		lastID = id
	}
	schema.PopScope()
	id := schema.MakeID()
	schema.Insert(id, types.EqualToType{Other: lastID})
	e.SetTypeID(id)
	return id, nil
}
