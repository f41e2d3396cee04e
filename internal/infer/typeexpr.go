package infer

import (
	"github.com/burilang/buric/internal/ast"
	"github.com/burilang/buric/internal/types"
)

// evalTypeExpr evaluates a type expression into a ConcreteType
// directly, with no inference step: type syntax names its shape
// outright. A TypeIdentifierExpr naming a not-yet-registered user type
// returns ok=false, letting the caller retry once more type
// declarations have resolved (see generate.go's fixpoint loop over
// document.TypeDecls).
func evalTypeExpr(schema *types.TypeSchema, texpr ast.TypeExpr) (types.ConcreteType, bool) {
	switch t := texpr.(type) {
	case *ast.TypeIdentifierExpr:
		switch t.Name {
		case "Num":
			return types.ConcretePrimitive{Kind: types.Num}, true
		case "Str":
			return types.ConcretePrimitive{Kind: types.Str}, true
		case "Bool":
			return types.ConcretePrimitive{Kind: types.CompilerBoolean}, true
		default:
			ct, ok := schema.TypeDecls[t.Name]
			return ct, ok
		}
	case *ast.ListTypeExpr:
		elem, ok := evalTypeExpr(schema, t.Element)
		if !ok {
			return nil, false
		}
		return types.ConcreteList{Element: elem}, true
	case *ast.RecordTypeExpr:
		fields := make(map[string]types.ConcreteType, len(t.Fields))
		for _, f := range t.Fields {
			ct, ok := evalTypeExpr(schema, f.Type)
			if !ok {
				return nil, false
			}
			fields[f.Name] = ct
		}
		return types.ConcreteRecord{Fields: fields}, true
	case *ast.TagTypeExpr:
		tags := make(map[string][]types.ConcreteType, len(t.Variants))
		hasContent := false
		for _, v := range t.Variants {
			payload := make([]types.ConcreteType, 0, len(v.Payload))
			for _, p := range v.Payload {
				ct, ok := evalTypeExpr(schema, p)
				if !ok {
					return nil, false
				}
				payload = append(payload, ct)
			}
			if len(payload) > 0 {
				hasContent = true
			}
			tags[v.Name] = payload
		}
		return types.ConcreteTagUnion{Tags: tags, SomeTagsHaveContent: hasContent}, true
	case *ast.FunctionTypeExpr:
		args := make([]types.ConcreteType, 0, len(t.Args))
		for _, a := range t.Args {
			ct, ok := evalTypeExpr(schema, a)
			if !ok {
				return nil, false
			}
			args = append(args, ct)
		}
		ret, ok := evalTypeExpr(schema, t.Return)
		if !ok {
			return nil, false
		}
		return types.ConcreteFunction{Args: args, Return: ret}, true
	default:
		return nil, false
	}
}
