package codegen

import (
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/burilang/buric/internal/ast"
	"github.com/burilang/buric/internal/typedast"
	"github.com/burilang/buric/internal/types"
)

// TestGenerate_FullModuleSnapshots renders complete, multi-declaration
// modules the way a real compiled document would and pins the emitted
// JS text with go-snaps, the way the teacher pins interpreter output.
func TestGenerate_FullModuleSnapshots(t *testing.T) {
	t.Run("when over a tag union inside a function", func(t *testing.T) {
		scrutinee := ast.NewIdentifierExpr(sp("opt"), "opt")
		someBody := ast.NewIdentifierExpr(sp("n"), "n")
		noneBody := ast.NewIntegerExpr(sp("0"), 0)
		when := ast.NewWhenExpr(sp("when opt { #some n => n, #none => 0 }"), scrutinee, []ast.WhenCase{
			{Tag: "some", Args: []string{"n"}, Body: someBody},
			{Tag: "none", IsDefault: false, Body: noneBody},
		})
		fn := ast.NewFunctionExpr(sp("(opt) => when ..."), []ast.Param{{Name: "opt"}}, when)

		optionType := types.OptionTag(numT())
		fnType := types.ConcreteFunction{Args: []types.ConcreteType{optionType}, Return: numT()}
		resolved := map[types.TypeID]types.ConcreteType{
			scrutinee.TypeID(): optionType,
			someBody.TypeID():  numT(),
			noneBody.TypeID():  numT(),
		}
		js := generateValue(t, fn, resolved, fnType)
		snaps.MatchSnapshot(t, js)
	})

	t.Run("record with a nested list field", func(t *testing.T) {
		one := ast.NewIntegerExpr(sp("1"), 1)
		two := ast.NewIntegerExpr(sp("2"), 2)
		list := ast.NewListExpr(sp("[1, 2]"), []ast.Expression{one, two})
		field := ast.RecordField{Name: "items", Value: list}
		record := ast.NewRecordExpr(sp(`{items: [1, 2]}`), []ast.RecordField{field})

		listType := types.ConcreteList{Element: numT()}
		recordType := types.ConcreteRecord{Fields: map[string]types.ConcreteType{"items": listType}}
		resolved := map[types.TypeID]types.ConcreteType{
			one.TypeID():  numT(),
			two.TypeID():  numT(),
			list.TypeID(): listType,
		}
		js := generateValue(t, record, resolved, recordType)
		snaps.MatchSnapshot(t, js)
	})
}

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}
