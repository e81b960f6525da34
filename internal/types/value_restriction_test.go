package types

import (
	"testing"

	"github.com/corelang/corecheck/internal/core"
)

func TestIsSyntacticValueLiteralsAndVars(t *testing.T) {
	if !isSyntacticValue(&core.Lit{Kind: core.IntLit, Value: int64(1)}) {
		t.Error("expected a literal to be a syntactic value")
	}
	if !isSyntacticValue(&core.Var{Name: "x"}) {
		t.Error("expected a variable reference to be a syntactic value")
	}
	if !isSyntacticValue(&core.Lambda{Param: "x", Body: &core.Var{Name: "x"}}) {
		t.Error("expected a lambda to be a syntactic value")
	}
}

func TestIsSyntacticValueApplicationIsNot(t *testing.T) {
	app := &core.App{Func: &core.Var{Name: "f"}, Args: []core.Expr{&core.Var{Name: "x"}}}
	if isSyntacticValue(app) {
		t.Error("expected a function application to fail the value restriction")
	}
}

func TestIsSyntacticValueVariantDependsOnArgs(t *testing.T) {
	allValues := &core.VariantConstruct{Constructor: "Some", Args: []core.Expr{&core.Lit{Kind: core.IntLit, Value: int64(1)}}}
	if !isSyntacticValue(allValues) {
		t.Error("expected a variant applied to values to be a syntactic value")
	}

	app := &core.App{Func: &core.Var{Name: "f"}, Args: nil}
	withApp := &core.VariantConstruct{Constructor: "Some", Args: []core.Expr{app}}
	if isSyntacticValue(withApp) {
		t.Error("expected a variant applied to a non-value to fail the value restriction")
	}
}

func TestIsSyntacticValueRecordDependsOnFields(t *testing.T) {
	rec := &core.RecordLit{FieldNames: []string{"x"}, FieldVals: []core.Expr{&core.Var{Name: "y"}}}
	if !isSyntacticValue(rec) {
		t.Error("expected a record of values to be a syntactic value")
	}

	app := &core.App{Func: &core.Var{Name: "f"}, Args: nil}
	recWithApp := &core.RecordLit{FieldNames: []string{"x"}, FieldVals: []core.Expr{app}}
	if isSyntacticValue(recWithApp) {
		t.Error("expected a record containing a non-value field to fail the value restriction")
	}
}

func TestIsSyntacticValueRecursesThroughAnnotAndUnsafe(t *testing.T) {
	annot := &core.TypeAnnot{Expr: &core.Var{Name: "x"}, Type: &core.TypeConstExpr{Name: "Int"}}
	if !isSyntacticValue(annot) {
		t.Error("expected an annotation wrapping a value to be a syntactic value")
	}
	unsafe := &core.Unsafe{Expr: &core.Lit{Kind: core.IntLit, Value: int64(1)}}
	if !isSyntacticValue(unsafe) {
		t.Error("expected an unsafe wrapper around a value to be a syntactic value")
	}

	app := &core.App{Func: &core.Var{Name: "f"}, Args: nil}
	annotApp := &core.TypeAnnot{Expr: app, Type: &core.TypeConstExpr{Name: "Int"}}
	if isSyntacticValue(annotApp) {
		t.Error("expected an annotation wrapping a non-value to fail the value restriction")
	}
}

func TestIsSyntacticValueMatchIsNot(t *testing.T) {
	m := &core.Match{Scrutinee: &core.Var{Name: "x"}, Arms: nil}
	if isSyntacticValue(m) {
		t.Error("expected a match expression to fail the value restriction")
	}
}
