package types

import (
	"testing"

	"github.com/corelang/corecheck/internal/core"
)

func lit(i int64) core.Expr { return &core.Lit{Kind: core.IntLit, Value: i} }
func vr(name string) core.Expr { return &core.Var{Name: name} }

func TestInferLiteralsAndVar(t *testing.T) {
	c := NewContext()
	c.Reset()
	ty, err := c.Infer(c.Env, lit(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty != Int {
		t.Errorf("expected Int, got %v", ty)
	}

	_, err = c.Infer(c.Env, &core.Var{Name: "nope"})
	if err == nil {
		t.Fatal("expected undefined variable error")
	}
	if err.(*Diagnostic).Code != UndefinedVariable {
		t.Errorf("expected UndefinedVariable, got %v", err.(*Diagnostic).Code)
	}
}

func TestInferLambdaAndApp(t *testing.T) {
	c := NewContext()
	c.Reset()
	id := &core.Lambda{Param: "x", Body: vr("x")}
	app := &core.App{Func: id, Args: []core.Expr{lit(1)}}

	ty, err := c.Infer(c.Env, app)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.resolve(ty) != Int {
		t.Errorf("expected applying identity to 1 to yield Int, got %v", ty)
	}
}

func TestInferLetPolymorphism(t *testing.T) {
	c := NewContext()
	c.Reset()

	// let id = \x. x in (id(1), id(true))
	idLambda := &core.Lambda{Param: "x", Body: vr("x")}
	body := &core.RecordLit{
		FieldNames: []string{"a", "b"},
		FieldVals: []core.Expr{
			&core.App{Func: vr("id"), Args: []core.Expr{lit(1)}},
			&core.App{Func: vr("id"), Args: []core.Expr{&core.Lit{Kind: core.BoolLit, Value: true}}},
		},
	}
	let := &core.Let{Name: "id", Value: idLambda, Body: body}

	ty, err := c.Infer(c.Env, let)
	if err != nil {
		t.Fatalf("expected let-polymorphism to allow id to be used at both Int and Bool, got %v", err)
	}
	rec := c.resolve(ty).(*Record)
	if rec.Fields["a"] != Int {
		t.Errorf("expected field a : Int, got %v", rec.Fields["a"])
	}
	if rec.Fields["b"] != Bool {
		t.Errorf("expected field b : Bool, got %v", rec.Fields["b"])
	}
}

func TestInferValueRestrictionBindsMonomorphically(t *testing.T) {
	c := NewContext()
	c.Reset()

	// let f = (\x. x)(\y. y) in (f(1), f(true)) -- f's RHS is an
	// application, not a syntactic value, so f must bind monomorphically:
	// using it at two different types should fail.
	notAValue := &core.App{
		Func: &core.Lambda{Param: "x", Body: vr("x")},
		Args: []core.Expr{&core.Lambda{Param: "y", Body: vr("y")}},
	}
	body := &core.RecordLit{
		FieldNames: []string{"a", "b"},
		FieldVals: []core.Expr{
			&core.App{Func: vr("f"), Args: []core.Expr{lit(1)}},
			&core.App{Func: vr("f"), Args: []core.Expr{&core.Lit{Kind: core.BoolLit, Value: true}}},
		},
	}
	let := &core.Let{Name: "f", Value: notAValue, Body: body}

	_, err := c.Infer(c.Env, let)
	if err == nil {
		t.Fatal("expected the value restriction to prevent f from generalizing, causing a mismatch")
	}
}

func TestInferLetRecSelfReference(t *testing.T) {
	c := NewContext()
	c.Reset()

	// let rec loop = \x. loop(x) in loop
	loop := &core.LetRec{
		Name:  "loop",
		Value: &core.Lambda{Param: "x", Body: &core.App{Func: vr("loop"), Args: []core.Expr{vr("x")}}},
		Body:  vr("loop"),
	}
	ty, err := c.Infer(c.Env, loop)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := c.resolve(ty).(*Fun); !ok {
		t.Errorf("expected a function type for loop, got %v", ty)
	}
}

func TestInferOccursCheckFails(t *testing.T) {
	c := NewContext()
	c.Reset()

	// \x. x(x)
	selfApp := &core.Lambda{Param: "x", Body: &core.App{Func: vr("x"), Args: []core.Expr{vr("x")}}}
	_, err := c.Infer(c.Env, selfApp)
	if err == nil {
		t.Fatal("expected x(x) to fail the occurs check")
	}
	if err.(*Diagnostic).Code != InfiniteType {
		t.Errorf("expected InfiniteType, got %v", err.(*Diagnostic).Code)
	}
}

func TestInferRecordAccessAndMissingField(t *testing.T) {
	c := NewContext()
	c.Reset()

	rec := &core.RecordLit{FieldNames: []string{"name"}, FieldVals: []core.Expr{&core.Lit{Kind: core.StringLit, Value: "a"}}}
	access := &core.RecordAccess{Record: rec, Field: "name"}
	ty, err := c.Infer(c.Env, access)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty != String {
		t.Errorf("expected String, got %v", ty)
	}

	missing := &core.RecordAccess{Record: rec, Field: "nam"}
	_, err = c.Infer(c.Env, missing)
	if err == nil {
		t.Fatal("expected missing field error")
	}
	diag := err.(*Diagnostic)
	if diag.Code != MissingField || diag.Hint == "" {
		t.Errorf("expected MissingField with a suggestion hint, got %+v", diag)
	}
}

func TestInferRecordUpdate(t *testing.T) {
	c := NewContext()
	c.Reset()

	rec := &core.RecordLit{
		FieldNames: []string{"x", "y"},
		FieldVals:  []core.Expr{lit(1), lit(2)},
	}
	update := &core.RecordUpdate{Record: rec, FieldNames: []string{"x"}, FieldVals: []core.Expr{lit(9)}}
	ty, err := c.Infer(c.Env, update)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := ty.(*Record)
	if out.Fields["x"] != Int || out.Fields["y"] != Int {
		t.Errorf("unexpected record update result: %v", out)
	}
}

func TestInferVariantConstructArityAndType(t *testing.T) {
	c := NewContext()
	c.Reset()

	some := &core.VariantConstruct{Constructor: "Some", Args: []core.Expr{lit(1)}}
	ty, err := c.Infer(c.Env, some)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	app := c.resolve(ty).(*App)
	if app.Name != "Option" || app.Args[0] != Int {
		t.Errorf("expected Option<Int>, got %v", ty)
	}

	badArity := &core.VariantConstruct{Constructor: "Some", Args: []core.Expr{lit(1), lit(2)}}
	_, err = c.Infer(c.Env, badArity)
	if err == nil || err.(*Diagnostic).Code != ConstructorArity {
		t.Errorf("expected ConstructorArity, got %v", err)
	}
}

func TestInferMatchExhaustivenessPropagates(t *testing.T) {
	c := NewContext()
	c.Reset()

	scrutinee := &core.VariantConstruct{Constructor: "None"}
	match := &core.Match{
		Scrutinee: scrutinee,
		Arms: []core.MatchArm{
			{Pattern: &core.VariantPattern{Constructor: "Some", Args: []core.Pattern{&core.VarPattern{Name: "x"}}}, Body: vr("x")},
		},
	}
	_, err := c.Infer(c.Env, match)
	if err == nil || err.(*Diagnostic).Code != NonExhaustiveMatch {
		t.Errorf("expected NonExhaustiveMatch (None not covered), got %v", err)
	}
}

func TestInferMatchUnifiesArmResults(t *testing.T) {
	c := NewContext()
	c.Reset()

	scrutinee := &core.VariantConstruct{Constructor: "Some", Args: []core.Expr{lit(1)}}
	match := &core.Match{
		Scrutinee: scrutinee,
		Arms: []core.MatchArm{
			{Pattern: &core.VariantPattern{Constructor: "Some", Args: []core.Pattern{&core.VarPattern{Name: "x"}}}, Body: vr("x")},
			{Pattern: &core.VariantPattern{Constructor: "None"}, Body: lit(0)},
		},
	}
	ty, err := c.Infer(c.Env, match)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.resolve(ty) != Int {
		t.Errorf("expected Int, got %v", ty)
	}
}

func TestInferMatchGuardMustBeBool(t *testing.T) {
	c := NewContext()
	c.Reset()

	scrutinee := &core.VariantConstruct{Constructor: "Some", Args: []core.Expr{lit(1)}}
	match := &core.Match{
		Scrutinee: scrutinee,
		Arms: []core.MatchArm{
			{
				Pattern: &core.VariantPattern{Constructor: "Some", Args: []core.Pattern{&core.VarPattern{Name: "x"}}},
				Guard:   lit(1),
				Body:    vr("x"),
			},
			{Pattern: &core.VariantPattern{Constructor: "None"}, Body: lit(0)},
			{Pattern: &core.WildcardPattern{}, Body: lit(0)},
		},
	}
	_, err := c.Infer(c.Env, match)
	if err == nil || err.(*Diagnostic).Code != InvalidGuard {
		t.Errorf("expected InvalidGuard, got %v", err)
	}
}

func TestInferBinOpArithmeticFixedToInt(t *testing.T) {
	c := NewContext()
	c.Reset()
	add := &core.BinOp{Op: "+", Left: lit(1), Right: lit(2)}
	ty, err := c.Infer(c.Env, add)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty != Int {
		t.Errorf("expected Int, got %v", ty)
	}

	mismatch := &core.BinOp{Op: "+", Left: lit(1), Right: &core.Lit{Kind: core.BoolLit, Value: true}}
	if _, err := c.Infer(c.Env, mismatch); err == nil {
		t.Error("expected a Bool right operand of + to fail")
	}
}

func TestInferEqualityIsPolymorphic(t *testing.T) {
	c := NewContext()
	c.Reset()

	boolEq := &core.BinOp{Op: "==", Left: &core.Lit{Kind: core.BoolLit, Value: true}, Right: &core.Lit{Kind: core.BoolLit, Value: false}}
	ty, err := c.Infer(c.Env, boolEq)
	if err != nil {
		t.Fatalf("unexpected error comparing two Bools: %v", err)
	}
	if ty != Bool {
		t.Errorf("expected Bool, got %v", ty)
	}

	c.Reset()
	strNeq := &core.BinOp{Op: "!=", Left: &core.Lit{Kind: core.StringLit, Value: "a"}, Right: &core.Lit{Kind: core.StringLit, Value: "b"}}
	ty, err = c.Infer(c.Env, strNeq)
	if err != nil {
		t.Fatalf("unexpected error comparing two Strings: %v", err)
	}
	if ty != Bool {
		t.Errorf("expected Bool, got %v", ty)
	}

	c.Reset()
	mismatch := &core.BinOp{Op: "==", Left: lit(1), Right: &core.Lit{Kind: core.BoolLit, Value: true}}
	if _, err := c.Infer(c.Env, mismatch); err == nil {
		t.Error("expected comparing an Int to a Bool to fail")
	}
}

func TestInferRefAssignAndDeref(t *testing.T) {
	c := NewContext()
	c.Reset()

	// (ref(1)) := 2
	mkRef := &core.App{Func: vr("ref"), Args: []core.Expr{lit(1)}}
	assign := &core.BinOp{Op: ":=", Left: mkRef, Right: lit(2)}
	ty, err := c.Infer(c.Env, assign)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty != Unit {
		t.Errorf("expected Unit from an assignment, got %v", ty)
	}

	deref := &core.UnOp{Op: "*", Operand: &core.App{Func: vr("ref"), Args: []core.Expr{lit(5)}}}
	ty, err = c.Infer(c.Env, deref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.resolve(ty) != Int {
		t.Errorf("expected Int from dereferencing Ref<Int>, got %v", ty)
	}
}

func TestInferAnnotationUnifiesWithExpr(t *testing.T) {
	c := NewContext()
	c.Reset()
	annot := &core.TypeAnnot{Expr: lit(1), Type: &core.TypeConstExpr{Name: "Int"}}
	ty, err := c.Infer(c.Env, annot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty != Int {
		t.Errorf("expected Int, got %v", ty)
	}

	bad := &core.TypeAnnot{Expr: lit(1), Type: &core.TypeConstExpr{Name: "Bool"}}
	if _, err := c.Infer(c.Env, bad); err == nil {
		t.Error("expected mismatched annotation to fail")
	}
}
