package types

import (
	"testing"

	"github.com/corelang/corecheck/internal/core"
)

// Each test below walks one worked example end to end, covering the
// checker's externally observable behavior on a small complete term
// rather than one inference rule in isolation.

func TestScenarioIdentityGeneralizesOverOneVariable(t *testing.T) {
	c := NewContext()
	c.Reset()
	id := &core.Lambda{Param: "x", Body: vr("x")}
	ty, err := c.Infer(c.Env, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn, ok := c.resolve(ty).(*Fun)
	if !ok || len(fn.Params) != 1 {
		t.Fatalf("expected a one-argument function type, got %v", ty)
	}
	param, ok1 := fn.Params[0].(*Var)
	ret, ok2 := fn.Return.(*Var)
	if !ok1 || !ok2 || param.ID != ret.ID {
		t.Errorf("expected id : a -> a with a single shared variable, got %v", ty)
	}
}

func TestScenarioComposeThreeArgumentCurrying(t *testing.T) {
	c := NewContext()
	c.Reset()
	// \f. \g. \x. f(g(x))
	compose := &core.Lambda{
		Param: "f",
		Body: &core.Lambda{
			Param: "g",
			Body: &core.Lambda{
				Param: "x",
				Body: &core.App{
					Func: vr("f"),
					Args: []core.Expr{&core.App{Func: vr("g"), Args: []core.Expr{vr("x")}}},
				},
			},
		},
	}
	ty, err := c.Infer(c.Env, compose)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outer, ok := c.resolve(ty).(*Fun)
	if !ok || len(outer.Params) != 1 {
		t.Fatalf("expected compose to take f first, got %v", ty)
	}
	f, ok := outer.Params[0].(*Fun)
	if !ok || len(f.Params) != 1 {
		t.Fatalf("expected f : b -> c, got %v", outer.Params[0])
	}
	middle, ok := outer.Return.(*Fun)
	if !ok || len(middle.Params) != 1 {
		t.Fatalf("expected compose to return a function taking g, got %v", outer.Return)
	}
	g, ok := middle.Params[0].(*Fun)
	if !ok || len(g.Params) != 1 {
		t.Fatalf("expected g : a -> b, got %v", middle.Params[0])
	}
	inner, ok := middle.Return.(*Fun)
	if !ok || len(inner.Params) != 1 {
		t.Fatalf("expected compose to finally return a function taking x, got %v", middle.Return)
	}
	// a (inner.Params[0]) must equal g's domain, g's range must equal f's
	// domain, and the final result must equal f's range.
	a, ok1 := inner.Params[0].(*Var)
	gDom, ok2 := g.Params[0].(*Var)
	if !ok1 || !ok2 || a.ID != gDom.ID {
		t.Errorf("expected x's type to match g's domain, got %v vs %v", inner.Params[0], g.Params[0])
	}
	gRange, ok3 := g.Return.(*Var)
	fDom, ok4 := f.Params[0].(*Var)
	if !ok3 || !ok4 || gRange.ID != fDom.ID {
		t.Errorf("expected g's range to match f's domain, got %v vs %v", g.Return, f.Params[0])
	}
	fRange, ok5 := f.Return.(*Var)
	result, ok6 := inner.Return.(*Var)
	if !ok5 || !ok6 || fRange.ID != result.ID {
		t.Errorf("expected f's range to match the final result, got %v vs %v", f.Return, inner.Return)
	}
}

func TestScenarioMissingFieldHintListsBothSiblings(t *testing.T) {
	c := NewContext()
	c.Reset()
	rec := &core.RecordLit{
		FieldNames: []string{"x", "y"},
		FieldVals:  []core.Expr{lit(1), lit(2)},
	}
	access := &core.RecordAccess{Record: rec, Field: "z"}
	_, err := c.Infer(c.Env, access)
	if err == nil {
		t.Fatal("expected a missing-field error")
	}
	diag := err.(*Diagnostic)
	if diag.Code != MissingField {
		t.Fatalf("expected MissingField, got %v", diag.Code)
	}
	if diag.Hint != "did you mean: x, y?" {
		t.Errorf("expected a hint naming both sibling fields, got %q", diag.Hint)
	}
}

func TestScenarioMutualRecursionWithIntLiteralPatterns(t *testing.T) {
	mod := &core.Module{
		Decls: []core.Decl{
			&core.LetRecGroupDecl{
				Bindings: []core.RecBinding{
					{
						Name: "isEven",
						Value: &core.Lambda{
							Param: "n",
							Body: &core.Match{
								Scrutinee: vr("n"),
								Arms: []core.MatchArm{
									{Pattern: &core.LitPattern{Kind: core.IntLit, Value: int64(0)}, Body: &core.Lit{Kind: core.BoolLit, Value: true}},
									{
										Pattern: &core.VarPattern{Name: "m"},
										Body: &core.App{
											Func: vr("isOdd"),
											Args: []core.Expr{&core.BinOp{Op: "-", Left: vr("m"), Right: lit(1)}},
										},
									},
								},
							},
						},
					},
					{
						Name: "isOdd",
						Value: &core.Lambda{
							Param: "n",
							Body: &core.Match{
								Scrutinee: vr("n"),
								Arms: []core.MatchArm{
									{Pattern: &core.LitPattern{Kind: core.IntLit, Value: int64(0)}, Body: &core.Lit{Kind: core.BoolLit, Value: false}},
									{
										Pattern: &core.VarPattern{Name: "m"},
										Body: &core.App{
											Func: vr("isEven"),
											Args: []core.Expr{&core.BinOp{Op: "-", Left: vr("m"), Right: lit(1)}},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
	bindings, err := CheckModule(mod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, b := range bindings {
		fn, ok := b.Scheme.Body.(*Fun)
		if !ok || fn.Params[0] != Int || fn.Return != Bool {
			t.Errorf("expected %s : Int -> Bool, got %v", b.Name, b.Scheme.Body)
		}
	}
}

func TestScenarioRefAssignAndDerefMismatches(t *testing.T) {
	c := NewContext()
	c.Reset()

	// x : Ref<Int>, x := "hi" must fail.
	mkIntRef := &core.App{Func: vr("ref"), Args: []core.Expr{lit(1)}}
	badAssign := &core.BinOp{Op: ":=", Left: mkIntRef, Right: &core.Lit{Kind: core.StringLit, Value: "hi"}}
	if _, err := c.Infer(c.Env, badAssign); err == nil {
		t.Error("expected assigning a String into a Ref<Int> to fail")
	}

	// *5 must fail (Int is not a Ref<a>).
	c.Reset()
	derefNonRef := &core.UnOp{Op: "*", Operand: lit(5)}
	if _, err := c.Infer(c.Env, derefNonRef); err == nil {
		t.Error("expected dereferencing a non-Ref value to fail")
	}
}

func TestScenarioValueRestrictionOnRefOfNone(t *testing.T) {
	c := NewContext()
	c.Reset()

	// let z = ref(None) in { a: z := Some(1), b: z := Some(true) }
	// Without the value restriction z would generalize to forall a. Ref<Option<a>>,
	// letting both uses through; with it, z is monomorphic and the second use must fail.
	mkRef := &core.App{Func: vr("ref"), Args: []core.Expr{&core.VariantConstruct{Constructor: "None"}}}
	firstUse := &core.BinOp{
		Op:   ":=",
		Left: vr("z"),
		Right: &core.VariantConstruct{Constructor: "Some", Args: []core.Expr{lit(1)}},
	}
	secondUse := &core.BinOp{
		Op:   ":=",
		Left: vr("z"),
		Right: &core.VariantConstruct{Constructor: "Some", Args: []core.Expr{&core.Lit{Kind: core.BoolLit, Value: true}}},
	}
	body := &core.RecordLit{FieldNames: []string{"a", "b"}, FieldVals: []core.Expr{firstUse, secondUse}}
	let := &core.Let{Name: "z", Value: mkRef, Body: body}

	_, err := c.Infer(c.Env, let)
	if err == nil {
		t.Fatal("expected the value restriction to keep z monomorphic, so the second use at a different type fails")
	}
}
