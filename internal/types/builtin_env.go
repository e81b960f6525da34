package types

import "sort"

func sortStrings(s []string) { sort.Strings(s) }

// NewBuiltinEnv constructs the checker's initial environment: the three
// built-in algebraic types in the type namespace, their six constructors,
// 46 standard-library function schemes, and the two specials panic and
// ref, for a fixed total of 54
// value bindings (see builtin_env_test.go, which asserts this count and
// the presence of every name below).
//
// Standard-library names are qualified by the type they operate over
// (List.map, Option.map, Result.map, ...) rather than left bare, since
// the value namespace is flat and several operations share a bare name
// across List/Option/Result/String.
func NewBuiltinEnv() *Env {
	env := NewEnv()

	listType, optionType, resultType := builtinAlgebraicTypes()
	env = env.ExtendType(listType)
	env = env.ExtendType(optionType)
	env = env.ExtendType(resultType)

	for name, scheme := range constructorSchemes(listType, optionType, resultType) {
		env = env.ExtendValue(name, scheme)
	}
	for name, scheme := range stdlibSchemes() {
		env = env.ExtendValue(name, scheme)
	}
	for name, scheme := range specialSchemes() {
		env = env.ExtendValue(name, scheme)
	}
	return env
}

// BuiltinBindingNames returns the name of every value binding
// NewBuiltinEnv populates, sorted — used by internal/builtins to check
// its embedded manifest against this table for drift.
func BuiltinBindingNames() []string {
	env := NewBuiltinEnv()
	names := env.ValueNames()
	sortStrings(names)
	return names
}

func builtinAlgebraicTypes() (list, option, result *Variant) {
	list = &Variant{
		NominalName: "List",
		CtorOrder:   []string{"Cons", "Nil"},
		Constructors: map[string][]Type{
			"Cons": {&Var{ID: -1}, &App{Name: "List", Args: []Type{&Var{ID: -1}}}},
			"Nil":  {},
		},
	}
	option = &Variant{
		NominalName: "Option",
		CtorOrder:   []string{"Some", "None"},
		Constructors: map[string][]Type{
			"Some": {&Var{ID: -2}},
			"None": {},
		},
	}
	result = &Variant{
		NominalName: "Result",
		CtorOrder:   []string{"Ok", "Err"},
		Constructors: map[string][]Type{
			"Ok":  {&Var{ID: -3}},
			"Err": {&Var{ID: -4}},
		},
	}
	return
}

// constructorSchemes returns the six constructor bindings, each
// polymorphic in its algebraic type's parameters.
func constructorSchemes(list, option, result *Variant) map[string]*Scheme {
	b := NewBuilder()
	t := b.Var("T")
	schemes := map[string]*Scheme{}
	schemes["Cons"] = b.Scheme(b.Func(t, b.List(t)).Returns(b.List(t)))
	schemes["Nil"] = b.Scheme(b.List(t))

	b = NewBuilder()
	t = b.Var("T")
	schemes["Some"] = b.Scheme(b.Func(t).Returns(b.Option(t)))
	schemes["None"] = b.Scheme(b.Option(t))

	b = NewBuilder()
	t = b.Var("T")
	e := b.Var("E")
	schemes["Ok"] = b.Scheme(b.Func(t).Returns(b.Result(t, e)))

	b = NewBuilder()
	t = b.Var("T")
	e = b.Var("E")
	schemes["Err"] = b.Scheme(b.Func(e).Returns(b.Result(t, e)))

	return schemes
}

func stdlibSchemes() map[string]*Scheme {
	schemes := map[string]*Scheme{}

	// List (9)
	b := NewBuilder()
	t, u := b.Var("T"), b.Var("U")
	schemes["List.map"] = b.Scheme(b.Func(b.List(t), b.Func(t).Returns(u)).Returns(b.List(u)))

	b = NewBuilder()
	t = b.Var("T")
	schemes["List.filter"] = b.Scheme(b.Func(b.List(t), b.Func(t).Returns(b.Bool())).Returns(b.List(t)))

	b = NewBuilder()
	t, acc := b.Var("T"), b.Var("Acc")
	schemes["List.fold"] = b.Scheme(b.Func(b.List(t), acc, b.Func(acc, t).Returns(acc)).Returns(acc))

	b = NewBuilder()
	t, acc = b.Var("T"), b.Var("Acc")
	schemes["List.foldRight"] = b.Scheme(b.Func(b.List(t), acc, b.Func(t, acc).Returns(acc)).Returns(acc))

	b = NewBuilder()
	t = b.Var("T")
	schemes["List.head"] = b.Scheme(b.Func(b.List(t)).Returns(b.Option(t)))

	b = NewBuilder()
	t = b.Var("T")
	schemes["List.tail"] = b.Scheme(b.Func(b.List(t)).Returns(b.Option(b.List(t))))

	b = NewBuilder()
	t = b.Var("T")
	schemes["List.reverse"] = b.Scheme(b.Func(b.List(t)).Returns(b.List(t)))

	b = NewBuilder()
	t = b.Var("T")
	schemes["List.concat"] = b.Scheme(b.Func(b.List(t), b.List(t)).Returns(b.List(t)))

	b = NewBuilder()
	t = b.Var("T")
	schemes["List.length"] = b.Scheme(b.Func(b.List(t)).Returns(b.Int()))

	// Option (6)
	b = NewBuilder()
	t, u = b.Var("T"), b.Var("U")
	schemes["Option.map"] = b.Scheme(b.Func(b.Option(t), b.Func(t).Returns(u)).Returns(b.Option(u)))

	b = NewBuilder()
	t, u = b.Var("T"), b.Var("U")
	schemes["Option.flatMap"] = b.Scheme(b.Func(b.Option(t), b.Func(t).Returns(b.Option(u))).Returns(b.Option(u)))

	b = NewBuilder()
	t = b.Var("T")
	schemes["Option.getOrElse"] = b.Scheme(b.Func(b.Option(t), t).Returns(t))

	b = NewBuilder()
	t = b.Var("T")
	schemes["Option.isSome"] = b.Scheme(b.Func(b.Option(t)).Returns(b.Bool()))

	b = NewBuilder()
	t = b.Var("T")
	schemes["Option.isNone"] = b.Scheme(b.Func(b.Option(t)).Returns(b.Bool()))

	b = NewBuilder()
	t = b.Var("T")
	schemes["Option.unwrap"] = b.Scheme(b.Func(b.Option(t)).Returns(t))

	// Result (7)
	b = NewBuilder()
	t, e, u := b.Var("T"), b.Var("E"), b.Var("U")
	schemes["Result.map"] = b.Scheme(b.Func(b.Result(t, e), b.Func(t).Returns(u)).Returns(b.Result(u, e)))

	b = NewBuilder()
	t, e, u = b.Var("T"), b.Var("E"), b.Var("U")
	schemes["Result.flatMap"] = b.Scheme(b.Func(b.Result(t, e), b.Func(t).Returns(b.Result(u, e))).Returns(b.Result(u, e)))

	b = NewBuilder()
	t, e, f := b.Var("T"), b.Var("E"), b.Var("F")
	schemes["Result.mapErr"] = b.Scheme(b.Func(b.Result(t, e), b.Func(e).Returns(f)).Returns(b.Result(t, f)))

	b = NewBuilder()
	t, e = b.Var("T"), b.Var("E")
	schemes["Result.isOk"] = b.Scheme(b.Func(b.Result(t, e)).Returns(b.Bool()))

	b = NewBuilder()
	t, e = b.Var("T"), b.Var("E")
	schemes["Result.isErr"] = b.Scheme(b.Func(b.Result(t, e)).Returns(b.Bool()))

	b = NewBuilder()
	t, e = b.Var("T"), b.Var("E")
	schemes["Result.unwrap"] = b.Scheme(b.Func(b.Result(t, e)).Returns(t))

	b = NewBuilder()
	t, e = b.Var("T"), b.Var("E")
	schemes["Result.unwrapOr"] = b.Scheme(b.Func(b.Result(t, e), t).Returns(t))

	// String (9)
	b = NewBuilder()
	schemes["String.length"] = b.Scheme(b.Func(b.String()).Returns(b.Int()))
	b = NewBuilder()
	schemes["String.concat"] = b.Scheme(b.Func(b.String(), b.String()).Returns(b.String()))
	b = NewBuilder()
	schemes["String.toUpperCase"] = b.Scheme(b.Func(b.String()).Returns(b.String()))
	b = NewBuilder()
	schemes["String.toLowerCase"] = b.Scheme(b.Func(b.String()).Returns(b.String()))
	b = NewBuilder()
	schemes["String.trim"] = b.Scheme(b.Func(b.String()).Returns(b.String()))
	b = NewBuilder()
	schemes["String.split"] = b.Scheme(b.Func(b.String(), b.String()).Returns(b.List(b.String())))
	b = NewBuilder()
	schemes["String.contains"] = b.Scheme(b.Func(b.String(), b.String()).Returns(b.Bool()))
	b = NewBuilder()
	schemes["String.startsWith"] = b.Scheme(b.Func(b.String(), b.String()).Returns(b.Bool()))
	b = NewBuilder()
	schemes["String.endsWith"] = b.Scheme(b.Func(b.String(), b.String()).Returns(b.Bool()))

	// Conversions among Int/Float/String (6)
	b = NewBuilder()
	schemes["Int.toFloat"] = b.Scheme(b.Func(b.Int()).Returns(b.Float()))
	b = NewBuilder()
	schemes["Float.toInt"] = b.Scheme(b.Func(b.Float()).Returns(b.Int()))
	b = NewBuilder()
	schemes["Int.toString"] = b.Scheme(b.Func(b.Int()).Returns(b.String()))
	b = NewBuilder()
	schemes["Float.toString"] = b.Scheme(b.Func(b.Float()).Returns(b.String()))
	b = NewBuilder()
	schemes["String.toInt"] = b.Scheme(b.Func(b.String()).Returns(b.Option(b.Int())))
	b = NewBuilder()
	schemes["String.toFloat"] = b.Scheme(b.Func(b.String()).Returns(b.Option(b.Float())))

	// round/floor/ceil (3), Float -> Int
	b = NewBuilder()
	schemes["Float.round"] = b.Scheme(b.Func(b.Float()).Returns(b.Int()))
	b = NewBuilder()
	schemes["Float.floor"] = b.Scheme(b.Func(b.Float()).Returns(b.Int()))
	b = NewBuilder()
	schemes["Float.ceil"] = b.Scheme(b.Func(b.Float()).Returns(b.Int()))

	// abs, min, max over both Int and Float (2 + 2 + 2)
	b = NewBuilder()
	schemes["Int.abs"] = b.Scheme(b.Func(b.Int()).Returns(b.Int()))
	b = NewBuilder()
	schemes["Float.abs"] = b.Scheme(b.Func(b.Float()).Returns(b.Float()))
	b = NewBuilder()
	schemes["Int.min"] = b.Scheme(b.Func(b.Int(), b.Int()).Returns(b.Int()))
	b = NewBuilder()
	schemes["Float.min"] = b.Scheme(b.Func(b.Float(), b.Float()).Returns(b.Float()))
	b = NewBuilder()
	schemes["Int.max"] = b.Scheme(b.Func(b.Int(), b.Int()).Returns(b.Int()))
	b = NewBuilder()
	schemes["Float.max"] = b.Scheme(b.Func(b.Float(), b.Float()).Returns(b.Float()))

	return schemes
}

func specialSchemes() map[string]*Scheme {
	schemes := map[string]*Scheme{}

	b := NewBuilder()
	schemes["panic"] = b.Scheme(b.Func(b.String()).Returns(Never))

	b = NewBuilder()
	t := b.Var("T")
	schemes["ref"] = b.Scheme(b.Func(t).Returns(b.Ref(t)))

	return schemes
}
