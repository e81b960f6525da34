package types

import "github.com/corelang/corecheck/internal/core"

// Binding is one top-level name the checker assigned a scheme, in
// declaration order — the single entry point's result.
type Binding struct {
	Name   string
	Scheme *Scheme
}

// CheckModule is the checker's single entry point: it walks mod's
// declarations in order against a fresh built-in environment, returning
// every top-level binding's generalized scheme or the first diagnostic
// raised. There is no multi-error collection.
func CheckModule(mod *core.Module) ([]Binding, error) {
	c := NewContext()
	env := c.Env
	var out []Binding

	for _, decl := range mod.Decls {
		switch d := decl.(type) {

		case *core.TypeDecl:
			newEnv, err := declareType(env, d)
			if err != nil {
				return nil, err
			}
			env = newEnv

		case *core.ExternalDecl:
			newEnv, err := declareExternal(c, env, d)
			if err != nil {
				return nil, err
			}
			env = newEnv

		case *core.LetDecl:
			newEnv, binding, err := c.checkLetDecl(env, d)
			if err != nil {
				return nil, err
			}
			env = newEnv
			out = append(out, binding)

		case *core.LetRecGroupDecl:
			newEnv, bindings, err := c.checkLetRecGroupDecl(env, d)
			if err != nil {
				return nil, err
			}
			env = newEnv
			out = append(out, bindings...)
		}
	}

	return out, nil
}

func declareType(env *Env, d *core.TypeDecl) (*Env, error) {
	params := make(map[string]*Var, len(d.Params))
	quantified := make(map[int]struct{}, len(d.Params))
	next := -1
	paramVars := make([]Type, len(d.Params))
	for i, name := range d.Params {
		v := &Var{ID: next}
		next--
		params[name] = v
		quantified[v.ID] = struct{}{}
		paramVars[i] = v
	}

	ctorOrder := make([]string, len(d.Constructors))
	ctors := make(map[string][]Type, len(d.Constructors))
	for i, ctor := range d.Constructors {
		ctorOrder[i] = ctor.Name
	}

	variant := &Variant{NominalName: d.Name, CtorOrder: ctorOrder, Constructors: ctors}
	typeEnv := env.ExtendType(variant)

	returnType := Type(&App{Name: d.Name, Args: paramVars})
	if len(paramVars) == 0 {
		returnType = &Const{Name: d.Name}
	}

	valueEnv := typeEnv
	for _, ctor := range d.Constructors {
		ctorParams := make([]Type, len(ctor.Params))
		for i, p := range ctor.Params {
			pt, err := convertTypeExprWithParams(typeEnv, params, p, d.Span())
			if err != nil {
				return nil, err
			}
			ctorParams[i] = pt
		}
		ctors[ctor.Name] = ctorParams

		var body Type = returnType
		if len(ctorParams) > 0 {
			body = &Fun{Params: ctorParams, Return: returnType}
		}
		scheme := &Scheme{Quantified: quantified, Body: body}
		valueEnv = valueEnv.ExtendValue(ctor.Name, scheme)
	}

	return valueEnv, nil
}

// convertTypeExprWithParams is ConvertTypeExpr extended to resolve a
// declaration's own type parameters (which are not in the type
// namespace — they're lexically scoped to the declaration).
func convertTypeExprWithParams(env *Env, params map[string]*Var, te core.TypeExpr, loc Position) (Type, error) {
	if tv, ok := te.(*core.TypeVarExpr); ok {
		if v, known := params[tv.Name]; known {
			return v, nil
		}
		return nil, newUnsupportedTypeAnnotation("free type variable "+tv.Name, loc)
	}
	if app, ok := te.(*core.TypeAppExpr); ok {
		args := make([]Type, len(app.Args))
		for i, a := range app.Args {
			at, err := convertTypeExprWithParams(env, params, a, loc)
			if err != nil {
				return nil, err
			}
			args[i] = at
		}
		if len(args) == 0 {
			return resolveConstName(env, app.Constructor, loc)
		}
		return &App{Name: app.Constructor, Args: args}, nil
	}
	if fn, ok := te.(*core.TypeFuncExpr); ok {
		params2 := make([]Type, len(fn.Params))
		for i, p := range fn.Params {
			pt, err := convertTypeExprWithParams(env, params, p, loc)
			if err != nil {
				return nil, err
			}
			params2[i] = pt
		}
		ret, err := convertTypeExprWithParams(env, params, fn.Return, loc)
		if err != nil {
			return nil, err
		}
		return &Fun{Params: params2, Return: ret}, nil
	}
	return ConvertTypeExpr(env, te, loc)
}

// declareExternal always routes a name through the overload system, even
// on its first declaration: an external's TargetSymbol and ImportSource
// must survive to check the *next* external sharing its name, and
// ValueBinding has nowhere else to keep them once attached only as a bare
// Scheme. A name that ends up with exactly one candidate is resolved
// exactly like a plain binding (see inferVar, inferApp/inferOverloadApp).
func declareExternal(c *Context, env *Env, d *core.ExternalDecl) (*Env, error) {
	declType, err := ConvertTypeExpr(env, d.Type, d.Span())
	if err != nil {
		return nil, err
	}
	scheme := c.Generalize(declType, -1) // quantify every free variable: externals are top-level
	arity := arityOf(declType)
	entry := OverloadEntry{Scheme: scheme, Arity: arity, TargetSymbol: d.TargetSymbol, ImportSource: d.ImportSource}

	existing, found := env.LookupValue(d.Name)
	if found {
		for _, o := range existing.Overload {
			if o.Arity == arity && o.TargetSymbol == d.TargetSymbol {
				return nil, newDuplicateOverloadTarget(d.Name, d.TargetSymbol, d.Span())
			}
			if o.ImportSource != d.ImportSource {
				return nil, newInconsistentOverloadImport(d.Name, d.Span())
			}
		}
	}
	return env.ExtendOverload(d.Name, entry), nil
}

func (c *Context) checkLetDecl(env *Env, d *core.LetDecl) (*Env, Binding, error) {
	surrounding := c.Level
	var valueType Type

	if d.Recursive {
		err := c.EnterLevel(func() error {
			fresh := c.FreshVar()
			recEnv := env.ExtendValueMono(d.Name, fresh)
			t, err := c.Infer(recEnv, d.Value)
			if err != nil {
				return err
			}
			if err := c.unify(c.resolve(fresh), c.resolve(t), d.Span()); err != nil {
				return err
			}
			valueType = c.resolve(fresh)
			return nil
		})
		if err != nil {
			return nil, Binding{}, err
		}
	} else {
		err := c.EnterLevel(func() error {
			t, err := c.Infer(env, d.Value)
			valueType = t
			return err
		})
		if err != nil {
			return nil, Binding{}, err
		}
	}

	scheme := c.bindingScheme(d.Value, valueType, surrounding)
	newEnv := env.ExtendValue(d.Name, scheme)
	return newEnv, Binding{Name: d.Name, Scheme: scheme}, nil
}

func (c *Context) checkLetRecGroupDecl(env *Env, d *core.LetRecGroupDecl) (*Env, []Binding, error) {
	surrounding := c.Level
	preBound := make(map[string]*Var, len(d.Bindings))
	inferred := make(map[string]Type, len(d.Bindings))
	err := c.EnterLevel(func() error {
		preEnv := env
		for _, b := range d.Bindings {
			v := c.FreshVar()
			preBound[b.Name] = v
			preEnv = preEnv.ExtendValueMono(b.Name, v)
		}
		for _, b := range d.Bindings {
			t, err := c.Infer(preEnv, b.Value)
			if err != nil {
				return err
			}
			if err := c.unify(c.resolve(preBound[b.Name]), c.resolve(t), d.Span()); err != nil {
				return err
			}
			inferred[b.Name] = c.resolve(preBound[b.Name])
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	bindings := make(map[string]*ValueBinding, len(d.Bindings))
	var out []Binding
	for _, b := range d.Bindings {
		scheme := c.bindingScheme(b.Value, inferred[b.Name], surrounding)
		bindings[b.Name] = schemeBinding(scheme)
		out = append(out, Binding{Name: b.Name, Scheme: scheme})
	}
	return env.ExtendValues(bindings), out, nil
}
