package types

import "github.com/corelang/corecheck/internal/core"

// ConvertTypeExpr converts a surface type expression (attached to an
// annotation or a declaration) into a type term, resolving type-constant
// names, and constructor names applied to no arguments, against env's
// type namespace and the six primitives; a constructor applied to
// arguments is kept by name as an App. Free type variables and inline variant types are rejected
// as UnsupportedTypeAnnotation — only declared (named) variants and
// concrete primitives are representable in an annotation.
func ConvertTypeExpr(env *Env, te core.TypeExpr, loc Position) (Type, error) {
	switch t := te.(type) {
	case *core.TypeConstExpr:
		return resolveConstName(env, t.Name, loc)

	case *core.TypeVarExpr:
		return nil, newUnsupportedTypeAnnotation("free type variable "+t.Name, loc)

	case *core.TypeFuncExpr:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			pt, err := ConvertTypeExpr(env, p, loc)
			if err != nil {
				return nil, err
			}
			params[i] = pt
		}
		ret, err := ConvertTypeExpr(env, t.Return, loc)
		if err != nil {
			return nil, err
		}
		return &Fun{Params: params, Return: ret}, nil

	case *core.TypeAppExpr:
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			at, err := ConvertTypeExpr(env, a, loc)
			if err != nil {
				return nil, err
			}
			args[i] = at
		}
		if len(args) == 0 {
			return resolveConstName(env, t.Constructor, loc)
		}
		return &App{Name: t.Constructor, Args: args}, nil

	case *core.TypeRecordExpr:
		fields := make(map[string]Type, len(t.Fields))
		for _, f := range t.Fields {
			ft, err := ConvertTypeExpr(env, f.Type, loc)
			if err != nil {
				return nil, err
			}
			fields[f.Name] = ft
		}
		return &Record{Fields: fields}, nil

	case *core.TypeVariantExpr:
		return nil, newUnsupportedTypeAnnotation("inline variant type", loc)

	case *core.TypeUnionExpr:
		members := make([]Type, len(t.Members))
		for i, m := range t.Members {
			mt, err := ConvertTypeExpr(env, m, loc)
			if err != nil {
				return nil, err
			}
			members[i] = mt
		}
		return &Union{Members: members}, nil

	case *core.TypeTupleExpr:
		elems := make([]Type, len(t.Elements))
		for i, e := range t.Elements {
			et, err := ConvertTypeExpr(env, e, loc)
			if err != nil {
				return nil, err
			}
			elems[i] = et
		}
		return &Tuple{Elements: elems}, nil
	}
	return nil, newUnsupportedTypeAnnotation("unrecognized type expression", loc)
}

func resolveConstName(env *Env, name string, loc Position) (Type, error) {
	switch name {
	case "Int":
		return Int, nil
	case "Float":
		return Float, nil
	case "String":
		return String, nil
	case "Bool":
		return Bool, nil
	case "Unit":
		return Unit, nil
	case "Never":
		return Never, nil
	}
	if v, ok := env.LookupType(name); ok {
		return v, nil
	}
	return &Const{Name: name}, nil
}
