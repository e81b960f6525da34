package types

// Substitution is a finite mapping from variable id to type term. It is
// kept idempotent under application: Apply always walks a variable's
// binding chain to its current representative before descending into
// structure.
type Substitution map[int]Type

// Compose produces a substitution equivalent to applying s1 then s2:
// s1's bindings have s2 applied to their right-hand sides, and s2's
// bindings that are new to s1 are added verbatim.
func Compose(s2, s1 Substitution) Substitution {
	out := make(Substitution, len(s1)+len(s2))
	for id, t := range s1 {
		out[id] = Apply(s2, t)
	}
	for id, t := range s2 {
		if _, exists := out[id]; !exists {
			out[id] = t
		}
	}
	return out
}

// Apply substitutes every variable in t that is bound in sub, recursively,
// until reaching a fixed point for that variable (a variable may be bound
// to a type containing another bound variable).
func Apply(sub Substitution, t Type) Type {
	switch t := t.(type) {
	case *Var:
		if bound, ok := sub[t.ID]; ok {
			return Apply(sub, bound)
		}
		return t
	case *Const:
		return t
	case *Fun:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = Apply(sub, p)
		}
		return &Fun{Params: params, Return: Apply(sub, t.Return)}
	case *App:
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = Apply(sub, a)
		}
		return &App{Name: t.Name, Args: args}
	case *Record:
		fields := make(map[string]Type, len(t.Fields))
		for k, v := range t.Fields {
			fields[k] = Apply(sub, v)
		}
		return &Record{Fields: fields}
	case *Variant:
		ctors := make(map[string][]Type, len(t.Constructors))
		for name, params := range t.Constructors {
			applied := make([]Type, len(params))
			for i, p := range params {
				applied[i] = Apply(sub, p)
			}
			ctors[name] = applied
		}
		return &Variant{NominalName: t.NominalName, Constructors: ctors, CtorOrder: t.CtorOrder}
	case *Union:
		members := make([]Type, len(t.Members))
		for i, m := range t.Members {
			members[i] = Apply(sub, m)
		}
		return &Union{Members: members}
	case *Tuple:
		elems := make([]Type, len(t.Elements))
		for i, e := range t.Elements {
			elems[i] = Apply(sub, e)
		}
		return &Tuple{Elements: elems}
	case *neverType:
		return t
	}
	return t
}

// ApplyScheme applies a substitution to a scheme's body, skipping any
// binding for a quantified variable (a scheme's bound variables are never
// free, so a substitution produced for an outer scope must not reach in).
func ApplyScheme(sub Substitution, s *Scheme) *Scheme {
	if len(s.Quantified) == 0 {
		return &Scheme{Body: Apply(sub, s.Body)}
	}
	filtered := make(Substitution, len(sub))
	for id, t := range sub {
		if _, bound := s.Quantified[id]; !bound {
			filtered[id] = t
		}
	}
	return &Scheme{Quantified: s.Quantified, Body: Apply(filtered, s.Body)}
}

// FreeVars collects the free (unbound) variable ids occurring in t.
func FreeVars(t Type) map[int]struct{} {
	out := make(map[int]struct{})
	collectFreeVars(t, out)
	return out
}

func collectFreeVars(t Type, out map[int]struct{}) {
	switch t := t.(type) {
	case *Var:
		out[t.ID] = struct{}{}
	case *Fun:
		for _, p := range t.Params {
			collectFreeVars(p, out)
		}
		collectFreeVars(t.Return, out)
	case *App:
		for _, a := range t.Args {
			collectFreeVars(a, out)
		}
	case *Record:
		for _, v := range t.Fields {
			collectFreeVars(v, out)
		}
	case *Variant:
		for _, params := range t.Constructors {
			for _, p := range params {
				collectFreeVars(p, out)
			}
		}
	case *Union:
		for _, m := range t.Members {
			collectFreeVars(m, out)
		}
	case *Tuple:
		for _, e := range t.Elements {
			collectFreeVars(e, out)
		}
	}
}
