package types

import "fmt"

// Unify computes the most general unifier of t1 and t2 as observed from
// callerLevel, dispatching on the structural shape of each side (both
// sides are assumed to already have the ambient substitution applied).
// The returned substitution is meant to be composed into the caller's
// ambient substitution, never used standalone.
func Unify(t1, t2 Type, callerLevel int, loc Position) (Substitution, error) {
	if v1, ok := t1.(*Var); ok {
		if v2, ok := t2.(*Var); ok && v1.ID == v2.ID {
			return Substitution{}, nil
		}
		return bindVar(v1, t2, loc)
	}
	if v2, ok := t2.(*Var); ok {
		return bindVar(v2, t1, loc)
	}

	// Never unifies with any non-variable without contributing a binding;
	// the Var cases above already handled Never paired with a variable by
	// binding that variable to Never.
	if IsNever(t1) || IsNever(t2) {
		return Substitution{}, nil
	}

	switch a := t1.(type) {
	case *Const:
		b, ok := t2.(*Const)
		if !ok || a.Name != b.Name {
			return nil, &Diagnostic{
				Code:     TypeMismatch,
				Location: loc,
				Message:  fmt.Sprintf("expected %s, found %s", a.String(), t2.String()),
			}
		}
		return Substitution{}, nil

	case *Fun:
		b, ok := t2.(*Fun)
		if !ok {
			return nil, mismatch(a, t2, loc)
		}
		if len(a.Params) != len(b.Params) {
			return nil, arityMismatch(loc, "function", len(a.Params), len(b.Params))
		}
		sub := Substitution{}
		for i := range a.Params {
			s, err := Unify(Apply(sub, a.Params[i]), Apply(sub, b.Params[i]), callerLevel, loc)
			if err != nil {
				return nil, err
			}
			sub = Compose(s, sub)
		}
		s, err := Unify(Apply(sub, a.Return), Apply(sub, b.Return), callerLevel, loc)
		if err != nil {
			return nil, err
		}
		return Compose(s, sub), nil

	case *App:
		b, ok := t2.(*App)
		if !ok || a.Name != b.Name {
			return nil, mismatch(a, t2, loc)
		}
		if len(a.Args) != len(b.Args) {
			return nil, arityMismatch(loc, a.Name, len(a.Args), len(b.Args))
		}
		sub := Substitution{}
		for i := range a.Args {
			s, err := Unify(Apply(sub, a.Args[i]), Apply(sub, b.Args[i]), callerLevel, loc)
			if err != nil {
				return nil, err
			}
			sub = Compose(s, sub)
		}
		return sub, nil

	case *Record:
		b, ok := t2.(*Record)
		if !ok {
			return nil, mismatch(a, t2, loc)
		}
		sub := Substitution{}
		for name, ta := range a.Fields {
			tb, present := b.Fields[name]
			if !present {
				continue
			}
			s, err := Unify(Apply(sub, ta), Apply(sub, tb), callerLevel, loc)
			if err != nil {
				return nil, err
			}
			sub = Compose(s, sub)
		}
		return sub, nil

	case *Variant:
		b, ok := t2.(*Variant)
		if !ok {
			return nil, mismatch(a, t2, loc)
		}
		if a.NominalName != b.NominalName {
			return nil, mismatch(a, t2, loc)
		}
		if len(a.Constructors) != len(b.Constructors) {
			return nil, mismatch(a, t2, loc)
		}
		sub := Substitution{}
		for name, paramsA := range a.Constructors {
			paramsB, present := b.Constructors[name]
			if !present {
				return nil, mismatch(a, t2, loc)
			}
			if len(paramsA) != len(paramsB) {
				return nil, arityMismatch(loc, name, len(paramsA), len(paramsB))
			}
			for i := range paramsA {
				s, err := Unify(Apply(sub, paramsA[i]), Apply(sub, paramsB[i]), callerLevel, loc)
				if err != nil {
					return nil, err
				}
				sub = Compose(s, sub)
			}
		}
		return sub, nil

	case *Union:
		b, ok := t2.(*Union)
		if !ok {
			return nil, mismatch(a, t2, loc)
		}
		if len(a.Members) != len(b.Members) {
			return nil, arityMismatch(loc, "union", len(a.Members), len(b.Members))
		}
		sub := Substitution{}
		for i := range a.Members {
			s, err := Unify(Apply(sub, a.Members[i]), Apply(sub, b.Members[i]), callerLevel, loc)
			if err != nil {
				return nil, err
			}
			sub = Compose(s, sub)
		}
		return sub, nil

	case *Tuple:
		b, ok := t2.(*Tuple)
		if !ok {
			return nil, mismatch(a, t2, loc)
		}
		if len(a.Elements) != len(b.Elements) {
			return nil, arityMismatch(loc, "tuple", len(a.Elements), len(b.Elements))
		}
		sub := Substitution{}
		for i := range a.Elements {
			s, err := Unify(Apply(sub, a.Elements[i]), Apply(sub, b.Elements[i]), callerLevel, loc)
			if err != nil {
				return nil, err
			}
			sub = Compose(s, sub)
		}
		return sub, nil
	}

	return nil, mismatch(t1, t2, loc)
}

// bindVar binds v to t after an occurs check and level-lowering of every
// variable reachable inside t down to min(existing level, v.Level) —
// the escaping-variable guard that keeps a bound variable from
// generalizing past the scope it was created in.
func bindVar(v *Var, t Type, loc Position) (Substitution, error) {
	if occurs(v.ID, t) {
		return nil, &Diagnostic{
			Code:     InfiniteType,
			Location: loc,
			Message:  fmt.Sprintf("%s occurs in %s", v.String(), t.String()),
		}
	}
	lowerLevels(t, v.Level)
	return Substitution{v.ID: t}, nil
}

func occurs(id int, t Type) bool {
	switch t := t.(type) {
	case *Var:
		return t.ID == id
	case *Fun:
		for _, p := range t.Params {
			if occurs(id, p) {
				return true
			}
		}
		return occurs(id, t.Return)
	case *App:
		for _, a := range t.Args {
			if occurs(id, a) {
				return true
			}
		}
		return false
	case *Record:
		for _, v := range t.Fields {
			if occurs(id, v) {
				return true
			}
		}
		return false
	case *Variant:
		for _, params := range t.Constructors {
			for _, p := range params {
				if occurs(id, p) {
					return true
				}
			}
		}
		return false
	case *Union:
		for _, m := range t.Members {
			if occurs(id, m) {
				return true
			}
		}
		return false
	case *Tuple:
		for _, e := range t.Elements {
			if occurs(id, e) {
				return true
			}
		}
		return false
	}
	return false
}

// lowerLevels recursively lowers every variable's level inside t to
// min(existing, cap), never raising a level.
func lowerLevels(t Type, cap int) {
	switch t := t.(type) {
	case *Var:
		if cap < t.Level {
			t.Level = cap
		}
	case *Fun:
		for _, p := range t.Params {
			lowerLevels(p, cap)
		}
		lowerLevels(t.Return, cap)
	case *App:
		for _, a := range t.Args {
			lowerLevels(a, cap)
		}
	case *Record:
		for _, v := range t.Fields {
			lowerLevels(v, cap)
		}
	case *Variant:
		for _, params := range t.Constructors {
			for _, p := range params {
				lowerLevels(p, cap)
			}
		}
	case *Union:
		for _, m := range t.Members {
			lowerLevels(m, cap)
		}
	case *Tuple:
		for _, e := range t.Elements {
			lowerLevels(e, cap)
		}
	}
}

func mismatch(a, b Type, loc Position) error {
	return &Diagnostic{
		Code:     TypeMismatch,
		Location: loc,
		Message:  fmt.Sprintf("expected %s, found %s", a.String(), b.String()),
	}
}

func arityMismatch(loc Position, what string, wantN, gotN int) error {
	return &Diagnostic{
		Code:     ArityMismatch,
		Location: loc,
		Message:  fmt.Sprintf("%s expects %d argument(s), found %d", what, wantN, gotN),
	}
}
