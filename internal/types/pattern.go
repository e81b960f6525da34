package types

import "github.com/corelang/corecheck/internal/core"

// CheckPattern checks pat against expected, returning the bindings it
// introduces (name to monomorphic type — pattern-extracted names never
// generalize). Duplicate names within one pattern tree are rejected as
// DuplicatePatternVariable.
func (c *Context) CheckPattern(env *Env, pat core.Pattern, expected Type, loc Position) (map[string]Type, error) {
	bindings := map[string]Type{}
	if err := c.checkPatternInto(env, pat, expected, loc, bindings); err != nil {
		return nil, err
	}
	return bindings, nil
}

func (c *Context) checkPatternInto(env *Env, pat core.Pattern, expected Type, loc Position, bindings map[string]Type) error {
	switch p := pat.(type) {
	case *core.WildcardPattern:
		return nil

	case *core.VarPattern:
		if _, dup := bindings[p.Name]; dup {
			return newDuplicatePatternVariable(p.Name, loc)
		}
		bindings[p.Name] = expected
		return nil

	case *core.LitPattern:
		return c.unify(litType(p.Kind), expected, loc)

	case *core.VariantPattern:
		return c.checkVariantPattern(env, p, expected, loc, bindings)

	case *core.RecordPattern:
		return c.checkRecordPattern(env, p, expected, loc, bindings)
	}
	return nil
}

func (c *Context) checkVariantPattern(env *Env, p *core.VariantPattern, expected Type, loc Position, bindings map[string]Type) error {
	binding, ok := env.LookupValue(p.Constructor)
	if !ok || binding.Scheme == nil {
		return newUndefinedConstructor(p.Constructor, loc, env.ValueNames())
	}
	instantiated := c.Instantiate(binding.Scheme)

	var params []Type
	var ret Type
	if fn, isFn := instantiated.(*Fun); isFn {
		params = fn.Params
		ret = fn.Return
	} else {
		ret = instantiated
	}

	if len(p.Args) != len(params) {
		return newConstructorArity(p.Constructor, len(params), len(p.Args), loc)
	}
	if err := c.unify(ret, expected, loc); err != nil {
		return err
	}
	for i, sub := range p.Args {
		if err := c.checkPatternInto(env, sub, c.resolve(params[i]), loc, bindings); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) checkRecordPattern(env *Env, p *core.RecordPattern, expected Type, loc Position, bindings map[string]Type) error {
	resolved := c.resolve(expected)
	rec, ok := resolved.(*Record)
	if !ok {
		return newNonRecordAccess(resolved, loc)
	}
	for _, field := range p.Fields {
		fieldType, present := rec.Fields[field.Name]
		if !present {
			return newMissingField(field.Name, loc, sortedKeys(rec.Fields))
		}
		if err := c.checkPatternInto(env, field.Pattern, c.resolve(fieldType), loc, bindings); err != nil {
			return err
		}
	}
	return nil
}

func litType(kind core.LitKind) Type {
	switch kind {
	case core.IntLit:
		return Int
	case core.FloatLit:
		return Float
	case core.StringLit:
		return String
	case core.BoolLit:
		return Bool
	default:
		return Unit
	}
}

// CheckExhaustive checks a match's ordered pattern list against the
// scrutinee's (substituted) type: a
// wildcard or variable pattern anywhere makes the match exhaustive;
// variant matches require the full constructor set to be covered;
// Bool requires both true and false; Int/Float/String literal patterns
// are never exhaustive without a catch-all; guarded arms never count
// toward coverage.
func CheckExhaustive(env *Env, scrutinee Type, arms []core.MatchArm, loc Position) error {
	for _, arm := range arms {
		if arm.Guard != nil {
			continue
		}
		if isCatchAll(arm.Pattern) {
			return nil
		}
	}

	switch t := scrutinee.(type) {
	case *Variant:
		return checkVariantCoverage(t, arms, loc)

	case *App:
		if v, ok := env.LookupType(t.Name); ok {
			return checkVariantCoverage(v, arms, loc)
		}
		return newNonExhaustiveMatch([]string{"_"}, loc)

	case *Const:
		if v, ok := env.LookupType(t.Name); ok {
			return checkVariantCoverage(v, arms, loc)
		}
		if t.Name == "Bool" {
			hasTrue, hasFalse := false, false
			for _, arm := range arms {
				if arm.Guard != nil {
					continue
				}
				lp, ok := arm.Pattern.(*core.LitPattern)
				if !ok || lp.Kind != core.BoolLit {
					continue
				}
				if b, _ := lp.Value.(bool); b {
					hasTrue = true
				} else {
					hasFalse = true
				}
			}
			if hasTrue && hasFalse {
				return nil
			}
			var missing []string
			if !hasTrue {
				missing = append(missing, "true")
			}
			if !hasFalse {
				missing = append(missing, "false")
			}
			return newNonExhaustiveMatch(missing, loc)
		}
		// Int, Float, String: infinite domain, never exhaustive without a
		// catch-all (already checked above).
		return newNonExhaustiveMatch([]string{"_"}, loc)
	}

	return newNonExhaustiveMatch([]string{"_"}, loc)
}

// checkVariantCoverage requires every constructor in v's declared order
// to appear as an unguarded top-level pattern among arms.
func checkVariantCoverage(v *Variant, arms []core.MatchArm, loc Position) error {
	covered := map[string]struct{}{}
	for _, arm := range arms {
		if arm.Guard != nil {
			continue
		}
		if vp, ok := arm.Pattern.(*core.VariantPattern); ok {
			covered[vp.Constructor] = struct{}{}
		}
	}
	var missing []string
	for _, name := range v.CtorOrder {
		if _, ok := covered[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return newNonExhaustiveMatch(missing, loc)
	}
	return nil
}

func isCatchAll(p core.Pattern) bool {
	switch p.(type) {
	case *core.WildcardPattern, *core.VarPattern:
		return true
	default:
		return false
	}
}
