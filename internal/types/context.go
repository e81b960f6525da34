package types

// Context bundles the environment, the ambient substitution, the current
// level, and the fresh-variable counter for one type-check. It is
// deliberately per-unit: a multi-unit compiler creates a fresh Context per
// top-level typeCheck invocation (see Reset), rather than sharing a
// process-wide counter, which would preclude parallel compilation.
type Context struct {
	Env     *Env
	Subst   Substitution
	Level   int
	nextVar int
}

// NewContext creates a Context seeded with the built-in environment at
// the top level (level 0).
func NewContext() *Context {
	return &Context{
		Env:   NewBuiltinEnv(),
		Subst: Substitution{},
		Level: 0,
	}
}

// Reset clears the fresh-variable counter and substitution, for reuse
// across test cases that want ids to restart: the first FreshVar after
// Reset issues id 1. Tests rely on this to assert on observed variable ids.
func (c *Context) Reset() {
	c.nextVar = 0
	c.Subst = Substitution{}
	c.Level = 0
}

// FreshVar issues a new unification variable at the context's current
// level. Every variable ever produced by a Context has a unique id.
func (c *Context) FreshVar() *Var {
	c.nextVar++
	return &Var{ID: c.nextVar, Level: c.Level}
}

// EnterLevel runs fn with the level bumped by one, restoring the previous
// level on return. This is the single place level-nesting depth changes,
// bumping the level while checking a binding's right-hand side for let,
// let-rec, and let-rec-group.
func (c *Context) EnterLevel(fn func() error) error {
	c.Level++
	err := fn()
	c.Level--
	return err
}

// resolve walks a variable to its current representative under the
// ambient substitution, the read-time half of keeping Subst idempotent.
func (c *Context) resolve(t Type) Type {
	return Apply(c.Subst, t)
}

// unify is the Context-bound entry point into the unifier: it applies the
// ambient substitution to both sides, computes the most general unifier,
// and composes it into c.Subst.
func (c *Context) unify(t1, t2 Type, loc Position) error {
	s, err := Unify(c.resolve(t1), c.resolve(t2), c.Level, loc)
	if err != nil {
		return err
	}
	c.Subst = Compose(s, c.Subst)
	return nil
}

// Instantiate replaces every quantified variable of s with a fresh
// variable at the context's current level, leaving free variables of
// the body untouched.
func (c *Context) Instantiate(s *Scheme) Type {
	if len(s.Quantified) == 0 {
		return s.Body
	}
	sub := make(Substitution, len(s.Quantified))
	for id := range s.Quantified {
		sub[id] = c.FreshVar()
	}
	return Apply(sub, s.Body)
}

// Generalize quantifies exactly those free variables of t (after applying
// the ambient substitution) whose level is strictly greater than
// surroundingLevel — the variables created while checking the bound
// expression that do not escape into any outer binding. Level-lowering
// during unification (see unify.go) keeps
// each *Var node's Level field accurate, so generalization only needs to
// read it off the resolved type, never a side table.
func (c *Context) Generalize(t Type, surroundingLevel int) *Scheme {
	resolved := c.resolve(t)
	levels := make(map[int]int)
	collectVarLevels(resolved, levels)
	quantified := make(map[int]struct{})
	for id, lvl := range levels {
		if lvl > surroundingLevel {
			quantified[id] = struct{}{}
		}
	}
	if len(quantified) == 0 {
		return monoScheme(resolved)
	}
	return &Scheme{Quantified: quantified, Body: resolved}
}

func collectVarLevels(t Type, out map[int]int) {
	switch t := t.(type) {
	case *Var:
		out[t.ID] = t.Level
	case *Fun:
		for _, p := range t.Params {
			collectVarLevels(p, out)
		}
		collectVarLevels(t.Return, out)
	case *App:
		for _, a := range t.Args {
			collectVarLevels(a, out)
		}
	case *Record:
		for _, v := range t.Fields {
			collectVarLevels(v, out)
		}
	case *Variant:
		for _, params := range t.Constructors {
			for _, p := range params {
				collectVarLevels(p, out)
			}
		}
	case *Union:
		for _, m := range t.Members {
			collectVarLevels(m, out)
		}
	case *Tuple:
		for _, e := range t.Elements {
			collectVarLevels(e, out)
		}
	}
}
