// Package types is the type-checking core: type terms, substitutions,
// unification, the environment, Algorithm W, pattern checking and
// exhaustiveness, the built-in environment, and the diagnostic taxonomy.
package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/corelang/corecheck/internal/core"
)

// Position is the source location attached to every diagnostic, shared
// with the core AST so a checker failure can be reported against the
// exact node that triggered it.
type Position = core.Position

// Type is a tagged sum over the seven structural shapes plus variables.
// Every operation over types (unification, substitution, free-variable
// collection, printing) is a type switch over this interface rather than
// a virtual method, so each concern's invariants stay visible in one place.
type Type interface {
	String() string
	typeNode()
}

// Var is a unification variable, identified by id, carrying the level it
// was created at (see lowerLevels in unify.go and Generalize in
// context.go). Two variables with the same id are the
// same variable.
type Var struct {
	ID    int
	Level int
}

func (*Var) typeNode() {}
func (v *Var) String() string { return fmt.Sprintf("t%d", v.ID) }

// Const is a nullary type name: the primitives Int, Float, String, Bool
// and Unit plus user-declared type names (Never has its own node).
type Const struct {
	Name string
}

func (*Const) typeNode() {}
func (c *Const) String() string { return c.Name }

// Fun is a function type with an ordered parameter list.
type Fun struct {
	Params []Type
	Return Type
}

func (*Fun) typeNode() {}
func (f *Fun) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), f.Return.String())
}

// App is a constructor type applied to an ordered argument list, e.g.
// List<Int>, Option<T>, Result<T, E>, Ref<T>.
type App struct {
	Name string
	Args []Type
}

func (*App) typeNode() {}
func (a *App) String() string {
	if len(a.Args) == 0 {
		return a.Name
	}
	parts := make([]string, len(a.Args))
	for i, arg := range a.Args {
		parts[i] = arg.String()
	}
	return fmt.Sprintf("%s<%s>", a.Name, strings.Join(parts, ", "))
}

// Record is an unordered mapping from field name to field type; fields
// are compared structurally (width subtyping, see unify.go).
type Record struct {
	Fields map[string]Type
}

func (*Record) typeNode() {}
func (r *Record) String() string {
	names := sortedKeys(r.Fields)
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprintf("%s: %s", n, r.Fields[n].String())
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

// Variant is an unordered mapping from constructor name to its ordered
// parameter type list, compared nominally by name via NominalName.
type Variant struct {
	NominalName  string
	Constructors map[string][]Type
	// CtorOrder preserves declaration order for stable printing/diagnostics.
	CtorOrder []string
}

func (*Variant) typeNode() {}
func (v *Variant) String() string { return v.NominalName }

// Union is an ordered sequence of member types, compared positionally.
type Union struct {
	Members []Type
}

func (*Union) typeNode() {}
func (u *Union) String() string {
	parts := make([]string, len(u.Members))
	for i, m := range u.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

// Tuple is an ordered sequence of element types.
type Tuple struct {
	Elements []Type
}

func (*Tuple) typeNode() {}
func (t *Tuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

// Never is the bottom type: it unifies with any non-variable on either
// side, contributing no bindings.
var Never Type = &neverType{}

type neverType struct{}

func (*neverType) typeNode() {}
func (*neverType) String() string { return "Never" }

// IsNever reports whether t is the bottom type.
func IsNever(t Type) bool {
	_, ok := t.(*neverType)
	return ok
}

// The five primitive constants (Never, the sixth primitive, is defined
// above); Ref<elem> is built by RefOf as a single-argument App.
var (
	Int    Type = &Const{Name: "Int"}
	Float  Type = &Const{Name: "Float"}
	String Type = &Const{Name: "String"}
	Bool   Type = &Const{Name: "Bool"}
	Unit   Type = &Const{Name: "Unit"}
)

// RefOf builds Ref<elem>.
func RefOf(elem Type) Type { return &App{Name: "Ref", Args: []Type{elem}} }

// Scheme is a type scheme: a set of quantified variable ids and a body
// that may mention them. An empty quantifier set is a monomorphic type.
type Scheme struct {
	Quantified map[int]struct{}
	Body       Type
}

func monoScheme(t Type) *Scheme { return &Scheme{Body: t} }

func (s *Scheme) String() string {
	if len(s.Quantified) == 0 {
		return s.Body.String()
	}
	ids := make([]int, 0, len(s.Quantified))
	for id := range s.Quantified {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = fmt.Sprintf("t%d", id)
	}
	return fmt.Sprintf("forall %s. %s", strings.Join(names, " "), s.Body.String())
}

func sortedKeys(m map[string]Type) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
