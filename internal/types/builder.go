package types

// Builder provides a fluent API for constructing type signatures, so the
// built-in environment (see builtin_env.go) reads as a table of
// signatures rather than nested struct literals. Each call to Var with a
// given name returns the same *Var for the lifetime of the Builder, so a
// signature can refer to the same quantified variable more than once
// (e.g. `(T, T) -> Bool`).
type Builder struct {
	vars map[string]*Var
	next int
}

// NewBuilder creates a type builder with its own quantified-variable
// namespace, independent of any inference Context's fresh-variable
// counter — builder variables only ever appear inside a Scheme, never as
// live unification variables.
func NewBuilder() *Builder {
	return &Builder{vars: map[string]*Var{}}
}

// Int, Float, String, Bool, Unit return the primitive constants.
func (b *Builder) Int() Type    { return Int }
func (b *Builder) Float() Type  { return Float }
func (b *Builder) String() Type { return String }
func (b *Builder) Bool() Type   { return Bool }
func (b *Builder) Unit() Type   { return Unit }

// Var returns the builder's variable named name, creating it with a
// fresh id on first use. Level is irrelevant for a scheme body (it is
// always quantified), so builder variables carry level 0.
func (b *Builder) Var(name string) *Var {
	if v, ok := b.vars[name]; ok {
		return v
	}
	b.next++
	v := &Var{ID: -b.next} // negative ids: never collide with a context's fresh ids
	b.vars[name] = v
	return v
}

// Con builds a nullary named type, e.g. a user-declared type used
// without its own parameters.
func (b *Builder) Con(name string) Type { return &Const{Name: name} }

// App builds a type constructor applied to arguments, e.g. List<Int>.
func (b *Builder) App(name string, args ...Type) Type {
	if len(args) == 0 {
		return &Const{Name: name}
	}
	return &App{Name: name, Args: args}
}

// List builds List<elem>.
func (b *Builder) List(elem Type) Type { return &App{Name: "List", Args: []Type{elem}} }

// Option builds Option<elem>.
func (b *Builder) Option(elem Type) Type { return &App{Name: "Option", Args: []Type{elem}} }

// Result builds Result<ok, err>.
func (b *Builder) Result(ok, err Type) Type { return &App{Name: "Result", Args: []Type{ok, err}} }

// Ref builds Ref<elem>.
func (b *Builder) Ref(elem Type) Type { return RefOf(elem) }

// FieldSpec is one record field in a Record() call.
type FieldSpec struct {
	Name string
	Type Type
}

// F is shorthand for constructing a FieldSpec.
func F(name string, t Type) FieldSpec { return FieldSpec{Name: name, Type: t} }

// Record builds a record type from field specs; a duplicate field name
// is a builder-time programming error, not a user-facing diagnostic.
func (b *Builder) Record(fields ...FieldSpec) Type {
	out := make(map[string]Type, len(fields))
	for _, f := range fields {
		if _, exists := out[f.Name]; exists {
			panic("duplicate field name: " + f.Name)
		}
		out[f.Name] = f.Type
	}
	return &Record{Fields: out}
}

// Tuple builds an ordered tuple type.
func (b *Builder) Tuple(elems ...Type) Type { return &Tuple{Elements: elems} }

// Union builds an ordered union type.
func (b *Builder) Union(members ...Type) Type { return &Union{Members: members} }

// Func starts building a function type; call Returns to finish it.
func (b *Builder) Func(params ...Type) *FuncBuilder {
	return &FuncBuilder{params: params}
}

// FuncBuilder accumulates a function type's parameters before its return
// type is known.
type FuncBuilder struct {
	params []Type
}

// Returns finishes the function type.
func (fb *FuncBuilder) Returns(ret Type) Type {
	return &Fun{Params: fb.params, Return: ret}
}

// Scheme closes t over every builder variable used while constructing
// it — the builder's variables are exactly the ones meant to be
// quantified, since a builder is only ever used to author one signature
// at a time in builtin_env.go.
func (b *Builder) Scheme(t Type) *Scheme {
	if len(b.vars) == 0 {
		return monoScheme(t)
	}
	quantified := make(map[int]struct{}, len(b.vars))
	for _, v := range b.vars {
		quantified[v.ID] = struct{}{}
	}
	return &Scheme{Quantified: quantified, Body: t}
}
