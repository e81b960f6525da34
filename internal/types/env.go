package types

// ValueBinding is what a name in the value namespace resolves to: either
// a scheme (possibly monomorphic, possibly generalized from source), or
// an overload set accumulated from several external declarations sharing
// one name, disambiguated at application sites by argument arity.
type ValueBinding struct {
	Scheme   *Scheme         // set when this is a single, non-overloaded binding
	Overload []OverloadEntry // set for every external decl, even a name declared only once
}

// OverloadEntry is one candidate of an overloaded external binding.
type OverloadEntry struct {
	Scheme       *Scheme
	Arity        int
	TargetSymbol string
	ImportSource string
}

func monoBinding(t Type) *ValueBinding  { return &ValueBinding{Scheme: monoScheme(t)} }
func schemeBinding(s *Scheme) *ValueBinding { return &ValueBinding{Scheme: s} }

// Env is a functionally-extended environment with two disjoint,
// independently layered namespaces: value bindings and declared variant
// types. Each Extend* call returns a new layer with a parent pointer; the
// inference engine never mutates a layer it did not itself introduce.
type Env struct {
	values map[string]*ValueBinding
	types  map[string]*Variant
	parent *Env
}

// NewEnv creates an empty root environment.
func NewEnv() *Env {
	return &Env{values: map[string]*ValueBinding{}, types: map[string]*Variant{}}
}

// ExtendValue returns a new layer binding name to scheme over env.
func (env *Env) ExtendValue(name string, scheme *Scheme) *Env {
	return &Env{
		values: map[string]*ValueBinding{name: schemeBinding(scheme)},
		types:  map[string]*Variant{},
		parent: env,
	}
}

// ExtendValueMono is ExtendValue for a binding that must stay monomorphic
// (lambda parameters, let-rec pre-bindings, pattern-extracted names).
func (env *Env) ExtendValueMono(name string, t Type) *Env {
	return &Env{
		values: map[string]*ValueBinding{name: monoBinding(t)},
		types:  map[string]*Variant{},
		parent: env,
	}
}

// ExtendValues extends env with several bindings in one new layer — used
// for let-rec groups and pattern binding sets, where every name must be
// visible to every other binding introduced at the same point.
func (env *Env) ExtendValues(bindings map[string]*ValueBinding) *Env {
	layer := make(map[string]*ValueBinding, len(bindings))
	for k, v := range bindings {
		layer[k] = v
	}
	return &Env{values: layer, types: map[string]*Variant{}, parent: env}
}

// ExtendOverload adds one candidate to the overload set named name,
// creating it if absent — every external declaration goes through this,
// even the first for a given name, so TargetSymbol/ImportSource are never
// lost to a bare Scheme binding. The caller (the declaration-processing
// driver) checks each new candidate against the existing ones before
// calling this, since Env itself never raises diagnostics: one with the
// same arity and the same target symbol is a DuplicateOverloadTarget
// error, and a differing import source is InconsistentOverloadImport.
// Candidates with the same arity but different target symbols are
// accepted; an application matching more than one of them is ambiguous.
func (env *Env) ExtendOverload(name string, entry OverloadEntry) *Env {
	existing := env.lookupLocalOrParent(name)
	var overloads []OverloadEntry
	if existing != nil {
		overloads = append(overloads, existing.Overload...)
	}
	overloads = append(overloads, entry)
	return &Env{
		values: map[string]*ValueBinding{name: {Overload: overloads}},
		types:  map[string]*Variant{},
		parent: env,
	}
}

func arityOf(t Type) int {
	if f, ok := t.(*Fun); ok {
		return len(f.Params)
	}
	return 0
}

// ExtendType returns a new layer declaring a variant type in the type
// namespace over env.
func (env *Env) ExtendType(v *Variant) *Env {
	return &Env{
		values: map[string]*ValueBinding{},
		types:  map[string]*Variant{v.NominalName: v},
		parent: env,
	}
}

// LookupValue walks the layer chain outward for name's binding.
func (env *Env) LookupValue(name string) (*ValueBinding, bool) {
	b := env.lookupLocalOrParent(name)
	return b, b != nil
}

func (env *Env) lookupLocalOrParent(name string) *ValueBinding {
	for e := env; e != nil; e = e.parent {
		if b, ok := e.values[name]; ok {
			return b
		}
	}
	return nil
}

// LookupType walks the layer chain outward for a declared variant type.
func (env *Env) LookupType(name string) (*Variant, bool) {
	for e := env; e != nil; e = e.parent {
		if v, ok := e.types[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// ValueNames collects every name bound in the value namespace, for
// similarity suggestions against an undefined variable.
func (env *Env) ValueNames() []string {
	seen := map[string]struct{}{}
	var names []string
	for e := env; e != nil; e = e.parent {
		for name := range e.values {
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}
	return names
}
