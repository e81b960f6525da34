package types

import "github.com/corelang/corecheck/internal/core"

// binOpSignature is the fixed (paramType, paramType, resultType) table
// for an operator tag; `:=` and the unary `*` are handled separately since
// their left operand's shape (Ref<α>) isn't known until inference time,
// and `==`/`!=` are handled separately since they're polymorphic rather
// than fixed to one operand type.
type binOpSignature struct {
	left, right, result Type
}

var arithmeticOps = map[string]binOpSignature{
	"+": {Int, Int, Int},
	"-": {Int, Int, Int},
	"*": {Int, Int, Int},
	"/": {Int, Int, Int},
}

var relationalOps = map[string]binOpSignature{
	"<":  {Int, Int, Bool},
	"<=": {Int, Int, Bool},
	">":  {Int, Int, Bool},
	">=": {Int, Int, Bool},
}

var logicalOps = map[string]binOpSignature{
	"&&": {Bool, Bool, Bool},
	"||": {Bool, Bool, Bool},
}

var stringOps = map[string]binOpSignature{
	"++": {String, String, String},
}

// Infer performs Algorithm W over a core expression, returning its
// inferred type under the context's ambient substitution. Failures are
// *Diagnostic values located at the offending expression.
func (c *Context) Infer(env *Env, expr core.Expr) (Type, error) {
	switch e := expr.(type) {

	case *core.Lit:
		return litType(e.Kind), nil

	case *core.Var:
		return c.inferVar(env, e)

	case *core.Lambda:
		return c.inferLambda(env, e)

	case *core.App:
		return c.inferApp(env, e)

	case *core.BinOp:
		return c.inferBinOp(env, e)

	case *core.UnOp:
		return c.inferUnOp(env, e)

	case *core.TypeAnnot:
		return c.inferAnnot(env, e)

	case *core.Unsafe:
		return c.Infer(env, e.Expr)

	case *core.Let:
		return c.inferLet(env, e)

	case *core.LetRec:
		return c.inferLetRec(env, e)

	case *core.LetRecGroup:
		return c.inferLetRecGroup(env, e)

	case *core.RecordLit:
		return c.inferRecordLit(env, e)

	case *core.RecordAccess:
		return c.inferRecordAccess(env, e)

	case *core.RecordUpdate:
		return c.inferRecordUpdate(env, e)

	case *core.VariantConstruct:
		return c.inferVariantConstruct(env, e)

	case *core.Match:
		return c.inferMatch(env, e)
	}

	return nil, &Diagnostic{
		Code:     TypeMismatch,
		Location: expr.Span(),
		Message:  "unrecognized expression node",
	}
}

func (c *Context) inferVar(env *Env, e *core.Var) (Type, error) {
	binding, ok := env.LookupValue(e.Name)
	if !ok {
		return nil, newUndefinedVariable(e.Name, e.Span(), env.ValueNames())
	}
	if binding.Scheme == nil {
		// A name with a single external declaration still carries its
		// binding as a one-entry overload set (see declareExternal), so it
		// resolves directly. Two or more candidates referenced bare (not
		// applied) can never be resolved — overloads disambiguate only at
		// application sites.
		if len(binding.Overload) == 1 {
			return c.Instantiate(binding.Overload[0].Scheme), nil
		}
		return nil, newAmbiguousOverload(e.Name, e.Span())
	}
	return c.Instantiate(binding.Scheme), nil
}

func (c *Context) inferLambda(env *Env, e *core.Lambda) (Type, error) {
	param := c.FreshVar()
	bodyEnv := env.ExtendValueMono(e.Param, param)
	bodyType, err := c.Infer(bodyEnv, e.Body)
	if err != nil {
		return nil, err
	}
	return &Fun{Params: []Type{c.resolve(param)}, Return: bodyType}, nil
}

func (c *Context) inferApp(env *Env, e *core.App) (Type, error) {
	if v, ok := e.Func.(*core.Var); ok {
		if binding, found := env.LookupValue(v.Name); found && binding.Scheme == nil {
			return c.inferOverloadApp(env, v.Name, binding.Overload, e)
		}
	}

	fnType, err := c.Infer(env, e.Func)
	if err != nil {
		return nil, err
	}
	argTypes := make([]Type, len(e.Args))
	for i, arg := range e.Args {
		at, err := c.Infer(env, arg)
		if err != nil {
			return nil, err
		}
		argTypes[i] = c.resolve(at)
	}
	result := c.FreshVar()
	candidate := &Fun{Params: argTypes, Return: result}
	if err := c.unify(candidate, c.resolve(fnType), e.Span()); err != nil {
		return nil, err
	}
	return c.resolve(result), nil
}

func (c *Context) inferOverloadApp(env *Env, name string, overloads []OverloadEntry, e *core.App) (Type, error) {
	argc := len(e.Args)
	var matches []OverloadEntry
	for _, o := range overloads {
		if o.Arity == argc {
			matches = append(matches, o)
		}
	}
	if len(matches) == 0 {
		return nil, newNoMatchingOverload(name, argc, e.Span())
	}
	if len(matches) > 1 {
		return nil, newAmbiguousOverload(name, e.Span())
	}

	fnType := c.Instantiate(matches[0].Scheme)
	argTypes := make([]Type, len(e.Args))
	for i, arg := range e.Args {
		at, err := c.Infer(env, arg)
		if err != nil {
			return nil, err
		}
		argTypes[i] = c.resolve(at)
	}
	result := c.FreshVar()
	candidate := &Fun{Params: argTypes, Return: result}
	if err := c.unify(candidate, c.resolve(fnType), e.Span()); err != nil {
		return nil, err
	}
	return c.resolve(result), nil
}

func (c *Context) inferBinOp(env *Env, e *core.BinOp) (Type, error) {
	if e.Op == ":=" {
		return c.inferRefAssign(env, e)
	}
	if e.Op == "==" || e.Op == "!=" {
		return c.inferEquality(env, e)
	}
	sig, ok := lookupBinOp(e.Op)
	if !ok {
		return nil, &Diagnostic{Code: TypeMismatch, Location: e.Span(), Message: "unknown operator: " + e.Op}
	}
	leftType, err := c.Infer(env, e.Left)
	if err != nil {
		return nil, err
	}
	if err := c.unify(c.resolve(leftType), sig.left, e.Left.Span()); err != nil {
		return nil, err
	}
	rightType, err := c.Infer(env, e.Right)
	if err != nil {
		return nil, err
	}
	if err := c.unify(c.resolve(rightType), sig.right, e.Right.Span()); err != nil {
		return nil, err
	}
	return sig.result, nil
}

func lookupBinOp(op string) (binOpSignature, bool) {
	if s, ok := arithmeticOps[op]; ok {
		return s, true
	}
	if s, ok := relationalOps[op]; ok {
		return s, true
	}
	if s, ok := logicalOps[op]; ok {
		return s, true
	}
	if s, ok := stringOps[op]; ok {
		return s, true
	}
	return binOpSignature{}, false
}

// inferEquality types `==`/`!=` as polymorphic α×α→Bool: both operands must
// unify with the same fresh variable, but that variable is never bound to a
// fixed type, so equality works across Int, String, Bool, records, variants,
// or any other comparable shape.
func (c *Context) inferEquality(env *Env, e *core.BinOp) (Type, error) {
	operand := c.FreshVar()
	leftType, err := c.Infer(env, e.Left)
	if err != nil {
		return nil, err
	}
	if err := c.unify(c.resolve(leftType), operand, e.Left.Span()); err != nil {
		return nil, err
	}
	rightType, err := c.Infer(env, e.Right)
	if err != nil {
		return nil, err
	}
	if err := c.unify(c.resolve(rightType), c.resolve(operand), e.Right.Span()); err != nil {
		return nil, err
	}
	return Bool, nil
}

func (c *Context) inferRefAssign(env *Env, e *core.BinOp) (Type, error) {
	elem := c.FreshVar()
	leftType, err := c.Infer(env, e.Left)
	if err != nil {
		return nil, err
	}
	if err := c.unify(c.resolve(leftType), RefOf(elem), e.Left.Span()); err != nil {
		return nil, err
	}
	rightType, err := c.Infer(env, e.Right)
	if err != nil {
		return nil, err
	}
	if err := c.unify(c.resolve(rightType), c.resolve(elem), e.Right.Span()); err != nil {
		return nil, err
	}
	return Unit, nil
}

func (c *Context) inferUnOp(env *Env, e *core.UnOp) (Type, error) {
	switch e.Op {
	case "-":
		operandType, err := c.Infer(env, e.Operand)
		if err != nil {
			return nil, err
		}
		if err := c.unify(c.resolve(operandType), Int, e.Span()); err != nil {
			return nil, err
		}
		return Int, nil

	case "!":
		operandType, err := c.Infer(env, e.Operand)
		if err != nil {
			return nil, err
		}
		if err := c.unify(c.resolve(operandType), Bool, e.Span()); err != nil {
			return nil, err
		}
		return Bool, nil

	case "*":
		elem := c.FreshVar()
		operandType, err := c.Infer(env, e.Operand)
		if err != nil {
			return nil, err
		}
		if err := c.unify(c.resolve(operandType), RefOf(elem), e.Span()); err != nil {
			return nil, err
		}
		return c.resolve(elem), nil
	}
	return nil, &Diagnostic{Code: TypeMismatch, Location: e.Span(), Message: "unknown operator: " + e.Op}
}

func (c *Context) inferAnnot(env *Env, e *core.TypeAnnot) (Type, error) {
	exprType, err := c.Infer(env, e.Expr)
	if err != nil {
		return nil, err
	}
	annotType, err := ConvertTypeExpr(env, e.Type, e.Span())
	if err != nil {
		return nil, err
	}
	if err := c.unify(c.resolve(exprType), annotType, e.Span()); err != nil {
		return nil, err
	}
	return annotType, nil
}

func (c *Context) inferLet(env *Env, e *core.Let) (Type, error) {
	surrounding := c.Level
	var valueType Type
	err := c.EnterLevel(func() error {
		t, err := c.Infer(env, e.Value)
		valueType = t
		return err
	})
	if err != nil {
		return nil, err
	}

	scheme := c.bindingScheme(e.Value, valueType, surrounding)
	bodyEnv := env.ExtendValue(e.Name, scheme)
	return c.Infer(bodyEnv, e.Body)
}

func (c *Context) inferLetRec(env *Env, e *core.LetRec) (Type, error) {
	surrounding := c.Level
	var valueType Type
	err := c.EnterLevel(func() error {
		fresh := c.FreshVar()
		recEnv := env.ExtendValueMono(e.Name, fresh)
		t, err := c.Infer(recEnv, e.Value)
		if err != nil {
			return err
		}
		if err := c.unify(c.resolve(fresh), c.resolve(t), e.Span()); err != nil {
			return err
		}
		valueType = c.resolve(fresh)
		return nil
	})
	if err != nil {
		return nil, err
	}

	scheme := c.bindingScheme(e.Value, valueType, surrounding)
	bodyEnv := env.ExtendValue(e.Name, scheme)
	return c.Infer(bodyEnv, e.Body)
}

func (c *Context) inferLetRecGroup(env *Env, e *core.LetRecGroup) (Type, error) {
	surrounding := c.Level
	preBound := make(map[string]*Var, len(e.Bindings))
	inferred := make(map[string]Type, len(e.Bindings))
	err := c.EnterLevel(func() error {
		preEnv := env
		for _, b := range e.Bindings {
			v := c.FreshVar()
			preBound[b.Name] = v
			preEnv = preEnv.ExtendValueMono(b.Name, v)
		}
		for _, b := range e.Bindings {
			t, err := c.Infer(preEnv, b.Value)
			if err != nil {
				return err
			}
			if err := c.unify(c.resolve(preBound[b.Name]), c.resolve(t), e.Span()); err != nil {
				return err
			}
			inferred[b.Name] = c.resolve(preBound[b.Name])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	bindings := make(map[string]*ValueBinding, len(e.Bindings))
	for _, b := range e.Bindings {
		scheme := c.bindingScheme(b.Value, inferred[b.Name], surrounding)
		bindings[b.Name] = schemeBinding(scheme)
	}
	bodyEnv := env.ExtendValues(bindings)
	return c.Infer(bodyEnv, e.Body)
}

// bindingScheme applies the syntactic value restriction: generalize only
// if rhs is a syntactic value, otherwise bind monomorphically at the
// surrounding level. A restricted binding is silently monomorphic —
// there is no diagnostic for the narrowing itself, only for whatever
// later use of the name fails to unify.
func (c *Context) bindingScheme(rhs core.Expr, inferred Type, surroundingLevel int) *Scheme {
	if isSyntacticValue(rhs) {
		return c.Generalize(inferred, surroundingLevel)
	}
	return monoScheme(c.resolve(inferred))
}

func (c *Context) inferRecordLit(env *Env, e *core.RecordLit) (Type, error) {
	fields := make(map[string]Type, len(e.FieldNames))
	for i, name := range e.FieldNames {
		t, err := c.Infer(env, e.FieldVals[i])
		if err != nil {
			return nil, err
		}
		fields[name] = c.resolve(t)
	}
	return &Record{Fields: fields}, nil
}

func (c *Context) inferRecordAccess(env *Env, e *core.RecordAccess) (Type, error) {
	recType, err := c.Infer(env, e.Record)
	if err != nil {
		return nil, err
	}
	resolved := c.resolve(recType)
	rec, ok := resolved.(*Record)
	if !ok {
		return nil, newNonRecordAccess(resolved, e.Span())
	}
	fieldType, present := rec.Fields[e.Field]
	if !present {
		return nil, newMissingField(e.Field, e.Span(), sortedKeys(rec.Fields))
	}
	return c.resolve(fieldType), nil
}

func (c *Context) inferRecordUpdate(env *Env, e *core.RecordUpdate) (Type, error) {
	recType, err := c.Infer(env, e.Record)
	if err != nil {
		return nil, err
	}
	resolved := c.resolve(recType)
	rec, ok := resolved.(*Record)
	if !ok {
		return nil, newNonRecordAccess(resolved, e.Span())
	}
	updated := make(map[string]Type, len(rec.Fields))
	for k, v := range rec.Fields {
		updated[k] = v
	}
	for i, name := range e.FieldNames {
		baseType, present := rec.Fields[name]
		if !present {
			return nil, newMissingField(name, e.Span(), sortedKeys(rec.Fields))
		}
		valType, err := c.Infer(env, e.FieldVals[i])
		if err != nil {
			return nil, err
		}
		if err := c.unify(c.resolve(valType), c.resolve(baseType), e.Span()); err != nil {
			return nil, err
		}
		updated[name] = c.resolve(baseType)
	}
	return &Record{Fields: updated}, nil
}

func (c *Context) inferVariantConstruct(env *Env, e *core.VariantConstruct) (Type, error) {
	binding, ok := env.LookupValue(e.Constructor)
	if !ok || binding.Scheme == nil {
		return nil, newUndefinedConstructor(e.Constructor, e.Span(), env.ValueNames())
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

	if len(e.Args) != len(params) {
		return nil, newConstructorArity(e.Constructor, len(params), len(e.Args), e.Span())
	}
	for i, arg := range e.Args {
		at, err := c.Infer(env, arg)
		if err != nil {
			return nil, err
		}
		if err := c.unify(c.resolve(at), c.resolve(params[i]), arg.Span()); err != nil {
			return nil, err
		}
	}
	return c.resolve(ret), nil
}

func (c *Context) inferMatch(env *Env, e *core.Match) (Type, error) {
	scrutineeType, err := c.Infer(env, e.Scrutinee)
	if err != nil {
		return nil, err
	}
	resolvedScrutinee := c.resolve(scrutineeType)

	if err := CheckExhaustive(env, resolvedScrutinee, e.Arms, e.Span()); err != nil {
		return nil, err
	}

	var resultType Type = c.FreshVar()
	for _, arm := range e.Arms {
		bindings, err := c.CheckPattern(env, arm.Pattern, resolvedScrutinee, e.Span())
		if err != nil {
			return nil, err
		}
		armEnv := env
		if len(bindings) > 0 {
			vb := make(map[string]*ValueBinding, len(bindings))
			for name, t := range bindings {
				vb[name] = monoBinding(t)
			}
			armEnv = env.ExtendValues(vb)
		}
		if arm.Guard != nil {
			guardType, err := c.Infer(armEnv, arm.Guard)
			if err != nil {
				return nil, err
			}
			if err := c.unify(c.resolve(guardType), Bool, arm.Guard.Span()); err != nil {
				return nil, newInvalidGuard(c.resolve(guardType), arm.Guard.Span())
			}
		}
		bodyType, err := c.Infer(armEnv, arm.Body)
		if err != nil {
			return nil, err
		}
		if err := c.unify(c.resolve(resultType), c.resolve(bodyType), arm.Body.Span()); err != nil {
			return nil, err
		}
		resultType = c.resolve(resultType)
	}
	return resultType, nil
}
