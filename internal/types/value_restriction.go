package types

import "github.com/corelang/corecheck/internal/core"

// isSyntacticValue reports whether expr is allowed to generalize its
// inferred type under the syntactic value restriction: a literal,
// a variable reference, a lambda, a variant constructor applied
// entirely to values, a record literal built entirely from values, or an
// annotation/unsafe wrapper around a syntactic value. Everything else —
// applications, matches, let bodies, operators, record access/update —
// must bind monomorphically.
func isSyntacticValue(expr core.Expr) bool {
	switch e := expr.(type) {
	case *core.Lit:
		return true
	case *core.Var:
		return true
	case *core.Lambda:
		return true
	case *core.VariantConstruct:
		for _, arg := range e.Args {
			if !isSyntacticValue(arg) {
				return false
			}
		}
		return true
	case *core.RecordLit:
		for _, v := range e.FieldVals {
			if !isSyntacticValue(v) {
				return false
			}
		}
		return true
	case *core.TypeAnnot:
		return isSyntacticValue(e.Expr)
	case *core.Unsafe:
		return isSyntacticValue(e.Expr)
	default:
		return false
	}
}
