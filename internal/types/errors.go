package types

import (
	"fmt"
	"sort"
	"strings"
)

// DiagnosticCode names one of the checker's failure kinds.
type DiagnosticCode string

const (
	UndefinedVariable          DiagnosticCode = "undefined_variable"
	UndefinedConstructor       DiagnosticCode = "undefined_constructor"
	ConstructorArity           DiagnosticCode = "constructor_arity"
	TypeMismatch               DiagnosticCode = "type_mismatch"
	ArityMismatch              DiagnosticCode = "arity_mismatch"
	InfiniteType               DiagnosticCode = "infinite_type"
	MissingField               DiagnosticCode = "missing_field"
	NonRecordAccess            DiagnosticCode = "non_record_access"
	NonExhaustiveMatch         DiagnosticCode = "non_exhaustive_match"
	InvalidGuard               DiagnosticCode = "invalid_guard"
	DuplicatePatternVariable   DiagnosticCode = "duplicate_pattern_variable"
	ValueRestriction           DiagnosticCode = "value_restriction"
	EscapingTypeVariable       DiagnosticCode = "escaping_type_variable"
	UnsupportedTypeAnnotation  DiagnosticCode = "unsupported_type_annotation"
	NoMatchingOverload         DiagnosticCode = "no_matching_overload"
	AmbiguousOverload          DiagnosticCode = "ambiguous_overload"
	DuplicateOverloadTarget    DiagnosticCode = "duplicate_overload_target"
	InconsistentOverloadImport DiagnosticCode = "inconsistent_overload_import"
)

// Diagnostic is the single failure type the checker ever raises: a code,
// the source location it occurred at, a human message, and an optional
// hint (typically a similarity suggestion). The checker halts on the
// first one raised — there is no multi-error collection.
type Diagnostic struct {
	Code     DiagnosticCode
	Location Position
	Message  string
	Hint     string
}

func (d *Diagnostic) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", d.Location.String(), d.Message)
	if d.Hint != "" {
		fmt.Fprintf(&b, " (%s)", d.Hint)
	}
	return b.String()
}

func newUndefinedVariable(name string, loc Position, candidates []string) *Diagnostic {
	return &Diagnostic{
		Code:     UndefinedVariable,
		Location: loc,
		Message:  fmt.Sprintf("undefined variable: %s", name),
		Hint:     suggestionHint(name, candidates),
	}
}

func newUndefinedConstructor(name string, loc Position, candidates []string) *Diagnostic {
	return &Diagnostic{
		Code:     UndefinedConstructor,
		Location: loc,
		Message:  fmt.Sprintf("undefined constructor: %s", name),
		Hint:     suggestionHint(name, candidates),
	}
}

func newConstructorArity(name string, want, got int, loc Position) *Diagnostic {
	return &Diagnostic{
		Code:     ConstructorArity,
		Location: loc,
		Message:  fmt.Sprintf("constructor %s expects %d argument(s), found %d", name, want, got),
	}
}

func newMissingField(field string, loc Position, candidates []string) *Diagnostic {
	return &Diagnostic{
		Code:     MissingField,
		Location: loc,
		Message:  fmt.Sprintf("missing field: %s", field),
		Hint:     suggestionHint(field, candidates),
	}
}

func newNonRecordAccess(found Type, loc Position) *Diagnostic {
	return &Diagnostic{
		Code:     NonRecordAccess,
		Location: loc,
		Message:  fmt.Sprintf("field access on non-record type: %s", found.String()),
	}
}

func newNonExhaustiveMatch(missing []string, loc Position) *Diagnostic {
	return &Diagnostic{
		Code:     NonExhaustiveMatch,
		Location: loc,
		Message:  fmt.Sprintf("non-exhaustive match, missing: %s", strings.Join(missing, ", ")),
	}
}

func newInvalidGuard(found Type, loc Position) *Diagnostic {
	return &Diagnostic{
		Code:     InvalidGuard,
		Location: loc,
		Message:  fmt.Sprintf("guard must be Bool, found %s", found.String()),
	}
}

func newDuplicatePatternVariable(name string, loc Position) *Diagnostic {
	return &Diagnostic{
		Code:     DuplicatePatternVariable,
		Location: loc,
		Message:  fmt.Sprintf("duplicate binding in pattern: %s", name),
	}
}

func newUnsupportedTypeAnnotation(reason string, loc Position) *Diagnostic {
	return &Diagnostic{
		Code:     UnsupportedTypeAnnotation,
		Location: loc,
		Message:  fmt.Sprintf("unsupported type annotation: %s", reason),
	}
}

func newNoMatchingOverload(name string, argc int, loc Position) *Diagnostic {
	return &Diagnostic{
		Code:     NoMatchingOverload,
		Location: loc,
		Message:  fmt.Sprintf("no overload of %s accepts %d argument(s)", name, argc),
	}
}

func newAmbiguousOverload(name string, loc Position) *Diagnostic {
	return &Diagnostic{
		Code:     AmbiguousOverload,
		Location: loc,
		Message:  fmt.Sprintf("ambiguous overload: %s", name),
	}
}

func newDuplicateOverloadTarget(name, target string, loc Position) *Diagnostic {
	return &Diagnostic{
		Code:     DuplicateOverloadTarget,
		Location: loc,
		Message:  fmt.Sprintf("duplicate overload target %s for %s", target, name),
	}
}

func newInconsistentOverloadImport(name string, loc Position) *Diagnostic {
	return &Diagnostic{
		Code:     InconsistentOverloadImport,
		Location: loc,
		Message:  fmt.Sprintf("inconsistent import source across overloads of %s", name),
	}
}

// suggestionHint computes a Levenshtein-distance hint over candidates,
// keeping only matches within distance 2 of name, sorted by distance then
// name, capped at 3 — undefined-variable and missing-field diagnostics
// share this logic.
func suggestionHint(name string, candidates []string) string {
	type scored struct {
		name string
		dist int
	}
	var near []scored
	for _, c := range candidates {
		d := levenshtein(name, c)
		if d > 0 && d <= 2 {
			near = append(near, scored{c, d})
		}
	}
	if len(near) == 0 {
		return ""
	}
	sort.Slice(near, func(i, j int) bool {
		if near[i].dist != near[j].dist {
			return near[i].dist < near[j].dist
		}
		return near[i].name < near[j].name
	})
	if len(near) > 3 {
		near = near[:3]
	}
	names := make([]string, len(near))
	for i, s := range near {
		names[i] = s.name
	}
	return fmt.Sprintf("did you mean: %s?", strings.Join(names, ", "))
}

// levenshtein computes the edit distance between a and b.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			min := del
			if ins < min {
				min = ins
			}
			if sub < min {
				min = sub
			}
			curr[j] = min
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
