// Package core defines the lowered, desugared expression tree that the
// type-checking engine consumes. Lexing, parsing, and desugaring happen
// upstream of this package; core never re-derives source text from a
// token stream, it only walks an already-built tree.
package core

import "fmt"

// Position locates a node in the original source. It is carried through
// from whatever produced the core tree (a parser, a test fixture, a JSON
// fixture decoded by this package's sibling decode.go) and is opaque to
// the checker beyond being attached to diagnostics.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Node carries the common span every expression/pattern is tagged with.
type Node struct {
	Pos Position
}

func (n Node) Span() Position { return n.Pos }

// Expr is the base interface for every core expression node.
type Expr interface {
	Span() Position
	exprNode()
}

// Literal kinds.
type LitKind int

const (
	IntLit LitKind = iota
	FloatLit
	StringLit
	BoolLit
	UnitLit
)

// Lit is a literal of one of the five primitive kinds.
type Lit struct {
	Node
	Kind  LitKind
	Value interface{}
}

func (*Lit) exprNode() {}

// Var is a reference to a value binding.
type Var struct {
	Node
	Name string
}

func (*Var) exprNode() {}

// Lambda is a single-parameter function; the parameter is always a bare
// variable, never a destructuring pattern.
type Lambda struct {
	Node
	Param string
	Body  Expr
}

func (*Lambda) exprNode() {}

// App is function application with an ordered argument list.
type App struct {
	Node
	Func Expr
	Args []Expr
}

func (*App) exprNode() {}

// BinOp is a binary operation tagged by operator symbol.
type BinOp struct {
	Node
	Op    string
	Left  Expr
	Right Expr
}

func (*BinOp) exprNode() {}

// UnOp is a unary operation tagged by operator symbol.
type UnOp struct {
	Node
	Op      string
	Operand Expr
}

func (*UnOp) exprNode() {}

// Let is a non-recursive single binding.
type Let struct {
	Node
	Name  string
	Value Expr
	Body  Expr
}

func (*Let) exprNode() {}

// LetRec is a single self-recursive binding (`let rec f = ...`).
type LetRec struct {
	Node
	Name  string
	Value Expr
	Body  Expr
}

func (*LetRec) exprNode() {}

// RecBinding is one member of a mutually recursive group; each binding
// is named by a plain variable and is never mutable.
type RecBinding struct {
	Name  string
	Value Expr
}

// LetRecGroup is a set of mutually recursive bindings sharing one scope.
type LetRecGroup struct {
	Node
	Bindings []RecBinding
	Body     Expr
}

func (*LetRecGroup) exprNode() {}

// MatchArm is one case of a Match.
type MatchArm struct {
	Pattern Pattern
	Guard   Expr // optional
	Body    Expr
}

// Match is pattern-matching over a scrutinee.
type Match struct {
	Node
	Scrutinee Expr
	Arms      []MatchArm
}

func (*Match) exprNode() {}

// RecordLit constructs a record from field expressions in order.
type RecordLit struct {
	Node
	FieldNames []string
	FieldVals  []Expr
}

func (*RecordLit) exprNode() {}

// RecordAccess projects a field out of a record.
type RecordAccess struct {
	Node
	Record Expr
	Field  string
}

func (*RecordAccess) exprNode() {}

// RecordUpdate produces a new record with the named fields overwritten.
type RecordUpdate struct {
	Node
	Record     Expr
	FieldNames []string
	FieldVals  []Expr
}

func (*RecordUpdate) exprNode() {}

// VariantConstruct applies a variant constructor to its arguments.
type VariantConstruct struct {
	Node
	Constructor string
	Args        []Expr
}

func (*VariantConstruct) exprNode() {}

// TypeAnnot ascribes a surface type expression to an inner expression.
type TypeAnnot struct {
	Node
	Expr Expr
	Type TypeExpr
}

func (*TypeAnnot) exprNode() {}

// Unsafe is a transparent passthrough wrapper.
type Unsafe struct {
	Node
	Expr Expr
}

func (*Unsafe) exprNode() {}

// Pattern is the base interface for every core pattern node.
type Pattern interface {
	patternNode()
}

// WildcardPattern matches anything, binds nothing.
type WildcardPattern struct{}

func (*WildcardPattern) patternNode() {}

// VarPattern binds the scrutinee to a name.
type VarPattern struct {
	Name string
}

func (*VarPattern) patternNode() {}

// LitPattern matches a literal value.
type LitPattern struct {
	Kind  LitKind
	Value interface{}
}

func (*LitPattern) patternNode() {}

// VariantPattern matches a constructor application.
type VariantPattern struct {
	Constructor string
	Args        []Pattern
}

func (*VariantPattern) patternNode() {}

// RecordFieldPattern is one field of a RecordPattern.
type RecordFieldPattern struct {
	Name    string
	Pattern Pattern
}

// RecordPattern matches (a subset of) a record's fields.
type RecordPattern struct {
	Fields []RecordFieldPattern
}

func (*RecordPattern) patternNode() {}

// TypeExpr is the base interface for surface type expressions attached to
// annotations and declarations.
type TypeExpr interface {
	typeExprNode()
}

// TypeConstExpr names a nullary or already-applied type, e.g. `Int`.
type TypeConstExpr struct {
	Name string
}

func (*TypeConstExpr) typeExprNode() {}

// TypeVarExpr names a free type variable in an annotation. The converter
// rejects these as unsupported — a user-facing annotation may not
// introduce its own free variable.
type TypeVarExpr struct {
	Name string
}

func (*TypeVarExpr) typeExprNode() {}

// TypeFuncExpr is a function type `(P1, ..., Pn) -> R`.
type TypeFuncExpr struct {
	Params []TypeExpr
	Return TypeExpr
}

func (*TypeFuncExpr) typeExprNode() {}

// TypeAppExpr is a constructor applied to arguments, e.g. `List<Int>`.
type TypeAppExpr struct {
	Constructor string
	Args        []TypeExpr
}

func (*TypeAppExpr) typeExprNode() {}

// TypeRecordFieldExpr is one field of a TypeRecordExpr.
type TypeRecordFieldExpr struct {
	Name string
	Type TypeExpr
}

// TypeRecordExpr is a record type.
type TypeRecordExpr struct {
	Fields []TypeRecordFieldExpr
}

func (*TypeRecordExpr) typeExprNode() {}

// TypeVariantFieldExpr names one inline constructor of a TypeVariantExpr.
type TypeVariantFieldExpr struct {
	Name   string
	Params []TypeExpr
}

// TypeVariantExpr is an inline variant type. The converter rejects these
// as unsupported; only declared (named) variants are usable.
type TypeVariantExpr struct {
	Constructors []TypeVariantFieldExpr
}

func (*TypeVariantExpr) typeExprNode() {}

// TypeUnionExpr is an ordered union of member types.
type TypeUnionExpr struct {
	Members []TypeExpr
}

func (*TypeUnionExpr) typeExprNode() {}

// TypeTupleExpr is an ordered tuple of element types.
type TypeTupleExpr struct {
	Elements []TypeExpr
}

func (*TypeTupleExpr) typeExprNode() {}

// ConstructorSig is one constructor of a declared variant type:
// its ordered parameter types (each referring to the type's own
// parameters or other declared/primitive types).
type ConstructorSig struct {
	Name   string
	Params []TypeExpr
}

// TypeDecl declares a nominal variant type together with its parameters
// and constructors, e.g. `type Option<T> = Some(T) | None`.
type TypeDecl struct {
	Node
	Name         string
	Params       []string
	Constructors []ConstructorSig
}

// ExternalDecl declares a binding implemented outside the core (an FFI
// symbol); the checker consumes only its declared type and, when present,
// the overload-grouping metadata (target symbol + import source).
type ExternalDecl struct {
	Node
	Name         string
	Type         TypeExpr
	TargetSymbol string
	ImportSource string // optional
}

// LetDecl is a top-level non-recursive (or self-recursive) binding.
type LetDecl struct {
	Node
	Name      string
	Pattern   Pattern // decoded and kept; the checker binds Name only and does not check or destructure Pattern
	Value     Expr
	Recursive bool
	Mutable   bool
	Exported  bool
}

// LetRecGroupDecl is a top-level mutually recursive group.
type LetRecGroupDecl struct {
	Node
	Bindings []RecBinding
	Exported []string // names exported, subset of Bindings' names
}

// Decl is the base interface for top-level declarations.
type Decl interface {
	declNode()
}

func (*LetDecl) declNode()         {}
func (*LetRecGroupDecl) declNode() {}
func (*ExternalDecl) declNode()    {}
func (*TypeDecl) declNode()        {}

// Module is an ordered sequence of top-level declarations — the unit the
// checker's single entry point consumes.
type Module struct {
	Decls []Decl
}
