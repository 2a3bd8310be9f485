package parsers

import "fmt"

// DeclKind tags the variant of a declaration node. The extractor pattern
// matches on this tag instead of doing reflective type dispatch.
type DeclKind int

const (
	// DeclOther covers statements the extractor never classifies
	// (imports, expression statements, control flow, and so on).
	DeclOther DeclKind = iota
	DeclAssignment
	DeclAnnAssignment
	DeclFunction
	DeclAsyncFunction
	DeclClass
)

// Parameter kinds, in the order they may legally appear in a signature.
const (
	ParamPositionalOnly      = "positional_only"
	ParamPositionalOrKeyword = "positional_or_keyword"
	ParamVarPositional       = "var_positional"
	ParamKeywordOnly         = "keyword_only"
	ParamVarKeyword          = "var_keyword"
)

// Param is one formal parameter of a function or method declaration.
type Param struct {
	Name       string
	Kind       string
	Annotation string // source text of the annotation, empty if absent
	Default    string // source text of the default value, empty if absent
}

// ExprKind classifies initializer expressions just deeply enough for
// literal-value resolution. Anything that is not a plain literal or a flat
// aggregate of literals is ExprOther.
type ExprKind int

const (
	ExprOther ExprKind = iota
	ExprString
	ExprInt
	ExprFloat
	ExprBool
	ExprNone
	ExprList
	ExprTuple
	ExprSet
	ExprDict
)

// Expr is a shallow structural view of an initializer expression. Text is
// always the verbatim source representation; Elems, Keys and Values are
// populated only for aggregate kinds.
type Expr struct {
	Kind   ExprKind
	Text   string
	Elems  []Expr
	Keys   []Expr
	Values []Expr
}

// Decl is a tagged-variant declaration node. Only the fields relevant to the
// tagged kind are populated; the rest stay zero.
type Decl struct {
	Kind DeclKind
	Line int // 1-based source line of the declaration

	// DeclAssignment / DeclAnnAssignment. Target is empty when the left
	// side is not a single bare identifier.
	Target     string
	Annotation string
	Value      *Expr // nil when there is no initializer

	// DeclFunction / DeclAsyncFunction / DeclClass
	Name       string
	Decorators []string // callee names, declaration order
	Params     []Param
	Returns    string // source text of the return annotation
	Docstring  string // raw, leading statement string if present

	// DeclClass
	Bases []string // source text of each base, declaration order
	Body  []Decl
}

// Module is the structural view of one parsed source file.
type Module struct {
	Docstring string
	Decls     []Decl
}

// ErrorKind distinguishes the two per-file failure modes.
type ErrorKind int

const (
	// ErrorSyntax means the text failed structural parsing.
	ErrorSyntax ErrorKind = iota
	// ErrorIO means the file could not be read or decoded.
	ErrorIO
)

// ParseError is a typed per-file failure. It never aborts a run; the
// coordinator records it against the module and moves on.
type ParseError struct {
	Kind ErrorKind
	Path string
	Line int // first offending line for syntax errors, 0 otherwise
	Msg  string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrorSyntax:
		if e.Line > 0 {
			return fmt.Sprintf("syntax error in %s at line %d: %s", e.Path, e.Line, e.Msg)
		}
		return fmt.Sprintf("syntax error in %s: %s", e.Path, e.Msg)
	default:
		return fmt.Sprintf("io error reading %s: %s", e.Path, e.Msg)
	}
}
