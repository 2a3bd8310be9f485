// Package extraction turns parsed declaration nodes into the normalized
// API-surface records that make up the inventory report.
package extraction

// Visibility classes for Python identifiers.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
	VisibilityDunder  = "dunder"
)

// Method kinds.
const (
	MethodKindInstance = "instance"
	MethodKindClass    = "class"
	MethodKindStatic   = "static"
)

// Scopes a constant can be declared in.
const (
	ScopeModule = "module"
	ScopeClass  = "class"
)

// ParameterRecord describes one formal parameter of a signature.
type ParameterRecord struct {
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind"`
	Annotation string `yaml:"annotation,omitempty"`
	Default    string `yaml:"default,omitempty"`
}

// SignatureRecord is the ordered parameter list plus return annotation of a
// function or method. Parameter order follows the declaration exactly.
type SignatureRecord struct {
	Params  []ParameterRecord `yaml:"params"`
	Returns string            `yaml:"returns,omitempty"`
}

// ConstantRecord is a module- or class-scope constant. Value is set only
// when the initializer could be resolved to a literal; ValueRepr always
// carries the source representation.
type ConstantRecord struct {
	Name       string `yaml:"name"`
	Visibility string `yaml:"visibility"`
	Scope      string `yaml:"scope"`
	Value      any    `yaml:"value,omitempty"`
	ValueRepr  string `yaml:"value_repr"`
}

// EnumMemberRecord is one member of an enumeration.
type EnumMemberRecord struct {
	Name      string `yaml:"name"`
	ValueRepr string `yaml:"value_repr"`
}

// EnumRecord is a class recognized as an enumeration by its base list.
type EnumRecord struct {
	Name      string             `yaml:"name"`
	QName     string             `yaml:"qname"`
	Docstring string             `yaml:"docstring,omitempty"`
	Members   []EnumMemberRecord `yaml:"members"`
}

// FunctionRecord is a module-scope function.
type FunctionRecord struct {
	Name       string          `yaml:"name"`
	QName      string          `yaml:"qname"`
	Visibility string          `yaml:"visibility"`
	Decorators []string        `yaml:"decorators"`
	Signature  SignatureRecord `yaml:"signature"`
	Docstring  string          `yaml:"docstring,omitempty"`
}

// MethodRecord is a function declared at class scope.
type MethodRecord struct {
	Name       string          `yaml:"name"`
	QName      string          `yaml:"qname"`
	Visibility string          `yaml:"visibility"`
	Kind       string          `yaml:"kind"`
	Decorators []string        `yaml:"decorators"`
	Signature  SignatureRecord `yaml:"signature"`
	Docstring  string          `yaml:"docstring,omitempty"`
}

// ClassRecord is a class with its nested constants and methods.
type ClassRecord struct {
	Name      string         `yaml:"name"`
	QName     string         `yaml:"qname"`
	Docstring string         `yaml:"docstring,omitempty"`
	Constants ConstantList   `yaml:"constants,omitempty"`
	Methods   []MethodRecord `yaml:"methods"`
}

// ModuleRecord is the fully extracted view of one source file. The
// config-gated collections (constants, enums, functions) are nil when their
// extraction is disabled and an empty non-nil list when enabled but empty;
// only the nil form is omitted from serialization.
type ModuleRecord struct {
	Path      string        `yaml:"path"`
	QName     string        `yaml:"qname"`
	Docstring string        `yaml:"docstring,omitempty"`
	Constants ConstantList  `yaml:"constants,omitempty"`
	Enums     EnumList      `yaml:"enums,omitempty"`
	Functions FunctionList  `yaml:"functions,omitempty"`
	Classes   []ClassRecord `yaml:"classes"`
}

// ConstantList distinguishes "extraction disabled" (nil, omitted from
// output) from "enabled but empty" (serialized as []).
type ConstantList []ConstantRecord

// IsZero implements yaml.IsZeroer.
func (l ConstantList) IsZero() bool { return l == nil }

// EnumList is the config-gated enum collection; see ConstantList.
type EnumList []EnumRecord

// IsZero implements yaml.IsZeroer.
func (l EnumList) IsZero() bool { return l == nil }

// FunctionList is the config-gated function collection; see ConstantList.
type FunctionList []FunctionRecord

// IsZero implements yaml.IsZeroer.
func (l FunctionList) IsZero() bool { return l == nil }
