package extraction

import (
	"regexp"
	"sort"
	"strings"

	"github.com/mvp-joe/api-inventory/internal/config"
	"github.com/mvp-joe/api-inventory/internal/inventory/parsers"
)

// enumBaseNames are the base classes that mark a class as an enumeration,
// matched by simple name or by the trailing attribute of a dotted base.
var enumBaseNames = map[string]bool{
	"Enum":    true,
	"IntEnum": true,
	"StrEnum": true,
	"Flag":    true,
	"IntFlag": true,
}

var uppercaseName = regexp.MustCompile(`^[A-Z0-9_]+$`)

// Extractor walks declaration nodes under one scope and classifies them into
// records, driven by the run configuration. Each nested class gets its own
// Extractor rooted at the class's qualified name.
type Extractor struct {
	cfg    *config.Config
	parent string // qualified name of the enclosing module or class
}

// New creates an extractor for the scope identified by parentQName.
func New(cfg *config.Config, parentQName string) *Extractor {
	return &Extractor{cfg: cfg, parent: parentQName}
}

// Extract classifies a declaration list at the given scope. Every returned
// collection is non-nil and sorted by its ordering key: constants by name,
// enums/functions/classes by qualified name. Callers drop collections whose
// extraction the configuration disables.
func (e *Extractor) Extract(decls []parsers.Decl, scope string) (ConstantList, EnumList, FunctionList, []ClassRecord) {
	consts := ConstantList{}
	enums := EnumList{}
	funcs := FunctionList{}
	classes := []ClassRecord{}

	for i := range decls {
		d := &decls[i]
		switch d.Kind {
		case parsers.DeclAssignment, parsers.DeclAnnAssignment:
			if e.cfg.IncludeConstants && d.Target != "" {
				if c, ok := e.constant(d, scope); ok {
					consts = append(consts, c)
				}
			}

		case parsers.DeclFunction, parsers.DeclAsyncFunction:
			if e.cfg.IncludeFunctions && scope == ScopeModule && e.visible(d.Name) {
				funcs = append(funcs, e.function(d))
			}

		case parsers.DeclClass:
			if e.visible(d.Name) {
				qname := e.parent + "." + d.Name
				if e.cfg.IncludeEnums && isEnum(d.Bases) {
					enums = append(enums, e.enum(d, qname))
				} else {
					classes = append(classes, e.class(d, qname))
				}
			}
		}
	}

	sort.Slice(consts, func(i, j int) bool { return consts[i].Name < consts[j].Name })
	sort.Slice(enums, func(i, j int) bool { return enums[i].QName < enums[j].QName })
	sort.Slice(funcs, func(i, j int) bool { return funcs[i].QName < funcs[j].QName })
	sort.Slice(classes, func(i, j int) bool { return classes[i].QName < classes[j].QName })

	return consts, enums, funcs, classes
}

// constant applies the configured acceptance policy to an assignment target.
// Names that fail the policy are dropped silently; that is filtering, not an
// error.
func (e *Extractor) constant(d *parsers.Decl, scope string) (ConstantRecord, bool) {
	name := d.Target
	vis := Visibility(name)

	switch e.cfg.ConstantVisibility {
	case config.ConstantVisibilityUppercase:
		if vis != VisibilityPublic || !uppercaseName.MatchString(name) || !strings.ContainsAny(name, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
			return ConstantRecord{}, false
		}
	default:
		if vis != VisibilityPublic {
			return ConstantRecord{}, false
		}
	}

	value, repr := ResolveLiteral(d.Value)
	return ConstantRecord{
		Name:       name,
		Visibility: vis,
		Scope:      scope,
		Value:      value,
		ValueRepr:  repr,
	}, true
}

func (e *Extractor) function(d *parsers.Decl) FunctionRecord {
	return FunctionRecord{
		Name:       d.Name,
		QName:      e.parent + "." + d.Name,
		Visibility: Visibility(d.Name),
		Decorators: sortedDecorators(d.Decorators),
		Signature:  signature(d),
		Docstring:  e.docstring(d.Docstring),
	}
}

// class extracts a ClassRecord: nested constants via a recursive extractor
// at class scope, plus methods. Nested classes and enums inside a class body
// are not surfaced. __init__ is always kept as a method regardless of the
// public-only filter.
func (e *Extractor) class(d *parsers.Decl, qname string) ClassRecord {
	sub := New(e.cfg, qname)
	consts, _, _, _ := sub.Extract(d.Body, ScopeClass)

	methods := []MethodRecord{}
	for i := range d.Body {
		m := &d.Body[i]
		if m.Kind != parsers.DeclFunction && m.Kind != parsers.DeclAsyncFunction {
			continue
		}
		if m.Name == "__init__" || e.visible(m.Name) {
			methods = append(methods, e.method(m, qname))
		}
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i].Name < methods[j].Name })

	rec := ClassRecord{
		Name:      d.Name,
		QName:     qname,
		Docstring: e.docstring(d.Docstring),
		Constants: consts,
		Methods:   methods,
	}
	if !e.cfg.IncludeConstants {
		rec.Constants = nil
	}
	return rec
}

func (e *Extractor) enum(d *parsers.Decl, qname string) EnumRecord {
	members := []EnumMemberRecord{}
	for i := range d.Body {
		m := &d.Body[i]
		if m.Kind != parsers.DeclAssignment && m.Kind != parsers.DeclAnnAssignment {
			continue
		}
		if m.Target == "" || strings.HasPrefix(m.Target, "_") {
			continue
		}
		_, repr := ResolveLiteral(m.Value)
		members = append(members, EnumMemberRecord{Name: m.Target, ValueRepr: repr})
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })

	return EnumRecord{
		Name:      d.Name,
		QName:     qname,
		Docstring: e.docstring(d.Docstring),
		Members:   members,
	}
}

// method builds a MethodRecord. __init__ is always kind "instance", even
// when its decorators would otherwise suggest static or class-level.
func (e *Extractor) method(d *parsers.Decl, classQName string) MethodRecord {
	kind := methodKind(d.Decorators)
	if d.Name == "__init__" {
		kind = MethodKindInstance
	}

	return MethodRecord{
		Name:       d.Name,
		QName:      classQName + "." + d.Name,
		Visibility: Visibility(d.Name),
		Kind:       kind,
		Decorators: sortedDecorators(d.Decorators),
		Signature:  signature(d),
		Docstring:  e.docstring(d.Docstring),
	}
}

func (e *Extractor) visible(name string) bool {
	return !e.cfg.PublicOnly || Visibility(name) == VisibilityPublic
}

func (e *Extractor) docstring(raw string) string {
	if raw == "" {
		return ""
	}
	if e.cfg.StripDocstrings {
		return strings.TrimSpace(raw)
	}
	return raw
}

// methodKind classifies a method from its decorator names; a decorator
// ending in "staticmethod" or "classmethod" wins, last one standing.
func methodKind(decorators []string) string {
	kind := MethodKindInstance
	for _, name := range decorators {
		if strings.HasSuffix(name, "staticmethod") {
			kind = MethodKindStatic
		} else if strings.HasSuffix(name, "classmethod") {
			kind = MethodKindClass
		}
	}
	return kind
}

// isEnum reports whether a base list names one of the enum base classes,
// either directly or as the trailing attribute of a dotted name.
func isEnum(bases []string) bool {
	for _, base := range bases {
		simple := base
		if idx := strings.LastIndex(base, "."); idx >= 0 {
			simple = base[idx+1:]
		}
		if enumBaseNames[simple] {
			return true
		}
	}
	return false
}

func signature(d *parsers.Decl) SignatureRecord {
	params := make([]ParameterRecord, 0, len(d.Params))
	for _, p := range d.Params {
		params = append(params, ParameterRecord{
			Name:       p.Name,
			Kind:       p.Kind,
			Annotation: p.Annotation,
			Default:    p.Default,
		})
	}
	return SignatureRecord{Params: params, Returns: d.Returns}
}

func sortedDecorators(decorators []string) []string {
	out := make([]string, len(decorators))
	copy(out, decorators)
	sort.Strings(out)
	return out
}
