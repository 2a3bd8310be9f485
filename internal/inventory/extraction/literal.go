package extraction

import (
	"strconv"
	"strings"

	"github.com/mvp-joe/api-inventory/internal/inventory/parsers"
)

// ResolveLiteral resolves an initializer expression to a plain Go value
// without executing any code. The value is non-nil only when the expression
// is a literal constant or a flat list/tuple/set/dict whose every element is
// itself a literal constant. The returned representation is always set: the
// verbatim source text, or "None" when there is no initializer.
func ResolveLiteral(e *parsers.Expr) (any, string) {
	if e == nil {
		return nil, "None"
	}
	repr := e.Text
	if repr == "" {
		repr = "None"
	}

	if v, ok := resolveScalar(e); ok {
		return v, repr
	}

	switch e.Kind {
	case parsers.ExprList, parsers.ExprTuple, parsers.ExprSet:
		vals := make([]any, 0, len(e.Elems))
		for i := range e.Elems {
			v, ok := resolveScalar(&e.Elems[i])
			if !ok {
				return nil, repr
			}
			vals = append(vals, v)
		}
		return vals, repr

	case parsers.ExprDict:
		m := make(map[any]any, len(e.Keys))
		for i := range e.Keys {
			k, ok := resolveScalar(&e.Keys[i])
			if !ok {
				return nil, repr
			}
			v, ok := resolveScalar(&e.Values[i])
			if !ok {
				return nil, repr
			}
			m[k] = v
		}
		return m, repr
	}

	return nil, repr
}

// resolveScalar resolves a single non-aggregate literal. A None literal
// resolves to nil with ok=true, which callers treat the same as an
// unresolved value at the top level but keep as an element inside
// aggregates.
func resolveScalar(e *parsers.Expr) (any, bool) {
	switch e.Kind {
	case parsers.ExprString:
		return decodePyString(e.Text)

	case parsers.ExprInt:
		v, err := strconv.ParseInt(strings.ReplaceAll(e.Text, "_", ""), 0, 64)
		if err != nil {
			return nil, false
		}
		return v, true

	case parsers.ExprFloat:
		v, err := strconv.ParseFloat(strings.ReplaceAll(e.Text, "_", ""), 64)
		if err != nil {
			return nil, false
		}
		return v, true

	case parsers.ExprBool:
		return e.Text == "True", true

	case parsers.ExprNone:
		return nil, true
	}

	return nil, false
}

// decodePyString strips an optional r/u prefix and the quote delimiters from
// a Python string literal and resolves escape sequences (unless raw).
// f-strings and bytes never reach here; the parser tags them unresolvable.
func decodePyString(text string) (string, bool) {
	raw := false
	i := 0
	for i < len(text) && text[i] != '"' && text[i] != '\'' {
		switch text[i] {
		case 'r', 'R':
			raw = true
		case 'u', 'U':
		default:
			return "", false
		}
		i++
	}

	s := text[i:]
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if len(s) >= 2*len(q) && strings.HasPrefix(s, q) && strings.HasSuffix(s, q) {
			s = s[len(q) : len(s)-len(q)]
			if raw {
				return s, true
			}
			return unescapePyString(s), true
		}
	}
	return "", false
}

func unescapePyString(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case '\\', '\'', '"':
			b.WriteByte(s[i])
		case '\n':
			// Line continuation drops the newline.
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
