package parsers

import (
	"os"
	"strings"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// pythonLanguage is shared by all parses; tree-sitter languages are immutable.
var pythonLanguage = sitter.NewLanguage(python.Language())

// ParseFile reads and structurally parses one Python source file. It never
// imports or executes the analyzed code. Failures are always *ParseError:
// ErrorIO for unreadable or undecodable files, ErrorSyntax for text that
// fails parsing.
func ParseFile(path string) (*Module, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Kind: ErrorIO, Path: path, Msg: err.Error()}
	}
	if !utf8.Valid(source) {
		return nil, &ParseError{Kind: ErrorIO, Path: path, Msg: "file is not valid UTF-8"}
	}
	return Parse(source, path)
}

// Parse builds the declaration-node view of a Python source buffer.
func Parse(source []byte, path string) (*Module, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(pythonLanguage)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, &ParseError{Kind: ErrorSyntax, Path: path, Msg: "parser produced no tree"}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		line := firstErrorLine(root)
		return nil, &ParseError{Kind: ErrorSyntax, Path: path, Line: line, Msg: "invalid syntax"}
	}

	return &Module{
		Docstring: blockDocstring(root, source),
		Decls:     convertBody(root, source),
	}, nil
}

// firstErrorLine locates the first error or missing node in the tree.
func firstErrorLine(root *sitter.Node) int {
	line := 0
	walkTree(root, func(n *sitter.Node) bool {
		if line > 0 {
			return false
		}
		if n.IsError() || n.IsMissing() {
			line = int(n.StartPosition().Row) + 1
			return false
		}
		return true
	})
	return line
}

// convertBody maps the statements of a module or block node onto the
// tagged-variant declaration model.
func convertBody(body *sitter.Node, source []byte) []Decl {
	decls := []Decl{}
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(uint(i))
		if child.IsNamed() && child.Kind() != "comment" {
			decls = append(decls, convertStatement(child, source, nil))
		}
	}
	return decls
}

func convertStatement(node *sitter.Node, source []byte, decorators []string) Decl {
	line := int(node.StartPosition().Row) + 1

	switch node.Kind() {
	case "expression_statement":
		if node.ChildCount() == 1 && node.Child(0).Kind() == "assignment" {
			return convertAssignment(node.Child(0), source, line)
		}
		return Decl{Kind: DeclOther, Line: line}

	case "function_definition":
		return convertFunction(node, source, decorators, line)

	case "class_definition":
		return convertClass(node, source, decorators, line)

	case "decorated_definition":
		names := decoratorNames(node, source)
		if def := node.ChildByFieldName("definition"); def != nil {
			return convertStatement(def, source, names)
		}
		return Decl{Kind: DeclOther, Line: line}

	default:
		return Decl{Kind: DeclOther, Line: line}
	}
}

// convertAssignment handles both plain and annotated assignments; tree-sitter
// folds them into a single "assignment" node with an optional type field.
// Targets that are not a single bare identifier produce an empty Target and
// are never constant candidates.
func convertAssignment(node *sitter.Node, source []byte, line int) Decl {
	d := Decl{Kind: DeclAssignment, Line: line}

	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		d.Kind = DeclAnnAssignment
		d.Annotation = nodeText(typeNode, source)
	}

	if left := node.ChildByFieldName("left"); left != nil && left.Kind() == "identifier" {
		d.Target = nodeText(left, source)
	}

	if right := node.ChildByFieldName("right"); right != nil {
		d.Value = convertExpr(right, source)
	}

	return d
}

func convertFunction(node *sitter.Node, source []byte, decorators []string, line int) Decl {
	kind := DeclFunction
	if node.ChildCount() > 0 && node.Child(0).Kind() == "async" {
		kind = DeclAsyncFunction
	}

	d := Decl{
		Kind:       kind,
		Line:       line,
		Decorators: decorators,
		Params:     convertParameters(node.ChildByFieldName("parameters"), source),
	}

	if name := node.ChildByFieldName("name"); name != nil {
		d.Name = nodeText(name, source)
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		d.Returns = nodeText(ret, source)
	}
	if body := node.ChildByFieldName("body"); body != nil {
		d.Docstring = blockDocstring(body, source)
	}

	return d
}

func convertClass(node *sitter.Node, source []byte, decorators []string, line int) Decl {
	d := Decl{
		Kind:       DeclClass,
		Line:       line,
		Decorators: decorators,
	}

	if name := node.ChildByFieldName("name"); name != nil {
		d.Name = nodeText(name, source)
	}

	if supers := node.ChildByFieldName("superclasses"); supers != nil {
		for i := 0; i < int(supers.NamedChildCount()); i++ {
			arg := supers.NamedChild(uint(i))
			// Keyword arguments (metaclass=...) are not bases.
			if arg.Kind() == "keyword_argument" {
				continue
			}
			d.Bases = append(d.Bases, nodeText(arg, source))
		}
	}

	if body := node.ChildByFieldName("body"); body != nil {
		d.Docstring = blockDocstring(body, source)
		d.Body = convertBody(body, source)
	}

	return d
}

// decoratorNames collects the decorator names of a decorated_definition.
// Decorator call expressions are reduced to their callee name, so
// @functools.lru_cache(maxsize=8) yields "functools.lru_cache".
func decoratorNames(node *sitter.Node, source []byte) []string {
	var names []string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() != "decorator" {
			continue
		}
		expr := child.NamedChild(0)
		if expr == nil {
			continue
		}
		if expr.Kind() == "call" {
			if fn := expr.ChildByFieldName("function"); fn != nil {
				expr = fn
			}
		}
		names = append(names, nodeText(expr, source))
	}
	return names
}

// convertParameters flattens a "parameters" node into ordered Params. Kinds
// are assigned from the positional (/) and keyword (*) separators: everything
// before "/" is positional-only, everything after "*" or *args is
// keyword-only.
func convertParameters(node *sitter.Node, source []byte) []Param {
	if node == nil {
		return nil
	}

	params := []Param{}
	posOnlyEnd := -1 // params before this index are positional-only
	afterStar := false

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(uint(i))

		switch child.Kind() {
		case "positional_separator":
			posOnlyEnd = len(params)

		case "keyword_separator":
			afterStar = true

		case "identifier":
			params = append(params, Param{Name: nodeText(child, source), Kind: paramKind(afterStar)})

		case "list_splat_pattern":
			params = append(params, splatParam(child, source, ParamVarPositional, ""))
			afterStar = true

		case "dictionary_splat_pattern":
			params = append(params, splatParam(child, source, ParamVarKeyword, ""))

		case "typed_parameter":
			annotation := ""
			if t := child.ChildByFieldName("type"); t != nil {
				annotation = nodeText(t, source)
			}
			pattern := child.NamedChild(0)
			if pattern == nil {
				continue
			}
			switch pattern.Kind() {
			case "list_splat_pattern":
				params = append(params, splatParam(pattern, source, ParamVarPositional, annotation))
				afterStar = true
			case "dictionary_splat_pattern":
				params = append(params, splatParam(pattern, source, ParamVarKeyword, annotation))
			default:
				params = append(params, Param{
					Name:       nodeText(pattern, source),
					Kind:       paramKind(afterStar),
					Annotation: annotation,
				})
			}

		case "default_parameter", "typed_default_parameter":
			p := Param{Kind: paramKind(afterStar)}
			if name := child.ChildByFieldName("name"); name != nil {
				p.Name = nodeText(name, source)
			}
			if t := child.ChildByFieldName("type"); t != nil {
				p.Annotation = nodeText(t, source)
			}
			if value := child.ChildByFieldName("value"); value != nil {
				p.Default = nodeText(value, source)
			}
			params = append(params, p)
		}
	}

	if posOnlyEnd > 0 {
		for i := 0; i < posOnlyEnd; i++ {
			params[i].Kind = ParamPositionalOnly
		}
	}

	return params
}

func paramKind(afterStar bool) string {
	if afterStar {
		return ParamKeywordOnly
	}
	return ParamPositionalOrKeyword
}

func splatParam(pattern *sitter.Node, source []byte, kind, annotation string) Param {
	p := Param{Kind: kind, Annotation: annotation}
	if id := pattern.NamedChild(0); id != nil {
		p.Name = nodeText(id, source)
	}
	return p
}

// convertExpr builds the shallow expression view used for literal-value
// resolution. Aggregates keep their element expressions; anything beyond
// plain literals and flat aggregates collapses to ExprOther, with the source
// text always retained.
func convertExpr(node *sitter.Node, source []byte) *Expr {
	if node == nil {
		return nil
	}

	e := &Expr{Kind: ExprOther, Text: nodeText(node, source)}

	switch node.Kind() {
	case "string":
		// f-strings and bytes are not resolvable literal strings.
		prefix := ""
		if node.ChildCount() > 0 && node.Child(0).Kind() == "string_start" {
			prefix = strings.ToLower(nodeText(node.Child(0), source))
		}
		if !strings.Contains(prefix, "f") && !strings.Contains(prefix, "b") {
			e.Kind = ExprString
		}

	case "integer":
		e.Kind = ExprInt

	case "float":
		e.Kind = ExprFloat

	case "true", "false":
		e.Kind = ExprBool

	case "none":
		e.Kind = ExprNone

	case "list", "tuple", "set":
		switch node.Kind() {
		case "list":
			e.Kind = ExprList
		case "tuple":
			e.Kind = ExprTuple
		case "set":
			e.Kind = ExprSet
		}
		for i := 0; i < int(node.NamedChildCount()); i++ {
			e.Elems = append(e.Elems, *convertExpr(node.NamedChild(uint(i)), source))
		}

	case "dictionary":
		e.Kind = ExprDict
		for i := 0; i < int(node.NamedChildCount()); i++ {
			pair := node.NamedChild(uint(i))
			if pair.Kind() != "pair" {
				// **splat entries make the whole dict unresolvable.
				e.Kind = ExprOther
				e.Keys, e.Values = nil, nil
				break
			}
			key := pair.ChildByFieldName("key")
			value := pair.ChildByFieldName("value")
			if key == nil || value == nil {
				e.Kind = ExprOther
				e.Keys, e.Values = nil, nil
				break
			}
			e.Keys = append(e.Keys, *convertExpr(key, source))
			e.Values = append(e.Values, *convertExpr(value, source))
		}

	case "parenthesized_expression":
		if inner := node.NamedChild(0); inner != nil {
			return convertExpr(inner, source)
		}
	}

	return e
}

// blockDocstring returns the raw docstring of a module or block node: the
// content of a leading expression-statement string, or "".
func blockDocstring(body *sitter.Node, source []byte) string {
	var first *sitter.Node
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(uint(i))
		if child.Kind() == "comment" {
			continue
		}
		first = child
		break
	}
	if first == nil || first.Kind() != "expression_statement" || first.ChildCount() != 1 {
		return ""
	}
	str := first.Child(0)
	if str.Kind() != "string" {
		return ""
	}
	return stringContent(str, source)
}

// stringContent extracts the decoded content of a string node, dropping the
// quote delimiters and resolving common escape sequences.
func stringContent(node *sitter.Node, source []byte) string {
	var b strings.Builder
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		switch child.Kind() {
		case "string_content":
			b.WriteString(nodeText(child, source))
		case "escape_sequence":
			b.WriteString(decodeEscape(nodeText(child, source)))
		}
	}
	return b.String()
}

func decodeEscape(seq string) string {
	if len(seq) != 2 || seq[0] != '\\' {
		return seq
	}
	switch seq[1] {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case '\\':
		return "\\"
	case '\'':
		return "'"
	case '"':
		return "\""
	case '\n':
		return ""
	default:
		return seq
	}
}

// nodeText extracts the text content of a tree-sitter node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// walkTree recursively walks a tree-sitter tree and calls the visitor for
// each node. Returning false stops descent into that subtree.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visitor(node) {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(uint(i)), visitor)
	}
}
