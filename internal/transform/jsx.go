package transform

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
)

// typeOnlyNodes are removed outright wherever they appear.
var typeOnlyNodes = map[string]bool{
	"type_annotation":           true,
	"type_parameters":           true,
	"type_arguments":            true,
	"implements_clause":         true,
	"asserts_annotation":        true,
	"type_predicate_annotation": true,
}

// typeOnlyStatements are declarations with no runtime meaning.
var typeOnlyStatements = map[string]bool{
	"interface_declaration":  true,
	"type_alias_declaration": true,
	"ambient_declaration":    true,
}

// JSX strips TypeScript syntax so the file can be saved as JavaScript.
func JSX(ctx context.Context, tc *Context, content string) (string, error) {
	if !tc.TransformJSX || !IsScript(tc.Filename) {
		return content, nil
	}

	src := []byte(content)
	tree, err := parse(ctx, tc.Filename, src)
	if err != nil {
		return "", err
	}
	defer tree.Close()

	var edits []edit
	removeStatement := func(n *sitter.Node) {
		start := n.StartByte()
		edits = append(edits, deletion(start, statementEnd(src, start, n.EndByte())))
	}

	walk(tree.RootNode(), func(n *sitter.Node) bool {
		typ := n.Type()
		switch {
		case typeOnlyNodes[typ]:
			edits = append(edits, deletion(spaceBefore(src, n.StartByte(), typ), n.EndByte()))
			return false

		case typeOnlyStatements[typ]:
			if parent := n.Parent(); parent != nil && parent.Type() == "export_statement" {
				removeStatement(parent)
			} else {
				removeStatement(n)
			}
			return false

		case typ == "import_statement":
			if hasKeyword(n, "type") || allSpecifiersTypeOnly(n) {
				removeStatement(n)
				return false
			}
			return true

		case typ == "export_statement":
			if hasKeyword(n, "type") {
				removeStatement(n)
				return false
			}
			return true

		case typ == "import_specifier" || typ == "export_specifier":
			if hasKeyword(n, "type") {
				edits = append(edits, deletion(n.StartByte(), listItemEnd(src, n.EndByte())))
				return false
			}
			return true

		case typ == "as_expression" || typ == "satisfies_expression":
			// Keep the expression, drop " as T".
			if expr := n.NamedChild(0); expr != nil {
				edits = append(edits, deletion(expr.EndByte(), n.EndByte()))
			}
			return true

		case typ == "non_null_expression":
			edits = append(edits, deletion(n.EndByte()-1, n.EndByte()))
			return true

		case typ == "optional_parameter" || typ == "public_field_definition":
			for i := 0; i < int(n.ChildCount()); i++ {
				child := n.Child(i)
				if child.IsNamed() {
					continue
				}
				switch child.Type() {
				case "?", "!":
					edits = append(edits, deletion(child.StartByte(), child.EndByte()))
				case "readonly", "declare", "abstract":
					edits = append(edits, deletion(child.StartByte(), skipSpaces(src, child.EndByte())))
				}
			}
			return true

		case typ == "accessibility_modifier" || typ == "override_modifier":
			edits = append(edits, deletion(n.StartByte(), skipSpaces(src, n.EndByte())))
			return false
		}
		return true
	})

	return applyEdits(src, edits), nil
}

// hasKeyword reports whether n has the anonymous child token kw.
func hasKeyword(n *sitter.Node, kw string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); !child.IsNamed() && child.Type() == kw {
			return true
		}
	}
	return false
}

// allSpecifiersTypeOnly reports whether an import only brings in types:
// "import { type A, type B } from ...".
func allSpecifiersTypeOnly(n *sitter.Node) bool {
	clause := firstNamedChildOfType(n, "import_clause")
	if clause == nil || clause.NamedChildCount() != 1 {
		return false
	}
	named := clause.NamedChild(0)
	if named.Type() != "named_imports" || named.NamedChildCount() == 0 {
		return false
	}
	for i := 0; i < int(named.NamedChildCount()); i++ {
		specifier := named.NamedChild(i)
		if specifier.Type() == "import_specifier" && !hasKeyword(specifier, "type") {
			return false
		}
	}
	return true
}

func firstNamedChildOfType(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child.Type() == typ {
			return child
		}
	}
	return nil
}

func skipSpaces(src []byte, i uint32) uint32 {
	for i < uint32(len(src)) && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	return i
}

// listItemEnd extends a list item over its trailing comma and spacing.
func listItemEnd(src []byte, end uint32) uint32 {
	i := skipSpaces(src, end)
	if i < uint32(len(src)) && src[i] == ',' {
		return skipSpaces(src, i+1)
	}
	return end
}

// spaceBefore pulls the start of a removed clause back over the space that
// separated it from the preceding code, for clauses written after a gap
// ("class A implements B").
func spaceBefore(src []byte, start uint32, typ string) uint32 {
	if typ != "implements_clause" {
		return start
	}
	for start > 0 && (src[start-1] == ' ' || src[start-1] == '\t') {
		start--
	}
	return start
}
