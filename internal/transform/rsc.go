package transform

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
)

// RSC removes the "use client" directive for projects that don't use React
// Server Components.
func RSC(ctx context.Context, tc *Context, content string) (string, error) {
	if !IsScript(tc.Filename) || tc.Config == nil || tc.Config.RSC {
		return content, nil
	}

	src := []byte(content)
	tree, err := parse(ctx, tc.Filename, src)
	if err != nil {
		return "", err
	}
	defer tree.Close()

	directive := leadingStatement(tree.RootNode())
	if directive == nil || !isUseClient(directive, src) {
		return content, nil
	}

	start := directive.StartByte()
	end := statementEnd(src, start, directive.EndByte())
	return applyEdits(src, []edit{deletion(start, end)}), nil
}

// leadingStatement returns the first statement of the file, skipping
// comments, if it is an expression statement.
func leadingStatement(root *sitter.Node) *sitter.Node {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case "comment", "hash_bang_line":
			continue
		case "expression_statement":
			return child
		default:
			return nil
		}
	}
	return nil
}

func isUseClient(stmt *sitter.Node, src []byte) bool {
	if stmt.NamedChildCount() != 1 {
		return false
	}
	str := stmt.NamedChild(0)
	if str.Type() != "string" {
		return false
	}
	start, end, ok := unquote(str)
	return ok && string(src[start:end]) == "use client"
}
