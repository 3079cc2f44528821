package transform

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// languageFor picks the grammar for filename. Plain TypeScript can't be
// parsed as TSX because of angle-bracket casts; everything else, JavaScript
// included, parses with the TSX grammar.
func languageFor(filename string) *sitter.Language {
	switch strings.ToLower(path.Ext(filename)) {
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage()
	default:
		return tsx.GetLanguage()
	}
}

// parse parses src with the grammar for filename.
func parse(ctx context.Context, filename string, src []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(languageFor(filename))

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return tree, nil
}

// walk calls fn for n and its descendants in document order. Returning
// false from fn skips the node's children.
func walk(n *sitter.Node, fn func(*sitter.Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), fn)
	}
}

// edit replaces src[start:end] with text.
type edit struct {
	start, end uint32
	text       string
}

func deletion(start, end uint32) edit {
	return edit{start: start, end: end}
}

func replaceNode(n *sitter.Node, text string) edit {
	return edit{start: n.StartByte(), end: n.EndByte(), text: text}
}

// applyEdits applies edits to src. Edits nested inside an earlier edit are
// dropped; the outer edit wins.
func applyEdits(src []byte, edits []edit) string {
	if len(edits) == 0 {
		return string(src)
	}

	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].start != edits[j].start {
			return edits[i].start < edits[j].start
		}
		return edits[i].end > edits[j].end
	})

	var b strings.Builder
	b.Grow(len(src))

	var last uint32
	for _, e := range edits {
		if e.start < last {
			continue
		}
		b.Write(src[last:e.start])
		b.WriteString(e.text)
		last = e.end
	}
	b.Write(src[last:])

	return b.String()
}

// unquote returns the inner bounds of a string node.
func unquote(n *sitter.Node) (start, end uint32, ok bool) {
	start, end = n.StartByte(), n.EndByte()
	if end-start < 2 {
		return 0, 0, false
	}
	return start + 1, end - 1, true
}

// statementEnd extends a statement's end over the rest of its line. When the
// statement stands alone between blank lines (or opens the file) the blank
// line after it goes too, so removing it leaves a single separator.
func statementEnd(src []byte, start, end uint32) uint32 {
	i := end
	for i < uint32(len(src)) && (src[i] == ' ' || src[i] == '\t' || src[i] == ';') {
		i++
	}
	if i < uint32(len(src)) && src[i] == '\r' {
		i++
	}
	if i < uint32(len(src)) && src[i] == '\n' {
		i++
	} else {
		return end
	}

	standalone := start == 0 || (start >= 2 && src[start-1] == '\n' && src[start-2] == '\n')
	if standalone && i < uint32(len(src)) && src[i] == '\n' {
		i++
	}
	return i
}
