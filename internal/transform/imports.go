package transform

import (
	"context"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/vango-dev/uikit/internal/config"
)

const utilsSpecifier = "@/lib/utils"

var (
	registryUI         = regexp.MustCompile(`^@/registry/[^/]+/ui`)
	registryComponents = regexp.MustCompile(`^@/registry/[^/]+/components`)
	registryLib        = regexp.MustCompile(`^@/registry/[^/]+/lib`)
	registryHooks      = regexp.MustCompile(`^@/registry/[^/]+/hooks`)
	registryStyle      = regexp.MustCompile(`^@/registry/[^/]+`)
)

// Import rewrites the module specifiers of import and export statements from
// registry paths to the project's aliases.
func Import(ctx context.Context, tc *Context, content string) (string, error) {
	if !IsScript(tc.Filename) || tc.Config == nil {
		return content, nil
	}

	src := []byte(content)
	tree, err := parse(ctx, tc.Filename, src)
	if err != nil {
		return "", err
	}
	defer tree.Close()

	var edits []edit
	walk(tree.RootNode(), func(n *sitter.Node) bool {
		switch n.Type() {
		case "import_statement", "export_statement":
			source := n.ChildByFieldName("source")
			if source == nil {
				return true
			}
			start, end, ok := unquote(source)
			if !ok {
				return false
			}
			specifier := string(src[start:end])
			if rewritten := RewriteImport(specifier, tc.Config); rewritten != specifier {
				edits = append(edits, edit{start: start, end: end, text: rewritten})
			}
			return false
		}
		return true
	})

	return applyEdits(src, edits), nil
}

// RewriteImport maps a registry module specifier to the project's aliases.
// Specifiers that aren't project-local ("react", "./x") are returned as-is.
func RewriteImport(specifier string, cfg *config.Config) string {
	aliases := cfg.Aliases

	if specifier == utilsSpecifier && aliases.Utils != "" {
		return aliases.Utils
	}
	if !strings.HasPrefix(specifier, "@/") {
		return specifier
	}

	if !strings.HasPrefix(specifier, "@/registry/") {
		// A plain "@/" import keeps its path under the project's alias root.
		root, _, _ := strings.Cut(aliases.Components, "/")
		if root == "@" || (root != "~" && !strings.HasPrefix(root, "@")) {
			return specifier
		}
		return root + strings.TrimPrefix(specifier, "@")
	}

	ui := aliases.UI
	if ui == "" {
		ui = aliases.Components + "/ui"
	}

	switch {
	case registryUI.MatchString(specifier):
		return registryUI.ReplaceAllLiteralString(specifier, ui)
	case aliases.Components != "" && registryComponents.MatchString(specifier):
		return registryComponents.ReplaceAllLiteralString(specifier, aliases.Components)
	case aliases.Lib != "" && registryLib.MatchString(specifier):
		return registryLib.ReplaceAllLiteralString(specifier, aliases.Lib)
	case aliases.Hooks != "" && registryHooks.MatchString(specifier):
		return registryHooks.ReplaceAllLiteralString(specifier, aliases.Hooks)
	}
	return registryStyle.ReplaceAllLiteralString(specifier, aliases.Components)
}
