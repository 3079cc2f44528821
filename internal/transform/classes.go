package transform

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/vango-dev/uikit/internal/registry"
)

// classFuncs are the helpers whose string arguments are class lists.
var classFuncs = map[string]bool{
	"cn":  true,
	"cva": true,
}

// colorPrefixes are the utilities whose colour token can be mapped. Longer
// prefixes come first so "ring-offset-" isn't read as "ring-".
var colorPrefixes = []string{"bg-", "text-", "border-", "ring-offset-", "ring-"}

// CSSVars replaces theme colour tokens with the base color's inline
// Tailwind colours, for projects that don't use CSS variables.
func CSSVars(ctx context.Context, tc *Context, content string) (string, error) {
	if tc.Config == nil || tc.Config.Tailwind.CSSVariables || !tc.BaseColor.HasInlineColors() {
		return content, nil
	}
	return rewriteClasses(ctx, tc, content, func(classes string) string {
		return ApplyColorMapping(classes, tc.BaseColor.InlineColors)
	})
}

// TailwindPrefix adds the configured Tailwind prefix to every utility class.
func TailwindPrefix(ctx context.Context, tc *Context, content string) (string, error) {
	if tc.Config == nil || tc.Config.Tailwind.Prefix == "" {
		return content, nil
	}
	prefix := tc.Config.Tailwind.Prefix
	return rewriteClasses(ctx, tc, content, func(classes string) string {
		return ApplyPrefix(classes, prefix)
	})
}

// rewriteClasses applies fn to every class string in a script file.
func rewriteClasses(ctx context.Context, tc *Context, content string, fn func(string) string) (string, error) {
	if !IsScript(tc.Filename) {
		return content, nil
	}

	src := []byte(content)
	tree, err := parse(ctx, tc.Filename, src)
	if err != nil {
		return "", err
	}
	defer tree.Close()

	var edits []edit
	for _, n := range classStrings(tree.RootNode(), src) {
		start, end, ok := unquote(n)
		if !ok {
			continue
		}
		value := string(src[start:end])
		if rewritten := fn(value); rewritten != value {
			edits = append(edits, edit{start: start, end: end, text: rewritten})
		}
	}
	return applyEdits(src, edits), nil
}

// classStrings finds string literals holding class lists: className
// attribute values and the arguments of cn and cva, object values included.
func classStrings(root *sitter.Node, src []byte) []*sitter.Node {
	var nodes []*sitter.Node
	seen := make(map[uint32]bool)
	add := func(n *sitter.Node) {
		if !seen[n.StartByte()] {
			seen[n.StartByte()] = true
			nodes = append(nodes, n)
		}
	}

	walk(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "jsx_attribute":
			if n.NamedChildCount() == 2 && n.NamedChild(0).Content(src) == "className" {
				if value := n.NamedChild(1); value.Type() == "string" {
					add(value)
				}
			}
		case "call_expression":
			fn := n.ChildByFieldName("function")
			args := n.ChildByFieldName("arguments")
			if fn == nil || args == nil || !classFuncs[fn.Content(src)] {
				return true
			}
			walk(args, func(arg *sitter.Node) bool {
				if arg.Type() == "string" && !isObjectKey(arg) {
					add(arg)
					return false
				}
				return true
			})
		}
		return true
	})

	return nodes
}

func isObjectKey(n *sitter.Node) bool {
	parent := n.Parent()
	if parent == nil || parent.Type() != "pair" {
		return false
	}
	key := parent.ChildByFieldName("key")
	return key != nil && key.StartByte() == n.StartByte()
}

// splitClass splits "md:hover:bg-primary/50" into its variant
// ("md:hover"), value ("bg-primary") and modifier ("50"). Separators inside
// arbitrary values ("bg-[url(/a.png)]", "[mask-type:luminance]") don't count.
func splitClass(class string) (variant, value, modifier string) {
	depth := 0
	colon, slash := -1, -1
	for i := 0; i < len(class) && slash < 0; i++ {
		switch class[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 {
				colon = i
			}
		case '/':
			if depth == 0 {
				slash = i
			}
		}
	}

	rest := class
	if slash >= 0 {
		rest, modifier = class[:slash], class[slash+1:]
	}
	if colon >= 0 {
		return rest[:colon], rest[colon+1:], modifier
	}
	return "", rest, modifier
}

func joinClass(variant, value, modifier string) string {
	class := value
	if variant != "" {
		class = variant + ":" + class
	}
	if modifier != "" {
		class += "/" + modifier
	}
	return class
}

// ApplyColorMapping rewrites colour classes in a class list to the light
// colours of mapping and appends their dark: counterparts. A bare "border"
// gains an explicit "border-border" so its colour is mapped too.
func ApplyColorMapping(classes string, mapping registry.ColorScheme) string {
	fields := strings.Fields(classes)

	var light, dark []string
	seenLight := make(map[string]bool)
	seenDark := make(map[string]bool)
	addLight := func(c string) {
		if !seenLight[c] {
			seenLight[c] = true
			light = append(light, c)
		}
	}
	addDark := func(c string) {
		if !seenDark[c] {
			seenDark[c] = true
			dark = append(dark, c)
		}
	}

	expanded := make([]string, 0, len(fields))
	for i, class := range fields {
		expanded = append(expanded, class)
		if class == "border" && i > 0 && i < len(fields)-1 {
			expanded = append(expanded, "border-border")
		}
	}

	for _, class := range expanded {
		variant, value, modifier := splitClass(class)

		prefix := ""
		for _, p := range colorPrefixes {
			if strings.HasPrefix(value, p) {
				prefix = p
				break
			}
		}

		token := strings.TrimPrefix(value, prefix)
		lightColor, ok := mapping.Light[token]
		if prefix == "" || !ok {
			addLight(class)
			continue
		}

		addLight(joinClass(variant, prefix+lightColor, modifier))
		if darkColor, ok := mapping.Dark[token]; ok {
			darkVariant := "dark"
			if variant != "" {
				darkVariant += ":" + variant
			}
			addDark(joinClass(darkVariant, prefix+darkColor, modifier))
		}
	}

	return strings.Join(append(light, dark...), " ")
}

// ApplyPrefix adds prefix to each utility in a class list, after any
// variants and before a negative or important marker's utility name:
// "hover:-mt-2" becomes "hover:-tw-mt-2".
func ApplyPrefix(classes, prefix string) string {
	fields := strings.Fields(classes)
	for i, class := range fields {
		variant, value, modifier := splitClass(class)

		marker := ""
		for len(value) > 0 && (value[0] == '!' || value[0] == '-') {
			marker += value[:1]
			value = value[1:]
		}
		// Arbitrary properties ("[mask-type:luminance]") are not utilities.
		if value == "" || value[0] == '[' || strings.HasPrefix(value, prefix) {
			continue
		}

		fields[i] = joinClass(variant, marker+prefix+value, modifier)
	}
	return strings.Join(fields, " ")
}
