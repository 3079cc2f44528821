package registry

// Registry item and file types.
const (
	TypeUI        = "registry:ui"
	TypeLib       = "registry:lib"
	TypeHook      = "registry:hook"
	TypeBlock     = "registry:block"
	TypeComponent = "registry:component"
	TypePage      = "registry:page"
	TypeExample   = "registry:example"
	TypeStyle     = "registry:style"
)

// Item is one installable registry entry.
type Item struct {
	Schema               string   `json:"$schema,omitempty"`
	Name                 string   `json:"name"`
	Type                 string   `json:"type"`
	Description          string   `json:"description,omitempty"`
	Dependencies         []string `json:"dependencies,omitempty"`
	DevDependencies      []string `json:"devDependencies,omitempty"`
	RegistryDependencies []string `json:"registryDependencies,omitempty"`
	Files                []File   `json:"files,omitempty"`
}

// File is one source file of a registry item.
type File struct {
	// Path is the slash-separated source path inside the registry.
	Path string `json:"path"`

	// Content is the file's source text. Files without content are not installed.
	Content string `json:"content,omitempty"`

	// Type classifies the file and selects its target directory.
	Type string `json:"type"`

	// Target is an optional explicit destination, relative to the project root.
	Target string `json:"target,omitempty"`
}

// ColorScheme maps theme tokens to values for light and dark mode.
type ColorScheme struct {
	Light map[string]string `json:"light"`
	Dark  map[string]string `json:"dark"`
}

// BaseColor is a registry base color.
type BaseColor struct {
	// InlineColors maps tokens such as "primary" to Tailwind colors ("slate-900").
	InlineColors ColorScheme `json:"inlineColors"`

	// CSSVars maps tokens to CSS variable values.
	CSSVars ColorScheme `json:"cssVars"`

	InlineColorsTemplate string `json:"inlineColorsTemplate,omitempty"`
	CSSVarsTemplate      string `json:"cssVarsTemplate,omitempty"`
}

// HasInlineColors reports whether the base color carries inline color mappings.
func (b *BaseColor) HasInlineColors() bool {
	return b != nil && len(b.InlineColors.Light) > 0
}

// Files flattens the files of items, in item order.
func Files(items []*Item) []File {
	var files []File
	for _, item := range items {
		files = append(files, item.Files...)
	}
	return files
}

// Dependencies returns the de-duplicated npm dependencies and dev
// dependencies of items, in first-seen order.
func Dependencies(items []*Item) (deps, devDeps []string) {
	seen := make(map[string]bool)
	seenDev := make(map[string]bool)
	for _, item := range items {
		for _, d := range item.Dependencies {
			if !seen[d] {
				seen[d] = true
				deps = append(deps, d)
			}
		}
		for _, d := range item.DevDependencies {
			if !seenDev[d] {
				seenDev[d] = true
				devDeps = append(devDeps, d)
			}
		}
	}
	return deps, devDeps
}
