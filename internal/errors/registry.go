package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid components config",
		Detail:   "The components configuration file is malformed.",
		DocURL:   "https://vango.dev/docs/uikit/errors/E120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Unresolvable target directory",
		Detail:   "No directory is configured for this registry file type. Set the matching alias or path in components.json.",
		DocURL:   "https://vango.dev/docs/uikit/errors/E121",
	},

	// ============================================
	// CLI Errors (E140-E142)
	// ============================================

	"E140": {
		Category: CategoryCLI,
		Message:  "Invalid arguments",
		Detail:   "The command was called with an invalid combination of arguments or flags.",
		DocURL:   "https://vango.dev/docs/uikit/errors/E140",
	},
	"E141": {
		Category: CategoryCLI,
		Message:  "Not a uikit project",
		Detail:   "No components.json, components.yaml or components.toml was found in this directory or any parent.",
		DocURL:   "https://vango.dev/docs/uikit/errors/E141",
	},

	// ============================================
	// Registry Errors (E143-E149)
	// ============================================

	"E143": {
		Category: CategoryRegistry,
		Message:  "Registry item not found",
		Detail:   "The requested item is not available in the registry.",
		DocURL:   "https://vango.dev/docs/uikit/errors/E143",
	},
	"E144": {
		Category: CategoryRegistry,
		Message:  "Registry unavailable",
		Detail:   "Unable to connect to the component registry.",
		DocURL:   "https://vango.dev/docs/uikit/errors/E144",
	},
	"E145": {
		Category: CategoryRegistry,
		Message:  "Invalid registry item",
		Detail:   "The registry returned a document that is not a valid registry item.",
		DocURL:   "https://vango.dev/docs/uikit/errors/E145",
	},
	"E146": {
		Category: CategoryRegistry,
		Message:  "Registry dependency cycle",
		Detail:   "Registry items depend on each other in a cycle and cannot be ordered.",
		DocURL:   "https://vango.dev/docs/uikit/errors/E146",
	},

	// ============================================
	// Filesystem Errors (E150-E159)
	// ============================================

	"E150": {
		Category: CategoryFilesystem,
		Message:  "File write failed",
		Detail:   "The file could not be written to disk. Files written before this one were kept.",
		DocURL:   "https://vango.dev/docs/uikit/errors/E150",
	},
	"E151": {
		Category: CategoryFilesystem,
		Message:  "Directory creation failed",
		Detail:   "The target directory could not be created. Files written before this one were kept.",
		DocURL:   "https://vango.dev/docs/uikit/errors/E151",
	},

	// ============================================
	// Transform Errors (E160-E169)
	// ============================================

	"E160": {
		Category: CategoryTransform,
		Message:  "Transform failed",
		Detail:   "A registry file could not be rewritten for this project.",
		DocURL:   "https://vango.dev/docs/uikit/errors/E160",
	},

	// ============================================
	// Watch Errors (E170-E179)
	// ============================================

	"E170": {
		Category: CategoryFilesystem,
		Message:  "Watch failed",
		Detail:   "Local registry files could not be watched for changes.",
		DocURL:   "https://vango.dev/docs/uikit/errors/E170",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
