package transform

import (
	"context"
	"path"
	"strings"

	"github.com/vango-dev/uikit/internal/config"
	"github.com/vango-dev/uikit/internal/errors"
	"github.com/vango-dev/uikit/internal/registry"
)

// Context carries what the stages need to know about a file and its
// destination project.
type Context struct {
	// Filename is the registry path of the file. Its extension selects the
	// grammar.
	Filename string

	// Raw is the untransformed content.
	Raw string

	Config    *config.Config
	BaseColor *registry.BaseColor

	// TransformJSX enables the TypeScript to JavaScript downgrade.
	TransformJSX bool
}

// Stage transforms the content of one file.
type Stage func(ctx context.Context, tc *Context, content string) (string, error)

// DefaultStages returns the standard pipeline.
func DefaultStages() []Stage {
	return []Stage{Import, RSC, CSSVars, TailwindPrefix, JSX}
}

// Run applies stages to tc.Raw in order; each stage sees the previous
// stage's output.
func Run(ctx context.Context, tc *Context, stages ...Stage) (string, error) {
	content := tc.Raw
	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		out, err := stage(ctx, tc, content)
		if err != nil {
			return "", errors.FromError(err, "E160").WithPath(tc.Filename)
		}
		content = out
	}
	return content, nil
}

var scriptExts = map[string]bool{
	".ts":  true,
	".tsx": true,
	".mts": true,
	".cts": true,
	".js":  true,
	".jsx": true,
	".mjs": true,
	".cjs": true,
}

// IsScript reports whether filename is a JavaScript or TypeScript source.
func IsScript(filename string) bool {
	return scriptExts[strings.ToLower(path.Ext(filename))]
}
