package installer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/uikit/internal/config"
	"github.com/vango-dev/uikit/internal/errors"
	"github.com/vango-dev/uikit/internal/registry"
)

func TestRewriteExt(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"button.tsx", "button.jsx"},
		{"button.ts", "button.js"},
		{"use-toast.mts", "use-toast.js"},
		{"config.cts", "config.js"},
		{"button.d.ts", "button.d.js"},
		{"styles.css", "styles.css"},
		{"button.jsx", "button.jsx"},
		{"Makefile", "Makefile"},
		{"README.md", "README.md"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewriteExt(tt.name))
		})
	}
}

func TestResolvePath(t *testing.T) {
	root := filepath.FromSlash("/proj")
	cfg := config.New()
	require.NoError(t, cfg.SetRoot(root))

	plain := config.New()
	plain.TSX = false
	require.NoError(t, plain.SetRoot(root))

	tests := []struct {
		name     string
		cfg      *config.Config
		file     registry.File
		override string
		want     string
	}{
		{"ui", cfg, registry.File{Path: "ui/button.tsx", Type: registry.TypeUI}, "", "/proj/components/ui/button.tsx"},
		{"ui plain", plain, registry.File{Path: "ui/button.tsx", Type: registry.TypeUI}, "", "/proj/components/ui/button.jsx"},
		{"lib plain", plain, registry.File{Path: "lib/utils.ts", Type: registry.TypeLib}, "", "/proj/lib/utils.js"},
		{"css plain", plain, registry.File{Path: "styles/styles.css", Type: registry.TypeUI}, "", "/proj/components/ui/styles.css"},
		{"hook", cfg, registry.File{Path: "hooks/use-toast.ts", Type: registry.TypeHook}, "", "/proj/hooks/use-toast.ts"},
		{"nested source dirs dropped", cfg, registry.File{Path: "default/example/deep/card-demo.tsx", Type: registry.TypeExample}, "", "/proj/components/card-demo.tsx"},
		{"unknown type", cfg, registry.File{Path: "x.tsx", Type: "registry:theme"}, "", "/proj/components/x.tsx"},
		{"relative override", plain, registry.File{Path: "ui/button.tsx", Type: registry.TypeUI}, "src/widgets", "/proj/src/widgets/button.jsx"},
		{"absolute override", cfg, registry.File{Path: "ui/button.tsx", Type: registry.TypeUI}, filepath.FromSlash("/elsewhere"), "/elsewhere/button.tsx"},
		{"explicit target", plain, registry.File{Path: "blocks/page.tsx", Type: registry.TypePage, Target: "app/dashboard/page.tsx"}, "", "/proj/app/dashboard/page.jsx"},
		{"override beats target", cfg, registry.File{Path: "blocks/page.tsx", Target: "app/page.tsx"}, "out", "/proj/out/page.tsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePath(tt.file, tt.cfg, tt.override)
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestResolvePath_Errors(t *testing.T) {
	cfg := config.New()
	cfg.ResolvedPaths = config.ResolvedPaths{Cwd: "/proj", Components: "/proj/components"}

	_, err := ResolvePath(registry.File{Path: "hooks/use-toast.ts", Type: registry.TypeHook}, cfg, "")
	assert.True(t, errors.HasCode(err, "E121"), "got %v", err)

	_, err = ResolvePath(registry.File{Type: registry.TypeUI}, cfg, "")
	assert.True(t, errors.HasCode(err, "E145"), "got %v", err)
}
