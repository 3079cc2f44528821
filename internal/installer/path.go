package installer

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/vango-dev/uikit/internal/config"
	"github.com/vango-dev/uikit/internal/errors"
	"github.com/vango-dev/uikit/internal/registry"
)

// jsExts maps TypeScript extensions to JavaScript. Only .tsx keeps its
// JSX flavour; every other .ts-family extension becomes .js.
var jsExts = map[string]string{
	".tsx": ".jsx",
	".ts":  ".js",
	".mts": ".js",
	".cts": ".js",
}

// RewriteExt rewrites a TypeScript file name to JavaScript. Other names,
// including names without an extension, are returned unchanged.
func RewriteExt(name string) string {
	ext := filepath.Ext(name)
	if js, ok := jsExts[ext]; ok {
		return strings.TrimSuffix(name, ext) + js
	}
	return name
}

// ResolvePath returns the absolute destination of file. A non-empty override
// directory wins, then the file's explicit target, then the directory the
// config maps the file's type to. Only the last segment of file.Path is
// kept.
func ResolvePath(file registry.File, cfg *config.Config, override string) (string, error) {
	name := path.Base(file.Path)
	if file.Path == "" || name == "/" || name == "." {
		return "", errors.New("E145").
			WithDetail("Registry file has no path")
	}

	root := cfg.ResolvedPaths.Cwd

	var dir string
	switch {
	case override != "":
		dir = override
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}
	case file.Target != "":
		target := filepath.FromSlash(file.Target)
		if !filepath.IsAbs(target) {
			target = filepath.Join(root, target)
		}
		dir, name = filepath.Dir(target), filepath.Base(target)
	default:
		var err error
		dir, err = cfg.TargetDir(file.Type)
		if err != nil {
			return "", err
		}
	}

	if !cfg.TSX {
		name = RewriteExt(name)
	}
	return filepath.Join(dir, name), nil
}
