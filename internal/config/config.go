package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/uikit/internal/errors"
)

const (
	// JSONFileName is the default name of the configuration file.
	JSONFileName = "components.json"

	// YAMLFileName is the YAML variant of the configuration file.
	YAMLFileName = "components.yaml"

	// TOMLFileName is the TOML variant of the configuration file.
	TOMLFileName = "components.toml"

	// DefaultRegistry is the default component registry URL.
	DefaultRegistry = "https://ui.vango.dev/r"

	// DefaultStyle is the registry style used when none is configured.
	DefaultStyle = "default"

	// DefaultRegistryRegion is the AWS region used for s3:// registry items.
	DefaultRegistryRegion = "us-east-1"
)

// FileNames lists the configuration file names in lookup order.
var FileNames = []string{JSONFileName, YAMLFileName, TOMLFileName}

// Format is the on-disk encoding of a configuration file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "json"
	}
}

// FormatFor returns the format implied by a file name's extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Config represents a project's components configuration.
type Config struct {
	// Schema is the JSON schema URL, kept so a saved file round-trips.
	Schema string `json:"$schema,omitempty" yaml:"$schema,omitempty" toml:"schema,omitempty"`

	// Style is the registry style items are fetched for.
	Style string `json:"style" yaml:"style" toml:"style"`

	// RSC keeps "use client" directives when true.
	RSC bool `json:"rsc" yaml:"rsc" toml:"rsc"`

	// TSX selects typed (.ts/.tsx) output. When false files are
	// written as .js/.jsx and type syntax is stripped.
	TSX bool `json:"tsx" yaml:"tsx" toml:"tsx"`

	// Tailwind contains Tailwind CSS settings.
	Tailwind TailwindConfig `json:"tailwind" yaml:"tailwind" toml:"tailwind"`

	// Aliases are the import aliases registry imports are rewritten to.
	Aliases AliasesConfig `json:"aliases" yaml:"aliases" toml:"aliases"`

	// Paths are explicit directory overrides, relative to the project root.
	// A set path wins over the directory derived from the matching alias.
	Paths PathsConfig `json:"paths,omitempty" yaml:"paths,omitempty" toml:"paths,omitempty"`

	// AliasRoot is the directory the "@/" alias prefix points at (e.g. "src").
	AliasRoot string `json:"aliasRoot,omitempty" yaml:"aliasRoot,omitempty" toml:"aliasRoot,omitempty"`

	// Registry is the base URL of the component registry.
	Registry string `json:"registry,omitempty" yaml:"registry,omitempty" toml:"registry,omitempty"`

	// RegistryRegion is the AWS region for s3:// registry items.
	RegistryRegion string `json:"registryRegion,omitempty" yaml:"registryRegion,omitempty" toml:"registryRegion,omitempty"`

	// ResolvedPaths holds absolute directories derived from the fields above.
	ResolvedPaths ResolvedPaths `json:"-" yaml:"-" toml:"-"`

	root       string
	configPath string
}

// TailwindConfig contains Tailwind CSS settings.
type TailwindConfig struct {
	// Config is the path to tailwind.config.js.
	Config string `json:"config" yaml:"config" toml:"config"`

	// CSS is the path to the global stylesheet.
	CSS string `json:"css" yaml:"css" toml:"css"`

	// BaseColor names the registry base color (e.g. "slate").
	BaseColor string `json:"baseColor" yaml:"baseColor" toml:"baseColor"`

	// CSSVariables keeps theme tokens as CSS variables. When false, color
	// classes are replaced with the base color's inline values.
	CSSVariables bool `json:"cssVariables" yaml:"cssVariables" toml:"cssVariables"`

	// Prefix is the Tailwind class prefix (e.g. "tw-").
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty" toml:"prefix,omitempty"`
}

// AliasesConfig contains the project's import aliases.
type AliasesConfig struct {
	Components string `json:"components" yaml:"components" toml:"components"`
	Utils      string `json:"utils" yaml:"utils" toml:"utils"`
	UI         string `json:"ui,omitempty" yaml:"ui,omitempty" toml:"ui,omitempty"`
	Lib        string `json:"lib,omitempty" yaml:"lib,omitempty" toml:"lib,omitempty"`
	Hooks      string `json:"hooks,omitempty" yaml:"hooks,omitempty" toml:"hooks,omitempty"`
}

// PathsConfig contains explicit directory overrides.
type PathsConfig struct {
	Components string `json:"components,omitempty" yaml:"components,omitempty" toml:"components,omitempty"`
	UI         string `json:"ui,omitempty" yaml:"ui,omitempty" toml:"ui,omitempty"`
	Lib        string `json:"lib,omitempty" yaml:"lib,omitempty" toml:"lib,omitempty"`
	Hooks      string `json:"hooks,omitempty" yaml:"hooks,omitempty" toml:"hooks,omitempty"`
}

// ResolvedPaths are absolute locations inside the project.
type ResolvedPaths struct {
	Cwd            string
	TailwindConfig string
	TailwindCSS    string
	Utils          string
	Components     string
	UI             string
	Lib            string
	Hooks          string
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Style: DefaultStyle,
		TSX:   true,
		Tailwind: TailwindConfig{
			Config:       "tailwind.config.js",
			CSS:          "app/globals.css",
			BaseColor:    "neutral",
			CSSVariables: true,
		},
		Aliases: AliasesConfig{
			Components: "@/components",
			Utils:      "@/lib/utils",
		},
		Registry: DefaultRegistry,
	}
}

// Load reads configuration from the specified directory, trying each
// name in FileNames.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E141").
		WithDetail("No components.json found in " + dir).
		WithSuggestion("Create components.json at the project root")
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No " + filepath.Base(path) + " found in " + filepath.Dir(path)).
				WithSuggestion("Create components.json at the project root")
		}
		return nil, errors.New("E120").WithOp("read").WithPath(path).Wrap(err)
	}

	cfg := New()
	if err := decode(FormatFor(path), data, cfg); err != nil {
		return nil, errors.New("E120").
			WithPath(path).
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid " + strings.ToUpper(FormatFor(path).String()))
	}

	cfg.configPath = path
	cfg.applyDefaults()
	if err := cfg.SetRoot(filepath.Dir(path)); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func decode(format Format, data []byte, cfg *Config) error {
	switch format {
	case FormatYAML:
		return yaml.Unmarshal(data, cfg)
	case FormatTOML:
		return toml.Unmarshal(data, cfg)
	default:
		return json.Unmarshal(data, cfg)
	}
}

func encode(format Format, cfg *Config) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatTOML:
		return toml.Marshal(cfg)
	default:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, encoded
// according to the path's extension.
func (c *Config) SaveTo(path string) error {
	data, err := encode(FormatFor(path), c)
	if err != nil {
		return errors.New("E120").WithOp("encode").WithPath(path).Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E150").WithOp("write").WithPath(path).Wrap(err)
	}

	c.configPath = path
	if c.root == "" {
		return c.SetRoot(filepath.Dir(path))
	}
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the project root.
func (c *Config) Dir() string {
	return c.root
}

// SetRoot sets the project root and recomputes ResolvedPaths.
func (c *Config) SetRoot(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return errors.New("E120").WithOp("resolve").WithPath(dir).Wrap(err)
	}
	c.root = abs
	c.ResolvedPaths = c.resolvePaths()
	return nil
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Style == "" {
		c.Style = DefaultStyle
	}
	if c.Registry == "" {
		c.Registry = DefaultRegistry
	}
	if c.RegistryRegion == "" {
		c.RegistryRegion = DefaultRegistryRegion
	}
}

func (c *Config) resolvePaths() ResolvedPaths {
	rp := ResolvedPaths{
		Cwd:            c.root,
		TailwindConfig: c.projectPath(c.Tailwind.Config),
		TailwindCSS:    c.projectPath(c.Tailwind.CSS),
		Utils:          c.aliasPath(c.Aliases.Utils),
	}

	rp.Components = c.dirFor(c.Paths.Components, c.Aliases.Components)

	rp.UI = c.dirFor(c.Paths.UI, c.Aliases.UI)
	if rp.UI == "" && rp.Components != "" {
		rp.UI = filepath.Join(rp.Components, "ui")
	}

	rp.Lib = c.dirFor(c.Paths.Lib, c.Aliases.Lib)
	if rp.Lib == "" && rp.Utils != "" {
		rp.Lib = filepath.Dir(rp.Utils)
	}

	rp.Hooks = c.dirFor(c.Paths.Hooks, c.Aliases.Hooks)
	if rp.Hooks == "" && rp.Components != "" {
		rp.Hooks = filepath.Join(filepath.Dir(rp.Components), "hooks")
	}

	return rp
}

// dirFor prefers an explicit path and falls back to the alias.
func (c *Config) dirFor(path, alias string) string {
	if path != "" {
		return c.projectPath(path)
	}
	return c.aliasPath(alias)
}

// aliasPath maps an import alias such as "@/components/ui" to a directory.
func (c *Config) aliasPath(alias string) string {
	rel := AliasToRelPath(alias)
	if rel == "" {
		return ""
	}
	return c.projectPath(filepath.Join(c.AliasRoot, rel))
}

func (c *Config) projectPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(c.root, filepath.FromSlash(path))
}

// AliasToRelPath strips the alias prefix segment ("@", "~", "@/", "~/")
// from an import alias and returns the remaining slash-separated path.
func AliasToRelPath(alias string) string {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return ""
	}
	first, rest, found := strings.Cut(alias, "/")
	if strings.HasPrefix(first, "@") || strings.HasPrefix(first, "~") {
		if !found {
			return ""
		}
		return rest
	}
	return alias
}

// targetDirs maps registry file types to their resolved directory.
var targetDirs = map[string]func(ResolvedPaths) string{
	"registry:ui":        func(p ResolvedPaths) string { return p.UI },
	"registry:lib":       func(p ResolvedPaths) string { return p.Lib },
	"registry:hook":      func(p ResolvedPaths) string { return p.Hooks },
	"registry:block":     func(p ResolvedPaths) string { return p.Components },
	"registry:component": func(p ResolvedPaths) string { return p.Components },
	"registry:page":      func(p ResolvedPaths) string { return p.Components },
	"registry:example":   func(p ResolvedPaths) string { return p.Components },
}

// TargetDir returns the directory registry files of the given type are
// installed into. Unknown types go to the components directory.
func (c *Config) TargetDir(fileType string) (string, error) {
	lookup, ok := targetDirs[fileType]
	if !ok {
		lookup = targetDirs["registry:component"]
	}

	dir := lookup(c.ResolvedPaths)
	if dir == "" {
		return "", errors.New("E121").
			WithDetail(fmt.Sprintf("No target directory is configured for %q files.", fileType)).
			WithSuggestion("Set aliases.components (or the matching paths entry) in components.json")
	}
	return dir, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Aliases.Components == "" && c.Paths.Components == "" {
		return errors.New("E120").
			WithPath(c.configPath).
			WithDetail("aliases.components must be set")
	}
	if strings.ContainsAny(c.Tailwind.Prefix, " \t:") {
		return errors.New("E120").
			WithPath(c.configPath).
			WithDetail(fmt.Sprintf("tailwind.prefix %q must not contain spaces or ':'", c.Tailwind.Prefix))
	}
	return nil
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range FileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing a components config, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E141").
				WithDetail("No components.json found in " + startDir + " or any parent directory").
				WithSuggestion("Create components.json at the project root")
		}
		dir = parent
	}
}

// LoadFromDir finds the project root at or above dir and loads its config.
func LoadFromDir(dir string) (*Config, error) {
	root, err := FindProjectRoot(dir)
	if err != nil {
		return nil, err
	}
	return Load(root)
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return LoadFromDir(wd)
}
