// Package config loads the project configuration that tells uikit where
// registry files go and how they are rewritten.
//
// The configuration lives at the project root in one of components.json,
// components.yaml or components.toml (searched in that order). Directory
// targets are resolved once at load time into ResolvedPaths; the installer
// only ever reads them.
//
// # Configuration File Structure
//
//	{
//	  "style": "default",
//	  "rsc": true,
//	  "tsx": true,
//	  "tailwind": {
//	    "config": "tailwind.config.ts",
//	    "css": "app/globals.css",
//	    "baseColor": "slate",
//	    "cssVariables": true,
//	    "prefix": ""
//	  },
//	  "aliases": {
//	    "components": "@/components",
//	    "utils": "@/lib/utils"
//	  },
//	  "registry": "https://ui.vango.dev/r"
//	}
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    return err
//	}
//
//	dir, err := cfg.TargetDir("registry:ui")
package config
