// Package registry fetches registry items and base colors for uikit.
//
// Items are distributed as source code that developers add to their
// projects and own completely. This package only retrieves and orders
// them; writing them into a project is the installer's job.
//
// # Item References
//
// An item reference passed to FetchItem or ResolveTree can be:
//
//   - a bare name ("button"), fetched from <registry>/styles/<style>/button.json
//   - an http(s) URL to an item document
//   - an s3://bucket/key URL, fetched with the AWS SDK
//   - a local path ending in .json
//
// # Item Document
//
//	{
//	  "name": "button",
//	  "type": "registry:ui",
//	  "dependencies": ["@radix-ui/react-slot"],
//	  "registryDependencies": ["utils"],
//	  "files": [
//	    {"path": "ui/button.tsx", "type": "registry:ui", "content": "..."}
//	  ]
//	}
//
// # Usage
//
//	reg := registry.New(cfg)
//
//	items, err := reg.ResolveTree(ctx, []string{"button", "dialog"})
//	baseColor, err := reg.BaseColor(ctx, cfg.Tailwind.BaseColor)
package registry
