package transform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/uikit/internal/config"
	"github.com/vango-dev/uikit/internal/registry"
)

func run(t *testing.T, stage Stage, tc *Context) string {
	t.Helper()
	out, err := stage(context.Background(), tc, tc.Raw)
	require.NoError(t, err)
	return out
}

func TestRewriteImport(t *testing.T) {
	custom := config.New()
	custom.Aliases = config.AliasesConfig{
		Components: "~/components",
		Utils:      "~/lib/utils",
		UI:         "~/ui",
		Lib:        "~/lib",
		Hooks:      "~/hooks",
	}

	tests := []struct {
		name      string
		cfg       *config.Config
		specifier string
		want      string
	}{
		{"ui default", config.New(), "@/registry/default/ui/button", "@/components/ui/button"},
		{"components default", config.New(), "@/registry/new-york/components/theme", "@/components/theme"},
		{"lib without alias", config.New(), "@/registry/default/lib/helpers", "@/components/lib/helpers"},
		{"style root", config.New(), "@/registry/default/example/demo", "@/components/example/demo"},
		{"utils", config.New(), "@/lib/utils", "@/lib/utils"},
		{"plain alias untouched", config.New(), "@/hooks/use-toast", "@/hooks/use-toast"},
		{"package", config.New(), "react", "react"},
		{"scoped package", config.New(), "@radix-ui/react-slot", "@radix-ui/react-slot"},
		{"relative", config.New(), "./button", "./button"},
		{"custom ui", custom, "@/registry/default/ui/button", "~/ui/button"},
		{"custom components", custom, "@/registry/default/components/x", "~/components/x"},
		{"custom lib", custom, "@/registry/default/lib/helpers", "~/lib/helpers"},
		{"custom hooks", custom, "@/registry/default/hooks/use-toast", "~/hooks/use-toast"},
		{"custom utils", custom, "@/lib/utils", "~/lib/utils"},
		{"custom alias root", custom, "@/hooks/use-toast", "~/hooks/use-toast"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewriteImport(tt.specifier, tt.cfg))
		})
	}
}

func TestImport(t *testing.T) {
	cfg := config.New()
	cfg.Aliases.Components = "~/components"
	cfg.Aliases.Utils = "~/lib/utils"
	cfg.Aliases.UI = "~/components/ui"

	raw := `import * as React from "react"
import { Slot } from "@radix-ui/react-slot"

import { cn } from "@/lib/utils"
import { Button } from '@/registry/new-york/ui/button'
export { Label } from "@/registry/new-york/ui/label"

const path = "@/registry/new-york/ui/button"
`
	out := run(t, Import, &Context{Filename: "ui/dialog.tsx", Raw: raw, Config: cfg})

	assert.Equal(t, `import * as React from "react"
import { Slot } from "@radix-ui/react-slot"

import { cn } from "~/lib/utils"
import { Button } from '~/components/ui/button'
export { Label } from "~/components/ui/label"

const path = "@/registry/new-york/ui/button"
`, out)
}

func TestImport_TypeScript(t *testing.T) {
	raw := "import { cn } from \"@/lib/utils\"\nconst x = <number>cn\n"
	cfg := config.New()
	cfg.Aliases.Utils = "@/utils"

	out := run(t, Import, &Context{Filename: "lib/x.ts", Raw: raw, Config: cfg})
	assert.Equal(t, "import { cn } from \"@/utils\"\nconst x = <number>cn\n", out)
}

func TestRSC(t *testing.T) {
	tests := []struct {
		name string
		rsc  bool
		raw  string
		want string
	}{
		{
			name: "double quoted",
			raw:  "\"use client\"\n\nimport * as React from \"react\"\n",
			want: "import * as React from \"react\"\n",
		},
		{
			name: "single quoted with semicolon",
			raw:  "'use client';\nimport * as React from \"react\";\n",
			want: "import * as React from \"react\";\n",
		},
		{
			name: "after comment",
			raw:  "// Button\n\"use client\"\nexport {}\n",
			want: "// Button\nexport {}\n",
		},
		{
			name: "not leading",
			raw:  "import * as React from \"react\"\n\"use client\"\n",
			want: "import * as React from \"react\"\n\"use client\"\n",
		},
		{
			name: "other directive",
			raw:  "\"use strict\"\nexport {}\n",
			want: "\"use strict\"\nexport {}\n",
		},
		{
			name: "kept for rsc projects",
			rsc:  true,
			raw:  "\"use client\"\n\nexport {}\n",
			want: "\"use client\"\n\nexport {}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.RSC = tt.rsc
			out := run(t, RSC, &Context{Filename: "ui/button.tsx", Raw: tt.raw, Config: cfg})
			assert.Equal(t, tt.want, out)
		})
	}
}

var testColors = registry.ColorScheme{
	Light: map[string]string{
		"background": "white",
		"primary":    "slate-900",
		"border":     "slate-200",
		"input":      "slate-200",
	},
	Dark: map[string]string{
		"background": "slate-950",
		"primary":    "slate-50",
		"border":     "slate-800",
		"input":      "slate-800",
	},
}

func TestApplyColorMapping(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"bg-background text-primary", "bg-white text-slate-900 dark:bg-slate-950 dark:text-slate-50"},
		{"hover:bg-primary/90", "hover:bg-slate-900/90 dark:hover:bg-slate-50/90"},
		{"flex items-center", "flex items-center"},
		{"rounded border px-2", "rounded border border-slate-200 px-2 dark:border-slate-800"},
		{"ring-offset-background", "ring-offset-white dark:ring-offset-slate-950"},
		{"bg-muted", "bg-muted"},
		{"bg-[url(/a.png)] hover:bg-primary/90", "bg-[url(/a.png)] hover:bg-slate-900/90 dark:hover:bg-slate-50/90"},
		{"  bg-primary   bg-primary ", "bg-slate-900 dark:bg-slate-50"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyColorMapping(tt.in, testColors))
		})
	}
}

func TestCSSVars(t *testing.T) {
	raw := `const buttonVariants = cva("bg-primary text-sm", {
  variants: {
    variant: {
      "default": "bg-primary",
      outline: "border-input",
    },
  },
})

export function Card() {
  return <div className="bg-background" data-tone="bg-primary" />
}
`
	cfg := config.New()
	cfg.Tailwind.CSSVariables = false
	color := &registry.BaseColor{InlineColors: testColors}

	out := run(t, CSSVars, &Context{Filename: "ui/card.tsx", Raw: raw, Config: cfg, BaseColor: color})
	assert.Equal(t, `const buttonVariants = cva("bg-slate-900 text-sm dark:bg-slate-50", {
  variants: {
    variant: {
      "default": "bg-slate-900 dark:bg-slate-50",
      outline: "border-slate-200 dark:border-slate-800",
    },
  },
})

export function Card() {
  return <div className="bg-white dark:bg-slate-950" data-tone="bg-primary" />
}
`, out)

	// CSS variables projects, and base colors without inline colors, are untouched.
	cfg.Tailwind.CSSVariables = true
	assert.Equal(t, raw, run(t, CSSVars, &Context{Filename: "ui/card.tsx", Raw: raw, Config: cfg, BaseColor: color}))
	cfg.Tailwind.CSSVariables = false
	assert.Equal(t, raw, run(t, CSSVars, &Context{Filename: "ui/card.tsx", Raw: raw, Config: cfg}))
}

func TestSplitClass(t *testing.T) {
	tests := []struct {
		class    string
		variant  string
		value    string
		modifier string
	}{
		{"bg-primary", "", "bg-primary", ""},
		{"md:hover:bg-primary/50", "md:hover", "bg-primary", "50"},
		{"-translate-x-1/2", "", "-translate-x-1", "2"},
		{"[mask-type:luminance]", "", "[mask-type:luminance]", ""},
		{"bg-[url(/a.png)]", "", "bg-[url(/a.png)]", ""},
		{"dark:bg-[url(/a.png)]/75", "dark", "bg-[url(/a.png)]", "75"},
		{"[&_svg:first-child]:size-4", "[&_svg:first-child]", "size-4", ""},
	}

	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			variant, value, modifier := splitClass(tt.class)
			assert.Equal(t, tt.variant, variant)
			assert.Equal(t, tt.value, value)
			assert.Equal(t, tt.modifier, modifier)
			assert.Equal(t, tt.class, joinClass(variant, value, modifier))
		})
	}
}

func TestApplyPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"flex items-center", "tw-flex tw-items-center"},
		{"hover:bg-accent", "hover:tw-bg-accent"},
		{"-mt-2", "-tw-mt-2"},
		{"md:-translate-x-1/2", "md:-tw-translate-x-1/2"},
		{"!p-0", "!tw-p-0"},
		{"w-1/2", "tw-w-1/2"},
		{"tw-flex", "tw-flex"},
		{"[&_svg]:size-4", "[&_svg]:tw-size-4"},
		{"[mask-type:luminance]", "[mask-type:luminance]"},
		{"hover:[mask-type:luminance]", "hover:[mask-type:luminance]"},
		{"bg-[url(/a.png)]", "tw-bg-[url(/a.png)]"},
		{"md:bg-[url(/a.png)]/50", "md:tw-bg-[url(/a.png)]/50"},
		{"[&>a:hover]:underline", "[&>a:hover]:tw-underline"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyPrefix(tt.in, "tw-"))
		})
	}
}

func TestTailwindPrefix(t *testing.T) {
	raw := `export function Label({ className }) {
  return <label className={cn("text-sm font-medium", className)} htmlFor="x" />
}
`
	cfg := config.New()
	cfg.Tailwind.Prefix = "tw-"

	out := run(t, TailwindPrefix, &Context{Filename: "ui/label.jsx", Raw: raw, Config: cfg})
	assert.Equal(t, `export function Label({ className }) {
  return <label className={cn("tw-text-sm tw-font-medium", className)} htmlFor="x" />
}
`, out)

	cfg.Tailwind.Prefix = ""
	assert.Equal(t, raw, run(t, TailwindPrefix, &Context{Filename: "ui/label.jsx", Raw: raw, Config: cfg}))
}

func TestJSX(t *testing.T) {
	raw := `import * as React from "react"
import type { VariantProps } from "class-variance-authority"

export interface ButtonProps
  extends React.ButtonHTMLAttributes<HTMLButtonElement> {
  asChild?: boolean
}

const Button = React.forwardRef<HTMLButtonElement, ButtonProps>(
  ({ className, ...props }, ref) => {
    const el = ref as React.Ref<HTMLButtonElement>
    return <button className={className} ref={el!} {...props} />
  }
)

function label(text?: string): string {
  return text ?? ""
}

export { Button, label }
`
	out := run(t, JSX, &Context{Filename: "ui/button.tsx", Raw: raw, TransformJSX: true})
	assert.Equal(t, `import * as React from "react"

const Button = React.forwardRef(
  ({ className, ...props }, ref) => {
    const el = ref
    return <button className={className} ref={el} {...props} />
  }
)

function label(text) {
  return text ?? ""
}

export { Button, label }
`, out)

	assert.Equal(t, raw, run(t, JSX, &Context{Filename: "ui/button.tsx", Raw: raw}))
}

func TestJSX_TypeOnlySpecifiers(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "mixed specifiers",
			raw:  "import { type VariantProps, cva } from \"class-variance-authority\"\n",
			want: "import { cva } from \"class-variance-authority\"\n",
		},
		{
			name: "only types",
			raw:  "import { type A, type B } from \"./types\"\nexport const x = 1\n",
			want: "export const x = 1\n",
		},
		{
			name: "type alias",
			raw:  "type Size = \"sm\" | \"lg\"\n\nexport const x = 1\n",
			want: "export const x = 1\n",
		},
		{
			name: "export type",
			raw:  "export const x = 1\nexport type { Size } from \"./size\"\n",
			want: "export const x = 1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := run(t, JSX, &Context{Filename: "lib/x.ts", Raw: tt.raw, TransformJSX: true})
			assert.Equal(t, tt.want, out)
		})
	}
}
