package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/uikit/internal/config"
)

func infoCmd() *cobra.Command {
	var cwd string

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the project configuration",
		Long: `Show the components configuration in use and the directories
registry files are installed into.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cwd == "" {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				cwd = wd
			}

			cfg, err := config.LoadFromDir(cwd)
			if err != nil {
				return err
			}
			return printInfo(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().StringVar(&cwd, "cwd", "", "Project directory (default: current directory)")

	return cmd
}

func printInfo(w io.Writer, cfg *config.Config) error {
	rel := func(p string) string {
		if p == "" {
			return "-"
		}
		if r, err := filepath.Rel(cfg.Dir(), p); err == nil {
			return filepath.ToSlash(r)
		}
		return p
	}
	orDash := func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Config\t%s\n", cfg.Path())
	fmt.Fprintf(tw, "Style\t%s\n", cfg.Style)
	fmt.Fprintf(tw, "TSX\t%t\n", cfg.TSX)
	fmt.Fprintf(tw, "RSC\t%t\n", cfg.RSC)
	fmt.Fprintf(tw, "Base color\t%s\n", orDash(cfg.Tailwind.BaseColor))
	fmt.Fprintf(tw, "CSS variables\t%t\n", cfg.Tailwind.CSSVariables)
	fmt.Fprintf(tw, "Prefix\t%s\n", orDash(cfg.Tailwind.Prefix))
	fmt.Fprintf(tw, "Registry\t%s\n", cfg.Registry)
	fmt.Fprintln(tw, "\t")
	fmt.Fprintf(tw, "Root\t%s\n", cfg.Dir())
	fmt.Fprintf(tw, "Components\t%s\n", rel(cfg.ResolvedPaths.Components))
	fmt.Fprintf(tw, "UI\t%s\n", rel(cfg.ResolvedPaths.UI))
	fmt.Fprintf(tw, "Lib\t%s\n", rel(cfg.ResolvedPaths.Lib))
	fmt.Fprintf(tw, "Hooks\t%s\n", rel(cfg.ResolvedPaths.Hooks))
	fmt.Fprintf(tw, "Utils\t%s\n", rel(cfg.ResolvedPaths.Utils))
	fmt.Fprintf(tw, "Tailwind CSS\t%s\n", rel(cfg.ResolvedPaths.TailwindCSS))
	return tw.Flush()
}
