package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/uikit/internal/config"
	"github.com/vango-dev/uikit/internal/errors"
	"github.com/vango-dev/uikit/internal/installer"
	"github.com/vango-dev/uikit/internal/registry"
	"github.com/vango-dev/uikit/internal/ui"
	"github.com/vango-dev/uikit/internal/watch"
)

type addOptions struct {
	overwrite    bool
	force        bool
	skipExisting bool
	path         string
	cwd          string
	watch        bool
	metricsFile  string
	verbose      bool
}

func (o *addOptions) install() installer.Options {
	return installer.Options{
		Overwrite:    o.overwrite,
		Force:        o.force,
		SkipExisting: o.skipExisting,
		Path:         o.path,
	}
}

func addCmd() *cobra.Command {
	opts := &addOptions{}

	cmd := &cobra.Command{
		Use:   "add <item...>",
		Short: "Add registry items to your project",
		Long: `Add registry items and their registry dependencies to your project.

An item is a registry name, an http(s) URL, an s3://bucket/key
reference, or a path to a local .json item file.

Existing files are kept unless you confirm the overwrite, or pass
--overwrite. Without a terminal, existing files are kept.

Examples:
  uikit add button card
  uikit add dialog --overwrite
  uikit add ./registry/input.json --watch
  uikit add button --path=src/widgets`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()
			return runAdd(ctx, cmd.OutOrStdout(), args, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&opts.overwrite, "overwrite", "o", false, "Overwrite existing files without asking")
	f.BoolVarP(&opts.force, "force", "f", false, "Force the install; existing files still need --overwrite")
	f.BoolVar(&opts.skipExisting, "skip-existing", false, "Keep existing files without asking")
	f.StringVar(&opts.path, "path", "", "Install every file into this directory")
	f.StringVar(&opts.cwd, "cwd", "", "Project directory (default: current directory)")
	f.BoolVar(&opts.watch, "watch", false, "Re-install when local item files change")
	f.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics for the run to this file")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Log diagnostics to stderr")
	cmd.MarkFlagsMutuallyExclusive("overwrite", "skip-existing")

	return cmd
}

// session holds everything one add invocation shares across install runs.
type session struct {
	cfg      *config.Config
	reg      *registry.Registry
	progress *ui.Spinner
	logger   *ui.Logger
	log      *slog.Logger
	refs     []string
	options  installer.Options
	instOpts []installer.Option
}

func runAdd(ctx context.Context, out io.Writer, refs []string, opts *addOptions) error {
	cwd := opts.cwd
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

	log := slog.New(slog.DiscardHandler)
	if opts.verbose {
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	log.Debug("loaded config", "path", cfg.Path(), "style", cfg.Style, "tsx", cfg.TSX)

	interactive := isTerminal(os.Stdin) && isTerminal(os.Stdout)

	var confirmer installer.Confirmer = ui.DefaultConfirmer{}
	if interactive {
		confirmer = &ui.TerminalConfirmer{In: os.Stdin, Out: out}
	}

	metricsRegistry := prometheus.NewRegistry()

	s := &session{
		cfg:      cfg,
		reg:      registry.New(cfg, registry.WithLogger(log)),
		progress: ui.NewSpinner(out, interactive),
		logger:   ui.NewLogger(out),
		log:      log,
		refs:     refs,
		options:  opts.install(),
	}
	s.instOpts = []installer.Option{
		installer.WithConfirmer(confirmer),
		installer.WithProgress(s.progress),
		installer.WithLogger(s.logger),
		installer.WithSlog(log),
		installer.WithMetrics(installer.NewMetrics(installer.WithRegistry(metricsRegistry))),
	}

	runErr := s.run(ctx)

	if opts.metricsFile != "" {
		if err := prometheus.WriteToTextfile(opts.metricsFile, metricsRegistry); err != nil {
			log.Warn("writing metrics failed", "path", opts.metricsFile, "error", err)
		}
	}

	if runErr != nil || !opts.watch {
		return runErr
	}
	return s.watch(ctx)
}

// run resolves the items and installs their files once.
func (s *session) run(ctx context.Context) error {
	items, err := s.reg.ResolveTree(ctx, s.refs)
	if err != nil {
		return err
	}

	color, err := s.reg.BaseColor(ctx, s.cfg.Tailwind.BaseColor)
	if err != nil {
		return err
	}

	inst := installer.New(s.cfg, append(s.instOpts, installer.WithBaseColor(color))...)
	report, err := inst.Install(ctx, registry.Files(items), s.options)
	if err != nil {
		return err
	}
	report.Summarize(inst.Progress(), inst.Logger())

	deps, devDeps := registry.Dependencies(items)
	if len(deps) > 0 {
		s.logger.Info("Install the dependencies: npm install " + strings.Join(deps, " "))
	}
	if len(devDeps) > 0 {
		s.logger.Info("Install the dev dependencies: npm install -D " + strings.Join(devDeps, " "))
	}
	return nil
}

// watch re-installs, overwriting, whenever a local item file changes.
func (s *session) watch(ctx context.Context) error {
	var local []string
	for _, ref := range s.refs {
		if registry.IsLocal(ref) {
			local = append(local, ref)
		}
	}
	if len(local) == 0 {
		return errors.New("E140").
			WithDetail("--watch needs at least one local item file").
			WithSuggestion("Pass a path such as ./registry/button.json")
	}

	s.options = installer.Options{Overwrite: true, Path: s.options.Path}

	w := watch.New(watch.Config{Paths: local})

	var mu sync.Mutex
	w.OnChange(func(c watch.Change) {
		mu.Lock()
		defer mu.Unlock()

		name := filepath.Base(c.Path)
		if c.Kind == watch.Removed {
			s.logger.Warn(name + " was removed, waiting for it to come back.")
			return
		}

		s.logger.Info(name + " changed, re-installing.")
		for _, ref := range local {
			s.reg.Forget(ref)
		}
		if err := s.run(ctx); err != nil {
			errors.FprintError(os.Stderr, err)
		}
	})

	s.logger.Info("Watching " + strings.Join(local, ", ") + " for changes. Press Ctrl+C to stop.")

	if err := w.Start(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
