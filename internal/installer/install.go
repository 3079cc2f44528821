package installer

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/uikit/internal/config"
	"github.com/vango-dev/uikit/internal/errors"
	"github.com/vango-dev/uikit/internal/registry"
	"github.com/vango-dev/uikit/internal/transform"
	"github.com/vango-dev/uikit/internal/ui"
)

const tracerName = "github.com/vango-dev/uikit/internal/installer"

// Options controls a single Install run.
type Options struct {
	// Overwrite replaces existing files without asking.
	Overwrite bool

	// Force is carried through from the command line. It does not affect
	// existing files; only Overwrite and SkipExisting do.
	Force bool

	// SkipExisting keeps existing files without asking.
	SkipExisting bool

	// Path overrides the destination directory of every file.
	Path string
}

// Policy returns the conflict policy the options select.
func (o Options) Policy() Policy {
	switch {
	case o.Overwrite:
		return PolicyOverwrite
	case o.SkipExisting:
		return PolicyNever
	default:
		return PolicyAsk
	}
}

// Installer installs registry files into the project described by its
// config.
type Installer struct {
	cfg       *config.Config
	confirm   Confirmer
	progress  Progress
	logger    Logger
	log       *slog.Logger
	stages    []transform.Stage
	baseColor *registry.BaseColor
	metrics   *Metrics
	tracer    trace.Tracer
}

// Option configures an Installer.
type Option func(*Installer)

// WithConfirmer sets who answers overwrite questions. Without one, existing
// files are only replaced when the run's options say so.
func WithConfirmer(c Confirmer) Option {
	return func(i *Installer) {
		i.confirm = c
	}
}

// WithProgress sets the progress indicator.
func WithProgress(p Progress) Option {
	return func(i *Installer) {
		i.progress = p
	}
}

// WithLogger sets the logger used for the summary.
func WithLogger(l Logger) Option {
	return func(i *Installer) {
		i.logger = l
	}
}

// WithSlog sets the diagnostic logger.
func WithSlog(l *slog.Logger) Option {
	return func(i *Installer) {
		i.log = l
	}
}

// WithStages replaces the transform pipeline.
func WithStages(stages ...transform.Stage) Option {
	return func(i *Installer) {
		i.stages = stages
	}
}

// WithBaseColor sets the base color passed to the transform stages.
func WithBaseColor(c *registry.BaseColor) Option {
	return func(i *Installer) {
		i.baseColor = c
	}
}

// WithMetrics records outcomes to m.
func WithMetrics(m *Metrics) Option {
	return func(i *Installer) {
		i.metrics = m
	}
}

// WithTracer sets the tracer. The default comes from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(i *Installer) {
		i.tracer = t
	}
}

// New creates an Installer for the project described by cfg.
func New(cfg *config.Config, opts ...Option) *Installer {
	i := &Installer{
		cfg:      cfg,
		progress: ui.Nop{},
		logger:   ui.Nop{},
		log:      slog.New(slog.DiscardHandler),
		stages:   transform.DefaultStages(),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.tracer == nil {
		i.tracer = otel.Tracer(tracerName)
	}
	return i
}

// Progress returns the progress indicator, for Report.Summarize.
func (i *Installer) Progress() Progress {
	return i.progress
}

// Logger returns the summary logger, for Report.Summarize.
func (i *Installer) Logger() Logger {
	return i.logger
}

// Install writes files into the project. Files without content are ignored.
// The first filesystem or transform failure aborts the run with an empty
// Report; files written before it stay on disk.
//
// The progress indicator is left running on success so the caller can
// finish it with Report.Summarize.
func (i *Installer) Install(ctx context.Context, files []registry.File, opts Options) (Report, error) {
	policy := opts.Policy()

	ctx, span := i.tracer.Start(ctx, "uikit.install",
		trace.WithAttributes(
			attribute.Int("uikit.files", len(files)),
			attribute.String("uikit.policy", policy.String()),
		),
	)
	defer span.End()

	start := time.Now()
	defer i.metrics.observeRun(start)

	resolver := &ConflictResolver{Confirm: i.confirm, Progress: i.progress}
	var report Report

	i.progress.Start("Updating files.")

	for _, file := range files {
		if file.Content == "" {
			i.log.Debug("skipping file without content", "path", file.Path)
			continue
		}

		outcome, rel, err := i.installFile(ctx, resolver, file, opts, policy)
		if err != nil {
			i.progress.Stop()
			i.metrics.observeError(err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return Report{}, err
		}

		report.add(outcome, rel)
		i.metrics.observeFile(outcome)
	}

	span.SetAttributes(
		attribute.Int("uikit.created", len(report.Created)),
		attribute.Int("uikit.updated", len(report.Updated)),
		attribute.Int("uikit.skipped", len(report.Skipped)),
	)
	span.SetStatus(codes.Ok, "")

	return report, nil
}

func (i *Installer) installFile(ctx context.Context, resolver *ConflictResolver, file registry.File, opts Options, policy Policy) (string, string, error) {
	ctx, span := i.tracer.Start(ctx, "uikit.install.file",
		trace.WithAttributes(attribute.String("uikit.source", file.Path)),
	)
	defer span.End()

	// Resumes the indicator after a declined prompt on the previous file.
	i.progress.Start("")

	target, err := ResolvePath(file, i.cfg, opts.Path)
	if err != nil {
		return "", "", err
	}
	rel := i.relative(target)
	span.SetAttributes(attribute.String("uikit.target", rel))

	existed, err := fileExists(target)
	if err != nil {
		return "", "", err
	}

	proceed, err := resolver.Resolve(ctx, target, policy)
	if err != nil {
		return "", "", err
	}
	if !proceed {
		i.log.Debug("keeping existing file", "path", rel, "policy", policy.String())
		span.SetAttributes(attribute.String("uikit.outcome", OutcomeSkipped))
		return OutcomeSkipped, rel, nil
	}

	dir := filepath.Dir(target)
	if _, err := os.Stat(dir); err != nil {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", "", errors.New("E151").WithOp("mkdir").WithPath(dir).Wrap(err)
		}
		i.log.Debug("created directory", "path", i.relative(dir))
	}

	content, err := transform.Run(ctx, &transform.Context{
		Filename:     file.Path,
		Raw:          file.Content,
		Config:       i.cfg,
		BaseColor:    i.baseColor,
		TransformJSX: !i.cfg.TSX,
	}, i.stages...)
	if err != nil {
		return "", "", err
	}

	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		return "", "", errors.New("E150").WithOp("write").WithPath(target).Wrap(err)
	}

	outcome := OutcomeCreated
	if existed {
		outcome = OutcomeUpdated
	}
	i.log.Debug("wrote file", "path", rel, "outcome", outcome, "bytes", len(content))
	span.SetAttributes(attribute.String("uikit.outcome", outcome))

	return outcome, rel, nil
}

// relative returns path relative to the project root, slash-separated.
func (i *Installer) relative(path string) string {
	rel, err := filepath.Rel(i.cfg.ResolvedPaths.Cwd, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
