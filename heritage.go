// Package heritage assembles the canonical heritage dataset from its
// sources and publishes it for downstream consumers. The pipeline is a
// one-shot batch job: read the per-locale lists and the component export,
// merge them into one canonical site per id number, reconcile components to
// their parents, validate everything, and publish atomically. Nothing is
// written unless the whole dataset validates.
package heritage

import (
	"context"
	"path/filepath"

	"github.com/wanderstone/heritage/internal/embedded"
	"github.com/wanderstone/heritage/internal/sources/whc"
	"github.com/wanderstone/heritage/internal/sources/wikidata"
	"github.com/wanderstone/heritage/internal/validation"
	"github.com/wanderstone/heritage/pkg/constants"
	"github.com/wanderstone/heritage/pkg/errors"
	"github.com/wanderstone/heritage/pkg/logging"
	"github.com/wanderstone/heritage/pkg/publish"
	"github.com/wanderstone/heritage/pkg/reconcile"
	"github.com/wanderstone/heritage/pkg/sites"
)

// Pipeline runs the dataset build. It owns the canonical set for the
// duration of a run and never exposes it to concurrent writers.
type Pipeline interface {
	// Run executes the full pipeline and returns the run report. A non-nil
	// error means nothing was published.
	Run(ctx context.Context) (*Report, error)
}

// pipeline is the default Pipeline implementation.
type pipeline struct {
	config *config
}

// New creates a Pipeline with the given options.
func New(opts ...Option) (Pipeline, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &pipeline{config: cfg}, nil
}

// Run executes the stages in order. Per-record problems were already
// absorbed by the stages that own them; only missing required inputs and
// fatal validation abort the run.
func (p *pipeline) Run(ctx context.Context) (*Report, error) {
	cfg := p.config
	report := NewReport()

	// Every stage logs through the context so per-stage and per-record
	// fields ride along without threading a logger everywhere.
	ctx = logging.WithLogger(ctx, cfg.logger)
	ctx = logging.WithRunID(ctx, report.RunID)
	logger := logging.FromContext(ctx)

	registry, err := p.registry()
	if err != nil {
		return nil, err
	}
	locales := registry.Codes()
	logger.Info().
		Strs("locales", locales).
		Str("raw_dir", cfg.rawDir).
		Bool("dry_run", cfg.dryRun).
		Msg("Starting dataset build")

	// Stage 1: read the per-locale lists. Reads run concurrently; the merge
	// below walks the slots in locale order, so output stays deterministic.
	stage := report.StartStage("read")
	slots, err := whc.ReadLocales(logging.WithStage(ctx, "read"), cfg.rawDir, locales)
	if err != nil {
		return nil, err
	}
	stage.Done()

	// Stage 2: build canonical sites.
	stage = report.StartStage("build")
	builder := reconcile.NewBuilder()
	for i, locale := range locales {
		builder.Merge(locale, slots[i])
	}
	set := builder.Set()
	report.Diagnostics.Merge(builder.Diagnostics())
	stage.Done()
	logger.Info().Int("sites", set.Len()).Msg("Built canonical sites")

	// Stage 3: reconcile components. A missing export skips the stage; the
	// dataset is still valid with zero components.
	stage = report.StartStage("reconcile")
	if err := p.reconcileComponents(logging.WithStage(ctx, "reconcile"), set, registry, report); err != nil {
		return nil, err
	}
	stage.Done()

	// Stage 4: validate collect-all-then-decide.
	stage = report.StartStage("validate")
	list := set.List()
	result := validation.New(locales, registry.Primary()).Validate(list)
	validateCtx := logging.WithStage(ctx, "validate")
	for _, violation := range result.Fatal() {
		logging.Ctx(violationContext(validateCtx, violation)).Error().Msg(violation.Message)
	}
	for _, violation := range result.Warnings() {
		logging.Ctx(violationContext(validateCtx, violation)).Warn().Msg(violation.Message)
	}
	report.Warnings = result.Warnings()
	stage.Done()

	if !result.OK() {
		return nil, errors.NewValidationFailedError(len(result.Fatal()), len(result.Warnings()))
	}

	report.Statistics = validation.Compute(list)
	report.Statistics.Log(logger)

	// Stage 5: publish atomically.
	stage = report.StartStage("publish")
	paths := []string{cfg.datasetPath}
	if cfg.servingPath != "" {
		paths = append(paths, cfg.servingPath)
	}
	publisher := publish.New(publish.WithPaths(paths...), publish.WithDryRun(cfg.dryRun))
	sizes, err := publisher.Publish(list)
	if err != nil {
		return nil, err
	}
	report.Files = sizes
	stage.Done()

	report.Finish()
	report.Log(logger)
	return report, nil
}

// violationContext scopes the context logger to the site, and component,
// a violation was found on.
func violationContext(ctx context.Context, violation validation.Violation) context.Context {
	ctx = logging.WithSite(ctx, violation.SiteID)
	if violation.ComponentID != "" {
		ctx = logging.WithComponent(ctx, violation.ComponentID)
	}
	return ctx
}

// registry resolves the locale universe: the embedded registry, optionally
// narrowed by configuration.
func (p *pipeline) registry() (*embedded.Registry, error) {
	registry, err := embedded.LoadRegistry()
	if err != nil {
		return nil, err
	}
	if len(p.config.locales) > 0 {
		return registry.Narrow(p.config.locales)
	}
	return registry, nil
}

// reconcileComponents runs the component stage, or skips it when the export
// is absent.
func (p *pipeline) reconcileComponents(ctx context.Context, set *sites.Set, registry *embedded.Registry, report *Report) error {
	logger := logging.FromContext(ctx)
	path := p.config.componentsPath
	records, err := wikidata.ReadFile(path)
	if err != nil {
		if errors.IsMissingInput(err) {
			logger.Warn().Str("path", path).Msg("Component export absent, skipping reconciliation")
			report.ComponentsSkipped = true
			return nil
		}
		return err
	}

	reconciler := reconcile.NewReconciler(registry.Primary())
	reconciler.Reconcile(set, records)
	report.Diagnostics.Merge(reconciler.Diagnostics())

	logger.Info().
		Int("records", len(records)).
		Int("attached", set.ComponentCount()).
		Msg("Reconciled components")
	return nil
}

// DefaultComponentsPath returns the component export path inside a raw directory.
func DefaultComponentsPath(rawDir string) string {
	return filepath.Join(rawDir, constants.ComponentsFile)
}
