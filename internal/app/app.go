// Package app implements the application layer for packsweep.
package app

import (
	"context"
	"fmt"
	"os"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/packsweep/internal/adapters/detector"
	"go.trai.ch/packsweep/internal/adapters/linear"
	"go.trai.ch/packsweep/internal/adapters/tape"
	"go.trai.ch/packsweep/internal/adapters/telemetry"
	"go.trai.ch/packsweep/internal/core/domain"
	"go.trai.ch/packsweep/internal/core/ports"
	"go.trai.ch/packsweep/internal/engine/indexer"
	"go.trai.ch/packsweep/internal/engine/resolver"
	"go.trai.ch/packsweep/internal/engine/rewriter"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	tables     ports.TableLoader
	scanner    ports.Scanner
	codec      ports.ArchiveCodec
	verifier   ports.Verifier
	logger     ports.Logger
	teaOptions []tea.ProgramOption
}

// New creates a new App instance.
func New(
	tables ports.TableLoader,
	scanner ports.Scanner,
	codec ports.ArchiveCodec,
	verifier ports.Verifier,
	log ports.Logger,
) *App {
	return &App{
		tables:   tables,
		scanner:  scanner,
		codec:    codec,
		verifier: verifier,
		logger:   log,
	}
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Root is the installation directory.
	Root string
	// PacksFile overrides the pack table location.
	PacksFile string
	// DryRun resolves and reports without writing anything.
	DryRun bool
	// Jobs bounds indexing and rewriting concurrency. Zero means one
	// worker per CPU.
	Jobs int
	// NoVerify skips post-rewrite verification.
	NoVerify bool
	// OutputMode overrides renderer auto-detection: auto, tape, linear, ci.
	OutputMode string
}

// Run executes a full sweep: load the pack table, scan the installation,
// index every archive, resolve duplicates and rewrite the affected
// archives. The returned report is non-nil whenever the run got as far as
// resolution, including when it ends with ErrRewriteFailed.
//
//nolint:cyclop // orchestration function
func (a *App) Run(ctx context.Context, opts RunOptions) (*domain.RunReport, error) {
	// 1. Pack table and installation scan
	table, err := a.tables.Load(opts.Root, opts.PacksFile)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load pack table")
	}

	refs, err := a.scanner.Scan(opts.Root, table)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to scan installation")
	}

	// 2. Renderer
	// Detect environment and resolve output mode.
	mode := detector.ResolveMode(detector.DetectEnvironment(), opts.OutputMode)

	var renderer ports.Renderer
	if mode == detector.ModeTape {
		renderer = tape.NewRenderer(a.teaOptions...)
	} else {
		renderer = linear.NewRenderer(os.Stdout, os.Stderr)
	}

	// 3. Telemetry
	// Bridge OTel spans to the renderer and let the tracer stream span
	// logs to it directly.
	bridge := telemetry.NewBridge(renderer)
	setupOTel(bridge)
	tracer := telemetry.NewOTelTracer("packsweep").WithRenderer(renderer)

	// 4. Engines
	ix := indexer.NewIndexer(a.codec, tracer)
	rw := rewriter.NewRewriter(a.codec, a.verifier, tracer)

	// 5. Run renderer and sweep concurrently
	var report *domain.RunReport

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := renderer.Start(ctx); err != nil {
			return err
		}
		// Wait blocks until the renderer has terminated.
		return renderer.Wait()
	})

	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "sweep panic: %v\n", r)
			}
			_ = renderer.Stop()
		}()

		var sweepErr error
		report, sweepErr = a.sweep(ctx, tracer, ix, rw, refs, opts)
		return sweepErr
	})

	if err := g.Wait(); err != nil {
		return report, err
	}

	if report.Failed() {
		return report, domain.ErrRewriteFailed
	}
	return report, nil
}

// sweep runs the index/resolve/rewrite phases and assembles the report.
func (a *App) sweep(
	ctx context.Context,
	tracer ports.Tracer,
	ix *indexer.Indexer,
	rw *rewriter.Rewriter,
	refs []domain.ArchiveRef,
	opts RunOptions,
) (*domain.RunReport, error) {
	index, err := ix.Build(ctx, refs, opts.Jobs)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to index archives")
	}

	res := resolver.Resolve(index)
	plan := res.Plan

	report := &domain.RunReport{
		ArchivesScanned: len(refs),
		EntriesIndexed:  index.Entries,
		DuplicateGroups: res.DuplicateGroups,
		DryRun:          opts.DryRun,
		Ambiguous:       plan.Ambiguous,
	}

	if !plan.Empty() {
		tracer.EmitPlan(ctx, planArchives(plan))

		outcomes := rw.Apply(ctx, plan, rewriter.Options{
			DryRun:   opts.DryRun,
			Jobs:     opts.Jobs,
			NoVerify: opts.NoVerify,
		})
		for _, o := range outcomes {
			report.AddOutcome(o)
		}
	}

	report.Sort()
	return report, ctx.Err()
}

// Packs returns the effective pack table for an installation.
func (a *App) Packs(root, packsFile string) (domain.PackTable, error) {
	return a.tables.Load(root, packsFile)
}

// planArchives returns the display paths of the archives a plan touches.
func planArchives(plan *domain.Plan) []string {
	rels := make([]string, 0, len(plan.Deletions))
	for _, occs := range plan.Deletions {
		rels = append(rels, occs[0].Archive.Rel)
	}
	slices.Sort(rels)
	return rels
}

// setupOTel configures the OpenTelemetry SDK with the renderer bridge.
func setupOTel(bridge *telemetry.Bridge) {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
}
