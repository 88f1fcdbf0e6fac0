// Package rewriter applies a rewrite plan to the installation, archive by
// archive, with verify-then-swap semantics.
package rewriter

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"go.trai.ch/packsweep/internal/core/domain"
	"go.trai.ch/packsweep/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Options configures one Apply pass.
type Options struct {
	// DryRun resolves outcomes without touching any file.
	DryRun bool
	// Jobs caps concurrent archive rewrites. Zero means one per CPU.
	Jobs int
	// NoVerify skips the post-rewrite content verification.
	NoVerify bool
}

// Rewriter executes deletion plans. Each archive is rewritten to a
// temporary file in the same directory, verified against the source, and
// only then swapped into place with a rename. A failure on one archive
// never touches that archive's original and never stops the others.
type Rewriter struct {
	codec    ports.ArchiveCodec
	verifier ports.Verifier
	tracer   ports.Tracer

	// locks serializes rewrites per archive path. Plans key deletions by
	// path already; this guards against two Apply calls racing on the
	// same file.
	locks sync.Map // map[string]*sync.Mutex
}

// NewRewriter creates a new Rewriter.
func NewRewriter(codec ports.ArchiveCodec, verifier ports.Verifier, tracer ports.Tracer) *Rewriter {
	return &Rewriter{codec: codec, verifier: verifier, tracer: tracer}
}

// lockPath acquires the per-archive mutex and returns its unlock func.
func (rw *Rewriter) lockPath(path string) func() {
	mu, _ := rw.locks.LoadOrStore(path, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// Apply executes the plan and returns one outcome per affected archive.
// Cancellation is honored at archive granularity: archives that already
// started finish their swap, the rest are not begun.
func (rw *Rewriter) Apply(ctx context.Context, plan *domain.Plan, opts Options) []domain.ArchiveOutcome {
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}

	var mu sync.Mutex
	outcomes := make([]domain.ArchiveOutcome, 0, len(plan.Deletions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Jobs)

	for _, path := range plan.ArchivePaths() {
		occs := plan.Deletions[path]
		g.Go(func() error {
			// Cancellation boundary: never start a new archive after
			// the context is done.
			if ctx.Err() != nil {
				return nil
			}

			outcome := rw.rewriteArchive(ctx, path, occs, opts)

			mu.Lock()
			outcomes = append(outcomes, outcome)
			mu.Unlock()
			return nil
		})
	}

	// Workers only report outcomes, they never return errors.
	_ = g.Wait()

	return outcomes
}

// rewriteArchive rewrites one archive, removing the planned occurrences.
func (rw *Rewriter) rewriteArchive(ctx context.Context, path string, occs []domain.Occurrence, opts Options) domain.ArchiveOutcome {
	unlock := rw.lockPath(path)
	defer unlock()

	ref := occs[0].Archive
	outcome := domain.ArchiveOutcome{
		Path:           path,
		Rel:            ref.Rel,
		Pack:           ref.Pack.Code,
		EntriesRemoved: len(occs),
	}

	_, span := rw.tracer.Start(ctx, "rewrite "+ref.Rel)
	defer span.End()
	span.SetAttribute("archive", ref.Rel)
	span.SetAttribute("deletions", len(occs))
	span.SetAttribute("dry_run", opts.DryRun)

	info, err := os.Stat(path)
	if err != nil {
		return rw.fail(&outcome, span, zerr.With(zerr.Wrap(err, "failed to stat archive"), "path", path))
	}
	outcome.SizeBefore = info.Size()

	if opts.DryRun {
		outcome.Status = domain.StatusPlanned
		outcome.SizeAfter = outcome.SizeBefore - removedBytes(occs)
		_, _ = fmt.Fprintf(span, "would remove %d entries\n", len(occs))
		return outcome
	}

	src, err := rw.codec.Open(path)
	if err != nil {
		return rw.fail(&outcome, span, err)
	}
	defer src.Close() //nolint:errcheck // Read-only handle

	keep, err := retainedEntries(src.Entries(), occs)
	if err != nil {
		return rw.fail(&outcome, span, err)
	}
	_, _ = fmt.Fprintf(span, "removing %d of %d entries\n", len(occs), len(src.Entries()))

	tmp := path + ".packsweep.tmp"
	if err := rw.codec.Write(tmp, src, keep); err != nil {
		_ = os.Remove(tmp)
		return rw.fail(&outcome, span, err)
	}

	if !opts.NoVerify {
		if err := rw.verifier.Verify(tmp, src, keep); err != nil {
			_ = os.Remove(tmp)
			return rw.fail(&outcome, span, err)
		}
		_, _ = fmt.Fprintf(span, "verified %d entries\n", len(keep))
	}

	// The source handle must be released before the swap; on some
	// platforms renaming over an open file fails.
	if err := src.Close(); err != nil {
		_ = os.Remove(tmp)
		return rw.fail(&outcome, span, zerr.Wrap(err, "failed to close source archive"))
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return rw.fail(&outcome, span, zerr.With(zerr.Wrap(err, "failed to swap archive"), "path", path))
	}

	after, err := os.Stat(path)
	if err == nil {
		outcome.SizeAfter = after.Size()
	}
	outcome.Status = domain.StatusRewritten
	return outcome
}

// fail marks the outcome failed and records the error on the span.
func (rw *Rewriter) fail(outcome *domain.ArchiveOutcome, span ports.Span, err error) domain.ArchiveOutcome {
	outcome.Status = domain.StatusFailed
	outcome.Err = err
	span.RecordError(err)
	return *outcome
}

// retainedEntries returns the archive's entries minus the planned
// deletions, in original slot order. Every planned occurrence must still
// match the slot it was indexed at; any drift means the archive changed
// between indexing and rewriting.
func retainedEntries(entries []domain.Entry, occs []domain.Occurrence) ([]domain.Entry, error) {
	drop := make(map[int]bool, len(occs))
	for _, o := range occs {
		slot := o.Entry.Slot
		if slot < 0 || slot >= len(entries) {
			return nil, zerr.With(zerr.With(
				zerr.Wrap(domain.ErrStaleIndex, "planned slot out of range"),
				"slot", slot), "entries", len(entries))
		}
		got := entries[slot]
		if got.Key != o.Entry.Key || got.Offset != o.Entry.Offset || got.Size != o.Entry.Size {
			return nil, zerr.With(zerr.With(zerr.With(
				zerr.Wrap(domain.ErrStaleIndex, "entry no longer matches its slot"),
				"slot", slot), "want_key", o.Entry.Key.String()), "got_key", got.Key.String())
		}
		drop[slot] = true
	}

	keep := make([]domain.Entry, 0, len(entries)-len(drop))
	for i, e := range entries {
		if !drop[i] {
			keep = append(keep, e)
		}
	}
	return keep, nil
}

// removedBytes estimates the stored bytes freed by deleting the
// occurrences. Index and directory shrinkage is not counted.
func removedBytes(occs []domain.Occurrence) int64 {
	var n int64
	for _, o := range occs {
		n += int64(o.Entry.Size)
	}
	return n
}
