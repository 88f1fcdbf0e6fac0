// Package indexer builds the cross-archive resource index.
package indexer

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"go.trai.ch/packsweep/internal/core/domain"
	"go.trai.ch/packsweep/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Indexer reads every archive's index and merges the entries into a single
// cross-archive index. Archives are read concurrently; entry bodies are
// never touched.
type Indexer struct {
	codec  ports.ArchiveCodec
	tracer ports.Tracer
}

// NewIndexer creates a new Indexer.
func NewIndexer(codec ports.ArchiveCodec, tracer ports.Tracer) *Indexer {
	return &Indexer{codec: codec, tracer: tracer}
}

// Build indexes the given archives with up to jobs concurrent readers.
// A jobs value of zero or less means one reader per CPU. Any unreadable or
// malformed archive fails the whole build; nothing has been modified at
// this stage, so aborting is always safe.
func (ix *Indexer) Build(ctx context.Context, refs []domain.ArchiveRef, jobs int) (*domain.Index, error) {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	ctx, span := ix.tracer.Start(ctx, "index")
	defer span.End()
	span.SetAttribute("archives", len(refs))
	span.SetAttribute("jobs", jobs)

	index := domain.NewIndex()
	index.Archives = len(refs)

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for _, ref := range refs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			occs, err := ix.indexArchive(ref)
			if err != nil {
				return err
			}

			mu.Lock()
			for _, o := range occs {
				index.Add(o)
			}
			mu.Unlock()

			_, _ = fmt.Fprintf(span, "%s: %d entries\n", ref.Rel, len(occs))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	index.Canonicalize()
	span.SetAttribute("entries", index.Entries)
	return index, nil
}

// indexArchive reads one archive's index into occurrences.
func (ix *Indexer) indexArchive(ref domain.ArchiveRef) ([]domain.Occurrence, error) {
	archive, err := ix.codec.Open(ref.Path)
	if err != nil {
		return nil, zerr.With(err, "archive", ref.Rel)
	}
	defer archive.Close() //nolint:errcheck // Read-only handle

	entries := archive.Entries()
	occs := make([]domain.Occurrence, 0, len(entries))
	for _, entry := range entries {
		occs = append(occs, domain.Occurrence{
			Key:     entry.Key,
			Archive: ref,
			Entry:   entry,
		})
	}
	return occs, nil
}
