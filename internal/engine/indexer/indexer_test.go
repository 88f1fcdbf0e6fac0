package indexer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/packsweep/internal/adapters/dbpf"
	"go.trai.ch/packsweep/internal/adapters/dbpf/dbpftest"
	"go.trai.ch/packsweep/internal/adapters/telemetry"
	"go.trai.ch/packsweep/internal/core/domain"
	"go.trai.ch/packsweep/internal/engine/indexer"
)

func ref(path, rel, code string, rank int) domain.ArchiveRef {
	return domain.ArchiveRef{
		Path: path,
		Rel:  rel,
		Pack: domain.Pack{Name: code, Code: code, Rank: rank},
	}
}

func TestIndexer_Build(t *testing.T) {
	dir := t.TempDir()

	shared := domain.ResourceKey{TypeID: 0x42, InstanceID: 0x1}
	basePath := filepath.Join(dir, "base.package")
	ep1Path := filepath.Join(dir, "ep1.package")

	dbpftest.Build(t, basePath, 2,
		dbpftest.Entry{Key: shared, Body: []byte("old copy")},
		dbpftest.Entry{Key: domain.ResourceKey{TypeID: 0x42, InstanceID: 0x2}, Body: []byte("base only")},
	)
	dbpftest.Build(t, ep1Path, 2,
		dbpftest.Entry{Key: shared, Body: []byte("new copy")},
	)

	ix := indexer.NewIndexer(dbpf.NewCodec(), telemetry.NewNoOpTracer())
	index, err := ix.Build(context.Background(), []domain.ArchiveRef{
		ref(ep1Path, "ep1.package", "ep1", 1),
		ref(basePath, "base.package", "base", 0),
	}, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, index.Archives)
	assert.Equal(t, 3, index.Entries)

	occs := index.Occurrences[shared]
	require.Len(t, occs, 2)
	// Canonical order: rank ascending.
	assert.Equal(t, "base", occs[0].Archive.Pack.Code)
	assert.Equal(t, "ep1", occs[1].Archive.Pack.Code)
}

func TestIndexer_Build_Empty(t *testing.T) {
	ix := indexer.NewIndexer(dbpf.NewCodec(), telemetry.NewNoOpTracer())

	index, err := ix.Build(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, index.Entries)
}

func TestIndexer_Build_MalformedArchiveFails(t *testing.T) {
	dir := t.TempDir()

	goodPath := filepath.Join(dir, "good.package")
	badPath := filepath.Join(dir, "bad.package")
	dbpftest.Build(t, goodPath, 2,
		dbpftest.Entry{Key: domain.ResourceKey{TypeID: 1, InstanceID: 1}, Body: []byte("ok")})
	require.NoError(t, os.WriteFile(badPath, []byte("not a package"), 0o644))

	ix := indexer.NewIndexer(dbpf.NewCodec(), telemetry.NewNoOpTracer())
	_, err := ix.Build(context.Background(), []domain.ArchiveRef{
		ref(goodPath, "good.package", "base", 0),
		ref(badPath, "bad.package", "ep1", 1),
	}, 1)
	require.ErrorIs(t, err, domain.ErrArchiveParse)
}

func TestIndexer_Build_Cancelled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.package")
	dbpftest.Build(t, path, 2,
		dbpftest.Entry{Key: domain.ResourceKey{TypeID: 1, InstanceID: 1}, Body: []byte("x")})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ix := indexer.NewIndexer(dbpf.NewCodec(), telemetry.NewNoOpTracer())
	_, err := ix.Build(ctx, []domain.ArchiveRef{ref(path, "a.package", "base", 0)}, 1)
	require.ErrorIs(t, err, context.Canceled)
}
