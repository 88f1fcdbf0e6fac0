package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/packsweep/internal/core/domain"
	"go.trai.ch/packsweep/internal/engine/resolver"
)

func occ(key domain.ResourceKey, path, rel, code string, rank, slot int) domain.Occurrence {
	return domain.Occurrence{
		Key: key,
		Archive: domain.ArchiveRef{
			Path: path,
			Rel:  rel,
			Pack: domain.Pack{Name: code, Code: code, Rank: rank},
		},
		Entry: domain.Entry{Key: key, Slot: slot},
	}
}

func buildIndex(occs ...domain.Occurrence) *domain.Index {
	ix := domain.NewIndex()
	for _, o := range occs {
		ix.Add(o)
	}
	ix.Canonicalize()
	return ix
}

func TestResolve_KeepsLatestPack(t *testing.T) {
	key := domain.ResourceKey{TypeID: 1, InstanceID: 1}
	ix := buildIndex(
		occ(key, "/inst/base/a.package", "base/a.package", "base", 0, 3),
		occ(key, "/inst/ep1/b.package", "ep1/b.package", "ep1", 1, 0),
		occ(key, "/inst/ep4/c.package", "ep4/c.package", "ep4", 4, 7),
	)

	res := resolver.Resolve(ix)
	require.NotNil(t, res.Plan)
	assert.Equal(t, 1, res.DuplicateGroups)
	assert.Empty(t, res.Plan.Ambiguous)

	// The ep4 copy wins; the base and ep1 copies go.
	assert.Equal(t, 2, res.Plan.DeletionCount())
	assert.Len(t, res.Plan.Deletions["/inst/base/a.package"], 1)
	assert.Len(t, res.Plan.Deletions["/inst/ep1/b.package"], 1)
	assert.NotContains(t, res.Plan.Deletions, "/inst/ep4/c.package")
}

func TestResolve_TiedMaxRankIsAmbiguous(t *testing.T) {
	key := domain.ResourceKey{TypeID: 1, InstanceID: 2}
	ix := buildIndex(
		occ(key, "/inst/base/a.package", "base/a.package", "base", 0, 0),
		occ(key, "/inst/ep2/b.package", "ep2/b.package", "ep2", 2, 0),
		occ(key, "/inst/ep2/c.package", "ep2/c.package", "ep2", 2, 0),
	)

	res := resolver.Resolve(ix)
	assert.Equal(t, 1, res.DuplicateGroups)
	assert.True(t, res.Plan.Empty(), "nothing in a tied group may be deleted")

	require.Len(t, res.Plan.Ambiguous, 1)
	group := res.Plan.Ambiguous[0]
	assert.Equal(t, key, group.Key)
	assert.Equal(t, 2, group.Rank)
	assert.Equal(t, []string{"base/a.package", "ep2/b.package", "ep2/c.package"}, group.Archives)
}

func TestResolve_SingleArchiveGroupIgnored(t *testing.T) {
	key := domain.ResourceKey{TypeID: 1, InstanceID: 3}
	ix := buildIndex(
		occ(key, "/inst/base/a.package", "base/a.package", "base", 0, 0),
		occ(key, "/inst/base/a.package", "base/a.package", "base", 0, 5),
	)

	res := resolver.Resolve(ix)
	assert.Equal(t, 0, res.DuplicateGroups)
	assert.True(t, res.Plan.Empty())
	assert.Empty(t, res.Plan.Ambiguous)
}

func TestResolve_SingletonIgnored(t *testing.T) {
	key := domain.ResourceKey{TypeID: 1, InstanceID: 4}
	ix := buildIndex(
		occ(key, "/inst/base/a.package", "base/a.package", "base", 0, 0),
	)

	res := resolver.Resolve(ix)
	assert.Equal(t, 0, res.DuplicateGroups)
	assert.True(t, res.Plan.Empty())
}

func TestResolve_MixedGroups(t *testing.T) {
	cleanKey := domain.ResourceKey{TypeID: 2, InstanceID: 1}
	tiedKey := domain.ResourceKey{TypeID: 2, InstanceID: 2}
	ix := buildIndex(
		occ(cleanKey, "/inst/base/a.package", "base/a.package", "base", 0, 0),
		occ(cleanKey, "/inst/ep1/b.package", "ep1/b.package", "ep1", 1, 0),
		occ(tiedKey, "/inst/ep1/b.package", "ep1/b.package", "ep1", 1, 1),
		occ(tiedKey, "/inst/ep1/c.package", "ep1/c.package", "ep1", 1, 0),
	)

	res := resolver.Resolve(ix)
	assert.Equal(t, 2, res.DuplicateGroups)
	assert.Equal(t, 1, res.Plan.DeletionCount())
	assert.Len(t, res.Plan.Ambiguous, 1)
	assert.Equal(t, tiedKey, res.Plan.Ambiguous[0].Key)
}
