package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/packsweep/internal/adapters/config"
	"go.trai.ch/packsweep/internal/core/domain"
	"go.trai.ch/packsweep/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return config.NewLoader(log)
}

func TestLoader_EmbeddedDefault(t *testing.T) {
	loader := newLoader(t)

	table, err := loader.Load(t.TempDir(), "")
	require.NoError(t, err)

	require.Equal(t, 17, table.Len(), "full retail lineup")

	packs := table.Packs()
	assert.Equal(t, "Base", packs[0].Code, "base game releases first")
	assert.Equal(t, "SP9", packs[table.Len()-1].Code, "Mansions & Garden releases last")

	// Ranks are dense and strictly increasing with release date.
	for i, p := range packs {
		assert.Equal(t, i, p.Rank)
		if i > 0 {
			assert.True(t, packs[i-1].ReleaseDate.Before(p.ReleaseDate))
		}
	}

	// Stuff packs interleave with expansions by date, not by code.
	ep4, ok := table.Lookup("EP4")
	require.True(t, ok)
	sp1, ok := table.Lookup("SP1")
	require.True(t, ok)
	assert.Less(t, sp1.Rank, ep4.Rank, "Family Fun Stuff shipped before Pets")
}

func TestLoader_RootTableReplacesDefault(t *testing.T) {
	root := t.TempDir()
	table := `
version: "1"
packs:
  - { name: Base, code: Base, released: 2004-09-14, path: Base }
  - { name: University, code: EP1, released: 2005-03-01, path: EP1 }
`
	require.NoError(t, os.WriteFile(filepath.Join(root, config.TableFileName), []byte(table), 0o644))

	loader := newLoader(t)
	got, err := loader.Load(root, "")
	require.NoError(t, err)

	assert.Equal(t, 2, got.Len(), "root table replaces the default, never merges")
}

func TestLoader_OverridePath(t *testing.T) {
	dir := t.TempDir()
	override := filepath.Join(dir, "custom.yaml")
	table := `
packs:
  - { name: Only, code: X1, released: 2006-01-01, path: X1 }
`
	require.NoError(t, os.WriteFile(override, []byte(table), 0o644))

	loader := newLoader(t)
	got, err := loader.Load(t.TempDir(), override)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Len())
}

func TestLoader_OverrideMissing(t *testing.T) {
	loader := newLoader(t)
	_, err := loader.Load(t.TempDir(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPackTableRead)
}

func TestLoader_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			name:    "empty table",
			yaml:    `packs: []`,
			wantErr: domain.ErrPackTableEmpty,
		},
		{
			name: "missing code",
			yaml: `
packs:
  - { name: Base, released: 2004-09-14, path: Base }
`,
			wantErr: domain.ErrPackMissingField,
		},
		{
			name: "duplicate code",
			yaml: `
packs:
  - { name: A, code: EP1, released: 2005-03-01, path: A }
  - { name: B, code: EP1, released: 2005-09-13, path: B }
`,
			wantErr: domain.ErrDuplicatePackCode,
		},
		{
			name: "duplicate path",
			yaml: `
packs:
  - { name: A, code: EP1, released: 2005-03-01, path: Shared }
  - { name: B, code: EP2, released: 2005-09-13, path: Shared }
`,
			wantErr: domain.ErrDuplicatePackPath,
		},
		{
			name: "duplicate release date",
			yaml: `
packs:
  - { name: A, code: EP1, released: 2005-03-01, path: A }
  - { name: B, code: EP2, released: 2005-03-01, path: B }
`,
			wantErr: domain.ErrDuplicateReleaseDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			require.NoError(t, os.WriteFile(
				filepath.Join(root, config.TableFileName), []byte(tt.yaml), 0o644))

			loader := newLoader(t)
			_, err := loader.Load(root, "")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoader_UnparseableDate(t *testing.T) {
	root := t.TempDir()
	table := `
packs:
  - { name: A, code: EP1, released: sometime, path: A }
`
	require.NoError(t, os.WriteFile(
		filepath.Join(root, config.TableFileName), []byte(table), 0o644))

	loader := newLoader(t)
	_, err := loader.Load(root, "")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrPackTableParse.Error())
}
