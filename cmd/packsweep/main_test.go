package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/packsweep/internal/adapters/dbpf/dbpftest"
	"go.trai.ch/packsweep/internal/app"
	"go.trai.ch/packsweep/internal/core/domain"
)

const testTable = `version: "1"
packs:
  - { name: Base, code: base, released: 2004-09-14, path: base }
  - { name: University, code: ep1, released: 2005-03-01, path: ep1 }
`

// setupInstall builds a minimal installation with one duplicate shared
// between the base and ep1 packs.
func setupInstall(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(root, "packsweep.yaml"), []byte(testTable), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(root, "base"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "ep1"), 0o755))

	shared := domain.ResourceKey{TypeID: 0x42, InstanceID: 0x7}
	dbpftest.Build(t, filepath.Join(root, "base", "objects.package"), 1,
		dbpftest.Entry{Key: shared, Body: []byte("old mesh")},
		dbpftest.Entry{Key: domain.ResourceKey{TypeID: 0x42, InstanceID: 0x8}, Body: []byte("base only")},
	)
	dbpftest.Build(t, filepath.Join(root, "ep1", "objects.package"), 1,
		dbpftest.Entry{Key: shared, Body: []byte("new mesh")},
	)

	return root
}

func testAppOption() func(*app.App) {
	return func(a *app.App) {
		a.WithTeaOptions(
			tea.WithInput(nil),
			tea.WithOutput(io.Discard),
			tea.WithoutSignalHandler(),
			tea.WithoutRenderer(),
		)
	}
}

func TestRun(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	root := setupInstall(t)

	os.Args = []string{"packsweep", "run", root, "--output-mode", "tape"}
	exitCode := run(testAppOption())
	assert.Equal(t, 0, exitCode)

	// Second run finds nothing left to remove.
	os.Args = []string{"packsweep", "scan", root, "--output-mode", "tape"}
	exitCode = run(testAppOption())
	assert.Equal(t, 0, exitCode)
}

func TestRun_MissingRoot(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	os.Args = []string{"packsweep", "run", filepath.Join(t.TempDir(), "nope")}
	exitCode := run(testAppOption())
	assert.Equal(t, 1, exitCode)
}

func TestRun_InvalidOutputMode(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	os.Args = []string{"packsweep", "run", t.TempDir(), "--output-mode", "fancy"}
	exitCode := run(testAppOption())
	assert.Equal(t, 1, exitCode)
}
