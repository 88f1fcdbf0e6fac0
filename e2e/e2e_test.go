//go:build e2e

package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
	"go.trai.ch/packsweep/internal/adapters/dbpf/dbpftest"
	"go.trai.ch/packsweep/internal/core/domain"
)

var packsweepBinary string

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "packsweep-e2e-*")
	if err != nil {
		panic(err)
	}

	packsweepBinary = filepath.Join(tmpDir, "packsweep")

	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build", "-o", packsweepBinary, "./cmd/packsweep")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build packsweep binary: " + err.Error())
	}

	exitCode := m.Run()

	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"mkpkg": cmdMkpkg,
		},
	})
}

func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("CI", "true")

	binDir := filepath.Dir(packsweepBinary)
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", binDir+string(os.PathListSeparator)+currentPath)

	return nil
}

// cmdMkpkg builds a package archive in the script's work dir:
//
//	mkpkg <path> <type>:<instance>:<body>...
//
// Type and instance are hex uint32s; the body is stored verbatim.
func cmdMkpkg(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("unsupported: ! mkpkg")
	}
	if len(args) < 2 {
		ts.Fatalf("usage: mkpkg <path> <type>:<instance>:<body>...")
	}

	entries := make([]dbpftest.Entry, 0, len(args)-1)
	for _, arg := range args[1:] {
		parts := strings.SplitN(arg, ":", 3)
		if len(parts) != 3 {
			ts.Fatalf("malformed entry %q, want <type>:<instance>:<body>", arg)
		}
		typeID, err := strconv.ParseUint(parts[0], 16, 32)
		ts.Check(err)
		instanceID, err := strconv.ParseUint(parts[1], 16, 32)
		ts.Check(err)
		entries = append(entries, dbpftest.Entry{
			Key:  domain.ResourceKey{TypeID: uint32(typeID), InstanceID: uint32(instanceID)},
			Body: []byte(parts[2]),
		})
	}

	path := ts.MkAbs(args[0])
	ts.Check(os.MkdirAll(filepath.Dir(path), 0o755))
	ts.Check(os.WriteFile(path, dbpftest.Bytes(1, entries...), 0o644))
}
