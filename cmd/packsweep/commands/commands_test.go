package commands_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/packsweep/cmd/packsweep/commands"
	"go.trai.ch/packsweep/internal/app"
	"go.trai.ch/packsweep/internal/core/domain"
	"go.trai.ch/packsweep/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newCLI(t *testing.T, ctrl *gomock.Controller) (*commands.CLI, *mocks.MockTableLoader, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	mockTables := mocks.NewMockTableLoader(ctrl)
	mockScanner := mocks.NewMockScanner(ctrl)
	mockCodec := mocks.NewMockArchiveCodec(ctrl)
	mockVerifier := mocks.NewMockVerifier(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	a := app.New(mockTables, mockScanner, mockCodec, mockVerifier, mockLogger)
	cli := commands.New(a)

	var buf bytes.Buffer
	cli.SetOutput(&buf)
	return cli, mockTables, &buf
}

func TestVersionCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cli, _, buf := newCLI(t, ctrl)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "packsweep version dev\n", buf.String())
}

func TestPacksCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cli, mockTables, buf := newCLI(t, ctrl)

	table := domain.NewPackTable([]domain.Pack{
		{Name: "University", Code: "EP1", Path: "University Life/EP1", ReleaseDate: time.Date(2005, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "Base", Code: "Base", Path: "Base", ReleaseDate: time.Date(2004, 9, 14, 0, 0, 0, 0, time.UTC)},
	})
	mockTables.EXPECT().Load(".", "").Return(table, nil)

	cli.SetArgs([]string{"packs"})
	require.NoError(t, cli.Execute(context.Background()))

	// Table rows come out in release order, base first.
	out := buf.String()
	assert.Contains(t, out, "RANK")
	assert.Regexp(t, `(?s)Base.*EP1`, out)
	assert.Contains(t, out, "2004-09-14")
	assert.Contains(t, out, "University Life/EP1")
}

func TestPacksCommand_LoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cli, mockTables, _ := newCLI(t, ctrl)
	mockTables.EXPECT().Load("/install", "").Return(domain.PackTable{}, domain.ErrPackTableEmpty)

	cli.SetArgs([]string{"packs", "/install"})
	err := cli.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPackTableEmpty)
}

func TestRunCommand_InvalidOutputMode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cli, _, _ := newCLI(t, ctrl)
	cli.SetArgs([]string{"run", "/install", "--output-mode", "fancy"})

	err := cli.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --output-mode")
}

func TestRunCommand_RequiresInstallDir(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cli, _, _ := newCLI(t, ctrl)
	cli.SetArgs([]string{"run"})

	require.Error(t, cli.Execute(context.Background()))
}
