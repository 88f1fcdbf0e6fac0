package fs_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/packsweep/internal/adapters/dbpf"
	"go.trai.ch/packsweep/internal/adapters/dbpf/dbpftest"
	"go.trai.ch/packsweep/internal/adapters/fs"
	"go.trai.ch/packsweep/internal/core/domain"
)

func TestVerifier_Verify(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "src.package")
	dstPath := filepath.Join(dir, "dst.package")

	dbpftest.Build(t, srcPath, 2,
		dbpftest.Entry{Key: domain.ResourceKey{TypeID: 1, InstanceID: 1}, Body: []byte("keep me")},
		dbpftest.Entry{Key: domain.ResourceKey{TypeID: 1, InstanceID: 2}, Body: []byte("drop me")},
		dbpftest.Entry{Key: domain.ResourceKey{TypeID: 2, InstanceID: 3}, Body: []byte("keep too")},
	)

	codec := dbpf.NewCodec()
	src, err := codec.Open(srcPath)
	require.NoError(t, err)
	defer src.Close()

	entries := src.Entries()
	keep := []domain.Entry{entries[0], entries[2]}
	require.NoError(t, codec.Write(dstPath, src, keep))

	require.NoError(t, fs.NewVerifier(codec).Verify(dstPath, src, keep))
}

func TestVerifier_Verify_EntryCountMismatch(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "src.package")
	dstPath := filepath.Join(dir, "dst.package")

	dbpftest.Build(t, srcPath, 2,
		dbpftest.Entry{Key: domain.ResourceKey{TypeID: 1, InstanceID: 1}, Body: []byte("one")},
		dbpftest.Entry{Key: domain.ResourceKey{TypeID: 1, InstanceID: 2}, Body: []byte("two")},
	)

	codec := dbpf.NewCodec()
	src, err := codec.Open(srcPath)
	require.NoError(t, err)
	defer src.Close()

	// Rewrite with one entry, then claim we kept both.
	require.NoError(t, codec.Write(dstPath, src, src.Entries()[:1]))

	err = fs.NewVerifier(codec).Verify(dstPath, src, src.Entries())
	require.ErrorIs(t, err, domain.ErrVerifyMismatch)
}

func TestVerifier_Verify_ContentMismatch(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "src.package")
	dstPath := filepath.Join(dir, "dst.package")

	key := domain.ResourceKey{TypeID: 1, InstanceID: 1}
	dbpftest.Build(t, srcPath, 2,
		dbpftest.Entry{Key: key, Body: []byte("original")})
	dbpftest.Build(t, dstPath, 2,
		dbpftest.Entry{Key: key, Body: []byte("-mutated-")})

	codec := dbpf.NewCodec()
	src, err := codec.Open(srcPath)
	require.NoError(t, err)
	defer src.Close()

	err = fs.NewVerifier(codec).Verify(dstPath, src, src.Entries())
	require.ErrorIs(t, err, domain.ErrVerifyMismatch)
}

func TestVerifier_Verify_KeyMismatch(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "src.package")
	dstPath := filepath.Join(dir, "dst.package")

	dbpftest.Build(t, srcPath, 2,
		dbpftest.Entry{Key: domain.ResourceKey{TypeID: 1, InstanceID: 1}, Body: []byte("body")})
	dbpftest.Build(t, dstPath, 2,
		dbpftest.Entry{Key: domain.ResourceKey{TypeID: 9, InstanceID: 9}, Body: []byte("body")})

	codec := dbpf.NewCodec()
	src, err := codec.Open(srcPath)
	require.NoError(t, err)
	defer src.Close()

	err = fs.NewVerifier(codec).Verify(dstPath, src, src.Entries())
	require.ErrorIs(t, err, domain.ErrVerifyMismatch)
}
