// Package fs provides file system adapters: the installation scanner and
// the post-rewrite verifier.
package fs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/packsweep/internal/core/domain"
	"go.trai.ch/packsweep/internal/core/ports"
	"go.trai.ch/zerr"
)

// packageExt is the archive file extension, matched case-insensitively.
const packageExt = ".package"

// Scanner implements ports.Scanner by walking each pack's directory.
type Scanner struct {
	logger ports.Logger
}

// NewScanner creates a new Scanner.
func NewScanner(logger ports.Logger) *Scanner {
	return &Scanner{logger: logger}
}

var _ ports.Scanner = (*Scanner)(nil)

// Scan walks each pack's configured directory under root and collects every
// package file, tagged with its owning pack. Packs whose directory does not
// exist are skipped with a warning; partial installations are common. An
// installation where no pack directory yields any archive fails the scan.
func (s *Scanner) Scan(root string, table domain.PackTable) ([]domain.ArchiveRef, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrInstallRootMissing, ""), "path", root)
	}

	var refs []domain.ArchiveRef
	for _, pack := range table.Packs() {
		dir := filepath.Join(root, pack.Path)
		if _, err := os.Stat(dir); err != nil {
			if os.IsNotExist(err) {
				s.logger.Warn(fmt.Sprintf("pack %s not installed, skipping %s", pack.Code, pack.Path))
				continue
			}
			return nil, zerr.With(zerr.Wrap(err, "failed to stat pack directory"), "path", dir)
		}

		packRefs, err := s.scanPack(root, dir, pack)
		if err != nil {
			return nil, err
		}
		refs = append(refs, packRefs...)
	}

	if len(refs) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoArchivesFound, ""), "root", root)
	}
	return refs, nil
}

func (s *Scanner) scanPack(root, dir string, pack domain.Pack) ([]domain.ArchiveRef, error) {
	var refs []domain.ArchiveRef

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to walk pack directory"), "path", path)
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), packageExt) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		refs = append(refs, domain.ArchiveRef{
			Path: path,
			Rel:  filepath.ToSlash(rel),
			Pack: pack,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return refs, nil
}
