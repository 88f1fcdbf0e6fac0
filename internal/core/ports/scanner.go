package ports

import "go.trai.ch/packsweep/internal/core/domain"

// Scanner discovers the package files of an installation.
//
//go:generate mockgen -source=scanner.go -destination=mocks/mock_scanner.go -package=mocks
type Scanner interface {
	// Scan walks each pack's directory under root and returns every package
	// file found, tagged with its owning pack. Packs whose directory does
	// not exist are skipped; an installation where no pack directory yields
	// any archive is an error.
	Scan(root string, table domain.PackTable) ([]domain.ArchiveRef, error)
}
