package ports

import "go.trai.ch/packsweep/internal/core/domain"

// TableLoader supplies the pack order table for a run. Release order is
// externally curated, never inferred from file metadata.
//
//go:generate mockgen -source=table_loader.go -destination=mocks/mock_table_loader.go -package=mocks
type TableLoader interface {
	// Load returns the pack table for the installation at root. An override
	// path, if non-empty, replaces both the embedded default table and any
	// table file found in the root.
	Load(root, override string) (domain.PackTable, error)
}
