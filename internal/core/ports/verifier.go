package ports

import "go.trai.ch/packsweep/internal/core/domain"

// Verifier checks a rewritten archive against its source before the
// original is replaced.
//
//go:generate mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type Verifier interface {
	// Verify opens the rewritten archive at path and checks that it holds
	// exactly the retained entries of src, with bit-identical stored bytes.
	Verify(path string, src Archive, keep []domain.Entry) error
}
