package fs

import (
	"github.com/cespare/xxhash/v2"
	"go.trai.ch/packsweep/internal/core/domain"
	"go.trai.ch/packsweep/internal/core/ports"
	"go.trai.ch/zerr"
)

// Verifier checks a rewritten archive against its source before the
// original is replaced. Comparison is by entry count, key order and a
// per-entry content hash of the stored bytes.
type Verifier struct {
	codec ports.ArchiveCodec
}

// NewVerifier creates a new Verifier using the given codec.
func NewVerifier(codec ports.ArchiveCodec) *Verifier {
	return &Verifier{codec: codec}
}

var _ ports.Verifier = (*Verifier)(nil)

// Verify opens the rewritten archive at path and checks that it holds
// exactly the retained entries of src with bit-identical stored bytes.
func (v *Verifier) Verify(path string, src ports.Archive, keep []domain.Entry) error {
	rewritten, err := v.codec.Open(path)
	if err != nil {
		return zerr.Wrap(domain.ErrVerifyMismatch, err.Error())
	}
	defer rewritten.Close() //nolint:errcheck // Read-only handle

	got := rewritten.Entries()
	if len(got) != len(keep) {
		return zerr.With(zerr.With(
			zerr.Wrap(domain.ErrVerifyMismatch, "entry count differs"),
			"want_entries", len(keep)), "got_entries", len(got))
	}

	for i, want := range keep {
		if got[i].Key != want.Key {
			return zerr.With(zerr.With(zerr.With(
				zerr.Wrap(domain.ErrVerifyMismatch, "entry order differs"),
				"slot", i), "want_key", want.Key.String()), "got_key", got[i].Key.String())
		}

		srcRaw, err := src.ReadRaw(want)
		if err != nil {
			return zerr.Wrap(domain.ErrVerifyMismatch, err.Error())
		}
		dstRaw, err := rewritten.ReadRaw(got[i])
		if err != nil {
			return zerr.Wrap(domain.ErrVerifyMismatch, err.Error())
		}

		if xxhash.Sum64(srcRaw) != xxhash.Sum64(dstRaw) {
			return zerr.With(
				zerr.Wrap(domain.ErrVerifyMismatch, "stored bytes differ"),
				"key", want.Key.String())
		}
	}

	return nil
}
