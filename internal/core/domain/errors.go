package domain

import "go.trai.ch/zerr"

var (
	// ErrArchiveOpen is returned when a package file is missing, unreadable
	// or not a valid container. During indexing this aborts the whole run.
	ErrArchiveOpen = zerr.New("failed to open archive")

	// ErrArchiveParse is returned when an archive's header or index cannot be parsed.
	ErrArchiveParse = zerr.New("failed to parse archive index")

	// ErrArchiveRead is returned when reading an entry's stored bytes fails.
	ErrArchiveRead = zerr.New("failed to read archive entry")

	// ErrArchiveWrite is returned when writing a rewritten archive fails.
	ErrArchiveWrite = zerr.New("failed to write archive")

	// ErrStaleIndex is returned when an entry recorded during indexing is no
	// longer at its recorded location at rewrite time, implying the archive
	// was modified between passes.
	ErrStaleIndex = zerr.New("archive index changed since scan")

	// ErrVerifyMismatch is returned when the rewritten archive does not match
	// the retained source entries during post-write verification.
	ErrVerifyMismatch = zerr.New("rewritten archive failed verification")

	// ErrPackTableRead is returned when the pack table file cannot be read.
	ErrPackTableRead = zerr.New("failed to read pack table")

	// ErrPackTableParse is returned when the pack table cannot be parsed.
	ErrPackTableParse = zerr.New("failed to parse pack table")

	// ErrPackTableEmpty is returned when the pack table contains no packs.
	ErrPackTableEmpty = zerr.New("pack table contains no packs")

	// ErrPackMissingField is returned when a pack entry lacks a name, code or path.
	ErrPackMissingField = zerr.New("pack entry is missing a required field")

	// ErrDuplicatePackCode is returned when two packs share a short code.
	ErrDuplicatePackCode = zerr.New("duplicate pack code")

	// ErrDuplicatePackPath is returned when two packs share a directory.
	ErrDuplicatePackPath = zerr.New("duplicate pack path")

	// ErrDuplicateReleaseDate is returned when two packs share a release
	// date. Release ranks must form a total order with no ties.
	ErrDuplicateReleaseDate = zerr.New("duplicate release date")

	// ErrInstallRootMissing is returned when the installation root directory
	// does not exist.
	ErrInstallRootMissing = zerr.New("installation directory not found")

	// ErrNoArchivesFound is returned when no pack directory yields any package file.
	ErrNoArchivesFound = zerr.New("no package files found under any pack directory")

	// ErrRewriteFailed is the run-level error raised when at least one
	// archive rewrite failed. Per-archive causes live in the run report.
	ErrRewriteFailed = zerr.New("one or more archive rewrites failed")
)
