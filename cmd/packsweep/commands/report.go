package commands

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
	"go.trai.ch/packsweep/internal/core/domain"
	"go.trai.ch/packsweep/internal/ui/output"
	"go.trai.ch/packsweep/internal/ui/style"
)

// renderReport writes the human-readable run summary to the CLI output.
func (c *CLI) renderReport(report *domain.RunReport) {
	out := output.New(c.out)

	fmt.Fprintf(c.out, "Scanned %d archives, %s entries, %d duplicate groups\n",
		report.ArchivesScanned,
		humanize.Comma(int64(report.EntriesIndexed)),
		report.DuplicateGroups,
	)

	if len(report.Outcomes) > 0 {
		fmt.Fprintln(c.out)
		for _, o := range report.Outcomes {
			fmt.Fprintln(c.out, outcomeLine(out, o))
		}
	}

	if len(report.Ambiguous) > 0 {
		fmt.Fprintln(c.out)
		fmt.Fprintf(c.out, "Skipped %d ambiguous group(s), use a pack table to break the tie:\n", len(report.Ambiguous))
		for _, g := range report.Ambiguous {
			warn := out.String(style.Warning).Foreground(termenv.ANSIYellow).String()
			fmt.Fprintf(c.out, "  %s %s rank %d in %s\n", warn, g.Key, g.Rank, strings.Join(g.Archives, ", "))
		}
	}

	failed := 0
	for _, o := range report.Outcomes {
		if o.Status == domain.StatusFailed {
			failed++
		}
	}

	fmt.Fprintln(c.out)
	switch {
	case report.DryRun:
		fmt.Fprintf(c.out, "Would remove %d resource(s) and reclaim about %s\n",
			report.ResourcesRemoved, humanize.Bytes(uint64(report.BytesReclaimed)))
	case failed > 0:
		fmt.Fprintf(c.out, "Removed %d resource(s), reclaimed %s; %d archive rewrite(s) failed\n",
			report.ResourcesRemoved, humanize.Bytes(uint64(report.BytesReclaimed)), failed)
	case report.ResourcesRemoved == 0:
		fmt.Fprintln(c.out, "Nothing to do, installation is already clean")
	default:
		fmt.Fprintf(c.out, "Removed %d resource(s), reclaimed %s\n",
			report.ResourcesRemoved, humanize.Bytes(uint64(report.BytesReclaimed)))
	}
}

// outcomeLine formats one archive's rewrite result.
func outcomeLine(out *termenv.Output, o domain.ArchiveOutcome) string {
	name := o.Rel
	if name == "" {
		name = o.Path
	}

	switch o.Status {
	case domain.StatusFailed:
		symbol := out.String(style.Cross).Foreground(termenv.ANSIRed).String()
		return fmt.Sprintf("  %s %s  %v", symbol, name, o.Err)
	case domain.StatusPlanned:
		symbol := out.String(style.Tilde).Foreground(termenv.ANSIYellow).String()
		return fmt.Sprintf("  %s %s  %s → %s (%d entries, dry run)",
			symbol, name,
			humanize.Bytes(uint64(o.SizeBefore)), humanize.Bytes(uint64(o.SizeAfter)),
			o.EntriesRemoved)
	default:
		symbol := out.String(style.Check).Foreground(termenv.ANSIGreen).String()
		return fmt.Sprintf("  %s %s  %s → %s (%d entries removed)",
			symbol, name,
			humanize.Bytes(uint64(o.SizeBefore)), humanize.Bytes(uint64(o.SizeAfter)),
			o.EntriesRemoved)
	}
}
