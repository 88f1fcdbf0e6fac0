package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.trai.ch/packsweep/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <install-dir>",
		Short: "Resolve cross-pack duplicates and rewrite the affected archives",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := runOptionsFromFlags(cmd, args[0])
			if err != nil {
				return err
			}
			return c.sweep(cmd.Context(), opts)
		},
	}
	addSweepFlags(cmd)
	cmd.Flags().Bool("dry-run", false, "Resolve and report without writing anything")
	return cmd
}

func (c *CLI) newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <install-dir>",
		Short: "Report cross-pack duplicates without modifying any archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := runOptionsFromFlags(cmd, args[0])
			if err != nil {
				return err
			}
			opts.DryRun = true
			return c.sweep(cmd.Context(), opts)
		},
	}
	addSweepFlags(cmd)
	return cmd
}

// sweep runs the app and renders the report. The report is rendered even
// when the run ends with rewrite failures, so the summary always shows
// what happened.
func (c *CLI) sweep(ctx context.Context, opts app.RunOptions) error {
	report, err := c.app.Run(ctx, opts)
	if report != nil {
		c.renderReport(report)
	}
	return err
}

func addSweepFlags(cmd *cobra.Command) {
	cmd.Flags().String("packs", "", "Pack table file overriding the embedded default")
	cmd.Flags().IntP("jobs", "j", 0, "Number of parallel workers (default: one per CPU)")
	cmd.Flags().Bool("no-verify", false, "Skip post-rewrite verification")
	cmd.Flags().String("output-mode", "auto", "Progress rendering: auto, tape or linear")
	cmd.Flags().Bool("ci", false, "Force linear output (alias for --output-mode linear)")
}

func runOptionsFromFlags(cmd *cobra.Command, root string) (app.RunOptions, error) {
	packs, _ := cmd.Flags().GetString("packs")
	jobs, _ := cmd.Flags().GetInt("jobs")
	noVerify, _ := cmd.Flags().GetBool("no-verify")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	mode, _ := cmd.Flags().GetString("output-mode")
	ci, _ := cmd.Flags().GetBool("ci")

	if ci {
		mode = "linear"
	}
	switch mode {
	case "auto", "tape", "linear", "ci":
	default:
		return app.RunOptions{}, errors.New("invalid --output-mode: must be auto, tape or linear")
	}

	return app.RunOptions{
		Root:       root,
		PacksFile:  packs,
		DryRun:     dryRun,
		Jobs:       jobs,
		NoVerify:   noVerify,
		OutputMode: mode,
	}, nil
}
