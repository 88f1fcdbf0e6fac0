package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newPacksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packs [<install-dir>]",
		Short: "Print the effective pack order table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			packsFile, _ := cmd.Flags().GetString("packs")

			table, err := c.app.Packs(root, packsFile)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.out, "%-5s %-6s %-28s %-12s %s\n", "RANK", "CODE", "NAME", "RELEASED", "PATH")
			for _, p := range table.Packs() {
				fmt.Fprintf(c.out, "%-5d %-6s %-28s %-12s %s\n",
					p.Rank, p.Code, p.Name, p.ReleaseDate.Format("2006-01-02"), p.Path)
			}
			return nil
		},
	}
	cmd.Flags().String("packs", "", "Pack table file overriding the embedded default")
	return cmd
}
