package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/bmtree/internal/exporter"
)

func newExportCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export <in.html> [out.html]",
		Short: "Normalize a bookmark file through the tree and write it back",
		Long: `Import a Netscape bookmark file and export it again.

The output defaults to ~/Downloads/bookmarks-export-YYYY-MM-DD.html.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cleanup, err := setup(flags)
			defer cleanup()
			if err != nil {
				return err
			}

			tree, res, err := loadTree(cfg, args[0])
			if err != nil {
				return err
			}

			out := ""
			if len(args) == 2 {
				out = args[1]
			} else {
				out, err = exporter.DefaultExportPath()
				if err != nil {
					return fmt.Errorf("resolving export path: %w", err)
				}
			}

			if err := exporter.WriteFile(tree, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d nodes (%d folders, %d bookmarks) to %s\n",
				res.Total(), res.Folders, res.Bookmarks, out)
			return nil
		},
	}
}
