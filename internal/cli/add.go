package cli

import (
	"github.com/spf13/cobra"

	"github.com/mgeier/knotwork/pkg/knot"
)

// addCommand creates the "add" command for storing a single diagram.
func (c *CLI) addCommand() *cobra.Command {
	var metaFlags []string

	cmd := &cobra.Command{
		Use:   "add <name> <code>",
		Short: "Store a named knot diagram",
		Long: `Add stores a knot diagram under a unique name, computing its invariants.

The code is a Gauss code in bracket notation, e.g. "[1,-2,3,-1,2,-3]".
A code that violates the two-legs-per-crossing rule is stored anyway and
flagged; use "knotwork show" to inspect it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name, raw := args[0], args[1]

			metadata, err := parseMetaFlags(metaFlags)
			if err != nil {
				return err
			}

			g, err := knot.Parse(raw)
			if err != nil && !knot.IsMalformed(err) {
				return err
			}
			if !g.WellFormed() {
				printWarning("code is not well-formed, storing flagged")
			}

			c.warnEphemeralStore()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			rec, err := st.Create(ctx, name, g, metadata)
			if err != nil {
				return err
			}

			printSuccess("added %s", StyleHighlight.Render(rec.Name))
			printDetail("crossings %d, writhe %d", rec.Crossings, rec.Writhe)
			printDetail("hash %s", rec.Hash)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&metaFlags, "meta", nil, "metadata entry as key=value (repeatable)")
	return cmd
}
