package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// simplifyCommand creates the "simplify" command removing trivial kinks.
func (c *CLI) simplifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "simplify <code|name>",
		Short: "Remove trivial kinks from a diagram",
		Long: `Simplify repeatedly removes kinks (adjacent entries of the same crossing,
the first Reidemeister move) until none remain and prints the result.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.resolveCode(cmd, args[0])
			if err != nil {
				return err
			}

			simplified := g.SimplifyKinks()
			fmt.Println(simplified)

			if removed := g.CrossingNumber() - simplified.CrossingNumber(); removed > 0 {
				printDetail("removed %d kink(s)", removed)
			} else {
				printDetail("no kinks found")
			}
			return nil
		},
	}
}

// canonicalCommand creates the "canonical" command printing canonical forms.
func (c *CLI) canonicalCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "canonical <code|name>",
		Short: "Print the canonical form of a diagram",
		Long: `Canonical prints the lexicographically smallest normalized rotation of
the diagram. Two codes are diagram-equivalent exactly when their canonical
forms are equal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			g, err := c.resolveCode(cmd, args[0])
			if err != nil {
				return err
			}

			runner, st, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer st.Close()

			fmt.Println(runner.Canonical(ctx, g))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the canonical-form cache")
	return cmd
}
