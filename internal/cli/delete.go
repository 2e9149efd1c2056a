package cli

import (
	"github.com/spf13/cobra"
)

// deleteCommand creates the "delete" command removing a stored record.
func (c *CLI) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c.warnEphemeralStore()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("deleted %s", StyleHighlight.Render(args[0]))
			return nil
		},
	}
}
