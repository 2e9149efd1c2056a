package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

// showCommand creates the "show" command printing a stored record.
func (c *CLI) showCommand() *cobra.Command {
	var withCanonical bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a stored diagram and its invariants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			runner, st, err := c.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer st.Close()

			rec, err := st.Fetch(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(rec.Name))
			printKeyValue("code", rec.Code.String())
			printKeyValue("crossings", strconv.Itoa(rec.Crossings))
			printKeyValue("writhe", strconv.Itoa(rec.Writhe))
			printKeyValue("hash", rec.Hash)
			if !rec.Code.WellFormed() {
				printKeyValue("well-formed", StyleWarning.Render("no"))
			}
			if withCanonical {
				printKeyValue("canonical", runner.Canonical(ctx, rec.Code).String())
			}
			if len(rec.Extended) > 0 {
				keys := make([]string, 0, len(rec.Extended))
				for k := range rec.Extended {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					printKeyValue(k, fmt.Sprint(rec.Extended[k]))
				}
			}
			if len(rec.Metadata) > 0 {
				keys := make([]string, 0, len(rec.Metadata))
				for k := range rec.Metadata {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				fmt.Println()
				for _, k := range keys {
					printKeyValue(k, rec.Metadata[k])
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withCanonical, "canonical", false, "also compute and show the canonical form")
	return cmd
}
