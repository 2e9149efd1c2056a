package cli

import (
	"github.com/spf13/cobra"

	"github.com/mgeier/knotwork/pkg/errors"
	"github.com/mgeier/knotwork/pkg/knot"
)

// checkCommand creates the "check" command comparing two diagrams.
func (c *CLI) checkCommand() *cobra.Command {
	var relation string

	cmd := &cobra.Command{
		Use:   "check <code|name> <code|name>",
		Short: "Check two diagrams for equivalence",
		Long: `Check compares two diagrams under one of three relations:

  equivalent   same diagram up to rotation and crossing renumbering
  isotopic     equivalent after removing trivial kinks from both sides
  mirror       equivalent to the other diagram's mirror image

Arguments are Gauss codes in bracket notation, or names of stored diagrams.
A positive answer is conclusive; a negative one only means the heuristic
found no match.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			left, err := c.resolveCode(cmd, args[0])
			if err != nil {
				return err
			}
			right, err := c.resolveCode(cmd, args[1])
			if err != nil {
				return err
			}

			var match bool
			switch relation {
			case "equivalent":
				match = knot.DiagramEquivalent(left, right)
			case "isotopic":
				match = knot.Isotopic(left, right)
			case "mirror":
				match = knot.DiagramEquivalent(left, right.Mirror())
			default:
				return errors.New(errors.ErrCodeInvalidQuery, "unknown relation %q", relation)
			}

			logger := loggerFromContext(ctx)
			logger.Debug("canonical forms",
				"left", left.Canonical(), "right", right.Canonical())

			if match {
				printSuccess("%s", relation)
			} else {
				printError("not %s (heuristic found no match)", relation)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&relation, "relation", "equivalent", "relation to check: equivalent, isotopic, or mirror")
	return cmd
}

// resolveCode interprets arg as a Gauss code if it parses, otherwise as the
// name of a stored diagram.
func (c *CLI) resolveCode(cmd *cobra.Command, arg string) (knot.GaussCode, error) {
	g, err := knot.Parse(arg)
	if err == nil || knot.IsMalformed(err) {
		return g, nil
	}

	ctx := cmd.Context()
	st, err := c.openStore(ctx)
	if err != nil {
		return knot.GaussCode{}, err
	}
	defer st.Close()

	rec, err := st.Fetch(ctx, arg)
	if err != nil {
		return knot.GaussCode{}, errors.Wrap(errors.ErrCodeKnotNotFound, err,
			"%q is neither a valid code nor a stored name", arg)
	}
	return rec.Code, nil
}
