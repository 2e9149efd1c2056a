package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgeier/knotwork/pkg/errors"
	"github.com/mgeier/knotwork/pkg/store"
)

// queryFlags holds the filter flags shared by "list" and "export".
type queryFlags struct {
	crossings string
	writhe    string
	name      string
	hash      string
	meta      []string
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.crossings, "crossings", "", `crossing number filter: exact ("3") or range ("3-6")`)
	cmd.Flags().StringVar(&f.writhe, "writhe", "", `writhe filter: exact or range`)
	cmd.Flags().StringVar(&f.name, "name", "", `name glob pattern, e.g. "torus-*"`)
	cmd.Flags().StringVar(&f.hash, "hash", "", "exact content hash")
	cmd.Flags().StringArrayVar(&f.meta, "meta", nil, "metadata filter as key=value (repeatable)")
}

// build translates the flags into a store query.
func (f *queryFlags) build() (store.Query, error) {
	var q store.Query

	for _, spec := range []struct {
		field store.Field
		raw   string
	}{
		{store.FieldCrossings, f.crossings},
		{store.FieldWrithe, f.writhe},
	} {
		if spec.raw == "" {
			continue
		}
		p, err := parseIntFilter(spec.field, spec.raw)
		if err != nil {
			return nil, err
		}
		q = append(q, p)
	}

	if f.name != "" {
		q = append(q, store.NamePattern{Pattern: f.name})
	}
	if f.hash != "" {
		q = append(q, store.HashEquals{Hash: f.hash})
	}

	metadata, err := parseMetaFlags(f.meta)
	if err != nil {
		return nil, err
	}
	for k, v := range metadata {
		q = append(q, store.MetadataEquals{Key: k, Value: v})
	}
	return q, nil
}

// parseIntFilter parses "3" as equality, "2,4,6" as set membership, and
// "2-6" as an inclusive range. A plain negative value parses as equality.
func parseIntFilter(field store.Field, raw string) (store.Predicate, error) {
	if v, err := strconv.Atoi(raw); err == nil {
		return store.FieldEquals{Field: field, Value: v}, nil
	}

	if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		values := make([]int, 0, len(parts))
		for _, part := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, errors.New(errors.ErrCodeInvalidQuery, "bad %s filter %q", field, raw)
			}
			values = append(values, v)
		}
		return store.FieldIn{Field: field, Values: values}, nil
	}

	if lo, hi, ok := strings.Cut(raw, "-"); ok && lo != "" {
		min, err1 := strconv.Atoi(lo)
		max, err2 := strconv.Atoi(hi)
		if err1 == nil && err2 == nil {
			return store.FieldRange{Field: field, Min: min, Max: max}, nil
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidQuery, "bad %s filter %q", field, raw)
}

// listCommand creates the "list" command for querying stored records.
func (c *CLI) listCommand() *cobra.Command {
	var flags queryFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored diagrams, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			q, err := flags.build()
			if err != nil {
				return err
			}

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			records, err := st.Query(ctx, q)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				printInfo("no matching diagrams")
				return nil
			}

			for _, rec := range records {
				flag := ""
				if !rec.Code.WellFormed() {
					flag = " " + StyleWarning.Render("[malformed]")
				}
				fmt.Printf("%s  %s%s\n",
					StyleHighlight.Render(fmt.Sprintf("%-20s", rec.Name)),
					StyleDim.Render(fmt.Sprintf("n=%d w=%+d", rec.Crossings, rec.Writhe)),
					flag)
				printDetail("%s", rec.Code)
			}
			printDetail("%d diagram(s)", len(records))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
