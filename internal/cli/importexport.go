package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mgeier/knotwork/pkg/io"
	"github.com/mgeier/knotwork/pkg/pipeline"
)

// importCommand creates the "import" command for bulk-loading a collection file.
func (c *CLI) importCommand() *cobra.Command {
	var (
		strict  bool
		workers int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON collection of diagrams",
		Long: `Import reads a JSON collection file and stores every entry.

Entries whose names already exist are skipped. Codes that are syntactically
valid but not well-formed are imported flagged; --strict skips them instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			entries, err := io.ImportJSON(args[0])
			if err != nil {
				return err
			}

			c.warnEphemeralStore()
			runner, st, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer st.Close()

			prog := newProgress(logger)
			spin := startSpinner(ctx, fmt.Sprintf("importing %d entries", len(entries)))
			result, err := runner.Ingest(ctx, entries, pipeline.Options{Strict: strict, Workers: workers})
			spin.stop()
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Imported %d diagram(s)", result.Created))

			if result.Duplicate > 0 {
				printDetail("%d skipped (name taken)", result.Duplicate)
			}
			if result.Malformed > 0 {
				printWarning("%d skipped (not well-formed)", result.Malformed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "skip entries that are not well-formed")
	cmd.Flags().IntVar(&workers, "workers", pipeline.DefaultWorkers, "canonicalization worker count")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the canonical-form cache")
	return cmd
}

// exportCommand creates the "export" command writing records to a collection file.
func (c *CLI) exportCommand() *cobra.Command {
	var flags queryFlags

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export stored diagrams to a JSON collection",
		Long: `Export writes stored diagrams to a JSON collection file. The same filter
flags as "list" select which records are written; with no filters, the whole
catalog is exported. "-" writes to stdout.`,
		Args: cobra.ExactArgs(1),
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

			if args[0] == "-" {
				return io.WriteJSON(records, os.Stdout)
			}
			if err := io.ExportJSON(records, args[0]); err != nil {
				return err
			}
			printSuccess("exported %d diagram(s)", len(records))
			printFile(args[0])
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
