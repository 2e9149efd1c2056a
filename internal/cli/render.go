package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgeier/knotwork/pkg/errors"
	"github.com/mgeier/knotwork/pkg/render"
)

// renderCommand creates the "render" command drawing chord diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "render <code|name>",
		Short: "Render a diagram as a chord diagram",
		Long: `Render draws the Gauss code as a chord diagram: positions on a circle in
trace order, with the two legs of each crossing joined by a chord.

Formats: svg (default), png, dot. With --output the format is inferred from
the file extension; dot writes to stdout unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.resolveCode(cmd, args[0])
			if err != nil {
				return err
			}

			if format == "" {
				format = formatFromPath(output)
			}

			title := ""
			if !strings.HasPrefix(strings.TrimSpace(args[0]), "[") {
				title = args[0] // a stored name, not a literal code
			}
			dot := render.ToDOT(g, render.Options{Title: title})

			if format == "dot" {
				if output == "" {
					fmt.Print(dot)
					return nil
				}
				if err := os.WriteFile(output, []byte(dot), 0o644); err != nil {
					return err
				}
				printFile(output)
				return nil
			}

			var data []byte
			switch format {
			case "svg":
				data, err = render.RenderSVG(dot)
			case "png":
				data, err = render.RenderPNG(dot)
			default:
				return errors.New(errors.ErrCodeUnsupported, "unknown format %q", format)
			}
			if err != nil {
				return err
			}

			if output == "" {
				output = "knot." + format
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			printSuccess("rendered %d crossing(s)", g.CrossingNumber())
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default knot.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: svg, png, or dot")
	return cmd
}

// formatFromPath infers the render format from a file extension, defaulting
// to svg.
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".dot", ".gv":
		return "dot"
	default:
		return "svg"
	}
}
