package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arborpm/arbor/pkg/errors"
	"github.com/arborpm/arbor/pkg/render"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	loc      locationOpts
	format   string // dot or svg
	output   string // output file, stdout when empty
	detailed bool   // include branch/pin/version in node labels
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{}

	cmd := &cobra.Command{
		Use:   "graph [dir]",
		Short: "Render the dependency tree as DOT or SVG",
		Long: `Graph walks the installed dependency tree by reading each node's
manifest and renders it as a Graphviz DOT digraph or an SVG image.

Examples:
  arbor graph                        # print DOT to stdout
  arbor graph -f svg -o deps.svg     # write an SVG image
  arbor graph --detailed             # include branch, pin, and version`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			root := rootArg(args)

			if opts.format != "dot" && opts.format != "svg" {
				return errors.New(errors.ErrCodeInvalidInput, "unsupported format %q (want dot or svg)", opts.format)
			}

			m, err := c.newManager(ctx, root, opts.loc, true)
			if err != nil {
				return err
			}

			tree, err := m.Tree(ctx)
			if err != nil {
				return err
			}

			dot := render.ToDOT(tree, render.Options{Detailed: opts.detailed})

			var data []byte
			switch opts.format {
			case "dot":
				data = []byte(dot)
			case "svg":
				data, err = render.RenderSVG(dot)
				if err != nil {
					return fmt.Errorf("render svg: %w", err)
				}
			}

			if opts.output == "" {
				fmt.Print(string(data))
				return nil
			}

			if err := os.WriteFile(opts.output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", opts.output, err)
			}
			printSuccess("Rendered dependency graph")
			printFile(opts.output)
			return nil
		},
	}

	opts.loc.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "dot", "output format: dot (default), svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include branch, pin, and version in node labels")

	return cmd
}
