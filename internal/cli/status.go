package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/arborpm/arbor/pkg/deps"
	"github.com/arborpm/arbor/pkg/gitvcs"
)

// statusOpts holds the command-line flags for the status command.
type statusOpts struct {
	loc        locationOpts
	selectMode bool // open the interactive dependency picker
	noCache    bool
}

// statusCommand creates the status command.
func (c *CLI) statusCommand() *cobra.Command {
	opts := statusOpts{}

	cmd := &cobra.Command{
		Use:   "status [dir]",
		Short: "Show per-dependency sync status",
		Long: `Status reports the sync state of every dependency of the node: whether the
working copy is up to date with its target revision, ahead or behind its
tracked branch, diverged, or missing entirely.

Examples:
  arbor status
  arbor status --select   # pick one dependency interactively`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := c.newManager(ctx, rootArg(args), opts.loc, opts.noCache)
			if err != nil {
				return err
			}

			list := m.List()
			if len(list) == 0 {
				printInfo("No dependencies declared in %s", m.ManifestPath())
				return nil
			}

			svc := gitvcs.NewService(gitvcs.Options{
				Git:    gitBinary(),
				Cache:  c.newCache(ctx, opts.noCache),
				Logger: c.logf,
			})
			results := svc.StatusAll(ctx, list, m.DepsDir())

			if opts.selectMode {
				return runDepPicker(list, results)
			}

			printStatusTable(list, results)
			return nil
		},
	}

	opts.loc.register(cmd)
	cmd.Flags().BoolVar(&opts.selectMode, "select", false, "pick a dependency interactively and show its details")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the remote-lookup cache")

	return cmd
}

// printStatusTable renders the per-dependency status as a table.
func printStatusTable(list deps.List, results []gitvcs.Result) {
	byName := make(map[string]gitvcs.Result, len(results))
	for _, res := range results {
		byName[res.Name] = res
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("NAME", "STATUS", "REVISION", "BRANCH", "PIN")

	for _, dep := range list {
		res := byName[dep.Name]
		tbl.Row(
			dep.Name,
			statusStyle(res.Status).Render(string(res.Status)),
			shortRev(res.Revision),
			orDash(dep.Branch),
			shortRev(dep.Pin),
		)
	}

	fmt.Println(tbl.Render())
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
