package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// installOpts holds the command-line flags for the install command.
type installOpts struct {
	loc     locationOpts
	noCache bool // bypass the remote-lookup cache
}

// installCommand creates the install command.
//
// Install resolves the node's dependency list (manifest merged underneath
// any state recorded by previous runs), syncs every working copy, persists
// the resolved revisions, and recurses into each dependency's own manifest.
func (c *CLI) installCommand() *cobra.Command {
	opts := installOpts{}

	cmd := &cobra.Command{
		Use:   "install [dir]",
		Short: "Install the dependency tree rooted at dir",
		Long: `Install clones or updates every declared dependency into the dependency
directory, records the resolved revisions in the manifest, and recursively
installs each dependency's own dependencies.

Examples:
  arbor install              # install the tree rooted at the current directory
  arbor install ./myproject  # install a specific project
  arbor install --no-cache   # bypass the remote-lookup cache`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			root := rootArg(args)

			// A short run ID ties together the log lines of one invocation.
			runLogger := c.Logger.With("run", uuid.NewString()[:8])
			runLogger.Debugf("installing tree rooted at %s", root)

			m, err := c.newManager(ctx, root, opts.loc, opts.noCache)
			if err != nil {
				return err
			}

			list := m.List()
			if len(list) == 0 {
				printInfo("No dependencies declared in %s", m.ManifestPath())
				return nil
			}

			p := newProgress(runLogger)
			sp := newSpinner(ctx, fmt.Sprintf("Installing %d dependencies...", len(list)))
			sp.Start()

			err = m.Install(ctx)
			if err != nil {
				sp.StopWithError("Install failed")
				return err
			}

			sp.Stop()
			p.done(fmt.Sprintf("Installed %d dependencies", len(list)))
			printSuccess("Dependency tree installed under %s", m.DepsDir())
			printNextStep("Generate the search path", "arbor path "+root)
			return nil
		},
	}

	opts.loc.register(cmd)
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the remote-lookup cache")

	return cmd
}
