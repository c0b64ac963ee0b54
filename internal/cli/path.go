package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// pathCommand creates the path command.
//
// Path prints the flattened source search path of the installed tree:
// depth-first, children before self, dependency directories reached only
// through recursion and VCS metadata excluded.
func (c *CLI) pathCommand() *cobra.Command {
	opts := locationOpts{}

	cmd := &cobra.Command{
		Use:   "path [dir]",
		Short: "Print the flattened source search path",
		Long: `Path walks the installed dependency tree and prints one delimited string
enumerating every source directory, suitable for injection into a compiler
or interpreter search path.

Examples:
  arbor path
  ARBOR_PATH=$(arbor path ./myproject)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.newManager(cmd.Context(), rootArg(args), opts, true)
			if err != nil {
				return err
			}

			path, err := m.GenPath(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println(path)
			return nil
		},
	}

	opts.register(cmd)
	return cmd
}
