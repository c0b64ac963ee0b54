package cli

import (
	"github.com/spf13/cobra"

	"github.com/arborpm/arbor/pkg/errors"
	"github.com/arborpm/arbor/pkg/manifest"
)

// removeCommand creates the remove command, which drops a dependency from
// the node's manifest. The working copy is left on disk.
func (c *CLI) removeCommand() *cobra.Command {
	opts := locationOpts{}
	dir := "."

	cmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a dependency from the manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			path := manifestPathFor(dir, opts)
			store := manifest.NewStore()

			list, err := store.Load(path)
			if err != nil {
				return err
			}

			idx := list.Find(name)
			if idx < 0 {
				return errors.New(errors.ErrCodeDependencyNotFound, "no dependency named %q in %s", name, path)
			}

			updated := append(list[:idx:idx], list[idx+1:]...)
			if err := store.Save(path, updated); err != nil {
				return err
			}

			printSuccess("Removed %s", name)
			printDetail("working copy left on disk; delete it manually if unwanted")
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&dir, "dir", dir, "node root directory")

	return cmd
}
