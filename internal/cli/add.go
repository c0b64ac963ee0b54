package cli

import (
	"github.com/spf13/cobra"

	"github.com/arborpm/arbor/pkg/deps"
	"github.com/arborpm/arbor/pkg/errors"
	"github.com/arborpm/arbor/pkg/manifest"
)

// addOpts holds the command-line flags for the add command.
type addOpts struct {
	loc     locationOpts
	dir     string
	branch  string
	folder  string
	pin     string
	version string
}

// addCommand creates the add command, which appends a dependency to the
// node's manifest.
func (c *CLI) addCommand() *cobra.Command {
	opts := addOpts{dir: ".", branch: "main"}

	cmd := &cobra.Command{
		Use:   "add <name> <url>",
		Short: "Add a dependency to the manifest",
		Long: `Add records a new dependency in the node's manifest. The working copy is
not created until the next install.

Examples:
  arbor add json-parser https://github.com/org/json-parser.git
  arbor add boost https://github.com/org/boost.git --branch release --folder boost
  arbor add lexer https://github.com/org/lexer.git --version "^2.1"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, url := args[0], args[1]

			if err := errors.ValidateDependencyName(name); err != nil {
				return err
			}
			if err := errors.ValidateRepoURL(url); err != nil {
				return err
			}

			folder := opts.folder
			if folder == "" {
				folder = name
			}
			if err := errors.ValidateFolderName(folder); err != nil {
				return err
			}

			path := manifestPathFor(opts.dir, opts.loc)
			store := manifest.NewStore()

			list, err := store.Load(path)
			if err != nil {
				return err
			}

			updated := deps.Merge(list, deps.List{{
				Name:    name,
				URL:     url,
				Branch:  opts.branch,
				Folder:  folder,
				Pin:     opts.pin,
				Version: opts.version,
			}})

			if ok, msg := deps.Validate(updated); !ok {
				return errors.New(errors.ErrCodeInvalidList, "adding %s would break the manifest: %s", name, msg)
			}

			if err := store.Save(path, updated); err != nil {
				return err
			}

			printSuccess("Added %s", name)
			printFile(path)
			printNextStep("Install it", "arbor install "+opts.dir)
			return nil
		},
	}

	opts.loc.register(cmd)
	cmd.Flags().StringVar(&opts.dir, "dir", opts.dir, "node root directory")
	cmd.Flags().StringVar(&opts.branch, "branch", opts.branch, "branch to track")
	cmd.Flags().StringVar(&opts.folder, "folder", "", "local folder name (default: dependency name)")
	cmd.Flags().StringVar(&opts.pin, "pin", "", "exact revision to pin")
	cmd.Flags().StringVar(&opts.version, "version", "", "semver tag constraint (e.g. \"^1.2\")")

	return cmd
}
