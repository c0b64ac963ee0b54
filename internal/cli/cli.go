// Package cli implements the arbor command-line interface.
//
// This package provides commands for installing dependency trees, generating
// source search paths, inspecting sync status, editing the manifest, and
// rendering the dependency tree. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - install: Resolve, sync, and recursively install dependencies
//   - path: Print the flattened source search path
//   - status: Show per-dependency sync status
//   - add/remove: Edit the manifest's dependency list
//   - graph: Render the dependency tree as DOT or SVG
//   - cache: Manage the remote-lookup cache
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/arborpm/arbor/pkg/buildinfo"
	"github.com/arborpm/arbor/pkg/cache"
	"github.com/arborpm/arbor/pkg/deps"
	"github.com/arborpm/arbor/pkg/gitvcs"
	"github.com/arborpm/arbor/pkg/manager"
	"github.com/arborpm/arbor/pkg/manifest"
)

// appName is the application name used for directories and display.
const appName = "arbor"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Arbor installs recursive source dependency trees",
		Long:         `Arbor is a recursive source dependency manager: it clones and updates declared git repositories into a local dependency directory, records resolved revisions in a TOML manifest, recurses into each dependency's own manifest, and flattens the result into a source search path.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.installCommand())
	root.AddCommand(c.pathCommand())
	root.AddCommand(c.statusCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Location Flags
// =============================================================================

// locationOpts holds the flags shared by every command that addresses a node.
type locationOpts struct {
	depsDir      string // dependency directory (default: <root>/external)
	manifestPath string // manifest file (default: <root>/arbor.toml)
}

// register adds the shared location flags to cmd.
func (o *locationOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.depsDir, "deps-dir", "", "dependency directory (default: <root>/external)")
	cmd.Flags().StringVar(&o.manifestPath, "manifest", "", "manifest file (default: <root>/arbor.toml)")
}

// rootArg resolves the optional positional root directory argument.
func rootArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// =============================================================================
// Manager Factory
// =============================================================================

// newManager builds a Manager rooted at root with the CLI's logger and the
// configured cache backend wired into the sync service.
func (c *CLI) newManager(ctx context.Context, root string, loc locationOpts, noCache bool) (*manager.Manager, error) {
	store := manifest.NewStore()
	syncer := gitvcs.NewService(gitvcs.Options{
		Git:    gitBinary(),
		Cache:  c.newCache(ctx, noCache),
		Logger: c.logf,
	})

	return manager.New(manager.Config{
		Root:         root,
		DepsDir:      loc.depsDir,
		ManifestPath: loc.manifestPath,
		Store:        store,
		Syncer:       syncer,
		Logger:       c.logf,
	})
}

// logf adapts the CLI logger to the pkg layers' warning callback.
func (c *CLI) logf(format string, args ...any) {
	c.Logger.Warnf(format, args...)
}

// =============================================================================
// Cache Selection
// =============================================================================

// newCache picks the cache backend: redis when ARBOR_REDIS_ADDR is set,
// otherwise the file cache, degrading to the null cache if neither works.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}

	if addr := os.Getenv("ARBOR_REDIS_ADDR"); addr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     addr,
			Password: os.Getenv("ARBOR_REDIS_PASSWORD"),
		})
		if err == nil {
			return rc
		}
		c.Logger.Warnf("redis cache unavailable, falling back to file cache: %v", err)
	}

	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// gitBinary returns the git binary to use, overridable via ARBOR_GIT.
func gitBinary() string {
	if g := os.Getenv("ARBOR_GIT"); g != "" {
		return g
	}
	return "git"
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/arbor/),
// overridable via ARBOR_CACHE_DIR.
func cacheDir() (string, error) {
	if dir := os.Getenv("ARBOR_CACHE_DIR"); dir != "" {
		return dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Manifest Editing Helpers
// =============================================================================

// loadManifestList loads and validates the dependency list at path.
func loadManifestList(path string) (deps.List, error) {
	return manifest.NewStore().Load(path)
}

// manifestPathFor resolves the manifest path for a root directory.
func manifestPathFor(root string, loc locationOpts) string {
	if loc.manifestPath != "" {
		return loc.manifestPath
	}
	return filepath.Join(root, manifest.DefaultName)
}
