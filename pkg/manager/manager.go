// Package manager implements the recursive installation protocol at the
// heart of Arbor.
//
// A [Manager] represents one node of the dependency tree: a root directory,
// the subdirectory its dependencies are materialized in, and a manifest file
// recording the last-resolved state. Installing a node syncs its
// dependencies, persists the outcome, and recurses into every dependency's
// own folder with a fresh Manager, so each node independently discovers its
// own manifest and transitive dependencies.
//
// Construction merges the explicitly supplied dependency list with whatever
// the manifest already records: the explicit list wins on every field except
// a recorded pin (see [deps.Merge]). An invalid explicit list is fatal; an
// invalid on-disk manifest is only a warning and its contents are discarded.
//
// Both installation and path generation pass a visited set of canonical
// directory paths down the recursion, so a dependency cycle across manifests
// surfaces as a DEPENDENCY_CYCLE error instead of unbounded recursion.
package manager

import (
	"context"
	"path/filepath"

	"github.com/arborpm/arbor/pkg/deps"
	"github.com/arborpm/arbor/pkg/errors"
	"github.com/arborpm/arbor/pkg/gitvcs"
	"github.com/arborpm/arbor/pkg/manifest"
)

// DefaultDepsDirName is the conventional dependency directory under a root.
const DefaultDepsDirName = "external"

// Store is the manifest persistence collaborator.
type Store interface {
	Load(path string) (deps.List, error)
	Save(path string, list deps.List) error
}

// Syncer is the repository sync collaborator.
type Syncer interface {
	CloneOrUpdateAll(ctx context.Context, list deps.List, rootDir string) error
	StatusAll(ctx context.Context, list deps.List, rootDir string) []gitvcs.Result
}

// Config configures a Manager. All fields are optional.
type Config struct {
	Root         string               // node root directory (default: ".")
	List         deps.List            // explicitly supplied dependency list (default: empty)
	DepsDir      string               // dependency directory (default: <root>/external)
	ManifestPath string               // manifest file (default: <root>/arbor.toml)
	Store        Store                // manifest store (default: manifest.NewStore())
	Syncer       Syncer               // sync service (default: gitvcs.NewService)
	Logger       func(string, ...any) // warning/progress callback (optional)
}

// Manager owns one node's resolved dependency list and location configuration.
type Manager struct {
	list         deps.List
	root         string
	depsDir      string
	manifestPath string
	store        Store
	syncer       Syncer
	logf         func(string, ...any)
}

// New constructs a Manager from cfg.
//
// The explicit dependency list is validated first: duplicate names or folders
// are a structural error naming every violation, returned immediately. The
// on-disk manifest is then loaded and merged underneath the explicit list;
// if it cannot be read or fails validation it is discarded with a warning
// and only the explicit list is kept.
func New(cfg Config) (*Manager, error) {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.DepsDir == "" {
		cfg.DepsDir = filepath.Join(cfg.Root, DefaultDepsDirName)
	}
	if cfg.ManifestPath == "" {
		cfg.ManifestPath = filepath.Join(cfg.Root, manifest.DefaultName)
	}
	if cfg.Store == nil {
		cfg.Store = manifest.NewStore()
	}
	if cfg.Syncer == nil {
		cfg.Syncer = gitvcs.NewService(gitvcs.Options{Logger: cfg.Logger})
	}
	if cfg.Logger == nil {
		cfg.Logger = func(string, ...any) {}
	}

	if ok, msg := deps.Validate(cfg.List); !ok {
		return nil, errors.New(errors.ErrCodeInvalidList, "invalid dependency list: %s", msg)
	}

	m := &Manager{
		list:         cfg.List,
		root:         cfg.Root,
		depsDir:      cfg.DepsDir,
		manifestPath: cfg.ManifestPath,
		store:        cfg.Store,
		syncer:       cfg.Syncer,
		logf:         cfg.Logger,
	}
	m.mergeManifest()
	return m, nil
}

// mergeManifest merges the persisted dependency list underneath the explicit
// one. Manifest problems never fail construction: the on-disk list is simply
// discarded with a warning.
func (m *Manager) mergeManifest() {
	onDisk, err := m.store.Load(m.manifestPath)
	if err != nil {
		m.logf("discarding manifest %s: %v", m.manifestPath, err)
		return
	}
	if ok, msg := deps.Validate(onDisk); !ok {
		m.logf("discarding invalid manifest %s: %s", m.manifestPath, msg)
		return
	}
	m.list = deps.Merge(onDisk, m.list)
}

// List returns the node's resolved dependency list.
func (m *Manager) List() deps.List {
	return m.list.Clone()
}

// Root returns the node's root directory.
func (m *Manager) Root() string { return m.root }

// DepsDir returns the directory dependencies are materialized in.
func (m *Manager) DepsDir() string { return m.depsDir }

// ManifestPath returns the node's manifest file path.
func (m *Manager) ManifestPath() string { return m.manifestPath }

// child constructs the Manager for one dependency's folder. The child gets
// an empty explicit list, so its state comes entirely from its own manifest.
func (m *Manager) child(dep deps.Dependency) (*Manager, error) {
	return New(Config{
		Root:   filepath.Join(m.depsDir, dep.Folder),
		Store:  m.store,
		Syncer: m.syncer,
		Logger: m.logf,
	})
}

// canonicalPath resolves a directory to a canonical absolute path for cycle
// detection. Symlinks are resolved when possible so two spellings of the
// same directory compare equal.
func canonicalPath(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
