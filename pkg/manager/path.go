package manager

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/arborpm/arbor/pkg/errors"
)

// vcsDirs are version-control metadata directories excluded from path output.
var vcsDirs = map[string]bool{
	".git": true,
	".hg":  true,
	".svn": true,
}

// GenPath returns the flattened source search path for this node: every
// source subdirectory of the root and of every transitively installed
// dependency, joined with the platform's path list separator.
//
// The order is depth-first with children before self: each dependency's
// paths come first, then this node's own non-dependency subdirectories,
// then the node root itself. The dependency directory is never listed as a
// standalone entry; its contents are reached only through recursion.
func (m *Manager) GenPath(ctx context.Context) (string, error) {
	paths, err := m.Paths(ctx)
	if err != nil {
		return "", err
	}
	return strings.Join(paths, string(filepath.ListSeparator)), nil
}

// Paths returns the entries of [Manager.GenPath] as a slice.
func (m *Manager) Paths(ctx context.Context) ([]string, error) {
	return m.paths(ctx, make(map[string]bool))
}

func (m *Manager) paths(ctx context.Context, visited map[string]bool) ([]string, error) {
	canon := canonicalPath(m.root)
	if visited[canon] {
		return nil, errors.New(errors.ErrCodeCycle, "dependency cycle detected at %s", canon)
	}
	visited[canon] = true

	var out []string

	// Children first: each dependency contributes its whole subtree.
	for _, dep := range m.list {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		childMgr, err := m.child(dep)
		if err != nil {
			return nil, err
		}
		childPaths, err := childMgr.paths(ctx, visited)
		if err != nil {
			return nil, err
		}
		out = append(out, childPaths...)
	}

	// Then this node's own source subdirectories.
	own, err := m.sourceDirs()
	if err != nil {
		return nil, err
	}
	out = append(out, own...)

	// The node root itself comes last.
	return append(out, m.root), nil
}

// sourceDirs enumerates the root's subdirectories recursively, excluding the
// dependency directory (reached via recursion instead) and version-control
// metadata directories. The root itself is not included.
func (m *Manager) sourceDirs() ([]string, error) {
	if _, err := os.Stat(m.root); os.IsNotExist(err) {
		return nil, nil
	}

	depsDir := canonicalPath(m.depsDir)

	var dirs []string
	err := filepath.WalkDir(m.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || path == m.root {
			return nil
		}
		if vcsDirs[d.Name()] {
			return filepath.SkipDir
		}
		if canonicalPath(path) == depsDir {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "scan %s", m.root)
	}
	return dirs, nil
}
