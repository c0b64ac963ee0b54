package manager

import (
	"context"
	"path/filepath"

	"github.com/arborpm/arbor/pkg/deps"
	"github.com/arborpm/arbor/pkg/errors"
)

// TreeNode is one node of the resolved dependency tree.
type TreeNode struct {
	Name     string          // display name (dependency name, or root dir base for the top node)
	Dir      string          // node root directory
	Dep      deps.Dependency // declaring record; zero value for the top node
	Children []*TreeNode
}

// Tree walks the dependency tree without syncing anything, reading each
// node's manifest to discover its children. Useful for status display and
// graph rendering over an already installed tree.
func (m *Manager) Tree(ctx context.Context) (*TreeNode, error) {
	root := &TreeNode{
		Name: filepath.Base(canonicalPath(m.root)),
		Dir:  m.root,
	}
	if err := m.tree(ctx, root, make(map[string]bool)); err != nil {
		return nil, err
	}
	return root, nil
}

func (m *Manager) tree(ctx context.Context, node *TreeNode, visited map[string]bool) error {
	canon := canonicalPath(m.root)
	if visited[canon] {
		return errors.New(errors.ErrCodeCycle, "dependency cycle detected at %s", canon)
	}
	visited[canon] = true

	for _, dep := range m.list {
		if err := ctx.Err(); err != nil {
			return err
		}
		childMgr, err := m.child(dep)
		if err != nil {
			return err
		}
		childNode := &TreeNode{
			Name: dep.Name,
			Dir:  childMgr.root,
			Dep:  dep,
		}
		if err := childMgr.tree(ctx, childNode, visited); err != nil {
			return err
		}
		node.Children = append(node.Children, childNode)
	}
	return nil
}
