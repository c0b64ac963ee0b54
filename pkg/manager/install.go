package manager

import (
	"context"

	"github.com/arborpm/arbor/pkg/deps"
	"github.com/arborpm/arbor/pkg/errors"
	"github.com/arborpm/arbor/pkg/gitvcs"
)

// Install syncs this node's dependencies, persists the resolved state to the
// manifest, and recursively installs every dependency's own dependencies.
//
// Sync failures for individual records do not abort the tree: the failed
// record is simply omitted from the manifest save until it succeeds.
// Manifest save errors and dependency cycles do abort.
func (m *Manager) Install(ctx context.Context) error {
	return m.install(ctx, make(map[string]bool))
}

func (m *Manager) install(ctx context.Context, visited map[string]bool) error {
	canon := canonicalPath(m.root)
	if visited[canon] {
		return errors.New(errors.ErrCodeCycle, "dependency cycle detected at %s", canon)
	}
	visited[canon] = true

	if len(m.list) == 0 {
		return nil
	}

	if err := m.syncer.CloneOrUpdateAll(ctx, m.list, m.depsDir); err != nil {
		return err
	}

	if err := m.persist(ctx); err != nil {
		return err
	}

	for _, dep := range m.list {
		if err := ctx.Err(); err != nil {
			return err
		}
		childMgr, err := m.child(dep)
		if err != nil {
			return err
		}
		if err := childMgr.install(ctx, visited); err != nil {
			return err
		}
	}
	return nil
}

// persist queries per-dependency status and writes the records that resolved
// successfully back to the manifest, with their resolved revisions recorded
// as pins.
func (m *Manager) persist(ctx context.Context) error {
	results := m.syncer.StatusAll(ctx, m.list, m.depsDir)

	byName := make(map[string]gitvcs.Result, len(results))
	for _, res := range results {
		byName[res.Name] = res
	}

	var toSave deps.List
	for _, dep := range m.list {
		res := byName[dep.Name]
		if !shouldPersist(res) {
			m.logf("skipping %s in manifest save: status %s, no resolved revision", dep.Name, res.Status)
			continue
		}
		if res.Revision != "" {
			dep.Pin = res.Revision
		}
		toSave = append(toSave, dep)
	}

	if len(toSave) == 0 {
		return nil
	}
	return m.store.Save(m.manifestPath, toSave)
}

// shouldPersist reports whether a sync result is worth recording: the record
// is up to date, or it at least has a known resolved revision. A record that
// was never successfully synced must not enter the manifest.
func shouldPersist(res gitvcs.Result) bool {
	return res.Status == gitvcs.StatusUpToDate || res.Revision != ""
}
