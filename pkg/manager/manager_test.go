package manager

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arborpm/arbor/pkg/deps"
	"github.com/arborpm/arbor/pkg/errors"
	"github.com/arborpm/arbor/pkg/gitvcs"
)

// fakeStore is an in-memory manifest store keyed by path.
type fakeStore struct {
	lists    map[string]deps.List
	loadErrs map[string]error
	saved    map[string]deps.List
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		lists:    make(map[string]deps.List),
		loadErrs: make(map[string]error),
		saved:    make(map[string]deps.List),
	}
}

func (s *fakeStore) Load(path string) (deps.List, error) {
	if err := s.loadErrs[path]; err != nil {
		return nil, err
	}
	return s.lists[path], nil
}

func (s *fakeStore) Save(path string, list deps.List) error {
	s.saved[path] = list.Clone()
	s.lists[path] = list.Clone()
	return nil
}

// fakeSyncer records sync calls and serves canned statuses.
type fakeSyncer struct {
	synced   []string // rootDirs passed to CloneOrUpdateAll
	statuses map[string]gitvcs.Result
}

func newFakeSyncer() *fakeSyncer {
	return &fakeSyncer{statuses: make(map[string]gitvcs.Result)}
}

func (s *fakeSyncer) CloneOrUpdateAll(_ context.Context, list deps.List, rootDir string) error {
	s.synced = append(s.synced, rootDir)
	return nil
}

func (s *fakeSyncer) StatusAll(_ context.Context, list deps.List, _ string) []gitvcs.Result {
	out := make([]gitvcs.Result, 0, len(list))
	for _, d := range list {
		if res, ok := s.statuses[d.Name]; ok {
			out = append(out, res)
			continue
		}
		out = append(out, gitvcs.Result{Name: d.Name, Status: gitvcs.StatusUpToDate, Revision: "rev-" + d.Name})
	}
	return out
}

func TestNew_InvalidExplicitListIsFatal(t *testing.T) {
	// Two records sharing a folder: construction fails, no install attempted.
	syncer := newFakeSyncer()
	_, err := New(Config{
		Root: t.TempDir(),
		List: deps.List{
			{Name: "a", Folder: "x"},
			{Name: "b", Folder: "x"},
		},
		Store:  newFakeStore(),
		Syncer: syncer,
	})
	if !errors.Is(err, errors.ErrCodeInvalidList) {
		t.Fatalf("New error = %v, want INVALID_DEPENDENCY_LIST", err)
	}
	if !strings.Contains(err.Error(), `"x"`) {
		t.Errorf("error %q should name the duplicated folder", err)
	}
	if len(syncer.synced) != 0 {
		t.Error("no sync should be attempted when construction fails")
	}
}

func TestNew_ExplicitListWithEmptyManifest(t *testing.T) {
	explicit := deps.List{{Name: "A", URL: "u1", Branch: "main", Folder: "a"}}

	m, err := New(Config{
		Root:   t.TempDir(),
		List:   explicit,
		Store:  newFakeStore(),
		Syncer: newFakeSyncer(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := m.List()
	if len(got) != 1 || got[0] != explicit[0] {
		t.Errorf("resolved list = %+v, want exactly the explicit list", got)
	}
}

func TestNew_ManifestPinPreserved(t *testing.T) {
	root := t.TempDir()
	store := newFakeStore()

	m0, err := New(Config{Root: root, Store: store, Syncer: newFakeSyncer()})
	if err != nil {
		t.Fatal(err)
	}
	store.lists[m0.ManifestPath()] = deps.List{
		{Name: "A", URL: "u1", Branch: "main", Folder: "a", Pin: "abc123"},
	}

	m, err := New(Config{
		Root:   root,
		List:   deps.List{{Name: "A", URL: "u1", Branch: "dev", Folder: "a"}},
		Store:  store,
		Syncer: newFakeSyncer(),
	})
	if err != nil {
		t.Fatal(err)
	}

	got := m.List()
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Branch != "dev" {
		t.Errorf("Branch = %q, want dev (explicit wins)", got[0].Branch)
	}
	if got[0].Pin != "abc123" {
		t.Errorf("Pin = %q, want abc123 (recorded pin survives)", got[0].Pin)
	}
}

func TestNew_InvalidManifestDiscarded(t *testing.T) {
	root := t.TempDir()
	store := newFakeStore()

	m0, err := New(Config{Root: root, Store: store, Syncer: newFakeSyncer()})
	if err != nil {
		t.Fatal(err)
	}
	// On-disk list with a duplicate name fails validation.
	store.lists[m0.ManifestPath()] = deps.List{
		{Name: "dup", Folder: "a"},
		{Name: "dup", Folder: "b"},
	}

	var warnings []string
	explicit := deps.List{{Name: "A", URL: "u", Branch: "main", Folder: "a"}}
	m, err := New(Config{
		Root:   root,
		List:   explicit,
		Store:  store,
		Syncer: newFakeSyncer(),
		Logger: func(format string, args ...any) {
			warnings = append(warnings, fmt.Sprintf(format, args...))
		},
	})
	if err != nil {
		t.Fatalf("invalid manifest must not fail construction: %v", err)
	}

	got := m.List()
	if len(got) != 1 || got[0] != explicit[0] {
		t.Errorf("resolved list = %+v, want explicit list only", got)
	}
	if len(warnings) == 0 {
		t.Error("discarding an invalid manifest should emit a warning")
	}
}

func TestInstall_PersistsResolvedRevisions(t *testing.T) {
	root := t.TempDir()
	store := newFakeStore()
	syncer := newFakeSyncer()
	syncer.statuses["A"] = gitvcs.Result{Name: "A", Status: gitvcs.StatusUpToDate, Revision: "abc123"}

	m, err := New(Config{
		Root:   root,
		List:   deps.List{{Name: "A", URL: "u", Branch: "main", Folder: "a"}},
		Store:  store,
		Syncer: syncer,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := m.Install(context.Background()); err != nil {
		t.Fatalf("Install: %v", err)
	}

	if len(syncer.synced) == 0 || syncer.synced[0] != m.DepsDir() {
		t.Errorf("synced = %v, want first sync at %s", syncer.synced, m.DepsDir())
	}

	saved := store.saved[m.ManifestPath()]
	if len(saved) != 1 {
		t.Fatalf("saved = %+v, want one record", saved)
	}
	if saved[0].Pin != "abc123" {
		t.Errorf("saved Pin = %q, want the resolved revision", saved[0].Pin)
	}
}

func TestInstall_SkipsUnresolvedRecords(t *testing.T) {
	root := t.TempDir()
	store := newFakeStore()
	syncer := newFakeSyncer()
	syncer.statuses["good"] = gitvcs.Result{Name: "good", Status: gitvcs.StatusUpToDate, Revision: "r1"}
	syncer.statuses["bad"] = gitvcs.Result{Name: "bad", Status: gitvcs.StatusMissing}

	m, err := New(Config{
		Root: root,
		List: deps.List{
			{Name: "good", URL: "u1", Folder: "g"},
			{Name: "bad", URL: "u2", Folder: "b"},
		},
		Store:  store,
		Syncer: syncer,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := m.Install(context.Background()); err != nil {
		t.Fatalf("Install: %v", err)
	}

	saved := store.saved[m.ManifestPath()]
	if len(saved) != 1 || saved[0].Name != "good" {
		t.Errorf("saved = %+v, want only the resolved record", saved)
	}
}

func TestInstall_Recurses(t *testing.T) {
	root := t.TempDir()
	store := newFakeStore()
	syncer := newFakeSyncer()

	m, err := New(Config{
		Root:   root,
		List:   deps.List{{Name: "A", URL: "u", Folder: "a"}},
		Store:  store,
		Syncer: syncer,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Give A's own manifest a transitive dependency before installing.
	childManifest := filepath.Join(m.DepsDir(), "a", "arbor.toml")
	store.lists[childManifest] = deps.List{{Name: "B", URL: "u2", Folder: "b"}}

	if err := m.Install(context.Background()); err != nil {
		t.Fatalf("Install: %v", err)
	}

	// Two sync calls: this node's deps dir, then A's deps dir.
	if len(syncer.synced) != 2 {
		t.Fatalf("synced %d times (%v), want 2", len(syncer.synced), syncer.synced)
	}
	if !strings.Contains(syncer.synced[1], "a") {
		t.Errorf("second sync at %q, want A's dependency directory", syncer.synced[1])
	}
}

func TestShouldPersist(t *testing.T) {
	tests := []struct {
		name string
		res  gitvcs.Result
		want bool
	}{
		{"up to date with revision", gitvcs.Result{Status: gitvcs.StatusUpToDate, Revision: "r"}, true},
		{"up to date without revision", gitvcs.Result{Status: gitvcs.StatusUpToDate}, true},
		{"diverged with revision", gitvcs.Result{Status: gitvcs.StatusDiverged, Revision: "r"}, true},
		{"missing", gitvcs.Result{Status: gitvcs.StatusMissing}, false},
		{"unknown without revision", gitvcs.Result{Status: gitvcs.StatusUnknown}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldPersist(tt.res); got != tt.want {
				t.Errorf("shouldPersist(%+v) = %v, want %v", tt.res, got, tt.want)
			}
		})
	}
}
