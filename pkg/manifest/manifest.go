// Package manifest persists a node's resolved dependency list as a TOML file.
//
// The manifest records one `[deps.<name>]` table per dependency:
//
//	[deps.boost]
//	url    = "https://github.com/org/boost-mirror.git"
//	branch = "main"
//	folder = "boost"
//	pin    = "4f2a9c1"
//
// Loading tolerates a missing file or a missing [deps] section (both mean
// "no dependencies recorded"). Saving is additive at the file level:
// unrelated top-level sections already present in the file are preserved,
// only the [deps] section is rewritten.
package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/arborpm/arbor/pkg/deps"
	"github.com/arborpm/arbor/pkg/errors"
)

// DefaultName is the conventional manifest file name at a node root.
const DefaultName = "arbor.toml"

// depsSection is the top-level TOML key holding dependency tables.
const depsSection = "deps"

// entry is the on-disk shape of one dependency table.
type entry struct {
	URL     string `toml:"url"`
	Branch  string `toml:"branch,omitempty"`
	Folder  string `toml:"folder,omitempty"`
	Pin     string `toml:"pin,omitempty"`
	Version string `toml:"version,omitempty"`
}

// Store reads and writes manifest files. The zero value is ready to use.
type Store struct{}

// NewStore creates a manifest store.
func NewStore() *Store {
	return &Store{}
}

// Load reads the dependency list recorded at path.
//
// A missing file or a file without a [deps] section yields an empty list and
// no error. An absent pin defaults to the empty string. Entries are returned
// sorted by name so repeated loads are deterministic.
func (s *Store) Load(path string) (deps.List, error) {
	raw, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	section, ok := raw[depsSection].(map[string]any)
	if !ok {
		return nil, nil
	}

	names := make([]string, 0, len(section))
	for name := range section {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make(deps.List, 0, len(names))
	for _, name := range names {
		table, ok := section[name].(map[string]any)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "entry %q in %s is not a table", name, path)
		}
		list = append(list, deps.Dependency{
			Name:    name,
			URL:     str(table, "url"),
			Branch:  str(table, "branch"),
			Folder:  str(table, "folder"),
			Pin:     str(table, "pin"),
			Version: str(table, "version"),
		})
	}
	return list, nil
}

// Save writes the dependency list to path, creating the file if absent.
//
// Unrelated top-level sections already in the file survive the write; only
// the [deps] section is replaced. Records are keyed by dependency name, so
// saving the same list twice is idempotent.
func (s *Store) Save(path string, list deps.List) error {
	raw, err := decodeFile(path)
	if err != nil {
		return err
	}
	if raw == nil {
		raw = make(map[string]any)
	}

	section := make(map[string]entry, len(list))
	for _, d := range list {
		section[d.Name] = entry{
			URL:     d.URL,
			Branch:  d.Branch,
			Folder:  d.Folder,
			Pin:     d.Pin,
			Version: d.Version,
		}
	}
	raw[depsSection] = section

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode manifest %s", path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "create manifest directory for %s", path)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write manifest %s", path)
	}
	return nil
}

// decodeFile reads path into a generic TOML tree.
// Returns (nil, nil) when the file does not exist.
func decodeFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read manifest %s", path)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse manifest %s", path)
	}
	return raw, nil
}

func str(table map[string]any, key string) string {
	if v, ok := table[key].(string); ok {
		return v
	}
	return ""
}
