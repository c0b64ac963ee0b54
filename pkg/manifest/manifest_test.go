package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arborpm/arbor/pkg/deps"
	"github.com/arborpm/arbor/pkg/errors"
)

func TestLoad_MissingFile(t *testing.T) {
	s := NewStore()

	list, err := s.Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load missing file: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("Load missing file = %+v, want empty list", list)
	}
}

func TestLoad_NoDepsSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultName)
	content := "[project]\nname = \"myapp\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	list, err := NewStore().Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("Load = %+v, want empty list", list)
	}
}

func TestLoad_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultName)
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewStore().Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("Load error = %v, want INVALID_MANIFEST", err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultName)
	s := NewStore()

	in := deps.List{
		{Name: "alpha", URL: "https://example.com/alpha.git", Branch: "main", Folder: "alpha", Pin: "abc123"},
		{Name: "beta", URL: "../local/beta", Branch: "dev", Folder: "b", Version: "^1.2"},
	}

	if err := s.Save(path, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := s.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}

	// Load sorts by name, and our input is already alphabetical.
	if out[0] != in[0] {
		t.Errorf("alpha = %+v, want %+v", out[0], in[0])
	}
	if out[1] != in[1] {
		t.Errorf("beta = %+v, want %+v", out[1], in[1])
	}
}

func TestSave_PreservesUnrelatedSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultName)
	content := "[project]\nname = \"myapp\"\nlicense = \"MIT\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore()
	if err := s.Save(path, deps.List{{Name: "alpha", URL: "u", Folder: "a"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)

	if !strings.Contains(text, "myapp") || !strings.Contains(text, "MIT") {
		t.Errorf("save dropped unrelated [project] section:\n%s", text)
	}
	if !strings.Contains(text, "[deps.alpha]") {
		t.Errorf("save missing [deps.alpha] table:\n%s", text)
	}
}

func TestSave_UpdatesExistingEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultName)
	s := NewStore()

	if err := s.Save(path, deps.List{{Name: "alpha", URL: "u", Folder: "a", Pin: "old"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(path, deps.List{{Name: "alpha", URL: "u", Folder: "a", Pin: "new"}}); err != nil {
		t.Fatal(err)
	}

	out, err := s.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Pin != "new" {
		t.Errorf("Load = %+v, want single alpha entry with pin %q", out, "new")
	}
}

func TestSave_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", DefaultName)

	if err := NewStore().Save(path, deps.List{{Name: "a", URL: "u", Folder: "a"}}); err != nil {
		t.Fatalf("Save into missing directory: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("manifest not created: %v", err)
	}
}

func TestLoad_AbsentPinDefaultsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultName)
	content := `
[deps.alpha]
url = "https://example.com/alpha.git"
branch = "main"
folder = "alpha"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := NewStore().Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if out[0].Pin != "" {
		t.Errorf("Pin = %q, want empty", out[0].Pin)
	}
}
