package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	// Clear overrides to test default behavior
	oldArbor := os.Getenv("ARBOR_CACHE_DIR")
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Unsetenv("ARBOR_CACHE_DIR")
	os.Unsetenv("XDG_CACHE_HOME")
	defer func() {
		if oldArbor != "" {
			os.Setenv("ARBOR_CACHE_DIR", oldArbor)
		}
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		}
	}()

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
	if !strings.HasSuffix(dir, appName) {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := "/tmp/custom-cache"
	oldArbor := os.Getenv("ARBOR_CACHE_DIR")
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Unsetenv("ARBOR_CACHE_DIR")
	os.Setenv("XDG_CACHE_HOME", customCache)
	defer func() {
		if oldArbor != "" {
			os.Setenv("ARBOR_CACHE_DIR", oldArbor)
		}
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		} else {
			os.Unsetenv("XDG_CACHE_HOME")
		}
	}()

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestCacheDirOverride(t *testing.T) {
	oldArbor := os.Getenv("ARBOR_CACHE_DIR")
	os.Setenv("ARBOR_CACHE_DIR", "/tmp/arbor-cache-test")
	defer func() {
		if oldArbor != "" {
			os.Setenv("ARBOR_CACHE_DIR", oldArbor)
		} else {
			os.Unsetenv("ARBOR_CACHE_DIR")
		}
	}()

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/tmp/arbor-cache-test" {
		t.Errorf("cacheDir() with ARBOR_CACHE_DIR = %q, want /tmp/arbor-cache-test", dir)
	}
}

func TestGitBinary(t *testing.T) {
	oldGit := os.Getenv("ARBOR_GIT")
	os.Unsetenv("ARBOR_GIT")
	defer func() {
		if oldGit != "" {
			os.Setenv("ARBOR_GIT", oldGit)
		}
	}()

	if got := gitBinary(); got != "git" {
		t.Errorf("gitBinary() = %q, want git", got)
	}

	os.Setenv("ARBOR_GIT", "/usr/local/bin/git2")
	if got := gitBinary(); got != "/usr/local/bin/git2" {
		t.Errorf("gitBinary() with override = %q", got)
	}
	os.Unsetenv("ARBOR_GIT")
}

func TestRootArg(t *testing.T) {
	if got := rootArg(nil); got != "." {
		t.Errorf("rootArg(nil) = %q, want .", got)
	}
	if got := rootArg([]string{"./proj"}); got != "./proj" {
		t.Errorf("rootArg = %q, want ./proj", got)
	}
}

func TestManifestPathFor(t *testing.T) {
	if got := manifestPathFor("/proj", locationOpts{}); got != filepath.Join("/proj", "arbor.toml") {
		t.Errorf("manifestPathFor default = %q", got)
	}
	if got := manifestPathFor("/proj", locationOpts{manifestPath: "/elsewhere/deps.toml"}); got != "/elsewhere/deps.toml" {
		t.Errorf("manifestPathFor override = %q", got)
	}
}
