package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// SHA-256 produces 64 hex chars
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// Same URL, same key
	if k.TagsKey("https://example.com/a.git") != k.TagsKey("https://example.com/a.git") {
		t.Error("TagsKey should be deterministic")
	}

	// Different URLs, different keys
	if k.TagsKey("https://example.com/a.git") == k.TagsKey("https://example.com/b.git") {
		t.Error("Different URLs should produce different tag keys")
	}

	// HeadKey includes the ref
	if k.HeadKey("u", "main") == k.HeadKey("u", "dev") {
		t.Error("Different refs should produce different head keys")
	}

	// Tag and head keys never collide for the same URL
	if k.TagsKey("u") == k.HeadKey("u", "") {
		t.Error("TagsKey and HeadKey should use distinct namespaces")
	}
}

func TestScopedKeyer(t *testing.T) {
	base := NewDefaultKeyer()
	scoped := NewScopedKeyer(base, "proj:x:")

	key := scoped.TagsKey("https://example.com/a.git")
	if key == base.TagsKey("https://example.com/a.git") {
		t.Error("ScopedKeyer should prefix keys")
	}
	if key[:7] != "proj:x:" {
		t.Errorf("key %q should start with the scope prefix", key)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()

	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Miss before set
	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Error("expected miss before Set")
	}

	// Set then hit
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit || string(data) != "value" {
		t.Errorf("Get = (%q, %v), want (value, true)", data, hit)
	}

	// Expired entries are treated as misses
	if err := c.Set(ctx, "expired", []byte("x"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	_, hit, _ = c.Get(ctx, "expired")
	if hit {
		t.Error("expired entry should be a miss")
	}

	// Delete
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("expected miss after Delete")
	}

	// Deleting a missing key is not an error
	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
}
