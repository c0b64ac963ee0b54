package cache

// ScopedKeyer wraps a Keyer with a prefix so lookups for different project
// roots do not collide in a shared backend (e.g. one Redis instance serving
// several CI jobs).
//
// Example usage:
//
//	// Keys scoped to one project root
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "proj:a1b2c3:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// TagsKey generates a prefixed key for a tag listing.
func (k *ScopedKeyer) TagsKey(url string) string {
	return k.prefix + k.inner.TagsKey(url)
}

// HeadKey generates a prefixed key for a remote head lookup.
func (k *ScopedKeyer) HeadKey(url, ref string) string {
	return k.prefix + k.inner.HeadKey(url, ref)
}
