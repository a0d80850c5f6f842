package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis or MongoDB backend without seeing each other's entries.
//
// Example usage:
//
//	// Keys of the staging server
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
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

// DiffKey generates a prefixed key for diff results.
func (k *ScopedKeyer) DiffKey(beforeDigest, afterDigest string, opts DiffKeyOpts) string {
	return k.prefix + k.inner.DiffKey(beforeDigest, afterDigest, opts)
}

// DecorateKey generates a prefixed key for decorated documents.
func (k *ScopedKeyer) DecorateKey(docDigest, format string) string {
	return k.prefix + k.inner.DecorateKey(docDigest, format)
}
